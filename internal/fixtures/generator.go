// Package fixtures produces random demo data and seeds it through the
// services so every write guard applies.
package fixtures

import (
	"fmt"
	"math"
	"strings"

	"acme-be/internal/models"

	"github.com/brianvoe/gofakeit/v7"
)

// ProductNames is the fixed product catalog created when seeding
var ProductNames = []string{"foo", "bar", "bazz", "quq", "fizz", "buzz"}

// EmailDomains are the mailbox providers user emails are drawn from
var EmailDomains = []string{"google", "yahoo", "friendster", "aol", "me", "mac", "microsoft"}

// Generator draws random fixtures from a single faker. It is not safe for
// concurrent use.
type Generator struct {
	faker *gofakeit.Faker
}

// NewGenerator creates a generator; a zero seed picks a random one
func NewGenerator(seed uint64) *Generator {
	return &Generator{faker: gofakeit.New(seed)}
}

// Between returns an int in [lo, hi]
func (g *Generator) Between(lo, hi int) int {
	return g.faker.Number(lo, hi)
}

func (g *Generator) Words(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = g.faker.Word()
	}
	return strings.Join(words, " ")
}

func (g *Generator) Company() *models.CreateCompanyRequest {
	return &models.CreateCompanyRequest{
		Name:        g.faker.Company(),
		Phone:       g.faker.Phone(),
		State:       g.faker.State(),
		CatchPhrase: fmt.Sprintf("%s %s", g.faker.BuzzWord(), g.faker.BS()),
	}
}

// User builds a user whose email is first.middle.last at one of EmailDomains
func (g *Generator) User() *models.CreateUserRequest {
	first := g.faker.FirstName()
	middle := g.faker.MiddleName()
	last := g.faker.LastName()
	domain := EmailDomains[g.faker.Number(0, len(EmailDomains)-1)]
	local := strings.ToLower(strings.Join([]string{first, middle, last}, "."))
	local = strings.NewReplacer(" ", "", "'", "").Replace(local)

	return &models.CreateUserRequest{
		FirstName:  first,
		MiddleName: middle,
		LastName:   last,
		Email:      fmt.Sprintf("%s@%s.com", local, domain),
		Title:      g.faker.JobTitle(),
		Avatar:     fmt.Sprintf("https://robohash.org/%s.png?size=128x128", strings.ToLower(first+last)),
	}
}

// SuggestedPrice is a whole price between 3 and 23
func (g *Generator) SuggestedPrice() float64 {
	return float64(g.faker.Number(3, 23))
}

// Discounted takes 0 to 5 percent off price, rounded to cents
func (g *Generator) Discounted(price float64) float64 {
	off := price * float64(g.faker.Number(0, 5)) / 100
	return math.Round((price-off)*100) / 100
}

func (g *Generator) ProductDescription() string {
	return fmt.Sprintf("%s %s %s", g.faker.Adjective(), g.faker.BuzzWord(), g.faker.BS())
}

// Note builds note text in the form "<2 words> - <email> <3 words>"
func (g *Generator) Note(email string) *models.NoteRequest {
	text := fmt.Sprintf("%s - %s %s", g.Words(2), email, g.Words(3))
	archived := g.faker.Bool()
	return &models.NoteRequest{Text: &text, Archived: &archived}
}

func (g *Generator) Rating() int {
	return g.faker.Number(1, 5)
}

// Pick returns k distinct indexes from [0, n), k capped at n
func (g *Generator) Pick(n, k int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	g.faker.ShuffleAnySlice(idx)
	return idx[:min(k, n)]
}
