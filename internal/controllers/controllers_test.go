package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"acme-be/internal/entities"
	"acme-be/internal/models"
	"acme-be/internal/repository"
	"acme-be/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type testServer struct {
	router    *gin.Engine
	users     service.UserService
	companies service.CompanyService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	users := service.NewUserService(store.Users, store.Companies, service.WithPageSize(10))
	companies := service.NewCompanyService(store.Companies, store.Profits, nil, 0)

	router := gin.New()
	router.GET("/health", Health)
	RegisterRoutes(router.Group("/api"), &Handlers{
		Users:      NewUserController(users),
		Companies:  NewCompanyController(companies, users),
		Catalog:    NewCatalogController(service.NewCatalogService(store.Products, store.Offerings)),
		Notes:      NewNoteController(service.NewNoteService(store.Notes)),
		Bookmarks:  NewBookmarkController(service.NewBookmarkService(store.Bookmarks)),
		Vacations:  NewVacationController(service.NewVacationService(store.Vacations)),
		Followings: NewFollowingCompanyController(service.NewFollowingCompanyService(store.Followings)),
	})

	return &testServer{router: router, users: users, companies: companies}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var data []byte
	if body != nil {
		var err error
		if data, err = json.Marshal(body); err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) createUser(t *testing.T) *entities.User {
	t.Helper()
	user, err := s.users.CreateUser(context.Background(), &models.CreateUserRequest{
		FirstName: "Margaret",
		LastName:  "Hamilton",
		Email:     "margaret.hamilton@example.com",
	})
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func (s *testServer) createCompany(t *testing.T) *entities.Company {
	t.Helper()
	company, synthesis, err := s.companies.CreateCompany(context.Background(), &models.CreateCompanyRequest{Name: "Initech"})
	if err != nil {
		t.Fatalf("failed to create company: %v", err)
	}
	if _, err := synthesis.Wait(); err != nil {
		t.Fatalf("failed to synthesize profits: %v", err)
	}
	return company
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode %q: %v", w.Body.String(), err)
	}
	return out
}

func wantStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("expected status %d, got %d: %s", status, w.Code, w.Body.String())
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	wantStatus(t, s.do(t, http.MethodGet, "/health", nil), http.StatusOK)
}

func TestErrorStatusMapping(t *testing.T) {
	s := newTestServer(t)
	user := s.createUser(t)
	notes := "/api/users/" + user.ID.String() + "/notes"

	for range service.MaxNotesPerUser {
		wantStatus(t, s.do(t, http.MethodPost, notes, gin.H{"text": "hello"}), http.StatusCreated)
	}

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{"quota", http.MethodPost, notes, gin.H{"text": "sixth"}, http.StatusUnprocessableEntity, "QUOTA_EXCEEDED"},
		{"unknown user detail", http.MethodGet, "/api/users/detail/" + uuid.NewString(), nil, http.StatusNotFound, "NOT_FOUND"},
		{"malformed id", http.MethodGet, "/api/users/detail/not-a-uuid", nil, http.StatusBadRequest, "BAD_REQUEST"},
		{"malformed body", http.MethodPost, "/api/users/" + user.ID.String() + "/bookmarks", "just a string", http.StatusBadRequest, "BAD_REQUEST"},
		{"bad url", http.MethodPost, "/api/users/" + user.ID.String() + "/bookmarks", gin.H{"url": "not a url"}, http.StatusUnprocessableEntity, "VALIDATION_FAILED"},
		{"missing url", http.MethodPost, "/api/users/" + user.ID.String() + "/bookmarks", gin.H{"rating": 2}, http.StatusUnprocessableEntity, "MISSING_REQUIRED_FIELD"},
		{"bad page", http.MethodGet, "/api/users?page=two", nil, http.StatusBadRequest, "BAD_REQUEST"},
		{"unknown company profits", http.MethodGet, "/api/companies/" + uuid.NewString() + "/companyProfits", nil, http.StatusNotFound, "NOT_FOUND"},
		{"update someone else's note", http.MethodPut, "/api/users/" + uuid.NewString() + "/notes/" + uuid.NewString(), gin.H{"text": "x"}, http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, tt.method, tt.path, tt.body)
			wantStatus(t, w, tt.status)
			body := decode[map[string]string](t, w)
			if body["error"] != tt.code || body["message"] == "" {
				t.Fatalf("unexpected error body %v", body)
			}
		})
	}
}

func TestVacationRangeOverHTTP(t *testing.T) {
	s := newTestServer(t)
	path := "/api/users/" + s.createUser(t).ID.String() + "/vacations"

	w := s.do(t, http.MethodPost, path, gin.H{"startDate": "2024-08-10T00:00:00Z", "endDate": "2024-08-01T00:00:00Z"})
	wantStatus(t, w, http.StatusUnprocessableEntity)
	if body := decode[map[string]string](t, w); body["error"] != "INVALID_RANGE" {
		t.Fatalf("expected INVALID_RANGE, got %v", body)
	}

	w = s.do(t, http.MethodPost, path, gin.H{"startDate": "2024-08-01T00:00:00Z", "endDate": "2024-08-01T00:00:00Z"})
	wantStatus(t, w, http.StatusCreated)

	w = s.do(t, http.MethodPost, path, gin.H{"startDate": "2024-05-01", "endDate": "2024-05-03"})
	wantStatus(t, w, http.StatusCreated)
	vacation := decode[entities.Vacation](t, w)
	if want := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC); !vacation.StartDate.Equal(want) {
		t.Fatalf("expected start %v, got %v", want, vacation.StartDate)
	}

	w = s.do(t, http.MethodPost, path, gin.H{"startDate": "May 1st", "endDate": "2024-05-03"})
	wantStatus(t, w, http.StatusBadRequest)
}

func TestFollowingCompanyDuplicateOverHTTP(t *testing.T) {
	s := newTestServer(t)
	path := "/api/users/" + s.createUser(t).ID.String() + "/followingCompanies"
	companyID := s.createCompany(t).ID.String()

	w := s.do(t, http.MethodPost, path, gin.H{"companyId": uuid.NewString()})
	wantStatus(t, w, http.StatusUnprocessableEntity)
	if body := decode[map[string]string](t, w); body["error"] != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED for an unknown company, got %v", body)
	}

	w = s.do(t, http.MethodPost, path, gin.H{"companyId": companyID})
	wantStatus(t, w, http.StatusCreated)
	first := decode[entities.FollowingCompany](t, w)

	w = s.do(t, http.MethodPost, path, gin.H{"companyId": companyID})
	wantStatus(t, w, http.StatusUnprocessableEntity)
	if body := decode[map[string]string](t, w); body["error"] != "DUPLICATE_RELATIONSHIP" {
		t.Fatalf("expected DUPLICATE_RELATIONSHIP, got %v", body)
	}

	w = s.do(t, http.MethodPut, path+"/"+first.ID.String(), gin.H{"rating": 1})
	wantStatus(t, w, http.StatusOK)
	if updated := decode[entities.FollowingCompany](t, w); updated.Rating != 1 {
		t.Fatalf("expected rating 1, got %d", updated.Rating)
	}
}

func TestNoteLifecycle(t *testing.T) {
	s := newTestServer(t)
	owner := s.createUser(t).ID.String()
	path := "/api/users/" + owner + "/notes"

	w := s.do(t, http.MethodPost, path, gin.H{"text": "buy milk"})
	wantStatus(t, w, http.StatusCreated)
	note := decode[entities.Note](t, w)
	if note.Archived {
		t.Fatal("expected archived to default to false")
	}

	w = s.do(t, http.MethodPut, path+"/"+note.ID.String(), gin.H{"archived": true})
	wantStatus(t, w, http.StatusOK)

	// Deleting through another owner is a no-op
	wantStatus(t, s.do(t, http.MethodDelete, "/api/users/"+uuid.NewString()+"/notes/"+note.ID.String(), nil), http.StatusNoContent)
	w = s.do(t, http.MethodGet, path, nil)
	wantStatus(t, w, http.StatusOK)
	if notes := decode[[]entities.Note](t, w); len(notes) != 1 || !notes[0].Archived {
		t.Fatalf("expected the archived note to survive, got %+v", notes)
	}

	wantStatus(t, s.do(t, http.MethodDelete, path+"/"+note.ID.String(), nil), http.StatusNoContent)
	w = s.do(t, http.MethodGet, path, nil)
	if notes := decode[[]entities.Note](t, w); len(notes) != 0 {
		t.Fatalf("expected no notes, got %d", len(notes))
	}
}

func TestUserRoutes(t *testing.T) {
	s := newTestServer(t)
	user := s.createUser(t)

	w := s.do(t, http.MethodGet, "/api/users", nil)
	wantStatus(t, w, http.StatusOK)
	page := decode[models.UserPage](t, w)
	if page.Count != 1 || len(page.Users) != 1 || page.Users[0].Bio != "" {
		t.Fatalf("unexpected user page %+v", page)
	}

	w = s.do(t, http.MethodGet, "/api/users/search/hamil", nil)
	wantStatus(t, w, http.StatusOK)
	if page := decode[models.UserPage](t, w); page.Count != 1 {
		t.Fatalf("expected one match, got %d", page.Count)
	}

	w = s.do(t, http.MethodGet, "/api/users/search/nobody/0", nil)
	wantStatus(t, w, http.StatusOK)
	if w.Body.String() != `{"count":0,"users":[]}` {
		t.Fatalf("unexpected empty search body %s", w.Body.String())
	}

	w = s.do(t, http.MethodGet, "/api/users/detail/"+user.ID.String(), nil)
	wantStatus(t, w, http.StatusOK)
	if detail := decode[entities.User](t, w); detail.Bio == "" {
		t.Fatal("expected detail to include bio")
	}

	w = s.do(t, http.MethodPut, "/api/users/"+user.ID.String(), gin.H{"title": "Director"})
	wantStatus(t, w, http.StatusOK)
	if updated := decode[map[string]any](t, w); updated["title"] != "Director" || updated["fullName"] != "Margaret Hamilton" {
		t.Fatalf("unexpected update body %v", updated)
	}

	w = s.do(t, http.MethodPost, "/api/users", gin.H{"firstName": "No", "lastName": "Email"})
	wantStatus(t, w, http.StatusBadRequest)

	wantStatus(t, s.do(t, http.MethodGet, "/api/users/random", nil), http.StatusOK)
}

func TestCompanyRoutes(t *testing.T) {
	s := newTestServer(t)

	wantStatus(t, s.do(t, http.MethodGet, "/api/companies/random", nil), http.StatusNotFound)

	company, synthesis, err := s.companies.CreateCompany(context.Background(), &models.CreateCompanyRequest{Name: "Wayne Enterprises"})
	if err != nil {
		t.Fatalf("failed to create company: %v", err)
	}
	profits, err := synthesis.Wait()
	if err != nil {
		t.Fatalf("profit synthesis failed: %v", err)
	}

	w := s.do(t, http.MethodGet, "/api/companies/"+company.ID.String()+"/companyProfits", nil)
	wantStatus(t, w, http.StatusOK)
	if got := decode[[]entities.CompanyProfit](t, w); len(got) != len(profits) {
		t.Fatalf("expected %d profits, got %d", len(profits), len(got))
	}

	w = s.do(t, http.MethodPost, "/api/companies", gin.H{"name": "Cyberdyne"})
	wantStatus(t, w, http.StatusCreated)
	wantStatus(t, s.do(t, http.MethodPost, "/api/companies", gin.H{"phone": "555"}), http.StatusBadRequest)

	w = s.do(t, http.MethodGet, "/api/companies", nil)
	wantStatus(t, w, http.StatusOK)
	if got := decode[[]entities.Company](t, w); len(got) != 2 {
		t.Fatalf("expected 2 companies, got %d", len(got))
	}

	w = s.do(t, http.MethodGet, "/api/companies/"+company.ID.String()+"/users", nil)
	wantStatus(t, w, http.StatusOK)
	if got := decode[[]entities.User](t, w); len(got) != 0 {
		t.Fatalf("expected no users, got %d", len(got))
	}

	wantStatus(t, s.do(t, http.MethodGet, "/api/products", nil), http.StatusOK)
	wantStatus(t, s.do(t, http.MethodGet, "/api/offerings", nil), http.StatusOK)
}

func TestBookmarkQRCode(t *testing.T) {
	s := newTestServer(t)
	owner := s.createUser(t).ID.String()
	path := "/api/users/" + owner + "/bookmarks"

	w := s.do(t, http.MethodPost, path, gin.H{"url": "https://example.com"})
	wantStatus(t, w, http.StatusCreated)
	bookmark := decode[entities.Bookmark](t, w)
	if bookmark.Rating != service.DefaultBookmarkRating {
		t.Fatalf("expected default rating, got %d", bookmark.Rating)
	}

	w = s.do(t, http.MethodGet, path+"/"+bookmark.ID.String()+"/qrcode", nil)
	wantStatus(t, w, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("expected image/png, got %q", ct)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")) {
		t.Fatal("expected a PNG body")
	}

	wantStatus(t, s.do(t, http.MethodGet, "/api/users/"+uuid.NewString()+"/bookmarks/"+bookmark.ID.String()+"/qrcode", nil), http.StatusNotFound)
}
