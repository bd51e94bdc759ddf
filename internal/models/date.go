package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Date is a request timestamp that also accepts a bare calendar date,
// which is read as midnight UTC.
type Date struct {
	time.Time
}

var dateLayouts = []string{time.RFC3339Nano, time.DateOnly}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("date %q must be YYYY-MM-DD or RFC 3339", raw)
}
