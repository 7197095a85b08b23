package ingest

import (
	"errors"
	"testing"
	"time"
)

func TestValidMonth(t *testing.T) {
	cases := map[string]bool{
		"2024-05":    true,
		"1999-12":    true,
		"2024-13":    false,
		"2024-00":    false,
		"2024-5":     false,
		"24-05":      false,
		"2024-05-01": false,
		"":           false,
	}
	for in, want := range cases {
		if got := ValidMonth(in); got != want {
			t.Errorf("ValidMonth(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestMonthKey(t *testing.T) {
	ts := time.Date(2024, time.May, 17, 10, 0, 0, 0, time.UTC)
	if got := MonthKey(ts); got != "2024-05" {
		t.Errorf("Expected 2024-05, got %s", got)
	}
}

func TestDocValidate(t *testing.T) {
	ok := Doc{Month: "2024-05"}
	if err := ok.Validate(); err != nil {
		t.Errorf("Empty body with valid month should pass, got %v", err)
	}

	bad := Doc{Month: "May 2024", Body: "text"}
	err := bad.Validate()
	if !errors.Is(err, ErrInvalidMonth) {
		t.Errorf("Expected ErrInvalidMonth, got %v", err)
	}
}
