package ingest

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// MonthLayout is the time layout of a month key.
const MonthLayout = "2006-01"

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// ErrInvalidMonth is returned for month keys that are not "YYYY-MM".
var ErrInvalidMonth = errors.New("invalid month key")

// Doc is one dated document as handed over by the corpus walker.
type Doc struct {
	Path        string
	Month       string // "YYYY-MM"
	PublishedAt time.Time
	Body        string
}

// MonthKey formats t as a month key.
func MonthKey(t time.Time) string {
	return t.Format(MonthLayout)
}

// ValidMonth reports whether s is a well-formed month key.
func ValidMonth(s string) bool {
	if !monthPattern.MatchString(s) {
		return false
	}
	_, err := time.Parse(MonthLayout, s)
	return err == nil
}

// Validate checks the month key. An empty body is allowed.
func (d *Doc) Validate() error {
	if !ValidMonth(d.Month) {
		return fmt.Errorf("%w: %q", ErrInvalidMonth, d.Month)
	}
	return nil
}
