package billing

import (
	"fmt"
	"strings"
	"time"
)

// DateRange is an inclusive period with optional ends.
type DateRange struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// NormalizeRange pins start to 00:00:00.000 UTC and end to 23:59:59.999 UTC of
// their calendar days.
func NormalizeRange(start, end *time.Time) DateRange {
	var r DateRange
	if start != nil {
		y, m, d := start.Date()
		s := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		r.Start = &s
	}
	if end != nil {
		y, m, d := end.Date()
		e := time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), time.UTC)
		r.End = &e
	}
	return r
}

// Contains reports whether t lies inside the range. A nil t is only inside an
// unbounded range.
func (r DateRange) Contains(t *time.Time) bool {
	if r.Start == nil && r.End == nil {
		return true
	}
	if t == nil {
		return false
	}
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}

// Validate rejects ranges whose start falls after their end.
func (r DateRange) Validate() error {
	if r.Start != nil && r.End != nil && r.Start.After(*r.End) {
		return fmt.Errorf("start date %s is after end date %s",
			r.Start.Format(DateLayout), r.End.Format(DateLayout))
	}
	return nil
}

const DateLayout = "2006-01-02"

// ParseDate accepts a calendar date (2006-01-02) or an RFC 3339 timestamp.
func ParseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(DateLayout, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("invalid date format %q, expected YYYY-MM-DD", value)
	}
	return &t, nil
}
