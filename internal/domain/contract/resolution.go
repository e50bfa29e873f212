package contract

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/autoline-kr/dealer-backoffice/internal/httperr"
)

// ResolutionDate is the one place date-shape ambiguity is resolved.
// Accepted inputs: null (clears the date), an ISO-8601 date-time string,
// a bare YYYY-MM-DD string (midnight UTC), or a unix-epoch-milliseconds
// number. Anything else is INVALID_DATE_FORMAT. Presence of the field is
// tracked apart from null so "not supplied" and "clear it" stay distinct.
type ResolutionDate struct {
	Set   bool
	Value *time.Time
}

var resolutionLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999",
	"2006-01-02T15:04:05",
}

func (r *ResolutionDate) UnmarshalJSON(b []byte) error {
	r.Set = true
	r.Value = nil

	if string(b) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		if len(s) == 10 {
			t, err := time.Parse("2006-01-02", s)
			if err != nil {
				return invalidDateFormat()
			}
			t = t.UTC()
			r.Value = &t
			return nil
		}
		for _, layout := range resolutionLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				t = t.UTC()
				r.Value = &t
				return nil
			}
		}
		return invalidDateFormat()
	}

	var ms float64
	if err := json.Unmarshal(b, &ms); err == nil {
		t := time.UnixMilli(int64(ms)).UTC()
		r.Value = &t
		return nil
	}

	return invalidDateFormat()
}

func invalidDateFormat() error {
	return httperr.ErrValidation(
		"INVALID_DATE_FORMAT",
		"유효하지 않은 날짜 형식입니다",
	)
}
