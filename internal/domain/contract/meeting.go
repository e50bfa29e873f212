package contract

import (
	"fmt"
	"time"

	"github.com/autoline-kr/dealer-backoffice/internal/httperr"
)

// ===============================
// Meeting / Alarm Input
// ===============================

// MeetingInput is a fully parsed meeting with its alarm timestamps. The
// repository replaces a contract's meetings with these wholesale.
type MeetingInput struct {
	Date   time.Time
	Alarms []time.Time
}

// ParseMeetingDate parses a meeting date from the API payload.
func ParseMeetingDate(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, httperr.ErrValidation(
			"INVALID_MEETING_DATE",
			fmt.Sprintf("meeting date must be an ISO 8601 date-time: %q", raw),
		)
	}
	return t.UTC(), nil
}

// ParseAlarmTime parses an alarm timestamp. A malformed value is a hard
// failure naming the value; it aborts the whole create/update.
func ParseAlarmTime(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, httperr.ErrValidation(
			"INVALID_ALARM_TIME",
			fmt.Sprintf("alarm time must be an ISO 8601 date-time: %q", raw),
		)
	}
	return t.UTC(), nil
}
