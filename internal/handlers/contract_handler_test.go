package handlers

import (
	"encoding/json"
	"testing"
)

func TestUpdateContractRequestIsStatusOnly(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		want    bool
	}{
		{
			name:    "status alone",
			payload: `{"status": "contractFailed"}`,
			want:    true,
		},
		{
			name:    "status with resolution date",
			payload: `{"status": "contractSuccessful", "resolutionDate": "2026-05-01"}`,
			want:    true,
		},
		{
			name:    "status with null resolution date",
			payload: `{"status": "contractFailed", "resolutionDate": null}`,
			want:    true,
		},
		{
			name:    "status with price",
			payload: `{"status": "contractDraft", "contractPrice": 1000}`,
			want:    false,
		},
		{
			name:    "status with empty meetings array",
			payload: `{"status": "contractDraft", "meetings": []}`,
			want:    false,
		},
		{
			name:    "status with documents",
			payload: `{"status": "contractDraft", "contractDocuments": [{"id": 1}]}`,
			want:    false,
		},
		{
			name:    "no status at all",
			payload: `{"contractPrice": 1000}`,
			want:    false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var req UpdateContractRequest
			if err := json.Unmarshal([]byte(tc.payload), &req); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got := req.isStatusOnly(); got != tc.want {
				t.Errorf("isStatusOnly() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseMeetings(t *testing.T) {
	meetings, err := parseMeetings([]MeetingRequest{
		{
			Date:   "2026-04-01T10:00:00Z",
			Alarms: []string{"2026-04-01T09:00:00Z", "2026-04-01T09:30:00Z"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(meetings) != 1 || len(meetings[0].Alarms) != 2 {
		t.Errorf("meetings = %+v", meetings)
	}

	if _, err := parseMeetings([]MeetingRequest{{Date: "next tuesday"}}); err == nil {
		t.Error("expected error for malformed meeting date")
	}

	if _, err := parseMeetings([]MeetingRequest{
		{Date: "2026-04-01T10:00:00Z", Alarms: []string{"soon"}},
	}); err == nil {
		t.Error("expected error for malformed alarm time")
	}
}
