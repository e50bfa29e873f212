package contract

import "testing"

func TestCarStatusFor(t *testing.T) {
	cases := []struct {
		status Status
		want   CarStatus
	}{
		{StatusCarInspection, CarStatusProceeding},
		{StatusPriceNegotiation, CarStatusProceeding},
		{StatusContractDraft, CarStatusProceeding},
		{StatusContractSuccessful, CarStatusCompleted},
		{StatusContractFailed, CarStatusPossession},
	}

	for _, tc := range cases {
		got, err := CarStatusFor(tc.status)
		if err != nil {
			t.Fatalf("CarStatusFor(%s): unexpected error: %v", tc.status, err)
		}
		if got != tc.want {
			t.Errorf("CarStatusFor(%s) = %s, want %s", tc.status, got, tc.want)
		}
	}
}

func TestCarStatusForUnknownStatus(t *testing.T) {
	if _, err := CarStatusFor(Status("archived")); err == nil {
		t.Fatal("expected error for unknown contract status, got nil")
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range Statuses() {
		got, err := ParseStatus(string(s))
		if err != nil {
			t.Fatalf("ParseStatus(%s): unexpected error: %v", s, err)
		}
		if got != s {
			t.Errorf("ParseStatus(%s) = %s", s, got)
		}
	}

	if _, err := ParseStatus("pending"); err == nil {
		t.Error("expected error for unknown status string, got nil")
	}
	if _, err := ParseStatus(""); err == nil {
		t.Error("expected error for empty status string, got nil")
	}
}

func TestInitialStatus(t *testing.T) {
	if got := InitialStatus(); got != StatusCarInspection {
		t.Errorf("InitialStatus() = %s, want %s", got, StatusCarInspection)
	}
}

func TestTerminal(t *testing.T) {
	if !StatusContractSuccessful.Terminal() {
		t.Error("contractSuccessful should be terminal")
	}
	if !StatusContractFailed.Terminal() {
		t.Error("contractFailed should be terminal")
	}
	if StatusCarInspection.Terminal() {
		t.Error("carInspection should not be terminal")
	}
	if StatusContractDraft.Terminal() {
		t.Error("contractDraft should not be terminal")
	}
}
