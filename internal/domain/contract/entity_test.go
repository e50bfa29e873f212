package contract

import (
	"errors"
	"testing"
	"time"

	"github.com/autoline-kr/dealer-backoffice/internal/httperr"
	"github.com/autoline-kr/dealer-backoffice/internal/models"
)

func TestBuildContractName(t *testing.T) {
	got := BuildContractName("K5", "김철수")
	want := "K5 - 김철수 고객님"
	if got != want {
		t.Errorf("BuildContractName = %q, want %q", got, want)
	}
}

func TestEnsureOwner(t *testing.T) {
	c := &models.Contract{UserID: 7}

	if err := EnsureOwner(c, 7, "담당자만 수정이 가능합니다"); err != nil {
		t.Errorf("owner should pass, got %v", err)
	}

	err := EnsureOwner(c, 8, "담당자만 수정이 가능합니다")
	var fb httperr.ForbiddenError
	if !errors.As(err, &fb) {
		t.Fatalf("non-owner should get ForbiddenError, got %v", err)
	}
	if fb.Message != "담당자만 수정이 가능합니다" {
		t.Errorf("unexpected message %q", fb.Message)
	}
}

func TestValidateResolution(t *testing.T) {
	now := time.Now()

	if err := ValidateResolution(StatusContractSuccessful, &now); err != nil {
		t.Errorf("successful with date should pass, got %v", err)
	}
	if err := ValidateResolution(StatusContractFailed, nil); err != nil {
		t.Errorf("failed without date should pass, got %v", err)
	}
	if err := ValidateResolution(StatusCarInspection, nil); err != nil {
		t.Errorf("non-terminal without date should pass, got %v", err)
	}

	err := ValidateResolution(StatusContractSuccessful, nil)
	var ve httperr.ValidationError
	if !errors.As(err, &ve) || ve.Code != "RESOLUTION_DATE_REQUIRED" {
		t.Fatalf("successful without date should fail with RESOLUTION_DATE_REQUIRED, got %v", err)
	}
}

func TestParseMeetingDate(t *testing.T) {
	got, err := ParseMeetingDate("2026-04-01T10:00:00+09:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 4, 1, 1, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	_, err = ParseMeetingDate("tomorrow")
	var ve httperr.ValidationError
	if !errors.As(err, &ve) || ve.Code != "INVALID_MEETING_DATE" {
		t.Errorf("expected INVALID_MEETING_DATE, got %v", err)
	}
}

func TestParseAlarmTime(t *testing.T) {
	if _, err := ParseAlarmTime("2026-04-01T09:00:00Z"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := ParseAlarmTime("09:00")
	var ve httperr.ValidationError
	if !errors.As(err, &ve) || ve.Code != "INVALID_ALARM_TIME" {
		t.Errorf("expected INVALID_ALARM_TIME, got %v", err)
	}
}
