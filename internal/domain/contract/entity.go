package contract

import (
	"fmt"
	"time"

	"github.com/autoline-kr/dealer-backoffice/internal/httperr"
	"github.com/autoline-kr/dealer-backoffice/internal/models"
)

// ===============================
// Domain Rules
// ===============================

// BuildContractName derives the display name from the car model and the
// customer name. Re-derived whenever car and customer both change.
func BuildContractName(carModel, customerName string) string {
	return fmt.Sprintf("%s - %s 고객님", carModel, customerName)
}

// EnsureOwner enforces that only the assigned salesperson mutates or
// deletes a contract.
func EnsureOwner(c *models.Contract, requestUserID uint, message string) error {
	if c.UserID != requestUserID {
		return httperr.ErrForbidden(message)
	}
	return nil
}

// ValidateResolution rejects the successful terminal state unless a
// resolution date is present in the final state.
func ValidateResolution(status Status, resolutionDate *time.Time) error {
	if status == StatusContractSuccessful && resolutionDate == nil {
		return httperr.ErrValidation(
			"RESOLUTION_DATE_REQUIRED",
			"계약 성공 상태로 변경 시에는 resolutionDate가 필수입니다",
		)
	}
	return nil
}
