package contract

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/autoline-kr/dealer-backoffice/internal/audit"
	domain "github.com/autoline-kr/dealer-backoffice/internal/domain/contract"
	"github.com/autoline-kr/dealer-backoffice/internal/dto"
	"github.com/autoline-kr/dealer-backoffice/internal/httperr"
	"github.com/autoline-kr/dealer-backoffice/internal/models"
)

// ======================================================
// INPUT
// ======================================================

// StatusUpdateInput is the narrow update variant: status plus an
// optional resolution date and nothing else. Meetings and every other
// contract field stay untouched.
type StatusUpdateInput struct {
	Status         domain.Status
	ResolutionDate domain.ResolutionDate
}

// ======================================================
// USE CASE
// ======================================================

type UpdateContractStatus struct {
	uow   domain.UnitOfWork
	audit AuditTrail
	log   zerolog.Logger
}

func NewUpdateContractStatus(uow domain.UnitOfWork, auditTrail AuditTrail, log zerolog.Logger) *UpdateContractStatus {
	return &UpdateContractStatus{
		uow:   uow,
		audit: auditTrail,
		log:   log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateContractStatus) Execute(
	ctx context.Context,
	contractID uint,
	in StatusUpdateInput,
	requestUserID uint,
) (*dto.ContractDetailResponse, error) {

	existing, err := uc.uow.FindContractByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, httperr.ErrNotFound("contract", msgContractNotFound)
	}
	if err := domain.EnsureOwner(existing, requestUserID, msgForbiddenUpdate); err != nil {
		return nil, err
	}

	// The successful terminal state needs a resolution date in the
	// final state, whether it was set earlier or arrives in this call.
	finalResolution := existing.ResolutionDate
	if in.ResolutionDate.Set {
		finalResolution = in.ResolutionDate.Value
	}
	if err := domain.ValidateResolution(in.Status, finalResolution); err != nil {
		return nil, err
	}

	newCarStatus, err := domain.CarStatusFor(in.Status)
	if err != nil {
		return nil, err
	}

	status := in.Status
	var finalContract *models.Contract
	err = uc.uow.InTx(ctx, func(r domain.Repository) error {
		patch := domain.Patch{
			Status:            &status,
			ResolutionDateSet: in.ResolutionDate.Set,
			ResolutionDate:    in.ResolutionDate.Value,
		}
		if err := r.UpdateContract(ctx, contractID, patch); err != nil {
			return err
		}

		if err := r.UpdateCarStatus(ctx, existing.CarID, newCarStatus); err != nil {
			return err
		}

		updated, err := r.FindContractByID(ctx, contractID)
		if err != nil {
			return err
		}
		if updated == nil {
			uc.log.Error().Uint("contract_id", contractID).Msg("re-read after status update returned nothing")
			return httperr.ErrTransactionConsistency
		}

		finalContract = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		CompanyID: existing.CompanyID,
		UserID:    &requestUserID,
		Action:    "contract_status_updated",
		Entity:    "contract",
		EntityID:  &contractID,
		Metadata:  map[string]string{"status": string(in.Status)},
	})

	response := dto.ToContractDetail(finalContract)
	return &response, nil
}
