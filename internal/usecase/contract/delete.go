package contract

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/autoline-kr/dealer-backoffice/internal/audit"
	domain "github.com/autoline-kr/dealer-backoffice/internal/domain/contract"
	"github.com/autoline-kr/dealer-backoffice/internal/dto"
	"github.com/autoline-kr/dealer-backoffice/internal/httperr"
)

type DeleteContract struct {
	uow   domain.UnitOfWork
	audit AuditTrail
	log   zerolog.Logger
}

func NewDeleteContract(uow domain.UnitOfWork, auditTrail AuditTrail, log zerolog.Logger) *DeleteContract {
	return &DeleteContract{
		uow:   uow,
		audit: auditTrail,
		log:   log,
	}
}

func (uc *DeleteContract) Execute(
	ctx context.Context,
	contractID uint,
	requestUserID uint,
) (*dto.DeleteContractResponse, error) {

	existing, err := uc.uow.FindContractByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, httperr.ErrNotFound("contract", msgContractNotFound)
	}
	if err := domain.EnsureOwner(existing, requestUserID, msgForbiddenDelete); err != nil {
		return nil, err
	}

	// Car goes back to the lot, then the aggregate is removed. Both in
	// one transaction so the car never points at a deleted contract.
	err = uc.uow.InTx(ctx, func(r domain.Repository) error {
		if err := r.UpdateCarStatus(ctx, existing.CarID, domain.CarStatusPossession); err != nil {
			return err
		}
		return r.DeleteContract(ctx, contractID)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		CompanyID: existing.CompanyID,
		UserID:    &requestUserID,
		Action:    "contract_deleted",
		Entity:    "contract",
		EntityID:  &contractID,
	})

	return &dto.DeleteContractResponse{Message: "계약 삭제 성공"}, nil
}
