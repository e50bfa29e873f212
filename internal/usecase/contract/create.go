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

type CreateContractInput struct {
	CarID      uint
	CustomerID uint
	Meetings   []domain.MeetingInput
}

// ======================================================
// USE CASE
// ======================================================

type CreateContract struct {
	uow   domain.UnitOfWork
	audit AuditTrail
	log   zerolog.Logger
}

func NewCreateContract(uow domain.UnitOfWork, auditTrail AuditTrail, log zerolog.Logger) *CreateContract {
	return &CreateContract{
		uow:   uow,
		audit: auditTrail,
		log:   log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateContract) Execute(
	ctx context.Context,
	in CreateContractInput,
	requestUserID uint,
) (*dto.ContractDetailResponse, error) {

	// 1. Car must exist; it decides the company scope and the price.
	car, err := uc.uow.FindCarByID(ctx, in.CarID)
	if err != nil {
		return nil, err
	}
	if car == nil {
		return nil, httperr.ErrNotFound("car", msgCarNotFound)
	}

	// 2. Customer must exist inside the car's company.
	customer, err := uc.uow.FindCustomerByID(ctx, in.CustomerID, car.CompanyID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, httperr.ErrNotFound("customer", msgCustomerNotFound)
	}

	contractName := domain.BuildContractName(car.Model.Model, customer.Name)

	initialStatus := domain.InitialStatus()
	initialCarStatus, err := domain.CarStatusFor(initialStatus)
	if err != nil {
		return nil, err
	}

	// 3. Insert contract, car status, meetings and re-read in one
	//    transaction. The price is copied from the car's listed price
	//    at creation time and never re-derived.
	var finalContract *models.Contract
	err = uc.uow.InTx(ctx, func(r domain.Repository) error {
		contractID, err := r.CreateContract(ctx, domain.CreateData{
			CompanyID:     car.CompanyID,
			UserID:        requestUserID,
			CarID:         in.CarID,
			CustomerID:    in.CustomerID,
			ContractPrice: car.Price,
			ContractName:  contractName,
			Status:        initialStatus,
		})
		if err != nil {
			return err
		}

		if err := r.UpdateCarStatus(ctx, in.CarID, initialCarStatus); err != nil {
			return err
		}

		if len(in.Meetings) > 0 {
			if err := r.ReplaceMeetings(ctx, contractID, in.Meetings); err != nil {
				return err
			}
		}

		created, err := r.FindContractByID(ctx, contractID)
		if err != nil {
			return err
		}
		if created == nil {
			uc.log.Error().Uint("contract_id", contractID).Msg("re-read after create returned nothing")
			return httperr.ErrTransactionConsistency
		}

		finalContract = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		CompanyID: car.CompanyID,
		UserID:    &requestUserID,
		Action:    "contract_created",
		Entity:    "contract",
		EntityID:  &finalContract.ID,
	})

	response := dto.ToContractDetail(finalContract)
	return &response, nil
}
