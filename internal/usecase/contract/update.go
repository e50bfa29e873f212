package contract

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/autoline-kr/dealer-backoffice/internal/audit"
	domain "github.com/autoline-kr/dealer-backoffice/internal/domain/contract"
	"github.com/autoline-kr/dealer-backoffice/internal/dto"
	"github.com/autoline-kr/dealer-backoffice/internal/httperr"
	"github.com/autoline-kr/dealer-backoffice/internal/models"
	"github.com/autoline-kr/dealer-backoffice/internal/notify"
)

// ======================================================
// INPUT
// ======================================================

// UpdateContractInput is the full update variant. Pointer fields are
// "not supplied" when nil. Meetings distinguishes nil (untouched) from
// an empty slice (delete them all); documents behave the same way.
type UpdateContractInput struct {
	Status         *domain.Status
	ResolutionDate domain.ResolutionDate
	ContractPrice  *int
	UserID         *uint
	CustomerID     *uint
	CarID          *uint
	Meetings       *[]domain.MeetingInput
	DocumentIDs    *[]uint
}

// ======================================================
// USE CASE
// ======================================================

type UpdateContract struct {
	uow    domain.UnitOfWork
	audit  AuditTrail
	notify Notifier
	log    zerolog.Logger
}

func NewUpdateContract(uow domain.UnitOfWork, auditTrail AuditTrail, notifier Notifier, log zerolog.Logger) *UpdateContract {
	return &UpdateContract{
		uow:    uow,
		audit:  auditTrail,
		notify: notifier,
		log:    log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateContract) Execute(
	ctx context.Context,
	contractID uint,
	in UpdateContractInput,
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

	// Referenced entities are validated before the transaction opens so
	// the transaction itself only performs writes expected to succeed.
	car, customer, err := uc.validateReferences(ctx, in, existing.CompanyID)
	if err != nil {
		return nil, err
	}

	patch := domain.Patch{
		Status:            in.Status,
		ResolutionDateSet: in.ResolutionDate.Set,
		ResolutionDate:    in.ResolutionDate.Value,
		ContractPrice:     in.ContractPrice,
		UserID:            in.UserID,
		CustomerID:        in.CustomerID,
		CarID:             in.CarID,
	}

	// Name is re-derived only when car and customer both change.
	if in.CarID != nil && in.CustomerID != nil {
		name := domain.BuildContractName(car.Model.Model, customer.Name)
		patch.ContractName = &name
	}

	if err := uc.validateFinalState(existing, in); err != nil {
		return nil, err
	}

	currentCarID := existing.CarID
	if in.CarID != nil {
		currentCarID = *in.CarID
	}

	var newCarStatus domain.CarStatus
	if in.Status != nil {
		newCarStatus, err = domain.CarStatusFor(*in.Status)
		if err != nil {
			return nil, err
		}
	}

	attachedDocs, err := uc.resolveDocuments(ctx, in.DocumentIDs)
	if err != nil {
		return nil, err
	}

	var finalContract *models.Contract
	err = uc.uow.InTx(ctx, func(r domain.Repository) error {
		if err := r.UpdateContract(ctx, contractID, patch); err != nil {
			return err
		}

		if in.Status != nil {
			if err := r.UpdateCarStatus(ctx, currentCarID, newCarStatus); err != nil {
				return err
			}
		}

		// Meetings are replaced wholesale, empty array included.
		if in.Meetings != nil {
			if err := r.ReplaceMeetings(ctx, contractID, *in.Meetings); err != nil {
				return err
			}
		}

		if in.DocumentIDs != nil {
			if err := r.ReplaceDocumentLinks(ctx, contractID, *in.DocumentIDs); err != nil {
				return err
			}
		}

		updated, err := r.FindContractByID(ctx, contractID)
		if err != nil {
			return err
		}
		if updated == nil {
			uc.log.Error().Uint("contract_id", contractID).Msg("re-read after update returned nothing")
			return httperr.ErrTransactionConsistency
		}

		finalContract = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Best effort, after commit. A failed send never rolls anything back.
	if len(attachedDocs) > 0 && existing.Customer.Email != "" {
		attachments := make([]notify.Attachment, 0, len(attachedDocs))
		for _, doc := range attachedDocs {
			attachments = append(attachments, notify.Attachment{
				FileName: fmt.Sprintf("Document_%d_%s", doc.ID, doc.FileName),
				FileURL:  doc.FileURL,
			})
		}
		uc.notify.Dispatch(notify.Email{
			To:          existing.Customer.Email,
			Subject:     "계약서 갱신",
			Body:        "계약서가 갱신되었습니다. 첨부된 문서를 확인해주세요.",
			Attachments: attachments,
		})
	}

	uc.audit.Dispatch(audit.Event{
		CompanyID: existing.CompanyID,
		UserID:    &requestUserID,
		Action:    "contract_updated",
		Entity:    "contract",
		EntityID:  &contractID,
	})

	response := dto.ToContractDetail(finalContract)
	return &response, nil
}

// validateReferences checks every referenced id present in the payload
// and returns the loaded car/customer for name derivation.
func (uc *UpdateContract) validateReferences(
	ctx context.Context,
	in UpdateContractInput,
	companyID uint,
) (*models.Car, *models.Customer, error) {

	if in.UserID != nil {
		user, err := uc.uow.FindUserByID(ctx, *in.UserID)
		if err != nil {
			return nil, nil, err
		}
		if user == nil {
			return nil, nil, httperr.ErrNotFound("user", msgUserNotFound)
		}
	}

	var car *models.Car
	if in.CarID != nil {
		var err error
		car, err = uc.uow.FindCarByID(ctx, *in.CarID)
		if err != nil {
			return nil, nil, err
		}
		if car == nil {
			return nil, nil, httperr.ErrNotFound("car", msgCarNotFound)
		}
	}

	var customer *models.Customer
	if in.CustomerID != nil {
		var err error
		customer, err = uc.uow.FindCustomerByID(ctx, *in.CustomerID, companyID)
		if err != nil {
			return nil, nil, err
		}
		if customer == nil {
			return nil, nil, httperr.ErrNotFound("customer", msgCustomerNotFound)
		}
	}

	return car, customer, nil
}

// validateFinalState enforces the successful-status/resolution-date
// invariant against the state the contract will end up in.
func (uc *UpdateContract) validateFinalState(existing *models.Contract, in UpdateContractInput) error {
	finalStatus := domain.Status(existing.Status)
	if in.Status != nil {
		finalStatus = *in.Status
	}

	finalResolution := existing.ResolutionDate
	if in.ResolutionDate.Set {
		finalResolution = in.ResolutionDate.Value
	}

	return domain.ValidateResolution(finalStatus, finalResolution)
}

// resolveDocuments loads each referenced document; one missing id fails
// the whole update before anything is written.
func (uc *UpdateContract) resolveDocuments(
	ctx context.Context,
	documentIDs *[]uint,
) ([]models.ContractDocument, error) {

	if documentIDs == nil || len(*documentIDs) == 0 {
		return nil, nil
	}

	docs := make([]models.ContractDocument, 0, len(*documentIDs))
	for _, id := range *documentIDs {
		doc, err := uc.uow.FindDocumentByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if doc == nil {
			return nil, httperr.ErrNotFound(
				"document",
				fmt.Sprintf("계약 문서를 찾을 수 없습니다 (ID: %d)", id),
			)
		}
		docs = append(docs, *doc)
	}
	return docs, nil
}
