package contract

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/autoline-kr/dealer-backoffice/internal/httperr"
)

func TestDeleteContract(t *testing.T) {
	uow := newMockUnitOfWork()
	seedContract(uow)
	uow.cars[5].Status = "contractProceeding"
	trail := &mockAuditTrail{}
	uc := NewDeleteContract(uow, trail, zerolog.Nop())

	resp, err := uc.Execute(context.Background(), 10, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Message != "계약 삭제 성공" {
		t.Errorf("message = %q", resp.Message)
	}
	if uow.cars[5].Status != "possession" {
		t.Errorf("car must go back to possession, got %q", uow.cars[5].Status)
	}
	if len(uow.deletedIDs) != 1 || uow.deletedIDs[0] != 10 {
		t.Errorf("deleted ids = %v", uow.deletedIDs)
	}
	if _, ok := uow.contracts[10]; ok {
		t.Error("contract should be gone")
	}
	if len(trail.events) != 1 || trail.events[0].Action != "contract_deleted" {
		t.Errorf("audit events = %+v", trail.events)
	}
}

func TestDeleteContractByNonOwner(t *testing.T) {
	uow := newMockUnitOfWork()
	seedContract(uow)
	uow.cars[5].Status = "contractProceeding"
	uc := NewDeleteContract(uow, &mockAuditTrail{}, zerolog.Nop())

	_, err := uc.Execute(context.Background(), 10, 8)

	var fb httperr.ForbiddenError
	if !errors.As(err, &fb) {
		t.Fatalf("expected ForbiddenError, got %v", err)
	}
	if _, ok := uow.contracts[10]; !ok {
		t.Error("contract must survive a forbidden delete")
	}
	if uow.cars[5].Status != "contractProceeding" {
		t.Error("car status must stay unchanged")
	}
}

func TestDeleteContractNotFound(t *testing.T) {
	uow := newMockUnitOfWork()
	seedMock(uow)
	uc := NewDeleteContract(uow, &mockAuditTrail{}, zerolog.Nop())

	_, err := uc.Execute(context.Background(), 404, 7)

	var nf httperr.NotFoundError
	if !errors.As(err, &nf) || nf.Entity != "contract" {
		t.Fatalf("expected contract NotFoundError, got %v", err)
	}
}

func TestDeleteContractChecksOwnerBeforeWrites(t *testing.T) {
	uow := newMockUnitOfWork()
	seedContract(uow)
	uc := NewDeleteContract(uow, &mockAuditTrail{}, zerolog.Nop())

	_, _ = uc.Execute(context.Background(), 10, 99)

	if len(uow.carStatusCalls) != 0 {
		t.Error("forbidden delete must not touch the car")
	}
}
