package contract

import (
	"context"
	"time"

	"github.com/autoline-kr/dealer-backoffice/internal/models"
)

// ===============================
// Search
// ===============================

type SearchField string

const (
	SearchByCustomerName SearchField = "customerName"
	SearchByUserName     SearchField = "userName"
)

// ===============================
// Write shapes
// ===============================

type CreateData struct {
	CompanyID     uint
	UserID        uint
	CarID         uint
	CustomerID    uint
	ContractPrice int
	ContractName  string
	Status        Status
}

// Patch carries only the fields the caller supplied. Relation ids are
// connected through the belongs-to associations, never written as loose
// foreign keys next to stale preloads.
type Patch struct {
	Status       *Status
	ContractName *string

	// ResolutionDateSet distinguishes "leave untouched" from "set to
	// ResolutionDate", which may itself be nil (clear).
	ResolutionDateSet bool
	ResolutionDate    *time.Time

	ContractPrice *int
	UserID        *uint
	CustomerID    *uint
	CarID         *uint
}

func (p Patch) Empty() bool {
	return p.Status == nil && p.ContractName == nil && !p.ResolutionDateSet &&
		p.ContractPrice == nil && p.UserID == nil && p.CustomerID == nil && p.CarID == nil
}

// ===============================
// Repository / Unit of Work
// ===============================

// Repository is the persistence surface of the contract workflow. A
// UnitOfWork hands out a transaction-scoped Repository so every call
// inside InTx shares one atomic transaction; calls on the UnitOfWork
// itself run on the root connection.
type Repository interface {
	// Contract aggregate
	CreateContract(ctx context.Context, data CreateData) (uint, error)
	FindContractByID(ctx context.Context, id uint) (*models.Contract, error)
	UpdateContract(ctx context.Context, id uint, patch Patch) error
	DeleteContract(ctx context.Context, id uint) error
	ListContractsByCompany(ctx context.Context, companyID uint, searchBy SearchField, keyword string) ([]models.Contract, error)

	// Meetings and alarms, owned wholesale by the contract
	ReplaceMeetings(ctx context.Context, contractID uint, meetings []MeetingInput) error

	// Collaborator lookups / mutations
	FindCarByID(ctx context.Context, id uint) (*models.Car, error)
	UpdateCarStatus(ctx context.Context, carID uint, status CarStatus) error
	FindCustomerByID(ctx context.Context, id, companyID uint) (*models.Customer, error)
	FindUserByID(ctx context.Context, id uint) (*models.User, error)

	// Contract documents
	FindDocumentByID(ctx context.Context, id uint) (*models.ContractDocument, error)
	ReplaceDocumentLinks(ctx context.Context, contractID uint, documentIDs []uint) error
}

type UnitOfWork interface {
	Repository

	// InTx runs fn inside one transaction; fn's Repository sees its own
	// writes. Any error rolls the whole transaction back.
	InTx(ctx context.Context, fn func(Repository) error) error
}
