package contract

import (
	"context"
	"sync"

	"github.com/autoline-kr/dealer-backoffice/internal/audit"
	domain "github.com/autoline-kr/dealer-backoffice/internal/domain/contract"
	"github.com/autoline-kr/dealer-backoffice/internal/models"
	"github.com/autoline-kr/dealer-backoffice/internal/notify"
)

// mockUnitOfWork keeps everything in maps and records every write so the
// tests can assert both outcomes and call order. InTx hands the mock
// itself back as the transaction-scoped repository.
type mockUnitOfWork struct {
	mu sync.Mutex

	contracts map[uint]*models.Contract
	cars      map[uint]*models.Car
	customers map[uint]*models.Customer
	users     map[uint]*models.User
	documents map[uint]*models.ContractDocument

	meetings      map[uint][]domain.MeetingInput
	documentLinks map[uint][]uint

	nextContractID uint

	updateCalls     []domain.Patch
	carStatusCalls  []carStatusCall
	deletedIDs      []uint
	txFailWith      error
	meetingReplaced bool
}

type carStatusCall struct {
	carID  uint
	status domain.CarStatus
}

func newMockUnitOfWork() *mockUnitOfWork {
	return &mockUnitOfWork{
		contracts:      map[uint]*models.Contract{},
		cars:           map[uint]*models.Car{},
		customers:      map[uint]*models.Customer{},
		users:          map[uint]*models.User{},
		documents:      map[uint]*models.ContractDocument{},
		meetings:       map[uint][]domain.MeetingInput{},
		documentLinks:  map[uint][]uint{},
		nextContractID: 1,
	}
}

var _ domain.UnitOfWork = (*mockUnitOfWork)(nil)

func (m *mockUnitOfWork) InTx(ctx context.Context, fn func(domain.Repository) error) error {
	if m.txFailWith != nil {
		return m.txFailWith
	}
	return fn(m)
}

func (m *mockUnitOfWork) CreateContract(ctx context.Context, data domain.CreateData) (uint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextContractID
	m.nextContractID++

	contract := &models.Contract{
		ID:            id,
		CompanyID:     data.CompanyID,
		UserID:        data.UserID,
		CarID:         data.CarID,
		CustomerID:    data.CustomerID,
		ContractPrice: data.ContractPrice,
		ContractName:  data.ContractName,
		Status:        string(data.Status),
	}
	if user, ok := m.users[data.UserID]; ok {
		contract.User = *user
	}
	if customer, ok := m.customers[data.CustomerID]; ok {
		contract.Customer = *customer
	}
	if car, ok := m.cars[data.CarID]; ok {
		contract.Car = *car
	}
	m.contracts[id] = contract
	return id, nil
}

func (m *mockUnitOfWork) FindContractByID(ctx context.Context, id uint) (*models.Contract, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.contracts[id]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (m *mockUnitOfWork) UpdateContract(ctx context.Context, id uint, patch domain.Patch) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.updateCalls = append(m.updateCalls, patch)

	c := m.contracts[id]
	if c == nil {
		return nil
	}
	if patch.Status != nil {
		c.Status = string(*patch.Status)
	}
	if patch.ContractName != nil {
		c.ContractName = *patch.ContractName
	}
	if patch.ResolutionDateSet {
		c.ResolutionDate = patch.ResolutionDate
	}
	if patch.ContractPrice != nil {
		c.ContractPrice = *patch.ContractPrice
	}
	if patch.UserID != nil {
		c.UserID = *patch.UserID
	}
	if patch.CustomerID != nil {
		c.CustomerID = *patch.CustomerID
		if customer, ok := m.customers[*patch.CustomerID]; ok {
			c.Customer = *customer
		}
	}
	if patch.CarID != nil {
		c.CarID = *patch.CarID
		if car, ok := m.cars[*patch.CarID]; ok {
			c.Car = *car
		}
	}
	return nil
}

func (m *mockUnitOfWork) DeleteContract(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deletedIDs = append(m.deletedIDs, id)
	delete(m.contracts, id)
	delete(m.meetings, id)
	return nil
}

func (m *mockUnitOfWork) ListContractsByCompany(ctx context.Context, companyID uint, searchBy domain.SearchField, keyword string) ([]models.Contract, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Contract
	for _, c := range m.contracts {
		if c.CompanyID == companyID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *mockUnitOfWork) ReplaceMeetings(ctx context.Context, contractID uint, meetings []domain.MeetingInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.meetingReplaced = true
	m.meetings[contractID] = meetings
	return nil
}

func (m *mockUnitOfWork) FindCarByID(ctx context.Context, id uint) (*models.Car, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	car, ok := m.cars[id]
	if !ok {
		return nil, nil
	}
	copied := *car
	return &copied, nil
}

func (m *mockUnitOfWork) UpdateCarStatus(ctx context.Context, carID uint, status domain.CarStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.carStatusCalls = append(m.carStatusCalls, carStatusCall{carID: carID, status: status})
	if car, ok := m.cars[carID]; ok {
		car.Status = string(status)
	}
	return nil
}

func (m *mockUnitOfWork) FindCustomerByID(ctx context.Context, id, companyID uint) (*models.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	customer, ok := m.customers[id]
	if !ok || customer.CompanyID != companyID {
		return nil, nil
	}
	copied := *customer
	return &copied, nil
}

func (m *mockUnitOfWork) FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (m *mockUnitOfWork) FindDocumentByID(ctx context.Context, id uint) (*models.ContractDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.documents[id]
	if !ok {
		return nil, nil
	}
	copied := *doc
	return &copied, nil
}

func (m *mockUnitOfWork) ReplaceDocumentLinks(ctx context.Context, contractID uint, documentIDs []uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.documentLinks[contractID] = documentIDs
	return nil
}

// --------- collaborator fakes ---------

type mockAuditTrail struct {
	mu     sync.Mutex
	events []audit.Event
}

func (m *mockAuditTrail) Dispatch(ev audit.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
}

type mockNotifier struct {
	mu     sync.Mutex
	emails []notify.Email
}

func (m *mockNotifier) Dispatch(email notify.Email) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.emails = append(m.emails, email)
}
