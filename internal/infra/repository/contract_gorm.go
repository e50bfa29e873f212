package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	domain "github.com/autoline-kr/dealer-backoffice/internal/domain/contract"
	"github.com/autoline-kr/dealer-backoffice/internal/models"
)

type ContractGormRepository struct {
	db *gorm.DB
}

func NewContractGormRepository(db *gorm.DB) *ContractGormRepository {
	return &ContractGormRepository{db: db}
}

// InTx yields a repository bound to one transaction. fn's writes are
// visible to its own reads; any error rolls everything back.
func (r *ContractGormRepository) InTx(ctx context.Context, fn func(domain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ContractGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Contract
// --------------------------------------------------

func withContractRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Customer").
		Preload("Car").
		Preload("Car.Model").
		Preload("Meetings").
		Preload("Meetings.Alarms").
		Preload("Documents")
}

func (r *ContractGormRepository) CreateContract(
	ctx context.Context,
	data domain.CreateData,
) (uint, error) {

	contract := models.Contract{
		CompanyID:     data.CompanyID,
		UserID:        data.UserID,
		CarID:         data.CarID,
		CustomerID:    data.CustomerID,
		ContractPrice: data.ContractPrice,
		ContractName:  data.ContractName,
		Status:        string(data.Status),
	}

	if err := r.db.WithContext(ctx).Create(&contract).Error; err != nil {
		return 0, err
	}
	return contract.ID, nil
}

func (r *ContractGormRepository) FindContractByID(
	ctx context.Context,
	id uint,
) (*models.Contract, error) {

	var contract models.Contract
	err := withContractRelations(r.db.WithContext(ctx)).
		First(&contract, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *ContractGormRepository) UpdateContract(
	ctx context.Context,
	id uint,
	patch domain.Patch,
) error {

	if patch.Empty() {
		return nil
	}

	updates := map[string]any{}
	if patch.Status != nil {
		updates["status"] = string(*patch.Status)
	}
	if patch.ContractName != nil {
		updates["contract_name"] = *patch.ContractName
	}
	if patch.ResolutionDateSet {
		updates["resolution_date"] = patch.ResolutionDate
	}
	if patch.ContractPrice != nil {
		updates["contract_price"] = *patch.ContractPrice
	}

	// Relation connects. Belongs-to in gorm connects by reassigning the
	// owning foreign key, so these go through the association columns.
	if patch.UserID != nil {
		updates["user_id"] = *patch.UserID
	}
	if patch.CustomerID != nil {
		updates["customer_id"] = *patch.CustomerID
	}
	if patch.CarID != nil {
		updates["car_id"] = *patch.CarID
	}

	return r.db.WithContext(ctx).
		Model(&models.Contract{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// DeleteContract cascades by hand, innermost first: alarms, meetings,
// document links, then the contract row. No reliance on schema-level
// ON DELETE rules.
func (r *ContractGormRepository) DeleteContract(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx)

	meetingIDs := tx.Model(&models.Meeting{}).
		Select("id").
		Where("contract_id = ?", id)

	if err := tx.Where("meeting_id IN (?)", meetingIDs).
		Delete(&models.Alarm{}).Error; err != nil {
		return err
	}
	if err := tx.Where("contract_id = ?", id).
		Delete(&models.Meeting{}).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.ContractDocument{}).
		Where("contract_id = ?", id).
		Update("contract_id", nil).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Contract{}, id).Error
}

func (r *ContractGormRepository) ListContractsByCompany(
	ctx context.Context,
	companyID uint,
	searchBy domain.SearchField,
	keyword string,
) ([]models.Contract, error) {

	query := withContractRelations(r.db.WithContext(ctx)).
		Where("contracts.company_id = ?", companyID)

	if keyword != "" {
		pattern := "%" + strings.ToLower(keyword) + "%"
		switch searchBy {
		case domain.SearchByCustomerName:
			query = query.
				Joins("JOIN customers ON customers.id = contracts.customer_id").
				Where("LOWER(customers.name) LIKE ?", pattern)
		case domain.SearchByUserName:
			query = query.
				Joins("JOIN users ON users.id = contracts.user_id").
				Where("LOWER(users.name) LIKE ?", pattern)
		}
	}

	var contracts []models.Contract
	if err := query.
		Order("contracts.created_at DESC").
		Find(&contracts).Error; err != nil {
		return nil, err
	}
	return contracts, nil
}

// --------------------------------------------------
// Meetings / Alarms
// --------------------------------------------------

// ReplaceMeetings swaps the contract's meetings wholesale: old alarms
// and meetings go first, then the supplied set is inserted.
func (r *ContractGormRepository) ReplaceMeetings(
	ctx context.Context,
	contractID uint,
	meetings []domain.MeetingInput,
) error {

	tx := r.db.WithContext(ctx)

	meetingIDs := tx.Model(&models.Meeting{}).
		Select("id").
		Where("contract_id = ?", contractID)

	if err := tx.Where("meeting_id IN (?)", meetingIDs).
		Delete(&models.Alarm{}).Error; err != nil {
		return err
	}
	if err := tx.Where("contract_id = ?", contractID).
		Delete(&models.Meeting{}).Error; err != nil {
		return err
	}

	for _, m := range meetings {
		meeting := models.Meeting{
			ContractID: contractID,
			Date:       m.Date,
		}
		if err := tx.Create(&meeting).Error; err != nil {
			return err
		}
		for _, alarmTime := range m.Alarms {
			alarm := models.Alarm{
				MeetingID: meeting.ID,
				AlarmTime: alarmTime,
			}
			if err := tx.Create(&alarm).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// --------------------------------------------------
// Collaborators
// --------------------------------------------------

func (r *ContractGormRepository) FindCarByID(ctx context.Context, id uint) (*models.Car, error) {
	var car models.Car
	err := r.db.WithContext(ctx).
		Preload("Model").
		First(&car, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &car, nil
}

func (r *ContractGormRepository) UpdateCarStatus(
	ctx context.Context,
	carID uint,
	status domain.CarStatus,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Car{}).
		Where("id = ?", carID).
		Update("status", string(status)).Error
}

func (r *ContractGormRepository) FindCustomerByID(
	ctx context.Context,
	id, companyID uint,
) (*models.Customer, error) {

	var customer models.Customer
	err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *ContractGormRepository) FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// --------------------------------------------------
// Contract documents
// --------------------------------------------------

func (r *ContractGormRepository) FindDocumentByID(
	ctx context.Context,
	id uint,
) (*models.ContractDocument, error) {

	var doc models.ContractDocument
	err := r.db.WithContext(ctx).First(&doc, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *ContractGormRepository) ReplaceDocumentLinks(
	ctx context.Context,
	contractID uint,
	documentIDs []uint,
) error {

	tx := r.db.WithContext(ctx)

	if err := tx.Model(&models.ContractDocument{}).
		Where("contract_id = ?", contractID).
		Update("contract_id", nil).Error; err != nil {
		return err
	}
	if len(documentIDs) == 0 {
		return nil
	}
	return tx.Model(&models.ContractDocument{}).
		Where("id IN ?", documentIDs).
		Update("contract_id", contractID).Error
}

// Compile-time check
var _ domain.UnitOfWork = (*ContractGormRepository)(nil)
