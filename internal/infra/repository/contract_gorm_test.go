package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/autoline-kr/dealer-backoffice/internal/domain/contract"
	"github.com/autoline-kr/dealer-backoffice/internal/models"
)

func newTestRepo(t *testing.T) *ContractGormRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Company{},
		&models.User{},
		&models.Customer{},
		&models.CarModel{},
		&models.Car{},
		&models.Contract{},
		&models.Meeting{},
		&models.Alarm{},
		&models.ContractDocument{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	seed := []any{
		&models.Company{ID: 1, Name: "오토라인", Code: "AUTOLINE"},
		&models.User{ID: 7, CompanyID: 1, Name: "박영업", Email: "park@autoline.kr", PasswordHash: "x"},
		&models.Customer{ID: 3, CompanyID: 1, Name: "김철수"},
		&models.CarModel{ID: 2, Manufacturer: "기아", Model: "K5", Type: "SEDAN"},
		&models.Car{ID: 5, CompanyID: 1, ModelID: 2, CarNumber: "12가3456", Price: 25000000, Status: "possession"},
	}
	for _, record := range seed {
		if err := db.Create(record).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	return NewContractGormRepository(db)
}

func createTestContract(t *testing.T, repo *ContractGormRepository) uint {
	t.Helper()

	id, err := repo.CreateContract(context.Background(), domain.CreateData{
		CompanyID:     1,
		UserID:        7,
		CarID:         5,
		CustomerID:    3,
		ContractPrice: 25000000,
		ContractName:  "K5 - 김철수 고객님",
		Status:        domain.StatusCarInspection,
	})
	if err != nil {
		t.Fatalf("create contract: %v", err)
	}
	return id
}

func TestCreateAndFindContract(t *testing.T) {
	repo := newTestRepo(t)
	id := createTestContract(t, repo)

	found, err := repo.FindContractByID(context.Background(), id)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found == nil {
		t.Fatal("contract not found after create")
	}
	if found.ContractName != "K5 - 김철수 고객님" {
		t.Errorf("name = %q", found.ContractName)
	}
	if found.Car.Model.Model != "K5" {
		t.Errorf("preloaded car model = %q", found.Car.Model.Model)
	}
	if found.User.Name != "박영업" || found.Customer.Name != "김철수" {
		t.Errorf("preloads: user=%q customer=%q", found.User.Name, found.Customer.Name)
	}
}

func TestFindContractByIDMissing(t *testing.T) {
	repo := newTestRepo(t)

	found, err := repo.FindContractByID(context.Background(), 999)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found != nil {
		t.Error("missing contract should come back nil, nil")
	}
}

func TestUpdateContractPatch(t *testing.T) {
	repo := newTestRepo(t)
	id := createTestContract(t, repo)

	status := domain.StatusContractSuccessful
	resolved := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	err := repo.UpdateContract(context.Background(), id, domain.Patch{
		Status:            &status,
		ResolutionDateSet: true,
		ResolutionDate:    &resolved,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	found, _ := repo.FindContractByID(context.Background(), id)
	if found.Status != "contractSuccessful" {
		t.Errorf("status = %q", found.Status)
	}
	if found.ResolutionDate == nil || !found.ResolutionDate.Equal(resolved) {
		t.Errorf("resolution date = %v", found.ResolutionDate)
	}
	if found.ContractName != "K5 - 김철수 고객님" {
		t.Error("untouched fields must survive a partial patch")
	}
}

func TestUpdateContractClearResolutionDate(t *testing.T) {
	repo := newTestRepo(t)
	id := createTestContract(t, repo)

	resolved := time.Now().UTC()
	_ = repo.UpdateContract(context.Background(), id, domain.Patch{
		ResolutionDateSet: true,
		ResolutionDate:    &resolved,
	})
	err := repo.UpdateContract(context.Background(), id, domain.Patch{
		ResolutionDateSet: true,
		ResolutionDate:    nil,
	})
	if err != nil {
		t.Fatalf("clear: %v", err)
	}

	found, _ := repo.FindContractByID(context.Background(), id)
	if found.ResolutionDate != nil {
		t.Errorf("resolution date should be cleared, got %v", found.ResolutionDate)
	}
}

func TestReplaceMeetings(t *testing.T) {
	repo := newTestRepo(t)
	id := createTestContract(t, repo)
	ctx := context.Background()

	first := []domain.MeetingInput{
		{
			Date:   time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC),
			Alarms: []time.Time{time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)},
		},
		{Date: time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)},
	}
	if err := repo.ReplaceMeetings(ctx, id, first); err != nil {
		t.Fatalf("replace: %v", err)
	}

	second := []domain.MeetingInput{
		{
			Date: time.Date(2026, 4, 10, 15, 0, 0, 0, time.UTC),
			Alarms: []time.Time{
				time.Date(2026, 4, 10, 14, 0, 0, 0, time.UTC),
				time.Date(2026, 4, 10, 14, 30, 0, 0, time.UTC),
			},
		},
	}
	if err := repo.ReplaceMeetings(ctx, id, second); err != nil {
		t.Fatalf("replace again: %v", err)
	}

	found, _ := repo.FindContractByID(ctx, id)
	if len(found.Meetings) != 1 {
		t.Fatalf("meetings = %d, want 1", len(found.Meetings))
	}
	if len(found.Meetings[0].Alarms) != 2 {
		t.Errorf("alarms = %d, want 2", len(found.Meetings[0].Alarms))
	}

	// Alarms of the replaced meetings must not linger as orphans.
	var alarmCount int64
	repo.db.Model(&models.Alarm{}).Count(&alarmCount)
	if alarmCount != 2 {
		t.Errorf("total alarm rows = %d, want 2", alarmCount)
	}
}

func TestDeleteContractCascade(t *testing.T) {
	repo := newTestRepo(t)
	id := createTestContract(t, repo)
	ctx := context.Background()

	_ = repo.ReplaceMeetings(ctx, id, []domain.MeetingInput{
		{
			Date:   time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC),
			Alarms: []time.Time{time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)},
		},
	})

	doc := models.ContractDocument{CompanyID: 1, ContractID: &id, FileName: "계약서.pdf", FileURL: "https://files/1"}
	if err := repo.db.Create(&doc).Error; err != nil {
		t.Fatalf("seed document: %v", err)
	}

	if err := repo.DeleteContract(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}

	found, _ := repo.FindContractByID(ctx, id)
	if found != nil {
		t.Error("contract should be gone")
	}

	var meetingCount, alarmCount int64
	repo.db.Model(&models.Meeting{}).Count(&meetingCount)
	repo.db.Model(&models.Alarm{}).Count(&alarmCount)
	if meetingCount != 0 || alarmCount != 0 {
		t.Errorf("orphans left: meetings=%d alarms=%d", meetingCount, alarmCount)
	}

	// The document survives but is unlinked.
	var kept models.ContractDocument
	if err := repo.db.First(&kept, doc.ID).Error; err != nil {
		t.Fatalf("document should survive: %v", err)
	}
	if kept.ContractID != nil {
		t.Error("document should be unlinked from the deleted contract")
	}
}

func TestReplaceDocumentLinks(t *testing.T) {
	repo := newTestRepo(t)
	id := createTestContract(t, repo)
	ctx := context.Background()

	docA := models.ContractDocument{CompanyID: 1, FileName: "a.pdf", FileURL: "https://files/a"}
	docB := models.ContractDocument{CompanyID: 1, FileName: "b.pdf", FileURL: "https://files/b"}
	repo.db.Create(&docA)
	repo.db.Create(&docB)

	if err := repo.ReplaceDocumentLinks(ctx, id, []uint{docA.ID}); err != nil {
		t.Fatalf("link: %v", err)
	}
	if err := repo.ReplaceDocumentLinks(ctx, id, []uint{docB.ID}); err != nil {
		t.Fatalf("relink: %v", err)
	}

	var a, b models.ContractDocument
	repo.db.First(&a, docA.ID)
	repo.db.First(&b, docB.ID)
	if a.ContractID != nil {
		t.Error("replaced document should be unlinked")
	}
	if b.ContractID == nil || *b.ContractID != id {
		t.Error("new document should be linked")
	}
}

func TestListContractsByCompanySearch(t *testing.T) {
	repo := newTestRepo(t)
	createTestContract(t, repo)
	ctx := context.Background()

	// Another company's contract must never leak into the listing.
	repo.db.Create(&models.Company{ID: 2, Name: "타사", Code: "OTHER"})
	repo.db.Create(&models.User{ID: 8, CompanyID: 2, Name: "최판매", Email: "choi@other.kr", PasswordHash: "x"})
	repo.db.Create(&models.Customer{ID: 4, CompanyID: 2, Name: "이영희"})
	repo.db.Create(&models.Car{ID: 6, CompanyID: 2, ModelID: 2, CarNumber: "34나5678", Price: 1, Status: "possession"})
	if _, err := repo.CreateContract(ctx, domain.CreateData{
		CompanyID: 2, UserID: 8, CarID: 6, CustomerID: 4,
		ContractName: "K5 - 이영희 고객님", Status: domain.StatusCarInspection,
	}); err != nil {
		t.Fatalf("create other-company contract: %v", err)
	}

	all, err := repo.ListContractsByCompany(ctx, 1, "", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("company 1 contracts = %d, want 1", len(all))
	}

	byCustomer, err := repo.ListContractsByCompany(ctx, 1, domain.SearchByCustomerName, "철수")
	if err != nil {
		t.Fatalf("search by customer: %v", err)
	}
	if len(byCustomer) != 1 {
		t.Errorf("customer search hits = %d, want 1", len(byCustomer))
	}

	noHit, err := repo.ListContractsByCompany(ctx, 1, domain.SearchByUserName, "없는사람")
	if err != nil {
		t.Fatalf("search by user: %v", err)
	}
	if len(noHit) != 0 {
		t.Errorf("expected no hits, got %d", len(noHit))
	}
}

func TestInTxRollsBack(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	sentinel := errors.New("boom")
	err := repo.InTx(ctx, func(r domain.Repository) error {
		if _, err := r.CreateContract(ctx, domain.CreateData{
			CompanyID: 1, UserID: 7, CarID: 5, CustomerID: 3,
			ContractName: "K5 - 김철수 고객님", Status: domain.StatusCarInspection,
		}); err != nil {
			return err
		}
		if err := r.UpdateCarStatus(ctx, 5, domain.CarStatusProceeding); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}

	var contractCount int64
	repo.db.Model(&models.Contract{}).Count(&contractCount)
	if contractCount != 0 {
		t.Error("rolled-back contract must not persist")
	}

	var car models.Car
	repo.db.First(&car, 5)
	if car.Status != "possession" {
		t.Errorf("car status = %q, rollback should restore possession", car.Status)
	}
}
