package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	domain "github.com/autoline-kr/dealer-backoffice/internal/domain/contract"
	"github.com/autoline-kr/dealer-backoffice/internal/models"
)

const cacheTTL = 60 * time.Second

type CarTypeStat struct {
	CarType string  `json:"carType"`
	Count   float64 `json:"count"`
}

type Response struct {
	MonthlySales             int64         `json:"monthlySales"`
	LastMonthSales           int64         `json:"lastMonthSales"`
	GrowthRate               *float64      `json:"growthRate"`
	ProceedingContractsCount int64         `json:"proceedingContractsCount"`
	CompletedContractsCount  int64         `json:"completedContractsCount"`
	ContractsByCarType       []CarTypeStat `json:"contractsByCarType"`
	SalesByCarType           []CarTypeStat `json:"salesByCarType"`
}

// Service aggregates a salesperson's numbers. Results are cached in
// redis for a minute; with no cache every call hits the database.
type Service struct {
	db    *gorm.DB
	cache *redis.Client
	log   zerolog.Logger
}

func NewService(db *gorm.DB, cache *redis.Client, log zerolog.Logger) *Service {
	return &Service{db: db, cache: cache, log: log}
}

func (s *Service) GetDashboard(ctx context.Context, userID uint) (*Response, error) {
	key := fmt.Sprintf("dashboard:user:%d", userID)

	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key).Result(); err == nil {
			var cached Response
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		} else if err != redis.Nil {
			s.log.Warn().Err(err).Msg("dashboard cache read failed")
		}
	}

	response, err := s.compute(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, key, raw, cacheTTL).Err(); err != nil {
				s.log.Warn().Err(err).Msg("dashboard cache write failed")
			}
		}
	}
	return response, nil
}

func (s *Service) compute(ctx context.Context, userID uint) (*Response, error) {
	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastMonthStart := monthStart.AddDate(0, -1, 0)
	nextMonthStart := monthStart.AddDate(0, 1, 0)

	monthlySales, err := s.salesBetween(ctx, userID, monthStart, nextMonthStart)
	if err != nil {
		return nil, err
	}
	lastMonthSales, err := s.salesBetween(ctx, userID, lastMonthStart, monthStart)
	if err != nil {
		return nil, err
	}

	var proceeding int64
	if err := s.db.WithContext(ctx).
		Model(&models.Contract{}).
		Where("user_id = ? AND status IN ?", userID, []string{
			string(domain.StatusCarInspection),
			string(domain.StatusPriceNegotiation),
			string(domain.StatusContractDraft),
		}).
		Count(&proceeding).Error; err != nil {
		return nil, err
	}

	var completed int64
	if err := s.db.WithContext(ctx).
		Model(&models.Contract{}).
		Where("user_id = ? AND status = ?", userID, string(domain.StatusContractSuccessful)).
		Count(&completed).Error; err != nil {
		return nil, err
	}

	contractsByType, err := s.countsByCarType(ctx, userID)
	if err != nil {
		return nil, err
	}
	salesByType, err := s.salesByCarType(ctx, userID)
	if err != nil {
		return nil, err
	}

	var growthRate *float64
	if lastMonthSales != 0 {
		rate := float64(monthlySales-lastMonthSales) / float64(lastMonthSales)
		growthRate = &rate
	}

	return &Response{
		MonthlySales:             monthlySales,
		LastMonthSales:           lastMonthSales,
		GrowthRate:               growthRate,
		ProceedingContractsCount: proceeding,
		CompletedContractsCount:  completed,
		ContractsByCarType:       contractsByType,
		SalesByCarType:           salesByType,
	}, nil
}

func (s *Service) salesBetween(ctx context.Context, userID uint, from, to time.Time) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).
		Model(&models.Contract{}).
		Select("COALESCE(SUM(contract_price), 0)").
		Where("user_id = ? AND status = ?", userID, string(domain.StatusContractSuccessful)).
		Where("resolution_date >= ? AND resolution_date < ?", from, to).
		Scan(&total).Error
	return total, err
}

type carTypeRow struct {
	CarType string
	Total   float64
}

func (s *Service) countsByCarType(ctx context.Context, userID uint) ([]CarTypeStat, error) {
	var rows []carTypeRow
	err := s.db.WithContext(ctx).
		Model(&models.Contract{}).
		Select("car_models.type AS car_type, COUNT(*) AS total").
		Joins("JOIN cars ON cars.id = contracts.car_id").
		Joins("JOIN car_models ON car_models.id = cars.model_id").
		Where("contracts.user_id = ?", userID).
		Group("car_models.type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toStats(rows, 1), nil
}

func (s *Service) salesByCarType(ctx context.Context, userID uint) ([]CarTypeStat, error) {
	var rows []carTypeRow
	err := s.db.WithContext(ctx).
		Model(&models.Contract{}).
		Select("car_models.type AS car_type, COALESCE(SUM(contracts.contract_price), 0) AS total").
		Joins("JOIN cars ON cars.id = contracts.car_id").
		Joins("JOIN car_models ON car_models.id = cars.model_id").
		Where("contracts.user_id = ? AND contracts.status = ?", userID, string(domain.StatusContractSuccessful)).
		Group("car_models.type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	// Sales are reported in units of 10,000 won.
	return toStats(rows, 10000), nil
}

func toStats(rows []carTypeRow, divisor float64) []CarTypeStat {
	stats := make([]CarTypeStat, 0, len(rows))
	for _, row := range rows {
		carType := row.CarType
		if carType == "" {
			carType = "기타"
		}
		stats = append(stats, CarTypeStat{
			CarType: carType,
			Count:   row.Total / divisor,
		})
	}
	return stats
}
