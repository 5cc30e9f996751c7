package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/snowpeak-resort/station-api/internal/models"
	"gorm.io/gorm"
)

// Service owns subscription persistence and the two recurring reports.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Create derives the end date and persists the subscription. A caller
// supplied end date is ignored.
func (s *Service) Create(ctx context.Context, sub *models.Subscription) (*models.Subscription, error) {
	endDate, err := EndDate(sub.TypeSub, sub.StartDate)
	if err != nil {
		return nil, err
	}
	sub.EndDate = endDate

	if err := s.db.WithContext(ctx).Create(sub).Error; err != nil {
		return nil, fmt.Errorf("save subscription: %w", err)
	}
	return sub, nil
}

// Update re-derives the end date from the (possibly changed) plan type
// and start date before persisting.
func (s *Service) Update(ctx context.Context, sub *models.Subscription) (*models.Subscription, error) {
	endDate, err := EndDate(sub.TypeSub, sub.StartDate)
	if err != nil {
		return nil, err
	}
	sub.EndDate = endDate

	if err := s.db.WithContext(ctx).Save(sub).Error; err != nil {
		return nil, fmt.Errorf("save subscription: %w", err)
	}
	return sub, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Subscription, error) {
	var sub models.Subscription
	if err := s.db.WithContext(ctx).First(&sub, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup subscription: %w", err)
	}
	return &sub, nil
}

func (s *Service) ByType(ctx context.Context, typeSub models.TypeSubscription) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := s.db.WithContext(ctx).
		Where("type_sub = ?", typeSub).
		Order("start_date asc").
		Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("query subscriptions by type: %w", err)
	}
	return subs, nil
}

func (s *Service) ByDateRange(ctx context.Context, from, to time.Time) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := s.db.WithContext(ctx).
		Where("start_date BETWEEN ? AND ?", from, to).
		Order("start_date asc").
		Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("query subscriptions by date range: %w", err)
	}
	return subs, nil
}

// RevenueReport holds monthly-equivalent revenue per plan type. The
// semestrial and annual sums are already normalized by 6 and 12.
type RevenueReport struct {
	Monthly    float64 `json:"monthly"`
	Semestriel float64 `json:"semestriel"`
	Annual     float64 `json:"annual"`
	Total      float64 `json:"total"`
}

// MonthlyRecurringRevenue sums subscription prices per plan type,
// normalizes the longer plans to a monthly equivalent and totals the
// three figures. An empty aggregate counts as zero.
func (s *Service) MonthlyRecurringRevenue(ctx context.Context) (RevenueReport, error) {
	var report RevenueReport

	monthly, err := s.sumPriceByType(ctx, models.TypeSubMonthly)
	if err != nil {
		return report, err
	}
	semestriel, err := s.sumPriceByType(ctx, models.TypeSubSemestriel)
	if err != nil {
		return report, err
	}
	annual, err := s.sumPriceByType(ctx, models.TypeSubAnnual)
	if err != nil {
		return report, err
	}

	report.Monthly = monthly
	report.Semestriel = semestriel / 6
	report.Annual = annual / 12
	report.Total = report.Monthly + report.Semestriel + report.Annual
	return report, nil
}

func (s *Service) sumPriceByType(ctx context.Context, typeSub models.TypeSubscription) (float64, error) {
	var total float64
	err := s.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("type_sub = ?", typeSub).
		Select("COALESCE(SUM(price), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("sum price for %s: %w", typeSub, err)
	}
	return total, nil
}

// ExpiringEntry pairs a subscription with the skier holding it.
type ExpiringEntry struct {
	Subscription models.Subscription `json:"subscription"`
	Skier        models.Skier        `json:"skier"`
}

// ExpiringReport lists every subscription in ascending end-date order
// together with its holder. Subscriptions nobody holds are skipped.
func (s *Service) ExpiringReport(ctx context.Context) ([]ExpiringEntry, error) {
	var subs []models.Subscription
	if err := s.db.WithContext(ctx).Order("end_date asc").Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("query subscriptions: %w", err)
	}

	var entries []ExpiringEntry
	for _, sub := range subs {
		var skier models.Skier
		err := s.db.WithContext(ctx).Where("subscription_id = ?", sub.ID).First(&skier).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("lookup skier for subscription %d: %w", sub.ID, err)
		}
		entries = append(entries, ExpiringEntry{Subscription: sub, Skier: skier})
	}
	return entries, nil
}
