package subscription

import (
	"context"
	"log"
	"sync"
	"time"
)

// Notifier receives the output of the scheduled reports. Implementations
// must tolerate being called from the scheduler goroutine.
type Notifier interface {
	NotifyExpiring(entries []ExpiringEntry) error
	NotifyRevenue(report RevenueReport) error
}

// SchedulerConfig holds the report intervals.
type SchedulerConfig struct {
	ExpiringInterval time.Duration
	RevenueInterval  time.Duration
}

// DefaultSchedulerConfig matches the reference cadence: expiring
// subscriptions every 30 seconds, recurring revenue hourly.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		ExpiringInterval: 30 * time.Second,
		RevenueInterval:  time.Hour,
	}
}

// Scheduler drives the two periodic reports. Each tick is fire-and-forget:
// a failed report is logged and the next tick starts fresh.
type Scheduler struct {
	service  *Service
	notifier Notifier
	config   SchedulerConfig

	wg       sync.WaitGroup
	stopChan chan struct{}
	running  bool
	mu       sync.Mutex
}

func NewScheduler(service *Service, notifier Notifier, config SchedulerConfig) *Scheduler {
	return &Scheduler{
		service:  service,
		notifier: notifier,
		config:   config,
		stopChan: make(chan struct{}),
	}
}

// Start begins the report loop in a goroutine.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.stopChan = make(chan struct{})
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run(ctx)

	log.Printf("subscription scheduler started (expiring every %s, revenue every %s)",
		s.config.ExpiringInterval, s.config.RevenueInterval)
}

// Stop gracefully stops the scheduler and waits for an in-flight tick.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopChan)
	s.mu.Unlock()

	s.wg.Wait()
	log.Printf("subscription scheduler stopped")
}

func (s *Scheduler) run(ctx context.Context) {
	defer s.wg.Done()

	expiring := time.NewTicker(s.config.ExpiringInterval)
	defer expiring.Stop()
	revenue := time.NewTicker(s.config.RevenueInterval)
	defer revenue.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			return
		case <-expiring.C:
			s.runExpiring(ctx)
		case <-revenue.C:
			s.runRevenue(ctx)
		}
	}
}

func (s *Scheduler) runExpiring(ctx context.Context) {
	entries, err := s.service.ExpiringReport(ctx)
	if err != nil {
		log.Printf("expiring subscriptions report failed: %v", err)
		return
	}
	for _, entry := range entries {
		log.Printf("%d | %s | %s %s",
			entry.Subscription.ID,
			entry.Subscription.EndDate.Format("2006-01-02"),
			entry.Skier.FirstName,
			entry.Skier.LastName,
		)
	}
	if s.notifier != nil {
		if err := s.notifier.NotifyExpiring(entries); err != nil {
			log.Printf("failed to notify expiring subscriptions: %v", err)
		}
	}
}

func (s *Scheduler) runRevenue(ctx context.Context) {
	report, err := s.service.MonthlyRecurringRevenue(ctx)
	if err != nil {
		log.Printf("recurring revenue report failed: %v", err)
		return
	}
	log.Printf("monthly recurring revenue = %.2f", report.Total)
	if s.notifier != nil {
		if err := s.notifier.NotifyRevenue(report); err != nil {
			log.Printf("failed to notify recurring revenue: %v", err)
		}
	}
}
