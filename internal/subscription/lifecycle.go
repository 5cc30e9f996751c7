package subscription

import (
	"errors"
	"time"

	"github.com/snowpeak-resort/station-api/internal/models"
)

var (
	ErrInvalidPlanType = errors.New("invalid subscription type")
	ErrNotFound        = errors.New("subscription not found")
)

// EndDate derives a subscription's end date from its plan type: one
// month for MONTHLY, six for SEMESTRIEL, twelve for ANNUAL. Any other
// plan type is rejected.
func EndDate(typeSub models.TypeSubscription, startDate time.Time) (time.Time, error) {
	switch typeSub {
	case models.TypeSubMonthly:
		return addMonths(startDate, 1), nil
	case models.TypeSubSemestriel:
		return addMonths(startDate, 6), nil
	case models.TypeSubAnnual:
		return addMonths(startDate, 12), nil
	default:
		return time.Time{}, ErrInvalidPlanType
	}
}

// addMonths advances t by the given number of calendar months. When the
// day-of-month does not exist in the target month it clamps to that
// month's last day (2024-01-31 plus one month is 2024-02-29), unlike
// time.AddDate which would roll over into March.
func addMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	hour, minute, sec := t.Clock()

	firstOfTarget := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, hour, minute, sec, t.Nanosecond(), t.Location())
}
