package models

import (
	"time"

	"gorm.io/gorm"
)

// TypeSubscription is the closed set of plan variants.
type TypeSubscription string

const (
	TypeSubMonthly    TypeSubscription = "MONTHLY"
	TypeSubSemestriel TypeSubscription = "SEMESTRIEL"
	TypeSubAnnual     TypeSubscription = "ANNUAL"
)

// Subscription is a time-bounded plan held by a skier. EndDate is always
// derived from TypeSub and StartDate, never supplied by a caller.
type Subscription struct {
	gorm.Model
	TypeSub   TypeSubscription `json:"type_sub"`
	StartDate time.Time        `json:"start_date"`
	EndDate   time.Time        `json:"end_date"`
	Price     float64          `json:"price"`
}
