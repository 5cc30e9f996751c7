package models

import (
	"time"

	"gorm.io/gorm"
)

type Skier struct {
	gorm.Model
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
	DateOfBirth    time.Time      `json:"date_of_birth"`
	City           string         `json:"city"`
	SubscriptionID *uint          `json:"subscription_id"`
	Subscription   *Subscription  `json:"subscription,omitempty"`
	Pistes         []Piste        `json:"pistes,omitempty" gorm:"many2many:skier_pistes"`
	Registrations  []Registration `json:"registrations,omitempty"`
}
