package models

import (
	"time"

	"gorm.io/gorm"
)

type Instructor struct {
	gorm.Model
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	DateOfHire time.Time `json:"date_of_hire"`
	Courses    []Course  `json:"courses,omitempty"`
}
