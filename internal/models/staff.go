package models

import (
	"gorm.io/gorm"
)

// Staff is a back-office operator account, provisioned on first SSO login.
type Staff struct {
	gorm.Model
	ExternalID string `gorm:"uniqueIndex"`
	Username   string
	Email      string
}
