package models

import (
	"gorm.io/gorm"
)

// Registration binds one skier to one course for one week. The unique
// index backs the engine's duplicate check so a race between two
// concurrent inserts of the same triple cannot slip through.
type Registration struct {
	gorm.Model
	NumWeek  int    `json:"num_week" gorm:"uniqueIndex:idx_week_skier_course"`
	SkierID  uint   `json:"skier_id" gorm:"uniqueIndex:idx_week_skier_course"`
	CourseID uint   `json:"course_id" gorm:"uniqueIndex:idx_week_skier_course"`
	Skier    Skier  `json:"-" gorm:"foreignKey:SkierID"`
	Course   Course `json:"-" gorm:"foreignKey:CourseID"`
}
