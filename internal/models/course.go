package models

import (
	"gorm.io/gorm"
)

// TypeCourse is the closed set of course variants. The registration
// rules dispatch exhaustively on it; any other stored value is rejected.
type TypeCourse string

const (
	TypeCourseIndividual         TypeCourse = "INDIVIDUAL"
	TypeCourseCollectiveChildren TypeCourse = "COLLECTIVE_CHILDREN"
	TypeCourseCollectiveAdult    TypeCourse = "COLLECTIVE_ADULT"
)

// Support is the medium a course is taught on.
type Support string

const (
	SupportSki       Support = "SKI"
	SupportSnowboard Support = "SNOWBOARD"
)

type Course struct {
	gorm.Model
	Level        int        `json:"level"`
	TypeCourse   TypeCourse `json:"type_course"`
	Support      Support    `json:"support"`
	Price        float64    `json:"price"`
	TimeSlot     int        `json:"time_slot"`
	InstructorID *uint      `json:"instructor_id"`
}
