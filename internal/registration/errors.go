package registration

import (
	"errors"
	"fmt"
)

// Rule rejections are caller-visible and recoverable. Storage failures
// propagate as wrapped errors outside of this set.
var (
	ErrAlreadyRegistered = errors.New("skier is already registered for this course and week")
	ErrCourseFull        = errors.New("course is full for this week")
	ErrUnknownCourseType = errors.New("unknown course type")
)

// NotFoundError reports a missing entity by kind ("skier", "course",
// "registration", "instructor").
type NotFoundError struct {
	Kind string
	ID   uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

type AgeGroup string

const (
	GroupChild AgeGroup = "child"
	GroupAdult AgeGroup = "adult"
)

// AgeIneligibleError reports a skier whose computed age does not match
// the age group a collective course requires.
type AgeIneligibleError struct {
	Expected AgeGroup
	Age      int
}

func (e *AgeIneligibleError) Error() string {
	return fmt.Sprintf("age %d not eligible: course requires a %s", e.Age, e.Expected)
}
