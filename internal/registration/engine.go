package registration

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/snowpeak-resort/station-api/internal/models"
	"gorm.io/gorm"
)

// CollectiveCapacity is the maximum number of registrations a collective
// course accepts for a single week. Individual courses are uncapped.
const CollectiveCapacity = 6

// adultAge is the first age treated as adult for collective courses.
const adultAge = 16

// Engine decides whether a registration may be created and under which
// course-type rule. The clock is injected so age computation stays
// deterministic in tests.
type Engine struct {
	db    *gorm.DB
	now   func() time.Time
	locks *courseWeekLocks
}

func NewEngine(db *gorm.DB, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{db: db, now: now, locks: newCourseWeekLocks()}
}

// RegisterSkier binds an existing skier to the draft registration and
// persists it. No course is attached yet, so no eligibility rule applies.
func (e *Engine) RegisterSkier(ctx context.Context, reg *models.Registration, skierID uint) (*models.Registration, error) {
	skier, err := e.findSkier(ctx, skierID)
	if err != nil {
		return nil, err
	}

	reg.SkierID = skier.ID
	if err := e.db.WithContext(ctx).Create(reg).Error; err != nil {
		return nil, fmt.Errorf("save registration: %w", err)
	}
	return reg, nil
}

// RegisterSkierToCourse resolves the skier and course, rejects duplicates
// of the (week, skier, course) triple, applies the course-type rule and
// persists the bound registration. Every rejection is a typed error;
// nothing is written on a rejected path.
func (e *Engine) RegisterSkierToCourse(ctx context.Context, reg *models.Registration, skierID, courseID uint) (*models.Registration, error) {
	skier, err := e.findSkier(ctx, skierID)
	if err != nil {
		return nil, err
	}
	course, err := e.findCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	unlock := e.locks.lock(course.ID, reg.NumWeek)
	defer unlock()

	err = e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		registered, err := e.isAlreadyRegistered(tx, reg.NumWeek, skier.ID, course.ID)
		if err != nil {
			return err
		}
		if registered {
			log.Printf("skier %d already registered for course %d, week %d", skier.ID, course.ID, reg.NumWeek)
			return ErrAlreadyRegistered
		}

		if err := e.checkCourseRule(tx, skier, course, reg.NumWeek); err != nil {
			return err
		}

		reg.SkierID = skier.ID
		reg.CourseID = course.ID
		if err := tx.Create(reg).Error; err != nil {
			return fmt.Errorf("save registration: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reg, nil
}

// AssignToCourse rebinds an existing registration to another course.
// The target course's age and capacity rules are re-validated: a
// reassignment must not admit a skier the combined operation would
// have rejected.
func (e *Engine) AssignToCourse(ctx context.Context, registrationID, courseID uint) (*models.Registration, error) {
	var reg models.Registration
	if err := e.db.WithContext(ctx).First(&reg, registrationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Kind: "registration", ID: registrationID}
		}
		return nil, fmt.Errorf("lookup registration: %w", err)
	}
	skier, err := e.findSkier(ctx, reg.SkierID)
	if err != nil {
		return nil, err
	}
	course, err := e.findCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	unlock := e.locks.lock(course.ID, reg.NumWeek)
	defer unlock()

	err = e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dup int64
		if err := tx.Model(&models.Registration{}).
			Where("num_week = ? AND skier_id = ? AND course_id = ? AND id <> ?",
				reg.NumWeek, skier.ID, course.ID, reg.ID).
			Count(&dup).Error; err != nil {
			return fmt.Errorf("count duplicate registrations: %w", err)
		}
		if dup > 0 {
			return ErrAlreadyRegistered
		}

		if err := e.checkCourseRule(tx, skier, course, reg.NumWeek); err != nil {
			return err
		}

		reg.CourseID = course.ID
		if err := tx.Save(&reg).Error; err != nil {
			return fmt.Errorf("save registration: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// WeeksByInstructorAndSupport returns the distinct week numbers in which
// the instructor taught on the given support medium.
func (e *Engine) WeeksByInstructorAndSupport(ctx context.Context, instructorID uint, support models.Support) ([]int, error) {
	var instructor models.Instructor
	if err := e.db.WithContext(ctx).First(&instructor, instructorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Kind: "instructor", ID: instructorID}
		}
		return nil, fmt.Errorf("lookup instructor: %w", err)
	}

	var weeks []int
	err := e.db.WithContext(ctx).Model(&models.Registration{}).
		Distinct().
		Joins("JOIN courses ON courses.id = registrations.course_id").
		Where("courses.instructor_id = ? AND courses.support = ?", instructorID, support).
		Order("registrations.num_week").
		Pluck("registrations.num_week", &weeks).Error
	if err != nil {
		return nil, fmt.Errorf("query weeks by instructor and support: %w", err)
	}
	return weeks, nil
}

// checkCourseRule dispatches on the course type. The enum is closed:
// a value outside the three variants is rejected, not defaulted.
func (e *Engine) checkCourseRule(tx *gorm.DB, skier models.Skier, course models.Course, numWeek int) error {
	switch course.TypeCourse {
	case models.TypeCourseIndividual:
		return nil
	case models.TypeCourseCollectiveChildren:
		if age := e.ageOf(skier); age >= adultAge {
			return &AgeIneligibleError{Expected: GroupChild, Age: age}
		}
		return e.checkCapacity(tx, course.ID, numWeek)
	case models.TypeCourseCollectiveAdult:
		if age := e.ageOf(skier); age < adultAge {
			return &AgeIneligibleError{Expected: GroupAdult, Age: age}
		}
		return e.checkCapacity(tx, course.ID, numWeek)
	default:
		return ErrUnknownCourseType
	}
}

func (e *Engine) checkCapacity(tx *gorm.DB, courseID uint, numWeek int) error {
	var count int64
	if err := tx.Model(&models.Registration{}).
		Where("course_id = ? AND num_week = ?", courseID, numWeek).
		Count(&count).Error; err != nil {
		return fmt.Errorf("count course registrations: %w", err)
	}
	if count >= CollectiveCapacity {
		return ErrCourseFull
	}
	return nil
}

func (e *Engine) isAlreadyRegistered(tx *gorm.DB, numWeek int, skierID, courseID uint) (bool, error) {
	var count int64
	if err := tx.Model(&models.Registration{}).
		Where("num_week = ? AND skier_id = ? AND course_id = ?", numWeek, skierID, courseID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("count duplicate registrations: %w", err)
	}
	return count > 0, nil
}

func (e *Engine) findSkier(ctx context.Context, id uint) (models.Skier, error) {
	var skier models.Skier
	if err := e.db.WithContext(ctx).First(&skier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return skier, &NotFoundError{Kind: "skier", ID: id}
		}
		return skier, fmt.Errorf("lookup skier: %w", err)
	}
	return skier, nil
}

func (e *Engine) findCourse(ctx context.Context, id uint) (models.Course, error) {
	var course models.Course
	if err := e.db.WithContext(ctx).First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return course, &NotFoundError{Kind: "course", ID: id}
		}
		return course, fmt.Errorf("lookup course: %w", err)
	}
	return course, nil
}

// ageOf computes whole years between the skier's date of birth and the
// engine clock.
func (e *Engine) ageOf(skier models.Skier) int {
	now := e.now()
	years := now.Year() - skier.DateOfBirth.Year()
	if skier.DateOfBirth.AddDate(years, 0, 0).After(now) {
		years--
	}
	return years
}
