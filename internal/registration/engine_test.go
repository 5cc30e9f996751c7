package registration

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/snowpeak-resort/station-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testClock freezes "now" so age computation is deterministic.
var testClock = func() time.Time {
	return time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Skier{},
		&models.Course{},
		&models.Instructor{},
		&models.Piste{},
		&models.Registration{},
		&models.Subscription{},
	)
	if err != nil {
		t.Fatalf("failed to auto migrate: %v", err)
	}
	return db
}

// Born 2008-06-15: turns 16 on 2024-06-15, so aged 15 at the test clock.
func childSkier(t *testing.T, db *gorm.DB) models.Skier {
	t.Helper()
	skier := models.Skier{FirstName: "Lea", LastName: "Martin", DateOfBirth: time.Date(2008, 6, 15, 0, 0, 0, 0, time.UTC)}
	if err := db.Create(&skier).Error; err != nil {
		t.Fatalf("failed to create skier: %v", err)
	}
	return skier
}

// Born 2008-01-15: already 16 at the test clock.
func adultSkier(t *testing.T, db *gorm.DB) models.Skier {
	t.Helper()
	skier := models.Skier{FirstName: "Noah", LastName: "Blanc", DateOfBirth: time.Date(2008, 1, 15, 0, 0, 0, 0, time.UTC)}
	if err := db.Create(&skier).Error; err != nil {
		t.Fatalf("failed to create skier: %v", err)
	}
	return skier
}

func createCourse(t *testing.T, db *gorm.DB, typeCourse models.TypeCourse) models.Course {
	t.Helper()
	course := models.Course{Level: 2, TypeCourse: typeCourse, Support: models.SupportSki, Price: 120}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("failed to create course: %v", err)
	}
	return course
}

func TestRegisterIndividual(t *testing.T) {
	db := setupDB(t)
	engine := NewEngine(db, testClock)

	skier := childSkier(t, db)
	course := createCourse(t, db, models.TypeCourseIndividual)

	reg, err := engine.RegisterSkierToCourse(context.Background(), &models.Registration{NumWeek: 3}, skier.ID, course.ID)
	if err != nil {
		t.Fatalf("individual registration failed: %v", err)
	}
	if reg.SkierID != skier.ID || reg.CourseID != course.ID {
		t.Errorf("registration not bound: skier=%d course=%d", reg.SkierID, reg.CourseID)
	}

	// Same (skier, course, week) triple is a duplicate.
	_, err = engine.RegisterSkierToCourse(context.Background(), &models.Registration{NumWeek: 3}, skier.ID, course.ID)
	if !errors.Is(err, ErrAlreadyRegistered) {
		t.Errorf("expected ErrAlreadyRegistered, got %v", err)
	}

	// A different week is a fresh registration.
	if _, err := engine.RegisterSkierToCourse(context.Background(), &models.Registration{NumWeek: 4}, skier.ID, course.ID); err != nil {
		t.Errorf("registration for another week failed: %v", err)
	}

	var count int64
	db.Model(&models.Registration{}).Count(&count)
	if count != 2 {
		t.Errorf("expected 2 registrations in DB, got %d", count)
	}
}

func TestRegisterAgeRules(t *testing.T) {
	db := setupDB(t)
	engine := NewEngine(db, testClock)

	child := childSkier(t, db)
	adult := adultSkier(t, db)
	childrenCourse := createCourse(t, db, models.TypeCourseCollectiveChildren)
	adultCourse := createCourse(t, db, models.TypeCourseCollectiveAdult)

	t.Run("ChildIntoChildrenCourse", func(t *testing.T) {
		if _, err := engine.RegisterSkierToCourse(context.Background(), &models.Registration{NumWeek: 1}, child.ID, childrenCourse.ID); err != nil {
			t.Fatalf("expected success, got %v", err)
		}
	})

	t.Run("ChildIntoAdultCourse", func(t *testing.T) {
		_, err := engine.RegisterSkierToCourse(context.Background(), &models.Registration{NumWeek: 1}, child.ID, adultCourse.ID)
		var ageErr *AgeIneligibleError
		if !errors.As(err, &ageErr) {
			t.Fatalf("expected AgeIneligibleError, got %v", err)
		}
		if ageErr.Expected != GroupAdult || ageErr.Age != 15 {
			t.Errorf("unexpected rejection detail: %+v", ageErr)
		}
	})

	t.Run("AdultIntoAdultCourse", func(t *testing.T) {
		if _, err := engine.RegisterSkierToCourse(context.Background(), &models.Registration{NumWeek: 1}, adult.ID, adultCourse.ID); err != nil {
			t.Fatalf("expected success, got %v", err)
		}
	})

	t.Run("AdultIntoChildrenCourse", func(t *testing.T) {
		_, err := engine.RegisterSkierToCourse(context.Background(), &models.Registration{NumWeek: 1}, adult.ID, childrenCourse.ID)
		var ageErr *AgeIneligibleError
		if !errors.As(err, &ageErr) {
			t.Fatalf("expected AgeIneligibleError, got %v", err)
		}
		if ageErr.Expected != GroupChild || ageErr.Age != 16 {
			t.Errorf("unexpected rejection detail: %+v", ageErr)
		}
	})
}

func TestCollectiveCapacity(t *testing.T) {
	db := setupDB(t)
	engine := NewEngine(db, testClock)

	course := createCourse(t, db, models.TypeCourseCollectiveAdult)

	for i := 0; i < CollectiveCapacity; i++ {
		skier := models.Skier{
			FirstName:   fmt.Sprintf("Skier%d", i),
			DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		}
		if err := db.Create(&skier).Error; err != nil {
			t.Fatalf("failed to create skier: %v", err)
		}
		if _, err := engine.RegisterSkierToCourse(context.Background(), &models.Registration{NumWeek: 5}, skier.ID, course.ID); err != nil {
			t.Fatalf("registration %d failed: %v", i+1, err)
		}
	}

	// The 7th attempt for the same (course, week) is rejected.
	extra := adultSkier(t, db)
	_, err := engine.RegisterSkierToCourse(context.Background(), &models.Registration{NumWeek: 5}, extra.ID, course.ID)
	if !errors.Is(err, ErrCourseFull) {
		t.Fatalf("expected ErrCourseFull, got %v", err)
	}

	var count int64
	db.Model(&models.Registration{}).Where("course_id = ? AND num_week = ?", course.ID, 5).Count(&count)
	if count != CollectiveCapacity {
		t.Errorf("expected %d registrations, got %d", CollectiveCapacity, count)
	}

	// Another week of the same course is unaffected.
	if _, err := engine.RegisterSkierToCourse(context.Background(), &models.Registration{NumWeek: 6}, extra.ID, course.ID); err != nil {
		t.Errorf("registration for another week failed: %v", err)
	}
}

func TestIndividualCourseHasNoCapacityCap(t *testing.T) {
	db := setupDB(t)
	engine := NewEngine(db, testClock)

	course := createCourse(t, db, models.TypeCourseIndividual)

	for i := 0; i < CollectiveCapacity+2; i++ {
		skier := models.Skier{
			FirstName:   fmt.Sprintf("Skier%d", i),
			DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		}
		if err := db.Create(&skier).Error; err != nil {
			t.Fatalf("failed to create skier: %v", err)
		}
		if _, err := engine.RegisterSkierToCourse(context.Background(), &models.Registration{NumWeek: 2}, skier.ID, course.ID); err != nil {
			t.Fatalf("registration %d failed: %v", i+1, err)
		}
	}
}

func TestRegisterNotFound(t *testing.T) {
	db := setupDB(t)
	engine := NewEngine(db, testClock)

	course := createCourse(t, db, models.TypeCourseIndividual)
	skier := adultSkier(t, db)

	_, err := engine.RegisterSkierToCourse(context.Background(), &models.Registration{NumWeek: 1}, 9999, course.ID)
	var notFound *NotFoundError
	if !errors.As(err, &notFound) || notFound.Kind != "skier" {
		t.Errorf("expected skier NotFoundError, got %v", err)
	}

	_, err = engine.RegisterSkierToCourse(context.Background(), &models.Registration{NumWeek: 1}, skier.ID, 9999)
	if !errors.As(err, &notFound) || notFound.Kind != "course" {
		t.Errorf("expected course NotFoundError, got %v", err)
	}
}

func TestRegisterUnknownCourseType(t *testing.T) {
	db := setupDB(t)
	engine := NewEngine(db, testClock)

	skier := adultSkier(t, db)
	course := models.Course{TypeCourse: "NIGHT_RIDE", Support: models.SupportSki}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("failed to create course: %v", err)
	}

	_, err := engine.RegisterSkierToCourse(context.Background(), &models.Registration{NumWeek: 1}, skier.ID, course.ID)
	if !errors.Is(err, ErrUnknownCourseType) {
		t.Errorf("expected ErrUnknownCourseType, got %v", err)
	}
}

func TestAssignToCourseRevalidates(t *testing.T) {
	db := setupDB(t)
	engine := NewEngine(db, testClock)

	child := childSkier(t, db)
	childrenCourse := createCourse(t, db, models.TypeCourseCollectiveChildren)
	adultCourse := createCourse(t, db, models.TypeCourseCollectiveAdult)
	individual := createCourse(t, db, models.TypeCourseIndividual)

	reg, err := engine.RegisterSkierToCourse(context.Background(), &models.Registration{NumWeek: 2}, child.ID, childrenCourse.ID)
	if err != nil {
		t.Fatalf("setup registration failed: %v", err)
	}

	t.Run("AgeRecheck", func(t *testing.T) {
		_, err := engine.AssignToCourse(context.Background(), reg.ID, adultCourse.ID)
		var ageErr *AgeIneligibleError
		if !errors.As(err, &ageErr) {
			t.Fatalf("expected AgeIneligibleError, got %v", err)
		}
	})

	t.Run("CapacityRecheck", func(t *testing.T) {
		full := createCourse(t, db, models.TypeCourseCollectiveChildren)
		for i := 0; i < CollectiveCapacity; i++ {
			other := models.Skier{
				FirstName:   fmt.Sprintf("Kid%d", i),
				DateOfBirth: time.Date(2012, 3, 1, 0, 0, 0, 0, time.UTC),
			}
			if err := db.Create(&other).Error; err != nil {
				t.Fatalf("failed to create skier: %v", err)
			}
			if _, err := engine.RegisterSkierToCourse(context.Background(), &models.Registration{NumWeek: 2}, other.ID, full.ID); err != nil {
				t.Fatalf("setup registration %d failed: %v", i+1, err)
			}
		}

		_, err := engine.AssignToCourse(context.Background(), reg.ID, full.ID)
		if !errors.Is(err, ErrCourseFull) {
			t.Fatalf("expected ErrCourseFull, got %v", err)
		}
	})

	t.Run("Success", func(t *testing.T) {
		updated, err := engine.AssignToCourse(context.Background(), reg.ID, individual.ID)
		if err != nil {
			t.Fatalf("reassignment failed: %v", err)
		}
		if updated.CourseID != individual.ID {
			t.Errorf("expected course %d, got %d", individual.ID, updated.CourseID)
		}
	})

	t.Run("RegistrationNotFound", func(t *testing.T) {
		_, err := engine.AssignToCourse(context.Background(), 9999, individual.ID)
		var notFound *NotFoundError
		if !errors.As(err, &notFound) || notFound.Kind != "registration" {
			t.Errorf("expected registration NotFoundError, got %v", err)
		}
	})
}

func TestWeeksByInstructorAndSupport(t *testing.T) {
	db := setupDB(t)
	engine := NewEngine(db, testClock)

	instructor := models.Instructor{FirstName: "Jean", LastName: "Dupont"}
	if err := db.Create(&instructor).Error; err != nil {
		t.Fatalf("failed to create instructor: %v", err)
	}

	skiCourse := models.Course{TypeCourse: models.TypeCourseIndividual, Support: models.SupportSki, InstructorID: &instructor.ID}
	snowboardCourse := models.Course{TypeCourse: models.TypeCourseIndividual, Support: models.SupportSnowboard, InstructorID: &instructor.ID}
	if err := db.Create(&skiCourse).Error; err != nil {
		t.Fatalf("failed to create course: %v", err)
	}
	if err := db.Create(&snowboardCourse).Error; err != nil {
		t.Fatalf("failed to create course: %v", err)
	}

	for i, week := range []int{1, 2, 2, 3} {
		skier := models.Skier{
			FirstName:   fmt.Sprintf("Skier%d", i),
			DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		}
		if err := db.Create(&skier).Error; err != nil {
			t.Fatalf("failed to create skier: %v", err)
		}
		if err := db.Create(&models.Registration{NumWeek: week, SkierID: skier.ID, CourseID: skiCourse.ID}).Error; err != nil {
			t.Fatalf("failed to create registration: %v", err)
		}
		if err := db.Create(&models.Registration{NumWeek: 7, SkierID: skier.ID, CourseID: snowboardCourse.ID}).Error; err != nil {
			t.Fatalf("failed to create registration: %v", err)
		}
	}

	weeks, err := engine.WeeksByInstructorAndSupport(context.Background(), instructor.ID, models.SupportSki)
	if err != nil {
		t.Fatalf("weeks query failed: %v", err)
	}
	want := []int{1, 2, 3}
	if len(weeks) != len(want) {
		t.Fatalf("expected weeks %v, got %v", want, weeks)
	}
	for i := range want {
		if weeks[i] != want[i] {
			t.Errorf("expected weeks %v, got %v", want, weeks)
			break
		}
	}

	_, err = engine.WeeksByInstructorAndSupport(context.Background(), 9999, models.SupportSki)
	var notFound *NotFoundError
	if !errors.As(err, &notFound) || notFound.Kind != "instructor" {
		t.Errorf("expected instructor NotFoundError, got %v", err)
	}
}

func TestConcurrentRegistrationsRespectCapacity(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.Skier{}, &models.Course{}, &models.Registration{}); err != nil {
		t.Fatalf("failed to auto migrate: %v", err)
	}

	engine := NewEngine(db, testClock)
	course := createCourse(t, db, models.TypeCourseCollectiveAdult)

	const attempts = 10
	skiers := make([]models.Skier, attempts)
	for i := range skiers {
		skiers[i] = models.Skier{
			FirstName:   fmt.Sprintf("Racer%d", i),
			DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		}
		if err := db.Create(&skiers[i]).Error; err != nil {
			t.Fatalf("failed to create skier: %v", err)
		}
	}

	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(skierID uint) {
			defer wg.Done()
			_, err := engine.RegisterSkierToCourse(context.Background(), &models.Registration{NumWeek: 9}, skierID, course.ID)
			results <- err
		}(skiers[i].ID)
	}
	wg.Wait()
	close(results)

	var succeeded, full int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrCourseFull):
			full++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	if succeeded != CollectiveCapacity {
		t.Errorf("expected %d successful registrations, got %d", CollectiveCapacity, succeeded)
	}
	if full != attempts-CollectiveCapacity {
		t.Errorf("expected %d CourseFull rejections, got %d", attempts-CollectiveCapacity, full)
	}

	var count int64
	db.Model(&models.Registration{}).Where("course_id = ? AND num_week = ?", course.ID, 9).Count(&count)
	if count != CollectiveCapacity {
		t.Errorf("expected %d persisted registrations, got %d", CollectiveCapacity, count)
	}
}
