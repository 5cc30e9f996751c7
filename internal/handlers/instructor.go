package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/snowpeak-resort/station-api/internal/models"
	"gorm.io/gorm"
)

type InstructorHandler struct {
	db *gorm.DB
}

func NewInstructorHandler(db *gorm.DB) *InstructorHandler {
	return &InstructorHandler{db: db}
}

type InstructorBody struct {
	ID         uint      `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	DateOfHire time.Time `json:"date_of_hire"`
}

func instructorBody(instructor *models.Instructor) InstructorBody {
	return InstructorBody{
		ID:         instructor.ID,
		FirstName:  instructor.FirstName,
		LastName:   instructor.LastName,
		DateOfHire: instructor.DateOfHire,
	}
}

type CreateInstructorRequest struct {
	Body struct {
		FirstName  string    `json:"first_name" required:"true"`
		LastName   string    `json:"last_name" required:"true"`
		DateOfHire time.Time `json:"date_of_hire"`
		CourseID   uint      `json:"course_id,omitempty" doc:"Optional course to take over"`
	}
}

type InstructorResponse struct {
	Body InstructorBody
}

func (h *InstructorHandler) HandleCreate(ctx context.Context, input *CreateInstructorRequest) (*InstructorResponse, error) {
	instructor := models.Instructor{
		FirstName:  input.Body.FirstName,
		LastName:   input.Body.LastName,
		DateOfHire: input.Body.DateOfHire,
	}

	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&instructor).Error; err != nil {
			return err
		}
		if input.Body.CourseID != 0 {
			var course models.Course
			if err := tx.First(&course, input.Body.CourseID).Error; err != nil {
				return err
			}
			course.InstructorID = &instructor.ID
			if err := tx.Save(&course).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Course not found")
		}
		return nil, huma.Error500InternalServerError("Failed to create instructor: " + err.Error())
	}

	return &InstructorResponse{Body: instructorBody(&instructor)}, nil
}

type GetInstructorRequest struct {
	ID uint `path:"id"`
}

func (h *InstructorHandler) HandleGet(ctx context.Context, input *GetInstructorRequest) (*InstructorResponse, error) {
	var instructor models.Instructor
	if err := h.db.WithContext(ctx).First(&instructor, input.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Instructor not found")
		}
		return nil, huma.Error500InternalServerError("Failed to fetch instructor: " + err.Error())
	}

	return &InstructorResponse{Body: instructorBody(&instructor)}, nil
}

type InstructorListResponse struct {
	Body []InstructorBody
}

func (h *InstructorHandler) HandleList(ctx context.Context, _ *struct{}) (*InstructorListResponse, error) {
	var instructors []models.Instructor
	if err := h.db.WithContext(ctx).Find(&instructors).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list instructors: " + err.Error())
	}

	res := &InstructorListResponse{}
	for i := range instructors {
		res.Body = append(res.Body, instructorBody(&instructors[i]))
	}
	return res, nil
}
