package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/snowpeak-resort/station-api/internal/models"
	"gorm.io/gorm"
)

type CourseHandler struct {
	db *gorm.DB
}

func NewCourseHandler(db *gorm.DB) *CourseHandler {
	return &CourseHandler{db: db}
}

type CourseBody struct {
	ID           uint              `json:"id"`
	Level        int               `json:"level"`
	TypeCourse   models.TypeCourse `json:"type_course"`
	Support      models.Support    `json:"support"`
	Price        float64           `json:"price"`
	TimeSlot     int               `json:"time_slot"`
	InstructorID *uint             `json:"instructor_id,omitempty"`
}

func courseBody(course *models.Course) CourseBody {
	return CourseBody{
		ID:           course.ID,
		Level:        course.Level,
		TypeCourse:   course.TypeCourse,
		Support:      course.Support,
		Price:        course.Price,
		TimeSlot:     course.TimeSlot,
		InstructorID: course.InstructorID,
	}
}

type CourseFieldsBody struct {
	Level      int     `json:"level"`
	TypeCourse string  `json:"type_course" enum:"INDIVIDUAL,COLLECTIVE_CHILDREN,COLLECTIVE_ADULT" required:"true"`
	Support    string  `json:"support" enum:"SKI,SNOWBOARD" required:"true"`
	Price      float64 `json:"price"`
	TimeSlot   int     `json:"time_slot"`
}

type CreateCourseRequest struct {
	Body CourseFieldsBody
}

type CourseResponse struct {
	Body CourseBody
}

func (h *CourseHandler) HandleCreate(ctx context.Context, input *CreateCourseRequest) (*CourseResponse, error) {
	course := models.Course{
		Level:      input.Body.Level,
		TypeCourse: models.TypeCourse(input.Body.TypeCourse),
		Support:    models.Support(input.Body.Support),
		Price:      input.Body.Price,
		TimeSlot:   input.Body.TimeSlot,
	}

	if err := h.db.WithContext(ctx).Create(&course).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to create course: " + err.Error())
	}

	return &CourseResponse{Body: courseBody(&course)}, nil
}

type UpdateCourseRequest struct {
	ID   uint `path:"id"`
	Body CourseFieldsBody
}

func (h *CourseHandler) HandleUpdate(ctx context.Context, input *UpdateCourseRequest) (*CourseResponse, error) {
	var course models.Course
	if err := h.db.WithContext(ctx).First(&course, input.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Course not found")
		}
		return nil, huma.Error500InternalServerError("Failed to fetch course: " + err.Error())
	}

	course.Level = input.Body.Level
	course.TypeCourse = models.TypeCourse(input.Body.TypeCourse)
	course.Support = models.Support(input.Body.Support)
	course.Price = input.Body.Price
	course.TimeSlot = input.Body.TimeSlot

	if err := h.db.WithContext(ctx).Save(&course).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to update course: " + err.Error())
	}

	return &CourseResponse{Body: courseBody(&course)}, nil
}

type GetCourseRequest struct {
	ID uint `path:"id"`
}

func (h *CourseHandler) HandleGet(ctx context.Context, input *GetCourseRequest) (*CourseResponse, error) {
	var course models.Course
	if err := h.db.WithContext(ctx).First(&course, input.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Course not found")
		}
		return nil, huma.Error500InternalServerError("Failed to fetch course: " + err.Error())
	}

	return &CourseResponse{Body: courseBody(&course)}, nil
}

type CourseListResponse struct {
	Body []CourseBody
}

func (h *CourseHandler) HandleList(ctx context.Context, _ *struct{}) (*CourseListResponse, error) {
	var courses []models.Course
	if err := h.db.WithContext(ctx).Find(&courses).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list courses: " + err.Error())
	}

	res := &CourseListResponse{}
	for i := range courses {
		res.Body = append(res.Body, courseBody(&courses[i]))
	}
	return res, nil
}
