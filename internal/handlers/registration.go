package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/snowpeak-resort/station-api/internal/models"
	"github.com/snowpeak-resort/station-api/internal/registration"
)

type RegistrationHandler struct {
	engine *registration.Engine
}

func NewRegistrationHandler(engine *registration.Engine) *RegistrationHandler {
	return &RegistrationHandler{engine: engine}
}

type RegistrationBody struct {
	ID       uint `json:"id"`
	NumWeek  int  `json:"num_week"`
	SkierID  uint `json:"skier_id"`
	CourseID uint `json:"course_id"`
}

func registrationBody(reg *models.Registration) RegistrationBody {
	return RegistrationBody{
		ID:       reg.ID,
		NumWeek:  reg.NumWeek,
		SkierID:  reg.SkierID,
		CourseID: reg.CourseID,
	}
}

type RegisterRequest struct {
	Body struct {
		NumWeek  int  `json:"num_week" doc:"Week number the skier registers for" required:"true"`
		SkierID  uint `json:"skier_id" doc:"Skier to register" required:"true"`
		CourseID uint `json:"course_id" doc:"Course to register into" required:"true"`
	}
}

type RegistrationResponse struct {
	Body RegistrationBody
}

func (h *RegistrationHandler) HandleRegister(ctx context.Context, input *RegisterRequest) (*RegistrationResponse, error) {
	draft := &models.Registration{NumWeek: input.Body.NumWeek}
	reg, err := h.engine.RegisterSkierToCourse(ctx, draft, input.Body.SkierID, input.Body.CourseID)
	if err != nil {
		return nil, engineError(err)
	}

	return &RegistrationResponse{Body: registrationBody(reg)}, nil
}

type RegisterSkierRequest struct {
	SkierID uint `path:"skierId"`
	Body    struct {
		NumWeek int `json:"num_week" doc:"Week number the skier registers for" required:"true"`
	}
}

func (h *RegistrationHandler) HandleRegisterSkier(ctx context.Context, input *RegisterSkierRequest) (*RegistrationResponse, error) {
	draft := &models.Registration{NumWeek: input.Body.NumWeek}
	reg, err := h.engine.RegisterSkier(ctx, draft, input.SkierID)
	if err != nil {
		return nil, engineError(err)
	}

	return &RegistrationResponse{Body: registrationBody(reg)}, nil
}

type AssignCourseRequest struct {
	RegistrationID uint `path:"id"`
	CourseID       uint `path:"courseId"`
}

func (h *RegistrationHandler) HandleAssignCourse(ctx context.Context, input *AssignCourseRequest) (*RegistrationResponse, error) {
	reg, err := h.engine.AssignToCourse(ctx, input.RegistrationID, input.CourseID)
	if err != nil {
		return nil, engineError(err)
	}

	return &RegistrationResponse{Body: registrationBody(reg)}, nil
}

type InstructorWeeksRequest struct {
	InstructorID uint   `path:"id"`
	Support      string `query:"support" enum:"SKI,SNOWBOARD" required:"true" doc:"Support medium taught"`
}

type InstructorWeeksResponse struct {
	Body struct {
		Weeks []int `json:"weeks"`
	}
}

func (h *RegistrationHandler) HandleInstructorWeeks(ctx context.Context, input *InstructorWeeksRequest) (*InstructorWeeksResponse, error) {
	weeks, err := h.engine.WeeksByInstructorAndSupport(ctx, input.InstructorID, models.Support(input.Support))
	if err != nil {
		return nil, engineError(err)
	}

	res := &InstructorWeeksResponse{}
	res.Body.Weeks = weeks
	return res, nil
}

// engineError translates the engine's rejection taxonomy into HTTP
// statuses so callers can branch on the specific reason.
func engineError(err error) error {
	var notFound *registration.NotFoundError
	var ageIneligible *registration.AgeIneligibleError
	switch {
	case errors.As(err, &notFound):
		return huma.Error404NotFound(notFound.Error())
	case errors.Is(err, registration.ErrAlreadyRegistered):
		return huma.Error409Conflict(err.Error())
	case errors.Is(err, registration.ErrCourseFull):
		return huma.Error409Conflict(err.Error())
	case errors.As(err, &ageIneligible):
		return huma.Error422UnprocessableEntity(ageIneligible.Error())
	case errors.Is(err, registration.ErrUnknownCourseType):
		return huma.Error422UnprocessableEntity(err.Error())
	default:
		return huma.Error500InternalServerError("Failed to process registration: " + err.Error())
	}
}
