package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/snowpeak-resort/station-api/internal/models"
	"github.com/snowpeak-resort/station-api/internal/subscription"
	"gorm.io/gorm"
)

type SkierHandler struct {
	db *gorm.DB
}

func NewSkierHandler(db *gorm.DB) *SkierHandler {
	return &SkierHandler{db: db}
}

type SkierBody struct {
	ID             uint      `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	DateOfBirth    time.Time `json:"date_of_birth"`
	City           string    `json:"city"`
	SubscriptionID *uint     `json:"subscription_id,omitempty"`
}

func skierBody(skier *models.Skier) SkierBody {
	return SkierBody{
		ID:             skier.ID,
		FirstName:      skier.FirstName,
		LastName:       skier.LastName,
		DateOfBirth:    skier.DateOfBirth,
		City:           skier.City,
		SubscriptionID: skier.SubscriptionID,
	}
}

type CreateSkierRequest struct {
	Body struct {
		FirstName    string    `json:"first_name" required:"true"`
		LastName     string    `json:"last_name" required:"true"`
		DateOfBirth  time.Time `json:"date_of_birth" required:"true"`
		City         string    `json:"city"`
		Subscription *struct {
			TypeSub   string    `json:"type_sub" enum:"MONTHLY,SEMESTRIEL,ANNUAL" required:"true"`
			StartDate time.Time `json:"start_date" required:"true"`
			Price     float64   `json:"price"`
		} `json:"subscription,omitempty" doc:"Optional plan opened together with the skier"`
	}
}

type SkierResponse struct {
	Body SkierBody
}

func (h *SkierHandler) HandleCreate(ctx context.Context, input *CreateSkierRequest) (*SkierResponse, error) {
	skier := models.Skier{
		FirstName:   input.Body.FirstName,
		LastName:    input.Body.LastName,
		DateOfBirth: input.Body.DateOfBirth,
		City:        input.Body.City,
	}

	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if input.Body.Subscription != nil {
			endDate, err := subscription.EndDate(
				models.TypeSubscription(input.Body.Subscription.TypeSub),
				input.Body.Subscription.StartDate,
			)
			if err != nil {
				return err
			}
			sub := models.Subscription{
				TypeSub:   models.TypeSubscription(input.Body.Subscription.TypeSub),
				StartDate: input.Body.Subscription.StartDate,
				EndDate:   endDate,
				Price:     input.Body.Subscription.Price,
			}
			if err := tx.Create(&sub).Error; err != nil {
				return err
			}
			skier.SubscriptionID = &sub.ID
		}
		return tx.Create(&skier).Error
	})
	if err != nil {
		if errors.Is(err, subscription.ErrInvalidPlanType) {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		return nil, huma.Error500InternalServerError("Failed to create skier: " + err.Error())
	}

	return &SkierResponse{Body: skierBody(&skier)}, nil
}

type GetSkierRequest struct {
	ID uint `path:"id"`
}

func (h *SkierHandler) HandleGet(ctx context.Context, input *GetSkierRequest) (*SkierResponse, error) {
	var skier models.Skier
	if err := h.db.WithContext(ctx).First(&skier, input.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Skier not found")
		}
		return nil, huma.Error500InternalServerError("Failed to fetch skier: " + err.Error())
	}

	return &SkierResponse{Body: skierBody(&skier)}, nil
}

type ListSkiersRequest struct {
	TypeSub string `query:"subscription_type" enum:"MONTHLY,SEMESTRIEL,ANNUAL" doc:"Filter by subscription plan type"`
}

type SkierListResponse struct {
	Body []SkierBody
}

func (h *SkierHandler) HandleList(ctx context.Context, input *ListSkiersRequest) (*SkierListResponse, error) {
	query := h.db.WithContext(ctx).Model(&models.Skier{})
	if input.TypeSub != "" {
		query = query.
			Joins("JOIN subscriptions ON subscriptions.id = skiers.subscription_id").
			Where("subscriptions.type_sub = ?", input.TypeSub)
	}

	var skiers []models.Skier
	if err := query.Find(&skiers).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list skiers: " + err.Error())
	}

	res := &SkierListResponse{}
	for i := range skiers {
		res.Body = append(res.Body, skierBody(&skiers[i]))
	}
	return res, nil
}

type DeleteSkierRequest struct {
	ID uint `path:"id"`
}

func (h *SkierHandler) HandleDelete(ctx context.Context, input *DeleteSkierRequest) (*struct{}, error) {
	if err := h.db.WithContext(ctx).Delete(&models.Skier{}, input.ID).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to delete skier: " + err.Error())
	}
	return nil, nil
}

type AssignPisteRequest struct {
	SkierID uint `path:"id"`
	PisteID uint `path:"pisteId"`
}

func (h *SkierHandler) HandleAssignPiste(ctx context.Context, input *AssignPisteRequest) (*SkierResponse, error) {
	var skier models.Skier
	if err := h.db.WithContext(ctx).First(&skier, input.SkierID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Skier not found")
		}
		return nil, huma.Error500InternalServerError("Failed to fetch skier: " + err.Error())
	}

	var piste models.Piste
	if err := h.db.WithContext(ctx).First(&piste, input.PisteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Piste not found")
		}
		return nil, huma.Error500InternalServerError("Failed to fetch piste: " + err.Error())
	}

	if err := h.db.WithContext(ctx).Model(&skier).Association("Pistes").Append(&piste); err != nil {
		return nil, huma.Error500InternalServerError("Failed to assign piste: " + err.Error())
	}

	return &SkierResponse{Body: skierBody(&skier)}, nil
}

type AssignSubscriptionRequest struct {
	SkierID        uint `path:"id"`
	SubscriptionID uint `path:"subscriptionId"`
}

func (h *SkierHandler) HandleAssignSubscription(ctx context.Context, input *AssignSubscriptionRequest) (*SkierResponse, error) {
	var skier models.Skier
	if err := h.db.WithContext(ctx).First(&skier, input.SkierID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Skier not found")
		}
		return nil, huma.Error500InternalServerError("Failed to fetch skier: " + err.Error())
	}

	var sub models.Subscription
	if err := h.db.WithContext(ctx).First(&sub, input.SubscriptionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Subscription not found")
		}
		return nil, huma.Error500InternalServerError("Failed to fetch subscription: " + err.Error())
	}

	skier.SubscriptionID = &sub.ID
	if err := h.db.WithContext(ctx).Save(&skier).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to assign subscription: " + err.Error())
	}

	return &SkierResponse{Body: skierBody(&skier)}, nil
}
