package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/snowpeak-resort/station-api/internal/models"
	"github.com/snowpeak-resort/station-api/internal/subscription"
)

type SubscriptionHandler struct {
	service *subscription.Service
}

func NewSubscriptionHandler(service *subscription.Service) *SubscriptionHandler {
	return &SubscriptionHandler{service: service}
}

type SubscriptionBody struct {
	ID        uint                    `json:"id"`
	TypeSub   models.TypeSubscription `json:"type_sub"`
	StartDate time.Time               `json:"start_date"`
	EndDate   time.Time               `json:"end_date"`
	Price     float64                 `json:"price"`
}

func subscriptionBody(sub *models.Subscription) SubscriptionBody {
	return SubscriptionBody{
		ID:        sub.ID,
		TypeSub:   sub.TypeSub,
		StartDate: sub.StartDate,
		EndDate:   sub.EndDate,
		Price:     sub.Price,
	}
}

type CreateSubscriptionRequest struct {
	Body struct {
		TypeSub   string    `json:"type_sub" enum:"MONTHLY,SEMESTRIEL,ANNUAL" required:"true" doc:"Plan type"`
		StartDate time.Time `json:"start_date" required:"true"`
		Price     float64   `json:"price"`
	}
}

type SubscriptionResponse struct {
	Body SubscriptionBody
}

func (h *SubscriptionHandler) HandleCreate(ctx context.Context, input *CreateSubscriptionRequest) (*SubscriptionResponse, error) {
	sub := &models.Subscription{
		TypeSub:   models.TypeSubscription(input.Body.TypeSub),
		StartDate: input.Body.StartDate,
		Price:     input.Body.Price,
	}

	sub, err := h.service.Create(ctx, sub)
	if err != nil {
		return nil, subscriptionError(err)
	}

	return &SubscriptionResponse{Body: subscriptionBody(sub)}, nil
}

type UpdateSubscriptionRequest struct {
	ID   uint `path:"id"`
	Body struct {
		TypeSub   string    `json:"type_sub" enum:"MONTHLY,SEMESTRIEL,ANNUAL" required:"true" doc:"Plan type"`
		StartDate time.Time `json:"start_date" required:"true"`
		Price     float64   `json:"price"`
	}
}

func (h *SubscriptionHandler) HandleUpdate(ctx context.Context, input *UpdateSubscriptionRequest) (*SubscriptionResponse, error) {
	sub, err := h.service.Get(ctx, input.ID)
	if err != nil {
		return nil, subscriptionError(err)
	}

	sub.TypeSub = models.TypeSubscription(input.Body.TypeSub)
	sub.StartDate = input.Body.StartDate
	sub.Price = input.Body.Price

	sub, err = h.service.Update(ctx, sub)
	if err != nil {
		return nil, subscriptionError(err)
	}

	return &SubscriptionResponse{Body: subscriptionBody(sub)}, nil
}

type GetSubscriptionRequest struct {
	ID uint `path:"id"`
}

func (h *SubscriptionHandler) HandleGet(ctx context.Context, input *GetSubscriptionRequest) (*SubscriptionResponse, error) {
	sub, err := h.service.Get(ctx, input.ID)
	if err != nil {
		return nil, subscriptionError(err)
	}

	return &SubscriptionResponse{Body: subscriptionBody(sub)}, nil
}

type SubscriptionsByTypeRequest struct {
	TypeSub string `query:"type" enum:"MONTHLY,SEMESTRIEL,ANNUAL" required:"true"`
}

type SubscriptionListResponse struct {
	Body []SubscriptionBody
}

func (h *SubscriptionHandler) HandleByType(ctx context.Context, input *SubscriptionsByTypeRequest) (*SubscriptionListResponse, error) {
	subs, err := h.service.ByType(ctx, models.TypeSubscription(input.TypeSub))
	if err != nil {
		return nil, subscriptionError(err)
	}

	res := &SubscriptionListResponse{}
	for i := range subs {
		res.Body = append(res.Body, subscriptionBody(&subs[i]))
	}
	return res, nil
}

type SubscriptionsByDatesRequest struct {
	From time.Time `query:"from" required:"true"`
	To   time.Time `query:"to" required:"true"`
}

func (h *SubscriptionHandler) HandleByDateRange(ctx context.Context, input *SubscriptionsByDatesRequest) (*SubscriptionListResponse, error) {
	subs, err := h.service.ByDateRange(ctx, input.From, input.To)
	if err != nil {
		return nil, subscriptionError(err)
	}

	res := &SubscriptionListResponse{}
	for i := range subs {
		res.Body = append(res.Body, subscriptionBody(&subs[i]))
	}
	return res, nil
}

type RevenueResponse struct {
	Body subscription.RevenueReport
}

func (h *SubscriptionHandler) HandleRevenue(ctx context.Context, _ *struct{}) (*RevenueResponse, error) {
	report, err := h.service.MonthlyRecurringRevenue(ctx)
	if err != nil {
		return nil, subscriptionError(err)
	}

	return &RevenueResponse{Body: report}, nil
}

func subscriptionError(err error) error {
	switch {
	case errors.Is(err, subscription.ErrNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, subscription.ErrInvalidPlanType):
		return huma.Error422UnprocessableEntity(err.Error())
	default:
		return huma.Error500InternalServerError("Failed to process subscription: " + err.Error())
	}
}
