package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/snowpeak-resort/station-api/internal/models"
	"gorm.io/gorm"
)

type PisteHandler struct {
	db *gorm.DB
}

func NewPisteHandler(db *gorm.DB) *PisteHandler {
	return &PisteHandler{db: db}
}

type PisteBody struct {
	ID        uint              `json:"id"`
	NamePiste string            `json:"name_piste"`
	Color     models.PisteColor `json:"color"`
	Length    int               `json:"length"`
	Slope     int               `json:"slope"`
}

func pisteBody(piste *models.Piste) PisteBody {
	return PisteBody{
		ID:        piste.ID,
		NamePiste: piste.NamePiste,
		Color:     piste.Color,
		Length:    piste.Length,
		Slope:     piste.Slope,
	}
}

type CreatePisteRequest struct {
	Body struct {
		NamePiste string `json:"name_piste" required:"true"`
		Color     string `json:"color" enum:"GREEN,BLUE,RED,BLACK" required:"true"`
		Length    int    `json:"length"`
		Slope     int    `json:"slope"`
	}
}

type PisteResponse struct {
	Body PisteBody
}

func (h *PisteHandler) HandleCreate(ctx context.Context, input *CreatePisteRequest) (*PisteResponse, error) {
	piste := models.Piste{
		NamePiste: input.Body.NamePiste,
		Color:     models.PisteColor(input.Body.Color),
		Length:    input.Body.Length,
		Slope:     input.Body.Slope,
	}

	if err := h.db.WithContext(ctx).Create(&piste).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to create piste: " + err.Error())
	}

	return &PisteResponse{Body: pisteBody(&piste)}, nil
}

type GetPisteRequest struct {
	ID uint `path:"id"`
}

func (h *PisteHandler) HandleGet(ctx context.Context, input *GetPisteRequest) (*PisteResponse, error) {
	var piste models.Piste
	if err := h.db.WithContext(ctx).First(&piste, input.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Piste not found")
		}
		return nil, huma.Error500InternalServerError("Failed to fetch piste: " + err.Error())
	}

	return &PisteResponse{Body: pisteBody(&piste)}, nil
}

type PisteListResponse struct {
	Body []PisteBody
}

func (h *PisteHandler) HandleList(ctx context.Context, _ *struct{}) (*PisteListResponse, error) {
	var pistes []models.Piste
	if err := h.db.WithContext(ctx).Find(&pistes).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list pistes: " + err.Error())
	}

	res := &PisteListResponse{}
	for i := range pistes {
		res.Body = append(res.Body, pisteBody(&pistes[i]))
	}
	return res, nil
}

type DeletePisteRequest struct {
	ID uint `path:"id"`
}

func (h *PisteHandler) HandleDelete(ctx context.Context, input *DeletePisteRequest) (*struct{}, error) {
	if err := h.db.WithContext(ctx).Delete(&models.Piste{}, input.ID).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to delete piste: " + err.Error())
	}
	return nil, nil
}
