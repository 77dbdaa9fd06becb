package dto

import (
	"time"

	"github.com/BorisVilhard/IT-MAXI-BE/internal/domain/enums"
	"github.com/BorisVilhard/IT-MAXI-BE/internal/domain/model"
	"github.com/BorisVilhard/IT-MAXI-BE/internal/services/interactions"
)

type CreateInteractionRequest struct {
	JobID      string `json:"jobId"`
	Message    string `json:"message"`
	SenderRole string `json:"senderRole"`
}

type UpdateInteractionRequest struct {
	Status     enums.InteractionStatus `json:"status"`
	IsFavorite bool                    `json:"isFavorite"`
}

type InteractionResponse struct {
	Message     string            `json:"message"`
	Interaction model.Interaction `json:"interaction"`
}

type InteractionsListResponse struct {
	Interactions []interactions.InteractionView `json:"interactions"`
}

type InteractionUpdateResponse struct {
	ID         string                  `json:"id"`
	Status     enums.InteractionStatus `json:"status"`
	IsFavorite bool                    `json:"isFavorite"`
	Timestamp  time.Time               `json:"timestamp"`
}
