package model

import (
	"time"

	"github.com/BorisVilhard/IT-MAXI-BE/internal/domain/enums"
)

// Interaction is a directed message from a sender to the owner of the
// referenced job or course post. Only the recipient may change its
// status or remove it.
type Interaction struct {
	ID          string                  `json:"id"`
	PostID      string                  `json:"jobId"`
	SenderID    int64                   `json:"senderId"`
	RecipientID int64                   `json:"recipientId"`
	Message     string                  `json:"message"`
	SenderRole  enums.SenderRole        `json:"senderRole"`
	Status      enums.InteractionStatus `json:"status"`
	IsFavorite  bool                    `json:"isFavorite"`
	CreatedAt   time.Time               `json:"timestamp"`
}
