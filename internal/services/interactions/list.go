package interactions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BorisVilhard/IT-MAXI-BE/internal/domain/enums"
	"github.com/BorisVilhard/IT-MAXI-BE/internal/domain/model"
	pgrepo "github.com/BorisVilhard/IT-MAXI-BE/internal/repo/postgres"
)

type PostView struct {
	ID          string `json:"id"`
	Position    string `json:"position"`
	Company     string `json:"company"`
	Description string `json:"description"`
}

type Participant struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatarURL"`
}

// SenderView carries the contact fields the recipient needs to reply
// outside the platform, pulled from the sender's profile.
type SenderView struct {
	Participant
	SenderRole enums.SenderRole `json:"senderRole"`
	Phone      string           `json:"phone"`
	Website    string           `json:"website"`
	GitHub     string           `json:"github"`
	CVURL      string           `json:"cvUrl"`
}

type InteractionView struct {
	ID         string                  `json:"id"`
	Job        *PostView               `json:"job"`
	Sender     SenderView              `json:"sender"`
	Recipient  Participant             `json:"recipient"`
	Message    string                  `json:"message"`
	Timestamp  time.Time               `json:"timestamp"`
	Status     enums.InteractionStatus `json:"status"`
	IsFavorite bool                    `json:"isFavorite"`
}

// ListForUser returns everything the user sent or received, enriched
// with both participants and the referenced post.
func (s *Service) ListForUser(ctx context.Context, userID int64) ([]InteractionView, error) {
	items, err := s.interactions.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}

	views := make([]InteractionView, 0, len(items))
	for _, in := range items {
		view := InteractionView{
			ID:         in.ID,
			Job:        s.postView(ctx, in.PostID),
			Message:    in.Message,
			Timestamp:  in.CreatedAt,
			Status:     in.Status,
			IsFavorite: in.IsFavorite,
		}

		sender, senderProfile := s.participant(ctx, in.SenderID)
		view.Sender = SenderView{Participant: sender, SenderRole: in.SenderRole}
		if senderProfile != nil {
			view.Sender.Phone = senderProfile.Phone
			view.Sender.Website = senderProfile.Website
			view.Sender.GitHub = senderProfile.GitHub
			if senderProfile.Email != "" {
				view.Sender.Email = senderProfile.Email
			}
			if senderProfile.CV != nil {
				view.Sender.CVURL = fmt.Sprintf("%s/profile/%d/cv", s.baseURL, in.SenderID)
			}
		}

		view.Recipient, _ = s.participant(ctx, in.RecipientID)
		views = append(views, view)
	}

	return views, nil
}

func (s *Service) participant(ctx context.Context, userID int64) (Participant, *model.Profile) {
	p := Participant{ID: userID, AvatarURL: DefaultAvatarURL}

	if user, err := s.users.Get(ctx, userID); err == nil {
		p.Username = user.Username
		p.Email = user.Email
	}

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, pgrepo.ErrProfileNotFound) {
			return p, nil
		}
		return p, nil
	}
	if profile.Avatar != nil {
		p.AvatarURL = fmt.Sprintf("%s/profile/%d/avatar", s.baseURL, userID)
	}
	return p, profile
}

func (s *Service) postView(ctx context.Context, postID string) *PostView {
	if profile, err := s.profiles.FindByJobID(ctx, postID); err == nil {
		if job := profile.FindJob(postID); job != nil {
			return &PostView{ID: job.ID, Position: job.Position, Description: job.Description}
		}
	}
	if profile, err := s.profiles.FindByCourseID(ctx, postID); err == nil {
		if course := profile.FindCourse(postID); course != nil {
			return &PostView{ID: course.ID, Position: course.Title, Description: course.Description}
		}
	}
	return nil
}
