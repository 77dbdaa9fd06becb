package interactions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/BorisVilhard/IT-MAXI-BE/internal/domain/enums"
	"github.com/BorisVilhard/IT-MAXI-BE/internal/domain/model"
	pgrepo "github.com/BorisVilhard/IT-MAXI-BE/internal/repo/postgres"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrPostNotFound  = errors.New("post not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrNotFound      = errors.New("interaction not found")
	ErrNotAuthorized = errors.New("not authorized")
)

// DefaultAvatarURL is served for participants without an avatar.
const DefaultAvatarURL = "/default-avatar.png"

type InteractionStore interface {
	Create(ctx context.Context, in model.Interaction) (model.Interaction, error)
	Get(ctx context.Context, id string) (model.Interaction, error)
	ListForUser(ctx context.Context, userID int64) ([]model.Interaction, error)
	Update(ctx context.Context, id string, status enums.InteractionStatus, isFavorite bool) (model.Interaction, error)
	Delete(ctx context.Context, id string) error
}

type ProfileStore interface {
	Get(ctx context.Context, userID int64) (*model.Profile, error)
	FindByJobID(ctx context.Context, jobID string) (*model.Profile, error)
	FindByCourseID(ctx context.Context, courseID string) (*model.Profile, error)
}

type UserStore interface {
	Get(ctx context.Context, userID int64) (model.User, error)
}

// Service is the directed message log between users. An interaction
// references an embedded job or course; its recipient is derived from
// the post's owner, never supplied by the client.
type Service struct {
	interactions InteractionStore
	profiles     ProfileStore
	users        UserStore
	baseURL      string
	newID        func() string
}

func NewService(interactions InteractionStore, profiles ProfileStore, users UserStore, baseURL string) *Service {
	return &Service{
		interactions: interactions,
		profiles:     profiles,
		users:        users,
		baseURL:      baseURL,
		newID:        uuid.NewString,
	}
}

type CreateInput struct {
	PostID     string
	Message    string
	SenderRole string
}

// Create records a pending interaction. The referenced post must exist
// in some profile or nothing is persisted.
func (s *Service) Create(ctx context.Context, senderID int64, in CreateInput) (model.Interaction, error) {
	role := enums.SenderRole(in.SenderRole)
	if !role.Valid() {
		return model.Interaction{}, fmt.Errorf("invalid sender role %q: %w", in.SenderRole, ErrValidation)
	}
	if in.PostID == "" {
		return model.Interaction{}, fmt.Errorf("post id is required: %w", ErrValidation)
	}

	owner, err := s.findPostOwner(ctx, in.PostID)
	if err != nil {
		return model.Interaction{}, err
	}

	if _, err := s.users.Get(ctx, senderID); err != nil {
		return model.Interaction{}, s.userErr(err)
	}
	if _, err := s.users.Get(ctx, owner.UserID); err != nil {
		return model.Interaction{}, s.userErr(err)
	}

	created, err := s.interactions.Create(ctx, model.Interaction{
		ID:          s.newID(),
		PostID:      in.PostID,
		SenderID:    senderID,
		RecipientID: owner.UserID,
		Message:     in.Message,
		SenderRole:  role,
		Status:      enums.InteractionPending,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		return model.Interaction{}, fmt.Errorf("create interaction: %w", err)
	}
	return created, nil
}

// Update changes status or favorite flag. Only the recipient may do
// this; anyone else gets ErrNotAuthorized, which is distinct from the
// interaction not existing at all.
func (s *Service) Update(ctx context.Context, callerID int64, id string, status enums.InteractionStatus, isFavorite bool) (model.Interaction, error) {
	if !status.Valid() {
		return model.Interaction{}, fmt.Errorf("invalid status %q: %w", status, ErrValidation)
	}

	existing, err := s.interactions.Get(ctx, id)
	if err != nil {
		return model.Interaction{}, s.interactionErr(err)
	}
	if existing.RecipientID != callerID {
		return model.Interaction{}, ErrNotAuthorized
	}

	updated, err := s.interactions.Update(ctx, id, status, isFavorite)
	if err != nil {
		return model.Interaction{}, s.interactionErr(err)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, callerID int64, id string) error {
	existing, err := s.interactions.Get(ctx, id)
	if err != nil {
		return s.interactionErr(err)
	}
	if existing.RecipientID != callerID {
		return ErrNotAuthorized
	}

	if err := s.interactions.Delete(ctx, id); err != nil {
		return s.interactionErr(err)
	}
	return nil
}

func (s *Service) findPostOwner(ctx context.Context, postID string) (*model.Profile, error) {
	profile, err := s.profiles.FindByJobID(ctx, postID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, pgrepo.ErrProfileNotFound) {
		return nil, fmt.Errorf("find job owner: %w", err)
	}

	profile, err = s.profiles.FindByCourseID(ctx, postID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, pgrepo.ErrProfileNotFound) {
		return nil, fmt.Errorf("find course owner: %w", err)
	}
	return nil, ErrPostNotFound
}

func (s *Service) userErr(err error) error {
	if errors.Is(err, pgrepo.ErrUserNotFound) {
		return ErrUserNotFound
	}
	return fmt.Errorf("load user: %w", err)
}

func (s *Service) interactionErr(err error) error {
	if errors.Is(err, pgrepo.ErrInteractionNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("interaction store: %w", err)
}
