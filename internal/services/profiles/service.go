package profiles

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/BorisVilhard/IT-MAXI-BE/internal/domain/model"
	pgrepo "github.com/BorisVilhard/IT-MAXI-BE/internal/repo/postgres"
	"github.com/BorisVilhard/IT-MAXI-BE/internal/services/assets"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProfileNotFound = errors.New("profile not found")
	ErrJobNotFound     = errors.New("job not found")
	ErrValidation      = errors.New("validation error")
)

type ProfileStore interface {
	Get(ctx context.Context, userID int64) (*model.Profile, error)
	Save(ctx context.Context, profile *model.Profile) error
}

type UserStore interface {
	Get(ctx context.Context, userID int64) (model.User, error)
}

type AssetStore interface {
	Put(ctx context.Context, key assets.Key, data []byte, contentType string) error
	Remove(ctx context.Context, key assets.Key) error
}

type ImageProcessor interface {
	Normalize(data []byte) ([]byte, error)
}

// Service owns the profile aggregate: the whole document is loaded,
// reconciled against the incoming partial update and saved back. Two
// writers racing on the same profile are last-write-wins.
type Service struct {
	profiles  ProfileStore
	users     UserStore
	assets    AssetStore
	processor ImageProcessor
	baseURL   string
	now       func() time.Time
	newID     func() string
}

func NewService(profiles ProfileStore, users UserStore, assetStore AssetStore, processor ImageProcessor, baseURL string) *Service {
	return &Service{
		profiles:  profiles,
		users:     users,
		assets:    assetStore,
		processor: processor,
		baseURL:   baseURL,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Get returns the projection of one profile with computed asset URLs.
func (s *Service) Get(ctx context.Context, userID int64) (ProfileView, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrProfileNotFound) {
			return ProfileView{}, ErrProfileNotFound
		}
		return ProfileView{}, fmt.Errorf("load profile: %w", err)
	}

	username := ""
	if user, err := s.users.Get(ctx, userID); err == nil {
		username = user.Username
	}

	return s.project(profile, username), nil
}

func (s *Service) lookupUser(ctx context.Context, userID int64) (model.User, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

// loadOrInit fetches the caller's profile, creating an empty aggregate
// on first write.
func (s *Service) loadOrInit(ctx context.Context, userID int64) (*model.Profile, bool, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err == nil {
		return profile, false, nil
	}
	if !errors.Is(err, pgrepo.ErrProfileNotFound) {
		return nil, false, fmt.Errorf("load profile: %w", err)
	}

	now := s.now()
	return &model.Profile{
		UserID:         userID,
		PublishedRoles: map[string]bool{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}, true, nil
}

func (s *Service) avatarURL(profile *model.Profile) string {
	if profile.Avatar == nil {
		return ""
	}
	return fmt.Sprintf("%s/profile/%d/avatar", s.baseURL, profile.UserID)
}

// RefreshAuthorSnapshots rewrites the denormalized author block on
// every embedded course and job. Both the avatar-changed and the
// username-changed triggers funnel through here so the snapshots can
// never drift apart.
func RefreshAuthorSnapshots(profile *model.Profile, username, avatarURL string) {
	for i := range profile.Courses {
		profile.Courses[i].Author.Username = username
		profile.Courses[i].Author.AvatarURL = avatarURL
	}
	for i := range profile.JobDescriptions {
		profile.JobDescriptions[i].Author.Username = username
		profile.JobDescriptions[i].Author.AvatarURL = avatarURL
	}
}

// PropagateUserChange is the username-change trigger invoked by the
// users service after a rename. Missing profile is not an error, the
// user may simply not have one yet.
func (s *Service) PropagateUserChange(ctx context.Context, userID int64, username string) error {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrProfileNotFound) {
			return nil
		}
		return fmt.Errorf("load profile: %w", err)
	}

	RefreshAuthorSnapshots(profile, username, s.avatarURL(profile))
	profile.UpdatedAt = s.now()
	if err := s.profiles.Save(ctx, profile); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
