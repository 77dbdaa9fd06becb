package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/BorisVilhard/IT-MAXI-BE/internal/domain/model"
	"github.com/BorisVilhard/IT-MAXI-BE/internal/pkg/validate"
	pgrepo "github.com/BorisVilhard/IT-MAXI-BE/internal/repo/postgres"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrValidation = errors.New("validation error")
)

type UserStore interface {
	Get(ctx context.Context, userID int64) (model.User, error)
	Update(ctx context.Context, user model.User) error
	Delete(ctx context.Context, userID int64) error
}

// ProfilePropagator pushes account changes into the denormalized
// author snapshots embedded in the user's profile.
type ProfilePropagator interface {
	PropagateUserChange(ctx context.Context, userID int64, username string) error
}

type Service struct {
	store    UserStore
	profiles ProfilePropagator
}

func NewService(store UserStore, profiles ProfilePropagator) *Service {
	return &Service{
		store:    store,
		profiles: profiles,
	}
}

func (s *Service) Get(ctx context.Context, userID int64) (model.User, error) {
	user, err := s.store.Get(ctx, userID)
	if err != nil {
		return model.User{}, s.storeErr(err)
	}
	return user, nil
}

type UpdateInput struct {
	Username          string
	Email             string
	RegNumber         string
	RegisteredAddress string
}

// Update patches account fields, empty meaning keep. Company
// registration data comes as a pair: a registration number without its
// registered address (or the reverse) is rejected.
func (s *Service) Update(ctx context.Context, userID int64, in UpdateInput) (model.User, error) {
	regNumber := strings.TrimSpace(in.RegNumber)
	regAddress := strings.TrimSpace(in.RegisteredAddress)
	if (regNumber != "") != (regAddress != "") {
		return model.User{}, fmt.Errorf("regNumber and registeredAddress must be provided together: %w", ErrValidation)
	}

	user, err := s.store.Get(ctx, userID)
	if err != nil {
		return model.User{}, s.storeErr(err)
	}

	usernameChanged := false
	if username := strings.TrimSpace(in.Username); username != "" && username != user.Username {
		user.Username = username
		usernameChanged = true
	}
	if email := strings.TrimSpace(in.Email); email != "" {
		if !validate.Email(email) {
			return model.User{}, fmt.Errorf("invalid email address: %w", ErrValidation)
		}
		user.Email = email
	}
	if regNumber != "" {
		user.RegNumber = regNumber
		user.RegisteredAddress = regAddress
	}

	if err := s.store.Update(ctx, user); err != nil {
		return model.User{}, s.storeErr(err)
	}

	if usernameChanged && s.profiles != nil {
		if err := s.profiles.PropagateUserChange(ctx, userID, user.Username); err != nil {
			return model.User{}, fmt.Errorf("propagate username change: %w", err)
		}
	}

	return user, nil
}

// Delete removes the account with its profile and interactions.
func (s *Service) Delete(ctx context.Context, userID int64) error {
	if err := s.store.Delete(ctx, userID); err != nil {
		return s.storeErr(err)
	}
	return nil
}

func (s *Service) storeErr(err error) error {
	if errors.Is(err, pgrepo.ErrUserNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("user store: %w", err)
}
