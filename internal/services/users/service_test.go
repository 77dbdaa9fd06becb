package users

import (
	"context"
	"errors"
	"testing"

	"github.com/BorisVilhard/IT-MAXI-BE/internal/domain/model"
	pgrepo "github.com/BorisVilhard/IT-MAXI-BE/internal/repo/postgres"
)

type memoryUserStore struct {
	users   map[int64]model.User
	deleted []int64
}

func (m *memoryUserStore) Get(_ context.Context, userID int64) (model.User, error) {
	u, ok := m.users[userID]
	if !ok {
		return model.User{}, pgrepo.ErrUserNotFound
	}
	return u, nil
}

func (m *memoryUserStore) Update(_ context.Context, user model.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return pgrepo.ErrUserNotFound
	}
	m.users[user.ID] = user
	return nil
}

func (m *memoryUserStore) Delete(_ context.Context, userID int64) error {
	if _, ok := m.users[userID]; !ok {
		return pgrepo.ErrUserNotFound
	}
	delete(m.users, userID)
	m.deleted = append(m.deleted, userID)
	return nil
}

type recordingPropagator struct {
	calls []string
}

func (r *recordingPropagator) PropagateUserChange(_ context.Context, _ int64, username string) error {
	r.calls = append(r.calls, username)
	return nil
}

func newUsersFixture() (*Service, *memoryUserStore, *recordingPropagator) {
	store := &memoryUserStore{users: map[int64]model.User{
		7: {ID: 7, Username: "boris", Email: "boris@example.com"},
	}}
	prop := &recordingPropagator{}
	return NewService(store, prop), store, prop
}

func TestUpdateRejectsUnpairedRegistrationFields(t *testing.T) {
	svc, store, _ := newUsersFixture()
	ctx := context.Background()

	if _, err := svc.Update(ctx, 7, UpdateInput{RegNumber: "12345678"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for lone regNumber, got %v", err)
	}
	if _, err := svc.Update(ctx, 7, UpdateInput{RegisteredAddress: "Hlavna 1, Bratislava"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for lone registeredAddress, got %v", err)
	}
	if store.users[7].RegNumber != "" {
		t.Fatal("partial write happened on validation failure")
	}

	user, err := svc.Update(ctx, 7, UpdateInput{RegNumber: "12345678", RegisteredAddress: "Hlavna 1, Bratislava"})
	if err != nil {
		t.Fatalf("paired update: %v", err)
	}
	if user.RegNumber != "12345678" || user.RegisteredAddress != "Hlavna 1, Bratislava" {
		t.Fatalf("pair not stored: %+v", user)
	}
}

func TestUpdateRejectsMalformedEmail(t *testing.T) {
	svc, store, _ := newUsersFixture()

	if _, err := svc.Update(context.Background(), 7, UpdateInput{Email: "not-an-email"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for malformed email, got %v", err)
	}
	if store.users[7].Email != "boris@example.com" {
		t.Fatal("email changed despite validation failure")
	}
}

func TestUpdatePropagatesUsernameChange(t *testing.T) {
	svc, _, prop := newUsersFixture()
	ctx := context.Background()

	user, err := svc.Update(ctx, 7, UpdateInput{Username: "boris2"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if user.Username != "boris2" {
		t.Fatalf("username not updated: %q", user.Username)
	}
	if len(prop.calls) != 1 || prop.calls[0] != "boris2" {
		t.Fatalf("propagation calls: %v", prop.calls)
	}

	// same username again is not a change
	if _, err := svc.Update(ctx, 7, UpdateInput{Email: "new@example.com"}); err != nil {
		t.Fatalf("email update: %v", err)
	}
	if len(prop.calls) != 1 {
		t.Fatalf("unexpected propagation: %v", prop.calls)
	}
}

func TestGetAndDelete(t *testing.T) {
	svc, store, _ := newUsersFixture()
	ctx := context.Background()

	user, err := svc.Get(ctx, 7)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if user.Username != "boris" {
		t.Fatalf("wrong user: %+v", user)
	}

	if _, err := svc.Get(ctx, 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := svc.Delete(ctx, 7); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(store.deleted) != 1 || store.deleted[0] != 7 {
		t.Fatalf("delete not recorded: %v", store.deleted)
	}
	if err := svc.Delete(ctx, 7); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
