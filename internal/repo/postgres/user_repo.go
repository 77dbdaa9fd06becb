package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BorisVilhard/IT-MAXI-BE/internal/domain/model"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Get(ctx context.Context, userID int64) (model.User, error) {
	if r.pool == nil {
		return model.User{}, fmt.Errorf("postgres pool is nil")
	}
	if userID <= 0 {
		return model.User{}, fmt.Errorf("invalid user id")
	}

	var (
		user         model.User
		subscription []byte
	)
	err := r.pool.QueryRow(ctx, `
SELECT id, username, email, reg_number, registered_address, roles, subscription, created_at, updated_at
FROM users
WHERE id = $1
`, userID).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.RegNumber,
		&user.RegisteredAddress,
		&user.Roles,
		&subscription,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("get user: %w", err)
	}

	if len(subscription) > 0 {
		var sub model.Subscription
		if err := json.Unmarshal(subscription, &sub); err != nil {
			return model.User{}, fmt.Errorf("decode user subscription: %w", err)
		}
		user.Subscription = &sub
	}

	return user, nil
}

func (r *UserRepo) Update(ctx context.Context, user model.User) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if user.ID <= 0 || strings.TrimSpace(user.Username) == "" {
		return fmt.Errorf("invalid user payload")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE users SET
	username = $2,
	email = $3,
	reg_number = $4,
	registered_address = $5,
	updated_at = NOW()
WHERE id = $1
`, user.ID, user.Username, user.Email, user.RegNumber, user.RegisteredAddress)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *UserRepo) UpdateSubscription(ctx context.Context, userID int64, sub model.Subscription) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if userID <= 0 {
		return fmt.Errorf("invalid user id")
	}

	payload, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("encode subscription: %w", err)
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE users SET
	subscription = $2,
	updated_at = NOW()
WHERE id = $1
`, userID, payload)
	if err != nil {
		return fmt.Errorf("update user subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// ExpireSubscriptions flips active subscriptions whose paid period ended
// before cutoff to expired and returns the affected user ids.
func (r *UserRepo) ExpireSubscriptions(ctx context.Context, cutoff time.Time) ([]int64, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
UPDATE users SET
	subscription = jsonb_set(subscription, '{status}', '"expired"'),
	updated_at = NOW()
WHERE subscription ->> 'status' = 'active'
  AND (subscription ->> 'currentPeriodEnd')::timestamptz < $1
RETURNING id
`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("expire subscriptions: %w", err)
	}
	defer rows.Close()

	var userIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan expired subscription user id: %w", err)
		}
		userIDs = append(userIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expired subscriptions: %w", err)
	}

	return userIDs, nil
}

// Delete removes the user together with their profile document and any
// interactions they sent or received, in one transaction.
func (r *UserRepo) Delete(ctx context.Context, userID int64) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if userID <= 0 {
		return fmt.Errorf("invalid user id")
	}

	return WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
		if err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrUserNotFound
		}

		if _, err := tx.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID); err != nil {
			return fmt.Errorf("delete user profile: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM interactions WHERE sender_id = $1 OR recipient_id = $1`, userID); err != nil {
			return fmt.Errorf("delete user interactions: %w", err)
		}

		return nil
	})
}
