package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BorisVilhard/IT-MAXI-BE/internal/domain/enums"
	"github.com/BorisVilhard/IT-MAXI-BE/internal/domain/model"
)

var ErrInteractionNotFound = errors.New("interaction not found")

type InteractionRepo struct {
	pool *pgxpool.Pool
}

func NewInteractionRepo(pool *pgxpool.Pool) *InteractionRepo {
	return &InteractionRepo{pool: pool}
}

func (r *InteractionRepo) Create(ctx context.Context, in model.Interaction) (model.Interaction, error) {
	if r.pool == nil {
		return model.Interaction{}, fmt.Errorf("postgres pool is nil")
	}
	if in.ID == "" || in.SenderID <= 0 || in.RecipientID <= 0 {
		return model.Interaction{}, fmt.Errorf("invalid interaction payload")
	}

	err := r.pool.QueryRow(ctx, `
INSERT INTO interactions (id, post_id, sender_id, recipient_id, message, sender_role, status, is_favorite, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, NOW())
RETURNING created_at
`, in.ID, in.PostID, in.SenderID, in.RecipientID, in.Message, string(in.SenderRole), string(in.Status)).Scan(&in.CreatedAt)
	if err != nil {
		return model.Interaction{}, fmt.Errorf("create interaction: %w", err)
	}

	return in, nil
}

func (r *InteractionRepo) Get(ctx context.Context, id string) (model.Interaction, error) {
	if r.pool == nil {
		return model.Interaction{}, fmt.Errorf("postgres pool is nil")
	}

	var in model.Interaction
	err := r.pool.QueryRow(ctx, `
SELECT id, post_id, sender_id, recipient_id, message, sender_role, status, is_favorite, created_at
FROM interactions
WHERE id = $1
`, id).Scan(
		&in.ID,
		&in.PostID,
		&in.SenderID,
		&in.RecipientID,
		&in.Message,
		&in.SenderRole,
		&in.Status,
		&in.IsFavorite,
		&in.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Interaction{}, ErrInteractionNotFound
		}
		return model.Interaction{}, fmt.Errorf("get interaction: %w", err)
	}

	return in, nil
}

// ListForUser returns interactions the user sent or received, newest first.
func (r *InteractionRepo) ListForUser(ctx context.Context, userID int64) ([]model.Interaction, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if userID <= 0 {
		return nil, fmt.Errorf("invalid user id")
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, post_id, sender_id, recipient_id, message, sender_role, status, is_favorite, created_at
FROM interactions
WHERE sender_id = $1 OR recipient_id = $1
ORDER BY created_at DESC
`, userID)
	if err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}
	defer rows.Close()

	var interactions []model.Interaction
	for rows.Next() {
		var in model.Interaction
		if err := rows.Scan(
			&in.ID,
			&in.PostID,
			&in.SenderID,
			&in.RecipientID,
			&in.Message,
			&in.SenderRole,
			&in.Status,
			&in.IsFavorite,
			&in.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan interaction row: %w", err)
		}
		interactions = append(interactions, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interaction rows: %w", err)
	}

	return interactions, nil
}

func (r *InteractionRepo) Update(ctx context.Context, id string, status enums.InteractionStatus, isFavorite bool) (model.Interaction, error) {
	if r.pool == nil {
		return model.Interaction{}, fmt.Errorf("postgres pool is nil")
	}

	var in model.Interaction
	err := r.pool.QueryRow(ctx, `
UPDATE interactions SET
	status = $2,
	is_favorite = $3
WHERE id = $1
RETURNING id, post_id, sender_id, recipient_id, message, sender_role, status, is_favorite, created_at
`, id, string(status), isFavorite).Scan(
		&in.ID,
		&in.PostID,
		&in.SenderID,
		&in.RecipientID,
		&in.Message,
		&in.SenderRole,
		&in.Status,
		&in.IsFavorite,
		&in.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Interaction{}, ErrInteractionNotFound
		}
		return model.Interaction{}, fmt.Errorf("update interaction: %w", err)
	}

	return in, nil
}

func (r *InteractionRepo) Delete(ctx context.Context, id string) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM interactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete interaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrInteractionNotFound
	}

	return nil
}
