package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BorisVilhard/IT-MAXI-BE/internal/domain/model"
)

var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepo stores each profile as a single JSONB document keyed by
// user id. The aggregate is always read and written whole; concurrent
// writers to the same document are last-write-wins.
type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

func (r *ProfileRepo) Get(ctx context.Context, userID int64) (*model.Profile, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if userID <= 0 {
		return nil, fmt.Errorf("invalid user id")
	}

	var (
		doc       []byte
		createdAt time.Time
		updatedAt time.Time
	)
	err := r.pool.QueryRow(ctx, `
SELECT doc, created_at, updated_at
FROM profiles
WHERE user_id = $1
`, userID).Scan(&doc, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	return decodeProfile(doc, userID, createdAt, updatedAt)
}

// Save upserts the whole document and stamps updated_at. The stored
// timestamps are written back into the given profile.
func (r *ProfileRepo) Save(ctx context.Context, profile *model.Profile) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if profile == nil || profile.UserID <= 0 {
		return fmt.Errorf("invalid profile payload")
	}

	doc, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile document: %w", err)
	}

	err = r.pool.QueryRow(ctx, `
INSERT INTO profiles (user_id, doc, created_at, updated_at)
VALUES ($1, $2, NOW(), NOW())
ON CONFLICT (user_id) DO UPDATE SET
	doc = EXCLUDED.doc,
	updated_at = NOW()
RETURNING created_at, updated_at
`, profile.UserID, doc).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	return nil
}

func (r *ProfileRepo) Delete(ctx context.Context, userID int64) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}

	return nil
}

// FindByJobID returns the profile whose embedded jobDescriptions list
// contains the given id.
func (r *ProfileRepo) FindByJobID(ctx context.Context, jobID string) (*model.Profile, error) {
	return r.findByEmbeddedID(ctx, "jobDescriptions", jobID)
}

// FindByCourseID returns the profile whose embedded courses list
// contains the given id.
func (r *ProfileRepo) FindByCourseID(ctx context.Context, courseID string) (*model.Profile, error) {
	return r.findByEmbeddedID(ctx, "courses", courseID)
}

func (r *ProfileRepo) findByEmbeddedID(ctx context.Context, field, itemID string) (*model.Profile, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if itemID == "" {
		return nil, ErrProfileNotFound
	}

	var (
		userID    int64
		doc       []byte
		createdAt time.Time
		updatedAt time.Time
	)
	// field is one of the two fixed callers above, never caller input.
	query := fmt.Sprintf(`
SELECT user_id, doc, created_at, updated_at
FROM profiles
WHERE doc->'%s' @> jsonb_build_array(jsonb_build_object('id', $1::text))
LIMIT 1
`, field)
	err := r.pool.QueryRow(ctx, query, itemID).Scan(&userID, &doc, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile by %s id: %w", field, err)
	}

	return decodeProfile(doc, userID, createdAt, updatedAt)
}

// ListVisible returns profiles whose job posts are publicly listed.
func (r *ProfileRepo) ListVisible(ctx context.Context) ([]*model.Profile, error) {
	return r.list(ctx, `
SELECT user_id, doc, created_at, updated_at
FROM profiles
WHERE (doc->>'jobPostVisibility')::boolean IS TRUE
ORDER BY updated_at DESC
`)
}

// ListWithCourses returns profiles that embed at least one course.
func (r *ProfileRepo) ListWithCourses(ctx context.Context) ([]*model.Profile, error) {
	return r.list(ctx, `
SELECT user_id, doc, created_at, updated_at
FROM profiles
WHERE jsonb_array_length(COALESCE(doc->'courses', '[]'::jsonb)) > 0
ORDER BY updated_at DESC
`)
}

func (r *ProfileRepo) list(ctx context.Context, query string) ([]*model.Profile, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*model.Profile
	for rows.Next() {
		var (
			userID    int64
			doc       []byte
			createdAt time.Time
			updatedAt time.Time
		)
		if err := rows.Scan(&userID, &doc, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan profile row: %w", err)
		}
		profile, err := decodeProfile(doc, userID, createdAt, updatedAt)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profile rows: %w", err)
	}

	return profiles, nil
}

func decodeProfile(doc []byte, userID int64, createdAt, updatedAt time.Time) (*model.Profile, error) {
	var profile model.Profile
	if err := json.Unmarshal(doc, &profile); err != nil {
		return nil, fmt.Errorf("decode profile document: %w", err)
	}

	profile.UserID = userID
	profile.CreatedAt = createdAt
	profile.UpdatedAt = updatedAt
	return &profile, nil
}
