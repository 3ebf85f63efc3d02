package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/salvadodental/booking-api/internal/model"
	"github.com/salvadodental/booking-api/pkg/errors"
)

func (r *profileRepository) Create(ctx context.Context, profile *model.Profile) error {
	query := `
		INSERT INTO profiles (id, first_name, last_name, email, role, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	profile.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		profile.ID,
		profile.FirstName,
		profile.LastName,
		profile.Email,
		profile.Role,
		profile.PasswordHash,
		profile.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if stderrors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return errors.Validation("email already registered", err)
		}
		return errors.Store(fmt.Errorf("failed to create profile: %w", err))
	}
	return nil
}

func (r *profileRepository) Get(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	query := `
		SELECT id, first_name, last_name, email, role, password_hash, created_at
		FROM profiles
		WHERE id = $1
	`
	var profile model.Profile
	err := r.db.GetContext(ctx, &profile, query, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("profile", err)
		}
		return nil, errors.Store(fmt.Errorf("failed to get profile: %w", err))
	}
	return &profile, nil
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*model.Profile, error) {
	query := `
		SELECT id, first_name, last_name, email, role, password_hash, created_at
		FROM profiles
		WHERE email = $1
	`
	var profile model.Profile
	err := r.db.GetContext(ctx, &profile, query, email)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("profile", err)
		}
		return nil, errors.Store(fmt.Errorf("failed to get profile by email: %w", err))
	}
	return &profile, nil
}

func (r *profileRepository) ListByRole(ctx context.Context, role model.Role) ([]*model.Profile, error) {
	query := `
		SELECT id, first_name, last_name, email, role, password_hash, created_at
		FROM profiles
		WHERE role = $1
		ORDER BY last_name ASC, first_name ASC
	`
	var profiles []*model.Profile
	err := r.db.SelectContext(ctx, &profiles, query, role)
	if err != nil {
		return nil, errors.Store(fmt.Errorf("failed to list profiles: %w", err))
	}
	return profiles, nil
}

func (r *profileRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}

	query := `
		SELECT id, first_name, last_name, email, role, password_hash, created_at
		FROM profiles
		WHERE id = ANY($1)
	`
	var profiles []*model.Profile
	err := r.db.SelectContext(ctx, &profiles, query, pq.Array(raw))
	if err != nil {
		return nil, errors.Store(fmt.Errorf("failed to list profiles by ids: %w", err))
	}
	return profiles, nil
}
