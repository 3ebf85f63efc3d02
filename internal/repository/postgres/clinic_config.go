package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/salvadodental/booking-api/internal/model"
	"github.com/salvadodental/booking-api/pkg/errors"
)

// The clinic_config table holds exactly one row, seeded at clinic setup.

func (r *clinicConfigRepository) Get(ctx context.Context) (*model.ClinicConfig, error) {
	query := `
		SELECT id, is_open, working_hours, version, updated_at
		FROM clinic_config
		LIMIT 1
	`
	var config model.ClinicConfig
	err := r.db.GetContext(ctx, &config, query)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("clinic config", err)
		}
		return nil, errors.Store(fmt.Errorf("failed to get clinic config: %w", err))
	}
	return &config, nil
}

func (r *clinicConfigRepository) Update(ctx context.Context, config *model.ClinicConfig) error {
	query := `
		UPDATE clinic_config
		SET is_open = $1, working_hours = $2, version = version + 1, updated_at = $3
		WHERE id = $4 AND version = $5
	`
	config.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		config.IsOpen,
		config.WorkingHours,
		config.UpdatedAt,
		config.ID,
		config.Version,
	)
	if err != nil {
		return errors.Store(fmt.Errorf("failed to update clinic config: %w", err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.Store(fmt.Errorf("failed to get rows affected: %w", err))
	}
	if rows == 0 {
		if _, getErr := r.Get(ctx); getErr != nil {
			return getErr
		}
		return errors.Conflict("clinic config was modified concurrently", nil)
	}

	config.Version++
	return nil
}
