package campaign

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"starmap-server/internal/shared/database"
	"starmap-server/internal/shared/errors"
)

type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing campaign repository")

	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) Create(ctx context.Context, name string, seed int64) (*Campaign, error) {
	logger := r.logger.With("component", "campaign_repository", "operation", "create", "name", name)
	logger.Debug("Creating campaign")

	query := `
		INSERT INTO campaigns (name, seed, status)
		VALUES ($1, $2, $3)
		RETURNING id, name, seed, status, system_count, route_count, station_count, created_at, updated_at
	`

	var c Campaign
	err := r.db.QueryRowContext(ctx, query, name, seed, string(StatusCreating)).Scan(
		&c.ID, &c.Name, &c.Seed, &c.Status,
		&c.SystemCount, &c.RouteCount, &c.StationCount,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		logger.Error("Failed to create campaign", "error", err)
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}

	logger.Debug("Campaign created", "campaign_id", c.ID)
	return &c, nil
}

func (r *Repository) Get(ctx context.Context, id int) (*Campaign, error) {
	query := `
		SELECT id, name, seed, status, system_count, route_count, station_count, created_at, updated_at
		FROM campaigns
		WHERE id = $1
	`

	var c Campaign
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Seed, &c.Status,
		&c.SystemCount, &c.RouteCount, &c.StationCount,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundf("campaign %d not found", id)
	}
	if err != nil {
		r.logger.Error("Failed to get campaign", "campaign_id", id, "error", err)
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}
	return &c, nil
}

func (r *Repository) List(ctx context.Context) ([]Campaign, error) {
	query := `
		SELECT id, name, seed, status, system_count, route_count, station_count, created_at, updated_at
		FROM campaigns
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to query campaigns", "error", err)
		return nil, fmt.Errorf("failed to query campaigns: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			r.logger.Error("Failed to close rows", "error", err)
		}
	}()

	var campaigns []Campaign
	for rows.Next() {
		var c Campaign
		err := rows.Scan(
			&c.ID, &c.Name, &c.Seed, &c.Status,
			&c.SystemCount, &c.RouteCount, &c.StationCount,
			&c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan campaign: %w", err)
		}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating campaigns: %w", err)
	}
	return campaigns, nil
}

// Activate flips a campaign out of the creating state and records the final
// entity counts.
func (r *Repository) Activate(ctx context.Context, id, systems, routes, stations int) error {
	query := `
		UPDATE campaigns
		SET status = $2, system_count = $3, route_count = $4, station_count = $5, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, id, string(StatusActive), systems, routes, stations)
	if err != nil {
		r.logger.Error("Failed to activate campaign", "campaign_id", id, "error", err)
		return fmt.Errorf("failed to activate campaign: %w", err)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM campaigns WHERE id = $1", id)
	if err != nil {
		r.logger.Error("Failed to delete campaign", "campaign_id", id, "error", err)
		return fmt.Errorf("failed to delete campaign: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return errors.NotFoundf("campaign %d not found", id)
	}
	return err
}
