package commander

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
	logger.Debug("Initializing commander repository")

	return &Repository{
		db:     db,
		logger: logger,
	}
}

const commanderColumns = "id, username, email, display_name, avatar_url, role, created_at, updated_at"

func scanCommander(row interface {
	Scan(dest ...interface{}) error
}) (*Commander, error) {
	var c Commander
	var role string
	err := row.Scan(&c.ID, &c.Username, &c.Email, &c.DisplayName, &c.AvatarURL, &role, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.Role = ParseRole(role)
	return &c, nil
}

func (r *Repository) Create(ctx context.Context, username, email, displayName, avatarURL string, role Role) (*Commander, error) {
	logger := r.logger.With("component", "commander_repository", "operation", "create", "username", username)
	logger.Debug("Creating commander")

	query := `
		INSERT INTO commanders (username, email, display_name, avatar_url, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + commanderColumns

	c, err := scanCommander(r.db.QueryRowContext(ctx, query, username, email, displayName, avatarURL, role.String()))
	if err != nil {
		logger.Error("Failed to create commander", "error", err)
		return nil, fmt.Errorf("failed to create commander: %w", err)
	}
	logger.Debug("Commander created", "commander_id", c.ID)
	return c, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*Commander, error) {
	query := "SELECT " + commanderColumns + " FROM commanders WHERE id = $1"
	c, err := scanCommander(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundf("commander %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get commander: %w", err)
	}
	return c, nil
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*Commander, error) {
	query := "SELECT " + commanderColumns + " FROM commanders WHERE email = $1"
	c, err := scanCommander(r.db.QueryRowContext(ctx, query, email))
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundf("commander with email %s not found", email)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find commander by email: %w", err)
	}
	return c, nil
}

func (r *Repository) LinkProvider(ctx context.Context, commanderID int, provider, providerUserID, providerEmail string) error {
	query := `
		INSERT INTO auth_providers (commander_id, provider, provider_user_id, provider_email)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (provider, provider_user_id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, commanderID, provider, providerUserID, providerEmail); err != nil {
		return fmt.Errorf("failed to link auth provider: %w", err)
	}
	return nil
}

func (r *Repository) FindByProvider(ctx context.Context, provider, providerUserID string) (*Commander, error) {
	query := `
		SELECT c.id, c.username, c.email, c.display_name, c.avatar_url, c.role, c.created_at, c.updated_at
		FROM commanders c
		JOIN auth_providers ap ON ap.commander_id = c.id
		WHERE ap.provider = $1 AND ap.provider_user_id = $2
	`
	c, err := scanCommander(r.db.QueryRowContext(ctx, query, provider, providerUserID))
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundf("commander not found for %s identity", provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find commander by auth provider: %w", err)
	}
	return c, nil
}

func (r *Repository) List(ctx context.Context) ([]Commander, error) {
	query := "SELECT " + commanderColumns + " FROM commanders ORDER BY id"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query commanders: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			r.logger.Error("Failed to close rows", "error", err)
		}
	}()

	var commanders []Commander
	for rows.Next() {
		c, err := scanCommander(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan commander: %w", err)
		}
		commanders = append(commanders, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating commanders: %w", err)
	}
	return commanders, nil
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM commanders").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count commanders: %w", err)
	}
	return count, nil
}
