package commander

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"starmap-server/internal/shared/config"
	"starmap-server/internal/shared/errors"
)

type Service struct {
	repo   *Repository
	logger *slog.Logger
}

func NewService(repo *Repository, logger *slog.Logger) *Service {
	logger.Debug("Initializing commander service")

	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetByID(ctx context.Context, id int) (*Commander, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Commander, error) {
	return s.repo.List(ctx)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// FindOrCreateByOAuth resolves the commander for an OAuth identity,
// creating the account on first sign-in. The provider link is recorded so
// later sign-ins resolve even if the provider email changes. The configured
// admin email gets the admin role.
func (s *Service) FindOrCreateByOAuth(ctx context.Context, provider, providerUserID, email, displayName, avatarURL string) (*Commander, error) {
	logger := s.logger.With(
		"component", "commander_service",
		"operation", "find_or_create_oauth",
		"provider", provider,
		"email", email,
	)
	logger.Debug("Finding or creating commander by OAuth identity")

	linked, err := s.repo.FindByProvider(ctx, provider, providerUserID)
	if err == nil {
		return linked, nil
	}
	if errors.GetType(err) != errors.ErrorTypeNotFound {
		return nil, fmt.Errorf("database error: %w", err)
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		if err := s.repo.LinkProvider(ctx, existing.ID, provider, providerUserID, email); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if errors.GetType(err) != errors.ErrorTypeNotFound {
		return nil, fmt.Errorf("database error: %w", err)
	}

	role := RoleCommander
	if cfg := config.GlobalConfig; cfg != nil && email == cfg.Admin.Email {
		role = RoleAdmin
	}

	username := usernameFromEmail(email)
	if displayName == "" {
		displayName = username
	}

	created, err := s.repo.Create(ctx, username, email, displayName, avatarURL, role)
	if err != nil {
		return nil, err
	}
	if err := s.repo.LinkProvider(ctx, created.ID, provider, providerUserID, email); err != nil {
		return nil, err
	}
	logger.Info("Commander account created",
		"commander_id", created.ID,
		"username", created.Username,
		"role", created.Role,
	)
	return created, nil
}

func usernameFromEmail(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}
