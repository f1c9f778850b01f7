package middleware

import (
	"log/slog"
	"net/http"
	"strconv"

	"starmap-server/internal/shared/database"
	"starmap-server/internal/shared/errors"
	"starmap-server/internal/shared/response"
)

// CampaignAccessMiddleware rejects requests against campaigns that do not
// exist or are still generating, so world handlers can assume a live world.
type CampaignAccessMiddleware struct {
	db *database.DB
}

func NewCampaignAccessMiddleware(db *database.DB) *CampaignAccessMiddleware {
	return &CampaignAccessMiddleware{db: db}
}

func (m *CampaignAccessMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := slog.With(
			"middleware", "campaign_access",
			"method", r.Method,
			"path", r.URL.Path,
		)

		idStr := r.PathValue("id")
		if idStr == "" {
			response.Error(w, r, logger, errors.Validation("campaign ID is required"))
			return
		}
		id, err := strconv.Atoi(idStr)
		if err != nil {
			response.Error(w, r, logger, errors.WrapValidation("invalid campaign ID format", err))
			return
		}

		var status string
		err = m.db.QueryRowContext(r.Context(),
			`SELECT status FROM campaigns WHERE id = $1`, id,
		).Scan(&status)
		if err != nil {
			response.Error(w, r, logger, errors.NotFoundf("campaign not found with id: %d", id))
			return
		}
		if status == "creating" {
			response.Error(w, r, logger, errors.Conflictf("campaign %d is still generating", id))
			return
		}

		next.ServeHTTP(w, r)
	})
}
