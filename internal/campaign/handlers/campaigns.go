package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"starmap-server/internal/campaign"
	"starmap-server/internal/galaxy"
	"starmap-server/internal/shared/config"
	"starmap-server/internal/shared/errors"
	"starmap-server/internal/shared/response"
)

type CampaignHandler struct {
	service *campaign.Service
	logger  *slog.Logger
}

func NewCampaignHandler(service *campaign.Service, logger *slog.Logger) *CampaignHandler {
	return &CampaignHandler{
		service: service,
		logger:  logger,
	}
}

// Create handles POST /api/campaigns - admin only.
func (h *CampaignHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "create_campaign")

	var req campaign.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid request body", err))
		return
	}
	if req.Name == "" {
		response.Error(w, r, logger, errors.Validation("campaign name is required"))
		return
	}

	c, err := h.service.Create(r.Context(), req, generationDefaults())
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	response.Success(w, http.StatusCreated, c)
}

// List handles GET /api/campaigns.
func (h *CampaignHandler) List(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.service.List(r.Context())
	if err != nil {
		response.Error(w, r, h.logger.With("handler", "list_campaigns"), err)
		return
	}
	if campaigns == nil {
		campaigns = []campaign.Campaign{}
	}
	response.Success(w, http.StatusOK, campaigns)
}

// Get handles GET /api/campaigns/{id}.
func (h *CampaignHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "get_campaign")

	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	c, err := h.service.Get(r.Context(), id)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	response.Success(w, http.StatusOK, c)
}

// Delete handles DELETE /api/campaigns/{id} - admin only.
func (h *CampaignHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "delete_campaign")

	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		response.Error(w, r, logger, err)
		return
	}
	response.Success(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// generationDefaults builds the base generation config from the server
// environment; per-request overrides layer on top.
func generationDefaults() galaxy.GenerationConfig {
	cfg := galaxy.DefaultConfig()
	gc := config.GlobalConfig.Galaxy
	cfg.SystemCount = gc.SystemCount
	cfg.MapWidth = gc.MapWidth
	cfg.MapHeight = gc.MapHeight
	cfg.EdgeMargin = gc.EdgeMargin
	cfg.MinSystemDistance = gc.MinSystemDistance
	cfg.MaxConnections = gc.MaxConnections
	cfg.MaxRouteLength = gc.MaxRouteLength
	cfg.ExtraRouteChance = gc.ExtraRouteChance
	cfg.NeutralFraction = gc.NeutralFraction
	return cfg
}

func pathID(r *http.Request, key string) (int, error) {
	raw := r.PathValue(key)
	if raw == "" {
		return 0, errors.Validationf("%s is required", key)
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.WrapValidation("invalid "+key+" format", err)
	}
	return id, nil
}
