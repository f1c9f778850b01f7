package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"starmap-server/internal/campaign"
	"starmap-server/internal/shared/errors"
	"starmap-server/internal/shared/response"
	"starmap-server/internal/world"
)

// MutationHandler applies simulation updates to a campaign's world. Every
// successful mutation persists the snapshot before responding, so a restart
// never loses state the client already saw.
type MutationHandler struct {
	service *campaign.Service
	logger  *slog.Logger
}

func NewMutationHandler(service *campaign.Service, logger *slog.Logger) *MutationHandler {
	return &MutationHandler{
		service: service,
		logger:  logger,
	}
}

func (h *MutationHandler) apply(w http.ResponseWriter, r *http.Request, logger *slog.Logger, mutate func(g *world.Graph) (interface{}, error)) {
	campaignID, err := pathID(r, "id")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	g, err := h.service.World(r.Context(), campaignID)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	result, err := mutate(g)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	if err := h.service.Persist(r.Context(), campaignID); err != nil {
		response.Error(w, r, logger, errors.WrapInternal("failed to persist world", err))
		return
	}
	response.Success(w, http.StatusOK, result)
}

type setMetricRequest struct {
	Metric string `json:"metric"`
	Value  *int   `json:"value,omitempty"`
	Delta  *int   `json:"delta,omitempty"`
}

// SetMetric handles PATCH /api/campaigns/{id}/systems/{systemID}/metrics.
// Exactly one of value or delta must be set; results clamp to the gauge range.
func (h *MutationHandler) SetMetric(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "set_metric")

	var req setMetricRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid request body", err))
		return
	}
	if req.Metric == "" {
		response.Error(w, r, logger, errors.Validation("metric is required"))
		return
	}
	if (req.Value == nil) == (req.Delta == nil) {
		response.Error(w, r, logger, errors.Validation("exactly one of value or delta is required"))
		return
	}
	systemID, err := pathID(r, "systemID")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	h.apply(w, r, logger, func(g *world.Graph) (interface{}, error) {
		if req.Value != nil {
			if err := g.SetSystemMetric(systemID, req.Metric, *req.Value); err != nil {
				return nil, err
			}
		} else {
			if err := g.AdjustSystemMetric(systemID, req.Metric, *req.Delta); err != nil {
				return nil, err
			}
		}
		s, _ := g.System(systemID)
		return s, nil
	})
}

type tagRequest struct {
	Tag string `json:"tag"`
}

func decodeTag(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (string, bool) {
	var req tagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid request body", err))
		return "", false
	}
	if req.Tag == "" {
		response.Error(w, r, logger, errors.Validation("tag is required"))
		return "", false
	}
	return req.Tag, true
}

// AddSystemTag handles POST /api/campaigns/{id}/systems/{systemID}/tags.
func (h *MutationHandler) AddSystemTag(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "add_system_tag")

	tag, ok := decodeTag(w, r, logger)
	if !ok {
		return
	}
	systemID, err := pathID(r, "systemID")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	h.apply(w, r, logger, func(g *world.Graph) (interface{}, error) {
		if err := g.AddSystemTag(systemID, tag); err != nil {
			return nil, err
		}
		s, _ := g.System(systemID)
		return s, nil
	})
}

// RemoveSystemTag handles DELETE /api/campaigns/{id}/systems/{systemID}/tags/{tag}.
func (h *MutationHandler) RemoveSystemTag(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "remove_system_tag")

	tag := r.PathValue("tag")
	if tag == "" {
		response.Error(w, r, logger, errors.Validation("tag is required"))
		return
	}
	systemID, err := pathID(r, "systemID")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	h.apply(w, r, logger, func(g *world.Graph) (interface{}, error) {
		if err := g.RemoveSystemTag(systemID, tag); err != nil {
			return nil, err
		}
		s, _ := g.System(systemID)
		return s, nil
	})
}

// AddRouteTag handles POST /api/campaigns/{id}/routes/{a}/{b}/tags.
func (h *MutationHandler) AddRouteTag(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "add_route_tag")

	tag, ok := decodeTag(w, r, logger)
	if !ok {
		return
	}
	a, err := pathID(r, "a")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	b, err := pathID(r, "b")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	h.apply(w, r, logger, func(g *world.Graph) (interface{}, error) {
		if err := g.AddRouteTag(a, b, tag); err != nil {
			return nil, err
		}
		route, _ := g.Route(a, b)
		return route, nil
	})
}

// RemoveRouteTag handles DELETE /api/campaigns/{id}/routes/{a}/{b}/tags/{tag}.
func (h *MutationHandler) RemoveRouteTag(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "remove_route_tag")

	tag := r.PathValue("tag")
	if tag == "" {
		response.Error(w, r, logger, errors.Validation("tag is required"))
		return
	}
	a, err := pathID(r, "a")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	b, err := pathID(r, "b")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	h.apply(w, r, logger, func(g *world.Graph) (interface{}, error) {
		if err := g.RemoveRouteTag(a, b, tag); err != nil {
			return nil, err
		}
		route, _ := g.Route(a, b)
		return route, nil
	})
}

type setOwnerRequest struct {
	FactionID int `json:"faction_id"`
}

// SetSystemOwner handles PATCH /api/campaigns/{id}/systems/{systemID}/owner.
// Faction id 0 releases the system to neutral; ownership propagates to the
// system's stations.
func (h *MutationHandler) SetSystemOwner(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "set_system_owner")

	var req setOwnerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid request body", err))
		return
	}
	systemID, err := pathID(r, "systemID")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	h.apply(w, r, logger, func(g *world.Graph) (interface{}, error) {
		if err := g.SetSystemOwner(systemID, req.FactionID); err != nil {
			return nil, err
		}
		s, _ := g.System(systemID)
		return s, nil
	})
}

// SetStationOwner handles PATCH /api/campaigns/{id}/stations/{stationID}/owner.
func (h *MutationHandler) SetStationOwner(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "set_station_owner")

	var req setOwnerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid request body", err))
		return
	}
	stationID, err := pathID(r, "stationID")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	h.apply(w, r, logger, func(g *world.Graph) (interface{}, error) {
		if err := g.SetStationOwner(stationID, req.FactionID); err != nil {
			return nil, err
		}
		st, _ := g.Station(stationID)
		return st, nil
	})
}
