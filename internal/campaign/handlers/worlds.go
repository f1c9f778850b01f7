package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"starmap-server/internal/campaign"
	"starmap-server/internal/shared/errors"
	"starmap-server/internal/shared/response"
	"starmap-server/internal/world"
)

// WorldHandler exposes the read-side graph queries of a campaign's world.
type WorldHandler struct {
	service *campaign.Service
	logger  *slog.Logger
}

func NewWorldHandler(service *campaign.Service, logger *slog.Logger) *WorldHandler {
	return &WorldHandler{
		service: service,
		logger:  logger,
	}
}

func (h *WorldHandler) graph(r *http.Request) (*world.Graph, error) {
	id, err := pathID(r, "id")
	if err != nil {
		return nil, err
	}
	return h.service.World(r.Context(), id)
}

// GetSnapshot handles GET /api/campaigns/{id}/world - the flat record form.
func (h *WorldHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "get_world")

	g, err := h.graph(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	response.Success(w, http.StatusOK, g.Snapshot())
}

// ListSystems handles GET /api/campaigns/{id}/systems with optional
// faction, tag (any), tags (all, comma separated) and metric range filters.
func (h *WorldHandler) ListSystems(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "list_systems")

	g, err := h.graph(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	q := r.URL.Query()
	var systems []*world.StarSystem
	switch {
	case q.Get("faction") != "":
		factionID, err := strconv.Atoi(q.Get("faction"))
		if err != nil {
			response.Error(w, r, logger, errors.WrapValidation("invalid faction id", err))
			return
		}
		systems = g.SystemsByFaction(factionID)
	case q.Get("tags") != "":
		systems = g.SystemsWithAllTags(strings.Split(q.Get("tags"), ",")...)
	case q.Get("tag") != "":
		systems = g.SystemsWithAnyTag(strings.Split(q.Get("tag"), ",")...)
	case q.Get("metric") != "":
		min, max := 0, world.MetricMax
		if raw := q.Get("min"); raw != "" {
			if min, err = strconv.Atoi(raw); err != nil {
				response.Error(w, r, logger, errors.WrapValidation("invalid min", err))
				return
			}
		}
		if raw := q.Get("max"); raw != "" {
			if max, err = strconv.Atoi(raw); err != nil {
				response.Error(w, r, logger, errors.WrapValidation("invalid max", err))
				return
			}
		}
		systems, err = g.SystemsByMetricRange(q.Get("metric"), min, max)
		if err != nil {
			response.Error(w, r, logger, err)
			return
		}
	default:
		systems = g.Systems()
	}

	if systems == nil {
		systems = []*world.StarSystem{}
	}
	response.Success(w, http.StatusOK, systems)
}

// GetSystem handles GET /api/campaigns/{id}/systems/{systemID}.
func (h *WorldHandler) GetSystem(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "get_system")

	g, err := h.graph(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	systemID, err := pathID(r, "systemID")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	s, ok := g.System(systemID)
	if !ok {
		response.Error(w, r, logger, errors.NotFoundf("system %d not found", systemID))
		return
	}
	response.Success(w, http.StatusOK, s)
}

// GetNeighbors handles GET /api/campaigns/{id}/systems/{systemID}/neighbors
// and returns the adjacent systems in id order.
func (h *WorldHandler) GetNeighbors(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "get_neighbors")

	g, err := h.graph(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	systemID, err := pathID(r, "systemID")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	s, ok := g.System(systemID)
	if !ok {
		response.Error(w, r, logger, errors.NotFoundf("system %d not found", systemID))
		return
	}

	neighbors := make([]*world.StarSystem, 0, len(s.Neighbors))
	for _, id := range s.Neighbors {
		if n, ok := g.System(id); ok {
			neighbors = append(neighbors, n)
		}
	}
	response.Success(w, http.StatusOK, neighbors)
}

// ListRoutes handles GET /api/campaigns/{id}/routes with optional tag and
// min_hazard filters.
func (h *WorldHandler) ListRoutes(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "list_routes")

	g, err := h.graph(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	q := r.URL.Query()
	var routes []*world.Route
	switch {
	case q.Get("tag") != "":
		routes = g.RoutesByTag(q.Get("tag"))
	case q.Get("min_hazard") != "":
		minHazard, err := strconv.Atoi(q.Get("min_hazard"))
		if err != nil {
			response.Error(w, r, logger, errors.WrapValidation("invalid min_hazard", err))
			return
		}
		routes = g.RoutesByHazard(minHazard)
	default:
		routes = g.Routes()
	}

	if routes == nil {
		routes = []*world.Route{}
	}
	response.Success(w, http.StatusOK, routes)
}

// GetRoute handles GET /api/campaigns/{id}/routes/{a}/{b}; endpoint order
// does not matter.
func (h *WorldHandler) GetRoute(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "get_route")

	g, err := h.graph(r)
	if err != nil {
		response.Error(w, r, logger, err)
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
	route, ok := g.Route(a, b)
	if !ok {
		response.Error(w, r, logger, errors.NotFoundf("no route between systems %d and %d", a, b))
		return
	}
	response.Success(w, http.StatusOK, route)
}

// ListStations handles GET /api/campaigns/{id}/stations.
func (h *WorldHandler) ListStations(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "list_stations")

	g, err := h.graph(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	stations := g.Stations()
	if stations == nil {
		stations = []*world.Station{}
	}
	response.Success(w, http.StatusOK, stations)
}

// GetStation handles GET /api/campaigns/{id}/stations/{stationID}.
func (h *WorldHandler) GetStation(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "get_station")

	g, err := h.graph(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	stationID, err := pathID(r, "stationID")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	st, ok := g.Station(stationID)
	if !ok {
		response.Error(w, r, logger, errors.NotFoundf("station %d not found", stationID))
		return
	}
	response.Success(w, http.StatusOK, st)
}

// ListFactions handles GET /api/campaigns/{id}/factions.
func (h *WorldHandler) ListFactions(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "list_factions")

	g, err := h.graph(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	response.Success(w, http.StatusOK, g.Factions())
}

type pathResponse struct {
	Path     []int   `json:"path"`
	Jumps    int     `json:"jumps"`
	Distance float64 `json:"distance"`
	Hazard   int     `json:"hazard"`
}

// GetPath handles GET /api/campaigns/{id}/path?from=&to= and returns the
// shortest path with its aggregate distance and hazard.
func (h *WorldHandler) GetPath(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "get_path")

	g, err := h.graph(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	from, err := strconv.Atoi(r.URL.Query().Get("from"))
	if err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid from", err))
		return
	}
	to, err := strconv.Atoi(r.URL.Query().Get("to"))
	if err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid to", err))
		return
	}

	path := g.ShortestPath(from, to)
	if len(path) == 0 {
		response.Error(w, r, logger, errors.NotFoundf("no path between systems %d and %d", from, to))
		return
	}
	distance, err := g.PathDistance(path)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	hazard, err := g.PathHazard(path)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, pathResponse{
		Path:     path,
		Jumps:    len(path) - 1,
		Distance: distance,
		Hazard:   hazard,
	})
}
