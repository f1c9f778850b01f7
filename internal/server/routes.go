package server

import (
	"log/slog"
	"net/http"

	"starmap-server/internal/auth"
	authHandlers "starmap-server/internal/auth/handlers"
	"starmap-server/internal/campaign"
	campaignHandlers "starmap-server/internal/campaign/handlers"
	"starmap-server/internal/commander"
	commanderHandlers "starmap-server/internal/commander/handlers"
	"starmap-server/internal/middleware"
	serverHandlers "starmap-server/internal/server/handlers"
	"starmap-server/internal/shared/database"
	sharedredis "starmap-server/internal/shared/redis"
)

type Routes struct {
	db               *database.DB
	redis            *sharedredis.Client
	campaignService  *campaign.Service
	commanderService *commander.Service
	oauthConfig      *auth.OAuthConfig
	states           *auth.StateManager
	logger           *slog.Logger
}

func NewRoutes(
	db *database.DB,
	redis *sharedredis.Client,
	campaignService *campaign.Service,
	commanderService *commander.Service,
	oauthConfig *auth.OAuthConfig,
	states *auth.StateManager,
	logger *slog.Logger,
) *Routes {
	return &Routes{
		db:               db,
		redis:            redis,
		campaignService:  campaignService,
		commanderService: commanderService,
		oauthConfig:      oauthConfig,
		states:           states,
		logger:           logger,
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := slog.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	mux := http.NewServeMux()

	healthHandler := serverHandlers.NewHealthHandler(r.db, r.redis)
	campaignHandler := campaignHandlers.NewCampaignHandler(r.campaignService, r.logger)
	worldHandler := campaignHandlers.NewWorldHandler(r.campaignService, r.logger)
	mutationHandler := campaignHandlers.NewMutationHandler(r.campaignService, r.logger)
	commandersHandler := commanderHandlers.NewCommandersHandler(r.commanderService)
	meHandler := commanderHandlers.NewMeHandler()
	logoutHandler := authHandlers.NewLogoutHandler(r.logger)

	campaignAccess := middleware.NewCampaignAccessMiddleware(r.db)

	googleAuthHandler := authHandlers.NewOAuthHandler(r.oauthConfig.Google, r.commanderService, r.states, r.logger)
	githubAuthHandler := authHandlers.NewOAuthHandler(r.oauthConfig.GitHub, r.commanderService, r.states, r.logger)
	discordAuthHandler := authHandlers.NewOAuthHandler(r.oauthConfig.Discord, r.commanderService, r.states, r.logger)

	// Public endpoints
	mux.Handle("GET /api/server/health", healthHandler)
	mux.HandleFunc("GET /api/campaigns", campaignHandler.List)
	mux.HandleFunc("GET /api/campaigns/{id}", campaignHandler.Get)
	mux.Handle("GET /api/commanders", commandersHandler)

	// World queries - campaign must exist and be past generation
	worldRoutes := map[string]http.HandlerFunc{
		"GET /api/campaigns/{id}/world":                          worldHandler.GetSnapshot,
		"GET /api/campaigns/{id}/systems":                        worldHandler.ListSystems,
		"GET /api/campaigns/{id}/systems/{systemID}":             worldHandler.GetSystem,
		"GET /api/campaigns/{id}/systems/{systemID}/neighbors":   worldHandler.GetNeighbors,
		"GET /api/campaigns/{id}/routes":                         worldHandler.ListRoutes,
		"GET /api/campaigns/{id}/routes/{a}/{b}":                 worldHandler.GetRoute,
		"GET /api/campaigns/{id}/stations":                       worldHandler.ListStations,
		"GET /api/campaigns/{id}/stations/{stationID}":           worldHandler.GetStation,
		"GET /api/campaigns/{id}/factions":                       worldHandler.ListFactions,
		"GET /api/campaigns/{id}/path":                           worldHandler.GetPath,
	}
	for pattern, handler := range worldRoutes {
		mux.Handle(pattern, campaignAccess.Require(handler))
	}

	// Simulation mutations - authenticated users on live campaigns
	mutationRoutes := map[string]http.HandlerFunc{
		"PATCH /api/campaigns/{id}/systems/{systemID}/metrics":        mutationHandler.SetMetric,
		"POST /api/campaigns/{id}/systems/{systemID}/tags":            mutationHandler.AddSystemTag,
		"DELETE /api/campaigns/{id}/systems/{systemID}/tags/{tag}":    mutationHandler.RemoveSystemTag,
		"PATCH /api/campaigns/{id}/systems/{systemID}/owner":          mutationHandler.SetSystemOwner,
		"POST /api/campaigns/{id}/routes/{a}/{b}/tags":                mutationHandler.AddRouteTag,
		"DELETE /api/campaigns/{id}/routes/{a}/{b}/tags/{tag}":        mutationHandler.RemoveRouteTag,
		"PATCH /api/campaigns/{id}/stations/{stationID}/owner":        mutationHandler.SetStationOwner,
	}
	for pattern, handler := range mutationRoutes {
		mux.Handle(pattern, middleware.JWTMiddleware(campaignAccess.Require(handler)))
	}

	// Protected endpoints (authenticated users)
	mux.Handle("GET /api/commanders/me", middleware.JWTMiddleware(meHandler))

	// Admin-only endpoints (authenticated + admin role)
	mux.Handle("POST /api/campaigns", middleware.RequireAdmin(http.HandlerFunc(campaignHandler.Create)))
	mux.Handle("DELETE /api/campaigns/{id}", middleware.RequireAdmin(http.HandlerFunc(campaignHandler.Delete)))

	// OAuth endpoints
	mux.HandleFunc("GET /auth/google", googleAuthHandler.HandleAuth)
	mux.HandleFunc("GET /auth/google/callback", googleAuthHandler.HandleCallback)
	mux.HandleFunc("GET /auth/github", githubAuthHandler.HandleAuth)
	mux.HandleFunc("GET /auth/github/callback", githubAuthHandler.HandleCallback)
	mux.HandleFunc("GET /auth/discord", discordAuthHandler.HandleAuth)
	mux.HandleFunc("GET /auth/discord/callback", discordAuthHandler.HandleCallback)
	mux.Handle("POST /auth/logout", logoutHandler)

	logger.Info("Routes configured successfully",
		"public_endpoints", []string{"/api/server/health", "/api/campaigns", "/api/commanders"},
		"world_endpoints", len(worldRoutes),
		"mutation_endpoints", len(mutationRoutes),
		"admin_endpoints", []string{"POST /api/campaigns", "DELETE /api/campaigns/{id}"},
		"auth_endpoints", []string{"/auth/google", "/auth/github", "/auth/discord", "/auth/logout"},
	)

	return mux
}
