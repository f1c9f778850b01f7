package handlers

import (
	"log/slog"
	"net/http"

	"starmap-server/internal/auth"
	"starmap-server/internal/auth/providers"
	"starmap-server/internal/commander"
	"starmap-server/internal/shared/config"
	"starmap-server/internal/shared/cookies"
	"starmap-server/internal/shared/errors"
	"starmap-server/internal/shared/response"
)

// OAuthHandler runs the sign-in flow for one provider: redirect out with a
// state token, then exchange the callback code for a commander session.
type OAuthHandler struct {
	provider   providers.OAuthProvider
	commanders *commander.Service
	states     *auth.StateManager
	logger     *slog.Logger
}

func NewOAuthHandler(provider providers.OAuthProvider, commanders *commander.Service, states *auth.StateManager, logger *slog.Logger) *OAuthHandler {
	return &OAuthHandler{
		provider:   provider,
		commanders: commanders,
		states:     states,
		logger:     logger,
	}
}

func (h *OAuthHandler) HandleAuth(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "oauth_auth", "provider", h.providerName())
	if h.provider == nil {
		response.Error(w, r, logger, errors.NotFoundf("sign-in provider not configured"))
		return
	}

	state, err := h.states.Generate(h.provider.Name())
	if err != nil {
		response.Error(w, r, logger, errors.WrapInternal("failed to start sign-in", err))
		return
	}

	http.Redirect(w, r, h.provider.AuthURL(state), http.StatusTemporaryRedirect)
}

func (h *OAuthHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "oauth_callback", "provider", h.providerName())
	if h.provider == nil {
		response.Error(w, r, logger, errors.NotFoundf("sign-in provider not configured"))
		return
	}

	state := r.URL.Query().Get("state")
	if !h.states.Consume(state, h.provider.Name()) {
		response.Error(w, r, logger, errors.Unauthorized("invalid or expired state token"))
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		response.Error(w, r, logger, errors.Unauthorized("missing authorization code"))
		return
	}

	token, err := h.provider.Exchange(r.Context(), code)
	if err != nil {
		response.Error(w, r, logger, errors.WrapExternal("failed to exchange authorization code", err))
		return
	}

	user, err := h.provider.UserInfo(r.Context(), token)
	if err != nil {
		response.Error(w, r, logger, errors.WrapExternal("failed to fetch user info", err))
		return
	}

	cmdr, err := h.commanders.FindOrCreateByOAuth(r.Context(), h.provider.Name(), user.ID, user.Email, user.Name, user.AvatarURL)
	if err != nil {
		response.Error(w, r, logger, errors.WrapInternal("failed to resolve commander account", err))
		return
	}

	jwtToken, err := auth.GenerateJWT(cmdr)
	if err != nil {
		response.Error(w, r, logger, errors.WrapInternal("failed to issue session token", err))
		return
	}
	cookies.SetAuthCookie(w, jwtToken)

	logger.Info("Commander signed in",
		"commander_id", cmdr.ID,
		"username", cmdr.Username,
	)
	http.Redirect(w, r, config.GlobalConfig.Frontend.URL, http.StatusTemporaryRedirect)
}

func (h *OAuthHandler) providerName() string {
	if h.provider == nil {
		return "unconfigured"
	}
	return h.provider.Name()
}
