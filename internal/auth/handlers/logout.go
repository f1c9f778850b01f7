package handlers

import (
	"log/slog"
	"net/http"

	"starmap-server/internal/shared/cookies"
	"starmap-server/internal/shared/response"
)

type LogoutHandler struct {
	logger *slog.Logger
}

func NewLogoutHandler(logger *slog.Logger) *LogoutHandler {
	return &LogoutHandler{logger: logger}
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cookies.ClearAuthCookie(w)
	response.Success(w, http.StatusOK, map[string]string{"status": "logged_out"})
}
