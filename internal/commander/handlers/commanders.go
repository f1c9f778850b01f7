package handlers

import (
	"log/slog"
	"net/http"

	"starmap-server/internal/commander"
	"starmap-server/internal/shared/response"
)

type CommandersHandler struct {
	service *commander.Service
}

func NewCommandersHandler(service *commander.Service) *CommandersHandler {
	return &CommandersHandler{service: service}
}

func (h *CommandersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "commanders", "remote_addr", r.RemoteAddr)
	logger.Debug("Commander list requested")

	commanders, err := h.service.List(ctx)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	if commanders == nil {
		commanders = []commander.Commander{}
	}

	response.Success(w, http.StatusOK, commanders)
	logger.Debug("Commander list completed", "count", len(commanders))
}
