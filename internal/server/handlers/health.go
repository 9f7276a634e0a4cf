package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/gridedit/internal/storage"
)

// HealthHandler сообщает о доступности хранилищ контрола
type HealthHandler struct {
	logger   *slog.Logger
	states   storage.StateStorage
	datasets storage.DatasetStorage
	version  string
}

// NewHealthHandler создает новый handler для health check
func NewHealthHandler(logger *slog.Logger, version string, states storage.StateStorage, datasets storage.DatasetStorage) *HealthHandler {
	return &HealthHandler{
		logger:   logger,
		states:   states,
		datasets: datasets,
		version:  version,
	}
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version,omitempty"`
	Sessions int    `json:"sessions"`
	Datasets int    `json:"datasets"`
}

// Health обрабатывает GET /api/v1/health.
// Если одно из хранилищ недоступно, отвечает 503 со статусом "unavailable".
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp := HealthResponse{Status: "ok", Version: h.version}
	status := http.StatusOK

	sessions, err := h.states.ListSessions(ctx)
	if err != nil {
		h.logger.Error("State storage unavailable", "error", err)
		resp.Status, status = "unavailable", http.StatusServiceUnavailable
	}
	datasets, err := h.datasets.ListDatasets(ctx)
	if err != nil {
		h.logger.Error("Dataset storage unavailable", "error", err)
		resp.Status, status = "unavailable", http.StatusServiceUnavailable
	}
	resp.Sessions = len(sessions)
	resp.Datasets = len(datasets)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode health response", slog.Any("error", err))
	}
}
