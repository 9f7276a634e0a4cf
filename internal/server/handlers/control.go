package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/iudanet/gridedit/internal/control"
	"github.com/iudanet/gridedit/internal/models"
	"github.com/iudanet/gridedit/internal/storage"
	"github.com/iudanet/gridedit/pkg/api"
)

// errInvalidRequest некорректное тело или параметры запроса
var errInvalidRequest = errors.New("invalid request")

// ControlHandler передает события хоста контролу.
// Состояние сессии загружается и сохраняется на каждый запрос;
// запросы одной сессии выполняются последовательно.
type ControlHandler struct {
	logger   *slog.Logger
	service  control.Service
	states   storage.StateStorage
	datasets storage.DatasetStorage
	locks    map[string]*sessionLock
	locksMu  sync.Mutex
}

// sessionLock мьютекс сессии и число запросов, которые его держат или ждут
type sessionLock struct {
	refs int
	mu   sync.Mutex
}

// NewControlHandler creates a new control handler
func NewControlHandler(logger *slog.Logger, service control.Service, states storage.StateStorage, datasets storage.DatasetStorage) *ControlHandler {
	return &ControlHandler{
		logger:   logger,
		service:  service,
		states:   states,
		datasets: datasets,
		locks:    make(map[string]*sessionLock),
	}
}

// Register регистрирует маршруты контрола
func (h *ControlHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/sessions/{session}/refresh", h.Refresh)
	mux.HandleFunc("POST /api/v1/sessions/{session}/edits", h.Edit)
	mux.HandleFunc("PUT /api/v1/sessions/{session}/selection", h.Select)
	mux.HandleFunc("DELETE /api/v1/sessions/{session}/selection", h.ClearSelection)
	mux.HandleFunc("POST /api/v1/sessions/{session}/reset", h.Reset)
	mux.HandleFunc("GET /api/v1/sessions/{session}/outputs", h.Outputs)
	mux.HandleFunc("POST /api/v1/sessions/{session}/commit", h.Commit)
	mux.HandleFunc("DELETE /api/v1/sessions/{session}", h.Teardown)
}

// sessionFunc обрабатывает событие над состоянием сессии и возвращает тело ответа
type sessionFunc func(ctx context.Context, st *control.State) (any, error)

// withSession загружает состояние, выполняет обработчик и сохраняет результат
func (h *ControlHandler) withSession(w http.ResponseWriter, r *http.Request, fn sessionFunc) {
	ctx := r.Context()
	id := r.PathValue("session")

	unlock := h.lock(id)
	defer unlock()

	st, err := h.loadState(ctx, id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp, err := fn(ctx, st)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := h.states.SaveState(ctx, st.Export()); err != nil {
		h.writeError(w, fmt.Errorf("failed to save session state: %w", err))
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// lock захватывает мьютекс сессии. Запись удаляется, когда ее не держит ни один запрос.
func (h *ControlHandler) lock(id string) func() {
	h.locksMu.Lock()
	l, ok := h.locks[id]
	if !ok {
		l = &sessionLock{}
		h.locks[id] = l
	}
	l.refs++
	h.locksMu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		h.locksMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(h.locks, id)
		}
		h.locksMu.Unlock()
	}
}

// activeSessions возвращает число сессий с незавершенными запросами
func (h *ControlHandler) activeSessions() int {
	h.locksMu.Lock()
	defer h.locksMu.Unlock()
	return len(h.locks)
}

func (h *ControlHandler) loadState(ctx context.Context, id string) (*control.State, error) {
	saved, err := h.states.GetState(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrStateNotFound) {
			return control.NewState(id), nil
		}
		return nil, fmt.Errorf("failed to load session state: %w", err)
	}
	return control.Import(saved), nil
}

// Refresh обрабатывает POST /api/v1/sessions/{session}/refresh
func (h *ControlHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req api.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, fmt.Errorf("%w: %v", errInvalidRequest, err))
		return
	}
	if req.Dataset == "" {
		h.writeError(w, fmt.Errorf("%w: dataset is required", errInvalidRequest))
		return
	}

	h.withSession(w, r, func(ctx context.Context, st *control.State) (any, error) {
		ds, err := h.datasets.GetDataset(ctx, req.Dataset)
		if err != nil {
			return nil, fmt.Errorf("failed to load dataset: %w", err)
		}

		plan := h.service.Refresh(st, control.RefreshInput{
			Dataset:         ds,
			RowKeyField:     req.RowKeyField,
			SelectedRowKeys: req.SelectedRowKeys,
			MultiSelect:     req.MultiSelect,
			ReadOnly:        req.ReadOnly,
			ShowEdited:      req.ShowEdited,
			ResetChanges:    req.ResetChanges,
			ResetSelection:  req.ResetSelection,
		})

		return api.RenderResponse{
			Columns:      plan.Columns,
			Rows:         plan.Rows,
			EditedCells:  toAPICells(plan.EditedCells),
			RefreshCells: toAPICells(plan.RefreshCells),
			Selected:     plan.Selected,
			RefreshAll:   plan.RefreshAll,
			MultiSelect:  plan.MultiSelect,
			ReadOnly:     plan.ReadOnly,
		}, nil
	})
}

// Edit обрабатывает POST /api/v1/sessions/{session}/edits
func (h *ControlHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var req api.EditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, fmt.Errorf("%w: %v", errInvalidRequest, err))
		return
	}

	h.withSession(w, r, func(ctx context.Context, st *control.State) (any, error) {
		res, err := h.service.Edit(st, control.EditEvent{
			RowID:    req.RowID,
			Field:    req.Field,
			NewValue: req.NewValue,
			OldValue: req.OldValue,
		})
		if err != nil {
			return nil, err
		}
		return api.EditResponse{
			Cell:  api.Cell{RowID: res.Cell.RowID, Field: res.Cell.Field},
			Dirty: res.Dirty,
		}, nil
	})
}

// Select обрабатывает PUT /api/v1/sessions/{session}/selection
func (h *ControlHandler) Select(w http.ResponseWriter, r *http.Request) {
	var req api.SelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, fmt.Errorf("%w: %v", errInvalidRequest, err))
		return
	}

	h.withSession(w, r, func(ctx context.Context, st *control.State) (any, error) {
		return api.SelectionResponse{Selected: h.service.SelectionChanged(st, req.RowIDs)}, nil
	})
}

// ClearSelection обрабатывает DELETE /api/v1/sessions/{session}/selection
func (h *ControlHandler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(ctx context.Context, st *control.State) (any, error) {
		h.service.ClearSelection(st)
		return api.SelectionResponse{Selected: []string{}}, nil
	})
}

// Reset обрабатывает POST /api/v1/sessions/{session}/reset
func (h *ControlHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(ctx context.Context, st *control.State) (any, error) {
		h.service.ResetChanges(st)
		return h.service.Outputs(st)
	})
}

// Outputs обрабатывает GET /api/v1/sessions/{session}/outputs
func (h *ControlHandler) Outputs(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(ctx context.Context, st *control.State) (any, error) {
		return h.service.Outputs(st)
	})
}

// Commit обрабатывает POST /api/v1/sessions/{session}/commit?dataset=name.
// Измененные строки записываются в набор данных, после чего контрол сбрасывается.
func (h *ControlHandler) Commit(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("dataset")
	if name == "" {
		h.writeError(w, fmt.Errorf("%w: dataset is required", errInvalidRequest))
		return
	}

	h.withSession(w, r, func(ctx context.Context, st *control.State) (any, error) {
		updated := 0
		if patches := st.Tracker.Patches.All(); len(patches) > 0 {
			var err error
			updated, err = h.datasets.ApplyPatches(ctx, name, patches)
			if err != nil {
				return nil, fmt.Errorf("failed to apply patches: %w", err)
			}
		}

		h.service.Teardown(st)
		h.logger.Info("Changes committed", "session_id", st.ID, "dataset", name, "rows", updated)
		return api.CommitResponse{Dataset: name, Updated: updated}, nil
	})
}

// Teardown обрабатывает DELETE /api/v1/sessions/{session}
func (h *ControlHandler) Teardown(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("session")

	unlock := h.lock(id)
	defer unlock()

	if err := h.states.DeleteState(ctx, id); err != nil {
		h.writeError(w, fmt.Errorf("failed to delete session state: %w", err))
		return
	}

	h.logger.Info("Session torn down", "session_id", id)
	w.WriteHeader(http.StatusNoContent)
}

func toAPICells(cells []models.CellRef) []api.Cell {
	result := make([]api.Cell, 0, len(cells))
	for _, c := range cells {
		result = append(result, api.Cell{RowID: c.RowID, Field: c.Field})
	}
	return result
}

// statusFor сопоставляет ошибку статусу HTTP
func statusFor(err error) int {
	switch {
	case errors.Is(err, errInvalidRequest),
		errors.Is(err, control.ErrEmptyField),
		errors.Is(err, control.ErrEmptyRow):
		return http.StatusBadRequest
	case errors.Is(err, control.ErrReadOnly):
		return http.StatusConflict
	case errors.Is(err, storage.ErrDatasetNotFound),
		errors.Is(err, storage.ErrRowNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (h *ControlHandler) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.Error("Control request failed", "error", err)
		// Детали внутренних ошибок клиенту не раскрываются
		msg = http.StatusText(status)
	} else {
		h.logger.Warn("Control request rejected", "error", err, "status", status)
	}
	h.writeJSON(w, status, api.ErrorResponse{Error: msg})
}

func (h *ControlHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}
