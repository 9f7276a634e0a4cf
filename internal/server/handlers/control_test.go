package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gridedit/internal/control"
	"github.com/iudanet/gridedit/internal/models"
	"github.com/iudanet/gridedit/internal/storage"
	"github.com/iudanet/gridedit/pkg/api"
)

func setupTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError, // Only show errors in tests
	}
	handler := slog.NewTextHandler(os.Stdout, opts)
	return slog.New(handler)
}

// memoryStates хранит состояния сессий в памяти в JSON виде
type memoryStates struct {
	data map[string][]byte
	mu   sync.Mutex
}

func (m *memoryStates) mock() *storage.StateStorageMock {
	return &storage.StateStorageMock{
		SaveStateFunc: func(ctx context.Context, state *models.SessionState) error {
			data, err := json.Marshal(state)
			if err != nil {
				return err
			}
			m.mu.Lock()
			defer m.mu.Unlock()
			m.data[state.ID] = data
			return nil
		},
		GetStateFunc: func(ctx context.Context, sessionID string) (*models.SessionState, error) {
			m.mu.Lock()
			data, ok := m.data[sessionID]
			m.mu.Unlock()
			if !ok {
				return nil, storage.ErrStateNotFound
			}
			var state models.SessionState
			if err := json.Unmarshal(data, &state); err != nil {
				return nil, err
			}
			return &state, nil
		},
		DeleteStateFunc: func(ctx context.Context, sessionID string) error {
			m.mu.Lock()
			defer m.mu.Unlock()
			delete(m.data, sessionID)
			return nil
		},
	}
}

func createTestDataset() *models.Dataset {
	ds := &models.Dataset{
		Name: "orders",
		Columns: []models.Column{
			{Name: "code", DataType: models.DataTypeString},
			{Name: "amount", DataType: models.DataTypeNumber},
		},
	}
	for i := 1; i <= 2; i++ {
		row := models.NewRow(fmt.Sprintf("r%d", i))
		row.Values.Set("code", models.String(fmt.Sprintf("K-%d", i)))
		row.Values.Set("amount", models.Number(float64(i*100)))
		ds.Rows = append(ds.Rows, row)
	}
	return ds
}

type testServer struct {
	handler  *ControlHandler
	mux      *http.ServeMux
	states   *memoryStates
	datasets *storage.DatasetStorageMock
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := setupTestLogger()
	states := &memoryStates{data: make(map[string][]byte)}

	datasets := &storage.DatasetStorageMock{
		GetDatasetFunc: func(ctx context.Context, name string) (*models.Dataset, error) {
			if name != "orders" {
				return nil, storage.ErrDatasetNotFound
			}
			return createTestDataset(), nil
		},
		ApplyPatchesFunc: func(ctx context.Context, name string, patches []models.RowPatch) (int, error) {
			return len(patches), nil
		},
	}

	handler := NewControlHandler(logger, control.NewService(logger), states.mock(), datasets)
	mux := http.NewServeMux()
	handler.Register(mux)

	return &testServer{handler: handler, mux: mux, states: states, datasets: datasets}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)
	return w
}

func TestControlHandler_RefreshEditOutputs(t *testing.T) {
	s := setupTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/sessions/s1/refresh", `{"dataset":"orders","row_key_field":"code","multi_select":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var plan api.RenderResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&plan))
	assert.Len(t, plan.Rows, 2)
	assert.Len(t, plan.Columns, 2)
	assert.Empty(t, plan.EditedCells)

	w = s.do(t, http.MethodPost, "/api/v1/sessions/s1/edits", `{"row_id":"r1","field":"amount","new_value":"150"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var edit api.EditResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&edit))
	assert.True(t, edit.Dirty)
	assert.Equal(t, api.Cell{RowID: "r1", Field: "amount"}, edit.Cell)

	w = s.do(t, http.MethodGet, "/api/v1/sessions/s1/outputs", "")
	require.Equal(t, http.StatusOK, w.Code)

	var out map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	cells := out["EditedCells"].([]any)
	require.Len(t, cells, 1)
	cell := cells[0].(map[string]any)
	assert.Equal(t, "100", cell["oldValue"])
	assert.Equal(t, "150", cell["newValue"])
	assert.Equal(t, "K-1", cell["rowKey"])
	assert.Equal(t, []any{map[string]any{"rowKey": "K-1", "amount": "150"}}, out["EditedRows"])

	// Повторная поставка сохраняет правку
	w = s.do(t, http.MethodPost, "/api/v1/sessions/s1/refresh", `{"dataset":"orders","row_key_field":"code","multi_select":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	plan = api.RenderResponse{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&plan))
	assert.Equal(t, []api.Cell{{RowID: "r1", Field: "amount"}}, plan.EditedCells)
	v, ok := plan.Rows[0].Get("amount")
	require.True(t, ok)
	assert.Equal(t, "150", v.String())
}

func TestControlHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		setup      []string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{
			name:       "malformed refresh body",
			method:     http.MethodPost,
			path:       "/api/v1/sessions/s1/refresh",
			body:       `{not json`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "refresh without dataset",
			method:     http.MethodPost,
			path:       "/api/v1/sessions/s1/refresh",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown dataset",
			method:     http.MethodPost,
			path:       "/api/v1/sessions/s1/refresh",
			body:       `{"dataset":"missing"}`,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "edit without field",
			method:     http.MethodPost,
			path:       "/api/v1/sessions/s1/edits",
			body:       `{"row_id":"r1","new_value":1}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "edit on read-only grid",
			setup:      []string{`{"dataset":"orders","read_only":true}`},
			method:     http.MethodPost,
			path:       "/api/v1/sessions/s1/edits",
			body:       `{"row_id":"r1","field":"amount","new_value":1}`,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "commit without dataset",
			method:     http.MethodPost,
			path:       "/api/v1/sessions/s1/commit",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "wrong method",
			method:     http.MethodGet,
			path:       "/api/v1/sessions/s1/refresh",
			wantStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := setupTestServer(t)
			for _, body := range tt.setup {
				require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/v1/sessions/s1/refresh", body).Code)
			}

			w := s.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestControlHandler_Selection(t *testing.T) {
	s := setupTestServer(t)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/v1/sessions/s1/refresh", `{"dataset":"orders","row_key_field":"code"}`).Code)

	// multi_select выключен: остается первая строка
	w := s.do(t, http.MethodPut, "/api/v1/sessions/s1/selection", `{"row_ids":["r2","r1"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	var sel api.SelectionResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&sel))
	assert.Equal(t, []string{"r2"}, sel.Selected)

	w = s.do(t, http.MethodGet, "/api/v1/sessions/s1/outputs", "")
	var out map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	assert.Equal(t, []any{"K-2"}, out["SelectedRowKeys"])

	w = s.do(t, http.MethodDelete, "/api/v1/sessions/s1/selection", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/sessions/s1/outputs", "")
	out = nil
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	assert.Empty(t, out["SelectedRowKeys"])
}

func TestControlHandler_ResetAndCommit(t *testing.T) {
	s := setupTestServer(t)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/v1/sessions/s1/refresh", `{"dataset":"orders"}`).Code)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/v1/sessions/s1/edits", `{"row_id":"r1","field":"amount","new_value":1}`).Code)

	w := s.do(t, http.MethodPost, "/api/v1/sessions/s1/reset", "")
	require.Equal(t, http.StatusOK, w.Code)
	var out map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	assert.Empty(t, out["EditedCells"])

	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/v1/sessions/s1/edits", `{"row_id":"r2","field":"amount","new_value":5}`).Code)

	w = s.do(t, http.MethodPost, "/api/v1/sessions/s1/commit?dataset=orders", "")
	require.Equal(t, http.StatusOK, w.Code)
	var commit api.CommitResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&commit))
	assert.Equal(t, api.CommitResponse{Dataset: "orders", Updated: 1}, commit)

	calls := s.datasets.ApplyPatchesCalls()
	require.Len(t, calls, 1)
	require.Len(t, calls[0].Patches, 1)
	assert.Equal(t, "r2", calls[0].Patches[0].RowID)

	w = s.do(t, http.MethodGet, "/api/v1/sessions/s1/outputs", "")
	out = nil
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	assert.Empty(t, out["EditedRows"])
}

func TestControlHandler_Teardown(t *testing.T) {
	s := setupTestServer(t)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/v1/sessions/s1/refresh", `{"dataset":"orders"}`).Code)
	require.Contains(t, s.states.data, "s1")

	w := s.do(t, http.MethodDelete, "/api/v1/sessions/s1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NotContains(t, s.states.data, "s1")
	assert.Zero(t, s.handler.activeSessions())
}

func TestControlHandler_ConcurrentEdits(t *testing.T) {
	s := setupTestServer(t)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/v1/sessions/s1/refresh", `{"dataset":"orders","multi_select":true}`).Code)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body := fmt.Sprintf(`{"row_id":"r%d","field":"code","new_value":"C-%d"}`, i%2+1, i)
			s.do(t, http.MethodPost, "/api/v1/sessions/s1/edits", body)
		}(i)
	}
	wg.Wait()

	// Правки одной сессии не теряются: обе строки изменены
	w := s.do(t, http.MethodGet, "/api/v1/sessions/s1/outputs", "")
	var out map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	assert.Len(t, out["EditedCells"], 2)
	assert.Zero(t, s.handler.activeSessions())
}

func TestControlHandler_SessionLocksReleased(t *testing.T) {
	s := setupTestServer(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("s%d", i%5)
			s.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/refresh", `{"dataset":"orders"}`)
			s.do(t, http.MethodDelete, "/api/v1/sessions/"+id, "")
		}(i)
	}
	wg.Wait()

	assert.Zero(t, s.handler.activeSessions())
	assert.Empty(t, s.states.data)
}
