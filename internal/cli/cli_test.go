package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iudanet/gridedit/internal/control"
	"github.com/iudanet/gridedit/internal/iocli"
	"github.com/iudanet/gridedit/internal/models"
	"github.com/iudanet/gridedit/internal/storage"
)

// testHost хранит данные хоста в памяти; значения проходят через JSON, как в реальных хранилищах
type testHost struct {
	states   map[string][]byte
	datasets map[string][]byte
	current  string
	applied  []models.RowPatch
}

func newTestHost(t *testing.T, datasets ...*models.Dataset) *testHost {
	t.Helper()
	h := &testHost{
		states:   make(map[string][]byte),
		datasets: make(map[string][]byte),
	}
	for _, ds := range datasets {
		data, err := json.Marshal(ds)
		require.NoError(t, err)
		h.datasets[ds.Name] = data
	}
	return h
}

func (h *testHost) stateStorage() *storage.StateStorageMock {
	return &storage.StateStorageMock{
		SaveStateFunc: func(ctx context.Context, state *models.SessionState) error {
			data, err := json.Marshal(state)
			if err != nil {
				return err
			}
			h.states[state.ID] = data
			return nil
		},
		GetStateFunc: func(ctx context.Context, sessionID string) (*models.SessionState, error) {
			data, ok := h.states[sessionID]
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
			delete(h.states, sessionID)
			return nil
		},
		ListSessionsFunc: func(ctx context.Context) ([]string, error) {
			ids := make([]string, 0, len(h.states))
			for id := range h.states {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			return ids, nil
		},
	}
}

func (h *testHost) metadataStorage() *storage.MetadataStorageMock {
	return &storage.MetadataStorageMock{
		GetCurrentSessionFunc: func(ctx context.Context) (string, error) {
			if h.current == "" {
				return "", storage.ErrSessionNotSet
			}
			return h.current, nil
		},
		SaveCurrentSessionFunc: func(ctx context.Context, sessionID string) error {
			h.current = sessionID
			return nil
		},
	}
}

func (h *testHost) datasetStorage() *storage.DatasetStorageMock {
	return &storage.DatasetStorageMock{
		SaveDatasetFunc: func(ctx context.Context, ds *models.Dataset) error {
			data, err := json.Marshal(ds)
			if err != nil {
				return err
			}
			h.datasets[ds.Name] = data
			return nil
		},
		GetDatasetFunc: func(ctx context.Context, name string) (*models.Dataset, error) {
			data, ok := h.datasets[name]
			if !ok {
				return nil, storage.ErrDatasetNotFound
			}
			var ds models.Dataset
			if err := json.Unmarshal(data, &ds); err != nil {
				return nil, err
			}
			return &ds, nil
		},
		ApplyPatchesFunc: func(ctx context.Context, name string, patches []models.RowPatch) (int, error) {
			h.applied = append(h.applied, patches...)
			return len(patches), nil
		},
		ListDatasetsFunc: func(ctx context.Context) ([]string, error) {
			names := make([]string, 0, len(h.datasets))
			for name := range h.datasets {
				names = append(names, name)
			}
			sort.Strings(names)
			return names, nil
		},
	}
}

// testOutput собирает все, что команда напечатала
type testOutput struct {
	lines   []string
	written []byte
}

func (o *testOutput) String() string {
	return strings.Join(o.lines, "\n") + string(o.written)
}

func newTestIO(out *testOutput, answers ...string) *iocli.IOMock {
	return &iocli.IOMock{
		PrintlnFunc: func(a ...any) {
			out.lines = append(out.lines, joinArgs(a))
		},
		PrintfFunc: func(format string, a ...any) {
			out.lines = append(out.lines, fmt.Sprintf(format, a...))
		},
		WriteFunc: func(p []byte) (int, error) {
			out.written = append(out.written, p...)
			return len(p), nil
		},
		ReadInputFunc: func(prompt string) (string, error) {
			if len(answers) == 0 {
				return "", io.EOF
			}
			answer := answers[0]
			answers = answers[1:]
			return answer, nil
		},
		IsTerminalFunc: func() bool {
			return false
		},
	}
}

func joinArgs(a []any) string {
	parts := make([]string, len(a))
	for i, v := range a {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, " ")
}

func newTestCli(h *testHost, mockIO iocli.IO, opts Options) *Cli {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(
		mockIO,
		control.NewService(logger),
		h.stateStorage(),
		h.metadataStorage(),
		h.datasetStorage(),
		logger,
		opts,
	)
}

// createTestDataset создает набор products с ключом sku
func createTestDataset() *models.Dataset {
	ds := &models.Dataset{
		Name: "products",
		Columns: []models.Column{
			{Name: "sku", DisplayName: "SKU", DataType: models.DataTypeString},
			{Name: "title", DisplayName: "Title", DataType: models.DataTypeString},
			{Name: "price", DisplayName: "Price", DataType: models.DataTypeNumber},
		},
	}
	for i, title := range []string{"Widget", "Gadget"} {
		row := models.NewRow(fmt.Sprintf("r%d", i+1))
		row.Values.Set("sku", models.String(fmt.Sprintf("SKU-%d", i+1)))
		row.Values.Set("title", models.String(title))
		row.Values.Set("price", models.Number(float64(10*(i+1))))
		ds.Rows = append(ds.Rows, row)
	}
	return ds
}
