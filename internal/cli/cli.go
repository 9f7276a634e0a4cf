package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/iudanet/gridedit/internal/control"
	"github.com/iudanet/gridedit/internal/iocli"
	"github.com/iudanet/gridedit/internal/storage"
)

// ErrDatasetRequired возвращается командами, которым нужен набор данных хоста
var ErrDatasetRequired = errors.New("dataset is not set, use --dataset")

// Options глобальные параметры командной строки
type Options struct {
	Dataset string // Dataset имя набора данных хоста
	Session string // Session id сессии контрола; пусто - текущая сессия
	RowKey  string // RowKey поле с бизнес-ключом строки
}

// Cli имитирует хост: хранит данные и состояние контрола между вызовами
type Cli struct {
	io       iocli.IO
	control  control.Service
	states   storage.StateStorage
	metadata storage.MetadataStorage
	datasets storage.DatasetStorage
	logger   *slog.Logger
	opts     Options
}

func New(
	io iocli.IO,
	controlService control.Service,
	states storage.StateStorage,
	metadata storage.MetadataStorage,
	datasets storage.DatasetStorage,
	logger *slog.Logger,
	opts Options,
) *Cli {
	return &Cli{
		io:       io,
		control:  controlService,
		states:   states,
		metadata: metadata,
		datasets: datasets,
		logger:   logger,
		opts:     opts,
	}
}

func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "import":
		return c.runImport(ctx, args)
	case "datasets":
		return c.runDatasets(ctx)
	case "refresh":
		return c.runRefresh(ctx, args)
	case "edit":
		return c.runEdit(ctx, args)
	case "select":
		return c.runSelect(ctx, args)
	case "outputs":
		return c.runOutputs(ctx)
	case "reset":
		return c.runReset(ctx)
	case "commit":
		return c.runCommit(ctx, args)
	case "teardown":
		return c.runTeardown(ctx)
	case "sessions":
		return c.runSessions(ctx)
	case "new-session":
		return c.runNewSession(ctx)
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

// sessionID возвращает id сессии: из флага, затем текущую, иначе создает новую
func (c *Cli) sessionID(ctx context.Context) (string, error) {
	if c.opts.Session != "" {
		return c.opts.Session, nil
	}

	id, err := c.metadata.GetCurrentSession(ctx)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, storage.ErrSessionNotSet) {
		return "", fmt.Errorf("failed to get current session: %w", err)
	}

	id = uuid.New().String()
	if err := c.metadata.SaveCurrentSession(ctx, id); err != nil {
		return "", fmt.Errorf("failed to save current session: %w", err)
	}
	c.logger.Info("New session started", "session_id", id)
	return id, nil
}

// loadState загружает состояние контрола; для новой сессии создается пустое
func (c *Cli) loadState(ctx context.Context) (*control.State, error) {
	id, err := c.sessionID(ctx)
	if err != nil {
		return nil, err
	}

	saved, err := c.states.GetState(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrStateNotFound) {
			return control.NewState(id), nil
		}
		return nil, fmt.Errorf("failed to load session state: %w", err)
	}

	return control.Import(saved), nil
}

func (c *Cli) saveState(ctx context.Context, st *control.State) error {
	if err := c.states.SaveState(ctx, st.Export()); err != nil {
		return fmt.Errorf("failed to save session state: %w", err)
	}
	return nil
}

func PrintUsage() {
	fmt.Println("GridEdit host simulator")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  gridedit [OPTIONS] COMMAND")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version          Show version information")
	fmt.Println("  --db PATH          Path to host dataset database (default: gridedit-data.db)")
	fmt.Println("  --state PATH       Path to control state database (default: gridedit-state.db)")
	fmt.Println("  --session ID       Control session id (default: current session)")
	fmt.Println("  --dataset NAME     Dataset bound to the grid")
	fmt.Println("  --row-key FIELD    Field holding the business row key")
	fmt.Println("  --debug            Enable debug logging")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  import <file.json>             Import dataset (name, columns, rows) into the host")
	fmt.Println("  datasets                       List host datasets")
	fmt.Println("  refresh [flags]                Deliver the dataset to the control and render it")
	fmt.Println("      --show-edited              Render only edited rows")
	fmt.Println("      --read-only                Reject edits")
	fmt.Println("      --single-select            Disable multi-select")
	fmt.Println("      --selected-keys JSON       Select rows by business keys")
	fmt.Println("      --reset-changes            Raise the reset changes flag")
	fmt.Println("      --reset-selection          Raise the reset selection flag")
	fmt.Println("  edit <rowId> <field> <value>   Commit a cell value (JSON literal or text)")
	fmt.Println("  select <rowId>... | --clear    Change grid selection")
	fmt.Println("  outputs                        Print EditedCells, EditedRows and schemas")
	fmt.Println("  reset                          Discard all edits")
	fmt.Println("  commit [--yes]                 Write edited rows back to the dataset")
	fmt.Println("  teardown                       Drop control state of the session")
	fmt.Println("  sessions                       List stored control sessions")
	fmt.Println("  new-session                    Start a new control session")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  gridedit import products.json")
	fmt.Println("  gridedit --dataset products --row-key sku refresh")
	fmt.Println("  gridedit --dataset products edit 1 price 12.5")
	fmt.Println("  gridedit --dataset products outputs")
	fmt.Println("  gridedit --dataset products commit --yes")
}
