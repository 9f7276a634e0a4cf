package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// MemoryPath путь in-memory базы; данные живут, пока открыт Storage
const MemoryPath = ":memory:"

// Storage источник данных хоста: наборы данных и их строки в SQLite
type Storage struct {
	db      *sql.DB
	version int64
}

// New открывает базу наборов данных и применяет миграции схемы
func New(ctx context.Context, dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Одно соединение: in-memory база существует только внутри него,
	// а поставки и коммит патчей не должны пересекаться
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	for _, pragma := range pragmasFor(dbPath) {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}

	storage := &Storage{db: db}
	if err := storage.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return storage, nil
}

// pragmasFor возвращает настройки соединения.
// foreign_keys обязателен: строки удаляются каскадом вместе с набором данных.
func pragmasFor(dbPath string) []string {
	pragmas := []string{
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	}
	if isMemory(dbPath) {
		return pragmas
	}
	return append(pragmas,
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
	)
}

func isMemory(dbPath string) bool {
	return dbPath == MemoryPath || strings.Contains(dbPath, "mode=memory") || strings.HasPrefix(dbPath, "file::memory:")
}

// migrate применяет миграции через собственный goose.Provider, без глобального состояния goose
func (s *Storage) migrate(ctx context.Context) error {
	migrations, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, s.db, migrations)
	if err != nil {
		return fmt.Errorf("failed to create goose provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up failed: %w", err)
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	s.version = version
	return nil
}

// SchemaVersion версия схемы после миграций
func (s *Storage) SchemaVersion() int64 {
	return s.version
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
