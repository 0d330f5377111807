package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"path"

	_ "github.com/jackc/pgx/v5/stdlib" // драйвер pgx для database/sql
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsDir = "migrations"

// MigrationState: версия миграции и признак применения.
type MigrationState struct {
	Version int64
	Name    string
	Applied bool
}

// Migrator применяет встроенные в бинарник goose-миграции.
type Migrator struct {
	db *sql.DB
}

func OpenMigrator(dsn string) (*Migrator, error) {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, err
	}
	sqlDB, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open migrations db: %w", err)
	}
	return &Migrator{db: sqlDB}, nil
}

func (m *Migrator) Close() error { return m.db.Close() }

func (m *Migrator) Up(ctx context.Context) error {
	return goose.UpContext(ctx, m.db, migrationsDir)
}

// Down откатывает последнюю применённую миграцию.
func (m *Migrator) Down(ctx context.Context) error {
	return goose.DownContext(ctx, m.db, migrationsDir)
}

func (m *Migrator) Version(ctx context.Context) (int64, error) {
	return goose.GetDBVersionContext(ctx, m.db)
}

// Status возвращает все известные миграции с отметкой о применении.
func (m *Migrator) Status(ctx context.Context) ([]MigrationState, error) {
	current, err := m.Version(ctx)
	if err != nil && !errors.Is(err, goose.ErrNoNextVersion) {
		return nil, err
	}
	all, err := goose.CollectMigrations(migrationsDir, 0, goose.MaxVersion)
	if err != nil {
		return nil, err
	}
	out := make([]MigrationState, 0, len(all))
	for _, mg := range all {
		out = append(out, MigrationState{
			Version: mg.Version,
			Name:    path.Base(mg.Source),
			Applied: mg.Version <= current,
		})
	}
	return out, nil
}
