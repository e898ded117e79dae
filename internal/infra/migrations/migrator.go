package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"

	"github.com/m04kA/SMC-CourtBookingService/pkg/sqlbuilder"
)

//go:embed sql/postgres/*.sql sql/sqlite/*.sql
var files embed.FS

// goose хранит диалект и FS в глобальном состоянии
var gooseMu sync.Mutex

// Migrator применяет встроенные миграции через goose
type Migrator struct {
	db      *sql.DB
	dialect sqlbuilder.Dialect
}

// NewMigrator создаёт мигратор для диалекта хранилища
func NewMigrator(db *sql.DB, dialect sqlbuilder.Dialect) (*Migrator, error) {
	if _, err := gooseDialect(dialect); err != nil {
		return nil, err
	}
	return &Migrator{db: db, dialect: dialect}, nil
}

// Up применяет все pending миграции
func (m *Migrator) Up(ctx context.Context) error {
	return m.with(func(dir string) error {
		if err := goose.UpContext(ctx, m.db, dir); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		return nil
	})
}

// Version текущая версия схемы
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	var version int64
	err := m.with(func(string) error {
		v, err := goose.GetDBVersionContext(ctx, m.db)
		if err != nil {
			return fmt.Errorf("get version: %w", err)
		}
		version = v
		return nil
	})
	return version, err
}

func (m *Migrator) with(fn func(dir string) error) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	dialect, _ := gooseDialect(m.dialect)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	goose.SetBaseFS(files)
	defer goose.SetBaseFS(nil)

	return fn("sql/" + string(m.dialect))
}

func gooseDialect(d sqlbuilder.Dialect) (string, error) {
	switch d {
	case sqlbuilder.Postgres:
		return "postgres", nil
	case sqlbuilder.SQLite:
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("migrations: unsupported dialect %q", d)
	}
}
