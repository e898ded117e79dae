// Package sqlitetest поднимает SQLite в памяти с применёнными миграциями для тестов хранилища
package sqlitetest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/m04kA/SMC-CourtBookingService/internal/infra/migrations"
	"github.com/m04kA/SMC-CourtBookingService/pkg/sqlbuilder"
)

// Open открывает новую пустую базу. Одно соединение: каждое новое
// соединение к :memory: видело бы свою отдельную базу
func Open(t testing.TB) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	m, err := migrations.NewMigrator(db, sqlbuilder.SQLite)
	require.NoError(t, err)
	require.NoError(t, m.Up(context.Background()))

	return db
}
