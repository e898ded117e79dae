package migrations

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/m04kA/SMC-CourtBookingService/pkg/sqlbuilder"
)

func TestMigrator_SQLite(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	m, err := NewMigrator(db, sqlbuilder.SQLite)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, m.Up(ctx))
	// повторный запуск ничего не делает
	require.NoError(t, m.Up(ctx))

	version, err := m.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM bookings`).Scan(&n))
	assert.Zero(t, n)
}

func TestNewMigrator_UnknownDialect(t *testing.T) {
	_, err := NewMigrator(nil, sqlbuilder.Dialect("oracle"))
	assert.Error(t, err)
}
