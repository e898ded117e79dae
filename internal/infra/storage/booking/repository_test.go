package booking

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/sqlitetest"
	"github.com/m04kA/SMC-CourtBookingService/pkg/sqlbuilder"
	"github.com/m04kA/SMC-CourtBookingService/pkg/txmanager"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

const date = types.DateString("2026-10-20")

var now = time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*Repository, *txmanager.Manager, *sql.DB) {
	db := sqlitetest.Open(t)
	repo := NewRepository(db, sqlbuilder.MustNew(sqlbuilder.SQLite))
	tm := txmanager.NewTransactionManager(db, txmanager.WithSerializableLevel(sql.LevelDefault))
	return repo, tm, db
}

func newBooking(id string, court, hour int) *domain.Booking {
	return &domain.Booking{
		ID:        id,
		CourtID:   court,
		UserID:    "user-1",
		UserName:  "Max Muster",
		Date:      date,
		Hour:      hour,
		Type:      domain.TypeFree,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestRepository_CreateAndGet(t *testing.T) {
	repo, _, _ := setup(t)
	ctx := context.Background()

	vm := newBooking("b1", 2, 10)
	vm.Type = domain.TypeVM
	vm.VMType = domain.VMDoubles
	vm.Partner = "Ann"
	vm.Opponent = "Bob"
	vm.Opponent2 = "Eve"

	require.NoError(t, repo.Create(ctx, []*domain.Booking{vm}))

	got, err := repo.GetByID(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.CourtID)
	assert.Equal(t, date, got.Date)
	assert.Equal(t, domain.VMDoubles, got.VMType)
	assert.Equal(t, "Eve", got.Opponent2)
	assert.True(t, now.Equal(got.CreatedAt))

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_CreateRejectsTakenSlot(t *testing.T) {
	repo, _, _ := setup(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, []*domain.Booking{newBooking("b1", 1, 10)}))

	// вставка нескольких строк атомарна: конфликт на 10:00 не оставляет 11:00
	err := repo.Create(ctx, []*domain.Booking{newBooking("b2", 1, 11), newBooking("b3", 1, 10)})
	assert.ErrorIs(t, err, ErrSlotTaken)

	_, err = repo.GetByID(ctx, "b2")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_ListByDateAndUser(t *testing.T) {
	repo, _, _ := setup(t)
	ctx := context.Background()

	other := newBooking("b3", 1, 9)
	other.Date = "2026-10-21"
	other.UserID = "user-2"

	require.NoError(t, repo.Create(ctx, []*domain.Booking{
		newBooking("b1", 2, 10),
		newBooking("b2", 1, 12),
		other,
	}))

	day, err := repo.ListByDate(ctx, date)
	require.NoError(t, err)
	require.Len(t, day, 2)
	assert.Equal(t, "b2", day[0].ID, "sorted by court first")

	mine, err := repo.ListByUser(ctx, "user-1", "")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	upcoming, err := repo.ListByUser(ctx, "user-2", "2026-10-22")
	require.NoError(t, err)
	assert.Empty(t, upcoming)
}

func TestRepository_Update(t *testing.T) {
	repo, _, _ := setup(t)
	ctx := context.Background()

	b := newBooking("b1", 1, 10)
	require.NoError(t, repo.Create(ctx, []*domain.Booking{b, newBooking("b2", 3, 14)}))

	b.CourtID = 2
	b.Hour = 15
	b.UpdatedAt = now.Add(time.Hour)
	require.NoError(t, repo.Update(ctx, b))

	got, err := repo.GetByID(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.CourtID)
	assert.Equal(t, 15, got.Hour)
	assert.True(t, now.Add(time.Hour).Equal(got.UpdatedAt))

	b.CourtID = 3
	b.Hour = 14
	assert.ErrorIs(t, repo.Update(ctx, b), ErrSlotTaken)

	assert.ErrorIs(t, repo.Update(ctx, newBooking("missing", 4, 8)), ErrBookingNotFound)
}

func TestRepository_DeleteInTransaction(t *testing.T) {
	repo, tm, _ := setup(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, []*domain.Booking{newBooking("b1", 1, 10), newBooking("b2", 1, 11)}))

	// отсутствующий id откатывает удаление целиком
	err := tm.DoSerializable(ctx, func(ctx context.Context) error {
		return repo.Delete(ctx, "b1", "missing")
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	day, err := repo.ListByDate(ctx, date)
	require.NoError(t, err)
	assert.Len(t, day, 2)

	require.NoError(t, tm.DoSerializable(ctx, func(ctx context.Context) error {
		return repo.Delete(ctx, "b1", "b2")
	}))

	day, err = repo.ListByDate(ctx, date)
	require.NoError(t, err)
	assert.Empty(t, day)
}

func TestRepository_DeleteByUser(t *testing.T) {
	repo, _, _ := setup(t)
	ctx := context.Background()

	foreign := newBooking("b3", 4, 8)
	foreign.UserID = "user-2"
	require.NoError(t, repo.Create(ctx, []*domain.Booking{newBooking("b1", 1, 10), newBooking("b2", 2, 10), foreign}))

	n, err := repo.DeleteByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = repo.GetByID(ctx, "b3")
	assert.NoError(t, err)
}
