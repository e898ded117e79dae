package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

const date = types.DateString("2026-10-20")

func newBooking(id string, court, hour int) *domain.Booking {
	return &domain.Booking{ID: id, CourtID: court, UserID: "user-1", Date: date, Hour: hour, Type: domain.TypeFree}
}

func TestBookings_CreateIsAtomic(t *testing.T) {
	repo := NewStore().Bookings()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, []*domain.Booking{newBooking("b1", 1, 10)}))

	err := repo.Create(ctx, []*domain.Booking{newBooking("b2", 1, 11), newBooking("b3", 1, 10)})
	assert.ErrorIs(t, err, booking.ErrSlotTaken)

	_, err = repo.GetByID(ctx, "b2")
	assert.ErrorIs(t, err, booking.ErrBookingNotFound)
}

func TestBookings_ReturnsCopies(t *testing.T) {
	repo := NewStore().Bookings()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, []*domain.Booking{newBooking("b1", 1, 10)}))

	got, err := repo.GetByID(ctx, "b1")
	require.NoError(t, err)
	got.Hour = 20

	again, err := repo.GetByID(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, 10, again.Hour)
}

func TestBookings_UpdateMovesSlot(t *testing.T) {
	repo := NewStore().Bookings()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, []*domain.Booking{newBooking("b1", 1, 10), newBooking("b2", 2, 12)}))

	moved := newBooking("b1", 2, 12)
	assert.ErrorIs(t, repo.Update(ctx, moved), booking.ErrSlotTaken)

	moved.Hour = 13
	moved.UpdatedAt = time.Now()
	require.NoError(t, repo.Update(ctx, moved))

	// старый слот освобождён
	require.NoError(t, repo.Create(ctx, []*domain.Booking{newBooking("b3", 1, 10)}))

	day, err := repo.ListByDate(ctx, date)
	require.NoError(t, err)
	require.Len(t, day, 3)
	assert.Equal(t, []string{"b3", "b2", "b1"}, []string{day[0].ID, day[1].ID, day[2].ID})
}

func TestStore_RollbackRestoresState(t *testing.T) {
	store := NewStore()
	repo := store.Bookings()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, []*domain.Booking{newBooking("b1", 1, 10)}))

	boom := errors.New("boom")
	err := store.DoSerializable(ctx, func(ctx context.Context) error {
		require.NoError(t, repo.Delete(ctx, "b1"))
		require.NoError(t, repo.Create(ctx, []*domain.Booking{newBooking("b2", 3, 8)}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = repo.GetByID(ctx, "b1")
	assert.NoError(t, err)
	_, err = repo.GetByID(ctx, "b2")
	assert.ErrorIs(t, err, booking.ErrBookingNotFound)

	// слот b2 освобождён вместе с откатом
	require.NoError(t, repo.Create(ctx, []*domain.Booking{newBooking("b4", 3, 8)}))
}

func TestBookings_DeleteMissingKeepsAll(t *testing.T) {
	repo := NewStore().Bookings()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, []*domain.Booking{newBooking("b1", 1, 10)}))
	assert.ErrorIs(t, repo.Delete(ctx, "b1", "nope"), booking.ErrBookingNotFound)

	_, err := repo.GetByID(ctx, "b1")
	assert.NoError(t, err)
}

func TestUsers_EmailUniqueCaseInsensitive(t *testing.T) {
	repo := NewStore().Users()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.User{ID: "u1", Email: "Max@STV.de"}))
	assert.ErrorIs(t, repo.Create(ctx, &domain.User{ID: "u2", Email: "max@stv.de"}), user.ErrEmailTaken)

	got, err := repo.GetByEmail(ctx, "MAX@stv.de")
	require.NoError(t, err)
	assert.Equal(t, "max@stv.de", got.Email)

	require.NoError(t, repo.UpdateRole(ctx, "u1", domain.RoleAdmin, time.Now()))
	require.NoError(t, repo.Delete(ctx, "u1"))
	_, err = repo.GetByEmail(ctx, "max@stv.de")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
