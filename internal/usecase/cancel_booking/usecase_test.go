package cancel_booking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/rules"
	"github.com/m04kA/SMC-CourtBookingService/pkg/logger"
)

type countingMetrics struct{ cancelled int }

func (m *countingMetrics) BookingsCancelled(n int) { m.cancelled += n }

func setup(t *testing.T) (*UseCase, *memory.Store, *countingMetrics) {
	t.Helper()
	store := memory.NewStore()

	// блок 10-12 тренера, рядом одиночная бронь другого пользователя
	require.NoError(t, store.Bookings().Create(context.Background(), []*domain.Booking{
		{ID: "t-10", CourtID: 1, UserID: "trainer-1", Date: "2026-10-20", Hour: 10, Type: domain.TypeTraining},
		{ID: "t-11", CourtID: 1, UserID: "trainer-1", Date: "2026-10-20", Hour: 11, Type: domain.TypeTraining},
		{ID: "t-12", CourtID: 1, UserID: "trainer-1", Date: "2026-10-20", Hour: 12, Type: domain.TypeTraining},
		{ID: "m-13", CourtID: 1, UserID: "member-1", Date: "2026-10-20", Hour: 13, Type: domain.TypeFree},
	}))

	m := &countingMetrics{}
	return NewUseCase(store.Bookings(), store, m, logger.NewNop()), store, m
}

func TestExecute_SingleHour(t *testing.T) {
	uc, store, m := setup(t)
	ctx := context.Background()

	resp, err := uc.Execute(ctx, &Request{
		Session:   rules.Session{UserID: "member-1", Role: domain.RoleMember},
		BookingID: "m-13",
	})
	require.NoError(t, err)
	require.Len(t, resp.Cancelled, 1)
	assert.Equal(t, 1, m.cancelled)

	day, err := store.Bookings().ListByDate(ctx, "2026-10-20")
	require.NoError(t, err)
	assert.Len(t, day, 3)
}

func TestExecute_BlockNeedsConfirmation(t *testing.T) {
	uc, store, m := setup(t)
	ctx := context.Background()
	trainer := rules.Session{UserID: "trainer-1", Role: domain.RoleTrainer}

	_, err := uc.Execute(ctx, &Request{Session: trainer, BookingID: "t-11"})
	require.ErrorIs(t, err, ErrConfirmationRequired)

	var confirmErr *ConfirmationRequiredError
	require.True(t, errors.As(err, &confirmErr))
	assert.Equal(t, 3, confirmErr.BlockLength)

	day, err := store.Bookings().ListByDate(ctx, "2026-10-20")
	require.NoError(t, err)
	assert.Len(t, day, 4, "nothing removed without confirmation")

	resp, err := uc.Execute(ctx, &Request{Session: trainer, BookingID: "t-11", Confirmed: true})
	require.NoError(t, err)
	assert.Len(t, resp.Cancelled, 3)
	assert.Equal(t, 3, m.cancelled)

	day, err = store.Bookings().ListByDate(ctx, "2026-10-20")
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, "m-13", day[0].ID)
}

func TestExecute_Permissions(t *testing.T) {
	uc, _, m := setup(t)
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{
		Session:   rules.Session{UserID: "member-1", Role: domain.RoleMember},
		BookingID: "t-10",
		Confirmed: true,
	})
	assert.ErrorIs(t, err, rules.ErrForbidden)

	resp, err := uc.Execute(ctx, &Request{
		Session:   rules.Session{UserID: "admin", Role: domain.RoleAdmin},
		BookingID: "t-12",
		Confirmed: true,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Cancelled, 3)

	_, err = uc.Execute(ctx, &Request{
		Session:   rules.Session{UserID: "admin", Role: domain.RoleAdmin},
		BookingID: "t-12",
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.Equal(t, 3, m.cancelled)
}
