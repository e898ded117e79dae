package get_block

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/rules"
	"github.com/m04kA/SMC-CourtBookingService/pkg/logger"
)

func setup(t *testing.T) *UseCase {
	t.Helper()
	store := memory.NewStore()
	vm := func(id string, hour int) *domain.Booking {
		return &domain.Booking{
			ID: id, CourtID: 2, UserID: "member-1", Date: "2026-10-24", Hour: hour,
			Type: domain.TypeVM, VMType: domain.VMSingles, Opponent: "Bob",
		}
	}
	require.NoError(t, store.Bookings().Create(context.Background(), []*domain.Booking{
		vm("v-14", 14), vm("v-15", 15), vm("v-16", 16),
		// тот же пользователь, другой соперник: уже другой блок
		{ID: "v-17", CourtID: 2, UserID: "member-1", Date: "2026-10-24", Hour: 17, Type: domain.TypeVM, VMType: domain.VMSingles, Opponent: "Carl"},
	}))

	engine := rules.NewEngine(domain.NewCourts(domain.DefaultCourts()), time.UTC, nil)
	return NewUseCase(store.Bookings(), engine, store, logger.NewNop())
}

func ids(bookings []*domain.Booking) []string {
	out := make([]string, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, b.ID)
	}
	return out
}

func TestExecute(t *testing.T) {
	uc := setup(t)
	ctx := context.Background()

	resp, err := uc.Execute(ctx, &Request{CourtID: 2, Date: "2026-10-24", Hour: 14})
	require.NoError(t, err)
	assert.Equal(t, []string{"v-14", "v-15", "v-16"}, ids(resp.Bookings))
	assert.Equal(t, 14, resp.BlockStart)
	assert.Equal(t, 3, resp.BlockLength)

	// с середины блока: вперёд только остаток, границы всего блока
	resp, err = uc.Execute(ctx, &Request{CourtID: 2, Date: "2026-10-24", Hour: 15})
	require.NoError(t, err)
	assert.Equal(t, []string{"v-15", "v-16"}, ids(resp.Bookings))
	assert.Equal(t, 14, resp.BlockStart)
	assert.Equal(t, 3, resp.BlockLength)

	resp, err = uc.Execute(ctx, &Request{CourtID: 2, Date: "2026-10-24", Hour: 17})
	require.NoError(t, err)
	assert.Equal(t, []string{"v-17"}, ids(resp.Bookings))
	assert.Equal(t, 1, resp.BlockLength)

	resp, err = uc.Execute(ctx, &Request{CourtID: 2, Date: "2026-10-24", Hour: 18})
	require.NoError(t, err)
	assert.NotNil(t, resp.Bookings)
	assert.Empty(t, resp.Bookings)
	assert.Zero(t, resp.BlockLength)
}

func TestExecute_InvalidSlot(t *testing.T) {
	uc := setup(t)

	for _, req := range []Request{
		{CourtID: 0, Date: "2026-10-24", Hour: 10},
		{CourtID: 1, Date: "2026-10-24", Hour: 7},
		{CourtID: 1, Date: "24.10.2026", Hour: 10},
	} {
		_, err := uc.Execute(context.Background(), &req)
		assert.ErrorIs(t, err, rules.ErrInvalidInput)
	}
}

type readOnlyTx struct {
	calls int
	err   error
}

func (tx *readOnlyTx) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++
	if tx.err != nil {
		return tx.err
	}
	return fn(ctx)
}

func TestExecute_ReadsInReadOnlyTransaction(t *testing.T) {
	store := memory.NewStore()
	engine := rules.NewEngine(domain.NewCourts(domain.DefaultCourts()), time.UTC, nil)
	tx := &readOnlyTx{}
	uc := NewUseCase(store.Bookings(), engine, tx, logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{CourtID: 2, Date: "2026-10-24", Hour: 14})
	require.NoError(t, err)
	assert.Equal(t, 1, tx.calls)

	// невалидный слот не открывает транзакцию
	_, err = uc.Execute(context.Background(), &Request{CourtID: 2, Date: "2026-10-24", Hour: 30})
	assert.ErrorIs(t, err, rules.ErrInvalidInput)
	assert.Equal(t, 1, tx.calls)

	tx.err = errors.New("connection reset")
	_, err = uc.Execute(context.Background(), &Request{CourtID: 2, Date: "2026-10-24", Hour: 14})
	assert.ErrorIs(t, err, ErrInternal)
}
