package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/sqlitetest"
	"github.com/m04kA/SMC-CourtBookingService/pkg/sqlbuilder"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

func TestOpenSQL_SQLite(t *testing.T) {
	ctx := context.Background()
	date := types.DateString("2026-10-20")

	// миграции уже применены, повторный прогон ничего не меняет
	st, err := OpenSQL(ctx, sqlitetest.Open(t), sqlbuilder.SQLite)
	require.NoError(t, err)
	require.NotNil(t, st.DB)

	err = st.TxManager.DoSerializable(ctx, func(txCtx context.Context) error {
		return st.Bookings.Create(txCtx, []*domain.Booking{
			{ID: "b-1", CourtID: 1, UserID: "u-1", UserName: "Max", Date: date, Hour: 10, Type: domain.TypeFree},
		})
	})
	require.NoError(t, err)

	var day []*domain.Booking
	err = st.TxManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		day, err = st.Bookings.ListByDate(txCtx, date)
		return err
	})
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, "b-1", day[0].ID)
}
