package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-CourtBookingService/pkg/logger"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*domain.Booking)
	return b, args.Error(1)
}

func (m *mockRepo) ListByUser(ctx context.Context, userID string, from types.DateString) ([]*domain.Booking, error) {
	args := m.Called(ctx, userID, from)
	b, _ := args.Get(0).([]*domain.Booking)
	return b, args.Error(1)
}

type fixedToday struct{}

func (fixedToday) Today() types.DateString { return "2026-10-16" }
func (fixedToday) Now() time.Time          { return time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC) }

func TestService_GetByID(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, fixedToday{}, logger.NewNop())
	ctx := context.Background()

	repo.On("GetByID", ctx, "b1").Return(&domain.Booking{
		ID: "b1", CourtID: 2, Date: "2026-10-20", Hour: 9, Type: domain.TypeMatch, Opponent: "TC Nord",
	}, nil)
	repo.On("GetByID", ctx, "nope").Return(nil, bookingRepo.ErrBookingNotFound)
	repo.On("GetByID", ctx, "broken").Return(nil, errors.New("db down"))

	got, err := svc.GetByID(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, "2026-10-20", got.Date)
	assert.Equal(t, "MATCH", got.Type)
	assert.Equal(t, "TC Nord", got.Opponent)

	_, err = svc.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = svc.GetByID(ctx, "broken")
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_GetUserBookings(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, fixedToday{}, logger.NewNop())
	ctx := context.Background()

	repo.On("ListByUser", ctx, "u1", types.DateString("2026-10-16")).Return([]*domain.Booking{
		{ID: "b1", UserID: "u1", Date: "2026-10-20", Hour: 10, Type: domain.TypeFree},
	}, nil)
	repo.On("ListByUser", ctx, "u1", types.DateString("")).Return([]*domain.Booking{}, nil)

	upcoming, err := svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{UserID: "u1", Upcoming: true})
	require.NoError(t, err)
	assert.Len(t, upcoming.Bookings, 1)

	all, err := svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{UserID: "u1"})
	require.NoError(t, err)
	assert.NotNil(t, all.Bookings)
	assert.Empty(t, all.Bookings)

	repo.AssertExpectations(t)
}
