package move_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/infra/storage"
	"github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/sqlitetest"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/rules"
	"github.com/m04kA/SMC-CourtBookingService/pkg/logger"
	"github.com/m04kA/SMC-CourtBookingService/pkg/sqlbuilder"
)

const tuesday = "2026-10-20"

type fixedTime struct{}

func (fixedTime) Now() time.Time { return time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC) }

type countingMetrics struct{ moved int }

func (m *countingMetrics) BookingsMoved(n int) { m.moved += n }

type repo interface {
	BookingRepository
	Create(ctx context.Context, bookings []*domain.Booking) error
}

type fixture struct {
	uc      *UseCase
	repo    repo
	metrics *countingMetrics
}

func fixtures(t *testing.T) map[string]func() fixture {
	engine := func() *rules.Engine {
		return rules.NewEngine(domain.NewCourts(domain.DefaultCourts()), time.UTC, nil).WithTimeProvider(fixedTime{})
	}

	return map[string]func() fixture{
		"memory": func() fixture {
			store := memory.NewStore()
			m := &countingMetrics{}
			return fixture{NewUseCase(store.Bookings(), engine(), store, m, logger.NewNop()), store.Bookings(), m}
		},
		"sqlite": func() fixture {
			st, err := storage.OpenSQL(context.Background(), sqlitetest.Open(t), sqlbuilder.SQLite)
			require.NoError(t, err)
			m := &countingMetrics{}
			return fixture{NewUseCase(st.Bookings, engine(), st.TxManager, m, logger.NewNop()), st.Bookings, m}
		},
	}
}

// seed: блок тренировки 10-12 на корте 1, бронь участника 9:00 на корте 2
func seed(t *testing.T, r repo) {
	t.Helper()
	require.NoError(t, r.Create(context.Background(), []*domain.Booking{
		{ID: "t-10", CourtID: 1, UserID: "trainer-1", UserName: "Tina", Date: tuesday, Hour: 10, Type: domain.TypeTraining},
		{ID: "t-11", CourtID: 1, UserID: "trainer-1", UserName: "Tina", Date: tuesday, Hour: 11, Type: domain.TypeTraining},
		{ID: "t-12", CourtID: 1, UserID: "trainer-1", UserName: "Tina", Date: tuesday, Hour: 12, Type: domain.TypeTraining},
		{ID: "m-9", CourtID: 2, UserID: "member-1", UserName: "Max", Date: tuesday, Hour: 9, Type: domain.TypeFree},
	}))
}

func slotsOf(t *testing.T, r repo) map[string][2]int {
	t.Helper()
	day, err := r.ListByDate(context.Background(), tuesday)
	require.NoError(t, err)
	out := make(map[string][2]int, len(day))
	for _, b := range day {
		out[b.ID] = [2]int{b.CourtID, b.Hour}
	}
	return out
}

func TestExecute_SingleBooking(t *testing.T) {
	for name, build := range fixtures(t) {
		t.Run(name, func(t *testing.T) {
			f := build()
			seed(t, f.repo)

			// квота: собственная бронь исключается, поэтому перенос в пределах дня разрешён
			resp, err := f.uc.Execute(context.Background(), &Request{
				Session:       rules.Session{UserID: "member-1", Role: domain.RoleMember},
				BookingID:     "m-9",
				TargetCourtID: 3,
				TargetHour:    14,
			})
			require.NoError(t, err)
			require.Len(t, resp.Moved, 1)
			assert.Equal(t, "m-9", resp.Moved[0].ID)

			assert.Equal(t, [2]int{3, 14}, slotsOf(t, f.repo)["m-9"])
			assert.Equal(t, 1, f.metrics.moved)
		})
	}
}

func TestExecute_WholeBlockOverlappingItself(t *testing.T) {
	for name, build := range fixtures(t) {
		t.Run(name, func(t *testing.T) {
			f := build()
			seed(t, f.repo)

			resp, err := f.uc.Execute(context.Background(), &Request{
				Session:       rules.Session{UserID: "trainer-1", Role: domain.RoleTrainer},
				BookingID:     "t-11",
				TargetCourtID: 1,
				TargetHour:    11,
				WholeBlock:    true,
			})
			require.NoError(t, err)
			assert.Len(t, resp.Moved, 3)

			slots := slotsOf(t, f.repo)
			assert.Equal(t, [2]int{1, 11}, slots["t-10"])
			assert.Equal(t, [2]int{1, 12}, slots["t-11"])
			assert.Equal(t, [2]int{1, 13}, slots["t-12"])

			// и обратно на час раньше
			_, err = f.uc.Execute(context.Background(), &Request{
				Session:       rules.Session{UserID: "trainer-1", Role: domain.RoleTrainer},
				BookingID:     "t-12",
				TargetCourtID: 1,
				TargetHour:    9,
				WholeBlock:    true,
			})
			require.NoError(t, err)

			slots = slotsOf(t, f.repo)
			assert.Equal(t, [2]int{1, 9}, slots["t-10"])
			assert.Equal(t, [2]int{1, 11}, slots["t-12"])
		})
	}
}

func TestExecute_FailureLeavesSourceInPlace(t *testing.T) {
	for name, build := range fixtures(t) {
		t.Run(name, func(t *testing.T) {
			f := build()
			seed(t, f.repo)
			ctx := context.Background()
			before := slotsOf(t, f.repo)

			// на корт 2 блок упирается в 9:00 участника
			_, err := f.uc.Execute(ctx, &Request{
				Session:       rules.Session{UserID: "trainer-1", Role: domain.RoleTrainer},
				BookingID:     "t-10",
				TargetCourtID: 2,
				TargetHour:    8,
				WholeBlock:    true,
			})
			v, ok := rules.AsViolation(err)
			require.True(t, ok)
			assert.Equal(t, rules.RuleSlotTaken, v.Rule)
			assert.Equal(t, 9, v.Hour)

			// выход за часы работы
			_, err = f.uc.Execute(ctx, &Request{
				Session:       rules.Session{UserID: "trainer-1", Role: domain.RoleTrainer},
				BookingID:     "t-10",
				TargetCourtID: 1,
				TargetHour:    20,
				WholeBlock:    true,
			})
			assert.True(t, rules.IsRule(err, rules.RuleOpeningHours))

			_, err = f.uc.Execute(ctx, &Request{
				Session:       rules.Session{UserID: "member-1", Role: domain.RoleMember},
				BookingID:     "t-10",
				TargetCourtID: 4,
				TargetHour:    10,
			})
			assert.ErrorIs(t, err, rules.ErrForbidden)

			_, err = f.uc.Execute(ctx, &Request{
				Session:       rules.Session{UserID: "member-1", Role: domain.RoleMember},
				BookingID:     "m-9",
				TargetCourtID: 9,
				TargetHour:    10,
			})
			assert.ErrorIs(t, err, rules.ErrInvalidInput)

			_, err = f.uc.Execute(ctx, &Request{
				Session:       rules.Session{UserID: "admin", Role: domain.RoleAdmin},
				BookingID:     "missing",
				TargetCourtID: 1,
				TargetHour:    10,
			})
			assert.ErrorIs(t, err, ErrBookingNotFound)

			assert.Equal(t, before, slotsOf(t, f.repo))
			assert.Zero(t, f.metrics.moved)
		})
	}
}

// невалидная цель отклоняется до чтения исходного бронирования
func TestExecute_InvalidTargetBeforeLookup(t *testing.T) {
	for name, build := range fixtures(t) {
		t.Run(name, func(t *testing.T) {
			f := build()
			seed(t, f.repo)
			ctx := context.Background()
			before := slotsOf(t, f.repo)

			tests := []struct {
				name string
				req  *Request
			}{
				{"missing booking", &Request{
					Session:       rules.Session{UserID: "admin", Role: domain.RoleAdmin},
					BookingID:     "missing",
					TargetCourtID: 1,
					TargetHour:    30,
				}},
				{"foreign booking", &Request{
					Session:       rules.Session{UserID: "member-1", Role: domain.RoleMember},
					BookingID:     "t-10",
					TargetCourtID: 1,
					TargetHour:    30,
				}},
				{"unknown court", &Request{
					Session:       rules.Session{UserID: "member-1", Role: domain.RoleMember},
					BookingID:     "missing",
					TargetCourtID: 9,
					TargetHour:    10,
				}},
			}

			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					_, err := f.uc.Execute(ctx, tt.req)
					assert.ErrorIs(t, err, rules.ErrInvalidInput)
					assert.NotErrorIs(t, err, ErrBookingNotFound)
					assert.NotErrorIs(t, err, rules.ErrForbidden)
				})
			}

			assert.Equal(t, before, slotsOf(t, f.repo))
			assert.Zero(t, f.metrics.moved)
		})
	}
}

func TestExecute_SingleHourOutOfBlock(t *testing.T) {
	for name, build := range fixtures(t) {
		t.Run(name, func(t *testing.T) {
			f := build()
			seed(t, f.repo)

			resp, err := f.uc.Execute(context.Background(), &Request{
				Session:       rules.Session{UserID: "admin", Role: domain.RoleAdmin},
				BookingID:     "t-12",
				TargetCourtID: 4,
				TargetHour:    18,
			})
			require.NoError(t, err)
			require.Len(t, resp.Moved, 1)

			slots := slotsOf(t, f.repo)
			assert.Equal(t, [2]int{1, 11}, slots["t-11"])
			assert.Equal(t, [2]int{4, 18}, slots["t-12"])
		})
	}
}
