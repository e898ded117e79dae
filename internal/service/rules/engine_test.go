package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

const (
	tuesday  = types.DateString("2026-10-20")
	saturday = types.DateString("2026-10-24")
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type violationCounter map[string]int

func (c violationCounter) RuleViolation(rule string) { c[rule]++ }

func newTestEngine(counter violationCounter) *Engine {
	if counter == nil {
		counter = violationCounter{}
	}
	e := NewEngine(domain.NewCourts(domain.DefaultCourts()), time.UTC, counter)
	return e.WithTimeProvider(fixedTime{t: time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)})
}

var (
	member  = Session{UserID: "member-1", UserName: "Max Muster", Role: domain.RoleMember}
	trainer = Session{UserID: "trainer-1", UserName: "Tina Trainer", Role: domain.RoleTrainer}
	admin   = Session{UserID: "admin-1", UserName: "Admin", Role: domain.RoleAdmin}
	guest   = Session{UserID: "guest-1", UserName: "Gast", Role: domain.RoleGuest}
)

func booking(id, user string, court int, date types.DateString, hour int, bt domain.BookingType) *domain.Booking {
	return &domain.Booking{ID: id, UserID: user, CourtID: court, Date: date, Hour: hour, Type: bt}
}

func freeCheck(date types.DateString, hour, duration int) CreateCheck {
	return CreateCheck{CourtID: 1, Date: date, StartHour: hour, Duration: duration, Type: domain.TypeFree}
}

func TestCanCreate_CollisionRegardlessOfRole(t *testing.T) {
	day := domain.NewDayBookings(tuesday, []*domain.Booking{
		booking("b1", "someone", 1, tuesday, 10, domain.TypeFree),
	})

	for _, s := range []Session{guest, member, trainer, admin} {
		t.Run(string(s.Role), func(t *testing.T) {
			err := newTestEngine(nil).CanCreate(s, day, freeCheck(tuesday, 10, 1))
			require.Error(t, err)
			assert.True(t, IsRule(err, RuleSlotTaken))
			v, _ := AsViolation(err)
			assert.Equal(t, 10, v.Hour)
		})
	}
}

func TestCanCreate_CollisionReportsFirstTakenHour(t *testing.T) {
	day := domain.NewDayBookings(saturday, []*domain.Booking{
		booking("b1", "someone", 1, saturday, 12, domain.TypeFree),
		booking("b2", "someone", 1, saturday, 13, domain.TypeFree),
	})

	err := newTestEngine(nil).CanCreate(admin, day, freeCheck(saturday, 10, 4))
	v, ok := AsViolation(err)
	require.True(t, ok)
	assert.Equal(t, RuleSlotTaken, v.Rule)
	assert.Equal(t, 12, v.Hour)
}

func TestCanCreate_WeekdayQuota(t *testing.T) {
	counter := violationCounter{}
	engine := newTestEngine(counter)

	day := domain.NewDayBookings(tuesday, []*domain.Booking{
		booking("b1", member.UserID, 2, tuesday, 9, domain.TypeFree),
	})

	err := engine.CanCreate(member, day, freeCheck(tuesday, 10, 1))
	require.Error(t, err)
	assert.True(t, IsRule(err, RuleDailyQuota))
	assert.ErrorIs(t, err, ErrRuleViolation)
	assert.Equal(t, 1, counter[string(RuleDailyQuota)])

	weekend := domain.NewDayBookings(saturday, []*domain.Booking{
		booking("b2", member.UserID, 2, saturday, 9, domain.TypeFree),
	})
	assert.NoError(t, engine.CanCreate(member, weekend, freeCheck(saturday, 10, 1)))
}

func TestCanCreate_QuotaCountsRequestedDuration(t *testing.T) {
	empty := domain.NewDayBookings(tuesday, nil)

	err := newTestEngine(nil).CanCreate(member, empty, freeCheck(tuesday, 10, 2))
	assert.True(t, IsRule(err, RuleDailyQuota))

	assert.NoError(t, newTestEngine(nil).CanCreate(member, empty, freeCheck(tuesday, 10, 1)))
}

func TestCanCreate_QuotaIgnoresExcludedBooking(t *testing.T) {
	day := domain.NewDayBookings(tuesday, []*domain.Booking{
		booking("own", member.UserID, 1, tuesday, 10, domain.TypeFree),
	})

	check := freeCheck(tuesday, 11, 1)
	check.Exclude = []string{"own"}
	assert.NoError(t, newTestEngine(nil).CanCreate(member, day, check))
}

func TestCanCreate_ExcludedBookingDoesNotCollide(t *testing.T) {
	day := domain.NewDayBookings(tuesday, []*domain.Booking{
		booking("own", member.UserID, 1, tuesday, 10, domain.TypeFree),
	})

	check := freeCheck(tuesday, 10, 1)
	check.Exclude = []string{"own"}
	assert.NoError(t, newTestEngine(nil).CanCreate(member, day, check))
}

func TestCanCreate_TrainerExemptForTraining(t *testing.T) {
	day := domain.NewDayBookings(tuesday, []*domain.Booking{
		booking("b1", trainer.UserID, 2, tuesday, 9, domain.TypeTraining),
	})
	engine := newTestEngine(nil)

	check := CreateCheck{CourtID: 1, Date: tuesday, StartHour: 10, Duration: 3, Type: domain.TypeTraining}
	assert.NoError(t, engine.CanCreate(trainer, day, check))

	// для FREE квота действует и для тренера
	err := engine.CanCreate(trainer, day, freeCheck(tuesday, 10, 1))
	assert.True(t, IsRule(err, RuleDailyQuota))
}

func TestCanCreate_AdminExempt(t *testing.T) {
	day := domain.NewDayBookings(tuesday, nil)
	check := CreateCheck{CourtID: 3, Date: tuesday, StartHour: 8, Duration: 14, Type: domain.TypeMaintenance}
	assert.NoError(t, newTestEngine(nil).CanCreate(admin, day, check))
}

func TestCanCreate_TypePermissions(t *testing.T) {
	day := domain.NewDayBookings(saturday, nil)
	engine := newTestEngine(nil)

	tests := []struct {
		name    string
		session Session
		bt      domain.BookingType
		allowed bool
	}{
		{"guest free", guest, domain.TypeFree, false},
		{"member free", member, domain.TypeFree, true},
		{"member training", member, domain.TypeTraining, false},
		{"member maintenance", member, domain.TypeMaintenance, false},
		{"trainer match", trainer, domain.TypeMatch, true},
		{"trainer maintenance", trainer, domain.TypeMaintenance, false},
		{"admin maintenance", admin, domain.TypeMaintenance, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := CreateCheck{CourtID: 1, Date: saturday, StartHour: 10, Duration: 1, Type: tt.bt}
			err := engine.CanCreate(tt.session, day, check)
			if tt.allowed {
				assert.NoError(t, err)
				return
			}
			assert.True(t, IsRule(err, RuleTypeNotAllowed))
		})
	}
}

func TestCanCreate_VMAttributes(t *testing.T) {
	day := domain.NewDayBookings(saturday, nil)
	engine := newTestEngine(nil)

	vm := func(attrs domain.Attributes) CreateCheck {
		return CreateCheck{CourtID: 1, Date: saturday, StartHour: 10, Duration: 1, Type: domain.TypeVM, Attrs: attrs}
	}

	err := engine.CanCreate(member, day, vm(domain.Attributes{VMType: domain.VMSingles}))
	v, ok := AsViolation(err)
	require.True(t, ok)
	assert.Equal(t, RuleMissingAttribute, v.Rule)
	assert.Equal(t, "opponent", v.Attribute)

	assert.NoError(t, engine.CanCreate(member, day, vm(domain.Attributes{VMType: domain.VMSingles, Opponent: "Bob"})))

	err = engine.CanCreate(member, day, vm(domain.Attributes{VMType: domain.VMDoubles, Opponent: "Bob", Partner: "Ann"}))
	v, ok = AsViolation(err)
	require.True(t, ok)
	assert.Equal(t, "opponent2", v.Attribute)

	assert.NoError(t, engine.CanCreate(member, day, vm(domain.Attributes{
		VMType: domain.VMMixed, Opponent: "Bob", Opponent2: "Eve", Partner: "Ann",
	})))

	err = engine.CanCreate(member, day, vm(domain.Attributes{}))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCanCreate_OpeningHours(t *testing.T) {
	day := domain.NewDayBookings(saturday, nil)
	engine := newTestEngine(nil)

	err := engine.CanCreate(admin, day, freeCheck(saturday, 20, 3))
	v, ok := AsViolation(err)
	require.True(t, ok)
	assert.Equal(t, RuleOpeningHours, v.Rule)
	assert.Equal(t, 22, v.Hour)

	assert.NoError(t, engine.CanCreate(admin, day, freeCheck(saturday, 20, 2)))
}

func TestCanCreate_LongDurationExceedsOpeningHours(t *testing.T) {
	day := domain.NewDayBookings(saturday, nil)

	tests := []struct {
		name     string
		start    int
		duration int
		lastHour int
	}{
		{"whole day plus one", 8, 15, 22},
		{"late start", 20, 20, 39},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := violationCounter{}
			engine := newTestEngine(counter)

			err := engine.CanCreate(admin, day, freeCheck(saturday, tt.start, tt.duration))
			assert.NotErrorIs(t, err, ErrInvalidInput)
			v, ok := AsViolation(err)
			require.True(t, ok)
			assert.Equal(t, RuleOpeningHours, v.Rule)
			assert.Equal(t, tt.lastHour, v.Hour)
			assert.Equal(t, 1, counter[string(RuleOpeningHours)])
		})
	}
}

func TestEngine_ValidateTarget(t *testing.T) {
	engine := newTestEngine(nil)

	assert.NoError(t, engine.ValidateTarget(1, 8))
	assert.NoError(t, engine.ValidateTarget(3, 21))
	assert.ErrorIs(t, engine.ValidateTarget(9, 10), ErrInvalidInput)
	assert.ErrorIs(t, engine.ValidateTarget(1, 30), ErrInvalidInput)
	assert.ErrorIs(t, engine.ValidateTarget(1, 7), ErrInvalidInput)
}

func TestCanCreate_InvalidInput(t *testing.T) {
	day := domain.NewDayBookings(saturday, nil)
	engine := newTestEngine(nil)

	tests := []struct {
		name  string
		check CreateCheck
	}{
		{"hour before opening", freeCheck(saturday, 7, 1)},
		{"hour after closing", freeCheck(saturday, 22, 1)},
		{"zero duration", freeCheck(saturday, 10, 0)},
		{"negative duration", freeCheck(saturday, 10, -2)},
		{"unknown court", CreateCheck{CourtID: 9, Date: saturday, StartHour: 10, Duration: 1, Type: domain.TypeFree}},
		{"unknown type", CreateCheck{CourtID: 1, Date: saturday, StartHour: 10, Duration: 1, Type: "PARTY"}},
		{"bad date", freeCheck("24.10.2026", 10, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, engine.CanCreate(admin, day, tt.check), ErrInvalidInput)
		})
	}
}

func TestCanCreate_PastDate(t *testing.T) {
	yesterday := types.DateString("2026-10-15")
	day := domain.NewDayBookings(yesterday, nil)

	err := newTestEngine(nil).CanCreate(admin, day, freeCheck(yesterday, 10, 1))
	assert.True(t, IsRule(err, RulePastDate))

	today := types.DateString("2026-10-16")
	assert.NoError(t, newTestEngine(nil).CanCreate(admin, domain.NewDayBookings(today, nil), freeCheck(today, 10, 1)))
}

func TestEngine_TodayUsesClubLocation(t *testing.T) {
	berlin := time.FixedZone("CEST", 2*60*60)

	e := NewEngine(domain.NewCourts(domain.DefaultCourts()), berlin, nil).
		WithTimeProvider(fixedTime{t: time.Date(2026, 10, 16, 23, 30, 0, 0, time.UTC)})
	assert.Equal(t, types.DateString("2026-10-17"), e.Today())
}

func TestSession_CheckOwnership(t *testing.T) {
	b := booking("b1", member.UserID, 1, tuesday, 10, domain.TypeFree)

	assert.NoError(t, member.CheckOwnership(b))
	assert.NoError(t, admin.CheckOwnership(b))
	assert.ErrorIs(t, trainer.CheckOwnership(b), ErrForbidden)
}
