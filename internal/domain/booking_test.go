package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttributes_Normalize(t *testing.T) {
	raw := Attributes{
		VMType:      VMSingles,
		Opponent:    "  Anna ",
		Opponent2:   "Berta",
		Partner:     "Carl",
		Description: "drills",
	}

	assert.Equal(t, Attributes{VMType: VMSingles, Opponent: "Anna"}, raw.Normalize(TypeVM))

	raw.VMType = VMMixed
	assert.Equal(t, Attributes{VMType: VMMixed, Opponent: "Anna", Opponent2: "Berta", Partner: "Carl"}, raw.Normalize(TypeVM))

	assert.Equal(t, Attributes{Opponent: "Anna"}, raw.Normalize(TypeMatch))
	assert.Equal(t, Attributes{Description: "drills"}, raw.Normalize(TypeTraining))
	assert.Equal(t, Attributes{}, raw.Normalize(TypeFree))
	assert.Equal(t, Attributes{}, raw.Normalize(TypeMaintenance))
}

func TestEnums(t *testing.T) {
	assert.True(t, TypeMaintenance.IsValid())
	assert.False(t, BookingType("PARTY").IsValid())
	assert.True(t, VMDoubles.IsValid())
	assert.False(t, VMType("TRIPLES").IsValid())
	assert.True(t, RoleTrainer.IsValid())
	assert.False(t, Role("OWNER").IsValid())
	assert.True(t, StatusRejected.IsValid())
	assert.False(t, AccountStatus("BANNED").IsValid())
}

func TestHours(t *testing.T) {
	hours := Hours()
	assert.Len(t, hours, 14)
	assert.Equal(t, 8, hours[0])
	assert.Equal(t, 21, hours[len(hours)-1])
	assert.False(t, ValidHour(7))
	assert.False(t, ValidHour(22))
}

func TestCourts(t *testing.T) {
	courts := NewCourts([]Court{{ID: 3, Name: "C"}, {ID: 1, Name: "A"}})
	assert.Equal(t, []Court{{ID: 1, Name: "A"}, {ID: 3, Name: "C"}}, courts.All())
	assert.True(t, courts.Exists(3))
	assert.False(t, courts.Exists(2))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "demo@stv.de", NormalizeEmail("  Demo@STV.de "))
}
