package domain

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// BookingType is the kind of court usage
type BookingType string

const (
	TypeFree        BookingType = "FREE"
	TypeVM          BookingType = "VM" // club championship
	TypeTraining    BookingType = "TRAINING"
	TypeMatch       BookingType = "MATCH"
	TypeMaintenance BookingType = "MAINTENANCE"
)

// BookingTypes lists every recognized booking type
var BookingTypes = []BookingType{TypeFree, TypeVM, TypeTraining, TypeMatch, TypeMaintenance}

// IsValid returns true for a recognized booking type
func (t BookingType) IsValid() bool {
	for _, v := range BookingTypes {
		if t == v {
			return true
		}
	}
	return false
}

// VMType is the championship discipline
type VMType string

const (
	VMSingles VMType = "SINGLES"
	VMDoubles VMType = "DOUBLES"
	VMMixed   VMType = "MIXED"
)

// IsValid returns true for a recognized discipline
func (v VMType) IsValid() bool {
	return v == VMSingles || v == VMDoubles || v == VMMixed
}

// IsTeam returns true for disciplines played in pairs
func (v VMType) IsTeam() bool {
	return v == VMDoubles || v == VMMixed
}

// Attributes holds the type-dependent optional booking fields
type Attributes struct {
	VMType      VMType
	Opponent    string
	Opponent2   string
	Partner     string
	Description string
}

// Normalize trims the free-text fields and drops the ones that do not apply to bookingType.
// Blocks are matched on these fields, so every write path stores the normalized form.
func (a Attributes) Normalize(bookingType BookingType) Attributes {
	out := Attributes{}

	switch bookingType {
	case TypeVM:
		out.VMType = a.VMType
		out.Opponent = strings.TrimSpace(a.Opponent)
		if a.VMType.IsTeam() {
			out.Partner = strings.TrimSpace(a.Partner)
			out.Opponent2 = strings.TrimSpace(a.Opponent2)
		}
	case TypeMatch:
		out.Opponent = strings.TrimSpace(a.Opponent)
	case TypeTraining:
		out.Description = strings.TrimSpace(a.Description)
	}

	return out
}

// Booking is one court occupied for one hour on one date
type Booking struct {
	ID       string
	CourtID  int
	UserID   string
	UserName string // denormalized for display
	Date     types.DateString
	Hour     int
	Type     BookingType

	VMType      VMType
	Opponent    string
	Opponent2   string
	Partner     string
	Description string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Attributes returns the type-dependent fields of the booking
func (b *Booking) Attributes() Attributes {
	return Attributes{
		VMType:      b.VMType,
		Opponent:    b.Opponent,
		Opponent2:   b.Opponent2,
		Partner:     b.Partner,
		Description: b.Description,
	}
}

// SetAttributes stores the normalized attributes for the booking's type
func (b *Booking) SetAttributes(attrs Attributes) {
	n := attrs.Normalize(b.Type)
	b.VMType = n.VMType
	b.Opponent = n.Opponent
	b.Opponent2 = n.Opponent2
	b.Partner = n.Partner
	b.Description = n.Description
}

// IsOwnedBy returns true if userID created the booking
func (b *Booking) IsOwnedBy(userID string) bool {
	return b.UserID == userID
}

// Slot returns the grid address of the booking
func (b *Booking) Slot() Slot {
	return Slot{CourtID: b.CourtID, Date: b.Date, Hour: b.Hour}
}

// Clone returns a copy safe to mutate
func (b *Booking) Clone() *Booking {
	c := *b
	return &c
}
