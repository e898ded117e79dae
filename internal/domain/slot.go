package domain

import "github.com/m04kA/SMC-CourtBookingService/pkg/types"

// Slot is one bookable (court, date, hour) unit
type Slot struct {
	CourtID int
	Date    types.DateString
	Hour    int
}

// ValidHour returns true if hour is a bookable start hour
func ValidHour(hour int) bool {
	return hour >= OpeningHour && hour <= ClosingHour
}

// Hours returns every bookable start hour of a day
func Hours() []int {
	hours := make([]int, 0, SlotsPerDay)
	for h := OpeningHour; h <= ClosingHour; h++ {
		hours = append(hours, h)
	}
	return hours
}

type cellKey struct {
	courtID int
	hour    int
}

// DayBookings is the booking set of a single date indexed by court and hour
type DayBookings struct {
	date     types.DateString
	bookings []*Booking
	cells    map[cellKey]*Booking
}

// NewDayBookings indexes the bookings of date; bookings of other dates are ignored
func NewDayBookings(date types.DateString, bookings []*Booking) *DayBookings {
	d := &DayBookings{
		date:     date,
		bookings: make([]*Booking, 0, len(bookings)),
		cells:    make(map[cellKey]*Booking, len(bookings)),
	}
	for _, b := range bookings {
		if b == nil || b.Date != date {
			continue
		}
		key := cellKey{courtID: b.CourtID, hour: b.Hour}
		if _, taken := d.cells[key]; taken {
			continue
		}
		d.cells[key] = b
		d.bookings = append(d.bookings, b)
	}
	return d
}

// Date returns the date of the set
func (d *DayBookings) Date() types.DateString {
	return d.date
}

// All returns the bookings of the day
func (d *DayBookings) All() []*Booking {
	return d.bookings
}

// At returns the booking occupying (courtID, hour), or nil
func (d *DayBookings) At(courtID, hour int) *Booking {
	return d.cells[cellKey{courtID: courtID, hour: hour}]
}

// IsFree returns true if nothing occupies (courtID, hour)
func (d *DayBookings) IsFree(courtID, hour int) bool {
	return d.At(courtID, hour) == nil
}

// ByID finds a booking of the day by id
func (d *DayBookings) ByID(id string) *Booking {
	for _, b := range d.bookings {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// CountForUser counts the user's bookings of the day, skipping the ids in exclude
func (d *DayBookings) CountForUser(userID string, exclude map[string]bool) int {
	n := 0
	for _, b := range d.bookings {
		if b.UserID == userID && !exclude[b.ID] {
			n++
		}
	}
	return n
}
