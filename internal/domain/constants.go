package domain

// Opening hours: a slot is one full hour starting at the given hour
const (
	OpeningHour = 8
	ClosingHour = 21 // last bookable start hour, the club closes at 22:00
	SlotsPerDay = ClosingHour - OpeningHour + 1
)

// Daily quota for ordinary bookings Monday to Friday
const WeekdayQuotaHours = 1

// Registration constraints
const (
	MinPasswordLength = 6
	MaxNameLength     = 100
	MaxTextLength     = 200
)

// DateFormat is the wire format of booking dates
const DateFormat = "2006-01-02"
