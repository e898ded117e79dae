package domain

// A block is a maximal run of bookings on one court and date at consecutive hours
// sharing owner, type and championship attributes. Blocks are never stored; they are
// recomputed from the day's bookings on every query.

type blockKey struct {
	userID    string
	bookingTy BookingType
	vmType    VMType
	opponent  string
	opponent2 string
	partner   string
}

func keyOf(b *Booking) blockKey {
	return blockKey{
		userID:    b.UserID,
		bookingTy: b.Type,
		vmType:    b.VMType,
		opponent:  b.Opponent,
		opponent2: b.Opponent2,
		partner:   b.Partner,
	}
}

// SameBlock returns true if a and b would belong to one block when adjacent
func SameBlock(a, b *Booking) bool {
	if a == nil || b == nil {
		return false
	}
	return a.CourtID == b.CourtID && a.Date == b.Date && keyOf(a) == keyOf(b)
}

// BlockInfo describes how a cell relates to its block
type BlockInfo struct {
	IsPartOfBlock bool // the booking belongs to a block longer than one hour
	IsBlockStart  bool
	BlockLength   int // set on the block start only
}

// FindBlock walks forward from startHour while the next hour holds a booking with the
// same block key. Empty if startHour is free.
func (d *DayBookings) FindBlock(courtID, startHour int) []*Booking {
	start := d.At(courtID, startHour)
	if start == nil {
		return nil
	}

	block := []*Booking{start}
	for h := startHour + 1; h <= ClosingHour; h++ {
		next := d.At(courtID, h)
		if next == nil || keyOf(next) != keyOf(start) {
			break
		}
		block = append(block, next)
	}
	return block
}

// BlockInfo reports whether the booking at hour starts a block and how long the block is.
// Cells that continue a block report IsBlockStart=false and BlockLength=0; the caller
// renders the whole block at its start cell.
func (d *DayBookings) BlockInfo(courtID, hour int) BlockInfo {
	current := d.At(courtID, hour)
	if current == nil {
		return BlockInfo{}
	}

	if prev := d.At(courtID, hour-1); prev != nil && keyOf(prev) == keyOf(current) {
		return BlockInfo{IsPartOfBlock: true}
	}

	length := len(d.FindBlock(courtID, hour))
	return BlockInfo{
		IsPartOfBlock: length > 1,
		IsBlockStart:  true,
		BlockLength:   length,
	}
}

// BlockStart returns the first hour of the block containing hour, or 0 if hour is free
func (d *DayBookings) BlockStart(courtID, hour int) int {
	current := d.At(courtID, hour)
	if current == nil {
		return 0
	}

	start := hour
	for h := hour - 1; h >= OpeningHour; h-- {
		prev := d.At(courtID, h)
		if prev == nil || keyOf(prev) != keyOf(current) {
			break
		}
		start = h
	}
	return start
}

// BlockContaining resolves the full block around hour, whichever hour of it is given
func (d *DayBookings) BlockContaining(courtID, hour int) []*Booking {
	start := d.BlockStart(courtID, hour)
	if start == 0 {
		return nil
	}
	return d.FindBlock(courtID, start)
}
