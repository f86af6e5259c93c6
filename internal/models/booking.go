package models

import "time"

// Status is the persisted lifecycle value of a booking.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// State is a query-time filter over bookings. It classifies by time window
// (CURRENT/PAST/FUTURE) or by persisted status (WAITING/REJECTED) and is
// never stored.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState maps a raw query value onto the closed State set.
// Empty input defaults to ALL.
func ParseState(raw string) (State, bool) {
	switch State(raw) {
	case "":
		return StateAll, true
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return State(raw), true
	default:
		return "", false
	}
}

type Booking struct {
	ID       int64     `json:"id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Status   Status    `json:"status"`
	ItemID   int64     `json:"itemId"`
	BookerID int64     `json:"bookerId"`
	Item     *Item     `json:"item,omitempty"`
	Booker   *User     `json:"booker,omitempty"`
}

// BookingRef is the trimmed view embedded into items (last/next booking).
type BookingRef struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}
