package models

type Item struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Available   bool        `json:"available"`
	OwnerID     int64       `json:"ownerId"`
	RequestID   int64       `json:"requestId,omitempty"`
	Comments    []Comment   `json:"comments,omitempty"`
	LastBooking *BookingRef `json:"lastBooking,omitempty"`
	NextBooking *BookingRef `json:"nextBooking,omitempty"`
}

// ItemUpdate carries a partial item change; nil fields are left untouched.
type ItemUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}
