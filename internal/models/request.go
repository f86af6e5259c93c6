package models

import "time"

// ItemRequest is a wish for an item that does not exist in the catalog yet.
// Items created in answer to it carry its id.
type ItemRequest struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequestorID int64     `json:"requestorId"`
	Created     time.Time `json:"created"`
	Items       []Item    `json:"items,omitempty"`
}
