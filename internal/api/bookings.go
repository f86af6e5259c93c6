package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"shareit/internal/models"
)

type createBookingRequest struct {
	ItemID int64     `json:"itemId"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

func (s *HTTPServer) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "X-Sharer-User-Id header is required")
		return
	}

	var body createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.ItemID <= 0 {
		writeError(w, http.StatusBadRequest, "itemId is required")
		return
	}
	if body.Start.IsZero() || body.End.IsZero() {
		writeError(w, http.StatusBadRequest, "start and end are required")
		return
	}

	booking := &models.Booking{Start: body.Start, End: body.End}
	created, err := s.bookings.CreateBooking(r.Context(), booking, body.ItemID, userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *HTTPServer) handleDecideBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "X-Sharer-User-Id header is required")
		return
	}
	bookingID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	var approved bool
	switch r.URL.Query().Get("approved") {
	case "true":
		approved = true
	case "false":
		approved = false
	default:
		writeError(w, http.StatusBadRequest, "approved must be true or false")
		return
	}

	booking, err := s.bookings.DecideBooking(r.Context(), bookingID, userID, approved)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "X-Sharer-User-Id header is required")
		return
	}
	bookingID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	booking, err := s.bookings.GetBookingByID(r.Context(), bookingID, userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handleListBookerBookings(w http.ResponseWriter, r *http.Request) {
	s.listBookings(w, r, s.bookings.ListByBooker)
}

func (s *HTTPServer) handleListOwnerBookings(w http.ResponseWriter, r *http.Request) {
	s.listBookings(w, r, s.bookings.ListByOwner)
}

func (s *HTTPServer) listBookings(w http.ResponseWriter, r *http.Request, list func(ctx context.Context, state models.State, id int64, from, size int) ([]*models.Booking, error)) {
	userID, ok := callerID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "X-Sharer-User-Id header is required")
		return
	}

	state, ok := models.ParseState(r.URL.Query().Get("state"))
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown state: "+r.URL.Query().Get("state"))
		return
	}
	from, size, ok := s.paging(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid paging parameters")
		return
	}

	bookings, err := list(r.Context(), state, userID, from, size)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if bookings == nil {
		bookings = []*models.Booking{}
	}
	writeJSON(w, http.StatusOK, bookings)
}
