package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"shareit/internal/models"
)

func (s *HTTPServer) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "X-Sharer-User-Id header is required")
		return
	}

	var request models.ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(request.Description) == "" {
		writeError(w, http.StatusBadRequest, "description is required")
		return
	}

	created, err := s.requests.AddRequest(r.Context(), &request, userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *HTTPServer) handleListOwnRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "X-Sharer-User-Id header is required")
		return
	}

	requests, err := s.requests.GetOwnRequests(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if requests == nil {
		requests = []*models.ItemRequest{}
	}
	writeJSON(w, http.StatusOK, requests)
}

func (s *HTTPServer) handleListOtherRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "X-Sharer-User-Id header is required")
		return
	}
	from, size, ok := s.paging(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid paging parameters")
		return
	}

	requests, err := s.requests.GetOtherRequests(r.Context(), userID, from, size)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if requests == nil {
		requests = []*models.ItemRequest{}
	}
	writeJSON(w, http.StatusOK, requests)
}

func (s *HTTPServer) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "X-Sharer-User-Id header is required")
		return
	}
	requestID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	request, err := s.requests.GetRequestByID(r.Context(), requestID, userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, request)
}
