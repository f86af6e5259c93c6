package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"shareit/internal/domain"
)

// userIDHeader identifies the calling user on every route that needs one.
const userIDHeader = "X-Sharer-User-Id"

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeDomainError maps tagged domain errors onto HTTP statuses; anything
// untagged is an internal error.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsKind(err, domain.KindNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case domain.IsKind(err, domain.KindNotAvailable):
		writeError(w, http.StatusBadRequest, err.Error())
	case domain.IsKind(err, domain.KindConflict):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func callerID(r *http.Request) (int64, bool) {
	raw := r.Header.Get(userIDHeader)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// paging reads from/size query parameters, falling back to the defaults.
func (s *HTTPServer) paging(r *http.Request) (int, int, bool) {
	from := 0
	size := s.cfg.Paging.DefaultSize

	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return 0, 0, false
		}
		from = parsed
	}
	if raw := r.URL.Query().Get("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return 0, 0, false
		}
		size = parsed
	}
	return from, size, true
}
