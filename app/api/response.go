package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/mytheresa/warehouse-service/models"
)

// WriteJSON encodes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

// WriteError sends {"error": msg} with the given status.
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"error": msg})
}

// StatusFor maps a repository error onto an HTTP status code.
func StatusFor(err error) int {
	switch {
	case models.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, models.ErrReferenceNotFound),
		errors.Is(err, models.ErrCategoryCycle),
		errors.Is(err, models.ErrInsufficientStock):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// WriteRepoError reports err with the status from StatusFor. Unexpected errors
// are logged and replaced by fallback so internals do not leak.
func WriteRepoError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("request %s: %s %s: %v", RequestID(r.Context()), r.Method, r.URL.Path, err)
		WriteError(w, status, fallback)
		return
	}
	WriteError(w, status, err.Error())
}

// DecodeJSON reads the request body into v and rejects unknown fields.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// PathID parses the named path value as a positive identifier.
func PathID(r *http.Request, name string) (uint, bool) {
	n, err := strconv.ParseUint(r.PathValue(name), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// QueryID parses an optional positive identifier from the query string.
func QueryID(r *http.Request, name string) (*uint, bool) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, true
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 {
		return nil, false
	}
	id := uint(n)
	return &id, true
}

// ParsePage reads offset and limit query params. Invalid values are ignored
// and out of range limits are clamped by the repositories.
func ParsePage(r *http.Request) models.Page {
	page := models.Page{Limit: models.DefaultLimit}

	if oStr := r.URL.Query().Get("offset"); oStr != "" {
		if o, err := strconv.Atoi(oStr); err == nil && o >= 0 {
			page.Offset = o
		}
	}
	if lStr := r.URL.Query().Get("limit"); lStr != "" {
		if l, err := strconv.Atoi(lStr); err == nil {
			if l < 1 {
				page.Limit = 1
			} else if l > models.MaxLimit {
				page.Limit = models.MaxLimit
			} else {
				page.Limit = l
			}
		}
	}
	return page
}
