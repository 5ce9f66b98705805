package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/stocktide/curator/internal/domain"
)

// envelope is the uniform response shape. Success responses carry Data
// and optionally Message; failures carry Error.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// page is the Data payload for list endpoints.
type page struct {
	Data       any `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

func newPage(data any, total, pageNum, pageSize int) page {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return page{
		Data:       data,
		Total:      total,
		Page:       pageNum,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondSuccess(w http.ResponseWriter, status int, data any, message string) {
	writeJSON(w, status, envelope{Success: true, Data: data, Message: message})
}

func respondError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Error: message})
}

// clientMessage strips the sentinel prefix so the client sees only the
// caller-facing part of a domain error.
func clientMessage(err error, sentinel error) string {
	return strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
}

// handleError maps domain sentinels onto status codes. Anything
// unrecognized is logged server-side and reported as a generic 500.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		respondError(w, http.StatusBadRequest, clientMessage(err, domain.ErrValidation))
	case errors.Is(err, domain.ErrConflict):
		respondError(w, http.StatusBadRequest, clientMessage(err, domain.ErrConflict))
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, clientMessage(err, domain.ErrNotFound))
	case errors.Is(err, domain.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, clientMessage(err, domain.ErrUnauthorized))
	default:
		s.logger.Error("request failed", err, map[string]interface{}{
			"method": r.Method,
			"path":   r.URL.Path,
		})
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// decodeBody decodes a JSON request body, turning any decode failure
// into a validation error.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.Validationf("invalid request body")
	}
	return nil
}
