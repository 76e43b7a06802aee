package v1alpha1

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/selector-project/selector-manager/api/v1alpha1"
	"github.com/selector-project/selector-manager/internal/service"
)

// writeJSON writes a JSON response with the given status code.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// writeError maps service errors to RFC 7807 problem responses.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var serviceErr *service.ServiceError
	if errors.As(err, &serviceErr) {
		switch serviceErr.Type {
		case service.ErrorTypeInvalidArgument:
			h.writeProblem(w, r, http.StatusBadRequest, serviceErr.Message, serviceErr.Detail)
			return
		case service.ErrorTypeNotFound:
			h.writeProblem(w, r, http.StatusNotFound, serviceErr.Message, serviceErr.Detail)
			return
		case service.ErrorTypeAlreadyExists:
			h.writeProblem(w, r, http.StatusConflict, serviceErr.Message, serviceErr.Detail)
			return
		}
		log.Printf("Internal error handling %s %s: %v", r.Method, r.URL.Path, err)
		h.writeProblem(w, r, http.StatusInternalServerError, "Internal server error", "An unexpected error occurred")
		return
	}

	log.Printf("Unexpected error handling %s %s: %v", r.Method, r.URL.Path, err)
	h.writeProblem(w, r, http.StatusInternalServerError, "Internal server error", "An unexpected error occurred")
}

// writeProblem writes an RFC 7807 problem document.
func (h *Handler) writeProblem(w http.ResponseWriter, r *http.Request, status int, title, detail string) {
	instance := r.URL.Path
	problem := v1alpha1.Problem{
		Type:     "about:blank",
		Status:   status,
		Title:    title,
		Instance: &instance,
	}
	if detail != "" {
		problem.Detail = &detail
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem); err != nil {
		log.Printf("Failed to encode problem response: %v", err)
	}
}

// parsePageSize parses the page_size query parameter. Range checks live
// in the service layer.
func (h *Handler) parsePageSize(w http.ResponseWriter, r *http.Request, raw string) (*int32, bool) {
	if raw == "" {
		return nil, true
	}
	parsed, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		h.writeProblem(w, r, http.StatusBadRequest, "Invalid page_size", "page_size must be an integer")
		return nil, false
	}
	pageSize := int32(parsed)
	return &pageSize, true
}
