package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rsoares/taskhub-api/internal/api/shared"
	"github.com/rsoares/taskhub-api/internal/domain"
)

// getUserIDFromContext extracts the authenticated user's ID, placed in the
// context by the auth middleware.
func getUserIDFromContext(r *http.Request) (int64, bool) {
	return shared.UserID(r.Context())
}

// getPathID extracts a numeric ID from the URL path parameters.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.ErrInvalidID
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

// parseDueDate parses an RFC 3339 due date string from a request.
func parseDueDate(value string) (*time.Time, error) {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, domain.ErrInvalidDueDate
	}
	utc := parsed.UTC()
	return &utc, nil
}
