package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"conventionplanner/internal/delivery/http/helpers"
	"conventionplanner/internal/delivery/http/middleware"
	"conventionplanner/internal/domain"
)

// currentUser returns the authenticated user or writes a 401.
func currentUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return uuid.Nil, false
	}
	return userID, true
}

// TimeRangeRequest is the wire form of a half-open [start, end) range in RFC 3339.
type TimeRangeRequest struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

func (t TimeRangeRequest) set() bool {
	return t.Start != nil || t.End != nil
}

func (t TimeRangeRequest) validate(required bool) []string {
	switch {
	case t.Start == nil && t.End == nil:
		if required {
			return []string{"start and end are required"}
		}
		return nil
	case t.Start == nil || t.End == nil:
		return []string{"start and end must be given together"}
	case !t.Start.Before(*t.End):
		return []string{"start must be before end"}
	}
	return nil
}

func (t TimeRangeRequest) toDomain() domain.TimeRange {
	return domain.TimeRange{Start: *t.Start, End: *t.End}
}

func (t TimeRangeRequest) toDomainPtr() *domain.TimeRange {
	if !t.set() {
		return nil
	}
	tr := t.toDomain()
	return &tr
}

func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// IDResponse is the data payload for endpoints that create something and return its id.
type IDResponse struct {
	ID uuid.UUID `json:"id"`
}

// UserIDsResponse is the data payload for endpoints that list user ids.
type UserIDsResponse struct {
	UserIDs []uuid.UUID `json:"user_ids"`
}
