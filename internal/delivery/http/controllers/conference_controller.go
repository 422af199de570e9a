package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"conventionplanner/internal/delivery/http/helpers"
	"conventionplanner/internal/domain"
)

// CreateConferenceRequest is the request body for POST /conferences.
type CreateConferenceRequest struct {
	Name string `json:"name"`
	TimeRangeRequest
}

// Validate implements Validator.
func (c CreateConferenceRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	return append(errs, c.TimeRangeRequest.validate(true)...)
}

// UpdateConferenceRequest is the request body for PATCH /conferences/{conferenceID}.
// Omitted fields are unchanged.
type UpdateConferenceRequest struct {
	Name *string `json:"name"`
	TimeRangeRequest
}

// Validate implements Validator.
func (u UpdateConferenceRequest) Validate() []string {
	var errs []string
	if u.Name == nil && !u.TimeRangeRequest.set() {
		errs = append(errs, "nothing to update")
	}
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		errs = append(errs, "name must not be blank")
	}
	return append(errs, u.TimeRangeRequest.validate(false)...)
}

func (u UpdateConferenceRequest) toPatch() domain.ConferencePatch {
	return domain.ConferencePatch{
		Name:      trimmedPtr(u.Name),
		TimeRange: u.TimeRangeRequest.toDomainPtr(),
	}
}

// AddOrganizerRequest is the request body for POST /conferences/{conferenceID}/organizers.
// Exactly one of user_id and email is set.
type AddOrganizerRequest struct {
	UserID *uuid.UUID `json:"user_id"`
	Email  string     `json:"email"`
}

// Validate implements Validator.
func (a AddOrganizerRequest) Validate() []string {
	hasEmail := strings.TrimSpace(a.Email) != ""
	if (a.UserID == nil) == !hasEmail {
		return []string{"exactly one of user_id or email is required"}
	}
	return nil
}

// ListConferencesResponse is the data payload for GET /conferences (200).
type ListConferencesResponse struct {
	Items      []*domain.Conference   `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

type ConferenceController struct {
	Logger  *slog.Logger
	Service domain.ConferenceService
}

func NewConferenceController(logger *slog.Logger, svc domain.ConferenceService) *ConferenceController {
	return &ConferenceController{
		Logger:  logger,
		Service: svc,
	}
}

// ListConferences godoc
// @Summary List conferences
// @Description Every conference, ordered by start time, paginated.
// @Tags conferences
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (1-based)"
// @Param page_size query int false "Page size (max 100)"
// @Success 200 {object} helpers.APIResponse "data contains items and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /conferences [get]
func (c *ConferenceController) ListConferences(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(w, r); !ok {
		return
	}
	params := helpers.ParsePagination(r)
	list, total, err := c.Service.ListConferences(r.Context(), params)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	meta := helpers.NewPaginationMeta(params, total)
	helpers.WriteJSONSuccess(w, http.StatusOK, ListConferencesResponse{Items: list, Pagination: meta})
}

// ListJoinedConferences godoc
// @Summary List my conferences
// @Description Conferences in which the caller holds any role, with that role.
// @Tags conferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data is a list of {conference, role}"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /conferences/joined [get]
func (c *ConferenceController) ListJoinedConferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	joined, err := c.Service.ListJoinedConferences(r.Context(), userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, joined)
}

// CreateConference godoc
// @Summary Create a conference
// @Description The caller becomes its sole organizer.
// @Tags conferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateConferenceRequest true "Name and time range"
// @Success 201 {object} helpers.APIResponse "data contains the created conference"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /conferences [post]
func (c *ConferenceController) CreateConference(w http.ResponseWriter, r *http.Request) {
	var req CreateConferenceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, err := c.Service.CreateConference(r.Context(), strings.TrimSpace(req.Name), req.toDomain(), userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	conf, err := c.Service.GetConference(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, conf)
}

// GetConference godoc
// @Summary Get a conference
// @Description Name and time range. Open to every signed-in user so they can decide whether to join.
// @Tags conferences
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the conference"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /conferences/{conferenceID} [get]
func (c *ConferenceController) GetConference(w http.ResponseWriter, r *http.Request) {
	conferenceID, ok := helpers.PathUUID(w, r, "conferenceID")
	if !ok {
		return
	}
	if _, ok := currentUser(w, r); !ok {
		return
	}
	conf, err := c.Service.GetConference(r.Context(), conferenceID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, conf)
}

// UpdateConference godoc
// @Summary Update a conference
// @Description Rename and/or reschedule. Organizers only.
// @Tags conferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID (UUID)"
// @Param body body UpdateConferenceRequest true "Fields to update"
// @Success 200 {object} helpers.APIResponse "data contains the updated conference"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /conferences/{conferenceID} [patch]
func (c *ConferenceController) UpdateConference(w http.ResponseWriter, r *http.Request) {
	conferenceID, ok := helpers.PathUUID(w, r, "conferenceID")
	if !ok {
		return
	}
	var req UpdateConferenceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	if err := c.Service.UpdateConference(r.Context(), conferenceID, userID, req.toPatch()); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	conf, err := c.Service.GetConference(r.Context(), conferenceID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, conf)
}

// DeleteConference godoc
// @Summary Delete a conference
// @Tags conferences
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID (UUID)"
// @Success 204 "No Content"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /conferences/{conferenceID} [delete]
func (c *ConferenceController) DeleteConference(w http.ResponseWriter, r *http.Request) {
	conferenceID, ok := helpers.PathUUID(w, r, "conferenceID")
	if !ok {
		return
	}
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	if err := c.Service.DeleteConference(r.Context(), conferenceID, userID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Join godoc
// @Summary Join a conference as an attendee
// @Tags conferences
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID (UUID)"
// @Success 204 "No Content"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /conferences/{conferenceID}/join [post]
func (c *ConferenceController) Join(w http.ResponseWriter, r *http.Request) {
	conferenceID, ok := helpers.PathUUID(w, r, "conferenceID")
	if !ok {
		return
	}
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	if err := c.Service.AddAttendee(r.Context(), conferenceID, userID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Leave godoc
// @Summary Leave a conference
// @Description Drops every role and event registration the caller holds in the conference.
// @Tags conferences
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID (UUID)"
// @Success 204 "No Content"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (last organizer)"
// @Router /conferences/{conferenceID}/leave [post]
func (c *ConferenceController) Leave(w http.ResponseWriter, r *http.Request) {
	conferenceID, ok := helpers.PathUUID(w, r, "conferenceID")
	if !ok {
		return
	}
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	if err := c.Service.LeaveConference(r.Context(), conferenceID, userID, userID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveAttendee godoc
// @Summary Remove a user from a conference
// @Description Organizers may remove anyone; other users only themselves.
// @Tags conferences
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID (UUID)"
// @Param userID path string true "User ID (UUID)"
// @Success 204 "No Content"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /conferences/{conferenceID}/attendees/{userID} [delete]
func (c *ConferenceController) RemoveAttendee(w http.ResponseWriter, r *http.Request) {
	conferenceID, ok := helpers.PathUUID(w, r, "conferenceID")
	if !ok {
		return
	}
	targetID, ok := helpers.PathUUID(w, r, "userID")
	if !ok {
		return
	}
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	if err := c.Service.LeaveConference(r.Context(), conferenceID, userID, targetID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListOrganizers godoc
// @Summary List organizers
// @Tags conferences
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains user_ids"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /conferences/{conferenceID}/organizers [get]
func (c *ConferenceController) ListOrganizers(w http.ResponseWriter, r *http.Request) {
	c.listMembers(w, r, c.Service.GetOrganizers)
}

// ListSpeakers godoc
// @Summary List speakers
// @Tags conferences
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains user_ids"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /conferences/{conferenceID}/speakers [get]
func (c *ConferenceController) ListSpeakers(w http.ResponseWriter, r *http.Request) {
	c.listMembers(w, r, c.Service.GetSpeakers)
}

// ListAttendees godoc
// @Summary List attendees
// @Tags conferences
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains user_ids"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /conferences/{conferenceID}/attendees [get]
func (c *ConferenceController) ListAttendees(w http.ResponseWriter, r *http.Request) {
	c.listMembers(w, r, c.Service.GetAttendees)
}

type memberLister func(ctx context.Context, conferenceID, actorID uuid.UUID) ([]uuid.UUID, error)

func (c *ConferenceController) listMembers(w http.ResponseWriter, r *http.Request, list memberLister) {
	conferenceID, ok := helpers.PathUUID(w, r, "conferenceID")
	if !ok {
		return
	}
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	ids, err := list(r.Context(), conferenceID, userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, UserIDsResponse{UserIDs: ids})
}

// AddOrganizer godoc
// @Summary Add an organizer
// @Description Promote a user, identified by id or by account email. Organizers only.
// @Tags conferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID (UUID)"
// @Param body body AddOrganizerRequest true "user_id or email"
// @Success 201 {object} helpers.APIResponse "data contains the organizer id"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /conferences/{conferenceID}/organizers [post]
func (c *ConferenceController) AddOrganizer(w http.ResponseWriter, r *http.Request) {
	conferenceID, ok := helpers.PathUUID(w, r, "conferenceID")
	if !ok {
		return
	}
	var req AddOrganizerRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	if req.UserID != nil {
		if err := c.Service.AddOrganizer(r.Context(), conferenceID, userID, *req.UserID); err != nil {
			helpers.WriteServiceError(w, r, c.Logger, err)
			return
		}
		helpers.WriteJSONSuccess(w, http.StatusCreated, IDResponse{ID: *req.UserID})
		return
	}
	user, err := c.Service.AddOrganizerByEmail(r.Context(), conferenceID, userID, req.Email)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, IDResponse{ID: user.ID})
}

// RemoveOrganizer godoc
// @Summary Remove an organizer
// @Description The last organizer cannot be removed.
// @Tags conferences
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID (UUID)"
// @Param userID path string true "User ID (UUID)"
// @Success 204 "No Content"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /conferences/{conferenceID}/organizers/{userID} [delete]
func (c *ConferenceController) RemoveOrganizer(w http.ResponseWriter, r *http.Request) {
	conferenceID, ok := helpers.PathUUID(w, r, "conferenceID")
	if !ok {
		return
	}
	targetID, ok := helpers.PathUUID(w, r, "userID")
	if !ok {
		return
	}
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	if err := c.Service.RemoveOrganizer(r.Context(), conferenceID, userID, targetID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
