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

// CreateEventRequest is the request body for POST /conferences/{conferenceID}/events.
type CreateEventRequest struct {
	Name       string      `json:"name"`
	RoomID     uuid.UUID   `json:"room_id"`
	SpeakerIDs []uuid.UUID `json:"speaker_ids"`
	TimeRangeRequest
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	if c.RoomID == uuid.Nil {
		errs = append(errs, "room_id is required")
	}
	return append(errs, c.TimeRangeRequest.validate(true)...)
}

// UpdateEventRequest is the request body for PATCH .../events/{eventID}. Omitted fields are unchanged.
// The fields are applied together or not at all.
type UpdateEventRequest struct {
	Name   *string    `json:"name"`
	RoomID *uuid.UUID `json:"room_id"`
	TimeRangeRequest
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	if u.Name == nil && u.RoomID == nil && !u.TimeRangeRequest.set() {
		errs = append(errs, "nothing to update")
	}
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		errs = append(errs, "name must not be blank")
	}
	return append(errs, u.TimeRangeRequest.validate(false)...)
}

func (u UpdateEventRequest) toPatch() domain.EventPatch {
	return domain.EventPatch{
		Name:      trimmedPtr(u.Name),
		TimeRange: u.TimeRangeRequest.toDomainPtr(),
		RoomID:    u.RoomID,
	}
}

// ConversationResponse is the data payload for POST .../events/{eventID}/conversation (201).
type ConversationResponse struct {
	ConversationID uuid.UUID `json:"conversation_id"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// ListEvents godoc
// @Summary List events
// @Description Every event of the conference ordered by start time.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data is a list of events"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /conferences/{conferenceID}/events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	conferenceID, ok := helpers.PathUUID(w, r, "conferenceID")
	if !ok {
		return
	}
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	events, err := c.Service.GetEvents(r.Context(), conferenceID, userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// CreateEvent godoc
// @Summary Create an event
// @Description Books the room for the time range. Listed speakers become conference speakers.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID (UUID)"
// @Param body body CreateEventRequest true "Event data"
// @Success 201 {object} helpers.APIResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (room)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (room booked)"
// @Router /conferences/{conferenceID}/events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	conferenceID, ok := helpers.PathUUID(w, r, "conferenceID")
	if !ok {
		return
	}
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, err := c.Service.CreateEvent(r.Context(), conferenceID, userID, strings.TrimSpace(req.Name), req.toDomain(), req.RoomID, req.SpeakerIDs)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	event, err := c.Service.GetEvent(r.Context(), conferenceID, userID, id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// GetEvent godoc
// @Summary Get an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID (UUID)"
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the event"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /conferences/{conferenceID}/events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	conferenceID, eventID, userID, ok := c.eventPath(w, r)
	if !ok {
		return
	}
	event, err := c.Service.GetEvent(r.Context(), conferenceID, userID, eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Rename, reschedule and/or move the event. Organizers only.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID (UUID)"
// @Param eventID path string true "Event ID (UUID)"
// @Param body body UpdateEventRequest true "Fields to update"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /conferences/{conferenceID}/events/{eventID} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	conferenceID, eventID, userID, ok := c.eventPath(w, r)
	if !ok {
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	ctx := r.Context()
	if err := c.Service.UpdateEvent(ctx, conferenceID, userID, eventID, req.toPatch()); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	event, err := c.Service.GetEvent(ctx, conferenceID, userID, eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Frees the room and emails registered attendees.
// @Tags events
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID (UUID)"
// @Param eventID path string true "Event ID (UUID)"
// @Success 204 "No Content"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /conferences/{conferenceID}/events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	conferenceID, eventID, userID, ok := c.eventPath(w, r)
	if !ok {
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), conferenceID, userID, eventID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListEventAttendees godoc
// @Summary List event attendees
// @Description Speakers and organizers only.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID (UUID)"
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains user_ids"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /conferences/{conferenceID}/events/{eventID}/attendees [get]
func (c *EventController) ListEventAttendees(w http.ResponseWriter, r *http.Request) {
	conferenceID, eventID, userID, ok := c.eventPath(w, r)
	if !ok {
		return
	}
	ids, err := c.Service.GetEventAttendees(r.Context(), conferenceID, userID, eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, UserIDsResponse{UserIDs: ids})
}

// ListEventSpeakers godoc
// @Summary List event speakers
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID (UUID)"
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains user_ids"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /conferences/{conferenceID}/events/{eventID}/speakers [get]
func (c *EventController) ListEventSpeakers(w http.ResponseWriter, r *http.Request) {
	conferenceID, eventID, userID, ok := c.eventPath(w, r)
	if !ok {
		return
	}
	ids, err := c.Service.GetEventSpeakers(r.Context(), conferenceID, userID, eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, UserIDsResponse{UserIDs: ids})
}

// Register godoc
// @Summary Register for an event
// @Description Registers the caller, or with user_id (organizers only) another conference member. Registering twice is a no-op.
// @Tags events
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID (UUID)"
// @Param eventID path string true "Event ID (UUID)"
// @Param user_id query string false "Target user ID (UUID), defaults to the caller"
// @Success 204 "No Content"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (room full)"
// @Router /conferences/{conferenceID}/events/{eventID}/registrations [post]
func (c *EventController) Register(w http.ResponseWriter, r *http.Request) {
	conferenceID, eventID, userID, ok := c.eventPath(w, r)
	if !ok {
		return
	}
	targetID, ok := targetUser(w, r, userID)
	if !ok {
		return
	}
	if err := c.Service.RegisterForEvent(r.Context(), conferenceID, userID, targetID, eventID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Unregister godoc
// @Summary Cancel an event registration
// @Tags events
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID (UUID)"
// @Param eventID path string true "Event ID (UUID)"
// @Param user_id query string false "Target user ID (UUID), defaults to the caller"
// @Success 204 "No Content"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /conferences/{conferenceID}/events/{eventID}/registrations [delete]
func (c *EventController) Unregister(w http.ResponseWriter, r *http.Request) {
	conferenceID, eventID, userID, ok := c.eventPath(w, r)
	if !ok {
		return
	}
	targetID, ok := targetUser(w, r, userID)
	if !ok {
		return
	}
	if err := c.Service.UnregisterForEvent(r.Context(), conferenceID, userID, targetID, eventID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListAttendeeEvents godoc
// @Summary Events a user is registered for
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID (UUID)"
// @Param userID path string true "User ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data is a list of events"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /conferences/{conferenceID}/attendees/{userID}/events [get]
func (c *EventController) ListAttendeeEvents(w http.ResponseWriter, r *http.Request) {
	c.listUserEvents(w, r, c.Service.GetAttendeeEvents)
}

// ListSpeakerEvents godoc
// @Summary Events a user speaks at
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID (UUID)"
// @Param userID path string true "User ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data is a list of events"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /conferences/{conferenceID}/speakers/{userID}/events [get]
func (c *EventController) ListSpeakerEvents(w http.ResponseWriter, r *http.Request) {
	c.listUserEvents(w, r, c.Service.GetSpeakerEvents)
}

type userEventLister func(ctx context.Context, conferenceID, actorID, targetID uuid.UUID) ([]*domain.Event, error)

func (c *EventController) listUserEvents(w http.ResponseWriter, r *http.Request, list userEventLister) {
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
	events, err := list(r.Context(), conferenceID, userID, targetID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// CreateConversation godoc
// @Summary Open the event conversation
// @Description Creates a conversation between the event's speakers and attendees. Organizers and the event's speakers only.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID (UUID)"
// @Param eventID path string true "Event ID (UUID)"
// @Success 201 {object} helpers.APIResponse "data contains conversation_id"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /conferences/{conferenceID}/events/{eventID}/conversation [post]
func (c *EventController) CreateConversation(w http.ResponseWriter, r *http.Request) {
	conferenceID, eventID, userID, ok := c.eventPath(w, r)
	if !ok {
		return
	}
	id, err := c.Service.CreateEventConversation(r.Context(), conferenceID, userID, eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, ConversationResponse{ConversationID: id})
}

func (c *EventController) eventPath(w http.ResponseWriter, r *http.Request) (conferenceID, eventID, userID uuid.UUID, ok bool) {
	if conferenceID, ok = helpers.PathUUID(w, r, "conferenceID"); !ok {
		return
	}
	if eventID, ok = helpers.PathUUID(w, r, "eventID"); !ok {
		return
	}
	userID, ok = currentUser(w, r)
	return
}

// targetUser reads the optional user_id query parameter, defaulting to the caller.
func targetUser(w http.ResponseWriter, r *http.Request, self uuid.UUID) (uuid.UUID, bool) {
	raw := r.URL.Query().Get("user_id")
	if raw == "" {
		return self, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "user_id must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}
