package controllers

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"conventionplanner/internal/delivery/http/helpers"
	"conventionplanner/internal/domain"
)

// CreateRoomRequest is the request body for POST /conferences/{conferenceID}/rooms.
type CreateRoomRequest struct {
	Location string `json:"location"`
	Capacity int    `json:"capacity"`
}

// Validate implements Validator.
func (c CreateRoomRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Location) == "" {
		errs = append(errs, "location is required")
	}
	if c.Capacity <= 0 {
		errs = append(errs, "capacity must be positive")
	}
	return errs
}

// UpdateRoomRequest is the request body for PATCH .../rooms/{roomID}. Omitted fields are unchanged.
type UpdateRoomRequest struct {
	Location *string `json:"location"`
	Capacity *int    `json:"capacity"`
}

// Validate implements Validator.
func (u UpdateRoomRequest) Validate() []string {
	var errs []string
	if u.Location == nil && u.Capacity == nil {
		errs = append(errs, "nothing to update")
	}
	if u.Location != nil && strings.TrimSpace(*u.Location) == "" {
		errs = append(errs, "location must not be blank")
	}
	if u.Capacity != nil && *u.Capacity <= 0 {
		errs = append(errs, "capacity must be positive")
	}
	return errs
}

func (u UpdateRoomRequest) toPatch() domain.RoomPatch {
	return domain.RoomPatch{Location: trimmedPtr(u.Location), Capacity: u.Capacity}
}

// Booking is one entry of a room schedule.
type Booking struct {
	EventID uuid.UUID `json:"event_id"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
}

type RoomController struct {
	Logger  *slog.Logger
	Service domain.RoomService
}

func NewRoomController(logger *slog.Logger, svc domain.RoomService) *RoomController {
	return &RoomController{
		Logger:  logger,
		Service: svc,
	}
}

// ListRooms godoc
// @Summary List rooms
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data is a list of rooms"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /conferences/{conferenceID}/rooms [get]
func (c *RoomController) ListRooms(w http.ResponseWriter, r *http.Request) {
	conferenceID, ok := helpers.PathUUID(w, r, "conferenceID")
	if !ok {
		return
	}
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	rooms, err := c.Service.GetRooms(r.Context(), conferenceID, userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rooms)
}

// CreateRoom godoc
// @Summary Create a room
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID (UUID)"
// @Param body body CreateRoomRequest true "Location and capacity"
// @Success 201 {object} helpers.APIResponse "data contains the created room"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /conferences/{conferenceID}/rooms [post]
func (c *RoomController) CreateRoom(w http.ResponseWriter, r *http.Request) {
	conferenceID, ok := helpers.PathUUID(w, r, "conferenceID")
	if !ok {
		return
	}
	var req CreateRoomRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	location := strings.TrimSpace(req.Location)
	id, err := c.Service.CreateRoom(r.Context(), conferenceID, userID, location, req.Capacity)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, &domain.Room{ID: id, Location: location, Capacity: req.Capacity})
}

// GetRoom godoc
// @Summary Get a room
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID (UUID)"
// @Param roomID path string true "Room ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the room"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /conferences/{conferenceID}/rooms/{roomID} [get]
func (c *RoomController) GetRoom(w http.ResponseWriter, r *http.Request) {
	conferenceID, roomID, userID, ok := c.roomPath(w, r)
	if !ok {
		return
	}
	room, err := c.Service.GetRoom(r.Context(), conferenceID, userID, roomID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, room)
}

// UpdateRoom godoc
// @Summary Update a room
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID (UUID)"
// @Param roomID path string true "Room ID (UUID)"
// @Param body body UpdateRoomRequest true "Fields to update"
// @Success 200 {object} helpers.APIResponse "data contains the updated room"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /conferences/{conferenceID}/rooms/{roomID} [patch]
func (c *RoomController) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	conferenceID, roomID, userID, ok := c.roomPath(w, r)
	if !ok {
		return
	}
	var req UpdateRoomRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.UpdateRoom(r.Context(), conferenceID, userID, roomID, req.toPatch()); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	room, err := c.Service.GetRoom(r.Context(), conferenceID, userID, roomID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, room)
}

// DeleteRoom godoc
// @Summary Delete a room
// @Description Rooms that still host events cannot be deleted.
// @Tags rooms
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID (UUID)"
// @Param roomID path string true "Room ID (UUID)"
// @Success 204 "No Content"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (room in use)"
// @Router /conferences/{conferenceID}/rooms/{roomID} [delete]
func (c *RoomController) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	conferenceID, roomID, userID, ok := c.roomPath(w, r)
	if !ok {
		return
	}
	if err := c.Service.DeleteRoom(r.Context(), conferenceID, userID, roomID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetRoomSchedule godoc
// @Summary Room schedule
// @Description Bookings of the room ordered by start time.
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID (UUID)"
// @Param roomID path string true "Room ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data is a list of bookings"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /conferences/{conferenceID}/rooms/{roomID}/schedule [get]
func (c *RoomController) GetRoomSchedule(w http.ResponseWriter, r *http.Request) {
	conferenceID, roomID, userID, ok := c.roomPath(w, r)
	if !ok {
		return
	}
	schedule, err := c.Service.GetRoomSchedule(r.Context(), conferenceID, userID, roomID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	bookings := make([]Booking, 0, len(schedule))
	for eventID, tr := range schedule {
		bookings = append(bookings, Booking{EventID: eventID, Start: tr.Start, End: tr.End})
	}
	slices.SortFunc(bookings, func(a, b Booking) int { return a.Start.Compare(b.Start) })
	helpers.WriteJSONSuccess(w, http.StatusOK, bookings)
}

func (c *RoomController) roomPath(w http.ResponseWriter, r *http.Request) (conferenceID, roomID, userID uuid.UUID, ok bool) {
	if conferenceID, ok = helpers.PathUUID(w, r, "conferenceID"); !ok {
		return
	}
	if roomID, ok = helpers.PathUUID(w, r, "roomID"); !ok {
		return
	}
	userID, ok = currentUser(w, r)
	return
}
