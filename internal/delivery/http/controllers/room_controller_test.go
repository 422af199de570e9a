package controllers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conventionplanner/internal/delivery/http/helpers"
	"conventionplanner/internal/domain"
)

func TestRoomController_CreateRoom(t *testing.T) {
	organizer, attendee := uuid.New(), uuid.New()

	tests := []struct {
		name       string
		body       map[string]any
		actor      uuid.UUID
		wantStatus int
		wantCode   string
	}{
		{
			name:       "success",
			body:       map[string]any{"location": "Hall A", "capacity": 100},
			actor:      organizer,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "zero capacity",
			body:       map[string]any{"location": "Hall A", "capacity": 0},
			actor:      organizer,
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "blank location",
			body:       map[string]any{"location": "", "capacity": 10},
			actor:      organizer,
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "attendee forbidden",
			body:       map[string]any{"location": "Hall A", "capacity": 10},
			actor:      attendee,
			wantStatus: http.StatusForbidden,
			wantCode:   helpers.ErrCodeForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAPI()
			confID := a.createConference(t, organizer)
			a.join(t, attendee, confID)

			rr := call(t, a.rooms.CreateRoom, http.MethodPost, "/", tt.body, tt.actor, "conferenceID", confID)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, errorCode(t, rr, tt.wantStatus))
				return
			}
			var room domain.Room
			decode(t, rr, tt.wantStatus, &room)
			assert.Equal(t, "Hall A", room.Location)
			assert.Equal(t, 100, room.Capacity)
		})
	}
}

func TestRoomController_ReadAndUpdate(t *testing.T) {
	a := newAPI()
	organizer, attendee, stranger := uuid.New(), uuid.New(), uuid.New()
	confID := a.createConference(t, organizer)
	a.join(t, attendee, confID)
	roomID := a.createRoom(t, organizer, confID, 50)

	var rooms []domain.Room
	decode(t, call(t, a.rooms.ListRooms, http.MethodGet, "/", nil, attendee, "conferenceID", confID), http.StatusOK, &rooms)
	require.Len(t, rooms, 1)
	assert.Equal(t, roomID, rooms[0].ID.String())

	rr := call(t, a.rooms.ListRooms, http.MethodGet, "/", nil, stranger, "conferenceID", confID)
	assert.Equal(t, helpers.ErrCodeForbidden, errorCode(t, rr, http.StatusForbidden))

	var room domain.Room
	rr = call(t, a.rooms.UpdateRoom, http.MethodPatch, "/", map[string]any{"location": "Hall B", "capacity": 20}, organizer, "conferenceID", confID, "roomID", roomID)
	decode(t, rr, http.StatusOK, &room)
	assert.Equal(t, "Hall B", room.Location)
	assert.Equal(t, 20, room.Capacity)

	decode(t, call(t, a.rooms.GetRoom, http.MethodGet, "/", nil, attendee, "conferenceID", confID, "roomID", roomID), http.StatusOK, &room)
	assert.Equal(t, "Hall B", room.Location)

	rr = call(t, a.rooms.UpdateRoom, http.MethodPatch, "/", map[string]any{"capacity": 5}, attendee, "conferenceID", confID, "roomID", roomID)
	assert.Equal(t, helpers.ErrCodeForbidden, errorCode(t, rr, http.StatusForbidden))

	rr = call(t, a.rooms.GetRoom, http.MethodGet, "/", nil, attendee, "conferenceID", confID, "roomID", uuid.NewString())
	assert.Equal(t, helpers.ErrCodeNotFound, errorCode(t, rr, http.StatusNotFound))
}

func TestRoomController_ScheduleAndDelete(t *testing.T) {
	a := newAPI()
	organizer := uuid.New()
	confID := a.createConference(t, organizer)
	roomID := a.createRoom(t, organizer, confID, 10)
	late := a.createEvent(t, organizer, confID, roomID, 12, 1)
	early := a.createEvent(t, organizer, confID, roomID, 9, 2)

	var bookings []Booking
	decode(t, call(t, a.rooms.GetRoomSchedule, http.MethodGet, "/", nil, organizer, "conferenceID", confID, "roomID", roomID), http.StatusOK, &bookings)
	require.Len(t, bookings, 2)
	assert.Equal(t, early, bookings[0].EventID.String())
	assert.Equal(t, late, bookings[1].EventID.String())

	rr := call(t, a.rooms.DeleteRoom, http.MethodDelete, "/", nil, organizer, "conferenceID", confID, "roomID", roomID)
	assert.Equal(t, helpers.ErrCodeConflict, errorCode(t, rr, http.StatusConflict))

	for _, id := range []string{early, late} {
		rr = call(t, a.events.DeleteEvent, http.MethodDelete, "/", nil, organizer, "conferenceID", confID, "eventID", id)
		require.Equal(t, http.StatusNoContent, rr.Code)
	}

	rr = call(t, a.rooms.DeleteRoom, http.MethodDelete, "/", nil, organizer, "conferenceID", confID, "roomID", roomID)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}
