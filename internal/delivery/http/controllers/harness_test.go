package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"conventionplanner/internal/adapters/messaging"
	"conventionplanner/internal/convention"
	"conventionplanner/internal/delivery/http/helpers"
	"conventionplanner/internal/delivery/http/middleware"
	"conventionplanner/internal/services"
)

// api wires the conference, room and event controllers over one in-memory store.
type api struct {
	conferences *ConferenceController
	rooms       *RoomController
	events      *EventController
}

func newAPI() *api {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
	store := convention.NewConferenceManager()
	perms := convention.NewPermissionManager(store)
	conversations := messaging.NewInMemoryConversations(logger)
	return &api{
		conferences: NewConferenceController(logger, services.NewConferenceService(store, perms, nil, logger)),
		rooms:       NewRoomController(logger, services.NewRoomService(store, perms, logger)),
		events:      NewEventController(logger, services.NewEventService(store, perms, conversations, nil, nil, logger)),
	}
}

// envelope mirrors helpers.APIResponse with the payload left raw.
type envelope struct {
	Data  json.RawMessage   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// call invokes handler as actor. pathValues alternate name, value.
func call(t *testing.T, handler http.HandlerFunc, method, target string, body any, actor uuid.UUID, pathValues ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, reader)
	for i := 0; i+1 < len(pathValues); i += 2 {
		req.SetPathValue(pathValues[i], pathValues[i+1])
	}
	if actor != uuid.Nil {
		req = req.WithContext(middleware.SetUserID(req.Context(), actor))
	}
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

// decode asserts the status and unmarshals the envelope's data into dest (when non-nil).
func decode(t *testing.T, rr *httptest.ResponseRecorder, wantStatus int, dest any) envelope {
	t.Helper()
	require.Equal(t, wantStatus, rr.Code, rr.Body.String())
	var env envelope
	if rr.Body.Len() == 0 {
		return env
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	if dest != nil {
		require.NoError(t, json.Unmarshal(env.Data, dest))
	}
	return env
}

// errorCode asserts the status and returns the error code of the envelope.
func errorCode(t *testing.T, rr *httptest.ResponseRecorder, wantStatus int) string {
	t.Helper()
	env := decode(t, rr, wantStatus, nil)
	require.NotNil(t, env.Error)
	return env.Error.Code
}

func hours(h, n int) map[string]any {
	day := time.Date(2016, time.March, 1, 0, 0, 0, 0, time.UTC)
	return map[string]any{
		"start": day.Add(time.Duration(h) * time.Hour),
		"end":   day.Add(time.Duration(h+n) * time.Hour),
	}
}

// withName merges a name into a time range body.
func withName(name string, body map[string]any) map[string]any {
	body["name"] = name
	return body
}

// createConference makes a conference owned by organizer and returns its id as a string.
func (a *api) createConference(t *testing.T, organizer uuid.UUID) string {
	t.Helper()
	var conf struct {
		ID uuid.UUID `json:"id"`
	}
	rr := call(t, a.conferences.CreateConference, http.MethodPost, "/conferences", withName("GopherCon", hours(0, 72)), organizer)
	decode(t, rr, http.StatusCreated, &conf)
	return conf.ID.String()
}

func (a *api) createRoom(t *testing.T, organizer uuid.UUID, confID string, capacity int) string {
	t.Helper()
	var room struct {
		ID uuid.UUID `json:"id"`
	}
	rr := call(t, a.rooms.CreateRoom, http.MethodPost, "/", map[string]any{"location": "Hall A", "capacity": capacity}, organizer, "conferenceID", confID)
	decode(t, rr, http.StatusCreated, &room)
	return room.ID.String()
}

func (a *api) join(t *testing.T, user uuid.UUID, confID string) {
	t.Helper()
	rr := call(t, a.conferences.Join, http.MethodPost, "/", nil, user, "conferenceID", confID)
	require.Equal(t, http.StatusNoContent, rr.Code, rr.Body.String())
}

// createEvent books [h, h+n) in the room and returns the event id as a string.
func (a *api) createEvent(t *testing.T, organizer uuid.UUID, confID, roomID string, h, n int, speakers ...uuid.UUID) string {
	t.Helper()
	body := withName("Talk", hours(h, n))
	body["room_id"] = roomID
	if len(speakers) > 0 {
		body["speaker_ids"] = speakers
	}
	var ev struct {
		ID uuid.UUID `json:"id"`
	}
	rr := call(t, a.events.CreateEvent, http.MethodPost, "/", body, organizer, "conferenceID", confID)
	decode(t, rr, http.StatusCreated, &ev)
	return ev.ID.String()
}
