package convention

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conventionplanner/internal/domain"
)

func TestEventManager_CreateEvent(t *testing.T) {
	organizer := uuid.New()
	speaker := uuid.New()

	tests := []struct {
		name      string
		eventName string
		tr        domain.TimeRange
		room      func(c *Conference) uuid.UUID
		wantErr   error
	}{
		{"valid", "Event A", slot(9, 1), func(c *Conference) uuid.UUID { return mustRoom(t, c, 2) }, nil},
		{"blank name", "  ", slot(9, 1), func(c *Conference) uuid.UUID { return mustRoom(t, c, 2) }, domain.ErrInvalidName},
		{"empty name", "", slot(9, 1), func(c *Conference) uuid.UUID { return mustRoom(t, c, 2) }, domain.ErrInvalidName},
		{"inverted range", "Event A", domain.TimeRange{Start: dateB, End: dateA}, func(c *Conference) uuid.UUID { return mustRoom(t, c, 2) }, domain.ErrInvalidTimeRange},
		{"unknown room", "Event A", slot(9, 1), func(*Conference) uuid.UUID { return uuid.New() }, domain.ErrNullRoom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestConference(t, organizer)
			roomID := tt.room(c)

			id, err := c.Events().CreateEvent(tt.eventName, tt.tr, roomID, []uuid.UUID{speaker})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, c.Events().GetEvents())
				assert.Empty(t, c.Speakers(), "failed create must not promote speakers")
				return
			}
			require.NoError(t, err)
			ev, err := c.Events().Event(id)
			require.NoError(t, err)
			assert.Equal(t, tt.eventName, ev.Name)
			assert.Equal(t, roomID, ev.RoomID)
			assert.Equal(t, []uuid.UUID{speaker}, ev.Speakers)
			assert.Empty(t, ev.Attendees)
			assert.Equal(t, []uuid.UUID{speaker}, c.Speakers(), "event speakers become conference speakers")
			assert.Equal(t, domain.RoleSpeaker, c.RoleOf(speaker))
		})
	}
}

func TestEventManager_CreateEventConflict(t *testing.T) {
	c := newTestConference(t, uuid.New())
	roomID := mustRoom(t, c, 2)
	other := mustRoom(t, c, 2)
	first := mustEvent(t, c, roomID, slot(9, 2))

	_, err := c.Events().CreateEvent("Event B", slot(10, 2), roomID, nil)
	require.ErrorIs(t, err, domain.ErrConflict)

	schedule, err := c.Rooms().GetRoomSchedule(roomID)
	require.NoError(t, err)
	require.Len(t, schedule, 1)
	assert.True(t, schedule[first].Equal(slot(9, 2)), "first booking is unaffected")
	assert.Len(t, c.Events().GetEvents(), 1)

	// Same slot in another room is fine, and so is the slot right after.
	_, err = c.Events().CreateEvent("Event B", slot(10, 2), other, nil)
	require.NoError(t, err)
	_, err = c.Events().CreateEvent("Event C", slot(11, 1), roomID, nil)
	require.NoError(t, err)
}

func TestEventManager_RegisterAttendeeCapacity(t *testing.T) {
	const capacity = 3
	c := newTestConference(t, uuid.New())
	roomID := mustRoom(t, c, capacity)
	eventID := mustEvent(t, c, roomID, slot(9, 1))

	for range capacity {
		require.NoError(t, c.Events().RegisterAttendee(eventID, uuid.New()))
	}
	require.ErrorIs(t, c.Events().RegisterAttendee(eventID, uuid.New()), domain.ErrFullRoom)

	attendees, err := c.Events().GetEventAttendees(eventID)
	require.NoError(t, err)
	assert.Len(t, attendees, capacity)
}

func TestEventManager_RegisterAttendeeIdempotent(t *testing.T) {
	c := newTestConference(t, uuid.New())
	roomID := mustRoom(t, c, 1)
	eventID := mustEvent(t, c, roomID, slot(9, 1))
	attendee := uuid.New()

	require.NoError(t, c.Events().RegisterAttendee(eventID, attendee))
	// A full room does not reject someone who is already in it.
	require.NoError(t, c.Events().RegisterAttendee(eventID, attendee))

	attendees, err := c.Events().GetEventAttendees(eventID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{attendee}, attendees)

	require.ErrorIs(t, c.Events().RegisterAttendee(uuid.New(), attendee), domain.ErrNullEvent)
}

func TestEventManager_UnregisterAttendee(t *testing.T) {
	c := newTestConference(t, uuid.New())
	roomID := mustRoom(t, c, 2)
	eventID := mustEvent(t, c, roomID, slot(9, 1))
	attendee := uuid.New()
	require.NoError(t, c.Events().RegisterAttendee(eventID, attendee))

	require.NoError(t, c.Events().UnregisterAttendee(eventID, attendee))
	// Repeating, or unregistering someone never registered, is a no-op.
	require.NoError(t, c.Events().UnregisterAttendee(eventID, attendee))
	require.NoError(t, c.Events().UnregisterAttendee(eventID, uuid.New()))

	attendees, err := c.Events().GetEventAttendees(eventID)
	require.NoError(t, err)
	assert.Empty(t, attendees)

	require.ErrorIs(t, c.Events().UnregisterAttendee(uuid.New(), attendee), domain.ErrNullEvent)
}

func TestEventManager_DeleteEventRevokesIdleSpeakers(t *testing.T) {
	c := newTestConference(t, uuid.New())
	roomID := mustRoom(t, c, 2)
	busy, idle := uuid.New(), uuid.New()

	first := mustEvent(t, c, roomID, slot(9, 1), busy, idle)
	mustEvent(t, c, roomID, slot(10, 1), busy)
	assert.ElementsMatch(t, []uuid.UUID{busy, idle}, c.Speakers())

	require.NoError(t, c.Events().DeleteEvent(first))

	assert.Equal(t, []uuid.UUID{busy}, c.Speakers(), "speaker with a remaining event keeps the role")
	assert.Equal(t, domain.RoleNone, c.RoleOf(idle))

	schedule, err := c.Rooms().GetRoomSchedule(roomID)
	require.NoError(t, err)
	assert.NotContains(t, schedule, first)

	require.ErrorIs(t, c.Events().DeleteEvent(first), domain.ErrNullEvent)
}

func TestEventManager_SetEventTimeRange(t *testing.T) {
	c := newTestConference(t, uuid.New())
	roomID := mustRoom(t, c, 2)
	a := mustEvent(t, c, roomID, slot(9, 1))
	mustEvent(t, c, roomID, slot(11, 1))

	// Growing into its own slot is allowed.
	require.NoError(t, c.Events().SetEventTimeRange(a, slot(9, 2)))
	require.ErrorIs(t, c.Events().SetEventTimeRange(a, slot(10, 2)), domain.ErrConflict)
	require.ErrorIs(t, c.Events().SetEventTimeRange(a, domain.TimeRange{Start: dateB, End: dateA}), domain.ErrInvalidTimeRange)

	ev, err := c.Events().Event(a)
	require.NoError(t, err)
	assert.True(t, ev.TimeRange.Equal(slot(9, 2)))
	schedule, _ := c.Rooms().GetRoomSchedule(roomID)
	assert.True(t, schedule[a].Equal(slot(9, 2)), "calendar follows the event")
}

func TestEventManager_SetEventRoom(t *testing.T) {
	c := newTestConference(t, uuid.New())
	from := mustRoom(t, c, 3)
	to := mustRoom(t, c, 3)
	tiny := mustRoom(t, c, 1)
	busy := mustRoom(t, c, 3)
	mustEvent(t, c, busy, slot(9, 1))

	eventID := mustEvent(t, c, from, slot(9, 1))
	require.NoError(t, c.Events().RegisterAttendee(eventID, uuid.New()))
	require.NoError(t, c.Events().RegisterAttendee(eventID, uuid.New()))

	require.ErrorIs(t, c.Events().SetEventRoom(eventID, busy), domain.ErrConflict)
	require.ErrorIs(t, c.Events().SetEventRoom(eventID, tiny), domain.ErrFullRoom)
	require.ErrorIs(t, c.Events().SetEventRoom(eventID, uuid.New()), domain.ErrNullRoom)

	require.NoError(t, c.Events().SetEventRoom(eventID, to))
	ev, err := c.Events().Event(eventID)
	require.NoError(t, err)
	assert.Equal(t, to, ev.RoomID)

	fromSchedule, _ := c.Rooms().GetRoomSchedule(from)
	toSchedule, _ := c.Rooms().GetRoomSchedule(to)
	assert.Empty(t, fromSchedule)
	assert.Contains(t, toSchedule, eventID)
	require.NoError(t, c.Rooms().DeleteRoom(from))
}

func TestEventManager_UpdateEvent(t *testing.T) {
	c := newTestConference(t, uuid.New())
	from := mustRoom(t, c, 3)
	to := mustRoom(t, c, 3)
	tiny := mustRoom(t, c, 1)
	mustEvent(t, c, from, slot(12, 1))
	mustEvent(t, c, to, slot(14, 1))

	eventID := mustEvent(t, c, from, slot(9, 1))
	require.NoError(t, c.Events().RegisterAttendee(eventID, uuid.New()))
	require.NoError(t, c.Events().RegisterAttendee(eventID, uuid.New()))

	name, blank := "Renamed", " "
	late, clash := slot(14, 1), slot(12, 1)
	tests := []struct {
		name    string
		patch   domain.EventPatch
		wantErr error
	}{
		{name: "blank name", patch: domain.EventPatch{Name: &blank, RoomID: &to}, wantErr: domain.ErrInvalidName},
		{name: "conflict in current room", patch: domain.EventPatch{Name: &name, TimeRange: &clash}, wantErr: domain.ErrConflict},
		{name: "conflict in target room", patch: domain.EventPatch{Name: &name, TimeRange: &late, RoomID: &to}, wantErr: domain.ErrConflict},
		{name: "target room too small", patch: domain.EventPatch{Name: &name, RoomID: &tiny}, wantErr: domain.ErrFullRoom},
		{name: "unknown room", patch: domain.EventPatch{Name: &name, RoomID: ptr(uuid.New())}, wantErr: domain.ErrNullRoom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, c.Events().UpdateEvent(eventID, tt.patch), tt.wantErr)

			ev, err := c.Events().Event(eventID)
			require.NoError(t, err)
			assert.Equal(t, "Event A", ev.Name)
			assert.Equal(t, from, ev.RoomID)
			assert.True(t, ev.TimeRange.Equal(slot(9, 1)))
			schedule, _ := c.Rooms().GetRoomSchedule(from)
			assert.Contains(t, schedule, eventID)
		})
	}

	require.NoError(t, c.Events().UpdateEvent(eventID, domain.EventPatch{Name: &name, TimeRange: ptr(slot(12, 2)), RoomID: &to}))
	ev, err := c.Events().Event(eventID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", ev.Name)
	assert.Equal(t, to, ev.RoomID)
	assert.True(t, ev.TimeRange.Equal(slot(12, 2)))

	fromSchedule, _ := c.Rooms().GetRoomSchedule(from)
	toSchedule, _ := c.Rooms().GetRoomSchedule(to)
	assert.NotContains(t, fromSchedule, eventID)
	assert.True(t, toSchedule[eventID].Equal(slot(12, 2)))

	// Extending into its own booking is allowed.
	require.NoError(t, c.Events().UpdateEvent(eventID, domain.EventPatch{TimeRange: ptr(slot(11, 3))}))
}

func TestEventManager_EventsForUser(t *testing.T) {
	c := newTestConference(t, uuid.New())
	roomID := mustRoom(t, c, 5)
	speaker, attendee := uuid.New(), uuid.New()

	late := mustEvent(t, c, roomID, slot(14, 1), speaker)
	early := mustEvent(t, c, roomID, slot(9, 1), speaker)
	other := mustEvent(t, c, roomID, slot(11, 1))
	require.NoError(t, c.Events().RegisterAttendee(other, attendee))

	spoken := c.Events().EventsForSpeaker(speaker)
	require.Len(t, spoken, 2)
	assert.Equal(t, early, spoken[0].ID, "ordered by start time")
	assert.Equal(t, late, spoken[1].ID)

	attended := c.Events().EventsForAttendee(attendee)
	require.Len(t, attended, 1)
	assert.Equal(t, other, attended[0].ID)

	assert.Len(t, c.Events().GetEvents(), 3)
}

func TestEventManager_SetEventName(t *testing.T) {
	c := newTestConference(t, uuid.New())
	eventID := mustEvent(t, c, mustRoom(t, c, 1), slot(9, 1))

	require.ErrorIs(t, c.Events().SetEventName(eventID, ""), domain.ErrInvalidName)
	require.NoError(t, c.Events().SetEventName(eventID, "Keynote"))
	ev, _ := c.Events().Event(eventID)
	assert.Equal(t, "Keynote", ev.Name)
	require.ErrorIs(t, c.Events().SetEventName(uuid.New(), "x"), domain.ErrNullEvent)
}

func TestEventManager_SetConversation(t *testing.T) {
	c := newTestConference(t, uuid.New())
	eventID := mustEvent(t, c, mustRoom(t, c, 1), slot(9, 1))
	conv := uuid.New()

	require.NoError(t, c.Events().SetConversation(eventID, conv))
	ev, _ := c.Events().Event(eventID)
	require.NotNil(t, ev.ConversationID)
	assert.Equal(t, conv, *ev.ConversationID)
}
