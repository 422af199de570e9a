package convention

import (
	"cmp"
	"slices"
	"strings"

	"github.com/google/uuid"

	"conventionplanner/internal/domain"
)

// Event occupies one room for one time range.
type Event struct {
	ID             uuid.UUID
	Name           string
	TimeRange      domain.TimeRange
	RoomID         uuid.UUID
	speakers       userSet
	attendees      userSet
	conversationID *uuid.UUID
}

func (e *Event) info() *domain.Event {
	out := &domain.Event{
		ID:        e.ID,
		Name:      e.Name,
		TimeRange: e.TimeRange,
		RoomID:    e.RoomID,
		Speakers:  e.speakers.sorted(),
		Attendees: e.attendees.sorted(),
	}
	if e.conversationID != nil {
		id := *e.conversationID
		out.ConversationID = &id
	}
	return out
}

// EventManager owns the events of one conference. It books events in the conference's rooms and
// keeps the conference speaker set in step with event speakers.
type EventManager struct {
	events map[uuid.UUID]*Event
	rooms  *RoomManager
	roles  *roleSets
}

func newEventManager(rooms *RoomManager, roles *roleSets) *EventManager {
	return &EventManager{
		events: make(map[uuid.UUID]*Event),
		rooms:  rooms,
		roles:  roles,
	}
}

func validName(name string) error {
	if strings.TrimSpace(name) == "" {
		return domain.ErrInvalidName
	}
	return nil
}

func (m *EventManager) event(eventID uuid.UUID) (*Event, error) {
	ev, ok := m.events[eventID]
	if !ok {
		return nil, domain.ErrNullEvent
	}
	return ev, nil
}

// CreateEvent books timeRange in the room and records the event. Every listed speaker gains the
// conference speaker role.
func (m *EventManager) CreateEvent(name string, timeRange domain.TimeRange, roomID uuid.UUID, speakerIDs []uuid.UUID) (uuid.UUID, error) {
	if err := validName(name); err != nil {
		return uuid.Nil, err
	}
	if err := timeRange.Validate(); err != nil {
		return uuid.Nil, err
	}
	room, err := m.rooms.room(roomID)
	if err != nil {
		return uuid.Nil, err
	}
	id := uuid.New()
	if err := room.calendar.AddEvent(id, timeRange); err != nil {
		return uuid.Nil, err
	}
	m.events[id] = &Event{
		ID:        id,
		Name:      name,
		TimeRange: timeRange,
		RoomID:    roomID,
		speakers:  newUserSet(speakerIDs...),
		attendees: newUserSet(),
	}
	for _, s := range speakerIDs {
		m.roles.speakers.add(s)
	}
	return id, nil
}

// DeleteEvent frees the booking and revokes the speaker role of speakers left without events.
func (m *EventManager) DeleteEvent(eventID uuid.UUID) error {
	ev, err := m.event(eventID)
	if err != nil {
		return err
	}
	if room, ok := m.rooms.rooms[ev.RoomID]; ok {
		room.calendar.RemoveEvent(eventID)
	}
	delete(m.events, eventID)
	m.reconcileSpeakers(ev.speakers.sorted())
	return nil
}

// reconcileSpeakers is the consistency pass run after any change that can take events away from
// a speaker: a candidate keeps the conference speaker role only while they speak at some event.
func (m *EventManager) reconcileSpeakers(candidates []uuid.UUID) {
	for _, s := range candidates {
		if !m.speaksAtAny(s) {
			m.roles.speakers.remove(s)
		}
	}
}

func (m *EventManager) speaksAtAny(userID uuid.UUID) bool {
	for _, ev := range m.events {
		if ev.speakers.has(userID) {
			return true
		}
	}
	return false
}

// RegisterAttendee adds userID to the event. Registering twice is a no-op.
func (m *EventManager) RegisterAttendee(eventID, userID uuid.UUID) error {
	ev, err := m.event(eventID)
	if err != nil {
		return err
	}
	if ev.attendees.has(userID) {
		return nil
	}
	room, err := m.rooms.room(ev.RoomID)
	if err != nil {
		return err
	}
	if len(ev.attendees) >= room.Capacity {
		return domain.ErrFullRoom
	}
	ev.attendees.add(userID)
	return nil
}

// UnregisterAttendee removes userID from the event if present.
func (m *EventManager) UnregisterAttendee(eventID, userID uuid.UUID) error {
	ev, err := m.event(eventID)
	if err != nil {
		return err
	}
	ev.attendees.remove(userID)
	return nil
}

func (m *EventManager) EventExists(eventID uuid.UUID) bool {
	_, ok := m.events[eventID]
	return ok
}

func (m *EventManager) Event(eventID uuid.UUID) (*domain.Event, error) {
	ev, err := m.event(eventID)
	if err != nil {
		return nil, err
	}
	return ev.info(), nil
}

// GetEvents lists every event ordered by start time.
func (m *EventManager) GetEvents() []*domain.Event {
	return m.collect(func(*Event) bool { return true })
}

// EventsForAttendee lists the events userID is registered for.
func (m *EventManager) EventsForAttendee(userID uuid.UUID) []*domain.Event {
	return m.collect(func(ev *Event) bool { return ev.attendees.has(userID) })
}

// EventsForSpeaker lists the events userID speaks at.
func (m *EventManager) EventsForSpeaker(userID uuid.UUID) []*domain.Event {
	return m.collect(func(ev *Event) bool { return ev.speakers.has(userID) })
}

func (m *EventManager) collect(keep func(*Event) bool) []*domain.Event {
	out := make([]*domain.Event, 0)
	for _, ev := range m.events {
		if keep(ev) {
			out = append(out, ev.info())
		}
	}
	slices.SortFunc(out, func(a, b *domain.Event) int {
		if c := a.TimeRange.Start.Compare(b.TimeRange.Start); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})
	return out
}

func (m *EventManager) GetEventAttendees(eventID uuid.UUID) ([]uuid.UUID, error) {
	ev, err := m.event(eventID)
	if err != nil {
		return nil, err
	}
	return ev.attendees.sorted(), nil
}

func (m *EventManager) GetEventSpeakers(eventID uuid.UUID) ([]uuid.UUID, error) {
	ev, err := m.event(eventID)
	if err != nil {
		return nil, err
	}
	return ev.speakers.sorted(), nil
}

// IsEventSpeaker reports whether userID speaks at the event.
func (m *EventManager) IsEventSpeaker(eventID, userID uuid.UUID) (bool, error) {
	ev, err := m.event(eventID)
	if err != nil {
		return false, err
	}
	return ev.speakers.has(userID), nil
}

func (m *EventManager) SetEventName(eventID uuid.UUID, name string) error {
	ev, err := m.event(eventID)
	if err != nil {
		return err
	}
	if err := validName(name); err != nil {
		return err
	}
	ev.Name = name
	return nil
}

// SetEventTimeRange reschedules the event within its room.
func (m *EventManager) SetEventTimeRange(eventID uuid.UUID, timeRange domain.TimeRange) error {
	ev, err := m.event(eventID)
	if err != nil {
		return err
	}
	room, err := m.rooms.room(ev.RoomID)
	if err != nil {
		return err
	}
	if err := room.calendar.AddEvent(eventID, timeRange); err != nil {
		return err
	}
	ev.TimeRange = timeRange
	return nil
}

// SetEventRoom moves the event to another room at the same time. The move is rejected when the
// new room is booked or cannot seat the attendees already registered.
func (m *EventManager) SetEventRoom(eventID, roomID uuid.UUID) error {
	ev, err := m.event(eventID)
	if err != nil {
		return err
	}
	to, err := m.rooms.room(roomID)
	if err != nil {
		return err
	}
	if ev.RoomID == roomID {
		return nil
	}
	if len(ev.attendees) > to.Capacity {
		return domain.ErrFullRoom
	}
	if err := to.calendar.AddEvent(eventID, ev.TimeRange); err != nil {
		return err
	}
	if from, ok := m.rooms.rooms[ev.RoomID]; ok {
		from.calendar.RemoveEvent(eventID)
	}
	ev.RoomID = roomID
	return nil
}

// UpdateEvent renames, reschedules and moves the event in one step. The target room is the
// patched room or the current one; it must be free for the target range, excluding the event's
// own booking, and must seat the registered attendees. Nothing changes unless every check passes.
func (m *EventManager) UpdateEvent(eventID uuid.UUID, patch domain.EventPatch) error {
	ev, err := m.event(eventID)
	if err != nil {
		return err
	}
	if patch.Name != nil {
		if err := validName(*patch.Name); err != nil {
			return err
		}
	}
	timeRange := ev.TimeRange
	if patch.TimeRange != nil {
		if err := patch.TimeRange.Validate(); err != nil {
			return err
		}
		timeRange = *patch.TimeRange
	}
	roomID := ev.RoomID
	if patch.RoomID != nil {
		roomID = *patch.RoomID
	}
	to, err := m.rooms.room(roomID)
	if err != nil {
		return err
	}
	if roomID != ev.RoomID && len(ev.attendees) > to.Capacity {
		return domain.ErrFullRoom
	}
	if to.calendar.HasConflictExcluding(timeRange, eventID) {
		return domain.ErrConflict
	}

	if from, ok := m.rooms.rooms[ev.RoomID]; ok {
		from.calendar.RemoveEvent(eventID)
	}
	if err := to.calendar.AddEvent(eventID, timeRange); err != nil {
		return err
	}
	if patch.Name != nil {
		ev.Name = *patch.Name
	}
	ev.TimeRange = timeRange
	ev.RoomID = roomID
	return nil
}

// SetConversation records the conversation opened for the event.
func (m *EventManager) SetConversation(eventID, conversationID uuid.UUID) error {
	ev, err := m.event(eventID)
	if err != nil {
		return err
	}
	ev.conversationID = &conversationID
	return nil
}

// removeUser strips userID from every event's attendee and speaker sets.
func (m *EventManager) removeUser(userID uuid.UUID) {
	for _, ev := range m.events {
		ev.attendees.remove(userID)
		ev.speakers.remove(userID)
	}
	m.reconcileSpeakers([]uuid.UUID{userID})
}
