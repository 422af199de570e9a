package convention

import (
	"cmp"
	"slices"

	"github.com/google/uuid"

	"conventionplanner/internal/calendar"
	"conventionplanner/internal/domain"
)

// Room is a bookable location with a fixed capacity and its own calendar.
type Room struct {
	ID       uuid.UUID
	Location string
	Capacity int
	calendar *calendar.Calendar
}

func (r *Room) info() *domain.Room {
	return &domain.Room{ID: r.ID, Location: r.Location, Capacity: r.Capacity}
}

// RoomManager owns the rooms of one conference.
type RoomManager struct {
	rooms map[uuid.UUID]*Room
}

func NewRoomManager() *RoomManager {
	return &RoomManager{rooms: make(map[uuid.UUID]*Room)}
}

// CreateRoom adds a room and returns its id. Capacity must be positive.
func (m *RoomManager) CreateRoom(location string, capacity int) (uuid.UUID, error) {
	if capacity <= 0 {
		return uuid.Nil, domain.ErrInvalidCapacity
	}
	room := &Room{
		ID:       uuid.New(),
		Location: location,
		Capacity: capacity,
		calendar: calendar.New(),
	}
	m.rooms[room.ID] = room
	return room.ID, nil
}

func (m *RoomManager) room(roomID uuid.UUID) (*Room, error) {
	room, ok := m.rooms[roomID]
	if !ok {
		return nil, domain.ErrNullRoom
	}
	return room, nil
}

func (m *RoomManager) RoomExists(roomID uuid.UUID) bool {
	_, ok := m.rooms[roomID]
	return ok
}

// Room returns a copy of the room's details.
func (m *RoomManager) Room(roomID uuid.UUID) (*domain.Room, error) {
	room, err := m.room(roomID)
	if err != nil {
		return nil, err
	}
	return room.info(), nil
}

// GetRooms lists every room ordered by location.
func (m *RoomManager) GetRooms() []*domain.Room {
	out := make([]*domain.Room, 0, len(m.rooms))
	for _, room := range m.rooms {
		out = append(out, room.info())
	}
	slices.SortFunc(out, func(a, b *domain.Room) int {
		if c := cmp.Compare(a.Location, b.Location); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})
	return out
}

func (m *RoomManager) GetRoomLocation(roomID uuid.UUID) (string, error) {
	room, err := m.room(roomID)
	if err != nil {
		return "", err
	}
	return room.Location, nil
}

func (m *RoomManager) GetRoomCapacity(roomID uuid.UUID) (int, error) {
	room, err := m.room(roomID)
	if err != nil {
		return 0, err
	}
	return room.Capacity, nil
}

func (m *RoomManager) SetRoomLocation(roomID uuid.UUID, location string) error {
	room, err := m.room(roomID)
	if err != nil {
		return err
	}
	room.Location = location
	return nil
}

// SetRoomCapacity changes the capacity. Existing registrations above the new capacity are kept;
// the limit applies to later registrations only.
func (m *RoomManager) SetRoomCapacity(roomID uuid.UUID, capacity int) error {
	room, err := m.room(roomID)
	if err != nil {
		return err
	}
	if capacity <= 0 {
		return domain.ErrInvalidCapacity
	}
	room.Capacity = capacity
	return nil
}

// UpdateRoom validates every field of patch before applying any of them.
func (m *RoomManager) UpdateRoom(roomID uuid.UUID, patch domain.RoomPatch) error {
	room, err := m.room(roomID)
	if err != nil {
		return err
	}
	if patch.Capacity != nil && *patch.Capacity <= 0 {
		return domain.ErrInvalidCapacity
	}
	if patch.Location != nil {
		room.Location = *patch.Location
	}
	if patch.Capacity != nil {
		room.Capacity = *patch.Capacity
	}
	return nil
}

// DeleteRoom removes a room that has no bookings. Every event is booked in exactly the calendar
// of the room it references, so a non-empty calendar means the room is in use.
func (m *RoomManager) DeleteRoom(roomID uuid.UUID) error {
	room, err := m.room(roomID)
	if err != nil {
		return err
	}
	if room.calendar.Len() > 0 {
		return domain.ErrRoomInUse
	}
	delete(m.rooms, roomID)
	return nil
}

// GetRoomSchedule returns the room's bookings keyed by event id.
func (m *RoomManager) GetRoomSchedule(roomID uuid.UUID) (map[uuid.UUID]domain.TimeRange, error) {
	room, err := m.room(roomID)
	if err != nil {
		return nil, err
	}
	return room.calendar.Schedule(), nil
}
