package domain

import (
	"context"

	"github.com/google/uuid"
)

// Room is a bookable location inside a conference.
// swagger:model Room
type Room struct {
	ID       uuid.UUID `json:"id"`
	Location string    `json:"location"`
	Capacity int       `json:"capacity"`
}

// RoomPatch lists the room fields to change. Nil fields are left as they are.
type RoomPatch struct {
	Location *string
	Capacity *int
}

// RoomService manages the rooms of one conference at a time.
type RoomService interface {
	GetRooms(ctx context.Context, conferenceID, actorID uuid.UUID) ([]*Room, error)
	GetRoom(ctx context.Context, conferenceID, actorID, roomID uuid.UUID) (*Room, error)
	CreateRoom(ctx context.Context, conferenceID, actorID uuid.UUID, location string, capacity int) (uuid.UUID, error)
	SetRoomLocation(ctx context.Context, conferenceID, actorID, roomID uuid.UUID, location string) error
	SetRoomCapacity(ctx context.Context, conferenceID, actorID, roomID uuid.UUID, capacity int) error
	UpdateRoom(ctx context.Context, conferenceID, actorID, roomID uuid.UUID, patch RoomPatch) error
	DeleteRoom(ctx context.Context, conferenceID, actorID, roomID uuid.UUID) error
	// GetRoomSchedule maps each event booked in the room to its time range.
	GetRoomSchedule(ctx context.Context, conferenceID, actorID, roomID uuid.UUID) (map[uuid.UUID]TimeRange, error)
}
