package domain

import (
	"context"

	"github.com/google/uuid"
)

// Event is a read-only view of a scheduled occupation of one room.
// swagger:model Event
type Event struct {
	ID             uuid.UUID   `json:"id"`
	Name           string      `json:"name"`
	TimeRange      TimeRange   `json:"time_range"`
	RoomID         uuid.UUID   `json:"room_id"`
	Speakers       []uuid.UUID `json:"speakers"`
	Attendees      []uuid.UUID `json:"attendees"`
	ConversationID *uuid.UUID  `json:"conversation_id,omitempty"`
}

// EventPatch lists the event fields to change. Nil fields are left as they are.
type EventPatch struct {
	Name      *string
	TimeRange *TimeRange
	RoomID    *uuid.UUID
}

// EventService manages the events of one conference at a time, including attendee registration.
type EventService interface {
	GetEvents(ctx context.Context, conferenceID, actorID uuid.UUID) ([]*Event, error)
	GetEvent(ctx context.Context, conferenceID, actorID, eventID uuid.UUID) (*Event, error)
	CreateEvent(ctx context.Context, conferenceID, actorID uuid.UUID, name string, timeRange TimeRange, roomID uuid.UUID, speakerIDs []uuid.UUID) (uuid.UUID, error)
	DeleteEvent(ctx context.Context, conferenceID, actorID, eventID uuid.UUID) error
	SetEventName(ctx context.Context, conferenceID, actorID, eventID uuid.UUID, name string) error
	SetEventTimeRange(ctx context.Context, conferenceID, actorID, eventID uuid.UUID, timeRange TimeRange) error
	SetEventRoom(ctx context.Context, conferenceID, actorID, eventID, roomID uuid.UUID) error
	// UpdateEvent applies every field of patch or none of them.
	UpdateEvent(ctx context.Context, conferenceID, actorID, eventID uuid.UUID, patch EventPatch) error

	GetEventAttendees(ctx context.Context, conferenceID, actorID, eventID uuid.UUID) ([]uuid.UUID, error)
	GetEventSpeakers(ctx context.Context, conferenceID, actorID, eventID uuid.UUID) ([]uuid.UUID, error)

	// RegisterForEvent is idempotent: registering an already registered user succeeds without change.
	RegisterForEvent(ctx context.Context, conferenceID, actorID, targetID, eventID uuid.UUID) error
	UnregisterForEvent(ctx context.Context, conferenceID, actorID, targetID, eventID uuid.UUID) error
	GetAttendeeEvents(ctx context.Context, conferenceID, actorID, targetID uuid.UUID) ([]*Event, error)
	GetSpeakerEvents(ctx context.Context, conferenceID, actorID, targetID uuid.UUID) ([]*Event, error)

	// CreateEventConversation opens a conversation between the event's speakers and attendees.
	CreateEventConversation(ctx context.Context, conferenceID, actorID, eventID uuid.UUID) (uuid.UUID, error)
}
