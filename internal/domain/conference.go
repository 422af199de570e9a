package domain

import (
	"context"

	"github.com/google/uuid"
)

// Conference is a read-only view of a conference's general details.
// swagger:model Conference
type Conference struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	TimeRange TimeRange `json:"time_range"`
}

// JoinedConference pairs a conference with the highest role the user holds in it.
type JoinedConference struct {
	Conference *Conference `json:"conference"`
	Role       Role        `json:"role"`
}

// ConferencePatch lists the conference fields to change. Nil fields are left as they are.
type ConferencePatch struct {
	Name      *string
	TimeRange *TimeRange
}

// ConferenceService is the conference-level API. Every operation that takes an actorID
// authorizes the actor against the conference before touching it.
type ConferenceService interface {
	CreateConference(ctx context.Context, name string, timeRange TimeRange, creatorID uuid.UUID) (uuid.UUID, error)
	ConferenceExists(ctx context.Context, conferenceID uuid.UUID) bool
	GetConference(ctx context.Context, conferenceID uuid.UUID) (*Conference, error)
	ListConferences(ctx context.Context, params PaginationParams) ([]*Conference, int, error)
	ListJoinedConferences(ctx context.Context, userID uuid.UUID) ([]*JoinedConference, error)

	SetConferenceName(ctx context.Context, conferenceID, actorID uuid.UUID, name string) error
	SetConferenceTimeRange(ctx context.Context, conferenceID, actorID uuid.UUID, timeRange TimeRange) error
	// UpdateConference applies every field of patch or none of them.
	UpdateConference(ctx context.Context, conferenceID, actorID uuid.UUID, patch ConferencePatch) error
	DeleteConference(ctx context.Context, conferenceID, actorID uuid.UUID) error

	AddOrganizer(ctx context.Context, conferenceID, actorID, targetID uuid.UUID) error
	// AddOrganizerByEmail resolves the target through the user directory before promoting them.
	AddOrganizerByEmail(ctx context.Context, conferenceID, actorID uuid.UUID, email string) (*User, error)
	RemoveOrganizer(ctx context.Context, conferenceID, actorID, targetID uuid.UUID) error
	AddAttendee(ctx context.Context, conferenceID, targetID uuid.UUID) error
	LeaveConference(ctx context.Context, conferenceID, actorID, targetID uuid.UUID) error

	GetOrganizers(ctx context.Context, conferenceID, actorID uuid.UUID) ([]uuid.UUID, error)
	GetSpeakers(ctx context.Context, conferenceID, actorID uuid.UUID) ([]uuid.UUID, error)
	GetAttendees(ctx context.Context, conferenceID, actorID uuid.UUID) ([]uuid.UUID, error)
}
