package convention

import (
	"github.com/google/uuid"

	"conventionplanner/internal/domain"
)

// roleSets holds the three per-conference role sets. They may overlap.
type roleSets struct {
	organizers userSet
	speakers   userSet
	attendees  userSet
}

func newRoleSets(creatorID uuid.UUID) *roleSets {
	return &roleSets{
		organizers: newUserSet(creatorID),
		speakers:   newUserSet(),
		attendees:  newUserSet(),
	}
}

// roleOf returns the highest role the user holds, or RoleNone.
func (r *roleSets) roleOf(userID uuid.UUID) domain.Role {
	switch {
	case r.organizers.has(userID):
		return domain.RoleOrganizer
	case r.speakers.has(userID):
		return domain.RoleSpeaker
	case r.attendees.has(userID):
		return domain.RoleAttendee
	default:
		return domain.RoleNone
	}
}

func (r *roleSets) isSoleOrganizer(userID uuid.UUID) bool {
	return len(r.organizers) == 1 && r.organizers.has(userID)
}

func (r *roleSets) removeAll(userID uuid.UUID) {
	r.organizers.remove(userID)
	r.speakers.remove(userID)
	r.attendees.remove(userID)
}
