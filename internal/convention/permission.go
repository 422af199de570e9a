package convention

import (
	"github.com/google/uuid"

	"conventionplanner/internal/domain"
)

// PermissionManager answers role questions about conferences. It never mutates anything.
type PermissionManager struct {
	conferences *ConferenceManager
}

func NewPermissionManager(conferences *ConferenceManager) *PermissionManager {
	return &PermissionManager{conferences: conferences}
}

// ResolveRole returns userID's highest role in the conference, RoleNone if they hold none.
func (p *PermissionManager) ResolveRole(conferenceID, userID uuid.UUID) (domain.Role, error) {
	role := domain.RoleNone
	err := p.conferences.View(conferenceID, func(c *Conference) error {
		role = c.RoleOf(userID)
		return nil
	})
	return role, err
}

// Require fails with a *domain.PermissionError unless actorID holds at least required.
func (p *PermissionManager) Require(required domain.Role, conferenceID, actorID uuid.UUID) error {
	return p.conferences.View(conferenceID, func(c *Conference) error {
		return p.Authorize(c, required, actorID)
	})
}

func (p *PermissionManager) TestIsOrganizer(conferenceID, userID uuid.UUID) error {
	return p.Require(domain.RoleOrganizer, conferenceID, userID)
}

func (p *PermissionManager) TestIsSpeaker(conferenceID, userID uuid.UUID) error {
	return p.Require(domain.RoleSpeaker, conferenceID, userID)
}

func (p *PermissionManager) TestIsAttendee(conferenceID, userID uuid.UUID) error {
	return p.Require(domain.RoleAttendee, conferenceID, userID)
}

// Authorize is Require against a conference the caller already holds a lock on.
func (p *PermissionManager) Authorize(c *Conference, required domain.Role, actorID uuid.UUID) error {
	if actual := c.RoleOf(actorID); !actual.AtLeast(required) {
		return &domain.PermissionError{Required: required, Actual: actual}
	}
	return nil
}

// CanActOnAttendee is the self-service policy: organizers may act on anyone, other members only
// on themselves.
func (p *PermissionManager) CanActOnAttendee(c *Conference, actorID, targetID uuid.UUID) error {
	if c.IsOrganizer(actorID) {
		return nil
	}
	if actorID != targetID {
		return &domain.PermissionError{Required: domain.RoleOrganizer, Actual: c.RoleOf(actorID)}
	}
	return p.Authorize(c, domain.RoleAttendee, actorID)
}
