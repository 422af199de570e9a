package convention

import (
	"sync"

	"github.com/google/uuid"

	"conventionplanner/internal/domain"
)

// Conference owns its rooms, events and role sets. All access goes through View or Update.
type Conference struct {
	mu        sync.RWMutex
	id        uuid.UUID
	name      string
	timeRange domain.TimeRange
	roles     *roleSets
	rooms     *RoomManager
	events    *EventManager
	deleted   bool
}

func newConference(name string, timeRange domain.TimeRange, creatorID uuid.UUID) (*Conference, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	if err := timeRange.Validate(); err != nil {
		return nil, err
	}
	roles := newRoleSets(creatorID)
	rooms := NewRoomManager()
	return &Conference{
		id:        uuid.New(),
		name:      name,
		timeRange: timeRange,
		roles:     roles,
		rooms:     rooms,
		events:    newEventManager(rooms, roles),
	}, nil
}

// View runs fn under the conference's read lock.
func (c *Conference) View(fn func(*Conference) error) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.deleted {
		return domain.ErrNullConference
	}
	return fn(c)
}

// Update runs fn under the conference's write lock.
func (c *Conference) Update(fn func(*Conference) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.deleted {
		return domain.ErrNullConference
	}
	return fn(c)
}

func (c *Conference) ID() uuid.UUID { return c.id }

func (c *Conference) Name() string { return c.name }

func (c *Conference) TimeRange() domain.TimeRange { return c.timeRange }

func (c *Conference) Rooms() *RoomManager { return c.rooms }

func (c *Conference) Events() *EventManager { return c.events }

// Info returns the conference's general details.
func (c *Conference) Info() *domain.Conference {
	return &domain.Conference{ID: c.id, Name: c.name, TimeRange: c.timeRange}
}

func (c *Conference) SetName(name string) error {
	if err := validName(name); err != nil {
		return err
	}
	c.name = name
	return nil
}

func (c *Conference) SetTimeRange(timeRange domain.TimeRange) error {
	if err := timeRange.Validate(); err != nil {
		return err
	}
	c.timeRange = timeRange
	return nil
}

// ApplyPatch validates every field of patch before applying any of them.
func (c *Conference) ApplyPatch(patch domain.ConferencePatch) error {
	if patch.Name != nil {
		if err := validName(*patch.Name); err != nil {
			return err
		}
	}
	if patch.TimeRange != nil {
		if err := patch.TimeRange.Validate(); err != nil {
			return err
		}
	}
	if patch.Name != nil {
		c.name = *patch.Name
	}
	if patch.TimeRange != nil {
		c.timeRange = *patch.TimeRange
	}
	return nil
}

// RoleOf returns the highest role userID holds in this conference.
func (c *Conference) RoleOf(userID uuid.UUID) domain.Role {
	return c.roles.roleOf(userID)
}

func (c *Conference) IsOrganizer(userID uuid.UUID) bool { return c.roles.organizers.has(userID) }

func (c *Conference) Organizers() []uuid.UUID { return c.roles.organizers.sorted() }

func (c *Conference) Speakers() []uuid.UUID { return c.roles.speakers.sorted() }

func (c *Conference) Attendees() []uuid.UUID { return c.roles.attendees.sorted() }

func (c *Conference) AddOrganizer(userID uuid.UUID) {
	c.roles.organizers.add(userID)
}

// RemoveOrganizer demotes userID. It fails with ErrNullUser when userID is not an organizer and
// with ErrLoneOrganizer when they are the only one.
func (c *Conference) RemoveOrganizer(userID uuid.UUID) error {
	if !c.roles.organizers.has(userID) {
		return domain.ErrNullUser
	}
	if c.roles.isSoleOrganizer(userID) {
		return domain.ErrLoneOrganizer
	}
	c.roles.organizers.remove(userID)
	return nil
}

func (c *Conference) AddAttendee(userID uuid.UUID) {
	c.roles.attendees.add(userID)
}

// Leave removes userID from every role set and from every event, revoking speaker roles that
// no longer have an event behind them.
func (c *Conference) Leave(userID uuid.UUID) error {
	if c.roles.isSoleOrganizer(userID) {
		return domain.ErrLoneOrganizer
	}
	if c.roles.roleOf(userID) == domain.RoleNone {
		return domain.ErrNullUser
	}
	c.roles.removeAll(userID)
	c.events.removeUser(userID)
	return nil
}
