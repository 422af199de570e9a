// Package calendar keeps the booked time ranges of a single room and answers conflict queries.
package calendar

import (
	"maps"

	"github.com/google/uuid"

	"conventionplanner/internal/domain"
)

// Calendar maps event ids to the time range they occupy. It is not safe for concurrent use;
// the owning conference serializes access.
type Calendar struct {
	bookings map[uuid.UUID]domain.TimeRange
}

func New() *Calendar {
	return &Calendar{bookings: make(map[uuid.UUID]domain.TimeRange)}
}

// HasConflict reports whether r overlaps any stored range.
func (c *Calendar) HasConflict(r domain.TimeRange) bool {
	for _, booked := range c.bookings {
		if booked.Overlaps(r) {
			return true
		}
	}
	return false
}

// HasConflictExcluding is HasConflict ignoring the booking of eventID, for rescheduling.
func (c *Calendar) HasConflictExcluding(r domain.TimeRange, eventID uuid.UUID) bool {
	for id, booked := range c.bookings {
		if id != eventID && booked.Overlaps(r) {
			return true
		}
	}
	return false
}

// AddEvent books r for eventID, or returns domain.ErrConflict without change.
func (c *Calendar) AddEvent(eventID uuid.UUID, r domain.TimeRange) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if c.HasConflictExcluding(r, eventID) {
		return domain.ErrConflict
	}
	c.bookings[eventID] = r
	return nil
}

// RemoveEvent drops the booking of eventID. Absent ids are ignored.
func (c *Calendar) RemoveEvent(eventID uuid.UUID) {
	delete(c.bookings, eventID)
}

// Contains reports whether eventID is booked here.
func (c *Calendar) Contains(eventID uuid.UUID) bool {
	_, ok := c.bookings[eventID]
	return ok
}

// Schedule returns a copy of the bookings.
func (c *Calendar) Schedule() map[uuid.UUID]domain.TimeRange {
	return maps.Clone(c.bookings)
}

func (c *Calendar) Len() int {
	return len(c.bookings)
}
