package convention

import (
	"sync"

	"github.com/google/uuid"

	"conventionplanner/internal/domain"
)

// ConferenceManager is the owning store of all conferences.
//
// Lock order: a conference lock may be held while taking the manager lock, never the reverse.
type ConferenceManager struct {
	mu          sync.RWMutex
	conferences map[uuid.UUID]*Conference
}

func NewConferenceManager() *ConferenceManager {
	return &ConferenceManager{conferences: make(map[uuid.UUID]*Conference)}
}

// CreateConference registers a new conference with creatorID as its sole organizer.
func (m *ConferenceManager) CreateConference(name string, timeRange domain.TimeRange, creatorID uuid.UUID) (uuid.UUID, error) {
	c, err := newConference(name, timeRange, creatorID)
	if err != nil {
		return uuid.Nil, err
	}
	m.mu.Lock()
	m.conferences[c.id] = c
	m.mu.Unlock()
	return c.id, nil
}

// Conference looks a conference up by id.
func (m *ConferenceManager) Conference(conferenceID uuid.UUID) (*Conference, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.conferences[conferenceID]
	if !ok {
		return nil, domain.ErrNullConference
	}
	return c, nil
}

func (m *ConferenceManager) ConferenceExists(conferenceID uuid.UUID) bool {
	_, err := m.Conference(conferenceID)
	return err == nil
}

// Conferences returns every live conference in no particular order.
func (m *ConferenceManager) Conferences() []*Conference {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Conference, 0, len(m.conferences))
	for _, c := range m.conferences {
		out = append(out, c)
	}
	return out
}

// View looks the conference up and runs fn under its read lock.
func (m *ConferenceManager) View(conferenceID uuid.UUID, fn func(*Conference) error) error {
	c, err := m.Conference(conferenceID)
	if err != nil {
		return err
	}
	return c.View(fn)
}

// Update looks the conference up and runs fn under its write lock.
func (m *ConferenceManager) Update(conferenceID uuid.UUID, fn func(*Conference) error) error {
	c, err := m.Conference(conferenceID)
	if err != nil {
		return err
	}
	return c.Update(fn)
}

// DeleteConference removes the conference once check passes. check runs under the conference's
// write lock, so nothing can change between the check and the removal.
func (m *ConferenceManager) DeleteConference(conferenceID uuid.UUID, check func(*Conference) error) error {
	return m.Update(conferenceID, func(c *Conference) error {
		if check != nil {
			if err := check(c); err != nil {
				return err
			}
		}
		c.deleted = true
		m.mu.Lock()
		delete(m.conferences, conferenceID)
		m.mu.Unlock()
		return nil
	})
}
