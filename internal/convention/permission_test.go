package convention

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conventionplanner/internal/domain"
)

func TestPermissionManager_Thresholds(t *testing.T) {
	m := NewConferenceManager()
	p := NewPermissionManager(m)
	organizer, speaker, attendee, stranger := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	confID, err := m.CreateConference("Conference A", timeRangeA, organizer)
	require.NoError(t, err)
	require.NoError(t, m.Update(confID, func(c *Conference) error {
		c.AddAttendee(attendee)
		roomID, err := c.Rooms().CreateRoom("Room A", 1)
		if err != nil {
			return err
		}
		_, err = c.Events().CreateEvent("Talk", slot(9, 1), roomID, []uuid.UUID{speaker})
		return err
	}))

	tests := []struct {
		name        string
		user        uuid.UUID
		role        domain.Role
		isOrganizer bool
		isSpeaker   bool
		isAttendee  bool
	}{
		{"organizer", organizer, domain.RoleOrganizer, true, true, true},
		{"speaker", speaker, domain.RoleSpeaker, false, true, true},
		{"attendee", attendee, domain.RoleAttendee, false, false, true},
		{"stranger", stranger, domain.RoleNone, false, false, false},
	}

	check := func(t *testing.T, err error, want bool) {
		t.Helper()
		if want {
			assert.NoError(t, err)
			return
		}
		assert.ErrorIs(t, err, domain.ErrPermission)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, err := p.ResolveRole(confID, tt.user)
			require.NoError(t, err)
			assert.Equal(t, tt.role, role)

			check(t, p.TestIsOrganizer(confID, tt.user), tt.isOrganizer)
			check(t, p.TestIsSpeaker(confID, tt.user), tt.isSpeaker)
			check(t, p.TestIsAttendee(confID, tt.user), tt.isAttendee)
		})
	}

	_, err = p.ResolveRole(uuid.New(), organizer)
	require.ErrorIs(t, err, domain.ErrNullConference)
	require.ErrorIs(t, p.TestIsAttendee(uuid.New(), organizer), domain.ErrNullConference)
}

func TestPermissionManager_PermissionErrorCarriesRoles(t *testing.T) {
	m := NewConferenceManager()
	p := NewPermissionManager(m)
	attendee := uuid.New()
	confID, err := m.CreateConference("Conference A", timeRangeA, uuid.New())
	require.NoError(t, err)
	require.NoError(t, m.Update(confID, func(c *Conference) error {
		c.AddAttendee(attendee)
		return nil
	}))

	err = p.Require(domain.RoleOrganizer, confID, attendee)
	var pe *domain.PermissionError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, domain.RoleOrganizer, pe.Required)
	assert.Equal(t, domain.RoleAttendee, pe.Actual)
}

func TestPermissionManager_CanActOnAttendee(t *testing.T) {
	organizer, attendee, other, stranger := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	c := newTestConference(t, organizer)
	c.AddAttendee(attendee)
	c.AddAttendee(other)
	p := NewPermissionManager(NewConferenceManager())

	tests := []struct {
		name    string
		actor   uuid.UUID
		target  uuid.UUID
		allowed bool
	}{
		{"organizer on someone else", organizer, attendee, true},
		{"organizer on a stranger", organizer, stranger, true},
		{"member on self", attendee, attendee, true},
		{"member on another member", attendee, other, false},
		{"stranger on self", stranger, stranger, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.CanActOnAttendee(c, tt.actor, tt.target)
			if tt.allowed {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, domain.ErrPermission)
		})
	}
}
