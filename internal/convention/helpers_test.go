package convention

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"conventionplanner/internal/domain"
)

var (
	dateA = time.Date(2015, time.July, 29, 19, 30, 40, 0, time.UTC)
	dateB = time.Date(2018, time.July, 29, 19, 30, 40, 0, time.UTC)

	timeRangeA = domain.TimeRange{Start: dateA, End: dateB}
)

// slot returns [h, h+n) hours on a fixed day.
func slot(h, n int) domain.TimeRange {
	day := time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)
	return domain.TimeRange{
		Start: day.Add(time.Duration(h) * time.Hour),
		End:   day.Add(time.Duration(h+n) * time.Hour),
	}
}

func newTestConference(t *testing.T, organizer uuid.UUID) *Conference {
	t.Helper()
	c, err := newConference("Conference A", timeRangeA, organizer)
	require.NoError(t, err)
	return c
}

func mustRoom(t *testing.T, c *Conference, capacity int) uuid.UUID {
	t.Helper()
	id, err := c.Rooms().CreateRoom("Room A", capacity)
	require.NoError(t, err)
	return id
}

func mustEvent(t *testing.T, c *Conference, roomID uuid.UUID, tr domain.TimeRange, speakers ...uuid.UUID) uuid.UUID {
	t.Helper()
	id, err := c.Events().CreateEvent("Event A", tr, roomID, speakers)
	require.NoError(t, err)
	return id
}

func ptr[T any](v T) *T { return &v }
