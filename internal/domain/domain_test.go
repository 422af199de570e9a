package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeRange(t *testing.T) {
	base := time.Date(2015, time.July, 29, 19, 30, 40, 0, time.UTC)

	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr error
	}{
		{"start before end", base, base.Add(time.Hour), nil},
		{"start equals end", base, base, ErrInvalidTimeRange},
		{"start after end", base.Add(time.Hour), base, ErrInvalidTimeRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := NewTimeRange(tt.start, tt.end)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, tr.Start.Equal(tt.start))
			assert.Equal(t, time.Hour, tr.Duration())
		})
	}
}

func TestTimeRange_Overlaps(t *testing.T) {
	at := func(h int) time.Time { return time.Date(2024, time.March, 1, h, 0, 0, 0, time.UTC) }
	r := func(a, b int) TimeRange { return TimeRange{Start: at(a), End: at(b)} }

	tests := []struct {
		name string
		a, b TimeRange
		want bool
	}{
		{"identical", r(9, 10), r(9, 10), true},
		{"partial overlap", r(9, 11), r(10, 12), true},
		{"contained", r(9, 12), r(10, 11), true},
		{"touching end to start", r(9, 10), r(10, 11), false},
		{"disjoint", r(9, 10), r(11, 12), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a), "overlap must be symmetric")
		})
	}
}

func TestRole_Ordering(t *testing.T) {
	assert.True(t, RoleOrganizer.AtLeast(RoleSpeaker))
	assert.True(t, RoleSpeaker.AtLeast(RoleAttendee))
	assert.True(t, RoleAttendee.AtLeast(RoleNone))
	assert.False(t, RoleAttendee.AtLeast(RoleSpeaker))
	assert.False(t, RoleNone.AtLeast(RoleAttendee))

	for _, r := range []Role{RoleNone, RoleAttendee, RoleSpeaker, RoleOrganizer} {
		assert.Equal(t, r, ParseRole(r.String()))
	}
}

func TestRole_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(JoinedConference{Role: RoleSpeaker})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"role":"speaker"`)
}

func TestPermissionError(t *testing.T) {
	var err error = &PermissionError{Required: RoleOrganizer, Actual: RoleAttendee}

	assert.True(t, errors.Is(err, ErrPermission))
	assert.Contains(t, err.Error(), "organizer")
	assert.Contains(t, err.Error(), "attendee")

	var pe *PermissionError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, RoleOrganizer, pe.Required)
}

func TestPaginationParams_Offset(t *testing.T) {
	assert.Equal(t, 0, PaginationParams{Page: 0, PageSize: 20}.Offset())
	assert.Equal(t, 0, PaginationParams{Page: 1, PageSize: 20}.Offset())
	assert.Equal(t, 40, PaginationParams{Page: 3, PageSize: 20}.Offset())
}

func TestPaginationParams_Bounds(t *testing.T) {
	tests := []struct {
		name   string
		params PaginationParams
		total  int
		lo, hi int
	}{
		{"first page", PaginationParams{Page: 1, PageSize: 2}, 5, 0, 2},
		{"last partial page", PaginationParams{Page: 3, PageSize: 2}, 5, 4, 5},
		{"past the end", PaginationParams{Page: 9, PageSize: 2}, 5, 5, 5},
		{"no page size", PaginationParams{}, 5, 0, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := tt.params.Bounds(tt.total)
			assert.Equal(t, tt.lo, lo)
			assert.Equal(t, tt.hi, hi)
		})
	}
}
