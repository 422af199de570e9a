package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for conference, room and event operations. Callers match them with errors.Is.
var (
	ErrPermission       = errors.New("insufficient permission")
	ErrNullConference   = errors.New("conference not found")
	ErrNullRoom         = errors.New("room not found")
	ErrNullEvent        = errors.New("event not found")
	ErrNullUser         = errors.New("user not found")
	ErrInvalidName      = errors.New("name must not be blank")
	ErrInvalidTimeRange = errors.New("time range start must be before end")
	ErrInvalidCapacity  = errors.New("room capacity must be positive")
	ErrConflict         = errors.New("time range conflicts with an existing booking")
	ErrFullRoom         = errors.New("room is at capacity")
	ErrLoneOrganizer    = errors.New("conference must keep at least one organizer")
	ErrRoomInUse        = errors.New("room is used by one or more events")
)

// PermissionError is returned when an actor's role is below what an operation requires.
// It matches ErrPermission.
type PermissionError struct {
	Required Role
	Actual   Role
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("%s: requires %s, have %s", ErrPermission, e.Required, e.Actual)
}

func (e *PermissionError) Unwrap() error {
	return ErrPermission
}
