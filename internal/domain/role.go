package domain

// Role is a user's standing within one conference. Higher values carry more authority.
type Role int

const (
	RoleNone Role = iota
	RoleAttendee
	RoleSpeaker
	RoleOrganizer
)

func (r Role) String() string {
	switch r {
	case RoleAttendee:
		return "attendee"
	case RoleSpeaker:
		return "speaker"
	case RoleOrganizer:
		return "organizer"
	default:
		return "none"
	}
}

// AtLeast reports whether r is the same as or above min.
func (r Role) AtLeast(min Role) bool {
	return r >= min
}

// MarshalText encodes the role by name so API responses read "organizer" rather than 3.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// ParseRole is the inverse of Role.String. Unknown names yield RoleNone.
func ParseRole(s string) Role {
	switch s {
	case "attendee":
		return RoleAttendee
	case "speaker":
		return RoleSpeaker
	case "organizer":
		return RoleOrganizer
	default:
		return RoleNone
	}
}
