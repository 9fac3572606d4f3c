package models

// Session identifies the logged-in user of one client.
type Session struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (s *Session) HasRole(roles ...Role) bool {
	if s == nil {
		return false
	}
	for _, r := range roles {
		if s.Role == r {
			return true
		}
	}
	return false
}

// Destination is the page a client is sent to after an account action.
type Destination string

const (
	DestinationListing Destination = "/"
	DestinationOwner   Destination = "/owner"
	DestinationAdmin   Destination = "/admin"
	DestinationBooking Destination = "/booking"
)

// DestinationFor maps a role to its landing page after login.
func DestinationFor(role Role) Destination {
	switch role {
	case RoleOwner:
		return DestinationOwner
	case RoleAdmin:
		return DestinationAdmin
	default:
		return DestinationListing
	}
}
