package models

import "fmt"

// UserRole is the role a session is logged in as
type UserRole string

const (
	RoleNone     UserRole = ""
	RoleCustomer UserRole = "customer"
	RoleWorker   UserRole = "worker"
)

// ParseRole converts a form or API value into a canonical role
func ParseRole(s string) (UserRole, error) {
	switch UserRole(s) {
	case RoleCustomer:
		return RoleCustomer, nil
	case RoleWorker:
		return RoleWorker, nil
	default:
		return RoleNone, fmt.Errorf("unknown role %q", s)
	}
}

// Label is the human readable role name shown on the account page
func (r UserRole) Label() string {
	switch r {
	case RoleCustomer:
		return "Customer"
	case RoleWorker:
		return "Delivery Driver"
	default:
		return "Guest"
	}
}

// Session tracks whether a user is authenticated and in which role.
// Role is RoleNone exactly when LoggedIn is false.
type Session struct {
	ID       string   `json:"id,omitempty"`
	LoggedIn bool     `json:"logged_in"`
	Role     UserRole `json:"role"`
	Username string   `json:"username,omitempty"`
}

// NewSession returns the logged-out default session
func NewSession() Session {
	return Session{}
}

// Valid reports whether the session satisfies the role invariant
func (s Session) Valid() bool {
	if !s.LoggedIn {
		return s.Role == RoleNone && s.Username == "" && s.ID == ""
	}
	return s.Role == RoleCustomer || s.Role == RoleWorker
}

// Is reports whether the session is logged in as role
func (s Session) Is(role UserRole) bool {
	return s.LoggedIn && s.Role == role
}
