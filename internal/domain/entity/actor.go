package entity

import "github.com/google/uuid"

// Actor is the authenticated identity performing an operation, with its role
// resolved from the session token.
type Actor struct {
	ID   uuid.UUID
	Role string
}

// IsAdmin reports whether the actor carries the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// IsDoctor reports whether the actor carries the doctor role.
func (a Actor) IsDoctor() bool {
	return a.Role == RoleDoctor
}

// IsPatient reports whether the actor carries the patient role.
func (a Actor) IsPatient() bool {
	return a.Role == RolePatient
}
