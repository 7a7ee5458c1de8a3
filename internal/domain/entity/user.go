// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an account of the courier desk: a business tenant, a staff member or an admin.
type User struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Name         string    // The user's display name.
	Email        string    // The login identifier, unique across the system.
	PasswordHash string    // bcrypt hash of the user's password.
	Role         Role      // The single role that gates what the user may do.
	Company      string    // The business the user books shipments for.
	Phone        string    // Contact phone number.
	IsActive     bool      // Inactive users cannot log in.
	Settings     *Settings // Server-side stored preferences. Nil until the user saves any.
	PushToken    string    // Optional FCM registration token for push notifications.
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Actor returns the authenticated identity of the user.
func (u *User) Actor() Actor {
	return Actor{UserID: u.ID, Email: u.Email, Role: u.Role}
}
