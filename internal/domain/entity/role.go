// Package entity contains the core business objects of the project.
package entity

import (
	"slices"

	"github.com/google/uuid"
)

// Role represents the type of role a user can have in the system.
type Role string

const (
	// RoleAdmin can see every tenant's data and manage users and couriers.
	RoleAdmin Role = "admin"
	// RoleStaff operates shipments on behalf of the courier desk.
	RoleStaff Role = "staff"
	// RoleBusiness is a tenant that books shipments for itself.
	RoleBusiness Role = "business"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleBusiness:
		return true
	default:
		return false
	}
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// ToStrings converts Roles to []string for JWT compatibility.
func (rs Roles) ToStrings() []string {
	result := make([]string, len(rs))
	for i, r := range rs {
		result[i] = r.String()
	}

	return result
}

// RolesFromStrings converts []string to Roles, filtering out invalid role strings.
func RolesFromStrings(ss []string) Roles {
	result := make(Roles, 0, len(ss))
	for _, s := range ss {
		role := Role(s)
		if role.IsValid() {
			result = append(result, role)
		}
	}

	return result
}

// Actor is the already-authenticated caller of a use case.
type Actor struct {
	UserID uuid.UUID
	Email  string
	Role   Role
}

// IsAdmin reports whether the actor sees all tenants.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanOperate reports whether the actor may drive shipments through their lifecycle.
func (a Actor) CanOperate() bool {
	return a.Role == RoleAdmin || a.Role == RoleStaff
}

// Owns reports whether the actor may act on a record owned by userID.
// Operators handle every tenant's shipments.
func (a Actor) Owns(userID uuid.UUID) bool {
	return a.CanOperate() || a.UserID == userID
}
