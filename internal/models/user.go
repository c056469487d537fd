package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles
const (
	RoleOT      = "ot"
	RolePatient = "patient"
	RoleAdmin   = "admin"
)

// User is an account record stored in PostgreSQL. Role is empty until the
// user completes role selection; OTProfileID links to the Mongo profile
// created for OT accounts at that point.
type User struct {
	ID           uuid.UUID `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role,omitempty"`
	OTProfileID  string    `json:"ot_profile_id,omitempty"`
}
