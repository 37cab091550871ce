package model

import "time"

// Roles recognized by the access gate.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents an authenticated user in the system.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         string    `json:"role" gorm:"size:50;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user may call mutating catalog endpoints.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
