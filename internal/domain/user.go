package domain

import "time"

type UserRole string

const (
	RoleGuest   UserRole = "guest"
	RoleManager UserRole = "manager"
	RoleAdmin   UserRole = "admin"
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CanManageBookings reports whether the role may act on bookings it does not own.
func (r UserRole) CanManageBookings() bool {
	return r == RoleManager || r == RoleAdmin
}
