package auth

import (
	"context"

	"hotelier/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}

// BookingCounter guards user deletion against live bookings.
type BookingCounter interface {
	CountActiveByUser(ctx context.Context, userID int64) (int64, error)
}

type TokenIssuer interface {
	GenerateToken(userID int64, role domain.UserRole) (string, error)
}
