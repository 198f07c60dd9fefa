package repository

import (
	"errors"
	"fmt"
	"testing"

	"hotelier/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapBookingWriteError(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, mapBookingWriteError(nil))
	})

	t.Run("exclusion violation becomes conflict", func(t *testing.T) {
		err := mapBookingWriteError(&pgconn.PgError{Code: "23P01", ConstraintName: "bookings_room_stay_excl"})

		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("wrapped exclusion violation becomes conflict", func(t *testing.T) {
		wrapped := fmt.Errorf("insert booking: %w", &pgconn.PgError{Code: "23P01"})

		assert.ErrorIs(t, mapBookingWriteError(wrapped), domain.ErrConflict)
	})

	t.Run("other postgres errors pass through", func(t *testing.T) {
		unique := &pgconn.PgError{Code: "23505"}

		err := mapBookingWriteError(unique)
		assert.NotErrorIs(t, err, domain.ErrConflict)
		assert.Equal(t, error(unique), err)
	})

	t.Run("plain errors pass through", func(t *testing.T) {
		plain := errors.New("disk full")

		assert.Equal(t, plain, mapBookingWriteError(plain))
	})
}
