package domain

import "time"

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomOccupied    RoomStatus = "occupied"
	RoomMaintenance RoomStatus = "maintenance"
	RoomCleaning    RoomStatus = "cleaning"
)

// RoomType is immutable reference data: a category of rooms sharing
// capacity and nightly rate.
type RoomType struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description,omitempty"`
	Capacity    int       `json:"capacity" validate:"required,gte=1"`
	BaseRate    float64   `json:"base_rate" validate:"required,gte=0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Room struct {
	ID         int64      `json:"id"`
	RoomTypeID int64      `json:"room_type_id" validate:"required"`
	Label      string     `json:"label" validate:"required"`
	Status     RoomStatus `json:"status"`
	Features   string     `json:"features,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	RoomType *RoomType `json:"room_type,omitempty"`
}

func ValidRoomStatus(s RoomStatus) bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomMaintenance, RoomCleaning:
		return true
	}
	return false
}
