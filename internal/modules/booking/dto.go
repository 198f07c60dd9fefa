package booking

import "hotelier/internal/domain"

type SearchRequest struct {
	CheckIn    string `form:"check_in" binding:"required"`
	CheckOut   string `form:"check_out" binding:"required"`
	Guests     int    `form:"guests" binding:"required,gte=1"`
	RoomTypeID *int64 `form:"room_type_id"`
}

// RoomOffer is one availability search result: a non-conflicting room
// with its type and the room cost for the stay.
type RoomOffer struct {
	Room     domain.Room     `json:"room"`
	RoomType domain.RoomType `json:"room_type"`
	Nights   int             `json:"nights"`
	Total    float64         `json:"total"`
}

type ServiceSelection struct {
	ServiceItemID int64 `json:"service_item_id" binding:"required"`
	Quantity      int   `json:"quantity" binding:"required"`
}

type CreateBookingRequest struct {
	UserID   int64              `json:"-"`
	RoomID   int64              `json:"room_id" binding:"required"`
	CheckIn  string             `json:"check_in" binding:"required"`
	CheckOut string             `json:"check_out" binding:"required"`
	Guests   int                `json:"guests" binding:"required"`
	Services []ServiceSelection `json:"services"`
}

type AttachServiceRequest struct {
	ServiceItemID int64 `json:"service_item_id" binding:"required"`
	Quantity      int   `json:"quantity" binding:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
