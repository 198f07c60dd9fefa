package catalog

type CreateRoomTypeRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Capacity    int     `json:"capacity" binding:"required,gte=1"`
	BaseRate    float64 `json:"base_rate" binding:"required,gte=0"`
}

type UpdateRoomTypeRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Capacity    *int     `json:"capacity"`
	BaseRate    *float64 `json:"base_rate"`
}

type CreateRoomRequest struct {
	RoomTypeID int64  `json:"room_type_id" binding:"required"`
	Label      string `json:"label" binding:"required"`
	Features   string `json:"features"`
}

type UpdateRoomRequest struct {
	RoomTypeID *int64  `json:"room_type_id"`
	Label      *string `json:"label"`
	Features   *string `json:"features"`
}

type UpdateRoomStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	UnitPrice   float64 `json:"unit_price" binding:"required,gte=0"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	UnitPrice   *float64 `json:"unit_price"`
}
