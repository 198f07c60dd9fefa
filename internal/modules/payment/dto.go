package payment

type RecordPaymentRequest struct {
	BookingID int64   `json:"booking_id" binding:"required"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Method    string  `json:"method" binding:"required"`
	Status    string  `json:"status"`
	Date      string  `json:"date"`
}

type UpdatePaymentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
