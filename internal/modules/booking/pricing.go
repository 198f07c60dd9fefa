package booking

import (
	"math"
	"time"

	"hotelier/internal/domain"
)

// Selection is one chosen add-on with its catalog entry resolved.
type Selection struct {
	Item     domain.ServiceItem
	Quantity int
}

// Quote is the priced breakdown of a stay. It is pure arithmetic over
// the room type, the date range and the selection, so the same total can
// be re-derived at any later time.
type Quote struct {
	Nights       int     `json:"nights"`
	RoomCost     float64 `json:"room_cost"`
	ServicesCost float64 `json:"services_cost"`
	Total        float64 `json:"total"`
}

// BuildQuote prices a stay: nights × base rate plus unitPrice × quantity
// per selected service.
func BuildQuote(rt *domain.RoomType, checkIn, checkOut time.Time, selection []Selection) Quote {
	nights := domain.Nights(checkIn, checkOut)
	roomCost := roundMoney(float64(nights) * rt.BaseRate)

	var servicesCost float64
	for _, sel := range selection {
		servicesCost += LineTotal(sel.Item, sel.Quantity)
	}
	servicesCost = roundMoney(servicesCost)

	return Quote{
		Nights:       nights,
		RoomCost:     roomCost,
		ServicesCost: servicesCost,
		Total:        roundMoney(roomCost + servicesCost),
	}
}

// LineTotal captures the price of a service selection at attachment time.
func LineTotal(item domain.ServiceItem, quantity int) float64 {
	return roundMoney(item.UnitPrice * float64(quantity))
}

// recomputeTotal derives the booking total from current facts: nights ×
// base rate plus the captured line totals. Every mutation that touches
// lines writes this value, never an incremental adjustment.
func recomputeTotal(rt *domain.RoomType, checkIn, checkOut time.Time, lines []domain.ServiceLine) float64 {
	total := float64(domain.Nights(checkIn, checkOut)) * rt.BaseRate
	for _, l := range lines {
		total += l.LineTotal
	}
	return roundMoney(total)
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
