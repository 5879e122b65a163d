package booking

import "github.com/salonora/salon-booking/internal/models"

// PriceSnapshot freezes the service pricing at booking-creation time.
// Later price edits on the service never touch existing bookings.
type PriceSnapshot struct {
	ServicePrice   float64
	FinalPrice     float64
	DiscountAmount float64
}

func SnapshotPrice(svc *models.Service) PriceSnapshot {
	final := svc.FinalPrice()
	return PriceSnapshot{
		ServicePrice:   svc.Price,
		FinalPrice:     final,
		DiscountAmount: svc.Price - final,
	}
}

func (p PriceSnapshot) Apply(b *models.Booking) {
	b.ServicePrice = p.ServicePrice
	b.FinalPrice = p.FinalPrice
	b.DiscountAmount = p.DiscountAmount
}
