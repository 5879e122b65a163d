package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/salonora/salon-booking/internal/models"
)

func TestSnapshotPrice_NoDiscount(t *testing.T) {
	svc := &models.Service{Price: 150}

	snap := SnapshotPrice(svc)
	assert.Equal(t, 150.0, snap.ServicePrice)
	assert.Equal(t, 150.0, snap.FinalPrice)
	assert.Equal(t, 0.0, snap.DiscountAmount)
}

func TestSnapshotPrice_WithDiscount(t *testing.T) {
	discounted := 120.0
	svc := &models.Service{Price: 150, DiscountedPrice: &discounted}

	snap := SnapshotPrice(svc)
	assert.Equal(t, 150.0, snap.ServicePrice)
	assert.Equal(t, 120.0, snap.FinalPrice)
	assert.Equal(t, 30.0, snap.DiscountAmount)
}

func TestSnapshotPrice_ZeroDiscountIgnored(t *testing.T) {
	zero := 0.0
	svc := &models.Service{Price: 150, DiscountedPrice: &zero}

	snap := SnapshotPrice(svc)
	assert.Equal(t, 150.0, snap.FinalPrice)
}

func TestPriceSnapshot_Apply(t *testing.T) {
	discounted := 80.0
	svc := &models.Service{Price: 100, DiscountedPrice: &discounted}

	var b models.Booking
	SnapshotPrice(svc).Apply(&b)

	assert.Equal(t, 100.0, b.ServicePrice)
	assert.Equal(t, 80.0, b.FinalPrice)
	assert.Equal(t, 20.0, b.DiscountAmount)
}
