package models

import "time"

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BusinessID uint     `gorm:"index" json:"business_id"`
	Business   Business `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name        string `gorm:"size:200;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	DurationMinutes int `gorm:"not null" json:"duration_minutes"`

	Price           float64  `gorm:"not null" json:"price"`
	DiscountedPrice *float64 `json:"discounted_price"`

	IsPopular bool `gorm:"default:false" json:"is_popular"`
	IsActive  bool `gorm:"default:true" json:"is_active"`
	Order     int  `gorm:"default:0" json:"order"`

	TotalBookings int `gorm:"default:0" json:"total_bookings"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FinalPrice is the discounted price when one is set, otherwise the
// regular price.
func (s *Service) FinalPrice() float64 {
	if s.DiscountedPrice != nil && *s.DiscountedPrice > 0 {
		return *s.DiscountedPrice
	}
	return s.Price
}

// ServiceStaff assigns a staff member to a service.
type ServiceStaff struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ServiceID uint    `gorm:"uniqueIndex:idx_service_staff;index" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	StaffID uint  `gorm:"uniqueIndex:idx_service_staff" json:"staff_id"`
	Staff   Staff `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"staff"`

	IsSpecialist bool `gorm:"default:false" json:"is_specialist"`
}
