package models

import "time"

const (
	BusinessStatusPending   = "pending"
	BusinessStatusApproved  = "approved"
	BusinessStatusRejected  = "rejected"
	BusinessStatusSuspended = "suspended"
)

type Business struct {
	ID uint `gorm:"primaryKey" json:"id"`

	OwnerID uint `gorm:"index" json:"owner_id"`
	Owner   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name        string `gorm:"size:200;not null" json:"name"`
	Slug        string `gorm:"size:200;uniqueIndex;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description"`

	CategoryID *uint     `json:"category_id"`
	Category   *Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"category,omitempty"`

	CityID *uint `json:"city_id"`
	City   *City `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"city,omitempty"`

	AreaID *uint `json:"area_id"`
	Area   *Area `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"area,omitempty"`

	Address string `gorm:"size:255" json:"address"`
	Phone   string `gorm:"size:20" json:"phone"`

	// Operating hours, "HH:MM". ClosedDays uses time.Weekday ints
	// (0 = Sunday .. 6 = Saturday).
	OpensAt    string  `gorm:"size:5;default:'09:00'" json:"opens_at"`
	ClosesAt   string  `gorm:"size:5;default:'21:00'" json:"closes_at"`
	ClosedDays IntList `gorm:"type:jsonb;default:'[]'" json:"closed_days"`

	SlotDurationMinutes       int  `gorm:"default:30" json:"slot_duration_minutes"`
	BookingAdvanceDays        int  `gorm:"default:30" json:"booking_advance_days"`
	CancellationDeadlineHours int  `gorm:"default:24" json:"cancellation_deadline_hours"`
	AllowOnlineBooking        bool `gorm:"default:true" json:"allow_online_booking"`
	AutoConfirmBooking        bool `gorm:"default:false" json:"auto_confirm_booking"`

	TotalBookings int     `gorm:"default:0" json:"total_bookings"`
	TotalReviews  int     `gorm:"default:0" json:"total_reviews"`
	AverageRating float64 `gorm:"default:0" json:"average_rating"`

	Status     string `gorm:"size:20;default:'pending'" json:"status"`
	IsFeatured bool   `gorm:"default:false" json:"is_featured"`
	IsActive   bool   `gorm:"default:true" json:"is_active"`

	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	ApprovedAt *time.Time `json:"approved_at"`
}

// Bookable reports whether customers may book at this business at all.
func (b *Business) Bookable() bool {
	return b.IsActive && b.Status == BusinessStatusApproved && b.AllowOnlineBooking
}
