package models

import "time"

const (
	CancelledByCustomer = "customer"
	CancelledByBusiness = "business"
	CancelledBySystem   = "system"
)

type Booking struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"size:36;uniqueIndex" json:"reference"`

	CustomerID uint `gorm:"index:idx_bookings_customer" json:"customer_id"`
	Customer   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"customer"`

	BusinessID uint     `gorm:"index:idx_bookings_business_date" json:"business_id"`
	Business   Business `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"business"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service"`

	StaffID *uint  `gorm:"index" json:"staff_id"`
	Staff   *Staff `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"staff,omitempty"`

	// Date is "2006-01-02"; Time and EndTime are "HH:MM".
	Date            string `gorm:"size:10;index:idx_bookings_business_date" json:"date"`
	Time            string `gorm:"size:5" json:"time"`
	EndTime         string `gorm:"size:5" json:"end_time"`
	DurationMinutes int    `json:"duration_minutes"`

	// Price snapshot taken at creation; never recomputed from the service.
	ServicePrice   float64 `json:"service_price"`
	FinalPrice     float64 `json:"final_price"`
	DiscountAmount float64 `gorm:"default:0" json:"discount_amount"`

	Status string `gorm:"size:20;default:'pending';index" json:"status"`

	Notes string `gorm:"type:text" json:"notes"`

	IsCancelled        bool       `gorm:"default:false" json:"is_cancelled"`
	CancelledAt        *time.Time `json:"cancelled_at"`
	CancelledBy        string     `gorm:"size:20" json:"cancelled_by"`
	CancellationReason string     `gorm:"type:text" json:"cancellation_reason"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ConfirmedAt *time.Time `json:"confirmed_at"`
	CompletedAt *time.Time `json:"completed_at"`
}
