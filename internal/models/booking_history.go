package models

import "time"

// BookingHistory is an append-only log of booking status transitions.
type BookingHistory struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BookingID uint    `gorm:"index" json:"booking_id"`
	Booking   Booking `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Status string `gorm:"size:20;not null" json:"status"`
	Notes  string `gorm:"type:text" json:"notes"`

	ChangedByID *uint `json:"changed_by_id"`
	ChangedBy   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
