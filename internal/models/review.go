package models

import "time"

type Review struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint `gorm:"index" json:"customer_id"`
	Customer   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"customer"`

	BusinessID uint     `gorm:"index" json:"business_id"`
	Business   Business `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	BookingID *uint    `gorm:"uniqueIndex" json:"booking_id"`
	Booking   *Booking `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Rating int `gorm:"not null" json:"rating"`

	ServiceQuality *int `json:"service_quality"`
	Cleanliness    *int `json:"cleanliness"`
	StaffBehavior  *int `json:"staff_behavior"`
	ValueForMoney  *int `json:"value_for_money"`

	Title   string `gorm:"size:200" json:"title"`
	Comment string `gorm:"type:text" json:"comment"`

	IsApproved bool `gorm:"default:false" json:"is_approved"`
	IsVerified bool `gorm:"default:false" json:"is_verified"`

	Response    string     `gorm:"type:text" json:"response"`
	RespondedAt *time.Time `json:"responded_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
