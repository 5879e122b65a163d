package models

import "time"

type Staff struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BusinessID uint     `gorm:"index" json:"business_id"`
	Business   Business `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Title string `gorm:"size:100" json:"title"`
	Bio   string `gorm:"type:text" json:"bio"`

	IsActive          bool `gorm:"default:true" json:"is_active"`
	CanAcceptBookings bool `gorm:"default:true" json:"can_accept_bookings"`
	Order             int  `gorm:"default:0" json:"order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
