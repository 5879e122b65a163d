package models

type City struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Slug     string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Province string `gorm:"size:100" json:"province"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}

// Area is a district within a city.
type Area struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CityID uint `gorm:"index" json:"city_id"`
	City   City `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name     string `gorm:"size:100;not null" json:"name"`
	Slug     string `gorm:"size:100" json:"slug"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}
