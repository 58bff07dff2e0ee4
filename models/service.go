package models

import "time"

type Service struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	BuildingID      *uint     `gorm:"index" json:"building_id,omitempty"`
	Building        *Building `gorm:"foreignKey:BuildingID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	Name            string    `gorm:"type:varchar(255);not null" json:"name"`
	Description     string    `gorm:"type:text" json:"description"`
	Price           float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Category        string    `gorm:"type:varchar(50);not null" json:"category"` // housekeeping, spa, concierge, maintenance
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`
	IsAvailable     bool      `gorm:"not null;default:true" json:"is_available"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}
