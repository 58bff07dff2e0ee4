package models

import "time"

type MenuItem struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// Nil BuildingID means the item is globally visible; with a building
	// it is offered to guests of that building only.
	BuildingID  *uint     `gorm:"index" json:"building_id,omitempty"`
	Building    *Building `gorm:"foreignKey:BuildingID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Category    string    `gorm:"type:varchar(50);not null" json:"category"` // food, drink, dessert, special, other
	ImageURL    *string   `gorm:"type:varchar(512)" json:"image_url,omitempty"`
	IsAvailable bool      `gorm:"not null;default:true" json:"is_available"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
