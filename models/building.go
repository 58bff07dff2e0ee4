package models

import "time"

type Building struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	OwnerAccountID uint    `gorm:"not null;index" json:"owner_account_id"`
	Owner          Account `gorm:"foreignKey:OwnerAccountID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Name           string  `gorm:"type:varchar(255);not null" json:"name"`
	Address        string  `gorm:"type:varchar(255);not null" json:"address"`
	TotalUnits     int     `gorm:"not null;default:0" json:"total_units"`
	Status         string  `gorm:"type:varchar(20);not null;default:'active'" json:"status"` // active, inactive, maintenance
	Description    string  `gorm:"type:text" json:"description,omitempty"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}
