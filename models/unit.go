package models

import "time"

type Unit struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	BuildingID  uint     `gorm:"not null;index" json:"building_id"`
	Building    Building `gorm:"foreignKey:BuildingID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	UnitNumber  string   `gorm:"type:varchar(50);not null" json:"unit_number"`
	FloorNumber *string  `gorm:"type:varchar(20)" json:"floor_number,omitempty"`
	Status      string   `gorm:"type:varchar(20);not null;default:'available'" json:"status"` // available, occupied, maintenance, reserved
	Description string   `gorm:"type:text" json:"description,omitempty"`
	// QRCodeURL stays nil until provisioning succeeds; it is the only
	// field the provisioning flow writes.
	QRCodeURL *string   `gorm:"type:varchar(512)" json:"qr_code_url,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
