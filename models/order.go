package models

import "time"

type Order struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"type:varchar(64);uniqueIndex;not null" json:"reference"`
	UnitID    uint   `gorm:"not null;index" json:"unit_id"`
	// UnitNumber and BuildingName are snapshots taken when the order is
	// created. They must not be re-derived from the live unit/building.
	UnitNumber   string      `gorm:"type:varchar(50);not null" json:"unit_number"`
	BuildingID   uint        `gorm:"not null;index" json:"building_id"`
	BuildingName string      `gorm:"type:varchar(255)" json:"building_name,omitempty"`
	Status       string      `gorm:"type:varchar(20);not null;default:'pending'" json:"status"` // pending, confirmed, processing, completed, cancelled
	TotalAmount  float64     `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	Notes        string      `gorm:"type:text" json:"notes,omitempty"`
	OrderItems   []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
	CreatedAt    time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"not null" json:"updated_at"`
}

// OrderStatuses lists every status an owner may set on an order. Any
// transition between them is allowed, including back to pending.
var OrderStatuses = []string{"pending", "confirmed", "processing", "completed", "cancelled"}

func IsValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}
