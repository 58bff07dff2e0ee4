package services

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/danuarta/property-console/cart"
	"github.com/danuarta/property-console/models"
)

// OrderService turns a finalized cart into a persisted order header plus
// line items. The store offers no cross-table transaction, so a failed
// item insert is compensated by deleting the header that was just created;
// an order must never survive with zero items.
type OrderService struct {
	DB *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db}
}

// Submit persists the order. A nil unit/building or an empty cart makes
// the call a no-op returning (nil, nil); that guard sits with the caller's
// submit button, not in the error taxonomy. The total is recomputed here
// from the lines rather than trusted from the client.
func (s *OrderService) Submit(unit *models.Unit, building *models.Building, lines []cart.Line, notes string) (*models.Order, error) {
	if unit == nil || building == nil || len(lines) == 0 {
		return nil, nil
	}

	var total float64
	for _, l := range lines {
		if l.Quantity < 1 {
			return nil, fmt.Errorf("%w: line %q has quantity %d", ErrValidation, l.Name, l.Quantity)
		}
		if l.Price < 0 {
			return nil, fmt.Errorf("%w: line %q has negative price", ErrValidation, l.Name)
		}
		total += l.Price * float64(l.Quantity)
	}

	order := models.Order{
		Reference:    uuid.NewString(),
		UnitID:       unit.ID,
		UnitNumber:   unit.UnitNumber,
		BuildingID:   building.ID,
		BuildingName: building.Name,
		Status:       "pending",
		TotalAmount:  total,
		Notes:        notes,
	}
	if err := s.DB.Create(&order).Error; err != nil {
		return nil, fmt.Errorf("%w: create order: %v", ErrDependency, err)
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, l := range lines {
		item := models.OrderItem{
			OrderID:  order.ID,
			ItemType: string(l.Type),
			ItemID:   l.ID,
			Name:     l.Name,
			Quantity: l.Quantity,
			Price:    l.Price,
			Notes:    l.Notes,
		}
		if err := s.DB.Create(&item).Error; err != nil {
			// Compensating delete: take any items that did land and the
			// header back out before surfacing the original failure.
			s.DB.Where("order_id = ?", order.ID).Delete(&models.OrderItem{})
			s.DB.Delete(&models.Order{}, order.ID)
			return nil, &PartialWriteError{Cause: fmt.Errorf("create order items: %w", err)}
		}
		items = append(items, item)
	}

	order.OrderItems = items
	return &order, nil
}

// SetStatus applies an owner-chosen status. Membership in the known set is
// validated; transitions between statuses are deliberately unconstrained,
// the console lets the owner pick any status from any status.
func (s *OrderService) SetStatus(order *models.Order, status string) error {
	if !models.IsValidOrderStatus(status) {
		return fmt.Errorf("%w: unknown order status %q", ErrValidation, status)
	}
	order.Status = status
	if err := s.DB.Save(order).Error; err != nil {
		return fmt.Errorf("%w: update order status: %v", ErrDependency, err)
	}
	return nil
}
