package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/danuarta/property-console/models"
)

// OwnerContext is the explicit owner-mode capability: every scoped call
// carries the authenticated account it acts for.
type OwnerContext struct {
	AccountID uint
}

// GuestContext marks the unauthenticated access path used by QR-originated
// order sessions. It exists so guest mode is a declared choice at the call
// site rather than something inferred from the request.
type GuestContext struct{}

// OwnershipService resolves which buildings an account owns and guards
// every owner-mode operation with that set. Checks are evaluated per
// operation, never cached across a request, so a reassigned building takes
// effect immediately.
type OwnershipService struct {
	DB *gorm.DB
}

func NewOwnershipService(db *gorm.DB) *OwnershipService {
	return &OwnershipService{DB: db}
}

// ResolveOwnedBuildingIDs returns every building owned by the account.
// Owning nothing is an empty slice, not an error. A store failure is
// surfaced as ErrDependency and never widens access.
func (s *OwnershipService) ResolveOwnedBuildingIDs(owner OwnerContext) ([]uint, error) {
	var ids []uint
	if err := s.DB.Model(&models.Building{}).
		Where("owner_account_id = ?", owner.AccountID).
		Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("%w: resolve owned buildings: %v", ErrDependency, err)
	}
	return ids, nil
}

// IsOwned reports whether buildingID belongs to the account.
func (s *OwnershipService) IsOwned(owner OwnerContext, buildingID uint) (bool, error) {
	var count int64
	if err := s.DB.Model(&models.Building{}).
		Where("id = ? AND owner_account_id = ?", buildingID, owner.AccountID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("%w: check building ownership: %v", ErrDependency, err)
	}
	return count > 0, nil
}

// RequireBuildingOwned resolves the building and checks ownership before
// any write is attempted. NotFound and Forbidden stay distinct.
func (s *OwnershipService) RequireBuildingOwned(owner OwnerContext, buildingID uint) (*models.Building, error) {
	var building models.Building
	if err := s.DB.First(&building, buildingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: load building: %v", ErrDependency, err)
	}
	if building.OwnerAccountID != owner.AccountID {
		return nil, ErrForbidden
	}
	return &building, nil
}

// RequireUnitOwned re-resolves the unit's building chain and checks it
// against the caller.
func (s *OwnershipService) RequireUnitOwned(owner OwnerContext, unitID uint) (*models.Unit, error) {
	var unit models.Unit
	if err := s.DB.First(&unit, unitID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: load unit: %v", ErrDependency, err)
	}
	if _, err := s.RequireBuildingOwned(owner, unit.BuildingID); err != nil {
		if errors.Is(err, ErrNotFound) {
			// Building row is gone but the unit still points at it;
			// the caller cannot own a dangling chain.
			return nil, ErrForbidden
		}
		return nil, err
	}
	return &unit, nil
}

// RequireMenuItemOwned guards writes to a menu item. A global item (no
// building) is manageable by any authenticated account.
func (s *OwnershipService) RequireMenuItemOwned(owner OwnerContext, itemID uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.DB.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: load menu item: %v", ErrDependency, err)
	}
	if item.BuildingID != nil {
		if _, err := s.RequireBuildingOwned(owner, *item.BuildingID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, ErrForbidden
			}
			return nil, err
		}
	}
	return &item, nil
}

// RequireServiceOwned guards writes to a service, same rules as menu items.
func (s *OwnershipService) RequireServiceOwned(owner OwnerContext, serviceID uint) (*models.Service, error) {
	var svc models.Service
	if err := s.DB.First(&svc, serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: load service: %v", ErrDependency, err)
	}
	if svc.BuildingID != nil {
		if _, err := s.RequireBuildingOwned(owner, *svc.BuildingID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, ErrForbidden
			}
			return nil, err
		}
	}
	return &svc, nil
}

// RequireOrderOwned guards owner-mode order reads and status updates via
// the order's building.
func (s *OwnershipService) RequireOrderOwned(owner OwnerContext, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := s.DB.Preload("OrderItems").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: load order: %v", ErrDependency, err)
	}
	if _, err := s.RequireBuildingOwned(owner, order.BuildingID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	return &order, nil
}

// GetUnitForGuest serves the order-page read path: existence check only,
// no ownership involved. Guest mode never reaches a write besides order
// creation.
func (s *OwnershipService) GetUnitForGuest(_ GuestContext, unitID uint) (*models.Unit, error) {
	var unit models.Unit
	if err := s.DB.First(&unit, unitID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: load unit: %v", ErrDependency, err)
	}
	return &unit, nil
}

// GetBuildingForGuest is the guest-mode building read.
func (s *OwnershipService) GetBuildingForGuest(_ GuestContext, buildingID uint) (*models.Building, error) {
	var building models.Building
	if err := s.DB.First(&building, buildingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: load building: %v", ErrDependency, err)
	}
	return &building, nil
}
