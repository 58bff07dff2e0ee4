package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/danuarta/property-console/cart"
	"github.com/danuarta/property-console/models"
	"github.com/danuarta/property-console/realtime"
	"github.com/danuarta/property-console/services"
	"github.com/danuarta/property-console/utils"
)

// GuestController serves the order page reached by scanning a unit's QR
// code. Nothing here carries an account: every read is an existence check
// only, and order creation is the single write guests can reach.
type GuestController struct {
	DB        *gorm.DB
	Ownership *services.OwnershipService
	Orders    *services.OrderService
}

func NewGuestController(db *gorm.DB, ownership *services.OwnershipService, orders *services.OrderService) *GuestController {
	return &GuestController{DB: db, Ownership: ownership, Orders: orders}
}

// Guests on a broken link get one generic message; there is no caller
// identity to tailor it to and no internal cause to leak.
var errUnitCodeInvalid = errors.New("unit not found, the code may be invalid")

// GetUnit -> the unit a scanned code points at
func (gc *GuestController) GetUnit(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("unit_id"))

	unit, err := gc.Ownership.GetUnitForGuest(services.GuestContext{}, uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.RespondError(c, http.StatusNotFound, errUnitCodeInvalid)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Unit detail", unit)
}

// GetBuilding -> the building shown on the order page header
func (gc *GuestController) GetBuilding(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("building_id"))

	building, err := gc.Ownership.GetBuildingForGuest(services.GuestContext{}, uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Building detail", building)
}

// GetMenuItems -> available menu items, global ones plus those scoped to
// ?building_id
func (gc *GuestController) GetMenuItems(c *gin.Context) {
	query := gc.DB.Where("is_available = ?", true).Order("name")
	query = scopeCatalogToBuilding(query, c.Query("building_id"))
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var items []models.MenuItem
	if err := query.Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	catalog := make([]models.CatalogItem, 0, len(items))
	for _, item := range items {
		catalog = append(catalog, item.Catalog())
	}
	utils.RespondJSON(c, http.StatusOK, "List of menu items", catalog)
}

// GetServices -> available services, same scoping as menu items
func (gc *GuestController) GetServices(c *gin.Context) {
	query := gc.DB.Where("is_available = ?", true).Order("name")
	query = scopeCatalogToBuilding(query, c.Query("building_id"))
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var svcs []models.Service
	if err := query.Find(&svcs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	catalog := make([]models.CatalogItem, 0, len(svcs))
	for _, svc := range svcs {
		catalog = append(catalog, svc.Catalog())
	}
	utils.RespondJSON(c, http.StatusOK, "List of services", catalog)
}

// CreateOrder -> persist the guest's cart as an order. The unit and
// building are resolved server-side from unit_id; the cart lines carry
// their own add-time price snapshots.
func (gc *GuestController) CreateOrder(c *gin.Context) {
	type lineReq struct {
		ItemType string  `json:"item_type" binding:"required,oneof=menu service"`
		ItemID   uint    `json:"item_id" binding:"required"`
		Name     string  `json:"name" binding:"required"`
		Quantity int     `json:"quantity" binding:"required,gte=1"`
		Price    float64 `json:"price" binding:"gte=0"`
		Notes    string  `json:"notes"`
	}
	var req struct {
		UnitID uint      `json:"unit_id" binding:"required"`
		Notes  string    `json:"notes"`
		Items  []lineReq `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	unit, err := gc.Ownership.GetUnitForGuest(services.GuestContext{}, req.UnitID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.RespondError(c, http.StatusNotFound, errUnitCodeInvalid)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	building, err := gc.Ownership.GetBuildingForGuest(services.GuestContext{}, unit.BuildingID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	lines := make([]cart.Line, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, cart.Line{
			Type:     models.CatalogItemType(item.ItemType),
			ID:       item.ItemID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
			Notes:    item.Notes,
		})
	}

	order, err := gc.Orders.Submit(unit, building, lines, req.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if order == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("cart is empty"))
		return
	}

	realtime.BroadcastOrderCreate(building.OwnerAccountID, *order)
	utils.InfoLogger.Printf("Order %d placed for unit %s (%s)", order.ID, order.UnitNumber, order.Reference)
	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

func scopeCatalogToBuilding(query *gorm.DB, rawBuildingID string) *gorm.DB {
	if rawBuildingID == "" {
		return query.Where("building_id IS NULL")
	}
	id, _ := strconv.Atoi(rawBuildingID)
	return query.Where("building_id IS NULL OR building_id = ?", uint(id))
}
