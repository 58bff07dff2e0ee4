package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/danuarta/property-console/models"
	"github.com/danuarta/property-console/realtime"
	"github.com/danuarta/property-console/services"
	"github.com/danuarta/property-console/utils"
)

type OrderController struct {
	DB        *gorm.DB
	Ownership *services.OwnershipService
	Orders    *services.OrderService
}

func NewOrderController(db *gorm.DB, ownership *services.OwnershipService, orders *services.OrderService) *OrderController {
	return &OrderController{DB: db, Ownership: ownership, Orders: orders}
}

// GetOrders -> orders across the caller's buildings with their items,
// newest first; optional ?unit_id, ?building_id, ?status filters
func (oc *OrderController) GetOrders(c *gin.Context) {
	owner, ok := ownerFromContext(c)
	if !ok {
		return
	}

	ownedIDs, err := oc.Ownership.ResolveOwnedBuildingIDs(owner)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if len(ownedIDs) == 0 {
		utils.RespondJSON(c, http.StatusOK, "List of orders", []models.Order{})
		return
	}

	query := oc.DB.Preload("OrderItems").
		Where("building_id IN ?", ownedIDs).
		Order("created_at desc")

	if raw := c.Query("unit_id"); raw != "" {
		id, _ := strconv.Atoi(raw)
		query = query.Where("unit_id = ?", uint(id))
	}
	if raw := c.Query("building_id"); raw != "" {
		id, _ := strconv.Atoi(raw)
		query = query.Where("building_id = ?", uint(id))
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> detail of one order in the caller's scope
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	owner, ok := ownerFromContext(c)
	if !ok {
		return
	}

	id, _ := strconv.Atoi(c.Param("order_id"))
	order, err := oc.Ownership.RequireOrderOwned(owner, uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrderStatus -> owner picks any status for an owned order
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	owner, ok := ownerFromContext(c)
	if !ok {
		return
	}

	id, _ := strconv.Atoi(c.Param("order_id"))
	order, err := oc.Ownership.RequireOrderOwned(owner, uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := oc.Orders.SetStatus(order, req.Status); err != nil {
		respondServiceError(c, err)
		return
	}

	realtime.BroadcastOrderUpdate(owner.AccountID, *order)
	utils.InfoLogger.Printf("Order %d status changed to %s", order.ID, order.Status)
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// DeleteOrder -> remove an owned order; items go with it
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	owner, ok := ownerFromContext(c)
	if !ok {
		return
	}

	id, _ := strconv.Atoi(c.Param("order_id"))
	order, err := oc.Ownership.RequireOrderOwned(owner, uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := oc.DB.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := oc.DB.Delete(order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"order_id": order.ID})
}
