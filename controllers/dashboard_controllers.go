package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/danuarta/property-console/models"
	"github.com/danuarta/property-console/services"
	"github.com/danuarta/property-console/utils"
)

type DashboardController struct {
	DB        *gorm.DB
	Ownership *services.OwnershipService
}

func NewDashboardController(db *gorm.DB, ownership *services.OwnershipService) *DashboardController {
	return &DashboardController{DB: db, Ownership: ownership}
}

// GetStats -> owner-scoped console overview: unit occupancy, order volume
// per status and total revenue from completed orders
func (dc *DashboardController) GetStats(c *gin.Context) {
	owner, ok := ownerFromContext(c)
	if !ok {
		return
	}

	ownedIDs, err := dc.Ownership.ResolveOwnedBuildingIDs(owner)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	stats := gin.H{
		"buildings": len(ownedIDs),
		"units":     gin.H{},
		"orders":    gin.H{},
		"revenue":   0.0,
	}
	if len(ownedIDs) == 0 {
		utils.RespondJSON(c, http.StatusOK, "Dashboard stats", stats)
		return
	}

	unitCounts := make(map[string]int64)
	for _, status := range []string{"available", "occupied", "maintenance", "reserved"} {
		var count int64
		dc.DB.Model(&models.Unit{}).
			Where("building_id IN ? AND status = ?", ownedIDs, status).
			Count(&count)
		unitCounts[status] = count
	}

	orderCounts := make(map[string]int64)
	for _, status := range models.OrderStatuses {
		var count int64
		dc.DB.Model(&models.Order{}).
			Where("building_id IN ? AND status = ?", ownedIDs, status).
			Count(&count)
		orderCounts[status] = count
	}

	var revenue float64
	dc.DB.Model(&models.Order{}).
		Where("building_id IN ? AND status = ?", ownedIDs, "completed").
		Select("COALESCE(SUM(total_amount), 0)").
		Row().Scan(&revenue)

	stats["units"] = unitCounts
	stats["orders"] = orderCounts
	stats["revenue"] = revenue

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", stats)
}
