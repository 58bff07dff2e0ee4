package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/danuarta/property-console/models"
	"github.com/danuarta/property-console/services"
	"github.com/danuarta/property-console/utils"
)

type ServiceController struct {
	DB        *gorm.DB
	Ownership *services.OwnershipService
}

func NewServiceController(db *gorm.DB, ownership *services.OwnershipService) *ServiceController {
	return &ServiceController{DB: db, Ownership: ownership}
}

// GetServices -> global services plus services under the caller's
// buildings, optionally filtered by ?category
func (sc *ServiceController) GetServices(c *gin.Context) {
	owner, ok := ownerFromContext(c)
	if !ok {
		return
	}

	ownedIDs, err := sc.Ownership.ResolveOwnedBuildingIDs(owner)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	query := sc.DB.Where("building_id IS NULL OR building_id IN ?", ownedIDs).Order("name")
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var svcs []models.Service
	if err := query.Find(&svcs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of services", svcs)
}

// CreateService -> new service; duration must be positive
func (sc *ServiceController) CreateService(c *gin.Context) {
	owner, ok := ownerFromContext(c)
	if !ok {
		return
	}

	var req struct {
		BuildingID      *uint   `json:"building_id"`
		Name            string  `json:"name" binding:"required"`
		Description     string  `json:"description"`
		Price           float64 `json:"price" binding:"required,gte=0"`
		Category        string  `json:"category" binding:"required"`
		DurationMinutes int     `json:"duration_minutes" binding:"required,gt=0"`
		IsAvailable     *bool   `json:"is_available"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.BuildingID != nil {
		if _, err := sc.Ownership.RequireBuildingOwned(owner, *req.BuildingID); err != nil {
			respondServiceError(c, err)
			return
		}
	}

	svc := models.Service{
		BuildingID:      req.BuildingID,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		Category:        req.Category,
		DurationMinutes: req.DurationMinutes,
		IsAvailable:     true,
	}
	if req.IsAvailable != nil {
		svc.IsAvailable = *req.IsAvailable
	}

	if err := sc.DB.Create(&svc).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Service %q created (id=%d)", svc.Name, svc.ID)
	utils.RespondJSON(c, http.StatusCreated, "Service created", svc)
}

// UpdateService -> edit an owned (or global) service
func (sc *ServiceController) UpdateService(c *gin.Context) {
	owner, ok := ownerFromContext(c)
	if !ok {
		return
	}

	id, _ := strconv.Atoi(c.Param("service_id"))
	svc, err := sc.Ownership.RequireServiceOwned(owner, uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var req struct {
		Name            *string  `json:"name"`
		Description     *string  `json:"description"`
		Price           *float64 `json:"price"`
		Category        *string  `json:"category"`
		DurationMinutes *int     `json:"duration_minutes"`
		IsAvailable     *bool    `json:"is_available"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Price != nil && *req.Price < 0 {
		utils.RespondError(c, http.StatusBadRequest, services.ErrValidation)
		return
	}
	if req.DurationMinutes != nil && *req.DurationMinutes <= 0 {
		utils.RespondError(c, http.StatusBadRequest, services.ErrValidation)
		return
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.Category != nil {
		svc.Category = *req.Category
	}
	if req.DurationMinutes != nil {
		svc.DurationMinutes = *req.DurationMinutes
	}
	if req.IsAvailable != nil {
		svc.IsAvailable = *req.IsAvailable
	}

	if err := sc.DB.Save(svc).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Service updated", svc)
}

// DeleteService -> remove an owned (or global) service
func (sc *ServiceController) DeleteService(c *gin.Context) {
	owner, ok := ownerFromContext(c)
	if !ok {
		return
	}

	id, _ := strconv.Atoi(c.Param("service_id"))
	svc, err := sc.Ownership.RequireServiceOwned(owner, uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := sc.DB.Delete(svc).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Service deleted", gin.H{"service_id": svc.ID})
}
