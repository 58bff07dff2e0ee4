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

type MenuController struct {
	DB        *gorm.DB
	Ownership *services.OwnershipService
}

func NewMenuController(db *gorm.DB, ownership *services.OwnershipService) *MenuController {
	return &MenuController{DB: db, Ownership: ownership}
}

// GetMenuItems -> global items plus items under the caller's buildings,
// optionally filtered by ?category
func (mc *MenuController) GetMenuItems(c *gin.Context) {
	owner, ok := ownerFromContext(c)
	if !ok {
		return
	}

	ownedIDs, err := mc.Ownership.ResolveOwnedBuildingIDs(owner)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	query := mc.DB.Where("building_id IS NULL OR building_id IN ?", ownedIDs).Order("name")
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var items []models.MenuItem
	if err := query.Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
}

// CreateMenuItem -> new catalog item; a building-scoped item needs the
// parent building to already be owned
func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	owner, ok := ownerFromContext(c)
	if !ok {
		return
	}

	var req struct {
		BuildingID  *uint   `json:"building_id"`
		Name        string  `json:"name" binding:"required"`
		Description string  `json:"description"`
		Price       float64 `json:"price" binding:"required,gte=0"`
		Category    string  `json:"category" binding:"required"`
		ImageURL    *string `json:"image_url"`
		IsAvailable *bool   `json:"is_available"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.BuildingID != nil {
		if _, err := mc.Ownership.RequireBuildingOwned(owner, *req.BuildingID); err != nil {
			respondServiceError(c, err)
			return
		}
	}

	item := models.MenuItem{
		BuildingID:  req.BuildingID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		IsAvailable: true,
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}

	if err := mc.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Menu item %q created (id=%d)", item.Name, item.ID)
	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}

// UpdateMenuItem -> edit an owned (or global) menu item
func (mc *MenuController) UpdateMenuItem(c *gin.Context) {
	owner, ok := ownerFromContext(c)
	if !ok {
		return
	}

	id, _ := strconv.Atoi(c.Param("item_id"))
	item, err := mc.Ownership.RequireMenuItemOwned(owner, uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var req struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		Category    *string  `json:"category"`
		ImageURL    *string  `json:"image_url"`
		IsAvailable *bool    `json:"is_available"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Price != nil && *req.Price < 0 {
		utils.RespondError(c, http.StatusBadRequest, services.ErrValidation)
		return
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.ImageURL != nil {
		item.ImageURL = req.ImageURL
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}

	if err := mc.DB.Save(item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu item updated", item)
}

// DeleteMenuItem -> remove an owned (or global) menu item
func (mc *MenuController) DeleteMenuItem(c *gin.Context) {
	owner, ok := ownerFromContext(c)
	if !ok {
		return
	}

	id, _ := strconv.Atoi(c.Param("item_id"))
	item, err := mc.Ownership.RequireMenuItemOwned(owner, uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := mc.DB.Delete(item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu item deleted", gin.H{"item_id": item.ID})
}
