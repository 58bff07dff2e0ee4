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

type BuildingController struct {
	DB        *gorm.DB
	Ownership *services.OwnershipService
}

func NewBuildingController(db *gorm.DB, ownership *services.OwnershipService) *BuildingController {
	return &BuildingController{DB: db, Ownership: ownership}
}

// GetBuildings -> every building the caller owns
func (bc *BuildingController) GetBuildings(c *gin.Context) {
	owner, ok := ownerFromContext(c)
	if !ok {
		return
	}

	var buildings []models.Building
	if err := bc.DB.Where("owner_account_id = ?", owner.AccountID).
		Order("name").Find(&buildings).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of buildings", buildings)
}

// GetBuildingByID -> detail of one owned building
func (bc *BuildingController) GetBuildingByID(c *gin.Context) {
	owner, ok := ownerFromContext(c)
	if !ok {
		return
	}

	id, _ := strconv.Atoi(c.Param("building_id"))
	building, err := bc.Ownership.RequireBuildingOwned(owner, uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Building detail", building)
}

// CreateBuilding -> new building owned by the caller
func (bc *BuildingController) CreateBuilding(c *gin.Context) {
	owner, ok := ownerFromContext(c)
	if !ok {
		return
	}

	var req struct {
		Name        string `json:"name" binding:"required"`
		Address     string `json:"address" binding:"required"`
		TotalUnits  int    `json:"total_units"`
		Status      string `json:"status"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	building := models.Building{
		OwnerAccountID: owner.AccountID,
		Name:           req.Name,
		Address:        req.Address,
		TotalUnits:     req.TotalUnits,
		Status:         "active",
		Description:    req.Description,
	}
	if req.Status != "" {
		building.Status = req.Status
	}

	if err := bc.DB.Create(&building).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Building %d created by account %d", building.ID, owner.AccountID)
	utils.RespondJSON(c, http.StatusCreated, "Building created", building)
}

// UpdateBuilding -> edit an owned building
func (bc *BuildingController) UpdateBuilding(c *gin.Context) {
	owner, ok := ownerFromContext(c)
	if !ok {
		return
	}

	id, _ := strconv.Atoi(c.Param("building_id"))
	building, err := bc.Ownership.RequireBuildingOwned(owner, uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Address     *string `json:"address"`
		TotalUnits  *int    `json:"total_units"`
		Status      *string `json:"status"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		building.Name = *req.Name
	}
	if req.Address != nil {
		building.Address = *req.Address
	}
	if req.TotalUnits != nil {
		building.TotalUnits = *req.TotalUnits
	}
	if req.Status != nil {
		building.Status = *req.Status
	}
	if req.Description != nil {
		building.Description = *req.Description
	}

	if err := bc.DB.Save(building).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	realtime.BroadcastBuildingUpdate(owner.AccountID, *building)
	utils.RespondJSON(c, http.StatusOK, "Building updated", building)
}

// DeleteBuilding -> remove an owned building
func (bc *BuildingController) DeleteBuilding(c *gin.Context) {
	owner, ok := ownerFromContext(c)
	if !ok {
		return
	}

	id, _ := strconv.Atoi(c.Param("building_id"))
	building, err := bc.Ownership.RequireBuildingOwned(owner, uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := bc.DB.Delete(building).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Building %d deleted by account %d", building.ID, owner.AccountID)
	utils.RespondJSON(c, http.StatusOK, "Building deleted", gin.H{"building_id": building.ID})
}
