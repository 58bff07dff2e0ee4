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

type UnitController struct {
	DB        *gorm.DB
	Ownership *services.OwnershipService
	QR        *services.QRService
}

func NewUnitController(db *gorm.DB, ownership *services.OwnershipService, qr *services.QRService) *UnitController {
	return &UnitController{DB: db, Ownership: ownership, QR: qr}
}

// GetUnits -> units across the caller's buildings, optionally narrowed to
// one building via ?building_id. A requested building outside the owned
// set yields an empty list, matching the read-filtering rule.
func (uc *UnitController) GetUnits(c *gin.Context) {
	owner, ok := ownerFromContext(c)
	if !ok {
		return
	}

	ownedIDs, err := uc.Ownership.ResolveOwnedBuildingIDs(owner)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if len(ownedIDs) == 0 {
		utils.RespondJSON(c, http.StatusOK, "List of units", []models.Unit{})
		return
	}

	query := uc.DB.Where("building_id IN ?", ownedIDs).Order("unit_number")
	if raw := c.Query("building_id"); raw != "" {
		id, _ := strconv.Atoi(raw)
		query = query.Where("building_id = ?", uint(id))
	}

	var units []models.Unit
	if err := query.Find(&units).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of units", units)
}

// GetUnitByID -> detail of one owned unit
func (uc *UnitController) GetUnitByID(c *gin.Context) {
	owner, ok := ownerFromContext(c)
	if !ok {
		return
	}

	id, _ := strconv.Atoi(c.Param("unit_id"))
	unit, err := uc.Ownership.RequireUnitOwned(owner, uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Unit detail", unit)
}

// CreateUnit -> new unit under an owned building. QR provisioning runs
// right after the insert; if it fails the unit is still created and the
// code can be provisioned again later.
func (uc *UnitController) CreateUnit(c *gin.Context) {
	owner, ok := ownerFromContext(c)
	if !ok {
		return
	}

	var req struct {
		BuildingID  uint    `json:"building_id" binding:"required"`
		UnitNumber  string  `json:"unit_number" binding:"required"`
		FloorNumber *string `json:"floor_number"`
		Status      string  `json:"status"`
		Description string  `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if _, err := uc.Ownership.RequireBuildingOwned(owner, req.BuildingID); err != nil {
		respondServiceError(c, err)
		return
	}

	unit := models.Unit{
		BuildingID:  req.BuildingID,
		UnitNumber:  req.UnitNumber,
		FloorNumber: req.FloorNumber,
		Status:      "available",
		Description: req.Description,
	}
	if req.Status != "" {
		unit.Status = req.Status
	}

	if err := uc.DB.Create(&unit).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// A failed QR step never fails unit creation.
	if url, err := uc.QR.Provision(c.Request.Context(), unit.ID); err != nil {
		utils.ErrorLogger.Printf("QR provisioning for unit %d failed: %v", unit.ID, err)
	} else {
		unit.QRCodeURL = &url
	}

	utils.InfoLogger.Printf("Unit %s created under building %d", unit.UnitNumber, unit.BuildingID)
	utils.RespondJSON(c, http.StatusCreated, "Unit created", unit)
}

// UpdateUnit -> edit an owned unit
func (uc *UnitController) UpdateUnit(c *gin.Context) {
	owner, ok := ownerFromContext(c)
	if !ok {
		return
	}

	id, _ := strconv.Atoi(c.Param("unit_id"))
	unit, err := uc.Ownership.RequireUnitOwned(owner, uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var req struct {
		UnitNumber  *string `json:"unit_number"`
		FloorNumber *string `json:"floor_number"`
		Status      *string `json:"status"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.UnitNumber != nil {
		unit.UnitNumber = *req.UnitNumber
	}
	if req.FloorNumber != nil {
		unit.FloorNumber = req.FloorNumber
	}
	if req.Status != nil {
		unit.Status = *req.Status
	}
	if req.Description != nil {
		unit.Description = *req.Description
	}

	if err := uc.DB.Save(unit).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	realtime.BroadcastUnitUpdate(owner.AccountID, *unit)
	utils.RespondJSON(c, http.StatusOK, "Unit updated", unit)
}

// DeleteUnit -> remove an owned unit
func (uc *UnitController) DeleteUnit(c *gin.Context) {
	owner, ok := ownerFromContext(c)
	if !ok {
		return
	}

	id, _ := strconv.Atoi(c.Param("unit_id"))
	unit, err := uc.Ownership.RequireUnitOwned(owner, uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := uc.DB.Delete(unit).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Unit deleted", gin.H{"unit_id": unit.ID})
}

// ProvisionQRCode -> (re)generate the unit's QR artifact. Safe to call
// repeatedly; the artifact and URL are overwritten in place.
func (uc *UnitController) ProvisionQRCode(c *gin.Context) {
	owner, ok := ownerFromContext(c)
	if !ok {
		return
	}

	id, _ := strconv.Atoi(c.Param("unit_id"))
	unit, err := uc.Ownership.RequireUnitOwned(owner, uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	url, err := uc.QR.Provision(c.Request.Context(), unit.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	unit.QRCodeURL = &url
	realtime.BroadcastUnitUpdate(owner.AccountID, *unit)
	utils.InfoLogger.Printf("QR code provisioned for unit %d: %s", unit.ID, url)
	utils.RespondJSON(c, http.StatusOK, "QR code provisioned", gin.H{
		"unit_id":     unit.ID,
		"qr_code_url": url,
	})
}
