package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/danuarta/property-console/models"
	"github.com/danuarta/property-console/services"
	"github.com/danuarta/property-console/storage"
)

type unavailableBlobStore struct{}

func (unavailableBlobStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	return "", errors.New("blob store unavailable")
}

// fakeAuth stands in for AuthMiddleware so each request can pick the
// account it runs as.
func fakeAuth(accountID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("account_id", accountID)
		c.Next()
	}
}

func setupUnitRouter(db *gorm.DB, blobs storage.BlobStore, accountID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	ownershipSvc := services.NewOwnershipService(db)
	qrSvc := services.NewQRService(db, blobs, "https://console.example.com/order")
	unitCtrl := NewUnitController(db, ownershipSvc, qrSvc)

	admin := r.Group("/admin", fakeAuth(accountID))
	admin.GET("/units", unitCtrl.GetUnits)
	admin.GET("/units/:unit_id", unitCtrl.GetUnitByID)
	admin.POST("/units", unitCtrl.CreateUnit)
	admin.PATCH("/units/:unit_id", unitCtrl.UpdateUnit)
	admin.DELETE("/units/:unit_id", unitCtrl.DeleteUnit)
	admin.POST("/units/:unit_id/qrcode", unitCtrl.ProvisionQRCode)
	return r
}

func seedTwoOwnerFixtures(t *testing.T, db *gorm.DB) (models.Unit, models.Account, models.Account) {
	alice := models.Account{Name: "Alice", Email: "alice@example.com", Password: "x"}
	bob := models.Account{Name: "Bob", Email: "bob@example.com", Password: "x"}
	assert.NoError(t, db.Create(&alice).Error)
	assert.NoError(t, db.Create(&bob).Error)

	building := models.Building{OwnerAccountID: alice.ID, Name: "Sunrise Tower", Address: "1 Main St", Status: "active"}
	assert.NoError(t, db.Create(&building).Error)

	unit := models.Unit{BuildingID: building.ID, UnitNumber: "12A", Status: "available"}
	assert.NoError(t, db.Create(&unit).Error)

	return unit, alice, bob
}

func TestCreateUnitProvisionsQRCode(t *testing.T) {
	db := setupControllerDB(t, "unit_create_qr")
	unit, alice, _ := seedTwoOwnerFixtures(t, db)
	blobs := storage.NewMemoryStore("https://blobs.example.com/units")
	r := setupUnitRouter(db, blobs, alice.ID)

	payload := map[string]interface{}{
		"building_id": unit.BuildingID,
		"unit_number": "14C",
	}
	body, _ := json.Marshal(payload)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/admin/units", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "14C", data["unit_number"])
	assert.NotEmpty(t, data["qr_code_url"])
	assert.Equal(t, 1, blobs.Len())

	var stored models.Unit
	assert.NoError(t, db.Where("unit_number = ?", "14C").First(&stored).Error)
	assert.NotNil(t, stored.QRCodeURL)
}

func TestCreateUnitSurvivesQRFailure(t *testing.T) {
	db := setupControllerDB(t, "unit_create_qr_fail")
	unit, alice, _ := seedTwoOwnerFixtures(t, db)
	r := setupUnitRouter(db, unavailableBlobStore{}, alice.ID)

	payload := map[string]interface{}{
		"building_id": unit.BuildingID,
		"unit_number": "15D",
	}
	body, _ := json.Marshal(payload)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/admin/units", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var stored models.Unit
	assert.NoError(t, db.Where("unit_number = ?", "15D").First(&stored).Error)
	assert.Nil(t, stored.QRCodeURL)
}

func TestCreateUnitUnderForeignBuilding(t *testing.T) {
	db := setupControllerDB(t, "unit_create_foreign")
	unit, _, bob := seedTwoOwnerFixtures(t, db)
	r := setupUnitRouter(db, storage.NewMemoryStore("https://blobs.example.com/units"), bob.ID)

	payload := map[string]interface{}{
		"building_id": unit.BuildingID,
		"unit_number": "99Z",
	}
	body, _ := json.Marshal(payload)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/admin/units", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var count int64
	db.Model(&models.Unit{}).Where("unit_number = ?", "99Z").Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestUpdateUnitByNonOwner(t *testing.T) {
	db := setupControllerDB(t, "unit_update_foreign")
	unit, _, bob := seedTwoOwnerFixtures(t, db)
	r := setupUnitRouter(db, storage.NewMemoryStore("https://blobs.example.com/units"), bob.ID)

	body, _ := json.Marshal(map[string]interface{}{"unit_number": "HACKED"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PATCH", fmt.Sprintf("/admin/units/%d", unit.ID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, ErrNoPermission.Message, resp["message"])

	var stored models.Unit
	assert.NoError(t, db.First(&stored, unit.ID).Error)
	assert.Equal(t, "12A", stored.UnitNumber)
}

func TestUpdateUnitByOwner(t *testing.T) {
	db := setupControllerDB(t, "unit_update_owner")
	unit, alice, _ := seedTwoOwnerFixtures(t, db)
	r := setupUnitRouter(db, storage.NewMemoryStore("https://blobs.example.com/units"), alice.ID)

	body, _ := json.Marshal(map[string]interface{}{"status": "occupied"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PATCH", fmt.Sprintf("/admin/units/%d", unit.ID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.Unit
	assert.NoError(t, db.First(&stored, unit.ID).Error)
	assert.Equal(t, "occupied", stored.Status)
}

func TestGetUnitsFiltersToOwnedBuildings(t *testing.T) {
	db := setupControllerDB(t, "unit_list_scope")
	unit, alice, bob := seedTwoOwnerFixtures(t, db)

	bobBuilding := models.Building{OwnerAccountID: bob.ID, Name: "Harbor View", Address: "7 Dock Rd", Status: "active"}
	assert.NoError(t, db.Create(&bobBuilding).Error)
	assert.NoError(t, db.Create(&models.Unit{BuildingID: bobBuilding.ID, UnitNumber: "B1", Status: "available"}).Error)

	r := setupUnitRouter(db, storage.NewMemoryStore("https://blobs.example.com/units"), alice.ID)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/units", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].([]interface{})
	assert.Len(t, data, 1)
	assert.Equal(t, unit.UnitNumber, data[0].(map[string]interface{})["unit_number"])

	// Asking for the other owner's building yields an empty list, not 403.
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", fmt.Sprintf("/admin/units?building_id=%d", bobBuilding.ID), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp["data"].([]interface{}), 0)
}

func TestProvisionQRCodeEndpoint(t *testing.T) {
	db := setupControllerDB(t, "unit_provision_endpoint")
	unit, alice, _ := seedTwoOwnerFixtures(t, db)
	blobs := storage.NewMemoryStore("https://blobs.example.com/units")
	r := setupUnitRouter(db, blobs, alice.ID)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", fmt.Sprintf("/admin/units/%d/qrcode", unit.ID), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.NotEmpty(t, data["qr_code_url"])
	assert.Equal(t, 1, blobs.Len())

	var stored models.Unit
	assert.NoError(t, db.First(&stored, unit.ID).Error)
	assert.NotNil(t, stored.QRCodeURL)
}
