package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/danuarta/property-console/config"
	"github.com/danuarta/property-console/models"
	"github.com/danuarta/property-console/router"
	"github.com/danuarta/property-console/storage"
	"github.com/danuarta/property-console/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// TestEndToEndIntegration walks the main flow:
// 0. Seed an owner account, login -> token
// 1. Owner creates a building and a unit (QR code provisioned inline)
// 2. Guest loads the unit and the catalog through the deep-link surface
// 3. Guest places an order
// 4. Owner sees the order, moves it to completed
// 5. Dashboard stats reflect the completed revenue
func TestEndToEndIntegration(t *testing.T) {
	db := setupIntegrationDB()
	blobs := storage.NewMemoryStore("https://blobs.example.com")
	cfg := config.Config{Port: "8080", BaseOrderURL: "https://console.example.com/order"}
	r := router.SetupRouter(db, blobs, cfg)

	token := loginStep(t, r)

	buildingID := createBuildingStep(t, r, token)
	unitID := createUnitStep(t, r, token, buildingID)
	assert.Equal(t, 1, blobs.Len())

	guestBrowseStep(t, r, unitID, buildingID)
	orderID := guestOrderStep(t, r, unitID)

	ownerOrdersStep(t, r, token, orderID)
	completeOrderStep(t, r, token, orderID)
	dashboardStep(t, r, token)
}

func setupIntegrationDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:integration?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open in-memory sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&models.Account{},
		&models.Building{},
		&models.Unit{},
		&models.MenuItem{},
		&models.Service{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	db.Create(&models.Account{
		Name:     "Test Owner",
		Email:    "owner@example.com",
		Password: string(hashed),
	})

	// Global catalog entries every building serves
	db.Create(&models.MenuItem{Name: "Coffee", Price: 3.50, Category: "drink", IsAvailable: true})
	db.Create(&models.Service{Name: "Massage", Price: 85.00, Category: "spa", DurationMinutes: 60, IsAvailable: true})

	return db
}

func loginStep(t *testing.T, r *gin.Engine) string {
	body, _ := json.Marshal(map[string]string{
		"email":    "owner@example.com",
		"password": "secret123",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	token := resp["data"].(map[string]interface{})["token"].(string)
	assert.NotEmpty(t, token)
	return token
}

func createBuildingStep(t *testing.T, r *gin.Engine, token string) uint {
	body, _ := json.Marshal(map[string]interface{}{
		"name":    "Sunrise Tower",
		"address": "1 Main St",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/buildings", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return uint(resp["data"].(map[string]interface{})["id"].(float64))
}

func createUnitStep(t *testing.T, r *gin.Engine, token string, buildingID uint) uint {
	body, _ := json.Marshal(map[string]interface{}{
		"building_id": buildingID,
		"unit_number": "12A",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/units", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.NotEmpty(t, data["qr_code_url"])
	return uint(data["id"].(float64))
}

func guestBrowseStep(t *testing.T, r *gin.Engine, unitID, buildingID uint) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/guest/units/%d", unitID), nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/guest/menu-items?building_id=%d", buildingID), nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp["data"].([]interface{}), 1)
}

func guestOrderStep(t *testing.T, r *gin.Engine, unitID uint) uint {
	body, _ := json.Marshal(map[string]interface{}{
		"unit_id": unitID,
		"items": []map[string]interface{}{
			{"item_type": "menu", "item_id": 1, "name": "Coffee", "price": 3.50, "quantity": 2},
			{"item_type": "service", "item_id": 1, "name": "Massage", "price": 85.00, "quantity": 1},
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/guest/orders", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.InDelta(t, 92.00, data["total_amount"].(float64), 0.001)
	assert.Equal(t, "pending", data["status"])
	return uint(data["id"].(float64))
}

func ownerOrdersStep(t *testing.T, r *gin.Engine, token string, orderID uint) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	orders := resp["data"].([]interface{})
	assert.Len(t, orders, 1)

	order := orders[0].(map[string]interface{})
	assert.Equal(t, float64(orderID), order["id"])
	assert.Equal(t, "12A", order["unit_number"])
	assert.Equal(t, "Sunrise Tower", order["building_name"])
	assert.Len(t, order["order_items"].([]interface{}), 2)
}

func completeOrderStep(t *testing.T, r *gin.Engine, token string, orderID uint) {
	body, _ := json.Marshal(map[string]string{"status": "completed"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/admin/orders/%d/status", orderID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "completed", resp["data"].(map[string]interface{})["status"])
}

func dashboardStep(t *testing.T, r *gin.Engine, token string) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard/stats", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["buildings"])
	assert.InDelta(t, 92.00, data["revenue"].(float64), 0.001)
}
