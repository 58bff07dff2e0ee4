package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/danuarta/property-console/config"
	"github.com/danuarta/property-console/middlewares"
	"github.com/danuarta/property-console/models"
	"github.com/danuarta/property-console/router"
	"github.com/danuarta/property-console/storage"
	"github.com/danuarta/property-console/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()

	cfg := config.Load()

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	blobs, err := initBlobStore(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to blob store: %v", err)
	}

	rateLimiter := middlewares.NewRateLimiter(50, 1)

	r := router.SetupRouter(db, blobs, cfg)
	r.Use(rateLimiter.RateLimit())

	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

// initBlobStore picks the S3-compatible store when an endpoint is
// configured, otherwise the in-memory store so local development works
// without object storage (QR URLs will not survive a restart).
func initBlobStore(cfg config.Config) (storage.BlobStore, error) {
	if cfg.Blob.Endpoint == "" {
		utils.InfoLogger.Println("BLOB_ENDPOINT not set, using in-memory blob store")
		return storage.NewMemoryStore("http://localhost:" + cfg.Port + "/blobs"), nil
	}
	return storage.NewMinioStore(cfg.Blob)
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.Account{},
		&models.Building{},
		&models.Unit{},
		&models.MenuItem{},
		&models.Service{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
