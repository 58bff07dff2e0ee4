package config

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Config holds everything the server reads from the environment besides
// the database DSN.
type Config struct {
	Port string
	// BaseOrderURL is the guest order page a QR deep link points at,
	// e.g. https://console.example.com/order.
	BaseOrderURL string
	Blob         BlobConfig
}

type BlobConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	PublicBaseURL string
	UseSSL        bool
}

func Load() Config {
	return Config{
		Port:         getEnv("PORT", "8080"),
		BaseOrderURL: getEnv("BASE_ORDER_URL", "http://localhost:8080/order"),
		Blob: BlobConfig{
			Endpoint:      os.Getenv("BLOB_ENDPOINT"),
			AccessKey:     os.Getenv("BLOB_ACCESS_KEY"),
			SecretKey:     os.Getenv("BLOB_SECRET_KEY"),
			Bucket:        getEnv("BLOB_BUCKET", "qrcodes"),
			PublicBaseURL: os.Getenv("BLOB_PUBLIC_BASE_URL"),
			UseSSL:        os.Getenv("BLOB_USE_SSL") == "true",
		},
	}
}

// InitDB opens the MySQL connection from DB_* environment variables.
func InitDB() (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		getEnv("DB_USER", "root"),
		os.Getenv("DB_PASSWORD"),
		getEnv("DB_HOST", "127.0.0.1"),
		getEnv("DB_PORT", "3306"),
		getEnv("DB_NAME", "property_console"),
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return db, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
