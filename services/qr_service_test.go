package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/danuarta/property-console/models"
	"github.com/danuarta/property-console/storage"
)

type failingBlobStore struct{}

func (failingBlobStore) Upload(context.Context, string, []byte, string) (string, error) {
	return "", errors.New("blob store unreachable")
}

func TestProvisionUploadsAndLinksURL(t *testing.T) {
	db := setupTestDB(t, "qr_provision")
	unit, building := seedUnitAndBuilding(t, db)
	blobs := storage.NewMemoryStore("https://cdn.example.com/qrcodes")
	svc := NewQRService(db, blobs, "https://console.example.com/order")

	url, err := svc.Provision(context.Background(), unit.ID)
	assert.NoError(t, err)

	wantKey := fmt.Sprintf("units/%d/%d.png", building.ID, unit.ID)
	assert.Equal(t, "https://cdn.example.com/qrcodes/"+wantKey, url)

	png, ok := blobs.Get(wantKey)
	assert.True(t, ok)
	assert.NotEmpty(t, png)
	// PNG signature, the artifact really is an image.
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])

	var stored models.Unit
	assert.NoError(t, db.First(&stored, unit.ID).Error)
	assert.NotNil(t, stored.QRCodeURL)
	assert.Equal(t, url, *stored.QRCodeURL)
}

func TestProvisionIsIdempotent(t *testing.T) {
	db := setupTestDB(t, "qr_idempotent")
	unit, _ := seedUnitAndBuilding(t, db)
	blobs := storage.NewMemoryStore("https://cdn.example.com/qrcodes")
	svc := NewQRService(db, blobs, "https://console.example.com/order")

	first, err := svc.Provision(context.Background(), unit.ID)
	assert.NoError(t, err)
	second, err := svc.Provision(context.Background(), unit.ID)
	assert.NoError(t, err)

	// Re-provisioning overwrites, it does not accumulate artifacts.
	assert.Equal(t, first, second)
	assert.Equal(t, 1, blobs.Len())

	var stored models.Unit
	assert.NoError(t, db.First(&stored, unit.ID).Error)
	assert.Equal(t, second, *stored.QRCodeURL)
}

func TestProvisionUnknownUnit(t *testing.T) {
	db := setupTestDB(t, "qr_unknown")
	blobs := storage.NewMemoryStore("https://cdn.example.com/qrcodes")
	svc := NewQRService(db, blobs, "https://console.example.com/order")

	_, err := svc.Provision(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProvisionUploadFailureLeavesUnitWithoutCode(t *testing.T) {
	db := setupTestDB(t, "qr_upload_fail")
	unit, _ := seedUnitAndBuilding(t, db)
	svc := NewQRService(db, failingBlobStore{}, "https://console.example.com/order")

	_, err := svc.Provision(context.Background(), unit.ID)
	assert.ErrorIs(t, err, ErrDependency)

	var stored models.Unit
	assert.NoError(t, db.First(&stored, unit.ID).Error)
	assert.Nil(t, stored.QRCodeURL)
}

func TestDeepLinkFormat(t *testing.T) {
	svc := NewQRService(nil, nil, "https://console.example.com/order/")

	// Trailing slash on the base is normalized; the unit id is the only
	// required parameter on the guest page.
	assert.Equal(t, "https://console.example.com/order?unit=42", svc.DeepLink(42))
}
