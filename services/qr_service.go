package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/danuarta/property-console/models"
	"github.com/danuarta/property-console/storage"
)

const qrImageSize = 300

// QRService renders the guest deep link for a unit into a scannable PNG,
// uploads it to blob storage and links the public URL back onto the unit.
// Provisioning is idempotent: re-running it for the same unit overwrites
// the previous artifact and URL.
type QRService struct {
	DB           *gorm.DB
	Blobs        storage.BlobStore
	BaseOrderURL string
}

func NewQRService(db *gorm.DB, blobs storage.BlobStore, baseOrderURL string) *QRService {
	return &QRService{DB: db, Blobs: blobs, BaseOrderURL: baseOrderURL}
}

// DeepLink builds the canonical order-page URL a QR code encodes. The
// guest page needs nothing but the unit query parameter.
func (s *QRService) DeepLink(unitID uint) string {
	return fmt.Sprintf("%s?unit=%d", strings.TrimRight(s.BaseOrderURL, "/"), unitID)
}

// ObjectKey is the blob path for a unit's QR artifact, keyed by building
// and unit so re-provisioning lands on the same object.
func ObjectKey(buildingID, unitID uint) string {
	return fmt.Sprintf("units/%d/%d.png", buildingID, unitID)
}

// Provision generates, uploads and links the QR code for a unit and
// returns the public artifact URL. Callers on the unit-creation path must
// treat a failure here as non-fatal: a unit without a code is still
// usable.
func (s *QRService) Provision(ctx context.Context, unitID uint) (string, error) {
	var unit models.Unit
	if err := s.DB.First(&unit, unitID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: load unit: %v", ErrDependency, err)
	}

	png, err := qrcode.Encode(s.DeepLink(unit.ID), qrcode.Medium, qrImageSize)
	if err != nil {
		return "", fmt.Errorf("%w: encode qr image: %v", ErrDependency, err)
	}

	url, err := s.Blobs.Upload(ctx, ObjectKey(unit.BuildingID, unit.ID), png, "image/png")
	if err != nil {
		return "", fmt.Errorf("%w: upload qr image: %v", ErrDependency, err)
	}

	// If this update fails the uploaded artifact is left orphaned; that
	// is accepted collateral, there is no cleanup pass.
	if err := s.DB.Model(&models.Unit{}).Where("id = ?", unit.ID).
		Update("qr_code_url", url).Error; err != nil {
		return "", fmt.Errorf("%w: link qr url to unit: %v", ErrDependency, err)
	}

	return url, nil
}
