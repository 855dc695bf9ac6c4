// internal/database/seed.go
package database

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/certview/internal/models"
	"github.com/javajoker/certview/internal/utils"
)

// ObjectURLFunc maps a storage key to the public URL a document is served from.
type ObjectURLFunc func(key string) string

// DemoProducts builds the development data set: one product with every
// document, one with the declaration only, one with nothing issued.
func DemoProducts(objectURL ObjectURLFunc) ([]models.CertifiedProduct, error) {
	certified := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)
	verified := time.Date(2024, 3, 20, 9, 30, 0, 0, time.UTC)

	fixtures := []struct {
		name         string
		manufacturer string
		declaration  bool
		certificate  bool
		qr           bool
	}{
		{"Smart Thermostat T300", "Nordwind Controls", true, true, true},
		{"Industrial Air Purifier AP-9", "Clearline Systems", true, false, false},
		{"USB-C Charger 65W", "Voltaic Labs", false, false, false},
	}

	products := make([]models.CertifiedProduct, 0, len(fixtures))
	for _, f := range fixtures {
		publicID, err := utils.GeneratePublicID()
		if err != nil {
			return nil, fmt.Errorf("failed to generate public id: %w", err)
		}

		product := models.CertifiedProduct{
			PublicID:          publicID,
			Name:              f.name,
			Manufacturer:      f.manufacturer,
			CertificationDate: certified,
			VerifiedAt:        verified,
			Status:            models.ProductStatusActive,
			InternalNotes:     "Demo record",
		}
		if f.declaration {
			product.DeclarationDocumentURL = models.StringPtr(objectURL(fmt.Sprintf("products/%s/declaration.pdf", publicID)))
		}
		if f.certificate {
			product.CertificateDocumentURL = models.StringPtr(objectURL(fmt.Sprintf("products/%s/certificate.pdf", publicID)))
		}
		if f.qr {
			product.QRCodeURL = models.StringPtr(objectURL(fmt.Sprintf("products/%s/qr.png", publicID)))
		}

		products = append(products, product)
	}

	return products, nil
}

// SeedDemoData inserts the demo products into an empty table.
func SeedDemoData(db *gorm.DB, objectURL ObjectURLFunc, log *logrus.Logger) error {
	var count int64
	if err := db.Model(&models.CertifiedProduct{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		log.WithField("products", count).Info("Skipping demo data, products already present")
		return nil
	}

	products, err := DemoProducts(objectURL)
	if err != nil {
		return err
	}

	err = WithTransaction(db, func(tx *gorm.DB) error {
		for i := range products {
			if err := tx.Create(&products[i]).Error; err != nil {
				return fmt.Errorf("failed to create demo product %s: %w", products[i].Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, p := range products {
		log.WithFields(logrus.Fields{
			"public_id": p.PublicID,
			"name":      p.Name,
		}).Info("Demo product created")
	}
	return nil
}
