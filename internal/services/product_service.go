// internal/services/product_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/javajoker/certview/internal/models"
)

// ProductLookup finds at most one public product by its public identifier.
// Implementations return ErrRecordNotFound when no row matches.
type ProductLookup interface {
	FindByPublicID(ctx context.Context, publicID string) (*models.PublicProduct, error)
}

// ProductService reads from the public projection only, never from the
// underlying certified_products table.
type ProductService struct {
	db   *gorm.DB
	view string
}

func NewProductService(db *gorm.DB, view string) *ProductService {
	return &ProductService{
		db:   db,
		view: view,
	}
}

func (s *ProductService) FindByPublicID(ctx context.Context, publicID string) (*models.PublicProduct, error) {
	var product models.PublicProduct
	if err := s.db.WithContext(ctx).Table(s.view).
		Where("public_id = ?", publicID).
		Take(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &product, nil
}
