package catalog

import (
	"context"
	"errors"

	"tobaccoform/internal/models"
)

// ErrDuplicate is returned by a Store when an identical record exists.
var ErrDuplicate = errors.New("tobacco already exists")

// Store persists catalog records.
type Store interface {
	InsertTobacco(ctx context.Context, record models.TobaccoRecord) error
	// ListBrands returns each brand once, in the order it was first added.
	ListBrands(ctx context.Context) ([]models.Brand, error)
	ListTobacco(ctx context.Context) ([]models.TobaccoRecord, error)
	TobaccoByBrand(ctx context.Context, brand models.Brand) ([]models.TobaccoRecord, error)
}
