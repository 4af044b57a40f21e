package form

import (
	"context"

	"tobaccoform/internal/models"

	"go.uber.org/zap"
)

// BrandSource loads the known brands into a selector.
type BrandSource struct {
	lister BrandLister
	logger *zap.Logger
}

func NewBrandSource(lister BrandLister, logger *zap.Logger) *BrandSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BrandSource{lister: lister, logger: logger}
}

// Fetch returns the server's brand list. Failures are logged and yield an
// empty list; the brand list never blocks free-text entry.
func (s *BrandSource) Fetch(ctx context.Context) []models.Brand {
	brands, err := s.lister.Brands(ctx)
	if err != nil {
		s.logger.Warn("Failed to load brands", zap.Error(err))
		return nil
	}
	s.logger.Debug("Loaded brands", zap.Int("count", len(brands)))
	return brands
}

// Apply replaces every option of sel with brands, keeping server order.
func (s *BrandSource) Apply(sel BrandSelect, brands []models.Brand) {
	options := make([]models.Brand, len(brands))
	copy(options, brands)
	sel.SetOptions(options)
}

// Load fetches and applies in one step.
func (s *BrandSource) Load(ctx context.Context, sel BrandSelect) {
	s.Apply(sel, s.Fetch(ctx))
}
