package form

import (
	"context"

	"tobaccoform/internal/models"
)

// BrandSelect is the view binding for the known-brand selector.
type BrandSelect interface {
	SetOptions(brands []models.Brand)
	Selected() models.Brand
	SetVisible(visible bool)
}

// BrandInput is the view binding for the free-text new-brand field.
type BrandInput interface {
	Value() string
	SetValue(value string)
	SetVisible(visible bool)
	Focus()
}

// Fields exposes the taste and flavour controls.
type Fields interface {
	Taste() models.Taste
	Flavour() string
}

// Notifier shows the server's answer to the operator and blocks further
// input until it is dismissed.
type Notifier interface {
	Notify(text string)
}

type Bindings struct {
	Select   BrandSelect
	Input    BrandInput
	Fields   Fields
	Notifier Notifier
}

type BrandLister interface {
	Brands(ctx context.Context) ([]models.Brand, error)
}

type RecordCreator interface {
	CreateTobacco(ctx context.Context, record models.TobaccoRecord) (string, error)
}
