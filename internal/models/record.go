package models

import (
	"fmt"
	"strings"
)

// Brand identifies a tobacco product line.
type Brand = string

type Taste string

const (
	TasteSweet           Taste = "sweet"
	TasteSour            Taste = "sour"
	TasteDrink           Taste = "drink"
	TasteHerbs           Taste = "herbs"
	TasteDessert         Taste = "dessert"
	TasteNoSpecificTaste Taste = "no-specific-taste"
)

var tastes = []Taste{
	TasteSweet,
	TasteSour,
	TasteDrink,
	TasteHerbs,
	TasteDessert,
	TasteNoSpecificTaste,
}

// Tastes returns the fixed set of taste categories in display order.
func Tastes() []Taste {
	out := make([]Taste, len(tastes))
	copy(out, tastes)
	return out
}

func (t Taste) Valid() bool {
	for _, known := range tastes {
		if t == known {
			return true
		}
	}
	return false
}

// ParseTaste accepts a taste name case-insensitively. Spaces and underscores
// are read as dashes so "no specific taste" from a spreadsheet still matches.
func ParseTaste(s string) (Taste, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer(" ", "-", "_", "-").Replace(normalized)
	t := Taste(normalized)
	if !t.Valid() {
		return "", fmt.Errorf("unknown taste %q", s)
	}
	return t, nil
}

// TobaccoRecord is the unit submitted to the catalog. Identity is assigned by
// the backend.
type TobaccoRecord struct {
	Brand   Brand  `json:"brand" csv:"brand" bson:"brand"`
	Taste   Taste  `json:"taste" csv:"taste" bson:"taste"`
	Flavour string `json:"flavour" csv:"flavour" bson:"flavour"`
}
