package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTastes_FixedOrder(t *testing.T) {
	got := Tastes()
	assert.Equal(t, []Taste{"sweet", "sour", "drink", "herbs", "dessert", "no-specific-taste"}, got)

	// Callers must not be able to mutate the shared set.
	got[0] = "bitter"
	assert.Equal(t, TasteSweet, Tastes()[0])
}

func TestParseTaste(t *testing.T) {
	t.Run("exact", func(t *testing.T) {
		taste, err := ParseTaste("herbs")
		require.NoError(t, err)
		assert.Equal(t, TasteHerbs, taste)
	})

	t.Run("loose spelling", func(t *testing.T) {
		taste, err := ParseTaste("  No Specific_Taste ")
		require.NoError(t, err)
		assert.Equal(t, TasteNoSpecificTaste, taste)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := ParseTaste("bitter")
		assert.Error(t, err)
	})
}

func TestTobaccoRecord_JSONShape(t *testing.T) {
	data, err := json.Marshal(TobaccoRecord{Brand: "Fumari", Taste: TasteSweet, Flavour: "mint"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"brand":"Fumari","taste":"sweet","flavour":"mint"}`, string(data))
}
