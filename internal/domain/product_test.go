package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortSizes_CanonicalOrder(t *testing.T) {
	got := SortSizes([]string{"2XL", "S", "XL", "M", "XS", "L"})
	assert.Equal(t, []string{"XS", "S", "M", "L", "XL", "2XL"}, got)
}

func TestSortSizes_UnknownSizesSortLastInEncounterOrder(t *testing.T) {
	got := SortSizes([]string{"OSFA", "M", "Tall", "S"})
	assert.Equal(t, []string{"S", "M", "OSFA", "Tall"}, got)
}

func TestSortSizes_DoesNotMutateInput(t *testing.T) {
	in := []string{"XL", "S"}
	_ = SortSizes(in)
	assert.Equal(t, []string{"XL", "S"}, in)
}

func TestSortSizes_Empty(t *testing.T) {
	assert.Empty(t, SortSizes(nil))
}

func TestProduct_JSONOmitsNilInventory(t *testing.T) {
	p := Product{ID: "prod_1", Title: "Tee", Sizes: []string{"S"}}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))

	// Untracked products must not serialize an inventory field at all;
	// the frontend distinguishes "untracked" from "all zero" by absence.
	_, present := out["inventory"]
	assert.False(t, present)
}

func TestProduct_JSONKeepsZeroStockInventory(t *testing.T) {
	p := Product{ID: "prod_1", Title: "Tee", Inventory: map[string]int{"S": 0}}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))

	inv, present := out["inventory"]
	require.True(t, present)
	assert.Equal(t, map[string]any{"S": float64(0)}, inv)
}
