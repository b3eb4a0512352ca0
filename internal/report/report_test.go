package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell/storefront/internal/domain"
)

var reportTime = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func sampleCatalog() []domain.Product {
	return []domain.Product{
		{
			ID:        "prod_tee",
			Title:     "Gallery Print Tee",
			Price:     29.99,
			Sizes:     []string{"M", "S"},
			Inventory: map[string]int{"S": 0, "M": 3},
		},
		{
			ID:    "prod_print",
			Title: "Dawn Print",
			Price: 45,
			// No sizes declared; cannot carry a stock table.
		},
	}
}

func TestBuild_Aggregates(t *testing.T) {
	snap := Build(sampleCatalog(), reportTime)

	assert.Equal(t, 1, snap.Summary.TotalProducts)
	assert.Equal(t, 3, snap.Summary.TotalStock)
	assert.Equal(t, 1, snap.Summary.OutOfStockCount, "S at zero")
	assert.Equal(t, 1, snap.Summary.LowStockCount, "M at 3 is at or under the threshold")
	assert.InDelta(t, 89.97, snap.Summary.InventoryValue, 0.001)

	require.Len(t, snap.Products, 1)
	p := snap.Products[0]
	assert.Equal(t, "prod_tee", p.ProductID)
	assert.Equal(t, 3, p.TotalStock)
	// Sizes come out in canonical order regardless of declaration order.
	require.Len(t, p.Sizes, 2)
	assert.Equal(t, SizeStock{Size: "S", Stock: 0}, p.Sizes[0])
	assert.Equal(t, SizeStock{Size: "M", Stock: 3}, p.Sizes[1])

	require.Len(t, snap.Warnings, 1)
	assert.Contains(t, snap.Warnings[0], "Dawn Print")
}

func TestBuild_UntrackedProductReportsZeros(t *testing.T) {
	snap := Build([]domain.Product{
		{ID: "prod_1", Title: "Tee", Price: 20, Sizes: []string{"S", "M"}},
	}, reportTime)

	require.Len(t, snap.Products, 1)
	assert.Equal(t, 0, snap.Products[0].TotalStock)
	assert.Equal(t, 2, snap.Summary.OutOfStockCount)
	assert.Zero(t, snap.Summary.InventoryValue)
}

func TestBuild_EmptyCatalog(t *testing.T) {
	snap := Build(nil, reportTime)

	assert.Zero(t, snap.Summary.TotalProducts)
	assert.Empty(t, snap.Products)
	assert.Empty(t, snap.Warnings)
}

func TestSizeStock_Status(t *testing.T) {
	assert.Equal(t, StatusOut, SizeStock{Stock: 0}.Status())
	assert.Equal(t, StatusLow, SizeStock{Stock: 1}.Status())
	assert.Equal(t, StatusLow, SizeStock{Stock: domain.LowStockThreshold}.Status())
	assert.Equal(t, StatusOK, SizeStock{Stock: domain.LowStockThreshold + 1}.Status())
}

func TestRenderConsole(t *testing.T) {
	snap := Build(sampleCatalog(), reportTime)

	var buf bytes.Buffer
	require.NoError(t, RenderConsole(&buf, snap))
	out := buf.String()

	assert.Contains(t, out, "Gallery Print Tee")
	assert.Contains(t, out, "OUT")
	assert.Contains(t, out, "LOW")
	assert.Contains(t, out, "Out of stock: 1")
	assert.Contains(t, out, "warning:")
}

func TestWriteJSONFile(t *testing.T) {
	dir := t.TempDir()
	snap := Build(sampleCatalog(), reportTime)

	path, err := WriteJSONFile(snap, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "inventory-2026-08-30.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Snapshot
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, snap.Summary, decoded.Summary)
	assert.Len(t, decoded.Products, 1)
}

func TestWriteCSVFile(t *testing.T) {
	dir := t.TempDir()
	snap := Build(sampleCatalog(), reportTime)

	path, err := WriteCSVFile(snap, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "inventory-2026-08-30.csv"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3, "header plus one row per size")
	assert.Equal(t, []string{"productId", "name", "price", "size", "stock", "status"}, rows[0])
	assert.Equal(t, []string{"prod_tee", "Gallery Print Tee", "29.99", "S", "0", "OUT"}, rows[1])
	assert.Equal(t, []string{"prod_tee", "Gallery Print Tee", "29.99", "M", "3", "LOW"}, rows[2])
}
