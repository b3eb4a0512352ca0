// Package report builds point-in-time inventory snapshots from the catalog
// and renders them for the console or for file export.
package report

import (
	"fmt"
	"time"

	"github.com/inkwell/storefront/internal/domain"
)

// Stock status labels used in rendered output.
const (
	StatusOK  = "OK"
	StatusLow = "LOW"
	StatusOut = "OUT"
)

// SizeStock is one size's stock level within a product.
type SizeStock struct {
	Size  string `json:"size"`
	Stock int    `json:"stock"`
}

// Status classifies a stock level.
func (s SizeStock) Status() string {
	switch {
	case s.Stock == 0:
		return StatusOut
	case s.Stock <= domain.LowStockThreshold:
		return StatusLow
	default:
		return StatusOK
	}
}

// ProductInventory is one product's stock table within a snapshot.
type ProductInventory struct {
	ProductID  string      `json:"productId"`
	Name       string      `json:"name"`
	Price      float64     `json:"price"`
	Sizes      []SizeStock `json:"sizes"`
	TotalStock int         `json:"totalStock"`
}

// Summary aggregates the whole snapshot.
type Summary struct {
	TotalProducts   int     `json:"totalProducts"`
	TotalStock      int     `json:"totalStock"`
	LowStockCount   int     `json:"lowStockCount"`
	OutOfStockCount int     `json:"outOfStockCount"`
	InventoryValue  float64 `json:"inventoryValue"`
}

// Snapshot is a complete inventory report at a point in time.
type Snapshot struct {
	GeneratedAt time.Time          `json:"generatedAt"`
	Summary     Summary            `json:"summary"`
	Products    []ProductInventory `json:"products"`
	Warnings    []string           `json:"warnings,omitempty"`
}

// Build aggregates per-size stock across the catalog. Products without a
// sizes declaration cannot carry a stock table and are reported as warnings;
// a tracked product's missing stock keys count as zero.
func Build(products []domain.Product, now time.Time) *Snapshot {
	snap := &Snapshot{GeneratedAt: now.UTC()}

	for _, p := range products {
		if len(p.Sizes) == 0 {
			snap.Warnings = append(snap.Warnings,
				fmt.Sprintf("product %q (%s) has no sizes metadata; skipped", p.Title, p.ID))
			continue
		}

		pi := ProductInventory{
			ProductID: p.ID,
			Name:      p.Title,
			Price:     p.Price,
		}
		for _, size := range domain.SortSizes(p.Sizes) {
			stock := p.Inventory[size]
			pi.Sizes = append(pi.Sizes, SizeStock{Size: size, Stock: stock})
			pi.TotalStock += stock

			switch {
			case stock == 0:
				snap.Summary.OutOfStockCount++
			case stock <= domain.LowStockThreshold:
				snap.Summary.LowStockCount++
			}
		}

		snap.Summary.TotalProducts++
		snap.Summary.TotalStock += pi.TotalStock
		snap.Summary.InventoryValue += p.Price * float64(pi.TotalStock)
		snap.Products = append(snap.Products, pi)
	}

	return snap
}
