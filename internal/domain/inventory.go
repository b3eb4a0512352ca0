package domain

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Metadata key conventions on the provider product record.
const (
	// MetadataKeySizes declares which sizes exist, comma-separated.
	MetadataKeySizes = "sizes"

	// stockKeyPrefix prefixes the per-size stock count keys.
	stockKeyPrefix = "stock_"
)

// LowStockThreshold is the level at or below which a size counts as low stock.
const LowStockThreshold = 5

// StockKey returns the metadata key holding the stock count for a size.
func StockKey(size string) string {
	return stockKeyPrefix + size
}

// ParseSizes splits the comma-separated sizes declaration, trimming
// whitespace and dropping empty entries.
func ParseSizes(declaration string) []string {
	parts := strings.Split(declaration, ",")
	sizes := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			sizes = append(sizes, s)
		}
	}
	return sizes
}

// DecodeInventory reads the per-size stock table out of a flat metadata map.
// Each declared size is looked up under its stock_<size> key; a missing or
// non-numeric value decodes to 0 and negative values clamp to 0. When no
// declared size has a stock key at all the product is untracked and the
// result is nil; callers must not conflate nil with all-zero.
func DecodeInventory(metadata map[string]string, declaredSizes []string) map[string]int {
	tracked := false
	for _, size := range declaredSizes {
		if _, ok := metadata[StockKey(size)]; ok {
			tracked = true
			break
		}
	}
	if !tracked {
		return nil
	}

	inv := make(map[string]int, len(declaredSizes))
	for _, size := range declaredSizes {
		inv[size] = parseStock(metadata[StockKey(size)])
	}
	return inv
}

// parseStock parses a stock value; garbage and negatives both become 0.
func parseStock(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// EncodeStock returns a copy of the metadata map with only the stock key for
// the given size replaced. Every unrelated key passes through unchanged; the
// provider update must receive the full map so nothing else is erased.
func EncodeStock(metadata map[string]string, size string, newStock int) map[string]string {
	out := make(map[string]string, len(metadata)+1)
	for k, v := range metadata {
		out[k] = v
	}
	out[StockKey(size)] = strconv.Itoa(newStock)
	return out
}

// DecrementStock applies a purchase of qty units to the current stock level,
// flooring at zero. Over-decrement is clamped, not rejected: the shop would
// rather record zero than fail the sale that already happened.
func DecrementStock(current, qty int) int {
	next := current - qty
	if next < 0 {
		return 0
	}
	return next
}

// PurchaseItem is one (product, size, quantity) tuple decoded from checkout
// session metadata.
type PurchaseItem struct {
	ProductID string
	Size      string
	Quantity  int
}

// itemKeyPattern matches the indexed purchase-item metadata convention:
// item_<n>_product_id, item_<n>_size, item_<n>_quantity.
var itemKeyPattern = regexp.MustCompile(`^item_(\d+)_(.+)$`)

// ParsePurchaseItems assembles purchase items from a flat metadata map by
// grouping item_<n>_* keys by index. Items missing any of the three required
// fields, or with a non-positive or non-numeric quantity, are dropped whole;
// a bad item never contributes a partial tuple. The result is ordered by
// index.
func ParsePurchaseItems(metadata map[string]string) []PurchaseItem {
	type rawItem struct {
		productID string
		size      string
		quantity  string
	}
	raw := make(map[int]*rawItem)

	for key, value := range metadata {
		m := itemKeyPattern.FindStringSubmatch(key)
		if m == nil {
			continue
		}
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		item := raw[idx]
		if item == nil {
			item = &rawItem{}
			raw[idx] = item
		}
		switch m[2] {
		case "product_id":
			item.productID = value
		case "size":
			item.size = value
		case "quantity":
			item.quantity = value
		}
	}

	indices := make([]int, 0, len(raw))
	for idx := range raw {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	items := make([]PurchaseItem, 0, len(raw))
	for _, idx := range indices {
		r := raw[idx]
		if r.productID == "" || r.size == "" || r.quantity == "" {
			continue
		}
		qty, err := strconv.Atoi(r.quantity)
		if err != nil || qty <= 0 {
			continue
		}
		items = append(items, PurchaseItem{
			ProductID: r.productID,
			Size:      r.size,
			Quantity:  qty,
		})
	}
	return items
}

// PurchaseItemMetadata flattens purchase items back into the indexed
// metadata convention for attaching to a checkout session.
func PurchaseItemMetadata(items []PurchaseItem) map[string]string {
	metadata := make(map[string]string, len(items)*3)
	for i, item := range items {
		prefix := fmt.Sprintf("item_%d_", i)
		metadata[prefix+"product_id"] = item.ProductID
		metadata[prefix+"size"] = item.Size
		metadata[prefix+"quantity"] = strconv.Itoa(item.Quantity)
	}
	return metadata
}
