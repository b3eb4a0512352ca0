package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"
)

// RenderConsole writes a human-readable report.
func RenderConsole(w io.Writer, snap *Snapshot) error {
	fmt.Fprintf(w, "Inventory report - %s\n\n", snap.GeneratedAt.Format("2006-01-02 15:04 MST"))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, p := range snap.Products {
		fmt.Fprintf(tw, "%s\t$%.2f\t\n", p.Name, p.Price)
		for _, s := range p.Sizes {
			status := ""
			if st := s.Status(); st != StatusOK {
				status = st
			}
			fmt.Fprintf(tw, "  %s\t%d\t%s\n", s.Size, s.Stock, status)
		}
		fmt.Fprintf(tw, "  total\t%d\t\n", p.TotalStock)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nProducts: %d  Units: %d  Low stock: %d  Out of stock: %d  Value: $%.2f\n",
		snap.Summary.TotalProducts,
		snap.Summary.TotalStock,
		snap.Summary.LowStockCount,
		snap.Summary.OutOfStockCount,
		snap.Summary.InventoryValue,
	)

	for _, warning := range snap.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
	return nil
}

// WriteJSONFile writes the snapshot as indented JSON to
// inventory-<date>.json in dir and returns the file path.
func WriteJSONFile(snap *Snapshot, dir string) (string, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("inventory-%s.json", snap.GeneratedAt.Format("2006-01-02")))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// WriteCSVFile writes the snapshot as one row per (product, size) to
// inventory-<date>.csv in dir and returns the file path.
func WriteCSVFile(snap *Snapshot, dir string) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("inventory-%s.csv", snap.GeneratedAt.Format("2006-01-02")))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}
	defer f.Close()

	if err := writeCSV(f, snap); err != nil {
		return "", err
	}
	return path, nil
}

func writeCSV(w io.Writer, snap *Snapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"productId", "name", "price", "size", "stock", "status"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, p := range snap.Products {
		for _, s := range p.Sizes {
			row := []string{
				p.ProductID,
				p.Name,
				strconv.FormatFloat(p.Price, 'f', 2, 64),
				s.Size,
				strconv.Itoa(s.Stock),
				s.Status(),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write csv row: %w", err)
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
