// Command inventory-report prints a point-in-time inventory snapshot from
// the payment provider's product metadata, optionally exporting it to a
// dated JSON or CSV file.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/inkwell/storefront/internal/catalog"
	"github.com/inkwell/storefront/internal/config"
	"github.com/inkwell/storefront/internal/report"
	striperepo "github.com/inkwell/storefront/internal/repository/stripe"
)

func main() {
	jsonOut := flag.Bool("json", false, "write the report to inventory-<date>.json")
	csvOut := flag.Bool("csv", false, "write the report to inventory-<date>.csv")
	outDir := flag.String("dir", ".", "directory for exported report files")
	flag.Parse()

	if err := run(*jsonOut, *csvOut, *outDir); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(jsonOut, csvOut bool, outDir string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if !cfg.StripeConfigured() {
		return fmt.Errorf("STRIPE_SECRET_KEY is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	repo := striperepo.New(cfg.StripeSecretKey, catalog.ImageOverrides())
	products, err := repo.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("fetch catalog: %w", err)
	}

	snap := report.Build(products, time.Now())

	switch {
	case jsonOut:
		path, err := report.WriteJSONFile(snap, outDir)
		if err != nil {
			return err
		}
		fmt.Println("report written to", path)
	case csvOut:
		path, err := report.WriteCSVFile(snap, outDir)
		if err != nil {
			return err
		}
		fmt.Println("report written to", path)
	default:
		if err := report.RenderConsole(os.Stdout, snap); err != nil {
			return err
		}
	}

	return nil
}
