// Package main implements a standalone seed script that populates a Stripe
// test-mode account with sample storefront products: prints without sizes
// and apparel with the sizes/stock_<size> metadata convention the backend
// reads.
//
// Run: STRIPE_SECRET_KEY=sk_test_... go run ./seed
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

type seedProduct struct {
	name        string
	description string
	priceCents  int64
	category    string
	images      []string
	sizes       []string
	stock       map[string]int
	colors      string
	details     string
}

var seedProducts = []seedProduct{
	{
		name:        "Dawn Over the Harbor - Giclée Print",
		description: "Archival giclée print on 310gsm cotton rag, 12x16 inches.",
		priceCents:  4500,
		category:    "art",
		images:      []string{"https://shop.example.com/img/products/dawn-print.jpg"},
	},
	{
		name:        "Night Market - Giclée Print",
		description: "Archival giclée print on 310gsm cotton rag, 12x16 inches.",
		priceCents:  4500,
		category:    "art",
		images:      []string{"https://shop.example.com/img/products/night-print.jpg"},
	},
	{
		name:        "Gallery Print Tee",
		description: "Heavyweight cotton tee with front chest print.",
		priceCents:  2999,
		category:    "apparel",
		sizes:       []string{"S", "M", "L", "XL", "2XL"},
		stock:       map[string]int{"S": 10, "M": 15, "L": 15, "XL": 10, "2XL": 5},
		colors:      "Black",
		details:     "100% ringspun cotton, unisex fit",
	},
	{
		name:        "Studio Hoodie",
		description: "Midweight fleece hoodie with embroidered logo.",
		priceCents:  5900,
		category:    "apparel",
		sizes:       []string{"S", "M", "L", "XL"},
		stock:       map[string]int{"S": 8, "M": 12, "L": 12, "XL": 8},
		colors:      "Charcoal",
		details:     "80% cotton 20% polyester fleece",
	},
}

func main() {
	key := os.Getenv("STRIPE_SECRET_KEY")
	if key == "" {
		log.Fatal("STRIPE_SECRET_KEY is required")
	}

	sc := &client.API{}
	sc.Init(key, nil)

	for _, p := range seedProducts {
		if err := createProduct(sc, p); err != nil {
			log.Fatalf("seed %q: %v", p.name, err)
		}
		fmt.Println("created", p.name)
	}
}

func createProduct(sc *client.API, p seedProduct) error {
	params := &stripe.ProductParams{
		Name:        stripe.String(p.name),
		Description: stripe.String(p.description),
		Images:      stripe.StringSlice(p.images),
		DefaultPriceData: &stripe.ProductDefaultPriceDataParams{
			Currency:   stripe.String(string(stripe.CurrencyUSD)),
			UnitAmount: stripe.Int64(p.priceCents),
		},
	}

	params.AddMetadata("category", p.category)
	if p.colors != "" {
		params.AddMetadata("colors", p.colors)
	}
	if p.details != "" {
		params.AddMetadata("details", p.details)
	}
	if len(p.sizes) > 0 {
		sizes := ""
		for i, s := range p.sizes {
			if i > 0 {
				sizes += ","
			}
			sizes += s
		}
		params.AddMetadata("sizes", sizes)
		for size, count := range p.stock {
			params.AddMetadata("stock_"+size, strconv.Itoa(count))
		}
	}

	_, err := sc.Products.New(params)
	return err
}
