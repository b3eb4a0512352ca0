package catalog

import "github.com/inkwell/storefront/internal/domain"

// apparelSizeChart is the measurement table for the standard unisex garments.
var apparelSizeChart = &domain.SizeChart{
	Sizes: []string{"S", "M", "L", "XL", "2XL"},
	Measurements: map[string]domain.SizeMeasurement{
		"S":   {BodyLength: "28", ChestWidth: "18", SleeveLength: "15.62"},
		"M":   {BodyLength: "29.25", ChestWidth: "20", SleeveLength: "17"},
		"L":   {BodyLength: "30.25", ChestWidth: "22", SleeveLength: "18.5"},
		"XL":  {BodyLength: "31.25", ChestWidth: "24", SleeveLength: "20"},
		"2XL": {BodyLength: "32.5", ChestWidth: "26", SleeveLength: "21.5"},
	},
}

// ImageOverrides maps provider product IDs to locally hosted galleries and
// size charts for records whose provider entries carry no images. The IDs
// track the live account; unknown IDs are simply never looked up.
func ImageOverrides() map[string]domain.ProductOverride {
	return map[string]domain.ProductOverride{
		"prod_gallery_tee": {
			Images: []string{
				"/img/products/gallery-tee-front.jpg",
				"/img/products/gallery-tee-back.jpg",
			},
			SizeChart: apparelSizeChart,
		},
		"prod_studio_hoodie": {
			Images: []string{
				"/img/products/studio-hoodie-front.jpg",
			},
			SizeChart: apparelSizeChart,
		},
	}
}

// FallbackProducts returns the static catalog served when the provider is
// unreachable and no cached snapshot exists. Prices and descriptions mirror
// the live listings closely enough for browsing; checkout still requires the
// provider to be reachable.
func FallbackProducts() []domain.Product {
	return []domain.Product{
		{
			ID:           "fallback-dawn-print",
			Title:        "Dawn Over the Harbor - Giclée Print",
			Price:        45,
			Description:  "Archival giclée print on 310gsm cotton rag, 12x16 inches.",
			Image:        "/img/products/dawn-print.jpg",
			Images:       []string{"/img/products/dawn-print.jpg"},
			MainCategory: domain.DefaultCategory,
		},
		{
			ID:           "fallback-night-print",
			Title:        "Night Market - Giclée Print",
			Price:        45,
			Description:  "Archival giclée print on 310gsm cotton rag, 12x16 inches.",
			Image:        "/img/products/night-print.jpg",
			Images:       []string{"/img/products/night-print.jpg"},
			MainCategory: domain.DefaultCategory,
		},
		{
			ID:           "fallback-gallery-tee",
			Title:        "Gallery Print Tee",
			Price:        29.99,
			Description:  "Heavyweight cotton tee with front chest print.",
			Image:        "/img/products/gallery-tee-front.jpg",
			Images: []string{
				"/img/products/gallery-tee-front.jpg",
				"/img/products/gallery-tee-back.jpg",
			},
			MainCategory: "apparel",
			Sizes:        []string{"S", "M", "L", "XL", "2XL"},
			Colors:       []string{"Black"},
			SizeChart:    apparelSizeChart,
		},
	}
}
