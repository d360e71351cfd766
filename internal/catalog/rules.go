package catalog

import "github.com/sellerops/commercedesk/internal/models"

// taxonomyEntry maps a category keyword to a marketplace category path.
// Entries are matched in order: exact match first, then substring.
type taxonomyEntry struct {
	Match string
	Path  string
}

// marketplaceRule is the full per-channel generation policy. Adding a
// marketplace means adding a table entry, not new branching.
type marketplaceRule struct {
	Label              string
	BulletLimit        int
	DiscountFraction   float64
	DefaultFulfillment models.FulfillmentMode
	RequiresBrand      bool
	Reminders          []string
	Taxonomy           []taxonomyEntry
	FallbackCategory   string
}

var marketplaceRules = map[models.MarketplaceKey]marketplaceRule{
	models.MarketplaceAmazon: {
		Label:              "Amazon",
		BulletLimit:        5,
		DiscountFraction:   0.05,
		DefaultFulfillment: models.FulfillmentMarketplace,
		Reminders: []string{
			"Declare country of origin on the detail page.",
			"Keep invoice-ready GST details on file for every order.",
		},
		Taxonomy: []taxonomyEntry{
			{Match: "kurta", Path: "Clothing & Accessories > Women > Ethnic Wear > Kurtas"},
			{Match: "saree", Path: "Clothing & Accessories > Women > Ethnic Wear > Sarees"},
			{Match: "apparel", Path: "Clothing & Accessories > Apparel"},
			{Match: "clothing", Path: "Clothing & Accessories > Apparel"},
			{Match: "footwear", Path: "Shoes & Handbags > Shoes"},
			{Match: "electronics", Path: "Electronics > Accessories"},
			{Match: "home", Path: "Home & Kitchen > Home Furnishing"},
			{Match: "beauty", Path: "Beauty > Personal Care"},
			{Match: "jewellery", Path: "Jewellery > Fashion Jewellery"},
		},
		FallbackCategory: "Everything Else > Uncategorized",
	},
	models.MarketplaceFlipkart: {
		Label:              "Flipkart",
		BulletLimit:        4,
		DiscountFraction:   0.10,
		DefaultFulfillment: models.FulfillmentMarketplace,
		Reminders: []string{
			"State the seller return window in the listing description.",
			"Country of origin is mandatory under packaged-goods rules.",
		},
		Taxonomy: []taxonomyEntry{
			{Match: "kurta", Path: "Clothing and Accessories > Ethnic Wear > Kurtas and Kurtis"},
			{Match: "saree", Path: "Clothing and Accessories > Ethnic Wear > Sarees"},
			{Match: "apparel", Path: "Clothing and Accessories > Topwear"},
			{Match: "clothing", Path: "Clothing and Accessories > Topwear"},
			{Match: "footwear", Path: "Footwear > Casual Shoes"},
			{Match: "electronics", Path: "Electronics > Mobile Accessories"},
			{Match: "home", Path: "Home Furnishing > Bed Linen"},
			{Match: "beauty", Path: "Beauty and Grooming > Skin Care"},
			{Match: "jewellery", Path: "Jewellery > Artificial Jewellery"},
		},
		FallbackCategory: "General > Uncategorized",
	},
	models.MarketplaceMeesho: {
		Label:              "Meesho",
		BulletLimit:        3,
		DiscountFraction:   0.15,
		DefaultFulfillment: models.FulfillmentSeller,
		Reminders: []string{
			"Confirm dispatch SLA of 2 days for reseller orders.",
			"Mention wash care and fabric details for apparel.",
		},
		Taxonomy: []taxonomyEntry{
			{Match: "kurta", Path: "Women Ethnic > Kurtis"},
			{Match: "saree", Path: "Women Ethnic > Sarees"},
			{Match: "apparel", Path: "Women Western > Topwear"},
			{Match: "clothing", Path: "Women Western > Topwear"},
			{Match: "footwear", Path: "Footwear > Flats"},
			{Match: "home", Path: "Home & Kitchen > Home Decor"},
			{Match: "beauty", Path: "Beauty & Health > Makeup"},
			{Match: "jewellery", Path: "Jewellery & Accessories > Jewellery Sets"},
		},
		FallbackCategory: "Other > Uncategorized",
	},
	models.MarketplaceMyntra: {
		Label:              "Myntra",
		BulletLimit:        4,
		DiscountFraction:   0.08,
		DefaultFulfillment: models.FulfillmentSeller,
		RequiresBrand:      true,
		Reminders: []string{
			"Brand authorization letter must be on record.",
			"Disclose the 14-day return policy on the product page.",
		},
		Taxonomy: []taxonomyEntry{
			{Match: "kurta", Path: "Women > Ethnic Wear > Kurta Sets"},
			{Match: "saree", Path: "Women > Ethnic Wear > Sarees"},
			{Match: "apparel", Path: "Women > Western Wear > Tops"},
			{Match: "clothing", Path: "Women > Western Wear > Tops"},
			{Match: "footwear", Path: "Women > Footwear > Heels"},
			{Match: "beauty", Path: "Beauty > Makeup"},
			{Match: "jewellery", Path: "Accessories > Jewellery"},
		},
		FallbackCategory: "Uncategorized",
	},
}

func ruleFor(platform models.MarketplaceKey) (marketplaceRule, bool) {
	rule, ok := marketplaceRules[platform]
	return rule, ok
}
