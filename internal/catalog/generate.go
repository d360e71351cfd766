package catalog

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/sellerops/commercedesk/internal/models"
)

// Generate expands valid rows into per-marketplace listings under the
// rule tables. Unknown platforms are skipped; an empty selection or row
// set yields an empty dataset. Deterministic: identical rows and options
// always produce identical listings.
func Generate(rows []models.CatalogRow, opts models.GenerationOptions) models.CatalogDataset {
	dataset := models.CatalogDataset{Generated: map[models.MarketplaceKey][]models.CatalogListing{}}

	for _, platform := range opts.SelectedPlatforms {
		rule, ok := ruleFor(platform)
		if !ok {
			continue
		}

		listings := make([]models.CatalogListing, 0, len(rows))
		for _, row := range rows {
			listings = append(listings, buildListing(row, platform, rule, opts.ComplianceMode))
		}
		dataset.Generated[platform] = listings
	}

	return dataset
}

func buildListing(row models.CatalogRow, platform models.MarketplaceKey, rule marketplaceRule, mode models.ComplianceMode) models.CatalogListing {
	mrp := row.Price
	selling := round2(mrp * (1 - rule.DiscountFraction))
	if selling > mrp {
		selling = mrp
	}
	if selling < 0 {
		selling = 0
	}

	return models.CatalogListing{
		Platform:        platform,
		SKU:             row.SKU,
		Title:           row.Title,
		Subtitle:        buildSubtitle(row),
		BulletPoints:    buildBullets(row, rule.BulletLimit),
		Description:     row.Description,
		SearchTerms:     buildSearchTerms(row),
		CategoryPath:    categoryPath(row.Category, rule),
		Price:           models.ListingPrice{MRP: mrp, Selling: selling},
		Fulfillment:     fulfillmentFor(row, rule),
		ComplianceNotes: complianceNotes(row, rule, mode),
	}
}

// buildSubtitle combines brand and category when both are present.
func buildSubtitle(row models.CatalogRow) string {
	switch {
	case row.Brand != "" && row.Category != "":
		return fmt.Sprintf("%s | %s", row.Brand, row.Category)
	case row.Brand != "":
		return row.Brand
	default:
		return ""
	}
}

// buildBullets derives selling points from attributes, then description
// sentences, capped at the marketplace limit. Attribute keys are sorted
// so output is stable regardless of map order.
func buildBullets(row models.CatalogRow, limit int) []string {
	bullets := make([]string, 0, limit)

	keys := make([]string, 0, len(row.Attributes))
	for k := range row.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if len(bullets) >= limit {
			return bullets
		}
		bullets = append(bullets, fmt.Sprintf("%s: %s", k, row.Attributes[k]))
	}

	for _, sentence := range strings.Split(row.Description, ".") {
		if len(bullets) >= limit {
			break
		}
		sentence = strings.TrimSpace(sentence)
		if sentence != "" {
			bullets = append(bullets, sentence)
		}
	}

	return bullets
}

// buildSearchTerms tokenizes title, brand, category and attribute values,
// deduplicated case-insensitively in first-occurrence order.
func buildSearchTerms(row models.CatalogRow) []string {
	sources := []string{row.Title, row.Brand, row.Category}

	keys := make([]string, 0, len(row.Attributes))
	for k := range row.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sources = append(sources, row.Attributes[k])
	}

	seen := map[string]bool{}
	terms := []string{}
	for _, source := range sources {
		for _, token := range tokenize(source) {
			if len(token) < 3 || seen[token] {
				continue
			}
			seen[token] = true
			terms = append(terms, token)
		}
	}
	return terms
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	})
}

// categoryPath resolves the marketplace taxonomy path, exact match before
// substring, with the generic fallback when nothing applies.
func categoryPath(category string, rule marketplaceRule) string {
	normalized := strings.ToLower(strings.TrimSpace(category))
	if normalized == "" {
		return rule.FallbackCategory
	}

	for _, entry := range rule.Taxonomy {
		if entry.Match == normalized {
			return entry.Path
		}
	}
	for _, entry := range rule.Taxonomy {
		if strings.Contains(normalized, entry.Match) {
			return entry.Path
		}
	}
	return rule.FallbackCategory
}

// fulfillmentFor applies the marketplace default unless the row carries
// an explicit override attribute.
func fulfillmentFor(row models.CatalogRow, rule marketplaceRule) models.FulfillmentMode {
	for key, value := range row.Attributes {
		if strings.ToLower(strings.TrimSpace(key)) != "fulfillment" {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "self", "seller":
			return models.FulfillmentSeller
		case "fulfilled", "marketplace":
			return models.FulfillmentMarketplace
		}
	}
	return rule.DefaultFulfillment
}

func complianceNotes(row models.CatalogRow, rule marketplaceRule, mode models.ComplianceMode) []string {
	notes := []string{}
	if mode != models.ComplianceStrict {
		return notes
	}

	notes = append(notes, rule.Reminders...)
	if rule.RequiresBrand && row.Brand == "" {
		notes = append(notes, fmt.Sprintf("Brand is missing: %s listings require a registered brand.", rule.Label))
	}
	return notes
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
