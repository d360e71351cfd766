package catalog

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/sellerops/commercedesk/internal/models"
)

// canonicalHeaders maps lowercased sheet headers to CatalogRow fields.
// Anything not listed here lands in Attributes under its original header.
var canonicalHeaders = map[string]string{
	"sku":          "sku",
	"id":           "sku",
	"sku id":       "sku",
	"title":        "title",
	"name":         "title",
	"product name": "title",
	"brand":        "brand",
	"description":  "description",
	"category":     "category",
	"product type": "category",
	"price":        "price",
	"mrp":          "price",
}

// NormalizeRow cleans one raw header-keyed record into a CatalogRow.
// All fields are trimmed, price-like values are coerced (unparsable or
// missing price becomes 0), descriptions are stripped of embedded HTML,
// and unknown columns are retained under Attributes. Pure function.
func NormalizeRow(raw map[string]string) models.CatalogRow {
	row := models.CatalogRow{}

	// Sorted headers keep alias collisions (e.g. both "SKU" and "ID"
	// columns) deterministic.
	headers := make([]string, 0, len(raw))
	for header := range raw {
		headers = append(headers, header)
	}
	sort.Strings(headers)

	for _, header := range headers {
		key := strings.ToLower(strings.TrimSpace(header))
		value := strings.TrimSpace(raw[header])

		field, known := canonicalHeaders[key]
		if !known {
			if header = strings.TrimSpace(header); header != "" && value != "" {
				if row.Attributes == nil {
					row.Attributes = map[string]string{}
				}
				row.Attributes[header] = value
			}
			continue
		}

		switch field {
		case "sku":
			row.SKU = value
		case "title":
			row.Title = value
		case "brand":
			row.Brand = value
		case "description":
			row.Description = stripMarkup(value)
		case "category":
			row.Category = value
		case "price":
			row.Price = parsePrice(value)
		}
	}

	return row
}

// NormalizeRows normalizes a batch and filters rows that fail validation.
// The skipped count is the only surface for malformed rows; they are
// never reported as errors.
func NormalizeRows(raws []map[string]string) ([]models.CatalogRow, int) {
	rows := make([]models.CatalogRow, 0, len(raws))
	skipped := 0
	for _, raw := range raws {
		row := NormalizeRow(raw)
		if !row.Valid() {
			skipped++
			continue
		}
		rows = append(rows, row)
	}
	return rows, skipped
}

// parsePrice coerces a price cell to a non-negative number. Currency
// symbols and thousands separators are tolerated.
func parsePrice(value string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			return r
		default:
			return -1
		}
	}, value)

	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || price < 0 {
		return 0
	}
	return price
}

// stripMarkup flattens embedded HTML to plain text. Storefront exports
// routinely carry markup in description cells.
func stripMarkup(value string) string {
	if !strings.Contains(value, "<") {
		return value
	}

	doc, err := html.Parse(strings.NewReader(value))
	if err != nil {
		return value
	}

	var sb strings.Builder
	collectText(doc, &sb)
	return strings.TrimSpace(sb.String())
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style":
			return
		}
	}

	if n.Type == html.TextNode {
		text := strings.TrimSpace(n.Data)
		if text != "" {
			if sb.Len() > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(text)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}
