package catalog

import (
	"strconv"
	"strings"

	"github.com/sellerops/commercedesk/internal/models"
)

// ExportHeader is the fixed column set of a listing-pack export.
func ExportHeader() []string {
	return []string{
		"SKU", "Title", "Subtitle", "BulletPoints", "Description",
		"SearchTerms", "CategoryPath", "MRP", "SellingPrice",
		"Fulfillment", "ComplianceNotes",
	}
}

// ExportRows flattens listings into tabular records matching
// ExportHeader. Bullets and compliance notes are pipe-joined, search
// terms comma-joined.
func ExportRows(listings []models.CatalogListing) [][]string {
	rows := make([][]string, 0, len(listings))
	for _, l := range listings {
		rows = append(rows, []string{
			l.SKU,
			l.Title,
			l.Subtitle,
			strings.Join(l.BulletPoints, " | "),
			l.Description,
			strings.Join(l.SearchTerms, ", "),
			l.CategoryPath,
			strconv.FormatFloat(l.Price.MRP, 'f', 2, 64),
			strconv.FormatFloat(l.Price.Selling, 'f', 2, 64),
			string(l.Fulfillment),
			strings.Join(l.ComplianceNotes, " | "),
		})
	}
	return rows
}
