package catalog

import (
	"fmt"
	"strings"

	"github.com/sellerops/commercedesk/internal/models"
)

// Summarize renders a one-paragraph digest of a generated dataset.
// Returns an empty string for an empty dataset.
func Summarize(dataset models.CatalogDataset) string {
	total := dataset.TotalListings()
	if total == 0 {
		return ""
	}

	parts := []string{}
	flagged := 0
	for _, platform := range models.AllMarketplaces() {
		listings, ok := dataset.Generated[platform]
		if !ok {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s (%d)", platform, len(listings)))
		for _, listing := range listings {
			if len(listing.ComplianceNotes) > 0 {
				flagged++
			}
		}
	}

	summary := fmt.Sprintf("Generated %d listings across %d marketplaces: %s.", total, len(parts), strings.Join(parts, ", "))
	if flagged > 0 {
		summary += fmt.Sprintf(" %d listings carry compliance reminders.", flagged)
	}
	return summary
}
