package models

import "time"

// MarketplaceKey identifies one of the supported selling channels.
type MarketplaceKey string

const (
	MarketplaceAmazon   MarketplaceKey = "amazon"
	MarketplaceFlipkart MarketplaceKey = "flipkart"
	MarketplaceMeesho   MarketplaceKey = "meesho"
	MarketplaceMyntra   MarketplaceKey = "myntra"
)

// AllMarketplaces lists the supported channels in stable display order.
func AllMarketplaces() []MarketplaceKey {
	return []MarketplaceKey{MarketplaceAmazon, MarketplaceFlipkart, MarketplaceMeesho, MarketplaceMyntra}
}

// ParseMarketplace maps a raw string to a MarketplaceKey.
func ParseMarketplace(s string) (MarketplaceKey, bool) {
	key := MarketplaceKey(s)
	for _, known := range AllMarketplaces() {
		if key == known {
			return key, true
		}
	}
	return "", false
}

// ComplianceMode controls whether listings carry regulatory reminders.
type ComplianceMode string

const (
	ComplianceStandard ComplianceMode = "standard"
	ComplianceStrict   ComplianceMode = "strict"
)

// FulfillmentMode is who ships the order.
type FulfillmentMode string

const (
	FulfillmentMarketplace FulfillmentMode = "fulfilled"
	FulfillmentSeller      FulfillmentMode = "self"
)

// CatalogRow is one normalized product record from an uploaded sheet.
// Rows are immutable once produced and discarded when a new sheet is ingested.
type CatalogRow struct {
	SKU         string            `json:"sku"`
	Title       string            `json:"title"`
	Brand       string            `json:"brand"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Price       float64           `json:"price"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

// Valid reports whether the row survived normalization. Rows without a
// title are silently excluded upstream of listing generation.
func (r CatalogRow) Valid() bool {
	return r.Title != ""
}

// ListingPrice carries the list price and the discounted selling price.
// Selling never exceeds MRP.
type ListingPrice struct {
	MRP     float64 `json:"mrp"`
	Selling float64 `json:"selling"`
}

// CatalogListing is one row's realization for one marketplace.
type CatalogListing struct {
	Platform        MarketplaceKey  `json:"platform"`
	SKU             string          `json:"sku"`
	Title           string          `json:"title"`
	Subtitle        string          `json:"subtitle,omitempty"`
	BulletPoints    []string        `json:"bullet_points"`
	Description     string          `json:"description"`
	SearchTerms     []string        `json:"search_terms"`
	CategoryPath    string          `json:"category_path"`
	Price           ListingPrice    `json:"price"`
	Fulfillment     FulfillmentMode `json:"fulfillment"`
	ComplianceNotes []string        `json:"compliance_notes"`
}

// GenerationOptions selects channels and compliance behavior for one
// generation cycle.
type GenerationOptions struct {
	SelectedPlatforms []MarketplaceKey `json:"selected_platforms"`
	ComplianceMode    ComplianceMode   `json:"compliance_mode"`
}

// CatalogDataset holds the listings generated in one cycle. Regeneration
// replaces the whole set; only selected marketplaces appear as keys.
type CatalogDataset struct {
	Generated map[MarketplaceKey][]CatalogListing `json:"generated"`
}

// ListingCount returns the number of listings held for one marketplace.
func (d CatalogDataset) ListingCount(platform MarketplaceKey) int {
	return len(d.Generated[platform])
}

// TotalListings sums listings across all marketplaces.
func (d CatalogDataset) TotalListings() int {
	total := 0
	for _, listings := range d.Generated {
		total += len(listings)
	}
	return total
}

// PerformanceSnapshot is the structured result of parsing one free-text
// metrics report. Metrics not mentioned in the text are absent, never zeroed.
type PerformanceSnapshot struct {
	Metrics   map[string]float64 `json:"metrics"`
	Narrative string             `json:"narrative"`
}

// TaskPriority ranks a recommendation by urgency.
type TaskPriority string

const (
	PriorityHigh   TaskPriority = "high"
	PriorityMedium TaskPriority = "medium"
	PriorityLow    TaskPriority = "low"
)

// TaskStatus tracks operator progress on a recommendation.
type TaskStatus string

const (
	TaskPending TaskStatus = "pending"
	TaskDone    TaskStatus = "done"
)

// TaskRecommendation is one actionable item synthesized from a metrics
// snapshot. The ID is derived from the triggering condition so the same
// condition across repeated analyses maps to the same task. Status is
// the only field mutated after creation.
type TaskRecommendation struct {
	ID           string             `json:"id"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Priority     TaskPriority       `json:"priority"`
	Status       TaskStatus         `json:"status"`
	Tags         []string           `json:"tags"`
	MetricImpact map[string]float64 `json:"metric_impact,omitempty"`
}

// MessageRole distinguishes operator input from agent replies.
type MessageRole string

const (
	RoleUser  MessageRole = "user"
	RoleAgent MessageRole = "agent"
)

// AgentMessage is one entry in the append-only conversation log.
type AgentMessage struct {
	ID        string      `json:"id"`
	Role      MessageRole `json:"role"`
	Text      string      `json:"text"`
	Timestamp time.Time   `json:"timestamp"`
}
