package agent

import (
	"fmt"
	"strings"

	"github.com/sellerops/commercedesk/internal/models"
)

// ResponseContext is everything the composer may read when building a
// reply: the utterance, the conversation so far, and the live catalog
// and task state. All of it is read-only; the caller appends the reply.
type ResponseContext struct {
	Message      string
	Conversation []models.AgentMessage
	Catalog      *models.CatalogDataset
	Tasks        []models.TaskRecommendation
}

// Respond selects a context-aware reply by keyword-matching the
// utterance. Pure function of its inputs; falls back to a generic
// acknowledgment when nothing matches.
func Respond(ctx ResponseContext) string {
	message := strings.ToLower(ctx.Message)

	if platform, ok := mentionedMarketplace(message); ok {
		return marketplaceReply(platform, ctx.Catalog)
	}
	if containsAny(message, "listing", "catalog", "catalogue", "generate", "sku") {
		return catalogReply(ctx.Catalog)
	}
	if containsAny(message, "task", "action", "plan", "priority", "sprint") {
		return taskReply(ctx.Tasks)
	}
	if containsAny(message, "status", "summary", "report", "overview") {
		return statusReply(ctx)
	}
	if containsAny(message, "metric", "performance", "ctr", "conversion", "cancellation", "return") {
		return "Paste today's numbers, for example \"CTR: 0.9, Conversion: 1.4, Cancellation Rate: 2.1\", and I will turn threshold breaches into an action plan."
	}
	if isGreeting(message) {
		return "At your service. Upload a catalog sheet, paste performance metrics, or ask for a status report across Amazon, Flipkart, Meesho, and Myntra."
	}

	return "Noted. I can generate marketplace listing packs, turn metrics into prioritized tasks, or report current status. Tell me which."
}

func mentionedMarketplace(message string) (models.MarketplaceKey, bool) {
	for _, platform := range models.AllMarketplaces() {
		if strings.Contains(message, string(platform)) {
			return platform, true
		}
	}
	return "", false
}

func isGreeting(message string) bool {
	for _, word := range strings.Fields(message) {
		switch strings.Trim(word, ".,!?") {
		case "hello", "hi", "hey", "jarvis", "namaste":
			return true
		}
	}
	return false
}

func containsAny(message string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(message, kw) {
			return true
		}
	}
	return false
}

func marketplaceReply(platform models.MarketplaceKey, catalog *models.CatalogDataset) string {
	if catalog == nil || catalog.TotalListings() == 0 {
		return fmt.Sprintf("No %s listings yet. Upload your catalog sheet and generate a listing pack first.", platform)
	}
	count := catalog.ListingCount(platform)
	if count == 0 {
		return fmt.Sprintf("%s was not part of the last generation run. Regenerate with it selected to build its pack.", platform)
	}
	return fmt.Sprintf("%s pack is ready with %d listings. Export it whenever you want the upload file.", platform, count)
}

func catalogReply(catalog *models.CatalogDataset) string {
	if catalog == nil || catalog.TotalListings() == 0 {
		return "No listings generated yet. Upload a catalog sheet, pick marketplaces, and I will build the packs."
	}
	return fmt.Sprintf("Catalog is live: %d listings across %d marketplaces. Ask for any marketplace by name for details.", catalog.TotalListings(), len(catalog.Generated))
}

func taskReply(tasks []models.TaskRecommendation) string {
	open := 0
	high := 0
	for _, task := range tasks {
		if task.Status == models.TaskDone {
			continue
		}
		open++
		if task.Priority == models.PriorityHigh {
			high++
		}
	}
	if open == 0 {
		return "No open tasks. Feed me fresh metrics and I will draft the next action plan."
	}
	if high > 0 {
		return fmt.Sprintf("%d open tasks, %d of them high priority. Start with the high-priority items.", open, high)
	}
	return fmt.Sprintf("%d open tasks, none critical. Steady as she goes.", open)
}

func statusReply(ctx ResponseContext) string {
	catalogPart := "no listings generated"
	if ctx.Catalog != nil && ctx.Catalog.TotalListings() > 0 {
		catalogPart = fmt.Sprintf("%d listings across %d marketplaces", ctx.Catalog.TotalListings(), len(ctx.Catalog.Generated))
	}

	open := 0
	for _, task := range ctx.Tasks {
		if task.Status != models.TaskDone {
			open++
		}
	}

	return fmt.Sprintf("Status: %s, %d open tasks, %d messages in this session.", catalogPart, open, len(ctx.Conversation))
}
