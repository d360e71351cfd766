package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/sellerops/commercedesk/internal/agent"
	"github.com/sellerops/commercedesk/internal/catalog"
	"github.com/sellerops/commercedesk/internal/config"
	"github.com/sellerops/commercedesk/internal/models"
	"github.com/sellerops/commercedesk/internal/store"
	"github.com/sellerops/commercedesk/internal/tasks"
)

type Handlers struct {
	config   *config.Config
	store    *store.Store
	analyzer *tasks.Analyzer
	log      *logrus.Logger
}

func NewHandlers(cfg *config.Config, st *store.Store, analyzer *tasks.Analyzer, log *logrus.Logger) *Handlers {
	return &Handlers{
		config:   cfg,
		store:    st,
		analyzer: analyzer,
		log:      log,
	}
}

// UploadCatalog ingests a catalog sheet (CSV, TSV, or XLSX). Rows that
// fail normalization are dropped silently; the response reports the
// delta. A new upload discards the previous rows and dataset.
func (h *Handlers) UploadCatalog(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No file uploaded")
	}

	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to open file")
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, h.config.Upload.MaxBodySize))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read file")
	}

	var records []map[string]string
	if strings.EqualFold(filepath.Ext(file.Filename), ".xlsx") {
		records, err = parseXLSX(data)
	} else {
		records, err = parseDelimited(data)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Failed to parse sheet: %v", err))
	}
	if len(records) > h.config.Upload.MaxRows {
		records = records[:h.config.Upload.MaxRows]
	}

	rows, skipped := catalog.NormalizeRows(records)
	h.store.ReplaceRows(rows, skipped)

	importID := uuid.New()
	h.log.WithFields(logrus.Fields{
		"import_id": importID,
		"file":      file.Filename,
		"ingested":  len(rows),
		"skipped":   skipped,
	}).Info("catalog sheet ingested")

	return c.JSON(http.StatusCreated, map[string]any{
		"import_id":     importID,
		"rows_ingested": len(rows),
		"rows_skipped":  skipped,
	})
}

// parseDelimited reads CSV/TSV bytes into header-keyed records,
// sniffing the delimiter from the first chunk. Malformed rows are
// skipped, headers keep their original spelling.
func parseDelimited(data []byte) ([]map[string]string, error) {
	sniff := data
	if len(sniff) > 1024 {
		sniff = sniff[:1024]
	}
	delimiter := '\t'
	if bytes.Count(sniff, []byte(",")) > bytes.Count(sniff, []byte("\t")) {
		delimiter = ','
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var records []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // Skip malformed rows
		}

		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i]
			}
		}
		records = append(records, row)
	}

	return records, nil
}

// parseXLSX reads the first sheet of a workbook into header-keyed
// records.
func parseXLSX(data []byte) ([]map[string]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	var records []map[string]string
	for _, cells := range rows[1:] {
		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(cells) {
				row[name] = cells[i]
			}
		}
		records = append(records, row)
	}

	return records, nil
}

// GenerateListings builds a fresh dataset for the selected marketplaces.
// Missing rows or an empty selection return a guard message with an
// empty dataset rather than an error.
func (h *Handlers) GenerateListings(c echo.Context) error {
	var req struct {
		Platforms      []string `json:"platforms"`
		ComplianceMode string   `json:"compliance_mode"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
	}

	rows, _ := h.store.Rows()
	if len(rows) == 0 {
		return c.JSON(http.StatusOK, map[string]any{
			"message": "Upload a catalog sheet first.",
			"counts":  map[models.MarketplaceKey]int{},
		})
	}

	platforms := make([]models.MarketplaceKey, 0, len(req.Platforms))
	for _, raw := range req.Platforms {
		if key, ok := models.ParseMarketplace(strings.ToLower(strings.TrimSpace(raw))); ok {
			platforms = append(platforms, key)
		}
	}
	if len(platforms) == 0 {
		return c.JSON(http.StatusOK, map[string]any{
			"message": "Pick at least one marketplace to generate listings.",
			"counts":  map[models.MarketplaceKey]int{},
		})
	}

	mode := models.ComplianceStandard
	if models.ComplianceMode(req.ComplianceMode) == models.ComplianceStrict {
		mode = models.ComplianceStrict
	}

	dataset := catalog.Generate(rows, models.GenerationOptions{
		SelectedPlatforms: platforms,
		ComplianceMode:    mode,
	})
	h.store.ReplaceDataset(dataset)

	counts := map[models.MarketplaceKey]int{}
	for platform, listings := range dataset.Generated {
		counts[platform] = len(listings)
	}

	h.log.WithFields(logrus.Fields{
		"platforms": platforms,
		"mode":      mode,
		"listings":  dataset.TotalListings(),
	}).Info("listing packs generated")

	return c.JSON(http.StatusOK, map[string]any{
		"summary": catalog.Summarize(dataset),
		"counts":  counts,
	})
}

// GetCatalogSummary returns the summarizer digest for the current
// dataset.
func (h *Handlers) GetCatalogSummary(c echo.Context) error {
	dataset := h.store.Dataset()
	summary := ""
	if dataset != nil {
		summary = catalog.Summarize(*dataset)
	}
	if summary == "" {
		summary = "No listings generated yet."
	}
	return c.JSON(http.StatusOK, map[string]string{"summary": summary})
}

// ListListings returns the generated listings for one marketplace.
func (h *Handlers) ListListings(c echo.Context) error {
	platform, ok := models.ParseMarketplace(c.Param("platform"))
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown marketplace")
	}

	dataset := h.store.Dataset()
	listings := []models.CatalogListing{}
	if dataset != nil {
		listings = append(listings, dataset.Generated[platform]...)
	}

	return c.JSON(http.StatusOK, map[string]any{"data": listings})
}

// ExportListings downloads one marketplace's listing pack as CSV
// (default) or XLSX.
func (h *Handlers) ExportListings(c echo.Context) error {
	platform, ok := models.ParseMarketplace(c.Param("platform"))
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown marketplace")
	}

	dataset := h.store.Dataset()
	if dataset == nil || len(dataset.Generated[platform]) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("No listings generated for %s", platform))
	}
	listings := dataset.Generated[platform]

	format := c.QueryParam("format")
	if format == "" {
		format = "csv"
	}

	switch format {
	case "csv":
		return h.exportCSV(c, platform, listings)
	case "xlsx":
		return h.exportXLSX(c, platform, listings)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "Unsupported format")
	}
}

func (h *Handlers) exportCSV(c echo.Context, platform models.MarketplaceKey, listings []models.CatalogListing) error {
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s-listing-pack.csv", platform))
	c.Response().WriteHeader(http.StatusOK)

	writer := csv.NewWriter(c.Response())
	if err := writer.Write(catalog.ExportHeader()); err != nil {
		return err
	}
	for _, row := range catalog.ExportRows(listings) {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func (h *Handlers) exportXLSX(c echo.Context, platform models.MarketplaceKey, listings []models.CatalogListing) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Listings"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})

	for i, name := range catalog.ExportHeader() {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, name)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	for r, row := range catalog.ExportRows(listings) {
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, r+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s-listing-pack.xlsx", platform))
	c.Response().WriteHeader(http.StatusOK)
	return f.Write(c.Response())
}

// AnalyzeMetrics parses one free-text snapshot, synthesizes tasks from
// threshold breaches, and merges them into the session task list.
func (h *Handlers) AnalyzeMetrics(c echo.Context) error {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
	}
	if strings.TrimSpace(req.Text) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Metrics text is required")
	}

	snapshot := h.analyzer.Extract(req.Text)
	synthesized := h.analyzer.Synthesize(snapshot)
	merged := h.store.MergeTasks(synthesized)

	h.log.WithFields(logrus.Fields{
		"metrics":     len(snapshot.Metrics),
		"synthesized": len(synthesized),
		"total":       len(merged),
	}).Info("metrics analyzed")

	return c.JSON(http.StatusOK, map[string]any{
		"snapshot":  snapshot,
		"new_tasks": len(synthesized),
		"tasks":     merged,
	})
}

// ListTasks returns the full task list, including done tasks.
func (h *Handlers) ListTasks(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"data": h.store.Tasks()})
}

// UpdateTaskStatus marks a task pending or done. This is the only
// mutation a task accepts after creation.
func (h *Handlers) UpdateTaskStatus(c echo.Context) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
	}

	status := models.TaskStatus(req.Status)
	if status != models.TaskPending && status != models.TaskDone {
		return echo.NewHTTPError(http.StatusBadRequest, "Status must be pending or done")
	}

	if !h.store.SetTaskStatus(c.Param("id"), status) {
		return echo.NewHTTPError(http.StatusNotFound, "Task not found")
	}

	return c.JSON(http.StatusOK, map[string]string{"status": string(status)})
}

// GetConversation returns the append-only message log.
func (h *Handlers) GetConversation(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"data": h.store.Conversation()})
}

// PostMessage appends an operator utterance, composes a reply from live
// catalog and task state, and appends and returns the reply.
func (h *Handlers) PostMessage(c echo.Context) error {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Message text is required")
	}

	userMsg := h.store.AppendMessage(models.RoleUser, text)
	reply := agent.Respond(agent.ResponseContext{
		Message:      text,
		Conversation: h.store.Conversation(),
		Catalog:      h.store.Dataset(),
		Tasks:        h.store.Tasks(),
	})
	agentMsg := h.store.AppendMessage(models.RoleAgent, reply)

	return c.JSON(http.StatusOK, map[string]any{
		"user":  userMsg,
		"agent": agentMsg,
	})
}
