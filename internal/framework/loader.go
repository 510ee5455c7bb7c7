package framework

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// LoadPlan reads a training plan from an XLSX, CSV or YAML file, keyed on
// the file extension. Rows missing both a competency id and a learning
// outcome are skipped. A missing or unreadable file yields an empty plan
// and an error; callers are expected to degrade rather than abort.
func LoadPlan(path string, logger *zap.Logger) ([]CompetencyRecord, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return loadPlanXLSX(path, logger)
	case ".yaml", ".yml":
		return loadPlanYAML(path, logger)
	case ".csv":
		return loadPlanCSV(path, logger)
	default:
		return nil, fmt.Errorf("unsupported training plan format: %s", filepath.Ext(path))
	}
}

func loadPlanYAML(path string, logger *zap.Logger) ([]CompetencyRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read training plan: %w", err)
	}
	var records []CompetencyRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse training plan: %w", err)
	}
	kept := records[:0]
	for _, r := range records {
		if strings.TrimSpace(r.Code) == "" && strings.TrimSpace(r.Name) == "" {
			continue
		}
		kept = append(kept, r)
	}
	logger.Info("Loaded training plan", zap.String("path", path), zap.Int("records", len(kept)))
	return NewPlan(kept), nil
}

// Sheet holding the training plan in the workbook.
const planSheet = "ELP"

// Column layout of the plan sheet. The code column carries the numeric
// competency id, the outcome column its letter suffix; the two concatenate
// into the full code (e.g. "1.1" + "(a)").
const (
	colID        = "Id"
	colComp      = "Competency"
	colOutcome   = "Learning outcome"
	colName      = "Name"
	colIndicator = "Behavioral indicators"
)

func loadPlanXLSX(path string, logger *zap.Logger) ([]CompetencyRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open training plan: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(planSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", planSheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("training plan is empty: %s", path)
	}

	records := parseRows(rows)
	logger.Info("Loaded training plan", zap.String("path", path), zap.Int("records", len(records)))
	return NewPlan(records), nil
}

func loadPlanCSV(path string, logger *zap.Logger) ([]CompetencyRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open training plan: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse training plan: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("training plan is empty: %s", path)
	}

	records := parseRows(rows)
	logger.Info("Loaded training plan", zap.String("path", path), zap.Int("records", len(records)))
	return NewPlan(records), nil
}

// parseRows maps a header-led sheet (XLSX or CSV) onto plan records. The
// raw row is kept on Extra under its header names, so the full-taxonomy
// serialization can carry it the way the source sheet had it.
func parseRows(rows [][]string) []CompetencyRecord {
	header := map[string]int{}
	for i, h := range rows[0] {
		header[strings.TrimSpace(h)] = i
	}
	cell := func(row []string, col string) string {
		idx, ok := header[col]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var records []CompetencyRecord
	for _, row := range rows[1:] {
		id := cell(row, colID)
		if id == "" {
			id = cell(row, colComp)
		}
		outcome := cell(row, colOutcome)
		if id == "" && outcome == "" {
			continue
		}
		// Spreadsheet exports render integer ids as floats.
		id = strings.TrimSuffix(id, ".0")

		extra := make(map[string]any, len(header))
		for col, idx := range header {
			if idx < len(row) {
				extra[col] = row[idx]
			}
		}

		records = append(records, CompetencyRecord{
			Code:        id + outcome,
			Name:        cell(row, colName),
			Description: cell(row, colIndicator),
			Extra:       extra,
		})
	}
	return records
}
