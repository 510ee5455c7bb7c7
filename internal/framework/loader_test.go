package framework

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	return path
}

func writeWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", "ELP"); err != nil {
		t.Fatalf("Failed to name sheet: %v", err)
	}
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("Failed to build cell ref: %v", err)
		}
		if err := f.SetSheetRow("ELP", cellRef, &row); err != nil {
			t.Fatalf("Failed to write row: %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "plan.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save workbook: %v", err)
	}
	return path
}

func TestLoadPlan_XLSX(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"Id", "Competency", "Learning outcome", "Name", "Behavioral indicators"},
		{"1.1", "", "(a)", "Ethics", "Acts with integrity"},
		{"2.0", "", "(b)", "Risk", "Assesses risk"},
		{"", "", "", "", ""},
	})

	plan, err := LoadPlan(path, zap.NewNop())
	if err != nil {
		t.Fatalf("LoadPlan failed: %v", err)
	}
	if len(plan) != 2 {
		t.Fatalf("Expected 2 records (empty row skipped), got %d", len(plan))
	}
	if plan[0].Code != "1.1(a)" {
		t.Errorf("Expected code '1.1(a)', got %q", plan[0].Code)
	}
	if plan[1].Code != "2(b)" {
		t.Errorf("Expected float suffix stripped, got %q", plan[1].Code)
	}
	if plan[0].Name != "Ethics" || plan[0].Description != "Acts with integrity" {
		t.Errorf("Unexpected record: %+v", plan[0])
	}
	if plan[0].Extra[colID] != "1.1" || plan[0].Extra[colIndicator] != "Acts with integrity" {
		t.Errorf("Raw row must be kept on Extra, got %+v", plan[0].Extra)
	}
	if plan[0].SequenceIndex() != 0 || plan[1].SequenceIndex() != 1 {
		t.Errorf("Sequence indices must follow source order: %d, %d",
			plan[0].SequenceIndex(), plan[1].SequenceIndex())
	}
}

func TestLoadPlan_XLSX_Corrupt(t *testing.T) {
	path := writeFile(t, "plan.xlsx", "not a zip archive")
	if _, err := LoadPlan(path, zap.NewNop()); err == nil {
		t.Fatal("Expected error for corrupt workbook")
	}
}

func TestLoadPlan_CSV(t *testing.T) {
	csv := "Id,Competency,Learning outcome,Name,Behavioral indicators\n" +
		"1.1,,(a),Ethics,Acts with integrity\n" +
		"2.0,,(b),Risk,Assesses risk\n" +
		",,,,\n"
	path := writeFile(t, "plan.csv", csv)

	plan, err := LoadPlan(path, zap.NewNop())
	if err != nil {
		t.Fatalf("LoadPlan failed: %v", err)
	}
	if len(plan) != 2 {
		t.Fatalf("Expected 2 records (empty row skipped), got %d", len(plan))
	}
	if plan[0].Code != "1.1(a)" {
		t.Errorf("Expected code '1.1(a)', got %q", plan[0].Code)
	}
	if plan[1].Code != "2(b)" {
		t.Errorf("Expected float suffix stripped, got %q", plan[1].Code)
	}
	if plan[0].Name != "Ethics" || plan[0].Description != "Acts with integrity" {
		t.Errorf("Unexpected record: %+v", plan[0])
	}
	if plan[0].Extra[colID] != "1.1" || plan[0].Extra[colName] != "Ethics" {
		t.Errorf("Raw row must be kept on Extra, got %+v", plan[0].Extra)
	}
	if plan[0].SequenceIndex() != 0 || plan[1].SequenceIndex() != 1 {
		t.Errorf("Sequence indices must follow source order: %d, %d",
			plan[0].SequenceIndex(), plan[1].SequenceIndex())
	}
}

func TestLoadPlan_YAML(t *testing.T) {
	yml := `
- competency_code: 1a
  competency_name: Ethics
  behavioral_indicators: Acts with integrity
- competency_code: ""
  competency_name: ""
- competency_code: 1b
  competency_name: Risk
`
	path := writeFile(t, "plan.yaml", yml)

	plan, err := LoadPlan(path, zap.NewNop())
	if err != nil {
		t.Fatalf("LoadPlan failed: %v", err)
	}
	if len(plan) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(plan))
	}
	if plan[1].Code != "1b" || plan[1].SequenceIndex() != 1 {
		t.Errorf("Unexpected second record: %+v", plan[1])
	}
}

func TestLoadPlan_MissingFile(t *testing.T) {
	if _, err := LoadPlan(filepath.Join(t.TempDir(), "missing.csv"), zap.NewNop()); err == nil {
		t.Fatal("Expected error for missing file")
	}
}

func TestLoadPlan_UnsupportedFormat(t *testing.T) {
	path := writeFile(t, "plan.docx", "binary")
	if _, err := LoadPlan(path, zap.NewNop()); err == nil {
		t.Fatal("Expected error for unsupported format")
	}
}

func TestLookup(t *testing.T) {
	plan := NewPlan([]CompetencyRecord{
		{Code: "1a", Name: "Ethics"},
		{Code: "1b", Name: "Risk"},
	})

	rec, ok := Lookup(plan, "  1A ")
	if !ok || rec.Name != "Ethics" {
		t.Errorf("Case-insensitive trimmed lookup failed: %+v ok=%v", rec, ok)
	}
	if _, ok := Lookup(plan, "zz"); ok {
		t.Error("Unknown code must not match")
	}
}
