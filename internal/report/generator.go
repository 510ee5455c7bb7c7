// Package report turns a mapping result list into the markdown assessment
// report, on disk and optionally rendered for the terminal.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/google/uuid"

	"scribe/internal/mapper"
)

// Markdown builds the assessment report content for a mapping run.
func Markdown(mappings []mapper.Result) string {
	var lines []string
	add := func(s string) { lines = append(lines, s) }

	add("# Scribe Assessment Report\n")
	add(fmt.Sprintf("**Date Generated**: %s", time.Now().Format("2006-01-02 15:04")))
	add(fmt.Sprintf("**Run ID**: `%s`", uuid.NewString()))
	add("**Status**: Draft\n")

	add("## Overview")
	add("This report maps the trainee's reported activities to the competency framework.\n")

	add("## Mapped Competencies")

	if len(mappings) == 0 {
		add("> [!WARNING]")
		add("> No competencies were identified for the given activity.")
	}

	for _, item := range mappings {
		name := item.Name
		if name == "" {
			name = "Unknown Competency"
		}
		add(fmt.Sprintf("### %s\n", name))

		code := item.CompetencyCode
		if code == "" {
			code = "N/A"
		}
		if item.Desc != "" {
			add(fmt.Sprintf("**Code**: `%s` — *%s*\n", code, item.Desc))
		} else {
			add(fmt.Sprintf("**Code**: `%s`\n", code))
		}

		confidence := item.Confidence
		if confidence <= 1.0 {
			confidence *= 100
		}

		badgeType, badgeTitle := badge(item, confidence)
		add(fmt.Sprintf("> [!%s]", badgeType))
		add(fmt.Sprintf("> **%s**: %.1f%%\n", badgeTitle, confidence))

		reasoning := item.Reasoning
		if reasoning == "" {
			reasoning = "No reasoning provided."
		}
		add("**Reasoning:**")
		add(reasoning + "\n")
		add("---\n")
	}

	return strings.Join(lines, "\n")
}

func badge(item mapper.Result, confidence float64) (badgeType, badgeTitle string) {
	switch {
	case item.IsWeakTarget:
		return "CAUTION", "Proceed with Caution (Low Confidence)"
	case confidence > 80:
		return "TIP", "High Confidence"
	case confidence > 50:
		return "NOTE", "Medium Confidence"
	default:
		return "WARNING", "Low Confidence"
	}
}

// Write generates the report file under outputDir and returns its path.
func Write(mappings []mapper.Result, outputDir string) (string, error) {
	if outputDir == "" {
		outputDir = "output"
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	name := fmt.Sprintf("competency_report_%s.md", time.Now().Format("2006-01-02_15-04-05"))
	path := filepath.Join(outputDir, name)
	if err := os.WriteFile(path, []byte(Markdown(mappings)), 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

// RenderTerminal renders report markdown for terminal display. On renderer
// failure the plain markdown comes back unchanged.
func RenderTerminal(markdown string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return markdown
	}
	out, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return out
}
