package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"scribe/internal/config"
	"scribe/internal/framework"
	"scribe/internal/mapper"
	"scribe/internal/report"
)

var (
	mapInput     string
	mapPlanPath  string
	mapDocsDir   string
	mapURLs      []string
	mapProvider  string
	mapOutputDir string
	mapRender    bool
)

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Map an activity description to the training plan",
	Long: `Map loads the training plan, supporting documents and reference web
pages, sends the activity to the configured LLM provider, and writes the
assessment report. Without --input the activity is read from stdin.`,
	RunE: runMap,
}

func init() {
	mapCmd.Flags().StringVarP(&mapInput, "input", "i", "", "activity description (reads stdin when omitted)")
	mapCmd.Flags().StringVar(&mapPlanPath, "plan", "", "training plan file (.csv or .yaml)")
	mapCmd.Flags().StringVar(&mapDocsDir, "docs-dir", "", "directory of supporting context documents")
	mapCmd.Flags().StringSliceVar(&mapURLs, "url", nil, "framework reference URL (repeatable)")
	mapCmd.Flags().StringVarP(&mapProvider, "provider", "p", "", "LLM provider: gemini or groq (default from config)")
	mapCmd.Flags().StringVarP(&mapOutputDir, "output", "o", "output", "report output directory")
	mapCmd.Flags().BoolVar(&mapRender, "render", false, "render the report to the terminal")
	_ = mapCmd.MarkFlagRequired("plan")
	rootCmd.AddCommand(mapCmd)
}

func runMap(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	providerID := mapProvider
	if providerID == "" {
		providerID = cfg.Provider
	}

	activity := strings.TrimSpace(mapInput)
	if activity == "" {
		fmt.Fprint(os.Stderr, "Describe the activity you performed: ")
		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
		if scanner.Scan() {
			activity = strings.TrimSpace(scanner.Text())
		}
	}
	if activity == "" {
		return fmt.Errorf("no activity provided")
	}

	fw, err := loadFramework(cmd)
	if err != nil {
		return err
	}

	logger.Info("Mapping activity to competencies", zap.Int("plan_records", len(fw.Plan)))
	results := mapper.New(cfg, logger).Map(cmd.Context(), activity, fw, providerID)

	path, err := report.Write(results, mapOutputDir)
	if err != nil {
		return err
	}
	logger.Info("Report created", zap.String("path", path))
	fmt.Printf("Report generated: %s\n", path)

	if mapRender {
		fmt.Println(report.RenderTerminal(report.Markdown(results)))
	}
	return nil
}

func loadFramework(cmd *cobra.Command) (*framework.Framework, error) {
	plan, err := framework.LoadPlan(mapPlanPath, logger)
	if err != nil {
		// Degrade like every other ingestion failure: the mapper still
		// runs and the report carries the outcome.
		logger.Error("Failed to load training plan", zap.Error(err))
		plan = nil
	}

	fw := &framework.Framework{
		Plan:              plan,
		WebContent:        map[string]string{},
		AdditionalContext: map[string]map[string]string{},
	}
	if mapDocsDir != "" {
		fw.AdditionalContext = framework.LoadContext(mapDocsDir, logger)
	}
	if len(mapURLs) > 0 {
		fetcher := framework.NewWebFetcher(30*time.Second, logger)
		fw.WebContent = fetcher.FetchAll(cmd.Context(), mapURLs)
	}
	return fw, nil
}
