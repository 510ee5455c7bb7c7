package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"scribe/internal/config"
)

var (
	setGoogleKey   string
	setGroqKey     string
	setProviderVal string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage scribe configuration",
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key",
	Short: "Store provider API keys and the default provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if v := strings.TrimSpace(setGoogleKey); v != "" {
			cfg.GoogleAPIKey = v
		}
		if v := strings.TrimSpace(setGroqKey); v != "" {
			cfg.GroqAPIKey = v
		}
		if v := strings.TrimSpace(setProviderVal); v != "" {
			cfg.Provider = v
		}
		if err := cfg.Save(configPath); err != nil {
			return err
		}
		fmt.Println("Configuration saved.")
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration (keys redacted)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		provider := cfg.Provider
		if provider == "" {
			provider = "gemini"
		}
		fmt.Printf("provider:        %s\n", provider)
		fmt.Printf("google_api_key:  %s\n", redact(cfg.GoogleAPIKey))
		fmt.Printf("groq_api_key:    %s\n", redact(cfg.GroqAPIKey))
		return nil
	},
}

func redact(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func init() {
	configSetKeyCmd.Flags().StringVar(&setGoogleKey, "google", "", "Google API key")
	configSetKeyCmd.Flags().StringVar(&setGroqKey, "groq", "", "Groq API key")
	configSetKeyCmd.Flags().StringVar(&setProviderVal, "provider", "", "default provider: gemini or groq")
	configCmd.AddCommand(configSetKeyCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
