package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/foerderfunke/shaclgen/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and update the configuration file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: runWithSetup(func(cmd *cobra.Command, args []string) error {
		path := viper.ConfigFileUsed()
		if path == "" {
			fmt.Println("No config file loaded, using defaults.")
		} else {
			fmt.Printf("Config file: %s\n", path)
		}
		fmt.Printf("Catalogue:   %s\n", cfg.CataloguePath)
		fmt.Printf("Database:    %s\n", cfg.DatabasePath)
		fmt.Printf("Assistant:   %s (%s)\n", cfg.Assistant.Model, cfg.Assistant.BaseURL)
		fmt.Printf("Tracing:     enabled=%v exporter=%s\n", cfg.Tracing.Enabled, cfg.Tracing.Exporter)
		return nil
	}),
}

var (
	configSetModel     string
	configSetBaseURL   string
	configSetCatalogue string
)

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update config file settings, preserving comments",
	Long: `Write settings back to the config file. Unrelated sections and comments
are left untouched.

Examples:
  shaclgen config set --model llama3 --base-url http://localhost:11434/v1
  shaclgen config set --catalogue ./fields/datafields.yaml`,
	RunE: runWithSetup(func(cmd *cobra.Command, args []string) error {
		path := viper.ConfigFileUsed()
		if path == "" {
			dir := config.DefaultConfigDir()
			if dir == "" {
				return fmt.Errorf("no config file loaded and home directory unavailable")
			}
			path = filepath.Join(dir, "config.yaml")
		}

		changed := false
		if configSetModel != "" || configSetBaseURL != "" {
			assistant := cfg.Assistant
			if configSetModel != "" {
				assistant.Model = configSetModel
			}
			if configSetBaseURL != "" {
				assistant.BaseURL = configSetBaseURL
			}
			if err := config.SaveAssistant(path, assistant); err != nil {
				return err
			}
			changed = true
		}
		if configSetCatalogue != "" {
			if err := config.SaveCataloguePath(path, configSetCatalogue); err != nil {
				return err
			}
			changed = true
		}
		if !changed {
			return fmt.Errorf("nothing to set, pass --model, --base-url, or --catalogue")
		}
		fmt.Printf("Updated %s\n", path)
		return nil
	}),
}

func init() {
	configSetCmd.Flags().StringVar(&configSetModel, "model", "", "assistant model identifier")
	configSetCmd.Flags().StringVar(&configSetBaseURL, "base-url", "", "assistant endpoint base URL")
	configSetCmd.Flags().StringVar(&configSetCatalogue, "catalogue", "", "catalogue file path")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
