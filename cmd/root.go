package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/foerderfunke/shaclgen/internal/config"
	"github.com/foerderfunke/shaclgen/internal/generator"
	"github.com/foerderfunke/shaclgen/internal/llm"
	"github.com/foerderfunke/shaclgen/internal/log"
	"github.com/foerderfunke/shaclgen/internal/registry"
	"github.com/foerderfunke/shaclgen/internal/store"
	"github.com/foerderfunke/shaclgen/internal/tracing"
)

var (
	version = "dev"
	cfgFile string
	verbose bool
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "shaclgen",
	Short: "Generate SHACL requirement profiles from German legal texts",
	Long: `shaclgen maps German social-benefit legal texts onto SHACL requirement
profiles. It keeps a catalogue of known data fields, asks an
OpenAI-compatible assistant to express eligibility rules as SHACL
property shapes, and stores the generated shapes for review and
iterative improvement.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/shaclgen/config.yaml)")
	rootCmd.PersistentFlags().StringP("catalogue", "C", "",
		"path to the data-field catalogue")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"log debug detail")

	_ = viper.BindPFlag("catalogue_path", rootCmd.PersistentFlags().Lookup("catalogue"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("catalogue_path", defaults.CataloguePath)
	viper.SetDefault("database_path", defaults.DatabasePath)
	viper.SetDefault("auto_reload", defaults.AutoReload)
	viper.SetDefault("assistant.base_url", defaults.Assistant.BaseURL)
	viper.SetDefault("assistant.model", defaults.Assistant.Model)
	viper.SetDefault("assistant.api_key_env", defaults.Assistant.APIKeyEnv)
	viper.SetDefault("assistant.timeout_seconds", defaults.Assistant.TimeoutSeconds)
	viper.SetDefault("assistant.temperature", defaults.Assistant.Temperature)
	viper.SetDefault("generation.max_text_length", defaults.Generation.MaxTextLength)
	viper.SetDefault("generation.cache_ttl_minutes", defaults.Generation.CacheTTLMinutes)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .shaclgen/config.yaml (current directory)
		// 2. ~/.config/shaclgen/config.yaml (user config)
		if _, err := os.Stat(filepath.Join(".shaclgen", "config.yaml")); err == nil {
			viper.SetConfigFile(filepath.Join(".shaclgen", "config.yaml"))
		} else {
			if dir := config.DefaultConfigDir(); dir != "" {
				viper.AddConfigPath(dir)
			}
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// First run: write a commented default config and read it back.
			if dir := config.DefaultConfigDir(); dir != "" {
				defaultPath := filepath.Join(dir, "config.yaml")
				if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
					viper.SetConfigFile(defaultPath)
					_ = viper.ReadInConfig()
				}
			}
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// initLogging opens the debug log in the config directory. Called from
// runWithSetup rather than init so --verbose is parsed first.
func initLogging() func() {
	dir := config.DefaultConfigDir()
	if dir == "" {
		return func() {}
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return func() {}
	}
	cleanup, err := log.Init(filepath.Join(dir, "shaclgen.log"))
	if err != nil {
		return func() {}
	}
	if !verbose {
		log.SetMinLevel(log.LevelInfo)
	}
	return cleanup
}

// runWithSetup wraps a command body with config validation and logging.
func runWithSetup(body func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		cleanup := initLogging()
		defer cleanup()
		return body(cmd, args)
	}
}

// loadCatalogue reads the configured data-field catalogue and wraps it in
// a reloadable handle.
func loadCatalogue() (*registry.Handle, error) {
	path := cfg.CataloguePath
	if path == "" {
		path = config.Defaults().CataloguePath
	}
	reg, err := registry.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalogue %s: %w", path, err)
	}
	return registry.NewHandle(path, reg), nil
}

// openStore opens the SQLite shape store at the configured path.
func openStore() (*store.DB, error) {
	path := cfg.DatabasePath
	if path == "" {
		path = config.DefaultDatabasePath()
	}
	if path == "" {
		return nil, fmt.Errorf("no database path configured and home directory unavailable")
	}
	return store.NewDB(path)
}

// newTracing builds the trace provider from config, deriving the default
// trace file location when none is set.
func newTracing() (*tracing.Provider, error) {
	tc := tracing.DefaultConfig()
	tc.Enabled = cfg.Tracing.Enabled
	if cfg.Tracing.Exporter != "" {
		tc.Exporter = cfg.Tracing.Exporter
	}
	tc.FilePath = cfg.Tracing.FilePath
	if tc.FilePath == "" {
		tc.FilePath = config.DefaultTracesFilePath()
	}
	if cfg.Tracing.OTLPEndpoint != "" {
		tc.OTLPEndpoint = cfg.Tracing.OTLPEndpoint
	}
	tc.SampleRate = cfg.Tracing.SampleRate
	return tracing.NewProvider(tc)
}

// newGenerator wires the assistant client, catalogue, and store
// repositories into a Generator.
func newGenerator(catalogue *registry.Handle, db *store.DB, provider *tracing.Provider) (*generator.Generator, error) {
	client, err := llm.NewOpenAIClient(llm.Config{
		BaseURL:     cfg.Assistant.BaseURL,
		Model:       cfg.Assistant.Model,
		APIKey:      cfg.Assistant.APIKey(),
		Timeout:     cfg.Assistant.Timeout(),
		Temperature: cfg.Assistant.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("assistant client: %w", err)
	}
	return generator.New(generator.Config{
		Assistant: client,
		Catalogue: catalogue,
		Examples:  db.ExampleRepository(),
		Context:   db.ContextRepository(),
		Tracer:    provider.Tracer(),
		CacheTTL:  cfg.Generation.CacheTTL(),
	})
}

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
