// Package main provides the entry point for the job application form CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jonathan/job-application-form/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:               "application_form",
	Short:             "Job application form validator",
	Long:              "Collects job application fields, validates them according to the selected position, and prints the accepted application summary.",
	SilenceUsage:      true,
	PersistentPreRunE: loadAppConfig,
}

var (
	configPath string
	verbose    bool

	appConfig = config.Defaults()
	logger    = slog.Default()
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file (optional)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
}

// loadAppConfig resolves config file, defaults and environment, in that order
// of increasing precedence, and sets up logging.
func loadAppConfig(_ *cobra.Command, _ []string) error {
	cfg := config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = *loaded
	}

	cfg = cfg.MergeWithDefaults(config.Defaults())
	cfg = cfg.ApplyEnv()
	if verbose {
		cfg.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	appConfig = cfg
	logger = cfg.NewLogger(os.Stderr)
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
