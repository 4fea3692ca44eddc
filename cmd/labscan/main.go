// Command labscan reconstructs lab-report tables from page images and
// decodes chat-completion answers into typed records.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tsawler/labscan/config"
	"github.com/tsawler/labscan/internal/logging"
)

var (
	// Global flags
	cfgFile  string
	logLevel string

	// Configuration and logger
	cfg    *config.Config
	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "labscan",
	Short: "Lab-report table reconstruction and answer normalization",
	Long: `labscan turns photographed or scanned lab-result pages into tables and
chat-completion answers into typed records.

Settings come from --config, LABSCAN_* environment variables and a .env file
in the working directory.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		level := cfg.Log.Level
		if logLevel != "" {
			level = logLevel
		}
		logger = logging.New(logging.Config{
			Level:   level,
			Format:  cfg.Log.Format,
			Service: "labscan",
		})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: env vars only)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(newTableCmd())
	rootCmd.AddCommand(newTokensCmd())
	rootCmd.AddCommand(newNormalizeCmd())
	rootCmd.AddCommand(newAnalyzeCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
