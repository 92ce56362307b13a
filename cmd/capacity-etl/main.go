// cmd/capacity-etl/main.go
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"workforce-capacity-etl/pkg/config"
)

var version = "dev"

// Flag overrides; empty means the env-derived setting wins.
var (
	flagConfig  string
	flagDataDir string
	flagOutDir  string
)

var rootCmd = &cobra.Command{
	Use:   "capacity-etl",
	Short: "Healthcare workforce and capacity data cleaning pipeline",
	Long: `capacity-etl cleans raw healthcare workforce and capacity extracts
into validated canonical tables, persists them as parquet (and
optionally Postgres), and computes workforce-capacity alignment
metrics against international benchmarks.`,
}

func main() {
	// A missing .env is fine; settings fall back to defaults.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// setup loads settings, applies flag overrides, and builds the logger
// shared by all commands.
func setup() (*config.Settings, *zap.Logger, error) {
	settings := config.LoadSettings()
	if flagConfig != "" {
		settings.RulesPath = flagConfig
	}
	if flagDataDir != "" {
		settings.DataDir = flagDataDir
	}
	if flagOutDir != "" {
		settings.OutDir = flagOutDir
	}
	logger, err := settings.BuildLogger()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return settings, logger, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to the cleaning rules YAML file")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "directory holding the raw CSV extracts")
	rootCmd.PersistentFlags().StringVar(&flagOutDir, "out-dir", "", "directory for cleaned parquet outputs")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the capacity-etl version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("capacity-etl", version)
	},
}
