// cmd/capacity-etl/clean.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"workforce-capacity-etl/pkg/config"
	"workforce-capacity-etl/pkg/pipeline"
	"workforce-capacity-etl/pkg/sink"
	"workforce-capacity-etl/pkg/source"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Run the full cleaning pipeline over the raw extracts",
	Long: `Loads the raw workforce and capacity CSV extracts, runs the staged
cleaning transformations, validates the canonical tables, writes the
parquet outputs, and renders the quality report and data dictionary.`,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	settings, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	rules, err := config.LoadRules(settings.RulesPath)
	if err != nil {
		return fmt.Errorf("failed to load cleaning rules: %w", err)
	}
	logger.Info("Configuration loaded", zap.String("path", settings.RulesPath))

	reader, err := source.NewCSVReader(logger)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	parquetSink, err := sink.NewParquetSink(settings.OutDir, logger)
	if err != nil {
		return err
	}
	sinks := []sink.Sink{parquetSink}

	if settings.PostgresDSN != "" {
		pgSink, err := sink.NewPostgresSink(ctx, settings.PostgresDSN, settings.PostgresBatchSize, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize Postgres sink: %w", err)
		}
		defer pgSink.Close()
		sinks = append(sinks, pgSink)
	}

	p, err := pipeline.New(logger, rules)
	if err != nil {
		return err
	}

	result, err := p.Run(ctx, reader, sinks, settings)
	if err != nil {
		if result != nil && result.ReportPath != "" {
			logger.Error("Pipeline failed, see quality report",
				zap.String("report", result.ReportPath),
				zap.Error(err))
		}
		return err
	}

	logger.Info("Pipeline completed successfully",
		zap.String("runID", result.RunID),
		zap.Int("workforceRows", result.Workforce.Table.NumRows()),
		zap.Int("capacityRows", result.Capacity.Table.NumRows()),
		zap.String("report", result.ReportPath))
	fmt.Print(result.Metrics.Summary())
	return nil
}
