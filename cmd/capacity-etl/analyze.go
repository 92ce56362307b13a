// cmd/capacity-etl/analyze.go
package main

import (
	"fmt"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"workforce-capacity-etl/pkg/metrics"
	"workforce-capacity-etl/pkg/model"
	"workforce-capacity-etl/pkg/sink"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Compute workforce-capacity metrics from the cleaned outputs",
	Long: `Reads the cleaned parquet tables and computes workforce-to-bed and
doctor-to-nurse ratios, growth-rate mismatch indices, sustained
misalignments, and the workforce-capacity correlation, comparing
ratios against international benchmarks.`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	settings, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	workforce, err := parquet.ReadFile[model.WorkforceRecord](filepath.Join(settings.OutDir, sink.WorkforceFile))
	if err != nil {
		return fmt.Errorf("failed to read cleaned workforce data: %w", err)
	}
	capacity, err := parquet.ReadFile[model.CapacityRecord](filepath.Join(settings.OutDir, sink.CapacityFile))
	if err != nil {
		return fmt.Errorf("failed to read cleaned capacity data: %w", err)
	}
	logger.Info("Loaded cleaned data",
		zap.Int("workforceRecords", len(workforce)),
		zap.Int("capacityRecords", len(capacity)))

	analyzer, err := metrics.NewAnalyzer(logger)
	if err != nil {
		return err
	}

	ratios, err := analyzer.WorkforceToBedRatios(workforce, capacity)
	if err != nil {
		return err
	}
	fmt.Println("Workforce-to-bed ratios (hospital capacity only):")
	for _, r := range ratios {
		fmt.Printf("  %d %-16s %.2f FTE/bed (%s)\n", r.Year, r.Sector, r.Ratio, r.Status)
	}

	dnRatios := analyzer.DoctorToNurseRatios(workforce)
	fmt.Println("\nDoctor-to-nurse ratios:")
	for _, r := range dnRatios {
		note := "outside benchmark"
		if r.WithinBenchmark {
			note = "within benchmark"
		}
		fmt.Printf("  %d %-16s %.2f (%s)\n", r.Year, r.Sector, r.Ratio, note)
	}

	points := analyzer.MismatchIndex(workforce, capacity)
	misalignments := analyzer.DetectMisalignments(points, metrics.SignificantDivergence, metrics.MinYearsSustained)
	fmt.Println("\nSustained workforce-capacity misalignments:")
	if len(misalignments) == 0 {
		fmt.Println("  none detected")
	}
	for _, m := range misalignments {
		fmt.Printf("  %-16s %s severity: avg %+.2f pp over %d years (cumulative %+.2f pp)\n",
			m.Sector, m.Severity, m.AvgMismatch, len(m.YearsAffected), m.CumulativeMismatch)
	}

	var x, y []float64
	for _, r := range ratios {
		x = append(x, float64(r.TotalWorkforce))
		y = append(y, float64(r.TotalBeds))
	}
	if len(x) >= 3 {
		corr, err := analyzer.Correlation(x, y, 0.05)
		if err != nil {
			return err
		}
		fmt.Printf("\nWorkforce-capacity correlation: %s\n", corr.Conclusion)
	}

	return nil
}
