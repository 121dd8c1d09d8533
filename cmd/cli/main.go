package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"absim/adapters/abtest"
	"absim/adapters/report"
	"absim/adapters/rng"
	"absim/app"
	"absim/ports"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// Optional .env for default overrides; absence is fine
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "absim",
		Short: "Monte Carlo calibration of A/B testing procedures",
		Long: `absim estimates the empirical Type I error rate and power of two-sample
statistical tests by repeatedly simulating A/B experiments under configurable
data-generating processes.`,
	}

	rootCmd.AddCommand(
		newReportCmd(),
		newSweepCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newService() *app.SweepService {
	return app.NewSweepService(
		rng.NewStreamProvider(),
		abtest.NewMeanDiffTest(),
		abtest.NewConversionDiffTest(),
		abtest.NewRatioDiffTest(),
	)
}

func newReportCmd() *cobra.Command {
	var trials int
	var alpha float64
	var seedBase int64

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run the quick calibration scenarios and print rejection rates",
		Long: `Run a small set of fixed simulations and print rejection rates with Wilson
intervals. Useful as a fast sanity check that each test is calibrated.

Example: absim report --trials 2000 --alpha 0.05 --seed 0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := newService().Report(cmd.Context(), trials, alpha, seedBase)
			if err != nil {
				return err
			}
			return report.NewTextWriter(os.Stdout).WriteReport(summary)
		},
	}

	cmd.Flags().IntVar(&trials, "trials", envInt("ABSIM_TRIALS", 2000), "Simulated experiments per estimate")
	cmd.Flags().Float64Var(&alpha, "alpha", envFloat("ABSIM_ALPHA", 0.05), "Significance threshold")
	cmd.Flags().Int64Var(&seedBase, "seed", envInt64("ABSIM_SEED", 0), "Base random seed")
	return cmd
}

func newSweepCmd() *cobra.Command {
	var outPath, xlsxPath string
	var trials, parallelism int
	var alpha, confidence float64
	var seedBase int64
	var sizes []int
	var failFast bool

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Sweep sample sizes and write rejection rates to CSV",
		Long: `Run the calibration sweep across sample sizes and write one CSV row per
size: Type I error and power for the mean, conversion and ratio tests.

Example: absim sweep --sizes 100,200,500,1000 --trials 1000 --out results/sweep.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := newService().Run(cmd.Context(), app.SweepRequest{
				SampleSizes: sizes,
				Trials:      trials,
				Alpha:       alpha,
				SeedBase:    seedBase,
				Confidence:  confidence,
				Parallelism: parallelism,
				FailFast:    failFast,
			})
			if err != nil {
				return err
			}

			writers := []ports.ReportPort{report.NewCSVWriter(outPath)}
			if xlsxPath != "" {
				writers = append(writers, report.NewExcelWriter(xlsxPath))
			}
			for _, w := range writers {
				if err := w.WriteSweep(result); err != nil {
					return err
				}
			}

			log.Printf("sweep %s: %d rows (%d failed) in %dms, wrote %s",
				result.SweepID, len(result.Rows), result.FailedRows, result.RuntimeMs, outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "results/sweep.csv", "CSV output path")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Optional xlsx output path with interval bounds")
	cmd.Flags().IntSliceVar(&sizes, "sizes", []int{100, 200, 500, 1000}, "Sample sizes per group, one sweep row each")
	cmd.Flags().IntVar(&trials, "trials", envInt("ABSIM_TRIALS", 1000), "Simulated experiments per estimate")
	cmd.Flags().Float64Var(&alpha, "alpha", envFloat("ABSIM_ALPHA", 0.05), "Significance threshold")
	cmd.Flags().Float64Var(&confidence, "confidence", 0.95, "Wilson interval confidence level")
	cmd.Flags().Int64Var(&seedBase, "seed-base", envInt64("ABSIM_SEED", 0), "Base seed; per-row seeds derive from it")
	cmd.Flags().IntVar(&parallelism, "parallelism", 1, "Max sweep rows in flight (results are identical regardless)")
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "Abort the sweep on the first failed row")
	return cmd
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("ignoring invalid %s=%q", key, v)
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
		log.Printf("ignoring invalid %s=%q", key, v)
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("ignoring invalid %s=%q", key, v)
	}
	return fallback
}
