package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/beamdocs/docharvest/internal/batch"
	"github.com/beamdocs/docharvest/internal/compare"
	"github.com/beamdocs/docharvest/internal/export"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		extracted = flag.String("extracted", "", "extracted batch artifact (required)")
		reference = flag.String("reference", "", "ground-truth batch artifact (required)")
		out       = flag.String("out", "evaluation_metrics.json", "evaluation report output path")
		xlsx      = flag.String("xlsx", "", "optional XLSX report output path")
	)
	flag.Parse()

	if *extracted == "" || *reference == "" {
		printError("Error: --extracted and --reference are required\n")
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	candidates, err := batch.LoadRecords(*extracted)
	if err != nil {
		logger.Error("failed to load extracted artifact", "error", err)
		os.Exit(1)
	}
	references, err := batch.LoadRecords(*reference)
	if err != nil {
		logger.Error("failed to load reference artifact", "error", err)
		os.Exit(1)
	}

	report, err := compare.Evaluate(candidates, references, logger)
	if err != nil {
		logger.Error("evaluation failed", "error", err)
		os.Exit(1)
	}

	if err := batch.WriteJSONAtomic(*out, report); err != nil {
		logger.Error("failed to write report", "path", *out, "error", err)
		os.Exit(1)
	}

	if *xlsx != "" {
		svc := export.NewService(logger)
		b, err := svc.EvaluationXLSX(report)
		if err != nil {
			logger.Error("failed to render XLSX report", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*xlsx, b, 0644); err != nil {
			logger.Error("failed to write XLSX report", "path", *xlsx, "error", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Evaluation complete!\n")
	fmt.Printf("- Files scored: %d\n", len(report.Files))
	fmt.Printf("- Average accuracy: %.2f%%\n", report.AverageAccuracy)
	if n := len(report.UnmatchedCandidates); n > 0 {
		fmt.Printf("- Candidates without reference: %d\n", n)
	}
	if n := len(report.UnmatchedReferences); n > 0 {
		fmt.Printf("- References without candidate: %d\n", n)
	}
	fmt.Printf("- Report: %s\n", *out)
}
