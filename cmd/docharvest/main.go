package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/beamdocs/docharvest/internal/batch"
	"github.com/beamdocs/docharvest/internal/common"
	"github.com/beamdocs/docharvest/internal/extract"
	"github.com/beamdocs/docharvest/internal/llm/openai"
	"github.com/beamdocs/docharvest/internal/ocr"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		dir  = flag.String("dir", "", "directory of PDFs to process (required)")
		out  = flag.String("out", "", "output artifact path (defaults to <dir>/../extracted_data.json)")
		diag = flag.String("diag", "", "diagnostics output path (defaults next to the artifact)")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}
	if *out == "" {
		*out = filepath.Join(filepath.Dir(*dir), "extracted_data.json")
	}
	if *diag == "" {
		*diag = filepath.Join(filepath.Dir(*out), "diagnostics.json")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded", "error", err)
	}

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	extractor := ocr.NewExtractor(ocr.Config{
		Languages: cfg.OCR.Languages,
		DPI:       cfg.OCR.DPI,
		MaxPages:  cfg.OCR.MaxPages,
	}, logger)

	client := openai.NewClient(openai.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     cfg.LLM.Timeout,
	}, logger)
	logger.Info("extraction capability initialized", "model", cfg.LLM.Model)

	orchestrator := extract.NewOrchestrator(extract.Config{
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		MaxRetries:  cfg.LLM.MaxRetries,
		RetryDelay:  cfg.LLM.RetryDelay,
	}, client, logger)

	runner := batch.NewRunner(extractor, orchestrator, logger)

	records, diagnostics, err := runner.Run(ctx, *dir)
	if err != nil {
		logger.Error("batch run failed", "error", err)
		os.Exit(1)
	}

	if err := batch.WriteJSONAtomic(*out, records); err != nil {
		logger.Error("failed to write artifact", "path", *out, "error", err)
		os.Exit(1)
	}
	if err := batch.WriteJSONAtomic(*diag, diagnostics); err != nil {
		logger.Error("failed to write diagnostics", "path", *diag, "error", err)
		os.Exit(1)
	}

	fmt.Printf("Batch extraction complete!\n")
	fmt.Printf("- Files scanned: %d\n", diagnostics.Scanned)
	fmt.Printf("- Succeeded: %d\n", diagnostics.Succeeded)
	fmt.Printf("- Failed: %d\n", diagnostics.Failed)
	fmt.Printf("- Skipped: %d\n", diagnostics.Skipped)
	fmt.Printf("- Artifact: %s\n", *out)
	fmt.Printf("- Diagnostics: %s\n", *diag)
}
