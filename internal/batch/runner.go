package batch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/beamdocs/docharvest/constants"
	"github.com/beamdocs/docharvest/internal/common"
	"github.com/beamdocs/docharvest/internal/entity"
	"github.com/beamdocs/docharvest/internal/extract"
	"github.com/beamdocs/docharvest/internal/ocr"
)

// TextExtractor is stage 1: file -> text.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (ocr.ExtractionResult, error)
}

// Processor is stage 2: text -> schema-conformant payload.
type Processor interface {
	Process(ctx context.Context, text string, dataset constants.Dataset) extract.Result
}

// DirReader lists a directory; stubbed in tests.
type DirReader func(dir string) ([]string, error)

const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
	StatusSkipped   = "skipped"
)

// Outcome records what happened to one document.
type Outcome struct {
	File     string            `json:"file"`
	FileID   string            `json:"file_id,omitempty"`
	Dataset  constants.Dataset `json:"dataset,omitempty"`
	Status   string            `json:"status"`
	Reason   string            `json:"reason,omitempty"`
	Attempts int               `json:"attempts,omitempty"`
}

// Diagnostics aggregates a run. Every failure and skip is named; nothing is
// silently swallowed.
type Diagnostics struct {
	RunID     string    `json:"run_id"`
	Scanned   int       `json:"scanned"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
	Skipped   int       `json:"skipped"`
	Outcomes  []Outcome `json:"outcomes"`
}

// Runner iterates a directory of PDFs, classifies each by filename, drives
// the extraction pipeline and aggregates results. Documents are processed
// strictly sequentially in lexicographic filename order.
type Runner struct {
	extractor TextExtractor
	processor Processor
	readDir   DirReader
	logger    *slog.Logger
}

func NewRunner(extractor TextExtractor, processor Processor, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		extractor: extractor,
		processor: processor,
		readDir:   listPDFs,
		logger:    logger,
	}
}

// Run processes every PDF under dir. One document's failure never aborts the
// batch; only a missing/unreadable input directory is fatal.
func (r *Runner) Run(ctx context.Context, dir string) ([]entity.Record, Diagnostics, error) {
	diag := Diagnostics{RunID: uuid.New().String()}

	names, err := r.readDir(dir)
	if err != nil {
		return nil, diag, common.NewAppError("BATCH_INPUT",
			fmt.Sprintf("cannot read input directory %q", dir), err)
	}
	r.logger.Info("batch.run.start", "run_id", diag.RunID, "dir", dir, "files", len(names))

	var records []entity.Record
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return records, diag, err
		}
		diag.Scanned++

		dataset, ok := constants.ClassifyFilename(name)
		if !ok {
			r.logger.Info("batch.skip",
				"file", name,
				"reason", "no dataset keyword",
				"known_datasets", constants.AsStringSlice(),
			)
			diag.Skipped++
			diag.Outcomes = append(diag.Outcomes, Outcome{
				File:   name,
				Status: StatusSkipped,
				Reason: common.ErrClassificationSkip.Error(),
			})
			continue
		}

		fileID := strings.TrimSuffix(name, filepath.Ext(name))
		outcome := r.processOne(ctx, filepath.Join(dir, name), name, fileID, dataset, &records)
		diag.Outcomes = append(diag.Outcomes, outcome)
		if outcome.Status == StatusSucceeded {
			diag.Succeeded++
		} else {
			diag.Failed++
		}
	}

	r.logger.Info("batch.run.complete",
		"run_id", diag.RunID,
		"scanned", diag.Scanned,
		"succeeded", diag.Succeeded,
		"failed", diag.Failed,
		"skipped", diag.Skipped,
	)
	return records, diag, nil
}

func (r *Runner) processOne(ctx context.Context, path, name, fileID string, dataset constants.Dataset, records *[]entity.Record) Outcome {
	outcome := Outcome{File: name, FileID: fileID, Dataset: dataset}

	res, err := r.extractor.Extract(ctx, path)
	if err == nil && strings.TrimSpace(res.Text) == "" {
		err = common.ErrExtractionEmpty
	}
	if err != nil {
		r.logger.Error("batch.extract_failed", "file", name, "error", err, "warnings", res.Warnings)
		outcome.Status = StatusFailed
		outcome.Reason = err.Error()
		return outcome
	}
	r.logger.Debug("batch.text_extracted",
		"file", name, "method", res.Method, "pages", res.Pages, "bytes", len(res.Text))

	result := r.processor.Process(ctx, res.Text, dataset)
	outcome.Attempts = result.Attempts
	if result.Failure != nil {
		r.logger.Error("batch.process_failed",
			"file", name, "stage", result.Failure.Stage, "reason", result.Failure.Reason,
			"attempts", result.Attempts, "error", result.Failure.Err)
		outcome.Status = StatusFailed
		outcome.Reason = result.Failure.Reason
		return outcome
	}

	rec, err := entity.NewRecord(fileID, dataset, name, result.Payload)
	if err != nil {
		outcome.Status = StatusFailed
		outcome.Reason = err.Error()
		return outcome
	}
	*records = append(*records, rec)
	outcome.Status = StatusSucceeded
	return outcome
}
