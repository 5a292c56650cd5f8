package extract

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/beamdocs/docharvest/constants"
	"github.com/beamdocs/docharvest/internal/common"
	"github.com/beamdocs/docharvest/internal/llm"
)

// Failure carries the stage a document died in and why, for diagnostics.
type Failure struct {
	Stage  constants.Stage
	Reason string // empty_text | capability_error | invalid_json | coercion_error
	Err    error
}

func (f *Failure) Error() string {
	return string(f.Stage) + "/" + f.Reason + ": " + f.Err.Error()
}

func (f *Failure) Unwrap() error { return f.Err }

// Result is the outcome of processing one document. Failure is nil on
// success; Attempts counts capability invocations including the last one.
type Result struct {
	Payload  map[string]any
	Attempts int
	Failure  *Failure
}

// Config holds behavior knobs for the orchestrator.
type Config struct {
	Temperature float32       // pinned to 0 for reproducible extraction
	MaxTokens   int           // output ceiling per call
	MaxRetries  int           // capability invocation bound, default 3
	RetryDelay  time.Duration // grows linearly with the attempt number
}

// Orchestrator drives one document through
// TEXT_EXTRACTED → PROMPTED → PARSED → NORMALIZED → RECONCILED,
// collapsing to FAILED on the first unrecoverable error.
type Orchestrator struct {
	cfg    Config
	client llm.ChatClient
	logger *slog.Logger
	sleep  func(time.Duration)
}

func NewOrchestrator(cfg Config, client llm.ChatClient, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 2 * time.Second
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 2048
	}
	return &Orchestrator{cfg: cfg, client: client, logger: logger, sleep: time.Sleep}
}

// Process turns extracted document text into a schema-conformant payload.
// Transient failures (capability error, malformed reply) are retried up to
// the configured bound with a growing delay; coercion failures are
// deterministic and fail immediately. A failing document never panics or
// propagates — the caller reads Result.Failure.
func (o *Orchestrator) Process(ctx context.Context, text string, dataset constants.Dataset) Result {
	if strings.TrimSpace(text) == "" {
		return o.fail(dataset, 0, &Failure{
			Stage:  constants.StageTextExtracted,
			Reason: "empty_text",
			Err:    common.ErrExtractionEmpty,
		})
	}

	system, user := BuildPrompt(dataset, text)
	req := llm.CompletionRequest{
		System:      system,
		User:        user,
		Temperature: o.cfg.Temperature,
		MaxTokens:   o.cfg.MaxTokens,
	}

	var last *Failure
	for attempt := 1; attempt <= o.cfg.MaxRetries; attempt++ {
		if attempt > 1 {
			o.sleep(o.cfg.RetryDelay * time.Duration(attempt-1))
		}
		if err := ctx.Err(); err != nil {
			return o.fail(dataset, attempt-1, &Failure{
				Stage: constants.StagePrompted, Reason: "capability_error", Err: err,
			})
		}

		reply, err := o.client.Complete(ctx, req)
		if err != nil {
			last = &Failure{
				Stage:  constants.StagePrompted,
				Reason: "capability_error",
				Err:    common.WrapError(err, common.ErrCapability.Error()),
			}
			o.logger.Warn("extract.attempt_failed",
				"dataset", dataset, "attempt", attempt, "reason", last.Reason, "error", err)
			continue
		}

		var payload map[string]any
		if err := json.Unmarshal([]byte(llm.StripCodeFence(reply)), &payload); err != nil {
			last = &Failure{
				Stage:  constants.StageParsed,
				Reason: "invalid_json",
				Err:    common.WrapError(err, common.ErrMalformedReply.Error()),
			}
			o.logger.Warn("extract.attempt_failed",
				"dataset", dataset, "attempt", attempt, "reason", last.Reason, "error", err)
			continue
		}

		o.logger.Debug("extract.stage", "dataset", dataset, "stage", constants.StageParsed)

		dropped, err := Reconcile(dataset, payload)
		if err != nil {
			// coercion failures are deterministic; retrying cannot help
			o.logger.Error("extract.reconcile_failed", "dataset", dataset, "error", err)
			return o.fail(dataset, attempt, &Failure{
				Stage: constants.StageReconciled, Reason: "coercion_error", Err: err,
			})
		}
		if len(dropped) > 0 {
			o.logger.Warn("extract.pruned_keys", "dataset", dataset, "dropped", dropped)
		}
		o.logger.Debug("extract.stage", "dataset", dataset, "stage", constants.StageNormalized)

		conformant, err := json.Marshal(payload)
		if err == nil {
			err = llm.ValidatePayload(SchemaFor(dataset), conformant)
		}
		if err != nil {
			o.logger.Error("extract.schema_validation_failed", "dataset", dataset, "error", err)
			return o.fail(dataset, attempt, &Failure{
				Stage:  constants.StageReconciled,
				Reason: "coercion_error",
				Err:    common.WrapError(err, common.ErrSchemaCoercion.Error()),
			})
		}

		o.logger.Info("extract.ok",
			"dataset", dataset, "stage", constants.StageReconciled,
			"attempt", attempt, "keys", len(payload))
		return Result{Payload: payload, Attempts: attempt}
	}

	return o.fail(dataset, o.cfg.MaxRetries, last)
}

// fail marks the document terminally failed and returns the result. The
// FAILED stage is the terminal marker; Failure.Stage names the stage the
// document died in.
func (o *Orchestrator) fail(dataset constants.Dataset, attempts int, f *Failure) Result {
	o.logger.Error("extract.failed",
		"dataset", dataset,
		"stage", constants.StageFailed,
		"failed_in", f.Stage,
		"reason", f.Reason,
		"attempts", attempts,
		"error", f.Err,
	)
	return Result{Attempts: attempts, Failure: f}
}
