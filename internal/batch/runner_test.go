package batch

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/beamdocs/docharvest/constants"
	"github.com/beamdocs/docharvest/internal/common"
	"github.com/beamdocs/docharvest/internal/extract"
	"github.com/beamdocs/docharvest/internal/ocr"
)

// stubExtractor returns canned text per file path suffix.
type stubExtractor struct {
	text map[string]string // filename -> text
	err  error
}

func (s *stubExtractor) Extract(_ context.Context, path string) (ocr.ExtractionResult, error) {
	if s.err != nil {
		return ocr.ExtractionResult{}, s.err
	}
	for name, text := range s.text {
		if strings.HasSuffix(path, name) {
			return ocr.ExtractionResult{Text: text, Pages: 1, Method: "pdf-text"}, nil
		}
	}
	return ocr.ExtractionResult{}, nil
}

// stubProcessor fails the files listed in failures, succeeds otherwise.
type stubProcessor struct {
	failures map[string]string // text -> failure reason
}

func (s *stubProcessor) Process(_ context.Context, text string, dataset constants.Dataset) extract.Result {
	if reason, ok := s.failures[text]; ok {
		return extract.Result{Attempts: 3, Failure: &extract.Failure{
			Stage:  constants.StageParsed,
			Reason: reason,
			Err:    common.ErrMalformedReply,
		}}
	}
	return extract.Result{
		Payload:  map[string]any{"business_name": "Acme GmbH"},
		Attempts: 1,
	}
}

func newTestRunner(files []string, extractor TextExtractor, processor Processor) *Runner {
	r := NewRunner(extractor, processor, nil)
	r.readDir = func(string) ([]string, error) { return files, nil }
	return r
}

func TestRunMixedBatch(t *testing.T) {
	files := []string{
		"invoice_001.pdf",
		"invoice_002.pdf",
		"invoice_003.pdf",
		"order_001.pdf",
		"scan_note.pdf",
	}
	extractor := &stubExtractor{text: map[string]string{
		"invoice_001.pdf": "Rechnung 1",
		"invoice_002.pdf": "Rechnung 2",
		"invoice_003.pdf": "kaputt",
		"order_001.pdf":   "Bestellung 1",
		"scan_note.pdf":   "Notiz",
	}}
	processor := &stubProcessor{failures: map[string]string{
		"kaputt": "invalid_json",
	}}
	r := newTestRunner(files, extractor, processor)

	records, diag, err := r.Run(context.Background(), "/in")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if diag.Scanned != 5 || diag.Succeeded != 3 || diag.Failed != 1 || diag.Skipped != 1 {
		t.Errorf("diag = %+v, want scanned=5 succeeded=3 failed=1 skipped=1", diag)
	}
	if diag.RunID == "" {
		t.Error("RunID is empty")
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want 3 (the failure yields no record)", len(records))
	}

	// records follow the input order and carry extension-less File IDs
	wantIDs := []string{"invoice_001", "invoice_002", "order_001"}
	for i, want := range wantIDs {
		if records[i].FileID != want {
			t.Errorf("records[%d].FileID = %q, want %q", i, records[i].FileID, want)
		}
	}
	if records[0].Dataset != constants.DatasetInvoice {
		t.Errorf("records[0].Dataset = %v, want invoice", records[0].Dataset)
	}
	if records[2].Dataset != constants.DatasetOrder {
		t.Errorf("records[2].Dataset = %v, want order", records[2].Dataset)
	}

	if len(diag.Outcomes) != 5 {
		t.Fatalf("outcomes = %d, want one per scanned file", len(diag.Outcomes))
	}
	for _, o := range diag.Outcomes {
		switch o.File {
		case "invoice_003.pdf":
			if o.Status != StatusFailed || o.Reason != "invalid_json" || o.Attempts != 3 {
				t.Errorf("invoice_003 outcome = %+v, want failed/invalid_json after 3 attempts", o)
			}
		case "scan_note.pdf":
			if o.Status != StatusSkipped {
				t.Errorf("scan_note outcome = %+v, want skipped", o)
			}
		default:
			if o.Status != StatusSucceeded {
				t.Errorf("%s outcome = %+v, want succeeded", o.File, o)
			}
		}
	}
}

func TestRunEmptyExtractionIsFailure(t *testing.T) {
	extractor := &stubExtractor{text: map[string]string{"invoice_001.pdf": "   \n"}}
	r := newTestRunner([]string{"invoice_001.pdf"}, extractor, &stubProcessor{})

	records, diag, err := r.Run(context.Background(), "/in")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(records) != 0 || diag.Failed != 1 {
		t.Errorf("records=%d failed=%d, want 0 records and 1 failure", len(records), diag.Failed)
	}
	if diag.Outcomes[0].Reason != common.ErrExtractionEmpty.Error() {
		t.Errorf("reason = %q, want %q", diag.Outcomes[0].Reason, common.ErrExtractionEmpty.Error())
	}
}

func TestRunUnreadableDirIsFatal(t *testing.T) {
	r := NewRunner(&stubExtractor{}, &stubProcessor{}, nil)
	r.readDir = func(string) ([]string, error) { return nil, errors.New("permission denied") }

	_, _, err := r.Run(context.Background(), "/nope")
	if err == nil {
		t.Fatal("Run returned nil error for unreadable directory")
	}
	var appErr *common.AppError
	if !errors.As(err, &appErr) || appErr.Code != "BATCH_INPUT" {
		t.Errorf("error = %v, want AppError BATCH_INPUT", err)
	}
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newTestRunner([]string{"invoice_001.pdf"}, &stubExtractor{}, &stubProcessor{})
	_, _, err := r.Run(ctx, "/in")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
