package compare

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/beamdocs/docharvest/constants"
	"github.com/beamdocs/docharvest/internal/entity"
)

// FileReport is the scored outcome for one candidate/reference pair.
type FileReport struct {
	FileID     string            `json:"File ID"`
	Dataset    constants.Dataset `json:"Dataset"`
	File       string            `json:"File,omitempty"`
	Accuracy   float64           `json:"Accuracy"` // percentage, [0,100]
	Mismatches []Mismatch        `json:"Mismatches"`
}

// Report aggregates a whole evaluation run. Unmatched records are reported,
// never silently dropped.
type Report struct {
	Files               []FileReport `json:"Files"`
	AverageAccuracy     float64      `json:"Average Accuracy"`
	UnmatchedCandidates []string     `json:"Unmatched Candidates,omitempty"`
	UnmatchedReferences []string     `json:"Unmatched References,omitempty"`
}

// Evaluate scores every candidate record against the reference record with
// the same File ID. Accuracy per file is max(0, score)·100 rounded to two
// decimals; the average covers matched files only.
func Evaluate(candidates, references []entity.Record, logger *slog.Logger) (Report, error) {
	if logger == nil {
		logger = slog.Default()
	}

	refByID := make(map[string]entity.Record, len(references))
	for _, r := range references {
		refByID[r.FileID] = r
	}

	var report Report
	matched := make(map[string]struct{}, len(candidates))
	var sum float64

	for _, cand := range candidates {
		ref, ok := refByID[cand.FileID]
		if !ok {
			logger.Warn("evaluate.unmatched_candidate", "file_id", cand.FileID)
			report.UnmatchedCandidates = append(report.UnmatchedCandidates, cand.FileID)
			continue
		}
		matched[cand.FileID] = struct{}{}

		candPayload, err := cand.Payload()
		if err != nil {
			return Report{}, fmt.Errorf("candidate %s: %w", cand.FileID, err)
		}
		refPayload, err := ref.Payload()
		if err != nil {
			return Report{}, fmt.Errorf("reference %s: %w", ref.FileID, err)
		}

		res := Compare(candPayload, refPayload)
		accuracy := round2(res.Score * 100)
		mismatches := res.Mismatches
		if accuracy >= 100 {
			mismatches = nil
		}
		report.Files = append(report.Files, FileReport{
			FileID:     cand.FileID,
			Dataset:    cand.Dataset,
			File:       cand.File,
			Accuracy:   accuracy,
			Mismatches: mismatches,
		})
		sum += accuracy
	}

	for id := range refByID {
		if _, ok := matched[id]; !ok {
			report.UnmatchedReferences = append(report.UnmatchedReferences, id)
		}
	}
	sort.Strings(report.UnmatchedReferences)

	if len(report.Files) > 0 {
		report.AverageAccuracy = round2(sum / float64(len(report.Files)))
	}
	logger.Info("evaluate.complete",
		"files", len(report.Files),
		"average_accuracy", report.AverageAccuracy,
		"unmatched_candidates", len(report.UnmatchedCandidates),
		"unmatched_references", len(report.UnmatchedReferences),
	)
	return report, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
