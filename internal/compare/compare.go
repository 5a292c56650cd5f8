// Package compare scores a candidate JSON tree against a reference tree,
// producing partial credit despite type drift (string vs. number), float
// rounding and array reordering. Scoring is purely structural, recursive and
// deterministic; it is normalized against the reference's key set, so keys
// the reference expects but the candidate lacks are fully penalized while
// candidate-only keys cost only a small multiplicative penalty.
package compare

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

const (
	// FloatTolerance is the absolute difference under which two floating
	// values count as equal.
	FloatTolerance = 0.01
	// ExtraKeyPenalty is the multiplicative reduction per candidate key
	// absent from the reference.
	ExtraKeyPenalty = 0.01
)

// Mismatch names one discrepancy. Kind is "Missing", "Extra", a value
// inequality ("a != b") or an array-length note; Nested carries the
// sub-tree's own mismatches.
type Mismatch struct {
	Field  string     `json:"field,omitempty"`
	Kind   string     `json:"mismatch,omitempty"`
	Nested []Mismatch `json:"mismatches,omitempty"`
}

// Result is the outcome of comparing one candidate/reference pair.
type Result struct {
	Score      float64
	Mismatches []Mismatch
}

// Compare scores candidate against reference. A zero-mismatch pair scores
// exactly 1.0; the score is clamped to [0,1] (many extra keys could
// otherwise drive it negative).
func Compare(candidate, reference any) Result {
	score, mismatches := compareObjects(candidate, reference)
	return Result{Score: math.Min(1, math.Max(0, score)), Mismatches: mismatches}
}

// compareValues compares scalars. Numeric coercion applies only across types
// (one string, one number, or two numbers within tolerance); two strings
// compare by exact equality, so "0012" and "12" stay distinct.
func compareValues(a, b any) bool {
	if a == b {
		return true
	}
	_, aStr := a.(string)
	_, bStr := b.(string)
	if aStr && bStr {
		return false
	}
	na, aNum := toNumber(a)
	nb, bNum := toNumber(b)
	return aNum && bNum && math.Abs(na-nb) <= FloatTolerance
}

func toNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// compareObjects recursively scores two JSON values. Non-object pairs fall
// through to scalar comparison.
func compareObjects(candidate, reference any) (float64, []Mismatch) {
	cand, candOK := candidate.(map[string]any)
	ref, refOK := reference.(map[string]any)
	if !candOK || !refOK {
		if compareValues(candidate, reference) {
			return 1.0, nil
		}
		return 0.0, []Mismatch{{Kind: inequality(candidate, reference)}}
	}

	var mismatches []Mismatch
	var matched float64

	refKeys := sortedKeys(ref)
	for _, key := range refKeys {
		candVal, present := cand[key]
		if !present {
			mismatches = append(mismatches, Mismatch{Field: key, Kind: "Missing"})
			continue
		}
		refVal := ref[key]

		var subScore float64
		var subMismatches []Mismatch
		switch rv := refVal.(type) {
		case map[string]any:
			subScore, subMismatches = compareObjects(candVal, rv)
		case []any:
			candArr, ok := candVal.([]any)
			if !ok {
				candArr = nil
			}
			subScore, subMismatches = compareArrays(candArr, rv)
		default:
			if compareValues(candVal, refVal) {
				subScore = 1.0
			} else {
				subMismatches = []Mismatch{{Field: key, Kind: inequality(candVal, refVal)}}
			}
		}
		matched += subScore
		if len(subMismatches) > 0 {
			mismatches = append(mismatches, Mismatch{Field: key, Nested: subMismatches})
		}
	}

	var extras int
	for _, key := range sortedKeys(cand) {
		if _, ok := ref[key]; !ok {
			extras++
			mismatches = append(mismatches, Mismatch{Field: key, Kind: "Extra"})
		}
	}

	// an empty reference object is fully satisfied by any object; extras
	// still count against it
	score := 1.0
	if len(refKeys) > 0 {
		score = matched / float64(len(refKeys))
	}
	score *= 1 - ExtraKeyPenalty*float64(extras)
	return score, mismatches
}

// compareArrays greedily assigns each candidate element to the best-scoring
// unused reference element (strict improvement, so ties keep the first
// reference element encountered), averages the matched scores and scales by
// min(len)/max(len) of the original arrays.
func compareArrays(candidate, reference []any) (float64, []Mismatch) {
	if len(candidate) == 0 && len(reference) == 0 {
		return 1.0, nil
	}
	if len(candidate) == 0 || len(reference) == 0 {
		return 0.0, []Mismatch{lengthMismatch(candidate, reference)}
	}

	var mismatches []Mismatch
	var scores []float64
	used := make([]bool, len(reference))

	for i, candEl := range candidate {
		bestScore := 0.0
		bestIdx := -1
		var bestMismatches []Mismatch
		for j, refEl := range reference {
			if used[j] {
				continue
			}
			score, sub := compareObjects(candEl, refEl)
			if score > bestScore {
				bestScore, bestIdx, bestMismatches = score, j, sub
			}
		}
		if bestIdx >= 0 {
			used[bestIdx] = true
			scores = append(scores, bestScore)
			if bestScore < 1 {
				mismatches = append(mismatches, Mismatch{
					Field:  fmt.Sprintf("[%d]", i),
					Nested: bestMismatches,
				})
			}
		}
	}

	var avg float64
	if len(scores) > 0 {
		var sum float64
		for _, s := range scores {
			sum += s
		}
		avg = sum / float64(len(scores))
	}

	lenPenalty := float64(min(len(candidate), len(reference))) / float64(max(len(candidate), len(reference)))
	if len(candidate) != len(reference) {
		mismatches = append(mismatches, lengthMismatch(candidate, reference))
	}
	return avg * lenPenalty, mismatches
}

func lengthMismatch(candidate, reference []any) Mismatch {
	return Mismatch{Kind: fmt.Sprintf("Array length: %d vs %d", len(candidate), len(reference))}
}

func inequality(a, b any) string {
	return fmt.Sprintf("%v != %v", a, b)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
