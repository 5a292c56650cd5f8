package constants

import "strings"

// Dataset is the document classification tag that drives prompt and schema selection.
type Dataset string

// Stable values (these exact strings appear in the batch artifact).
const (
	DatasetInvoice Dataset = "Invoice"
	DatasetOrder   Dataset = "Order"
)

var allDatasets = []Dataset{DatasetInvoice, DatasetOrder}

func AsStringSlice() []string {
	result := make([]string, len(allDatasets))
	for i, d := range allDatasets {
		result[i] = string(d)
	}
	return result
}

// ClassifyFilename infers the dataset from a filename using a case-insensitive
// substring match. "invoice" wins over "order" when both occur. Filenames
// matching neither return ok=false and must be skipped, not failed.
func ClassifyFilename(name string) (Dataset, bool) {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "invoice"):
		return DatasetInvoice, true
	case strings.Contains(lower, "order"):
		return DatasetOrder, true
	default:
		return "", false
	}
}
