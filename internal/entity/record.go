package entity

import (
	"encoding/json"
	"fmt"

	"github.com/beamdocs/docharvest/constants"
)

// Record is one extracted document in the batch artifact. The payload is
// serialized as an embedded JSON string under "Expected Output" — an
// established convention of the downstream corpus, kept for compatibility.
type Record struct {
	FileID         string            `json:"File ID"`
	Dataset        constants.Dataset `json:"Dataset"`
	File           string            `json:"File"`
	ExpectedOutput string            `json:"Expected Output"`
}

// NewRecord builds an immutable Record from a schema-conformant payload.
func NewRecord(fileID string, dataset constants.Dataset, file string, payload map[string]any) (Record, error) {
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return Record{}, fmt.Errorf("serialize payload: %w", err)
	}
	return Record{
		FileID:         fileID,
		Dataset:        dataset,
		File:           file,
		ExpectedOutput: string(b),
	}, nil
}

// Payload decodes the embedded JSON string back into a generic tree.
func (r Record) Payload() (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal([]byte(r.ExpectedOutput), &m); err != nil {
		return nil, fmt.Errorf("record %s: decode expected output: %w", r.FileID, err)
	}
	return m, nil
}
