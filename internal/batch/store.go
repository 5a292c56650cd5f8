package batch

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/beamdocs/docharvest/constants"
	"github.com/beamdocs/docharvest/internal/common"
	"github.com/beamdocs/docharvest/internal/entity"
)

// listPDFs returns the PDF filenames in dir, lexicographically ordered for
// reproducible diagnostics.
func listPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if constants.IsAllowedExt(filepath.Ext(e.Name())) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// WriteJSONAtomic serializes v and moves it into place with a rename, so the
// artifact is never observed half-written.
func WriteJSONAtomic(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize %s: %w", path, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// LoadRecords reads a batch artifact written by WriteJSONAtomic.
func LoadRecords(path string) ([]entity.Record, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("artifact %s: %w", path, common.ErrNotFound)
		}
		return nil, fmt.Errorf("read artifact %s: %w", path, err)
	}
	var records []entity.Record
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("decode artifact %s: %w", path, err)
	}
	for i, r := range records {
		if strings.TrimSpace(r.FileID) == "" {
			return nil, fmt.Errorf("artifact %s: record %d has no File ID", path, i)
		}
	}
	return records, nil
}
