package filter

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
)

// LoadSnapshot reads the persisted filter snapshot. The second return is
// false when no usable snapshot exists; a corrupt file is treated the
// same as a missing one.
func LoadSnapshot(path string) (State, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), false
	}
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return Default(), false
	}
	s.MinScore = clampScore(s.MinScore)
	s.MaxScore = clampScore(s.MaxScore)
	if s.Algorithm == "" {
		s.Algorithm = DefaultAlgorithm
	}
	if s.SortBy == "" {
		s.SortBy = DefaultSortBy
	}
	if s.SortOrder == "" {
		s.SortOrder = DefaultSortOrder
	}
	return s, true
}

// SaveSnapshot writes the full filter object as plain JSON. Every commit
// of the filter state goes through here; last write wins across
// processes.
func SaveSnapshot(path string, s State) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Resolve applies the load precedence: an explicit view string with
// recognized keys wins, then the snapshot, then defaults.
func Resolve(viewString, snapshotPath string) State {
	if viewString != "" {
		if v, err := url.ParseQuery(viewString); err == nil && HasRecognizedKeys(v) {
			return Decode(v)
		}
	}
	if s, ok := LoadSnapshot(snapshotPath); ok {
		return s
	}
	return Default()
}
