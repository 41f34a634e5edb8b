// Package filter holds the suggestion-dashboard filter state and keeps it
// consistent across its three representations: in-memory state, the
// encoded query string, and the persisted snapshot.
package filter

import (
	"net/url"
	"strconv"
)

// Defaults for every field. A field at its default is omitted from the
// encoded query string.
const (
	DefaultMinScore  = 0.0
	DefaultMaxScore  = 1.0
	DefaultAlgorithm = "all"
	DefaultSortBy    = "score"
	DefaultSortOrder = "desc"
)

// State is the complete filter object for the pending-suggestion list.
type State struct {
	MinScore  float64 `json:"min_score"`
	MaxScore  float64 `json:"max_score"`
	Algorithm string  `json:"algorithm"`
	SortBy    string  `json:"sort_by"`
	SortOrder string  `json:"sort_order"`
	Search    string  `json:"search"`
}

// Default returns the documented default filter state.
func Default() State {
	return State{
		MinScore:  DefaultMinScore,
		MaxScore:  DefaultMaxScore,
		Algorithm: DefaultAlgorithm,
		SortBy:    DefaultSortBy,
		SortOrder: DefaultSortOrder,
		Search:    "",
	}
}

// IsDefault reports whether every field is at its default.
func (s State) IsDefault() bool {
	return s == Default()
}

// Encode serializes only the non-default fields. The result is both the
// request query string and the shareable view string; encoding is stable,
// so Encode(Decode(Encode(s))) == Encode(s).
func (s State) Encode() url.Values {
	v := url.Values{}
	if s.MinScore != DefaultMinScore {
		v.Set("min_score", formatScore(s.MinScore))
	}
	if s.MaxScore != DefaultMaxScore {
		v.Set("max_score", formatScore(s.MaxScore))
	}
	if s.Algorithm != "" && s.Algorithm != DefaultAlgorithm {
		v.Set("algorithm", s.Algorithm)
	}
	if s.SortBy != "" && s.SortBy != DefaultSortBy {
		v.Set("sort_by", s.SortBy)
	}
	if s.SortOrder != "" && s.SortOrder != DefaultSortOrder {
		v.Set("sort_order", s.SortOrder)
	}
	if s.Search != "" {
		v.Set("search", s.Search)
	}
	return v
}

// EncodeString is Encode rendered as a query string, empty for defaults.
func (s State) EncodeString() string {
	return s.Encode().Encode()
}

// Decode parses a query string representation back into a State.
// Unrecognized keys are ignored; malformed or out-of-range scores fall
// back to their defaults, clamped to [0,1].
func Decode(v url.Values) State {
	s := Default()
	if raw := v.Get("min_score"); raw != "" {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			s.MinScore = clampScore(f)
		}
	}
	if raw := v.Get("max_score"); raw != "" {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			s.MaxScore = clampScore(f)
		}
	}
	if raw := v.Get("algorithm"); raw != "" {
		s.Algorithm = raw
	}
	if raw := v.Get("sort_by"); raw != "" {
		s.SortBy = raw
	}
	if raw := v.Get("sort_order"); raw != "" {
		s.SortOrder = raw
	}
	s.Search = v.Get("search")
	return s
}

// DecodeString parses an encoded view string. A parse failure yields
// the defaults.
func DecodeString(raw string) State {
	v, err := url.ParseQuery(raw)
	if err != nil {
		return Default()
	}
	return Decode(v)
}

// HasRecognizedKeys reports whether v carries any filter key. Used for
// load precedence: an explicit view string wins over the snapshot only
// when it actually names a filter.
func HasRecognizedKeys(v url.Values) bool {
	for _, k := range []string{"min_score", "max_score", "algorithm", "sort_by", "sort_order", "search"} {
		if v.Has(k) {
			return true
		}
	}
	return false
}

func clampScore(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func formatScore(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
