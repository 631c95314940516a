package fmea

import "encoding/json"

// Selection partitions a scored run into DoE recommendations.
type Selection struct {
	// Suggested holds Medium and High variables in input order.
	Suggested []ScoredVariable `json:"suggested" yaml:"suggested"`

	// Excluded holds Low variables in input order. Whether they are shown
	// is up to the presenter.
	Excluded []ScoredVariable `json:"excluded" yaml:"excluded"`
}

// SelectDoE splits scored into suggested and excluded variables. The two
// partitions are disjoint and together cover every variable.
func SelectDoE(scored []ScoredVariable) Selection {
	sel := Selection{
		Suggested: []ScoredVariable{},
		Excluded:  []ScoredVariable{},
	}
	for _, v := range scored {
		if v.RiskLevel.SuggestedForDoE() {
			sel.Suggested = append(sel.Suggested, v)
		} else {
			sel.Excluded = append(sel.Excluded, v)
		}
	}
	return sel
}

// HasSuggestions reports whether any variable is recommended for the DoE.
// False is a normal outcome, not an error.
func (s Selection) HasSuggestions() bool {
	return len(s.Suggested) > 0
}

// MarshalJSON adds the nothing_suggested flag to the encoded selection.
func (s Selection) MarshalJSON() ([]byte, error) {
	type plain Selection
	return json.Marshal(struct {
		plain
		NothingSuggested bool `json:"nothing_suggested"`
	}{plain: plain(s), NothingSuggested: !s.HasSuggestions()})
}

// MarshalYAML adds the nothing_suggested flag to the encoded selection.
func (s Selection) MarshalYAML() (any, error) {
	return struct {
		Suggested        []ScoredVariable `yaml:"suggested"`
		Excluded         []ScoredVariable `yaml:"excluded"`
		NothingSuggested bool             `yaml:"nothing_suggested"`
	}{s.Suggested, s.Excluded, !s.HasSuggestions()}, nil
}
