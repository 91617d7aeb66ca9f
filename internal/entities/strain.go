// Package entities provides core data structures for strain-screen.
package entities

import (
	"sort"
	"strings"
)

// ListSeparator joins effect and flavor lists for display
const ListSeparator = ", "

// descriptionTextKey is the description payload field rendered as the strain description
const descriptionTextKey = "desc"

// RouteParams identifies the strain a screen shows. It comes from the
// route /strain/{race}/{id}/{name}.
type RouteParams struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Race string `json:"race"`
}

// RaceLabel is the race with its first character upper-cased
func (p RouteParams) RaceLabel() string {
	return CapitalizeFirst(p.Race)
}

// Icon is the icon path for the race
func (p RouteParams) Icon() string {
	return IconFor(p.Race)
}

// Effects is the strain-effects payload
type Effects struct {
	Medical  []string `json:"medical"`
	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
}

// Description is the strain-description payload. Only "desc" has a known
// meaning, every other field is passed through.
type Description map[string]interface{}

// Text returns the desc field, or "" when absent
func (d Description) Text() string {
	text, _ := d[descriptionTextKey].(string)
	return text
}

// EffectsView holds each effect list rendered as one string
type EffectsView struct {
	Medical  string `json:"medical"`
	Positive string `json:"positive"`
	Negative string `json:"negative"`
}

// StrainView is the merged view model for one strain
type StrainView struct {
	ID      string      `json:"id"`
	Desc    string      `json:"desc"`
	Flavors string      `json:"flavors"`
	Effects EffectsView `json:"effects"`
	// Extra carries the remaining description fields verbatim. They never
	// override Desc, Flavors or Effects.
	Extra map[string]interface{} `json:"extra,omitempty"`
}

// Clone returns a copy that shares no map with v
func (v *StrainView) Clone() *StrainView {
	if v == nil {
		return nil
	}

	clone := *v
	if v.Extra != nil {
		clone.Extra = make(map[string]interface{}, len(v.Extra))
		for k, val := range v.Extra {
			clone.Extra[k] = val
		}
	}
	return &clone
}

// ExtraKeys returns the Extra field names in sorted order
func (v *StrainView) ExtraKeys() []string {
	keys := make([]string, 0, len(v.Extra))
	for k := range v.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MergeStrainView builds the view model from the three payloads
func MergeStrainView(id string, effects *Effects, desc Description, flavors []string) *StrainView {
	view := &StrainView{
		ID:      id,
		Desc:    desc.Text(),
		Flavors: strings.Join(flavors, ListSeparator),
	}

	if effects != nil {
		view.Effects = EffectsView{
			Medical:  strings.Join(effects.Medical, ListSeparator),
			Positive: strings.Join(effects.Positive, ListSeparator),
			Negative: strings.Join(effects.Negative, ListSeparator),
		}
	}

	for key, value := range desc {
		if key == descriptionTextKey {
			continue
		}
		if view.Extra == nil {
			view.Extra = make(map[string]interface{}, len(desc))
		}
		view.Extra[key] = value
	}

	return view
}
