// Package tags holds the closed vocabulary of canonical place tags and the
// normalization of free-text tags onto it.
package tags

import (
	"encoding/json"
	"sort"
	"strings"
)

// Tag is a canonical place tag.
type Tag string

const (
	History      Tag = "history"
	Museum       Tag = "museum"
	Gallery      Tag = "gallery"
	Art          Tag = "art"
	Architecture Tag = "architecture"
	Park         Tag = "park"
	Walk         Tag = "walk"
	Embankment   Tag = "embankment"
	Nature       Tag = "nature"
	Viewpoint    Tag = "viewpoint"
	Waterfront   Tag = "waterfront"
	Food         Tag = "food"
	Coffee       Tag = "coffee"
	Family       Tag = "family"
	Sport        Tag = "sport"
	POI          Tag = "poi"
)

var canonical = map[Tag]struct{}{
	History: {}, Museum: {}, Gallery: {}, Art: {}, Architecture: {},
	Park: {}, Walk: {}, Embankment: {}, Nature: {}, Viewpoint: {},
	Waterfront: {}, Food: {}, Coffee: {}, Family: {}, Sport: {}, POI: {},
}

// Valid reports whether t belongs to the canonical vocabulary.
func (t Tag) Valid() bool {
	_, ok := canonical[t]
	return ok
}

// Meal is the set of tags that mark a place where one can eat.
var Meal = []Tag{Food, Coffee}

// Set is an ordered collection of distinct canonical tags.
type Set []Tag

// NewSet builds a Set from tags, dropping duplicates and keeping first-seen order.
func NewSet(values ...Tag) Set {
	seen := make(map[Tag]struct{}, len(values))
	out := make(Set, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Has reports whether the set contains t.
func (s Set) Has(t Tag) bool {
	for _, v := range s {
		if v == t {
			return true
		}
	}
	return false
}

// HasAny reports whether the set contains at least one of ts.
func (s Set) HasAny(ts ...Tag) bool {
	for _, t := range ts {
		if s.Has(t) {
			return true
		}
	}
	return false
}

// Intersect counts how many tags of other are present in s.
func (s Set) Intersect(other Set) int {
	n := 0
	for _, t := range other {
		if s.Has(t) {
			n++
		}
	}
	return n
}

// Strings returns the tags as plain strings.
func (s Set) Strings() []string {
	out := make([]string, len(s))
	for i, t := range s {
		out[i] = string(t)
	}
	return out
}

func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Strings())
}

// UnmarshalJSON normalizes the incoming values, so sets decoded from
// clients and providers only ever hold canonical tags.
func (s *Set) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = Normalize(raw)
	return nil
}

// Normalize maps arbitrary free-text tags onto the canonical vocabulary.
// Values that match neither a canonical tag nor a known alias are dropped.
func Normalize(raw []string) Set {
	out := make([]Tag, 0, len(raw))
	for _, r := range raw {
		value := strings.ToLower(strings.TrimSpace(r))
		if value == "" {
			continue
		}
		if t := Tag(value); t.Valid() {
			out = append(out, t)
			continue
		}
		if t, ok := aliases[value]; ok {
			out = append(out, t)
		}
	}
	return NewSet(out...)
}

// Allowed returns the canonical vocabulary sorted alphabetically.
func Allowed() []string {
	out := make([]string, 0, len(canonical))
	for t := range canonical {
		out = append(out, string(t))
	}
	sort.Strings(out)
	return out
}
