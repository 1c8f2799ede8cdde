package impactfuncs

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"climada/internal/entity/tag"
	"climada/internal/logger"
	"climada/internal/plotting"
)

var (
	ErrWrongID      = errors.New("wrong ImpactFunc.id")
	ErrWrongHazType = errors.New("wrong ImpactFunc.haz_type")
)

// Set holds impact functions keyed by hazard type and id.
type Set struct {
	Tag  tag.Tag
	data map[string]map[string]*ImpactFunc
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{data: make(map[string]map[string]*ImpactFunc)}
}

// Append stores f under (f.HazType, f.ID), replacing any function already
// stored there.
func (s *Set) Append(f *ImpactFunc, log logger.Logger) {
	log = logger.OrNop(log)
	if f.HazType == "" {
		log.Warn("input impact function's hazard type not set", f.fields()...)
	}
	if f.ID == "" {
		log.Warn("input impact function's id not set", f.fields()...)
	}

	if s.data == nil {
		s.data = make(map[string]map[string]*ImpactFunc)
	}
	byID, ok := s.data[f.HazType]
	if !ok {
		byID = make(map[string]*ImpactFunc)
		s.data[f.HazType] = byID
	}
	if _, exists := byID[f.ID]; exists {
		log.Debug("replacing impact function", f.fields()...)
	}
	byID[f.ID] = f
}

// Extend appends copies of every function of other and merges the tags.
func (s *Set) Extend(other *Set, log logger.Logger) {
	if other == nil {
		return
	}
	for _, haz := range other.HazardTypes("") {
		for _, id := range other.IDs(haz) {
			s.Append(other.data[haz][id].Clone(), log)
		}
	}
	s.Tag = s.Tag.Append(other.Tag)
}

// Get returns the function stored under hazType and id.
func (s *Set) Get(hazType, id string) (*ImpactFunc, bool) {
	f, ok := s.data[hazType][id]
	return f, ok
}

// Funcs returns the functions matching hazType and id, sorted by hazard type
// then id. An empty argument matches everything.
func (s *Set) Funcs(hazType, id string) []*ImpactFunc {
	var out []*ImpactFunc
	for _, haz := range s.HazardTypes("") {
		if hazType != "" && haz != hazType {
			continue
		}
		for _, fid := range s.IDs(haz) {
			if id != "" && fid != id {
				continue
			}
			out = append(out, s.data[haz][fid])
		}
	}
	return out
}

// HazardTypes returns the sorted hazard types, restricted to those holding
// id when id is not empty.
func (s *Set) HazardTypes(id string) []string {
	var out []string
	for haz, byID := range s.data {
		if id != "" {
			if _, ok := byID[id]; !ok {
				continue
			}
		}
		out = append(out, haz)
	}
	slices.Sort(out)
	return out
}

// IDs returns the sorted ids stored for hazType.
func (s *Set) IDs(hazType string) []string {
	return slices.Sorted(maps.Keys(s.data[hazType]))
}

// Size counts the functions matching hazType and id; empty arguments act as
// wildcards.
func (s *Set) Size(hazType, id string) int {
	return len(s.Funcs(hazType, id))
}

// Remove deletes the functions matching hazType and id; empty arguments act
// as wildcards, so Remove("", "") empties the set.
func (s *Set) Remove(hazType, id string) {
	for _, haz := range s.HazardTypes(id) {
		if hazType != "" && haz != hazType {
			continue
		}
		byID := s.data[haz]
		if id == "" {
			clear(byID)
		} else {
			delete(byID, id)
		}
		if len(byID) == 0 {
			delete(s.data, haz)
		}
	}
}

// Check verifies every function and that each is stored under its own
// hazard type and id.
func (s *Set) Check(log logger.Logger) error {
	for _, haz := range s.HazardTypes("") {
		for _, id := range s.IDs(haz) {
			f := s.data[haz][id]
			if id == "" || f.ID != id {
				return fmt.Errorf("%w: stored as %q, has %q", ErrWrongID, id, f.ID)
			}
			if haz == "" || f.HazType != haz {
				return fmt.Errorf("%w: stored as %q, has %q", ErrWrongHazType, haz, f.HazType)
			}
			if err := f.Check(log); err != nil {
				return fmt.Errorf("impact function %s %s: %w", haz, id, err)
			}
		}
	}
	return nil
}

// Plot draws each selected function on its own chart.
func (s *Set) Plot(hazType, id string) ([]*plotting.Chart, error) {
	funcs := s.Funcs(hazType, id)
	charts := make([]*plotting.Chart, 0, len(funcs))
	for _, f := range funcs {
		chart, err := f.Plot(nil)
		if err != nil {
			return charts, fmt.Errorf("plot %s %s: %w", f.HazType, f.ID, err)
		}
		charts = append(charts, chart)
	}
	return charts, nil
}
