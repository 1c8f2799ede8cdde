package excel

import (
	"climada/internal/entity/impactfuncs"
	"climada/internal/entity/tag"
	"climada/internal/interning"
	"climada/internal/logger"
)

var impactFuncCols = []string{ColPeril, ColFuncID, ColName, ColUnit, ColIntensity, ColMDD, ColPAA}

// ReadImpactFuncs reads one row per intensity point. Rows sharing a peril
// and function id form one impact function; points keep their file order.
func ReadImpactFuncs(path, description string, names VarNames, log logger.Logger) (*impactfuncs.Set, error) {
	s, err := readSheet(path, names.SheetName)
	if err != nil {
		return nil, err
	}
	cols := make(map[string]int, len(impactFuncCols))
	for _, key := range impactFuncCols {
		i, err := s.index(names, key)
		if err != nil {
			return nil, err
		}
		cols[key] = i
	}

	var (
		order []*impactfuncs.ImpactFunc
		pool  interning.Table
	)
	byKey := map[[2]string]*impactfuncs.ImpactFunc{}
	for r := range s.rows {
		if s.blank(r) {
			continue
		}
		key := [2]string{pool.Intern(s.text(r, cols[ColPeril])), pool.Intern(s.id(r, cols[ColFuncID]))}
		f, ok := byKey[key]
		if !ok {
			f = &impactfuncs.ImpactFunc{
				HazType:       key[0],
				ID:            key[1],
				Name:          s.text(r, cols[ColName]),
				IntensityUnit: pool.Intern(s.text(r, cols[ColUnit])),
			}
			byKey[key] = f
			order = append(order, f)
		}

		inten, err := s.number(r, cols[ColIntensity])
		if err != nil {
			return nil, err
		}
		mdd, err := s.number(r, cols[ColMDD])
		if err != nil {
			return nil, err
		}
		paa, err := s.number(r, cols[ColPAA])
		if err != nil {
			return nil, err
		}
		f.Intensity = append(f.Intensity, inten)
		f.MDD = append(f.MDD, mdd)
		f.PAA = append(f.PAA, paa)
	}

	set := impactfuncs.NewSet()
	set.Tag = tag.New(path, description)
	for _, f := range order {
		set.Append(f, log)
	}
	return set, nil
}

// WriteImpactFuncs writes every function of set, one row per intensity
// point, sorted by hazard type and id.
func WriteImpactFuncs(path string, set *impactfuncs.Set, names VarNames) error {
	header := make([]interface{}, len(impactFuncCols))
	for i, key := range impactFuncCols {
		col, err := names.column(key)
		if err != nil {
			return err
		}
		header[i] = col
	}

	var rows [][]interface{}
	for _, f := range set.Funcs("", "") {
		if err := f.Check(nil); err != nil {
			return err
		}
		for i := range f.Intensity {
			rows = append(rows, []interface{}{f.HazType, f.ID, f.Name, f.IntensityUnit, f.Intensity[i], f.MDD[i], f.PAA[i]})
		}
	}
	return writeSheet(path, names.SheetName, header, rows)
}
