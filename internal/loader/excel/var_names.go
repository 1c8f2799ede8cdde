// Package excel reads and writes entity tables in xlsx workbooks.
package excel

import (
	"errors"
	"fmt"
	"maps"
)

var (
	ErrMissingColumn = errors.New("missing column")
	ErrInvalidCell   = errors.New("invalid cell")
	ErrMissingSheet  = errors.New("missing sheet")
)

// MissingColumnError reports a column name that is not configured in the
// VarNames or not present in the sheet header.
type MissingColumnError struct {
	Sheet  string
	Key    string
	Column string
}

func (e *MissingColumnError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("sheet %q: no column configured for %q", e.Sheet, e.Key)
	}
	return fmt.Sprintf("sheet %q: column %q (%s) not found", e.Sheet, e.Column, e.Key)
}

func (e *MissingColumnError) Unwrap() error {
	return ErrMissingColumn
}

// InvalidCellError reports a cell that cannot be parsed.
type InvalidCellError struct {
	Sheet  string
	Cell   string
	Value  string
	Reason error
}

func (e *InvalidCellError) Error() string {
	return fmt.Sprintf("sheet %q cell %s: invalid value %q: %v", e.Sheet, e.Cell, e.Value, e.Reason)
}

func (e *InvalidCellError) Unwrap() []error {
	return []error{ErrInvalidCell, e.Reason}
}

// VarNames maps the logical columns of an entity to the sheet and column
// names of a workbook.
type VarNames struct {
	SheetName string            `yaml:"sheet_name"`
	ColNames  map[string]string `yaml:"col_name"`
}

// Logical column keys.
const (
	ColYear = "year"
	ColDisc = "disc"

	ColFuncID    = "func_id"
	ColIntensity = "inten"
	ColMDD       = "mdd"
	ColPAA       = "paa"
	ColName      = "name"
	ColUnit      = "unit"
	ColPeril     = "peril"
)

// DefaultDiscRatesVarNames returns a new mapping each call, callers may
// modify it freely.
func DefaultDiscRatesVarNames() VarNames {
	return VarNames{
		SheetName: "discount",
		ColNames: map[string]string{
			ColYear: "year",
			ColDisc: "discount_rate",
		},
	}
}

// DefaultImpactFuncsVarNames returns a new mapping each call, callers may
// modify it freely.
func DefaultImpactFuncsVarNames() VarNames {
	return VarNames{
		SheetName: "impact_functions",
		ColNames: map[string]string{
			ColFuncID:    "impact_fun_id",
			ColIntensity: "intensity",
			ColMDD:       "mdd",
			ColPAA:       "paa",
			ColName:      "name",
			ColUnit:      "intensity_unit",
			ColPeril:     "peril_id",
		},
	}
}

func (v VarNames) Clone() VarNames {
	return VarNames{SheetName: v.SheetName, ColNames: maps.Clone(v.ColNames)}
}

// Merge returns a copy of v with the non-empty entries of override applied.
func (v VarNames) Merge(override VarNames) VarNames {
	out := v.Clone()
	if override.SheetName != "" {
		out.SheetName = override.SheetName
	}
	if out.ColNames == nil {
		out.ColNames = map[string]string{}
	}
	for k, c := range override.ColNames {
		if c != "" {
			out.ColNames[k] = c
		}
	}
	return out
}

func (v VarNames) column(key string) (string, error) {
	name, ok := v.ColNames[key]
	if !ok || name == "" {
		return "", &MissingColumnError{Sheet: v.SheetName, Key: key}
	}
	return name, nil
}
