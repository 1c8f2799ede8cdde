package excel

import (
	"errors"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/floats"

	"climada/internal/entity/discrates"
	"climada/internal/entity/impactfuncs"
)

func writeRates(t *testing.T, from, to int, rate float64) string {
	t.Helper()
	d := &discrates.DiscRates{}
	for y := from; y <= to; y++ {
		d.Years = append(d.Years, y)
		d.Rates = append(d.Rates, rate)
	}
	path := filepath.Join(t.TempDir(), "entity.xlsx")
	if err := WriteDiscRates(path, d, DefaultDiscRatesVarNames()); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return path
}

func TestReadDiscRatesDemoFile(t *testing.T) {
	path := writeRates(t, 2000, 2050, 0.02)
	description := "One single file."

	d, err := ReadDiscRates(path, description, DefaultDiscRatesVarNames())
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	nRates := 51
	if len(d.Years) != nRates || len(d.Rates) != nRates {
		t.Fatalf("expected %d rows, got %d years and %d rates", nRates, len(d.Years), len(d.Rates))
	}
	if d.Years[0] != 2000 || d.Years[nRates-1] != 2050 {
		t.Errorf("unexpected year range %d-%d", d.Years[0], d.Years[nRates-1])
	}
	if floats.Min(d.Rates) != 0.02 || floats.Max(d.Rates) != 0.02 {
		t.Errorf("unexpected rate range %v-%v", floats.Min(d.Rates), floats.Max(d.Rates))
	}
	if d.Tag.FileName != path {
		t.Errorf("expected tag file %q, got %q", path, d.Tag.FileName)
	}
	if d.Tag.Description != description {
		t.Errorf("expected tag description %q, got %q", description, d.Tag.Description)
	}
}

func TestReadDiscRatesTemplateFile(t *testing.T) {
	path := writeRates(t, 2000, 2101, 0.02)

	d, err := ReadDiscRates(path, "", DefaultDiscRatesVarNames())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(d.Years) != 102 {
		t.Fatalf("expected 102 rows, got %d", len(d.Years))
	}
	if d.Years[101] != 2101 {
		t.Errorf("expected last year 2101, got %d", d.Years[101])
	}
	if d.Tag.Description != "" {
		t.Errorf("expected empty description, got %q", d.Tag.Description)
	}
}

func TestReadDiscRatesWrongColumn(t *testing.T) {
	path := writeRates(t, 2000, 2010, 0.02)

	names := DefaultDiscRatesVarNames()
	names.ColNames[ColYear] = "wrong col"

	_, err := ReadDiscRates(path, "", names)
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
	var colErr *MissingColumnError
	if !errors.As(err, &colErr) || colErr.Column != "wrong col" || colErr.Key != ColYear {
		t.Fatalf("unexpected error %#v", err)
	}

	if got := DefaultDiscRatesVarNames().ColNames[ColYear]; got != "year" {
		t.Fatalf("default mapping was modified: %q", got)
	}
}

func TestReadDiscRatesUnconfiguredColumn(t *testing.T) {
	path := writeRates(t, 2000, 2010, 0.02)

	names := DefaultDiscRatesVarNames()
	delete(names.ColNames, ColDisc)

	_, err := ReadDiscRates(path, "", names)
	var colErr *MissingColumnError
	if !errors.As(err, &colErr) || colErr.Column != "" || colErr.Key != ColDisc {
		t.Fatalf("expected unconfigured column error, got %v", err)
	}
}

func TestReadDiscRatesMissingSheet(t *testing.T) {
	path := writeRates(t, 2000, 2010, 0.02)

	names := DefaultDiscRatesVarNames()
	names.SheetName = "rates"
	if _, err := ReadDiscRates(path, "", names); !errors.Is(err, ErrMissingSheet) {
		t.Fatalf("expected ErrMissingSheet, got %v", err)
	}
	if _, err := ReadDiscRates(filepath.Join(t.TempDir(), "none.xlsx"), "", DefaultDiscRatesVarNames()); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestReadDiscRatesInvalidCell(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.xlsx")
	rows := [][]interface{}{
		{2000, 0.02},
		{2001, "high"},
	}
	if err := writeSheet(path, "discount", []interface{}{"year", "discount_rate"}, rows); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := ReadDiscRates(path, "", DefaultDiscRatesVarNames())
	if !errors.Is(err, ErrInvalidCell) {
		t.Fatalf("expected ErrInvalidCell, got %v", err)
	}
	var cellErr *InvalidCellError
	if !errors.As(err, &cellErr) || cellErr.Cell != "B3" {
		t.Fatalf("expected error at B3, got %v", err)
	}
}

func TestImpactFuncsRoundTrip(t *testing.T) {
	set := impactfuncs.NewSet()
	step := impactfuncs.FromStep([3]float64{0, 5, 10})
	step.HazType, step.Name, step.IntensityUnit = "TC", "step", "m/s"
	sigmoid := impactfuncs.FromSigmoid([3]float64{0, 10, 1}, 1, 0.5, 5, impactfuncs.WithSigmoidID("2"))
	sigmoid.HazType, sigmoid.Name, sigmoid.IntensityUnit = "TC", "sigmoid", "m/s"
	flood := impactfuncs.FromStep([3]float64{0, 1, 3}, impactfuncs.WithStepMDD(0.2, 0.8))
	flood.HazType, flood.Name, flood.IntensityUnit = "FL", "depth", "m"
	set.Append(step, nil)
	set.Append(sigmoid, nil)
	set.Append(flood, nil)

	path := filepath.Join(t.TempDir(), "impf.xlsx")
	if err := WriteImpactFuncs(path, set, DefaultImpactFuncsVarNames()); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := ReadImpactFuncs(path, "funcs", DefaultImpactFuncsVarNames(), nil)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Size("", "") != 3 {
		t.Fatalf("expected 3 functions, got %d", got.Size("", ""))
	}
	if got.Tag.FileName != path || got.Tag.Description != "funcs" {
		t.Errorf("unexpected tag %+v", got.Tag)
	}

	for _, want := range []*impactfuncs.ImpactFunc{step, sigmoid, flood} {
		f, ok := got.Get(want.HazType, want.ID)
		if !ok {
			t.Fatalf("missing %s %s", want.HazType, want.ID)
		}
		if f.Name != want.Name || f.IntensityUnit != want.IntensityUnit {
			t.Errorf("%s %s: unexpected metadata %q %q", want.HazType, want.ID, f.Name, f.IntensityUnit)
		}
		if !floats.Equal(f.Intensity, want.Intensity) || !floats.Equal(f.MDD, want.MDD) || !floats.Equal(f.PAA, want.PAA) {
			t.Errorf("%s %s: curves differ", want.HazType, want.ID)
		}
	}
	if err := got.Check(nil); err != nil {
		t.Fatalf("check: %v", err)
	}
}

func TestReadImpactFuncsGroupsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "interleaved.xlsx")
	header := []interface{}{"peril_id", "impact_fun_id", "name", "intensity_unit", "intensity", "mdd", "paa"}
	rows := [][]interface{}{
		{"TC", 1, "a", "m/s", 0, 0, 1},
		{"TC", 2, "b", "m/s", 0, 0, 1},
		{"TC", 1, "a", "m/s", 10, 0.5, 1},
		{},
		{"TC", 2, "b", "m/s", 20, 1, 1},
	}
	if err := writeSheet(path, "impact_functions", header, rows); err != nil {
		t.Fatalf("write: %v", err)
	}

	set, err := ReadImpactFuncs(path, "", DefaultImpactFuncsVarNames(), nil)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	a, _ := set.Get("TC", "1")
	b, _ := set.Get("TC", "2")
	if a == nil || b == nil {
		t.Fatalf("expected TC 1 and TC 2, got ids %v", set.IDs("TC"))
	}
	if !floats.Equal(a.Intensity, []float64{0, 10}) || !floats.Equal(a.MDD, []float64{0, 0.5}) {
		t.Errorf("unexpected TC 1 %v %v", a.Intensity, a.MDD)
	}
	if !floats.Equal(b.Intensity, []float64{0, 20}) {
		t.Errorf("unexpected TC 2 %v", b.Intensity)
	}
}

func TestReadImpactFuncsMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nopaa.xlsx")
	header := []interface{}{"peril_id", "impact_fun_id", "name", "intensity_unit", "intensity", "mdd"}
	if err := writeSheet(path, "impact_functions", header, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := ReadImpactFuncs(path, "", DefaultImpactFuncsVarNames(), nil); !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
}

func TestVarNamesMerge(t *testing.T) {
	base := DefaultDiscRatesVarNames()
	merged := base.Merge(VarNames{SheetName: "rates", ColNames: map[string]string{ColDisc: "rate", ColYear: ""}})

	if merged.SheetName != "rates" || merged.ColNames[ColDisc] != "rate" || merged.ColNames[ColYear] != "year" {
		t.Fatalf("unexpected merge result %+v", merged)
	}
	if base.ColNames[ColDisc] != "discount_rate" {
		t.Fatalf("merge modified its receiver")
	}
}

func TestWriteReplacesSheetAndKeepsOthers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entity.xlsx")

	set := impactfuncs.NewSet()
	f := impactfuncs.FromStep([3]float64{0, 5, 10})
	f.HazType = "TC"
	set.Append(f, nil)
	if err := WriteImpactFuncs(path, set, DefaultImpactFuncsVarNames()); err != nil {
		t.Fatalf("write impact functions: %v", err)
	}

	long := discrates.New([]int{2000, 2001, 2002}, []float64{0.01, 0.02, 0.03})
	if err := WriteDiscRates(path, long, DefaultDiscRatesVarNames()); err != nil {
		t.Fatalf("write rates: %v", err)
	}
	short := discrates.New([]int{2030}, []float64{0.04})
	if err := WriteDiscRates(path, short, DefaultDiscRatesVarNames()); err != nil {
		t.Fatalf("rewrite rates: %v", err)
	}

	d, err := ReadDiscRates(path, "", DefaultDiscRatesVarNames())
	if err != nil {
		t.Fatalf("read rates: %v", err)
	}
	if len(d.Years) != 1 || d.Years[0] != 2030 {
		t.Fatalf("expected the rewritten table only, got %v", d.Years)
	}

	got, err := ReadImpactFuncs(path, "", DefaultImpactFuncsVarNames(), nil)
	if err != nil {
		t.Fatalf("read impact functions: %v", err)
	}
	if got.Size("TC", "1") != 1 {
		t.Fatalf("impact function sheet lost")
	}
}
