// Package discrates holds yearly discount rates and the present value
// computations built on them.
package discrates

import (
	"errors"
	"fmt"

	"golang.org/x/image/colornames"

	"climada/internal/entity/tag"
	"climada/internal/plotting"
	"climada/internal/util/checker"
)

var (
	ErrNoRates   = errors.New("no discount rates for the requested years")
	ErrYearRange = errors.New("wrong size of yearly values")
)

// DiscRates maps each year to a discount rate.
type DiscRates struct {
	Tag   tag.Tag
	Years []int
	Rates []float64
}

func New(years []int, rates []float64) *DiscRates {
	return &DiscRates{Years: years, Rates: rates}
}

func (d *DiscRates) Check() error {
	return checker.Size(len(d.Years), d.Rates, "DiscRates.rates")
}

// Select returns the rows whose year lies in [from, to], or false when no
// row does.
func (d *DiscRates) Select(from, to int) (*DiscRates, bool) {
	sel := &DiscRates{Tag: d.Tag}
	for i, y := range d.Years {
		if y >= from && y <= to {
			sel.Years = append(sel.Years, y)
			sel.Rates = append(sel.Rates, d.Rates[i])
		}
	}
	if len(sel.Years) == 0 {
		return nil, false
	}
	return sel, true
}

// Append returns a new table holding d's rows, overwritten by other where
// years coincide, followed by other's remaining years.
func (d *DiscRates) Append(other *DiscRates) (*DiscRates, error) {
	if err := d.Check(); err != nil {
		return nil, err
	}
	if err := other.Check(); err != nil {
		return nil, err
	}

	if len(d.Years) == 0 {
		return other.clone(), nil
	}

	out := d.clone()
	out.Tag = d.Tag.Append(other.Tag)
	index := make(map[int]int, len(out.Years))
	for i, y := range out.Years {
		if _, ok := index[y]; !ok {
			index[y] = i
		}
	}
	for i, y := range other.Years {
		if j, ok := index[y]; ok {
			out.Rates[j] = other.Rates[i]
			continue
		}
		out.Years = append(out.Years, y)
		out.Rates = append(out.Rates, other.Rates[i])
	}
	return out, nil
}

// NetPresentValue discounts the yearly values of iniYear..endYear back to
// iniYear with the rates of those years. Every year of the range needs a
// rate.
func (d *DiscRates) NetPresentValue(iniYear, endYear int, valYears []float64) (float64, error) {
	if n := endYear - iniYear + 1; n != len(valYears) {
		return 0, fmt.Errorf("%w: %d != %d", ErrYearRange, n, len(valYears))
	}
	sel, ok := d.Select(iniYear, endYear)
	if !ok {
		return 0, fmt.Errorf("%w: %d-%d", ErrNoRates, iniYear, endYear)
	}
	if len(sel.Rates) != len(valYears) {
		return 0, fmt.Errorf("%w: %d-%d has %d of %d years", ErrNoRates, iniYear, endYear, len(sel.Rates), len(valYears))
	}
	return NetPresentValue(sel.Rates, valYears)
}

// NetPresentValue folds values from the last year back:
// npv = v[i] + npv / (1 + r[i]). rates and values hold one entry per year.
func NetPresentValue(rates, values []float64) (float64, error) {
	if err := checker.Size(len(rates), values, "DiscRates.values"); err != nil {
		return 0, err
	}
	n := len(values)
	if n == 0 {
		return 0, nil
	}
	npv := values[n-1]
	for i := n - 2; i >= 0; i-- {
		npv = values[i] + npv/(1+rates[i])
	}
	return npv, nil
}

// Plot draws the rate of each year.
func (d *DiscRates) Plot(chart *plotting.Chart) (*plotting.Chart, error) {
	chart = plotting.OrNew(chart)
	chart.SetTitle("Discount rates")
	chart.SetLabels("Year", "discount rate (%)")

	years := make([]float64, len(d.Years))
	for i, y := range d.Years {
		years[i] = float64(y)
	}
	rates := make([]float64, len(d.Rates))
	for i, r := range d.Rates {
		rates[i] = r * 100
	}
	err := chart.Draw(plotting.Curve{X: years, Y: rates, Label: "rate", Style: plotting.Style{Color: colornames.Blue}})
	return chart, err
}

func (d *DiscRates) clone() *DiscRates {
	return &DiscRates{
		Tag:   d.Tag,
		Years: append([]int(nil), d.Years...),
		Rates: append([]float64(nil), d.Rates...),
	}
}
