// Package impactfuncs defines impact functions: curves mapping hazard
// intensity to the mean damage degree (MDD) and the percentage of affected
// assets (PAA). Their product is the mean damage ratio (MDR).
package impactfuncs

import (
	"math"

	"golang.org/x/image/colornames"
	"gonum.org/v1/gonum/floats"

	"climada/internal/logger"
	"climada/internal/plotting"
	"climada/internal/util/checker"
	"climada/internal/util/interp"
)

// DefaultID is the id given by FromStep and FromSigmoid.
const DefaultID = "1"

// ImpactFunc is one damage curve. MDD and PAA hold one value in [0, 1] per
// point of the non-decreasing Intensity grid.
type ImpactFunc struct {
	ID            string
	Name          string
	HazType       string
	IntensityUnit string

	Intensity []float64
	MDD       []float64
	PAA       []float64
}

// CalcMDR returns MDD(x) * PAA(x), both linearly interpolated on the
// intensity grid and clamped to the end values outside it.
func (f *ImpactFunc) CalcMDR(x float64) float64 {
	return interp.Linear(x, f.Intensity, f.PAA) * interp.Linear(x, f.Intensity, f.MDD)
}

// CalcMDRs evaluates CalcMDR for each intensity in xs.
func (f *ImpactFunc) CalcMDRs(xs []float64) []float64 {
	out := interp.LinearSlice(xs, f.Intensity, f.PAA)
	floats.Mul(out, interp.LinearSlice(xs, f.Intensity, f.MDD))
	return out
}

// Check validates the array sizes. Curves that are empty, or that may give a
// non-zero impact at intensity 0, are reported to log as warnings and do not
// fail the check.
func (f *ImpactFunc) Check(log logger.Logger) error {
	log = logger.OrNop(log)

	n := len(f.Intensity)
	if err := checker.Size(n, f.MDD, "ImpactFunc.mdd"); err != nil {
		return err
	}
	if err := checker.Size(n, f.PAA, "ImpactFunc.paa"); err != nil {
		return err
	}

	if n == 0 {
		log.Warn("impact function has empty intensity", f.fields()...)
		return nil
	}

	if i := indexOf(f.Intensity, 0); i >= 0 {
		if f.MDD[i] != 0 || f.PAA[i] != 0 {
			log.Warn("for intensity = 0, mdd != 0 or paa != 0. Consider shifting the origin of the "+
				"intensity scale. Impact is always null at intensity = 0",
				append(f.fields(), logger.F("mdd", f.MDD[i]), logger.F("paa", f.PAA[i]))...)
		}
	} else if f.Intensity[0] < 0 && 0 < f.Intensity[n-1] {
		log.Warn("impact function might be interpolated to non-zero value at intensity = 0. "+
			"Consider shifting the origin of the intensity scale. Impact is always null at intensity = 0",
			f.fields()...)
	}
	return nil
}

// Clone returns a deep copy of f.
func (f *ImpactFunc) Clone() *ImpactFunc {
	c := *f
	c.Intensity = append([]float64(nil), f.Intensity...)
	c.MDD = append([]float64(nil), f.MDD...)
	c.PAA = append([]float64(nil), f.PAA...)
	return &c
}

// Plot draws MDD, PAA and MDR in percent. A nil chart gets a new one; the
// chart used is returned.
func (f *ImpactFunc) Plot(chart *plotting.Chart) (*plotting.Chart, error) {
	chart = plotting.OrNew(chart)

	title := f.HazType + " " + f.ID
	if f.Name != f.ID {
		title += ": " + f.Name
	}
	chart.SetTitle(title)
	chart.SetLabels("Intensity ("+f.IntensityUnit+")", "Impact (%)")

	mdr := make([]float64, len(f.MDD))
	for i := range mdr {
		if i < len(f.PAA) {
			mdr[i] = f.MDD[i] * f.PAA[i] * 100
		}
	}
	err := chart.Draw(
		plotting.Curve{X: f.Intensity, Y: percent(f.MDD), Label: "MDD", Style: plotting.Style{Color: colornames.Blue}},
		plotting.Curve{X: f.Intensity, Y: percent(f.PAA), Label: "PAA", Style: plotting.Style{Color: colornames.Red}},
		plotting.Curve{X: f.Intensity, Y: mdr, Label: "MDR", Style: plotting.Style{Color: colornames.Black, Dashed: true}},
	)
	if err != nil {
		return chart, err
	}

	if len(f.Intensity) > 0 {
		chart.SetXRange(floats.Min(f.Intensity), floats.Max(f.Intensity))
	}
	return chart, nil
}

func (f *ImpactFunc) fields() []logger.Field {
	return []logger.Field{
		logger.F("haz_type", f.HazType),
		logger.F("name", f.Name),
		logger.F("id", f.ID),
	}
}

func percent(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	floats.Scale(100, out)
	return out
}

func indexOf(v []float64, x float64) int {
	for i, e := range v {
		if e == x {
			return i
		}
	}
	return -1
}

// StepOption customises FromStep.
type StepOption func(*stepParams)

type stepParams struct {
	mdd [2]float64
	paa [2]float64
	id  string
}

// WithStepMDD sets the MDD below and above the threshold. Default (0, 1).
func WithStepMDD(lo, hi float64) StepOption {
	return func(p *stepParams) { p.mdd = [2]float64{lo, hi} }
}

// WithStepPAA sets the PAA below and above the threshold. Default (1, 1).
func WithStepPAA(lo, hi float64) StepOption {
	return func(p *stepParams) { p.paa = [2]float64{lo, hi} }
}

// WithStepID sets the function id. Default DefaultID.
func WithStepID(id string) StepOption {
	return func(p *stepParams) { p.id = id }
}

// FromStep builds a step function from intensity = (min, threshold, max).
// The grid repeats the threshold so the curve jumps there; by default
// everything is destroyed above the step.
func FromStep(intensity [3]float64, opts ...StepOption) *ImpactFunc {
	p := stepParams{mdd: [2]float64{0, 1}, paa: [2]float64{1, 1}, id: DefaultID}
	for _, opt := range opts {
		opt(&p)
	}

	lo, threshold, hi := intensity[0], intensity[1], intensity[2]
	return &ImpactFunc{
		ID:        p.id,
		Intensity: []float64{lo, threshold, threshold, hi},
		MDD:       []float64{p.mdd[0], p.mdd[0], p.mdd[1], p.mdd[1]},
		PAA:       []float64{p.paa[0], p.paa[0], p.paa[1], p.paa[1]},
	}
}

// SigmoidOption customises FromSigmoid.
type SigmoidOption func(*ImpactFunc)

// WithSigmoidID sets the function id. Default DefaultID.
func WithSigmoidID(id string) SigmoidOption {
	return func(f *ImpactFunc) { f.ID = id }
}

// FromSigmoid builds a logistic MDD curve L / (1 + exp(-k(x - x0))) on the
// grid min, min+step, ... < max, given as intensity = (min, max, step). PAA
// is 1 everywhere.
func FromSigmoid(intensity [3]float64, l, k, x0 float64, opts ...SigmoidOption) *ImpactFunc {
	grid := interp.Arange(intensity[0], intensity[1], intensity[2])
	mdd := make([]float64, len(grid))
	for i, x := range grid {
		mdd[i] = l / (1 + math.Exp(-k*(x-x0)))
	}

	f := &ImpactFunc{
		ID:        DefaultID,
		Intensity: grid,
		MDD:       mdd,
		PAA:       interp.Fill(len(grid), 1),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}
