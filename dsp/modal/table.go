package modal

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-modal/dsp/vecops"
)

// ErrInvalidTable is returned for mode tables that cannot drive a bank.
var ErrInvalidTable = errors.New("modal: invalid mode table")

// ModeTable is a static set of modes measured at AnalysisSampleRate.
// Taus are decay time constants in samples at that rate.
type ModeTable struct {
	Freqs    []float64
	Taus     []float64
	AmpsReal []float64
	AmpsImag []float64

	AnalysisSampleRate float64
}

// NumModes returns the number of modes in the table.
func (t ModeTable) NumModes() int { return len(t.Freqs) }

// Validate checks that the columns agree in length and hold usable values.
func (t ModeTable) Validate() error {
	n := len(t.Freqs)
	if n == 0 {
		return fmt.Errorf("%w: no modes", ErrInvalidTable)
	}
	if len(t.Taus) != n || len(t.AmpsReal) != n || len(t.AmpsImag) != n {
		return fmt.Errorf("%w: column lengths differ (freqs %d, taus %d, amps %d/%d)",
			ErrInvalidTable, n, len(t.Taus), len(t.AmpsReal), len(t.AmpsImag))
	}
	if !(t.AnalysisSampleRate > 0) || math.IsInf(t.AnalysisSampleRate, 0) {
		return fmt.Errorf("%w: analysis sample rate must be positive and finite: %f",
			ErrInvalidTable, t.AnalysisSampleRate)
	}

	for i := range n {
		switch {
		case !finite(t.Freqs[i]) || t.Freqs[i] < 0:
			return fmt.Errorf("%w: mode %d frequency must be non-negative and finite: %f", ErrInvalidTable, i, t.Freqs[i])
		case !finite(t.Taus[i]) || t.Taus[i] <= 0:
			return fmt.Errorf("%w: mode %d tau must be positive and finite: %f", ErrInvalidTable, i, t.Taus[i])
		case !finite(t.AmpsReal[i]) || !finite(t.AmpsImag[i]):
			return fmt.Errorf("%w: mode %d amplitude must be finite", ErrInvalidTable, i)
		}
	}

	return nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Columns converts the table columns to the sample type of a bank.
func Columns[T vecops.Float](t ModeTable) (freqs, taus, ampsReal, ampsImag []T) {
	return convert[T](t.Freqs), convert[T](t.Taus), convert[T](t.AmpsReal), convert[T](t.AmpsImag)
}

func convert[T vecops.Float](xs []float64) []T {
	out := make([]T, len(xs))
	for i, x := range xs {
		out[i] = T(x)
	}
	return out
}

// Spring table shape.
const (
	springFundamental = 43.0
	springStiffness   = 2e-4
	springDecaySec    = 2.4
	springDecaySlope  = 0.015
	springAmpSlope    = 0.04
	springPhaseStep   = 2.399963229728653 // golden angle
	springAnalysisFs  = 48000
)

// SpringTable returns a deterministic n-mode table shaped like a
// dispersive spring: a stiff-string partial series whose upper partials
// decay faster and ring quieter. The first mode has unit magnitude.
func SpringTable(n int) ModeTable {
	n = max(n, 0)
	t := ModeTable{
		Freqs:              make([]float64, n),
		Taus:               make([]float64, n),
		AmpsReal:           make([]float64, n),
		AmpsImag:           make([]float64, n),
		AnalysisSampleRate: springAnalysisFs,
	}

	for i := range n {
		k := float64(i + 1)
		t.Freqs[i] = springFundamental * k * math.Sqrt(1+springStiffness*k*k)

		decaySec := springDecaySec / (1 + springDecaySlope*float64(i))
		t.Taus[i] = decaySec * springAnalysisFs / math.Log(1000)

		mag := 1 / (1 + springAmpSlope*float64(i))
		s, c := math.Sincos(springPhaseStep * float64(i))
		t.AmpsReal[i] = mag * c
		t.AmpsImag[i] = mag * s
	}

	return t
}
