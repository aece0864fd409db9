package window

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Cosine-sum coefficients of the Hann window.
var hannCoeffs = []float64{0.5, -0.5}

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic configures periodic form (FFT framing) instead of symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Hann returns Hann window coefficients. A window of one point is 1.
func Hann(size int, opts ...Option) ([]float64, error) {
	if err := validateLength(size); err != nil {
		return nil, err
	}

	cfg := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, size)
	if size == 1 {
		out[0] = 1
		return out, nil
	}
	for i := range out {
		out[i] = cosineFromCoeffs(samplePosition(i, size, cfg.periodic), hannCoeffs)
	}
	return out, nil
}

// ApplyHann multiplies buf in-place by a Hann window of the same length.
func ApplyHann(buf []float64, opts ...Option) {
	if len(buf) == 0 {
		return
	}

	coeffs, err := Hann(len(buf), opts...)
	if err != nil {
		return
	}
	vecmath.MulBlockInPlace(buf, coeffs)
}

func cosineFromCoeffs(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}

func samplePosition(n, size int, periodic bool) float64 {
	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}
