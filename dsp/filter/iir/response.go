package iir

import (
	"math"
	"math/cmplx"
)

// Response computes the complex frequency response H(e^jw) at the given
// frequency (Hz) and sample rate (Hz) by evaluating the coefficient
// polynomials at z^-1 = e^{-jw}. Returns 0 if the filter is not configured.
func (f *Filter) Response(freqHz, sampleRate float64) complex128 {
	if !f.configured {
		return 0
	}

	w := 2 * math.Pi * freqHz / sampleRate
	z := cmplx.Exp(complex(0, -w))

	return polyEval(f.b, z) / polyEval(f.a, z)
}

// MagnitudeDB returns 20*log10(|H(f)|).
func (f *Filter) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(f.Response(freqHz, sampleRate)))
}

// Phase returns the phase response in radians at the given frequency,
// in [-pi, pi].
func (f *Filter) Phase(freqHz, sampleRate float64) float64 {
	return cmplx.Phase(f.Response(freqHz, sampleRate))
}

// ImpulseResponse computes n samples of the impulse response h[n] by
// feeding a unit impulse through the filter. The history is saved and
// restored, so the call does not disturb an ongoing stream.
func (f *Filter) ImpulseResponse(n int) ([]float64, error) {
	if n <= 0 {
		return nil, nil
	}

	saved := f.saveState()
	defer f.restoreState(saved)
	f.Reset()

	ir := make([]float64, n)

	y, err := f.Process(1)
	if err != nil {
		return nil, err
	}

	ir[0] = y

	for i := 1; i < n; i++ {
		if ir[i], err = f.Process(0); err != nil {
			return nil, err
		}
	}

	return ir, nil
}

// Response computes the cascade frequency response as the product of the
// stage responses.
func (c *Cascade) Response(freqHz, sampleRate float64) complex128 {
	h := complex(1, 0)
	for _, s := range c.stages {
		h *= s.Response(freqHz, sampleRate)
	}

	return h
}

// MagnitudeDB returns the cascaded magnitude response in dB.
func (c *Cascade) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.Response(freqHz, sampleRate)))
}

// Phase returns the cascaded phase response in radians, in [-pi, pi].
func (c *Cascade) Phase(freqHz, sampleRate float64) float64 {
	return cmplx.Phase(c.Response(freqHz, sampleRate))
}

// ImpulseResponse computes n samples of the cascade impulse response.
// Every stage's history is saved and restored.
func (c *Cascade) ImpulseResponse(n int) ([]float64, error) {
	if n <= 0 {
		return nil, nil
	}

	saved := make([]state, len(c.stages))
	for i, s := range c.stages {
		saved[i] = s.saveState()
	}

	defer func() {
		for i, s := range c.stages {
			s.restoreState(saved[i])
		}
	}()

	c.Reset()

	ir := make([]float64, n)

	y, err := c.Process(1)
	if err != nil {
		return nil, err
	}

	ir[0] = y

	for i := 1; i < n; i++ {
		if ir[i], err = c.Process(0); err != nil {
			return nil, err
		}
	}

	return ir, nil
}

// polyEval evaluates c[0] + c[1]*z + c[2]*z^2 + ... using Horner's method.
func polyEval(coeffs []float64, z complex128) complex128 {
	v := complex(0, 0)
	for i := len(coeffs) - 1; i >= 0; i-- {
		v = v*z + complex(coeffs[i], 0)
	}

	return v
}
