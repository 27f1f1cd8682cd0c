package design

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-audiofilters/dsp/filter/iir"
)

// DefaultQ is the quality factor of a second-order Butterworth section,
// the usual choice when no resonance is wanted.
const DefaultQ = 1 / math.Sqrt2

// ErrInvalidParameter is returned for non-physical design inputs:
// non-positive sample rate, frequency, or Q, or a frequency at or above
// the Nyquist limit.
var ErrInvalidParameter = errors.New("design: invalid parameter")

// rbjVars holds the shared intermediate quantities of the Audio EQ
// Cookbook formulas: w0 = 2*pi*f0/fs, cos(w0), sin(w0), and
// alpha = sin(w0)/(2*Q).
type rbjVars struct {
	cosW0 float64
	sinW0 float64
	alpha float64
}

func commonVars(freq, q, sampleRate float64) (rbjVars, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return rbjVars{}, fmt.Errorf("%w: sample rate %v", ErrInvalidParameter, sampleRate)
	}

	if freq <= 0 || freq >= sampleRate/2 || math.IsNaN(freq) || math.IsInf(freq, 0) {
		return rbjVars{}, fmt.Errorf("%w: frequency %v (sample rate %v)",
			ErrInvalidParameter, freq, sampleRate)
	}

	if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		return rbjVars{}, fmt.Errorf("%w: Q %v", ErrInvalidParameter, q)
	}

	w0 := 2 * math.Pi * freq / sampleRate

	return rbjVars{
		cosW0: math.Cos(w0),
		sinW0: math.Sin(w0),
		alpha: math.Sin(w0) / (2 * q),
	}, nil
}

// newBiquad builds an order-2 filter from unnormalized cookbook
// coefficients. SetCoefficients divides through by a0.
func newBiquad(b0, b1, b2, a0, a1, a2 float64) (*iir.Filter, error) {
	f, err := iir.New(2)
	if err != nil {
		return nil, err
	}

	if err := f.SetCoefficients([]float64{a0, a1, a2}, []float64{b0, b1, b2}); err != nil {
		return nil, err
	}

	return f, nil
}

// Lowpass designs a second-order low-pass filter at freq (Hz). With
// q = DefaultQ the response is Butterworth (maximally flat).
func Lowpass(freq, q, sampleRate float64) (*iir.Filter, error) {
	v, err := commonVars(freq, q, sampleRate)
	if err != nil {
		return nil, err
	}

	b0 := (1 - v.cosW0) / 2
	b1 := 1 - v.cosW0

	return newBiquad(b0, b1, b0, 1+v.alpha, -2*v.cosW0, 1-v.alpha)
}

// Highpass designs a second-order high-pass filter at freq (Hz). With
// q = DefaultQ the response is Butterworth (maximally flat).
func Highpass(freq, q, sampleRate float64) (*iir.Filter, error) {
	v, err := commonVars(freq, q, sampleRate)
	if err != nil {
		return nil, err
	}

	b0 := (1 + v.cosW0) / 2
	b1 := -(1 + v.cosW0)

	return newBiquad(b0, b1, b0, 1+v.alpha, -2*v.cosW0, 1-v.alpha)
}

// Bandpass designs a second-order band-pass filter centered at freq (Hz)
// with 0 dB peak gain.
func Bandpass(freq, q, sampleRate float64) (*iir.Filter, error) {
	v, err := commonVars(freq, q, sampleRate)
	if err != nil {
		return nil, err
	}

	return newBiquad(v.alpha, 0, -v.alpha, 1+v.alpha, -2*v.cosW0, 1-v.alpha)
}

// Notch designs a second-order notch (band-reject) filter centered at
// freq (Hz).
func Notch(freq, q, sampleRate float64) (*iir.Filter, error) {
	v, err := commonVars(freq, q, sampleRate)
	if err != nil {
		return nil, err
	}

	return newBiquad(1, -2*v.cosW0, 1, 1+v.alpha, -2*v.cosW0, 1-v.alpha)
}

// Allpass designs a second-order all-pass filter centered at freq (Hz):
// unity magnitude everywhere, phase rotation around freq.
func Allpass(freq, q, sampleRate float64) (*iir.Filter, error) {
	v, err := commonVars(freq, q, sampleRate)
	if err != nil {
		return nil, err
	}

	return newBiquad(1-v.alpha, -2*v.cosW0, 1+v.alpha, 1+v.alpha, -2*v.cosW0, 1-v.alpha)
}

// Peak designs a second-order peaking EQ at freq (Hz) with the given gain
// in dB. A gain of 0 dB yields an all-pass (identity) response.
func Peak(freq, gainDB, q, sampleRate float64) (*iir.Filter, error) {
	v, err := commonVars(freq, q, sampleRate)
	if err != nil {
		return nil, err
	}

	a := math.Pow(10, gainDB/40)

	b0 := 1 + v.alpha*a
	b1 := -2 * v.cosW0
	b2 := 1 - v.alpha*a
	a0 := 1 + v.alpha/a
	a1 := -2 * v.cosW0
	a2 := 1 - v.alpha/a

	return newBiquad(b0, b1, b2, a0, a1, a2)
}

// LowShelf designs a second-order low-shelf at freq (Hz) with the given
// gain in dB below the corner.
func LowShelf(freq, gainDB, q, sampleRate float64) (*iir.Filter, error) {
	v, err := commonVars(freq, q, sampleRate)
	if err != nil {
		return nil, err
	}

	a := math.Pow(10, gainDB/40)
	beta := 2 * math.Sqrt(a) * v.alpha

	b0 := a * ((a + 1) - (a-1)*v.cosW0 + beta)
	b1 := 2 * a * ((a - 1) - (a+1)*v.cosW0)
	b2 := a * ((a + 1) - (a-1)*v.cosW0 - beta)
	a0 := (a + 1) + (a-1)*v.cosW0 + beta
	a1 := -2 * ((a - 1) + (a+1)*v.cosW0)
	a2 := (a + 1) + (a-1)*v.cosW0 - beta

	return newBiquad(b0, b1, b2, a0, a1, a2)
}

// HighShelf designs a second-order high-shelf at freq (Hz) with the given
// gain in dB above the corner.
func HighShelf(freq, gainDB, q, sampleRate float64) (*iir.Filter, error) {
	v, err := commonVars(freq, q, sampleRate)
	if err != nil {
		return nil, err
	}

	a := math.Pow(10, gainDB/40)
	beta := 2 * math.Sqrt(a) * v.alpha

	b0 := a * ((a + 1) + (a-1)*v.cosW0 + beta)
	b1 := -2 * a * ((a - 1) + (a+1)*v.cosW0)
	b2 := a * ((a + 1) + (a-1)*v.cosW0 - beta)
	a0 := (a + 1) - (a-1)*v.cosW0 + beta
	a1 := 2 * ((a - 1) - (a+1)*v.cosW0)
	a2 := (a + 1) - (a-1)*v.cosW0 - beta

	return newBiquad(b0, b1, b2, a0, a1, a2)
}
