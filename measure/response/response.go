// Package response derives frequency-domain views (magnitude and phase)
// of a filter from its impulse response.
//
// It consumes only the sample-by-sample processing contract, so any
// filter built from dsp/filter/iir, dsp/filter/design, or
// dsp/filter/loudness can be analyzed.
package response

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by analysis functions.
var (
	ErrInvalidLength     = errors.New("response: length must be positive")
	ErrInvalidSampleRate = errors.New("response: sample rate must be positive")
	ErrEmptyImpulse      = errors.New("response: impulse response is empty")
)

// Processor is the minimal filtering contract: one sample in, one sample
// out, plus a way to return to zero state. iir.Filter, iir.Cascade, and
// loudness.Filter all satisfy it.
type Processor interface {
	Process(x float64) (float64, error)
	Reset()
}

// ImpulseResponse resets p and captures n samples of its response to a
// unit impulse (1 followed by zeros).
func ImpulseResponse(p Processor, n int) ([]float64, error) {
	if n <= 0 {
		return nil, ErrInvalidLength
	}

	p.Reset()

	ir := make([]float64, n)

	y, err := p.Process(1)
	if err != nil {
		return nil, err
	}

	ir[0] = y

	for i := 1; i < n; i++ {
		if ir[i], err = p.Process(0); err != nil {
			return nil, err
		}
	}

	return ir, nil
}

// Spectrum is the single-sided frequency response derived from an impulse
// response: parallel slices from DC to Nyquist.
type Spectrum struct {
	Frequencies []float64 // Hz
	MagnitudeDB []float64 // 20*log10 |H|
	Phase       []float64 // unwrapped, radians
}

// Analyze computes the single-sided spectrum of an impulse response. The
// input is zero-padded to the next power of two before the transform.
func Analyze(ir []float64, sampleRate float64) (*Spectrum, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyImpulse
	}

	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}

	fftSize := nextPowerOf2(len(ir))

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("response: failed to create FFT plan: %w", err)
	}

	padded := make([]complex128, fftSize)
	for i, v := range ir {
		padded[i] = complex(v, 0)
	}

	spec := make([]complex128, fftSize)
	if err := plan.Forward(spec, padded); err != nil {
		return nil, fmt.Errorf("response: forward FFT failed: %w", err)
	}

	bins := fftSize/2 + 1

	re := make([]float64, bins)
	im := make([]float64, bins)

	for i := range bins {
		re[i] = real(spec[i])
		im[i] = imag(spec[i])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	out := &Spectrum{
		Frequencies: make([]float64, bins),
		MagnitudeDB: make([]float64, bins),
		Phase:       make([]float64, bins),
	}

	prev := 0.0
	offset := 0.0

	for i := range bins {
		out.Frequencies[i] = float64(i) * sampleRate / float64(fftSize)
		out.MagnitudeDB[i] = 20 * math.Log10(mag[i])

		phase := math.Atan2(im[i], re[i])

		// Unwrap: keep successive phase samples within pi of each other.
		if i > 0 {
			for phase+offset-prev > math.Pi {
				offset -= 2 * math.Pi
			}

			for phase+offset-prev < -math.Pi {
				offset += 2 * math.Pi
			}
		}

		out.Phase[i] = phase + offset
		prev = out.Phase[i]
	}

	return out, nil
}

func nextPowerOf2(n int) int {
	size := 1
	for size < n {
		size *= 2
	}

	return size
}
