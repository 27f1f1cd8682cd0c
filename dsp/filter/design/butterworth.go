package design

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-audiofilters/dsp/filter/iir"
)

// ButterworthLowpass designs a maximally-flat low-pass cascade of the
// given order. Even orders use order/2 biquad sections with paired Q
// values; odd orders append a first-order section.
func ButterworthLowpass(freq float64, order int, sampleRate float64) (*iir.Cascade, error) {
	return butterworthCascade(freq, order, sampleRate, Lowpass, firstOrderLowpass)
}

// ButterworthHighpass designs a maximally-flat high-pass cascade of the
// given order.
func ButterworthHighpass(freq float64, order int, sampleRate float64) (*iir.Cascade, error) {
	return butterworthCascade(freq, order, sampleRate, Highpass, firstOrderHighpass)
}

func butterworthCascade(
	freq float64,
	order int,
	sampleRate float64,
	second func(freq, q, sampleRate float64) (*iir.Filter, error),
	first func(freq, sampleRate float64) (*iir.Filter, error),
) (*iir.Cascade, error) {
	if order <= 0 {
		return nil, fmt.Errorf("%w: order %d", ErrInvalidParameter, order)
	}

	stages := make([]*iir.Filter, 0, (order+1)/2)

	for i := order/2 - 1; i >= 0; i-- {
		f, err := second(freq, butterworthQ(order, i), sampleRate)
		if err != nil {
			return nil, err
		}

		stages = append(stages, f)
	}

	if order%2 != 0 {
		f, err := first(freq, sampleRate)
		if err != nil {
			return nil, err
		}

		stages = append(stages, f)
	}

	return iir.NewCascade(stages...), nil
}

// butterworthQ returns the quality factor of biquad section index for a
// Butterworth filter of the given order, from the pole angles
// theta = pi*(2i+1)/(2N).
func butterworthQ(order, index int) float64 {
	theta := math.Pi * float64(2*index+1) / (2 * float64(order))

	s := math.Sin(theta)
	if s == 0 {
		return DefaultQ
	}

	return 1 / (2 * s)
}

// firstOrderLowpass designs the first-order section of odd-order
// Butterworth cascades via the bilinear transform with K = tan(pi*f/fs).
func firstOrderLowpass(freq, sampleRate float64) (*iir.Filter, error) {
	k, err := bilinearK(freq, sampleRate)
	if err != nil {
		return nil, err
	}

	f, err := iir.New(1)
	if err != nil {
		return nil, err
	}

	if err := f.SetCoefficients([]float64{1 + k, k - 1}, []float64{k, k}); err != nil {
		return nil, err
	}

	return f, nil
}

// firstOrderHighpass designs the first-order high-pass counterpart.
func firstOrderHighpass(freq, sampleRate float64) (*iir.Filter, error) {
	k, err := bilinearK(freq, sampleRate)
	if err != nil {
		return nil, err
	}

	f, err := iir.New(1)
	if err != nil {
		return nil, err
	}

	if err := f.SetCoefficients([]float64{1 + k, k - 1}, []float64{1, -1}); err != nil {
		return nil, err
	}

	return f, nil
}

// bilinearK computes the frequency warping factor tan(pi*freq/sampleRate).
func bilinearK(freq, sampleRate float64) (float64, error) {
	if sampleRate <= 0 || freq <= 0 || freq >= sampleRate/2 {
		return 0, fmt.Errorf("%w: frequency %v (sample rate %v)",
			ErrInvalidParameter, freq, sampleRate)
	}

	return math.Tan(math.Pi * freq / sampleRate), nil
}
