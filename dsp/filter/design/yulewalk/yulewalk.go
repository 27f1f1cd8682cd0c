package yulewalk

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-audiofilters/internal/polyroot"
)

// Errors returned by Design.
var (
	ErrInvalidOrder = errors.New("yulewalk: order must be at least 1")
	ErrInvalidGrid  = errors.New("yulewalk: invalid frequency grid")
)

// npt is the half-spectrum grid resolution. The full circle then has
// 2*npt points, a power of two for the FFT stages.
const npt = 512

// floor for power-spectrum values before taking logarithms in the
// cepstral minimum-phase reconstruction.
const spectralFloor = 1e-20

// Design computes denominator a and numerator b (both length order+1,
// a[0] = 1) of a recursive filter whose magnitude response approximates
// the given target curve in a least-squares sense.
//
// freqs are normalized to the Nyquist frequency (0 = DC, 1 = Nyquist) and
// must be strictly increasing with freqs[0] == 0 and freqs[len-1] == 1.
// gains are the desired linear magnitudes at those frequencies and must
// be non-negative. The denominator is stabilized by reflecting any pole
// outside the unit circle, so the returned filter is always stable.
func Design(order int, freqs, gains []float64) (b, a []float64, err error) {
	if order < 1 {
		return nil, nil, fmt.Errorf("%w: %d", ErrInvalidOrder, order)
	}

	if err := validateGrid(freqs, gains); err != nil {
		return nil, nil, err
	}

	ht := sampleCurve(freqs, gains)

	// Mirror the half spectrum onto the full circle:
	// [H(0) ... H(pi) H(pi-1) ... H(1)].
	n := 2 * npt
	full := make([]float64, n)
	copy(full, ht)

	for i := 1; i < npt; i++ {
		full[n-i] = ht[i]
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, nil, fmt.Errorf("yulewalk: failed to create FFT plan: %w", err)
	}

	// Autocorrelation of the desired power spectrum.
	spec := make([]complex128, n)
	for i, v := range full {
		spec[i] = complex(v*v, 0)
	}

	acf := make([]complex128, n)
	if err := plan.Inverse(acf, spec); err != nil {
		return nil, nil, fmt.Errorf("yulewalk: inverse FFT failed: %w", err)
	}

	// Keep nr lags and taper them with a Hamming window.
	nr := 4 * order

	r := make([]float64, nr)
	for i := range r {
		r[i] = real(acf[i])
	}

	window := make([]float64, nr)
	for t := range window {
		window[t] = 0.54 + 0.46*math.Cos(math.Pi*float64(t)/float64(nr-1))
	}

	vecmath.MulBlockInPlace(r, window)

	a, err = denominator(r, order)
	if err != nil {
		return nil, nil, err
	}

	b, err = numerator(plan, r, a, order)
	if err != nil {
		return nil, nil, err
	}

	return b, a, nil
}

func validateGrid(freqs, gains []float64) error {
	if len(freqs) != len(gains) || len(freqs) < 2 {
		return fmt.Errorf("%w: %d frequencies, %d gains", ErrInvalidGrid, len(freqs), len(gains))
	}

	if freqs[0] != 0 || freqs[len(freqs)-1] != 1 {
		return fmt.Errorf("%w: must span 0 to 1, got [%v, %v]",
			ErrInvalidGrid, freqs[0], freqs[len(freqs)-1])
	}

	for i := 1; i < len(freqs); i++ {
		if freqs[i] <= freqs[i-1] {
			return fmt.Errorf("%w: frequencies must be strictly increasing at index %d",
				ErrInvalidGrid, i)
		}
	}

	for i, g := range gains {
		if g < 0 || math.IsNaN(g) || math.IsInf(g, 0) {
			return fmt.Errorf("%w: gain %v at index %d", ErrInvalidGrid, g, i)
		}
	}

	return nil
}

// sampleCurve linearly interpolates the target magnitudes onto a uniform
// npt+1 point grid from DC to Nyquist inclusive.
func sampleCurve(freqs, gains []float64) []float64 {
	ht := make([]float64, npt+1)
	seg := 0

	for j := range ht {
		f := float64(j) / float64(npt)
		for seg < len(freqs)-2 && f > freqs[seg+1] {
			seg++
		}

		span := freqs[seg+1] - freqs[seg]
		frac := (f - freqs[seg]) / span
		ht[j] = gains[seg] + frac*(gains[seg+1]-gains[seg])
	}

	return ht
}

// denominator solves the modified Yule-Walker equations in the least
// squares sense over the windowed autocorrelation lags and stabilizes the
// result.
func denominator(r []float64, order int) ([]float64, error) {
	nr := len(r)
	rows := nr - 1 - order

	m := make([][]float64, rows)
	rhs := make([]float64, rows)

	for i := range rows {
		row := make([]float64, order)
		for j := range order {
			row[j] = r[order+i-j]
		}

		m[i] = row
		rhs[i] = -r[order+1+i]
	}

	x, err := lstsq(m, rhs)
	if err != nil {
		return nil, err
	}

	a := make([]float64, order+1)
	a[0] = 1
	copy(a[1:], x)

	stable, err := polyroot.Stabilize(a)
	if err != nil {
		return nil, fmt.Errorf("yulewalk: denominator stabilization failed: %w", err)
	}

	return stable, nil
}

// numerator performs the additive spectral decomposition and cepstral
// minimum-phase reconstruction, then least-squares fits the numerator to
// the reconstructed impulse response.
func numerator(plan *algofft.Plan[complex128], r, a []float64, order int) ([]float64, error) {
	nr := len(r)
	n := 2 * npt
	n2 := n / 2

	// Additive decomposition: fit qh so that qh/a matches the causal part
	// of the autocorrelation [r0/2, r1, ..., r(nr-1)].
	half := make([]float64, nr)
	half[0] = r[0] / 2
	copy(half[1:], r[1:])

	qh, err := fitToImpulse(half, a, order)
	if err != nil {
		return nil, err
	}

	// Power spectrum of the decomposition: Ss = 2*Re{Qh(w)/A(w)} around
	// the whole circle.
	qhSpec, err := transformPadded(plan, qh, n)
	if err != nil {
		return nil, err
	}

	aSpec, err := transformPadded(plan, a, n)
	if err != nil {
		return nil, err
	}

	logSS := make([]complex128, n)
	for i := range logSS {
		ss := 2 * real(qhSpec[i]/aSpec[i])
		if ss < spectralFloor {
			ss = spectralFloor
		}

		logSS[i] = complex(math.Log(ss), 0)
	}

	// Minimum-phase reconstruction via the real cepstrum: fold the
	// two-sided log spectrum onto its causal wing and exponentiate.
	cep := make([]complex128, n)
	if err := plan.Inverse(cep, logSS); err != nil {
		return nil, fmt.Errorf("yulewalk: inverse FFT failed: %w", err)
	}

	cep[0] /= 2
	for i := n2; i < n; i++ {
		cep[i] = 0
	}

	minSpec := make([]complex128, n)
	if err := plan.Forward(minSpec, cep); err != nil {
		return nil, fmt.Errorf("yulewalk: forward FFT failed: %w", err)
	}

	for i := range minSpec {
		minSpec[i] = cmplx.Exp(minSpec[i])
	}

	hh := make([]complex128, n)
	if err := plan.Inverse(hh, minSpec); err != nil {
		return nil, fmt.Errorf("yulewalk: inverse FFT failed: %w", err)
	}

	target := make([]float64, nr)
	for i := range target {
		target[i] = real(hh[i])
	}

	return fitToImpulse(target, a, order)
}

// fitToImpulse finds numerator coefficients q (length order+1) such that
// the impulse response of q/a best matches h in the least squares sense.
func fitToImpulse(h, a []float64, order int) ([]float64, error) {
	nh := len(h)
	impr := allPoleImpulse(a, nh)

	m := make([][]float64, nh)
	for i := range nh {
		row := make([]float64, order+1)
		for j := 0; j <= order && j <= i; j++ {
			row[j] = impr[i-j]
		}

		m[i] = row
	}

	return lstsq(m, h)
}

// allPoleImpulse returns n samples of the impulse response of 1/A(z).
func allPoleImpulse(a []float64, n int) []float64 {
	out := make([]float64, n)

	for i := range out {
		v := 0.0
		if i == 0 {
			v = 1
		}

		for k := 1; k < len(a) && k <= i; k++ {
			v -= a[k] * out[i-k]
		}

		out[i] = v / a[0]
	}

	return out
}

// transformPadded zero-pads coeffs to length n and returns its forward
// transform.
func transformPadded(plan *algofft.Plan[complex128], coeffs []float64, n int) ([]complex128, error) {
	padded := make([]complex128, n)
	for i, v := range coeffs {
		padded[i] = complex(v, 0)
	}

	out := make([]complex128, n)
	if err := plan.Forward(out, padded); err != nil {
		return nil, fmt.Errorf("yulewalk: forward FFT failed: %w", err)
	}

	return out, nil
}
