// Package polyroot provides polynomial root finding and stabilization
// utilities shared by the filter design packages.
package polyroot

import (
	"errors"
	"math"
	"math/cmplx"
)

// ErrDegeneratePolynomial is returned when a polynomial has degenerate
// coefficients (leading coefficient zero, convergence failure, etc.).
var ErrDegeneratePolynomial = errors.New("polyroot: degenerate polynomial")

// Roots finds all roots of a real polynomial. Coefficients are in
// descending power order: coeffs[0]*x^n + ... + coeffs[n].
func Roots(coeffs []float64) ([]complex128, error) {
	c := make([]complex128, len(coeffs))
	for i, v := range coeffs {
		c[i] = complex(v, 0)
	}

	return DurandKerner(c)
}

// Stabilize reflects every root of the polynomial that lies outside the
// unit circle to its reciprocal conjugate position 1/conj(r), turning an
// unstable recursion into a stable one with the same magnitude response
// shape. Coefficients are in descending power order; the leading
// coefficient is preserved.
func Stabilize(coeffs []float64) ([]float64, error) {
	if len(coeffs) == 0 || coeffs[0] == 0 {
		return nil, ErrDegeneratePolynomial
	}

	if len(coeffs) == 1 {
		return []float64{coeffs[0]}, nil
	}

	roots, err := Roots(coeffs)
	if err != nil {
		return nil, err
	}

	for i, r := range roots {
		if cmplx.Abs(r) > 1 {
			roots[i] = 1 / cmplx.Conj(r)
		}
	}

	poly := FromRoots(roots)
	out := make([]float64, len(poly))
	lead := coeffs[0]

	for i, v := range poly {
		out[i] = lead * real(v)
	}

	return out, nil
}

// FromRoots expands the monic polynomial with the given roots. The result
// has length len(roots)+1 in descending power order.
func FromRoots(roots []complex128) []complex128 {
	poly := make([]complex128, 1, len(roots)+1)
	poly[0] = 1

	for _, r := range roots {
		poly = append(poly, 0)
		for i := len(poly) - 1; i >= 1; i-- {
			poly[i] -= r * poly[i-1]
		}
	}

	return poly
}

// DurandKerner finds all roots of a polynomial using the Durand-Kerner
// (Weierstrass) simultaneous iteration method. Coefficients are in
// descending power order: coeff[0]*z^n + coeff[1]*z^(n-1) + ... + coeff[n].
//
//nolint:cyclop
func DurandKerner(coeff []complex128) ([]complex128, error) {
	if len(coeff) < 2 {
		return nil, ErrDegeneratePolynomial
	}

	lead := coeff[0]
	if lead == 0 {
		return nil, ErrDegeneratePolynomial
	}

	n := len(coeff) - 1

	norm := make([]complex128, len(coeff))
	for i := range coeff {
		norm[i] = coeff[i] / lead
	}

	radius := 0.0
	for i := 1; i <= n; i++ {
		if r := cmplx.Abs(norm[i]); r > radius {
			radius = r
		}
	}

	if radius < 1 {
		radius = 1
	}

	roots := make([]complex128, n)
	for i := range n {
		angle := 2*math.Pi*float64(i)/float64(n) + 0.3
		r := radius * (1 + 0.1*float64(i)/float64(n))
		roots[i] = complex(r*math.Cos(angle), r*math.Sin(angle))
	}

	const (
		maxIter = 500
		tol     = 1e-12
	)

	for range maxIter {
		maxDelta := 0.0

		for i := range n {
			den := complex(1, 0)

			for j := range n {
				if i == j {
					continue
				}

				den *= roots[i] - roots[j]
			}

			if cmplx.Abs(den) == 0 {
				roots[i] += complex(1e-10, 1e-10)
				continue
			}

			f := PolyEval(norm, roots[i])
			delta := f / den

			roots[i] -= delta
			if d := cmplx.Abs(delta); d > maxDelta {
				maxDelta = d
			}
		}

		if maxDelta < tol {
			return roots, nil
		}
	}

	maxResidual := 0.0

	for _, r := range roots {
		res := cmplx.Abs(PolyEval(norm, r))
		if res > maxResidual {
			maxResidual = res
		}
	}

	if maxResidual < 1e-6 {
		return roots, nil
	}

	return nil, ErrDegeneratePolynomial
}

// PolyEval evaluates a polynomial at x using Horner's method. Coefficients
// are in descending power order: coeff[0]*x^n + ... + coeff[n].
func PolyEval(coeff []complex128, x complex128) complex128 {
	v := coeff[0]
	for i := 1; i < len(coeff); i++ {
		v = v*x + coeff[i]
	}

	return v
}
