package iir

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by filter construction and processing.
var (
	ErrInvalidOrder        = errors.New("iir: order must be non-negative")
	ErrInvalidCoefficients = errors.New("iir: invalid coefficients")
	ErrNotConfigured       = errors.New("iir: coefficients not set")
)

// Filter is a single Direct Form 1 recursive filter of fixed order.
//
// The zero value is not usable; create instances with [New]. A Filter is
// owned by a single goroutine: every call mutates the history buffers.
type Filter struct {
	order int
	a     []float64 // denominator, a[0] == 1 after SetCoefficients
	b     []float64 // numerator

	// History ring buffers of capacity order, most recent sample at
	// position pos-1. Both share the same write position.
	xHist []float64
	yHist []float64
	pos   int

	configured bool
}

// New returns a Filter of the given order with zeroed history and no
// coefficients. Order 0 is a static gain; its history buffers stay empty.
func New(order int) (*Filter, error) {
	if order < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOrder, order)
	}

	return &Filter{
		order: order,
		xHist: make([]float64, order),
		yHist: make([]float64, order),
	}, nil
}

// SetCoefficients validates, normalizes, and stores the denominator a and
// numerator b. Both must have length order+1 and a[0] must be non-zero.
// All coefficients are divided by a[0] so the stored a[0] equals 1;
// normalizing already-normalized coefficients is a no-op.
//
// The history buffers are not reset, so coefficients can be swapped
// mid-stream without an output discontinuity from cleared state.
func (f *Filter) SetCoefficients(a, b []float64) error {
	want := f.order + 1
	if len(a) != want || len(b) != want {
		return fmt.Errorf("%w: expected length %d, got len(a)=%d len(b)=%d",
			ErrInvalidCoefficients, want, len(a), len(b))
	}

	a0 := a[0]
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return fmt.Errorf("%w: leading denominator coefficient a[0]=%v",
			ErrInvalidCoefficients, a0)
	}

	na := make([]float64, want)
	nb := make([]float64, want)
	for i := range a {
		na[i] = a[i] / a0
		nb[i] = b[i] / a0
	}

	f.a = na
	f.b = nb
	f.configured = true

	return nil
}

// Process filters one input sample and returns the output.
//
// Returns ErrNotConfigured if called before SetCoefficients. The cost is
// O(order): one pass over the two history rings, then one push into each.
func (f *Filter) Process(x float64) (float64, error) {
	if !f.configured {
		return 0, ErrNotConfigured
	}

	y := f.b[0] * x

	n := f.order
	for k := 1; k <= n; k++ {
		idx := f.pos - k
		if idx < 0 {
			idx += n
		}

		y += f.b[k]*f.xHist[idx] - f.a[k]*f.yHist[idx]
	}

	if n > 0 {
		f.xHist[f.pos] = x
		f.yHist[f.pos] = y

		f.pos++
		if f.pos >= n {
			f.pos = 0
		}
	}

	return y, nil
}

// ProcessBlock filters a block of samples in-place.
func (f *Filter) ProcessBlock(buf []float64) error {
	if !f.configured {
		return ErrNotConfigured
	}

	for i, x := range buf {
		y, err := f.Process(x)
		if err != nil {
			return err
		}

		buf[i] = y
	}

	return nil
}

// Reset clears the history buffers to zero. Coefficients are kept, so the
// filter can continue with a discontinuous stream.
func (f *Filter) Reset() {
	for i := range f.xHist {
		f.xHist[i] = 0
		f.yHist[i] = 0
	}

	f.pos = 0
}

// Order returns the filter order N.
func (f *Filter) Order() int {
	return f.order
}

// Configured reports whether SetCoefficients has been called successfully.
func (f *Filter) Configured() bool {
	return f.configured
}

// A returns a copy of the normalized denominator coefficients, or nil if
// the filter is not configured.
func (f *Filter) A() []float64 {
	if f.a == nil {
		return nil
	}

	out := make([]float64, len(f.a))
	copy(out, f.a)

	return out
}

// B returns a copy of the normalized numerator coefficients, or nil if
// the filter is not configured.
func (f *Filter) B() []float64 {
	if f.b == nil {
		return nil
	}

	out := make([]float64, len(f.b))
	copy(out, f.b)

	return out
}

// History returns copies of the input and output history buffers ordered
// most-recent-first. Both slices have length Order().
func (f *Filter) History() (inputs, outputs []float64) {
	n := f.order
	inputs = make([]float64, n)
	outputs = make([]float64, n)

	for k := 1; k <= n; k++ {
		idx := f.pos - k
		if idx < 0 {
			idx += n
		}

		inputs[k-1] = f.xHist[idx]
		outputs[k-1] = f.yHist[idx]
	}

	return inputs, outputs
}

// state captures the history rings for save/restore in ImpulseResponse.
type state struct {
	x, y []float64
	pos  int
}

func (f *Filter) saveState() state {
	s := state{
		x:   make([]float64, len(f.xHist)),
		y:   make([]float64, len(f.yHist)),
		pos: f.pos,
	}
	copy(s.x, f.xHist)
	copy(s.y, f.yHist)

	return s
}

func (f *Filter) restoreState(s state) {
	copy(f.xHist, s.x)
	copy(f.yHist, s.y)
	f.pos = s.pos
}
