// Package iir provides the runtime for recursive (IIR) digital filters.
//
// A [Filter] evaluates the Direct Form 1 difference equation
//
//	a[0]*y[n] = b[0]*x[n] + ... + b[N]*x[n-N] - a[1]*y[n-1] - ... - a[N]*y[n-N]
//
// for an arbitrary order N, keeping the last N inputs and outputs in
// fixed-capacity ring buffers. Coefficients are normalized by a[0] when set,
// so the stored leading denominator coefficient is always 1.
//
// Multiple filters can be applied in series via [Cascade], which is how
// higher-order designs (Butterworth cascades, the equal-loudness filter)
// are assembled. Coefficient design lives in dsp/filter/design and
// dsp/filter/loudness; this package provides the processing runtime only.
package iir
