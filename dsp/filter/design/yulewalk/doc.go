// Package yulewalk fits recursive filter coefficients to an arbitrary
// target magnitude curve using the least-squares method of Friedlander
// and Porat (the classic yulewalk design).
//
// The fit is an offline numerical procedure: the target curve is sampled
// onto a uniform grid, the autocorrelation of the desired power spectrum
// is recovered by an inverse FFT, the denominator follows from the
// modified Yule-Walker equations, and the numerator from a least-squares
// match against the minimum-phase impulse response reconstructed through
// the cepstrum. Inputs never vary at runtime for the intended uses
// (dsp/filter/loudness), so Design is called once at construction.
package yulewalk
