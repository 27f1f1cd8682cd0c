// Package design computes filter coefficients from human-meaningful
// parameters (cutoff or center frequency, quality factor, gain) and
// returns ready-to-use runtime filters.
//
// The second-order designers implement the bilinear-transform formulas of
// the Audio EQ Cookbook (Robert Bristow-Johnson); each returns a
// configured order-2 [iir.Filter]. ButterworthLowpass and
// ButterworthHighpass assemble maximally-flat cascades of arbitrary order.
//
// The Yule-Walker magnitude fit for arbitrary target curves lives in the
// design/yulewalk subpackage.
package design
