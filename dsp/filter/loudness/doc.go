// Package loudness provides an equal-loudness compensation filter.
//
// Human hearing is not equally sensitive across frequency: at a given
// sound pressure level, low and very high frequencies are perceived as
// quieter than the midrange (ISO 226 equal-loudness contours). The
// [Filter] built here applies the inverse of the 80-phon contour, so
// spectrally flat material passed through it is perceived as having
// uniform loudness across the band.
//
// The filter is a two-stage cascade: a 10th-order recursive stage fitted
// to the inverted contour with the Yule-Walker magnitude fit, followed by
// a second-order Butterworth high-pass that rolls off subsonic content.
// Construction is parameterized only by the sample rate and the fixed
// contour table; there is no runtime tuning beyond the constructor
// options.
package loudness
