package loudness

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-audiofilters/dsp/filter/design"
	"github.com/cwbudde/algo-audiofilters/dsp/filter/design/yulewalk"
	"github.com/cwbudde/algo-audiofilters/dsp/filter/iir"
)

// Errors returned by New.
var (
	ErrInvalidSampleRate = errors.New("loudness: sample rate must be positive")
	ErrInvalidCutoff     = errors.New("loudness: high-pass cutoff must be positive and below Nyquist")
	ErrInvalidCurve      = errors.New("loudness: invalid loudness curve")
)

// Default construction parameters, matching the ReplayGain equal-loudness
// filter design.
const (
	DefaultYuleWalkOrder  = 10
	DefaultHighpassCutoff = 150.0 // Hz
)

// Filter compensates the inverse equal-loudness contour: an ordered
// cascade of recursive stages applied in series. Like iir.Filter, an
// instance is owned by a single goroutine.
type Filter struct {
	sampleRate float64
	stages     *iir.Cascade
}

type config struct {
	order      int
	cutoff     float64
	curveFreqs []float64
	curveSPLs  []float64
}

// Option configures New.
type Option func(*config)

// WithYuleWalkOrder sets the order of the contour-fitting stage. Higher
// orders track the target curve more closely at higher per-sample cost.
func WithYuleWalkOrder(order int) Option {
	return func(c *config) { c.order = order }
}

// WithHighpassCutoff sets the corner frequency (Hz) of the subsonic
// high-pass stage.
func WithHighpassCutoff(freq float64) Option {
	return func(c *config) { c.cutoff = freq }
}

// WithCurve replaces the built-in 80-phon contour with a custom
// equal-loudness table: parallel slices of frequency (Hz, strictly
// increasing, starting at 0) and sound pressure level (dB SPL). The
// table is inverted and normalized internally, like the default.
func WithCurve(freqs, spls []float64) Option {
	return func(c *config) {
		c.curveFreqs = freqs
		c.curveSPLs = spls
	}
}

// New builds an equal-loudness filter for the given sample rate.
func New(sampleRate float64, opts ...Option) (*Filter, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	cfg := config{
		order:  DefaultYuleWalkOrder,
		cutoff: DefaultHighpassCutoff,
	}
	cfg.curveFreqs, cfg.curveSPLs = defaultCurve()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	nyquist := sampleRate / 2
	if cfg.cutoff <= 0 || cfg.cutoff >= nyquist {
		return nil, fmt.Errorf("%w: %v Hz at sample rate %v", ErrInvalidCutoff, cfg.cutoff, sampleRate)
	}

	normFreqs, gains, err := targetCurve(cfg.curveFreqs, cfg.curveSPLs, nyquist)
	if err != nil {
		return nil, err
	}

	b, a, err := yulewalk.Design(cfg.order, normFreqs, gains)
	if err != nil {
		return nil, fmt.Errorf("loudness: contour fit failed: %w", err)
	}

	yw, err := iir.New(cfg.order)
	if err != nil {
		return nil, err
	}

	if err := yw.SetCoefficients(a, b); err != nil {
		return nil, err
	}

	hp, err := design.Highpass(cfg.cutoff, design.DefaultQ, sampleRate)
	if err != nil {
		return nil, err
	}

	return &Filter{
		sampleRate: sampleRate,
		stages:     iir.NewCascade(yw, hp),
	}, nil
}

// targetCurve inverts and normalizes the loudness table into the target
// magnitude grid for the Yule-Walker fit: frequencies scaled to Nyquist,
// table trimmed below Nyquist, and a padding point appended at Nyquist so
// the fit stays controlled at the top of the spectrum. Gains are the
// inverted contour with its quietest point at unity (0 dB).
func targetCurve(freqs, spls []float64, nyquist float64) (normFreqs, gains []float64, err error) {
	if len(freqs) != len(spls) || len(freqs) < 2 {
		return nil, nil, fmt.Errorf("%w: %d frequencies, %d levels", ErrInvalidCurve, len(freqs), len(spls))
	}

	if freqs[0] != 0 {
		return nil, nil, fmt.Errorf("%w: must start at 0 Hz, got %v", ErrInvalidCurve, freqs[0])
	}

	for i := 1; i < len(freqs); i++ {
		if freqs[i] <= freqs[i-1] {
			return nil, nil, fmt.Errorf("%w: frequencies must be strictly increasing at index %d",
				ErrInvalidCurve, i)
		}
	}

	// Keep the points below Nyquist, then pad at Nyquist. When the table
	// reaches past Nyquist the pad level is interpolated from the curve
	// instead of the fixed value, so low sample rates stay consistent.
	n := 0
	for n < len(freqs) && freqs[n] < nyquist {
		n++
	}

	if n < 2 {
		return nil, nil, fmt.Errorf("%w: too few points below Nyquist %v", ErrInvalidCurve, nyquist)
	}

	padSPL := float64(nyquistPadSPL)
	if n < len(freqs) {
		span := freqs[n] - freqs[n-1]
		frac := (nyquist - freqs[n-1]) / span
		padSPL = spls[n-1] + frac*(spls[n]-spls[n-1])
	}

	curveFreqs := append(append([]float64{}, freqs[:n]...), nyquist)
	curveSPLs := append(append([]float64{}, spls[:n]...), padSPL)

	minSPL := curveSPLs[0]
	for _, v := range curveSPLs[1:] {
		if v < minSPL {
			minSPL = v
		}
	}

	normFreqs = make([]float64, len(curveFreqs))
	gains = make([]float64, len(curveSPLs))

	for i := range curveFreqs {
		normFreqs[i] = curveFreqs[i] / nyquist
		gains[i] = math.Pow(10, (minSPL-curveSPLs[i])/20)
	}

	return normFreqs, gains, nil
}

// Process runs one sample through the cascade.
func (f *Filter) Process(x float64) (float64, error) {
	return f.stages.Process(x)
}

// ProcessBlock filters a block of samples in-place.
func (f *Filter) ProcessBlock(buf []float64) error {
	return f.stages.ProcessBlock(buf)
}

// Reset clears the history of every stage.
func (f *Filter) Reset() {
	f.stages.Reset()
}

// SampleRate returns the sample rate the filter was built for.
func (f *Filter) SampleRate() float64 {
	return f.sampleRate
}

// Stages exposes the underlying cascade for inspection.
func (f *Filter) Stages() *iir.Cascade {
	return f.stages
}

// Response returns the complex frequency response at freqHz.
func (f *Filter) Response(freqHz float64) complex128 {
	return f.stages.Response(freqHz, f.sampleRate)
}

// MagnitudeDB returns the magnitude response in dB at freqHz.
func (f *Filter) MagnitudeDB(freqHz float64) float64 {
	return f.stages.MagnitudeDB(freqHz, f.sampleRate)
}
