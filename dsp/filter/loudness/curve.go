package loudness

// curvePoint is one sample of an equal-loudness contour: the sound
// pressure level (dB SPL) judged equally loud as the reference tone at
// the given frequency.
type curvePoint struct {
	freq float64 // Hz
	spl  float64 // dB SPL
}

// el80 is the 80-phon equal-loudness contour, extended to DC and 20 kHz,
// as published with the ReplayGain equal-loudness filter design. The
// curve is inverted and normalized at construction; the padding point at
// Nyquist (140 dB) is appended per sample rate in New.
var el80 = []curvePoint{
	{0, 120},
	{20, 113},
	{30, 103},
	{40, 97},
	{50, 93},
	{60, 91},
	{70, 89},
	{80, 87},
	{90, 86},
	{100, 85},
	{200, 78},
	{300, 76},
	{400, 76},
	{500, 76},
	{600, 76},
	{700, 77},
	{800, 78},
	{900, 79.5},
	{1000, 80},
	{1500, 79},
	{2000, 77},
	{2500, 74},
	{3000, 71.5},
	{3700, 70},
	{4000, 70.5},
	{5000, 74},
	{6000, 79},
	{8000, 84.5},
	{9000, 86},
	{10000, 85.5},
	{12000, 95},
	{15000, 110},
	{20000, 125},
}

// nyquistPadSPL is the gain point appended at the Nyquist frequency so
// the fitted response stays well-behaved at the top of the spectrum.
const nyquistPadSPL = 140

// defaultCurve returns the contour as parallel frequency/SPL slices.
func defaultCurve() (freqs, spls []float64) {
	freqs = make([]float64, len(el80))
	spls = make([]float64, len(el80))

	for i, p := range el80 {
		freqs[i] = p.freq
		spls[i] = p.spl
	}

	return freqs, spls
}
