// Command filterinfo prints the frequency response of the audio filter
// designs as a log-spaced magnitude/phase table.
//
// Usage:
//
//	filterinfo [flags] <shape>
//
// Shapes: lowpass, highpass, bandpass, notch, allpass, peak, lowshelf,
// highshelf, butterworth-lp, butterworth-hp, equal-loudness.
//
// Examples:
//
//	filterinfo lowpass
//	filterinfo -freq 2000 -q 1.414 -gain 6 peak
//	filterinfo -rate 44100 equal-loudness
//	filterinfo -freq 500 -order 6 butterworth-hp
//	filterinfo -list
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-audiofilters/dsp/filter/design"
	"github.com/cwbudde/algo-audiofilters/dsp/filter/loudness"
	"github.com/cwbudde/algo-audiofilters/measure/response"
)

type shapeEntry struct {
	name     string
	hasGain  bool
	hasOrder bool
	build    func(p params) (response.Processor, error)
}

type params struct {
	freq   float64
	q      float64
	gainDB float64
	order  int
	rate   float64
}

var registry = []shapeEntry{
	{"lowpass", false, false, func(p params) (response.Processor, error) {
		return design.Lowpass(p.freq, p.q, p.rate)
	}},
	{"highpass", false, false, func(p params) (response.Processor, error) {
		return design.Highpass(p.freq, p.q, p.rate)
	}},
	{"bandpass", false, false, func(p params) (response.Processor, error) {
		return design.Bandpass(p.freq, p.q, p.rate)
	}},
	{"notch", false, false, func(p params) (response.Processor, error) {
		return design.Notch(p.freq, p.q, p.rate)
	}},
	{"allpass", false, false, func(p params) (response.Processor, error) {
		return design.Allpass(p.freq, p.q, p.rate)
	}},
	{"peak", true, false, func(p params) (response.Processor, error) {
		return design.Peak(p.freq, p.gainDB, p.q, p.rate)
	}},
	{"lowshelf", true, false, func(p params) (response.Processor, error) {
		return design.LowShelf(p.freq, p.gainDB, p.q, p.rate)
	}},
	{"highshelf", true, false, func(p params) (response.Processor, error) {
		return design.HighShelf(p.freq, p.gainDB, p.q, p.rate)
	}},
	{"butterworth-lp", false, true, func(p params) (response.Processor, error) {
		return design.ButterworthLowpass(p.freq, p.order, p.rate)
	}},
	{"butterworth-hp", false, true, func(p params) (response.Processor, error) {
		return design.ButterworthHighpass(p.freq, p.order, p.rate)
	}},
	{"equal-loudness", false, false, func(p params) (response.Processor, error) {
		return loudness.New(p.rate)
	}},
}

func main() {
	freq := flag.Float64("freq", 1000, "cutoff/center frequency in Hz")
	q := flag.Float64("q", design.DefaultQ, "quality factor")
	gain := flag.Float64("gain", 6, "gain in dB (peak and shelf shapes)")
	order := flag.Int("order", 4, "filter order (butterworth shapes)")
	rate := flag.Float64("rate", 48000, "sample rate in Hz")
	points := flag.Int("points", 16, "number of log-spaced table rows")
	irLen := flag.Int("irlen", 4096, "impulse response length for the FFT analysis")
	list := flag.Bool("list", false, "list available shapes")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: filterinfo [flags] <shape>\n\n")
		fmt.Fprintf(os.Stderr, "Prints the magnitude/phase response of a filter design.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  filterinfo lowpass\n")
		fmt.Fprintf(os.Stderr, "  filterinfo -freq 2000 -q 1.414 -gain 6 peak\n")
		fmt.Fprintf(os.Stderr, "  filterinfo -rate 44100 equal-loudness\n")
	}
	flag.Parse()

	if *list {
		printList()
		return
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	name := strings.ToLower(strings.TrimSpace(flag.Arg(0)))

	entry, ok := lookup(name)
	if !ok {
		fmt.Fprintf(os.Stderr, "error: unknown shape %q (use -list to see available)\n", name)
		os.Exit(1)
	}

	p := params{freq: *freq, q: *q, gainDB: *gain, order: *order, rate: *rate}

	filt, err := entry.build(p)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := printResponse(name, filt, p.rate, *points, *irLen); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func lookup(name string) (shapeEntry, bool) {
	for _, e := range registry {
		if e.name == name {
			return e, true
		}
	}

	return shapeEntry{}, false
}

func printList() {
	entries := make([]shapeEntry, len(registry))
	copy(entries, registry)
	sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })

	for _, e := range entries {
		switch {
		case e.hasGain:
			fmt.Printf("%s (uses -gain)\n", e.name)
		case e.hasOrder:
			fmt.Printf("%s (uses -order)\n", e.name)
		default:
			fmt.Println(e.name)
		}
	}
}

func printResponse(name string, filt response.Processor, rate float64, points, irLen int) error {
	ir, err := response.ImpulseResponse(filt, irLen)
	if err != nil {
		return err
	}

	spec, err := response.Analyze(ir, rate)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "# %s @ %.0f Hz sample rate\n", name, rate)
	fmt.Fprintf(tw, "Frequency [Hz]\tMagnitude [dB]\tPhase [rad]\n")

	// Log spacing from 20 Hz to Nyquist.
	lo := math.Log10(20)
	hi := math.Log10(rate / 2)

	for i := range points {
		f := math.Pow(10, lo+(hi-lo)*float64(i)/float64(points-1))
		bin := nearestBin(spec.Frequencies, f)
		fmt.Fprintf(tw, "%9.1f\t%+8.2f\t%+7.3f\n",
			spec.Frequencies[bin], spec.MagnitudeDB[bin], spec.Phase[bin])
	}

	return tw.Flush()
}

func nearestBin(freqs []float64, f float64) int {
	best := 0
	bestDist := math.Inf(1)

	for i, v := range freqs {
		if d := math.Abs(v - f); d < bestDist {
			bestDist = d
			best = i
		}
	}

	return best
}
