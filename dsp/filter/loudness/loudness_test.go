package loudness

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-audiofilters/internal/testutil"
)

func TestNew_RejectsBadSampleRate(t *testing.T) {
	for _, rate := range []float64{0, -44100, math.NaN(), math.Inf(1)} {
		if _, err := New(rate); !errors.Is(err, ErrInvalidSampleRate) {
			t.Fatalf("rate %v: got %v, want ErrInvalidSampleRate", rate, err)
		}
	}
}

func TestNew_RejectsBadCutoff(t *testing.T) {
	for _, cutoff := range []float64{0, -150, 22050, 30000} {
		_, err := New(44100, WithHighpassCutoff(cutoff))
		if !errors.Is(err, ErrInvalidCutoff) {
			t.Fatalf("cutoff %v: got %v, want ErrInvalidCutoff", cutoff, err)
		}
	}
}

func TestNew_RejectsBadCurve(t *testing.T) {
	cases := []struct {
		name  string
		freqs []float64
		spls  []float64
	}{
		{"length mismatch", []float64{0, 100}, []float64{80}},
		{"too short", []float64{0}, []float64{80}},
		{"missing dc", []float64{10, 100}, []float64{80, 75}},
		{"not increasing", []float64{0, 100, 100}, []float64{80, 75, 70}},
		{"single point below nyquist", []float64{0, 100000}, []float64{80, 140}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(44100, WithCurve(tc.freqs, tc.spls))
			if !errors.Is(err, ErrInvalidCurve) {
				t.Fatalf("got %v, want ErrInvalidCurve", err)
			}
		})
	}
}

func TestNew_DefaultStructure(t *testing.T) {
	f, err := New(44100)
	if err != nil {
		t.Fatal(err)
	}

	c := f.Stages()

	if c.NumStages() != 2 {
		t.Fatalf("%d stages, want 2", c.NumStages())
	}

	if c.Order() != DefaultYuleWalkOrder+2 {
		t.Fatalf("total order %d, want %d", c.Order(), DefaultYuleWalkOrder+2)
	}

	if f.SampleRate() != 44100 {
		t.Fatalf("SampleRate = %v, want 44100", f.SampleRate())
	}
}

func TestNew_OrderOption(t *testing.T) {
	f, err := New(48000, WithYuleWalkOrder(8))
	if err != nil {
		t.Fatal(err)
	}

	if got := f.Stages().Stage(0).Order(); got != 8 {
		t.Fatalf("contour stage order %d, want 8", got)
	}

	if got := f.Stages().Stage(1).Order(); got != 2 {
		t.Fatalf("high-pass stage order %d, want 2", got)
	}
}

func TestMagnitude_FollowsInvertedContour(t *testing.T) {
	f, err := New(44100)
	if err != nil {
		t.Fatal(err)
	}

	// The ear is least sensitive at the spectrum edges, so the inverse
	// contour attenuates bass and extreme treble and passes the presence
	// region near its 3-4 kHz sensitivity peak.
	presence := f.MagnitudeDB(3000)
	bass := f.MagnitudeDB(50)
	subBass := f.MagnitudeDB(20)
	treble := f.MagnitudeDB(16000)

	if math.Abs(presence) > 6 {
		t.Fatalf("presence region %v dB, want near unity", presence)
	}

	if bass > presence-10 {
		t.Fatalf("bass %v dB vs presence %v dB, want at least 10 dB down", bass, presence)
	}

	if subBass > bass {
		t.Fatalf("sub-bass %v dB above bass %v dB", subBass, bass)
	}

	if treble > presence-10 {
		t.Fatalf("treble %v dB vs presence %v dB, want at least 10 dB down", treble, presence)
	}
}

func TestMagnitude_HighpassCutoffShapesBass(t *testing.T) {
	low, err := New(44100, WithHighpassCutoff(50))
	if err != nil {
		t.Fatal(err)
	}

	high, err := New(44100, WithHighpassCutoff(400))
	if err != nil {
		t.Fatal(err)
	}

	// A higher subsonic corner removes more low end.
	if high.MagnitudeDB(100) >= low.MagnitudeDB(100) {
		t.Fatalf("cutoff 400 Hz keeps more 100 Hz (%v dB) than cutoff 50 Hz (%v dB)",
			high.MagnitudeDB(100), low.MagnitudeDB(100))
	}
}

func TestProcessBlock_MatchesPerSample(t *testing.T) {
	perSample, err := New(48000)
	if err != nil {
		t.Fatal(err)
	}

	block, err := New(48000)
	if err != nil {
		t.Fatal(err)
	}

	input := make([]float64, 256)
	for i := range input {
		input[i] = math.Sin(2*math.Pi*440*float64(i)/48000) * 0.5
	}

	want := make([]float64, len(input))
	for i, x := range input {
		if want[i], err = perSample.Process(x); err != nil {
			t.Fatal(err)
		}
	}

	buf := append([]float64(nil), input...)
	if err := block.ProcessBlock(buf); err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, buf, want, 0)
}

func TestReset_RestartsCleanly(t *testing.T) {
	f, err := New(48000)
	if err != nil {
		t.Fatal(err)
	}

	first := make([]float64, 64)
	for i := range first {
		if first[i], err = f.Process(float64(i % 7)); err != nil {
			t.Fatal(err)
		}
	}

	f.Reset()

	for i := range first {
		y, err := f.Process(float64(i % 7))
		if err != nil {
			t.Fatal(err)
		}

		testutil.RequireNear(t, y, first[i], 0)
	}
}

func TestNew_CustomCurve(t *testing.T) {
	// A shallow V-shaped contour: most sensitive at 1 kHz.
	freqs := []float64{0, 100, 1000, 8000, 20000}
	spls := []float64{100, 90, 80, 90, 100}

	f, err := New(44100, WithCurve(freqs, spls))
	if err != nil {
		t.Fatal(err)
	}

	if f.MagnitudeDB(50) >= f.MagnitudeDB(1000) {
		t.Fatalf("custom curve: 50 Hz (%v dB) not below 1 kHz (%v dB)",
			f.MagnitudeDB(50), f.MagnitudeDB(1000))
	}
}

func BenchmarkProcess(b *testing.B) {
	f, err := New(48000)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()

	x := 0.5
	for range b.N {
		y, _ := f.Process(x)
		x = 0.5 + 0.1*y
	}
}
