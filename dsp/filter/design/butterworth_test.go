package design

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-audiofilters/internal/testutil"
)

func TestButterworth_RejectsNonPositiveOrder(t *testing.T) {
	for _, order := range []int{0, -1} {
		if _, err := ButterworthLowpass(1000, order, sampleRate); !errors.Is(err, ErrInvalidParameter) {
			t.Fatalf("order %d: got %v, want ErrInvalidParameter", order, err)
		}
	}
}

func TestButterworth_RejectsBadFrequency(t *testing.T) {
	if _, err := ButterworthLowpass(sampleRate/2, 4, sampleRate); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("got %v, want ErrInvalidParameter", err)
	}

	if _, err := ButterworthHighpass(0, 3, sampleRate); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("got %v, want ErrInvalidParameter", err)
	}
}

func TestButterworthLowpass_CornerAtMinus3dB(t *testing.T) {
	// Every order crosses the cutoff at -3.01 dB; that is the Butterworth
	// defining property.
	for order := 1; order <= 8; order++ {
		c, err := ButterworthLowpass(1000, order, sampleRate)
		if err != nil {
			t.Fatal(err)
		}

		testutil.RequireNear(t, c.MagnitudeDB(1000, sampleRate), -3.0103, 1e-3)
		testutil.RequireNear(t, c.MagnitudeDB(0, sampleRate), 0, 1e-9)
	}
}

func TestButterworthHighpass_CornerAtMinus3dB(t *testing.T) {
	for order := 1; order <= 8; order++ {
		c, err := ButterworthHighpass(1000, order, sampleRate)
		if err != nil {
			t.Fatal(err)
		}

		testutil.RequireNear(t, c.MagnitudeDB(1000, sampleRate), -3.0103, 1e-3)
		testutil.RequireNear(t, c.MagnitudeDB(sampleRate/2-1, sampleRate), 0, 1e-6)
	}
}

func TestButterworth_StageCount(t *testing.T) {
	cases := []struct {
		order, stages int
	}{
		{1, 1},
		{2, 1},
		{3, 2},
		{4, 2},
		{5, 3},
		{8, 4},
	}

	for _, tc := range cases {
		c, err := ButterworthLowpass(1000, tc.order, sampleRate)
		if err != nil {
			t.Fatal(err)
		}

		if c.NumStages() != tc.stages {
			t.Fatalf("order %d: %d stages, want %d", tc.order, c.NumStages(), tc.stages)
		}

		if c.Order() != tc.order {
			t.Fatalf("order %d: cascade reports order %d", tc.order, c.Order())
		}
	}
}

func TestButterworthLowpass_RolloffSteepensWithOrder(t *testing.T) {
	// One octave above the cutoff, each order roughly adds -6 dB.
	prev := 0.0

	for order := 1; order <= 6; order++ {
		c, err := ButterworthLowpass(1000, order, sampleRate)
		if err != nil {
			t.Fatal(err)
		}

		db := c.MagnitudeDB(2000, sampleRate)
		if db >= prev {
			t.Fatalf("order %d: %v dB at one octave, not steeper than order %d (%v dB)",
				order, db, order-1, prev)
		}

		prev = db
	}
}

func TestButterworthLowpass_ImpulseDecays(t *testing.T) {
	c, err := ButterworthLowpass(500, 6, sampleRate)
	if err != nil {
		t.Fatal(err)
	}

	ir, err := c.ImpulseResponse(4000)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireFinite(t, ir)

	for i := 3800; i < len(ir); i++ {
		if v := ir[i]; v > 1e-6 || v < -1e-6 {
			t.Fatalf("impulse response has not decayed at sample %d: %v", i, v)
		}
	}
}
