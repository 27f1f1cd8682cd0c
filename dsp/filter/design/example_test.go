package design_test

import (
	"fmt"

	"github.com/cwbudde/algo-audiofilters/dsp/filter/design"
)

func ExampleLowpass() {
	f, err := design.Lowpass(1000, design.DefaultQ, 48000)
	if err != nil {
		panic(err)
	}

	fmt.Printf("order %d\n", f.Order())
	fmt.Printf("%.4f dB at cutoff\n", f.MagnitudeDB(1000, 48000))

	// Output:
	// order 2
	// -3.0103 dB at cutoff
}

func ExampleButterworthLowpass() {
	c, err := design.ButterworthLowpass(1000, 4, 48000)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%d stages, order %d\n", c.NumStages(), c.Order())
	fmt.Printf("%.4f dB at cutoff\n", c.MagnitudeDB(1000, 48000))

	// Output:
	// 2 stages, order 4
	// -3.0103 dB at cutoff
}
