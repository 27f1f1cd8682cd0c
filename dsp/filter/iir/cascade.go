package iir

// Cascade is an ordered series of filters where each stage's output feeds
// the next. It is used for higher-order designs built from low-order
// stages (Butterworth cascades, the equal-loudness filter).
type Cascade struct {
	stages []*Filter
}

// NewCascade creates a cascade from the given stages, applied in order.
func NewCascade(stages ...*Filter) *Cascade {
	c := &Cascade{stages: make([]*Filter, len(stages))}
	copy(c.stages, stages)

	return c
}

// Process runs one sample through every stage in series.
func (c *Cascade) Process(x float64) (float64, error) {
	var err error
	for _, s := range c.stages {
		x, err = s.Process(x)
		if err != nil {
			return 0, err
		}
	}

	return x, nil
}

// ProcessBlock filters a block in-place through the full cascade.
func (c *Cascade) ProcessBlock(buf []float64) error {
	for _, s := range c.stages {
		if err := s.ProcessBlock(buf); err != nil {
			return err
		}
	}

	return nil
}

// Reset clears the history of every stage.
func (c *Cascade) Reset() {
	for _, s := range c.stages {
		s.Reset()
	}
}

// NumStages returns the number of stages.
func (c *Cascade) NumStages() int {
	return len(c.stages)
}

// Stage returns the i-th stage for inspection.
func (c *Cascade) Stage(i int) *Filter {
	return c.stages[i]
}

// Order returns the total filter order (sum of stage orders).
func (c *Cascade) Order() int {
	total := 0
	for _, s := range c.stages {
		total += s.Order()
	}

	return total
}
