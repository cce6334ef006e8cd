package metrics

import "math"

// CoriolisResidual is the worst factorization residual seen.
type CoriolisResidual struct {
	name string
	max  float64
}

func NewCoriolisResidual() *CoriolisResidual {
	return &CoriolisResidual{name: "coriolis_residual"}
}

func (c *CoriolisResidual) Name() string { return c.name }

func (c *CoriolisResidual) Observe(o Observation) {
	c.max = math.Max(c.max, o.CoriolisResidual)
}

func (c *CoriolisResidual) Value() float64 { return c.max }

func (c *CoriolisResidual) Reset() { c.max = 0 }

// ResidualCompliance is the fraction of samples whose residual stays within threshold.
type ResidualCompliance struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewResidualCompliance(threshold float64) *ResidualCompliance {
	return &ResidualCompliance{
		name:      "residual_compliance",
		threshold: threshold,
	}
}

func (s *ResidualCompliance) Name() string {
	return s.name
}

func (s *ResidualCompliance) Observe(o Observation) {
	s.samples++
	if o.CoriolisResidual > s.threshold || math.IsNaN(o.CoriolisResidual) {
		s.violations++
	}
}

func (s *ResidualCompliance) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *ResidualCompliance) Reset() {
	s.violations = 0
	s.samples = 0
}
