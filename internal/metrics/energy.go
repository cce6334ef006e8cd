package metrics

import "math"

// Energy is the mean total mechanical energy of the observed samples.
type Energy struct {
	name        string
	samples     int
	totalEnergy float64
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(o Observation) {
	e.totalEnergy += o.KineticEnergy + o.PotentialEnergy
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// GravityShare is the fraction of the total absolute torque spent on gravity.
type GravityShare struct {
	name    string
	gravity float64
	total   float64
}

func NewGravityShare() *GravityShare {
	return &GravityShare{name: "gravity_share"}
}

func (s *GravityShare) Name() string { return s.name }

func (s *GravityShare) Observe(o Observation) {
	for k := range o.Tau {
		s.gravity += math.Abs(o.G[k])
		s.total += math.Abs(o.Tau[k])
	}
}

func (s *GravityShare) Value() float64 {
	if s.total == 0 {
		return 0
	}
	return s.gravity / s.total
}

func (s *GravityShare) Reset() {
	s.gravity = 0
	s.total = 0
}
