package metrics

import "math"

type TorqueEffort struct {
	name    string
	sum     float64
	samples int
}

func NewTorqueEffort() *TorqueEffort {
	return &TorqueEffort{
		name: "torque_effort",
	}
}

func (c *TorqueEffort) Name() string {
	return c.name
}

func (c *TorqueEffort) Observe(o Observation) {
	for _, val := range o.Tau {
		c.sum += math.Abs(val)
	}
	c.samples++
}

func (c *TorqueEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *TorqueEffort) Reset() {
	c.sum = 0
	c.samples = 0
}

type PeakTorque struct {
	name string
	peak float64
}

func NewPeakTorque() *PeakTorque {
	return &PeakTorque{name: "peak_torque"}
}

func (p *PeakTorque) Name() string { return p.name }

func (p *PeakTorque) Observe(o Observation) {
	for _, val := range o.Tau {
		p.peak = math.Max(p.peak, math.Abs(val))
	}
}

func (p *PeakTorque) Value() float64 { return p.peak }

func (p *PeakTorque) Reset() { p.peak = 0 }
