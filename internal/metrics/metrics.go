package metrics

// Observation is everything computed for one evaluated sample.
type Observation struct {
	Q, V, A []float64

	Tau []float64
	NLE []float64
	G   []float64

	KineticEnergy   float64
	PotentialEnergy float64
	// CoriolisResidual is max |C(q, v) v - (nle - g)|.
	CoriolisResidual float64
}

type Metric interface {
	Name() string
	Observe(o Observation)
	Value() float64
	Reset()
}

// Standard returns the metrics recorded for every batch run.
func Standard(residualTol float64) []Metric {
	return []Metric{
		NewPeakTorque(),
		NewTorqueEffort(),
		NewGravityShare(),
		NewEnergy(),
		NewCoriolisResidual(),
		NewResidualCompliance(residualTol),
	}
}

// Values collects the current value of every metric by name.
func Values(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
