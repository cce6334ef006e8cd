package dynamics

import (
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/rbdyn/internal/config"
	"github.com/san-kum/rbdyn/internal/multibody"
)

func presetModel(tb testing.TB, name string) *multibody.Model[float64] {
	tb.Helper()
	desc, err := config.GetPreset(name)
	if err != nil {
		tb.Fatalf("preset %s: %v", name, err)
	}
	m, err := config.Build[float64](desc)
	if err != nil {
		tb.Fatalf("build %s: %v", name, err)
	}
	return m
}

func randomVector(rng *rand.Rand, n int) []float64 {
	x := make([]float64, n)
	for k := range x {
		x[k] = rng.Float64()*2 - 1
	}
	return x
}

func clone(x []float64) []float64 { return append([]float64(nil), x...) }

func maxAbs(x []float64) float64 {
	var m float64
	for _, v := range x {
		m = math.Max(m, math.Abs(v))
	}
	return m
}

func maxDiff(a, b []float64) float64 {
	var m float64
	for k := range a {
		m = math.Max(m, math.Abs(a[k]-b[k]))
	}
	return m
}

func sub(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for k := range a {
		out[k] = a[k] - b[k]
	}
	return out
}

func mulVec(a multibody.Matrix[float64], x []float64) []float64 {
	out := make([]float64, a.Rows)
	a.MulVec(x, out)
	return out
}
