package dynamics

import (
	"math/rand"
	"testing"

	"github.com/san-kum/rbdyn/internal/multibody"
)

type benchInput struct {
	m       *multibody.Model[float64]
	d       *multibody.Data[float64]
	q, v, a []float64
}

func newBenchInput(b *testing.B, name string) benchInput {
	m := presetModel(b, name)
	rng := rand.New(rand.NewSource(1))
	return benchInput{
		m: m,
		d: multibody.NewData(m),
		q: m.RandomConfiguration(rng),
		v: randomVector(rng, m.NV),
		a: randomVector(rng, m.NV),
	}
}

func BenchmarkInverseDynamics(b *testing.B) {
	in := newBenchInput(b, "arm6")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		InverseDynamics(in.m, in.d, in.q, in.v, in.a)
	}
}

func BenchmarkNonlinearEffects(b *testing.B) {
	in := newBenchInput(b, "arm6")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		NonlinearEffects(in.m, in.d, in.q, in.v)
	}
}

func BenchmarkGeneralizedGravity(b *testing.B) {
	in := newBenchInput(b, "arm6")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		GeneralizedGravity(in.m, in.d, in.q)
	}
}

func BenchmarkCoriolisMatrix(b *testing.B) {
	for _, name := range []string{"arm6", "tree", "floating"} {
		b.Run(name, func(b *testing.B) {
			in := newBenchInput(b, name)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				CoriolisMatrix(in.m, in.d, in.q, in.v)
			}
		})
	}
}

func BenchmarkMassMatrix(b *testing.B) {
	in := newBenchInput(b, "floating")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		MassMatrix(in.m, in.d, in.q)
	}
}
