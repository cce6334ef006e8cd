package dynamics

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/rbdyn/internal/config"
	"github.com/san-kum/rbdyn/internal/multibody"
	"github.com/san-kum/rbdyn/internal/spatial"
)

const samplesPerModel = 8

func buildPreset(name string, gravity []float64) *multibody.Model[float64] {
	desc, err := config.GetPreset(name)
	Expect(err).NotTo(HaveOccurred())
	if gravity != nil {
		desc.Gravity = gravity
	}
	m, err := config.Build[float64](desc)
	Expect(err).NotTo(HaveOccurred())
	return m
}

// scaled is the tolerance for comparing vectors of magnitude ref.
func scaled(ref []float64) float64 { return 1e-9 * (1 + maxAbs(ref)) }

var _ = Describe("recursive dynamics", func() {
	for _, name := range config.ListPresets() {
		Describe(name, func() {
			var (
				m   *multibody.Model[float64]
				d   *multibody.Data[float64]
				rng *rand.Rand
			)

			BeforeEach(func() {
				m = buildPreset(name, nil)
				d = multibody.NewData(m)
				rng = rand.New(rand.NewSource(int64(len(name))))
			})

			It("reduces to gravity at rest", func() {
				for n := 0; n < samplesPerModel; n++ {
					q := m.RandomConfiguration(rng)
					zero := make([]float64, m.NV)
					tau := clone(InverseDynamics(m, d, q, zero, zero))
					g := GeneralizedGravity(m, d, q)
					Expect(maxDiff(tau, g)).To(BeNumerically("<", scaled(g)))
				}
			})

			It("reduces to nonlinear effects at zero acceleration", func() {
				for n := 0; n < samplesPerModel; n++ {
					q := m.RandomConfiguration(rng)
					v := randomVector(rng, m.NV)
					tau := clone(InverseDynamics(m, d, q, v, make([]float64, m.NV)))
					nle := NonlinearEffects(m, d, q, v)
					Expect(maxDiff(tau, nle)).To(BeNumerically("<", scaled(nle)))

					tau = InverseDynamics(m, d, q, v, nil)
					Expect(maxDiff(tau, nle)).To(BeNumerically("<", scaled(nle)))
				}
			})

			It("factors the velocity terms through the Coriolis matrix", func() {
				for n := 0; n < samplesPerModel; n++ {
					q := m.RandomConfiguration(rng)
					v := randomVector(rng, m.NV)
					nle := clone(NonlinearEffects(m, d, q, v))
					g := clone(GeneralizedGravity(m, d, q))
					c := CoriolisMatrix(m, d, q, v)

					var cv mat.VecDense
					cv.MulVec(mat.NewDense(c.Rows, c.Cols, c.Data), mat.NewVecDense(len(v), v))
					want := sub(nle, g)
					Expect(floats.EqualApprox(cv.RawVector().Data, want, scaled(nle))).To(BeTrue(),
						"C v = %v, nle - g = %v", cv.RawVector().Data, want)
				}
			})

			It("is affine in the acceleration with the mass matrix as slope", func() {
				for n := 0; n < samplesPerModel; n++ {
					q := m.RandomConfiguration(rng)
					v := randomVector(rng, m.NV)
					a1, a2 := randomVector(rng, m.NV), randomVector(rng, m.NV)
					a := make([]float64, m.NV)
					floats.AddTo(a, a1, a2)

					tau := clone(InverseDynamics(m, d, q, v, a))
					nle := clone(NonlinearEffects(m, d, q, v))
					ma := mulVec(MassMatrix(m, d, q), a)
					Expect(maxDiff(sub(tau, nle), ma)).To(BeNumerically("<", scaled(tau)))
				}
			})

			It("produces a symmetric positive definite mass matrix", func() {
				q := m.RandomConfiguration(rng)
				mm := MassMatrix(m, d, q)
				sym := mat.NewSymDense(mm.Rows, nil)
				for i := 0; i < mm.Rows; i++ {
					for j := 0; j < mm.Cols; j++ {
						Expect(mm.At(i, j)).To(BeNumerically("~", mm.At(j, i), 1e-12))
						sym.SetSym(i, j, mm.At(i, j))
					}
				}
				var chol mat.Cholesky
				Expect(chol.Factorize(sym)).To(BeTrue())
			})

			It("agrees with the mass matrix on kinetic energy", func() {
				q := m.RandomConfiguration(rng)
				v := randomVector(rng, m.NV)
				ke := KineticEnergy(m, d, q, v)
				Expect(ke).To(BeNumerically(">=", 0))

				mv := mulVec(MassMatrix(m, d, q), v)
				Expect(floats.Dot(mv, v) / 2).To(BeNumerically("~", ke, 1e-9*(1+ke)))
			})

			It("subtracts external forces through the Jacobian transpose", func() {
				q := m.RandomConfiguration(rng)
				v, a := randomVector(rng, m.NV), randomVector(rng, m.NV)
				fext := make([]spatial.Force[float64], m.NJoints)
				for i := 1; i < m.NJoints; i++ {
					fext[i] = spatial.ForceFromVector([6]float64(randomVector(rng, 6)))
				}

				tau := clone(InverseDynamics(m, d, q, v, a))
				withForces := clone(InverseDynamicsWithForces(m, d, q, v, a, fext))
				MassMatrix(m, d, q)

				world := make([]spatial.Force[float64], m.NJoints)
				for i := m.NJoints - 1; i > 0; i-- {
					world[i] = world[i].Add(d.World[i].ActForce(fext[i]))
					if p := m.Parents[i]; p > 0 {
						world[p] = world[p].Add(world[i])
					}
				}
				want := clone(tau)
				for i := 1; i < m.NJoints; i++ {
					jm := m.Joints[i]
					for k := jm.IdxV(); k < jm.IdxV()+jm.NV(); k++ {
						want[k] -= d.Jacobian[k].Dot(world[i])
					}
				}
				Expect(maxDiff(withForces, want)).To(BeNumerically("<", scaled(tau)))
			})

			It("ignores the external force on the universe", func() {
				q := m.RandomConfiguration(rng)
				v, a := randomVector(rng, m.NV), randomVector(rng, m.NV)
				fext := make([]spatial.Force[float64], m.NJoints)
				tau := clone(InverseDynamics(m, d, q, v, a))
				fext[0] = spatial.ForceFromVector([6]float64{1, 2, 3, 4, 5, 6})
				Expect(InverseDynamicsWithForces(m, d, q, v, a, fext)).To(Equal(tau))
			})
		})
	}

	Describe("without gravity", func() {
		It("reproduces the nonlinear effects exactly with the Coriolis matrix", func() {
			for _, name := range []string{"arm6", "tree", "floating"} {
				m := buildPreset(name, []float64{0, 0, 0})
				d := multibody.NewData(m)
				rng := rand.New(rand.NewSource(7))
				q := m.RandomConfiguration(rng)
				v := randomVector(rng, m.NV)

				nle := clone(NonlinearEffects(m, d, q, v))
				cv := mulVec(CoriolisMatrix(m, d, q, v), v)
				Expect(maxDiff(cv, nle)).To(BeNumerically("<", scaled(nle)), name)
				Expect(maxAbs(GeneralizedGravity(m, d, q))).To(BeZero(), name)
			}
		})
	})

	Describe("Lagrangian consistency on revolute chains", func() {
		settings := &fd.Settings{Formula: fd.Central, Step: 1e-5}

		for _, name := range []string{"double_pendulum", "planar5", "arm6"} {
			It("matches energy derivatives for "+name, func() {
				m := buildPreset(name, nil)
				d := multibody.NewData(m)
				rng := rand.New(rand.NewSource(13))
				q := m.RandomConfiguration(rng)
				v := randomVector(rng, m.NV)

				g := clone(GeneralizedGravity(m, d, q))
				dV := fd.Gradient(nil, func(x []float64) float64 { return PotentialEnergy(m, d, x) }, q, settings)
				Expect(maxDiff(g, dV)).To(BeNumerically("<", 1e-6*(1+maxAbs(g))))

				// nle - g = dM/dt v - dT/dq for a revolute chain.
				nle := clone(NonlinearEffects(m, d, q, v))
				dT := fd.Gradient(nil, func(x []float64) float64 { return KineticEnergy(m, d, x, v) }, q, settings)
				qh := make([]float64, m.NQ)
				mdot := make([]float64, m.NV)
				for k := range mdot {
					mdot[k] = fd.Derivative(func(h float64) float64 {
						floats.AddScaledTo(qh, q, h, v)
						return floats.Dot(MassMatrix(m, d, qh).Row(k), v)
					}, 0, settings)
				}
				want := sub(mdot, dT)
				Expect(maxDiff(sub(nle, g), want)).To(BeNumerically("<", 1e-6*(1+maxAbs(nle))))
			})
		}

		It("keeps a single joint's velocity torque at zero", func() {
			m := buildPreset("pendulum", nil)
			d := multibody.NewData(m)
			q, v := []float64{0.7}, []float64{2.5}

			nle := clone(NonlinearEffects(m, d, q, v))
			g := clone(GeneralizedGravity(m, d, q))
			cv := mulVec(CoriolisMatrix(m, d, q, v), v)
			Expect(cv[0]).To(BeNumerically("~", nle[0]-g[0], 1e-12))

			dT := fd.Derivative(func(x float64) float64 { return KineticEnergy(m, d, []float64{x}, v) }, q[0], settings)
			Expect(dT).To(BeNumerically("~", 0, 1e-9))
			Expect(nle[0] - g[0]).To(BeNumerically("~", -dT, 1e-9))
			Expect(math.Abs(g[0])).To(BeNumerically(">", 0))
		})
	})
})
