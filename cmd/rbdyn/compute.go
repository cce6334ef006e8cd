package main

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/rbdyn/internal/batch"
	"github.com/san-kum/rbdyn/internal/config"
	"github.com/san-kum/rbdyn/internal/controllers"
	"github.com/san-kum/rbdyn/internal/dynamics"
	"github.com/san-kum/rbdyn/internal/logging"
	"github.com/san-kum/rbdyn/internal/multibody"
	"github.com/san-kum/rbdyn/internal/spatial"
	"github.com/san-kum/rbdyn/internal/viz"
)

func listModels(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tJOINTS\tNQ\tNV\tMASS")
	for _, name := range config.ListPresets() {
		m, err := loadModel(name)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%.3g\n", name, m.NJoints-1, m.NQ, m.NV, m.TotalMass())
	}
	return w.Flush()
}

// evalCmd loads the model argument and parses the state flags before calling fn.
func evalCmd(args []string, fn func(m *multibody.Model[float64], d *multibody.Data[float64], q, v, a []float64)) error {
	m, err := loadModel(modelArg(args))
	if err != nil {
		return err
	}
	q, v, a, err := state(m)
	if err != nil {
		return err
	}
	fn(m, multibody.NewData(m), q, v, a)
	return nil
}

func runRNEA(cmd *cobra.Command, args []string) error {
	return evalCmd(args, func(m *multibody.Model[float64], d *multibody.Data[float64], q, v, a []float64) {
		fmt.Println(viz.FormatVector("tau", dynamics.InverseDynamics(m, d, q, v, a)))
	})
}

func runNLE(cmd *cobra.Command, args []string) error {
	return evalCmd(args, func(m *multibody.Model[float64], d *multibody.Data[float64], q, v, a []float64) {
		fmt.Println(viz.FormatVector("nle", dynamics.NonlinearEffects(m, d, q, v)))
	})
}

func runGravity(cmd *cobra.Command, args []string) error {
	return evalCmd(args, func(m *multibody.Model[float64], d *multibody.Data[float64], q, v, a []float64) {
		fmt.Println(viz.FormatVector("g", dynamics.GeneralizedGravity(m, d, q)))
	})
}

func runCoriolis(cmd *cobra.Command, args []string) error {
	return evalCmd(args, func(m *multibody.Model[float64], d *multibody.Data[float64], q, v, a []float64) {
		fmt.Println(viz.FormatMatrix("C", dynamics.CoriolisMatrix(m, d, q, v)))
	})
}

func runMass(cmd *cobra.Command, args []string) error {
	return evalCmd(args, func(m *multibody.Model[float64], d *multibody.Data[float64], q, v, a []float64) {
		fmt.Println(viz.FormatMatrix("M", dynamics.MassMatrix(m, d, q)))
	})
}

func runControl(cmd *cobra.Command, args []string) error {
	m, err := loadModel(modelArg(args))
	if err != nil {
		return err
	}
	q, v, _, err := state(m)
	if err != nil {
		return err
	}
	target := m.NeutralConfiguration()
	if targetFlag != "" {
		if target, err = parseVector(targetFlag, "target", m.NQ); err != nil {
			return err
		}
	}

	ctrl, err := controllers.New(law, m, controllers.Target{Q: target}, controllers.Gains{
		Kp: []float64{kp},
		Kd: []float64{kd},
	})
	if err != nil {
		return err
	}
	fmt.Println(viz.FormatVector(ctrl.Name(), ctrl.Compute(q, v)))
	return nil
}

type residuals struct {
	gravity, nle, coriolis, linearity, symmetry, kinetic float64
}

// checkSample measures how far one sample is from each dynamics identity.
func checkSample(m *multibody.Model[float64], d *multibody.Data[float64], s batch.Sample, r *residuals) {
	zero := make([]float64, m.NV)
	g := clone(dynamics.GeneralizedGravity(m, d, s.Q))
	nle := clone(dynamics.NonlinearEffects(m, d, s.Q, s.V))
	r.gravity = max(r.gravity, maxDiff(dynamics.InverseDynamics(m, d, s.Q, zero, zero), g))
	r.nle = max(r.nle, maxDiff(dynamics.InverseDynamics(m, d, s.Q, s.V, zero), nle))

	cv := make([]float64, m.NV)
	dynamics.CoriolisMatrix(m, d, s.Q, s.V).MulVec(s.V, cv)
	for k := range cv {
		r.coriolis = max(r.coriolis, math.Abs(cv[k]-(nle[k]-g[k])))
	}

	mass := dynamics.MassMatrix(m, d, s.Q)
	ma := make([]float64, m.NV)
	mass.MulVec(s.A, ma)
	mv := make([]float64, m.NV)
	mass.MulVec(s.V, mv)
	var vmv float64
	for k := range ma {
		ma[k] += nle[k]
		vmv += s.V[k] * mv[k]
		for j := 0; j < k; j++ {
			r.symmetry = max(r.symmetry, math.Abs(mass.At(k, j)-mass.At(j, k)))
		}
	}
	r.linearity = max(r.linearity, maxDiff(dynamics.InverseDynamics(m, d, s.Q, s.V, s.A), ma))
	r.kinetic = max(r.kinetic, math.Abs(dynamics.KineticEnergy(m, d, s.Q, s.V)-vmv/2))
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := logging.FromContext(cmd.Context())
	name := modelArg(args)
	m, err := loadModel(name)
	if err != nil {
		return err
	}

	progress := logging.NewProgress(logger)
	d := multibody.NewData(m)
	var r residuals
	for _, s := range batch.RandomSamples(m, checkSamples, seed) {
		checkSample(m, d, s, &r)
	}
	progress.Done(fmt.Sprintf("checked %d samples of %s", checkSamples, name))

	rows := []struct {
		identity string
		value    float64
	}{
		{"rnea(q, 0, 0) = g", r.gravity},
		{"rnea(q, v, 0) = nle", r.nle},
		{"C v = nle - g", r.coriolis},
		{"rnea(q, v, a) = M a + nle", r.linearity},
		{"M = M^T", r.symmetry},
		{"T = v^T M v / 2", r.kinetic},
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "IDENTITY\tMAX RESIDUAL\tSTATUS")
	failed := 0
	for _, row := range rows {
		status := "ok"
		if !(row.value <= tol) {
			status = "FAIL"
			failed++
		}
		fmt.Fprintf(w, "%s\t%.3e\t%s\n", row.identity, row.value, status)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d identities above tolerance %g", failed, tol)
	}
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	name := modelArg(args)
	m, err := loadModel(name)
	if err != nil {
		return err
	}
	d := multibody.NewData(m)
	s := batch.RandomSamples(m, 1, seed)[0]
	fext := make([]spatial.Force[float64], m.NJoints)

	benches := []struct {
		name string
		fn   func()
	}{
		{"InverseDynamics", func() { dynamics.InverseDynamics(m, d, s.Q, s.V, s.A) }},
		{"InverseDynamicsWithForces", func() { dynamics.InverseDynamicsWithForces(m, d, s.Q, s.V, s.A, fext) }},
		{"NonlinearEffects", func() { dynamics.NonlinearEffects(m, d, s.Q, s.V) }},
		{"GeneralizedGravity", func() { dynamics.GeneralizedGravity(m, d, s.Q) }},
		{"CoriolisMatrix", func() { dynamics.CoriolisMatrix(m, d, s.Q, s.V) }},
		{"MassMatrix", func() { dynamics.MassMatrix(m, d, s.Q) }},
		{"KineticEnergy", func() { dynamics.KineticEnergy(m, d, s.Q, s.V) }},
		{"PotentialEnergy", func() { dynamics.PotentialEnergy(m, d, s.Q) }},
	}

	fmt.Printf("benchmarking %s (nq=%d nv=%d)\n\n", name, m.NQ, m.NV)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FUNCTION\tCALLS\tTIME\tNS/CALL\tCALLS/SEC")
	for _, b := range benches {
		start := time.Now()
		for range benchIters {
			b.fn()
		}
		elapsed := time.Since(start)
		perCall := float64(elapsed.Nanoseconds()) / float64(max(benchIters, 1))
		fmt.Fprintf(w, "%s\t%d\t%v\t%.0f\t%.0f\n",
			b.name, benchIters, elapsed.Round(time.Microsecond), perCall, 1e9/perCall)
	}
	return w.Flush()
}

func clone(x []float64) []float64 { return append([]float64(nil), x...) }

func maxDiff(a, b []float64) float64 {
	var worst float64
	for k := range a {
		worst = max(worst, math.Abs(a[k]-b[k]))
	}
	return worst
}
