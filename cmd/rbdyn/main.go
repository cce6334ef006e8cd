package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/rbdyn/internal/config"
	"github.com/san-kum/rbdyn/internal/logging"
	"github.com/san-kum/rbdyn/internal/multibody"
)

var (
	dataDir string
	verbose bool

	qFlag, vFlag, aFlag string

	samples      int
	checkSamples int
	workers      int
	seed         int64
	tol          float64
	configFile   string

	sweepJoint string
	sweepFrom  float64
	sweepTo    float64
	sweepSteps int
	sweepSVG   string

	law        string
	targetFlag string
	kp, kd     float64

	benchIters int
	exportOut  string
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "rbdyn",
		Short:        "rigid-body dynamics of kinematic trees",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger := logging.New(os.Stderr, logging.Level(verbose))
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".rbdyn", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list preset models",
		Args:  cobra.NoArgs,
		RunE:  listModels,
	}

	rneaCmd := &cobra.Command{
		Use:   "rnea [model]",
		Short: "joint torques for q, v, a",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRNEA,
	}
	stateFlags(rneaCmd, true, true)

	nleCmd := &cobra.Command{
		Use:   "nle [model]",
		Short: "coriolis, centrifugal and gravity torques",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runNLE,
	}
	stateFlags(nleCmd, true, false)

	gravityCmd := &cobra.Command{
		Use:   "gravity [model]",
		Short: "generalized gravity torques",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGravity,
	}
	stateFlags(gravityCmd, false, false)

	coriolisCmd := &cobra.Command{
		Use:   "coriolis [model]",
		Short: "coriolis matrix",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCoriolis,
	}
	stateFlags(coriolisCmd, true, false)

	massCmd := &cobra.Command{
		Use:   "mass [model]",
		Short: "joint-space mass matrix",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runMass,
	}
	stateFlags(massCmd, false, false)

	checkCmd := &cobra.Command{
		Use:   "check [model]",
		Short: "verify the dynamics identities on random samples",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCheck,
	}
	checkCmd.Flags().IntVar(&checkSamples, "samples", 100, "number of samples")
	checkCmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	checkCmd.Flags().Float64Var(&tol, "tol", config.DefaultTol, "maximum residual")

	benchCmd := &cobra.Command{
		Use:   "bench [model]",
		Short: "time every dynamics function",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&benchIters, "iters", 10000, "calls per function")

	sweepCmd := &cobra.Command{
		Use:   "sweep [model]",
		Short: "plot gravity torques while sweeping one joint",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepJoint, "joint", "", "joint to sweep (default first joint)")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", -3.14159, "start value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 3.14159, "end value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 60, "number of steps")
	sweepCmd.Flags().StringVar(&sweepSVG, "svg", "", "also write the plot to an svg file")

	controlCmd := &cobra.Command{
		Use:   "control [model]",
		Short: "controller torques for the state in --q --v",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runControl,
	}
	stateFlags(controlCmd, true, false)
	controlCmd.Flags().StringVar(&law, "law", "computed", "control law (computed, gravity)")
	controlCmd.Flags().StringVar(&targetFlag, "target", "", "target configuration (default neutral)")
	controlCmd.Flags().Float64Var(&kp, "kp", 10.0, "proportional gain")
	controlCmd.Flags().Float64Var(&kd, "kd", 5.0, "derivative gain")

	batchCmd := &cobra.Command{
		Use:   "batch [model]",
		Short: "evaluate random samples in parallel and store the run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "number of samples")
	batchCmd.Flags().IntVar(&workers, "workers", config.DefaultWorkers, "parallel workers")
	batchCmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	batchCmd.Flags().Float64Var(&tol, "tol", config.DefaultTol, "residual tolerance")
	batchCmd.Flags().StringVar(&configFile, "config", "", "run config file (yaml or toml)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "output file (default stdout)")

	exploreCmd := &cobra.Command{
		Use:   "explore [model]",
		Short: "interactive torque explorer",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runExplore,
	}

	rootCmd.AddCommand(modelsCmd, rneaCmd, nleCmd, gravityCmd, coriolisCmd, massCmd,
		checkCmd, benchCmd, sweepCmd, controlCmd, batchCmd, listCmd, exportCmd, exploreCmd)
	return rootCmd
}

func stateFlags(cmd *cobra.Command, withV, withA bool) {
	cmd.Flags().StringVar(&qFlag, "q", "", "configuration, comma separated (default neutral)")
	if withV {
		cmd.Flags().StringVar(&vFlag, "v", "", "velocity, comma separated (default zero)")
	}
	if withA {
		cmd.Flags().StringVar(&aFlag, "a", "", "acceleration, comma separated (default zero)")
	}
}

func modelArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return config.DefaultModel
}

func loadModel(name string) (*multibody.Model[float64], error) {
	desc, err := config.Resolve(name)
	if err != nil {
		return nil, err
	}
	return config.Build[float64](desc)
}

// state parses the --q --v --a flags against m. Empty flags give the neutral
// configuration and zero vectors.
func state(m *multibody.Model[float64]) (q, v, a []float64, err error) {
	if q, err = parseVector(qFlag, "q", m.NQ); err != nil {
		return nil, nil, nil, err
	}
	if qFlag == "" {
		q = m.NeutralConfiguration()
	}
	if v, err = parseVector(vFlag, "v", m.NV); err != nil {
		return nil, nil, nil, err
	}
	if a, err = parseVector(aFlag, "a", m.NV); err != nil {
		return nil, nil, nil, err
	}
	return q, v, a, m.ValidateInputs(q, v, a)
}

func parseVector(s, name string, n int) ([]float64, error) {
	x := make([]float64, n)
	if strings.TrimSpace(s) == "" {
		return x, nil
	}
	fields := strings.Split(s, ",")
	if len(fields) != n {
		return nil, fmt.Errorf("%s: got %d values, want %d", name, len(fields), n)
	}
	for k, f := range fields {
		val, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", name, k, err)
		}
		x[k] = val
	}
	return x, nil
}
