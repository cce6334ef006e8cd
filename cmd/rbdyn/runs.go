package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/rbdyn/internal/batch"
	"github.com/san-kum/rbdyn/internal/config"
	"github.com/san-kum/rbdyn/internal/export"
	"github.com/san-kum/rbdyn/internal/logging"
	"github.com/san-kum/rbdyn/internal/metrics"
	"github.com/san-kum/rbdyn/internal/storage"
	"github.com/san-kum/rbdyn/internal/viz"
)

func runSweep(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)
	name := modelArg(args)
	m, err := loadModel(name)
	if err != nil {
		return err
	}
	if m.NJoints < 2 {
		return fmt.Errorf("%s has no joints to sweep", name)
	}

	jointID := 1
	if sweepJoint != "" {
		id, ok := m.JointIndex(sweepJoint)
		if !ok || id == 0 {
			return fmt.Errorf("%s: unknown joint %q", name, sweepJoint)
		}
		jointID = id
	}
	coord := m.Joints[jointID].IdxQ()

	smps, err := batch.Sweep(m, coord, sweepFrom, sweepTo, sweepSteps)
	if err != nil {
		return err
	}
	ev := batch.NewEvaluator(m, config.DefaultWorkers)
	for _, mt := range metrics.Standard(config.DefaultTol) {
		ev.AddMetric(mt)
	}
	results, err := ev.Run(ctx, smps)
	if err != nil {
		return err
	}

	xs := make([]float64, len(smps))
	series := make([][]float64, m.NV)
	for k, s := range smps {
		xs[k] = s.Q[coord]
		for j := range series {
			series[j] = append(series[j], results[k].G[j])
		}
	}
	labels := make([]string, 0, m.NV)
	for i := 1; i < m.NJoints; i++ {
		for k := 0; k < m.Joints[i].NV(); k++ {
			labels = append(labels, m.Names[i])
		}
	}
	caption := fmt.Sprintf("gravity torque vs %s", m.Names[jointID])
	fmt.Println(viz.PlotSweep(xs, series, labels, caption))
	if sweepSVG != "" {
		chart := &export.Chart{Title: caption, X: xs, Series: series, Names: labels}
		if err := chart.WriteFile(sweepSVG); err != nil {
			return err
		}
		logger.Info("wrote plot", "path", sweepSVG)
	}

	st := storage.New(dataDir)
	runID, err := st.Save(storage.RunMetadata{
		Model:   name,
		Kind:    "sweep",
		Workers: config.DefaultWorkers,
		NQ:      m.NQ,
		NV:      m.NV,
		Metrics: ev.Metrics(),
	}, smps, results)
	if err != nil {
		return err
	}
	logger.Info("saved run", "id", runID)
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	cfg := config.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return err
		}
		logger.Debug("loaded config", "path", configFile, "model", cfg.Model)
	}
	if len(args) > 0 {
		cfg.Model = args[0]
	}
	flags := cmd.Flags()
	if configFile == "" || flags.Changed("samples") {
		cfg.Samples = samples
	}
	if configFile == "" || flags.Changed("workers") {
		cfg.Workers = workers
	}
	if configFile == "" || flags.Changed("seed") {
		cfg.Seed = seed
	}
	if configFile == "" || flags.Changed("tol") {
		cfg.Tol = tol
	}

	desc, err := cfg.Description()
	if err != nil {
		return err
	}
	m, err := config.Build[float64](desc)
	if err != nil {
		return err
	}

	smps := batch.RandomSamples(m, cfg.Samples, cfg.Seed)
	ev := batch.NewEvaluator(m, cfg.Workers)
	for _, mt := range metrics.Standard(cfg.Tol) {
		ev.AddMetric(mt)
	}

	progress := logging.NewProgress(logger)
	results, err := ev.Run(ctx, smps)
	if err != nil {
		return err
	}
	progress.Done(fmt.Sprintf("evaluated %d samples of %s", len(smps), cfg.ModelName()))

	values := ev.Metrics()
	names := make([]string, 0, len(values))
	for k := range values {
		names = append(names, k)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, k := range names {
		fmt.Fprintf(w, "%s\t%.6g\n", k, values[k])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	st := storage.New(dataDir)
	runID, err := st.Save(storage.RunMetadata{
		Model:   cfg.ModelName(),
		Kind:    "batch",
		Seed:    cfg.Seed,
		Workers: cfg.Workers,
		NQ:      m.NQ,
		NV:      m.NV,
		Metrics: values,
	}, smps, results)
	if err != nil {
		return err
	}
	logger.Info("saved run", "id", runID)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tKIND\tTIME\tSAMPLES\tNQ\tNV")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%d\n",
			run.ID,
			run.Model,
			run.Kind,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Samples,
			run.NQ,
			run.NV,
		)
	}
	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if exportOut == "" {
		return st.Export(os.Stdout, args[0])
	}
	if err := st.ExportFile(exportOut, args[0]); err != nil {
		return err
	}
	logging.FromContext(cmd.Context()).Info("exported run", "id", args[0], "path", exportOut)
	return nil
}

func runExplore(cmd *cobra.Command, args []string) error {
	name := modelArg(args)
	m, err := loadModel(name)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(viz.NewExplorer(name, m), tea.WithAltScreen()).Run()
	return err
}
