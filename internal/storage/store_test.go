package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/san-kum/rbdyn/internal/batch"
)

func sampleRun() ([]batch.Sample, []batch.Result) {
	samples := []batch.Sample{
		{Q: []float64{0.1}, V: []float64{1}, A: []float64{-2}},
		{Q: []float64{0.2}, V: []float64{0.5}},
	}
	results := []batch.Result{
		{Tau: []float64{3}, NLE: []float64{1.5}, G: []float64{1}, KineticEnergy: 0.5, PotentialEnergy: -9.81},
		{Tau: []float64{2}, NLE: []float64{2}, G: []float64{2}, CoriolisResidual: 1e-16},
	}
	return samples, results
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	samples, results := sampleRun()
	runID, err := st.Save(RunMetadata{
		Model: "pendulum", Kind: "batch", Seed: 42, Workers: 2, NQ: 1, NV: 1,
		Metrics: map[string]float64{"peak_torque": 3},
	}, samples, results)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(runID, "pendulum_"), runID)

	meta, err := st.Load(runID)
	require.NoError(t, err)
	require.Equal(t, "pendulum", meta.Model)
	require.Equal(t, int64(42), meta.Seed)
	require.Equal(t, 2, meta.Samples)
	require.Equal(t, 3.0, meta.Metrics["peak_torque"])

	header, rows, err := st.LoadSamples(runID)
	require.NoError(t, err)
	require.Equal(t, Header(1, 1), header)
	require.Len(t, rows, 2)
	require.Equal(t, []float64{0.1, 1, -2, 3, 1.5, 1, 0.5, -9.81, 0}, rows[0])
	require.Equal(t, 0.0, rows[1][2], "missing acceleration is stored as zero")
	require.Equal(t, 1e-16, rows[1][8])
}

func TestStoreSaveMismatch(t *testing.T) {
	st := New(t.TempDir())
	samples, results := sampleRun()
	_, err := st.Save(RunMetadata{Model: "x", NQ: 1, NV: 1}, samples, results[:1])
	require.Error(t, err)
}

func TestStoreList(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	runs, err := New(filepath.Join(dir, "missing")).List()
	require.NoError(t, err)
	require.Empty(t, runs)

	samples, results := sampleRun()
	first, err := st.Save(RunMetadata{Model: "a", NQ: 1, NV: 1}, samples, results)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	second, err := st.Save(RunMetadata{Model: "b", NQ: 1, NV: 1}, samples, results)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "junk"), 0755))

	runs, err = st.List()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, second, runs[0].ID)
	require.Equal(t, first, runs[1].ID)
}

func TestStoreNotFound(t *testing.T) {
	st := New(t.TempDir())
	_, err := st.Load("nope")
	require.ErrorIs(t, err, ErrRunNotFound)
	_, _, err = st.LoadSamples("nope")
	require.ErrorIs(t, err, ErrRunNotFound)
}

func TestExport(t *testing.T) {
	st := New(t.TempDir())
	samples, results := sampleRun()
	runID, err := st.Save(RunMetadata{Model: "pendulum", NQ: 1, NV: 1}, samples, results)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, st.Export(&buf, runID))

	var got ExportData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Equal(t, runID, got.ID)
	require.Equal(t, Header(1, 1), got.Columns)
	require.Len(t, got.Rows, 2)

	path := filepath.Join(t.TempDir(), "run.json")
	require.NoError(t, st.ExportFile(path, runID))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.JSONEq(t, buf.String(), string(data))
}
