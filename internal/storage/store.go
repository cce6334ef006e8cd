package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/rbdyn/internal/batch"
)

var ErrRunNotFound = errors.New("storage: run not found")

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Model     string             `json:"model"`
	Kind      string             `json:"kind"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Samples   int                `json:"samples"`
	Workers   int                `json:"workers"`
	NQ        int                `json:"nq"`
	NV        int                `json:"nv"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes meta and one CSV row per sample under a fresh run id, which it
// returns. meta.ID, meta.Timestamp and meta.Samples are filled in.
func (s *Store) Save(meta RunMetadata, samples []batch.Sample, results []batch.Result) (string, error) {
	if len(samples) != len(results) {
		return "", fmt.Errorf("storage: %d samples but %d results", len(samples), len(results))
	}
	meta.ID = fmt.Sprintf("%s_%s", meta.Model, uuid.NewString()[:8])
	meta.Timestamp = time.Now()
	meta.Samples = len(samples)

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, samplesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(Header(meta.NQ, meta.NV)); err != nil {
		return "", err
	}
	for k, smp := range samples {
		r := results[k]
		row := make([]string, 0, meta.NQ+5*meta.NV+3)
		for _, block := range [][]float64{smp.Q, zeroIfNil(smp.V, meta.NV), zeroIfNil(smp.A, meta.NV), r.Tau, r.NLE, r.G} {
			for _, val := range block {
				row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
			}
		}
		for _, val := range []float64{r.KineticEnergy, r.PotentialEnergy, r.CoriolisResidual} {
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return meta.ID, w.Error()
}

// Header names the CSV columns of a run.
func Header(nq, nv int) []string {
	header := make([]string, 0, nq+5*nv+3)
	for i := 0; i < nq; i++ {
		header = append(header, fmt.Sprintf("q%d", i))
	}
	for _, prefix := range []string{"v", "a", "tau", "nle", "g"} {
		for i := 0; i < nv; i++ {
			header = append(header, fmt.Sprintf("%s%d", prefix, i))
		}
	}
	return append(header, "kinetic", "potential", "residual")
}

// List returns all readable runs, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSamples returns the CSV header and rows of a run.
func (s *Store) LoadSamples(runID string) ([]string, [][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, [][]float64{}, nil
	}

	rows := make([][]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make([]float64, len(record))
		for j, field := range record {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("run %s: %w", runID, err)
			}
			row[j] = val
		}
		rows = append(rows, row)
	}
	return records[0], rows, nil
}

func zeroIfNil(x []float64, n int) []float64 {
	if x == nil {
		return make([]float64, n)
	}
	return x
}
