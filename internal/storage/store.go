// Package storage persists runs as per-run directories holding
// metadata.json and samples.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/armctl/internal/joint"
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
	Timestamp time.Time          `json:"timestamp"`
	Joints    int                `json:"joints"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Completed bool               `json:"completed"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes one run. The CSV layout is time, q0..qN-1, dq0..dqN-1,
// tau0..tauN-1, one row per tick.
func (s *Store) Save(meta RunMetadata, samples []joint.Sample) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "samples.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(samples) == 0 {
		return runID, nil
	}

	n := len(samples[0].Position)
	header := []string{"time"}
	for j := 0; j < n; j++ {
		header = append(header, fmt.Sprintf("q%d", j))
	}
	for j := 0; j < n; j++ {
		header = append(header, fmt.Sprintf("dq%d", j))
	}
	for j := 0; j < n; j++ {
		header = append(header, fmt.Sprintf("tau%d", j))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, sm := range samples {
		row := make([]string, 0, 1+3*n)
		row = append(row, strconv.FormatFloat(sm.T, 'f', 6, 64))
		for _, v := range sm.Position {
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
		for _, v := range sm.Velocity {
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
		for _, v := range sm.Torque {
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

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
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSamples reads the recorded series back. The joint count comes
// from the metadata so the flat CSV row splits correctly.
func (s *Store) LoadSamples(runID string) ([]joint.Sample, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	n := meta.Joints
	if n <= 0 {
		return nil, fmt.Errorf("run %s: invalid joint count %d", runID, n)
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, "samples.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []joint.Sample{}, nil
	}

	samples := make([]joint.Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != 1+3*n {
			return nil, fmt.Errorf("run %s: row has %d fields, expected %d", runID, len(record), 1+3*n)
		}
		vals := make([]float64, len(record))
		for i, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("run %s: bad value %q: %w", runID, field, err)
			}
			vals[i] = v
		}
		samples = append(samples, joint.Sample{
			T:        vals[0],
			Position: joint.Vector(vals[1 : 1+n]),
			Velocity: joint.Vector(vals[1+n : 1+2*n]),
			Torque:   joint.Vector(vals[1+2*n : 1+3*n]),
		})
	}

	return samples, nil
}
