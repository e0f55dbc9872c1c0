package storage

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/armctl/internal/joint"
)

func testSamples() []joint.Sample {
	return []joint.Sample{
		{
			T:        0.0,
			Position: joint.Vector{0, 0},
			Velocity: joint.Vector{0, 0},
			Torque:   joint.Vector{1.5, -0.2},
		},
		{
			T:        0.001,
			Position: joint.Vector{0.01, -0.005},
			Velocity: joint.Vector{0.1, -0.05},
			Torque:   joint.Vector{1.4, -0.18},
		},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	meta := RunMetadata{
		Joints:    2,
		Dt:        0.001,
		Duration:  0.002,
		Completed: true,
		Metrics:   map[string]float64{"tracking_error_rms": 0.12},
	}

	runID, err := st.Save(meta, testSamples())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	loaded, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Joints != 2 || !loaded.Completed {
		t.Errorf("metadata mismatch: %+v", loaded)
	}
	if loaded.Metrics["tracking_error_rms"] != 0.12 {
		t.Errorf("expected metric 0.12, got %f", loaded.Metrics["tracking_error_rms"])
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatalf("load samples failed: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(samples))
	}
	if math.Abs(samples[1].T-0.001) > 1e-9 {
		t.Errorf("expected t=0.001, got %f", samples[1].T)
	}
	if math.Abs(samples[0].Torque[0]-1.5) > 1e-6 {
		t.Errorf("expected torque 1.5, got %f", samples[0].Torque[0])
	}
	if math.Abs(samples[1].Velocity[1]+0.05) > 1e-6 {
		t.Errorf("expected velocity -0.05, got %f", samples[1].Velocity[1])
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if _, err := st.Save(RunMetadata{Joints: 2}, testSamples()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(RunMetadata{Joints: 2}, testSamples())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{"metadata.json", "samples.csv"} {
		if _, err := os.Stat(filepath.Join(dir, runID, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
}

func TestStoreEmptyRun(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(RunMetadata{Joints: 2}, nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatalf("load samples failed: %v", err)
	}
	if len(samples) != 0 {
		t.Errorf("expected no samples, got %d", len(samples))
	}
}
