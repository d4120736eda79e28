package preset

import (
	"math"
	"testing"

	"github.com/san-kum/gravlab/internal/engine"
)

func TestGetUnknown(t *testing.T) {
	if _, err := Get("nonexistent"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestNamesCoverAllPresets(t *testing.T) {
	names := Names()
	if len(names) != len(presets) {
		t.Fatalf("expected %d names, got %d", len(presets), len(names))
	}
	for _, name := range names {
		if _, err := Get(name); err != nil {
			t.Errorf("listed preset %s not gettable: %v", name, err)
		}
	}
}

func TestPresetsBuildAndStep(t *testing.T) {
	tests := []struct {
		name   string
		mode   engine.Mode
		bodies int
	}{
		{"binary", engine.Interactive, 2},
		{"solar", engine.Interactive, 5},
		{"figure-eight", engine.Interactive, 3},
		{"bh-cluster", engine.Interactive, 21},
		{"galaxies", engine.Cluster, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			builder, err := Get(tt.name)
			if err != nil {
				t.Fatalf("get failed: %v", err)
			}
			sim := builder(42)

			if sim.Mode() != tt.mode {
				t.Errorf("expected mode %v, got %v", tt.mode, sim.Mode())
			}
			if sim.Len() != tt.bodies {
				t.Errorf("expected %d bodies, got %d", tt.bodies, sim.Len())
			}
			if err := sim.Step(1.0 / 60); err != nil {
				t.Errorf("step failed: %v", err)
			}
		})
	}
}

func TestRandomPresetsAreSeedDeterministic(t *testing.T) {
	builder, err := Get("bh-cluster")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	a := builder(7)
	b := builder(7)

	for i := range a.Bodies() {
		if a.Bodies()[i].Position != b.Bodies()[i].Position {
			t.Fatalf("body %d differs across same-seed builds", i)
		}
	}
}

func TestBinaryOrbitIsBound(t *testing.T) {
	builder, _ := Get("binary")
	sim := builder(0)

	if e := sim.TotalEnergy(); e >= 0 {
		t.Errorf("binary should be gravitationally bound, energy %f", e)
	}

	// A bound circular pair should stay near its initial extent.
	initial := sim.SystemExtent()
	for i := 0; i < 600; i++ {
		if err := sim.Step(1.0 / 60); err != nil {
			t.Fatalf("step failed: %v", err)
		}
	}
	if ext := sim.SystemExtent(); math.Abs(ext-initial) > 0.5*initial {
		t.Errorf("binary drifted from extent %f to %f", initial, ext)
	}
}
