package emotion

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestScalerTransform(t *testing.T) {
	t.Parallel()

	scaler := &FeatureScaler{
		Mean:  []float64{1.0, 2.0, 0.0},
		Scale: []float64{2.0, 1.0, 0.5},
	}

	scaled, err := scaler.Transform([]float64{3.0, 2.0, -1.0})
	if err != nil {
		t.Fatalf("Transform returned error: %v", err)
	}
	expected := []float64{1.0, 0.0, -2.0}
	for i, v := range scaled {
		if math.Abs(v-expected[i]) > 1e-12 {
			t.Fatalf("expected %v at index %d, got %v", expected[i], i, v)
		}
	}
}

func TestScalerZeroScalePassesThrough(t *testing.T) {
	t.Parallel()

	scaler := &FeatureScaler{
		Mean:  []float64{5.0},
		Scale: []float64{0.0},
	}

	scaled, err := scaler.Transform([]float64{8.0})
	if err != nil {
		t.Fatalf("Transform returned error: %v", err)
	}
	// zero scale is replaced by one, so the value is only centred
	if scaled[0] != 3.0 {
		t.Fatalf("expected 3.0, got %v", scaled[0])
	}
}

func TestScalerDimensionMismatch(t *testing.T) {
	t.Parallel()

	scaler := &FeatureScaler{
		Mean:  make([]float64, FeatureVectorSize),
		Scale: make([]float64, FeatureVectorSize),
	}

	if _, err := scaler.Transform(make([]float64, 40)); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestNewScalerFromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "scaler.json")
	payload := `{"mean": [0.5, -0.5], "scale": [2.0, 0.0]}`
	if err := os.WriteFile(path, []byte(payload), 0644); err != nil {
		t.Fatalf("failed to write scaler fixture: %v", err)
	}

	scaler, err := NewScalerFromFile(path)
	if err != nil {
		t.Fatalf("NewScalerFromFile failed: %v", err)
	}
	if scaler.Dimensions() != 2 {
		t.Fatalf("expected 2 dimensions, got %d", scaler.Dimensions())
	}
}

func TestNewScalerFromFileRejectsMalformed(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	for name, payload := range map[string]string{
		"empty.json":   `{"mean": [], "scale": []}`,
		"ragged.json":  `{"mean": [1.0, 2.0], "scale": [1.0]}`,
		"garbage.json": `not json`,
	} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(payload), 0644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}
		if _, err := NewScalerFromFile(path); err == nil {
			t.Fatalf("expected error for %s", name)
		}
	}

	if _, err := NewScalerFromFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
