package emotion

// Feature standardisation.
//
// The scaler carries the per-dimension mean and scale exported by the
// training run. Transform applies (x - mean) / scale with zero scales
// replaced by one, so constant training dimensions pass through unscaled
// instead of producing NaN.

import (
	"encoding/json"
	"fmt"
	"os"
)

// FeatureScaler standardises descriptors with training-set statistics.
type FeatureScaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// NewScalerFromFile loads scaler parameters from a JSON artifact.
func NewScalerFromFile(path string) (*FeatureScaler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load scaler (%s): %w", path, err)
	}

	var scaler FeatureScaler
	if err := json.Unmarshal(data, &scaler); err != nil {
		return nil, fmt.Errorf("unable to parse scaler: %w", err)
	}
	if len(scaler.Mean) == 0 || len(scaler.Mean) != len(scaler.Scale) {
		return nil, fmt.Errorf("invalid scaler: mean=%d scale=%d entries", len(scaler.Mean), len(scaler.Scale))
	}

	return &scaler, nil
}

// Dimensions returns the vector length the scaler was fitted on.
func (fs *FeatureScaler) Dimensions() int {
	return len(fs.Mean)
}

// Transform applies z-score standardisation to a feature vector.
func (fs *FeatureScaler) Transform(features []float64) ([]float64, error) {
	if len(features) != len(fs.Mean) {
		return nil, fmt.Errorf("%w: got %d features, scaler expects %d",
			ErrDimensionMismatch, len(features), len(fs.Mean))
	}

	scaled := make([]float64, len(features))
	for i, val := range features {
		scale := fs.Scale[i]
		if scale == 0 {
			scale = 1.0
		}
		scaled[i] = (val - fs.Mean[i]) / scale
	}

	return scaled, nil
}
