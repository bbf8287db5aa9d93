package emotion

// Model adapter.
//
// The classifier is a dense feed-forward network exported from the training
// run as a JSON artifact: a list of layers, each carrying a weight matrix
// (rows are output units), a bias vector, and an activation. Batch
// normalisation is folded into the linear weights at export time. The model
// is loaded once at startup and treated as immutable, so inference needs no
// locking.

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

type denseLayer struct {
	Weights    [][]float64 `json:"weights"`
	Biases     []float64   `json:"biases"`
	Activation string      `json:"activation"`
}

// Model is the loaded emotion classifier.
type Model struct {
	layers []denseLayer
}

// NewModelFromFile loads the network weights from a JSON artifact.
func NewModelFromFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load model (%s): %w", path, err)
	}

	var artifact struct {
		Layers []denseLayer `json:"layers"`
	}
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("unable to parse model: %w", err)
	}
	if len(artifact.Layers) == 0 {
		return nil, fmt.Errorf("model artifact has no layers")
	}

	for idx, layer := range artifact.Layers {
		if len(layer.Weights) == 0 || len(layer.Weights) != len(layer.Biases) {
			return nil, fmt.Errorf("layer %d has %d weight rows and %d biases", idx, len(layer.Weights), len(layer.Biases))
		}
		width := len(layer.Weights[0])
		for _, row := range layer.Weights {
			if len(row) != width {
				return nil, fmt.Errorf("layer %d has ragged weight rows", idx)
			}
		}
		if idx > 0 && width != len(artifact.Layers[idx-1].Biases) {
			return nil, fmt.Errorf("layer %d expects %d inputs but layer %d produces %d",
				idx, width, idx-1, len(artifact.Layers[idx-1].Biases))
		}
	}

	return &Model{layers: artifact.Layers}, nil
}

// InputDim returns the feature vector length the model expects.
func (m *Model) InputDim() int {
	if m == nil || len(m.layers) == 0 {
		return 0
	}
	return len(m.layers[0].Weights[0])
}

// OutputDim returns the number of classes the model produces.
func (m *Model) OutputDim() int {
	if m == nil || len(m.layers) == 0 {
		return 0
	}
	return len(m.layers[len(m.layers)-1].Biases)
}

// Loaded reports whether a usable network is present.
func (m *Model) Loaded() bool {
	return m != nil && len(m.layers) > 0
}

// Infer runs the forward pass and returns raw logits.
func (m *Model) Infer(features []float64) ([]float64, error) {
	if !m.Loaded() {
		return nil, ErrModelNotLoaded
	}
	if len(features) != m.InputDim() {
		return nil, fmt.Errorf("%w: got %d features, model expects %d",
			ErrDimensionMismatch, len(features), m.InputDim())
	}

	activations := features
	for _, layer := range m.layers {
		next := make([]float64, len(layer.Weights))
		for j, row := range layer.Weights {
			sum := layer.Biases[j]
			for i, w := range row {
				sum += w * activations[i]
			}
			if layer.Activation == "relu" && sum < 0 {
				sum = 0
			}
			next[j] = sum
		}
		activations = next
	}

	for i, logit := range activations {
		if math.IsNaN(logit) || math.IsInf(logit, 0) {
			return nil, fmt.Errorf("%w: non-finite logit at index %d", ErrInference, i)
		}
	}

	return activations, nil
}
