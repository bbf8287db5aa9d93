package emotion

import "errors"

// Sentinel errors for the analysis pipeline. Handlers map these onto HTTP
// status codes: input problems become 400s, everything downstream is a 500.
var (
	// ErrEmptyInput reports a payload too small to be a real recording.
	ErrEmptyInput = errors.New("audio payload is empty or corrupt")

	// ErrUnsupportedFormat reports that neither the native decoder nor the
	// FFmpeg fallback could make sense of the byte stream.
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrFeatureExtraction reports a failure while deriving the descriptor.
	ErrFeatureExtraction = errors.New("feature extraction failed")

	// ErrDimensionMismatch reports a vector length that does not match the
	// expectation of the scaler or the model.
	ErrDimensionMismatch = errors.New("feature dimension mismatch")

	// ErrModelNotLoaded reports that no usable model is available.
	ErrModelNotLoaded = errors.New("model not loaded")

	// ErrInference reports a failure inside the model forward pass.
	ErrInference = errors.New("inference failed")
)
