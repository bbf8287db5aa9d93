package emotion

// Rule-based comparison classifier.
//
// A heuristic over clip energy, zero-crossing rate and spectral centroid,
// kept alongside the model so its output can be compared against learned
// predictions on the same upload. Always runs on preprocessed audio.

import "gonum.org/v1/gonum/stat"

// SimplePrediction is the outcome of the rule-based path.
type SimplePrediction struct {
	Emotion    string  `json:"emotion"`
	Confidence float64 `json:"confidence"`
}

// ClassifyByRules derives an emotion from coarse signal statistics.
func ClassifyByRules(samples []float64, sampleRate int) SimplePrediction {
	if len(samples) == 0 {
		return SimplePrediction{Emotion: "neutral", Confidence: 0.5}
	}

	rms := rootMeanSquare(samples)
	zcr := stat.Mean(frameZeroCrossingRates(samples), nil)

	spectrogram := computeSpectrogram(samples)
	centroids := make([]float64, len(spectrogram))
	for t, magnitude := range spectrogram {
		centroids[t] = frameSpectralCentroid(magnitude, sampleRate)
	}
	centroid := stat.Mean(centroids, nil)

	switch {
	case rms > 0.1:
		// very high energy, screaming or panic
		return SimplePrediction{Emotion: "fearful", Confidence: 0.9}
	case rms > 0.05 && centroid > 2500:
		return SimplePrediction{Emotion: "angry", Confidence: 0.8}
	case rms > 0.03 && centroid < 2000:
		return SimplePrediction{Emotion: "angry", Confidence: 0.7}
	case rms > 0.02 && centroid > 3000:
		return SimplePrediction{Emotion: "happy", Confidence: 0.7}
	case rms < 0.02 && centroid < 1800:
		return SimplePrediction{Emotion: "sad", Confidence: 0.7}
	case rms < 0.01:
		return SimplePrediction{Emotion: "neutral", Confidence: 0.8}
	case zcr > 0.15:
		return SimplePrediction{Emotion: "fearful", Confidence: 0.8}
	default:
		return SimplePrediction{Emotion: "neutral", Confidence: 0.5}
	}
}
