package emotion

// Silence gate.
//
// Near-silent uploads carry no emotional content, and pushing them through
// the model yields arbitrary logits. Clips whose RMS falls below the
// threshold short-circuit to a neutral result with full confidence.

// IsSilent reports whether a clip falls below the silence threshold.
func IsSilent(samples []float64) bool {
	return rootMeanSquare(samples) < silenceRMSThreshold
}

// SilentResult builds the forced neutral prediction for a silent clip.
func SilentResult(labels []string) *PredictionResult {
	predictions := make(map[string]float64, len(labels))
	for _, label := range labels {
		predictions[label] = 0.0
	}
	predictions["neutral"] = 1.0

	return &PredictionResult{
		Emotion:        "neutral",
		Confidence:     1.0,
		AllPredictions: predictions,
	}
}
