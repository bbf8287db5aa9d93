package emotion

// Logit calibration.
//
// Raw logits become a probability distribution via a max-subtracted softmax,
// which stays finite even for very large logits. Ties on the top probability
// resolve to the lowest index so repeated runs return the same label.

import "math"

// Softmax converts logits into probabilities summing to one.
func Softmax(logits []float64) []float64 {
	if len(logits) == 0 {
		return nil
	}

	maxLogit := logits[0]
	for _, l := range logits[1:] {
		if l > maxLogit {
			maxLogit = l
		}
	}

	probs := make([]float64, len(logits))
	var total float64
	for i, l := range logits {
		probs[i] = math.Exp(l - maxLogit)
		total += probs[i]
	}
	for i := range probs {
		probs[i] /= total
	}

	return probs
}

// TopPrediction returns the index and value of the highest probability,
// preferring the lowest index on exact ties.
func TopPrediction(probs []float64) (int, float64) {
	if len(probs) == 0 {
		return -1, 0
	}
	best := 0
	for i, p := range probs[1:] {
		if p > probs[best] {
			best = i + 1
		}
	}
	return best, probs[best]
}

// LabelProbabilities pairs each label with its probability.
func LabelProbabilities(labels []string, probs []float64) map[string]float64 {
	result := make(map[string]float64, len(labels))
	for i, label := range labels {
		if i < len(probs) {
			result[label] = probs[i]
		}
	}
	return result
}
