package emotion

import (
	"math"
	"testing"
)

func TestSoftmaxSumsToOne(t *testing.T) {
	t.Parallel()

	probs := Softmax([]float64{1.2, -0.4, 3.1, 0.0})
	var total float64
	for _, p := range probs {
		if p < 0 || p > 1 {
			t.Fatalf("probability out of range: %v", probs)
		}
		total += p
	}
	if math.Abs(total-1.0) > 1e-12 {
		t.Fatalf("probabilities sum to %v, expected 1", total)
	}
}

func TestSoftmaxStaysFiniteForLargeLogits(t *testing.T) {
	t.Parallel()

	probs := Softmax([]float64{1e6, 1e6 - 2, -1e6})
	for i, p := range probs {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			t.Fatalf("non-finite probability at index %d: %v", i, probs)
		}
	}
	if probs[0] <= probs[1] || probs[1] <= probs[2] {
		t.Fatalf("expected monotone probabilities, got %v", probs)
	}
}

func TestTopPredictionBreaksTiesLowestIndex(t *testing.T) {
	t.Parallel()

	idx, value := TopPrediction([]float64{0.25, 0.25, 0.25, 0.25})
	if idx != 0 {
		t.Fatalf("expected tie to resolve to index 0, got %d", idx)
	}
	if value != 0.25 {
		t.Fatalf("expected value 0.25, got %v", value)
	}

	idx, _ = TopPrediction([]float64{0.1, 0.5, 0.4})
	if idx != 1 {
		t.Fatalf("expected index 1, got %d", idx)
	}

	if idx, _ := TopPrediction(nil); idx != -1 {
		t.Fatalf("expected -1 for empty input, got %d", idx)
	}
}

func TestLabelProbabilities(t *testing.T) {
	t.Parallel()

	result := LabelProbabilities([]string{"neutral", "happy"}, []float64{0.7, 0.3})
	if result["neutral"] != 0.7 || result["happy"] != 0.3 {
		t.Fatalf("unexpected mapping: %v", result)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(result))
	}
}

func TestSilentResult(t *testing.T) {
	t.Parallel()

	result := SilentResult(BaseEmotions)
	if result.Emotion != "neutral" || result.Confidence != 1.0 {
		t.Fatalf("expected forced neutral with confidence 1.0, got %s (%v)", result.Emotion, result.Confidence)
	}
	if len(result.AllPredictions) != len(BaseEmotions) {
		t.Fatalf("expected %d entries, got %d", len(BaseEmotions), len(result.AllPredictions))
	}
	for label, p := range result.AllPredictions {
		if label == "neutral" && p != 1.0 {
			t.Fatalf("expected neutral=1.0, got %v", p)
		}
		if label != "neutral" && p != 0.0 {
			t.Fatalf("expected %s=0.0, got %v", label, p)
		}
	}
}

func TestIsSilent(t *testing.T) {
	t.Parallel()

	if !IsSilent(make([]float64, TargetSampleRate)) {
		t.Fatal("expected all-zero clip to be silent")
	}
	if IsSilent(sineClip(440, 1.0, 0.5)) {
		t.Fatal("expected audible tone to not be silent")
	}
}
