package emotion

import "testing"

func TestClassifyByRulesHighEnergy(t *testing.T) {
	t.Parallel()

	// a loud tone has RMS amplitude/sqrt(2), well above the panic threshold
	prediction := ClassifyByRules(sineClip(440, 1.0, 0.8), TargetSampleRate)
	if prediction.Emotion != "fearful" || prediction.Confidence != 0.9 {
		t.Fatalf("expected fearful (0.9) for a loud clip, got %s (%v)", prediction.Emotion, prediction.Confidence)
	}
}

func TestClassifyByRulesQuietLowCentroid(t *testing.T) {
	t.Parallel()

	// quiet low tone: RMS ~ 0.014, centroid near 200Hz
	prediction := ClassifyByRules(sineClip(200, 1.0, 0.02), TargetSampleRate)
	if prediction.Emotion != "sad" {
		t.Fatalf("expected sad for a quiet low clip, got %s", prediction.Emotion)
	}
}

func TestClassifyByRulesEmptyInput(t *testing.T) {
	t.Parallel()

	prediction := ClassifyByRules(nil, TargetSampleRate)
	if prediction.Emotion != "neutral" || prediction.Confidence != 0.5 {
		t.Fatalf("expected neutral (0.5) fallback, got %s (%v)", prediction.Emotion, prediction.Confidence)
	}
}
