package emotion

import (
	"math"
	"testing"
)

func TestNormalizePeak(t *testing.T) {
	t.Parallel()

	samples := []float64{0.1, -0.25, 0.2}
	normalized := normalizePeak(samples)

	var peak float64
	for _, s := range normalized {
		if abs := math.Abs(s); abs > peak {
			peak = abs
		}
	}
	if math.Abs(peak-1.0) > 1e-12 {
		t.Fatalf("expected peak 1.0 after normalisation, got %v", peak)
	}

	// all-zero input must pass through untouched
	silent := normalizePeak(make([]float64, 10))
	for _, s := range silent {
		if s != 0 {
			t.Fatalf("expected zeros to survive normalisation, got %v", silent)
		}
	}
}

func TestRemoveDCOffset(t *testing.T) {
	t.Parallel()

	samples := sineClip(440, 0.5, 0.5)
	for i := range samples {
		samples[i] += 0.3
	}

	centred := removeDCOffset(samples)
	var sum float64
	for _, s := range centred {
		sum += s
	}
	mean := sum / float64(len(centred))
	if math.Abs(mean) > 1e-9 {
		t.Fatalf("expected zero mean after DC removal, got %v", mean)
	}
}

func TestHighPassAttenuatesLowTone(t *testing.T) {
	t.Parallel()

	low := sineClip(20, 1.0, 0.5)
	filtered := butterworthHighPass(low, TargetSampleRate, 80.0)

	before := rootMeanSquare(low)
	after := rootMeanSquare(filtered)
	if after > before*0.2 {
		t.Fatalf("expected 20Hz tone to be attenuated by 80Hz high-pass: before=%v after=%v", before, after)
	}

	speech := sineClip(440, 1.0, 0.5)
	passed := butterworthHighPass(speech, TargetSampleRate, 80.0)
	if rootMeanSquare(passed) < rootMeanSquare(speech)*0.8 {
		t.Fatalf("expected 440Hz tone to pass the 80Hz high-pass")
	}
}

func TestLowPassAttenuatesHighTone(t *testing.T) {
	t.Parallel()

	high := sineClip(10000, 1.0, 0.5)
	filtered := butterworthLowPass(high, TargetSampleRate, 8000.0)

	before := rootMeanSquare(high)
	after := rootMeanSquare(filtered)
	if after > before*0.5 {
		t.Fatalf("expected 10kHz tone to be attenuated by 8kHz low-pass: before=%v after=%v", before, after)
	}
}

func TestTrimSilentEdges(t *testing.T) {
	t.Parallel()

	silence := make([]float64, TargetSampleRate/2)
	tone := sineClip(440, 1.0, 0.5)

	padded := append(append(append([]float64{}, silence...), tone...), silence...)
	trimmed := trimSilentEdges(padded, 20.0)

	if len(trimmed) >= len(padded) {
		t.Fatalf("expected trimming to shorten the clip: %d -> %d", len(padded), len(trimmed))
	}
	// the tone itself must survive, allow one frame of slack at each edge
	if len(trimmed) < len(tone)-2*frameSize {
		t.Fatalf("trimming removed audible content: kept %d of %d tone samples", len(trimmed), len(tone))
	}
}

func TestPreprocessPadsToMinimumDuration(t *testing.T) {
	t.Parallel()

	short := sineClip(440, 0.2, 0.5)
	config := DefaultPreprocessingConfig()
	processed := PreprocessAudio(short, TargetSampleRate, config)

	minSamples := int(config.MinDurationSec * TargetSampleRate)
	if len(processed) < minSamples {
		t.Fatalf("expected at least %d samples after padding, got %d", minSamples, len(processed))
	}
}

func TestPreprocessLeavesInputUntouched(t *testing.T) {
	t.Parallel()

	original := sineClip(440, 0.5, 0.5)
	snapshot := append([]float64(nil), original...)

	PreprocessAudio(original, TargetSampleRate, DefaultPreprocessingConfig())

	for i := range original {
		if original[i] != snapshot[i] {
			t.Fatalf("preprocessing mutated its input at index %d", i)
		}
	}
}
