package emotion

import (
	"errors"
	"math"
	"testing"
)

func sineClip(freq, seconds, amplitude float64) []float64 {
	count := int(seconds * TargetSampleRate)
	samples := make([]float64, count)
	for i := range samples {
		samples[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/TargetSampleRate)
	}
	return samples
}

func TestFeatureVectorHasFixedLength(t *testing.T) {
	t.Parallel()

	for _, seconds := range []float64{0.5, 1.0, 3.0} {
		features, err := ExtractFeatureVector(sineClip(440, seconds, 0.5), TargetSampleRate)
		if err != nil {
			t.Fatalf("ExtractFeatureVector failed for %.1fs clip: %v", seconds, err)
		}
		if len(features) != FeatureVectorSize {
			t.Fatalf("expected %d features for %.1fs clip, got %d", FeatureVectorSize, seconds, len(features))
		}
		for i, v := range features {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("non-finite feature at index %d for %.1fs clip", i, seconds)
			}
		}
	}
}

func TestFeatureVectorRejectsNonFiniteSamples(t *testing.T) {
	t.Parallel()

	samples := sineClip(440, 1.0, 0.5)
	samples[100] = math.NaN()

	if _, err := ExtractFeatureVector(samples, TargetSampleRate); !errors.Is(err, ErrFeatureExtraction) {
		t.Fatalf("expected ErrFeatureExtraction, got %v", err)
	}
}

func TestFeatureVectorRejectsEmptyInput(t *testing.T) {
	t.Parallel()

	if _, err := ExtractFeatureVector(nil, TargetSampleRate); !errors.Is(err, ErrFeatureExtraction) {
		t.Fatalf("expected ErrFeatureExtraction for empty input, got %v", err)
	}
	if _, err := ExtractFeatureVector(sineClip(440, 1.0, 0.5), 0); !errors.Is(err, ErrFeatureExtraction) {
		t.Fatalf("expected ErrFeatureExtraction for invalid sample rate, got %v", err)
	}
}

func TestFitToLength(t *testing.T) {
	t.Parallel()

	long := []float64{1, 2, 3, 4, 5}
	fitted := fitToLength(long, 3)
	if len(fitted) != 3 || fitted[2] != 3 {
		t.Fatalf("expected truncation to [1 2 3], got %v", fitted)
	}

	short := []float64{1, 2}
	fitted = fitToLength(short, 4)
	if len(fitted) != 4 || fitted[3] != 0 {
		t.Fatalf("expected zero padding to length 4, got %v", fitted)
	}
}

func TestChromaBinMappingPitchClasses(t *testing.T) {
	t.Parallel()

	mapping := chromaBinMapping(frameSize/2+1, TargetSampleRate)

	// A4 lives in pitch class 9
	a4Bin := int(math.Round(440.0 * frameSize / TargetSampleRate))
	if mapping[a4Bin] != 9 {
		t.Fatalf("expected bin near 440Hz to map to pitch class 9, got %d", mapping[a4Bin])
	}

	// bins below the analysed range are excluded
	if mapping[0] != -1 {
		t.Fatalf("expected DC bin to be excluded, got %d", mapping[0])
	}
}

func TestChromaMeansHighlightTonalContent(t *testing.T) {
	t.Parallel()

	spectrogram := computeSpectrogram(sineClip(440, 1.0, 0.5))
	means, err := computeChromaMeans(spectrogram, TargetSampleRate)
	if err != nil {
		t.Fatalf("computeChromaMeans failed: %v", err)
	}
	if len(means) != chromaBins {
		t.Fatalf("expected %d chroma bins, got %d", chromaBins, len(means))
	}

	best := 0
	for i, v := range means {
		if v > means[best] {
			best = i
		}
	}
	if best != 9 {
		t.Fatalf("expected pitch class 9 to dominate for an A4 tone, got %d", best)
	}
}

func TestColumnStats(t *testing.T) {
	t.Parallel()

	frames := [][]float64{
		{1.0, 10.0},
		{3.0, 10.0},
	}
	means, stds := columnStats(frames, 2)
	if math.Abs(means[0]-2.0) > 1e-12 || math.Abs(means[1]-10.0) > 1e-12 {
		t.Fatalf("unexpected means: %v", means)
	}
	if math.Abs(stds[0]-1.0) > 1e-12 {
		t.Fatalf("expected population std 1.0, got %v", stds[0])
	}
	if stds[1] != 0 {
		t.Fatalf("expected zero std for constant column, got %v", stds[1])
	}
}
