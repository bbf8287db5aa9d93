package emotion

// Feature extraction.
//
// The descriptor mirrors the layout the models were trained against:
//
//	[ 0..19] MFCC means
//	[20..39] MFCC standard deviations
//	[40..51] chroma means
//	[52]     spectral centroid mean
//
// Spectral rolloff and zero-crossing rate means are computed as positions 53
// and 54 of the raw vector but fall outside the 53-dimension cut that the
// training run established, so they never reach the model. The truncation is
// kept as-is: a retrained model expects exactly this layout.

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

const rolloffPercent = 0.85

// ExtractFeatureVector derives the fixed-length descriptor for a clip.
func ExtractFeatureVector(samples []float64, sampleRate int) ([]float64, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: no samples provided", ErrFeatureExtraction)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: invalid sample rate %d", ErrFeatureExtraction, sampleRate)
	}
	for i, s := range samples {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return nil, fmt.Errorf("%w: non-finite sample at index %d", ErrFeatureExtraction, i)
		}
	}

	spectrogram := computeSpectrogram(samples)
	if len(spectrogram) == 0 {
		return nil, fmt.Errorf("%w: empty spectrogram", ErrFeatureExtraction)
	}

	mfcc := newMFCCComputer(sampleRate)
	mfccFrames := mfcc.computeFrames(spectrogram)

	mfccMeans, mfccStds := columnStats(mfccFrames, mfccCoefficients)

	chromaMeans, err := computeChromaMeans(spectrogram, sampleRate)
	if err != nil {
		// chroma failure degrades to zeros rather than aborting the clip
		chromaMeans = make([]float64, chromaBins)
	}

	centroids := make([]float64, len(spectrogram))
	rolloffs := make([]float64, len(spectrogram))
	for t, magnitude := range spectrogram {
		centroids[t] = frameSpectralCentroid(magnitude, sampleRate)
		rolloffs[t] = frameSpectralRolloff(magnitude, sampleRate, rolloffPercent)
	}

	zcrs := frameZeroCrossingRates(samples)

	raw := make([]float64, 0, 55)
	raw = append(raw, mfccMeans...)
	raw = append(raw, mfccStds...)
	raw = append(raw, chromaMeans...)
	raw = append(raw, stat.Mean(centroids, nil))
	raw = append(raw, stat.Mean(rolloffs, nil))
	raw = append(raw, stat.Mean(zcrs, nil))

	return fitToLength(raw, FeatureVectorSize), nil
}

// columnStats returns the per-column mean and population standard deviation
// of a frame matrix.
func columnStats(frames [][]float64, columns int) (means, stds []float64) {
	means = make([]float64, columns)
	stds = make([]float64, columns)
	if len(frames) == 0 {
		return means, stds
	}

	column := make([]float64, len(frames))
	for c := 0; c < columns; c++ {
		for t, frame := range frames {
			column[t] = frame[c]
		}
		means[c] = stat.Mean(column, nil)
		stds[c] = stat.PopStdDev(column, nil)
	}

	return means, stds
}

func frameZeroCrossingRates(samples []float64) []float64 {
	if len(samples) < frameSize {
		return []float64{frameZeroCrossingRate(samples)}
	}
	frameCount := (len(samples)-frameSize)/hopSize + 1
	rates := make([]float64, frameCount)
	for i := 0; i < frameCount; i++ {
		start := i * hopSize
		rates[i] = frameZeroCrossingRate(samples[start : start+frameSize])
	}
	return rates
}

// fitToLength truncates or zero-pads a vector to exactly size entries.
func fitToLength(vector []float64, size int) []float64 {
	if len(vector) == size {
		return vector
	}
	fitted := make([]float64, size)
	copy(fitted, vector)
	return fitted
}
