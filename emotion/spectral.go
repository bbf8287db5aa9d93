package emotion

// Frame-level spectral analysis.
//
// All descriptors are computed over a magnitude spectrogram built from
// Hann-windowed frames of frameSize samples advanced by hopSize. Clips
// shorter than one frame are zero-padded into a single frame.

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// computeSpectrogram returns per-frame magnitude spectra limited to the
// positive frequency bins.
func computeSpectrogram(samples []float64) [][]float64 {
	if len(samples) == 0 {
		return nil
	}

	padded := samples
	if len(padded) < frameSize {
		padded = make([]float64, frameSize)
		copy(padded, samples)
	}

	frameCount := (len(padded)-frameSize)/hopSize + 1
	freqBins := frameSize/2 + 1
	window := hannWindow(frameSize)

	spectrogram := make([][]float64, frameCount)
	buffer := make([]float64, frameSize)

	for i := 0; i < frameCount; i++ {
		start := i * hopSize
		copy(buffer, padded[start:start+frameSize])
		for j := range buffer {
			buffer[j] *= window[j]
		}

		spectrum := fft.FFTReal(buffer)
		magnitude := make([]float64, freqBins)
		for j := 0; j < freqBins; j++ {
			magnitude[j] = cmplx.Abs(spectrum[j])
		}
		spectrogram[i] = magnitude
	}

	return spectrogram
}

func hannWindow(length int) []float64 {
	window := make([]float64, length)
	if length == 1 {
		window[0] = 1.0
		return window
	}
	for i := range window {
		window[i] = 0.5 * (1.0 - math.Cos(2.0*math.Pi*float64(i)/float64(length-1)))
	}
	return window
}

// binFrequency returns the centre frequency of an FFT bin.
func binFrequency(bin, sampleRate int) float64 {
	return float64(bin) * float64(sampleRate) / float64(frameSize)
}

// frameSpectralCentroid is the magnitude-weighted mean frequency of a frame.
func frameSpectralCentroid(magnitude []float64, sampleRate int) float64 {
	var weightedSum, total float64
	for i, mag := range magnitude {
		weightedSum += mag * binFrequency(i, sampleRate)
		total += mag
	}
	if total == 0 {
		return 0
	}
	return weightedSum / total
}

// frameSpectralRolloff is the frequency below which the rolloff fraction of
// the frame's spectral energy is contained.
func frameSpectralRolloff(magnitude []float64, sampleRate int, rollPercent float64) float64 {
	if len(magnitude) == 0 {
		return 0
	}

	var total float64
	for _, mag := range magnitude {
		total += mag * mag
	}
	if total == 0 {
		return 0
	}

	target := rollPercent * total
	var cumulative float64
	for i, mag := range magnitude {
		cumulative += mag * mag
		if cumulative >= target {
			return binFrequency(i, sampleRate)
		}
	}

	return binFrequency(len(magnitude)-1, sampleRate)
}

// frameZeroCrossingRate is the fraction of adjacent sample pairs in a frame
// that change sign.
func frameZeroCrossingRate(samples []float64) float64 {
	if len(samples) <= 1 {
		return 0
	}
	var count float64
	for i := 1; i < len(samples); i++ {
		if (samples[i-1] >= 0) != (samples[i] >= 0) {
			count++
		}
	}
	return count / float64(len(samples))
}

func rootMeanSquare(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, v := range samples {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(samples)))
}
