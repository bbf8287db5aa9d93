package emotion

// Audio preprocessing.
//
// The enhanced deployment cleans each clip before feature extraction:
//
// 1. Peak normalisation to full scale
// 2. DC offset removal
// 3. High-pass at 80 Hz (below the speech fundamental)
// 4. Low-pass at 8 kHz (above useful speech content)
// 5. Edge silence trim at 20 dB below peak
// 6. Right-pad to a minimum duration
//
// Both band filters are fourth-order Butterworth responses built from two
// cascaded biquad sections and applied forward-backward for zero phase.

import (
	"math"
)

// PreprocessingConfig holds configuration for the cleanup chain.
type PreprocessingConfig struct {
	EnableNormalize bool
	EnableDCRemoval bool
	EnableBandLimit bool
	HighPassCutoff  float64 // Hz
	LowPassCutoff   float64 // Hz
	EnableEdgeTrim  bool
	TrimThresholdDb float64
	MinDurationSec  float64
}

// DefaultPreprocessingConfig returns the configuration the six-class model
// was trained with.
func DefaultPreprocessingConfig() PreprocessingConfig {
	return PreprocessingConfig{
		EnableNormalize: true,
		EnableDCRemoval: true,
		EnableBandLimit: true,
		HighPassCutoff:  80.0,
		LowPassCutoff:   8000.0,
		EnableEdgeTrim:  true,
		TrimThresholdDb: 20.0,
		MinDurationSec:  1.0,
	}
}

// PreprocessAudio applies the configured cleanup steps to a clip.
func PreprocessAudio(samples []float64, sampleRate int, config PreprocessingConfig) []float64 {
	if len(samples) == 0 {
		return samples
	}

	result := make([]float64, len(samples))
	copy(result, samples)

	if config.EnableNormalize {
		result = normalizePeak(result)
	}

	if config.EnableDCRemoval {
		result = removeDCOffset(result)
	}

	if config.EnableBandLimit {
		result = butterworthHighPass(result, sampleRate, config.HighPassCutoff)
		result = butterworthLowPass(result, sampleRate, config.LowPassCutoff)
	}

	if config.EnableEdgeTrim {
		result = trimSilentEdges(result, config.TrimThresholdDb)
	}

	if config.MinDurationSec > 0 {
		result = padToSeconds(result, sampleRate, config.MinDurationSec)
	}

	return result
}

func normalizePeak(samples []float64) []float64 {
	var peak float64
	for _, s := range samples {
		if abs := math.Abs(s); abs > peak {
			peak = abs
		}
	}
	if peak == 0 {
		return samples
	}
	result := make([]float64, len(samples))
	for i, s := range samples {
		result[i] = s / peak
	}
	return result
}

func removeDCOffset(samples []float64) []float64 {
	var sum float64
	for _, s := range samples {
		sum += s
	}
	mean := sum / float64(len(samples))
	result := make([]float64, len(samples))
	for i, s := range samples {
		result[i] = s - mean
	}
	return result
}

// biquad is a single second-order IIR section in direct form II.
type biquad struct {
	b0, b1, b2 float64
	a1, a2     float64
	w1, w2     float64
}

func (f *biquad) process(x float64) float64 {
	w := x - f.a1*f.w1 - f.a2*f.w2
	y := f.b0*w + f.b1*f.w1 + f.b2*f.w2
	f.w2 = f.w1
	f.w1 = w
	return y
}

// Q factors of the two sections forming a fourth-order Butterworth response.
var butterworthSectionQ = [2]float64{0.5411961, 1.3065630}

func newLowPassBiquad(sampleRate int, cutoffHz, q float64) *biquad {
	w0 := 2.0 * math.Pi * cutoffHz / float64(sampleRate)
	if w0 >= math.Pi {
		w0 = math.Pi * 0.99
	}
	cosW0 := math.Cos(w0)
	alpha := math.Sin(w0) / (2.0 * q)

	a0 := 1.0 + alpha
	return &biquad{
		b0: (1.0 - cosW0) / 2.0 / a0,
		b1: (1.0 - cosW0) / a0,
		b2: (1.0 - cosW0) / 2.0 / a0,
		a1: -2.0 * cosW0 / a0,
		a2: (1.0 - alpha) / a0,
	}
}

func newHighPassBiquad(sampleRate int, cutoffHz, q float64) *biquad {
	w0 := 2.0 * math.Pi * cutoffHz / float64(sampleRate)
	if w0 >= math.Pi {
		w0 = math.Pi * 0.99
	}
	cosW0 := math.Cos(w0)
	alpha := math.Sin(w0) / (2.0 * q)

	a0 := 1.0 + alpha
	return &biquad{
		b0: (1.0 + cosW0) / 2.0 / a0,
		b1: -(1.0 + cosW0) / a0,
		b2: (1.0 + cosW0) / 2.0 / a0,
		a1: -2.0 * cosW0 / a0,
		a2: (1.0 - alpha) / a0,
	}
}

// filterZeroPhase runs the cascade forward, then backward over the reversed
// signal, cancelling the phase shift of each pass.
func filterZeroPhase(samples []float64, build func(q float64) *biquad) []float64 {
	result := make([]float64, len(samples))
	copy(result, samples)

	for _, q := range butterworthSectionQ {
		section := build(q)
		for i, s := range result {
			result[i] = section.process(s)
		}
	}

	reverseInPlace(result)
	for _, q := range butterworthSectionQ {
		section := build(q)
		for i, s := range result {
			result[i] = section.process(s)
		}
	}
	reverseInPlace(result)

	return result
}

func butterworthHighPass(samples []float64, sampleRate int, cutoffHz float64) []float64 {
	if cutoffHz <= 0 || cutoffHz >= float64(sampleRate)/2 {
		return samples
	}
	return filterZeroPhase(samples, func(q float64) *biquad {
		return newHighPassBiquad(sampleRate, cutoffHz, q)
	})
}

func butterworthLowPass(samples []float64, sampleRate int, cutoffHz float64) []float64 {
	if cutoffHz <= 0 || cutoffHz >= float64(sampleRate)/2 {
		return samples
	}
	return filterZeroPhase(samples, func(q float64) *biquad {
		return newLowPassBiquad(sampleRate, cutoffHz, q)
	})
}

func reverseInPlace(samples []float64) {
	for i, j := 0, len(samples)-1; i < j; i, j = i+1, j-1 {
		samples[i], samples[j] = samples[j], samples[i]
	}
}

// trimSilentEdges removes leading and trailing frames whose energy sits more
// than thresholdDb below the loudest frame.
func trimSilentEdges(samples []float64, thresholdDb float64) []float64 {
	if len(samples) < frameSize {
		return samples
	}

	frameCount := (len(samples)-frameSize)/hopSize + 1
	rmsPerFrame := make([]float64, frameCount)
	var maxRMS float64
	for i := 0; i < frameCount; i++ {
		start := i * hopSize
		rms := rootMeanSquare(samples[start : start+frameSize])
		rmsPerFrame[i] = rms
		if rms > maxRMS {
			maxRMS = rms
		}
	}
	if maxRMS == 0 {
		return samples
	}

	floor := maxRMS * math.Pow(10.0, -thresholdDb/20.0)
	first, last := -1, -1
	for i, rms := range rmsPerFrame {
		if rms >= floor {
			if first == -1 {
				first = i
			}
			last = i
		}
	}
	if first == -1 {
		return samples
	}

	start := first * hopSize
	end := last*hopSize + frameSize
	if end > len(samples) {
		end = len(samples)
	}
	return samples[start:end]
}
