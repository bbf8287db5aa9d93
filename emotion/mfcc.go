package emotion

// Mel-frequency cepstral coefficients.
//
// Each magnitude frame is converted to a power spectrum, passed through a
// triangular mel filter bank, log-compressed with a floor, and decorrelated
// with an orthonormal DCT-II. Twenty coefficients per frame feed the
// descriptor as per-coefficient means and standard deviations.

import (
	"math"
)

const (
	mfccCoefficients = 20
	melFilterCount   = 40
	logFloor         = 1e-10
)

type mfccComputer struct {
	sampleRate int
	filterBank [][]float64
	dctMatrix  [][]float64
}

func newMFCCComputer(sampleRate int) *mfccComputer {
	m := &mfccComputer{sampleRate: sampleRate}
	m.filterBank = createMelFilterBank(melFilterCount, frameSize, sampleRate, 0.0, float64(sampleRate)/2.0)
	m.dctMatrix = createDCTMatrix(mfccCoefficients, melFilterCount)
	return m
}

// computeFrames returns one coefficient vector per spectrogram frame.
func (m *mfccComputer) computeFrames(spectrogram [][]float64) [][]float64 {
	frames := make([][]float64, len(spectrogram))
	for t, magnitude := range spectrogram {
		frames[t] = m.computeFrame(magnitude)
	}
	return frames
}

func (m *mfccComputer) computeFrame(magnitude []float64) []float64 {
	power := make([]float64, len(magnitude))
	for i, mag := range magnitude {
		power[i] = mag * mag
	}

	logMel := make([]float64, len(m.filterBank))
	for i, filter := range m.filterBank {
		var sum float64
		for j := 0; j < len(filter) && j < len(power); j++ {
			sum += power[j] * filter[j]
		}
		if sum > 0 {
			logMel[i] = math.Log(sum)
		} else {
			logMel[i] = math.Log(logFloor)
		}
	}

	coeffs := make([]float64, mfccCoefficients)
	for k := range coeffs {
		var sum float64
		for n, value := range logMel {
			sum += value * m.dctMatrix[k][n]
		}
		coeffs[k] = sum
	}

	return coeffs
}

func hzToMel(hz float64) float64 {
	return 2595.0 * math.Log10(1.0+hz/700.0)
}

func melToHz(mel float64) float64 {
	return 700.0 * (math.Pow(10.0, mel/2595.0) - 1.0)
}

func createMelFilterBank(numFilters, fftSize, sampleRate int, lowFreq, highFreq float64) [][]float64 {
	lowMel := hzToMel(lowFreq)
	highMel := hzToMel(highFreq)

	melPoints := make([]float64, numFilters+2)
	melStep := (highMel - lowMel) / float64(numFilters+1)
	for i := range melPoints {
		melPoints[i] = lowMel + float64(i)*melStep
	}

	binPoints := make([]int, len(melPoints))
	for i, mel := range melPoints {
		hz := melToHz(mel)
		bin := int(math.Floor((float64(fftSize)+1.0)*hz/float64(sampleRate) + 0.5))
		if bin > fftSize/2 {
			bin = fftSize / 2
		}
		binPoints[i] = bin
	}

	filterBank := make([][]float64, numFilters)
	for m := 1; m <= numFilters; m++ {
		filter := make([]float64, fftSize/2+1)
		left, center, right := binPoints[m-1], binPoints[m], binPoints[m+1]

		for k := left; k < center && k < len(filter); k++ {
			if center != left {
				filter[k] = float64(k-left) / float64(center-left)
			}
		}
		for k := center; k < right && k < len(filter); k++ {
			if right != center {
				filter[k] = float64(right-k) / float64(right-center)
			}
		}

		filterBank[m-1] = filter
	}

	return filterBank
}

func createDCTMatrix(numCoefficients, numFilters int) [][]float64 {
	matrix := make([][]float64, numCoefficients)
	for k := 0; k < numCoefficients; k++ {
		matrix[k] = make([]float64, numFilters)
		for n := 0; n < numFilters; n++ {
			value := math.Cos(math.Pi * float64(k) * (float64(n) + 0.5) / float64(numFilters))
			if k == 0 {
				value *= math.Sqrt(1.0 / float64(numFilters))
			} else {
				value *= math.Sqrt(2.0 / float64(numFilters))
			}
			matrix[k][n] = value
		}
	}
	return matrix
}
