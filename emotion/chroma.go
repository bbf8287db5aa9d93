package emotion

// Chroma descriptor.
//
// FFT bins between 80 Hz and 8 kHz are folded onto the twelve pitch classes
// via their MIDI note number. Per-frame energy (magnitude squared) is
// accumulated per class and normalised to unit sum, then averaged over time.

import (
	"errors"
	"math"
)

const (
	chromaBins    = 12
	chromaMinFreq = 80.0
	chromaMaxFreq = 8000.0
	chromaTuning  = 440.0
)

// computeChromaMeans returns the time-averaged chroma vector for a
// spectrogram. An empty spectrogram is an error; the caller substitutes
// zeros so a chroma failure never aborts the descriptor.
func computeChromaMeans(spectrogram [][]float64, sampleRate int) ([]float64, error) {
	if len(spectrogram) == 0 {
		return nil, errors.New("empty spectrogram")
	}

	mapping := chromaBinMapping(len(spectrogram[0]), sampleRate)

	means := make([]float64, chromaBins)
	for _, magnitude := range spectrogram {
		frame := make([]float64, chromaBins)
		for f, mag := range magnitude {
			bin := mapping[f]
			if bin >= 0 {
				frame[bin] += mag * mag
			}
		}
		normalizeUnitSum(frame)
		for i, v := range frame {
			means[i] += v
		}
	}

	for i := range means {
		means[i] /= float64(len(spectrogram))
	}

	return means, nil
}

// chromaBinMapping maps each FFT bin onto a pitch class, or -1 when the bin
// frequency lies outside the analysed range.
func chromaBinMapping(freqBins, sampleRate int) []int {
	mapping := make([]int, freqBins)
	for f := range mapping {
		frequency := binFrequency(f, sampleRate)
		if frequency < chromaMinFreq || frequency > chromaMaxFreq {
			mapping[f] = -1
			continue
		}
		midiNote := 69.0 + 12.0*math.Log2(frequency/chromaTuning)
		bin := int(math.Round(midiNote)) % chromaBins
		if bin < 0 {
			bin += chromaBins
		}
		mapping[f] = bin
	}
	return mapping
}

func normalizeUnitSum(frame []float64) {
	var total float64
	for _, v := range frame {
		total += v
	}
	if total > 1e-10 {
		for i := range frame {
			frame[i] /= total
		}
	}
}
