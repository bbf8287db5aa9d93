package wav

// Native WAV codec.
//
// Parses RIFF/WAVE containers carrying integer or float PCM and converts the
// payload into float64 samples in [-1, 1]. Multi-channel audio is downmixed
// to mono by averaging. Anything the parser cannot handle is routed through
// the FFmpeg fallback in converter.go.

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
)

const (
	formatPCM       = 1
	formatIEEEFloat = 3
)

// WavInfo describes a decoded WAV payload.
type WavInfo struct {
	SampleRate    int
	Channels      int
	BitsPerSample int
	AudioFormat   int
	Data          []byte
	Duration      float64
}

// ErrNotWav reports that the byte stream does not carry a RIFF/WAVE header.
var ErrNotWav = errors.New("not a RIFF/WAVE stream")

// DecodeWavBytes parses a WAV byte stream into header info plus the raw data chunk.
func DecodeWavBytes(data []byte) (*WavInfo, error) {
	if len(data) < 44 {
		return nil, fmt.Errorf("wav stream too short (%d bytes)", len(data))
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, ErrNotWav
	}

	info := &WavInfo{}
	offset := 12
	foundFmt := false
	foundData := false

	for offset+8 <= len(data) {
		chunkID := string(data[offset : offset+4])
		chunkSize := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		body := offset + 8
		if chunkSize < 0 || body+chunkSize > len(data) {
			// tolerate a truncated final chunk, some encoders get the size wrong
			chunkSize = len(data) - body
		}

		switch chunkID {
		case "fmt ":
			if chunkSize < 16 {
				return nil, fmt.Errorf("fmt chunk too short (%d bytes)", chunkSize)
			}
			info.AudioFormat = int(binary.LittleEndian.Uint16(data[body : body+2]))
			info.Channels = int(binary.LittleEndian.Uint16(data[body+2 : body+4]))
			info.SampleRate = int(binary.LittleEndian.Uint32(data[body+4 : body+8]))
			info.BitsPerSample = int(binary.LittleEndian.Uint16(data[body+14 : body+16]))
			foundFmt = true
		case "data":
			info.Data = data[body : body+chunkSize]
			foundData = true
		}

		// chunks are word aligned
		if chunkSize%2 == 1 {
			chunkSize++
		}
		offset = body + chunkSize
	}

	if !foundFmt {
		return nil, errors.New("missing fmt chunk")
	}
	if !foundData || len(info.Data) == 0 {
		return nil, errors.New("missing or empty data chunk")
	}
	if info.Channels <= 0 || info.SampleRate <= 0 {
		return nil, fmt.Errorf("invalid wav header: channels=%d sampleRate=%d", info.Channels, info.SampleRate)
	}
	if info.AudioFormat != formatPCM && info.AudioFormat != formatIEEEFloat {
		return nil, fmt.Errorf("unsupported wav encoding: format=%d", info.AudioFormat)
	}

	bytesPerFrame := info.Channels * info.BitsPerSample / 8
	if bytesPerFrame > 0 {
		info.Duration = float64(len(info.Data)/bytesPerFrame) / float64(info.SampleRate)
	}

	return info, nil
}

// ReadWavInfo reads and parses a WAV file from disk.
func ReadWavInfo(filename string) (*WavInfo, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read wav file: %w", err)
	}
	return DecodeWavBytes(data)
}

// WavBytesToSamples converts the raw data chunk into mono float64 samples.
func WavBytesToSamples(info *WavInfo) ([]float64, error) {
	if info == nil || len(info.Data) == 0 {
		return nil, errors.New("no wav data to convert")
	}

	bytesPerSample := info.BitsPerSample / 8
	if bytesPerSample == 0 {
		return nil, fmt.Errorf("invalid bits per sample: %d", info.BitsPerSample)
	}
	frameSize := bytesPerSample * info.Channels
	frameCount := len(info.Data) / frameSize
	if frameCount == 0 {
		return nil, errors.New("wav data shorter than one frame")
	}

	samples := make([]float64, frameCount)
	for frame := 0; frame < frameCount; frame++ {
		var sum float64
		for ch := 0; ch < info.Channels; ch++ {
			pos := frame*frameSize + ch*bytesPerSample
			value, err := decodeSample(info.Data[pos:pos+bytesPerSample], info.AudioFormat, info.BitsPerSample)
			if err != nil {
				return nil, err
			}
			sum += value
		}
		samples[frame] = sum / float64(info.Channels)
	}

	return samples, nil
}

func decodeSample(raw []byte, audioFormat, bits int) (float64, error) {
	switch {
	case audioFormat == formatPCM && bits == 16:
		return float64(int16(binary.LittleEndian.Uint16(raw))) / 32768.0, nil
	case audioFormat == formatPCM && bits == 8:
		// 8-bit PCM is unsigned
		return (float64(raw[0]) - 128.0) / 128.0, nil
	case audioFormat == formatPCM && bits == 32:
		return float64(int32(binary.LittleEndian.Uint32(raw))) / 2147483648.0, nil
	case audioFormat == formatIEEEFloat && bits == 32:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(raw))), nil
	case audioFormat == formatIEEEFloat && bits == 64:
		return math.Float64frombits(binary.LittleEndian.Uint64(raw)), nil
	default:
		return 0, fmt.Errorf("unsupported sample encoding: format=%d bits=%d", audioFormat, bits)
	}
}

// EncodeWav serialises mono float64 samples as a 16-bit PCM WAV byte stream.
func EncodeWav(samples []float64, sampleRate int) []byte {
	dataSize := len(samples) * 2
	buf := make([]byte, 44+dataSize)

	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(36+dataSize))
	copy(buf[8:12], "WAVE")
	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16)
	binary.LittleEndian.PutUint16(buf[20:22], formatPCM)
	binary.LittleEndian.PutUint16(buf[22:24], 1)
	binary.LittleEndian.PutUint32(buf[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(sampleRate*2))
	binary.LittleEndian.PutUint16(buf[32:34], 2)
	binary.LittleEndian.PutUint16(buf[34:36], 16)
	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(dataSize))

	for i, s := range samples {
		if s > 1.0 {
			s = 1.0
		} else if s < -1.0 {
			s = -1.0
		}
		binary.LittleEndian.PutUint16(buf[44+i*2:], uint16(int16(s*32767.0)))
	}

	return buf
}

// WriteWavFile writes mono float64 samples to disk as 16-bit PCM.
func WriteWavFile(filename string, samples []float64, sampleRate int) error {
	if err := os.WriteFile(filename, EncodeWav(samples, sampleRate), 0644); err != nil {
		return fmt.Errorf("failed to write wav file: %w", err)
	}
	return nil
}

// ResampleLinear converts samples between rates using linear interpolation.
func ResampleLinear(samples []float64, fromRate, toRate int) []float64 {
	if fromRate == toRate || len(samples) == 0 || fromRate <= 0 || toRate <= 0 {
		return samples
	}

	ratio := float64(fromRate) / float64(toRate)
	outLen := int(float64(len(samples)) / ratio)
	if outLen == 0 {
		outLen = 1
	}

	out := make([]float64, outLen)
	for i := range out {
		srcPos := float64(i) * ratio
		idx := int(srcPos)
		if idx >= len(samples)-1 {
			out[i] = samples[len(samples)-1]
			continue
		}
		frac := srcPos - float64(idx)
		out[i] = samples[idx]*(1-frac) + samples[idx+1]*frac
	}

	return out
}
