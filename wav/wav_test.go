package wav

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

func TestEncodeDecodeRoundtrip(t *testing.T) {
	t.Parallel()

	samples := make([]float64, 4410)
	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/44100)
	}

	payload := EncodeWav(samples, 44100)
	info, err := DecodeWavBytes(payload)
	if err != nil {
		t.Fatalf("DecodeWavBytes failed: %v", err)
	}
	if info.SampleRate != 44100 || info.Channels != 1 || info.BitsPerSample != 16 {
		t.Fatalf("unexpected header: %+v", info)
	}
	if math.Abs(info.Duration-0.1) > 1e-6 {
		t.Fatalf("expected 0.1s duration, got %v", info.Duration)
	}

	decoded, err := WavBytesToSamples(info)
	if err != nil {
		t.Fatalf("WavBytesToSamples failed: %v", err)
	}
	if len(decoded) != len(samples) {
		t.Fatalf("expected %d samples, got %d", len(samples), len(decoded))
	}
	for i := range decoded {
		if math.Abs(decoded[i]-samples[i]) > 1.0/16384.0 {
			t.Fatalf("sample %d diverged beyond 16-bit quantisation: %v vs %v", i, decoded[i], samples[i])
		}
	}
}

func TestDecodeRejectsNonWav(t *testing.T) {
	t.Parallel()

	garbage := make([]byte, 256)
	for i := range garbage {
		garbage[i] = byte(i)
	}
	if _, err := DecodeWavBytes(garbage); !errors.Is(err, ErrNotWav) {
		t.Fatalf("expected ErrNotWav, got %v", err)
	}

	if _, err := DecodeWavBytes([]byte("RIFF")); err == nil {
		t.Fatal("expected error for truncated stream")
	}
}

func TestDecodeRejectsMissingChunks(t *testing.T) {
	t.Parallel()

	// valid RIFF/WAVE header with no fmt or data chunk
	buf := make([]byte, 44)
	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], 36)
	copy(buf[8:12], "WAVE")
	copy(buf[12:16], "LIST")
	binary.LittleEndian.PutUint32(buf[16:20], 24)

	if _, err := DecodeWavBytes(buf); err == nil {
		t.Fatal("expected error for missing fmt chunk")
	}
}

func TestStereoDownmix(t *testing.T) {
	t.Parallel()

	// hand-built stereo frame: left 0.5, right -0.5 averages to 0
	data := make([]byte, 4)
	left, right := int16(16384), int16(-16384)
	binary.LittleEndian.PutUint16(data[0:2], uint16(left))
	binary.LittleEndian.PutUint16(data[2:4], uint16(right))

	info := &WavInfo{
		SampleRate:    44100,
		Channels:      2,
		BitsPerSample: 16,
		AudioFormat:   1,
		Data:          data,
	}
	samples, err := WavBytesToSamples(info)
	if err != nil {
		t.Fatalf("WavBytesToSamples failed: %v", err)
	}
	if len(samples) != 1 || math.Abs(samples[0]) > 1e-9 {
		t.Fatalf("expected a single zero sample, got %v", samples)
	}
}

func TestFloatSampleDecoding(t *testing.T) {
	t.Parallel()

	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, math.Float32bits(0.25))

	info := &WavInfo{
		SampleRate:    22050,
		Channels:      1,
		BitsPerSample: 32,
		AudioFormat:   3,
		Data:          data,
	}
	samples, err := WavBytesToSamples(info)
	if err != nil {
		t.Fatalf("WavBytesToSamples failed: %v", err)
	}
	if math.Abs(samples[0]-0.25) > 1e-7 {
		t.Fatalf("expected 0.25, got %v", samples[0])
	}
}

func TestResampleLinear(t *testing.T) {
	t.Parallel()

	samples := make([]float64, 44100)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * 440 * float64(i) / 44100)
	}

	resampled := ResampleLinear(samples, 44100, 22050)
	if len(resampled) != 22050 {
		t.Fatalf("expected 22050 samples, got %d", len(resampled))
	}

	// same rate passes through unchanged
	same := ResampleLinear(samples, 44100, 44100)
	if len(same) != len(samples) {
		t.Fatalf("expected identity resample, got %d samples", len(same))
	}
}

func TestEncodeClampsOutOfRangeSamples(t *testing.T) {
	t.Parallel()

	payload := EncodeWav([]float64{2.0, -2.0}, 44100)
	info, err := DecodeWavBytes(payload)
	if err != nil {
		t.Fatalf("DecodeWavBytes failed: %v", err)
	}
	samples, err := WavBytesToSamples(info)
	if err != nil {
		t.Fatalf("WavBytesToSamples failed: %v", err)
	}
	if samples[0] > 1.0 || samples[0] < 0.99 {
		t.Fatalf("expected positive overdrive to clamp near 1.0, got %v", samples[0])
	}
	if samples[1] < -1.0 || samples[1] > -0.99 {
		t.Fatalf("expected negative overdrive to clamp near -1.0, got %v", samples[1])
	}
}
