package emotion

// Clip decoding.
//
// Uploaded recordings arrive as arbitrary byte streams. The primary path
// parses WAV natively; everything else is written to a temp file and handed
// to FFmpeg, which produces an intermediate WAV that is fed back through the
// native parser. Temp files are removed regardless of outcome.

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sewminijayakody/smart-emergency-app/utils"
	"github.com/sewminijayakody/smart-emergency-app/wav"
)

// DecodeClip converts an uploaded byte stream into a mono clip at the target
// sample rate, capped at ClipSeconds.
func DecodeClip(ctx context.Context, data []byte) (*AudioClip, error) {
	if len(data) < MinPayloadBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrEmptyInput, len(data))
	}

	clip, nativeErr := decodeNative(data)
	if nativeErr == nil {
		return clip, nil
	}

	clip, fallbackErr := decodeWithFFmpeg(ctx, data)
	if fallbackErr != nil {
		return nil, fmt.Errorf("%w: native decode: %v; ffmpeg decode: %v",
			ErrUnsupportedFormat, nativeErr, fallbackErr)
	}

	return clip, nil
}

func decodeNative(data []byte) (*AudioClip, error) {
	info, err := wav.DecodeWavBytes(data)
	if err != nil {
		return nil, err
	}

	samples, err := wav.WavBytesToSamples(info)
	if err != nil {
		return nil, err
	}

	samples = wav.ResampleLinear(samples, info.SampleRate, TargetSampleRate)
	samples = truncateToSeconds(samples, TargetSampleRate, ClipSeconds)

	return &AudioClip{
		Samples:    samples,
		SampleRate: TargetSampleRate,
		Duration:   float64(len(samples)) / float64(TargetSampleRate),
	}, nil
}

func decodeWithFFmpeg(ctx context.Context, data []byte) (*AudioClip, error) {
	tempDir := filepath.Join("tmp", "decode")
	if err := utils.CreateFolder(tempDir); err != nil {
		return nil, fmt.Errorf("unable to create temp dir: %w", err)
	}

	inFile, err := os.CreateTemp(tempDir, "upload-*.bin")
	if err != nil {
		return nil, fmt.Errorf("unable to create temp file: %w", err)
	}
	inPath := inFile.Name()
	defer os.Remove(inPath)

	if _, err := inFile.Write(data); err != nil {
		inFile.Close()
		return nil, fmt.Errorf("unable to persist upload: %w", err)
	}
	if err := inFile.Close(); err != nil {
		return nil, fmt.Errorf("unable to close temp file: %w", err)
	}

	outPath := filepath.Join(tempDir, fmt.Sprintf("conv_%d.wav", time.Now().UnixNano()))
	defer os.Remove(outPath)

	if err := wav.TranscodeToWav(ctx, inPath, outPath, TargetSampleRate, 1); err != nil {
		return nil, err
	}

	info, err := wav.ReadWavInfo(outPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcoded wav: %w", err)
	}
	samples, err := wav.WavBytesToSamples(info)
	if err != nil {
		return nil, err
	}

	// the fallback path fixes the clip to exactly ClipSeconds
	samples = truncateToSeconds(samples, TargetSampleRate, ClipSeconds)
	samples = padToSeconds(samples, TargetSampleRate, ClipSeconds)

	return &AudioClip{
		Samples:    samples,
		SampleRate: TargetSampleRate,
		Duration:   float64(len(samples)) / float64(TargetSampleRate),
	}, nil
}

func truncateToSeconds(samples []float64, sampleRate int, seconds float64) []float64 {
	limit := int(seconds * float64(sampleRate))
	if len(samples) > limit {
		return samples[:limit]
	}
	return samples
}

func padToSeconds(samples []float64, sampleRate int, seconds float64) []float64 {
	target := int(seconds * float64(sampleRate))
	if len(samples) >= target {
		return samples
	}
	padded := make([]float64, target)
	copy(padded, samples)
	return padded
}

// ReadClipFile decodes a recording stored on disk. Used by the CLI tools.
func ReadClipFile(ctx context.Context, path string) (*AudioClip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", path, err)
	}

	return DecodeClip(ctx, data)
}
