package wav

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"time"
)

const transcodeTimeout = 30 * time.Second

// CheckFFmpegAvailable verifies that the ffmpeg binary can be found in PATH.
func CheckFFmpegAvailable() error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return fmt.Errorf("ffmpeg not found in PATH: %w", err)
	}
	return nil
}

// TranscodeToWav converts any audio container FFmpeg understands into a
// 16-bit PCM WAV file with the requested sample rate and channel count.
// Used as the decode fallback for formats the native parser rejects.
func TranscodeToWav(ctx context.Context, inputPath, outputPath string, sampleRate, channels int) error {
	ctx, cancel := context.WithTimeout(ctx, transcodeTimeout)
	defer cancel()

	args := []string{
		"-y",
		"-v", "error",
		"-i", inputPath,
		"-vn",
		"-ac", strconv.Itoa(channels),
		"-ar", strconv.Itoa(sampleRate),
		"-acodec", "pcm_s16le",
		outputPath,
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg transcode failed: %w (output: %s)", err, string(output))
	}

	return nil
}
