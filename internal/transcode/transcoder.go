// Package transcode drives the external ffmpeg binary to produce
// single-rendition HLS bundles.
package transcode

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// ManifestName is the playlist file name of every produced bundle
const ManifestName = "master.m3u8"

// segmentSeconds is the fixed target segment duration
const segmentSeconds = 10

// ffmpegTranscoder shells out to ffmpeg for HLS segmentation
type ffmpegTranscoder struct {
	ffmpegPath string
	timeout    time.Duration
}

// NewFFmpegTranscoder creates a new ffmpegTranscoder instance
func NewFFmpegTranscoder(ffmpegPath string, timeout time.Duration) *ffmpegTranscoder {
	return &ffmpegTranscoder{
		ffmpegPath: ffmpegPath,
		timeout:    timeout,
	}
}

// Transcode converts the source video into a segmented HLS stream inside
// workDir and returns the manifest path. One quality tier: baseline profile,
// 10-second segments, a full playlist with no rolling window.
//
// The invocation is bounded by the configured timeout. On any failure the
// working directory may hold partial segments; the caller owns cleanup.
func (t *ffmpegTranscoder) Transcode(ctx context.Context, sourcePath, workDir string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	manifestPath := filepath.Join(workDir, ManifestName)

	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", sourcePath,
		"-profile:v", "baseline",
		"-level", "3.0",
		"-start_number", "0",
		"-hls_time", fmt.Sprintf("%d", segmentSeconds),
		"-hls_list_size", "0",
		"-f", "hls",
		manifestPath,
	}

	cmd := exec.CommandContext(ctx, t.ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("transcode timed out after %s", t.timeout)
		}
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return "", fmt.Errorf("encoder failed: %w: %s", err, detail)
		}
		return "", fmt.Errorf("encoder failed: %w", err)
	}

	// A clean exit without a manifest on disk is still a failure
	if _, err := os.Stat(manifestPath); err != nil {
		return "", fmt.Errorf("manifest not produced: %w", err)
	}

	return manifestPath, nil
}
