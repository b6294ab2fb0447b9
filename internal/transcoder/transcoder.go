// Package transcoder runs ffmpeg to burn the banner onto a video's opening
// second, under a bounded worker pool and a hard deadline.
package transcoder

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"time"

	"banner-bot/internal/logging"
)

// Request describes one transcode invocation.
type Request struct {
	VideoPath  string
	BannerPath string
	OutputPath string
}

// Outcome classifies how an invocation ended. A deadline hit is distinct
// from a non-zero exit so callers can word the two differently.
type Outcome int

const (
	// OutcomeOK means ffmpeg exited zero and produced a non-empty output.
	OutcomeOK Outcome = iota
	// OutcomeFailed means ffmpeg exited non-zero or left no usable output.
	OutcomeFailed
	// OutcomeTimeout means the inner or outer deadline was exceeded.
	OutcomeTimeout
)

// Result is the classified outcome plus ffmpeg's stderr on failure.
type Result struct {
	Outcome     Outcome
	Diagnostics string
}

// Options carries the encoder knobs that are configured once at startup.
// The overlay placement itself is fixed: banner over the first second,
// scaled to frame size with fast bilinear filtering.
type Options struct {
	Preset  string
	CRF     int
	MaxRate string
	// Timeout is ffmpeg's own ceiling. The coordinator imposes a separate
	// outer deadline through the context it passes to Run.
	Timeout time.Duration
}

// DefaultOptions returns the encoder settings used in production.
func DefaultOptions() Options {
	return Options{
		Preset:  "ultrafast",
		CRF:     23,
		MaxRate: "200M",
		Timeout: 10 * time.Minute,
	}
}

// Invoker executes transcodes on a bounded pool so a slow ffmpeg run cannot
// stall unrelated sessions, and tracks live processes for shutdown.
type Invoker struct {
	opts   Options
	binary string
	sem    chan struct{}

	processMu sync.Mutex
	processes map[*exec.Cmd]struct{}
}

// New creates an Invoker that runs at most workers transcodes concurrently.
func New(workers int, opts Options) *Invoker {
	if workers < 1 {
		workers = 1
	}
	return &Invoker{
		opts:      opts,
		binary:    "ffmpeg",
		sem:       make(chan struct{}, workers),
		processes: make(map[*exec.Cmd]struct{}),
	}
}

// Available reports whether the ffmpeg binary can be found.
func (i *Invoker) Available() bool {
	_, err := exec.LookPath(i.binary)
	return err == nil
}

// Run executes the transcode and blocks until it completes, fails, or the
// deadline passes. ctx carries the caller's outer deadline; exceeding either
// it or the invoker's own ceiling kills the process and classifies the
// result as OutcomeTimeout.
func (i *Invoker) Run(ctx context.Context, req Request) Result {
	select {
	case i.sem <- struct{}{}:
	case <-ctx.Done():
		return Result{Outcome: OutcomeTimeout, Diagnostics: "timed out waiting for a worker"}
	}
	defer func() { <-i.sem }()

	runCtx := ctx
	if i.opts.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, i.opts.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, i.binary, i.buildArgs(req)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	i.track(cmd)
	defer i.untrack(cmd)

	err := cmd.Run()

	if runCtx.Err() != nil {
		return Result{Outcome: OutcomeTimeout, Diagnostics: stderr.String()}
	}
	if err != nil {
		return Result{Outcome: OutcomeFailed, Diagnostics: stderr.String()}
	}

	info, statErr := os.Stat(req.OutputPath)
	if statErr != nil || info.Size() == 0 {
		return Result{Outcome: OutcomeFailed, Diagnostics: "ffmpeg reported success but produced no output"}
	}

	return Result{Outcome: OutcomeOK}
}

// buildArgs assembles the fixed overlay invocation: scale the banner to the
// frame, overlay it for t in [0, 1], re-encode video, copy audio, and write
// a streaming-friendly fragmented mp4.
func (i *Invoker) buildArgs(req Request) []string {
	return []string{
		"-y", "-hide_banner",
		"-i", req.VideoPath,
		"-i", req.BannerPath,
		"-filter_complex",
		"[1:v]scale=iw:ih:flags=fast_bilinear[banner];" +
			"[0:v][banner]overlay=0:0:enable='between(t,0,1)':format=auto[out]",
		"-map", "[out]",
		"-map", "0:a?",
		"-c:a", "copy",
		"-c:v", "libx264",
		"-preset", i.opts.Preset,
		"-crf", strconv.Itoa(i.opts.CRF),
		"-tune", "fastdecode",
		"-threads", "0",
		"-bf", "0",
		"-refs", "1",
		"-sc_threshold", "0",
		"-g", "30",
		"-keyint_min", "30",
		"-movflags", "+faststart+frag_keyframe+empty_moov",
		"-fflags", "+genpts+flush_packets",
		"-avoid_negative_ts", "disabled",
		"-max_muxing_queue_size", "4096",
		"-bufsize", "4M",
		"-maxrate", i.opts.MaxRate,
		"-f", "mp4",
		req.OutputPath,
	}
}

func (i *Invoker) track(cmd *exec.Cmd) {
	i.processMu.Lock()
	i.processes[cmd] = struct{}{}
	i.processMu.Unlock()
}

func (i *Invoker) untrack(cmd *exec.Cmd) {
	i.processMu.Lock()
	delete(i.processes, cmd)
	i.processMu.Unlock()
}

// Cleanup kills any still-running transcodes. Called on shutdown.
func (i *Invoker) Cleanup() {
	i.processMu.Lock()
	defer i.processMu.Unlock()

	for cmd := range i.processes {
		if cmd.Process != nil {
			logging.Info("killing transcode process %d", cmd.Process.Pid)
			if err := cmd.Process.Kill(); err != nil {
				logging.Warn("failed to kill transcode process: %v", err)
			}
		}
	}
}

// TruncateDiagnostics shortens ffmpeg stderr for user display.
func TruncateDiagnostics(diag string, max int) string {
	if max <= 0 || len(diag) <= max {
		return diag
	}
	return fmt.Sprintf("%s…", diag[:max])
}
