package transcoder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// stubBinary writes an executable shell script standing in for ffmpeg.
// The real binary is never run in tests; only outcome classification is
// under test here.
func stubBinary(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ffmpeg-stub")
	content := "#!/bin/sh\n" + script + "\n"
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatalf("failed to write stub binary: %v", err)
	}
	return path
}

func testRequest(t *testing.T) Request {
	t.Helper()
	dir := t.TempDir()
	return Request{
		VideoPath:  filepath.Join(dir, "in.mp4"),
		BannerPath: filepath.Join(dir, "banner.jpg"),
		OutputPath: filepath.Join(dir, "out.mp4"),
	}
}

func TestRunSuccess(t *testing.T) {
	req := testRequest(t)
	inv := New(1, DefaultOptions())
	// The last argument the invoker passes is the output path.
	inv.binary = stubBinary(t, `for last; do :; done; printf ok > "$last"`)

	res := inv.Run(context.Background(), req)
	if res.Outcome != OutcomeOK {
		t.Fatalf("Outcome = %v diagnostics = %q, want OutcomeOK", res.Outcome, res.Diagnostics)
	}
}

func TestRunNonZeroExitIsFailure(t *testing.T) {
	req := testRequest(t)
	inv := New(1, DefaultOptions())
	inv.binary = stubBinary(t, `echo "codec not supported" >&2; exit 1`)

	res := inv.Run(context.Background(), req)
	if res.Outcome != OutcomeFailed {
		t.Fatalf("Outcome = %v, want OutcomeFailed", res.Outcome)
	}
	if !strings.Contains(res.Diagnostics, "codec not supported") {
		t.Errorf("Diagnostics = %q, want stderr text", res.Diagnostics)
	}
}

func TestRunEmptyOutputIsFailure(t *testing.T) {
	req := testRequest(t)
	inv := New(1, DefaultOptions())
	// Exits zero but writes nothing.
	inv.binary = stubBinary(t, `exit 0`)

	res := inv.Run(context.Background(), req)
	if res.Outcome != OutcomeFailed {
		t.Fatalf("Outcome = %v, want OutcomeFailed for empty output", res.Outcome)
	}
}

func TestRunOuterDeadlineIsTimeout(t *testing.T) {
	req := testRequest(t)
	inv := New(1, DefaultOptions())
	inv.binary = stubBinary(t, `sleep 10`)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	res := inv.Run(ctx, req)
	elapsed := time.Since(start)

	if res.Outcome != OutcomeTimeout {
		t.Fatalf("Outcome = %v, want OutcomeTimeout", res.Outcome)
	}
	if elapsed > 3*time.Second {
		t.Errorf("Run blocked %s past a 100ms deadline", elapsed)
	}
}

func TestRunInnerCeilingIsTimeout(t *testing.T) {
	req := testRequest(t)
	opts := DefaultOptions()
	opts.Timeout = 100 * time.Millisecond
	inv := New(1, opts)
	inv.binary = stubBinary(t, `sleep 10`)

	res := inv.Run(context.Background(), req)
	if res.Outcome != OutcomeTimeout {
		t.Fatalf("Outcome = %v, want OutcomeTimeout from inner ceiling", res.Outcome)
	}
}

func TestRunBoundsConcurrency(t *testing.T) {
	inv := New(1, DefaultOptions())
	inv.binary = stubBinary(t, `sleep 10`)

	slow := testRequest(t)
	go inv.Run(context.Background(), slow)
	time.Sleep(50 * time.Millisecond) // let the slow run take the only slot

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	res := inv.Run(ctx, testRequest(t))
	if res.Outcome != OutcomeTimeout {
		t.Fatalf("Outcome = %v, want OutcomeTimeout while pool is saturated", res.Outcome)
	}
	inv.Cleanup()
}

func TestBuildArgs(t *testing.T) {
	req := Request{VideoPath: "in.mp4", BannerPath: "b.jpg", OutputPath: "out.mp4"}
	opts := DefaultOptions()
	opts.Preset = "fast"
	opts.CRF = 20
	inv := New(1, opts)

	args := inv.buildArgs(req)
	joined := strings.Join(args, " ")

	for _, want := range []string{
		"-i in.mp4",
		"-i b.jpg",
		"between(t,0,1)",
		"fast_bilinear",
		"-preset fast",
		"-crf 20",
		"-c:a copy",
		"+faststart+frag_keyframe+empty_moov",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("args missing %q in %q", want, joined)
		}
	}
	if args[len(args)-1] != "out.mp4" {
		t.Errorf("last arg = %q, want output path", args[len(args)-1])
	}
}

func TestTruncateDiagnostics(t *testing.T) {
	long := strings.Repeat("x", 200)
	got := TruncateDiagnostics(long, 100)
	if len([]rune(got)) != 101 { // 100 chars plus ellipsis
		t.Errorf("truncated length = %d, want 101", len([]rune(got)))
	}
	if TruncateDiagnostics("short", 100) != "short" {
		t.Error("short diagnostics should pass through unchanged")
	}
}

func ExampleTruncateDiagnostics() {
	fmt.Println(TruncateDiagnostics("conversion failed: bad input", 17))
	// Output: conversion failed…
}
