package transport

import (
	"context"
	"errors"
	"os"
	"time"

	"banner-bot/internal/logging"
)

// PrimaryClient is the optional high-capacity transport. It resolves a
// message by chat and message ID and streams its media to a local path,
// reporting progress as bytes arrive. A *RateLimitError carries the wait
// the platform mandates before any further primary attempt.
type PrimaryClient interface {
	DownloadMessage(ctx context.Context, chatID int64, messageID int, dest string, progress ProgressFunc) error
}

// SecondaryClient is the required baseline transport. It fetches the bytes
// behind a file handle directly to a local path.
type SecondaryClient interface {
	DownloadFile(ctx context.Context, fileID string, dest string) error
}

// outcome is the tagged result of one transport attempt.
type outcome struct {
	ok     bool
	reason string
}

func success() outcome             { return outcome{ok: true} }
func failure(reason string) outcome { return outcome{reason: reason} }

// Downloader fetches a message's media to a local path, trying the primary
// transport first and falling back to the secondary. A single Fetch makes at
// most one attempt per transport; callers wanting a retry reissue Fetch.
type Downloader struct {
	primary   PrimaryClient
	secondary SecondaryClient

	// sleep is swapped out in tests to avoid real flood waits.
	sleep func(time.Duration)
}

// NewDownloader creates a Downloader. primary may be nil, in which case only
// the secondary transport is used.
func NewDownloader(primary PrimaryClient, secondary SecondaryClient) *Downloader {
	return &Downloader{
		primary:   primary,
		secondary: secondary,
		sleep:     time.Sleep,
	}
}

// Fetch downloads the best payload of msg to dest, reporting progress to
// onProgress when non-nil. It returns true only when dest exists and is
// non-empty afterwards.
func (d *Downloader) Fetch(ctx context.Context, msg *Message, dest string, onProgress ProgressFunc) bool {
	if res := d.tryPrimary(ctx, msg, dest, onProgress); res.ok {
		return true
	} else if d.primary != nil {
		logging.Debug("primary transport failed for chat %d message %d: %s", msg.ChatID, msg.MessageID, res.reason)
	}

	res := d.trySecondary(ctx, msg, dest, onProgress)
	if !res.ok {
		logging.Error("download failed for chat %d message %d: %s", msg.ChatID, msg.MessageID, res.reason)
		return false
	}
	return true
}

func (d *Downloader) tryPrimary(ctx context.Context, msg *Message, dest string, onProgress ProgressFunc) outcome {
	if d.primary == nil {
		return failure("primary transport not configured")
	}

	err := d.primary.DownloadMessage(ctx, msg.ChatID, msg.MessageID, dest, onProgress)
	if err != nil {
		var rateLimit *RateLimitError
		if errors.As(err, &rateLimit) {
			// Honor the mandated wait, then let the secondary take over
			// rather than doubling latency with a primary retry.
			logging.Warn("primary transport flood wait: %s", rateLimit.Wait)
			d.sleep(rateLimit.Wait)
			return failure("rate limited")
		}
		return failure(err.Error())
	}

	return verifyDest(dest)
}

func (d *Downloader) trySecondary(ctx context.Context, msg *Message, dest string, onProgress ProgressFunc) outcome {
	if d.secondary == nil {
		return failure("secondary transport not configured")
	}

	file := msg.BestFile()
	if file == nil {
		return failure("message carries no downloadable file")
	}

	if err := d.secondary.DownloadFile(ctx, file.ID, dest); err != nil {
		return failure(err.Error())
	}

	res := verifyDest(dest)
	if res.ok && onProgress != nil {
		onProgress(100)
	}
	return res
}

// verifyDest requires the destination to exist and be non-empty; a zero-byte
// download is a failure, not a success.
func verifyDest(dest string) outcome {
	info, err := os.Stat(dest)
	if err != nil {
		return failure("destination missing after download")
	}
	if info.Size() == 0 {
		return failure("destination empty after download")
	}
	return success()
}
