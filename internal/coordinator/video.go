package coordinator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"banner-bot/internal/format"
	"banner-bot/internal/logging"
	"banner-bot/internal/notify"
	"banner-bot/internal/session"
	"banner-bot/internal/stats"
	"banner-bot/internal/transcoder"
	"banner-bot/internal/transport"

	"github.com/google/uuid"
)

// HandleVideo runs one complete job: session validation, size check,
// download, transcode, delivery. Cleanup of every temp path, the banner,
// and the session itself happens on every exit path, success or not.
func (c *Coordinator) HandleVideo(ctx context.Context, msg *transport.Message) {
	userID := msg.UserID

	meta := msg.BestFile()
	if meta == nil {
		c.replyWrongContent(msg)
		return
	}

	bannerPath, err := c.sessions.BeginJob(userID)
	if err != nil {
		c.replyJobRejected(msg, err)
		return
	}

	jobID := uuid.NewString()
	start := time.Now()
	set := c.tracker.NewSet()
	failed := true

	stats.JobsInFlight.Inc()
	defer stats.JobsInFlight.Dec()

	defer func() {
		if r := recover(); r != nil {
			logging.Error("job %s panicked: %v", jobID, r)
			c.stats.RecordError()
			c.publish(context.Background(), jobID, userID, notify.EventFailed)
			c.reply(msg.ChatID, textUnexpectedError)
		} else if failed {
			c.stats.RecordError()
			c.publish(ctx, jobID, userID, notify.EventFailed)
		}
		set.Release()
		c.tracker.Release(c.sessions.FinishJob(userID))
		logging.Info("job %s for user %d finished in %s (failed=%v)", jobID, userID, time.Since(start), failed)
	}()

	c.publish(ctx, jobID, userID, notify.EventQueued)

	if meta.Size > c.cfg.MaxFileSize {
		c.reply(msg.ChatID, fmt.Sprintf(
			"File size (%s) exceeds the %s limit. Send a smaller video or split it.",
			format.Bytes(meta.Size), format.Bytes(c.cfg.MaxFileSize)))
		return
	}

	estimate := estimateSeconds(meta.Size)
	progressRef, err := c.channel.SendText(msg.ChatID, fmt.Sprintf(
		"Processing started.\n\nSize: %s\nEstimated time: ~%ds\n\nDownloading…",
		format.Bytes(meta.Size), estimate))
	if err != nil {
		logging.Error("failed to open progress message for chat %d: %v", msg.ChatID, err)
		return
	}

	videoPath, err := set.Create(".mp4")
	if err != nil {
		logging.Error("job %s: %v", jobID, err)
		c.edit(progressRef, textUnexpectedError)
		return
	}
	outputPath, err := set.Create(".mp4")
	if err != nil {
		logging.Error("job %s: %v", jobID, err)
		c.edit(progressRef, textUnexpectedError)
		return
	}

	c.publish(ctx, jobID, userID, notify.EventDownloading)
	downloadStart := time.Now()
	sink := c.progressSink(progressRef, func(percent int, elapsed time.Duration) string {
		remaining := float64(estimate) - elapsed.Seconds()
		if remaining < 0 {
			remaining = 0
		}
		return fmt.Sprintf("Downloading… %d%% (%s)\n\nSize: %s\nRemaining: ~%.0fs",
			percent, format.Seconds(elapsed), format.Bytes(meta.Size), remaining)
	})
	if !c.downloader.Fetch(ctx, msg, videoPath, sink) {
		stats.DownloadsTotal.WithLabelValues("failure").Inc()
		c.edit(progressRef, textDownloadFailed)
		return
	}
	stats.DownloadsTotal.WithLabelValues("success").Inc()
	downloadTime := time.Since(downloadStart)

	c.publish(ctx, jobID, userID, notify.EventTranscoding)
	c.edit(progressRef, fmt.Sprintf("Download done in %s.\n\nAdding banner…", format.Seconds(downloadTime)))

	processStart := time.Now()
	runCtx, cancel := context.WithTimeout(ctx, c.cfg.ProcessingTimeout)
	defer cancel()
	res := c.runner.Run(runCtx, transcoder.Request{
		VideoPath:  videoPath,
		BannerPath: bannerPath,
		OutputPath: outputPath,
	})
	processTime := time.Since(processStart)

	switch res.Outcome {
	case transcoder.OutcomeTimeout:
		logging.Warn("job %s timed out after %s", jobID, processTime)
		c.edit(progressRef, textTranscodeTimeout)
		return
	case transcoder.OutcomeFailed:
		logging.Error("job %s transcode failed: %s", jobID, res.Diagnostics)
		c.edit(progressRef, "Processing failed.\n\nDetails: "+
			transcoder.TruncateDiagnostics(res.Diagnostics, c.cfg.DiagnosticsLimit))
		return
	}

	outputSize := fileSize(outputPath)
	totalTime := time.Since(start)
	caption := fmt.Sprintf(
		"Video ready in %s\n\nDownload: %s\nProcessing: %s\nSize: %s\n\nSend /start for a new video.",
		format.Seconds(totalTime), format.Seconds(downloadTime), format.Seconds(processTime), format.Bytes(outputSize))

	c.publish(ctx, jobID, userID, notify.EventUploading)
	c.edit(progressRef, fmt.Sprintf("Done in %s. Uploading %s…", format.Seconds(totalTime), format.Bytes(outputSize)))

	var sendErr error
	if outputSize > c.cfg.DocumentThreshold {
		sendErr = c.channel.SendDocument(msg.ChatID, outputPath, caption)
	} else {
		sendErr = c.channel.SendVideo(msg.ChatID, outputPath, caption)
	}
	if sendErr != nil {
		logging.Error("job %s delivery failed: %v", jobID, sendErr)
		c.edit(progressRef, textUploadFailed)
		return
	}

	if err := c.channel.Delete(progressRef); err != nil {
		logging.Debug("failed to delete progress message: %v", err)
	}

	failed = false
	c.stats.RecordSuccess(time.Since(start), meta.Size)
	c.publish(ctx, jobID, userID, notify.EventFinished)
}

// replyJobRejected maps session rejections to their distinct user messages.
// These rejections are not processing failures and do not touch the error
// counter.
func (c *Coordinator) replyJobRejected(msg *transport.Message, err error) {
	var wrong *session.WrongStateError
	switch {
	case errors.Is(err, session.ErrBusy):
		c.reply(msg.ChatID, textAlreadyProcessing)
	case errors.Is(err, session.ErrNoBanner):
		c.reply(msg.ChatID, textNoBanner)
	case errors.As(err, &wrong):
		c.replyWrongContent(msg)
	default:
		c.reply(msg.ChatID, textUnexpectedError)
	}
}

// progressSink throttles UI updates to multiples of the configured step so
// the delivery channel is not overwhelmed by per-chunk progress callbacks.
func (c *Coordinator) progressSink(ref MessageRef, render func(percent int, elapsed time.Duration) string) transport.ProgressFunc {
	start := time.Now()
	var mu sync.Mutex
	last := -1
	return func(percent float64) {
		p := int(percent)
		if p%c.cfg.ProgressStep != 0 {
			return
		}
		mu.Lock()
		if p == last {
			mu.Unlock()
			return
		}
		last = p
		mu.Unlock()
		c.edit(ref, render(p, time.Since(start)))
	}
}

// estimateSeconds guesses processing time from input size, clamped to
// [30s, 180s], matching roughly 3 MiB of input per second.
func estimateSeconds(size int64) int {
	est := int(size / (3 << 20))
	if est < 30 {
		est = 30
	}
	if est > 180 {
		est = 180
	}
	return est
}
