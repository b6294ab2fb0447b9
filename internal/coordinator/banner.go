package coordinator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"banner-bot/internal/banner"
	"banner-bot/internal/format"
	"banner-bot/internal/logging"
	"banner-bot/internal/mediatypes"
	"banner-bot/internal/session"
	"banner-bot/internal/transport"
)

// HandleBanner downloads and validates the overlay image while the session
// is waiting for one, then advances the session to expect a video.
func (c *Coordinator) HandleBanner(ctx context.Context, msg *transport.Message) {
	userID := msg.UserID

	if c.sessions.State(userID) != session.WaitingBanner {
		c.replyWrongContent(msg)
		return
	}

	start := time.Now()
	progressRef, err := c.channel.SendText(msg.ChatID, textBannerDownloading)
	if err != nil {
		logging.Error("failed to open banner progress message for chat %d: %v", msg.ChatID, err)
		return
	}

	rawPath, err := c.tracker.Create(bannerSuffix(msg))
	if err != nil {
		logging.Error("failed to allocate banner temp file: %v", err)
		c.edit(progressRef, textUnexpectedError)
		return
	}

	sink := c.progressSink(progressRef, func(percent int, elapsed time.Duration) string {
		return fmt.Sprintf("Downloading banner… %d%% (%s)", percent, format.Seconds(elapsed))
	})
	if !c.downloader.Fetch(ctx, msg, rawPath, sink) {
		c.edit(progressRef, textBannerDownloadFailed)
		c.tracker.Release(rawPath)
		return
	}

	info, err := banner.Prepare(rawPath)
	if err != nil {
		logging.Warn("banner preflight rejected upload from user %d: %v", userID, err)
		c.edit(progressRef, textBannerInvalid)
		c.tracker.Release(rawPath)
		return
	}
	if info.Path != rawPath {
		// Converted copy supersedes the raw download.
		c.tracker.Release(rawPath)
	}

	if err := c.sessions.AcceptBanner(userID, info.Path); err != nil {
		// The session moved on while we were downloading.
		c.tracker.Release(info.Path)
		c.replyWrongContent(msg)
		return
	}

	size := fileSize(info.Path)
	c.edit(progressRef, fmt.Sprintf(
		"Banner ready in %s\n\nSize: %s (%dx%d %s)\n\nNow send the video (large files welcome).",
		format.Seconds(time.Since(start)), format.Bytes(size), info.Width, info.Height, strings.ToUpper(info.Format)))
}

// handleDocument routes a generic file upload to the banner or video flow
// based on the session state and the file's declared type.
func (c *Coordinator) handleDocument(ctx context.Context, msg *transport.Message) {
	doc := msg.Document
	state := c.sessions.State(msg.UserID)

	switch {
	case state == session.WaitingVideo && mediatypes.IsVideo(doc.MimeType, doc.FileName):
		c.HandleVideo(ctx, msg)
	case state == session.WaitingBanner && mediatypes.IsImage(doc.MimeType, doc.FileName):
		c.HandleBanner(ctx, msg)
	default:
		c.replyWrongContent(msg)
	}
}

func (c *Coordinator) replyWrongContent(msg *transport.Message) {
	switch c.sessions.State(msg.UserID) {
	case session.WaitingBanner:
		c.reply(msg.ChatID, textWantBanner)
	case session.WaitingVideo:
		c.reply(msg.ChatID, textWantVideo)
	default:
		c.reply(msg.ChatID, textWantStart)
	}
}

func bannerSuffix(msg *transport.Message) string {
	if msg.Document != nil && msg.Document.FileName != "" {
		if ext := strings.ToLower(filepath.Ext(msg.Document.FileName)); ext != "" {
			return ext
		}
	}
	return ".jpg"
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
