package coordinator

import (
	"fmt"

	"banner-bot/internal/format"
)

const (
	textUnknownCommand = "Unknown command. Use /start, /help or /stats."

	textBannerPrompt = "Send your banner image.\n\n" +
		"Supported formats: JPG, PNG, WEBP, GIF, BMP, TIFF"
	textBannerDownloading    = "Downloading banner…"
	textBannerDownloadFailed = "Failed to download the banner. Please try again."
	textBannerInvalid        = "That file is not a usable image. Send a JPG, PNG, WEBP, GIF, BMP or TIFF banner."

	textWantBanner = "A banner image is expected.\n\n" +
		"Supported formats: JPG, PNG, WEBP, GIF, BMP, TIFF\n" +
		"Send /start to restart."
	textWantVideo = "A video is expected.\n\n" +
		"Supported formats: MP4, MOV, MKV, AVI, WEBM, FLV, WMV, M4V, 3GP\n" +
		"Send /start to restart."
	textWantStart = "Nothing in progress. Send /start to begin."

	textAlreadyProcessing = "Your previous video is still processing. Wait for it to finish."
	textNoBanner          = "No banner found for this session. Send /start to begin."
	textDownloadFailed    = "Failed to download the video. Please try again."
	textTranscodeTimeout  = "Processing timed out. Try again with a smaller file."
	textUploadFailed      = "Failed to upload the result. Please try again."
	textUnexpectedError   = "Something went wrong. Send /start to try again."
)

func (c *Coordinator) welcomeText() string {
	snap := c.stats.Snapshot()
	return fmt.Sprintf(
		"Video Banner Bot\n\n"+
			"Send a banner image, then a video: the banner is burned onto the video's first second.\n\n"+
			"Videos processed: %d\n"+
			"Uptime: %s\n"+
			"Largest file: %s\n\n"+
			"Send your banner to begin.",
		snap.Processed, format.Uptime(snap.Uptime), format.Bytes(snap.LargestFile))
}

// HelpText returns the /help reply.
func (c *Coordinator) HelpText() string {
	return "How it works:\n" +
		"1. /start\n" +
		"2. Send a banner image\n" +
		"3. Send a video\n" +
		"4. Receive the result\n\n" +
		"Formats:\n" +
		"Video: MP4, MOV, MKV, AVI, WEBM, FLV, WMV, M4V, 3GP\n" +
		"Banner: JPG, PNG, WEBP, GIF, BMP, TIFF\n\n" +
		"Notes:\n" +
		"- Send large videos as a file attachment\n" +
		"- The banner covers only the first second\n\n" +
		"Commands: /start /help /stats"
}

// StatsText returns the /stats reply.
func (c *Coordinator) StatsText() string {
	snap := c.stats.Snapshot()
	return fmt.Sprintf(
		"Statistics\n\n"+
			"Videos processed: %d\n"+
			"Average time: %s\n"+
			"Fastest: %s\n"+
			"Largest file: %s\n"+
			"Errors: %d\n"+
			"Uptime: %s",
		snap.Processed, format.Seconds(snap.Average), format.Seconds(snap.Fastest),
		format.Bytes(snap.LargestFile), snap.Errors, format.Uptime(snap.Uptime))
}

// SettingsText returns the settings button reply.
func (c *Coordinator) SettingsText() string {
	return fmt.Sprintf(
		"Settings\n\n"+
			"Max file size: %s\n"+
			"Document threshold: %s\n"+
			"Job timeout: %s\n"+
			"Progress step: %d%%",
		format.Bytes(c.cfg.MaxFileSize), format.Bytes(c.cfg.DocumentThreshold),
		c.cfg.ProcessingTimeout, c.cfg.ProgressStep)
}
