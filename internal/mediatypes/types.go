// Package mediatypes classifies inbound payloads as banner images or videos.
package mediatypes

import (
	"path/filepath"
	"strings"
)

// ImageMimeTypes maps MIME types to whether they are accepted banner formats.
var ImageMimeTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/webp":    true,
	"image/gif":     true,
	"image/bmp":     true,
	"image/tiff":    true,
	"image/svg+xml": true,
	"image/heic":    true,
}

// VideoMimeTypes maps MIME types to whether they are accepted video formats.
var VideoMimeTypes = map[string]bool{
	"video/mp4":                true,
	"video/quicktime":          true,
	"video/x-msvideo":          true,
	"video/x-matroska":         true,
	"video/webm":               true,
	"video/x-flv":              true,
	"video/x-ms-wmv":           true,
	"video/mpeg":               true,
	"video/mp4v-es":            true,
	"video/3gpp":               true,
	"application/octet-stream": true,
}

// ImageExtensions maps file extensions to whether they are accepted banner formats.
var ImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
	".svg":  true,
	".heic": true,
}

// VideoExtensions maps file extensions to whether they are accepted video formats.
var VideoExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".mkv":  true,
	".avi":  true,
	".webm": true,
	".flv":  true,
	".wmv":  true,
	".mpeg": true,
	".m4v":  true,
	".3gp":  true,
}

// IsImage reports whether the MIME type or filename looks like a supported
// banner image. Files with neither hint are accepted and left for the
// decoder to reject.
func IsImage(mimeType, fileName string) bool {
	if mimeType != "" {
		return ImageMimeTypes[strings.ToLower(mimeType)]
	}
	if fileName != "" {
		return ImageExtensions[strings.ToLower(filepath.Ext(fileName))]
	}
	return true
}

// IsVideo reports whether the MIME type or filename looks like a supported
// video. Files with neither hint are accepted and left for ffmpeg to reject.
func IsVideo(mimeType, fileName string) bool {
	if mimeType != "" {
		return VideoMimeTypes[strings.ToLower(mimeType)]
	}
	if fileName != "" {
		return VideoExtensions[strings.ToLower(filepath.Ext(fileName))]
	}
	return true
}
