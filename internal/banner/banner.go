// Package banner validates a downloaded overlay image before transcoding.
//
// ffmpeg consumes JPEG and PNG directly; anything else that still decodes
// (webp, gif, bmp, tiff) is re-encoded to JPEG so the overlay filter always
// gets a format it understands.
package banner

import (
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"

	// Register decoders beyond the stdlib set for banner preflight.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// Info describes a validated banner ready for the transcoder.
type Info struct {
	// Path is the file ffmpeg should read. It differs from the downloaded
	// path when the banner was re-encoded.
	Path   string
	Width  int
	Height int
	Format string
}

const jpegQuality = 90

// Prepare decodes the downloaded banner, rejecting files that are not
// images, and re-encodes non-JPEG/PNG formats to a sibling JPEG file.
// When re-encoding happens the returned Path is a new file the caller owns.
func Prepare(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("failed to open banner: %w", err)
	}
	defer f.Close()

	img, formatName, err := image.Decode(f)
	if err != nil {
		return Info{}, fmt.Errorf("banner is not a decodable image: %w", err)
	}

	bounds := img.Bounds()
	info := Info{
		Path:   path,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Format: formatName,
	}

	if formatName == "jpeg" || formatName == "png" {
		return info, nil
	}

	converted := path + ".jpg"
	if err := imaging.Save(img, converted, imaging.JPEGQuality(jpegQuality)); err != nil {
		return Info{}, fmt.Errorf("failed to convert banner to jpeg: %w", err)
	}
	info.Path = converted
	return info, nil
}
