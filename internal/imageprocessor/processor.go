package imageprocessor

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

// Profile and circle images are normalized on upload: decoded,
// downscaled when larger than the bound, re-encoded in their original
// format.

const (
	// MaxDimension bounds the longer image edge after normalization.
	MaxDimension = 1600

	defaultQuality = 85
)

type Processor struct {
	maxDimension int
	quality      int
}

func NewProcessor(maxDimension, quality int) *Processor {
	if maxDimension <= 0 {
		maxDimension = MaxDimension
	}
	if quality <= 0 || quality > 100 {
		quality = defaultQuality
	}
	return &Processor{
		maxDimension: maxDimension,
		quality:      quality,
	}
}

// Normalize decodes, downscales and re-encodes an uploaded image. The
// returned content type reflects the encoded format. Images already
// within bounds are re-encoded unchanged in size.
func (p *Processor) Normalize(reader io.Reader) (io.Reader, string, error) {
	img, format, err := image.Decode(reader)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	img = p.downscale(img)

	var buf bytes.Buffer
	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.quality})
	case "png":
		err = png.Encode(&buf, img)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	default:
		return nil, "", fmt.Errorf("unsupported image format: %s", format)
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode %s: %w", format, err)
	}

	return &buf, "image/" + format, nil
}

// downscale shrinks the image so the longer edge fits maxDimension,
// preserving the aspect ratio. Smaller images pass through.
func (p *Processor) downscale(img image.Image) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width <= p.maxDimension && height <= p.maxDimension {
		return img
	}

	newWidth := p.maxDimension
	newHeight := p.maxDimension
	if width > height {
		newHeight = height * p.maxDimension / width
	} else {
		newWidth = width * p.maxDimension / height
	}

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

// Dimensions returns an image's width and height.
func Dimensions(reader io.Reader) (width, height int, err error) {
	img, _, err := image.Decode(reader)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode image: %w", err)
	}
	bounds := img.Bounds()
	return bounds.Dx(), bounds.Dy(), nil
}
