package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

var ErrProcessing = errors.New("image processing failed")

const (
	DefaultMaxDimension = 1920
	DefaultJPEGQuality  = 80
)

// Processor normalizes uploaded images: anything larger than the
// configured bounding box is scaled down to fit (aspect ratio kept,
// never upscaled) and the result is re-encoded as JPEG. It holds no
// state and is safe for concurrent use.
type Processor struct {
	maxDimension int
	quality      int
}

func NewProcessor(maxDimension, quality int) *Processor {
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultJPEGQuality
	}

	return &Processor{
		maxDimension: maxDimension,
		quality:      quality,
	}
}

func (p *Processor) Normalize(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrProcessing, err)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: empty image", ErrProcessing)
	}

	if width > p.maxDimension || height > p.maxDimension {
		scale := float64(p.maxDimension) / float64(width)
		if height > width {
			scale = float64(p.maxDimension) / float64(height)
		}
		dstW := int(float64(width) * scale)
		dstH := int(float64(height) * scale)
		if dstW < 1 {
			dstW = 1
		}
		if dstH < 1 {
			dstH = 1
		}

		dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var out bytes.Buffer
	if err := jpeg.Encode(&out, src, &jpeg.Options{Quality: p.quality}); err != nil {
		return nil, fmt.Errorf("%w: encode: %v", ErrProcessing, err)
	}

	return out.Bytes(), nil
}
