// Package imaging compresses the data-URI images stored on menu documents
// and measures their size.
package imaging

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"math"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"menu-api/internal/logger"
)

const defaultPrefix = "data:image/jpeg;base64"

// MaxPixels bounds width*height of an image the codec will decode. Larger
// images are left as they are and judged by the size guard alone.
const MaxPixels = 40_000_000

var (
	errEmptyPayload  = errors.New("empty image payload")
	errTooManyPixels = errors.New("image dimensions over limit")
)

// Compress decodes a base64 image (raw or data URI), scales it down to
// p.MaxWidth when it is wider, and re-encodes it as JPEG at p.Quality.
//
// Compression is best effort: when the payload cannot be decoded or encoded
// the original input is returned unchanged with a nil error, so callers must
// not assume the result is smaller. A non-nil error is returned only when ctx
// is done or the decoder panics; routes treat that as fatal.
func Compress(ctx context.Context, input string, p Profile) (out string, err error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	defer func() {
		if r := recover(); r != nil {
			out = ""
			err = fmt.Errorf("imaging: %s decoder panic: %v", p.Name, r)
		}
	}()

	compressed, cerr := compress(input, p)
	if cerr != nil {
		logger.Get("app").WithFields(logrus.Fields{
			"profile": p.Name,
			"error":   cerr.Error(),
		}).Warn("image compression failed, keeping original")
		return input, nil
	}
	return compressed, nil
}

func compress(input string, p Profile) (string, error) {
	raw, err := decodePayload(payload(input))
	if err != nil {
		return "", err
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("decode image config: %w", err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return "", fmt.Errorf("%w: %dx%d", errTooManyPixels, cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	width := img.Bounds().Dx()
	if p.MaxWidth > 0 && width > p.MaxWidth {
		width = p.MaxWidth
	}
	img = flatten(img, width)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: clampQuality(p.Quality)}); err != nil {
		return "", fmt.Errorf("encode jpeg: %w", err)
	}

	return prefix(input) + "," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// payload returns the part after the first comma, or the whole input.
func payload(input string) string {
	if i := strings.IndexByte(input, ','); i >= 0 {
		return input[i+1:]
	}
	return input
}

func decodePayload(data string) ([]byte, error) {
	data = strings.TrimSpace(data)
	if data == "" {
		return nil, errEmptyPayload
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err == nil {
		return raw, nil
	}
	if raw, rawErr := base64.RawStdEncoding.DecodeString(data); rawErr == nil {
		return raw, nil
	}
	return nil, fmt.Errorf("decode base64: %w", err)
}

// prefix keeps the caller's data:image header so the UI renders the value
// as before; anything else gets a JPEG header.
func prefix(input string) string {
	i := strings.IndexByte(input, ',')
	if i < 0 || !strings.Contains(input[:i], "data:image/") {
		return defaultPrefix
	}
	header := input[:i]
	if !strings.Contains(header, "base64") {
		header += ";base64"
	}
	return header
}

// flatten draws src onto an opaque white canvas of the given width, keeping
// the aspect ratio. JPEG has no alpha channel.
func flatten(src image.Image, width int) image.Image {
	b := src.Bounds()
	height := b.Dy()
	if width != b.Dx() {
		height = int(math.Round(float64(b.Dy()) * float64(width) / float64(b.Dx())))
		if height < 1 {
			height = 1
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	if width == b.Dx() {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

func clampQuality(q int) int {
	switch {
	case q < 1:
		return 1
	case q > 100:
		return 100
	}
	return q
}
