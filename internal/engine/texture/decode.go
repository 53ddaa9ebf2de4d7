// Package texture decodes image files into RGBA pixels ready for GL upload.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"path"
	"strings"

	"github.com/h2non/filetype"
	"golang.org/x/image/bmp"
)

// ErrUnsupported is returned for image formats the decoder does not handle.
var ErrUnsupported = errors.New("unsupported image format")

// Format is a detected image format.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpg"
	FormatBMP  Format = "bmp"
	FormatTGA  Format = "tga"
)

// Detect sniffs the format from the file content. TGA has no magic number
// (its header can even look like a Windows cursor), so a .tga extension wins.
func Detect(name string, data []byte) (Format, error) {
	if strings.EqualFold(path.Ext(name), ".tga") {
		return FormatTGA, nil
	}

	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return "", fmt.Errorf("%w: %s", ErrUnsupported, name)
	}
	switch kind.Extension {
	case "png":
		return FormatPNG, nil
	case "jpg":
		return FormatJPEG, nil
	case "bmp":
		return FormatBMP, nil
	}
	return "", fmt.Errorf("%w: %s (%s)", ErrUnsupported, name, kind.MIME.Value)
}

// Decode decodes data into an RGBA image.
func Decode(name string, data []byte) (*image.RGBA, error) {
	format, err := Detect(name, data)
	if err != nil {
		return nil, err
	}

	var img image.Image
	switch format {
	case FormatPNG:
		img, err = png.Decode(bytes.NewReader(data))
	case FormatJPEG:
		img, err = jpeg.Decode(bytes.NewReader(data))
	case FormatBMP:
		img, err = bmp.Decode(bytes.NewReader(data))
	case FormatTGA:
		img, err = DecodeTGA(data)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s as %s: %w", name, format, err)
	}
	return ToRGBA(img), nil
}

// ToRGBA converts any image.Image to *image.RGBA with its origin at (0, 0).
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// FlipVertical returns a copy of img with rows in reverse order.
func FlipVertical(img *image.RGBA) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(b)
	rowSize := b.Dx() * 4
	for y := 0; y < b.Dy(); y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+rowSize]
		dst := out.Pix[(b.Dy()-1-y)*out.Stride:]
		copy(dst[:rowSize], src)
	}
	return out
}
