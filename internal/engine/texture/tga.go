package texture

import (
	"fmt"
	"image"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

// tgaReader walks TGA pixel data and writes BGR(A) pixels into an image in file order.
type tgaReader struct {
	img         *image.RGBA
	width       int
	height      int
	bpp         int
	topToBottom bool
	next        int // pixel index in file order
}

func (r *tgaReader) done() bool { return r.next >= r.width*r.height }

func (r *tgaReader) put(px []byte) {
	x := r.next % r.width
	y := r.next / r.width
	if !r.topToBottom {
		y = r.height - 1 - y
	}
	i := r.img.PixOffset(x, y)
	r.img.Pix[i+0] = px[2]
	r.img.Pix[i+1] = px[1]
	r.img.Pix[i+2] = px[0]
	r.img.Pix[i+3] = 255
	if r.bpp == 4 {
		r.img.Pix[i+3] = px[3]
	}
	r.next++
}

// DecodeTGA decodes uncompressed (type 2) and RLE (type 10) true-color TGA files.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("TGA data too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := int(data[2])
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bits := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped TGA not supported")
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("unsupported TGA type %d", imageType)
	}
	if bits != 24 && bits != 32 {
		return nil, fmt.Errorf("unsupported TGA bit depth %d", bits)
	}

	offset := 18 + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}
	pixels := data[offset:]

	r := &tgaReader{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		width:       width,
		height:      height,
		bpp:         bits / 8,
		topToBottom: descriptor&0x20 != 0,
	}

	if imageType == TGATypeUncompressed {
		if len(pixels) < width*height*r.bpp {
			return nil, fmt.Errorf("TGA pixel data truncated")
		}
		for i := 0; !r.done(); i += r.bpp {
			r.put(pixels[i : i+r.bpp])
		}
		return r.img, nil
	}

	// Packets: high bit set repeats one pixel, otherwise count raw pixels follow.
	i := 0
	for !r.done() && i < len(pixels) {
		packet := pixels[i]
		i++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			if i+r.bpp > len(pixels) {
				break
			}
			px := pixels[i : i+r.bpp]
			i += r.bpp
			for n := 0; n < count && !r.done(); n++ {
				r.put(px)
			}
			continue
		}
		for n := 0; n < count && !r.done() && i+r.bpp <= len(pixels); n++ {
			r.put(pixels[i : i+r.bpp])
			i += r.bpp
		}
	}

	return r.img, nil
}
