// Package texture decodes glTF images and uploads them as OpenGL textures.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Decode decodes encoded image bytes into NRGBA. mimeType is only used in
// error messages; the format is sniffed from the data.
func Decode(data []byte, mimeType string) (*image.NRGBA, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("texture: empty %s image", mimeType)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", mimeType, err)
	}
	return ToNRGBA(img), nil
}

// ToNRGBA converts any image to non-premultiplied RGBA with its origin at (0, 0).
func ToNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// Placeholder returns a 1x1 white image, used when a texture fails to decode
// so the material's base color still shows.
func Placeholder() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	copy(img.Pix, []byte{255, 255, 255, 255})
	return img
}
