package recognize

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
)

// ErrDecode indicates an image in an unsupported or corrupt format.
var ErrDecode = errors.New("recognize: cannot decode line image")

// PrepareLine decodes a PNG, JPEG, TIFF or BMP line image and returns it as
// grayscale PNG, upscaled (aspect ratio kept) to at least minHeight pixels
// when it is shorter. Recognizers lose accuracy on very small glyphs.
func PrepareLine(data []byte, minHeight int) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: empty %s image", ErrDecode, format)
	}
	w, h := b.Dx(), b.Dy()
	if h < minHeight {
		w = (w*minHeight + h/2) / h
		h = minHeight
	}
	dst := image.NewGray(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	}
	var buf bytes.Buffer
	if err = png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("recognize: encode line: %w", err)
	}
	return buf.Bytes(), nil
}
