// Package clipboard moves PNG images between the drawing surface and the
// system clipboard.
package clipboard

import (
	"bytes"
	"errors"
	"image"
	"image/png"
)

// ErrEmpty is returned when the clipboard holds no image.
var ErrEmpty = errors.New("clipboard does not contain image data")

// WriteImage encodes img as PNG and publishes it to the clipboard.
func WriteImage(img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	return WritePNG(buf.Bytes())
}

// WritePNG publishes already encoded PNG data to the clipboard.
func WritePNG(data []byte) error {
	if len(data) == 0 {
		return ErrEmpty
	}
	return writePNG(data)
}

// ReadImage decodes the PNG image currently on the clipboard.
func ReadImage() (image.Image, error) {
	data, err := readPNG()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	return png.Decode(bytes.NewReader(data))
}
