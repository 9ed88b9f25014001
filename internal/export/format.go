// Package export encodes drawings into image files and delivers them.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format is an output encoding.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	GIF  Format = "gif"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
	PDF  Format = "pdf"
)

// ErrUnknownFormat is returned for format names that cannot be encoded.
var ErrUnknownFormat = errors.New("unknown export format")

var formats = []Format{PNG, JPEG, GIF, BMP, TIFF, PDF}

// Formats lists the supported formats, PNG first.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat resolves a format name or file extension. A leading dot is
// ignored and "jpg" and "tif" are accepted.
func ParseFormat(s string) (Format, error) {
	name := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".")
	switch name {
	case "jpg":
		return JPEG, nil
	case "tif":
		return TIFF, nil
	}
	for _, f := range formats {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownFormat, s)
}

// Ext is the file extension written for f, without the dot.
func (f Format) Ext() string {
	return string(f)
}

// MIME returns the media type for f.
func (f Format) MIME() string {
	if f == PDF {
		return "application/pdf"
	}
	return "image/" + string(f)
}

// Opaque reports whether f drops the alpha channel.
func (f Format) Opaque() bool {
	return f == JPEG
}

// Filename joins name and the format's extension.
func Filename(name string, f Format) string {
	return name + "." + f.Ext()
}

// Encode writes img to w in format f. Formats without alpha are flattened
// onto white.
func Encode(w io.Writer, img image.Image, f Format) error {
	var err error
	switch f {
	case PNG:
		err = png.Encode(w, img)
	case JPEG:
		err = jpeg.Encode(w, Flatten(img, color.White), &jpeg.Options{Quality: 92})
	case GIF:
		err = gif.Encode(w, img, &gif.Options{NumColors: 256, Drawer: draw.FloydSteinberg})
	case BMP:
		err = bmp.Encode(w, img)
	case TIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	case PDF:
		err = encodePDF(w, img)
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, string(f))
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", f, err)
	}
	return nil
}

// Flatten composites img over a solid background.
func Flatten(img image.Image, bg color.Color) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Over)
	return out
}

// encodePDF places the drawing as a PNG on a single page sized to it, one
// point per pixel.
func encodePDF(w io.Writer, img image.Image) error {
	var raster bytes.Buffer
	if err := png.Encode(&raster, img); err != nil {
		return err
	}
	size := img.Bounds().Size()
	wd, ht := float64(size.X), float64(size.Y)
	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: wd, Ht: ht},
	})
	doc.SetCreator("doodle", true)
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader("drawing", opts, &raster)
	doc.ImageOptions("drawing", 0, 0, wd, ht, false, opts, 0, "")
	return doc.Output(w)
}
