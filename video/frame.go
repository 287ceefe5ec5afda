// This file is part of crtcanvas.
//
// crtcanvas is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// crtcanvas is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with crtcanvas.  If not, see <https://www.gnu.org/licenses/>.

package video

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// PixelFormat describes the layout of each pixel in a Frame.
type PixelFormat int

// List of valid PixelFormat values.
const (
	Luminance PixelFormat = iota
	RGB
	RGBA
)

func (f PixelFormat) String() string {
	switch f {
	case Luminance:
		return "luminance"
	case RGB:
		return "rgb"
	case RGBA:
		return "rgba"
	}
	return "unknown pixel format"
}

// BytesPerPixel returns the number of bytes used by each pixel. Zero for an
// unknown format.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case Luminance:
		return 1
	case RGB:
		return 3
	case RGBA:
		return 4
	}
	return 0
}

// Frame is a buffer of pixels. Rows are packed with no padding and the first
// row is the top of the picture.
type Frame struct {
	Width  int
	Height int
	Format PixelFormat
	Pixels []uint8
}

// NewFrame allocates a frame of the specified size and format.
func NewFrame(width int, height int, format PixelFormat) *Frame {
	if width < 0 || height < 0 {
		width = 0
		height = 0
	}
	return &Frame{
		Width:  width,
		Height: height,
		Format: format,
		Pixels: make([]uint8, width*height*format.BytesPerPixel()),
	}
}

func (fr *Frame) String() string {
	return fmt.Sprintf("%dx%d %s", fr.Width, fr.Height, fr.Format)
}

// Stride returns the number of bytes in each row.
func (fr *Frame) Stride() int {
	return fr.Width * fr.Format.BytesPerPixel()
}

// Validate returns an error if the frame cannot be displayed. A frame with a
// zero dimension or with fewer pixels than its size requires is not valid.
func (fr *Frame) Validate() error {
	if fr.Width <= 0 || fr.Height <= 0 {
		return fmt.Errorf("frame size %dx%d", fr.Width, fr.Height)
	}
	if fr.Format.BytesPerPixel() == 0 {
		return fmt.Errorf("frame format %d", int(fr.Format))
	}
	if len(fr.Pixels) < fr.Stride()*fr.Height {
		return fmt.Errorf("frame pixels %d bytes, need %d", len(fr.Pixels), fr.Stride()*fr.Height)
	}
	return nil
}

// Clone returns a deep copy of the frame. Excess pixel data is not copied.
func (fr *Frame) Clone() *Frame {
	n := fr.Stride() * fr.Height
	if n > len(fr.Pixels) {
		n = len(fr.Pixels)
	}
	c := &Frame{
		Width:  fr.Width,
		Height: fr.Height,
		Format: fr.Format,
		Pixels: make([]uint8, n),
	}
	copy(c.Pixels, fr.Pixels[:n])
	return c
}

// Set the pixel at x, y. The colour is converted to the format of the frame.
// Luminance uses the Rec. 601 weights. Coordinates outside the frame are
// ignored.
func (fr *Frame) Set(x, y int, r, g, b uint8) {
	if x < 0 || y < 0 || x >= fr.Width || y >= fr.Height {
		return
	}
	i := y*fr.Stride() + x*fr.Format.BytesPerPixel()
	switch fr.Format {
	case Luminance:
		fr.Pixels[i] = uint8((299*int(r) + 587*int(g) + 114*int(b)) / 1000)
	case RGB:
		fr.Pixels[i] = r
		fr.Pixels[i+1] = g
		fr.Pixels[i+2] = b
	case RGBA:
		fr.Pixels[i] = r
		fr.Pixels[i+1] = g
		fr.Pixels[i+2] = b
		fr.Pixels[i+3] = 0xff
	}
}

// FrameFromImage converts an image to an RGBA frame. If width and height are
// positive the image is scaled to that size, otherwise the size of the image
// is used.
func FrameFromImage(img image.Image, width int, height int) *Frame {
	b := img.Bounds()
	if width <= 0 || height <= 0 {
		width = b.Dx()
		height = b.Dy()
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	if width == b.Dx() && height == b.Dy() {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	}

	return &Frame{
		Width:  width,
		Height: height,
		Format: RGBA,
		Pixels: dst.Pix,
	}
}
