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

package geometry

import "fmt"

// Size is a width and height. Units depend on context.
type Size struct {
	W float64
	H float64
}

func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.W, s.H)
}

// Valid returns true if both dimensions are positive.
func (s Size) Valid() bool {
	return s.W > 0 && s.H > 0
}

// Aspect returns the width divided by the height. A zero height is treated as
// an aspect ratio of one.
func (s Size) Aspect() float64 {
	if s.H == 0 {
		return 1
	}
	return s.W / s.H
}

// Rect is a rectangle with an origin and a size.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.X, r.Y, r.W, r.H)
}

// UnitRect covers the entirety of a normalised space.
var UnitRect = Rect{X: 0, Y: 0, W: 1, H: 1}

// ZoomMode specifies how the content is fitted to the viewport.
type ZoomMode int

// List of valid ZoomMode values.
const (
	// the entire canvas is visible and the aspect ratio is preserved
	FitCanvas ZoomMode = iota

	// the canvas fills the width of the viewport and the aspect ratio is
	// preserved. the top and bottom of the canvas may not be visible
	FitWidth
)

func (z ZoomMode) String() string {
	switch z {
	case FitCanvas:
		return "fit-canvas"
	case FitWidth:
		return "fit-width"
	}
	return "unknown zoom mode"
}

// ParseZoomMode converts a string to a ZoomMode.
func ParseZoomMode(s string) (ZoomMode, error) {
	switch s {
	case "fit-canvas":
		return FitCanvas, nil
	case "fit-width":
		return FitWidth, nil
	}
	return FitCanvas, fmt.Errorf("geometry: unrecognised zoom mode %q", s)
}

// Filter is the texture sampling filter used when drawing the frame.
type Filter int

// List of valid Filter values.
const (
	Linear Filter = iota
	Nearest
)

func (f Filter) String() string {
	switch f {
	case Linear:
		return "linear"
	case Nearest:
		return "nearest"
	}
	return "unknown filter"
}

// NextPowerOfTwo returns the smallest power of two that is greater than or
// equal to n. Values less than one return one.
func NextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
