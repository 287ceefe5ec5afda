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

// the number of viewport pixels per scanline below which scanlines are not
// drawn and above which they are drawn at full strength. between the two
// limits the strength is ramped linearly
const (
	scanlineFadeStart = 2.0
	scanlineFadeEnd   = 2.5
)

// Input is everything needed to calculate the geometry of a draw.
type Input struct {
	// size of the drawable surface in pixels
	Viewport Size

	// size of the frame and the texture it is stored in. the texture is
	// usually larger than the frame
	Frame   Size
	Texture Size

	// the nominal size of the display and the region of it occupied by the
	// frame, in normalised units
	Canvas      Size
	ContentRect Rect

	Zoom ZoomMode

	// the configured strength of the scanlines
	ScanlineAlpha float64
}

// Result of the Calculate() function.
type Result struct {
	// the region of the texture that contains the frame, in texture
	// coordinates
	TexRect Rect

	// where to draw the frame, in normalised device coordinates. the full
	// viewport is (-1,-1 2x2)
	ViewRect Rect

	Filter Filter

	// the strength of the scanlines after fading for small viewports
	ScanlineAlpha float64

	// the centre of the barrel distortion in texture coordinates
	BarrelCenter [2]float64
}

// divisor returns v or, if v is zero, one.
func divisor(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

// Calculate the geometry of a draw. The results are always finite, even with
// zero sized inputs.
func Calculate(in Input) Result {
	var res Result

	res.TexRect = Rect{
		W: in.Frame.W / divisor(in.Texture.W),
		H: in.Frame.H / divisor(in.Texture.H),
	}

	// map content rect from [0,1] to [-1,1]
	view := Rect{
		X: 2*in.ContentRect.X - 1,
		Y: 2*in.ContentRect.Y - 1,
		W: 2 * in.ContentRect.W,
		H: 2 * in.ContentRect.H,
	}

	ratio := in.Viewport.Aspect() / in.Canvas.Aspect()

	switch in.Zoom {
	case FitWidth:
		// the bottom edge stays where it is
		view.H *= ratio
	default:
		if ratio > 1 {
			view.X /= ratio
			view.W /= ratio
		} else {
			view.Y *= ratio
			view.H *= ratio
		}
	}
	res.ViewRect = view

	// the frame is drawn at exactly one texel per pixel and at the origin of
	// the viewport. the comparison is exact on purpose
	if int(in.Viewport.W*view.W/2) == int(in.Frame.W) && view.X == -1 && view.Y == -1 {
		res.Filter = Nearest
	} else {
		res.Filter = Linear
	}

	// barrel distortion is centred on the middle of the canvas. the content
	// rect may not be centred so the centre is expressed relative to the
	// content and then converted to texture coordinates
	res.BarrelCenter = [2]float64{
		(0.5 - in.ContentRect.X) / divisor(in.ContentRect.W) * res.TexRect.W,
		(0.5 - in.ContentRect.Y) / divisor(in.ContentRect.H) * res.TexRect.H,
	}

	scanlineHeight := in.Viewport.H / divisor(in.Frame.H) * in.ContentRect.H
	res.ScanlineAlpha = in.ScanlineAlpha * ScanlineFade(scanlineHeight)

	return res
}

// ScanlineFade returns the fraction of the scanline strength to use for
// scanlines that are pixelsPerLine high.
func ScanlineFade(pixelsPerLine float64) float64 {
	switch {
	case pixelsPerLine >= scanlineFadeEnd:
		return 1
	case pixelsPerLine < scanlineFadeStart:
		return 0
	}
	return (pixelsPerLine - scanlineFadeStart) / (scanlineFadeEnd - scanlineFadeStart)
}
