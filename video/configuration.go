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

	"github.com/jetsetilly/crtcanvas/decoder"
	"github.com/jetsetilly/crtcanvas/geometry"
	"github.com/jetsetilly/crtcanvas/hid"
)

// the default size of the view and canvas
const (
	defaultWidth  = 640
	defaultHeight = 480
)

// Configuration describes how frames are to be decoded and displayed. A
// Configuration is a plain value. Once posted it is never changed and a new
// configuration replaces it entirely.
type Configuration struct {
	ZoomMode    geometry.ZoomMode
	CaptureMode hid.CaptureMode

	// the preferred size of the window showing the canvas
	DefaultViewSize geometry.Size

	// the nominal size of the display. only the aspect ratio is important
	CanvasSize geometry.Size

	// the area of the canvas occupied by the frame, in normalised units
	ContentRect geometry.Rect

	Decoder decoder.Standard

	// cutoff frequencies of the luma and chroma filters, as a fraction of
	// the pixel frequency
	LumaCutoff   float64
	ChromaCutoff float64

	// frequency of the colour subcarrier in cycles per pixel and the phase
	// advance of the subcarrier on each line
	CarrierFrequency float64
	LinePhase        float64

	BlackLevel float64
	WhiteLevel float64
	Brightness float64
	Contrast   float64
	Saturation float64
	Hue        float64

	Barrel        float64
	ScanlineAlpha float64

	// strength of the falloff of brightness towards the edge of the screen.
	// a value of one is no falloff
	CenterLighting float64

	Persistence float64
}

// DefaultConfiguration returns a Configuration with neutral values.
func DefaultConfiguration() Configuration {
	return Configuration{
		ZoomMode:        geometry.FitCanvas,
		CaptureMode:     hid.NoCapture,
		DefaultViewSize: geometry.Size{W: defaultWidth, H: defaultHeight},
		CanvasSize:      geometry.Size{W: defaultWidth, H: defaultHeight},
		ContentRect:     geometry.UnitRect,
		Decoder:         decoder.RGB,
		LumaCutoff:      1.0,
		WhiteLevel:      1.0,
		Contrast:        1.0,
		Saturation:      1.0,
		CenterLighting:  1.0,
	}
}

func (cfg *Configuration) String() string {
	return fmt.Sprintf("%s %s canvas %s", cfg.Decoder, cfg.ZoomMode, cfg.CanvasSize)
}

// Validate returns an error if the configuration cannot be used. Values that
// only degrade the picture, such as equal black and white levels, are not
// errors.
func (cfg *Configuration) Validate() error {
	if !cfg.CanvasSize.Valid() {
		return fmt.Errorf("canvas size %s", cfg.CanvasSize)
	}
	if cfg.ContentRect.W <= 0 || cfg.ContentRect.H <= 0 {
		return fmt.Errorf("content rect %s", cfg.ContentRect)
	}
	return nil
}

// DecoderParameters returns the part of the configuration used to build the
// decoder filters and matrix.
func (cfg *Configuration) DecoderParameters() decoder.Parameters {
	return decoder.Parameters{
		Decoder:      cfg.Decoder,
		LumaCutoff:   cfg.LumaCutoff,
		ChromaCutoff: cfg.ChromaCutoff,
		BlackLevel:   cfg.BlackLevel,
		WhiteLevel:   cfg.WhiteLevel,
		Contrast:     cfg.Contrast,
		Saturation:   cfg.Saturation,
		Hue:          cfg.Hue,
	}
}
