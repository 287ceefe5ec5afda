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

package decoder

import (
	"math"

	"github.com/jetsetilly/crtcanvas/filter"
	"github.com/jetsetilly/crtcanvas/logger"
)

// TapLength is the number of taps in each FIR filter. The video shader samples
// the centre tap and eight taps either side of it.
const TapLength = 17

// the number of distinct taps in a symmetric filter of TapLength
const numUniqueTaps = TapLength/2 + 1

// sidelobe attenuation of the Chebyshev window, in decibels
const chebyshevSidelobe = 50

// the I axis of NTSC-YIQ has a wider bandwidth than the Q axis. the
// difference, as a fraction of the 14.31818MHz/4 colour subcarrier
const ntscYIQIShift = 0.6 / (14.31818 / 4)

// the smallest magnitude allowed for the distance between the black and white
// levels of a composite signal
const minLevelRange = 0.01

// Parameters are the values of a video configuration that affect the filter
// taps and the decode matrix.
type Parameters struct {
	Decoder      Standard
	LumaCutoff   float64
	ChromaCutoff float64
	BlackLevel   float64
	WhiteLevel   float64
	Contrast     float64
	Saturation   float64

	// hue is in turns. a value of 1.0 is a full rotation
	Hue float64
}

// Coefficients are the results of Build(). Luma and chroma taps are always of
// length TapLength.
type Coefficients struct {
	Luma    filter.Vector
	ChromaU filter.Vector
	ChromaV filter.Vector
	Matrix  Matrix3
}

// Uniforms are the Coefficients in the form expected by the video shader.
type Uniforms struct {
	// Taps[k] is the luma, chroma U and chroma V coefficient for the sample k
	// texels from the centre. Taps[0] is the centre tap
	Taps   [numUniqueTaps][3]float32
	Matrix [9]float32
}

// Uniforms converts the Coefficients for upload to the GPU. The taps are
// assumed to be symmetric and only the centre tap and the taps to its left
// are used.
func (co Coefficients) Uniforms() Uniforms {
	var u Uniforms
	centre := TapLength / 2
	for k := range u.Taps {
		i := centre - k
		u.Taps[k] = [3]float32{
			float32(co.Luma[i]),
			float32(co.ChromaU[i]),
			float32(co.ChromaV[i]),
		}
	}
	u.Matrix = co.Matrix.Float32()
	return u
}

// decode matrices take Y'PbPr (or the equivalent for the standard) to RGB
var (
	ypbprDecode = Matrix3{
		1, 1, 1,
		0, -0.344, 1.772,
		1.402, -0.714, 0,
	}

	ypbprEncode = Matrix3{
		0.299, -0.169, 0.5,
		0.587, -0.331, -0.419,
		0.114, 0.5, -0.081,
	}

	ntscDecode = Matrix3{
		1, 1, 1,
		0.955986, -0.272013, -1.106740,
		0.620825, -0.647204, 1.704230,
	}

	cxa2025asDecode = Matrix3{
		1, 1, 1,
		1.630, -0.378, -1.089,
		0.317, -0.466, 1.677,
	}

	palDecode = Matrix3{
		1, 1, 1,
		0, -0.394642, 2.032062,
		1.139883, -0.580622, 0,
	}

	// the NTSC demodulator produces the chroma axes in the opposite order
	axisSwap = Matrix3{
		1, 0, 0,
		0, 0, 1,
		0, 1, 0,
	}

	// monochrome frames are decoded with the chroma axis at its maximum so
	// that the hue and saturation controls can tint the image
	monochromeHue = Matrix3{
		1, 0, -0.5,
		0, 0, 0,
		0, 0, 0,
	}
)

type chromaFilter int

const (
	// chroma is filtered in the same way as luma
	chromaAsLuma chromaFilter = iota

	// both chroma axes share the same filter
	chromaShared

	// the second chroma axis has the wider bandwidth of the YIQ I axis
	chromaQuadrature
)

type standardSpec struct {
	decode Matrix3
	chroma chromaFilter

	// encode RGB input as Y'PbPr before decoding. for standards where the
	// frame is not a composite signal
	encode bool

	monochrome bool

	// scale by the inverse of the black to white level range
	levels bool
}

var standardSpecs = map[Standard]standardSpec{
	Monochrome: {
		decode:     ypbprDecode,
		chroma:     chromaAsLuma,
		encode:     true,
		monochrome: true,
	},
	RGB: {
		decode: ypbprDecode,
		chroma: chromaAsLuma,
		encode: true,
	},
	NTSCYIQ: {
		decode: ntscDecode.Mul(axisSwap),
		chroma: chromaQuadrature,
		levels: true,
	},
	NTSCYUV: {
		decode: ntscDecode.Mul(axisSwap),
		chroma: chromaShared,
		levels: true,
	},
	NTSCCXA2025AS: {
		decode: cxa2025asDecode.Mul(axisSwap),
		chroma: chromaShared,
		levels: true,
	},
	PAL: {
		decode: palDecode,
		chroma: chromaShared,
		levels: true,
	},
}

// Build calculates the filter taps and the decode matrix for the parameters.
// Degenerate parameters are clamped and Build never fails. An unknown
// standard is treated as RGB.
func Build(p Parameters) Coefficients {
	std, ok := standardSpecs[p.Decoder]
	if !ok {
		std = standardSpecs[RGB]
	}

	var co Coefficients

	w := normalize(filter.ChebyshevWindow(TapLength, chebyshevSidelobe))
	co.Luma = lowpass(w, p.LumaCutoff, 1)

	switch std.chroma {
	case chromaAsLuma:
		co.ChromaU = co.Luma.Scale(1)
		co.ChromaV = co.Luma.Scale(1)
	case chromaShared:
		co.ChromaU = lowpass(w, p.ChromaCutoff, 2)
		co.ChromaV = co.ChromaU.Scale(1)
	case chromaQuadrature:
		co.ChromaU = lowpass(w, p.ChromaCutoff, 2)
		co.ChromaV = lowpass(w, p.ChromaCutoff+ntscYIQIShift, 2)
	}

	m := Identity.Scale(p.Contrast)
	m = m.Mul(std.decode)
	m = m.Mul(hueRotation(2 * math.Pi * p.Hue))
	m = m.Mul(saturationGain(p.Saturation))
	if std.monochrome {
		m = m.Mul(monochromeHue)
	}
	if std.encode {
		m = m.Mul(ypbprEncode)
	}
	if std.levels {
		m = m.Scale(1 / LevelRange(p.BlackLevel, p.WhiteLevel))
	}
	co.Matrix = m

	return co
}

// LevelRange returns the distance between the black and white levels. A
// distance with a magnitude smaller than 0.01 is replaced by 0.01. Larger
// distances keep their sign so that an inverted signal remains inverted.
func LevelRange(black, white float64) float64 {
	r := white - black
	if math.Abs(r) < minLevelRange {
		return minLevelRange
	}
	return r
}

// lowpass applies a Lanczos window with cutoff to w, normalises the result
// and scales it by gain.
func lowpass(w filter.Vector, cutoff float64, gain float64) filter.Vector {
	v, err := w.Mul(filter.LanczosWindow(len(w), cutoff))
	if err != nil {
		logger.Log(logger.Allow, "decoder", err)
		return w.Scale(gain)
	}
	return normalize(v).Scale(gain)
}

// normalize the vector. if normalisation fails the vector is returned
// unchanged.
func normalize(v filter.Vector) filter.Vector {
	n, err := v.Normalize()
	if err != nil {
		logger.Log(logger.Allow, "decoder", err)
	}
	return n
}
