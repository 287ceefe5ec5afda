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

// Package testpattern produces frames for the canvas when there is no
// emulated machine. Frames are either RGB or, for the composite decoders, a
// luminance frame containing an encoded composite signal.
package testpattern

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jetsetilly/crtcanvas/logger"
	"github.com/jetsetilly/crtcanvas/video"
)

// Pattern is the picture drawn by the Generator.
type Pattern int

// List of valid Pattern values.
const (
	Bars Pattern = iota
	Ramp
	Checker
)

func (p Pattern) String() string {
	switch p {
	case Bars:
		return "bars"
	case Ramp:
		return "ramp"
	case Checker:
		return "checker"
	}
	return "unknown pattern"
}

// Patterns returns every Pattern in order.
func Patterns() []Pattern {
	return []Pattern{Bars, Ramp, Checker}
}

// ParsePattern returns the Pattern with the name returned by String().
func ParsePattern(s string) (Pattern, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, p := range Patterns() {
		if p.String() == s {
			return p, nil
		}
	}
	return Bars, fmt.Errorf("testpattern: unrecognised pattern: %s", s)
}

// 75% colour bars in the standard order
var bars = [][3]float64{
	{0.75, 0.75, 0.75},
	{0.75, 0.75, 0.0},
	{0.0, 0.75, 0.75},
	{0.0, 0.75, 0.0},
	{0.75, 0.0, 0.75},
	{0.75, 0.0, 0.0},
	{0.0, 0.0, 0.75},
}

// Composite describes the signal encoded by the Generator when composite
// frames are required.
type Composite struct {
	// frequency of the subcarrier in cycles per pixel and the phase advance
	// in cycles on each line
	CarrierFrequency float64
	LinePhase        float64

	// the signal level of black and white
	BlackLevel float64
	WhiteLevel float64
}

// Generator creates frames of a Pattern. The pattern moves by one step for
// every frame.
type Generator struct {
	Pattern Pattern
	Width   int
	Height  int

	// if not nil, frames are encoded as a composite signal
	Composite *Composite

	// the number of frames generated
	frameNum int
}

// NewGenerator is the preferred method of initialisation for the Generator
// type.
func NewGenerator(pattern Pattern, width int, height int) *Generator {
	return &Generator{
		Pattern: pattern,
		Width:   width,
		Height:  height,
	}
}

// rgb returns the colour of the pattern at x, y in the range 0 to 1.
func (gen *Generator) rgb(x, y int) [3]float64 {
	switch gen.Pattern {
	case Ramp:
		v := float64((x+gen.frameNum)%gen.Width) / float64(max(gen.Width-1, 1))
		return [3]float64{v, v, v}
	case Checker:
		const size = 16
		if ((x+gen.frameNum)/size+y/size)%2 == 0 {
			return [3]float64{1, 1, 1}
		}
		return [3]float64{0, 0, 0}
	}

	// the bottom quarter of the bars is a moving luminance ramp
	if y >= gen.Height*3/4 {
		v := float64((x+gen.frameNum)%gen.Width) / float64(max(gen.Width-1, 1))
		return [3]float64{v, v, v}
	}
	return bars[x*len(bars)/gen.Width]
}

// Frame returns the next frame of the pattern.
func (gen *Generator) Frame() *video.Frame {
	defer func() {
		gen.frameNum++
	}()

	if gen.Composite != nil {
		return gen.composite()
	}

	fr := video.NewFrame(gen.Width, gen.Height, video.RGB)
	for y := range gen.Height {
		for x := range gen.Width {
			c := gen.rgb(x, y)
			fr.Set(x, y, level(c[0]), level(c[1]), level(c[2]))
		}
	}
	return fr
}

func level(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// composite encodes the pattern using the YUV colour space. the luma is
// added to the chroma modulated onto the subcarrier
func (gen *Generator) composite() *video.Frame {
	cmp := gen.Composite
	fr := video.NewFrame(gen.Width, gen.Height, video.Luminance)

	for y := range gen.Height {
		for x := range gen.Width {
			c := gen.rgb(x, y)

			luma := 0.299*c[0] + 0.587*c[1] + 0.114*c[2]
			u := 0.492 * (c[2] - luma)
			v := 0.877 * (c[0] - luma)

			phase := 2 * math.Pi * (cmp.CarrierFrequency*float64(x) + cmp.LinePhase*float64(y))
			s := luma + u*math.Sin(phase) + v*math.Cos(phase)
			s = cmp.BlackLevel + s*(cmp.WhiteLevel-cmp.BlackLevel)

			fr.Pixels[y*fr.Stride()+x] = level(s)
		}
	}

	return fr
}

// Run generates frames at the interval until the context is cancelled. Every
// frame is passed to the post function. An error from post is logged and does
// not stop the generator.
//
// Run blocks and so should be called in its own goroutine.
func (gen *Generator) Run(ctx context.Context, interval time.Duration, post func(*video.Frame) error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Logf(logger.Allow, "testpattern", "generating %s at %dx%d", gen.Pattern, gen.Width, gen.Height)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := post(gen.Frame())
			if err != nil {
				logger.Log(logger.Allow, "testpattern", err)
			}
		}
	}
}
