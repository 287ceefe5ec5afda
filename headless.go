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

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jetsetilly/crtcanvas/canvas"
	"github.com/jetsetilly/crtcanvas/geometry"
	"github.com/jetsetilly/crtcanvas/gpu"
	"github.com/jetsetilly/crtcanvas/modalflag"
	"github.com/jetsetilly/crtcanvas/video"
)

func headless(md *modalflag.Modes) error {
	md.NewMode()

	fl := addSourceFlags(md)
	frames := md.AddInt("frames", 60, "number of frames to post to the canvas")
	shaders := md.AddBool("shaders", true, "apply CRT shader effects")
	viewW := md.AddInt("viewwidth", 1280, "width of the viewport")
	viewH := md.AddInt("viewheight", 960, "height of the viewport")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	_, cfg, err := fl.configuration()
	if err != nil {
		return err
	}

	frame, err := fl.source(cfg)
	if err != nil {
		return err
	}

	viewport := geometry.Size{W: float64(*viewW), H: float64(*viewH)}
	return runHeadless(os.Stdout, gpu.NewHeadless(*shaders), cfg, frame, *frames, viewport)
}

// runHeadless posts frames to a canvas using the backend and updates the
// canvas after every frame. A summary of the canvas statistics is written to
// output.
func runHeadless(output io.Writer, backend *gpu.Headless, cfg video.Configuration, frame func() *video.Frame, frames int, viewport geometry.Size) error {
	mc := &machine{}
	cv := canvas.NewCanvas(backend, mc, mc)

	err := cv.Initialize()
	if err != nil {
		return err
	}
	defer cv.Shutdown()

	err = cv.PostConfiguration(&cfg)
	if err != nil {
		return err
	}

	startTime := time.Now()

	for range frames {
		err = cv.PostFrame(frame())
		if err != nil {
			return err
		}
		cv.Update(viewport.W, viewport.H, false)
	}

	elapsed := time.Since(startTime)

	stats := cv.Stats()
	fmt.Fprintf(output, "decoder: %s\n", cfg.Decoder)
	fmt.Fprintf(output, "frames: %d posted, %d dropped, %d drawn\n",
		stats.Exchange.FramesPosted, stats.Exchange.FramesDropped, stats.Draws)
	fmt.Fprintf(output, "shader passes: %d\n", len(backend.Processes))
	if frames > 0 {
		fmt.Fprintf(output, "time per frame: %s\n", elapsed/time.Duration(frames))
	}

	return nil
}
