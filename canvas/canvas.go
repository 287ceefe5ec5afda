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

package canvas

import (
	"sync/atomic"

	"github.com/jetsetilly/crtcanvas/curated"
	"github.com/jetsetilly/crtcanvas/exchange"
	"github.com/jetsetilly/crtcanvas/geometry"
	"github.com/jetsetilly/crtcanvas/gpu"
	"github.com/jetsetilly/crtcanvas/hid"
	"github.com/jetsetilly/crtcanvas/logger"
	"github.com/jetsetilly/crtcanvas/video"
)

// Sentinel error patterns.
const (
	InvalidArgument = "canvas: invalid argument: %v"
	InvalidState    = "canvas: invalid state: %v"
)

// Machine is implemented by the emulated machine. It provides the clipboard
// for the canvas.
type Machine interface {
	// Copy returns the text to be placed on the host clipboard. The boolean is
	// false if the machine has nothing to copy.
	Copy() (string, bool)

	// Paste sends text from the host clipboard to the machine. Returns false if
	// the text was not accepted.
	Paste(text string) bool
}

// Stats are the counters of the canvas.
type Stats struct {
	Exchange exchange.Stats

	// the number of calls to Update() and the number of those that resulted in
	// a draw
	Updates int
	Draws   int
}

// Canvas is the core of the display. Frames and configurations can be posted
// from any goroutine. Every other function must be called from the thread
// that owns the GPU context.
type Canvas struct {
	exchange *exchange.Exchange
	pipeline *gpu.Pipeline
	hid      *hid.Controller
	machine  Machine

	// capture mode of the most recently posted configuration, plus one. zero
	// when there is nothing to apply
	pendingCapture atomic.Int32

	initialised bool
	shutdown    bool
	effects     bool

	viewport geometry.Size
	cfg      video.Configuration

	updates int
	draws   int
}

// NewCanvas is the preferred method of initialisation for the Canvas type.
// The listener and machine may be nil. Both must outlive the canvas.
func NewCanvas(backend gpu.Backend, listener hid.Listener, machine Machine) *Canvas {
	return &Canvas{
		exchange: exchange.NewExchange(),
		pipeline: gpu.NewPipeline(backend),
		hid:      hid.NewController(listener),
		machine:  machine,
		effects:  true,
		cfg:      video.DefaultConfiguration(),
	}
}

// Initialize the GPU resources of the canvas. Must be called from the thread
// that owns the GPU context.
func (c *Canvas) Initialize() error {
	if c.shutdown {
		return curated.Errorf(InvalidState, "canvas has been shutdown")
	}
	if c.initialised {
		return curated.Errorf(InvalidState, "canvas is already initialised")
	}

	err := c.pipeline.Start(c.effects)
	if err != nil {
		return err
	}
	c.initialised = true

	logger.Log(logger.Allow, "canvas", "initialised")

	return nil
}

// Shutdown releases the GPU resources of the canvas. It is an error to call
// Shutdown() more than once or before Initialize().
func (c *Canvas) Shutdown() error {
	if !c.initialised {
		return curated.Errorf(InvalidState, "canvas is not initialised")
	}
	c.initialised = false
	c.shutdown = true

	c.pipeline.Destroy()

	logger.Log(logger.Allow, "canvas", "shutdown")

	return nil
}

// SetShaderEffects enables or disables the GPU programs. The configuration is
// applied again at the next Update().
func (c *Canvas) SetShaderEffects(enabled bool) error {
	c.effects = enabled
	defer c.exchange.Invalidate()

	if !c.initialised {
		return nil
	}
	return c.pipeline.SetEffects(enabled)
}

// PostConfiguration sets the configuration used from the next Update(). Safe
// to call from any goroutine.
//
// The capture mode of the configuration is applied before the next input
// event, call to Capture() or Update(), whichever is first.
func (c *Canvas) PostConfiguration(cfg *video.Configuration) error {
	if cfg == nil {
		return curated.Errorf(InvalidArgument, "nil configuration")
	}
	if err := c.exchange.PostConfiguration(cfg); err != nil {
		return curated.Errorf(InvalidArgument, err)
	}
	c.pendingCapture.Store(int32(cfg.CaptureMode) + 1)
	return nil
}

// PostFrame sets the frame drawn by the next Update(). The frame is copied and
// can be reused by the caller once the function returns. Safe to call from
// any goroutine.
func (c *Canvas) PostFrame(fr *video.Frame) error {
	if fr == nil {
		return curated.Errorf(InvalidArgument, "nil frame")
	}
	if err := c.exchange.PostFrame(fr); err != nil {
		return curated.Errorf(InvalidArgument, err)
	}
	return nil
}

// Update the canvas for a viewport of the specified size. Any configuration or
// frame posted since the previous update is applied. The canvas is drawn if
// anything changed or if force is true.
//
// Returns true if the canvas was drawn, in which case the caller should
// present the drawing.
func (c *Canvas) Update(width float64, height float64, force bool) bool {
	if !c.initialised {
		return false
	}
	c.updates++

	ctl := c.input()
	p := c.exchange.Drain()
	draw := force

	vp := geometry.Size{W: width, H: height}
	if vp != c.viewport {
		c.viewport = vp
		draw = true
	}

	if p.Config != nil {
		c.cfg = *p.Config
		ctl.SetCaptureMode(c.cfg.CaptureMode)
		c.pipeline.Configure(c.cfg)
		draw = true
	}

	if p.Frame != nil {
		err := c.pipeline.UploadFrame(p.Frame)
		if err != nil {
			logger.Log(logger.Allow, "canvas", err)
		}
		draw = true
	}

	if draw {
		c.pipeline.Draw(c.viewport)
		c.draws++
	}

	return draw
}

// DefaultViewSize returns the default view size of the most recently applied
// configuration.
func (c *Canvas) DefaultViewSize() geometry.Size {
	return c.cfg.DefaultViewSize
}

// Configuration returns the most recently applied configuration.
func (c *Canvas) Configuration() video.Configuration {
	return c.cfg
}

// Capture returns the current capture state.
func (c *Canvas) Capture() hid.Capture {
	return c.input().Capture()
}

// Copy asks the machine for text to copy to the host clipboard.
func (c *Canvas) Copy() (string, bool) {
	if c.machine == nil {
		return "", false
	}
	return c.machine.Copy()
}

// Paste sends text from the host clipboard to the machine.
func (c *Canvas) Paste(text string) bool {
	if c.machine == nil {
		return false
	}
	return c.machine.Paste(text)
}

// Stats returns the counters of the canvas and of the underlying exchange.
func (c *Canvas) Stats() Stats {
	return Stats{
		Exchange: c.exchange.Stats(),
		Updates:  c.updates,
		Draws:    c.draws,
	}
}
