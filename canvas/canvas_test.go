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

package canvas_test

import (
	"testing"

	"github.com/jetsetilly/crtcanvas/canvas"
	"github.com/jetsetilly/crtcanvas/curated"
	"github.com/jetsetilly/crtcanvas/decoder"
	"github.com/jetsetilly/crtcanvas/exchange"
	"github.com/jetsetilly/crtcanvas/geometry"
	"github.com/jetsetilly/crtcanvas/gpu"
	"github.com/jetsetilly/crtcanvas/hid"
	"github.com/jetsetilly/crtcanvas/test"
	"github.com/jetsetilly/crtcanvas/video"
)

type clipboard struct {
	copied string
	pasted []string
}

func (cb *clipboard) Copy() (string, bool) {
	return cb.copied, cb.copied != ""
}

func (cb *clipboard) Paste(text string) bool {
	cb.pasted = append(cb.pasted, text)
	return true
}

type captures struct {
	changes []hid.Capture
}

func (r *captures) Notify(_ hid.Notification) {}

func (r *captures) CaptureChanged(c hid.Capture) {
	r.changes = append(r.changes, c)
}

func TestLifecycle(t *testing.T) {
	hl := gpu.NewHeadless(true)
	cv := canvas.NewCanvas(hl, nil, nil)

	// nothing happens before initialisation
	test.ExpectFailure(t, cv.Update(640, 480, true))
	err := cv.Shutdown()
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, canvas.InvalidState))

	test.DemandSuccess(t, cv.Initialize())
	test.ExpectSuccess(t, hl.Started)
	test.ExpectFailure(t, cv.Initialize())

	test.ExpectSuccess(t, cv.Shutdown())
	test.ExpectSuccess(t, hl.Destroyed)

	// shutdown happens exactly once and the canvas cannot be reused
	test.ExpectFailure(t, cv.Shutdown())
	test.ExpectFailure(t, cv.Initialize())
	test.ExpectFailure(t, cv.Update(640, 480, true))
}

func TestUpdate(t *testing.T) {
	hl := gpu.NewHeadless(true)
	cv := canvas.NewCanvas(hl, nil, nil)
	test.DemandSuccess(t, cv.Initialize())

	cfg := video.DefaultConfiguration()
	cfg.Decoder = decoder.NTSCYIQ
	cfg.CarrierFrequency = 0.25
	test.DemandSuccess(t, cv.PostConfiguration(&cfg))

	fr := video.NewFrame(320, 240, video.RGB)
	for i := range fr.Pixels {
		fr.Pixels[i] = uint8(i)
	}
	test.DemandSuccess(t, cv.PostFrame(fr))

	// the first update applies the configuration and the frame
	test.ExpectSuccess(t, cv.Update(640, 480, false))
	test.DemandEquality(t, len(hl.Draws), 1)
	w, h := cv.Configuration().CanvasSize.W, cv.Configuration().CanvasSize.H
	test.ExpectEquality(t, w, 640.0)
	test.ExpectEquality(t, h, 480.0)
	test.ExpectEquality(t, cv.Configuration().Decoder, decoder.NTSCYIQ)

	// the frame has been demodulated and decoded
	test.DemandEquality(t, len(hl.Processes), 2)
	test.ExpectEquality(t, hl.Processes[0].Program, hl.ProgramByName("ntsc"))
	test.ExpectEquality(t, hl.Processes[1].Program, hl.ProgramByName("video"))
	test.ExpectEquality(t, hl.Draws[0].Texture, hl.Processes[1].Dst)
	test.ExpectEquality(t, hl.Draws[0].Program, hl.ProgramByName("screen"))
	test.ExpectEquality(t, hl.Draws[0].Viewport, geometry.Size{W: 640, H: 480})

	// textures are rounded up to powers of two
	tw, th := 0, 0
	for _, tex := range hl.Textures {
		tw, th = tex.Width, tex.Height
	}
	test.ExpectEquality(t, tw, 512)
	test.ExpectEquality(t, th, 256)

	// nothing has changed so there is no draw
	test.ExpectFailure(t, cv.Update(640, 480, false))
	test.ExpectEquality(t, len(hl.Draws), 1)

	// forced draw
	test.ExpectSuccess(t, cv.Update(640, 480, true))
	test.ExpectEquality(t, len(hl.Draws), 2)

	// viewport change
	test.ExpectSuccess(t, cv.Update(800, 600, false))
	test.ExpectEquality(t, len(hl.Draws), 3)
	test.ExpectFailure(t, cv.Update(800, 600, false))

	// a second frame is drawn once and is uploaded to the other frame slot
	fr = video.NewFrame(320, 240, video.RGB)
	fr.Set(10, 10, 255, 255, 255)
	test.DemandSuccess(t, cv.PostFrame(fr))
	test.ExpectSuccess(t, cv.Update(800, 600, false))
	test.ExpectEquality(t, len(hl.Draws), 4)
	test.DemandEquality(t, len(hl.Processes), 4)
	test.ExpectInequality(t, hl.Processes[2].Src[0], hl.Processes[0].Src[0])
	test.ExpectFailure(t, cv.Update(800, 600, false))
	test.ExpectEquality(t, len(hl.Draws), 4)

	st := cv.Stats()
	test.ExpectEquality(t, st.Updates, 7)
	test.ExpectEquality(t, st.Draws, 4)
	test.ExpectEquality(t, st.Exchange.FramesDrained, 2)
	test.ExpectEquality(t, st.Exchange.ConfigurationsPosted, 1)
}

func TestLatestFrame(t *testing.T) {
	hl := gpu.NewHeadless(false)
	cv := canvas.NewCanvas(hl, nil, nil)
	test.DemandSuccess(t, cv.Initialize())

	a := video.NewFrame(100, 100, video.RGB)
	b := video.NewFrame(200, 150, video.RGB)
	test.DemandSuccess(t, cv.PostFrame(a))
	test.DemandSuccess(t, cv.PostFrame(b))

	test.ExpectSuccess(t, cv.Update(640, 480, false))

	var uploaded *gpu.HeadlessTexture
	for _, tex := range hl.Textures {
		if tex.Uploads > 0 {
			uploaded = tex
		}
	}
	if uploaded == nil {
		t.Fatalf("no frame uploaded")
	}
	test.ExpectEquality(t, uploaded.Uploads, 1)
	test.ExpectEquality(t, uploaded.FrameWidth, 200)
	test.ExpectEquality(t, uploaded.FrameHeight, 150)

	test.ExpectEquality(t, cv.Stats().Exchange.FramesDropped, 1)
}

func TestInvalidArguments(t *testing.T) {
	hl := gpu.NewHeadless(true)
	cv := canvas.NewCanvas(hl, nil, nil)
	test.DemandSuccess(t, cv.Initialize())
	test.ExpectSuccess(t, cv.Update(640, 480, false))

	err := cv.PostFrame(nil)
	test.ExpectSuccess(t, curated.Is(err, canvas.InvalidArgument))

	err = cv.PostFrame(video.NewFrame(0, 240, video.RGB))
	test.ExpectSuccess(t, curated.Is(err, canvas.InvalidArgument))
	test.ExpectSuccess(t, curated.Has(err, exchange.InvalidArgument))

	err = cv.PostConfiguration(nil)
	test.ExpectSuccess(t, curated.Is(err, canvas.InvalidArgument))

	cfg := video.DefaultConfiguration()
	cfg.CanvasSize = geometry.Size{}
	err = cv.PostConfiguration(&cfg)
	test.ExpectSuccess(t, curated.Is(err, canvas.InvalidArgument))

	// rejected posts have no effect
	test.ExpectFailure(t, cv.Update(640, 480, false))
	test.ExpectEquality(t, cv.Stats().Exchange.ConfigurationsPosted, 0)
	test.ExpectEquality(t, cv.Stats().Exchange.FramesPosted, 0)
}

func TestShaderEffects(t *testing.T) {
	hl := gpu.NewHeadless(true)
	cv := canvas.NewCanvas(hl, nil, nil)
	test.DemandSuccess(t, cv.Initialize())
	test.ExpectSuccess(t, cv.Update(640, 480, false))
	test.ExpectEquality(t, len(hl.Programs), int(gpu.NumPrograms))

	test.ExpectSuccess(t, cv.SetShaderEffects(false))
	test.ExpectEquality(t, len(hl.Programs), 0)

	// the configuration is applied again so the next update draws
	test.ExpectSuccess(t, cv.Update(640, 480, false))
	test.ExpectEquality(t, hl.Draws[len(hl.Draws)-1].Program, gpu.Program(0))

	test.ExpectSuccess(t, cv.SetShaderEffects(true))
	test.ExpectEquality(t, len(hl.Programs), int(gpu.NumPrograms))
	test.ExpectSuccess(t, cv.Update(640, 480, false))
	test.ExpectEquality(t, hl.Draws[len(hl.Draws)-1].Program, hl.ProgramByName("screen"))
}

func TestCaptureModeFromConfiguration(t *testing.T) {
	hl := gpu.NewHeadless(true)
	listener := &captures{}
	cv := canvas.NewCanvas(hl, listener, nil)
	test.DemandSuccess(t, cv.Initialize())

	cv.OnMouseEnter()

	cfg := video.DefaultConfiguration()
	cfg.CaptureMode = hid.CaptureOnEnter
	test.DemandSuccess(t, cv.PostConfiguration(&cfg))

	// the capture mode is applied before anything else happens on the UI
	// thread and does not wait for the update
	test.ExpectEquality(t, cv.Capture(), hid.CaptureHide)
	test.DemandEquality(t, len(listener.changes), 1)
	test.ExpectEquality(t, listener.changes[0], hid.CaptureHide)
	test.ExpectSuccess(t, cv.Update(640, 480, false))
	test.ExpectEquality(t, cv.Capture(), hid.CaptureHide)
	test.ExpectEquality(t, len(listener.changes), 1)

	// posting the same mode again does not change the capture
	cv.OnMouseExit()
	cv.OnMouseEnter()
	test.DemandSuccess(t, cv.PostConfiguration(&cfg))
	test.ExpectSuccess(t, cv.Update(640, 480, false))
	test.ExpectEquality(t, len(listener.changes), 3)

	cv.OnFocusLost()
	test.ExpectEquality(t, cv.Capture(), hid.CaptureNone)
}

func TestCaptureOnClickBeforeUpdate(t *testing.T) {
	hl := gpu.NewHeadless(true)
	listener := &captures{}
	cv := canvas.NewCanvas(hl, listener, nil)
	test.DemandSuccess(t, cv.Initialize())

	cfg := video.DefaultConfiguration()
	cfg.CaptureMode = hid.CaptureOnClick
	test.DemandSuccess(t, cv.PostConfiguration(&cfg))

	// a click straight after the configuration is posted captures input
	cv.OnMouseButton(0, true)
	test.ExpectEquality(t, cv.Capture(), hid.CaptureDisconnect)
	test.DemandEquality(t, len(listener.changes), 1)
	test.ExpectEquality(t, listener.changes[0], hid.CaptureDisconnect)

	// the update applies the same mode and so keeps the capture
	test.ExpectSuccess(t, cv.Update(640, 480, false))
	test.ExpectEquality(t, cv.Capture(), hid.CaptureDisconnect)

	// a new mode releases the capture
	cfg.CaptureMode = hid.NoCapture
	test.DemandSuccess(t, cv.PostConfiguration(&cfg))
	test.ExpectEquality(t, cv.Capture(), hid.CaptureNone)
}

func TestClipboard(t *testing.T) {
	hl := gpu.NewHeadless(true)

	cv := canvas.NewCanvas(hl, nil, nil)
	_, ok := cv.Copy()
	test.ExpectFailure(t, ok)
	test.ExpectFailure(t, cv.Paste("hello"))

	cb := &clipboard{copied: "10 PRINT"}
	cv = canvas.NewCanvas(hl, nil, cb)
	s, ok := cv.Copy()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, s, "10 PRINT")
	test.ExpectSuccess(t, cv.Paste("RUN"))
	test.DemandEquality(t, len(cb.pasted), 1)
	test.ExpectEquality(t, cb.pasted[0], "RUN")
}
