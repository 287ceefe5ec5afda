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

package exchange_test

import (
	"sync"
	"testing"

	"github.com/jetsetilly/crtcanvas/curated"
	"github.com/jetsetilly/crtcanvas/decoder"
	"github.com/jetsetilly/crtcanvas/exchange"
	"github.com/jetsetilly/crtcanvas/test"
	"github.com/jetsetilly/crtcanvas/video"
)

func frame(v uint8) *video.Frame {
	fr := video.NewFrame(4, 2, video.Luminance)
	for i := range fr.Pixels {
		fr.Pixels[i] = v
	}
	return fr
}

func TestInitialConfiguration(t *testing.T) {
	ex := exchange.NewExchange()

	p := ex.Drain()
	test.DemandSuccess(t, p.Config != nil)
	test.ExpectEquality(t, *p.Config, video.DefaultConfiguration())
	test.ExpectSuccess(t, p.Frame == nil)

	p = ex.Drain()
	test.ExpectSuccess(t, p.Config == nil)
}

func TestLatestFrameWins(t *testing.T) {
	ex := exchange.NewExchange()
	_ = ex.Drain()

	test.ExpectSuccess(t, ex.PostFrame(frame(1)))
	test.ExpectSuccess(t, ex.PostFrame(frame(2)))

	p := ex.Drain()
	test.DemandSuccess(t, p.Frame != nil)
	test.ExpectEquality(t, p.Frame.Pixels[0], uint8(2))

	p = ex.Drain()
	test.ExpectSuccess(t, p.Frame == nil)
	test.ExpectSuccess(t, p.Config == nil)

	st := ex.Stats()
	test.ExpectEquality(t, st.FramesPosted, 2)
	test.ExpectEquality(t, st.FramesDropped, 1)
	test.ExpectEquality(t, st.FramesDrained, 1)
}

func TestFrameIsCopied(t *testing.T) {
	ex := exchange.NewExchange()

	fr := frame(7)
	test.ExpectSuccess(t, ex.PostFrame(fr))
	fr.Pixels[0] = 99

	p := ex.Drain()
	test.DemandSuccess(t, p.Frame != nil)
	test.ExpectEquality(t, p.Frame.Pixels[0], uint8(7))
}

func TestInvalidArguments(t *testing.T) {
	ex := exchange.NewExchange()
	_ = ex.Drain()

	err := ex.PostFrame(nil)
	test.ExpectSuccess(t, curated.Is(err, exchange.InvalidArgument))

	err = ex.PostFrame(video.NewFrame(0, 0, video.RGB))
	test.ExpectSuccess(t, curated.Is(err, exchange.InvalidArgument))

	err = ex.PostConfiguration(nil)
	test.ExpectSuccess(t, curated.Is(err, exchange.InvalidArgument))

	cfg := video.DefaultConfiguration()
	cfg.CanvasSize.W = 0
	err = ex.PostConfiguration(&cfg)
	test.ExpectSuccess(t, curated.Is(err, exchange.InvalidArgument))

	// rejected posts have no side effects
	p := ex.Drain()
	test.ExpectSuccess(t, p.Config == nil)
	test.ExpectSuccess(t, p.Frame == nil)
	test.ExpectEquality(t, ex.Stats(), exchange.Stats{})
}

func TestConfiguration(t *testing.T) {
	ex := exchange.NewExchange()
	_ = ex.Drain()

	cfg := video.DefaultConfiguration()
	cfg.Decoder = decoder.PAL
	test.ExpectSuccess(t, ex.PostConfiguration(&cfg))

	// changing the posted value does not change the pending configuration
	cfg.Decoder = decoder.NTSCYIQ

	p := ex.Drain()
	test.DemandSuccess(t, p.Config != nil)
	test.ExpectEquality(t, p.Config.Decoder, decoder.PAL)

	// invalidation returns the same configuration again
	ex.Invalidate()
	p = ex.Drain()
	test.DemandSuccess(t, p.Config != nil)
	test.ExpectEquality(t, p.Config.Decoder, decoder.PAL)

	test.ExpectEquality(t, ex.Stats().ConfigurationsPosted, 1)
}

func TestConcurrentProducer(t *testing.T) {
	ex := exchange.NewExchange()

	const numFrames = 1000

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range numFrames {
			_ = ex.PostFrame(frame(uint8(i)))
		}
	}()

	var drained int
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	for running := true; running; {
		select {
		case <-done:
			running = false
		default:
		}
		if p := ex.Drain(); p.Frame != nil {
			drained++
		}
	}

	st := ex.Stats()
	test.ExpectEquality(t, st.FramesPosted, numFrames)
	test.ExpectEquality(t, st.FramesDrained, drained)
	test.ExpectEquality(t, st.FramesDrained+st.FramesDropped, numFrames)
}
