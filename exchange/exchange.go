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

// Package exchange is the mailbox between the producer of frames and the
// render thread. It holds at most one pending Configuration and one pending
// Frame.
//
// A frame that is posted while a previous frame is still pending replaces the
// previous frame, which is dropped. There is no queue. Configurations are
// treated similarly except that the most recent configuration is always
// available to the render thread, whether it has changed or not.
//
// The only locking is around the exchange of pointers. Frames are copied
// before the lock is taken.
package exchange

import (
	"sync"

	"github.com/jetsetilly/crtcanvas/curated"
	"github.com/jetsetilly/crtcanvas/video"
)

// InvalidArgument is the pattern for errors returned when a nil or invalid
// value is posted.
const InvalidArgument = "exchange: invalid argument: %v"

// Stats are the counters of the exchange.
type Stats struct {
	FramesPosted         int
	FramesDropped        int
	FramesDrained        int
	ConfigurationsPosted int
}

// Pending is the result of Drain().
type Pending struct {
	// the current configuration. nil if the configuration has not changed
	// since the last drain
	Config *video.Configuration

	// nil if no frame has been posted since the last drain
	Frame *video.Frame
}

// Exchange is the single slot mailbox. It is safe for concurrent use.
type Exchange struct {
	crit sync.Mutex

	config        video.Configuration
	configChanged bool

	frame *video.Frame

	stats Stats
}

// NewExchange is the preferred method of initialisation for the Exchange
// type. The exchange starts with the default configuration pending.
func NewExchange() *Exchange {
	return &Exchange{
		config:        video.DefaultConfiguration(),
		configChanged: true,
	}
}

// PostConfiguration replaces the current configuration. The configuration is
// copied.
func (ex *Exchange) PostConfiguration(cfg *video.Configuration) error {
	if cfg == nil {
		return curated.Errorf(InvalidArgument, "nil configuration")
	}
	if err := cfg.Validate(); err != nil {
		return curated.Errorf(InvalidArgument, err)
	}

	ex.crit.Lock()
	defer ex.crit.Unlock()

	ex.config = *cfg
	ex.configChanged = true
	ex.stats.ConfigurationsPosted++

	return nil
}

// PostFrame replaces the pending frame with a copy of fr. If the pending frame
// had not been drained it is dropped.
func (ex *Exchange) PostFrame(fr *video.Frame) error {
	if fr == nil {
		return curated.Errorf(InvalidArgument, "nil frame")
	}
	if err := fr.Validate(); err != nil {
		return curated.Errorf(InvalidArgument, err)
	}

	c := fr.Clone()

	ex.crit.Lock()
	defer ex.crit.Unlock()

	if ex.frame != nil {
		ex.stats.FramesDropped++
	}
	ex.frame = c
	ex.stats.FramesPosted++

	return nil
}

// Invalidate marks the current configuration as changed. The next call to
// Drain() will return it.
func (ex *Exchange) Invalidate() {
	ex.crit.Lock()
	defer ex.crit.Unlock()
	ex.configChanged = true
}

// Drain takes the pending configuration and frame. A second call to Drain()
// with nothing posted in between returns nil for both.
func (ex *Exchange) Drain() Pending {
	ex.crit.Lock()
	defer ex.crit.Unlock()

	var p Pending

	if ex.configChanged {
		cfg := ex.config
		p.Config = &cfg
		ex.configChanged = false
	}

	if ex.frame != nil {
		p.Frame = ex.frame
		ex.frame = nil
		ex.stats.FramesDrained++
	}

	return p
}

// Stats returns a copy of the exchange counters.
func (ex *Exchange) Stats() Stats {
	ex.crit.Lock()
	defer ex.crit.Unlock()
	return ex.stats
}
