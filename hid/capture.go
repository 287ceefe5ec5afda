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

package hid

import (
	"fmt"
	"strings"
)

// CaptureMode is the policy that decides when input is captured.
type CaptureMode int

// List of valid CaptureMode values.
const (
	NoCapture CaptureMode = iota
	CaptureOnClick
	CaptureOnEnter
)

func (m CaptureMode) String() string {
	switch m {
	case NoCapture:
		return "none"
	case CaptureOnClick:
		return "click"
	case CaptureOnEnter:
		return "enter"
	}
	return "unknown capture mode"
}

// CaptureModes returns every CaptureMode in order.
func CaptureModes() []CaptureMode {
	return []CaptureMode{NoCapture, CaptureOnClick, CaptureOnEnter}
}

// ParseCaptureMode returns the CaptureMode with the name returned by String().
func ParseCaptureMode(s string) (CaptureMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, m := range CaptureModes() {
		if m.String() == s {
			return m, nil
		}
	}
	return NoCapture, fmt.Errorf("hid: unrecognised capture mode: %s", s)
}

// Capture is the current state of input capture.
type Capture int

// List of valid Capture values.
const (
	// input is not captured
	CaptureNone Capture = iota

	// keyboard and mouse belong to the emulated machine. the mouse cursor
	// is hidden and the host should switch to relative mouse movement
	CaptureDisconnect

	// the mouse cursor is hidden but the absolute position of the mouse is
	// still forwarded to the host
	CaptureHide
)

func (c Capture) String() string {
	switch c {
	case CaptureNone:
		return "none"
	case CaptureDisconnect:
		return "disconnect"
	case CaptureHide:
		return "hide"
	}
	return "unknown capture"
}
