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

package sdlshell

import (
	"strings"

	"github.com/jetsetilly/crtcanvas/hid"
	"github.com/veandco/go-sdl2/sdl"
)

// SDL scancodes are the same as USB HID keyboard usages
const (
	usageC   = hid.Usage(sdl.SCANCODE_C)
	usageV   = hid.Usage(sdl.SCANCODE_V)
	usageF10 = hid.Usage(sdl.SCANCODE_F10)
	usageF11 = hid.Usage(sdl.SCANCODE_F11)
)

// mouse buttons in the order expected by the canvas. the primary button is
// first
var mouseButtons = map[uint8]int{
	sdl.BUTTON_LEFT:   0,
	sdl.BUTTON_RIGHT:  1,
	sdl.BUTTON_MIDDLE: 2,
	sdl.BUTTON_X1:     3,
	sdl.BUTTON_X2:     4,
}

func (sh *Shell) serviceEvent(ev sdl.Event) {
	cv := sh.canvas

	switch ev := ev.(type) {
	case *sdl.QuitEvent:
		sh.close()

	case *sdl.WindowEvent:
		switch ev.Event {
		case sdl.WINDOWEVENT_ENTER:
			cv.OnMouseEnter()
		case sdl.WINDOWEVENT_LEAVE:
			cv.OnMouseExit()
		case sdl.WINDOWEVENT_FOCUS_LOST:
			cv.OnFocusLost()
		case sdl.WINDOWEVENT_EXPOSED:
			sh.forceDraw = true
		}

	case *sdl.KeyboardEvent:
		usage := hid.Usage(ev.Keysym.Scancode)
		down := ev.Type == sdl.KEYDOWN

		// clipboard shortcuts are never sent to the machine
		if clipboardShortcut(ev) {
			if down && ev.Repeat == 0 {
				switch usage {
				case usageV:
					sh.paste()
				case usageC:
					sh.copy()
				}
			}
			return
		}

		cv.OnKey(usage, down)

	case *sdl.TextInputEvent:
		for _, r := range strings.TrimRight(string(ev.Text[:]), "\x00") {
			cv.OnUnicodeText(r)
		}

	case *sdl.MouseMotionEvent:
		w, h := sh.window.GetSize()
		if w > 0 && h > 0 {
			cv.OnMouseMove(float32(ev.X)/float32(w), float32(ev.Y)/float32(h))
		}
		cv.OnMouseDrag(float32(ev.XRel), float32(ev.YRel))

	case *sdl.MouseButtonEvent:
		if b, ok := mouseButtons[ev.Button]; ok {
			cv.OnMouseButton(b, ev.Type == sdl.MOUSEBUTTONDOWN)
		}

	case *sdl.MouseWheelEvent:
		if ev.X != 0 {
			cv.OnMouseWheel(0, float32(ev.X))
		}
		if ev.Y != 0 {
			cv.OnMouseWheel(1, float32(ev.Y))
		}

	case *sdl.JoyButtonEvent:
		if dev, ok := sh.joysticks[ev.Which]; ok {
			cv.OnJoystickButton(dev, int(ev.Button), ev.State == sdl.PRESSED)
		}

	case *sdl.JoyAxisEvent:
		if dev, ok := sh.joysticks[ev.Which]; ok {
			cv.OnJoystickAxis(dev, int(ev.Axis), float32(ev.Value)/32768)
		}

	case *sdl.JoyHatEvent:
		if dev, ok := sh.joysticks[ev.Which]; ok {
			cv.OnJoystickHat(dev, int(ev.Hat), float32(ev.Value))
		}

	case *sdl.JoyBallEvent:
		// each ball has two axes and is reported as two consecutive balls
		if dev, ok := sh.joysticks[ev.Which]; ok {
			cv.OnJoystickBall(dev, int(ev.Ball)*2, float32(ev.XRel))
			cv.OnJoystickBall(dev, int(ev.Ball)*2+1, float32(ev.YRel))
		}
	}
}

// returns true if the key is ctrl+shift+C or ctrl+shift+V. the capture state
// is not considered
func clipboardShortcut(ev *sdl.KeyboardEvent) bool {
	switch hid.Usage(ev.Keysym.Scancode) {
	case usageC, usageV:
	default:
		return false
	}
	ctrl := ev.Keysym.Mod&sdl.KMOD_LCTRL == sdl.KMOD_LCTRL || ev.Keysym.Mod&sdl.KMOD_RCTRL == sdl.KMOD_RCTRL
	shift := ev.Keysym.Mod&sdl.KMOD_LSHIFT == sdl.KMOD_LSHIFT || ev.Keysym.Mod&sdl.KMOD_RSHIFT == sdl.KMOD_RSHIFT
	return ctrl && shift
}
