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

import "github.com/jetsetilly/crtcanvas/hid"

// input returns the controller after applying any capture mode posted since
// the last input event. must be called from the UI thread
func (c *Canvas) input() *hid.Controller {
	if m := c.pendingCapture.Swap(0); m != 0 {
		c.hid.SetCaptureMode(hid.CaptureMode(m - 1))
	}
	return c.hid
}

// OnKey is called when a key is pressed or released. The usage is a USB HID
// keyboard usage.
func (c *Canvas) OnKey(usage hid.Usage, down bool) {
	c.input().Key(usage, down)
}

// OnUnicodeText is called for every character of text input.
func (c *Canvas) OnUnicodeText(r rune) {
	c.input().UnicodeText(r)
}

// OnMouseEnter is called when the pointer enters the canvas.
func (c *Canvas) OnMouseEnter() {
	c.input().MouseEnter()
}

// OnMouseExit is called when the pointer leaves the canvas.
func (c *Canvas) OnMouseExit() {
	c.input().MouseExit()
}

// OnMouseMove is called with the absolute position of the pointer. The
// position is normalised to the size of the canvas.
func (c *Canvas) OnMouseMove(x float32, y float32) {
	c.input().MouseMove(x, y)
}

// OnMouseDrag is called with the relative movement of the pointer.
func (c *Canvas) OnMouseDrag(rx float32, ry float32) {
	c.input().MouseDrag(rx, ry)
}

// OnMouseButton is called when a mouse button is pressed or released. Index
// zero is the primary button.
func (c *Canvas) OnMouseButton(index int, down bool) {
	c.input().MouseButton(index, down)
}

// OnMouseWheel is called when a mouse wheel is moved.
func (c *Canvas) OnMouseWheel(axis int, delta float32) {
	c.input().MouseWheel(axis, delta)
}

func (c *Canvas) OnJoystickButton(device int, button int, down bool) {
	c.input().JoystickButton(device, button, down)
}

func (c *Canvas) OnJoystickAxis(device int, axis int, value float32) {
	c.input().JoystickAxis(device, axis, value)
}

func (c *Canvas) OnJoystickHat(device int, hat int, value float32) {
	c.input().JoystickHat(device, hat, value)
}

func (c *Canvas) OnJoystickBall(device int, ball int, value float32) {
	c.input().JoystickBall(device, ball, value)
}

// OnFocusLost is called when the window loses the input focus. Every held key
// and button is released and the capture is released.
func (c *Canvas) OnFocusLost() {
	c.input().FocusLost()
}
