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
	"github.com/jetsetilly/crtcanvas/logger"
)

// Controller is the input capture state machine. It is not safe for
// concurrent use and should only be called from the UI thread.
type Controller struct {
	listener Listener

	mode    CaptureMode
	capture Capture

	keyDown      [NumKeys]bool
	keyDownCount int

	// set when control and alt have been seen held together. cleared when
	// the capture is released
	ctrlAlt bool

	mouseEntered    bool
	mouseButtonDown [NumMouseButtons]bool
	joystickDown    [NumJoysticks][NumJoystickButtons]bool
}

// NewController is the preferred method of initialisation for the Controller
// type. The listener may be nil in which case notifications are discarded.
func NewController(listener Listener) *Controller {
	return &Controller{
		listener: listener,
	}
}

// Capture returns the current capture state.
func (ctl *Controller) Capture() Capture {
	return ctl.capture
}

// CaptureMode returns the current capture mode.
func (ctl *Controller) CaptureMode() CaptureMode {
	return ctl.mode
}

// KeysDown returns the number of keys currently held.
func (ctl *Controller) KeysDown() int {
	return ctl.keyDownCount
}

func (ctl *Controller) setCapture(c Capture) {
	if ctl.capture == c {
		return
	}
	ctl.capture = c
	logger.Logf(logger.Allow, "hid", "capture: %s", c)
	if ctl.listener != nil {
		ctl.listener.CaptureChanged(c)
	}
}

func (ctl *Controller) notify(n Notification) {
	if ctl.listener != nil {
		ctl.listener.Notify(n)
	}
}

// the destination of keyboard and mouse events for the current capture state
func (ctl *Controller) destination() Destination {
	if ctl.capture == CaptureDisconnect {
		return Machine
	}
	return Host
}

// SetCaptureMode changes the capture mode. The capture state is changed only
// if the mode is different to the current mode.
func (ctl *Controller) SetCaptureMode(mode CaptureMode) {
	if ctl.mode == mode {
		return
	}
	ctl.mode = mode

	switch mode {
	case CaptureOnEnter:
		if ctl.mouseEntered {
			ctl.setCapture(CaptureHide)
		} else {
			ctl.setCapture(CaptureNone)
		}
	default:
		ctl.setCapture(CaptureNone)
	}
}

func boolValue(v bool) float32 {
	if v {
		return 1
	}
	return 0
}

// Key is a change in the state of a keyboard key.
func (ctl *Controller) Key(usage Usage, down bool) {
	if usage < 0 || usage >= NumKeys {
		return
	}
	if ctl.keyDown[usage] == down {
		return
	}

	ctl.keyDown[usage] = down
	if down {
		ctl.keyDownCount++
	} else {
		ctl.keyDownCount--
	}

	if (ctl.keyDown[KeyLeftControl] || ctl.keyDown[KeyRightControl]) &&
		(ctl.keyDown[KeyLeftAlt] || ctl.keyDown[KeyRightAlt]) {
		ctl.ctrlAlt = true
	}

	ctl.notify(Notification{
		Destination: ctl.destination(),
		Channel:     Keyboard,
		Usage:       usage,
		Value:       boolValue(down),
	})

	if ctl.capture == CaptureDisconnect && ctl.keyDownCount == 0 && ctl.ctrlAlt {
		ctl.ctrlAlt = false
		ctl.setCapture(CaptureNone)
	}
}

// UnicodeText is a character typed on the keyboard.
func (ctl *Controller) UnicodeText(r rune) {
	ctl.notify(Notification{
		Destination: ctl.destination(),
		Channel:     UnicodeKeyboard,
		Usage:       Usage(r),
	})
}

// MouseEnter is the mouse entering the render surface.
func (ctl *Controller) MouseEnter() {
	ctl.mouseEntered = true
	if ctl.mode == CaptureOnEnter {
		ctl.setCapture(CaptureHide)
	}
	ctl.notify(Notification{
		Destination: Host,
		Channel:     Pointer,
		Usage:       PointerProximity,
		Value:       1,
	})
}

// MouseExit is the mouse leaving the render surface.
func (ctl *Controller) MouseExit() {
	ctl.mouseEntered = false
	if ctl.mode == CaptureOnEnter {
		ctl.setCapture(CaptureNone)
	}
	ctl.notify(Notification{
		Destination: Host,
		Channel:     Pointer,
		Usage:       PointerProximity,
		Value:       0,
	})
}

// MouseMove is the absolute position of the mouse. It is not forwarded when
// the mouse is disconnected.
func (ctl *Controller) MouseMove(x, y float32) {
	if ctl.capture == CaptureDisconnect {
		return
	}
	ctl.notify(Notification{Destination: Host, Channel: Pointer, Usage: PointerX, Value: x})
	ctl.notify(Notification{Destination: Host, Channel: Pointer, Usage: PointerY, Value: y})
}

// MouseDrag is relative movement of the mouse. It is only forwarded when the
// mouse is disconnected.
func (ctl *Controller) MouseDrag(rx, ry float32) {
	if ctl.capture != CaptureDisconnect {
		return
	}
	ctl.notify(Notification{Destination: Machine, Channel: Mouse, Usage: MouseRelX, Value: rx})
	ctl.notify(Notification{Destination: Machine, Channel: Mouse, Usage: MouseRelY, Value: ry})
}

// MouseButton is a change in the state of a mouse button. Index zero is the
// primary button.
func (ctl *Controller) MouseButton(index int, down bool) {
	if index < 0 || index >= NumMouseButtons {
		return
	}
	if ctl.mouseButtonDown[index] == down {
		return
	}
	ctl.mouseButtonDown[index] = down

	switch {
	case ctl.capture == CaptureDisconnect:
		ctl.notify(Notification{
			Destination: Machine,
			Channel:     Mouse,
			Usage:       MouseButton1 + Usage(index),
			Value:       boolValue(down),
		})
	case ctl.mode == CaptureOnClick && ctl.capture == CaptureNone && index == 0 && down:
		// the click that causes the capture is not forwarded
		ctl.setCapture(CaptureDisconnect)
	default:
		ctl.notify(Notification{
			Destination: Host,
			Channel:     Pointer,
			Usage:       PointerButton1 + Usage(index),
			Value:       boolValue(down),
		})
	}
}

// MouseWheel is movement of a mouse wheel. Axis zero is the horizontal
// wheel.
func (ctl *Controller) MouseWheel(axis int, delta float32) {
	if axis < 0 || axis >= NumWheels {
		return
	}
	if ctl.capture == CaptureDisconnect {
		ctl.notify(Notification{
			Destination: Machine,
			Channel:     Mouse,
			Usage:       MouseWheelX + Usage(axis),
			Value:       delta,
		})
		return
	}
	ctl.notify(Notification{
		Destination: Host,
		Channel:     Pointer,
		Usage:       PointerWheelX + Usage(axis),
		Value:       delta,
	})
}

func validJoystick(device int) bool {
	return device >= 0 && device < NumJoysticks
}

// JoystickButton is a change in the state of a joystick button.
func (ctl *Controller) JoystickButton(device int, button int, down bool) {
	if !validJoystick(device) || button < 0 || button >= NumJoystickButtons {
		return
	}
	if ctl.joystickDown[device][button] == down {
		return
	}
	ctl.joystickDown[device][button] = down

	ctl.notify(Notification{
		Destination: Machine,
		Channel:     Joystick,
		Device:      device,
		Usage:       JoystickButton1 + Usage(button),
		Value:       boolValue(down),
	})
}

// JoystickAxis is the position of a joystick axis.
func (ctl *Controller) JoystickAxis(device int, axis int, value float32) {
	if !validJoystick(device) || axis < 0 || axis >= NumJoystickAxes {
		return
	}
	ctl.notify(Notification{
		Destination: Machine,
		Channel:     Joystick,
		Device:      device,
		Usage:       JoystickAxis1 + Usage(axis),
		Value:       value,
	})
}

// JoystickHat is the position of a joystick hat.
func (ctl *Controller) JoystickHat(device int, hat int, value float32) {
	if !validJoystick(device) || hat < 0 || hat >= NumJoystickHats {
		return
	}
	ctl.notify(Notification{
		Destination: Machine,
		Channel:     Joystick,
		Device:      device,
		Usage:       JoystickHat1 + Usage(hat),
		Value:       value,
	})
}

// JoystickBall is relative movement of a joystick trackball.
func (ctl *Controller) JoystickBall(device int, ball int, value float32) {
	if !validJoystick(device) || ball < 0 || ball >= NumJoystickBalls {
		return
	}
	ctl.notify(Notification{
		Destination: Machine,
		Channel:     Joystick,
		Device:      device,
		Usage:       JoystickBall1 + Usage(ball),
		Value:       value,
	})
}

// FocusLost releases every key and button that is held, with a notification
// for each one, and releases the capture.
func (ctl *Controller) FocusLost() {
	for i := range ctl.keyDown {
		ctl.Key(Usage(i), false)
	}
	for i := range ctl.mouseButtonDown {
		ctl.MouseButton(i, false)
	}
	for d := range ctl.joystickDown {
		for b := range ctl.joystickDown[d] {
			ctl.JoystickButton(d, b, false)
		}
	}

	ctl.ctrlAlt = false
	ctl.setCapture(CaptureNone)
}
