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

// Usage identifies the key, button or axis of a Notification. Keyboard
// usages are USB HID keyboard usages. Unicode keyboard usages are code points.
type Usage int

// Keyboard modifier usages.
const (
	KeyLeftControl  Usage = 0xe0
	KeyLeftShift    Usage = 0xe1
	KeyLeftAlt      Usage = 0xe2
	KeyLeftGUI      Usage = 0xe3
	KeyRightControl Usage = 0xe4
	KeyRightShift   Usage = 0xe5
	KeyRightAlt     Usage = 0xe6
	KeyRightGUI     Usage = 0xe7
)

// Pointer usages. The pointer is the host's view of the mouse.
const (
	PointerProximity Usage = 0x00
	PointerX         Usage = 0x01
	PointerY         Usage = 0x02
	PointerWheelX    Usage = 0x03
	PointerButton1   Usage = 0x10
)

// Mouse usages. The mouse is the emulated machine's view of the mouse.
const (
	MouseRelX    Usage = 0x00
	MouseRelY    Usage = 0x01
	MouseWheelX  Usage = 0x03
	MouseButton1 Usage = 0x10
)

// Joystick usages. Each kind of control has its own range.
const (
	JoystickAxis1   Usage = 0x00
	JoystickHat1    Usage = 0x10
	JoystickBall1   Usage = 0x14
	JoystickButton1 Usage = 0x20
)

// Limits of the devices. Events with an index outside of these limits are
// ignored.
const (
	NumKeys            = 256
	NumMouseButtons    = 8
	NumWheels          = 3
	NumJoysticks       = 8
	NumJoystickButtons = 32
	NumJoystickAxes    = 16
	NumJoystickHats    = 4
	NumJoystickBalls   = 4
)

// Destination of a Notification.
type Destination int

// List of valid Destination values.
const (
	Host Destination = iota
	Machine
)

func (d Destination) String() string {
	switch d {
	case Host:
		return "host"
	case Machine:
		return "machine"
	}
	return "unknown destination"
}

// Channel is the kind of device a Notification is from.
type Channel int

// List of valid Channel values.
const (
	Keyboard Channel = iota
	UnicodeKeyboard
	Pointer
	Mouse
	Joystick
)

func (c Channel) String() string {
	switch c {
	case Keyboard:
		return "keyboard"
	case UnicodeKeyboard:
		return "unicode"
	case Pointer:
		return "pointer"
	case Mouse:
		return "mouse"
	case Joystick:
		return "joystick"
	}
	return "unknown channel"
}

// Notification is a single routed input event.
type Notification struct {
	Destination Destination
	Channel     Channel

	// the joystick index. always zero for other channels
	Device int

	Usage Usage

	// one or zero for buttons and keys. zero for unicode
	Value float32
}

// Listener is the recipient of notifications and capture changes. The
// Listener is not owned by the Controller and must outlive it.
type Listener interface {
	Notify(Notification)
	CaptureChanged(Capture)
}
