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

// Package hid routes host input devices between the host UI and the emulated
// machine.
//
// The Controller receives raw events from the host shell: keys, mouse
// movement, mouse buttons, wheels and joysticks. Each event is turned into a
// Notification and sent to a Listener. The destination of the notification
// depends on the current Capture state.
//
// When the capture state is CaptureDisconnect the keyboard, mouse buttons,
// relative mouse movement and the mouse wheel belong to the emulated machine.
// The absolute position of the mouse is not forwarded at all. In every other
// state the keyboard and mouse are sent to the host.
//
// Joysticks are not subject to capture and are always sent to the machine.
//
// The capture state is changed by the Controller according to the
// CaptureMode. Pressing control and alt together while the input is captured
// releases the capture once every key has been released.
package hid
