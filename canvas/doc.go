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

// Package canvas is the display core. It takes frames and configurations
// from a producer, runs them through the GPU pipeline and draws the result to
// a viewport. It also routes input from the host to either the host UI or the
// emulated machine.
//
// The producer calls PostConfiguration() and PostFrame() from its own
// goroutine. The UI thread calls Update() once per display refresh and
// forwards input events with the On*() functions:
//
//	cv := canvas.NewCanvas(gl32.NewBackend(), shell, machine)
//	err := cv.Initialize()
//	...
//	if cv.Update(float64(w), float64(h), false) {
//		window.GLSwap()
//	}
//
// The canvas does not own the listener or the machine.
package canvas
