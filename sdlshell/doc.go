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

// Package sdlshell is a window for the canvas. It creates the window and the
// OpenGL context with SDL, translates SDL events to canvas input and updates
// the canvas once per display refresh.
//
// The OpenGL 3.2 backend is used by default. Building with the gl21 tag
// selects the OpenGL 2.1 backend, which has no shader effects.
//
// Key bindings handled by the shell, when the keyboard is not captured:
//
//	F10           toggle shader effects
//	F11           toggle full screen
//
// Ctrl+Shift+V pastes the host clipboard to the machine and Ctrl+Shift+C
// copies text from the machine. These work whatever the capture state.
package sdlshell
