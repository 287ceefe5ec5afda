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

// Package gpu is the render pipeline that turns frames into a CRT-like
// picture.
//
// The Pipeline is independent of any graphics API. It drives an
// implementation of the Backend interface. OpenGL backends are in the gl32 and
// gl21 sub-packages and the Headless backend in this package records calls
// for testing.
//
// A frame passes through the following stages, each of which is a shader
// program:
//
//	demodulate (NTSC or PAL) -> decode -> phosphor -> screen
//
// The demodulate stage is used only for composite decoders. The phosphor
// stage is used only when persistence is greater than zero. The screen stage
// draws to the viewport.
//
// Every program is optional. If the backend does not support shaders, or a
// program fails to compile, the stage is skipped. With no programs at all the
// frame is drawn directly to the viewport.
package gpu
