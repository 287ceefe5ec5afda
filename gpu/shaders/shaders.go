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

// Package shaders contains the GLSL source for the GPU pipeline. All
// fragment shaders share the StraightVertexShader.
package shaders

import _ "embed"

//go:embed "straight.vert"
var StraightVertexShader []byte

//go:embed "blit.frag"
var BlitShader []byte

//go:embed "ntsc.frag"
var NTSCShader []byte

//go:embed "pal.frag"
var PALShader []byte

//go:embed "video.frag"
var VideoShader []byte

//go:embed "screen.frag"
var ScreenShader []byte

//go:embed "phosphor.frag"
var PhosphorShader []byte
