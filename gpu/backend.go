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

package gpu

import (
	"github.com/jetsetilly/crtcanvas/geometry"
	"github.com/jetsetilly/crtcanvas/video"
)

// Texture is a handle to a texture. Zero is never a valid texture.
type Texture uint32

// Program is a handle to a compiled shader program. Zero is never a valid
// program.
type Program uint32

// DrawCall is the final draw to the viewport.
type DrawCall struct {
	// if Program is zero the texture is drawn without any effects
	Program Program

	// if Texture is zero only the clear is performed
	Texture Texture

	// the area of the texture to draw, in texture coordinates
	TexRect geometry.Rect

	// the area of the viewport to draw to, in normalised device coordinates
	ViewRect geometry.Rect

	Filter     geometry.Filter
	ClearColor [3]float32

	// size of the viewport in pixels
	Viewport geometry.Size
}

// Backend is the graphics API used by the Pipeline. All methods are called
// from the thread that owns the graphics context.
type Backend interface {
	Start() error
	Destroy()

	// SupportsShaders is called once, after Start(). If it returns false
	// NewProgram(), SetUniform() and Process() are never called
	SupportsShaders() bool

	NewTexture() Texture
	DeleteTexture(Texture)

	// AllocTexture sets the size of the texture. The contents are cleared
	AllocTexture(tex Texture, width int, height int)

	// UploadTexture copies the frame to the top-left corner of the texture.
	// The texture will have been allocated to be at least as large as the
	// frame
	UploadTexture(tex Texture, fr *video.Frame)

	// NewProgram compiles and links the fragment shader source. The
	// diagnostic string is the compiler or linker output and may be
	// non-empty even when there is no error
	NewProgram(name string, fragment string) (Program, string, error)
	DeleteProgram(Program)

	// SetUniform sets the named uniform in the program. Supported values are
	// float32, [2]float32, [3]float32, [9]float32 (a column-major mat3) and
	// int32
	SetUniform(prog Program, name string, value any)

	// Process runs the program over the entirety of the dst texture. The
	// src textures are bound to texture units in order
	Process(prog Program, dst Texture, width int, height int, src ...Texture)

	Draw(call DrawCall)
}
