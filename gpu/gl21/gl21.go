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

// Package gl21 is an implementation of gpu.Backend for OpenGL 2.1. It does not
// support shaders and so frames are drawn without any effects.
//
// All functions must be called from the thread that owns the OpenGL context.
package gl21

import (
	"fmt"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/jetsetilly/crtcanvas/geometry"
	"github.com/jetsetilly/crtcanvas/gpu"
	"github.com/jetsetilly/crtcanvas/logger"
	"github.com/jetsetilly/crtcanvas/video"
)

// Backend implements the gpu.Backend interface.
type Backend struct {
	textures map[gpu.Texture]bool
}

// NewBackend is the preferred method of initialisation for the Backend type.
func NewBackend() *Backend {
	return &Backend{
		textures: make(map[gpu.Texture]bool),
	}
}

// Start implements the gpu.Backend interface.
func (be *Backend) Start() error {
	err := gl.Init()
	if err != nil {
		return fmt.Errorf("gl21: %w", err)
	}

	// log GPU vendor information
	logger.Logf(logger.Allow, "gl21", "vendor: %s", gl.GoStr(gl.GetString(gl.VENDOR)))
	logger.Logf(logger.Allow, "gl21", "renderer: %s", gl.GoStr(gl.GetString(gl.RENDERER)))
	logger.Logf(logger.Allow, "gl21", "driver: %s", gl.GoStr(gl.GetString(gl.VERSION)))

	gl.Disable(gl.BLEND)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.LIGHTING)

	return nil
}

// Destroy implements the gpu.Backend interface.
func (be *Backend) Destroy() {
	for t := range be.textures {
		id := uint32(t)
		gl.DeleteTextures(1, &id)
	}
	clear(be.textures)
}

// SupportsShaders implements the gpu.Backend interface.
func (be *Backend) SupportsShaders() bool {
	return false
}

// NewTexture implements the gpu.Backend interface.
func (be *Backend) NewTexture() gpu.Texture {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)

	t := gpu.Texture(id)
	be.textures[t] = true
	return t
}

// DeleteTexture implements the gpu.Backend interface.
func (be *Backend) DeleteTexture(tex gpu.Texture) {
	if !be.textures[tex] {
		return
	}
	id := uint32(tex)
	gl.DeleteTextures(1, &id)
	delete(be.textures, tex)
}

// AllocTexture implements the gpu.Backend interface.
func (be *Backend) AllocTexture(tex gpu.Texture, width int, height int) {
	empty := make([]uint8, width*height*4)
	gl.BindTexture(gl.TEXTURE_2D, uint32(tex))
	gl.TexImage2D(gl.TEXTURE_2D, 0,
		gl.RGBA, int32(width), int32(height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE,
		gl.Ptr(empty))
}

// UploadTexture implements the gpu.Backend interface.
func (be *Backend) UploadTexture(tex gpu.Texture, fr *video.Frame) {
	var format uint32
	switch fr.Format {
	case video.Luminance:
		format = gl.LUMINANCE
	case video.RGB:
		format = gl.RGB
	case video.RGBA:
		format = gl.RGBA
	default:
		logger.Logf(logger.Allow, "gl21", "unsupported pixel format: %s", fr.Format)
		return
	}

	gl.BindTexture(gl.TEXTURE_2D, uint32(tex))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0,
		0, 0, int32(fr.Width), int32(fr.Height),
		format, gl.UNSIGNED_BYTE,
		gl.Ptr(fr.Pixels))
}

// NewProgram implements the gpu.Backend interface. It always fails.
func (be *Backend) NewProgram(name string, _ string) (gpu.Program, string, error) {
	return 0, "", fmt.Errorf("gl21: %s: shaders not supported", name)
}

// DeleteProgram implements the gpu.Backend interface.
func (be *Backend) DeleteProgram(_ gpu.Program) {
}

// SetUniform implements the gpu.Backend interface.
func (be *Backend) SetUniform(_ gpu.Program, _ string, _ any) {
}

// Process implements the gpu.Backend interface.
func (be *Backend) Process(_ gpu.Program, _ gpu.Texture, _ int, _ int, _ ...gpu.Texture) {
}

// Draw implements the gpu.Backend interface. The program field of the
// DrawCall is ignored.
func (be *Backend) Draw(call gpu.DrawCall) {
	gl.Viewport(0, 0, int32(call.Viewport.W), int32(call.Viewport.H))
	gl.ClearColor(call.ClearColor[0], call.ClearColor[1], call.ClearColor[2], 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	if call.Texture == 0 {
		return
	}

	gl.MatrixMode(gl.PROJECTION)
	gl.LoadIdentity()
	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadIdentity()

	gl.Enable(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, uint32(call.Texture))
	switch call.Filter {
	case geometry.Nearest:
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	default:
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	}

	x0 := float32(call.ViewRect.X)
	y0 := float32(call.ViewRect.Y)
	x1 := float32(call.ViewRect.X + call.ViewRect.W)
	y1 := float32(call.ViewRect.Y + call.ViewRect.H)

	// the first row of the texture is the top of the picture
	u0 := float32(call.TexRect.X)
	u1 := float32(call.TexRect.X + call.TexRect.W)
	v0 := float32(call.TexRect.Y + call.TexRect.H)
	v1 := float32(call.TexRect.Y)

	gl.Color4f(1, 1, 1, 1)
	gl.Begin(gl.QUADS)
	gl.TexCoord2f(u0, v0)
	gl.Vertex2f(x0, y0)
	gl.TexCoord2f(u1, v0)
	gl.Vertex2f(x1, y0)
	gl.TexCoord2f(u1, v1)
	gl.Vertex2f(x1, y1)
	gl.TexCoord2f(u0, v1)
	gl.Vertex2f(x0, y1)
	gl.End()

	gl.Disable(gl.TEXTURE_2D)
}
