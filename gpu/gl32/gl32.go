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

// Package gl32 is an implementation of gpu.Backend for OpenGL 3.2 core
// profile. It supports shaders.
//
// All functions must be called from the thread that owns the OpenGL context.
package gl32

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/jetsetilly/crtcanvas/geometry"
	"github.com/jetsetilly/crtcanvas/gpu"
	"github.com/jetsetilly/crtcanvas/gpu/shaders"
	"github.com/jetsetilly/crtcanvas/logger"
	"github.com/jetsetilly/crtcanvas/video"
)

// attribute locations are bound before linking so that every program has the
// same layout
const (
	positionAttrib = 0
	uvAttrib       = 1
)

type texture struct {
	width  int32
	height int32
}

// Backend implements the gpu.Backend interface.
type Backend struct {
	vao uint32
	vbo uint32
	fbo uint32

	// program used by Draw() when no program is specified
	blit uint32

	textures map[gpu.Texture]texture

	// used to expand luminance frames to RGB
	expanded []uint8
}

// NewBackend is the preferred method of initialisation for the Backend type.
func NewBackend() *Backend {
	return &Backend{
		textures: make(map[gpu.Texture]texture),
	}
}

// Start implements the gpu.Backend interface.
func (be *Backend) Start() error {
	err := gl.Init()
	if err != nil {
		return fmt.Errorf("gl32: %w", err)
	}

	// log GPU vendor information
	logger.Logf(logger.Allow, "gl32", "vendor: %s", gl.GoStr(gl.GetString(gl.VENDOR)))
	logger.Logf(logger.Allow, "gl32", "renderer: %s", gl.GoStr(gl.GetString(gl.RENDERER)))
	logger.Logf(logger.Allow, "gl32", "driver: %s", gl.GoStr(gl.GetString(gl.VERSION)))

	gl.GenVertexArrays(1, &be.vao)
	gl.GenBuffers(1, &be.vbo)
	gl.GenFramebuffers(1, &be.fbo)

	gl.Disable(gl.BLEND)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)

	var diag string
	be.blit, diag, err = createProgram(string(shaders.StraightVertexShader), string(shaders.BlitShader))
	if err != nil {
		return fmt.Errorf("gl32: blit: %w: %s", err, diag)
	}

	return nil
}

// Destroy implements the gpu.Backend interface.
func (be *Backend) Destroy() {
	if be.blit != 0 {
		gl.DeleteProgram(be.blit)
		be.blit = 0
	}

	for t := range be.textures {
		id := uint32(t)
		gl.DeleteTextures(1, &id)
	}
	clear(be.textures)

	if be.fbo != 0 {
		gl.DeleteFramebuffers(1, &be.fbo)
		be.fbo = 0
	}
	if be.vbo != 0 {
		gl.DeleteBuffers(1, &be.vbo)
		be.vbo = 0
	}
	if be.vao != 0 {
		gl.DeleteVertexArrays(1, &be.vao)
		be.vao = 0
	}
}

// SupportsShaders implements the gpu.Backend interface.
func (be *Backend) SupportsShaders() bool {
	return true
}

// NewTexture implements the gpu.Backend interface. The texture is a 1x1
// placeholder until AllocTexture() is called.
func (be *Backend) NewTexture() gpu.Texture {
	var id uint32
	gl.GenTextures(1, &id)

	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexImage2D(gl.TEXTURE_2D, 0,
		gl.RGBA, 1, 1, 0,
		gl.RGBA, gl.UNSIGNED_BYTE,
		gl.Ptr([]uint8{0, 0, 0, 0}))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	t := gpu.Texture(id)
	be.textures[t] = texture{width: 1, height: 1}
	return t
}

// DeleteTexture implements the gpu.Backend interface.
func (be *Backend) DeleteTexture(tex gpu.Texture) {
	if _, ok := be.textures[tex]; !ok {
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
	be.textures[tex] = texture{width: int32(width), height: int32(height)}
}

// UploadTexture implements the gpu.Backend interface. Luminance frames are
// expanded to RGB because the core profile has no luminance format.
func (be *Backend) UploadTexture(tex gpu.Texture, fr *video.Frame) {
	var format uint32
	pixels := fr.Pixels

	switch fr.Format {
	case video.Luminance:
		n := fr.Width * fr.Height
		if cap(be.expanded) < n*3 {
			be.expanded = make([]uint8, n*3)
		}
		be.expanded = be.expanded[:n*3]
		for i := range n {
			v := fr.Pixels[i]
			be.expanded[i*3] = v
			be.expanded[i*3+1] = v
			be.expanded[i*3+2] = v
		}
		pixels = be.expanded
		format = gl.RGB
	case video.RGB:
		format = gl.RGB
	case video.RGBA:
		format = gl.RGBA
	default:
		logger.Logf(logger.Allow, "gl32", "unsupported pixel format: %s", fr.Format)
		return
	}

	gl.BindTexture(gl.TEXTURE_2D, uint32(tex))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0,
		0, 0, int32(fr.Width), int32(fr.Height),
		format, gl.UNSIGNED_BYTE,
		gl.Ptr(pixels))
}

// NewProgram implements the gpu.Backend interface.
func (be *Backend) NewProgram(name string, fragment string) (gpu.Program, string, error) {
	handle, diag, err := createProgram(string(shaders.StraightVertexShader), fragment)
	if err != nil {
		return 0, diag, fmt.Errorf("gl32: %s: %w", name, err)
	}
	return gpu.Program(handle), diag, nil
}

// DeleteProgram implements the gpu.Backend interface.
func (be *Backend) DeleteProgram(prog gpu.Program) {
	gl.DeleteProgram(uint32(prog))
}

// SetUniform implements the gpu.Backend interface.
func (be *Backend) SetUniform(prog gpu.Program, name string, value any) {
	gl.UseProgram(uint32(prog))
	loc := gl.GetUniformLocation(uint32(prog), gl.Str(name+"\x00"))
	if loc < 0 {
		return
	}

	switch v := value.(type) {
	case float32:
		gl.Uniform1f(loc, v)
	case [2]float32:
		gl.Uniform2f(loc, v[0], v[1])
	case [3]float32:
		gl.Uniform3f(loc, v[0], v[1], v[2])
	case [9]float32:
		gl.UniformMatrix3fv(loc, 1, false, &v[0])
	case int32:
		gl.Uniform1i(loc, v)
	default:
		logger.Logf(logger.Allow, "gl32", "unsupported uniform type for %s: %T", name, value)
	}
}

// Process implements the gpu.Backend interface.
func (be *Backend) Process(prog gpu.Program, dst gpu.Texture, width int, height int, src ...gpu.Texture) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, be.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, uint32(dst), 0)
	gl.Viewport(0, 0, int32(width), int32(height))

	gl.UseProgram(uint32(prog))
	for i, t := range src {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(i))
		gl.BindTexture(gl.TEXTURE_2D, uint32(t))
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	}

	// texture to texture processing does not flip the image
	be.drawQuad(geometry.Rect{X: -1, Y: -1, W: 2, H: 2}, geometry.UnitRect, false)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// Draw implements the gpu.Backend interface.
func (be *Backend) Draw(call gpu.DrawCall) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(call.Viewport.W), int32(call.Viewport.H))
	gl.ClearColor(call.ClearColor[0], call.ClearColor[1], call.ClearColor[2], 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	if call.Texture == 0 {
		return
	}

	prog := uint32(call.Program)
	if prog == 0 {
		prog = be.blit
	}
	gl.UseProgram(prog)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, uint32(call.Texture))
	switch call.Filter {
	case geometry.Nearest:
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	default:
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	}

	// the first row of a frame is the top of the picture
	be.drawQuad(call.ViewRect, call.TexRect, true)
}

// drawQuad draws a rectangle with texture coordinates. If flip is true the
// texture is drawn upside down.
func (be *Backend) drawQuad(view geometry.Rect, tex geometry.Rect, flip bool) {
	x0 := float32(view.X)
	y0 := float32(view.Y)
	x1 := float32(view.X + view.W)
	y1 := float32(view.Y + view.H)

	u0 := float32(tex.X)
	u1 := float32(tex.X + tex.W)
	v0 := float32(tex.Y)
	v1 := float32(tex.Y + tex.H)
	if flip {
		v0, v1 = v1, v0
	}

	// position and UV for each corner of a triangle strip
	vertices := []float32{
		x0, y0, u0, v0,
		x1, y0, u1, v0,
		x0, y1, u0, v1,
		x1, y1, u1, v1,
	}

	gl.BindVertexArray(be.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, be.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STREAM_DRAW)

	gl.EnableVertexAttribArray(positionAttrib)
	gl.EnableVertexAttribArray(uvAttrib)
	gl.VertexAttribPointerWithOffset(positionAttrib, 2, gl.FLOAT, false, 16, 0)
	gl.VertexAttribPointerWithOffset(uvAttrib, 2, gl.FLOAT, false, 16, 8)

	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)

	gl.BindVertexArray(0)
}

// compile and link shader programs. returns the program handle and any
// diagnostic output from the compiler and linker.
func createProgram(vertProgram string, fragProgram string) (uint32, string, error) {
	vertHandle := gl.CreateShader(gl.VERTEX_SHADER)
	fragHandle := gl.CreateShader(gl.FRAGMENT_SHADER)
	defer gl.DeleteShader(vertHandle)
	defer gl.DeleteShader(fragHandle)

	glShaderSource := func(handle uint32, source string) {
		csource, free := gl.Strs(source + "\x00")
		defer free()

		gl.ShaderSource(handle, 1, csource, nil)
	}

	glShaderSource(vertHandle, vertProgram)
	glShaderSource(fragHandle, fragProgram)

	gl.CompileShader(vertHandle)
	if log, ok := getShaderCompileError(vertHandle); !ok {
		return 0, log, fmt.Errorf("vertex shader did not compile")
	}

	gl.CompileShader(fragHandle)
	if log, ok := getShaderCompileError(fragHandle); !ok {
		return 0, log, fmt.Errorf("fragment shader did not compile")
	}

	handle := gl.CreateProgram()
	gl.AttachShader(handle, vertHandle)
	gl.AttachShader(handle, fragHandle)
	gl.BindAttribLocation(handle, positionAttrib, gl.Str("Position"+"\x00"))
	gl.BindAttribLocation(handle, uvAttrib, gl.Str("UV"+"\x00"))
	gl.LinkProgram(handle)

	if log, ok := getProgramLinkError(handle); !ok {
		gl.DeleteProgram(handle)
		return 0, log, fmt.Errorf("program did not link")
	}

	return handle, "", nil
}

// getShaderCompileError returns the most recent error generated by the
// shader compiler. The boolean is false if the shader did not compile.
func getShaderCompileError(shader uint32) (string, bool) {
	var isCompiled int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &isCompiled)
	if isCompiled != 0 {
		return "", true
	}

	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return "", false
	}

	// the log length includes the NULL character
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00"), false
}

// getProgramLinkError is the same as getShaderCompileError() except for the
// linking of a program.
func getProgramLinkError(program uint32) (string, bool) {
	var isLinked int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &isLinked)
	if isLinked != 0 {
		return "", true
	}

	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return "", false
	}

	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00"), false
}
