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
	"fmt"

	"github.com/jetsetilly/crtcanvas/video"
)

// HeadlessTexture is the state of a texture created by the Headless backend.
type HeadlessTexture struct {
	Width   int
	Height  int
	Uploads int

	// the size of the most recent frame uploaded to the texture
	FrameWidth  int
	FrameHeight int
}

// ProcessCall records a call to Headless.Process().
type ProcessCall struct {
	Program Program
	Dst     Texture
	Width   int
	Height  int
	Src     []Texture
}

// Headless is a Backend that draws nothing and records every call. It is
// used for testing and for running without a display.
type Headless struct {
	// whether SupportsShaders() returns true
	Shaders bool

	// programs with names in the map fail to compile
	FailCompile map[string]bool

	// if not nil Start() returns this error
	StartError error

	Started   bool
	Destroyed bool

	Textures map[Texture]*HeadlessTexture
	Programs map[Program]string
	Uniforms map[Program]map[string]any

	Allocs    int
	Processes []ProcessCall
	Draws     []DrawCall

	nextID uint32
}

// NewHeadless is the preferred method of initialisation for the Headless
// type.
func NewHeadless(shaders bool) *Headless {
	return &Headless{
		Shaders:     shaders,
		FailCompile: make(map[string]bool),
		Textures:    make(map[Texture]*HeadlessTexture),
		Programs:    make(map[Program]string),
		Uniforms:    make(map[Program]map[string]any),
	}
}

// ResetCalls forgets the recorded allocations, processes and draws.
func (hl *Headless) ResetCalls() {
	hl.Allocs = 0
	hl.Processes = hl.Processes[:0]
	hl.Draws = hl.Draws[:0]
}

// Uniform returns the most recent value set for the named uniform.
func (hl *Headless) Uniform(prog Program, name string) (any, bool) {
	u, ok := hl.Uniforms[prog]
	if !ok {
		return nil, false
	}
	v, ok := u[name]
	return v, ok
}

// ProgramByName returns the handle of the program created with the name. Zero
// if no such program exists.
func (hl *Headless) ProgramByName(name string) Program {
	for p, n := range hl.Programs {
		if n == name {
			return p
		}
	}
	return 0
}

func (hl *Headless) id() uint32 {
	hl.nextID++
	return hl.nextID
}

// Start implements the Backend interface.
func (hl *Headless) Start() error {
	if hl.StartError != nil {
		return hl.StartError
	}
	hl.Started = true
	return nil
}

// Destroy implements the Backend interface.
func (hl *Headless) Destroy() {
	hl.Destroyed = true
}

// SupportsShaders implements the Backend interface.
func (hl *Headless) SupportsShaders() bool {
	return hl.Shaders
}

// NewTexture implements the Backend interface.
func (hl *Headless) NewTexture() Texture {
	t := Texture(hl.id())
	hl.Textures[t] = &HeadlessTexture{}
	return t
}

// DeleteTexture implements the Backend interface.
func (hl *Headless) DeleteTexture(tex Texture) {
	delete(hl.Textures, tex)
}

// AllocTexture implements the Backend interface.
func (hl *Headless) AllocTexture(tex Texture, width int, height int) {
	t, ok := hl.Textures[tex]
	if !ok {
		return
	}
	t.Width = width
	t.Height = height
	hl.Allocs++
}

// UploadTexture implements the Backend interface.
func (hl *Headless) UploadTexture(tex Texture, fr *video.Frame) {
	t, ok := hl.Textures[tex]
	if !ok {
		return
	}
	t.Uploads++
	t.FrameWidth = fr.Width
	t.FrameHeight = fr.Height
}

// NewProgram implements the Backend interface.
func (hl *Headless) NewProgram(name string, fragment string) (Program, string, error) {
	if hl.FailCompile[name] {
		return 0, fmt.Sprintf("0:1(1): error: %s does not compile", name), fmt.Errorf("headless: compile failed")
	}
	p := Program(hl.id())
	hl.Programs[p] = name
	hl.Uniforms[p] = make(map[string]any)
	return p, "", nil
}

// DeleteProgram implements the Backend interface.
func (hl *Headless) DeleteProgram(prog Program) {
	delete(hl.Programs, prog)
	delete(hl.Uniforms, prog)
}

// SetUniform implements the Backend interface.
func (hl *Headless) SetUniform(prog Program, name string, value any) {
	if u, ok := hl.Uniforms[prog]; ok {
		u[name] = value
	}
}

// Process implements the Backend interface.
func (hl *Headless) Process(prog Program, dst Texture, width int, height int, src ...Texture) {
	hl.Processes = append(hl.Processes, ProcessCall{
		Program: prog,
		Dst:     dst,
		Width:   width,
		Height:  height,
		Src:     append([]Texture(nil), src...),
	})
}

// Draw implements the Backend interface.
func (hl *Headless) Draw(call DrawCall) {
	hl.Draws = append(hl.Draws, call)
}
