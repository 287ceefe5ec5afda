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
	"math"

	"github.com/jetsetilly/crtcanvas/curated"
	"github.com/jetsetilly/crtcanvas/decoder"
	"github.com/jetsetilly/crtcanvas/geometry"
	"github.com/jetsetilly/crtcanvas/gpu/shaders"
	"github.com/jetsetilly/crtcanvas/logger"
	"github.com/jetsetilly/crtcanvas/video"
)

// ResourceUnavailable is the pattern for errors returned when a program
// cannot be created.
const ResourceUnavailable = "gpu: resource unavailable: %v: %v"

// the smallest magnitude of the center lighting value before it is inverted
const minCenterLighting = 0.001

// ProgramKind identifies each of the programs used by the Pipeline.
type ProgramKind int

// List of valid ProgramKind values.
const (
	NTSCProgram ProgramKind = iota
	PALProgram
	VideoProgram
	ScreenProgram
	PhosphorProgram
	NumPrograms
)

func (k ProgramKind) String() string {
	switch k {
	case NTSCProgram:
		return "ntsc"
	case PALProgram:
		return "pal"
	case VideoProgram:
		return "video"
	case ScreenProgram:
		return "screen"
	case PhosphorProgram:
		return "phosphor"
	}
	return "unknown program"
}

func (k ProgramKind) source() []byte {
	switch k {
	case NTSCProgram:
		return shaders.NTSCShader
	case PALProgram:
		return shaders.PALShader
	case VideoProgram:
		return shaders.VideoShader
	case ScreenProgram:
		return shaders.ScreenShader
	case PhosphorProgram:
		return shaders.PhosphorShader
	}
	return nil
}

// CenterLightingUniform converts the center lighting value of a
// configuration to the value used by the screen program. A value of one is
// converted to zero, which is no falloff.
func CenterLightingUniform(centerLighting float64) float32 {
	if math.Abs(centerLighting) < minCenterLighting {
		centerLighting = minCenterLighting
	}
	return float32(1/centerLighting - 1)
}

// Pipeline is the sequence of textures and programs that turns a frame into a
// picture. It is not safe for concurrent use.
type Pipeline struct {
	backend Backend
	started bool

	programs [NumPrograms]Program

	// frames are uploaded to the inactive texture, which then becomes the
	// active texture
	frames      [2]Texture
	activeFrame int

	// intermediate results of the demodulate and decode programs
	demodulated Texture
	decoded     Texture

	// phosphor accumulation. the active texture is the most recent result
	phosphor       [2]Texture
	activePhosphor int

	// the texture that is drawn to the viewport
	output Texture

	textureWidth  int
	textureHeight int
	frameWidth    int
	frameHeight   int
	hasFrame      bool

	cfg video.Configuration
}

// NewPipeline is the preferred method of initialisation for the Pipeline
// type. The backend is not started until Start() is called.
func NewPipeline(backend Backend) *Pipeline {
	return &Pipeline{
		backend: backend,
		cfg:     video.DefaultConfiguration(),
	}
}

// Start the backend and create the textures. If effects is true the programs
// are also created. Programs that fail to be created are logged and do not
// cause Start() to fail.
func (pl *Pipeline) Start(effects bool) error {
	if pl.started {
		return nil
	}

	err := pl.backend.Start()
	if err != nil {
		return fmt.Errorf("gpu: %w", err)
	}
	pl.started = true

	for i := range pl.frames {
		pl.frames[i] = pl.backend.NewTexture()
	}
	pl.demodulated = pl.backend.NewTexture()
	pl.decoded = pl.backend.NewTexture()
	for i := range pl.phosphor {
		pl.phosphor[i] = pl.backend.NewTexture()
	}

	if effects {
		_ = pl.loadPrograms()
	}

	return nil
}

// Destroy all programs and textures and then the backend.
func (pl *Pipeline) Destroy() {
	if !pl.started {
		return
	}
	pl.started = false

	pl.deletePrograms()

	for _, t := range pl.textures() {
		pl.backend.DeleteTexture(t)
	}
	pl.frames = [2]Texture{}
	pl.phosphor = [2]Texture{}
	pl.demodulated = 0
	pl.decoded = 0
	pl.output = 0
	pl.hasFrame = false
	pl.textureWidth = 0
	pl.textureHeight = 0

	pl.backend.Destroy()
}

func (pl *Pipeline) textures() []Texture {
	return []Texture{
		pl.frames[0], pl.frames[1],
		pl.demodulated, pl.decoded,
		pl.phosphor[0], pl.phosphor[1],
	}
}

// SetEffects creates or deletes the programs. The current configuration
// should be applied again with Configure() after calling this function.
func (pl *Pipeline) SetEffects(enabled bool) error {
	if !pl.started {
		return nil
	}
	if enabled {
		return pl.loadPrograms()
	}
	pl.deletePrograms()
	return nil
}

// returns the first error encountered. every program is attempted
func (pl *Pipeline) loadPrograms() error {
	pl.deletePrograms()

	if !pl.backend.SupportsShaders() {
		logger.Log(logger.Allow, "gpu", "shaders are not supported by the backend")
		return nil
	}

	var first error

	for k := range NumPrograms {
		prog, diag, err := pl.backend.NewProgram(k.String(), string(k.source()))
		if err != nil {
			err = curated.Errorf(ResourceUnavailable, k, err)
			logger.Log(logger.Allow, "gpu", err)
			if diag != "" {
				logger.Logf(logger.Allow, "gpu", "%s: %s", k, diag)
			}
			if first == nil {
				first = err
			}
			continue
		}

		pl.programs[k] = prog
		pl.backend.SetUniform(prog, "Texture", int32(0))
		if k == PhosphorProgram {
			pl.backend.SetUniform(prog, "NewFrame", int32(1))
		}
	}

	return first
}

func (pl *Pipeline) deletePrograms() {
	for i, prog := range pl.programs {
		if prog != 0 {
			pl.backend.DeleteProgram(prog)
		}
		pl.programs[i] = 0
	}
}

// Program returns the program handle for the kind of program. Zero if the
// program does not exist.
func (pl *Pipeline) Program(k ProgramKind) Program {
	if k < 0 || k >= NumPrograms {
		return 0
	}
	return pl.programs[k]
}

// TextureSize returns the size of the textures. The size is the frame size
// rounded up to powers of two.
func (pl *Pipeline) TextureSize() (int, int) {
	return pl.textureWidth, pl.textureHeight
}

// FrameTexture returns the texture containing the most recent frame.
func (pl *Pipeline) FrameTexture() Texture {
	return pl.frames[pl.activeFrame]
}

// Output returns the texture that is drawn to the viewport.
func (pl *Pipeline) Output() Texture {
	return pl.output
}

// Configure sets the uniforms of every program from the configuration. If a
// frame has been uploaded it is processed again.
func (pl *Pipeline) Configure(cfg video.Configuration) {
	pl.cfg = cfg

	co := decoder.Build(cfg.DecoderParameters())
	u := co.Uniforms()

	phase := [2]float32{float32(cfg.CarrierFrequency), float32(cfg.LinePhase)}
	for _, k := range []ProgramKind{NTSCProgram, PALProgram} {
		if prog := pl.programs[k]; prog != 0 {
			pl.backend.SetUniform(prog, "CompPhase", phase)
			pl.backend.SetUniform(prog, "CompBlack", float32(cfg.BlackLevel))
		}
	}

	if prog := pl.programs[VideoProgram]; prog != 0 {
		for i, c := range u.Taps {
			pl.backend.SetUniform(prog, fmt.Sprintf("C%d", i), c)
		}
		pl.backend.SetUniform(prog, "Decoder", u.Matrix)
	}

	if prog := pl.programs[ScreenProgram]; prog != 0 {
		pl.backend.SetUniform(prog, "Barrel", float32(cfg.Barrel))
		pl.backend.SetUniform(prog, "CenterLighting", CenterLightingUniform(cfg.CenterLighting))
		pl.backend.SetUniform(prog, "Brightness", float32(cfg.Brightness))
	}

	if prog := pl.programs[PhosphorProgram]; prog != 0 {
		pl.backend.SetUniform(prog, "Latency", float32(cfg.Persistence))
	}

	if pl.hasFrame {
		pl.process()
	}
}

// UploadFrame copies the frame to the GPU and processes it. The textures are
// reallocated if the frame requires a different texture size.
func (pl *Pipeline) UploadFrame(fr *video.Frame) error {
	if fr == nil {
		return fmt.Errorf("gpu: nil frame")
	}
	if err := fr.Validate(); err != nil {
		return fmt.Errorf("gpu: %w", err)
	}

	w := geometry.NextPowerOfTwo(fr.Width)
	h := geometry.NextPowerOfTwo(fr.Height)
	if w != pl.textureWidth || h != pl.textureHeight {
		pl.textureWidth = w
		pl.textureHeight = h
		for _, t := range pl.textures() {
			pl.backend.AllocTexture(t, w, h)
		}
		logger.Logf(logger.Allow, "gpu", "texture size: %dx%d", w, h)
	}

	next := 1 - pl.activeFrame
	pl.backend.UploadTexture(pl.frames[next], fr)
	pl.activeFrame = next

	pl.frameWidth = fr.Width
	pl.frameHeight = fr.Height
	pl.hasFrame = true

	pl.process()

	return nil
}

// run the active frame through the offscreen programs
func (pl *Pipeline) process() {
	src := pl.frames[pl.activeFrame]
	w := pl.textureWidth
	h := pl.textureHeight
	size := [2]float32{float32(w), float32(h)}

	if pl.cfg.Decoder.Composite() {
		k := NTSCProgram
		if pl.cfg.Decoder.PAL() {
			k = PALProgram
		}
		if prog := pl.programs[k]; prog != 0 {
			pl.backend.SetUniform(prog, "TextureSize", size)
			pl.backend.Process(prog, pl.demodulated, w, h, src)
			src = pl.demodulated
		}
	}

	if prog := pl.programs[VideoProgram]; prog != 0 {
		pl.backend.SetUniform(prog, "TextureSize", size)
		pl.backend.Process(prog, pl.decoded, w, h, src)
		src = pl.decoded
	}

	if prog := pl.programs[PhosphorProgram]; prog != 0 && pl.cfg.Persistence > 0 {
		dst := pl.phosphor[1-pl.activePhosphor]
		pl.backend.Process(prog, dst, w, h, pl.phosphor[pl.activePhosphor], src)
		pl.activePhosphor = 1 - pl.activePhosphor
		src = dst
	}

	pl.output = src
}

// Draw the output to a viewport of the specified size. Returns the geometry
// used for the draw.
func (pl *Pipeline) Draw(viewport geometry.Size) geometry.Result {
	res := geometry.Calculate(geometry.Input{
		Viewport:      viewport,
		Frame:         geometry.Size{W: float64(pl.frameWidth), H: float64(pl.frameHeight)},
		Texture:       geometry.Size{W: float64(pl.textureWidth), H: float64(pl.textureHeight)},
		Canvas:        pl.cfg.CanvasSize,
		ContentRect:   pl.cfg.ContentRect,
		Zoom:          pl.cfg.ZoomMode,
		ScanlineAlpha: pl.cfg.ScanlineAlpha,
	})

	call := DrawCall{
		TexRect:  res.TexRect,
		ViewRect: res.ViewRect,
		Filter:   res.Filter,
		Viewport: viewport,
	}

	// brightness is added to the picture by the screen program. the area
	// outside the picture is cleared to the same level
	if pl.programs[VideoProgram] != 0 {
		b := float32(pl.cfg.Brightness)
		call.ClearColor = [3]float32{b, b, b}
	}

	if pl.hasFrame {
		call.Texture = pl.output
	}

	if prog := pl.programs[ScreenProgram]; prog != 0 {
		pl.backend.SetUniform(prog, "TextureSize", [2]float32{float32(pl.textureWidth), float32(pl.textureHeight)})
		pl.backend.SetUniform(prog, "BarrelCenter", [2]float32{float32(res.BarrelCenter[0]), float32(res.BarrelCenter[1])})
		pl.backend.SetUniform(prog, "ScanlineAlpha", float32(res.ScanlineAlpha))
		call.Program = prog
	}

	pl.backend.Draw(call)

	return res
}
