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

package gpu_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/crtcanvas/curated"
	"github.com/jetsetilly/crtcanvas/decoder"
	"github.com/jetsetilly/crtcanvas/geometry"
	"github.com/jetsetilly/crtcanvas/gpu"
	"github.com/jetsetilly/crtcanvas/test"
	"github.com/jetsetilly/crtcanvas/video"
)

func startPipeline(t *testing.T, shaders bool, effects bool) (*gpu.Pipeline, *gpu.Headless) {
	t.Helper()
	hl := gpu.NewHeadless(shaders)
	pl := gpu.NewPipeline(hl)
	test.DemandSuccess(t, pl.Start(effects))
	return pl, hl
}

func TestStartError(t *testing.T) {
	hl := gpu.NewHeadless(true)
	hl.StartError = errors.New("no context")
	pl := gpu.NewPipeline(hl)
	test.ExpectFailure(t, pl.Start(true))

	// destroying a pipeline that never started does nothing
	pl.Destroy()
	test.ExpectFailure(t, hl.Destroyed)
}

func TestTextureRounding(t *testing.T) {
	pl, hl := startPipeline(t, true, true)

	test.ExpectSuccess(t, pl.UploadFrame(video.NewFrame(320, 240, video.RGB)))
	w, h := pl.TextureSize()
	test.ExpectEquality(t, w, 512)
	test.ExpectEquality(t, h, 256)

	// every texture is allocated once
	test.ExpectEquality(t, hl.Allocs, 6)

	// a frame of the same size does not reallocate
	hl.ResetCalls()
	test.ExpectSuccess(t, pl.UploadFrame(video.NewFrame(320, 240, video.RGB)))
	test.ExpectEquality(t, hl.Allocs, 0)

	// nor does a different frame size that rounds to the same texture size
	test.ExpectSuccess(t, pl.UploadFrame(video.NewFrame(300, 200, video.RGB)))
	test.ExpectEquality(t, hl.Allocs, 0)

	test.ExpectSuccess(t, pl.UploadFrame(video.NewFrame(640, 480, video.RGB)))
	test.ExpectEquality(t, hl.Allocs, 6)
	w, h = pl.TextureSize()
	test.ExpectEquality(t, w, 1024)
	test.ExpectEquality(t, h, 512)

	test.ExpectFailure(t, pl.UploadFrame(nil))
	test.ExpectFailure(t, pl.UploadFrame(video.NewFrame(0, 10, video.RGB)))
}

func TestFrameToggle(t *testing.T) {
	pl, hl := startPipeline(t, true, true)

	test.ExpectSuccess(t, pl.UploadFrame(video.NewFrame(16, 16, video.Luminance)))
	a := pl.FrameTexture()
	test.ExpectSuccess(t, pl.UploadFrame(video.NewFrame(16, 16, video.Luminance)))
	b := pl.FrameTexture()
	test.ExpectSuccess(t, pl.UploadFrame(video.NewFrame(16, 16, video.Luminance)))
	c := pl.FrameTexture()

	test.ExpectInequality(t, a, b)
	test.ExpectEquality(t, a, c)
	test.ExpectEquality(t, hl.Textures[a].Uploads, 2)
	test.ExpectEquality(t, hl.Textures[b].Uploads, 1)
}

func processedPrograms(hl *gpu.Headless) []string {
	var s []string
	for _, p := range hl.Processes {
		s = append(s, hl.Programs[p.Program])
	}
	return s
}

func TestDemodulatorSelection(t *testing.T) {
	for _, tc := range []struct {
		std      decoder.Standard
		expected []string
	}{
		{std: decoder.RGB, expected: []string{"video"}},
		{std: decoder.Monochrome, expected: []string{"video"}},
		{std: decoder.NTSCYIQ, expected: []string{"ntsc", "video"}},
		{std: decoder.NTSCCXA2025AS, expected: []string{"ntsc", "video"}},
		{std: decoder.PAL, expected: []string{"pal", "video"}},
	} {
		pl, hl := startPipeline(t, true, true)
		cfg := video.DefaultConfiguration()
		cfg.Decoder = tc.std
		pl.Configure(cfg)

		test.ExpectSuccess(t, pl.UploadFrame(video.NewFrame(320, 240, video.RGB)))
		got := processedPrograms(hl)
		test.DemandEquality(t, len(got), len(tc.expected), tc.std)
		for i := range got {
			test.ExpectEquality(t, got[i], tc.expected[i], tc.std)
		}

		// the output of the pipeline is the output of the video program
		test.ExpectEquality(t, pl.Output(), hl.Processes[len(hl.Processes)-1].Dst, tc.std)
	}
}

func TestConfigureReprocesses(t *testing.T) {
	pl, hl := startPipeline(t, true, true)

	// no frame so nothing to process
	pl.Configure(video.DefaultConfiguration())
	test.ExpectEquality(t, len(hl.Processes), 0)

	test.ExpectSuccess(t, pl.UploadFrame(video.NewFrame(320, 240, video.RGB)))
	hl.ResetCalls()
	pl.Configure(video.DefaultConfiguration())
	test.ExpectEquality(t, len(hl.Processes), 1)
}

func TestUniforms(t *testing.T) {
	pl, hl := startPipeline(t, true, true)

	cfg := video.DefaultConfiguration()
	cfg.Decoder = decoder.NTSCYIQ
	cfg.CarrierFrequency = 0.25
	cfg.LinePhase = 0.5
	cfg.BlackLevel = 0.1
	cfg.Barrel = 0.2
	cfg.Brightness = 0.05
	cfg.CenterLighting = 0.5
	pl.Configure(cfg)

	ntsc := pl.Program(gpu.NTSCProgram)
	v, ok := hl.Uniform(ntsc, "CompPhase")
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, v.([2]float32), [2]float32{0.25, 0.5})
	v, _ = hl.Uniform(ntsc, "CompBlack")
	test.ExpectEquality(t, v.(float32), float32(0.1))

	u := decoder.Build(cfg.DecoderParameters()).Uniforms()
	vid := pl.Program(gpu.VideoProgram)
	v, ok = hl.Uniform(vid, "Decoder")
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, v.([9]float32), u.Matrix)
	v, ok = hl.Uniform(vid, "C0")
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, v.([3]float32), u.Taps[0])
	v, ok = hl.Uniform(vid, "C8")
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, v.([3]float32), u.Taps[8])

	scr := pl.Program(gpu.ScreenProgram)
	v, _ = hl.Uniform(scr, "CenterLighting")
	test.ExpectEquality(t, v.(float32), float32(1))
	v, _ = hl.Uniform(scr, "Barrel")
	test.ExpectEquality(t, v.(float32), float32(0.2))

	// sampler units are set when the program is created
	v, _ = hl.Uniform(pl.Program(gpu.PhosphorProgram), "NewFrame")
	test.ExpectEquality(t, v.(int32), int32(1))
}

func TestCenterLightingUniform(t *testing.T) {
	test.ExpectEquality(t, gpu.CenterLightingUniform(1), float32(0))
	test.ExpectEquality(t, gpu.CenterLightingUniform(0.5), float32(1))

	// near zero values are clamped
	test.ExpectEquality(t, gpu.CenterLightingUniform(0), float32(999))
	test.ExpectEquality(t, gpu.CenterLightingUniform(0.0001), float32(999))
}

func TestCompileFailure(t *testing.T) {
	hl := gpu.NewHeadless(true)
	hl.FailCompile["video"] = true
	pl := gpu.NewPipeline(hl)

	// start succeeds even though a program fails
	test.DemandSuccess(t, pl.Start(true))
	test.ExpectEquality(t, pl.Program(gpu.VideoProgram), gpu.Program(0))
	test.ExpectInequality(t, pl.Program(gpu.ScreenProgram), gpu.Program(0))
	test.ExpectInequality(t, pl.Program(gpu.NTSCProgram), gpu.Program(0))

	err := pl.SetEffects(true)
	test.ExpectSuccess(t, curated.Is(err, gpu.ResourceUnavailable))

	// the rest of the pipeline is unaffected
	cfg := video.DefaultConfiguration()
	cfg.Decoder = decoder.NTSCYIQ
	pl.Configure(cfg)
	test.ExpectSuccess(t, pl.UploadFrame(video.NewFrame(320, 240, video.RGB)))
	test.ExpectEquality(t, processedPrograms(hl)[0], "ntsc")

	pl.Draw(geometry.Size{W: 640, H: 480})
	test.DemandEquality(t, len(hl.Draws), 1)
	test.ExpectEquality(t, hl.Draws[0].Program, pl.Program(gpu.ScreenProgram))

	// without the video program the clear colour ignores brightness
	test.ExpectEquality(t, hl.Draws[0].ClearColor, [3]float32{})
}

func TestNoShaderSupport(t *testing.T) {
	pl, hl := startPipeline(t, false, true)

	for k := range gpu.NumPrograms {
		test.ExpectEquality(t, pl.Program(k), gpu.Program(0), k)
	}
	test.ExpectSuccess(t, pl.SetEffects(true))

	cfg := video.DefaultConfiguration()
	cfg.Decoder = decoder.PAL
	cfg.Brightness = 0.5
	pl.Configure(cfg)
	test.ExpectSuccess(t, pl.UploadFrame(video.NewFrame(320, 240, video.RGB)))
	test.ExpectEquality(t, len(hl.Processes), 0)

	// the frame is drawn directly
	pl.Draw(geometry.Size{W: 640, H: 480})
	test.DemandEquality(t, len(hl.Draws), 1)
	test.ExpectEquality(t, hl.Draws[0].Program, gpu.Program(0))
	test.ExpectEquality(t, hl.Draws[0].Texture, pl.FrameTexture())
	test.ExpectEquality(t, hl.Draws[0].ClearColor, [3]float32{})
}

func TestEffectsToggle(t *testing.T) {
	pl, hl := startPipeline(t, true, false)
	test.ExpectEquality(t, len(hl.Programs), 0)

	test.ExpectSuccess(t, pl.SetEffects(true))
	test.ExpectEquality(t, len(hl.Programs), int(gpu.NumPrograms))

	// reloading does not leak programs
	test.ExpectSuccess(t, pl.SetEffects(true))
	test.ExpectEquality(t, len(hl.Programs), int(gpu.NumPrograms))

	test.ExpectSuccess(t, pl.SetEffects(false))
	test.ExpectEquality(t, len(hl.Programs), 0)
	test.ExpectEquality(t, pl.Program(gpu.ScreenProgram), gpu.Program(0))
}

func TestPhosphor(t *testing.T) {
	pl, hl := startPipeline(t, true, true)

	cfg := video.DefaultConfiguration()
	cfg.Persistence = 0.5
	pl.Configure(cfg)

	test.ExpectSuccess(t, pl.UploadFrame(video.NewFrame(320, 240, video.RGB)))
	test.DemandEquality(t, len(hl.Processes), 2)
	first := hl.Processes[1]
	test.ExpectEquality(t, hl.Programs[first.Program], "phosphor")
	test.DemandEquality(t, len(first.Src), 2)

	// the new frame is the output of the video program
	test.ExpectEquality(t, first.Src[1], hl.Processes[0].Dst)
	test.ExpectEquality(t, pl.Output(), first.Dst)

	// the next frame accumulates onto the previous result
	hl.ResetCalls()
	test.ExpectSuccess(t, pl.UploadFrame(video.NewFrame(320, 240, video.RGB)))
	second := hl.Processes[1]
	test.ExpectEquality(t, second.Src[0], first.Dst)
	test.ExpectInequality(t, second.Dst, first.Dst)
}

func TestDraw(t *testing.T) {
	pl, hl := startPipeline(t, true, true)

	cfg := video.DefaultConfiguration()
	cfg.Brightness = 0.25
	cfg.ScanlineAlpha = 0.5
	pl.Configure(cfg)

	// nothing to draw but the viewport is still cleared
	pl.Draw(geometry.Size{W: 640, H: 480})
	test.DemandEquality(t, len(hl.Draws), 1)
	test.ExpectEquality(t, hl.Draws[0].Texture, gpu.Texture(0))
	test.ExpectEquality(t, hl.Draws[0].ClearColor, [3]float32{0.25, 0.25, 0.25})

	test.ExpectSuccess(t, pl.UploadFrame(video.NewFrame(640, 480, video.RGB)))
	res := pl.Draw(geometry.Size{W: 640, H: 480})
	test.DemandEquality(t, len(hl.Draws), 2)
	call := hl.Draws[1]
	test.ExpectEquality(t, call.Texture, pl.Output())
	test.ExpectEquality(t, call.Filter, geometry.Nearest)
	test.ExpectEquality(t, call.ViewRect, res.ViewRect)

	scr := pl.Program(gpu.ScreenProgram)
	v, _ := hl.Uniform(scr, "ScanlineAlpha")
	test.ExpectEquality(t, v.(float32), float32(0))
	v, _ = hl.Uniform(scr, "TextureSize")
	test.ExpectEquality(t, v.([2]float32), [2]float32{1024, 512})
}

func TestDestroy(t *testing.T) {
	pl, hl := startPipeline(t, true, true)
	test.ExpectEquality(t, len(hl.Textures), 6)

	pl.Destroy()
	test.ExpectSuccess(t, hl.Destroyed)
	test.ExpectEquality(t, len(hl.Textures), 0)
	test.ExpectEquality(t, len(hl.Programs), 0)
}
