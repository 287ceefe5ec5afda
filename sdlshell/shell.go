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

package sdlshell

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/jetsetilly/crtcanvas/canvas"
	"github.com/jetsetilly/crtcanvas/geometry"
	"github.com/jetsetilly/crtcanvas/hid"
	"github.com/jetsetilly/crtcanvas/logger"
	"github.com/veandco/go-sdl2/sdl"
	"golang.design/x/clipboard"
)

// Options for the NewShell() function.
type Options struct {
	Title string

	// initial size of the window. if the size is not valid the default view
	// size of the default configuration is used
	ViewSize geometry.Size

	// the emulated machine. both fields may be nil
	Machine canvas.Machine
	Input   hid.Listener

	// whether shader effects are enabled at start
	Shaders bool
}

// Shell is a window with an OpenGL context and a canvas drawing into it.
// Input events for the window are passed to the canvas.
//
// All functions must be called from the same goroutine, which should be the
// main goroutine.
type Shell struct {
	window    *sdl.Window
	glContext sdl.GLContext

	canvas *canvas.Canvas
	input  hid.Listener

	joysticks map[sdl.JoystickID]int
	opened    []*sdl.Joystick

	// clipboard is initialised on first use
	clipboardInit bool
	clipboardOK   bool

	fullScreen bool
	shaders    bool

	// the window needs to be redrawn even if nothing has changed
	forceDraw bool

	// the default view size of the configuration has been applied to the
	// window
	resized bool

	// closed when the window is closed by the user
	done chan struct{}
	quit bool
}

// NewShell is the preferred method of initialisation for the Shell type.
func NewShell(opts Options) (*Shell, error) {
	// the SDL package calls LockOSThread() but we call it here too. it can't
	// hurt and we never unlock it in any case
	runtime.LockOSThread()

	err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_JOYSTICK | sdl.INIT_EVENTS)
	if err != nil {
		return nil, fmt.Errorf("sdlshell: %w", err)
	}

	err = setAttributes(requires)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("sdlshell: %w", err)
	}

	var sdlVersion sdl.Version
	sdl.VERSION(&sdlVersion)
	logger.Logf(logger.Allow, "sdlshell", "version %d.%d.%d", sdlVersion.Major, sdlVersion.Minor, sdlVersion.Patch)
	logger.Logf(logger.Allow, "sdlshell", "requires %s", requires)

	sh := &Shell{
		input:     opts.Input,
		joysticks: make(map[sdl.JoystickID]int),
		shaders:   opts.Shaders,
		forceDraw: true,
		done:      make(chan struct{}),
	}

	sz := opts.ViewSize
	if !sz.Valid() {
		sz = geometry.Size{W: 640, H: 480}
	} else {
		sh.resized = true
	}

	sh.window, err = sdl.CreateWindow(opts.Title,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(sz.W), int32(sz.H),
		sdl.WINDOW_OPENGL|sdl.WINDOW_ALLOW_HIGHDPI|sdl.WINDOW_RESIZABLE)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("sdlshell: %w", err)
	}

	sh.glContext, err = sh.window.GLCreateContext()
	if err != nil {
		_ = sh.destroyWindow()
		return nil, fmt.Errorf("sdlshell: %w", err)
	}
	err = sh.window.GLMakeCurrent(sh.glContext)
	if err != nil {
		_ = sh.destroyWindow()
		return nil, fmt.Errorf("sdlshell: %w", err)
	}

	err = sdl.GLSetSwapInterval(1)
	if err != nil {
		logger.Logf(logger.Allow, "sdlshell", "GLSetSwapInterval(1): %s", err.Error())
	}

	// the shell is the listener for the canvas. notifications for the machine
	// are forwarded to the input listener
	sh.canvas = canvas.NewCanvas(newBackend(), sh, opts.Machine)
	err = sh.canvas.SetShaderEffects(opts.Shaders)
	if err != nil {
		logger.Log(logger.Allow, "sdlshell", err)
	}
	err = sh.canvas.Initialize()
	if err != nil {
		_ = sh.destroyWindow()
		return nil, fmt.Errorf("sdlshell: %w", err)
	}

	sh.openJoysticks()
	sdl.StartTextInput()

	return sh, nil
}

func setAttributes(req requirement) error {
	var err error

	switch req {
	case requiresOpenGL32:
		err = sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 3)
		if err != nil {
			return err
		}
		err = sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 2)
		if err != nil {
			return err
		}
		err = sdl.GLSetAttribute(sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG)
		if err != nil {
			return err
		}
		err = sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
		if err != nil {
			return err
		}
	case requiresOpenGL21:
		err = sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 2)
		if err != nil {
			return err
		}
		err = sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
		if err != nil {
			return err
		}
	}

	return nil
}

func (sh *Shell) openJoysticks() {
	for i := 0; i < sdl.NumJoysticks(); i++ {
		if len(sh.opened) >= hid.NumJoysticks {
			break
		}
		joy := sdl.JoystickOpen(i)
		if joy == nil || !joy.Attached() {
			continue
		}
		logger.Logf(logger.Allow, "sdlshell", "joystick: %s", joy.Name())
		sh.joysticks[joy.InstanceID()] = len(sh.opened)
		sh.opened = append(sh.opened, joy)
	}

	if len(sh.opened) == 0 {
		logger.Log(logger.Allow, "sdlshell", "no joysticks found")
	}
}

// Canvas returns the canvas drawing into the window. Frames and
// configurations can be posted to the canvas from any goroutine.
func (sh *Shell) Canvas() *canvas.Canvas {
	return sh.canvas
}

// Done returns a channel that is closed when the user closes the window.
func (sh *Shell) Done() <-chan struct{} {
	return sh.done
}

// Service window events and update the canvas. It should be called
// repeatedly by the main goroutine. The function will wait a short time for
// window events if there are none pending.
func (sh *Shell) Service() {
	if sh.quit {
		return
	}

	for ev := sdl.WaitEventTimeout(5); ev != nil; ev = sdl.PollEvent() {
		sh.serviceEvent(ev)
	}

	w, h := sh.window.GLGetDrawableSize()
	if sh.canvas.Update(float64(w), float64(h), sh.forceDraw) {
		sh.window.GLSwap()
	}
	sh.forceDraw = false

	sh.applyDefaultViewSize()
}

// Run calls Service() until the window is closed or the context is cancelled.
func (sh *Shell) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sh.done:
			return
		default:
		}
		sh.Service()
	}
}

// the user has closed the window
func (sh *Shell) close() {
	if sh.quit {
		return
	}
	sh.quit = true
	close(sh.done)
}

// the window is resized to the default view size of the first configuration
// unless a size was specified when the shell was created
func (sh *Shell) applyDefaultViewSize() {
	if sh.resized {
		return
	}
	sh.resized = true

	sz := sh.canvas.DefaultViewSize()
	if !sz.Valid() {
		return
	}
	sh.window.SetSize(int32(sz.W), int32(sz.H))
	sh.forceDraw = true
}

// Destroy the canvas and then the window. Any errors are written to output.
func (sh *Shell) Destroy(output io.Writer) {
	err := sh.canvas.Shutdown()
	if err != nil {
		logger.Log(logger.Allow, "sdlshell", err)
	}

	for _, joy := range sh.opened {
		joy.Close()
	}
	sh.opened = sh.opened[:0]
	clear(sh.joysticks)

	err = sh.destroyWindow()
	if err != nil && output != nil {
		fmt.Fprintln(output, err)
	}
}

func (sh *Shell) destroyWindow() error {
	if sh.glContext != nil {
		sdl.GLDeleteContext(sh.glContext)
		sh.glContext = nil
	}
	if sh.window != nil {
		err := sh.window.Destroy()
		if err != nil {
			return fmt.Errorf("sdlshell: %w", err)
		}
		sh.window = nil
	}
	sdl.Quit()
	return nil
}

// toggle the full screen state.
func (sh *Shell) setFullScreen(fullScreen bool) {
	var err error
	if fullScreen {
		err = sh.window.SetFullscreen(sdl.WINDOW_FULLSCREEN_DESKTOP)
	} else {
		err = sh.window.SetFullscreen(0)
	}
	if err != nil {
		logger.Log(logger.Allow, "sdlshell", err)
		return
	}
	sh.fullScreen = fullScreen
	sh.forceDraw = true
}

// Notify implements the hid.Listener interface. Notifications for the host
// are handled by the shell. Notifications for the machine are forwarded to
// the input listener.
func (sh *Shell) Notify(n hid.Notification) {
	if n.Destination == hid.Machine {
		if sh.input != nil {
			sh.input.Notify(n)
		}
		return
	}

	if n.Channel != hid.Keyboard || n.Value == 0 {
		return
	}

	switch n.Usage {
	case usageF11:
		sh.setFullScreen(!sh.fullScreen)
	case usageF10:
		sh.shaders = !sh.shaders
		err := sh.canvas.SetShaderEffects(sh.shaders)
		if err != nil {
			logger.Log(logger.Allow, "sdlshell", err)
		}
		logger.Logf(logger.Allow, "sdlshell", "shader effects: %v", sh.shaders)
	}
}

// CaptureChanged implements the hid.Listener interface.
func (sh *Shell) CaptureChanged(c hid.Capture) {
	if sh.input != nil {
		sh.input.CaptureChanged(c)
	}

	var err error

	switch c {
	case hid.CaptureDisconnect:
		sdl.SetRelativeMouseMode(true)
		sh.window.SetGrab(true)
		_, err = sdl.ShowCursor(sdl.DISABLE)
	case hid.CaptureHide:
		sdl.SetRelativeMouseMode(false)
		sh.window.SetGrab(false)
		_, err = sdl.ShowCursor(sdl.DISABLE)
	default:
		sdl.SetRelativeMouseMode(false)
		sh.window.SetGrab(false)
		_, err = sdl.ShowCursor(sdl.ENABLE)
	}

	if err != nil {
		logger.Log(logger.Allow, "sdlshell", err)
	}
}

// initialise the clipboard on first use. returns false if the clipboard is
// not available
func (sh *Shell) useClipboard() bool {
	if !sh.clipboardInit {
		sh.clipboardInit = true
		err := clipboard.Init()
		if err != nil {
			logger.Logf(logger.Allow, "sdlshell", "clipboard unavailable: %v", err)
		}
		sh.clipboardOK = err == nil
	}
	return sh.clipboardOK
}

// paste the text on the host clipboard to the machine
func (sh *Shell) paste() {
	if !sh.useClipboard() {
		return
	}
	data := clipboard.Read(clipboard.FmtText)
	if len(data) == 0 {
		return
	}
	if !sh.canvas.Paste(string(data)) {
		logger.Log(logger.Allow, "sdlshell", "paste not accepted")
	}
}

// copy text from the machine to the host clipboard
func (sh *Shell) copy() {
	if !sh.useClipboard() {
		return
	}
	s, ok := sh.canvas.Copy()
	if !ok {
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(s))
}
