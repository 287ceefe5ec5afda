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

package main

import (
	"fmt"
	"image"
	"io"
	"os"
	"os/signal"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/jetsetilly/crtcanvas/canvas"
	"github.com/jetsetilly/crtcanvas/crt"
	"github.com/jetsetilly/crtcanvas/decoder"
	"github.com/jetsetilly/crtcanvas/hid"
	"github.com/jetsetilly/crtcanvas/logger"
	"github.com/jetsetilly/crtcanvas/modalflag"
	"github.com/jetsetilly/crtcanvas/prefs"
	"github.com/jetsetilly/crtcanvas/sdlshell"
	"github.com/jetsetilly/crtcanvas/statsview"
	"github.com/jetsetilly/crtcanvas/testpattern"
	"github.com/jetsetilly/crtcanvas/video"
)

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"

	// reset interrupt signal handling. used when the mode has a better way of
	// ending than the fallback handler.
	//
	// takes no arguments.
	reqNoIntSig stateReq = "NOINTSIG"
)

type stateRequest struct {
	req  stateReq
	args any
}

// GuiCreator is implemented by any type created on the main thread by the
// mainSync creator channel.
type GuiCreator interface {
	// cleanup resources used by the gui
	Destroy(io.Writer)

	// Service() should not pause or loop longer than necessary (if at all). It
	// MUST ONLY by called as part of a larger loop from the main thread. It
	// should service all gui events that are not safe to do in sub-threads.
	Service()
}

type mainSync struct {
	state   chan stateRequest
	creator chan func() (GuiCreator, error)

	// the result of creator will be returned on either of these two channels.
	creation      chan GuiCreator
	creationError chan error
}

// the rate at which frames are sent to the canvas
const frameInterval = time.Second / 60

func main() {
	sync := &mainSync{
		state:         make(chan stateRequest),
		creator:       make(chan func() (GuiCreator, error)),
		creation:      make(chan GuiCreator),
		creationError: make(chan error),
	}

	// the value to use with os.Exit(). can be changed with reqQuit
	// stateRequest
	exitVal := 0

	// ctrl-c default handler. can be turned off with reqNoIntSig request
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	// launch program as a go routine. further communication is through
	// the mainSync instance
	go launch(sync)

	// loop until done is true. every iteration of the loop we listen for:
	//
	//  1. interrupt signals
	//  2. new gui creation functions
	//  3. state requests
	//  4. anything in the Service() function of the most recently created GUI
	//
	done := false
	var gui GuiCreator
	for !done {
		select {
		case <-intChan:
			fmt.Println("\r")
			done = true

		case creator := <-sync.creator:
			var err error

			if gui != nil {
				gui.Destroy(os.Stderr)
			}

			gui, err = creator()
			if err != nil {
				sync.creationError <- err

				// the creator returns a typed nil on error which does not
				// compare equal to a nil interface
				gui = nil
			} else {
				sync.creation <- gui
			}

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if gui != nil {
					gui.Destroy(os.Stderr)
				}

				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}

			case reqNoIntSig:
				signal.Reset(os.Interrupt)
				if state.args != nil {
					panic(fmt.Sprintf("%s does not accept any arguments", reqNoIntSig))
				}
			}

		default:
			if gui != nil {
				gui.Service()
			}
		}
	}

	fmt.Print("\r")
	os.Exit(exitVal)
}

// launch is called from main() as a goroutine. uses mainSync instance to
// indicate gui creation and to quit.
func launch(sync *mainSync) {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "HEADLESS", "TAPS")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		sync.state <- stateRequest{req: reqQuit}
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		sync.state <- stateRequest{req: reqQuit, args: 10}
		return
	}

	switch md.Mode() {
	case "RUN":
		err = run(md, sync)

	case "HEADLESS":
		err = headless(md)

	case "TAPS":
		err = taps(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		sync.state <- stateRequest{req: reqQuit, args: 20}
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}

// flags common to the RUN and HEADLESS modes
type sourceFlags struct {
	decoder *string
	capture *string
	pattern *string
	image   *string
	width   *int
	height  *int
	prefs   *string
	log     *bool
}

func addSourceFlags(md *modalflag.Modes) sourceFlags {
	return sourceFlags{
		decoder: md.AddString("decoder", "", "video decoder: monochrome, rgb, ntsc-yiq, ntsc-yuv, ntsc-cxa2025as, pal"),
		capture: md.AddString("capture", "", "input capture mode: none, click, enter"),
		pattern: md.AddString("pattern", "bars", "test pattern: bars, ramp, checker"),
		image:   md.AddString("image", "", "show image file instead of a test pattern"),
		width:   md.AddInt("width", 320, "width of the generated frames"),
		height:  md.AddInt("height", 240, "height of the generated frames"),
		prefs:   md.AddString("prefs", "", "preferences for this run only. eg. \"crt.barrel::0.2; crt.persistence::0.5\""),
		log:     md.AddBool("log", false, "echo debugging log to stdout"),
	}
}

// configuration from the preferences file and any command line overrides
func (fl sourceFlags) configuration() (*crt.Preferences, video.Configuration, error) {
	if *fl.log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	if *fl.prefs != "" {
		prefs.PushCommandLineStack(*fl.prefs)
	}

	p, err := crt.NewPreferences("")
	if err != nil {
		return nil, video.Configuration{}, err
	}

	// any values in the command line stack that have not been consumed by
	// the preferences are unrecognised
	if *fl.prefs != "" {
		if s := prefs.PopCommandLineStack(); s != "" {
			logger.Logf(logger.Allow, "crtcanvas", "unused preferences: %s", s)
		}
	}

	cfg := p.Configuration()

	if *fl.decoder != "" {
		cfg.Decoder, err = decoder.ParseStandard(*fl.decoder)
		if err != nil {
			return nil, cfg, err
		}
	}

	if *fl.capture != "" {
		cfg.CaptureMode, err = hid.ParseCaptureMode(*fl.capture)
		if err != nil {
			return nil, cfg, err
		}
	}

	return p, cfg, nil
}

// source returns a function that returns the next frame for the canvas. the
// function is called at the frame interval
func (fl sourceFlags) source(cfg video.Configuration) (func() *video.Frame, error) {
	if *fl.image != "" {
		f, err := os.Open(*fl.image)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		img, format, err := image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", *fl.image, err)
		}
		logger.Logf(logger.Allow, "crtcanvas", "%s image: %s", format, *fl.image)

		if cfg.Decoder.Composite() {
			logger.Logf(logger.Allow, "crtcanvas", "image shown with %s decoder is not a composite signal", cfg.Decoder)
		}

		fr := video.FrameFromImage(img, *fl.width, *fl.height)
		return func() *video.Frame {
			return fr
		}, nil
	}

	pattern, err := testpattern.ParsePattern(*fl.pattern)
	if err != nil {
		return nil, err
	}

	gen := testpattern.NewGenerator(pattern, *fl.width, *fl.height)
	if cfg.Decoder.Composite() {
		gen.Composite = &testpattern.Composite{
			CarrierFrequency: cfg.CarrierFrequency,
			LinePhase:        cfg.LinePhase,
			BlackLevel:       cfg.BlackLevel,
			WhiteLevel:       cfg.WhiteLevel,
		}
	}

	return gen.Frame, nil
}

func run(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	fl := addSourceFlags(md)
	shaders := md.AddBool("shaders", true, "apply CRT shader effects")
	stats := md.AddBool("statsview", false, "run stats server")
	save := md.AddBool("save", false, "save the configuration to the preferences file")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	pref, cfg, err := fl.configuration()
	if err != nil {
		return err
	}

	frame, err := fl.source(cfg)
	if err != nil {
		return err
	}

	if *stats {
		statsview.Launch(os.Stdout)
	}

	mc := &machine{}

	// create gui
	sync.creator <- func() (GuiCreator, error) {
		return sdlshell.NewShell(sdlshell.Options{
			Title:   "crtcanvas",
			Machine: mc,
			Input:   mc,
			Shaders: *shaders && pref.Shaders.Get().(bool),
		})
	}

	// wait for creator result
	var sh *sdlshell.Shell
	select {
	case g := <-sync.creation:
		sh = g.(*sdlshell.Shell)
	case err := <-sync.creationError:
		return err
	}

	// closing the window is the preferred way of ending
	sync.state <- stateRequest{req: reqNoIntSig}

	cv := sh.Canvas()
	err = cv.PostConfiguration(&cfg)
	if err != nil {
		return err
	}

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	done := false
	for !done {
		select {
		case <-sh.Done():
			done = true
		case <-ticker.C:
			err := cv.PostFrame(frame())
			if err != nil {
				logger.Log(logger.Allow, "crtcanvas", err)
			}
		}
	}

	if *save {
		err = pref.SetConfiguration(cfg)
		if err != nil {
			return err
		}
		err = pref.Save()
		if err != nil {
			return err
		}
		fmt.Printf("* preferences saved to %s\n", pref.Path())
	}

	return nil
}

func taps(md *modalflag.Modes) error {
	md.NewMode()

	dec := md.AddString("decoder", "ntsc-yiq", "video decoder: monochrome, rgb, ntsc-yiq, ntsc-yuv, ntsc-cxa2025as, pal")
	luma := md.AddFloat64("luma", 1.0, "luma cutoff as a fraction of the pixel frequency")
	chroma := md.AddFloat64("chroma", 0.0, "chroma cutoff as a fraction of the pixel frequency")
	hue := md.AddFloat64("hue", 0.0, "hue rotation in turns")
	saturation := md.AddFloat64("saturation", 1.0, "saturation")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	cfg := video.DefaultConfiguration()
	cfg.Decoder, err = decoder.ParseStandard(*dec)
	if err != nil {
		return err
	}
	cfg.LumaCutoff = *luma
	cfg.ChromaCutoff = *chroma
	cfg.Hue = *hue
	cfg.Saturation = *saturation

	err = cfg.Validate()
	if err != nil {
		return err
	}

	writeTaps(os.Stdout, decoder.Build(cfg.DecoderParameters()))

	return nil
}

func writeTaps(output io.Writer, co decoder.Coefficients) {
	fmt.Fprintln(output, "  tap      luma   chroma u   chroma v")
	for i := range co.Luma {
		fmt.Fprintf(output, "%5d %9.5f %10.5f %10.5f\n", i-len(co.Luma)/2, co.Luma[i], co.ChromaU[i], co.ChromaV[i])
	}
	fmt.Fprintln(output)
	fmt.Fprintln(output, "matrix")
	for r := range 3 {
		fmt.Fprintf(output, "%9.5f %9.5f %9.5f\n", co.Matrix.At(r, 0), co.Matrix.At(r, 1), co.Matrix.At(r, 2))
	}
}

// machine is a stand-in for an emulated machine. input notifications are
// logged and the clipboard is a string.
type machine struct {
	clipboard string
}

// Notify implements the hid.Listener interface.
func (mc *machine) Notify(n hid.Notification) {
	logger.Logf(logger.Allow, "machine", "%s %d: %#04x %.3f", n.Channel, n.Device, n.Usage, n.Value)
}

// CaptureChanged implements the hid.Listener interface.
func (mc *machine) CaptureChanged(c hid.Capture) {
	logger.Logf(logger.Allow, "machine", "capture: %s", c)
}

// Copy implements the canvas.Machine interface.
func (mc *machine) Copy() (string, bool) {
	return mc.clipboard, mc.clipboard != ""
}

// Paste implements the canvas.Machine interface.
func (mc *machine) Paste(s string) bool {
	mc.clipboard = s
	logger.Logf(logger.Allow, "machine", "pasted %d characters", len(s))
	return true
}

var _ canvas.Machine = (*machine)(nil)
var _ hid.Listener = (*machine)(nil)
