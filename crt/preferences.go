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

// Package crt stores the display configuration in the preferences file. The
// values are converted to a video.Configuration for posting to the canvas.
package crt

import (
	"github.com/jetsetilly/crtcanvas/decoder"
	"github.com/jetsetilly/crtcanvas/geometry"
	"github.com/jetsetilly/crtcanvas/hid"
	"github.com/jetsetilly/crtcanvas/prefs"
	"github.com/jetsetilly/crtcanvas/resources"
	"github.com/jetsetilly/crtcanvas/video"
)

// Preferences for the display. Every field of video.Configuration has a
// preference value.
type Preferences struct {
	dsk *prefs.Disk

	Shaders prefs.Bool

	Decoder     prefs.String
	ZoomMode    prefs.String
	CaptureMode prefs.String

	DefaultViewWidth  prefs.Float
	DefaultViewHeight prefs.Float
	CanvasWidth       prefs.Float
	CanvasHeight      prefs.Float

	ContentX      prefs.Float
	ContentY      prefs.Float
	ContentWidth  prefs.Float
	ContentHeight prefs.Float

	LumaCutoff       prefs.Float
	ChromaCutoff     prefs.Float
	CarrierFrequency prefs.Float
	LinePhase        prefs.Float

	BlackLevel prefs.Float
	WhiteLevel prefs.Float
	Brightness prefs.Float
	Contrast   prefs.Float
	Saturation prefs.Float
	Hue        prefs.Float

	Barrel         prefs.Float
	ScanlineAlpha  prefs.Float
	CenterLighting prefs.Float
	Persistence    prefs.Float
}

const shaders = true

// NewPreferences is the preferred method of initialisation for the Preferences
// type. If path is empty the default preferences file is used.
func NewPreferences(path string) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	// the string values are checked before they are stored
	p.Decoder.SetHookPre(func(v prefs.Value) error {
		_, err := decoder.ParseStandard(v.(string))
		return err
	})
	p.ZoomMode.SetHookPre(func(v prefs.Value) error {
		_, err := geometry.ParseZoomMode(v.(string))
		return err
	})
	p.CaptureMode.SetHookPre(func(v prefs.Value) error {
		_, err := hid.ParseCaptureMode(v.(string))
		return err
	})

	var err error

	if path == "" {
		path, err = resources.JoinPath(prefs.DefaultPrefsFile)
		if err != nil {
			return nil, err
		}
	}

	p.dsk, err = prefs.NewDisk(path)
	if err != nil {
		return nil, err
	}

	entries := []struct {
		key string
		p   interface {
			String() string
			Set(prefs.Value) error
			Get() prefs.Value
			Reset() error
		}
	}{
		{"crt.shaders", &p.Shaders},
		{"crt.decoder", &p.Decoder},
		{"crt.zoomMode", &p.ZoomMode},
		{"crt.captureMode", &p.CaptureMode},
		{"crt.defaultViewWidth", &p.DefaultViewWidth},
		{"crt.defaultViewHeight", &p.DefaultViewHeight},
		{"crt.canvasWidth", &p.CanvasWidth},
		{"crt.canvasHeight", &p.CanvasHeight},
		{"crt.contentX", &p.ContentX},
		{"crt.contentY", &p.ContentY},
		{"crt.contentWidth", &p.ContentWidth},
		{"crt.contentHeight", &p.ContentHeight},
		{"crt.lumaCutoff", &p.LumaCutoff},
		{"crt.chromaCutoff", &p.ChromaCutoff},
		{"crt.carrierFrequency", &p.CarrierFrequency},
		{"crt.linePhase", &p.LinePhase},
		{"crt.blackLevel", &p.BlackLevel},
		{"crt.whiteLevel", &p.WhiteLevel},
		{"crt.brightness", &p.Brightness},
		{"crt.contrast", &p.Contrast},
		{"crt.saturation", &p.Saturation},
		{"crt.hue", &p.Hue},
		{"crt.barrel", &p.Barrel},
		{"crt.scanlineAlpha", &p.ScanlineAlpha},
		{"crt.centerLighting", &p.CenterLighting},
		{"crt.persistence", &p.Persistence},
	}

	for _, e := range entries {
		err = p.dsk.Add(e.key, e.p)
		if err != nil {
			return nil, err
		}
	}

	err = p.dsk.Load(true)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// Path returns the file the preferences are stored in.
func (p *Preferences) Path() string {
	return p.dsk.Path()
}

// SetDefaults reverts all settings to the values of
// video.DefaultConfiguration().
func (p *Preferences) SetDefaults() {
	_ = p.Shaders.Set(shaders)
	_ = p.SetConfiguration(video.DefaultConfiguration())
}

// SetConfiguration sets every value from the configuration.
func (p *Preferences) SetConfiguration(cfg video.Configuration) error {
	for _, s := range []struct {
		p *prefs.String
		v string
	}{
		{&p.Decoder, cfg.Decoder.String()},
		{&p.ZoomMode, cfg.ZoomMode.String()},
		{&p.CaptureMode, cfg.CaptureMode.String()},
	} {
		if err := s.p.Set(s.v); err != nil {
			return err
		}
	}

	for _, f := range []struct {
		p *prefs.Float
		v float64
	}{
		{&p.DefaultViewWidth, cfg.DefaultViewSize.W},
		{&p.DefaultViewHeight, cfg.DefaultViewSize.H},
		{&p.CanvasWidth, cfg.CanvasSize.W},
		{&p.CanvasHeight, cfg.CanvasSize.H},
		{&p.ContentX, cfg.ContentRect.X},
		{&p.ContentY, cfg.ContentRect.Y},
		{&p.ContentWidth, cfg.ContentRect.W},
		{&p.ContentHeight, cfg.ContentRect.H},
		{&p.LumaCutoff, cfg.LumaCutoff},
		{&p.ChromaCutoff, cfg.ChromaCutoff},
		{&p.CarrierFrequency, cfg.CarrierFrequency},
		{&p.LinePhase, cfg.LinePhase},
		{&p.BlackLevel, cfg.BlackLevel},
		{&p.WhiteLevel, cfg.WhiteLevel},
		{&p.Brightness, cfg.Brightness},
		{&p.Contrast, cfg.Contrast},
		{&p.Saturation, cfg.Saturation},
		{&p.Hue, cfg.Hue},
		{&p.Barrel, cfg.Barrel},
		{&p.ScanlineAlpha, cfg.ScanlineAlpha},
		{&p.CenterLighting, cfg.CenterLighting},
		{&p.Persistence, cfg.Persistence},
	} {
		if err := f.p.Set(f.v); err != nil {
			return err
		}
	}

	return nil
}

func float(p *prefs.Float) float64 {
	return p.Get().(float64)
}

// Configuration returns a snapshot of the preferences as a
// video.Configuration.
func (p *Preferences) Configuration() video.Configuration {
	cfg := video.DefaultConfiguration()

	// string values are checked by the hooks so the parse functions will
	// only fail if the value has never been set
	if d, err := decoder.ParseStandard(p.Decoder.String()); err == nil {
		cfg.Decoder = d
	}
	if z, err := geometry.ParseZoomMode(p.ZoomMode.String()); err == nil {
		cfg.ZoomMode = z
	}
	if c, err := hid.ParseCaptureMode(p.CaptureMode.String()); err == nil {
		cfg.CaptureMode = c
	}

	cfg.DefaultViewSize = geometry.Size{W: float(&p.DefaultViewWidth), H: float(&p.DefaultViewHeight)}
	cfg.CanvasSize = geometry.Size{W: float(&p.CanvasWidth), H: float(&p.CanvasHeight)}
	cfg.ContentRect = geometry.Rect{
		X: float(&p.ContentX),
		Y: float(&p.ContentY),
		W: float(&p.ContentWidth),
		H: float(&p.ContentHeight),
	}

	cfg.LumaCutoff = float(&p.LumaCutoff)
	cfg.ChromaCutoff = float(&p.ChromaCutoff)
	cfg.CarrierFrequency = float(&p.CarrierFrequency)
	cfg.LinePhase = float(&p.LinePhase)
	cfg.BlackLevel = float(&p.BlackLevel)
	cfg.WhiteLevel = float(&p.WhiteLevel)
	cfg.Brightness = float(&p.Brightness)
	cfg.Contrast = float(&p.Contrast)
	cfg.Saturation = float(&p.Saturation)
	cfg.Hue = float(&p.Hue)
	cfg.Barrel = float(&p.Barrel)
	cfg.ScanlineAlpha = float(&p.ScanlineAlpha)
	cfg.CenterLighting = float(&p.CenterLighting)
	cfg.Persistence = float(&p.Persistence)

	return cfg
}

// Load CRT values from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load(false)
}

// Save current CRT values to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
