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

package decoder

import (
	"fmt"
	"strings"
)

// Standard is the video standard used to decode the frame.
type Standard int

// List of valid Standard values.
const (
	Monochrome Standard = iota
	RGB
	NTSCYIQ
	NTSCYUV
	NTSCCXA2025AS
	PAL
	numStandards
)

var standardNames = [numStandards]string{
	"monochrome",
	"rgb",
	"ntsc-yiq",
	"ntsc-yuv",
	"ntsc-cxa2025as",
	"pal",
}

func (s Standard) String() string {
	if s < 0 || s >= numStandards {
		return fmt.Sprintf("unknown standard (%d)", int(s))
	}
	return standardNames[s]
}

// Standards returns a list of every standard. Useful for help messages.
func Standards() []Standard {
	l := make([]Standard, numStandards)
	for i := range l {
		l[i] = Standard(i)
	}
	return l
}

// ParseStandard converts a string to a Standard. The comparison is case
// insensitive and underscores are treated as hyphens.
func ParseStandard(s string) (Standard, error) {
	s = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for i, n := range standardNames {
		if n == s {
			return Standard(i), nil
		}
	}
	return RGB, fmt.Errorf("decoder: unrecognised standard %q", s)
}

// Composite returns true if the standard decodes a composite signal. Composite
// frames are demodulated before decoding.
func (s Standard) Composite() bool {
	return s.NTSC() || s.PAL()
}

// NTSC returns true for the NTSC decoders.
func (s Standard) NTSC() bool {
	return s == NTSCYIQ || s == NTSCYUV || s == NTSCCXA2025AS
}

// PAL returns true for the PAL decoder.
func (s Standard) PAL() bool {
	return s == PAL
}
