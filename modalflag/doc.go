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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes and
// allows different flags for each mode.
//
// Unlike flag.FlagSet, the arguments are given to NewArgs() and Parse() is
// called with no arguments. This allows the same argument list to be parsed
// in layers, one layer for each mode:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "TAPS")
//
//	p, err := md.Parse()
//	switch p {
//	case modalflag.ParseHelp:
//		return nil
//	case modalflag.ParseError:
//		return err
//	}
//
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		decoder := md.AddString("decoder", "ntsc-yiq", "video decoder")
//		...
//	}
//
// The first sub-mode in the list is the default mode and is selected if the
// first argument after the flags does not name a mode. Sub-mode comparisons
// are case insensitive.
//
// After parsing, arguments that are not flags or mode selectors are available
// through RemainingArgs() and GetArg().
package modalflag
