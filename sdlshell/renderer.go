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

// requirement is the OpenGL version required by the backend compiled into the
// shell.
type requirement int

// list of valid requirement values
const (
	requiresOpenGL32 requirement = iota
	requiresOpenGL21
)

func (r requirement) String() string {
	switch r {
	case requiresOpenGL32:
		return "OpenGL 3.2"
	case requiresOpenGL21:
		return "OpenGL 2.1"
	}
	return "unknown requirement"
}
