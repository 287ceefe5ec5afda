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

package logger

// Permission implementations indicate whether the environment making a log
// request is allowed to create new log entries. The render loop for example,
// only allows logging for the first occurrence of a repeating problem.
type Permission interface {
	AllowLogging() bool
}

type allow struct{}

func (_ allow) AllowLogging() bool {
	return true
}

// Allow indicates that the logging request should be allowed. A good default
// to use if a log entry should always be made.
var Allow Permission = allow{}

// Once is a Permission that allows logging exactly one time. The zero value
// is ready to use. Reset() rearms it.
type Once struct {
	done bool
}

// AllowLogging implements the Permission interface.
func (o *Once) AllowLogging() bool {
	if o.done {
		return false
	}
	o.done = true
	return true
}

// Reset allows the next logging request.
func (o *Once) Reset() {
	o.done = false
}
