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

package prefs

import "slices"

// list of preference values that are no longer used. keys are added here
// when a preference is removed so that old values are dropped from the file
// when it is next saved.
var defunct = []string{}

// returns true if string is in list of defunct values.
func isDefunct(s string) bool {
	return slices.Contains(defunct, s)
}
