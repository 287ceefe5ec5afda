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

package resources_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/crtcanvas/resources"
	"github.com/jetsetilly/crtcanvas/test"
)

func TestPortableJoinPath(t *testing.T) {
	t.Chdir(t.TempDir())
	test.DemandSuccess(t, os.Mkdir(".crtcanvas", 0o700))

	p, err := resources.JoinPath("prefs", "crt")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, filepath.Join(".crtcanvas", "prefs", "crt"))

	// intermediate directory has been created but the file has not
	info, err := os.Stat(filepath.Join(".crtcanvas", "prefs"))
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, info.IsDir())

	_, err = os.Stat(p)
	test.ExpectFailure(t, err)

	// base path is not prepended twice
	q, err := resources.JoinPath(p)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, q, p)
}
