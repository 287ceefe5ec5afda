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

package prefs_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/crtcanvas/prefs"
	"github.com/jetsetilly/crtcanvas/test"
)

func tmpPrefFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "crtcanvas_prefs_test")
}

func cmpTmpFile(t *testing.T, fn string, expected string) {
	t.Helper()

	data, err := os.ReadFile(fn)
	if err != nil {
		t.Errorf("error reading tmp file: %v", err)
		return
	}

	expected = fmt.Sprintf("%s\n%s", prefs.WarningBoilerPlate, expected)
	test.ExpectEquality(t, string(data), expected)
}

func TestBool(t *testing.T) {
	fn := tmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Bool
	var w prefs.Bool
	var x prefs.Bool
	test.ExpectSuccess(t, dsk.Add("test", &v))
	test.ExpectSuccess(t, dsk.Add("testB", &w))
	test.ExpectSuccess(t, dsk.Add("testC", &x))

	test.ExpectSuccess(t, v.Set(true))
	test.ExpectSuccess(t, w.Set("foo"))
	test.ExpectSuccess(t, x.Set("true"))

	test.DemandSuccess(t, dsk.Save())
	cmpTmpFile(t, fn, "test :: true\ntestB :: false\ntestC :: true\n")

	test.ExpectFailure(t, v.Set(1))
}

func TestString(t *testing.T) {
	fn := tmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.String
	test.ExpectSuccess(t, dsk.Add("foo", &v))
	test.ExpectSuccess(t, v.Set("bar"))

	test.DemandSuccess(t, dsk.Save())
	cmpTmpFile(t, fn, "foo :: bar\n")
}

func TestInt(t *testing.T) {
	fn := tmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Int
	var w prefs.Int
	test.ExpectSuccess(t, dsk.Add("number", &v))
	test.ExpectSuccess(t, dsk.Add("numberB", &w))

	test.ExpectSuccess(t, v.Set(10))
	test.ExpectSuccess(t, w.Set("99"))

	test.DemandSuccess(t, dsk.Save())
	cmpTmpFile(t, fn, "number :: 10\nnumberB :: 99\n")

	test.ExpectFailure(t, v.Set("---"))
	test.ExpectFailure(t, v.Set(1.0))
	test.ExpectEquality(t, v.Get().(int), 10)
}

func TestFloat(t *testing.T) {
	fn := tmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Float
	test.ExpectSuccess(t, dsk.Add("float", &v))
	test.ExpectSuccess(t, v.Set(0.25))
	test.DemandSuccess(t, dsk.Save())
	cmpTmpFile(t, fn, "float :: 0.25\n")

	test.ExpectSuccess(t, v.Reset())
	test.ExpectEquality(t, v.Get().(float64), 0.0)

	test.DemandSuccess(t, dsk.Load(false))
	test.ExpectEquality(t, v.Get().(float64), 0.25)

	test.ExpectFailure(t, v.Set("x"))
}

func TestGeneric(t *testing.T) {
	fn := tmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var w, h int

	v := prefs.NewGeneric(
		func(s string) error {
			_, err := fmt.Sscanf(s, "%d,%d", &w, &h)
			return err
		},
		func() string {
			return fmt.Sprintf("%d,%d", w, h)
		},
	)

	test.ExpectSuccess(t, dsk.Add("generic", v))

	w = 640
	h = 480

	test.DemandSuccess(t, dsk.Save())
	cmpTmpFile(t, fn, "generic :: 640,480\n")

	w = 0
	h = 0

	test.DemandSuccess(t, dsk.Load(false))
	test.ExpectEquality(t, w, 640)
	test.ExpectEquality(t, h, 480)
}

// write bool and then a string from a different prefs.Disk instance. tests
// that the second writing doesn't clobber the results of the first write.
func TestBoolAndString(t *testing.T) {
	fn := tmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Bool
	test.ExpectSuccess(t, dsk.Add("test", &v))
	test.ExpectSuccess(t, v.Set(true))
	test.DemandSuccess(t, dsk.Save())

	dsk, err = prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var s prefs.String
	test.ExpectSuccess(t, dsk.Add("foo", &s))
	test.ExpectSuccess(t, s.Set("bar"))
	test.DemandSuccess(t, dsk.Save())

	cmpTmpFile(t, fn, "foo :: bar\ntest :: true\n")
}

func TestLoadMissingFile(t *testing.T) {
	fn := tmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Int
	test.ExpectSuccess(t, dsk.Add("number", &v))
	test.ExpectSuccess(t, v.Set(7))

	// loading a file that doesn't exist is not an error. with saveOnFail the
	// file is created
	test.ExpectSuccess(t, dsk.Load(true))
	cmpTmpFile(t, fn, "number :: 7\n")
}

func TestDefunctAndInvalid(t *testing.T) {
	fn := tmpPrefFile(t)

	restore := prefs.SetDefunct("retired")
	defer restore()

	content := fmt.Sprintf("%s\nretired :: true\nnumber :: 3\n", prefs.WarningBoilerPlate)
	test.DemandSuccess(t, os.WriteFile(fn, []byte(content), 0o600))

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Int
	test.ExpectSuccess(t, dsk.Add("number", &v))
	test.ExpectSuccess(t, dsk.Load(false))
	test.ExpectEquality(t, v.Get().(int), 3)

	// defunct entries are dropped when the file is next saved
	test.DemandSuccess(t, dsk.Save())
	cmpTmpFile(t, fn, "number :: 3\n")

	test.ExpectFailure(t, dsk.Add("number", &v))

	test.DemandSuccess(t, os.WriteFile(fn, []byte("garbage\n"), 0o600))
	test.ExpectFailure(t, dsk.Load(false))
}

func TestCommandLineOverride(t *testing.T) {
	fn := tmpPrefFile(t)

	content := fmt.Sprintf("%s\nnumber :: 3\n", prefs.WarningBoilerPlate)
	test.DemandSuccess(t, os.WriteFile(fn, []byte(content), 0o600))

	prefs.PushCommandLineStack("number::42")
	defer prefs.PopCommandLineStack()

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Int
	test.ExpectSuccess(t, dsk.Add("number", &v))
	test.ExpectEquality(t, v.Get().(int), 42)

	// value on the command line takes precedence over the value in the file
	test.ExpectSuccess(t, dsk.Load(false))
	test.ExpectEquality(t, v.Get().(int), 42)
}

func TestHooks(t *testing.T) {
	var v prefs.Float

	var pre, post float64
	v.SetHookPre(func(nv prefs.Value) error {
		pre = nv.(float64)
		if pre < 0 {
			return fmt.Errorf("negative")
		}
		return nil
	})
	v.SetHookPost(func(nv prefs.Value) error {
		post = nv.(float64)
		return nil
	})

	test.ExpectSuccess(t, v.Set(0.5))
	test.ExpectEquality(t, pre, 0.5)
	test.ExpectEquality(t, post, 0.5)

	// an error from the pre hook prevents the update
	test.ExpectFailure(t, v.Set(-1.0))
	test.ExpectEquality(t, v.Get().(float64), 0.5)
	test.ExpectEquality(t, post, 0.5)
}
