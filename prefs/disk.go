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

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
)

// DefaultPrefsFile is the default filename of the global preferences file.
const DefaultPrefsFile = "preferences"

// WarningBoilerPlate is the first line of every prefs file.
const WarningBoilerPlate = "*** do not edit this file by hand ***"

// separator between key and value in a prefs file.
const separator = " :: "

// Disk represents preference values as stored on disk. Values are registered
// with the Add() function before the Load() or Save() functions are used.
//
// Entries in the prefs file that have not been registered with this instance
// of Disk are preserved when the file is saved. This means that more than one
// Disk instance can share the same file.
type Disk struct {
	path    string
	entries map[string]pref

	// values found on the command line when the key was added. they take
	// precedence over values loaded from the file
	overrides map[string]Value
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	if path == "" {
		return nil, fmt.Errorf("prefs: empty path")
	}
	return &Disk{
		path:      path,
		entries:   make(map[string]pref),
		overrides: make(map[string]Value),
	}, nil
}

// Path returns the file the Disk instance uses.
func (dsk *Disk) Path() string {
	return dsk.path
}

// Add preference value to list of values to store/load from Disk. If the key
// has a value in the current command line group then that value is set
// immediately.
func (dsk *Disk) Add(key string, p pref) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("prefs: empty key")
	}
	if strings.Contains(key, separator) {
		return fmt.Errorf("prefs: illegal key %q", key)
	}
	if _, ok := dsk.entries[key]; ok {
		return fmt.Errorf("prefs: duplicate key %q", key)
	}

	dsk.entries[key] = p

	if ok, v := GetCommandLinePref(key); ok {
		dsk.overrides[key] = v
		if err := p.Set(v); err != nil {
			return fmt.Errorf("prefs: %s: %w", key, err)
		}
	}

	return nil
}

// Reset all registered values to their zero values.
func (dsk *Disk) Reset() error {
	for k, p := range dsk.entries {
		if err := p.Reset(); err != nil {
			return fmt.Errorf("prefs: %s: %w", k, err)
		}
	}
	return nil
}

// read the prefs file into a map of raw strings. a missing file is not an
// error and results in an empty map.
func (dsk *Disk) read() (map[string]string, error) {
	raw := make(map[string]string)

	f, err := os.Open(dsk.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return raw, nil
		}
		return nil, fmt.Errorf("prefs: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)

	// boilerplate line
	if scanner.Scan() && scanner.Text() != WarningBoilerPlate {
		return nil, fmt.Errorf("prefs: %s: not a valid prefs file", dsk.path)
	}

	for scanner.Scan() {
		k, v, ok := strings.Cut(scanner.Text(), separator)
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		if isDefunct(k) {
			continue
		}
		raw[k] = strings.TrimSpace(v)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("prefs: %w", err)
	}

	return raw, nil
}

// Save current preference values to disk.
func (dsk *Disk) Save() error {
	raw, err := dsk.read()
	if err != nil {
		return err
	}

	for k, p := range dsk.entries {
		raw[k] = p.String()
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := strings.Builder{}
	s.WriteString(WarningBoilerPlate)
	s.WriteString("\n")
	for _, k := range keys {
		s.WriteString(fmt.Sprintf("%s%s%s\n", k, separator, raw[k]))
	}

	if err := os.WriteFile(dsk.path, []byte(s.String()), 0o600); err != nil {
		return fmt.Errorf("prefs: %w", err)
	}

	return nil
}

// Load preference values from disk. If saveOnFail is true and the file does
// not yet contain every registered value then the file is saved after
// loading.
func (dsk *Disk) Load(saveOnFail bool) error {
	raw, err := dsk.read()
	if err != nil {
		return err
	}

	missing := false
	for k, p := range dsk.entries {
		if v, ok := dsk.overrides[k]; ok {
			if err := p.Set(v); err != nil {
				return fmt.Errorf("prefs: %s: %w", k, err)
			}
			continue
		}

		v, ok := raw[k]
		if !ok {
			missing = true
			continue
		}
		if err := p.Set(v); err != nil {
			return fmt.Errorf("prefs: %s: %w", k, err)
		}
	}

	if missing && saveOnFail {
		return dsk.Save()
	}

	return nil
}
