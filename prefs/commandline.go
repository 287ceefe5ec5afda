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
	"fmt"
	"sort"
	"strings"
)

// the command line stack allows preference values to be specified for the
// duration of a single session. each group is a map of key/value pairs parsed
// from a string of the form:
//
//	crt.decoder::ntsc-yiq; crt.barrel::0.1
//
// values are consumed by Disk.Add() as keys are registered.
var commandLineStack []map[string]Value

// SizeCommandLineStack returns the number of groups that have been added with
// PushCommandLineStack().
func SizeCommandLineStack() int {
	return len(commandLineStack)
}

// PushCommandLineStack parses a prefs string and adds it as a new group.
// Malformed entries are ignored.
func PushCommandLineStack(prefs string) {
	group := make(map[string]Value)
	for _, p := range strings.Split(prefs, ";") {
		k, v, ok := strings.Cut(p, "::")
		if !ok {
			continue
		}
		group[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	commandLineStack = append(commandLineStack, group)
}

// PopCommandLineStack forgets the most recent group added by
// PushCommandLineStack(). Returns the entries in the group that have not
// been consumed, sorted by key and in the same format as the prefs string.
func PopCommandLineStack() string {
	if len(commandLineStack) == 0 {
		return ""
	}

	popped := commandLineStack[len(commandLineStack)-1]
	commandLineStack = commandLineStack[:len(commandLineStack)-1]

	keys := make([]string, 0, len(popped))
	for k := range popped {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	unused := make([]string, 0, len(keys))
	for _, k := range keys {
		unused = append(unused, fmt.Sprintf("%s::%v", k, popped[k]))
	}

	return strings.Join(unused, "; ")
}

// GetCommandLinePref returns the value for key in the current group. The
// value is deleted from the group when it is returned.
func GetCommandLinePref(key string) (bool, Value) {
	if len(commandLineStack) == 0 {
		return false, nil
	}

	group := commandLineStack[len(commandLineStack)-1]
	if v, ok := group[key]; ok {
		delete(group, key)
		return true, v
	}

	return false, nil
}
