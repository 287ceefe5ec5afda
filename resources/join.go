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

package resources

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// the name of the application directory in the user's configuration
// directory
const applicationDir = "crtcanvas"

// the directory that is used in preference to the user's configuration
// directory if it is present in the current working directory
const portablePath = ".crtcanvas"

// basePath returns the portable path if it exists or else the path in the
// user's configuration directory.
func basePath() (string, error) {
	if info, err := os.Stat(portablePath); err == nil && info.IsDir() {
		return portablePath, nil
	}

	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resources: %w", err)
	}
	return filepath.Join(cfg, applicationDir), nil
}

// JoinPath prepends the supplied path with the base path for crtcanvas
// resources. All folders necessary to reach the end of the path are created.
func JoinPath(path ...string) (string, error) {
	b, err := basePath()
	if err != nil {
		return "", err
	}

	p := filepath.Join(path...)
	if !strings.HasPrefix(p, b) {
		p = filepath.Join(b, p)
	}

	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return "", fmt.Errorf("resources: %w", err)
	}

	return p, nil
}
