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

package statsview

import (
	"fmt"
	"io"
	"sync"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// Address of the statistics server.
const Address = "localhost:12600"

const url = "/debug/statsview"

var launched sync.Once

// Launch a new goroutine running the statsview. Subsequent calls do nothing.
// The URL of the server is written to output.
func Launch(output io.Writer) {
	launched.Do(func() {
		viewer.SetConfiguration(viewer.WithAddr(Address))
		mgr := statsview.New()
		go mgr.Start()

		if output != nil {
			fmt.Fprintf(output, "stats server available at %s%s\n", Address, url)
		}
	})
}

// URL returns the full address of the statistics page.
func URL() string {
	return fmt.Sprintf("http://%s%s", Address, url)
}
