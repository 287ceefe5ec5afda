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

package filter

import "math"

// LanczosWindow returns the sinc window of length n with the normalised
// cutoff frequency fc. The centre of the window is at n/2 (integer division),
// where the value is exactly one.
//
// A cutoff of zero produces a window of ones.
func LanczosWindow(n int, fc float64) Vector {
	w := make(Vector, n)
	n2 := float64(n / 2)

	for i := range w {
		x := (float64(i) - n2) * fc
		if x == 0 {
			w[i] = 1
		} else {
			x *= math.Pi
			w[i] = math.Sin(x) / x
		}
	}

	return w
}

// ChebyshevWindow returns the Dolph-Chebyshev window of length n with the
// sidelobe attenuation of sidelobeDb decibels. The window is symmetric and its
// largest absolute value is one.
//
// Windows of length less than three are degenerate and a window of ones is
// returned.
func ChebyshevWindow(n int, sidelobeDb float64) Vector {
	if n < 3 {
		w := make(Vector, n)
		for i := range w {
			w[i] = 1
		}
		return w
	}

	m := n - 1
	alpha := math.Cosh(math.Acosh(math.Pow(10, sidelobeDb/20)) / float64(m))

	// frequency domain with alternating sign
	w := make(Vector, m)
	for i := range w {
		a := math.Abs(alpha * math.Cos(math.Pi*float64(i)/float64(m)))
		if a > 1 {
			w[i] = math.Cosh(float64(m) * math.Acosh(a))
		} else {
			w[i] = math.Cos(float64(m) * math.Acos(a))
		}
		if i&1 == 1 {
			w[i] = -w[i]
		}
	}

	w = w.RealIDFT()

	// the transform has m elements. the window has n elements with the first
	// element halved and mirrored into the last
	w = append(w, 0)
	w[0] /= 2
	w[n-1] = w[0]

	peak := w.Max()
	if peak == 0 {
		return w
	}
	return w.Scale(1 / peak)
}
