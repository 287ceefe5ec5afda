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

package filter_test

import (
	"math"
	"testing"

	"github.com/jetsetilly/crtcanvas/curated"
	"github.com/jetsetilly/crtcanvas/filter"
	"github.com/jetsetilly/crtcanvas/test"
)

const tolerance = 1e-9

func TestChebyshevWindow(t *testing.T) {
	for _, n := range []int{5, 16, 17, 33} {
		w := filter.ChebyshevWindow(n, 50)
		test.DemandEquality(t, len(w), n)

		// symmetric
		for i := range w {
			test.ExpectApproximate(t, w[i], w[n-1-i], tolerance, n, i)
		}

		// peak magnitude of one
		test.ExpectApproximate(t, w.Max(), 1.0, tolerance, n)

		for i := range w {
			test.ExpectSuccess(t, !math.IsNaN(w[i]) && !math.IsInf(w[i], 0), n, i)
		}
	}

	// the peak is in the middle
	w := filter.ChebyshevWindow(17, 50)
	test.ExpectApproximate(t, math.Abs(w[8]), 1.0, tolerance)

	// degenerate lengths
	test.ExpectEquality(t, len(filter.ChebyshevWindow(0, 50)), 0)
	w = filter.ChebyshevWindow(2, 50)
	test.ExpectEquality(t, w[0], 1.0)
	test.ExpectEquality(t, w[1], 1.0)
}

func TestLanczosWindow(t *testing.T) {
	w := filter.LanczosWindow(17, 0.5)
	test.DemandEquality(t, len(w), 17)
	test.ExpectEquality(t, w[8], 1.0)

	for i := range w {
		test.ExpectApproximate(t, w[i], w[16-i], tolerance, i)
	}

	// sinc has zero crossings at integer values of x
	test.ExpectApproximate(t, w[6], 0.0, tolerance)
	test.ExpectApproximate(t, w[10], 0.0, tolerance)

	// first sample off centre
	test.ExpectApproximate(t, w[9], math.Sin(math.Pi*0.5)/(math.Pi*0.5), tolerance)

	// zero cutoff is a window of ones
	w = filter.LanczosWindow(17, 0)
	for i := range w {
		test.ExpectEquality(t, w[i], 1.0)
	}
}

func TestNormalize(t *testing.T) {
	w := filter.ChebyshevWindow(17, 50)
	v, err := w.Mul(filter.LanczosWindow(17, 0.3))
	test.DemandSuccess(t, err)

	v, err = v.Normalize()
	test.ExpectSuccess(t, err)
	test.ExpectApproximate(t, v.Sum(), 1.0, tolerance)

	// the normalised vector doubled sums to two. this is how chroma filters
	// are built
	test.ExpectApproximate(t, v.Scale(2).Sum(), 2.0, tolerance)
}

func TestNormalizeZeroVector(t *testing.T) {
	z := make(filter.Vector, 17)
	v, err := z.Normalize()
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, filter.DegenerateSum))

	// the result is a finite copy of the input
	test.DemandEquality(t, len(v), 17)
	for i := range v {
		test.ExpectEquality(t, v[i], 0.0)
	}

	// a vector that sums to zero but is not zero
	v, err = filter.Vector{1, -1}.Normalize()
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, v[0], 1.0)
	test.ExpectEquality(t, v[1], -1.0)
}

func TestMul(t *testing.T) {
	a := filter.Vector{1, 2, 3}
	b := filter.Vector{2, 2, 2}

	p, err := a.Mul(b)
	test.ExpectSuccess(t, err)
	test.DemandEquality(t, len(p), 3)
	test.ExpectEquality(t, p[0], 2.0)
	test.ExpectEquality(t, p[1], 4.0)
	test.ExpectEquality(t, p[2], 6.0)

	// inputs are not modified
	test.ExpectEquality(t, a[0], 1.0)

	p, err = a.Mul(filter.Vector{1, 2})
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, filter.LengthMismatch))
	test.ExpectEquality(t, len(p), 0)
}

func TestRealIDFT(t *testing.T) {
	// the transform of an impulse is flat
	v := filter.Vector{1, 0, 0, 0}.RealIDFT()
	for i := range v {
		test.ExpectApproximate(t, v[i], 0.25, tolerance)
	}

	// the transform of a flat spectrum is an impulse
	v = filter.Vector{1, 1, 1, 1}.RealIDFT()
	test.ExpectApproximate(t, v[0], 1.0, tolerance)
	for i := 1; i < len(v); i++ {
		test.ExpectApproximate(t, v[i], 0.0, tolerance)
	}

	test.ExpectEquality(t, len(filter.Vector{}.RealIDFT()), 0)
}
