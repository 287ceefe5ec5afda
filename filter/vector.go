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

import (
	"math"

	"github.com/jetsetilly/crtcanvas/curated"
)

// Sentinal error patterns.
const (
	LengthMismatch = "filter: length mismatch: %d and %d"
	DegenerateSum  = "filter: cannot normalise vector with sum of %g"
)

// the magnitude below which a sum is considered to be zero
const degenerateSum = 1e-12

// Vector is an ordered sequence of real numbers. A Vector is never modified in
// place by the functions in this package.
type Vector []float64

// Sum of all elements.
func (v Vector) Sum() float64 {
	var s float64
	for _, x := range v {
		s += x
	}
	return s
}

// Max returns the largest absolute value in the vector.
func (v Vector) Max() float64 {
	var m float64
	for _, x := range v {
		m = math.Max(m, math.Abs(x))
	}
	return m
}

// Scale returns a new vector with every element multiplied by k.
func (v Vector) Scale(k float64) Vector {
	w := make(Vector, len(v))
	for i := range v {
		w[i] = v[i] * k
	}
	return w
}

// Mul returns the elementwise product of two vectors. Vectors of different
// lengths cannot be multiplied and the LengthMismatch error is returned.
func (v Vector) Mul(w Vector) (Vector, error) {
	if len(v) != len(w) {
		return nil, curated.Errorf(LengthMismatch, len(v), len(w))
	}

	p := make(Vector, len(v))
	for i := range v {
		p[i] = v[i] * w[i]
	}
	return p, nil
}

// Normalize returns the vector scaled so that its elements sum to one. If the
// sum is zero (or very nearly zero) the DegenerateSum error is returned along
// with an unchanged copy of the vector.
func (v Vector) Normalize() (Vector, error) {
	s := v.Sum()
	if math.Abs(s) < degenerateSum || math.IsNaN(s) {
		return v.Scale(1), curated.Errorf(DegenerateSum, s)
	}
	return v.Scale(1 / s), nil
}

// RealIDFT is the inverse discrete Fourier transform of a real spectrum,
// keeping only the real part of the result:
//
//	w[i] = (1/N) * sum_j v[j] * cos(2*pi*i*j/N)
func (v Vector) RealIDFT() Vector {
	n := len(v)
	w := make(Vector, n)
	if n == 0 {
		return w
	}

	for i := range w {
		omega := 2 * math.Pi * float64(i) / float64(n)
		var s float64
		for j := range v {
			s += v[j] * math.Cos(omega*float64(j))
		}
		w[i] = s / float64(n)
	}

	return w
}
