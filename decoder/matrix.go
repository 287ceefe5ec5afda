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

package decoder

import "math"

// Matrix3 is a 3x3 matrix stored in column-major order, which is the order
// expected by a GLSL mat3 uniform. Element (row, col) is at index col*3+row.
//
// Literal values are therefore written one column at a time.
type Matrix3 [9]float64

// Identity matrix.
var Identity = Matrix3{
	1, 0, 0,
	0, 1, 0,
	0, 0, 1,
}

// At returns the element at row r and column c.
func (m Matrix3) At(r, c int) float64 {
	return m[c*3+r]
}

// Mul returns the matrix product m*a.
func (m Matrix3) Mul(a Matrix3) Matrix3 {
	var p Matrix3
	for c := 0; c < 3; c++ {
		for r := 0; r < 3; r++ {
			var s float64
			for k := 0; k < 3; k++ {
				s += m.At(r, k) * a.At(k, c)
			}
			p[c*3+r] = s
		}
	}
	return p
}

// Scale returns the matrix with every element multiplied by k.
func (m Matrix3) Scale(k float64) Matrix3 {
	for i := range m {
		m[i] *= k
	}
	return m
}

// Apply multiplies the column vector v by the matrix.
func (m Matrix3) Apply(v [3]float64) [3]float64 {
	var o [3]float64
	for r := 0; r < 3; r++ {
		o[r] = m.At(r, 0)*v[0] + m.At(r, 1)*v[1] + m.At(r, 2)*v[2]
	}
	return o
}

// Float32 converts the matrix for upload to the GPU.
func (m Matrix3) Float32() [9]float32 {
	var f [9]float32
	for i := range m {
		f[i] = float32(m[i])
	}
	return f
}

// hueRotation rotates the two chroma axes by angle radians.
func hueRotation(angle float64) Matrix3 {
	c := math.Cos(angle)
	s := math.Sin(angle)
	return Matrix3{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	}
}

// saturationGain scales the two chroma axes.
func saturationGain(s float64) Matrix3 {
	return Matrix3{
		1, 0, 0,
		0, s, 0,
		0, 0, s,
	}
}
