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

// Package curated is a helper package for the plain Go language error type.
// Errors are created with Errorf(), which takes a formatting pattern and the
// placeholder values. The pattern is remembered and is used to identify the
// error later.
//
// Each package that returns curated errors exports its patterns as constants.
// For example, the exchange package:
//
//	const InvalidArgument = "exchange: invalid argument: %v"
//
//	err := exchange.PostFrame(nil)
//	if curated.Is(err, exchange.InvalidArgument) {
//		...
//	}
//
// Is() only checks the outermost error. Has() checks the entire chain, where
// a chain is formed by passing a curated error as one of the values to
// Errorf().
//
// The Error() implementation normalises the message so that duplicate
// adjacent parts are removed. Parts are separated by ": ". This means that a
// function can wrap an error with its own prefix without worrying that the
// same prefix has already been added further down the call stack.
package curated
