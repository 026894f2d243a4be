/*
Copyright © 2020 the helioremap authors.
This file is part of helioremap.

helioremap is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

helioremap is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with helioremap.  If not, see <http://www.gnu.org/licenses/>.
*/

package helioremap

import (
	"errors"
	"fmt"
)

// Error kinds returned by the mapping operations. Use errors.Is to test
// for them; the returned errors carry additional context.
var (
	// ErrInvalidRadialOrdering is returned when the outer radius is smaller
	// than the inner radius. Only inward mapping is supported.
	ErrInvalidRadialOrdering = errors.New("outer radius smaller than inner radius")

	// ErrGridMismatch is returned when axis lengths disagree with the
	// dimensions of a value grid, or when an axis is empty or unordered.
	ErrGridMismatch = errors.New("grid mismatch")

	// ErrDataUnavailable is returned when no boundary data could be found
	// for a requested rotation.
	ErrDataUnavailable = errors.New("boundary data unavailable")

	// ErrDegenerateGrid marks an axis of length 1. It is only ever
	// delivered through an Advisory.
	ErrDegenerateGrid = errors.New("degenerate grid")

	// ErrInvalidBounds is returned for malformed longitude grid bounds.
	ErrInvalidBounds = errors.New("invalid grid bounds")

	// ErrInvalidParameters is returned for unphysical mapping parameters.
	ErrInvalidParameters = errors.New("invalid mapping parameters")

	// ErrOutOfRange is returned when field values fall outside the valid
	// range of their field kind.
	ErrOutOfRange = errors.New("value out of range")

	// ErrFieldKind is returned when a map or profile of the wrong field
	// kind is passed to an operation, e.g., a tracer map as a speed map.
	ErrFieldKind = errors.New("wrong field kind")
)

// Advisory is a non-fatal warning attached to a result. Downstream
// spatial operations (e.g., contouring) on a degenerate axis may be
// meaningless, but the values themselves are valid.
type Advisory struct {
	Message string
}

func (a Advisory) Error() string { return "helioremap: " + a.Message }

// Unwrap makes errors.Is(a, ErrDegenerateGrid) true.
func (a Advisory) Unwrap() error { return ErrDegenerateGrid }

func degenerate(format string, args ...interface{}) Advisory {
	return Advisory{Message: fmt.Sprintf(format, args...)}
}
