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

// Package helioremap maps solar wind boundary conditions radially inward.
//
// Coronal models such as MAS and PFSS give the solar wind speed and
// radial magnetic field on a sphere at some outer radius. A heliospheric
// model whose inner boundary is closer to the Sun needs those fields at
// its own radius. Assuming a residual acceleration of the form
//
//	v(r) = v0 (1 + α (1 - exp(-(r - r0)/rH)))
//
// each parcel of wind is traced back to the inner radius, giving its
// speed there and the longitude it had when it left, accounting for the
// rotation of the Sun during the transit. Tracers such as the magnetic
// field are carried along with the wind.
//
// Profiles (a single latitude) and maps (longitude × latitude) are
// supported. Mapped values are resampled with periodic linear
// interpolation onto either the input longitudes or a canonical
// longitude grid.
package helioremap

// Version gives the version of helioremap.
const Version = "1.0.0"
