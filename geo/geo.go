// geo/geo.go
// Copyright(c) 2026 aptdb contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package geo

import (
	"fmt"
	gomath "math"
)

const (
	// EarthRadiusMeter is the mean earth radius used for all great circle math.
	EarthRadiusMeter = 6371000

	// InvalidCoord marks an unset ordinate; valid longitudes and latitudes
	// are well inside the +/-200 range.
	InvalidCoord = 200

	// Epsilon100M is roughly 100 meters expressed in degrees at the equator.
	Epsilon100M = 0.000899928

	feetPerMeter = 3.281
	metersPerNM  = 1852
)

///////////////////////////////////////////////////////////////////////////
// Point

// Point is a longitude/latitude pair in degrees. The zero value is a valid
// position in the Gulf of Guinea; use InvalidPoint for unset positions.
type Point struct {
	Lon float64
	Lat float64
}

// InvalidPoint reports false from Valid.
var InvalidPoint = Point{Lon: InvalidCoord, Lat: InvalidCoord}

func (p Point) Valid() bool {
	return p.Lon >= -180 && p.Lon <= 180 && p.Lat >= -90 && p.Lat <= 90
}

// DistanceMeter returns the haversine great circle distance to o in meters.
func (p Point) DistanceMeter(o Point) float64 {
	phi1, phi2 := radians(p.Lat), radians(o.Lat)
	dphi := radians(o.Lat - p.Lat)
	dlam := radians(o.Lon - p.Lon)
	a := sqr(gomath.Sin(dphi/2)) + gomath.Cos(phi1)*gomath.Cos(phi2)*sqr(gomath.Sin(dlam/2))
	return 2 * EarthRadiusMeter * gomath.Atan2(gomath.Sqrt(a), gomath.Sqrt(1-a))
}

// Bearing returns the initial great circle course from p to o in degrees [0,360).
func (p Point) Bearing(o Point) float64 {
	phi1, phi2 := radians(p.Lat), radians(o.Lat)
	dlam := radians(o.Lon - p.Lon)
	y := gomath.Sin(dlam) * gomath.Cos(phi2)
	x := gomath.Cos(phi1)*gomath.Sin(phi2) - gomath.Sin(phi1)*gomath.Cos(phi2)*gomath.Cos(dlam)
	return NormalizeCourse(degrees(gomath.Atan2(y, x)))
}

// Midpoint returns the point halfway along the great circle from p to o.
func (p Point) Midpoint(o Point) Point {
	phi1, phi2 := radians(p.Lat), radians(o.Lat)
	dlam := radians(o.Lon - p.Lon)
	bx := gomath.Cos(phi2) * gomath.Cos(dlam)
	by := gomath.Cos(phi2) * gomath.Sin(dlam)
	phi := gomath.Atan2(gomath.Sin(phi1)+gomath.Sin(phi2),
		gomath.Sqrt(sqr(gomath.Cos(phi1)+bx)+sqr(by)))
	lam := radians(p.Lon) + gomath.Atan2(by, gomath.Cos(phi1)+bx)
	return Point{Lon: normalizeLon(degrees(lam)), Lat: degrees(phi)}
}

func (p Point) String() string {
	return fmt.Sprintf("%.8f,%.8f", p.Lat, p.Lon)
}

///////////////////////////////////////////////////////////////////////////
// Rect

// Rect is a latitude/longitude aligned bounding rectangle. TopLeft holds
// the west longitude and north latitude, BottomRight the east longitude
// and south latitude. Antimeridian-crossing rectangles are not handled;
// airports do not straddle it.
type Rect struct {
	TopLeft     Point
	BottomRight Point
}

// EmptyRect returns a Rect that contains nothing.
func EmptyRect() Rect {
	return Rect{TopLeft: InvalidPoint, BottomRight: InvalidPoint}
}

// PointRect returns the degenerate Rect containing only p.
func PointRect(p Point) Rect {
	return Rect{TopLeft: p, BottomRight: p}
}

func (r Rect) Valid() bool {
	return r.TopLeft.Valid() && r.BottomRight.Valid()
}

// IsPoint reports whether the Rect has zero extent.
func (r Rect) IsPoint() bool {
	return r.TopLeft == r.BottomRight
}

// Extend grows the Rect to include p. Extending an empty Rect yields a
// point rectangle at p; invalid points are ignored.
func (r *Rect) Extend(p Point) {
	if !p.Valid() {
		return
	}
	if !r.Valid() {
		r.TopLeft, r.BottomRight = p, p
		return
	}
	r.TopLeft.Lon = min(r.TopLeft.Lon, p.Lon)
	r.TopLeft.Lat = max(r.TopLeft.Lat, p.Lat)
	r.BottomRight.Lon = max(r.BottomRight.Lon, p.Lon)
	r.BottomRight.Lat = min(r.BottomRight.Lat, p.Lat)
}

// Inflate pushes each edge outward by the given deltas in degrees.
func (r *Rect) Inflate(dLon, dLat float64) {
	r.TopLeft.Lon -= dLon
	r.TopLeft.Lat += dLat
	r.BottomRight.Lon += dLon
	r.BottomRight.Lat -= dLat
}

func (r Rect) Center() Point {
	return Point{
		Lon: (r.TopLeft.Lon + r.BottomRight.Lon) / 2,
		Lat: (r.TopLeft.Lat + r.BottomRight.Lat) / 2,
	}
}

func (r Rect) Contains(p Point) bool {
	return p.Lon >= r.TopLeft.Lon && p.Lon <= r.BottomRight.Lon &&
		p.Lat <= r.TopLeft.Lat && p.Lat >= r.BottomRight.Lat
}

// PointInflateDeg is the half extent applied to degenerate point
// rectangles, one minute of arc per side.
const PointInflateDeg = 1. / 60.

///////////////////////////////////////////////////////////////////////////
// units and courses

// MeterToFeet converts meters to feet rounded to the given power of ten;
// precision 0 rounds to the nearest foot.
func MeterToFeet(m float64, precision int) int {
	if precision <= 0 {
		return int(gomath.Round(m * feetPerMeter))
	}
	factor := gomath.Pow(10, float64(precision))
	return int(gomath.Round(m*feetPerMeter/factor)) * int(factor)
}

// MeterToNM converts meters to nautical miles, rounded.
func MeterToNM(m float64) int {
	return int(gomath.Round(m / metersPerNM))
}

// NormalizeCourse wraps a course in degrees into [0,360).
func NormalizeCourse(c float64) float64 {
	c = gomath.Mod(c, 360)
	if c < 0 {
		c += 360
	}
	return c
}

// OpposedCourse returns the reciprocal of a course in degrees.
func OpposedCourse(c float64) float64 {
	return NormalizeCourse(c + 180)
}

func normalizeLon(l float64) float64 {
	l = gomath.Mod(l+540, 360)
	return l - 180
}

func radians(d float64) float64 { return d / 180 * gomath.Pi }
func degrees(r float64) float64 { return r * 180 / gomath.Pi }
func sqr(x float64) float64     { return x * x }
