// magvar/magvar.go
// Copyright(c) 2026 aptdb contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package magvar

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"aptdb/geo"
)

var ErrOutsideGrid = errors.New("lookup point outside sampled grid")

// Grid is a regularly sampled magnetic declination table, east
// declination positive. Samples run west to east, then south to north.
type Grid struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
	Step           float64
	Samples        []float32
}

// Load reads a declination grid: one header line
// "minlat maxlat minlon maxlon step" followed by one sample per line.
// Sample files come from the NOAA wmm_grid tool, declination output,
// with the header prepended.
func Load(r io.Reader) (*Grid, error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, errors.New("empty grid file")
	}

	g := &Grid{}
	n, err := fmt.Sscanf(sc.Text(), "%f %f %f %f %f",
		&g.MinLat, &g.MaxLat, &g.MinLon, &g.MaxLon, &g.Step)
	if err != nil || n != 5 {
		return nil, fmt.Errorf("malformed grid header %q", sc.Text())
	}
	if g.Step <= 0 || g.MaxLat <= g.MinLat || g.MaxLon <= g.MinLon {
		return nil, fmt.Errorf("malformed grid header %q", sc.Text())
	}

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		v, err := strconv.ParseFloat(line, 32)
		if err != nil {
			return nil, fmt.Errorf("%s: parsing grid sample: %w", line, err)
		}
		g.Samples = append(g.Samples, float32(v))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	nlat, nlon := g.dim()
	if len(g.Samples) != nlat*nlon {
		return nil, fmt.Errorf("found %d grid samples, expected %d x %d = %d",
			len(g.Samples), nlat, nlon, nlat*nlon)
	}
	return g, nil
}

func (g *Grid) dim() (nlat, nlon int) {
	return int(1 + (g.MaxLat-g.MinLat)/g.Step), int(1 + (g.MaxLon-g.MinLon)/g.Step)
}

// Lookup returns the declination of the nearest grid sample.
func (g *Grid) Lookup(p geo.Point) (float64, error) {
	if p.Lon < g.MinLon || p.Lon > g.MaxLon || p.Lat < g.MinLat || p.Lat > g.MaxLat {
		return 0, ErrOutsideGrid
	}

	nlat, nlon := g.dim()
	lat := min(int((p.Lat-g.MinLat)/g.Step+0.5), nlat-1)
	lon := min(int((p.Lon-g.MinLon)/g.Step+0.5), nlon-1)

	return float64(g.Samples[lon+nlon*lat]), nil
}

// MagVar adapts Lookup to the declination source the airport finalizer
// consumes. Points outside the sampled area get zero declination.
func (g *Grid) MagVar(p geo.Point) float64 {
	v, err := g.Lookup(p)
	if err != nil {
		return 0
	}
	return v
}

// Zero is the declination source used when no grid is configured.
type Zero struct{}

func (Zero) MagVar(geo.Point) float64 { return 0 }
