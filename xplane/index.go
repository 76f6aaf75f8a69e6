// xplane/index.go
// Copyright(c) 2026 aptdb contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package xplane

// AirportIndex tracks which airport idents have been written across all
// files of a compile. Scenery files are read in priority order, so the
// first occurrence of an ident wins and later duplicates, typically the
// stock airport shadowed by an add-on, are skipped.
type AirportIndex struct {
	ids map[string]int
}

func NewAirportIndex() *AirportIndex {
	return &AirportIndex{ids: make(map[string]int)}
}

// Add registers ident with its airport id and reports whether the
// ident was new.
func (x *AirportIndex) Add(ident string, id int) bool {
	if _, ok := x.ids[ident]; ok {
		return false
	}
	x.ids[ident] = id
	return true
}

// ID returns the airport id written for ident.
func (x *AirportIndex) ID(ident string) (int, bool) {
	id, ok := x.ids[ident]
	return id, ok
}

// Len returns the number of airports written so far.
func (x *AirportIndex) Len() int { return len(x.ids) }
