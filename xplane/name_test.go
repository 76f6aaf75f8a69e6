// xplane/name_test.go
// Copyright(c) 2026 aptdb contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package xplane

import "testing"

func TestIsNameClosed(t *testing.T) {
	for _, tc := range []struct {
		name   string
		closed bool
	}{
		{"[X] Old field", true},
		{"Duvall (closed)", true},
		{"AREA 51 - CLOSED", true},
		{"Renton Muni", false},
		{"Closure Bay", false},
	} {
		if got := IsNameClosed(tc.name); got != tc.closed {
			t.Errorf("IsNameClosed(%q) = %v, expected %v", tc.name, got, tc.closed)
		}
	}
}

func TestIsNameMilitary(t *testing.T) {
	for _, tc := range []struct {
		name string
		mil  bool
	}{
		{"Hurlburt AAF", true},
		{"Ramstein AB", true},
		{"Whidbey Island NAS", true},
		{"Eglin Air Force Base", true},
		{"fairchild afb", true},
		// AB and NAS buried inside words must not match.
		{"Abilene Rgnl", false},
		{"Nasa Crows Landing", false},
		{"Miltown", false},
		{"Boeing Field King Co Intl", false},
	} {
		if got := IsNameMilitary(tc.name); got != tc.mil {
			t.Errorf("IsNameMilitary(%q) = %v, expected %v", tc.name, got, tc.mil)
		}
	}
}

func TestStripNameIndicators(t *testing.T) {
	for _, tc := range []struct {
		name, want string
	}{
		{"[H] City hospital", "City hospital"},
		{"Main base [MIL]", "Main base"},
		{"Field [x]", "Field"},
		{"[S] [G] Strip", "Strip"},
		{"Main [H] base", "Main base"},
		{"No tags here", "No tags here"},
		{"[Z] unknown tag", "[Z] unknown tag"},
	} {
		if got := StripNameIndicators(tc.name); got != tc.want {
			t.Errorf("StripNameIndicators(%q) = %q, expected %q", tc.name, got, tc.want)
		}
	}
}

func TestCapAirportName(t *testing.T) {
	for _, tc := range []struct {
		name, want string
	}{
		{"BOEING FIELD KING CO INTL", "Boeing Field King Co Intl"},
		{"HURLBURT AAF", "Hurlburt AAF"},
		{"ramstein ab", "Ramstein AB"},
		{"NAS WHIDBEY", "NAS Whidbey"},
		{"FIELD III", "Field III"},
		{"ELLSWORTH-DUKE (PVT)", "Ellsworth-Duke (Pvt)"},
		{"AREA 51", "Area 51"},
	} {
		if got := CapAirportName(tc.name); got != tc.want {
			t.Errorf("CapAirportName(%q) = %q, expected %q", tc.name, got, tc.want)
		}
	}
}
