// xplane/constants_test.go
// Copyright(c) 2026 aptdb contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package xplane

import "testing"

func TestSurface(t *testing.T) {
	for _, tc := range []struct {
		code            int
		db              string
		hard, soft, wet bool
	}{
		{1, "A", true, false, false},
		{2, "C", true, false, false},
		{3, "G", false, true, false},
		{4, "D", false, true, false},
		{5, "GR", false, true, false},
		{12, "D", false, true, false},
		{13, "W", false, false, true},
		{14, "SN", false, true, false},
		{15, "TR", true, false, false},
		{0, "UNKNOWN", true, false, false},
		{99, "UNKNOWN", true, false, false},
	} {
		s := ParseSurface(tc.code)
		if db := s.Db(); db != tc.db {
			t.Errorf("surface %d: got %q, expected %q", tc.code, db, tc.db)
		}
		if s.IsHard() != tc.hard || s.IsSoft() != tc.soft || s.IsWater() != tc.wet {
			t.Errorf("surface %d: got classes %v/%v/%v, expected %v/%v/%v",
				tc.code, s.IsHard(), s.IsSoft(), s.IsWater(), tc.hard, tc.soft, tc.wet)
		}
	}

	if s := SurfaceFromDb("D"); s != SurfaceDirt {
		t.Errorf("SurfaceFromDb(D) = %v, expected dirt", s)
	}
	if s := SurfaceFromDb("GR"); s != SurfaceGravel {
		t.Errorf("SurfaceFromDb(GR) = %v, expected gravel", s)
	}
}

func TestMarkingFlags(t *testing.T) {
	for _, tc := range []struct {
		m    Marking
		want int
	}{
		{MarkingNone, 0},
		{MarkingVisual, MarkEdges | MarkDashes | MarkIdent},
		{MarkingNonPrecision, MarkEdges | MarkThreshold | MarkFixedDistance | MarkTouchdown |
			MarkDashes | MarkIdent | MarkEdgePavement},
		{MarkingPrecision, MarkEdges | MarkThreshold | MarkFixedDistance | MarkTouchdown |
			MarkDashes | MarkIdent | MarkPrecision | MarkEdgePavement},
		{MarkingUKPrecision, MarkEdges | MarkAltThreshold | MarkAltFixedDistance | MarkAltTouchdown |
			MarkDashes | MarkIdent | MarkAltPrecision | MarkEdgePavement},
		{Marking(99), 0},
	} {
		if got := tc.m.Flags(); got != tc.want {
			t.Errorf("marking %d: got flags %d, expected %d", tc.m, got, tc.want)
		}
	}

	// The precision flag set is the full low byte; map display code
	// depends on the exact values.
	if MarkingPrecision.Flags() != 255 {
		t.Errorf("got precision flags %d, expected 255", MarkingPrecision.Flags())
	}
}

func TestApproachLight(t *testing.T) {
	for _, tc := range []struct {
		a  ApproachLight
		db string
	}{
		{ALSNone, ""},
		{ALSFI, "ALSF1"},
		{ALSFII, "ALSF2"},
		{ALSCalvert, "CALVERT"},
		{ALSCalvert2, "CALVERT2"},
		{ALSSSALR, "SSALR"},
		{ALSMALSR, "MALSR"},
		{ALSRAIL, "RAIL"},
		{ApproachLight(99), ""},
	} {
		if got := tc.a.Db(); got != tc.db {
			t.Errorf("als %d: got %q, expected %q", tc.a, got, tc.db)
		}
		if tc.db == "" {
			continue
		}
		if back := ApproachLightFromDb(tc.db); back != tc.a {
			t.Errorf("als %q: got %d back, expected %d", tc.db, back, tc.a)
		}
	}
}

func TestApproachIndicator(t *testing.T) {
	for _, tc := range []struct {
		a  ApproachIndicator
		db string
	}{
		{IndicatorNone, ""},
		{IndicatorVASI, "VASI22"},
		{IndicatorPAPILeft, "PAPI4"},
		{IndicatorPAPIRight, "PAPI4"},
		{IndicatorShuttlePAPI, "PAPI4"},
		{IndicatorTriColor, "TRICOLOR"},
		{IndicatorRunwayGuard, "GUARD"},
	} {
		if got := tc.a.Db(); got != tc.db {
			t.Errorf("indicator %d: got %q, expected %q", tc.a, got, tc.db)
		}
	}
}
