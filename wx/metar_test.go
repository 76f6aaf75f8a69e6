// wx/metar_test.go
// Copyright(c) 2026 aptdb contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package wx

import (
	"reflect"
	"strings"
	"testing"
)

func TestCanonical(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "already canonical",
			raw:  "KHYI 301845Z 13007KT 10SM SCT075 38/17 A2996",
			want: "KHYI 301845Z 13007KT 10SM SCT075 38/17 A2996",
		},
		{
			name: "whitespace runs",
			raw:  "  KHYI  301845Z\t13007KT ",
			want: "KHYI 301845Z 13007KT",
		},
		{
			name: "trailing equals",
			raw:  "KPRO 301855Z AUTO 11003KT A3022=",
			want: "KPRO 301855Z AUTO 11003KT A3022",
		},
		{
			name: "spaced equals",
			raw:  "KPRO 301855Z A3022 =",
			want: "KPRO 301855Z A3022",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Canonical(tt.raw); got != tt.want {
				t.Errorf("Canonical(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestReadCycle(t *testing.T) {
	cycle := `2017/07/30 18:45
KHYI 301845Z 13007KT 070V130 10SM SCT075 38/17 A2996

2017/07/30 18:55
KPRO 301855Z AUTO 11003KT 10SM CLR 26/19 A3022 RMK AO2
x1 bogus line

2017/07/30 19:45
KHYI 301945Z 14008KT 10SM SCT080 37/17 A2994=
`

	got, err := ReadCycle(strings.NewReader(cycle))
	if err != nil {
		t.Fatalf("ReadCycle: %v", err)
	}

	want := []METAR{
		// Last report for the station wins but keeps its slot.
		{Station: "KHYI", Raw: "KHYI 301945Z 14008KT 10SM SCT080 37/17 A2994"},
		{Station: "KPRO", Raw: "KPRO 301855Z AUTO 11003KT 10SM CLR 26/19 A3022 RMK AO2"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReadCycle = %+v, want %+v", got, want)
	}
}

func TestReadCycleEmpty(t *testing.T) {
	got, err := ReadCycle(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ReadCycle: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ReadCycle on empty input gave %+v", got)
	}
}
