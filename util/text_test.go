// util/text_test.go
// Copyright(c) 2026 aptdb contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"testing"
)

func TestAtof(t *testing.T) {
	if v, err := Atof(" 12.5 "); err != nil || v != 12.5 {
		t.Errorf("Atof(\" 12.5 \"): got %f, %v", v, err)
	}
	if v, err := Atof("-0.25"); err != nil || v != -0.25 {
		t.Errorf("Atof(\"-0.25\"): got %f, %v", v, err)
	}
	if _, err := Atof("bogus"); err == nil {
		t.Errorf("Atof(\"bogus\"): no error returned")
	}
}

func TestIsAllNumbers(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want bool
	}{
		{"0123", true},
		{"", true},
		{"12a", false},
		{"1.2", false},
	} {
		if got := IsAllNumbers(tc.in); got != tc.want {
			t.Errorf("IsAllNumbers(%q): got %v, expected %v", tc.in, got, tc.want)
		}
	}
}
