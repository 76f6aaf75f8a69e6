// util/generic_test.go
// Copyright(c) 2026 aptdb contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"slices"
	"testing"
)

func TestSortedMapKeys(t *testing.T) {
	m := map[string]int{"zulu": 1, "alfa": 2, "mike": 3}
	if k := SortedMapKeys(m); !slices.Equal(k, []string{"alfa", "mike", "zulu"}) {
		t.Errorf("got keys %v", k)
	}

	mi := map[int]string{3: "c", 1: "a", 2: "b"}
	if k := SortedMapKeys(mi); !slices.Equal(k, []int{1, 2, 3}) {
		t.Errorf("got keys %v", k)
	}
}

func TestFlattenMap(t *testing.T) {
	m := map[string]int{"one": 1, "two": 2}
	keys, values := FlattenMap(m)
	if len(keys) != 2 || len(values) != 2 {
		t.Fatalf("got %d keys, %d values", len(keys), len(values))
	}
	for i, k := range keys {
		if m[k] != values[i] {
			t.Errorf("key %q: got value %d, expected %d", k, values[i], m[k])
		}
	}
}
