// xplane/compiler_test.go
// Copyright(c) 2026 aptdb contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package xplane

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"aptdb/filter"
)

func writeScenery(t *testing.T, root string, parts ...string) string {
	t.Helper()
	path := filepath.Join(append([]string{root}, parts...)...)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFindSceneryFiles(t *testing.T) {
	root := t.TempDir()
	addonB := writeScenery(t, root, "Custom Scenery", "B Airport", "Earth nav data", "apt.dat")
	addonA := writeScenery(t, root, "Custom Scenery", "A Airport", "Earth nav data", "apt.dat")
	global := writeScenery(t, root, "Custom Scenery", "Global Airports", "Earth nav data", "apt.dat.gz")
	stock := writeScenery(t, root, "Resources", "default scenery", "Earth nav data", "apt.dat.zst")
	writeScenery(t, root, "Custom Scenery", "A Airport", "README.txt")

	entries, err := FindSceneryFiles(root, nil, nil)
	if err != nil {
		t.Fatalf("FindSceneryFiles: %v", err)
	}
	want := []SceneryEntry{
		{Path: addonA, IsAddon: true},
		{Path: addonB, IsAddon: true},
		{Path: global, Is3D: true},
		{Path: stock},
	}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, expected %d: %+v", len(entries), len(want), entries)
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entry %d: got %+v, expected %+v", i, entries[i], want[i])
		}
	}

	// A path filter drops whole sceneries, a filename filter the
	// compressed variants.
	pf, err := filter.New(nil, []string{"*Global Airports*"})
	if err != nil {
		t.Fatal(err)
	}
	entries, err = FindSceneryFiles(root, &filter.Options{Paths: pf}, nil)
	if err != nil {
		t.Fatalf("FindSceneryFiles: %v", err)
	}
	for _, e := range entries {
		if e.Path == global {
			t.Errorf("got filtered entry %+v", e)
		}
	}

	ff, err := filter.New([]string{"apt.dat"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	entries, err = FindSceneryFiles(root, &filter.Options{Filenames: ff}, nil)
	if err != nil {
		t.Fatalf("FindSceneryFiles: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("got %d entries with filename filter, expected 2: %+v", len(entries), entries)
	}
}

func TestCompileFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "apt.dat")
	src := preamble +
		`1 433 0 0 KCMP Compile test
100 29.87 1 0 0.25 0 0 1 16 50.01000000 8.00000000 0 0 0 0 0 0 34 49.99000000 8.00000000 0 0 0 0 0 0
99
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	st := &captureStore{}
	c := NewCompiler(st, nil, nil, nil)
	res, err := c.CompileFile(context.Background(), SceneryEntry{Path: path, IsAddon: true})
	if err != nil {
		t.Fatalf("CompileFile: %v", err)
	}
	if res.Version != 1100 || res.Rows != 2 || res.Airports != 1 {
		t.Errorf("got result %+v, expected format 1100, 2 rows, 1 airport", res)
	}
	if len(st.sceneryFiles) != 1 {
		t.Fatalf("got %d scenery files, expected 1", len(st.sceneryFiles))
	}
	f := st.sceneryFiles[0]
	if f.ID != 1 || f.LocalPath != dir || f.FileName != "apt.dat" || !f.IsAddon {
		t.Errorf("got scenery file %+v", f)
	}
	if len(st.airports) != 1 || st.airports[0].FileID != 1 || !st.airports[0].IsAddon {
		t.Errorf("got airports %+v", st.airports)
	}

	// A second file with a duplicate ident only contributes the new
	// airport; the index spans files.
	dir2 := t.TempDir()
	path2 := filepath.Join(dir2, "apt.dat")
	src2 := preamble +
		`1 10 0 0 KCMP Shadowed duplicate
1 20 0 0 KNEW Second field
99
`
	if err := os.WriteFile(path2, []byte(src2), 0o644); err != nil {
		t.Fatal(err)
	}
	res, err = c.CompileFile(context.Background(), SceneryEntry{Path: path2})
	if err != nil {
		t.Fatalf("CompileFile: %v", err)
	}
	if res.Airports != 1 || c.Written() != 2 {
		t.Errorf("got %d new airports, %d total, expected 1 and 2", res.Airports, c.Written())
	}
	if id, ok := c.Index().ID("KCMP"); !ok || id != 1 {
		t.Errorf("got index id %d, %v for KCMP, expected 1", id, ok)
	}
	if c.Index().Len() != 2 {
		t.Errorf("got index length %d, expected 2", c.Index().Len())
	}
}

func TestCompileFileErrors(t *testing.T) {
	dir := t.TempDir()

	st := &captureStore{}
	c := NewCompiler(st, nil, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.CompileFile(ctx, SceneryEntry{Path: filepath.Join(dir, "apt.dat")}); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, expected context.Canceled", err)
	}

	if _, err := c.CompileFile(context.Background(), SceneryEntry{Path: filepath.Join(dir, "missing", "apt.dat")}); err == nil {
		t.Error("got no error for a missing file")
	}

	bad := filepath.Join(dir, "apt.dat")
	if err := os.WriteFile(bad, []byte("garbage\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := c.CompileFile(context.Background(), SceneryEntry{Path: bad}); !errors.Is(err, ErrBadHeader) {
		t.Errorf("got %v, expected ErrBadHeader", err)
	}

	good := filepath.Join(dir, "good", "apt.dat")
	if err := os.MkdirAll(filepath.Dir(good), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(good, []byte(preamble+"1 0 0 0 KERR Error test\n99\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	boom := errors.New("boom")
	st.fail = boom
	if _, err := c.CompileFile(context.Background(), SceneryEntry{Path: good}); !errors.Is(err, boom) {
		t.Errorf("got %v, expected the store error", err)
	}
}
