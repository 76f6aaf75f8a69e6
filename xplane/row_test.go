// xplane/row_test.go
// Copyright(c) 2026 aptdb contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package xplane

import (
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func TestRowAccessors(t *testing.T) {
	row := Row{Code: 100, Line: 7, Fields: strings.Fields("100 29.87 1 16 bad Boeing Field King Co")}

	if s, err := row.At(3); err != nil || s != "16" {
		t.Errorf("At(3) gave %q, %v", s, err)
	}
	if _, err := row.At(9); !errors.Is(err, ErrFieldMissing) {
		t.Errorf("At(9) gave %v, expected ErrFieldMissing", err)
	}
	if s := row.Field(9); s != "" {
		t.Errorf("Field(9) gave %q, expected empty", s)
	}
	if s := row.Field(-1); s != "" {
		t.Errorf("Field(-1) gave %q, expected empty", s)
	}

	if v, err := row.Float(1); err != nil || v != 29.87 {
		t.Errorf("Float(1) gave %v, %v", v, err)
	}
	if v, err := row.Float(4); err == nil || v != 0 {
		t.Errorf("Float(4) gave %v, %v, expected 0 and an error", v, err)
	}
	if _, err := row.Float(9); !errors.Is(err, ErrFieldMissing) {
		t.Errorf("Float(9) gave %v, expected ErrFieldMissing", err)
	}

	if v, err := row.Int(2); err != nil || v != 1 {
		t.Errorf("Int(2) gave %v, %v", v, err)
	}
	if v, err := row.Int(1); err == nil || v != 0 {
		t.Errorf("Int(1) gave %v, %v, expected 0 and an error", v, err)
	}

	if s := row.Mid(5); s != "Boeing Field King Co" {
		t.Errorf("Mid(5) gave %q", s)
	}
	if s := row.Mid(9); s != "" {
		t.Errorf("Mid(9) gave %q, expected empty", s)
	}
}

func TestScanner(t *testing.T) {
	src := `I
1100 Generated by WorldEditor

1 433 0 0 KBFI Boeing Field
bogus line here
100 1
99
1 0 0 0 KIGN After the end
`
	sc, err := NewScanner(strings.NewReader(src))
	if err != nil {
		t.Fatalf("NewScanner: %v", err)
	}
	if sc.Version != 1100 {
		t.Errorf("got version %d, expected 1100", sc.Version)
	}

	want := []struct {
		code, line int
	}{
		{1, 4},
		{0, 5}, // non-numeric first token
		{100, 6},
	}
	for i, tc := range want {
		row, ok := sc.Next()
		if !ok {
			t.Fatalf("row %d: Next gave false", i)
		}
		if row.Code != tc.code || row.Line != tc.line {
			t.Errorf("row %d: got code %d line %d, expected %d %d",
				i, row.Code, row.Line, tc.code, tc.line)
		}
	}

	// Row code 99 ends the file; nothing after it comes back.
	if row, ok := sc.Next(); ok {
		t.Errorf("got row %+v after the end marker", row)
	}
	if _, ok := sc.Next(); ok {
		t.Error("Next kept going after reporting done")
	}
	if err := sc.Err(); err != nil {
		t.Errorf("Err gave %v", err)
	}
}

func TestScannerPreamble(t *testing.T) {
	// Apple byte order marker and a BOM are both accepted.
	sc, err := NewScanner(strings.NewReader("\uFEFFA\n850\n1 0 0 0 X\n"))
	if err != nil {
		t.Fatalf("NewScanner: %v", err)
	}
	if sc.Version != 850 {
		t.Errorf("got version %d, expected 850", sc.Version)
	}
	if row, ok := sc.Next(); !ok || row.Code != 1 {
		t.Errorf("got %+v, %v", row, ok)
	}

	for _, src := range []string{
		"",
		"X\n1100\n",
		"I\n",
		"I\nabc def\n",
	} {
		if _, err := NewScanner(strings.NewReader(src)); !errors.Is(err, ErrBadHeader) {
			t.Errorf("%q: got %v, expected ErrBadHeader", src, err)
		}
	}
}

func TestOpen(t *testing.T) {
	data := []byte("I\n1100\n1 0 0 0 KXYZ Test\n99\n")
	dir := t.TempDir()

	plain := filepath.Join(dir, "apt.dat")
	if err := os.WriteFile(plain, data, 0o644); err != nil {
		t.Fatal(err)
	}

	var gz bytes.Buffer
	gw := gzip.NewWriter(&gz)
	if _, err := gw.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := gw.Close(); err != nil {
		t.Fatal(err)
	}
	gzPath := filepath.Join(dir, "apt.dat.gz")
	if err := os.WriteFile(gzPath, gz.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	var zst bytes.Buffer
	zw, err := zstd.NewWriter(&zst)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := zw.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	zstPath := filepath.Join(dir, "apt.dat.zst")
	if err := os.WriteFile(zstPath, zst.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{plain, gzPath, zstPath} {
		r, err := Open(path)
		if err != nil {
			t.Fatalf("Open(%s): %v", path, err)
		}
		got, err := io.ReadAll(r)
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
		if err := r.Close(); err != nil {
			t.Fatalf("close %s: %v", path, err)
		}
		if !bytes.Equal(got, data) {
			t.Errorf("%s: got %q, expected the original contents", path, got)
		}
	}

	if _, err := Open(filepath.Join(dir, "missing.dat")); err == nil {
		t.Error("Open of a missing file gave no error")
	}
}
