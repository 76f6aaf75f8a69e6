// xplane/row.go
// Copyright(c) 2026 aptdb contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package xplane

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	"aptdb/util"
)

// Row is one whitespace-split apt.dat line. Fields[0] is the row code
// token so field indexes match the format documentation. Line is the
// one-based source line, for diagnostics.
type Row struct {
	Code   int
	Line   int
	Fields []string
}

// At returns field i or ErrFieldMissing when the row is too short.
func (r Row) At(i int) (string, error) {
	if i < 0 || i >= len(r.Fields) {
		return "", fmt.Errorf("field %d of %d: %w", i, len(r.Fields), ErrFieldMissing)
	}
	return r.Fields[i], nil
}

// Field returns field i or the empty string when the row is too short.
// Use it for the fields the format makes optional.
func (r Row) Field(i int) string {
	if i < 0 || i >= len(r.Fields) {
		return ""
	}
	return r.Fields[i]
}

// Float parses field i as a float. A missing field or garbage value
// returns 0 along with the error; callers degrade the field, not the row.
func (r Row) Float(i int) (float64, error) {
	s, err := r.At(i)
	if err != nil {
		return 0, err
	}
	v, err := util.Atof(s)
	if err != nil {
		return 0, fmt.Errorf("field %d %q: %w", i, s, err)
	}
	return v, nil
}

// Int parses field i as an integer, with the same degradation contract
// as Float.
func (r Row) Int(i int) (int, error) {
	s, err := r.At(i)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("field %d %q: %w", i, s, err)
	}
	return v, nil
}

// Mid joins fields i onward with single spaces. A row too short for i
// yields the empty string; names at the end of a row are optional
// throughout the format.
func (r Row) Mid(i int) string {
	if i < 0 || i >= len(r.Fields) {
		return ""
	}
	return strings.Join(r.Fields[i:], " ")
}

///////////////////////////////////////////////////////////////////////////
// Scanner

// Row code 99 ends an apt.dat file.
const rowCodeEOF = 99

// Scanner yields the data rows of an apt.dat file in order. The two
// preamble lines (byte order marker and version) are consumed by
// NewScanner; scanning stops at the 99 end-of-file row or at EOF.
type Scanner struct {
	sc      *bufio.Scanner
	Version int
	line    int
	err     error
	done    bool
}

func NewScanner(r io.Reader) (*Scanner, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	s := &Scanner{sc: sc}

	// First line is "I" or "A" for the file byte order, possibly after a
	// UTF-8 BOM written by some editors.
	line, err := s.nextLine()
	if err != nil {
		return nil, err
	}
	line = strings.TrimPrefix(line, "\uFEFF")
	if line != "I" && line != "A" {
		return nil, fmt.Errorf("byte order line %q: %w", line, ErrBadHeader)
	}

	// Second line starts with the format version, e.g. "1100 Generated by
	// WorldEditor".
	line, err = s.nextLine()
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, fmt.Errorf("missing version line: %w", ErrBadHeader)
	}
	s.Version, err = strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("version line %q: %w", line, ErrBadHeader)
	}

	return s, nil
}

func (s *Scanner) nextLine() (string, error) {
	for s.sc.Scan() {
		s.line++
		if line := strings.TrimSpace(s.sc.Text()); line != "" {
			return line, nil
		}
	}
	if err := s.sc.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("unexpected end of file: %w", ErrBadHeader)
}

// Next returns the next data row. It reports false at the end of the
// file; check Err afterwards to distinguish EOF from a read failure.
// Lines whose first token is not an integer get row code 0, which the
// writer ignores like any other unknown code.
func (s *Scanner) Next() (Row, bool) {
	if s.done {
		return Row{}, false
	}
	for s.sc.Scan() {
		s.line++
		fields := strings.Fields(s.sc.Text())
		if len(fields) == 0 {
			continue
		}
		code, err := strconv.Atoi(fields[0])
		if err != nil {
			code = 0
		}
		if code == rowCodeEOF {
			s.done = true
			return Row{}, false
		}
		return Row{Code: code, Line: s.line, Fields: fields}, true
	}
	s.err = s.sc.Err()
	s.done = true
	return Row{}, false
}

func (s *Scanner) Err() error { return s.err }

///////////////////////////////////////////////////////////////////////////

type fileReadCloser struct {
	io.Reader
	close func() error
}

func (f fileReadCloser) Close() error { return f.close() }

// Open opens an apt.dat file, decompressing transparently when the name
// ends in .zst or .gz.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	switch filepath.Ext(path) {
	case ".zst":
		zr, err := zstd.NewReader(f, zstd.WithDecoderConcurrency(0))
		if err != nil {
			f.Close()
			return nil, err
		}
		return fileReadCloser{
			Reader: zr,
			close: func() error {
				zr.Close()
				return f.Close()
			},
		}, nil

	case ".gz":
		gr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return fileReadCloser{
			Reader: gr,
			close: func() error {
				err := gr.Close()
				if cerr := f.Close(); err == nil {
					err = cerr
				}
				return err
			},
		}, nil
	}

	return f, nil
}
