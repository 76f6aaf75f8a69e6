// xplane/compiler.go
// Copyright(c) 2026 aptdb contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package xplane

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"aptdb/filter"
	"aptdb/log"
)

// SceneryEntry is one apt.dat file queued for compilation.
type SceneryEntry struct {
	Path    string
	IsAddon bool
	Is3D    bool
}

// FindSceneryFiles walks root for apt.dat files, including .gz and .zst
// compressed ones, and returns them in priority order: add-on
// sceneries first, then the Global Airports, stock scenery last. The
// airport index keeps the first occurrence of each ident, so this
// order makes add-ons shadow the stock airports.
//
// Path and filename filters from opts apply to the directory relative
// to root and to the base name.
func FindSceneryFiles(root string, opts *filter.Options, lg *log.Logger) ([]SceneryEntry, error) {
	var entries []SceneryEntry

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			lg.Warnf("%s: %v", path, err)
			return nil
		}
		if d.IsDir() || !isAptDat(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(root, filepath.Dir(path))
		if err != nil {
			rel = filepath.Dir(path)
		}
		if !opts.IncludePath(rel) || !opts.IncludeFilename(d.Name()) {
			lg.Debugf("%s: filtered out", path)
			return nil
		}

		isAddon, is3D := classifyScenery(path)
		entries = append(entries, SceneryEntry{Path: path, IsAddon: isAddon, Is3D: is3D})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		if ri, rj := entries[i].rank(), entries[j].rank(); ri != rj {
			return ri < rj
		}
		return entries[i].Path < entries[j].Path
	})
	return entries, nil
}

func isAptDat(name string) bool {
	switch strings.ToLower(name) {
	case "apt.dat", "apt.dat.gz", "apt.dat.zst":
		return true
	}
	return false
}

// classifyScenery decides the file flags from the directory layout: the
// Global Airports scenery holds the 3D gateway airports, everything
// else under Custom Scenery is an add-on.
func classifyScenery(path string) (isAddon, is3D bool) {
	switch {
	case strings.Contains(path, "Global Airports"):
		return false, true
	case strings.Contains(path, "Custom Scenery"):
		return true, false
	}
	return false, false
}

func (e SceneryEntry) rank() int {
	switch {
	case e.IsAddon:
		return 0
	case e.Is3D:
		return 1
	}
	return 2
}

///////////////////////////////////////////////////////////////////////////

// FileResult reports what compiling one file contributed.
type FileResult struct {
	Version  int
	Rows     int
	Airports int
}

// Compiler drives the airport writer over a sequence of scenery files.
// The airport index persists across files, which is what makes the
// shadowing of duplicate idents work. Callers typically wrap each
// CompileFile in one database transaction.
type Compiler struct {
	store  Store
	opts   *filter.Options
	index  *AirportIndex
	writer *AirportWriter
	lg     *log.Logger

	fileID int
}

func NewCompiler(store Store, opts *filter.Options, magvar MagVarSource, lg *log.Logger) *Compiler {
	index := NewAirportIndex()
	return &Compiler{
		store:  store,
		opts:   opts,
		index:  index,
		writer: NewAirportWriter(store, index, opts, magvar, lg),
		lg:     lg,
	}
}

// Index exposes the airport index, for cross referencing after the
// compile, like matching weather stations to written airports.
func (c *Compiler) Index() *AirportIndex { return c.index }

// Written returns the total number of airports committed.
func (c *Compiler) Written() int { return c.writer.Written() }

// CompileFile streams one apt.dat file through the writer. The context
// is checked between row batches so a cancelled compile stops mid
// file.
func (c *Compiler) CompileFile(ctx context.Context, entry SceneryEntry) (FileResult, error) {
	var res FileResult
	if err := ctx.Err(); err != nil {
		return res, err
	}

	rc, err := Open(entry.Path)
	if err != nil {
		return res, err
	}
	defer rc.Close()

	sc, err := NewScanner(rc)
	if err != nil {
		return res, fmt.Errorf("%s: %w", entry.Path, err)
	}
	res.Version = sc.Version

	c.fileID++
	f := &SceneryFile{
		ID:        c.fileID,
		LocalPath: filepath.Dir(entry.Path),
		FileName:  filepath.Base(entry.Path),
		IsAddon:   entry.IsAddon,
		Is3D:      entry.Is3D,
	}
	if err := c.store.AddSceneryFile(f); err != nil {
		return res, err
	}
	if err := c.writer.StartFile(f); err != nil {
		return res, err
	}

	before := c.writer.Written()
	for {
		row, ok := sc.Next()
		if !ok {
			break
		}
		res.Rows++
		if res.Rows%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}
		if err := c.writer.Write(row); err != nil {
			return res, fmt.Errorf("%s, line %d: %w", f.FileName, row.Line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return res, fmt.Errorf("%s: %w", entry.Path, err)
	}
	if err := c.writer.Finish(); err != nil {
		return res, err
	}

	res.Airports = c.writer.Written() - before
	c.lg.Infof("%s: format %d, %d rows, %d airports", entry.Path, res.Version, res.Rows, res.Airports)
	return res, nil
}
