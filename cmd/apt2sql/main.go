// cmd/apt2sql/main.go
// Copyright(c) 2026 aptdb contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// apt2sql compiles the airports of X-Plane apt.dat scenery files into a
// PostgreSQL database. Scenery roots are scanned for apt.dat files,
// add-on sceneries shadow the stock airports, and each file is written
// in one transaction. An X-Plane METAR.rwx cycle file can be loaded
// alongside to fill the airport_metar table.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"aptdb/db"
	"aptdb/filter"
	"aptdb/log"
	"aptdb/magvar"
	"aptdb/util"
	"aptdb/wx"
	"aptdb/xplane"
)

var (
	dsn        = flag.String("dsn", "", "PostgreSQL connection string; defaults to $APTDB_DSN")
	metarPath  = flag.String("metar", "", "METAR.rwx cycle file for the airport_metar table")
	magvarPath = flag.String("magvar", "", "magnetic declination grid file; without one all declinations are 0")
	logLevel   = flag.String("loglevel", "info", "logging level: debug, info, warn or error")
	logDir     = flag.String("logdir", "", "directory for the rotated log file; empty logs to stderr only")
	dryRun     = flag.Bool("dryrun", false, "compile and count everything, write nothing")

	sceneryRoots   stringList
	includeIdents  stringList
	excludeIdents  stringList
	includePaths   stringList
	excludePaths   stringList
	includeFiles   stringList
	excludeFiles   stringList
	excludeObjects stringList
)

func init() {
	flag.Var(&sceneryRoots, "scenery", "scenery root directory to scan, in priority order; repeatable")
	flag.Var(&includeIdents, "include-ident", "airport ident wildcard to include; repeatable")
	flag.Var(&excludeIdents, "exclude-ident", "airport ident wildcard to exclude; repeatable")
	flag.Var(&includePaths, "include-path", "scenery directory wildcard to include; repeatable")
	flag.Var(&excludePaths, "exclude-path", "scenery directory wildcard to exclude; repeatable")
	flag.Var(&includeFiles, "include-file", "scenery filename wildcard to include; repeatable")
	flag.Var(&excludeFiles, "exclude-file", "scenery filename wildcard to exclude; repeatable")
	flag.Var(&excludeObjects, "exclude-object",
		"airport object class to skip (aprons, apron geometry, taxi paths, parkings, coms, helipads, starts); repeatable")
}

// stringList collects the values of a repeatable flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	flag.Parse()
	_ = godotenv.Load(".env")
	if *dsn == "" {
		*dsn = os.Getenv("APTDB_DSN")
	}

	lg := log.New(*logLevel, *logDir)
	defer lg.CatchAndLogPanic()

	if err := run(lg); err != nil {
		lg.Errorf("%v", err)
		fmt.Fprintf(os.Stderr, "apt2sql: %v\n", err)
		os.Exit(1)
	}
}

func run(lg *log.Logger) error {
	if len(sceneryRoots) == 0 {
		return errors.New("no scenery roots given, use -scenery")
	}
	if !*dryRun && *dsn == "" {
		return errors.New("no database given, use -dsn or set APTDB_DSN")
	}

	opts, err := buildOptions()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Load the collaborators concurrently before the compile starts.
	var (
		entries []xplane.SceneryEntry
		metars  []wx.METAR
		grid    *magvar.Grid
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		for _, root := range sceneryRoots {
			if err := egCtx.Err(); err != nil {
				return err
			}
			es, err := xplane.FindSceneryFiles(root, opts, lg)
			if err != nil {
				return fmt.Errorf("%s: %w", root, err)
			}
			lg.Infof("%s: %d scenery files", root, len(es))
			entries = append(entries, es...)
		}
		return nil
	})
	if *metarPath != "" {
		eg.Go(func() error {
			var err error
			if metars, err = loadMETARs(*metarPath); err != nil {
				return fmt.Errorf("%s: %w", *metarPath, err)
			}
			lg.Infof("%s: %d weather stations", *metarPath, len(metars))
			return nil
		})
	}
	if *magvarPath != "" {
		eg.Go(func() error {
			var err error
			if grid, err = loadGrid(*magvarPath); err != nil {
				return fmt.Errorf("%s: %w", *magvarPath, err)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	if len(entries) == 0 {
		return errors.New("no apt.dat files found")
	}

	var magsrc xplane.MagVarSource = magvar.Zero{}
	if grid != nil {
		magsrc = grid
	}

	// A dry run compiles into a counting store instead of the database.
	var store xplane.Store
	var writer *db.Writer
	if *dryRun {
		store = newDiscardStore()
	} else {
		sqldb, err := db.Open(*dsn)
		if err != nil {
			return err
		}
		defer sqldb.Close()
		if err := db.EnsureSchema(sqldb); err != nil {
			return err
		}
		writer = db.NewWriter(sqldb)
		store = writer
	}

	// One transaction per scenery file; a failed file aborts the run
	// with everything before it committed.
	compiler := xplane.NewCompiler(store, opts, magsrc, lg)
	totalRows := 0
	for _, entry := range entries {
		if writer != nil {
			if err := writer.Begin(); err != nil {
				return err
			}
		}
		res, err := compiler.CompileFile(ctx, entry)
		if err != nil {
			if writer != nil {
				writer.Rollback()
			}
			return err
		}
		if writer != nil {
			if err := writer.Commit(); err != nil {
				return err
			}
		}
		totalRows += res.Rows
	}
	lg.Infof("compiled %d files, %d rows, %d airports", len(entries), totalRows, compiler.Written())

	if len(metars) > 0 {
		written, unknown, err := storeMETARs(store, writer, compiler.Index(), metars)
		if err != nil {
			return err
		}
		lg.Infof("%s: %d metars stored, %d for unknown airports", *metarPath, written, unknown)
	}

	if ds, ok := store.(*discardStore); ok {
		ds.report(lg)
	}
	return nil
}

// storeMETARs writes the reports whose station matches a written
// airport, in one transaction of their own.
func storeMETARs(store xplane.Store, writer *db.Writer, index *xplane.AirportIndex, metars []wx.METAR) (written, unknown int, err error) {
	if writer != nil {
		if err := writer.Begin(); err != nil {
			return 0, 0, err
		}
	}
	for _, m := range metars {
		if _, ok := index.ID(m.Station); !ok {
			unknown++
			continue
		}
		if err := store.AddMETAR(m.Station, m.Raw); err != nil {
			if writer != nil {
				writer.Rollback()
			}
			return written, unknown, err
		}
		written++
	}
	if writer != nil {
		if err := writer.Commit(); err != nil {
			return written, unknown, err
		}
	}
	return written, unknown, nil
}

func buildOptions() (*filter.Options, error) {
	opts := &filter.Options{}
	var err error
	if opts.AirportIdents, err = filter.New(includeIdents, excludeIdents); err != nil {
		return nil, fmt.Errorf("ident filter: %w", err)
	}
	if opts.Paths, err = filter.New(includePaths, excludePaths); err != nil {
		return nil, fmt.Errorf("path filter: %w", err)
	}
	if opts.Filenames, err = filter.New(includeFiles, excludeFiles); err != nil {
		return nil, fmt.Errorf("filename filter: %w", err)
	}

	var classes []filter.ObjectClass
	for _, s := range excludeObjects {
		c, err := filter.ParseObjectClass(s)
		if err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	opts.ExcludeObjects(classes...)
	return opts, nil
}

func loadMETARs(path string) ([]wx.METAR, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return wx.ReadCycle(f)
}

func loadGrid(path string) (*magvar.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return magvar.Load(f)
}

///////////////////////////////////////////////////////////////////////////
// dry run

// discardStore counts what a real compile would write.
type discardStore struct {
	counts map[string]int
}

func newDiscardStore() *discardStore {
	return &discardStore{counts: make(map[string]int)}
}

func (s *discardStore) bump(what string) error {
	s.counts[what]++
	return nil
}

func (s *discardStore) report(lg *log.Logger) {
	for _, what := range util.SortedMapKeys(s.counts) {
		lg.Infof("dry run: %d %s", s.counts[what], what)
	}
}

func (s *discardStore) AddSceneryFile(*xplane.SceneryFile) error { return s.bump("scenery files") }
func (s *discardStore) AddAirport(*xplane.Airport) error         { return s.bump("airports") }
func (s *discardStore) AddAirportFile(*xplane.AirportFile) error { return s.bump("airport files") }
func (s *discardStore) AddRunway(*xplane.Runway) error           { return s.bump("runways") }
func (s *discardStore) AddRunwayEnd(*xplane.RunwayEnd) error     { return s.bump("runway ends") }
func (s *discardStore) AddStart(*xplane.Start) error             { return s.bump("starts") }
func (s *discardStore) AddHelipad(*xplane.Helipad) error         { return s.bump("helipads") }
func (s *discardStore) AddCom(*xplane.Com) error                 { return s.bump("com frequencies") }
func (s *discardStore) AddParking(*xplane.Parking) error         { return s.bump("parking spots") }
func (s *discardStore) AddApron(*xplane.Apron) error             { return s.bump("aprons") }
func (s *discardStore) AddTaxiPath(*xplane.TaxiPath) error       { return s.bump("taxi paths") }
func (s *discardStore) AddMETAR(string, string) error            { return s.bump("metars") }

var _ xplane.Store = (*discardStore)(nil)
