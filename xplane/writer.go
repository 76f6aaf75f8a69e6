// xplane/writer.go
// Copyright(c) 2026 aptdb contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package xplane

import (
	"fmt"

	"aptdb/filter"
	"aptdb/geo"
	"aptdb/log"
)

// MagVarSource yields the magnetic declination in degrees at a point,
// east positive.
type MagVarSource interface {
	MagVar(p geo.Point) float64
}

// Field indexes into apt.dat rows, by row family. Index 0 is always the
// row code.
const (
	// Airport header, codes 1, 16 and 17.
	apElevation = 1
	apIdent     = 4
	apName      = 5

	// Land runway, code 100.
	rwWidth              = 1
	rwSurface            = 2
	rwShoulder           = 3
	rwCenterLights       = 5
	rwEdgeLights         = 6
	rwPrimaryNumber      = 8
	rwPrimaryLat         = 9
	rwPrimaryLon         = 10
	rwPrimaryDisplaced   = 11
	rwPrimaryBlastpad    = 12
	rwPrimaryMarking     = 13
	rwPrimaryALS         = 14
	rwPrimaryTDZ         = 15
	rwPrimaryREIL        = 16
	rwSecondaryNumber    = 17
	rwSecondaryLat       = 18
	rwSecondaryLon       = 19
	rwSecondaryDisplaced = 20
	rwSecondaryBlastpad  = 21
	rwSecondaryMarking   = 22
	rwSecondaryALS       = 23
	rwSecondaryTDZ       = 24
	rwSecondaryREIL      = 25

	// Water runway, code 101.
	wwPrimaryNumber   = 3
	wwPrimaryLat      = 4
	wwPrimaryLon      = 5
	wwSecondaryNumber = 6
	wwSecondaryLat    = 7
	wwSecondaryLon    = 8

	// Helipad, code 102.
	hpDesignator  = 1
	hpLat         = 2
	hpLon         = 3
	hpOrientation = 4
	hpLength      = 5
	hpWidth       = 6
	hpSurface     = 7

	// Tower viewpoint, code 14.
	vpLat    = 1
	vpLon    = 2
	vpHeight = 3

	// Startup location, code 15.
	sLat     = 1
	sLon     = 2
	sHeading = 3
	sName    = 4

	// Lighting object, code 21.
	vLat         = 1
	vLon         = 2
	vType        = 3
	vOrientation = 4
	vAngle       = 5
	vRunway      = 6

	// Pavement header, code 110.
	pSurface = 1

	// Pavement nodes, codes 111 to 114.
	nLat     = 1
	nLon     = 2
	nCtrlLat = 3
	nCtrlLon = 4

	// Taxi network node, code 1201.
	tnLat = 1
	tnLon = 2
	tnID  = 4

	// Taxi network edge, code 1202.
	teStart = 1
	teEnd   = 2
	teType  = 4
	teName  = 5

	// Ramp start, code 1300.
	slLat          = 1
	slLon          = 2
	slHeading      = 3
	slType         = 4
	slAirplaneType = 5
	slName         = 6

	// Ramp start metadata, code 1301.
	smWidth   = 1
	smOpType  = 2
	smAirline = 3

	// Airport metadata, code 1302.
	mKey   = 1
	mValue = 2

	// Com rows, codes 50 to 56 and 1050 to 1056.
	comFrequency = 1
	comName      = 2

	// Truck parking and destination, codes 1400 and 1401.
	tpTypes = 4
)

// AirportWriter converts the airport rows of apt.dat files into
// entities on a Store. Rows stream in through Write in file order; an
// airport accumulates until the next airport header or Finish and is
// then flushed as one batch, airport row first, staged runway ends
// after. Child rows that are complete on their own go to the store as
// soon as they are read.
//
// StartFile must be called before the first Write of each file. Id
// counters run across files so ids are unique per compile.
type AirportWriter struct {
	store  Store
	index  *AirportIndex
	opts   *filter.Options
	magvar MagVarSource
	lg     *log.Logger

	file *SceneryFile

	airportID     int
	airportFileID int
	runwayEndID   int
	startID       int
	comID         int
	helipadID     int
	parkingID     int
	apronID       int
	taxiPathID    int

	// writing and ignoring describe the current airport: neither set
	// means no header seen yet, ignoring means the airport is a
	// duplicate or filtered out.
	writing  bool
	ignoring bool
	written  int
	cur      acc
}

// acc is everything accumulated for the airport currently being read.
type acc struct {
	airport Airport

	datum               geo.Point
	pos                 geo.Point
	longestRunwayCenter geo.Point

	numRunway  int
	numParking int

	helipadStartNumber int

	runwayEnds []RunwayEnd
	taxiNodes  map[int]geo.Point

	pavement         Pavement
	apron            Apron
	pavementBoundary bool
	pavementHoles    bool
	pavementNewHole  bool

	ramp *Parking
}

func NewAirportWriter(store Store, index *AirportIndex, opts *filter.Options, magvar MagVarSource, lg *log.Logger) *AirportWriter {
	if index == nil {
		index = NewAirportIndex()
	}
	w := &AirportWriter{store: store, index: index, opts: opts, magvar: magvar, lg: lg}
	w.reset()
	return w
}

// StartFile begins a new scenery file, flushing whatever the previous
// file left open.
func (w *AirportWriter) StartFile(f *SceneryFile) error {
	if err := w.Finish(); err != nil {
		return err
	}
	w.file = f
	return nil
}

// Written returns the number of airports committed so far.
func (w *AirportWriter) Written() int { return w.written }

// Finish flushes the airport left open at the end of a file.
func (w *AirportWriter) Finish() error {
	if err := w.flushPavement(); err != nil {
		return err
	}
	if err := w.flushRampStart(); err != nil {
		return err
	}
	return w.flushAirport()
}

// Write dispatches one row. Codes the compiler does not store are
// dropped silently. Returned errors come from the store; everything
// else degrades to a logged warning.
func (w *AirportWriter) Write(row Row) error {
	// Any code other than a pavement node ends a pavement in progress.
	switch row.Code {
	case RowPavement, RowNode, RowNodeControl, RowNodeClose, RowNodeControlClose:
	default:
		if err := w.flushPavement(); err != nil {
			return err
		}
	}

	// Only metadata rows extend a ramp start.
	if row.Code != RowRampMetadata {
		if err := w.flushRampStart(); err != nil {
			return err
		}
	}

	switch row.Code {
	case RowLandAirport, RowSeaplaneBase, RowHeliport:
		if err := w.flushAirport(); err != nil {
			return err
		}
		return w.beginAirport(row)

	case RowLandRunway, RowWaterRunway:
		return w.addRunway(row)

	case RowHelipad:
		return w.addHelipad(row)

	case RowPavement:
		// A new header ends the previous pavement.
		if err := w.flushPavement(); err != nil {
			return err
		}
		w.beginPavement(row)

	case RowNode, RowNodeControl, RowNodeClose, RowNodeControlClose:
		w.addPavementNode(row)

	case RowViewpoint:
		w.setViewpoint(row)

	case RowLegacyStartup:
		return w.addLegacyStartup(row)

	case RowLightingObj:
		w.assignVasi(row)

	case RowStartupLoc:
		w.beginRampStart(row)

	case RowRampMetadata:
		w.amendRampStart(row)

	case RowTaxiNode:
		w.addTaxiNode(row)

	case RowTaxiEdge:
		return w.addTaxiEdge(row)

	case RowMetadata:
		w.setMetadata(row)

	case RowTruckParking, RowTruckDest:
		w.markFuel(row)

	case RowComWeather, RowComUnicom, RowComClearance, RowComGround,
		RowComTower, RowComApproach, RowComDeparture:
		return w.addCom(row, row.Code, false)

	case RowComWeather833, RowComUnicom833, RowComClearance833, RowComGround833,
		RowComTower833, RowComApproach833, RowComDeparture833:
		return w.addCom(row, row.Code-1000, true)
	}
	return nil
}

// reset clears all per airport state.
func (w *AirportWriter) reset() {
	w.writing = false
	w.ignoring = false
	w.cur = acc{
		datum:               geo.InvalidPoint,
		pos:                 geo.InvalidPoint,
		longestRunwayCenter: geo.InvalidPoint,
		taxiNodes:           make(map[int]geo.Point),
	}
	w.cur.airport.Bounding = geo.EmptyRect()
	w.cur.airport.LongestRunwaySurface = SurfaceUnknown.Db()
}

// skip reports whether the row should be dropped, because the current
// airport is filtered out or because no airport header was seen yet.
func (w *AirportWriter) skip(row Row, what string) bool {
	if w.ignoring {
		return true
	}
	if !w.writing {
		w.lg.Warnf("%s: %s row outside airport", w.at(row), what)
		return true
	}
	return false
}

// at returns the file and line prefix for diagnostics.
func (w *AirportWriter) at(row Row) string {
	return fmt.Sprintf("%s, line %d", w.filePrefix(), row.Line)
}

func (w *AirportWriter) filePrefix() string {
	if w.file == nil {
		return ""
	}
	return w.file.FileName
}

// fieldS returns row field i, logging rows that are too short. The
// erroring accessors exist for fields the format requires; optional
// trailing fields go through Row.Field and Row.Mid instead.
func (w *AirportWriter) fieldS(row Row, i int) string {
	s, err := row.At(i)
	if err != nil {
		w.lg.Warnf("%s: %v", w.at(row), err)
	}
	return s
}

// fieldF parses row field i as a float, logging short rows and garbage
// values and degrading them to 0.
func (w *AirportWriter) fieldF(row Row, i int) float64 {
	v, err := row.Float(i)
	if err != nil {
		w.lg.Warnf("%s: %v", w.at(row), err)
	}
	return v
}

// fieldI is fieldF for integer fields.
func (w *AirportWriter) fieldI(row Row, i int) int {
	v, err := row.Int(i)
	if err != nil {
		w.lg.Warnf("%s: %v", w.at(row), err)
	}
	return v
}
