// db/store.go
// Copyright(c) 2026 aptdb contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"aptdb/geo"
	"aptdb/xplane"
)

var (
	ErrTxOpen = errors.New("transaction already open")
	ErrNoTx   = errors.New("no open transaction")
)

// Open connects to the PostgreSQL database given by dsn.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return db, nil
}

// insertSQL builds a plain insert statement with positional
// placeholders for the given columns.
func insertSQL(table string, columns ...string) string {
	ph := make([]string, len(columns))
	for i := range columns {
		ph[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), strings.Join(ph, ", "))
}

var (
	insertSceneryFileSQL = insertSQL("scenery_file",
		"scenery_file_id", "local_path", "filename", "is_addon", "is_3d")

	insertAirportSQL = insertSQL("airport",
		"airport_id", "file_id", "ident", "name", "city", "country", "region",
		"has_avgas", "has_jetfuel", "has_tower_object", "is_closed", "is_military", "is_addon", "is_3d",
		"num_com", "num_parking_gate", "num_parking_ga_ramp", "num_parking_cargo",
		"num_parking_mil_cargo", "num_parking_mil_combat",
		"num_runway_hard", "num_runway_soft", "num_runway_water", "num_runway_light",
		"num_runway_end_vasi", "num_runway_end_als",
		"num_apron", "num_taxi_path", "num_helipad", "num_starts",
		"longest_runway_length", "longest_runway_width", "longest_runway_heading", "longest_runway_surface",
		"num_runways", "largest_parking_ramp", "largest_parking_gate", "rating",
		"scenery_local_path", "bgl_filename",
		"left_lonx", "top_laty", "right_lonx", "bottom_laty", "mag_var",
		"tower_frequency", "atis_frequency", "awos_frequency", "asos_frequency", "unicom_frequency",
		"tower_lonx", "tower_laty", "tower_altitude",
		"altitude", "lonx", "laty")

	insertAirportFileSQL = insertSQL("airport_file",
		"airport_file_id", "file_id", "ident")

	insertRunwaySQL = insertSQL("runway",
		"runway_id", "airport_id", "primary_end_id", "secondary_end_id",
		"surface", "shoulder", "length", "width", "heading", "marking_flags",
		"edge_light", "center_light",
		"primary_lonx", "primary_laty", "secondary_lonx", "secondary_laty",
		"altitude", "lonx", "laty")

	insertRunwayEndSQL = insertSQL("runway_end",
		"runway_end_id", "name", "end_type", "offset_threshold", "blast_pad",
		"has_closed_markings", "app_light_system_type", "has_reils", "has_touchdown_lights",
		"left_vasi_type", "left_vasi_pitch", "right_vasi_type", "right_vasi_pitch",
		"heading", "lonx", "laty")

	insertStartSQL = insertSQL("start",
		"start_id", "airport_id", "runway_end_id", "runway_name", "type",
		"heading", "number", "altitude", "lonx", "laty")

	insertHelipadSQL = insertSQL("helipad",
		"helipad_id", "airport_id", "start_id", "surface", "length", "width",
		"heading", "is_closed", "altitude", "lonx", "laty")

	insertComSQL = insertSQL("com",
		"com_id", "airport_id", "type", "frequency", "name")

	insertParkingSQL = insertSQL("parking",
		"parking_id", "airport_id", "type", "name", "airline_codes",
		"number", "radius", "heading", "has_jetway", "lonx", "laty")

	insertApronSQL = insertSQL("apron",
		"apron_id", "airport_id", "surface", "geometry")

	insertTaxiPathSQL = insertSQL("taxi_path",
		"taxi_path_id", "airport_id", "name",
		"start_lonx", "start_laty", "end_lonx", "end_laty")

	upsertMETARSQL = `INSERT INTO airport_metar (ident, metar) VALUES ($1, $2)
		ON CONFLICT (ident) DO UPDATE SET metar = EXCLUDED.metar`
)

// Writer writes compiled entities into the database. All inserts go
// through prepared statements on the current transaction; the caller
// brackets each scenery file with Begin and Commit so a storage error
// rolls back the whole file.
type Writer struct {
	db *sql.DB
	tx *sql.Tx

	sceneryFile *sql.Stmt
	airport     *sql.Stmt
	airportFile *sql.Stmt
	runway      *sql.Stmt
	runwayEnd   *sql.Stmt
	start       *sql.Stmt
	helipad     *sql.Stmt
	com         *sql.Stmt
	parking     *sql.Stmt
	apron       *sql.Stmt
	taxiPath    *sql.Stmt
	metar       *sql.Stmt
}

var _ xplane.Store = (*Writer)(nil)

func NewWriter(db *sql.DB) *Writer {
	return &Writer{db: db}
}

// Begin opens a transaction and prepares the insert statements on it.
func (w *Writer) Begin() error {
	if w.tx != nil {
		return ErrTxOpen
	}
	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	for _, p := range []struct {
		stmt **sql.Stmt
		sql  string
	}{
		{&w.sceneryFile, insertSceneryFileSQL},
		{&w.airport, insertAirportSQL},
		{&w.airportFile, insertAirportFileSQL},
		{&w.runway, insertRunwaySQL},
		{&w.runwayEnd, insertRunwayEndSQL},
		{&w.start, insertStartSQL},
		{&w.helipad, insertHelipadSQL},
		{&w.com, insertComSQL},
		{&w.parking, insertParkingSQL},
		{&w.apron, insertApronSQL},
		{&w.taxiPath, insertTaxiPathSQL},
		{&w.metar, upsertMETARSQL},
	} {
		*p.stmt, err = tx.Prepare(p.sql)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("preparing %q: %w", p.sql, err)
		}
	}

	w.tx = tx
	return nil
}

// Commit commits the current transaction. Deferred foreign keys are
// checked here, once all parent rows of the file are in.
func (w *Writer) Commit() error {
	if w.tx == nil {
		return ErrNoTx
	}
	w.closeStmts()
	err := w.tx.Commit()
	w.tx = nil
	if err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Rollback discards the current transaction. Calling it without one is
// a no-op so it can run deferred.
func (w *Writer) Rollback() error {
	if w.tx == nil {
		return nil
	}
	w.closeStmts()
	err := w.tx.Rollback()
	w.tx = nil
	return err
}

func (w *Writer) closeStmts() {
	for _, stmt := range []**sql.Stmt{
		&w.sceneryFile, &w.airport, &w.airportFile, &w.runway, &w.runwayEnd,
		&w.start, &w.helipad, &w.com, &w.parking, &w.apron, &w.taxiPath, &w.metar,
	} {
		if *stmt != nil {
			(*stmt).Close()
			*stmt = nil
		}
	}
}

///////////////////////////////////////////////////////////////////////////
// xplane.Store

func (w *Writer) AddSceneryFile(f *xplane.SceneryFile) error {
	if w.tx == nil {
		return ErrNoTx
	}
	_, err := w.sceneryFile.Exec(f.ID, f.LocalPath, f.FileName, f.IsAddon, f.Is3D)
	if err != nil {
		return fmt.Errorf("inserting scenery file: %w", err)
	}
	return nil
}

func (w *Writer) AddAirport(a *xplane.Airport) error {
	if w.tx == nil {
		return ErrNoTx
	}
	towerLon, towerLat := nullPos(a.TowerPos)
	_, err := w.airport.Exec(
		a.ID, a.FileID, a.Ident, a.Name, nullStr(a.City), nullStr(a.Country), nullStr(a.Region),
		a.HasAvgas, a.HasJetfuel, a.HasTower, a.IsClosed, a.IsMilitary, a.IsAddon, a.Is3D,
		a.NumCom, a.NumParkingGate, a.NumParkingGARamp, a.NumParkingCargo,
		a.NumParkingMilCargo, a.NumParkingMilCombat,
		a.NumRunwayHard, a.NumRunwaySoft, a.NumRunwayWater, a.NumRunwayLight,
		a.NumRunwayEndVASI, a.NumRunwayEndALS,
		a.NumApron, a.NumTaxiPath, a.NumHelipad, a.NumStart,
		a.LongestRunwayLength, a.LongestRunwayWidth, a.LongestRunwayHeading, a.LongestRunwaySurface,
		a.NumRunways, nullStr(a.LargestParkingRamp), nullStr(a.LargestParkingGate), a.Rating,
		a.SceneryLocalPath, a.FileName,
		a.Bounding.TopLeft.Lon, a.Bounding.TopLeft.Lat,
		a.Bounding.BottomRight.Lon, a.Bounding.BottomRight.Lat, a.MagVar,
		nullInt(a.TowerFrequency), nullInt(a.AtisFrequency), nullInt(a.AwosFrequency),
		nullInt(a.AsosFrequency), nullInt(a.UnicomFrequency),
		towerLon, towerLat, nullFloat(a.TowerAltitude),
		a.Altitude, a.Pos.Lon, a.Pos.Lat)
	if err != nil {
		return fmt.Errorf("inserting airport: %w", err)
	}
	return nil
}

func (w *Writer) AddAirportFile(f *xplane.AirportFile) error {
	if w.tx == nil {
		return ErrNoTx
	}
	_, err := w.airportFile.Exec(f.ID, f.FileID, f.Ident)
	if err != nil {
		return fmt.Errorf("inserting airport file: %w", err)
	}
	return nil
}

func (w *Writer) AddRunway(r *xplane.Runway) error {
	if w.tx == nil {
		return ErrNoTx
	}
	_, err := w.runway.Exec(
		r.ID, r.AirportID, r.PrimaryEndID, r.SecondaryEndID,
		r.Surface, nullStr(r.Shoulder), r.Length, r.Width, r.Heading, r.MarkingFlags,
		nullStr(r.EdgeLight), nullStr(r.CenterLight),
		r.PrimaryPos.Lon, r.PrimaryPos.Lat, r.SecondaryPos.Lon, r.SecondaryPos.Lat,
		r.Altitude, r.Pos.Lon, r.Pos.Lat)
	if err != nil {
		return fmt.Errorf("inserting runway: %w", err)
	}
	return nil
}

func (w *Writer) AddRunwayEnd(e *xplane.RunwayEnd) error {
	if w.tx == nil {
		return ErrNoTx
	}
	_, err := w.runwayEnd.Exec(
		e.ID, e.Name, e.EndType, e.OffsetThreshold, e.BlastPad,
		e.HasClosedMarkings, nullStr(e.ALS), e.HasReils, e.HasTouchdownLight,
		nullStr(e.LeftVASIType), nullFloat(e.LeftVASIPitch),
		nullStr(e.RightVASIType), nullFloat(e.RightVASIPitch),
		e.Heading, e.Pos.Lon, e.Pos.Lat)
	if err != nil {
		return fmt.Errorf("inserting runway end: %w", err)
	}
	return nil
}

func (w *Writer) AddStart(s *xplane.Start) error {
	if w.tx == nil {
		return ErrNoTx
	}
	_, err := w.start.Exec(
		s.ID, s.AirportID, nullInt(s.RunwayEndID), s.RunwayName, s.Type,
		s.Heading, nullInt(s.Number), s.Altitude, s.Pos.Lon, s.Pos.Lat)
	if err != nil {
		return fmt.Errorf("inserting start: %w", err)
	}
	return nil
}

func (w *Writer) AddHelipad(h *xplane.Helipad) error {
	if w.tx == nil {
		return ErrNoTx
	}
	_, err := w.helipad.Exec(
		h.ID, h.AirportID, nullInt(h.StartID), h.Surface, h.Length, h.Width,
		h.Heading, h.IsClosed, h.Altitude, h.Pos.Lon, h.Pos.Lat)
	if err != nil {
		return fmt.Errorf("inserting helipad: %w", err)
	}
	return nil
}

func (w *Writer) AddCom(c *xplane.Com) error {
	if w.tx == nil {
		return ErrNoTx
	}
	_, err := w.com.Exec(c.ID, c.AirportID, c.Type, c.Frequency, c.Name)
	if err != nil {
		return fmt.Errorf("inserting com: %w", err)
	}
	return nil
}

func (w *Writer) AddParking(p *xplane.Parking) error {
	if w.tx == nil {
		return ErrNoTx
	}
	_, err := w.parking.Exec(
		p.ID, p.AirportID, p.Type, p.Name, nullStr(p.AirlineCodes),
		p.Number, p.Radius, p.Heading, p.HasJetway, p.Pos.Lon, p.Pos.Lat)
	if err != nil {
		return fmt.Errorf("inserting parking: %w", err)
	}
	return nil
}

func (w *Writer) AddApron(a *xplane.Apron) error {
	if w.tx == nil {
		return ErrNoTx
	}
	_, err := w.apron.Exec(a.ID, a.AirportID, a.Surface, a.Geometry)
	if err != nil {
		return fmt.Errorf("inserting apron: %w", err)
	}
	return nil
}

func (w *Writer) AddTaxiPath(p *xplane.TaxiPath) error {
	if w.tx == nil {
		return ErrNoTx
	}
	_, err := w.taxiPath.Exec(
		p.ID, p.AirportID, p.Name,
		p.Start.Lon, p.Start.Lat, p.End.Lon, p.End.Lat)
	if err != nil {
		return fmt.Errorf("inserting taxi path: %w", err)
	}
	return nil
}

func (w *Writer) AddMETAR(station, raw string) error {
	if w.tx == nil {
		return ErrNoTx
	}
	_, err := w.metar.Exec(station, raw)
	if err != nil {
		return fmt.Errorf("upserting metar: %w", err)
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////
// null conversion

func nullStr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func nullPos(p *geo.Point) (lon, lat sql.NullFloat64) {
	if p == nil {
		return sql.NullFloat64{}, sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: p.Lon, Valid: true},
		sql.NullFloat64{Float64: p.Lat, Valid: true}
}
