// xplane/airport.go
// Copyright(c) 2026 aptdb contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package xplane

import (
	"strings"

	"aptdb/filter"
	"aptdb/geo"
	"aptdb/util"
)

// beginAirport handles an airport header row. Every header is recorded
// in the airport file table, including those skipped as duplicates or
// by the ident filter.
func (w *AirportWriter) beginAirport(row Row) error {
	if w.writing {
		w.lg.Warnf("%s: airport header while still writing %s", w.at(row), w.cur.airport.Ident)
	}
	if w.ignoring {
		w.lg.Warnf("%s: airport header while still ignoring previous airport", w.at(row))
	}

	w.airportID++
	id := w.airportID
	ident := row.Field(apIdent)

	w.airportFileID++
	err := w.store.AddAirportFile(&AirportFile{ID: w.airportFileID, FileID: w.file.ID, Ident: ident})
	if err != nil {
		return err
	}

	if !w.index.Add(ident, id) || !w.opts.IncludeAirportIdent(ident) {
		// Already written from a higher priority file, or filtered out.
		w.ignoring = true
		return nil
	}
	w.writing = true

	a := &w.cur.airport
	a.ID = id
	a.FileID = w.file.ID
	a.Ident = ident
	a.Altitude = w.fieldF(row, apElevation)
	a.IsAddon = w.file.IsAddon
	a.Is3D = w.file.Is3D
	a.SceneryLocalPath = w.file.LocalPath
	a.FileName = w.file.FileName

	name := row.Mid(apName)
	a.IsClosed = IsNameClosed(name)
	name = StripNameIndicators(name)
	// The military check runs on the original capitalization.
	a.IsMilitary = IsNameMilitary(name)
	a.Name = CapAirportName(name)

	return nil
}

// flushAirport commits the airport assembled since its header row,
// followed by its staged runway ends, and clears the per airport state.
func (w *AirportWriter) flushAirport() error {
	if !w.writing || w.ignoring {
		w.reset()
		return nil
	}

	cur := &w.cur
	a := &cur.airport

	a.NumRunways = a.NumRunwayHard + a.NumRunwaySoft + a.NumRunwayWater
	a.Rating = airportRating(a.IsAddon || a.Is3D, a.HasTower, a.NumTaxiPath, cur.numParking, a.NumApron)

	// Establish the bounding rectangle and center position. Airports
	// without any located child rows fall back to the datum from their
	// metadata, then to the longest runway.
	if !a.Bounding.Valid() {
		w.lg.Warnf("%s: %s: no bounding rectangle for airport", w.filePrefix(), a.Ident)
		if cur.datum.Valid() {
			a.Bounding = geo.PointRect(cur.datum)
			cur.pos = cur.datum
		} else if cur.longestRunwayCenter.Valid() {
			a.Bounding = geo.PointRect(cur.longestRunwayCenter)
			cur.pos = cur.longestRunwayCenter
		} else {
			w.lg.Warnf("%s: %s: could not determine bounding rectangle", w.filePrefix(), a.Ident)
		}
	} else if cur.datum.Valid() {
		// Use the datum as center only when it is plausibly inside the
		// airport; some sceneries carry datums of a different airport.
		test := a.Bounding
		test.Inflate(geo.Epsilon100M, geo.Epsilon100M)
		if test.Contains(cur.datum) {
			cur.pos = cur.datum
		} else if cur.numRunway == 1 {
			cur.pos = cur.longestRunwayCenter
		} else {
			cur.pos = a.Bounding.Center()
		}
	}

	if a.Bounding.IsPoint() {
		a.Bounding.Inflate(geo.PointInflateDeg, geo.PointInflateDeg)
	}

	if cur.pos.Valid() {
		a.Pos = cur.pos
	} else {
		a.Pos = a.Bounding.Center()
	}

	if w.magvar != nil {
		a.MagVar = w.magvar.MagVar(a.Pos)
	}

	if err := w.store.AddAirport(a); err != nil {
		return err
	}
	for i := range cur.runwayEnds {
		if err := w.store.AddRunwayEnd(&cur.runwayEnds[i]); err != nil {
			return err
		}
	}
	w.written++

	w.reset()
	return nil
}

// airportRating grades scenery detail on a 0 to 5 scale from the child
// objects present. Add-on or 3D sceneries get one extra point.
func airportRating(enhanced, tower bool, numTaxiPath, numParking, numApron int) int {
	rating := 0
	if numTaxiPath > 0 {
		rating++
	}
	if numParking > 0 {
		rating++
	}
	if numApron > 0 {
		rating++
	}
	if tower {
		rating++
	}
	if enhanced {
		rating++
	}
	return rating
}

// setViewpoint takes the tower position and height from a row 14
// viewpoint.
func (w *AirportWriter) setViewpoint(row Row) {
	if w.skip(row, "viewpoint") {
		return
	}

	a := &w.cur.airport
	pos := geo.Point{Lon: w.fieldF(row, vpLon), Lat: w.fieldF(row, vpLat)}
	a.Bounding.Extend(pos)

	alt := a.Altitude + w.fieldF(row, vpHeight)
	a.TowerPos = &pos
	a.TowerAltitude = &alt
	a.HasTower = true
}

// setMetadata applies a row 1302 key/value pair to the airport.
func (w *AirportWriter) setMetadata(row Row) {
	if w.skip(row, "metadata") {
		return
	}

	key := strings.ToLower(w.fieldS(row, mKey))
	value := row.Mid(mValue)

	a := &w.cur.airport
	switch {
	case key == "city":
		a.City = &value
	case key == "country":
		a.Country = &value
	case strings.HasPrefix(key, "region") && value != "":
		// Either region_id or region_code depending on the editor.
		a.Region = &value
	case key == "datum_lat":
		if v, err := util.Atof(value); err == nil && v != 0 {
			w.cur.datum.Lat = v
		}
	case key == "datum_lon":
		if v, err := util.Atof(value); err == nil && v != 0 {
			w.cur.datum.Lon = v
		}
	}
}

// markFuel reads fuel availability from the service vehicle types of
// truck parking and destination rows.
func (w *AirportWriter) markFuel(row Row) {
	if w.skip(row, "service vehicle") {
		return
	}

	types := w.fieldS(row, tpTypes)
	a := &w.cur.airport
	if strings.Contains(types, "fuel_props") {
		a.HasAvgas = true
	}
	if strings.Contains(types, "fuel_liners") || strings.Contains(types, "fuel_jets") {
		a.HasJetfuel = true
	}
}

// addCom writes one com frequency row. The 8.33 kHz spaced codes added
// with format 1130 carry the frequency in kilohertz, the legacy codes
// in ten kilohertz steps. Well known frequencies are mirrored into the
// airport columns.
func (w *AirportWriter) addCom(row Row, code int, khz bool) error {
	if w.skip(row, "com") {
		return nil
	}

	frequency := w.fieldI(row, comFrequency)
	if !khz {
		frequency *= 10
	}
	name := row.Mid(comName)
	lower := strings.ToLower(name)

	a := &w.cur.airport
	comType := "NONE"
	switch code {
	case RowComWeather:
		// The row code does not distinguish the weather services, the
		// name usually does.
		switch {
		case strings.Contains(lower, "atis"):
			comType = "ATIS"
			a.AtisFrequency = &frequency
		case strings.Contains(lower, "awos"):
			comType = "AWOS"
			a.AwosFrequency = &frequency
		case strings.Contains(lower, "asos"):
			comType = "ASOS"
			a.AsosFrequency = &frequency
		default:
			comType = "ATIS"
			a.AtisFrequency = &frequency
		}
	case RowComUnicom:
		comType = "UC"
		a.UnicomFrequency = &frequency
	case RowComClearance:
		comType = "C"
	case RowComGround:
		comType = "G"
	case RowComTower:
		comType = "T"
		a.TowerFrequency = &frequency
	case RowComApproach:
		comType = "A"
	case RowComDeparture:
		comType = "D"
	}

	if !w.opts.IncludeObject(filter.Coms) {
		return nil
	}

	a.NumCom++
	w.comID++
	return w.store.AddCom(&Com{
		ID:        w.comID,
		AirportID: a.ID,
		Type:      comType,
		Frequency: frequency,
		Name:      name,
	})
}
