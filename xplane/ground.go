// xplane/ground.go
// Copyright(c) 2026 aptdb contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package xplane

import (
	"strings"

	"aptdb/filter"
	"aptdb/geo"
)

///////////////////////////////////////////////////////////////////////////
// pavement

// beginPavement starts collecting the ring nodes of a row 110 pavement,
// stored as one apron.
func (w *AirportWriter) beginPavement(row Row) {
	if w.skip(row, "pavement") {
		return
	}
	if !w.opts.IncludeObject(filter.Aprons) {
		return
	}

	cur := &w.cur
	cur.pavement = Pavement{}
	cur.pavementBoundary = true
	cur.pavementHoles = false
	cur.pavementNewHole = false
	cur.apron = Apron{Surface: ParseSurface(w.fieldI(row, pSurface)).Db()}
}

// addPavementNode adds one ring node. The first closed ring is the
// boundary; every later close starts another hole ring.
func (w *AirportWriter) addPavementNode(row Row) {
	if w.skip(row, "pavement node") {
		return
	}

	cur := &w.cur
	node := geo.Point{Lon: w.fieldF(row, nLon), Lat: w.fieldF(row, nLat)}
	control := geo.InvalidPoint
	cur.airport.Bounding.Extend(node)

	if row.Code == RowNodeControl || row.Code == RowNodeControlClose {
		control = geo.Point{Lon: w.fieldF(row, nCtrlLon), Lat: w.fieldF(row, nCtrlLat)}
	}

	if cur.pavementBoundary {
		cur.pavement.AddBoundaryNode(node, control)
	} else if cur.pavementHoles {
		cur.pavement.AddHoleNode(node, control, cur.pavementNewHole)
	}
	cur.pavementNewHole = false

	if row.Code == RowNodeClose || row.Code == RowNodeControlClose {
		if cur.pavementBoundary {
			cur.pavementBoundary = false
			cur.pavementHoles = true
		}
		if cur.pavementHoles {
			cur.pavementNewHole = true
		}
	}
}

// flushPavement commits the pavement being collected, if any. The
// dispatcher calls it for every row code that cannot continue one.
func (w *AirportWriter) flushPavement() error {
	cur := &w.cur
	if !cur.pavementBoundary && !cur.pavementHoles {
		return nil
	}
	cur.pavementBoundary = false
	cur.pavementHoles = false
	cur.pavementNewHole = false

	if w.ignoring || !w.writing {
		return nil
	}

	a := &cur.airport
	a.NumApron++
	w.apronID++
	apron := cur.apron
	apron.ID = w.apronID
	apron.AirportID = a.ID

	if w.opts.IncludeObject(filter.ApronGeometry) {
		geom, err := cur.pavement.Encode()
		if err != nil {
			return err
		}
		apron.Geometry = geom
	}
	return w.store.AddApron(&apron)
}

///////////////////////////////////////////////////////////////////////////
// taxi network

// taxiNameDenylist drops the placeholder names some sceneries put on
// taxiway segments.
var taxiNameDenylist = map[string]bool{
	"*": true, "**": true, "+": true, "-": true, ".": true,
	"TAXIWAY": true, "TAXI_TO_RAMP": true, "TAXI_RAMP": true,
	"TAXY_RAMP": true, "UNNAMED": true, "TWY": true, "TAXI": true,
}

// addTaxiNode remembers a row 1201 network node for the edges that
// follow.
func (w *AirportWriter) addTaxiNode(row Row) {
	if w.skip(row, "taxi node") {
		return
	}
	id := w.fieldI(row, tnID)
	w.cur.taxiNodes[id] = geo.Point{Lon: w.fieldF(row, tnLon), Lat: w.fieldF(row, tnLat)}
}

// addTaxiEdge writes a row 1202 network edge as a taxi path. Segments
// marked as runway are part of the runway, not taxiways.
func (w *AirportWriter) addTaxiEdge(row Row) error {
	if w.skip(row, "taxi edge") {
		return nil
	}
	if w.fieldS(row, teType) == "runway" {
		return nil
	}

	cur := &w.cur
	start, ok := cur.taxiNodes[w.fieldI(row, teStart)]
	if !ok {
		start = geo.InvalidPoint
	}
	end, ok := cur.taxiNodes[w.fieldI(row, teEnd)]
	if !ok {
		end = geo.InvalidPoint
	}

	a := &cur.airport
	a.Bounding.Extend(start)
	a.Bounding.Extend(end)

	name := row.Field(teName)
	if taxiNameDenylist[strings.ToUpper(name)] {
		name = ""
	}

	if !w.opts.IncludeObject(filter.TaxiPaths) {
		return nil
	}

	a.NumTaxiPath++
	w.taxiPathID++
	return w.store.AddTaxiPath(&TaxiPath{
		ID:        w.taxiPathID,
		AirportID: a.ID,
		Name:      name,
		Start:     start,
		End:       end,
	})
}

///////////////////////////////////////////////////////////////////////////
// ramp starts

// beginRampStart stages a row 1300 ramp start. It stays open for the
// following metadata row and flushes with the next row of any other
// code.
func (w *AirportWriter) beginRampStart(row Row) {
	if w.skip(row, "ramp start") {
		return
	}

	cur := &w.cur
	a := &cur.airport
	pos := geo.Point{Lon: w.fieldF(row, slLon), Lat: w.fieldF(row, slLat)}
	a.Bounding.Extend(pos)

	name := row.Mid(slName)
	lower := strings.ToLower(name)

	// Fuel availability only shows up in ramp names.
	hasFuel := false
	if strings.Contains(lower, "avgas") || strings.Contains(lower, "mogas") ||
		strings.Contains(lower, "gas-station") {
		hasFuel = true
		a.HasAvgas = true
	}
	if strings.Contains(lower, "jetfuel") {
		hasFuel = true
		a.HasJetfuel = true
	}
	if strings.Contains(lower, "fuel") {
		hasFuel = true
		a.HasAvgas = true
		a.HasJetfuel = true
	}

	typ := ""
	if hasFuel {
		typ = "FUEL"
	} else {
		switch row.Field(slType) {
		case "gate":
			typ = "G"
		case "hangar":
			typ = "H"
		case "tie-down":
			typ = "T"
		}
	}

	cur.ramp = &Parking{
		AirportID: a.ID,
		Type:      typ,
		Name:      name,
		Number:    -1,
		Radius:    50,
		Heading:   w.fieldF(row, slHeading),
		Pos:       pos,
	}
}

// amendRampStart applies a row 1301 metadata row to the open ramp
// start: operation type, airline codes and the ICAO width code, which
// sets the radius and the size suffix of gate and GA ramp types.
func (w *AirportWriter) amendRampStart(row Row) {
	if w.skip(row, "ramp metadata") {
		return
	}
	cur := &w.cur
	ramp := cur.ramp
	if ramp == nil {
		w.lg.Warnf("%s: ramp metadata without ramp start", w.at(row))
		return
	}

	isFuel := ramp.Type == "FUEL"
	if !isFuel {
		switch row.Field(smOpType) {
		case "general_aviation":
			ramp.Type = "RGA"
		case "cargo":
			ramp.Type = "RC"
		case "military":
			ramp.Type = "RM"
		}
	}

	if s := row.Field(smAirline); s != "" {
		airlines := strings.ToUpper(s)
		ramp.AirlineCodes = &airlines
	}

	size, ok := parkingWidthCode[row.Field(smWidth)]
	if !ok {
		size = parkingSize{Radius: 10, Gate: "S", Ramp: "S"}
	}
	ramp.Radius = size.Radius

	if !isFuel {
		switch ramp.Type {
		case "G":
			ramp.Type += size.Gate
		case "RGA":
			ramp.Type += size.Ramp
		}
	}
}

// flushRampStart commits the open ramp start and folds its type into
// the airport parking counters and largest gate and ramp.
func (w *AirportWriter) flushRampStart() error {
	cur := &w.cur
	ramp := cur.ramp
	if ramp == nil {
		return nil
	}
	cur.ramp = nil

	if !w.opts.IncludeObject(filter.Parkings) {
		return nil
	}

	a := &cur.airport
	cur.numParking++

	typ := ramp.Type
	if strings.HasPrefix(typ, "G") {
		a.NumParkingGate++
		if a.LargestParkingGate == nil || gateRank[typ] > gateRank[*a.LargestParkingGate] {
			a.LargestParkingGate = &typ
		}
	}
	if strings.HasPrefix(typ, "RGA") {
		a.NumParkingGARamp++
		if a.LargestParkingRamp == nil || rampRank[typ] > rampRank[*a.LargestParkingRamp] {
			a.LargestParkingRamp = &typ
		}
	}
	if strings.HasPrefix(typ, "RC") {
		a.NumParkingCargo++
	}
	if strings.HasPrefix(typ, "RMC") {
		a.NumParkingMilCargo++
		a.NumParkingMilCombat++
	}

	w.parkingID++
	ramp.ID = w.parkingID
	return w.store.AddParking(ramp)
}

// addLegacyStartup writes a format 850 startup location, which has no
// metadata rows and flushes immediately.
func (w *AirportWriter) addLegacyStartup(row Row) error {
	if w.skip(row, "startup location") {
		return nil
	}

	cur := &w.cur
	a := &cur.airport
	pos := geo.Point{Lon: w.fieldF(row, sLon), Lat: w.fieldF(row, sLat)}
	a.Bounding.Extend(pos)

	cur.ramp = &Parking{
		AirportID: a.ID,
		Name:      row.Mid(sName),
		Number:    -1,
		Radius:    50,
		Heading:   w.fieldF(row, sHeading),
		Pos:       pos,
	}
	return w.flushRampStart()
}
