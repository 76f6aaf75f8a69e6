// xplane/runway.go
// Copyright(c) 2026 aptdb contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package xplane

import (
	"fmt"
	gomath "math"

	"aptdb/filter"
	"aptdb/geo"
)

// addRunway writes a land or water runway row. The runway and its two
// start positions go to the store right away; the two runway ends are
// staged until the airport flushes so later lighting rows can still
// amend them. The runway id doubles as the primary end id.
func (w *AirportWriter) addRunway(row Row) error {
	if w.skip(row, "runway") {
		return nil
	}

	var primaryPos, secondaryPos geo.Point
	var primaryName, secondaryName string
	var surface Surface
	water := row.Code == RowWaterRunway

	// Land and water rows carry the same data at different indexes.
	if water {
		primaryPos = geo.Point{Lon: w.fieldF(row, wwPrimaryLon), Lat: w.fieldF(row, wwPrimaryLat)}
		secondaryPos = geo.Point{Lon: w.fieldF(row, wwSecondaryLon), Lat: w.fieldF(row, wwSecondaryLat)}
		primaryName = w.fieldS(row, wwPrimaryNumber)
		secondaryName = w.fieldS(row, wwSecondaryNumber)
		surface = SurfaceWater
	} else {
		primaryPos = geo.Point{Lon: w.fieldF(row, rwPrimaryLon), Lat: w.fieldF(row, rwPrimaryLat)}
		secondaryPos = geo.Point{Lon: w.fieldF(row, rwSecondaryLon), Lat: w.fieldF(row, rwSecondaryLat)}
		primaryName = w.fieldS(row, rwPrimaryNumber)
		secondaryName = w.fieldS(row, rwSecondaryNumber)
		surface = ParseSurface(w.fieldI(row, rwSurface))
	}

	w.runwayEndID++
	primaryEndID := w.runwayEndID
	w.runwayEndID++
	secondaryEndID := w.runwayEndID

	lengthFeet := geo.MeterToFeet(primaryPos.DistanceMeter(secondaryPos), 0)
	widthFeet := geo.MeterToFeet(w.fieldF(row, rwWidth), 0)
	primaryHeading := primaryPos.Bearing(secondaryPos)
	secondaryHeading := geo.NormalizeCourse(geo.OpposedCourse(primaryHeading))
	center := primaryPos.Midpoint(secondaryPos)

	cur := &w.cur
	a := &cur.airport
	a.Bounding.Extend(primaryPos)
	a.Bounding.Extend(secondaryPos)

	cur.numRunway++
	if surface.IsHard() {
		a.NumRunwayHard++
	}
	if surface.IsSoft() {
		a.NumRunwaySoft++
	}
	if surface.IsWater() {
		a.NumRunwayWater++
	}

	if lengthFeet > a.LongestRunwayLength {
		a.LongestRunwayLength = lengthFeet
		a.LongestRunwayWidth = widthFeet
		a.LongestRunwayHeading = primaryHeading
		a.LongestRunwaySurface = surface.Db()
		cur.longestRunwayCenter = center
	}

	r := &Runway{
		ID:             primaryEndID,
		AirportID:      a.ID,
		PrimaryEndID:   primaryEndID,
		SecondaryEndID: secondaryEndID,
		Surface:        surface.Db(),
		Length:         lengthFeet,
		Width:          widthFeet,
		Heading:        primaryHeading,
		PrimaryPos:     primaryPos,
		SecondaryPos:   secondaryPos,
		Pos:            center,
		Altitude:       a.Altitude,
	}

	if !water {
		switch w.fieldI(row, rwShoulder) {
		case 1:
			s := SurfaceAsphalt.Db()
			r.Shoulder = &s
		case 2:
			s := SurfaceConcrete.Db()
			r.Shoulder = &s
		}

		primaryFlags := Marking(w.fieldI(row, rwPrimaryMarking)).Flags()
		secondaryFlags := Marking(w.fieldI(row, rwSecondaryMarking)).Flags()
		r.MarkingFlags = primaryFlags | secondaryFlags

		edge := w.fieldI(row, rwEdgeLights)
		switch edge {
		case 0:
		case 1:
			s := "L"
			r.EdgeLight = &s
		case 2:
			s := "M"
			r.EdgeLight = &s
		case 3:
			s := "H"
			r.EdgeLight = &s
		default:
			w.lg.Warnf("%s: invalid edge light value %d", w.at(row), edge)
		}

		centerLights := w.fieldI(row, rwCenterLights)
		if centerLights > 0 {
			// Either none or medium.
			s := "M"
			r.CenterLight = &s
		}

		if edge > 0 || centerLights > 0 {
			a.NumRunwayLight++
		}
	}

	if err := w.store.AddRunway(r); err != nil {
		return err
	}

	primary := RunwayEnd{
		ID:                primaryEndID,
		Name:              primaryName,
		EndType:           "P",
		HasClosedMarkings: a.IsClosed,
		Heading:           primaryHeading,
		Pos:               primaryPos,
	}
	secondary := RunwayEnd{
		ID:                secondaryEndID,
		Name:              secondaryName,
		EndType:           "S",
		HasClosedMarkings: a.IsClosed,
		Heading:           secondaryHeading,
		Pos:               secondaryPos,
	}

	if !water {
		primary.OffsetThreshold = geo.MeterToFeet(w.fieldF(row, rwPrimaryDisplaced), 0)
		primary.BlastPad = geo.MeterToFeet(w.fieldF(row, rwPrimaryBlastpad), 0)
		if als := ApproachLight(w.fieldI(row, rwPrimaryALS)).Db(); als != "" {
			primary.ALS = &als
			a.NumRunwayEndALS++
		}
		primary.HasReils = w.fieldI(row, rwPrimaryREIL) > 0
		primary.HasTouchdownLight = w.fieldI(row, rwPrimaryTDZ) != 0

		secondary.OffsetThreshold = geo.MeterToFeet(w.fieldF(row, rwSecondaryDisplaced), 0)
		secondary.BlastPad = geo.MeterToFeet(w.fieldF(row, rwSecondaryBlastpad), 0)
		if als := ApproachLight(w.fieldI(row, rwSecondaryALS)).Db(); als != "" {
			secondary.ALS = &als
			a.NumRunwayEndALS++
		}
		secondary.HasReils = w.fieldI(row, rwSecondaryREIL) > 0
		secondary.HasTouchdownLight = w.fieldI(row, rwSecondaryTDZ) != 0
	}

	cur.runwayEnds = append(cur.runwayEnds, primary, secondary)

	if !w.opts.IncludeObject(filter.Starts) {
		return nil
	}

	// One start position per end.
	w.startID++
	a.NumStart++
	err := w.store.AddStart(&Start{
		ID:          w.startID,
		AirportID:   a.ID,
		RunwayEndID: &primaryEndID,
		RunwayName:  primaryName,
		Type:        "R",
		Heading:     primaryHeading,
		Altitude:    a.Altitude,
		Pos:         primaryPos,
	})
	if err != nil {
		return err
	}

	w.startID++
	a.NumStart++
	return w.store.AddStart(&Start{
		ID:          w.startID,
		AirportID:   a.ID,
		RunwayEndID: &secondaryEndID,
		RunwayName:  secondaryName,
		Type:        "R",
		Heading:     secondaryHeading,
		Altitude:    a.Altitude,
		Pos:         secondaryPos,
	})
}

// addHelipad writes a row 102 helipad plus its start position. Helipad
// numbers count up per airport; their start rows are named with the
// zero padded number.
func (w *AirportWriter) addHelipad(row Row) error {
	if w.skip(row, "helipad") {
		return nil
	}

	cur := &w.cur
	a := &cur.airport
	pos := geo.Point{Lon: w.fieldF(row, hpLon), Lat: w.fieldF(row, hpLat)}
	heading := w.fieldF(row, hpOrientation)
	a.Bounding.Extend(pos)

	var startID *int
	if w.opts.IncludeObject(filter.Starts) {
		cur.helipadStartNumber++
		number := cur.helipadStartNumber
		w.startID++
		id := w.startID
		startID = &id

		a.NumStart++
		err := w.store.AddStart(&Start{
			ID:         id,
			AirportID:  a.ID,
			Number:     &number,
			RunwayName: fmt.Sprintf("%02d", number),
			Type:       "H",
			Heading:    heading,
			Altitude:   a.Altitude,
			Pos:        pos,
		})
		if err != nil {
			return err
		}
	}

	if !w.opts.IncludeObject(filter.Helipads) {
		return nil
	}

	a.NumHelipad++
	w.helipadID++
	return w.store.AddHelipad(&Helipad{
		ID:        w.helipadID,
		AirportID: a.ID,
		StartID:   startID,
		Surface:   ParseSurface(w.fieldI(row, hpSurface)).Db(),
		Length:    geo.MeterToFeet(w.fieldF(row, hpLength), 0),
		Width:     geo.MeterToFeet(w.fieldF(row, hpWidth), 0),
		Heading:   heading,
		IsClosed:  a.IsClosed,
		Altitude:  a.Altitude,
		Pos:       pos,
	})
}

// assignVasi attaches a row 21 visual approach indicator to the runway
// end it serves, matched by runway name or, failing that, by
// orientation.
func (w *AirportWriter) assignVasi(row Row) {
	if w.skip(row, "lighting object") {
		return
	}

	typ := ApproachIndicator(w.fieldI(row, vType))
	if typ == IndicatorNone || typ == IndicatorRunwayGuard {
		return
	}

	cur := &w.cur
	runwayName := row.Field(vRunway)
	orientation := w.fieldF(row, vOrientation)

	// The runway name is missing in some 850 era files.
	var best *RunwayEnd
	if runwayName != "" {
		for i := range cur.runwayEnds {
			if cur.runwayEnds[i].Name == runwayName {
				best = &cur.runwayEnds[i]
				break
			}
		}
	}

	if best == nil {
		// Plain difference comparison; this will not catch wraparounds
		// like 355 versus 5 degrees.
		bestAngle := gomath.MaxFloat64 / 4
		for i := range cur.runwayEnds {
			end := &cur.runwayEnds[i]
			diff := gomath.Abs(end.Heading - orientation)
			if diff < 10 && diff < gomath.Abs(bestAngle-orientation) {
				best = end
				bestAngle = end.Heading
			}
		}
	}

	if best == nil {
		pos := geo.Point{Lon: w.fieldF(row, vLon), Lat: w.fieldF(row, vLat)}
		w.lg.Warnf("%s: no runway end %q for indicator at %v with orientation %v",
			w.at(row), runwayName, pos, orientation)
		return
	}

	cur.airport.NumRunwayEndVASI++
	left := typ.Db()
	pitch := w.fieldF(row, vAngle)
	right := "UNKN"
	var rightPitch float64
	best.LeftVASIType = &left
	best.LeftVASIPitch = &pitch
	best.RightVASIType = &right
	best.RightVASIPitch = &rightPitch
}
