// xplane/constants.go
// Copyright(c) 2026 aptdb contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package xplane

// Airport row codes from the apt.dat format, versions 850 through 1200.
const (
	RowLandAirport  = 1
	RowSeaplaneBase = 16
	RowHeliport     = 17

	RowLandRunway  = 100
	RowWaterRunway = 101
	RowHelipad     = 102

	RowPavement         = 110
	RowNode             = 111
	RowNodeControl      = 112
	RowNodeClose        = 113
	RowNodeControlClose = 114
	RowNodeEnd          = 115
	RowNodeControlEnd   = 116
	RowLinearFeature    = 120
	RowBoundary         = 130

	RowViewpoint     = 14
	RowLegacyStartup = 15
	RowBeacon        = 18
	RowWindsock      = 19
	RowTaxiSign      = 20
	RowLightingObj   = 21

	RowComWeather   = 50
	RowComUnicom    = 51
	RowComClearance = 52
	RowComGround    = 53
	RowComTower     = 54
	RowComApproach  = 55
	RowComDeparture = 56

	// 8.33 kHz channel spacing variants introduced with format 1130.
	RowComWeather833   = 1050
	RowComUnicom833    = 1051
	RowComClearance833 = 1052
	RowComGround833    = 1053
	RowComTower833     = 1054
	RowComApproach833  = 1055
	RowComDeparture833 = 1056

	RowTrafficFlow    = 1000
	RowFlowWindRule   = 1001
	RowFlowCeiling    = 1002
	RowFlowVisibility = 1003
	RowFlowTime       = 1004
	RowRunwayInUse    = 1100
	RowVFRPattern     = 1101
	RowTaxiHeader     = 1200
	RowTaxiNode       = 1201
	RowTaxiEdge       = 1202
	RowTaxiActiveZone = 1204
	RowStartupLoc     = 1300
	RowRampMetadata   = 1301
	RowMetadata       = 1302
	RowTruckParking   = 1400
	RowTruckDest      = 1401
)

///////////////////////////////////////////////////////////////////////////
// surfaces

// Surface is an apt.dat surface code as used by runways, helipads and
// pavement.
type Surface int

const (
	SurfaceUnknown     Surface = 0
	SurfaceAsphalt     Surface = 1
	SurfaceConcrete    Surface = 2
	SurfaceTurfGrass   Surface = 3
	SurfaceDirt        Surface = 4
	SurfaceGravel      Surface = 5
	SurfaceDryLakebed  Surface = 12
	SurfaceWater       Surface = 13
	SurfaceSnowIce     Surface = 14
	SurfaceTransparent Surface = 15
)

var surfaceToDb = map[Surface]string{
	SurfaceUnknown:     "UNKNOWN",
	SurfaceTransparent: "TR",
	SurfaceAsphalt:     "A",
	SurfaceConcrete:    "C",
	SurfaceTurfGrass:   "G",
	SurfaceDirt:        "D",
	SurfaceDryLakebed:  "D",
	SurfaceGravel:      "GR",
	SurfaceWater:       "W",
	SurfaceSnowIce:     "SN",
}

var surfaceFromDb = map[string]Surface{
	"UNKNOWN": SurfaceUnknown,
	"TR":      SurfaceTransparent,
	"A":       SurfaceAsphalt,
	"C":       SurfaceConcrete,
	"G":       SurfaceTurfGrass,
	"D":       SurfaceDirt,
	"GR":      SurfaceGravel,
	"W":       SurfaceWater,
	"SN":      SurfaceSnowIce,
}

// ParseSurface maps an apt.dat surface code to a Surface; codes outside
// the table come back as SurfaceUnknown.
func ParseSurface(code int) Surface {
	if _, ok := surfaceToDb[Surface(code)]; ok {
		return Surface(code)
	}
	return SurfaceUnknown
}

// Db returns the storage code for the surface.
func (s Surface) Db() string {
	if db, ok := surfaceToDb[s]; ok {
		return db
	}
	return "UNKNOWN"
}

// SurfaceFromDb is the reverse of Db. Dry lakebed and dirt share a
// storage code, so it returns SurfaceDirt for "D".
func SurfaceFromDb(db string) Surface {
	return surfaceFromDb[db]
}

func (s Surface) IsHard() bool {
	return s == SurfaceUnknown || s == SurfaceTransparent || s == SurfaceAsphalt || s == SurfaceConcrete
}

func (s Surface) IsSoft() bool {
	return s == SurfaceTurfGrass || s == SurfaceDryLakebed || s == SurfaceDirt ||
		s == SurfaceGravel || s == SurfaceSnowIce
}

func (s Surface) IsWater() bool {
	return s == SurfaceWater
}

///////////////////////////////////////////////////////////////////////////
// runway markings

// Marking is the apt.dat runway marking code per runway end.
type Marking int

const (
	MarkingNone           Marking = 0
	MarkingVisual         Marking = 1
	MarkingNonPrecision   Marking = 2
	MarkingPrecision      Marking = 3
	MarkingUKNonPrecision Marking = 4
	MarkingUKPrecision    Marking = 5
)

// Storage marking flag bits, shared with the simulator database layout so
// downstream map display keeps working.
const (
	MarkEdges            = 1 << 0
	MarkThreshold        = 1 << 1
	MarkFixedDistance    = 1 << 2
	MarkTouchdown        = 1 << 3
	MarkDashes           = 1 << 4
	MarkIdent            = 1 << 5
	MarkPrecision        = 1 << 6
	MarkEdgePavement     = 1 << 7
	MarkAltThreshold     = 1 << 13
	MarkAltFixedDistance = 1 << 14
	MarkAltTouchdown     = 1 << 15
	MarkAltPrecision     = 1 << 21
)

var markingFlags = map[Marking]int{
	MarkingNone:   0,
	MarkingVisual: MarkEdges | MarkDashes | MarkIdent,
	MarkingNonPrecision: MarkEdges | MarkThreshold | MarkFixedDistance | MarkTouchdown |
		MarkDashes | MarkIdent | MarkEdgePavement,
	MarkingPrecision: MarkEdges | MarkThreshold | MarkFixedDistance | MarkTouchdown |
		MarkDashes | MarkIdent | MarkPrecision | MarkEdgePavement,
	MarkingUKNonPrecision: MarkEdges | MarkAltThreshold | MarkAltFixedDistance | MarkAltTouchdown |
		MarkDashes | MarkIdent | MarkEdgePavement,
	MarkingUKPrecision: MarkEdges | MarkAltThreshold | MarkAltFixedDistance | MarkAltTouchdown |
		MarkDashes | MarkIdent | MarkAltPrecision | MarkEdgePavement,
}

// Flags maps a marking code to the storage bitmask; unknown codes carry
// no flags.
func (m Marking) Flags() int {
	return markingFlags[m]
}

///////////////////////////////////////////////////////////////////////////
// approach lights

// ApproachLight is the apt.dat approach light system code per runway end.
type ApproachLight int

const (
	ALSNone     ApproachLight = 0
	ALSFI       ApproachLight = 1
	ALSFII      ApproachLight = 2
	ALSCalvert  ApproachLight = 3
	ALSCalvert2 ApproachLight = 4
	ALSSSALR    ApproachLight = 5
	ALSSSALF    ApproachLight = 6
	ALSSALS     ApproachLight = 7
	ALSMALSR    ApproachLight = 8
	ALSMALSF    ApproachLight = 9
	ALSMALS     ApproachLight = 10
	ALSODALS    ApproachLight = 11
	ALSRAIL     ApproachLight = 12
)

var alsToDb = map[ApproachLight]string{
	ALSFI:       "ALSF1",
	ALSFII:      "ALSF2",
	ALSCalvert:  "CALVERT",
	ALSCalvert2: "CALVERT2",
	ALSSSALR:    "SSALR",
	ALSSSALF:    "SSALF",
	ALSSALS:     "SALS",
	ALSMALSR:    "MALSR",
	ALSMALSF:    "MALSF",
	ALSMALS:     "MALS",
	ALSODALS:    "ODALS",
	ALSRAIL:     "RAIL",
}

var alsFromDb = invert(alsToDb)

// Db returns the storage code for the approach light system, empty for
// none or unknown codes.
func (a ApproachLight) Db() string {
	return alsToDb[a]
}

func ApproachLightFromDb(db string) ApproachLight {
	return alsFromDb[db]
}

///////////////////////////////////////////////////////////////////////////
// approach indicators

// ApproachIndicator is the lighting object type of a row 21 entry.
type ApproachIndicator int

const (
	IndicatorNone        ApproachIndicator = 0
	IndicatorVASI        ApproachIndicator = 1
	IndicatorPAPILeft    ApproachIndicator = 2
	IndicatorPAPIRight   ApproachIndicator = 3
	IndicatorShuttlePAPI ApproachIndicator = 4
	IndicatorTriColor    ApproachIndicator = 5
	IndicatorRunwayGuard ApproachIndicator = 6
)

var indicatorToDb = map[ApproachIndicator]string{
	IndicatorVASI:        "VASI22",
	IndicatorPAPILeft:    "PAPI4",
	IndicatorPAPIRight:   "PAPI4",
	IndicatorShuttlePAPI: "PAPI4",
	IndicatorTriColor:    "TRICOLOR",
	IndicatorRunwayGuard: "GUARD",
}

// Db returns the storage code for the visual approach indicator, empty
// for none or unknown codes.
func (a ApproachIndicator) Db() string {
	return indicatorToDb[a]
}

///////////////////////////////////////////////////////////////////////////
// parking

// Parking sizes derived from the ICAO width code of ramp metadata rows.
// Gates use a small/medium/heavy suffix, GA ramps small/medium/large.
type parkingSize struct {
	Radius float64 // meters
	Gate   string
	Ramp   string
}

var parkingWidthCode = map[string]parkingSize{
	"A": {Radius: 25, Gate: "S", Ramp: "S"},
	"B": {Radius: 40, Gate: "S", Ramp: "S"},
	"C": {Radius: 60, Gate: "M", Ramp: "M"},
	"D": {Radius: 80, Gate: "M", Ramp: "M"},
	"E": {Radius: 100, Gate: "H", Ramp: "L"},
	"F": {Radius: 130, Gate: "H", Ramp: "L"},
}

// gateRank orders gate parking codes from smallest to largest so the
// per-airport largest gate only ever grows.
var gateRank = map[string]int{"G": 0, "GS": 1, "GM": 2, "GH": 3}

// rampRank does the same for GA ramp codes.
var rampRank = map[string]int{"RGA": 0, "RGAS": 1, "RGAM": 2, "RGAL": 3}

func invert[K, V comparable](m map[K]V) map[V]K {
	inv := make(map[V]K, len(m))
	for k, v := range m {
		inv[v] = k
	}
	return inv
}
