// xplane/types.go
// Copyright(c) 2026 aptdb contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package xplane

import (
	"github.com/vmihailenco/msgpack/v5"

	"aptdb/geo"
)

// SceneryFile describes one compiled apt.dat file.
type SceneryFile struct {
	ID        int
	LocalPath string
	FileName  string
	IsAddon   bool
	Is3D      bool
}

// Airport is the aggregate row committed once per airport at flush time.
// Pointer fields are optional and become NULL in storage.
type Airport struct {
	ID     int
	FileID int
	Ident  string
	Name   string

	City    *string
	Country *string
	Region  *string

	HasAvgas   bool
	HasJetfuel bool
	HasTower   bool
	IsClosed   bool
	IsMilitary bool
	IsAddon    bool
	Is3D       bool

	SceneryLocalPath string
	FileName         string

	TowerFrequency  *int
	AtisFrequency   *int
	AwosFrequency   *int
	AsosFrequency   *int
	UnicomFrequency *int

	TowerPos      *geo.Point
	TowerAltitude *float64

	LongestRunwayLength  int
	LongestRunwayWidth   int
	LongestRunwayHeading float64
	LongestRunwaySurface string

	NumRunways          int
	NumRunwayHard       int
	NumRunwaySoft       int
	NumRunwayWater      int
	NumRunwayLight      int
	NumRunwayEndALS     int
	NumRunwayEndVASI    int
	NumHelipad          int
	NumCom              int
	NumStart            int
	NumApron            int
	NumTaxiPath         int
	NumParkingGate      int
	NumParkingGARamp    int
	NumParkingCargo     int
	NumParkingMilCargo  int
	NumParkingMilCombat int

	LargestParkingGate *string
	LargestParkingRamp *string

	Rating int

	Bounding geo.Rect
	Pos      geo.Point
	Altitude float64
	MagVar   float64
}

// AirportFile records every airport header seen in a file, including the
// ones skipped as duplicates or by filters.
type AirportFile struct {
	ID     int
	FileID int
	Ident  string
}

// Runway is one paired runway row; its two ends are separate RunwayEnd
// rows referenced by id.
type Runway struct {
	ID             int
	AirportID      int
	PrimaryEndID   int
	SecondaryEndID int

	Surface      string
	Shoulder     *string
	Length       int
	Width        int
	Heading      float64
	MarkingFlags int
	EdgeLight    *string
	CenterLight  *string

	PrimaryPos   geo.Point
	SecondaryPos geo.Point
	Pos          geo.Point // center
	Altitude     float64
}

// RunwayEnd rows are staged per airport so later lighting rows can amend
// them, and committed when the airport flushes.
type RunwayEnd struct {
	ID      int
	Name    string
	EndType string // P or S

	OffsetThreshold int
	BlastPad        int

	ALS               *string
	HasReils          bool
	HasTouchdownLight bool
	HasClosedMarkings bool

	LeftVASIType   *string
	LeftVASIPitch  *float64
	RightVASIType  *string
	RightVASIPitch *float64

	Heading float64
	Pos     geo.Point
}

// Start is a usable start position: one per runway end plus one per
// helipad.
type Start struct {
	ID          int
	AirportID   int
	RunwayEndID *int
	Number      *int
	RunwayName  string
	Type        string // R runway, H helipad
	Heading     float64
	Altitude    float64
	Pos         geo.Point
}

type Helipad struct {
	ID        int
	AirportID int
	StartID   *int
	Surface   string
	Length    int
	Width     int
	Heading   float64
	IsClosed  bool
	Altitude  float64
	Pos       geo.Point
}

type Com struct {
	ID        int
	AirportID int
	Type      string
	Frequency int // kHz
	Name      string
}

type Parking struct {
	ID           int
	AirportID    int
	Type         string
	Name         string
	AirlineCodes *string
	Number       int
	Radius       float64 // meters
	Heading      float64
	HasJetway    bool
	Pos          geo.Point
}

type Apron struct {
	ID        int
	AirportID int
	Surface   string
	Geometry  []byte
}

type TaxiPath struct {
	ID        int
	AirportID int
	Name      string
	Start     geo.Point
	End       geo.Point
}

///////////////////////////////////////////////////////////////////////////
// pavement geometry

// PavementNode is one ring vertex, optionally with a bezier control
// point; Control is the invalid point when the node has none.
type PavementNode struct {
	Pos     geo.Point `msgpack:"p"`
	Control geo.Point `msgpack:"c"`
}

// Pavement collects the boundary ring and hole rings of one apron
// polygon while its node rows stream in.
type Pavement struct {
	Boundary []PavementNode   `msgpack:"b"`
	Holes    [][]PavementNode `msgpack:"h"`
}

func (p *Pavement) AddBoundaryNode(node, control geo.Point) {
	p.Boundary = append(p.Boundary, PavementNode{Pos: node, Control: control})
}

// AddHoleNode appends to the most recent hole ring, starting a new ring
// when newHole is set.
func (p *Pavement) AddHoleNode(node, control geo.Point, newHole bool) {
	if newHole || len(p.Holes) == 0 {
		p.Holes = append(p.Holes, nil)
	}
	i := len(p.Holes) - 1
	p.Holes[i] = append(p.Holes[i], PavementNode{Pos: node, Control: control})
}

// Encode serializes the ring set for the apron geometry column.
func (p *Pavement) Encode() ([]byte, error) {
	return msgpack.Marshal(p)
}

// DecodePavement is the inverse of Encode, for consumers reading the
// geometry column back.
func DecodePavement(b []byte) (*Pavement, error) {
	var p Pavement
	if err := msgpack.Unmarshal(b, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

///////////////////////////////////////////////////////////////////////////
// storage

// Store receives the entities the writer produces. Implementations
// decide about placement and transactions; the compiler opens one
// transaction per scenery file.
type Store interface {
	AddSceneryFile(f *SceneryFile) error
	AddAirport(a *Airport) error
	AddAirportFile(f *AirportFile) error
	AddRunway(r *Runway) error
	AddRunwayEnd(e *RunwayEnd) error
	AddStart(s *Start) error
	AddHelipad(h *Helipad) error
	AddCom(c *Com) error
	AddParking(p *Parking) error
	AddApron(a *Apron) error
	AddTaxiPath(p *TaxiPath) error
	AddMETAR(station, raw string) error
}
