// Package nav parses Source-engine navigation mesh (.nav) files and answers
// ground-height queries against the parsed mesh.
//
// A navigation mesh decomposes a level's walkable surface into convex
// polygonal areas with per-corner heights. Decode turns a raw byte buffer
// into an immutable Mesh; BuildIndex constructs a quadtree over the area
// footprints; the Index then answers point queries such as FindBestHeight.
// Neither the mesh nor the index is mutated after construction, so both are
// safe for concurrent readers.
package nav

import (
	"fmt"

	"github.com/Faultbox/sourcenav/pkg/geom"
)

// Version identifies the nav file format revision. The minor version is only
// present for major versions >= 10 and gates optional per-area blocks.
type Version struct {
	Major uint32
	Minor uint32
}

// String returns the version as "Major" or "Major.Minor".
func (v Version) String() string {
	if v.Major >= 10 {
		return fmt.Sprintf("%d.%d", v.Major, v.Minor)
	}
	return fmt.Sprintf("%d", v.Major)
}

// AtLeast returns true if the major version is >= major.
func (v Version) AtLeast(major uint32) bool {
	return v.Major >= major
}

// Direction is one of the four cardinal connection directions.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(d))
	}
}

// LadderDirection is the direction of a ladder connection.
type LadderDirection uint8

const (
	LadderUp LadderDirection = iota
	LadderDown
)

// String returns a human-readable ladder direction name.
func (d LadderDirection) String() string {
	switch d {
	case LadderUp:
		return "Up"
	case LadderDown:
		return "Down"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(d))
	}
}

// Connections holds outgoing area ids per cardinal direction.
type Connections [4][]uint32

// In returns the connection targets in the given direction.
func (c Connections) In(d Direction) []uint32 {
	return c[d]
}

// Count returns the total number of outgoing connections.
func (c Connections) Count() int {
	n := 0
	for _, ids := range c {
		n += len(ids)
	}
	return n
}

// LadderConnections holds ladder ids per ladder direction.
type LadderConnections [2][]uint32

// In returns the ladder ids in the given direction.
func (c LadderConnections) In(d LadderDirection) []uint32 {
	return c[d]
}

// HidingSpot is a spot where a bot can hide, stored verbatim.
type HidingSpot struct {
	ID       uint32
	Position geom.Vec3
	Flags    uint8
}

// ApproachArea describes how to approach an area (major version < 15).
type ApproachArea struct {
	Here uint32
	Prev uint32
	Type uint8
	Next uint32
	How  uint8
}

// EncounterSpot is one waypoint on an encounter path. Distance is encoded
// as a byte fraction of the path length.
type EncounterSpot struct {
	Order    uint32
	Distance uint8
}

// T returns the spot's position along the path in [0, 1].
func (s EncounterSpot) T() float64 {
	return float64(s.Distance) / 255.0
}

// EncounterPath is an ordered chain of spots between two areas.
type EncounterPath struct {
	FromArea      uint32
	FromDirection Direction
	ToArea        uint32
	ToDirection   Direction
	Spots         []EncounterSpot
}

// LightIntensity holds per-corner light levels (major version >= 11).
type LightIntensity struct {
	NorthWest float32
	NorthEast float32
	SouthWest float32
	SouthEast float32
}

// VisibleArea is an entry of an area's pre-computed visibility set
// (major version >= 16).
type VisibleArea struct {
	ID         uint32
	Attributes uint8
}

// Ladder is an entry of the global ladder table.
type Ladder struct {
	ID        uint32
	Width     float32
	Top       geom.Vec3
	Bottom    geom.Vec3
	Length    float32
	Direction uint32

	// Adjacent area ids; zero means no area on that side.
	TopForwardArea uint32
	TopLeftArea    uint32
	TopRightArea   uint32
	TopBehindArea  uint32
	BottomArea     uint32
}

// Place is a named location. Place ids are 1-based file order; area place
// id 0 means "no place".
type Place struct {
	ID   uint16
	Name string
}

// Area is one convex polygonal region of the mesh. Corners form an ordered
// ring of at least three points with per-corner height; quads decoded from a
// nav file are ordered NW, NE, SE, SW.
type Area struct {
	ID      uint32
	Flags   uint32
	Corners []geom.Vec3

	Connections       Connections
	HidingSpots       []HidingSpot
	ApproachAreas     []ApproachArea
	EncounterPaths    []EncounterPath
	PlaceID           uint16
	LadderConnections LadderConnections

	EarliestOccupyFirst   float32
	EarliestOccupySecond  float32
	LightIntensity        LightIntensity
	VisibleAreas          []VisibleArea
	InheritVisibilityFrom uint32

	bounds geom.Rect
}

// NewArea builds an area from an ordered corner ring and caches its
// footprint bounds. Rings with fewer than three corners are rejected.
func NewArea(id uint32, flags uint32, corners []geom.Vec3) (*Area, error) {
	if len(corners) < 3 {
		return nil, fmt.Errorf("%w: area %d has %d corners", ErrDegenerateArea, id, len(corners))
	}
	a := &Area{ID: id, Flags: flags, Corners: corners}
	a.computeBounds()
	return a, nil
}

func (a *Area) computeBounds() {
	points := make([]geom.Vec2, len(a.Corners))
	for i, c := range a.Corners {
		points[i] = c.XY()
	}
	a.bounds = geom.RectFrom(points...)
}

// Bounds returns the cached 2D bounding box of the area's footprint.
func (a *Area) Bounds() geom.Rect {
	return a.bounds
}

// Center returns the centroid of the area's corners.
func (a *Area) Center() geom.Vec3 {
	var c geom.Vec3
	for _, p := range a.Corners {
		c.X += p.X
		c.Y += p.Y
		c.Z += p.Z
	}
	n := float32(len(a.Corners))
	return geom.Vec3{X: c.X / n, Y: c.Y / n, Z: c.Z / n}
}

// Mesh is a fully decoded navigation mesh. It is immutable after Decode;
// the slices returned by accessors are shared and must not be modified.
type Mesh struct {
	Version         Version
	BSPSize         uint32
	Analyzed        bool
	HasUnnamedAreas bool

	areas []*Area
	byID  map[uint32]int

	places  []Place
	ladders []Ladder
}

// NewMesh builds a mesh from hand-constructed areas, for callers that do
// not start from a nav file. The same integrity rules as Decode apply:
// duplicate ids and dangling references are rejected.
func NewMesh(areas []*Area) (*Mesh, error) {
	m := &Mesh{
		areas: areas,
		byID:  make(map[uint32]int, len(areas)),
	}
	for i, a := range areas {
		if _, exists := m.byID[a.ID]; exists {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateArea, a.ID)
		}
		m.byID[a.ID] = i
	}
	if err := validateMesh(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Area returns the area with the given id, or ErrAreaNotFound.
func (m *Mesh) Area(id uint32) (*Area, error) {
	i, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrAreaNotFound, id)
	}
	return m.areas[i], nil
}

// Areas returns all areas in file order.
func (m *Mesh) Areas() []*Area {
	return m.areas
}

// AreaCount returns the number of areas.
func (m *Mesh) AreaCount() int {
	return len(m.areas)
}

// Places returns the place-name table in file order.
func (m *Mesh) Places() []Place {
	return m.places
}

// PlaceName resolves a place id to its name. Id 0 is "no place".
func (m *Mesh) PlaceName(id uint16) (string, bool) {
	if id == 0 || int(id) > len(m.places) {
		return "", false
	}
	return m.places[id-1].Name, true
}

// Ladders returns the global ladder table.
func (m *Mesh) Ladders() []Ladder {
	return m.ladders
}

// Bounds returns the union of all area footprint bounds.
// Returns the zero Rect for an empty mesh.
func (m *Mesh) Bounds() geom.Rect {
	if len(m.areas) == 0 {
		return geom.Rect{}
	}
	b := m.areas[0].Bounds()
	for _, a := range m.areas[1:] {
		b = b.Union(a.Bounds())
	}
	return b
}
