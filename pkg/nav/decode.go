package nav

import (
	"fmt"

	"github.com/Faultbox/sourcenav/pkg/geom"
)

// navMagic is the first dword of every nav file.
const navMagic = 0xFEEDFACE

// Supported major versions. Anything outside this range has an unknown
// layout and is rejected rather than guessed at.
const (
	minMajorVersion = 6
	maxMajorVersion = 16
)

// Conservative minimum encoded sizes, used to validate count prefixes
// against the remaining buffer before allocating.
const (
	minAreaSize      = 84 // id, 1-byte flags, corners, empty sub-tables, trailer
	minPlaceSize     = 2  // length prefix of an empty name
	minEncounterSize = 11
	visibleAreaSize  = 5
	ladderSize       = 60
	connectionSize   = 4
)

// checkCount rejects a count prefix whose table cannot possibly fit in the
// remaining buffer, guarding against allocation blow-up from corrupt or
// hostile files.
func checkCount(c *Cursor, count uint64, elemSize int, what string) error {
	if count*uint64(elemSize) > uint64(c.Remaining()) {
		return fmt.Errorf("%w: %d %s at offset %d exceed remaining %d bytes",
			ErrCorruptCount, count, what, c.Offset(), c.Remaining())
	}
	return nil
}

// Decode parses a nav file from raw bytes into an immutable Mesh.
//
// Decoding is a pure function of the input: any structural violation
// (bad magic, unknown version, truncation, corrupt count, dangling area
// reference, duplicate id) aborts the whole decode. A partial mesh is
// never returned.
func Decode(data []byte) (*Mesh, error) {
	c := NewCursor(data)

	magic, err := c.Uint32()
	if err != nil {
		return nil, err
	}
	if magic != navMagic {
		return nil, fmt.Errorf("%w: got 0x%08X", ErrInvalidMagic, magic)
	}

	var version Version
	version.Major, err = c.Uint32()
	if err != nil {
		return nil, err
	}
	if version.Major < minMajorVersion || version.Major > maxMajorVersion {
		return nil, fmt.Errorf("%w: major version %d", ErrUnsupportedVersion, version.Major)
	}

	// Minor (sub) version added in v10.
	if version.AtLeast(10) {
		if version.Minor, err = c.Uint32(); err != nil {
			return nil, err
		}
	}

	mesh := &Mesh{Version: version}

	// Size of the BSP the mesh was generated from.
	if mesh.BSPSize, err = c.Uint32(); err != nil {
		return nil, err
	}

	// Analysis flag added in v14.
	if version.AtLeast(14) {
		analyzed, err := c.Uint8()
		if err != nil {
			return nil, err
		}
		mesh.Analyzed = analyzed == 1
	}

	if mesh.places, err = decodePlaces(c); err != nil {
		return nil, err
	}

	// Unnamed-areas flag added in v12.
	if version.AtLeast(12) {
		unnamed, err := c.Uint8()
		if err != nil {
			return nil, err
		}
		mesh.HasUnnamedAreas = unnamed == 1
	}

	areaCount, err := c.Uint32()
	if err != nil {
		return nil, err
	}
	if err := checkCount(c, uint64(areaCount), minAreaSize, "areas"); err != nil {
		return nil, err
	}

	mesh.areas = make([]*Area, 0, areaCount)
	mesh.byID = make(map[uint32]int, areaCount)
	for i := uint32(0); i < areaCount; i++ {
		area, err := decodeArea(c, version)
		if err != nil {
			return nil, fmt.Errorf("parsing area %d: %w", i, err)
		}
		if _, exists := mesh.byID[area.ID]; exists {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateArea, area.ID)
		}
		mesh.byID[area.ID] = len(mesh.areas)
		mesh.areas = append(mesh.areas, area)
	}

	// Global ladder table follows the areas. Some captures end right after
	// the area table; treat a missing table as empty rather than truncated.
	if c.Remaining() > 0 {
		if mesh.ladders, err = decodeLadders(c); err != nil {
			return nil, err
		}
	}

	if err := validateMesh(mesh); err != nil {
		return nil, err
	}

	return mesh, nil
}

// decodePlaces reads the place-name table. Ids are 1-based file order.
func decodePlaces(c *Cursor) ([]Place, error) {
	count, err := c.Uint16()
	if err != nil {
		return nil, err
	}
	if err := checkCount(c, uint64(count), minPlaceSize, "places"); err != nil {
		return nil, err
	}

	places := make([]Place, 0, count)
	for id := uint16(1); id <= count; id++ {
		name, err := c.String()
		if err != nil {
			return nil, fmt.Errorf("parsing place %d: %w", id, err)
		}
		places = append(places, Place{ID: id, Name: name})
	}
	return places, nil
}

// decodeArea reads one area record. The wire encodes the footprint as an
// axis-aligned quad: NW and SE corners plus the NE and SW heights. The
// corners are materialized into an explicit NW, NE, SE, SW ring.
func decodeArea(c *Cursor, version Version) (*Area, error) {
	id, err := c.Uint32()
	if err != nil {
		return nil, err
	}

	// Attribute flag width grew twice over the format's life.
	var flags uint32
	switch {
	case version.Major <= 8:
		v, err := c.Uint8()
		if err != nil {
			return nil, err
		}
		flags = uint32(v)
	case version.Major <= 12:
		v, err := c.Uint16()
		if err != nil {
			return nil, err
		}
		flags = uint32(v)
	default:
		if flags, err = c.Uint32(); err != nil {
			return nil, err
		}
	}

	northWest, err := decodeVec3(c)
	if err != nil {
		return nil, err
	}
	southEast, err := decodeVec3(c)
	if err != nil {
		return nil, err
	}
	northEastZ, err := c.Float32()
	if err != nil {
		return nil, err
	}
	southWestZ, err := c.Float32()
	if err != nil {
		return nil, err
	}

	corners := []geom.Vec3{
		northWest,
		{X: southEast.X, Y: northWest.Y, Z: northEastZ},
		southEast,
		{X: northWest.X, Y: southEast.Y, Z: southWestZ},
	}
	area, err := NewArea(id, flags, corners)
	if err != nil {
		return nil, err
	}

	for dir := range area.Connections {
		if area.Connections[dir], err = decodeIDList(c, "connections"); err != nil {
			return nil, err
		}
	}

	spotCount, err := c.Uint8()
	if err != nil {
		return nil, err
	}
	area.HidingSpots = make([]HidingSpot, 0, spotCount)
	for i := 0; i < int(spotCount); i++ {
		spot, err := decodeHidingSpot(c)
		if err != nil {
			return nil, err
		}
		area.HidingSpots = append(area.HidingSpots, spot)
	}

	// Approach areas were dropped from the format in v15.
	if version.Major < 15 {
		approachCount, err := c.Uint8()
		if err != nil {
			return nil, err
		}
		area.ApproachAreas = make([]ApproachArea, 0, approachCount)
		for i := 0; i < int(approachCount); i++ {
			approach, err := decodeApproachArea(c)
			if err != nil {
				return nil, err
			}
			area.ApproachAreas = append(area.ApproachAreas, approach)
		}
	}

	encounterCount, err := c.Uint32()
	if err != nil {
		return nil, err
	}
	if err := checkCount(c, uint64(encounterCount), minEncounterSize, "encounter paths"); err != nil {
		return nil, err
	}
	area.EncounterPaths = make([]EncounterPath, 0, encounterCount)
	for i := uint32(0); i < encounterCount; i++ {
		path, err := decodeEncounterPath(c)
		if err != nil {
			return nil, err
		}
		area.EncounterPaths = append(area.EncounterPaths, path)
	}

	if area.PlaceID, err = c.Uint16(); err != nil {
		return nil, err
	}

	for dir := range area.LadderConnections {
		if area.LadderConnections[dir], err = decodeIDList(c, "ladder connections"); err != nil {
			return nil, err
		}
	}

	if area.EarliestOccupyFirst, err = c.Float32(); err != nil {
		return nil, err
	}
	if area.EarliestOccupySecond, err = c.Float32(); err != nil {
		return nil, err
	}

	// Per-corner light intensity added in v11.
	if version.AtLeast(11) {
		if area.LightIntensity, err = decodeLightIntensity(c); err != nil {
			return nil, err
		}
	}

	// Pre-computed visibility added in v16.
	if version.AtLeast(16) {
		visibleCount, err := c.Uint32()
		if err != nil {
			return nil, err
		}
		if err := checkCount(c, uint64(visibleCount), visibleAreaSize, "visible areas"); err != nil {
			return nil, err
		}
		area.VisibleAreas = make([]VisibleArea, 0, visibleCount)
		for i := uint32(0); i < visibleCount; i++ {
			var va VisibleArea
			if va.ID, err = c.Uint32(); err != nil {
				return nil, err
			}
			if va.Attributes, err = c.Uint8(); err != nil {
				return nil, err
			}
			area.VisibleAreas = append(area.VisibleAreas, va)
		}
	}

	if area.InheritVisibilityFrom, err = c.Uint32(); err != nil {
		return nil, err
	}

	// Trailing dword of unknown purpose, present in every version.
	if err := c.Skip(4); err != nil {
		return nil, err
	}

	return area, nil
}

// decodeIDList reads a uint32 count followed by that many uint32 ids.
func decodeIDList(c *Cursor, what string) ([]uint32, error) {
	count, err := c.Uint32()
	if err != nil {
		return nil, err
	}
	if err := checkCount(c, uint64(count), connectionSize, what); err != nil {
		return nil, err
	}
	ids := make([]uint32, count)
	for i := range ids {
		if ids[i], err = c.Uint32(); err != nil {
			return nil, err
		}
	}
	return ids, nil
}

func decodeVec3(c *Cursor) (geom.Vec3, error) {
	var v geom.Vec3
	var err error
	if v.X, err = c.Float32(); err != nil {
		return geom.Vec3{}, err
	}
	if v.Y, err = c.Float32(); err != nil {
		return geom.Vec3{}, err
	}
	if v.Z, err = c.Float32(); err != nil {
		return geom.Vec3{}, err
	}
	return v, nil
}

func decodeHidingSpot(c *Cursor) (HidingSpot, error) {
	var spot HidingSpot
	var err error
	if spot.ID, err = c.Uint32(); err != nil {
		return HidingSpot{}, err
	}
	if spot.Position, err = decodeVec3(c); err != nil {
		return HidingSpot{}, err
	}
	if spot.Flags, err = c.Uint8(); err != nil {
		return HidingSpot{}, err
	}
	return spot, nil
}

func decodeApproachArea(c *Cursor) (ApproachArea, error) {
	var a ApproachArea
	var err error
	if a.Here, err = c.Uint32(); err != nil {
		return ApproachArea{}, err
	}
	if a.Prev, err = c.Uint32(); err != nil {
		return ApproachArea{}, err
	}
	if a.Type, err = c.Uint8(); err != nil {
		return ApproachArea{}, err
	}
	if a.Next, err = c.Uint32(); err != nil {
		return ApproachArea{}, err
	}
	if a.How, err = c.Uint8(); err != nil {
		return ApproachArea{}, err
	}
	return a, nil
}

func decodeEncounterPath(c *Cursor) (EncounterPath, error) {
	var p EncounterPath
	var err error
	if p.FromArea, err = c.Uint32(); err != nil {
		return EncounterPath{}, err
	}
	fromDir, err := c.Uint8()
	if err != nil {
		return EncounterPath{}, err
	}
	p.FromDirection = Direction(fromDir)
	if p.ToArea, err = c.Uint32(); err != nil {
		return EncounterPath{}, err
	}
	toDir, err := c.Uint8()
	if err != nil {
		return EncounterPath{}, err
	}
	p.ToDirection = Direction(toDir)

	spotCount, err := c.Uint8()
	if err != nil {
		return EncounterPath{}, err
	}
	p.Spots = make([]EncounterSpot, 0, spotCount)
	for i := 0; i < int(spotCount); i++ {
		var s EncounterSpot
		if s.Order, err = c.Uint32(); err != nil {
			return EncounterPath{}, err
		}
		if s.Distance, err = c.Uint8(); err != nil {
			return EncounterPath{}, err
		}
		p.Spots = append(p.Spots, s)
	}
	return p, nil
}

func decodeLightIntensity(c *Cursor) (LightIntensity, error) {
	var li LightIntensity
	var err error
	if li.NorthWest, err = c.Float32(); err != nil {
		return LightIntensity{}, err
	}
	if li.NorthEast, err = c.Float32(); err != nil {
		return LightIntensity{}, err
	}
	if li.SouthWest, err = c.Float32(); err != nil {
		return LightIntensity{}, err
	}
	if li.SouthEast, err = c.Float32(); err != nil {
		return LightIntensity{}, err
	}
	return li, nil
}

func decodeLadders(c *Cursor) ([]Ladder, error) {
	count, err := c.Uint32()
	if err != nil {
		return nil, err
	}
	if err := checkCount(c, uint64(count), ladderSize, "ladders"); err != nil {
		return nil, err
	}

	ladders := make([]Ladder, 0, count)
	for i := uint32(0); i < count; i++ {
		ladder, err := decodeLadder(c)
		if err != nil {
			return nil, fmt.Errorf("parsing ladder %d: %w", i, err)
		}
		ladders = append(ladders, ladder)
	}
	return ladders, nil
}

func decodeLadder(c *Cursor) (Ladder, error) {
	var l Ladder
	var err error
	if l.ID, err = c.Uint32(); err != nil {
		return Ladder{}, err
	}
	if l.Width, err = c.Float32(); err != nil {
		return Ladder{}, err
	}
	if l.Top, err = decodeVec3(c); err != nil {
		return Ladder{}, err
	}
	if l.Bottom, err = decodeVec3(c); err != nil {
		return Ladder{}, err
	}
	if l.Length, err = c.Float32(); err != nil {
		return Ladder{}, err
	}
	if l.Direction, err = c.Uint32(); err != nil {
		return Ladder{}, err
	}
	if l.TopForwardArea, err = c.Uint32(); err != nil {
		return Ladder{}, err
	}
	if l.TopLeftArea, err = c.Uint32(); err != nil {
		return Ladder{}, err
	}
	if l.TopRightArea, err = c.Uint32(); err != nil {
		return Ladder{}, err
	}
	if l.TopBehindArea, err = c.Uint32(); err != nil {
		return Ladder{}, err
	}
	if l.BottomArea, err = c.Uint32(); err != nil {
		return Ladder{}, err
	}
	return l, nil
}

// validateMesh checks referential integrity across the fully decoded mesh.
// Connection targets must always resolve; metadata references are allowed
// to be zero, meaning "none".
func validateMesh(m *Mesh) error {
	exists := func(id uint32) bool {
		_, ok := m.byID[id]
		return ok
	}

	for _, area := range m.areas {
		for dir, targets := range area.Connections {
			for _, target := range targets {
				if !exists(target) {
					return fmt.Errorf("%w: area %d connects %s to missing area %d",
						ErrDanglingReference, area.ID, Direction(dir), target)
				}
			}
		}
		for _, path := range area.EncounterPaths {
			if path.FromArea != 0 && !exists(path.FromArea) {
				return fmt.Errorf("%w: area %d encounter path from missing area %d",
					ErrDanglingReference, area.ID, path.FromArea)
			}
			if path.ToArea != 0 && !exists(path.ToArea) {
				return fmt.Errorf("%w: area %d encounter path to missing area %d",
					ErrDanglingReference, area.ID, path.ToArea)
			}
		}
		for _, va := range area.VisibleAreas {
			if va.ID != 0 && !exists(va.ID) {
				return fmt.Errorf("%w: area %d sees missing area %d",
					ErrDanglingReference, area.ID, va.ID)
			}
		}
		if area.InheritVisibilityFrom != 0 && !exists(area.InheritVisibilityFrom) {
			return fmt.Errorf("%w: area %d inherits visibility from missing area %d",
				ErrDanglingReference, area.ID, area.InheritVisibilityFrom)
		}
	}

	for _, ladder := range m.ladders {
		for _, ref := range []uint32{
			ladder.TopForwardArea, ladder.TopLeftArea, ladder.TopRightArea,
			ladder.TopBehindArea, ladder.BottomArea,
		} {
			if ref != 0 && !exists(ref) {
				return fmt.Errorf("%w: ladder %d attached to missing area %d",
					ErrDanglingReference, ladder.ID, ref)
			}
		}
	}

	return nil
}
