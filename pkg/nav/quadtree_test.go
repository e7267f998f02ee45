package nav

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/sourcenav/pkg/geom"
)

// quadAreas builds a w×h grid of flat square areas of the given cell size.
// Ids are assigned row-major starting at 1.
func quadAreas(t *testing.T, w, h int, size, z float32) []*Area {
	t.Helper()
	areas := make([]*Area, 0, w*h)
	id := uint32(1)
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			minX := float32(col) * size
			minY := float32(row) * size
			a, err := NewArea(id, 0, []geom.Vec3{
				{X: minX, Y: minY, Z: z},
				{X: minX + size, Y: minY, Z: z},
				{X: minX + size, Y: minY + size, Z: z},
				{X: minX, Y: minY + size, Z: z},
			})
			require.NoError(t, err)
			areas = append(areas, a)
			id++
		}
	}
	return areas
}

func TestIndexFindsEveryAreaAtItsCenter(t *testing.T) {
	// 100 areas forces several quadrant splits.
	mesh, err := NewMesh(quadAreas(t, 10, 10, 10, 0))
	require.NoError(t, err)
	ix := BuildIndex(mesh)

	for _, want := range mesh.Areas() {
		c := want.Bounds().Center()
		got := ix.At(float64(c.X), float64(c.Y))

		ids := make([]uint32, len(got))
		for i, a := range got {
			ids[i] = a.ID
		}
		assert.Contains(t, ids, want.ID, "center of area %d", want.ID)
	}
}

func TestIndexSplitBoundaryVisitsAllTouchingQuadrants(t *testing.T) {
	mesh, err := NewMesh(quadAreas(t, 10, 10, 10, 0))
	require.NoError(t, err)
	ix := BuildIndex(mesh)

	// (50, 50) sits on the shared corner of four grid cells, which is also a
	// quadtree split line. All four adjacent areas must be found.
	got := ix.At(50, 50)
	ids := make(map[uint32]bool, len(got))
	for _, a := range got {
		ids[a.ID] = true
	}
	for _, want := range []uint32{45, 46, 55, 56} {
		assert.True(t, ids[want], "missing area %d at split corner, got %v", want, ids)
	}
}

func TestIndexCoincidentAreasBoundedDepth(t *testing.T) {
	// Many identical footprints can never be separated by splitting; the
	// depth cap has to stop the recursion and keep them all queryable.
	var areas []*Area
	for id := uint32(1); id <= 50; id++ {
		a, err := NewArea(id, 0, []geom.Vec3{
			{X: 0, Y: 0, Z: float32(id)},
			{X: 10, Y: 0, Z: float32(id)},
			{X: 10, Y: 10, Z: float32(id)},
			{X: 0, Y: 10, Z: float32(id)},
		})
		require.NoError(t, err)
		areas = append(areas, a)
	}
	mesh, err := NewMesh(areas)
	require.NoError(t, err)
	ix := BuildIndex(mesh)

	got := ix.At(5, 5)
	assert.Len(t, got, 50)
}

func TestIndexEmptyMesh(t *testing.T) {
	mesh, err := NewMesh(nil)
	require.NoError(t, err)
	ix := BuildIndex(mesh)

	assert.Nil(t, ix.At(0, 0))
	_, ok := ix.FindBestHeight(0, 0, 0)
	assert.False(t, ok)
}

func TestIndexCandidatesDeduplicated(t *testing.T) {
	// One large area straddling every split line plus enough small ones to
	// force splitting: the big area lands in many leaves but must be
	// reported once.
	areas := quadAreas(t, 5, 5, 10, 0)
	big, err := NewArea(1000, 0, []geom.Vec3{
		{X: 0, Y: 0, Z: 100},
		{X: 50, Y: 0, Z: 100},
		{X: 50, Y: 50, Z: 100},
		{X: 0, Y: 50, Z: 100},
	})
	require.NoError(t, err)
	mesh, err := NewMesh(append(areas, big))
	require.NoError(t, err)
	ix := BuildIndex(mesh)

	got := ix.At(25, 25)
	seen := 0
	for _, a := range got {
		if a.ID == 1000 {
			seen++
		}
	}
	assert.Equal(t, 1, seen, "straddling area reported %d times", seen)
}

func TestLoad(t *testing.T) {
	data := encodeMesh(16, nil, []testArea{
		flatQuad(1, 0, 0, 10, 42),
	}, nil)

	mesh, ix, err := Load(data)
	require.NoError(t, err)
	require.NotNil(t, mesh)
	require.NotNil(t, ix)
	assert.Same(t, mesh, ix.Mesh())

	h, ok := ix.FindBestHeight(5, 5, 0)
	require.True(t, ok)
	assert.InDelta(t, 42, h, 1e-6)
}

func TestLoadRejectsBadData(t *testing.T) {
	_, _, err := Load([]byte("not a nav file"))
	require.Error(t, err)
}

func ExampleLoad() {
	data := encodeMesh(16, nil, []testArea{flatQuad(1, 0, 0, 10, 64)}, nil)

	_, ix, err := Load(data)
	if err != nil {
		fmt.Println("load:", err)
		return
	}
	if h, ok := ix.FindBestHeight(5, 5, 0); ok {
		fmt.Printf("ground height: %.0f\n", h)
	}
	// Output: ground height: 64
}
