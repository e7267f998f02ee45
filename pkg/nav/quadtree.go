package nav

import (
	"github.com/Faultbox/sourcenav/pkg/geom"
)

// Quadtree tuning. A node splits once it holds more than leafCapacity areas,
// unless it is already maxTreeDepth levels deep; the depth cap guarantees
// termination when many footprints coincide.
const (
	leafCapacity = 8
	maxTreeDepth = 10
)

// Index is a quadtree over the footprint bounding boxes of a mesh's areas.
// It is built once and is immutable afterwards, so it is safe for concurrent
// readers alongside its Mesh.
type Index struct {
	mesh *Mesh
	root *treeNode
}

// treeNode is either a leaf holding areas whose bounds intersect its region,
// or an internal node with exactly four quadrant children.
type treeNode struct {
	region   geom.Rect
	areas    []*Area
	children *[4]*treeNode
}

// BuildIndex constructs the spatial index for a decoded mesh. An area is
// placed in every leaf its bounding box intersects, so areas straddling a
// split line show up under all touching quadrants.
func BuildIndex(m *Mesh) *Index {
	// Pad the root region by one unit so edge areas are strictly interior.
	bounds := m.Bounds().Expand(1)
	return &Index{
		mesh: m,
		root: buildNode(bounds, m.Areas(), 0),
	}
}

// Load decodes a nav file and builds its spatial index in one call.
func Load(data []byte) (*Mesh, *Index, error) {
	mesh, err := Decode(data)
	if err != nil {
		return nil, nil, err
	}
	return mesh, BuildIndex(mesh), nil
}

func buildNode(region geom.Rect, areas []*Area, depth int) *treeNode {
	node := &treeNode{region: region}

	if len(areas) <= leafCapacity || depth >= maxTreeDepth {
		node.areas = areas
		return node
	}

	quadrants := region.Quadrants()
	var subsets [4][]*Area
	progress := false
	for i, quadrant := range quadrants {
		for _, a := range areas {
			if a.Bounds().Intersects(quadrant) {
				subsets[i] = append(subsets[i], a)
			}
		}
		if len(subsets[i]) < len(areas) {
			progress = true
		}
	}

	// Coincident or straddling footprints can make every quadrant inherit
	// the full set; splitting then only multiplies storage.
	if !progress {
		node.areas = areas
		return node
	}

	var children [4]*treeNode
	for i, quadrant := range quadrants {
		children[i] = buildNode(quadrant, subsets[i], depth+1)
	}
	node.children = &children
	return node
}

// Mesh returns the mesh the index was built over.
func (ix *Index) Mesh() *Mesh {
	return ix.mesh
}

// candidates collects the areas of every leaf whose region contains (x, y),
// deduplicated by id. Points on a split line descend into all touching
// quadrants.
func (ix *Index) candidates(x, y float64) []*Area {
	if !ix.root.region.ContainsPoint(x, y) {
		return nil
	}

	var out []*Area
	seen := make(map[uint32]struct{})
	ix.root.collect(x, y, seen, &out)
	return out
}

func (n *treeNode) collect(x, y float64, seen map[uint32]struct{}, out *[]*Area) {
	if n.children == nil {
		for _, a := range n.areas {
			if _, dup := seen[a.ID]; dup {
				continue
			}
			seen[a.ID] = struct{}{}
			*out = append(*out, a)
		}
		return
	}
	for _, child := range n.children {
		if child.region.ContainsPoint(x, y) {
			child.collect(x, y, seen, out)
		}
	}
}

// At returns every area whose polygon truly contains (x, y), in no
// particular order. The candidate set comes from the quadtree; each
// candidate is then tested against its actual corner ring, not just its
// bounding box.
func (ix *Index) At(x, y float64) []*Area {
	var out []*Area
	for _, a := range ix.candidates(x, y) {
		if a.Contains(x, y) {
			out = append(out, a)
		}
	}
	return out
}
