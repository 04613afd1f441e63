package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/meadow/components"
)

// Neighbor holds a nearby entity with precomputed spatial data, so sensors
// do not recompute deltas and distances.
type Neighbor struct {
	E      ecs.Entity
	DX, DY float32 // delta from query origin
	DistSq float32 // squared distance (avoid sqrt in hot path)
}

// SpatialGrid provides O(1) neighbor lookups using a cell-based grid over
// the bounded field. Field coordinates are centered on the origin; the
// field does not wrap, so edge queries clamp to the border cells and
// positions outside the field land in them.
type SpatialGrid struct {
	cellSize float32
	cols     int
	rows     int
	halfW    float32
	halfH    float32
	cells    [][]ecs.Entity
}

// NewSpatialGrid creates a spatial grid covering a width x height field
// centered on the origin.
func NewSpatialGrid(width, height, cellSize float32) *SpatialGrid {
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1

	cells := make([][]ecs.Entity, cols*rows)
	for i := range cells {
		cells[i] = make([]ecs.Entity, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		halfW:    width / 2,
		halfH:    height / 2,
		cells:    cells,
	}
}

// Clear removes all entities from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds an entity to the grid at the given position.
func (g *SpatialGrid) Insert(e ecs.Entity, x, y float32) {
	idx := g.rowAt(y)*g.cols + g.colAt(x)
	g.cells[idx] = append(g.cells[idx], e)
}

// MaxQueryResults caps the number of neighbors returned by spatial queries,
// so density spikes cannot cause unbounded work.
const MaxQueryResults = 128

// QueryRadiusInto finds entities within radius of (x, y) and appends them
// to dst (up to MaxQueryResults), returning the updated slice. Reuse dst
// across calls to avoid allocations.
func (g *SpatialGrid) QueryRadiusInto(dst []Neighbor, x, y, radius float32, exclude ecs.Entity, posMap *ecs.Map1[components.Position]) []Neighbor {
	minCol := g.colAt(x - radius)
	maxCol := g.colAt(x + radius)
	minRow := g.rowAt(y - radius)
	maxRow := g.rowAt(y + radius)

	radiusSq := radius * radius

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			for _, e := range g.cells[row*g.cols+col] {
				if e == exclude {
					continue
				}

				pos := posMap.Get(e)
				if pos == nil {
					continue
				}

				dx := pos.X - x
				dy := pos.Y - y
				distSq := dx*dx + dy*dy

				if distSq <= radiusSq {
					dst = append(dst, Neighbor{E: e, DX: dx, DY: dy, DistSq: distSq})
					if len(dst) >= MaxQueryResults {
						return dst
					}
				}
			}
		}
	}

	return dst
}

// colAt returns the clamped column for a world x coordinate.
func (g *SpatialGrid) colAt(x float32) int {
	return int(clampFloat((x+g.halfW)/g.cellSize, 0, float32(g.cols-1)))
}

// rowAt returns the clamped row for a world y coordinate.
func (g *SpatialGrid) rowAt(y float32) int {
	return int(clampFloat((y+g.halfH)/g.cellSize, 0, float32(g.rows-1)))
}
