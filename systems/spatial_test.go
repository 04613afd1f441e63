package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/meadow/components"
)

func TestSpatialGridQueryRadius(t *testing.T) {
	world := ecs.NewWorld()
	posMap := ecs.NewMap1[components.Position](&world)

	grid := NewSpatialGrid(1200, 700, 60)

	at := func(x, y float32) ecs.Entity {
		e := posMap.NewEntity(&components.Position{X: x, Y: y})
		grid.Insert(e, x, y)
		return e
	}

	center := at(0, 0)
	near := at(50, 0)
	far := at(200, 0)
	corner := at(-590, -340)

	got := grid.QueryRadiusInto(nil, 0, 0, 100, center, &posMap)
	if len(got) != 1 {
		t.Fatalf("query returned %d neighbors, want 1", len(got))
	}
	if got[0].E != near {
		t.Errorf("query returned wrong entity")
	}
	if got[0].DistSq != 2500 {
		t.Errorf("DistSq = %f, want 2500", got[0].DistSq)
	}
	if got[0].DX != 50 || got[0].DY != 0 {
		t.Errorf("delta = (%f, %f), want (50, 0)", got[0].DX, got[0].DY)
	}

	// Wider radius picks up the far entity too.
	got = grid.QueryRadiusInto(got[:0], 0, 0, 250, center, &posMap)
	if len(got) != 2 {
		t.Fatalf("wide query returned %d neighbors, want 2", len(got))
	}

	// Queries at the field border clamp instead of wrapping: the corner
	// entity is visible from the corner, not from the opposite side.
	got = grid.QueryRadiusInto(nil, -600, -350, 50, ecs.Entity{}, &posMap)
	found := false
	for _, n := range got {
		if n.E == corner {
			found = true
		}
	}
	if !found {
		t.Error("corner entity not found from field corner")
	}

	got = grid.QueryRadiusInto(nil, 590, 340, 120, ecs.Entity{}, &posMap)
	for _, n := range got {
		if n.E == corner {
			t.Error("grid wrapped around the field edge")
		}
	}
	_ = far
}
