package physics

import (
	"slices"
	"testing"
)

func TestSpatialGridNearbyIsSorted(t *testing.T) {
	g := NewSpatialGrid(480, 720, 40)
	g.Insert(100, 100, 7)
	g.Insert(130, 110, 2)
	g.Insert(70, 90, 5)
	g.Insert(400, 600, 1)

	got := g.Nearby(100, 100)
	want := []int{2, 5, 7}
	if !slices.Equal(got, want) {
		t.Fatalf("Nearby = %v, want %v", got, want)
	}
}

func TestSpatialGridClampsOutsidePositions(t *testing.T) {
	g := NewSpatialGrid(480, 720, 40)
	// Enemies spawn above the field.
	g.Insert(200, -40, 0)

	if got := g.Nearby(200, 5); !slices.Contains(got, 0) {
		t.Errorf("item above field not found near top edge: %v", got)
	}
	if got := g.Nearby(200, 400); len(got) != 0 {
		t.Errorf("unexpected items far away: %v", got)
	}
}

func TestSpatialGridClear(t *testing.T) {
	g := NewSpatialGrid(100, 100, 50)
	g.Insert(10, 10, 1)
	g.Clear()
	if got := g.Nearby(10, 10); len(got) != 0 {
		t.Errorf("Nearby after Clear = %v, want empty", got)
	}
}
