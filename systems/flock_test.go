package systems

import (
	"testing"

	"github.com/pthm-cable/meadow/vec"
)

func TestSeparation(t *testing.T) {
	tests := []struct {
		name      string
		pos, vel  vec.Vec2
		neighbors []FlockNeighbor
		maxSpeed  float32
		maxForce  float32
		want      vec.Vec2
	}{
		{
			name: "zero neighbors zero force",
			pos:  vec.Vec2{}, vel: vec.Vec2{X: 1},
			neighbors: nil,
			maxSpeed:  2, maxForce: 0.5,
			want: vec.Vec2{},
		},
		{
			name: "coincident neighbor skipped",
			pos:  vec.Vec2{}, vel: vec.Vec2{},
			neighbors: []FlockNeighbor{{Pos: vec.Vec2{}, DistSq: 0}},
			maxSpeed:  2, maxForce: 0.5,
			want: vec.Vec2{},
		},
		{
			name: "single neighbor pushes away",
			pos:  vec.Vec2{}, vel: vec.Vec2{},
			neighbors: []FlockNeighbor{{Pos: vec.Vec2{X: 2}, DistSq: 4}},
			maxSpeed:  2, maxForce: 0.1,
			want: vec.Vec2{X: -0.1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Separation(tt.pos, tt.vel, tt.neighbors, tt.maxSpeed, tt.maxForce)
			if !vecApproxEq(got, tt.want) {
				t.Errorf("Separation = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSeparationWeightsCloserNeighborsHarder(t *testing.T) {
	neighbors := []FlockNeighbor{
		{Pos: vec.Vec2{X: 1}, DistSq: 1},
		{Pos: vec.Vec2{Y: 3}, DistSq: 9},
	}

	got := Separation(vec.Vec2{}, vec.Vec2{}, neighbors, 2, 1000)
	if got.X >= 0 || got.Y >= 0 {
		t.Fatalf("separation should push away from both neighbors, got %v", got)
	}
	// The inverse-square weighting tilts the force away from the near neighbor.
	if -got.X <= -got.Y {
		t.Errorf("expected stronger push from the closer neighbor, got %v", got)
	}
}

func TestAlignment(t *testing.T) {
	tests := []struct {
		name      string
		vel       vec.Vec2
		neighbors []FlockNeighbor
		maxSpeed  float32
		maxForce  float32
		want      vec.Vec2
	}{
		{
			name:      "zero neighbors zero force",
			vel:       vec.Vec2{X: 3},
			neighbors: nil,
			maxSpeed:  2, maxForce: 0.5,
			want: vec.Vec2{},
		},
		{
			name: "matches average heading",
			vel:  vec.Vec2{},
			neighbors: []FlockNeighbor{
				{Vel: vec.Vec2{X: 1}},
				{Vel: vec.Vec2{Y: 1}},
			},
			maxSpeed: 2, maxForce: 10,
			want: vec.Vec2{X: 1.41421, Y: 1.41421},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Alignment(tt.vel, tt.neighbors, tt.maxSpeed, tt.maxForce)
			if !vecApproxEq(got, tt.want) {
				t.Errorf("Alignment = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCohesion(t *testing.T) {
	tests := []struct {
		name      string
		pos, vel  vec.Vec2
		neighbors []FlockNeighbor
		maxSpeed  float32
		maxForce  float32
		want      vec.Vec2
	}{
		{
			name:      "zero neighbors zero force",
			pos:       vec.Vec2{X: 1}, vel: vec.Vec2{X: 1},
			neighbors: nil,
			maxSpeed:  2, maxForce: 0.5,
			want: vec.Vec2{},
		},
		{
			name: "steers toward centroid",
			pos:  vec.Vec2{}, vel: vec.Vec2{},
			neighbors: []FlockNeighbor{
				{Pos: vec.Vec2{X: 4}},
				{Pos: vec.Vec2{Y: 4}},
			},
			maxSpeed: 2, maxForce: 10,
			want: vec.Vec2{X: 1.41421, Y: 1.41421},
		},
		{
			name: "at centroid only brakes",
			pos:  vec.Vec2{X: 2, Y: 2}, vel: vec.Vec2{X: 1},
			neighbors: []FlockNeighbor{
				{Pos: vec.Vec2{X: 4}},
				{Pos: vec.Vec2{Y: 4}},
			},
			maxSpeed: 2, maxForce: 0.5,
			want: vec.Vec2{X: -0.5},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cohesion(tt.pos, tt.vel, tt.neighbors, tt.maxSpeed, tt.maxForce)
			if !vecApproxEq(got, tt.want) {
				t.Errorf("Cohesion = %v, want %v", got, tt.want)
			}
		})
	}
}
