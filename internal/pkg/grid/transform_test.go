package grid_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-mapgen/internal/pkg/grid"
)

func TestOpposite(t *testing.T) {
	testCases := []struct {
		in, want grid.Direction
	}{
		{grid.North, grid.South},
		{grid.East, grid.West},
		{grid.South, grid.North},
		{grid.West, grid.East},
	}
	for _, tc := range testCases {
		t.Run(tc.in.String(), func(t *testing.T) {
			assert.Equal(t, tc.want, grid.Opposite(tc.in))
		})
	}
}

func TestRotateToSouth_KeepsEastAndWestFixed(t *testing.T) {
	assert.Equal(t, grid.South, grid.RotateToSouth(grid.North))
	assert.Equal(t, grid.East, grid.RotateToSouth(grid.East))
	assert.Equal(t, grid.North, grid.RotateToSouth(grid.South))
	assert.Equal(t, grid.West, grid.RotateToSouth(grid.West))

	// every entry turns its input to face south
	for d := grid.North; d <= grid.West; d++ {
		composed := grid.NewTransform(0, 0, grid.RotateToSouth(d)).Mul(grid.NewTransform(0, 0, d))
		assert.Equal(t, grid.South, composed.Rotation, "direction %s", d)
	}
}

func TestAddDirection_WrapsModThree(t *testing.T) {
	assert.Equal(t, grid.South, grid.AddDirection(grid.East, grid.East))
	assert.Equal(t, grid.North, grid.AddDirection(grid.East, grid.South))
	assert.Equal(t, grid.North, grid.AddDirection(grid.West, grid.North))
	assert.Equal(t, grid.East, grid.AddDirection(grid.South, grid.South))
}

func TestVectorRotate_Clockwise(t *testing.T) {
	forward := grid.Vector2{Y: 1}
	assert.Equal(t, grid.Vector2{Y: 1}, forward.Rotate(grid.North))
	assert.Equal(t, grid.Vector2{X: 1}, forward.Rotate(grid.East))
	assert.Equal(t, grid.Vector2{Y: -1}, forward.Rotate(grid.South))
	assert.Equal(t, grid.Vector2{X: -1}, forward.Rotate(grid.West))
}

func TestTransformMul(t *testing.T) {
	parent := grid.NewTransform(2, 3, grid.East)
	child := grid.NewTransform(0, 4, grid.East)

	got := parent.Mul(child)

	assert.Equal(t, grid.Vector2{X: 6, Y: 3}, got.Position)
	assert.Equal(t, grid.South, got.Rotation)

	wrapped := grid.NewTransform(0, 0, grid.West).Mul(grid.NewTransform(0, 0, grid.South))
	assert.Equal(t, grid.East, wrapped.Rotation, "rotations add modulo 4")
}

func TestTransformInverse_PlacesEntranceOnDoorway(t *testing.T) {
	entrance := grid.NewTransform(0, 0, grid.South)
	doorway := grid.NewTransform(5, 1.5, grid.West)

	placement := doorway.Mul(entrance.Inverse())
	landed := placement.Mul(entrance)

	assert.Equal(t, doorway.Position, landed.Position)
	assert.Equal(t, grid.Opposite(doorway.Rotation), landed.Rotation, "doorways face each other")
}

func TestTransformInverse_NegatesPosition(t *testing.T) {
	inv := grid.NewTransform(1.5, -2, grid.North).Inverse()
	assert.Equal(t, grid.Vector2{X: -1.5, Y: 2}, inv.Position)
	assert.Equal(t, grid.South, inv.Rotation)
}

func TestToQuaternion(t *testing.T) {
	q := grid.ToQuaternion(grid.South)
	assert.InDelta(t, 1.0, q.Y, 1e-9)
	assert.InDelta(t, 0.0, q.W, 1e-9)

	q = grid.ToQuaternion(grid.East)
	assert.InDelta(t, math.Sqrt2/2, q.Y, 1e-9)
	assert.InDelta(t, math.Sqrt2/2, q.W, 1e-9)
}

func TestToWorld(t *testing.T) {
	pos, _ := grid.NewTransform(1, -2, grid.North).ToWorld(4)
	assert.Equal(t, grid.Vector2{X: 4, Y: -8}, pos)
}

func TestDirectionText(t *testing.T) {
	data, err := json.Marshal(grid.NewTransform(1, 2, grid.West))
	require.NoError(t, err)
	assert.JSONEq(t, `{"position":{"x":1,"y":2},"rotation":"west"}`, string(data))

	var decoded grid.Transform
	require.NoError(t, json.Unmarshal([]byte(`{"position":{"x":0,"y":1},"rotation":"East"}`), &decoded))
	assert.Equal(t, grid.East, decoded.Rotation)

	err = json.Unmarshal([]byte(`{"rotation":"up"}`), &decoded)
	assert.Error(t, err)
}
