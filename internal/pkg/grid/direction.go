// Package grid provides the discrete placement math used by the room generator:
// cardinal directions, grid positions and the transforms composed from them.
package grid

import (
	"fmt"
	"math"
	"strings"
)

// Direction is one of the four cardinal orientations a room or doorway can face
type Direction int

// Directions are ordered clockwise so that adding one turns right by 90 degrees
const (
	North Direction = iota
	East
	South
	West
)

// directionCount is the number of valid directions
const directionCount = 4

var directionNames = [directionCount]string{"north", "east", "south", "west"}

// String returns the lower case name of the direction
func (d Direction) String() string {
	if !d.IsValid() {
		return fmt.Sprintf("direction(%d)", int(d))
	}
	return directionNames[d]
}

// IsValid reports whether d is one of the four cardinal directions
func (d Direction) IsValid() bool {
	return d >= North && d <= West
}

// MarshalText implements encoding.TextMarshaler
func (d Direction) MarshalText() ([]byte, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("invalid direction %d", int(d))
	}
	return []byte(directionNames[d]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDirection parses a direction name such as "north" or "West"
func ParseDirection(s string) (Direction, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range directionNames {
		if n == name {
			return Direction(i), nil
		}
	}
	return North, fmt.Errorf("unknown direction %q", s)
}

// normalize wraps any integer into the 0..3 range
func normalize(v int) Direction {
	v %= directionCount
	if v < 0 {
		v += directionCount
	}
	return Direction(v)
}

// Opposite returns the direction rotated by 180 degrees
func Opposite(d Direction) Direction {
	return normalize(int(d) + 2)
}

// RotateToSouth returns the rotation that, added to d, faces south.
// The table is N->S, E->E, S->N, W->W; east and west are fixed points.
func RotateToSouth(d Direction) Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return East
	case West:
		return West
	default:
		return d
	}
}

// AddDirection adds two directions modulo 3.
//
// The modulus is 3, not 4, so West+North wraps to North. Composition does
// not use this; it is kept for callers that depend on the old result.
func AddDirection(a, b Direction) Direction {
	return Direction((int(a) + int(b)) % 3)
}

// Vector returns the unit grid vector pointing in direction d
func (d Direction) Vector() Vector2 {
	return Vector2{Y: 1}.Rotate(d)
}

// Quaternion is a rotation in 3D space with Y as the vertical axis
type Quaternion struct {
	X, Y, Z, W float64
}

// ToQuaternion returns the yaw rotation of d*90 degrees around the vertical axis
func ToQuaternion(d Direction) Quaternion {
	half := float64(normalize(int(d))) * math.Pi / 4
	return Quaternion{Y: math.Sin(half), W: math.Cos(half)}
}

// YawDegrees returns the heading of d in degrees, clockwise from north
func (d Direction) YawDegrees() float64 {
	return float64(normalize(int(d))) * 90
}
