package grid

import "fmt"

// Vector2 is a position in grid units. +Y points north, +X points east.
type Vector2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Add returns v + o
func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o
func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by s
func (v Vector2) Scale(s float64) Vector2 {
	return Vector2{X: v.X * s, Y: v.Y * s}
}

// Neg returns -v
func (v Vector2) Neg() Vector2 {
	return Vector2{X: -v.X, Y: -v.Y}
}

// Dot returns the dot product of v and o
func (v Vector2) Dot(o Vector2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Rotate turns v clockwise by d quarter turns
func (v Vector2) Rotate(d Direction) Vector2 {
	switch normalize(int(d)) {
	case East:
		return Vector2{X: v.Y, Y: -v.X}
	case South:
		return Vector2{X: -v.X, Y: -v.Y}
	case West:
		return Vector2{X: -v.Y, Y: v.X}
	default:
		return v
	}
}

func (v Vector2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

// Transform places something on the grid: a position plus a facing
type Transform struct {
	Position Vector2   `json:"position" yaml:"position"`
	Rotation Direction `json:"rotation" yaml:"rotation"`
}

// Identity is the transform at the origin facing north
var Identity = Transform{}

// NewTransform creates a transform at (x, y) facing rot
func NewTransform(x, y float64, rot Direction) Transform {
	return Transform{Position: Vector2{X: x, Y: y}, Rotation: rot}
}

// Mul composes t with o: o is rotated by t's rotation and then offset by
// t's position, and the rotations add modulo 4.
func (t Transform) Mul(o Transform) Transform {
	return Transform{
		Position: t.Position.Add(o.Position.Rotate(t.Rotation)),
		Rotation: normalize(int(t.Rotation) + int(o.Rotation)),
	}
}

// Inverse negates the position and maps the rotation to its face-south
// equivalent. For a room-local entrance it yields the offset that puts the
// entrance on a parent's doorway, facing back into the parent.
func (t Transform) Inverse() Transform {
	return Transform{
		Position: t.Position.Neg(),
		Rotation: RotateToSouth(t.Rotation),
	}
}

// Forward returns the unit vector the transform faces
func (t Transform) Forward() Vector2 {
	return t.Rotation.Vector()
}

// Apply maps a local point into the transform's parent space
func (t Transform) Apply(p Vector2) Vector2 {
	return t.Position.Add(p.Rotate(t.Rotation))
}

// ToWorld scales the position by the real-world size of one grid cell
func (t Transform) ToWorld(gridUnit float64) (Vector2, Quaternion) {
	return t.Position.Scale(gridUnit), ToQuaternion(t.Rotation)
}

func (t Transform) String() string {
	return fmt.Sprintf("%s facing %s", t.Position, t.Rotation)
}
