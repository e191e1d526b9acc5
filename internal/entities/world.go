// Package entities provides core data structures for pickupworld.
package entities

import (
	"math"
)

// Fixed surface textures for the pickup room
const (
	WallTexBrick    = "brick_wall"
	FloorTexAsphalt = "asphalt"
)

// Vec3 is a world-space position. Y is up; the floor is the XZ plane.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns v + o
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Scale returns v * f
func (v Vec3) Scale(f float64) Vec3 {
	return Vec3{X: v.X * f, Y: v.Y * f, Z: v.Z * f}
}

// DistXZ returns the distance between v and o projected on the floor
func (v Vec3) DistXZ(o Vec3) float64 {
	return math.Hypot(v.X-o.X, v.Z-o.Z)
}

// Pose is a resolved position and heading. Dir is in radians; a heading of 0
// faces +X and positive angles turn toward -Z.
type Pose struct {
	Pos Vec3    `json:"pos"`
	Dir float64 `json:"dir"`
}

// DirVec returns the unit heading vector on the floor plane
func (p Pose) DirVec() Vec3 {
	return Vec3{X: math.Cos(p.Dir), Z: -math.Sin(p.Dir)}
}

// Room is an axis-aligned rectangular room
type Room struct {
	MinX      float64 `json:"min_x"`
	MaxX      float64 `json:"max_x"`
	MinZ      float64 `json:"min_z"`
	MaxZ      float64 `json:"max_z"`
	WallTex   string  `json:"wall_tex"`
	FloorTex  string  `json:"floor_tex"`
	NoCeiling bool    `json:"no_ceiling"`
}

// Contains reports whether a disc of the given radius at pos fits inside
// the room walls
func (r Room) Contains(pos Vec3, radius float64) bool {
	return pos.X-radius >= r.MinX && pos.X+radius <= r.MaxX &&
		pos.Z-radius >= r.MinZ && pos.Z+radius <= r.MaxZ
}

// PlacedEntity is an entity with a pose resolved by the engine
type PlacedEntity struct {
	ID   string     `json:"id"`
	Spec EntitySpec `json:"spec"`
	Pose Pose       `json:"pose"`
}

// Observation is the engine's top-down view of the world after a tick
type Observation struct {
	Agent     Pose           `json:"agent"`
	Carrying  string         `json:"carrying,omitempty"`
	Entities  []PlacedEntity `json:"entities"`
	StepCount int            `json:"step_count"`
}

// StepResult mirrors the generic step contract:
// (observation, reward, terminated, truncated, info)
type StepResult struct {
	Observation *Observation   `json:"observation"`
	Reward      float64        `json:"reward"`
	Terminated  bool           `json:"terminated"`
	Truncated   bool           `json:"truncated"`
	Info        map[string]any `json:"info"`
}

// InfoKeyEvent is set in StepResult.Info to the picked-up object's mesh name
const InfoKeyEvent = "event"

// Event returns the pickup event name, if any
func (r *StepResult) Event() (string, bool) {
	if r == nil || r.Info == nil {
		return "", false
	}
	name, ok := r.Info[InfoKeyEvent].(string)
	return name, ok
}
