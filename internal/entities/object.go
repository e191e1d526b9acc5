package entities

import (
	"fmt"
	"math"
)

// ObjectKind is the closed set of things a layout can record. KindAgent is
// the sentinel used for the agent's own spawn pose.
type ObjectKind int

// Object kinds
const (
	KindUnknown ObjectKind = iota
	KindBall
	KindBox
	KindKey
	KindAgent
)

// Placement geometry
const (
	ObjectSize  = 0.9
	KeyRadius   = 0.25
	KeyHeight   = 0.35
	AgentRadius = 0.4
	AgentHeight = 1.6
)

var kindNames = map[ObjectKind]string{
	KindBall:  "ball",
	KindBox:   "box",
	KindKey:   "key",
	KindAgent: "agent",
}

// PlaceableKinds returns the kinds the generator draws from, in draw order
func PlaceableKinds() []ObjectKind {
	return []ObjectKind{KindBall, KindBox, KindKey}
}

// String returns the lower-case kind name
func (k ObjectKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Placeable reports whether k is an object kind rather than the agent sentinel
func (k ObjectKind) Placeable() bool {
	return k == KindBall || k == KindBox || k == KindKey
}

// ParseKind parses a kind name
func ParseKind(s string) (ObjectKind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return KindUnknown, fmt.Errorf("unknown object kind %q", s)
}

// MarshalText implements encoding.TextMarshaler
func (k ObjectKind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("cannot marshal object kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *ObjectKind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Spec returns the placement specification for an entity of this kind.
// Color is ignored for the agent.
func (k ObjectKind) Spec(color Color) EntitySpec {
	switch k {
	case KindBall:
		return EntitySpec{Kind: k, Color: color, Size: ObjectSize, Radius: ObjectSize / 2, Height: ObjectSize}
	case KindBox:
		return EntitySpec{Kind: k, Color: color, Size: ObjectSize, Radius: math.Sqrt2 * ObjectSize / 2, Height: ObjectSize}
	case KindKey:
		return EntitySpec{Kind: k, Color: color, Radius: KeyRadius, Height: KeyHeight}
	case KindAgent:
		return EntitySpec{Kind: k, Radius: AgentRadius, Height: AgentHeight}
	default:
		return EntitySpec{Kind: KindUnknown}
	}
}

// EntitySpec is what the engine needs to place an entity
type EntitySpec struct {
	Kind   ObjectKind `json:"kind"`
	Color  Color      `json:"color,omitempty"`
	Size   float64    `json:"size,omitempty"`
	Radius float64    `json:"radius"`
	Height float64    `json:"height"`
}

// MeshName is the human-readable name reported when the entity is picked up,
// e.g. "ball_red"
func (s EntitySpec) MeshName() string {
	if s.Kind == KindAgent {
		return s.Kind.String()
	}
	return fmt.Sprintf("%s_%s", s.Kind, s.Color)
}

// Color is one of the named palette colors
type Color string

// Palette colors, in sorted order
const (
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorGrey   Color = "grey"
	ColorPurple Color = "purple"
	ColorRed    Color = "red"
	ColorYellow Color = "yellow"
)

// Palette returns the full named-color palette in draw order
func Palette() []Color {
	return []Color{ColorBlue, ColorGreen, ColorGrey, ColorPurple, ColorRed, ColorYellow}
}

// Valid reports whether c is in the palette
func (c Color) Valid() bool {
	for _, p := range Palette() {
		if c == p {
			return true
		}
	}
	return false
}
