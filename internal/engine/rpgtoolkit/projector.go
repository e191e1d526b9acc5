// Package rpgtoolkit projects pickup layouts onto rpg-toolkit's spatial
// rooms, giving clients a coarse tactical overview of a session.
package rpgtoolkit

import (
	"log/slog"
	"math"

	"github.com/KirkDiggler/rpg-toolkit/tools/spatial"

	"github.com/KirkDiggler/pickupworld/internal/entities"
	"github.com/KirkDiggler/pickupworld/internal/errors"
)

// Overview grid resolution
const (
	GridWidth  = 10
	GridHeight = 10
	roomType   = "pickup_room"
)

// Cell is where a layout entry landed on the overview grid
type Cell struct {
	EntityID string
	Kind     entities.ObjectKind
	Color    entities.Color
	Col      int
	Row      int
}

// ProjectInput is the layout to project
type ProjectInput struct {
	SessionID string
	Size      float64
	Layout    *entities.Layout
}

// ProjectOutput is the projected overview
type ProjectOutput struct {
	Room  *spatial.RoomData
	Cells []Cell
	// Skipped counts entries that could not be placed, usually because
	// another entry already occupies the cell
	Skipped int
}

// Projector maps continuous room coordinates onto a hex grid room
type Projector struct{}

// NewProjector creates a projector
func NewProjector() *Projector {
	return &Projector{}
}

// Project places every layout entry on a fresh overview room
func (p *Projector) Project(input *ProjectInput) (*ProjectOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}
	if input.Size <= 0 {
		return nil, errors.InvalidArgumentf("size must be positive, got %v", input.Size)
	}
	if input.Layout.Len() == 0 {
		return nil, errors.FailedPrecondition("layout has not been generated")
	}

	hexGrid := spatial.NewHexGrid(spatial.HexGridConfig{
		Width:     GridWidth,
		Height:    GridHeight,
		PointyTop: true,
	})

	room := spatial.NewBasicRoom(spatial.BasicRoomConfig{
		ID:   input.SessionID,
		Type: roomType,
		Grid: hexGrid,
	})

	out := &ProjectOutput{Cells: make([]Cell, 0, input.Layout.Len())}
	for i, entry := range input.Layout.Entries {
		col := toCell(entry.Pose.Pos.X, input.Size, GridWidth)
		row := toCell(entry.Pose.Pos.Z, input.Size, GridHeight)
		ent := wrapEntry(i, entry)

		pos := spatial.Position{X: float64(col), Y: float64(row)}
		if err := room.PlaceEntity(ent, pos); err != nil {
			slog.Debug("Overview cell unavailable",
				"session_id", input.SessionID,
				"entity_id", ent.GetID(),
				"position", pos,
				"error", err,
			)
			out.Skipped++
			continue
		}

		out.Cells = append(out.Cells, Cell{
			EntityID: ent.GetID(),
			Kind:     entry.Kind,
			Color:    entry.Color,
			Col:      col,
			Row:      row,
		})
	}

	roomData := room.ToData()
	out.Room = &roomData
	return out, nil
}

// toCell maps a coordinate in [0, size] to a cell index in [0, cells)
func toCell(v, size float64, cells int) int {
	idx := int(math.Floor(v / size * float64(cells)))
	if idx < 0 {
		return 0
	}
	if idx >= cells {
		return cells - 1
	}
	return idx
}
