package entities

import "fmt"

// Action is a discrete player action
type Action int

// Actions, matching the discrete action space indices
const (
	ActionTurnLeft Action = iota
	ActionTurnRight
	ActionMoveForward
	ActionMoveBack
	ActionPickup
)

// NumActions is the size of the action space
const NumActions = 5

var actionNames = [NumActions]string{"turn_left", "turn_right", "move_forward", "move_back", "pickup"}

// Valid reports whether a is inside the action space
func (a Action) Valid() bool {
	return a >= 0 && int(a) < NumActions
}

// String returns the action name
func (a Action) String() string {
	if !a.Valid() {
		return fmt.Sprintf("action(%d)", int(a))
	}
	return actionNames[a]
}

// ParseAction parses an action name
func ParseAction(s string) (Action, error) {
	for i, name := range actionNames {
		if name == s {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", s)
}
