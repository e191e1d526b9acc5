package layouts

import (
	"github.com/KirkDiggler/pickupworld/internal/errors"
)

const errSessionIDEmpty = "session ID is required"

func validateSave(input *SaveInput) error {
	if input == nil {
		return errors.InvalidArgument("input is required")
	}
	if input.SessionID == "" {
		return errors.InvalidArgument(errSessionIDEmpty)
	}
	if input.Layout == nil {
		return errors.InvalidArgument("layout is required")
	}
	if err := input.Layout.Validate(); err != nil {
		return errors.InvalidArgumentf("invalid layout: %v", err)
	}
	if input.Layout.Len() != input.NumObjs+1 {
		return errors.InvalidArgumentf("layout has %d entries, want %d", input.Layout.Len(), input.NumObjs+1)
	}
	return nil
}

func validateSessionID(sessionID string) error {
	if sessionID == "" {
		return errors.InvalidArgument(errSessionIDEmpty)
	}
	return nil
}
