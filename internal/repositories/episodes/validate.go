package episodes

import (
	"github.com/KirkDiggler/pickupworld/internal/errors"
)

func validateRecord(input *RecordInput) error {
	if input == nil || input.Summary == nil {
		return errors.InvalidArgument("summary is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("SessionID", input.Summary.SessionID, vb)
	errors.ValidateMinInt("Episode", input.Summary.Episode, 1, vb)
	errors.ValidateMinInt("Steps", input.Summary.Steps, 0, vb)
	if input.Summary.EndedAt.Before(input.Summary.StartedAt) {
		vb.Field("EndedAt", "must not be before StartedAt")
	}
	return vb.Build()
}

func validateList(input *ListInput) error {
	if input == nil {
		return errors.InvalidArgument("input is required")
	}
	if input.SessionID == "" {
		return errors.InvalidArgument("session ID is required")
	}
	return nil
}
