package v1alpha1

import (
	"github.com/KirkDiggler/pickupworld/internal/entities"
	"github.com/KirkDiggler/pickupworld/internal/orchestrators/session"
)

func convertPose(p entities.Pose) Pose {
	return Pose{X: p.Pos.X, Y: p.Pos.Y, Z: p.Pos.Z, Dir: p.Dir}
}

func convertSessionInfo(info *session.Info) *SessionInfo {
	if info == nil {
		return nil
	}
	return &SessionInfo{
		SessionID:       info.SessionID,
		Size:            info.Size,
		NumObjs:         int32(info.NumObjs),
		Seed:            info.Seed,
		MaxEpisodeSteps: int32(info.MaxEpisodeSteps),
		State:           info.State.String(),
		Episode:         int32(info.Episode),
		Steps:           int32(info.Steps),
		CreatedAt:       info.CreatedAt,
	}
}

func convertObservation(obs *entities.Observation) *Observation {
	if obs == nil {
		return nil
	}
	out := &Observation{
		Agent:     convertPose(obs.Agent),
		Carrying:  obs.Carrying,
		Entities:  make([]EntityPlacement, 0, len(obs.Entities)),
		StepCount: int32(obs.StepCount),
	}
	for _, ent := range obs.Entities {
		out.Entities = append(out.Entities, EntityPlacement{
			EntityID: ent.ID,
			Mesh:     ent.Spec.MeshName(),
			Pose:     convertPose(ent.Pose),
		})
	}
	return out
}

// convertLayout keeps placement order; the agent is the last entry
func convertLayout(layout *entities.Layout) []LayoutEntry {
	if layout == nil {
		return nil
	}
	out := make([]LayoutEntry, 0, len(layout.Entries))
	for _, entry := range layout.Entries {
		out = append(out, LayoutEntry{
			Kind:  entry.Kind.String(),
			Color: string(entry.Color),
			Pose:  convertPose(entry.Pose),
		})
	}
	return out
}
