// Package v1alpha1 handles the pickup environment grpc service interface.
// Messages are JSON, so clients must call with content-subtype "json"
// (NewEnvironmentServiceClient sets it).
package v1alpha1

import (
	"context"

	"github.com/KirkDiggler/pickupworld/internal/entities"
	"github.com/KirkDiggler/pickupworld/internal/environments/pickup"
	"github.com/KirkDiggler/pickupworld/internal/errors"
	"github.com/KirkDiggler/pickupworld/internal/orchestrators/session"
)

// HandlerConfig holds dependencies for the environment handler
type HandlerConfig struct {
	SessionService session.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	if c.SessionService == nil {
		return errors.InvalidArgument("session service is required")
	}
	return nil
}

// Handler implements the environment gRPC service
type Handler struct {
	UnimplementedEnvironmentServiceServer
	sessionService session.Service
}

// NewHandler creates a new environment handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		sessionService: cfg.SessionService,
	}, nil
}

// CreateSession creates an environment session
func (h *Handler) CreateSession(
	ctx context.Context,
	req *CreateSessionRequest,
) (*CreateSessionResponse, error) {
	vb := errors.NewValidationBuilder()
	errors.ValidateMinFloat("size", req.Size, pickup.MinSize, vb)
	errors.ValidateMinInt("num_objs", int(req.NumObjs), 0, vb)
	errors.ValidateMinInt("max_episode_steps", int(req.MaxEpisodeSteps), 0, vb)
	if err := vb.Build(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.sessionService.CreateSession(ctx, &session.CreateSessionInput{
		Size:            req.Size,
		NumObjs:         int(req.NumObjs),
		Seed:            req.Seed,
		MaxEpisodeSteps: int(req.MaxEpisodeSteps),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &CreateSessionResponse{Session: convertSessionInfo(output.Session)}, nil
}

// GetSession describes a session
func (h *Handler) GetSession(
	ctx context.Context,
	req *GetSessionRequest,
) (*GetSessionResponse, error) {
	if req.SessionID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("session_id is required"))
	}

	output, err := h.sessionService.GetSession(ctx, &session.GetSessionInput{SessionID: req.SessionID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &GetSessionResponse{Session: convertSessionInfo(output.Session)}, nil
}

// Reset starts a new episode
func (h *Handler) Reset(
	ctx context.Context,
	req *ResetRequest,
) (*ResetResponse, error) {
	if req.SessionID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("session_id is required"))
	}

	output, err := h.sessionService.Reset(ctx, &session.ResetInput{SessionID: req.SessionID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &ResetResponse{
		SessionID:   output.SessionID,
		Episode:     int32(output.Episode),
		Observation: convertObservation(output.Observation),
		Layout:      convertLayout(output.Layout),
		Generated:   output.Generated,
	}, nil
}

// Step applies one action
func (h *Handler) Step(
	ctx context.Context,
	req *StepRequest,
) (*StepResponse, error) {
	if req.SessionID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("session_id is required"))
	}
	if req.Action == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("action is required"))
	}

	action, err := entities.ParseAction(req.Action)
	if err != nil {
		return nil, errors.ToGRPCError(errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid action"))
	}

	output, err := h.sessionService.Step(ctx, &session.StepInput{
		SessionID: req.SessionID,
		Action:    action,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp := &StepResponse{
		SessionID: output.SessionID,
		Episode:   int32(output.Episode),
		Steps:     int32(output.Steps),
	}
	if result := output.Result; result != nil {
		resp.Observation = convertObservation(result.Observation)
		resp.Reward = result.Reward
		resp.Terminated = result.Terminated
		resp.Truncated = result.Truncated
		resp.Info = result.Info
		resp.Event, _ = result.Event()
	}

	return resp, nil
}

// GetLayout returns the layout recorded on the session's first reset
func (h *Handler) GetLayout(
	ctx context.Context,
	req *GetLayoutRequest,
) (*GetLayoutResponse, error) {
	if req.SessionID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("session_id is required"))
	}

	output, err := h.sessionService.GetLayout(ctx, &session.GetLayoutInput{SessionID: req.SessionID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &GetLayoutResponse{
		SessionID:  output.SessionID,
		Size:       output.Size,
		NumObjs:    int32(output.NumObjs),
		Seed:       output.Seed,
		Layout:     convertLayout(output.Layout),
		RecordedAt: output.RecordedAt,
	}, nil
}

// GetOverview returns the recorded layout projected onto a hex grid
func (h *Handler) GetOverview(
	ctx context.Context,
	req *GetOverviewRequest,
) (*GetOverviewResponse, error) {
	if req.SessionID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("session_id is required"))
	}

	output, err := h.sessionService.GetOverview(ctx, &session.GetOverviewInput{SessionID: req.SessionID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp := &GetOverviewResponse{
		SessionID: output.SessionID,
		Cells:     make([]OverviewCell, 0, len(output.Cells)),
		Skipped:   int32(output.Skipped),
	}
	if output.Room != nil {
		resp.GridType = output.Room.GridType
		resp.Width = int32(output.Room.Width)
		resp.Height = int32(output.Room.Height)
	}
	for _, cell := range output.Cells {
		resp.Cells = append(resp.Cells, OverviewCell{
			EntityID: cell.EntityID,
			Kind:     cell.Kind.String(),
			Color:    string(cell.Color),
			Col:      int32(cell.Col),
			Row:      int32(cell.Row),
		})
	}

	return resp, nil
}

// ListEpisodes returns a session's finished episodes
func (h *Handler) ListEpisodes(
	ctx context.Context,
	req *ListEpisodesRequest,
) (*ListEpisodesResponse, error) {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("session_id", req.SessionID, vb)
	errors.ValidateMinInt("limit", int(req.Limit), 0, vb)
	if err := vb.Build(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.sessionService.ListEpisodes(ctx, &session.ListEpisodesInput{
		SessionID: req.SessionID,
		Limit:     int(req.Limit),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp := &ListEpisodesResponse{
		SessionID: req.SessionID,
		Episodes:  make([]*EpisodeSummary, 0, len(output.Episodes)),
	}
	for _, summary := range output.Episodes {
		resp.Episodes = append(resp.Episodes, &EpisodeSummary{
			Episode:     int32(summary.Episode),
			Steps:       int32(summary.Steps),
			TotalReward: summary.TotalReward,
			Terminated:  summary.Terminated,
			Truncated:   summary.Truncated,
			Event:       summary.Event,
			StartedAt:   summary.StartedAt,
			EndedAt:     summary.EndedAt,
		})
	}

	return resp, nil
}

// CloseSession closes a session and forgets its layout
func (h *Handler) CloseSession(
	ctx context.Context,
	req *CloseSessionRequest,
) (*CloseSessionResponse, error) {
	if req.SessionID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("session_id is required"))
	}

	output, err := h.sessionService.CloseSession(ctx, &session.CloseSessionInput{SessionID: req.SessionID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &CloseSessionResponse{EpisodesPlayed: int32(output.EpisodesPlayed)}, nil
}
