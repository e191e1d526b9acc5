package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
)

// EnvironmentServiceClient is the client API for the environment service
type EnvironmentServiceClient interface {
	CreateSession(ctx context.Context, in *CreateSessionRequest, opts ...grpc.CallOption) (*CreateSessionResponse, error)
	GetSession(ctx context.Context, in *GetSessionRequest, opts ...grpc.CallOption) (*GetSessionResponse, error)
	Reset(ctx context.Context, in *ResetRequest, opts ...grpc.CallOption) (*ResetResponse, error)
	Step(ctx context.Context, in *StepRequest, opts ...grpc.CallOption) (*StepResponse, error)
	GetLayout(ctx context.Context, in *GetLayoutRequest, opts ...grpc.CallOption) (*GetLayoutResponse, error)
	GetOverview(ctx context.Context, in *GetOverviewRequest, opts ...grpc.CallOption) (*GetOverviewResponse, error)
	ListEpisodes(ctx context.Context, in *ListEpisodesRequest, opts ...grpc.CallOption) (*ListEpisodesResponse, error)
	CloseSession(ctx context.Context, in *CloseSessionRequest, opts ...grpc.CallOption) (*CloseSessionResponse, error)
}

type environmentServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewEnvironmentServiceClient creates a client that speaks the json
// content-subtype on cc
func NewEnvironmentServiceClient(cc grpc.ClientConnInterface) EnvironmentServiceClient {
	return &environmentServiceClient{cc: cc}
}

func (c *environmentServiceClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

func (c *environmentServiceClient) CreateSession(
	ctx context.Context,
	in *CreateSessionRequest,
	opts ...grpc.CallOption,
) (*CreateSessionResponse, error) {
	out := new(CreateSessionResponse)
	if err := c.invoke(ctx, EnvironmentService_CreateSession_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *environmentServiceClient) GetSession(
	ctx context.Context,
	in *GetSessionRequest,
	opts ...grpc.CallOption,
) (*GetSessionResponse, error) {
	out := new(GetSessionResponse)
	if err := c.invoke(ctx, EnvironmentService_GetSession_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *environmentServiceClient) Reset(
	ctx context.Context,
	in *ResetRequest,
	opts ...grpc.CallOption,
) (*ResetResponse, error) {
	out := new(ResetResponse)
	if err := c.invoke(ctx, EnvironmentService_Reset_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *environmentServiceClient) Step(
	ctx context.Context,
	in *StepRequest,
	opts ...grpc.CallOption,
) (*StepResponse, error) {
	out := new(StepResponse)
	if err := c.invoke(ctx, EnvironmentService_Step_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *environmentServiceClient) GetLayout(
	ctx context.Context,
	in *GetLayoutRequest,
	opts ...grpc.CallOption,
) (*GetLayoutResponse, error) {
	out := new(GetLayoutResponse)
	if err := c.invoke(ctx, EnvironmentService_GetLayout_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *environmentServiceClient) GetOverview(
	ctx context.Context,
	in *GetOverviewRequest,
	opts ...grpc.CallOption,
) (*GetOverviewResponse, error) {
	out := new(GetOverviewResponse)
	if err := c.invoke(ctx, EnvironmentService_GetOverview_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *environmentServiceClient) ListEpisodes(
	ctx context.Context,
	in *ListEpisodesRequest,
	opts ...grpc.CallOption,
) (*ListEpisodesResponse, error) {
	out := new(ListEpisodesResponse)
	if err := c.invoke(ctx, EnvironmentService_ListEpisodes_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *environmentServiceClient) CloseSession(
	ctx context.Context,
	in *CloseSessionRequest,
	opts ...grpc.CallOption,
) (*CloseSessionResponse, error) {
	out := new(CloseSessionResponse)
	if err := c.invoke(ctx, EnvironmentService_CloseSession_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}
