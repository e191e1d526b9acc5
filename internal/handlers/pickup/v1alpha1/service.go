package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// EnvironmentService_ServiceName is the fully qualified service name
const EnvironmentService_ServiceName = "pickupworld.api.v1alpha1.EnvironmentService"

// Full method names of the environment service
const (
	EnvironmentService_CreateSession_FullMethodName = "/pickupworld.api.v1alpha1.EnvironmentService/CreateSession"
	EnvironmentService_GetSession_FullMethodName    = "/pickupworld.api.v1alpha1.EnvironmentService/GetSession"
	EnvironmentService_Reset_FullMethodName         = "/pickupworld.api.v1alpha1.EnvironmentService/Reset"
	EnvironmentService_Step_FullMethodName          = "/pickupworld.api.v1alpha1.EnvironmentService/Step"
	EnvironmentService_GetLayout_FullMethodName     = "/pickupworld.api.v1alpha1.EnvironmentService/GetLayout"
	EnvironmentService_GetOverview_FullMethodName   = "/pickupworld.api.v1alpha1.EnvironmentService/GetOverview"
	EnvironmentService_ListEpisodes_FullMethodName  = "/pickupworld.api.v1alpha1.EnvironmentService/ListEpisodes"
	EnvironmentService_CloseSession_FullMethodName  = "/pickupworld.api.v1alpha1.EnvironmentService/CloseSession"
)

// EnvironmentServiceServer is the server API for the environment service
type EnvironmentServiceServer interface {
	CreateSession(context.Context, *CreateSessionRequest) (*CreateSessionResponse, error)
	GetSession(context.Context, *GetSessionRequest) (*GetSessionResponse, error)
	Reset(context.Context, *ResetRequest) (*ResetResponse, error)
	Step(context.Context, *StepRequest) (*StepResponse, error)
	GetLayout(context.Context, *GetLayoutRequest) (*GetLayoutResponse, error)
	GetOverview(context.Context, *GetOverviewRequest) (*GetOverviewResponse, error)
	ListEpisodes(context.Context, *ListEpisodesRequest) (*ListEpisodesResponse, error)
	CloseSession(context.Context, *CloseSessionRequest) (*CloseSessionResponse, error)
}

// UnimplementedEnvironmentServiceServer can be embedded to have forward
// compatible implementations
type UnimplementedEnvironmentServiceServer struct{}

func (UnimplementedEnvironmentServiceServer) CreateSession(context.Context, *CreateSessionRequest) (*CreateSessionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateSession not implemented")
}

func (UnimplementedEnvironmentServiceServer) GetSession(context.Context, *GetSessionRequest) (*GetSessionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetSession not implemented")
}

func (UnimplementedEnvironmentServiceServer) Reset(context.Context, *ResetRequest) (*ResetResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Reset not implemented")
}

func (UnimplementedEnvironmentServiceServer) Step(context.Context, *StepRequest) (*StepResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Step not implemented")
}

func (UnimplementedEnvironmentServiceServer) GetLayout(context.Context, *GetLayoutRequest) (*GetLayoutResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetLayout not implemented")
}

func (UnimplementedEnvironmentServiceServer) GetOverview(context.Context, *GetOverviewRequest) (*GetOverviewResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetOverview not implemented")
}

func (UnimplementedEnvironmentServiceServer) ListEpisodes(context.Context, *ListEpisodesRequest) (*ListEpisodesResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListEpisodes not implemented")
}

func (UnimplementedEnvironmentServiceServer) CloseSession(context.Context, *CloseSessionRequest) (*CloseSessionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CloseSession not implemented")
}

// RegisterEnvironmentServiceServer registers srv on s
func RegisterEnvironmentServiceServer(s grpc.ServiceRegistrar, srv EnvironmentServiceServer) {
	s.RegisterService(&EnvironmentService_ServiceDesc, srv)
}

func _EnvironmentService_CreateSession_Handler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(CreateSessionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EnvironmentServiceServer).CreateSession(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: EnvironmentService_CreateSession_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(EnvironmentServiceServer).CreateSession(ctx, req.(*CreateSessionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _EnvironmentService_GetSession_Handler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(GetSessionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EnvironmentServiceServer).GetSession(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: EnvironmentService_GetSession_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(EnvironmentServiceServer).GetSession(ctx, req.(*GetSessionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _EnvironmentService_Reset_Handler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(ResetRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EnvironmentServiceServer).Reset(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: EnvironmentService_Reset_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(EnvironmentServiceServer).Reset(ctx, req.(*ResetRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _EnvironmentService_Step_Handler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(StepRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EnvironmentServiceServer).Step(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: EnvironmentService_Step_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(EnvironmentServiceServer).Step(ctx, req.(*StepRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _EnvironmentService_GetLayout_Handler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(GetLayoutRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EnvironmentServiceServer).GetLayout(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: EnvironmentService_GetLayout_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(EnvironmentServiceServer).GetLayout(ctx, req.(*GetLayoutRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _EnvironmentService_GetOverview_Handler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(GetOverviewRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EnvironmentServiceServer).GetOverview(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: EnvironmentService_GetOverview_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(EnvironmentServiceServer).GetOverview(ctx, req.(*GetOverviewRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _EnvironmentService_ListEpisodes_Handler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(ListEpisodesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EnvironmentServiceServer).ListEpisodes(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: EnvironmentService_ListEpisodes_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(EnvironmentServiceServer).ListEpisodes(ctx, req.(*ListEpisodesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _EnvironmentService_CloseSession_Handler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(CloseSessionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EnvironmentServiceServer).CloseSession(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: EnvironmentService_CloseSession_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(EnvironmentServiceServer).CloseSession(ctx, req.(*CloseSessionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// EnvironmentService_ServiceDesc is the grpc.ServiceDesc for the environment
// service. Messages travel with the json content-subtype.
var EnvironmentService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: EnvironmentService_ServiceName,
	HandlerType: (*EnvironmentServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateSession",
			Handler:    _EnvironmentService_CreateSession_Handler,
		},
		{
			MethodName: "GetSession",
			Handler:    _EnvironmentService_GetSession_Handler,
		},
		{
			MethodName: "Reset",
			Handler:    _EnvironmentService_Reset_Handler,
		},
		{
			MethodName: "Step",
			Handler:    _EnvironmentService_Step_Handler,
		},
		{
			MethodName: "GetLayout",
			Handler:    _EnvironmentService_GetLayout_Handler,
		},
		{
			MethodName: "GetOverview",
			Handler:    _EnvironmentService_GetOverview_Handler,
		},
		{
			MethodName: "ListEpisodes",
			Handler:    _EnvironmentService_ListEpisodes_Handler,
		},
		{
			MethodName: "CloseSession",
			Handler:    _EnvironmentService_CloseSession_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pickupworld/api/v1alpha1/environment.json",
}
