package v1alpha1_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/KirkDiggler/pickupworld/internal/errors"
	"github.com/KirkDiggler/pickupworld/internal/handlers/pickup/v1alpha1"
	"github.com/KirkDiggler/pickupworld/internal/orchestrators/session"
	"github.com/KirkDiggler/pickupworld/internal/pkg/clock"
	"github.com/KirkDiggler/pickupworld/internal/pkg/idgen"
	"github.com/KirkDiggler/pickupworld/internal/repositories/episodes"
	"github.com/KirkDiggler/pickupworld/internal/repositories/layouts"
)

// ServerTestSuite drives the real orchestrator through a grpc server on an
// in-memory listener
type ServerTestSuite struct {
	suite.Suite
	ctx    context.Context
	server *grpc.Server
	conn   *grpc.ClientConn
	client v1alpha1.EnvironmentServiceClient
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) SetupTest() {
	s.ctx = context.Background()
	clk := clock.NewFixed(time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC))

	svc, err := session.NewOrchestrator(&session.Config{
		IDGenerator: idgen.NewSequential("sess"),
		Clock:       clk,
		LayoutRepo:  layouts.NewInMemory(clk),
		EpisodeRepo: episodes.NewInMemory(),
	})
	s.Require().NoError(err)

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{SessionService: svc})
	s.Require().NoError(err)

	listener := bufconn.Listen(1 << 20)
	s.server = grpc.NewServer()
	v1alpha1.RegisterEnvironmentServiceServer(s.server, handler)
	go func() {
		_ = s.server.Serve(listener)
	}()

	s.conn, err = grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	s.Require().NoError(err)
	s.client = v1alpha1.NewEnvironmentServiceClient(s.conn)
}

func (s *ServerTestSuite) TearDownTest() {
	_ = s.conn.Close()
	s.server.Stop()
}

func (s *ServerTestSuite) createSession(maxSteps int32) string {
	resp, err := s.client.CreateSession(s.ctx, &v1alpha1.CreateSessionRequest{
		Size:            12,
		NumObjs:         5,
		Seed:            42,
		MaxEpisodeSteps: maxSteps,
	})
	s.Require().NoError(err)
	return resp.Session.SessionID
}

func (s *ServerTestSuite) TestLayoutIsStableAcrossResets() {
	id := s.createSession(0)

	first, err := s.client.Reset(s.ctx, &v1alpha1.ResetRequest{SessionID: id})
	s.Require().NoError(err)
	s.True(first.Generated)
	s.Len(first.Layout, 6)
	s.Equal("agent", first.Layout[5].Kind)

	for i := 0; i < 3; i++ {
		again, err := s.client.Reset(s.ctx, &v1alpha1.ResetRequest{SessionID: id})
		s.Require().NoError(err)
		s.False(again.Generated)
		s.Equal(first.Layout, again.Layout)
		s.Equal(first.Observation.Agent, again.Observation.Agent)
	}

	recorded, err := s.client.GetLayout(s.ctx, &v1alpha1.GetLayoutRequest{SessionID: id})
	s.Require().NoError(err)
	s.Equal(first.Layout, recorded.Layout)
	s.Equal(int64(42), recorded.Seed)
}

func (s *ServerTestSuite) TestTruncatedEpisodeIsListed() {
	id := s.createSession(2)

	_, err := s.client.Reset(s.ctx, &v1alpha1.ResetRequest{SessionID: id})
	s.Require().NoError(err)

	var last *v1alpha1.StepResponse
	for i := 0; i < 2; i++ {
		last, err = s.client.Step(s.ctx, &v1alpha1.StepRequest{SessionID: id, Action: "turn_left"})
		s.Require().NoError(err)
	}
	s.True(last.Truncated)
	s.False(last.Terminated)
	s.Empty(last.Event)

	_, err = s.client.Step(s.ctx, &v1alpha1.StepRequest{SessionID: id, Action: "turn_left"})
	s.Equal(codes.FailedPrecondition, status.Code(err))

	listed, err := s.client.ListEpisodes(s.ctx, &v1alpha1.ListEpisodesRequest{SessionID: id})
	s.Require().NoError(err)
	s.Require().Len(listed.Episodes, 1)
	s.Equal(int32(2), listed.Episodes[0].Steps)
	s.True(listed.Episodes[0].Truncated)

	info, err := s.client.GetSession(s.ctx, &v1alpha1.GetSessionRequest{SessionID: id})
	s.Require().NoError(err)
	s.Equal("truncated", info.Session.State)
}

func (s *ServerTestSuite) TestOverviewAndClose() {
	id := s.createSession(0)

	_, err := s.client.Reset(s.ctx, &v1alpha1.ResetRequest{SessionID: id})
	s.Require().NoError(err)

	overview, err := s.client.GetOverview(s.ctx, &v1alpha1.GetOverviewRequest{SessionID: id})
	s.Require().NoError(err)
	s.Equal(int32(6), int32(len(overview.Cells))+overview.Skipped)

	closed, err := s.client.CloseSession(s.ctx, &v1alpha1.CloseSessionRequest{SessionID: id})
	s.Require().NoError(err)
	s.Equal(int32(1), closed.EpisodesPlayed)

	_, err = s.client.Reset(s.ctx, &v1alpha1.ResetRequest{SessionID: id})
	s.Equal(codes.NotFound, status.Code(err))
}

func (s *ServerTestSuite) TestErrorsCrossTheWire() {
	_, err := s.client.GetLayout(s.ctx, &v1alpha1.GetLayoutRequest{SessionID: "sess_missing"})
	s.Require().Error(err)

	converted := errors.FromGRPCError(err)
	s.True(errors.IsNotFound(converted))
}
