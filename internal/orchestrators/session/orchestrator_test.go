package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/pickupworld/internal/engine"
	enginemock "github.com/KirkDiggler/pickupworld/internal/engine/mock"
	"github.com/KirkDiggler/pickupworld/internal/entities"
	"github.com/KirkDiggler/pickupworld/internal/environments/pickup"
	"github.com/KirkDiggler/pickupworld/internal/errors"
	"github.com/KirkDiggler/pickupworld/internal/orchestrators/session"
	"github.com/KirkDiggler/pickupworld/internal/pkg/clock"
	"github.com/KirkDiggler/pickupworld/internal/pkg/idgen"
	"github.com/KirkDiggler/pickupworld/internal/repositories/episodes"
	"github.com/KirkDiggler/pickupworld/internal/repositories/layouts"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctx          context.Context
	clock        *clock.Fixed
	layoutRepo   *layouts.InMemoryRepository
	episodeRepo  *episodes.InMemoryRepository
	orchestrator session.Service
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = clock.NewFixed(time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC))
	s.layoutRepo = layouts.NewInMemory(s.clock)
	s.episodeRepo = episodes.NewInMemory()
	s.orchestrator = s.newOrchestrator(nil)
}

func (s *OrchestratorTestSuite) newOrchestrator(factory session.EngineFactory) session.Service {
	svc, err := session.NewOrchestrator(&session.Config{
		IDGenerator:   idgen.NewSequential("sess"),
		Clock:         s.clock,
		LayoutRepo:    s.layoutRepo,
		EpisodeRepo:   s.episodeRepo,
		EngineFactory: factory,
	})
	s.Require().NoError(err)
	return svc
}

func (s *OrchestratorTestSuite) create(size float64, numObjs int, seed int64, maxSteps int) string {
	out, err := s.orchestrator.CreateSession(s.ctx, &session.CreateSessionInput{
		Size:            size,
		NumObjs:         numObjs,
		Seed:            seed,
		MaxEpisodeSteps: maxSteps,
	})
	s.Require().NoError(err)
	return out.Session.SessionID
}

func (s *OrchestratorTestSuite) reset(id string) *session.ResetOutput {
	out, err := s.orchestrator.Reset(s.ctx, &session.ResetInput{SessionID: id})
	s.Require().NoError(err)
	return out
}

func (s *OrchestratorTestSuite) step(id string, action entities.Action) *session.StepOutput {
	out, err := s.orchestrator.Step(s.ctx, &session.StepInput{SessionID: id, Action: action})
	s.Require().NoError(err)
	return out
}

func (s *OrchestratorTestSuite) TestNewOrchestratorValidation() {
	_, err := session.NewOrchestrator(nil)
	s.Error(err)

	_, err = session.NewOrchestrator(&session.Config{Clock: s.clock})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestCreateSessionValidation() {
	testCases := []struct {
		name  string
		input *session.CreateSessionInput
	}{
		{name: "nil input", input: nil},
		{name: "size below minimum", input: &session.CreateSessionInput{Size: 1}},
		{name: "negative objects", input: &session.CreateSessionInput{Size: 4, NumObjs: -1}},
		{name: "negative step limit", input: &session.CreateSessionInput{Size: 4, MaxEpisodeSteps: -1}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.orchestrator.CreateSession(s.ctx, tc.input)
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *OrchestratorTestSuite) TestCreateSession() {
	out, err := s.orchestrator.CreateSession(s.ctx, &session.CreateSessionInput{Size: 12, NumObjs: 5, Seed: 7})
	s.Require().NoError(err)

	s.Equal("sess_1", out.Session.SessionID)
	s.Equal(int64(7), out.Session.Seed)
	s.Equal(pickup.StateIdle, out.Session.State)
	s.Equal(0, out.Session.Episode)
	s.True(out.Session.CreatedAt.Equal(s.clock.Now()))
}

func (s *OrchestratorTestSuite) TestZeroSeedIsDrawnFromClock() {
	out, err := s.orchestrator.CreateSession(s.ctx, &session.CreateSessionInput{Size: 4})
	s.Require().NoError(err)
	s.Equal(s.clock.Now().UnixNano(), out.Session.Seed)
}

func (s *OrchestratorTestSuite) TestResetRecordsLayoutOnce() {
	id := s.create(12, 5, 42, 0)

	first := s.reset(id)
	s.True(first.Generated)
	s.Equal(1, first.Episode)
	s.Equal(6, first.Layout.Len())

	stored, err := s.orchestrator.GetLayout(s.ctx, &session.GetLayoutInput{SessionID: id})
	s.Require().NoError(err)
	s.True(first.Layout.Equal(stored.Layout))
	s.Equal(int64(42), stored.Seed)
	s.Equal(5, stored.NumObjs)

	for i := 2; i <= 6; i++ {
		out := s.reset(id)
		s.False(out.Generated)
		s.Equal(i, out.Episode)
		s.True(first.Layout.Equal(out.Layout))
	}
}

func (s *OrchestratorTestSuite) TestSameSeedSameLayout() {
	a := s.create(12, 5, 99, 0)
	b := s.create(12, 5, 99, 0)
	c := s.create(12, 5, 100, 0)

	la := s.reset(a).Layout
	lb := s.reset(b).Layout
	lc := s.reset(c).Layout

	s.True(la.Equal(lb))
	s.False(la.Equal(lc))
}

func (s *OrchestratorTestSuite) TestGetLayoutBeforeReset() {
	id := s.create(4, 1, 1, 0)

	_, err := s.orchestrator.GetLayout(s.ctx, &session.GetLayoutInput{SessionID: id})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestUnknownSession() {
	_, err := s.orchestrator.Reset(s.ctx, &session.ResetInput{SessionID: "sess_404"})
	s.True(errors.IsNotFound(err))

	_, err = s.orchestrator.Step(s.ctx, &session.StepInput{SessionID: "sess_404"})
	s.True(errors.IsNotFound(err))

	_, err = s.orchestrator.GetSession(s.ctx, &session.GetSessionInput{SessionID: "sess_404"})
	s.True(errors.IsNotFound(err))

	_, err = s.orchestrator.Step(s.ctx, &session.StepInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestStepBeforeReset() {
	id := s.create(4, 1, 1, 0)

	_, err := s.orchestrator.Step(s.ctx, &session.StepInput{SessionID: id, Action: entities.ActionPickup})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *OrchestratorTestSuite) TestTruncatedEpisodeIsLogged() {
	id := s.create(12, 0, 3, 3)
	s.reset(id)

	s.step(id, entities.ActionTurnLeft)
	s.clock.Advance(time.Second)
	s.step(id, entities.ActionTurnLeft)
	out := s.step(id, entities.ActionTurnLeft)
	s.True(out.Result.Truncated)
	s.Equal(3, out.Steps)

	_, err := s.orchestrator.Step(s.ctx, &session.StepInput{SessionID: id, Action: entities.ActionTurnLeft})
	s.True(errors.IsFailedPrecondition(err))

	list, err := s.orchestrator.ListEpisodes(s.ctx, &session.ListEpisodesInput{SessionID: id})
	s.Require().NoError(err)
	s.Require().Len(list.Episodes, 1)
	sum := list.Episodes[0]
	s.Equal(1, sum.Episode)
	s.Equal(3, sum.Steps)
	s.True(sum.Truncated)
	s.False(sum.Terminated)
	s.Empty(sum.Event)
	s.Equal(time.Second, sum.EndedAt.Sub(sum.StartedAt))

	// the ended episode is not logged a second time on reset
	s.reset(id)
	list, err = s.orchestrator.ListEpisodes(s.ctx, &session.ListEpisodesInput{SessionID: id})
	s.Require().NoError(err)
	s.Len(list.Episodes, 1)
}

func (s *OrchestratorTestSuite) TestAbandonedEpisodeIsLoggedOnReset() {
	id := s.create(12, 2, 3, 0)
	s.reset(id)
	s.step(id, entities.ActionTurnRight)
	s.step(id, entities.ActionTurnRight)
	s.reset(id)

	// an episode with no steps is not logged
	s.reset(id)

	list, err := s.orchestrator.ListEpisodes(s.ctx, &session.ListEpisodesInput{SessionID: id})
	s.Require().NoError(err)
	s.Require().Len(list.Episodes, 1)
	s.Equal(2, list.Episodes[0].Steps)
	s.False(list.Episodes[0].Terminated)
	s.False(list.Episodes[0].Truncated)
}

func (s *OrchestratorTestSuite) TestPickupTerminatesAndIsLogged() {
	ctrl := gomock.NewController(s.T())
	mockEngine := enginemock.NewMockEngine(ctrl)
	s.orchestrator = s.newOrchestrator(func(_ int64, _ int) (engine.Engine, error) {
		return mockEngine, nil
	})

	mockEngine.EXPECT().ClearWorld(gomock.Any(), gomock.Any()).Return(&engine.ClearWorldOutput{}, nil).AnyTimes()
	mockEngine.EXPECT().AddRectRoom(gomock.Any(), gomock.Any()).Return(&engine.AddRectRoomOutput{}, nil).AnyTimes()
	mockEngine.EXPECT().PlaceEntity(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, input *engine.PlaceEntityInput) (*engine.PlaceEntityOutput, error) {
			return &engine.PlaceEntityOutput{Entity: &entities.PlacedEntity{
				Spec: input.Spec,
				Pose: entities.Pose{Pos: entities.Vec3{X: 2, Z: 2}},
			}}, nil
		}).AnyTimes()
	mockEngine.EXPECT().PlaceAgent(gomock.Any(), gomock.Any()).Return(&engine.PlaceAgentOutput{
		Agent: &entities.PlacedEntity{Pose: entities.Pose{Pos: entities.Vec3{X: 1, Z: 1}}},
	}, nil).AnyTimes()
	mockEngine.EXPECT().Observe(gomock.Any(), gomock.Any()).
		Return(&engine.ObserveOutput{Observation: &entities.Observation{}}, nil).AnyTimes()

	gomock.InOrder(
		mockEngine.EXPECT().Step(gomock.Any(), &engine.StepInput{Action: entities.ActionMoveForward}).
			Return(&engine.StepOutput{Observation: &entities.Observation{}, Info: map[string]any{}}, nil),
		mockEngine.EXPECT().GetAgent(gomock.Any(), gomock.Any()).
			Return(&engine.GetAgentOutput{Agent: &entities.PlacedEntity{}}, nil),
		mockEngine.EXPECT().Step(gomock.Any(), &engine.StepInput{Action: entities.ActionPickup}).
			Return(&engine.StepOutput{Observation: &entities.Observation{}, Info: map[string]any{}}, nil),
		mockEngine.EXPECT().GetAgent(gomock.Any(), gomock.Any()).
			Return(&engine.GetAgentOutput{
				Agent:    &entities.PlacedEntity{},
				Carrying: &entities.PlacedEntity{Spec: entities.KindBall.Spec(entities.ColorRed)},
			}, nil),
	)

	id := s.create(6, 1, 5, 0)
	s.reset(id)

	out := s.step(id, entities.ActionMoveForward)
	s.False(out.Result.Terminated)

	out = s.step(id, entities.ActionPickup)
	s.True(out.Result.Terminated)
	event, ok := out.Result.Event()
	s.True(ok)
	s.Equal("ball_red", event)

	info, err := s.orchestrator.GetSession(s.ctx, &session.GetSessionInput{SessionID: id})
	s.Require().NoError(err)
	s.Equal(pickup.StateTerminated, info.Session.State)

	list, err := s.orchestrator.ListEpisodes(s.ctx, &session.ListEpisodesInput{SessionID: id})
	s.Require().NoError(err)
	s.Require().Len(list.Episodes, 1)
	s.True(list.Episodes[0].Terminated)
	s.Equal("ball_red", list.Episodes[0].Event)
	s.Equal(2, list.Episodes[0].Steps)
}

func (s *OrchestratorTestSuite) TestGetOverview() {
	id := s.create(12, 5, 11, 0)

	_, err := s.orchestrator.GetOverview(s.ctx, &session.GetOverviewInput{SessionID: id})
	s.True(errors.IsNotFound(err))

	s.reset(id)

	out, err := s.orchestrator.GetOverview(s.ctx, &session.GetOverviewInput{SessionID: id})
	s.Require().NoError(err)
	s.Require().NotNil(out.Room)
	s.Equal(6, len(out.Cells)+out.Skipped)
}

func (s *OrchestratorTestSuite) TestCloseSession() {
	id := s.create(12, 1, 2, 0)
	s.reset(id)
	s.step(id, entities.ActionMoveBack)

	out, err := s.orchestrator.CloseSession(s.ctx, &session.CloseSessionInput{SessionID: id})
	s.Require().NoError(err)
	s.Equal(1, out.EpisodesPlayed)

	_, err = s.orchestrator.GetLayout(s.ctx, &session.GetLayoutInput{SessionID: id})
	s.True(errors.IsNotFound(err))

	_, err = s.orchestrator.Reset(s.ctx, &session.ResetInput{SessionID: id})
	s.True(errors.IsNotFound(err))

	_, err = s.orchestrator.CloseSession(s.ctx, &session.CloseSessionInput{SessionID: id})
	s.True(errors.IsNotFound(err))

	// the open episode was logged on close and stays listable
	list, err := s.orchestrator.ListEpisodes(s.ctx, &session.ListEpisodesInput{SessionID: id})
	s.Require().NoError(err)
	s.Len(list.Episodes, 1)
}

func (s *OrchestratorTestSuite) TestConcurrentStepsOnOneSession() {
	id := s.create(12, 0, 8, 1000)
	s.reset(id)

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.orchestrator.Step(s.ctx, &session.StepInput{SessionID: id, Action: entities.ActionTurnLeft})
		}()
	}
	wg.Wait()

	info, err := s.orchestrator.GetSession(s.ctx, &session.GetSessionInput{SessionID: id})
	s.Require().NoError(err)
	s.Equal(workers, info.Session.Steps)
}

func (s *OrchestratorTestSuite) TestSessionsAreIsolated() {
	a := s.create(12, 3, 21, 0)
	b := s.create(12, 3, 21, 0)

	la := s.reset(a).Layout
	s.step(a, entities.ActionMoveForward)
	s.reset(a)

	lb := s.reset(b).Layout
	s.True(la.Equal(lb))

	infoB, err := s.orchestrator.GetSession(s.ctx, &session.GetSessionInput{SessionID: b})
	s.Require().NoError(err)
	s.Equal(1, infoB.Session.Episode)
	s.Equal(0, infoB.Session.Steps)
}

// failingLayoutRepo fails the first n saves, n set by failures
type failingLayoutRepo struct {
	*layouts.InMemoryRepository
	failures int
	saves    int
}

func (r *failingLayoutRepo) Save(ctx context.Context, input *layouts.SaveInput) (*layouts.SaveOutput, error) {
	r.saves++
	if r.saves <= r.failures {
		return nil, errors.Internal("layout store unavailable")
	}
	return r.InMemoryRepository.Save(ctx, input)
}

type failingEpisodeRepo struct {
	*episodes.InMemoryRepository
	records int
}

func (r *failingEpisodeRepo) Record(_ context.Context, _ *episodes.RecordInput) (*episodes.RecordOutput, error) {
	r.records++
	return nil, errors.Internal("episode store unavailable")
}

func (s *OrchestratorTestSuite) TestLayoutSaveFailureLeavesSessionIdle() {
	repo := &failingLayoutRepo{InMemoryRepository: s.layoutRepo, failures: 1}
	svc, err := session.NewOrchestrator(&session.Config{
		IDGenerator: idgen.NewSequential("sess"),
		Clock:       s.clock,
		LayoutRepo:  repo,
		EpisodeRepo: s.episodeRepo,
	})
	s.Require().NoError(err)
	s.orchestrator = svc
	id := s.create(12, 3, 11, 0)

	_, err = s.orchestrator.Reset(s.ctx, &session.ResetInput{SessionID: id})
	s.Require().Error(err)
	s.True(errors.IsInternal(err))

	info, err := s.orchestrator.GetSession(s.ctx, &session.GetSessionInput{SessionID: id})
	s.Require().NoError(err)
	s.Equal(pickup.StateIdle, info.Session.State)
	s.Equal(0, info.Session.Episode)

	_, err = s.orchestrator.Step(s.ctx, &session.StepInput{SessionID: id, Action: entities.ActionTurnLeft})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))

	_, err = s.orchestrator.GetLayout(s.ctx, &session.GetLayoutInput{SessionID: id})
	s.True(errors.IsNotFound(err))

	// the next reset replays the layout and saves it
	out := s.reset(id)
	s.False(out.Generated)
	s.Equal(1, out.Episode)
	s.Equal(2, repo.saves)

	stored, err := s.orchestrator.GetLayout(s.ctx, &session.GetLayoutInput{SessionID: id})
	s.Require().NoError(err)
	s.True(out.Layout.Equal(stored.Layout))
	s.Equal(int64(11), stored.Seed)

	s.step(id, entities.ActionTurnLeft)

	// saved once, later resets leave the store alone
	s.reset(id)
	s.Equal(2, repo.saves)
}

func (s *OrchestratorTestSuite) TestExistingLayoutCountsAsSaved() {
	id := s.create(12, 0, 5, 0)
	_, err := s.layoutRepo.Save(s.ctx, &layouts.SaveInput{
		SessionID: id,
		Size:      12,
		NumObjs:   0,
		Seed:      5,
		Layout: &entities.Layout{Entries: []entities.LayoutEntry{
			{Kind: entities.KindAgent, Pose: entities.Pose{Pos: entities.Vec3{X: 1, Z: 1}}},
		}},
	})
	s.Require().NoError(err)

	out := s.reset(id)
	s.True(out.Generated)
	s.Equal(1, out.Episode)
}

func (s *OrchestratorTestSuite) TestEpisodeRecordFailureIsNotFatal() {
	repo := &failingEpisodeRepo{InMemoryRepository: s.episodeRepo}
	svc, err := session.NewOrchestrator(&session.Config{
		IDGenerator: idgen.NewSequential("sess"),
		Clock:       s.clock,
		LayoutRepo:  s.layoutRepo,
		EpisodeRepo: repo,
	})
	s.Require().NoError(err)
	s.orchestrator = svc
	id := s.create(12, 0, 3, 3)
	s.reset(id)

	s.step(id, entities.ActionTurnLeft)
	s.step(id, entities.ActionTurnLeft)
	out := s.step(id, entities.ActionTurnLeft)
	s.True(out.Result.Truncated)
	s.Equal(1, repo.records)

	list, err := s.orchestrator.ListEpisodes(s.ctx, &session.ListEpisodesInput{SessionID: id})
	s.Require().NoError(err)
	s.Empty(list.Episodes)

	next := s.reset(id)
	s.Equal(2, next.Episode)
	s.Equal(1, repo.records)
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
