package sim_test

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/pickupworld/internal/engine"
	"github.com/KirkDiggler/pickupworld/internal/engine/sim"
	"github.com/KirkDiggler/pickupworld/internal/entities"
	"github.com/KirkDiggler/pickupworld/internal/errors"
)

type SimTestSuite struct {
	suite.Suite
	ctx context.Context
	sim *sim.Engine
}

func (s *SimTestSuite) SetupTest() {
	s.ctx = context.Background()

	var err error
	s.sim, err = sim.New(&sim.Config{
		Rand:                 rand.New(rand.NewSource(7)),
		MaxEpisodeSteps:      3,
		MaxPlacementAttempts: 50,
	})
	s.Require().NoError(err)
}

func (s *SimTestSuite) addRoom(size float64) {
	_, err := s.sim.AddRectRoom(s.ctx, &engine.AddRectRoomInput{
		MaxX:      size,
		MaxZ:      size,
		WallTex:   entities.WallTexBrick,
		FloorTex:  entities.FloorTexAsphalt,
		NoCeiling: true,
	})
	s.Require().NoError(err)
}

func (s *SimTestSuite) placeAt(spec entities.EntitySpec, x, z, dir float64) *entities.PlacedEntity {
	out, err := s.sim.PlaceEntity(s.ctx, &engine.PlaceEntityInput{
		Spec: spec,
		Pose: &entities.Pose{Pos: entities.Vec3{X: x, Z: z}, Dir: dir},
	})
	s.Require().NoError(err)
	return out.Entity
}

func (s *SimTestSuite) placeAgentAt(x, z, dir float64) {
	_, err := s.sim.PlaceAgent(s.ctx, &engine.PlaceAgentInput{
		Pose: &entities.Pose{Pos: entities.Vec3{X: x, Z: z}, Dir: dir},
	})
	s.Require().NoError(err)
}

func (s *SimTestSuite) step(action entities.Action) *engine.StepOutput {
	out, err := s.sim.Step(s.ctx, &engine.StepInput{Action: action})
	s.Require().NoError(err)
	return out
}

func (s *SimTestSuite) TestNewRejectsNegativeLimits() {
	_, err := sim.New(&sim.Config{MaxEpisodeSteps: -1})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *SimTestSuite) TestAddRectRoomRejectsEmptyExtents() {
	_, err := s.sim.AddRectRoom(s.ctx, &engine.AddRectRoomInput{MinX: 2, MaxX: 2, MaxZ: 4})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *SimTestSuite) TestPlaceWithoutRoom() {
	_, err := s.sim.PlaceEntity(s.ctx, &engine.PlaceEntityInput{Spec: entities.KindBall.Spec(entities.ColorRed)})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *SimTestSuite) TestPlaceRejectsAgentKind() {
	s.addRoom(4)
	_, err := s.sim.PlaceEntity(s.ctx, &engine.PlaceEntityInput{Spec: entities.KindAgent.Spec("")})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *SimTestSuite) TestRandomPlacementStaysInsideAndApart() {
	s.addRoom(12)

	var placed []*entities.PlacedEntity
	for _, kind := range []entities.ObjectKind{entities.KindBall, entities.KindBox, entities.KindKey, entities.KindBall} {
		out, err := s.sim.PlaceEntity(s.ctx, &engine.PlaceEntityInput{Spec: kind.Spec(entities.ColorBlue)})
		s.Require().NoError(err)
		placed = append(placed, out.Entity)
	}

	room := entities.Room{MaxX: 12, MaxZ: 12}
	for i, a := range placed {
		s.True(room.Contains(a.Pose.Pos, a.Spec.Radius), "entity %d outside room", i)
		s.GreaterOrEqual(a.Pose.Dir, -math.Pi)
		s.Less(a.Pose.Dir, math.Pi)
		for _, b := range placed[i+1:] {
			s.GreaterOrEqual(a.Pose.Pos.DistXZ(b.Pose.Pos), a.Spec.Radius+b.Spec.Radius)
		}
	}
	s.Equal("ent_1", placed[0].ID)
	s.Equal("ent_4", placed[3].ID)
}

func (s *SimTestSuite) TestRandomPlacementIsSeeded() {
	place := func() entities.Pose {
		e, err := sim.New(&sim.Config{Rand: rand.New(rand.NewSource(99))})
		s.Require().NoError(err)
		_, err = e.AddRectRoom(s.ctx, &engine.AddRectRoomInput{MaxX: 10, MaxZ: 10})
		s.Require().NoError(err)
		out, err := e.PlaceEntity(s.ctx, &engine.PlaceEntityInput{Spec: entities.KindKey.Spec(entities.ColorGrey)})
		s.Require().NoError(err)
		return out.Entity.Pose
	}

	s.Equal(place(), place())
}

func (s *SimTestSuite) TestExactPlacementOutOfBounds() {
	s.addRoom(4)
	_, err := s.sim.PlaceEntity(s.ctx, &engine.PlaceEntityInput{
		Spec: entities.KindBall.Spec(entities.ColorRed),
		Pose: &entities.Pose{Pos: entities.Vec3{X: 3.9, Z: 1}},
	})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *SimTestSuite) TestExactPlacementOverlap() {
	s.addRoom(4)
	s.placeAt(entities.KindBall.Spec(entities.ColorRed), 2, 2, 0)

	_, err := s.sim.PlaceAgent(s.ctx, &engine.PlaceAgentInput{
		Pose: &entities.Pose{Pos: entities.Vec3{X: 2.5, Z: 2}},
	})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *SimTestSuite) TestPlacementExhaustion() {
	s.addRoom(1)
	s.placeAt(entities.KindBall.Spec(entities.ColorRed), 0.5, 0.5, 0)

	_, err := s.sim.PlaceEntity(s.ctx, &engine.PlaceEntityInput{Spec: entities.KindBall.Spec(entities.ColorBlue)})
	s.Require().Error(err)
	s.True(errors.IsResourceExhausted(err))
	s.Equal(50, errors.GetMeta(err)["attempts"])
	s.Equal("ball", errors.GetMeta(err)["kind"])
}

func (s *SimTestSuite) TestPickupCarriesObjectInFront() {
	s.addRoom(4)
	s.placeAt(entities.KindBall.Spec(entities.ColorRed), 1.9, 1, 0)
	s.placeAgentAt(1, 1, 0)

	out := s.step(entities.ActionPickup)

	s.Equal("ball_red", out.Observation.Carrying)
	s.Empty(out.Observation.Entities)
	s.False(out.Terminated)
	s.Equal(0.0, out.Reward)
	s.Empty(out.Info)

	agent, err := s.sim.GetAgent(s.ctx, &engine.GetAgentInput{})
	s.Require().NoError(err)
	s.Require().NotNil(agent.Carrying)
	s.Equal("ent_1", agent.Carrying.ID)
	s.InDelta(entities.AgentHeight, agent.Carrying.Pose.Pos.Y, 1e-9)
}

func (s *SimTestSuite) TestPickupWithNothingInReach() {
	s.addRoom(4)
	s.placeAt(entities.KindBall.Spec(entities.ColorRed), 3, 3, 0)
	s.placeAgentAt(1, 1, 0)

	out := s.step(entities.ActionPickup)

	s.Empty(out.Observation.Carrying)
	s.Len(out.Observation.Entities, 1)
}

func (s *SimTestSuite) TestCarriedObjectFollowsAgent() {
	s.addRoom(4)
	s.placeAt(entities.KindKey.Spec(entities.ColorYellow), 1.7, 1, 0)
	s.placeAgentAt(1, 1, 0)

	s.step(entities.ActionPickup)
	s.step(entities.ActionMoveForward)

	agent, err := s.sim.GetAgent(s.ctx, &engine.GetAgentInput{})
	s.Require().NoError(err)
	s.InDelta(1.15, agent.Agent.Pose.Pos.X, 1e-9)
	s.Require().NotNil(agent.Carrying)
	s.InDelta(1.15, agent.Carrying.Pose.Pos.X, 1e-9)
}

func (s *SimTestSuite) TestMoveForward() {
	s.addRoom(4)
	s.placeAgentAt(1, 1, 0)

	out := s.step(entities.ActionMoveForward)

	s.InDelta(1.15, out.Observation.Agent.Pos.X, 1e-9)
	s.InDelta(1.0, out.Observation.Agent.Pos.Z, 1e-9)
	s.Equal(1, out.Observation.StepCount)
}

func (s *SimTestSuite) TestMoveBlockedByWall() {
	s.addRoom(4)
	s.placeAgentAt(3.5, 1, 0)

	out := s.step(entities.ActionMoveForward)

	s.InDelta(3.5, out.Observation.Agent.Pos.X, 1e-9)
}

func (s *SimTestSuite) TestTurnLeftAndRight() {
	s.addRoom(4)
	s.placeAgentAt(2, 2, 0)

	out := s.step(entities.ActionTurnLeft)
	s.InDelta(math.Pi/12, out.Observation.Agent.Dir, 1e-9)

	out = s.step(entities.ActionTurnRight)
	s.InDelta(0, out.Observation.Agent.Dir, 1e-9)
}

func (s *SimTestSuite) TestTruncatesAtStepLimit() {
	s.addRoom(4)
	s.placeAgentAt(2, 2, 0)

	s.False(s.step(entities.ActionTurnLeft).Truncated)
	s.False(s.step(entities.ActionTurnLeft).Truncated)
	s.True(s.step(entities.ActionTurnLeft).Truncated)
}

func (s *SimTestSuite) TestStepValidation() {
	_, err := s.sim.Step(s.ctx, &engine.StepInput{Action: entities.ActionPickup})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))

	s.addRoom(4)
	s.placeAgentAt(2, 2, 0)

	_, err = s.sim.Step(s.ctx, &engine.StepInput{Action: entities.Action(9)})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *SimTestSuite) TestClearWorldResets() {
	s.addRoom(4)
	s.placeAt(entities.KindBall.Spec(entities.ColorRed), 3, 3, 0)
	s.placeAgentAt(1, 1, 0)
	s.step(entities.ActionTurnLeft)

	_, err := s.sim.ClearWorld(s.ctx, &engine.ClearWorldInput{})
	s.Require().NoError(err)

	list, err := s.sim.ListEntities(s.ctx, &engine.ListEntitiesInput{})
	s.Require().NoError(err)
	s.Empty(list.Objects)
	s.Nil(list.Agent)

	s.addRoom(4)
	ent := s.placeAt(entities.KindBox.Spec(entities.ColorGreen), 3, 3, 0)
	s.Equal("ent_1", ent.ID)
	s.placeAgentAt(1, 1, 0)
	s.Equal(1, s.step(entities.ActionTurnLeft).Observation.StepCount)
}

func TestSimTestSuite(t *testing.T) {
	suite.Run(t, new(SimTestSuite))
}
