package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/dsfl/fantasy-league/internal/domain/match"
	"github.com/dsfl/fantasy-league/internal/domain/team"
	"github.com/dsfl/fantasy-league/internal/infrastructure/repository/memory"
)

type matchRepoMock struct {
	mock.Mock
}

func (m *matchRepoMock) ListByDate(ctx context.Context) ([]match.Match, error) {
	args := m.Called(ctx)
	matches, _ := args.Get(0).([]match.Match)
	return matches, args.Error(1)
}

func (m *matchRepoMock) GetByID(ctx context.Context, id int64) (match.Match, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(match.Match), args.Bool(1), args.Error(2)
}

func (m *matchRepoMock) GetByName(ctx context.Context, name string) (match.Match, bool, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(match.Match), args.Bool(1), args.Error(2)
}

func (m *matchRepoMock) Create(ctx context.Context, in match.Match) (match.Match, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(match.Match), args.Error(1)
}

func (m *matchRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type teamRepoMock struct {
	mock.Mock
}

func (m *teamRepoMock) List(ctx context.Context) ([]team.Team, error) {
	args := m.Called(ctx)
	teams, _ := args.Get(0).([]team.Team)
	return teams, args.Error(1)
}

func (m *teamRepoMock) GetByID(ctx context.Context, id int64) (team.Team, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(team.Team), args.Bool(1), args.Error(2)
}

func (m *teamRepoMock) GetByUserID(ctx context.Context, userID int64) (team.Team, bool, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(team.Team), args.Bool(1), args.Error(2)
}

func (m *teamRepoMock) Create(ctx context.Context, in team.Team) (team.Team, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(team.Team), args.Error(1)
}

func (m *teamRepoMock) ReplaceTotalPoints(ctx context.Context, totals map[int64]int) error {
	args := m.Called(ctx, totals)
	return args.Error(0)
}

func TestPointsService_RecomputeAllTeamPoints_ListMatchesFails(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dbErr := errors.New("connection reset")

	matchRepo := &matchRepoMock{}
	matchRepo.On("ListByDate", mock.Anything).Return(nil, dbErr).Once()

	service := NewPointsService(matchRepo, memory.NewTeamRepository(), memory.NewRosterRepository(), memory.NewPerformanceRepository())

	_, err := service.RecomputeAllTeamPoints(ctx)
	if !errors.Is(err, dbErr) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
	matchRepo.AssertExpectations(t)
}

func TestPointsService_RecomputeAllTeamPoints_ReplaceTotalsFails(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dbErr := errors.New("serialization failure")

	teamRepo := &teamRepoMock{}
	teamRepo.On("List", mock.Anything).Return([]team.Team{{ID: 1, UserID: 1, Name: "Alpha"}}, nil).Once()
	teamRepo.On("ReplaceTotalPoints", mock.Anything, map[int64]int{1: 0}).Return(dbErr).Once()

	service := NewPointsService(memory.NewMatchRepository(), teamRepo, memory.NewRosterRepository(), memory.NewPerformanceRepository())

	_, err := service.RecomputeAllTeamPoints(ctx)
	if !errors.Is(err, dbErr) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
	teamRepo.AssertExpectations(t)
}
