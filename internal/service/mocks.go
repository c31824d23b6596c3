package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/andreevsm/hackhub/internal/repository"
)

type MockTransactor struct {
	mock.Mock
}

func (m *MockTransactor) WithinTransaction(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Get(ctx context.Context, actorID string) (*repository.Profile, error) {
	args := m.Called(ctx, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Profile), args.Error(1)
}

func (m *MockProfileRepository) GetByEmail(ctx context.Context, email string) (*repository.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Profile), args.Error(1)
}

func (m *MockProfileRepository) Upsert(ctx context.Context, profile *repository.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) SetAdmin(ctx context.Context, actorID string, isAdmin bool) (*repository.Profile, error) {
	args := m.Called(ctx, actorID, isAdmin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Profile), args.Error(1)
}

type MockHackathonRepository struct {
	mock.Mock
}

func (m *MockHackathonRepository) Create(ctx context.Context, hackathon *repository.Hackathon) error {
	args := m.Called(ctx, hackathon)
	return args.Error(0)
}

func (m *MockHackathonRepository) Get(ctx context.Context, id string) (*repository.Hackathon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Hackathon), args.Error(1)
}

func (m *MockHackathonRepository) GetActive(ctx context.Context) (*repository.Hackathon, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Hackathon), args.Error(1)
}

func (m *MockHackathonRepository) SetActive(ctx context.Context, id string, isActive bool) (*repository.Hackathon, error) {
	args := m.Called(ctx, id, isActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Hackathon), args.Error(1)
}

type MockTeamRepository struct {
	mock.Mock
}

func (m *MockTeamRepository) Create(ctx context.Context, team *repository.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}

func (m *MockTeamRepository) Get(ctx context.Context, id string) (*repository.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Team), args.Error(1)
}

func (m *MockTeamRepository) List(ctx context.Context, hackathonID string) ([]*repository.Team, error) {
	args := m.Called(ctx, hackathonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repository.Team), args.Error(1)
}

func (m *MockTeamRepository) Patch(ctx context.Context, patch *repository.TeamPatch) (*repository.Team, error) {
	args := m.Called(ctx, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Team), args.Error(1)
}

type MockMembershipRepository struct {
	mock.Mock
}

func (m *MockMembershipRepository) Create(ctx context.Context, membership *repository.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockMembershipRepository) Get(ctx context.Context, teamID, actorID string) (*repository.Membership, error) {
	args := m.Called(ctx, teamID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Membership), args.Error(1)
}

func (m *MockMembershipRepository) ListByTeam(ctx context.Context, teamID string) ([]*repository.TeamMemberRow, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repository.TeamMemberRow), args.Error(1)
}

func (m *MockMembershipRepository) Approve(ctx context.Context, teamID, actorID string) error {
	args := m.Called(ctx, teamID, actorID)
	return args.Error(0)
}

func (m *MockMembershipRepository) Delete(ctx context.Context, teamID, actorID string) error {
	args := m.Called(ctx, teamID, actorID)
	return args.Error(0)
}

func (m *MockMembershipRepository) DemoteLeaders(ctx context.Context, teamID string) error {
	args := m.Called(ctx, teamID)
	return args.Error(0)
}

func (m *MockMembershipRepository) Promote(ctx context.Context, teamID, actorID string) error {
	args := m.Called(ctx, teamID, actorID)
	return args.Error(0)
}

type MockJudgeRepository struct {
	mock.Mock
}

func (m *MockJudgeRepository) Create(ctx context.Context, judge *repository.Judge) error {
	args := m.Called(ctx, judge)
	return args.Error(0)
}

func (m *MockJudgeRepository) Get(ctx context.Context, actorID, hackathonID string) (*repository.Judge, error) {
	args := m.Called(ctx, actorID, hackathonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Judge), args.Error(1)
}

type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) Create(ctx context.Context, project *repository.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) Get(ctx context.Context, id string) (*repository.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Project), args.Error(1)
}

func (m *MockProjectRepository) List(ctx context.Context, hackathonID string) ([]*repository.Project, error) {
	args := m.Called(ctx, hackathonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repository.Project), args.Error(1)
}

type MockScoreRepository struct {
	mock.Mock
}

func (m *MockScoreRepository) Upsert(ctx context.Context, score *repository.Score) error {
	args := m.Called(ctx, score)
	return args.Error(0)
}

func (m *MockScoreRepository) ListByProject(ctx context.Context, projectID string) ([]*repository.Score, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repository.Score), args.Error(1)
}
