package policy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/andreevsm/hackhub/internal/repository"
)

type mockProfileRepo struct {
	mock.Mock
}

func (m *mockProfileRepo) Get(ctx context.Context, actorID string) (*repository.Profile, error) {
	args := m.Called(ctx, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Profile), args.Error(1)
}

func (m *mockProfileRepo) GetByEmail(ctx context.Context, email string) (*repository.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Profile), args.Error(1)
}

func (m *mockProfileRepo) Upsert(ctx context.Context, profile *repository.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *mockProfileRepo) SetAdmin(ctx context.Context, actorID string, isAdmin bool) (*repository.Profile, error) {
	args := m.Called(ctx, actorID, isAdmin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Profile), args.Error(1)
}

type mockMembershipRepo struct {
	mock.Mock
}

func (m *mockMembershipRepo) Create(ctx context.Context, membership *repository.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *mockMembershipRepo) Get(ctx context.Context, teamID, actorID string) (*repository.Membership, error) {
	args := m.Called(ctx, teamID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Membership), args.Error(1)
}

func (m *mockMembershipRepo) ListByTeam(ctx context.Context, teamID string) ([]*repository.TeamMemberRow, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repository.TeamMemberRow), args.Error(1)
}

func (m *mockMembershipRepo) Approve(ctx context.Context, teamID, actorID string) error {
	args := m.Called(ctx, teamID, actorID)
	return args.Error(0)
}

func (m *mockMembershipRepo) Delete(ctx context.Context, teamID, actorID string) error {
	args := m.Called(ctx, teamID, actorID)
	return args.Error(0)
}

func (m *mockMembershipRepo) DemoteLeaders(ctx context.Context, teamID string) error {
	args := m.Called(ctx, teamID)
	return args.Error(0)
}

func (m *mockMembershipRepo) Promote(ctx context.Context, teamID, actorID string) error {
	args := m.Called(ctx, teamID, actorID)
	return args.Error(0)
}

type mockJudgeRepo struct {
	mock.Mock
}

func (m *mockJudgeRepo) Create(ctx context.Context, judge *repository.Judge) error {
	args := m.Called(ctx, judge)
	return args.Error(0)
}

func (m *mockJudgeRepo) Get(ctx context.Context, actorID, hackathonID string) (*repository.Judge, error) {
	args := m.Called(ctx, actorID, hackathonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Judge), args.Error(1)
}

func TestStoreRoleLookup_IsAdmin(t *testing.T) {
	tests := []struct {
		name        string
		setupMocks  func(*mockProfileRepo)
		expected    bool
		expectError bool
	}{
		{
			name: "admin profile",
			setupMocks: func(pr *mockProfileRepo) {
				pr.On("Get", mock.Anything, "actor-1").Return(&repository.Profile{ActorID: "actor-1", IsAdmin: true}, nil)
			},
			expected: true,
		},
		{
			name: "non-admin profile",
			setupMocks: func(pr *mockProfileRepo) {
				pr.On("Get", mock.Anything, "actor-1").Return(&repository.Profile{ActorID: "actor-1"}, nil)
			},
			expected: false,
		},
		{
			// Absence of a row means no privilege, not a failure.
			name: "missing profile is not an error",
			setupMocks: func(pr *mockProfileRepo) {
				pr.On("Get", mock.Anything, "actor-1").Return(nil, repository.ErrNotFound)
			},
			expected: false,
		},
		{
			name: "store failure propagates",
			setupMocks: func(pr *mockProfileRepo) {
				pr.On("Get", mock.Anything, "actor-1").Return(nil, errors.New("connection refused"))
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profiles := new(mockProfileRepo)
			tt.setupMocks(profiles)

			lookup := NewRoleLookup(profiles, new(mockMembershipRepo), new(mockJudgeRepo))

			got, err := lookup.IsAdmin(context.Background(), "actor-1")

			if tt.expectError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, got)
			}

			profiles.AssertExpectations(t)
		})
	}
}

func TestStoreRoleLookup_IsTeamLeader(t *testing.T) {
	tests := []struct {
		name       string
		membership *repository.Membership
		err        error
		expected   bool
	}{
		{
			name:       "approved leader",
			membership: &repository.Membership{IsLeader: true, IsApproved: true},
			expected:   true,
		},
		{
			name:       "unapproved leader row grants nothing",
			membership: &repository.Membership{IsLeader: true, IsApproved: false},
			expected:   false,
		},
		{
			name:       "approved non-leader",
			membership: &repository.Membership{IsLeader: false, IsApproved: true},
			expected:   false,
		},
		{
			name:     "no membership row",
			err:      repository.ErrNotFound,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			members := new(mockMembershipRepo)
			members.On("Get", mock.Anything, "team-1", "actor-1").Return(tt.membership, tt.err)

			lookup := NewRoleLookup(new(mockProfileRepo), members, new(mockJudgeRepo))

			got, err := lookup.IsTeamLeader(context.Background(), "actor-1", "team-1")

			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestStoreRoleLookup_IsJudge(t *testing.T) {
	judges := new(mockJudgeRepo)
	judges.On("Get", mock.Anything, "actor-1", "hack-1").Return(&repository.Judge{
		ActorID:     "actor-1",
		HackathonID: "hack-1",
	}, nil)
	judges.On("Get", mock.Anything, "actor-2", "hack-1").Return(nil, repository.ErrNotFound)

	lookup := NewRoleLookup(new(mockProfileRepo), new(mockMembershipRepo), judges)

	got, err := lookup.IsJudge(context.Background(), "actor-1", "hack-1")
	require.NoError(t, err)
	assert.True(t, got)

	got, err = lookup.IsJudge(context.Background(), "actor-2", "hack-1")
	require.NoError(t, err)
	assert.False(t, got)
}
