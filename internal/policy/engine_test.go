package policy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/andreevsm/hackhub/internal/model"
)

type MockRoleLookup struct {
	mock.Mock
}

func (m *MockRoleLookup) IsAdmin(ctx context.Context, actorID string) (bool, error) {
	args := m.Called(ctx, actorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRoleLookup) IsTeamLeader(ctx context.Context, actorID, teamID string) (bool, error) {
	args := m.Called(ctx, actorID, teamID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRoleLookup) IsApprovedMember(ctx context.Context, actorID, teamID string) (bool, error) {
	args := m.Called(ctx, actorID, teamID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRoleLookup) IsJudge(ctx context.Context, actorID, hackathonID string) (bool, error) {
	args := m.Called(ctx, actorID, hackathonID)
	return args.Bool(0), args.Error(1)
}

var (
	anonymous = model.Actor{}
	member    = model.Actor{ID: "actor-1", Email: "john@hackhub.dev"}
	outsider  = model.Actor{ID: "actor-2", Email: "eve@gmail.com"}
)

func newTestEngine(setup func(*MockRoleLookup)) (*Engine, *MockRoleLookup) {
	roles := new(MockRoleLookup)
	if setup != nil {
		setup(roles)
	}
	return NewEngine(NewAllowList([]string{"hackhub.dev"}), roles), roles
}

func TestEngine_Decide(t *testing.T) {
	tests := []struct {
		name       string
		actor      model.Actor
		action     Action
		resource   Resource
		setupRoles func(*MockRoleLookup)
		expected   Verdict
	}{
		{
			name:     "anonymous actor on protected action requires auth",
			actor:    anonymous,
			action:   ActionTeamEdit,
			resource: Resource{TeamID: "team-1"},
			expected: RequiresAuth(),
		},
		{
			name:     "anonymous actor on admin action requires auth",
			actor:    anonymous,
			action:   ActionAdminAny,
			expected: RequiresAuth(),
		},
		{
			name:     "anonymous actor may read public team listing",
			actor:    anonymous,
			action:   ActionTeamList,
			expected: Allow(),
		},
		{
			name:     "anonymous actor may read public FAQ",
			actor:    anonymous,
			action:   ActionFAQRead,
			expected: Allow(),
		},
		{
			name:     "rejected domain denies any action",
			actor:    outsider,
			action:   ActionTeamJoin,
			resource: Resource{TeamID: "team-1"},
			expected: Deny(ReasonUnauthorizedDomain),
		},
		{
			// The domain check precedes role checks: being an admin in the
			// store never bypasses the allow-list, so the lookup must not
			// even run.
			name:     "rejected domain denies even a stored admin",
			actor:    outsider,
			action:   ActionAdminAny,
			expected: Deny(ReasonUnauthorizedDomain),
		},
		{
			name:   "admin action allowed for admin",
			actor:  member,
			action: ActionAdminAny,
			setupRoles: func(roles *MockRoleLookup) {
				roles.On("IsAdmin", mock.Anything, "actor-1").Return(true, nil)
			},
			expected: Allow(),
		},
		{
			name:   "admin action denied for non-admin",
			actor:  member,
			action: ActionAdminAny,
			setupRoles: func(roles *MockRoleLookup) {
				roles.On("IsAdmin", mock.Anything, "actor-1").Return(false, nil)
			},
			expected: Deny(ReasonNotAdmin),
		},
		{
			name:     "team edit allowed for approved leader",
			actor:    member,
			action:   ActionTeamEdit,
			resource: Resource{TeamID: "team-1"},
			setupRoles: func(roles *MockRoleLookup) {
				roles.On("IsTeamLeader", mock.Anything, "actor-1", "team-1").Return(true, nil)
			},
			expected: Allow(),
		},
		{
			name:     "team edit allowed for global admin",
			actor:    member,
			action:   ActionTeamEdit,
			resource: Resource{TeamID: "team-1"},
			setupRoles: func(roles *MockRoleLookup) {
				roles.On("IsTeamLeader", mock.Anything, "actor-1", "team-1").Return(false, nil)
				roles.On("IsAdmin", mock.Anything, "actor-1").Return(true, nil)
			},
			expected: Allow(),
		},
		{
			name:     "team edit denied for plain member",
			actor:    member,
			action:   ActionTeamEdit,
			resource: Resource{TeamID: "team-1"},
			setupRoles: func(roles *MockRoleLookup) {
				roles.On("IsTeamLeader", mock.Anything, "actor-1", "team-1").Return(false, nil)
				roles.On("IsAdmin", mock.Anything, "actor-1").Return(false, nil)
			},
			expected: Deny(ReasonNotTeamLeader),
		},
		{
			name:     "manage members denied for plain member",
			actor:    member,
			action:   ActionTeamManageMembers,
			resource: Resource{TeamID: "team-1"},
			setupRoles: func(roles *MockRoleLookup) {
				roles.On("IsTeamLeader", mock.Anything, "actor-1", "team-1").Return(false, nil)
				roles.On("IsAdmin", mock.Anything, "actor-1").Return(false, nil)
			},
			expected: Deny(ReasonNotTeamLeader),
		},
		{
			name:     "join allowed for any domain-valid actor",
			actor:    member,
			action:   ActionTeamJoin,
			resource: Resource{TeamID: "team-1"},
			expected: Allow(),
		},
		{
			name:     "team create allowed for any domain-valid actor",
			actor:    member,
			action:   ActionTeamCreate,
			expected: Allow(),
		},
		{
			name:     "judging submit allowed for appointed judge",
			actor:    member,
			action:   ActionJudgingSubmit,
			resource: Resource{HackathonID: "hack-1"},
			setupRoles: func(roles *MockRoleLookup) {
				roles.On("IsJudge", mock.Anything, "actor-1", "hack-1").Return(true, nil)
			},
			expected: Allow(),
		},
		{
			name:     "judging submit denied for non-judge",
			actor:    member,
			action:   ActionJudgingSubmit,
			resource: Resource{HackathonID: "hack-1"},
			setupRoles: func(roles *MockRoleLookup) {
				roles.On("IsJudge", mock.Anything, "actor-1", "hack-1").Return(false, nil)
			},
			expected: Deny(ReasonNotJudge),
		},
		{
			name:     "unmatched read falls through to allow",
			actor:    member,
			action:   ActionTeamRead,
			resource: Resource{TeamID: "team-1"},
			expected: Allow(),
		},
		{
			name:     "unmatched write denies",
			actor:    member,
			action:   Action("team:archive"),
			resource: Resource{TeamID: "team-1"},
			expected: Deny(ReasonNotAllowed),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, roles := newTestEngine(tt.setupRoles)

			verdict := engine.Decide(context.Background(), tt.actor, tt.action, tt.resource)

			assert.Equal(t, tt.expected, verdict)
			roles.AssertExpectations(t)
		})
	}
}

func TestEngine_Decide_FailsClosed(t *testing.T) {
	storeErr := errors.New("connection refused")

	tests := []struct {
		name       string
		action     Action
		resource   Resource
		setupRoles func(*MockRoleLookup)
	}{
		{
			name:   "admin lookup failure",
			action: ActionAdminAny,
			setupRoles: func(roles *MockRoleLookup) {
				roles.On("IsAdmin", mock.Anything, "actor-1").Return(false, storeErr)
			},
		},
		{
			name:     "leader lookup failure",
			action:   ActionTeamEdit,
			resource: Resource{TeamID: "team-1"},
			setupRoles: func(roles *MockRoleLookup) {
				roles.On("IsTeamLeader", mock.Anything, "actor-1", "team-1").Return(false, storeErr)
			},
		},
		{
			// A failing leader lookup denies immediately; the admin
			// fallback is never consulted.
			name:     "leader lookup failure skips admin fallback",
			action:   ActionTeamManageMembers,
			resource: Resource{TeamID: "team-1"},
			setupRoles: func(roles *MockRoleLookup) {
				roles.On("IsTeamLeader", mock.Anything, "actor-1", "team-1").Return(false, storeErr)
			},
		},
		{
			name:     "judge lookup failure",
			action:   ActionJudgingSubmit,
			resource: Resource{HackathonID: "hack-1"},
			setupRoles: func(roles *MockRoleLookup) {
				roles.On("IsJudge", mock.Anything, "actor-1", "hack-1").Return(false, storeErr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, roles := newTestEngine(tt.setupRoles)

			verdict := engine.Decide(context.Background(), member, tt.action, tt.resource)

			assert.Equal(t, Deny(ReasonLookupFailed), verdict)
			roles.AssertExpectations(t)
		})
	}
}

func TestEngine_Decide_Idempotent(t *testing.T) {
	engine, roles := newTestEngine(func(roles *MockRoleLookup) {
		roles.On("IsTeamLeader", mock.Anything, "actor-1", "team-1").Return(true, nil).Twice()
	})

	res := Resource{TeamID: "team-1"}

	first := engine.Decide(context.Background(), member, ActionTeamEdit, res)
	second := engine.Decide(context.Background(), member, ActionTeamEdit, res)

	assert.Equal(t, first, second)
	// No caching: the role is re-resolved on every call.
	roles.AssertExpectations(t)
}
