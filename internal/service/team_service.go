package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/andreevsm/hackhub/internal/db"
	"github.com/andreevsm/hackhub/internal/model"
	"github.com/andreevsm/hackhub/internal/repository"
	"github.com/andreevsm/hackhub/pkg/logger"
)

type TeamService struct {
	tx db.Transactor

	teams      repository.TeamRepository
	members    repository.MembershipRepository
	hackathons repository.HackathonRepository
}

func NewTeamService(tx db.Transactor) *TeamService {
	return &TeamService{tx: tx}
}

// CreateTeam registers a team in the active hackathon and makes the creator
// an approved leader, atomically.
func (t *TeamService) CreateTeam(ctx context.Context, creatorID, name string) (*model.Team, *Error) {
	l := logger.FromContext(ctx)

	team := &model.Team{}

	err := t.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		hackathon, err := t.hackathons.GetActive(txCtx)
		if errors.Is(err, repository.ErrNotFound) {
			l.Warn("no active hackathon", zap.String("team_name", name))
			return NewError(ErrorCodeNoActiveHackathon, "no active hackathon")
		}
		if err != nil {
			l.Error("failed to get active hackathon", zap.Error(err))
			return NewError(ErrorCodeUnspecified, "failed to get active hackathon")
		}

		repoTeam := &repository.Team{
			ID:                uuid.NewString(),
			HackathonID:       hackathon.ID,
			Name:              name,
			LookingForMembers: true,
			CreatedBy:         creatorID,
		}

		if err = t.teams.Create(txCtx, repoTeam); errors.Is(err, repository.ErrAlreadyExists) {
			l.Warn("team already exists", zap.String("team_name", name))
			return NewError(ErrorCodeAlreadyExists, "team name already taken")
		} else if err != nil {
			l.Error("failed to create team", zap.String("team_name", name), zap.Error(err))
			return NewError(ErrorCodeUnspecified, "failed to create team")
		}

		if err = t.members.Create(txCtx, &repository.Membership{
			TeamID:     repoTeam.ID,
			ActorID:    creatorID,
			IsLeader:   true,
			IsApproved: true,
		}); err != nil {
			l.Error("failed to create leader membership",
				zap.String("team_id", repoTeam.ID),
				zap.String("actor_id", creatorID),
				zap.Error(err))
			return NewError(ErrorCodeUnspecified, "failed to create leader membership")
		}

		team.ID = repoTeam.ID
		team.HackathonID = repoTeam.HackathonID
		team.Name = repoTeam.Name
		team.LookingForMembers = repoTeam.LookingForMembers
		team.CreatedBy = repoTeam.CreatedBy

		return nil
	})

	if err != nil {
		var res *Error
		if errors.As(err, &res) {
			return nil, res
		}
		return nil, NewError(ErrorCodeUnspecified, "transaction failed")
	}

	return team, nil
}

func (t *TeamService) GetTeam(ctx context.Context, id string) (*model.Team, *Error) {
	repoTeam, err := t.teams.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NewError(ErrorCodeNotFound, "team not found")
	}
	if err != nil {
		return nil, NewError(ErrorCodeUnspecified, "failed to get team")
	}

	rows, err := t.members.ListByTeam(ctx, id)
	if err != nil {
		return nil, NewError(ErrorCodeUnspecified, "failed to get team members")
	}

	members := make([]*model.TeamMember, 0, len(rows))
	for _, row := range rows {
		members = append(members, &model.TeamMember{
			ActorID:    row.ActorID,
			Email:      row.Email,
			IsLeader:   row.IsLeader,
			IsApproved: row.IsApproved,
		})
	}

	return &model.Team{
		ID:                repoTeam.ID,
		HackathonID:       repoTeam.HackathonID,
		Name:              repoTeam.Name,
		LookingForMembers: repoTeam.LookingForMembers,
		CreatedBy:         repoTeam.CreatedBy,
		Members:           members,
	}, nil
}

// ListTeams returns the active hackathon's teams. No active hackathon means
// an empty listing, not an error.
func (t *TeamService) ListTeams(ctx context.Context) ([]*model.Team, *Error) {
	hackathon, err := t.hackathons.GetActive(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return []*model.Team{}, nil
	}
	if err != nil {
		return nil, NewError(ErrorCodeUnspecified, "failed to get active hackathon")
	}

	repoTeams, err := t.teams.List(ctx, hackathon.ID)
	if err != nil {
		return nil, NewError(ErrorCodeUnspecified, "failed to list teams")
	}

	teams := make([]*model.Team, 0, len(repoTeams))
	for _, rt := range repoTeams {
		teams = append(teams, &model.Team{
			ID:                rt.ID,
			HackathonID:       rt.HackathonID,
			Name:              rt.Name,
			LookingForMembers: rt.LookingForMembers,
			CreatedBy:         rt.CreatedBy,
		})
	}

	return teams, nil
}

func (t *TeamService) EditTeam(ctx context.Context, id string, name *string, lookingForMembers *bool) (*model.Team, *Error) {
	repoTeam, err := t.teams.Patch(ctx, &repository.TeamPatch{
		ID:                id,
		Name:              name,
		LookingForMembers: lookingForMembers,
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NewError(ErrorCodeNotFound, "team not found")
	}
	if err != nil {
		return nil, NewError(ErrorCodeUnspecified, "failed to update team")
	}

	return &model.Team{
		ID:                repoTeam.ID,
		HackathonID:       repoTeam.HackathonID,
		Name:              repoTeam.Name,
		LookingForMembers: repoTeam.LookingForMembers,
		CreatedBy:         repoTeam.CreatedBy,
	}, nil
}

// JoinTeam files a join request: the membership starts unapproved and
// without leadership, waiting on a leader or admin.
func (t *TeamService) JoinTeam(ctx context.Context, teamID, actorID string) *Error {
	l := logger.FromContext(ctx)

	if _, err := t.teams.Get(ctx, teamID); errors.Is(err, repository.ErrNotFound) {
		return NewError(ErrorCodeNotFound, "team not found")
	} else if err != nil {
		return NewError(ErrorCodeUnspecified, "failed to get team")
	}

	err := t.members.Create(ctx, &repository.Membership{
		TeamID:     teamID,
		ActorID:    actorID,
		IsLeader:   false,
		IsApproved: false,
	})
	if errors.Is(err, repository.ErrAlreadyExists) {
		l.Warn("membership already exists",
			zap.String("team_id", teamID),
			zap.String("actor_id", actorID))
		return NewError(ErrorCodeAlreadyExists, "join request already filed")
	}
	if err != nil {
		l.Error("failed to create membership",
			zap.String("team_id", teamID),
			zap.String("actor_id", actorID),
			zap.Error(err))
		return NewError(ErrorCodeUnspecified, "failed to create membership")
	}

	return nil
}

func (t *TeamService) ApproveMember(ctx context.Context, teamID, actorID string) *Error {
	err := t.members.Approve(ctx, teamID, actorID)
	if errors.Is(err, repository.ErrNotFound) {
		return NewError(ErrorCodeNotFound, "membership not found")
	}
	if err != nil {
		return NewError(ErrorCodeUnspecified, "failed to approve member")
	}
	return nil
}

func (t *TeamService) RemoveMember(ctx context.Context, teamID, actorID string) *Error {
	err := t.members.Delete(ctx, teamID, actorID)
	if errors.Is(err, repository.ErrNotFound) {
		return NewError(ErrorCodeNotFound, "membership not found")
	}
	if err != nil {
		return NewError(ErrorCodeUnspecified, "failed to remove member")
	}
	return nil
}

func (t *TeamService) WithTeamRepo(r repository.TeamRepository) *TeamService {
	t.teams = r
	return t
}

func (t *TeamService) WithMembershipRepo(r repository.MembershipRepository) *TeamService {
	t.members = r
	return t
}

func (t *TeamService) WithHackathonRepo(r repository.HackathonRepository) *TeamService {
	t.hackathons = r
	return t
}
