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

type AdminService struct {
	tx db.Transactor

	profiles   repository.ProfileRepository
	hackathons repository.HackathonRepository
	members    repository.MembershipRepository
	judges     repository.JudgeRepository
}

func NewAdminService(tx db.Transactor) *AdminService {
	return &AdminService{tx: tx}
}

func (a *AdminService) CreateHackathon(ctx context.Context, name string) (*model.Hackathon, *Error) {
	repoHackathon := &repository.Hackathon{
		ID:   uuid.NewString(),
		Name: name,
	}

	err := a.hackathons.Create(ctx, repoHackathon)
	if errors.Is(err, repository.ErrAlreadyExists) {
		return nil, NewError(ErrorCodeAlreadyExists, "hackathon already exists")
	}
	if err != nil {
		return nil, NewError(ErrorCodeUnspecified, "failed to create hackathon")
	}

	return &model.Hackathon{
		ID:   repoHackathon.ID,
		Name: repoHackathon.Name,
	}, nil
}

func (a *AdminService) SetHackathonActive(ctx context.Context, id string, isActive bool) (*model.Hackathon, *Error) {
	repoHackathon, err := a.hackathons.SetActive(ctx, id, isActive)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NewError(ErrorCodeNotFound, "hackathon not found")
	}
	if err != nil {
		return nil, NewError(ErrorCodeUnspecified, "failed to update hackathon")
	}

	return &model.Hackathon{
		ID:       repoHackathon.ID,
		Name:     repoHackathon.Name,
		IsActive: repoHackathon.IsActive,
	}, nil
}

func (a *AdminService) SetAdmin(ctx context.Context, actorID string, isAdmin bool) (*model.Profile, *Error) {
	profile, err := a.profiles.SetAdmin(ctx, actorID, isAdmin)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NewError(ErrorCodeNotFound, "profile not found")
	}
	if err != nil {
		return nil, NewError(ErrorCodeUnspecified, "failed to update profile")
	}

	return &model.Profile{
		ActorID: profile.ActorID,
		Email:   profile.Email,
		IsAdmin: profile.IsAdmin,
	}, nil
}

func (a *AdminService) AppointJudge(ctx context.Context, actorID, hackathonID string) *Error {
	err := a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, err := a.hackathons.Get(txCtx, hackathonID); errors.Is(err, repository.ErrNotFound) {
			return NewError(ErrorCodeNotFound, "hackathon not found")
		} else if err != nil {
			return NewError(ErrorCodeUnspecified, "failed to get hackathon")
		}

		err := a.judges.Create(txCtx, &repository.Judge{
			ActorID:     actorID,
			HackathonID: hackathonID,
		})
		if errors.Is(err, repository.ErrAlreadyExists) {
			return NewError(ErrorCodeAlreadyExists, "already a judge for this hackathon")
		}
		if err != nil {
			return NewError(ErrorCodeUnspecified, "failed to appoint judge")
		}

		return nil
	})

	if err != nil {
		var res *Error
		if errors.As(err, &res) {
			return res
		}
		return NewError(ErrorCodeUnspecified, "transaction failed")
	}
	return nil
}

// AddMember creates a pre-approved membership on behalf of an admin.
func (a *AdminService) AddMember(ctx context.Context, teamID, actorID string) *Error {
	err := a.members.Create(ctx, &repository.Membership{
		TeamID:     teamID,
		ActorID:    actorID,
		IsLeader:   false,
		IsApproved: true,
	})
	if errors.Is(err, repository.ErrAlreadyExists) {
		return NewError(ErrorCodeAlreadyExists, "membership already exists")
	}
	if err != nil {
		return NewError(ErrorCodeUnspecified, "failed to add member")
	}
	return nil
}

// ReassignLeader demotes every current leader of the team, then promotes the
// target membership. The two writes are deliberately separate statements
// with no surrounding transaction: if the promote fails after the demote
// succeeded, the team is left with no leader and the caller gets
// LEADER_REASSIGN_PARTIAL so an operator can re-run the action. Automatic
// retry is avoided since it could double-promote under concurrent edits.
func (a *AdminService) ReassignLeader(ctx context.Context, teamID, actorID string) *Error {
	l := logger.FromContext(ctx)

	membership, err := a.members.Get(ctx, teamID, actorID)
	if errors.Is(err, repository.ErrNotFound) {
		return NewError(ErrorCodeNotFound, "membership not found")
	}
	if err != nil {
		return NewError(ErrorCodeUnspecified, "failed to get membership")
	}

	if !membership.IsApproved {
		return NewError(ErrorCodeMemberNotApproved, "cannot promote an unapproved member")
	}

	if err = a.members.DemoteLeaders(ctx, teamID); err != nil {
		l.Error("failed to demote current leaders",
			zap.String("team_id", teamID),
			zap.Error(err))
		return NewError(ErrorCodeUnspecified, "failed to demote current leaders")
	}

	if err = a.members.Promote(ctx, teamID, actorID); err != nil {
		l.Error("leader reassignment left team without a leader",
			zap.String("team_id", teamID),
			zap.String("actor_id", actorID),
			zap.Error(err))
		return NewError(ErrorCodeLeaderReassignPartial,
			"leaders demoted but promotion failed; re-run the reassignment")
	}

	return nil
}

func (a *AdminService) WithProfileRepo(r repository.ProfileRepository) *AdminService {
	a.profiles = r
	return a
}

func (a *AdminService) WithHackathonRepo(r repository.HackathonRepository) *AdminService {
	a.hackathons = r
	return a
}

func (a *AdminService) WithMembershipRepo(r repository.MembershipRepository) *AdminService {
	a.members = r
	return a
}

func (a *AdminService) WithJudgeRepo(r repository.JudgeRepository) *AdminService {
	a.judges = r
	return a
}
