package policy

import (
	"context"

	"github.com/pkg/errors"

	"github.com/andreevsm/hackhub/internal/repository"
)

// RoleLookup resolves role facets against the store. One query per facet,
// scoped by the ids passed in. A missing row means "no privilege" and is not
// an error; only store-level failures are returned as errors.
type RoleLookup interface {
	IsAdmin(ctx context.Context, actorID string) (bool, error)
	IsTeamLeader(ctx context.Context, actorID, teamID string) (bool, error)
	IsApprovedMember(ctx context.Context, actorID, teamID string) (bool, error)
	IsJudge(ctx context.Context, actorID, hackathonID string) (bool, error)
}

type storeRoleLookup struct {
	profiles repository.ProfileRepository
	members  repository.MembershipRepository
	judges   repository.JudgeRepository
}

func NewRoleLookup(
	profiles repository.ProfileRepository,
	members repository.MembershipRepository,
	judges repository.JudgeRepository,
) RoleLookup {
	return &storeRoleLookup{
		profiles: profiles,
		members:  members,
		judges:   judges,
	}
}

func (s *storeRoleLookup) IsAdmin(ctx context.Context, actorID string) (bool, error) {
	profile, err := s.profiles.Get(ctx, actorID)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return profile.IsAdmin, nil
}

func (s *storeRoleLookup) IsTeamLeader(ctx context.Context, actorID, teamID string) (bool, error) {
	m, err := s.members.Get(ctx, teamID, actorID)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	// An unapproved leader row grants nothing.
	return m.IsLeader && m.IsApproved, nil
}

func (s *storeRoleLookup) IsApprovedMember(ctx context.Context, actorID, teamID string) (bool, error) {
	m, err := s.members.Get(ctx, teamID, actorID)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return m.IsApproved, nil
}

func (s *storeRoleLookup) IsJudge(ctx context.Context, actorID, hackathonID string) (bool, error) {
	_, err := s.judges.Get(ctx, actorID, hackathonID)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
