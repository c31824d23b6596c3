package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/andreevsm/hackhub/internal/model"
	"github.com/andreevsm/hackhub/internal/repository"
)

type ProfileService struct {
	profiles repository.ProfileRepository
}

func NewProfileService() *ProfileService {
	return &ProfileService{}
}

// EnsureProfile returns the profile for the email, creating one on first
// sign-in. New profiles are never admins.
func (p *ProfileService) EnsureProfile(ctx context.Context, email string) (*model.Profile, *Error) {
	profile, err := p.profiles.GetByEmail(ctx, email)
	if err == nil {
		return &model.Profile{
			ActorID: profile.ActorID,
			Email:   profile.Email,
			IsAdmin: profile.IsAdmin,
		}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, NewError(ErrorCodeUnspecified, "failed to get profile")
	}

	created := &repository.Profile{
		ActorID: uuid.NewString(),
		Email:   email,
	}
	if err = p.profiles.Upsert(ctx, created); err != nil {
		return nil, NewError(ErrorCodeUnspecified, "failed to create profile")
	}

	return &model.Profile{
		ActorID: created.ActorID,
		Email:   created.Email,
	}, nil
}

func (p *ProfileService) WithProfileRepo(r repository.ProfileRepository) *ProfileService {
	p.profiles = r
	return p
}
