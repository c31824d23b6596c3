package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/andreevsm/hackhub/internal/model"
	"github.com/andreevsm/hackhub/internal/repository"
)

type ProjectService struct {
	teams      repository.TeamRepository
	projects   repository.ProjectRepository
	hackathons repository.HackathonRepository
}

func NewProjectService() *ProjectService {
	return &ProjectService{}
}

// SubmitProject records the team's project under the team's hackathon.
func (p *ProjectService) SubmitProject(ctx context.Context, project *model.Project) (*model.Project, *Error) {
	team, err := p.teams.Get(ctx, project.TeamID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NewError(ErrorCodeNotFound, "team not found")
	}
	if err != nil {
		return nil, NewError(ErrorCodeUnspecified, "failed to get team")
	}

	repoProject := &repository.Project{
		ID:          uuid.NewString(),
		TeamID:      team.ID,
		HackathonID: team.HackathonID,
		Name:        project.Name,
		Description: project.Description,
		RepoURL:     project.RepoURL,
	}

	if err = p.projects.Create(ctx, repoProject); errors.Is(err, repository.ErrAlreadyExists) {
		return nil, NewError(ErrorCodeAlreadyExists, "project already submitted")
	} else if err != nil {
		return nil, NewError(ErrorCodeUnspecified, "failed to create project")
	}

	return &model.Project{
		ID:          repoProject.ID,
		TeamID:      repoProject.TeamID,
		HackathonID: repoProject.HackathonID,
		Name:        repoProject.Name,
		Description: repoProject.Description,
		RepoURL:     repoProject.RepoURL,
	}, nil
}

func (p *ProjectService) GetProject(ctx context.Context, id string) (*model.Project, *Error) {
	repoProject, err := p.projects.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NewError(ErrorCodeNotFound, "project not found")
	}
	if err != nil {
		return nil, NewError(ErrorCodeUnspecified, "failed to get project")
	}

	return &model.Project{
		ID:          repoProject.ID,
		TeamID:      repoProject.TeamID,
		HackathonID: repoProject.HackathonID,
		Name:        repoProject.Name,
		Description: repoProject.Description,
		RepoURL:     repoProject.RepoURL,
	}, nil
}

// ListProjects returns the active hackathon's projects; empty when no
// hackathon is active.
func (p *ProjectService) ListProjects(ctx context.Context) ([]*model.Project, *Error) {
	hackathon, err := p.hackathons.GetActive(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return []*model.Project{}, nil
	}
	if err != nil {
		return nil, NewError(ErrorCodeUnspecified, "failed to get active hackathon")
	}

	repoProjects, err := p.projects.List(ctx, hackathon.ID)
	if err != nil {
		return nil, NewError(ErrorCodeUnspecified, "failed to list projects")
	}

	projects := make([]*model.Project, 0, len(repoProjects))
	for _, rp := range repoProjects {
		projects = append(projects, &model.Project{
			ID:          rp.ID,
			TeamID:      rp.TeamID,
			HackathonID: rp.HackathonID,
			Name:        rp.Name,
			Description: rp.Description,
			RepoURL:     rp.RepoURL,
		})
	}

	return projects, nil
}

func (p *ProjectService) WithTeamRepo(r repository.TeamRepository) *ProjectService {
	p.teams = r
	return p
}

func (p *ProjectService) WithProjectRepo(r repository.ProjectRepository) *ProjectService {
	p.projects = r
	return p
}

func (p *ProjectService) WithHackathonRepo(r repository.HackathonRepository) *ProjectService {
	p.hackathons = r
	return p
}
