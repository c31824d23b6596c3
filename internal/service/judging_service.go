package service

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/andreevsm/hackhub/internal/model"
	"github.com/andreevsm/hackhub/internal/repository"
	"github.com/andreevsm/hackhub/pkg/logger"
)

type JudgingService struct {
	projects repository.ProjectRepository
	scores   repository.ScoreRepository
}

func NewJudgingService() *JudgingService {
	return &JudgingService{}
}

// SubmitScore upserts the judge's score for one criteria of a project.
func (j *JudgingService) SubmitScore(ctx context.Context, score *model.Score) *Error {
	l := logger.FromContext(ctx)

	if _, err := j.projects.Get(ctx, score.ProjectID); errors.Is(err, repository.ErrNotFound) {
		return NewError(ErrorCodeNotFound, "project not found")
	} else if err != nil {
		return NewError(ErrorCodeUnspecified, "failed to get project")
	}

	if err := j.scores.Upsert(ctx, &repository.Score{
		ProjectID: score.ProjectID,
		JudgeID:   score.JudgeID,
		Criteria:  score.Criteria,
		Value:     score.Value,
	}); err != nil {
		l.Error("failed to submit score",
			zap.String("project_id", score.ProjectID),
			zap.String("judge_id", score.JudgeID),
			zap.Error(err))
		return NewError(ErrorCodeUnspecified, "failed to submit score")
	}

	return nil
}

func (j *JudgingService) ListScores(ctx context.Context, projectID string) ([]*model.Score, *Error) {
	if _, err := j.projects.Get(ctx, projectID); errors.Is(err, repository.ErrNotFound) {
		return nil, NewError(ErrorCodeNotFound, "project not found")
	} else if err != nil {
		return nil, NewError(ErrorCodeUnspecified, "failed to get project")
	}

	repoScores, err := j.scores.ListByProject(ctx, projectID)
	if err != nil {
		return nil, NewError(ErrorCodeUnspecified, "failed to list scores")
	}

	scores := make([]*model.Score, 0, len(repoScores))
	for _, rs := range repoScores {
		scores = append(scores, &model.Score{
			ProjectID: rs.ProjectID,
			JudgeID:   rs.JudgeID,
			Criteria:  rs.Criteria,
			Value:     rs.Value,
		})
	}

	return scores, nil
}

func (j *JudgingService) WithProjectRepo(r repository.ProjectRepository) *JudgingService {
	j.projects = r
	return j
}

func (j *JudgingService) WithScoreRepo(r repository.ScoreRepository) *JudgingService {
	j.scores = r
	return j
}
