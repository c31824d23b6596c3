package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/andreevsm/hackhub/internal/model"
	"github.com/andreevsm/hackhub/internal/repository"
)

func TestJudgingService_SubmitScore(t *testing.T) {
	tests := []struct {
		name          string
		score         *model.Score
		setupMocks    func(*MockProjectRepository, *MockScoreRepository)
		expectedError bool
		errorCode     ErrorCode
	}{
		{
			name: "success",
			score: &model.Score{
				ProjectID: "project-1",
				JudgeID:   "judge-1",
				Criteria:  "innovation",
				Value:     8,
			},
			setupMocks: func(pr *MockProjectRepository, sr *MockScoreRepository) {
				pr.On("Get", mock.Anything, "project-1").Return(&repository.Project{ID: "project-1"}, nil)
				sr.On("Upsert", mock.Anything, &repository.Score{
					ProjectID: "project-1",
					JudgeID:   "judge-1",
					Criteria:  "innovation",
					Value:     8,
				}).Return(nil)
			},
			expectedError: false,
		},
		{
			name: "project not found",
			score: &model.Score{
				ProjectID: "missing",
				JudgeID:   "judge-1",
				Criteria:  "innovation",
				Value:     8,
			},
			setupMocks: func(pr *MockProjectRepository, sr *MockScoreRepository) {
				pr.On("Get", mock.Anything, "missing").Return(nil, repository.ErrNotFound)
			},
			expectedError: true,
			errorCode:     ErrorCodeNotFound,
		},
		{
			name: "upsert failure",
			score: &model.Score{
				ProjectID: "project-1",
				JudgeID:   "judge-1",
				Criteria:  "innovation",
				Value:     8,
			},
			setupMocks: func(pr *MockProjectRepository, sr *MockScoreRepository) {
				pr.On("Get", mock.Anything, "project-1").Return(&repository.Project{ID: "project-1"}, nil)
				sr.On("Upsert", mock.Anything, mock.Anything).Return(errors.New("db error"))
			},
			expectedError: true,
			errorCode:     ErrorCodeUnspecified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockProjectRepo := new(MockProjectRepository)
			mockScoreRepo := new(MockScoreRepository)

			tt.setupMocks(mockProjectRepo, mockScoreRepo)

			service := NewJudgingService().
				WithProjectRepo(mockProjectRepo).
				WithScoreRepo(mockScoreRepo)

			err := service.SubmitScore(context.Background(), tt.score)

			if tt.expectedError {
				require.Error(t, err)
				assert.Equal(t, tt.errorCode, err.Code)
			} else {
				assert.Nil(t, err)
			}

			mockProjectRepo.AssertExpectations(t)
			mockScoreRepo.AssertExpectations(t)
		})
	}
}

func TestJudgingService_ListScores(t *testing.T) {
	mockProjectRepo := new(MockProjectRepository)
	mockScoreRepo := new(MockScoreRepository)

	mockProjectRepo.On("Get", mock.Anything, "project-1").Return(&repository.Project{ID: "project-1"}, nil)
	mockScoreRepo.On("ListByProject", mock.Anything, "project-1").Return([]*repository.Score{
		{ProjectID: "project-1", JudgeID: "judge-1", Criteria: "innovation", Value: 8},
		{ProjectID: "project-1", JudgeID: "judge-2", Criteria: "innovation", Value: 6},
	}, nil)

	service := NewJudgingService().
		WithProjectRepo(mockProjectRepo).
		WithScoreRepo(mockScoreRepo)

	scores, err := service.ListScores(context.Background(), "project-1")

	assert.Nil(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, "judge-1", scores[0].JudgeID)
	assert.Equal(t, 8, scores[0].Value)

	mockProjectRepo.AssertExpectations(t)
	mockScoreRepo.AssertExpectations(t)
}
