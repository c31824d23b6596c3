package model

type Project struct {
	ID          string `json:"id"`
	TeamID      string `json:"team_id" validate:"required"`
	HackathonID string `json:"hackathon_id"`
	Name        string `json:"project_name" validate:"required"`
	Description string `json:"description"`
	RepoURL     string `json:"repo_url"`
}

type Score struct {
	ProjectID string `json:"project_id"`
	JudgeID   string `json:"judge_id"`
	Criteria  string `json:"criteria" validate:"required"`
	Value     int    `json:"value" validate:"min=0,max=10"`
}
