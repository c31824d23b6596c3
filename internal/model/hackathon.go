package model

type Hackathon struct {
	ID       string `json:"id"`
	Name     string `json:"name" validate:"required"`
	IsActive bool   `json:"is_active"`
}

type Judge struct {
	ActorID     string `json:"actor_id" validate:"required"`
	HackathonID string `json:"hackathon_id" validate:"required"`
}
