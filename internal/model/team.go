package model

type Team struct {
	ID                string        `json:"id"`
	HackathonID       string        `json:"hackathon_id"`
	Name              string        `json:"team_name" validate:"required"`
	LookingForMembers bool          `json:"looking_for_members"`
	CreatedBy         string        `json:"created_by"`
	Members           []*TeamMember `json:"members,omitempty"`
}

type TeamMember struct {
	ActorID    string `json:"actor_id"`
	Email      string `json:"email"`
	IsLeader   bool   `json:"is_leader"`
	IsApproved bool   `json:"is_approved"`
}
