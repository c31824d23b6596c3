package policy

import "strings"

// Action names an operation as "<resource>:<verb>". Admin actions use the
// "admin:" prefix and are all gated the same way.
type Action string

const (
	ActionAdminAny Action = "admin:*"

	ActionTeamCreate        Action = "team:create"
	ActionTeamEdit          Action = "team:edit"
	ActionTeamManageMembers Action = "team:manage-members"
	ActionTeamJoin          Action = "team:join"
	ActionTeamRead          Action = "team:read"
	ActionTeamList          Action = "team:list"

	ActionProjectRead Action = "project:read"
	ActionProjectList Action = "project:list"

	ActionJudgingSubmit Action = "judging:submit"

	ActionFAQRead Action = "faq:read"
)

// IsPublic reports whether the action is available to anonymous requesters:
// the published FAQ and the public team/project listings.
func (a Action) IsPublic() bool {
	switch a {
	case ActionFAQRead, ActionTeamList, ActionProjectList:
		return true
	}
	return false
}

// IsAdmin reports whether the action belongs to the admin back-office.
func (a Action) IsAdmin() bool {
	return strings.HasPrefix(string(a), "admin:")
}

// IsRead reports whether the action is a read. Unmatched reads on
// non-sensitive resources fall through to allow; unmatched writes deny.
func (a Action) IsRead() bool {
	switch verb := string(a)[strings.LastIndex(string(a), ":")+1:]; verb {
	case "read", "list":
		return true
	}
	return false
}

// Resource is the scope a role is evaluated against: global when both ids
// are empty, otherwise the named team or hackathon.
type Resource struct {
	TeamID      string
	HackathonID string
}
