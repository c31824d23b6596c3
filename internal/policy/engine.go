package policy

import (
	"context"

	"go.uber.org/zap"

	"github.com/andreevsm/hackhub/internal/model"
	"github.com/andreevsm/hackhub/pkg/logger"
)

// Engine is the single access-control decision point. Decide is stateless:
// every call re-resolves roles from the store so revocations apply
// immediately, and the engine itself never mutates anything.
type Engine struct {
	domains *AllowList
	roles   RoleLookup
}

func NewEngine(domains *AllowList, roles RoleLookup) *Engine {
	return &Engine{
		domains: domains,
		roles:   roles,
	}
}

// Decide evaluates the rules in order; the first match wins. The domain
// check always precedes role checks, so an admin can never bypass the
// allow-list. Role-lookup store errors deny, never allow.
func (e *Engine) Decide(ctx context.Context, actor model.Actor, action Action, res Resource) Verdict {
	if !actor.IsAuthenticated() {
		if action.IsPublic() {
			return Allow()
		}
		return RequiresAuth()
	}

	if !e.domains.Contains(actor.Email) {
		// The caller must additionally sign the actor out.
		return Deny(ReasonUnauthorizedDomain)
	}

	if action.IsAdmin() {
		isAdmin, err := e.roles.IsAdmin(ctx, actor.ID)
		if err != nil {
			return e.lookupFailed(ctx, actor, action, err)
		}
		if !isAdmin {
			return Deny(ReasonNotAdmin)
		}
		return Allow()
	}

	switch action {
	case ActionTeamEdit, ActionTeamManageMembers:
		isLeader, err := e.roles.IsTeamLeader(ctx, actor.ID, res.TeamID)
		if err != nil {
			return e.lookupFailed(ctx, actor, action, err)
		}
		if isLeader {
			return Allow()
		}

		isAdmin, err := e.roles.IsAdmin(ctx, actor.ID)
		if err != nil {
			return e.lookupFailed(ctx, actor, action, err)
		}
		if isAdmin {
			return Allow()
		}

		return Deny(ReasonNotTeamLeader)

	case ActionTeamJoin, ActionTeamCreate:
		// Any authenticated, domain-valid actor may ask; approval is a
		// separate leader/admin action.
		return Allow()

	case ActionJudgingSubmit:
		isJudge, err := e.roles.IsJudge(ctx, actor.ID, res.HackathonID)
		if err != nil {
			return e.lookupFailed(ctx, actor, action, err)
		}
		if !isJudge {
			return Deny(ReasonNotJudge)
		}
		return Allow()
	}

	if action.IsRead() {
		return Allow()
	}

	return Deny(ReasonNotAllowed)
}

// lookupFailed logs the store failure distinctly and fails closed.
func (e *Engine) lookupFailed(ctx context.Context, actor model.Actor, action Action, err error) Verdict {
	logger.FromContext(ctx).Error("role lookup failed",
		zap.String("actor_id", actor.ID),
		zap.String("action", string(action)),
		zap.Error(err))

	return Deny(ReasonLookupFailed)
}
