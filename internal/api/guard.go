package api

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/andreevsm/hackhub/internal/model"
	"github.com/andreevsm/hackhub/internal/policy"
	"github.com/andreevsm/hackhub/internal/service"
	"github.com/andreevsm/hackhub/pkg/logger"
)

// authorize is the route guard: one call to the policy engine per request,
// mapped onto the service error pipeline. The verdict reason is logged but
// never sent to the client, except for the domain rejection, which also
// clears the session as a sign-out side effect.
func (h *Handler) authorize(c echo.Context, action policy.Action, res policy.Resource) (model.Actor, *service.Error) {
	actor := CurrentActor(c)

	verdict := h.policy.Decide(c.Request().Context(), actor, action, res)
	if verdict.Allowed() {
		return actor, nil
	}

	if verdict.Effect == policy.EffectRequiresAuth {
		return actor, service.NewError(service.ErrorCodeAuthRequired, "authentication required")
	}

	logger.FromContext(c.Request().Context()).Warn("access denied",
		zap.String("actor_id", actor.ID),
		zap.String("action", string(action)),
		zap.String("reason", verdict.Reason))

	if verdict.Reason == policy.ReasonUnauthorizedDomain {
		clearSessionCookie(c)
		return actor, service.NewError(service.ErrorCodeUnauthorizedDomain, "email domain is not allowed")
	}

	return actor, service.NewError(service.ErrorCodeForbidden, "forbidden")
}

// authorizeAny allows the request if any of the actions is allowed; used for
// surfaces reachable by more than one role, like judges and admins both
// reading scores.
func (h *Handler) authorizeAny(c echo.Context, res policy.Resource, actions ...policy.Action) (model.Actor, *service.Error) {
	var (
		actor model.Actor
		last  *service.Error
	)

	for _, action := range actions {
		var err *service.Error
		actor, err = h.authorize(c, action, res)
		if err == nil {
			return actor, nil
		}
		last = err
	}

	return actor, last
}

// RequireAction gates a whole route group on one policy action; the admin
// back-office hangs off this with admin:*.
func (h *Handler) RequireAction(action policy.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, err := h.authorize(c, action, policy.Resource{}); err != nil {
				return h.transportError(c, err)
			}
			return next(c)
		}
	}
}
