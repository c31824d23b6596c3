package policy

type Effect string

const (
	EffectAllow        Effect = "ALLOW"
	EffectDeny         Effect = "DENY"
	EffectRequiresAuth Effect = "REQUIRES_AUTH"
)

// Deny reasons. Surfaced to callers for logging; only the domain rejection
// may be shown to the end user verbatim.
const (
	ReasonUnauthorizedDomain = "unauthorized_domain"
	ReasonNotAdmin           = "not_admin"
	ReasonNotTeamLeader      = "not_team_leader"
	ReasonNotJudge           = "not_judge"
	ReasonLookupFailed       = "lookup_failed"
	ReasonNotAllowed         = "not_allowed"
)

// Verdict is the engine's decision. It is a value, never an error: expected
// conditions (anonymous actor, missing role row) do not throw.
type Verdict struct {
	Effect Effect
	Reason string
}

func Allow() Verdict {
	return Verdict{Effect: EffectAllow}
}

func Deny(reason string) Verdict {
	return Verdict{Effect: EffectDeny, Reason: reason}
}

func RequiresAuth() Verdict {
	return Verdict{Effect: EffectRequiresAuth}
}

func (v Verdict) Allowed() bool {
	return v.Effect == EffectAllow
}
