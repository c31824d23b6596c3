package model

// Actor is the requester resolved from the session, or the zero value for
// anonymous requests. Immutable for the duration of a request.
type Actor struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (a Actor) IsAuthenticated() bool {
	return a.ID != ""
}

type Profile struct {
	ActorID string `json:"actor_id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}
