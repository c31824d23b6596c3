package policy

import "strings"

// AllowList is the set of email domains permitted to use the service.
// Immutable after construction.
type AllowList struct {
	domains map[string]struct{}
}

func NewAllowList(domains []string) *AllowList {
	set := make(map[string]struct{}, len(domains))
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			set[d] = struct{}{}
		}
	}
	return &AllowList{domains: set}
}

// Contains reports whether the email's domain is allow-listed. The domain is
// the segment after the first "@", compared case-insensitively. Malformed
// input is never an error, only a miss.
func (a *AllowList) Contains(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) < 2 {
		return false
	}

	domain := strings.ToLower(parts[1])
	if domain == "" {
		return false
	}

	_, ok := a.domains[domain]
	return ok
}
