package auth

import (
	"strings"

	"github.com/ryanuber/go-glob"
)

// Allowlist restricts registration to email addresses matching one of its
// glob patterns, e.g. "*@example.com". An empty allowlist allows everyone.
type Allowlist []string

// ParseAllowlist splits a space separated list of patterns.
func ParseAllowlist(s string) Allowlist {
	var a Allowlist
	for _, p := range strings.Fields(s) {
		a = append(a, strings.ToLower(p))
	}
	return a
}

func (a Allowlist) Allows(email string) bool {
	if len(a) == 0 {
		return true
	}

	email = strings.ToLower(strings.TrimSpace(email))
	for _, pattern := range a {
		if glob.Glob(pattern, email) {
			return true
		}
	}

	return false
}
