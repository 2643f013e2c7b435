package auth

import (
	"strings"

	"github.com/shareloop/backend/internal/models"
)

// IsAdmin is the authorization predicate for the admin console.
// A user is an administrator when any of the following holds:
//   - their account carries the admin flag (granted via promote-admin)
//   - their email exactly equals the designated admin address
//   - their email belongs to the designated admin subdomain
//
// Banned accounts are never administrators regardless of email.
// Callers must evaluate this against a freshly loaded user record on every
// request; admin status can change between calls and must not be cached.
func IsAdmin(user *models.User, adminEmail, adminDomain string) bool {
	if user == nil || user.IsBanned {
		return false
	}
	if user.IsAdmin {
		return true
	}

	email := strings.ToLower(strings.TrimSpace(user.Email))
	if email == "" {
		return false
	}
	if adminEmail != "" && email == strings.ToLower(adminEmail) {
		return true
	}
	if adminDomain != "" && strings.HasSuffix(email, "@"+strings.ToLower(adminDomain)) {
		return true
	}
	return false
}
