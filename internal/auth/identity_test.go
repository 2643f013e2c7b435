package auth

import (
	"testing"

	"github.com/shareloop/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestIsAdmin(t *testing.T) {
	adminEmail := "ops@shareloop.app"
	adminDomain := "admin.shareloop.app"

	testCases := []struct {
		name     string
		user     *models.User
		expected bool
	}{
		{"nil user", nil, false},
		{"admin flag", &models.User{Email: "anyone@example.com", IsAdmin: true}, true},
		{"exact admin email", &models.User{Email: "ops@shareloop.app"}, true},
		{"admin email different case", &models.User{Email: "OPS@Shareloop.App"}, true},
		{"admin subdomain", &models.User{Email: "mika@admin.shareloop.app"}, true},
		{"subdomain different case", &models.User{Email: "Mika@ADMIN.shareloop.app"}, true},
		{"plain member", &models.User{Email: "mika@shareloop.app"}, false},
		{"lookalike domain", &models.User{Email: "mika@notadmin.shareloop.app"}, false},
		{"admin domain as substring only", &models.User{Email: "admin.shareloop.app@example.com"}, false},
		{"empty email", &models.User{Email: ""}, false},
		{"banned admin flag", &models.User{Email: "anyone@example.com", IsAdmin: true, IsBanned: true}, false},
		{"banned admin email", &models.User{Email: "ops@shareloop.app", IsBanned: true}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsAdmin(tc.user, adminEmail, adminDomain))
		})
	}
}

func TestIsAdminNoDomainConfigured(t *testing.T) {
	user := &models.User{Email: "mika@admin.shareloop.app"}
	assert.False(t, IsAdmin(user, "ops@shareloop.app", ""))
	assert.True(t, IsAdmin(user, "", "admin.shareloop.app"))
}
