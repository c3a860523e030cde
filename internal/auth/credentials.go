package auth

import (
	"github.com/soryntech/portfolio-api/internal/config"
	"github.com/soryntech/portfolio-api/internal/domain"
)

// Authenticator matches login attempts against the three fixed credential
// pairs. The matched pair alone determines the role.
type Authenticator struct {
	creds     config.CredentialsConfig
	jwtSecret string
}

// NewAuthenticator builds the authenticator.
func NewAuthenticator(creds config.CredentialsConfig, jwtSecret string) *Authenticator {
	return &Authenticator{creds: creds, jwtSecret: jwtSecret}
}

// MissingSecrets names the server-side settings required for login that are
// absent. A non-empty result means the deployment is broken, which callers
// must report distinctly from bad credentials.
func (a *Authenticator) MissingSecrets() []string {
	var missing []string
	if a.creds.OwnerPass == "" {
		missing = append(missing, "OWNER_PASSWORD")
	}
	if a.creds.GuestPass == "" {
		missing = append(missing, "GUEST_PASSWORD")
	}
	if a.creds.CommissionPass == "" {
		missing = append(missing, "COMMISSION_PASSWORD")
	}
	if a.jwtSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	return missing
}

// Authenticate checks the username/password pair against all three
// configured pairs. Every pair is evaluated so a failed attempt costs the
// same regardless of which field was wrong.
func (a *Authenticator) Authenticate(username, password string) (domain.Role, bool) {
	var role domain.Role
	var matched bool
	if username == a.creds.OwnerUser && MatchSecret(a.creds.OwnerPass, password) {
		role, matched = domain.RoleOwner, true
	}
	if username == a.creds.GuestUser && MatchSecret(a.creds.GuestPass, password) {
		role, matched = domain.RoleGuest, true
	}
	if username == a.creds.CommissionUser && MatchSecret(a.creds.CommissionPass, password) {
		role, matched = domain.RoleCommission, true
	}
	return role, matched
}

// GuestCredentials returns the guest username and, only when publishing is
// enabled, the guest password.
func (a *Authenticator) GuestCredentials() (user, pass string) {
	user = a.creds.GuestUser
	if a.creds.PublishGuestCredentials {
		pass = a.creds.GuestPass
	}
	return user, pass
}
