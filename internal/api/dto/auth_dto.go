package dto

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued session token.
type LoginResponse struct {
	Token    string `json:"token"`
	Role     string `json:"role"`
	Username string `json:"username"`
}

// MeResponse echoes the verified session identity.
type MeResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// CredentialsResponse exposes the public demo credentials. The guest
// password is present only when publishing is enabled.
type CredentialsResponse struct {
	GuestUser string `json:"guestUser"`
	GuestPass string `json:"guestPass,omitempty"`
}
