package domain

// Role fixes the set of permitted actions for a session. The set is closed:
// tokens carrying any other value fail verification.
type Role string

const (
	RoleOwner      Role = "owner"
	RoleCommission Role = "commission"
	RoleGuest      Role = "guest"
)

// ParseRole maps a claim value onto the closed role set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleOwner, RoleCommission, RoleGuest:
		return Role(s), true
	default:
		return "", false
	}
}

// CanReplaceDocument reports whether the role may replace the full content
// document.
func (r Role) CanReplaceDocument() bool {
	return r == RoleOwner
}

// CanWriteCommissions reports whether the role may write the commissions
// collection. For RoleCommission the write is field-scoped: only the
// commissions field persists.
func (r Role) CanWriteCommissions() bool {
	return r == RoleOwner || r == RoleCommission
}

// CanUpload reports whether the role may upload images.
func (r Role) CanUpload() bool {
	return r == RoleOwner || r == RoleCommission
}
