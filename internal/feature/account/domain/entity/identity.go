package entity

// Identity is the caller resolved from a bearer token.
// Lifecycle operations receive it explicitly instead of reading ambient state.
type Identity struct {
	UserID    uint
	Email     string
	Role      UserRole
	SessionID string
}

// HasRole reports whether the identity carries one of roles.
func (i Identity) HasRole(roles ...UserRole) bool {
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}
