package domain

// Caller is the authenticated identity on whose behalf an operation runs.
// It is passed explicitly into every lifecycle call.
type Caller struct {
	AccountID string
	Roles     []Role
}

// Has reports whether the caller holds the given role.
func (c Caller) Has(role Role) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the caller holds an administrative role.
func (c Caller) IsAdmin() bool {
	return Allowed(c.Roles, AdminRoles)
}

// Allowed is the authorization gate: true iff the two role sets intersect.
func Allowed(callerRoles, required []Role) bool {
	for _, have := range callerRoles {
		for _, want := range required {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Authorize returns ErrForbidden unless the caller holds one of the required roles.
func Authorize(caller Caller, required ...Role) error {
	if !Allowed(caller.Roles, required) {
		return ErrForbidden
	}
	return nil
}
