package domain

import "strings"

// Role is a capability granted to an account.
type Role string

const (
	RoleFarmer     Role = "farmer"
	RoleOwner      Role = "owner"
	RoleWorker     Role = "worker"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// roleLabels maps every accepted external label to its role. The mixed-case
// labels are the ones the web client sends on signup.
var roleLabels = map[string]Role{
	"farmer":           RoleFarmer,
	"role_farmer":      RoleFarmer,
	"machineryowner":   RoleOwner,
	"owner":            RoleOwner,
	"role_owner":       RoleOwner,
	"farmworker":       RoleWorker,
	"worker":           RoleWorker,
	"role_worker":      RoleWorker,
	"admin":            RoleAdmin,
	"role_admin":       RoleAdmin,
	"super_admin":      RoleSuperAdmin,
	"superadmin":       RoleSuperAdmin,
	"role_super_admin": RoleSuperAdmin,
}

// ParseRole maps an external role label to a Role. Unknown labels are rejected
// with an InvalidRoleError.
func ParseRole(label string) (Role, error) {
	r, ok := roleLabels[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return "", &InvalidRoleError{Label: label}
	}
	return r, nil
}

// SelfService reports whether the role may be requested through public signup.
func (r Role) SelfService() bool {
	switch r {
	case RoleFarmer, RoleOwner, RoleWorker:
		return true
	}
	return false
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleFarmer, RoleOwner, RoleWorker, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// Administrative roles.
var (
	AdminRoles = []Role{RoleAdmin, RoleSuperAdmin}
)
