package theme

// Role names one of v1's 12 predefined semantic styles other elements or
// roles may inherit property-by-property from (SPEC_FULL §3).
type Role string

const (
	RolePrimary         Role = "primary"
	RoleSecondary       Role = "secondary"
	RoleStrong          Role = "strong"
	RoleMuted           Role = "muted"
	RoleAccent          Role = "accent"
	RoleAccentSecondary Role = "accent-secondary"
	RoleSyntax          Role = "syntax"
	RoleStatus          Role = "status"
	RoleInfo            Role = "info"
	RoleWarning         Role = "warning"
	RoleError           Role = "error"
	RoleDefault         Role = "default"
)

// Roles lists all 12 predefined v1 roles.
var Roles = []Role{
	RoleDefault, RolePrimary, RoleSecondary, RoleStrong, RoleMuted,
	RoleAccent, RoleAccentSecondary, RoleSyntax, RoleStatus, RoleInfo,
	RoleWarning, RoleError,
}

func isKnownRole(r Role) bool {
	for _, x := range Roles {
		if x == r {
			return true
		}
	}

	return false
}

// maxRoleChainDepth bounds v1 role inheritance resolution (SPEC_FULL §3
// "chains are bounded to depth 64").
const maxRoleChainDepth = 64
