package auth

const (
	RoleAdmin    = "admin"
	RoleHR       = "hr"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

const (
	ScopeOrg        = "org"
	ScopeDepartment = "department"
	ScopeTeam       = "team"
	ScopeSelf       = "self"
)

// Capability describes what a role may see and do in the analytics surface.
// ManagedTeamsOnly limits team scope resolution to teams the caller manages.
type Capability struct {
	ViewScopes       []string
	ManagedTeamsOnly bool
	CanExport        bool
}

var RoleCapabilities = map[string]Capability{
	RoleAdmin: {
		ViewScopes: []string{ScopeOrg, ScopeDepartment, ScopeTeam, ScopeSelf},
		CanExport:  true,
	},
	RoleHR: {
		ViewScopes: []string{ScopeOrg, ScopeDepartment, ScopeTeam, ScopeSelf},
		CanExport:  true,
	},
	RoleManager: {
		ViewScopes:       []string{ScopeTeam, ScopeSelf},
		ManagedTeamsOnly: true,
		CanExport:        true,
	},
	RoleEmployee: {
		ViewScopes: []string{ScopeSelf},
	},
}

func KnownRole(role string) bool {
	_, ok := RoleCapabilities[role]
	return ok
}

func CanViewScope(role, kind string) bool {
	capability, ok := RoleCapabilities[role]
	if !ok {
		return false
	}
	for _, allowed := range capability.ViewScopes {
		if allowed == kind {
			return true
		}
	}
	return false
}

func ManagedTeamsOnly(role string) bool {
	return RoleCapabilities[role].ManagedTeamsOnly
}

func CanExport(role string) bool {
	return RoleCapabilities[role].CanExport
}
