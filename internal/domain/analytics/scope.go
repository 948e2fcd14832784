package analytics

import (
	"fmt"
	"slices"
	"time"

	"perfhub/internal/domain/auth"
)

// Caller carries everything the scoper needs to decide visibility. Managed
// team IDs are looked up by the transport layer before resolution so the
// scoper itself stays a pure function.
type Caller struct {
	UserID         string
	Role           string
	TeamID         string
	DepartmentID   string
	ManagedTeamIDs []string
}

type ScopeRequest struct {
	Kind string
	ID   string
	From time.Time
	To   time.Time
}

type ResolvedScope struct {
	Kind         string    `json:"kind"`
	DepartmentID string    `json:"departmentId,omitempty"`
	TeamIDs      []string  `json:"teamIds,omitempty"`
	UserID       string    `json:"userId,omitempty"`
	From         time.Time `json:"from,omitzero"`
	To           time.Time `json:"to,omitzero"`
}

// ResolveScope narrows the requested scope to what the caller's role permits.
// An empty request kind falls back to the widest scope the role can see.
func ResolveScope(caller Caller, req ScopeRequest) (ResolvedScope, error) {
	kind := req.Kind
	if kind == "" {
		kind = defaultScopeKind(caller.Role)
	}

	switch kind {
	case auth.ScopeOrg, auth.ScopeDepartment, auth.ScopeTeam, auth.ScopeSelf:
	default:
		return ResolvedScope{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidScope, kind)
	}

	if !auth.CanViewScope(caller.Role, kind) {
		return ResolvedScope{}, fmt.Errorf("%w: role %q cannot view %s scope", ErrScopeForbidden, caller.Role, kind)
	}

	scope := ResolvedScope{Kind: kind, From: req.From, To: req.To}

	switch kind {
	case auth.ScopeOrg:

	case auth.ScopeDepartment:
		if req.ID == "" {
			return ResolvedScope{}, fmt.Errorf("%w: department scope requires an id", ErrInvalidScope)
		}
		scope.DepartmentID = req.ID

	case auth.ScopeTeam:
		if auth.ManagedTeamsOnly(caller.Role) {
			if req.ID == "" {
				scope.TeamIDs = slices.Clone(caller.ManagedTeamIDs)
				break
			}
			if !slices.Contains(caller.ManagedTeamIDs, req.ID) {
				return ResolvedScope{}, fmt.Errorf("%w: role %q does not manage team %q", ErrScopeForbidden, caller.Role, req.ID)
			}
			scope.TeamIDs = []string{req.ID}
			break
		}
		if req.ID == "" {
			return ResolvedScope{}, fmt.Errorf("%w: team scope requires an id", ErrInvalidScope)
		}
		scope.TeamIDs = []string{req.ID}

	case auth.ScopeSelf:
		target := req.ID
		if target == "" {
			target = caller.UserID
		}
		if target != caller.UserID && !auth.CanViewScope(caller.Role, auth.ScopeOrg) {
			return ResolvedScope{}, fmt.Errorf("%w: role %q can only view their own record", ErrScopeForbidden, caller.Role)
		}
		scope.UserID = target
	}

	return scope, nil
}

// ResolveExportScope rejects callers without the export capability before the
// scope is even looked at.
func ResolveExportScope(caller Caller, req ScopeRequest) (ResolvedScope, error) {
	if !auth.CanExport(caller.Role) {
		return ResolvedScope{}, fmt.Errorf("%w: role %q", ErrExportForbidden, caller.Role)
	}
	return ResolveScope(caller, req)
}

func defaultScopeKind(role string) string {
	switch role {
	case auth.RoleAdmin, auth.RoleHR:
		return auth.ScopeOrg
	case auth.RoleManager:
		return auth.ScopeTeam
	default:
		return auth.ScopeSelf
	}
}
