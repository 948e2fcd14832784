package analytics

import (
	"errors"
	"testing"

	"perfhub/internal/domain/auth"
)

func TestResolveScopeVisibilityMatrix(t *testing.T) {
	manager := Caller{UserID: "m1", Role: auth.RoleManager, ManagedTeamIDs: []string{"t1", "t2"}}

	cases := []struct {
		name    string
		caller  Caller
		req     ScopeRequest
		wantErr error
	}{
		{"admin org", Caller{UserID: "a1", Role: auth.RoleAdmin}, ScopeRequest{Kind: auth.ScopeOrg}, nil},
		{"hr department", Caller{UserID: "h1", Role: auth.RoleHR}, ScopeRequest{Kind: auth.ScopeDepartment, ID: "d1"}, nil},
		{"hr team", Caller{UserID: "h1", Role: auth.RoleHR}, ScopeRequest{Kind: auth.ScopeTeam, ID: "t9"}, nil},
		{"manager own team", manager, ScopeRequest{Kind: auth.ScopeTeam, ID: "t1"}, nil},
		{"manager foreign team", manager, ScopeRequest{Kind: auth.ScopeTeam, ID: "t9"}, ErrScopeForbidden},
		{"manager org", manager, ScopeRequest{Kind: auth.ScopeOrg}, ErrScopeForbidden},
		{"manager department", manager, ScopeRequest{Kind: auth.ScopeDepartment, ID: "d1"}, ErrScopeForbidden},
		{"employee self", Caller{UserID: "e1", Role: auth.RoleEmployee}, ScopeRequest{Kind: auth.ScopeSelf}, nil},
		{"employee team", Caller{UserID: "e1", Role: auth.RoleEmployee, TeamID: "t1"}, ScopeRequest{Kind: auth.ScopeTeam, ID: "t1"}, ErrScopeForbidden},
		{"employee org", Caller{UserID: "e1", Role: auth.RoleEmployee}, ScopeRequest{Kind: auth.ScopeOrg}, ErrScopeForbidden},
		{"employee other self", Caller{UserID: "e1", Role: auth.RoleEmployee}, ScopeRequest{Kind: auth.ScopeSelf, ID: "e2"}, ErrScopeForbidden},
		{"unknown kind", Caller{UserID: "a1", Role: auth.RoleAdmin}, ScopeRequest{Kind: "galaxy"}, ErrInvalidScope},
		{"department without id", Caller{UserID: "a1", Role: auth.RoleAdmin}, ScopeRequest{Kind: auth.ScopeDepartment}, ErrInvalidScope},
		{"admin team without id", Caller{UserID: "a1", Role: auth.RoleAdmin}, ScopeRequest{Kind: auth.ScopeTeam}, ErrInvalidScope},
		{"unknown role", Caller{UserID: "x1", Role: "contractor"}, ScopeRequest{Kind: auth.ScopeSelf}, ErrScopeForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ResolveScope(tc.caller, tc.req)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("expected success, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestResolveScopeDefaults(t *testing.T) {
	scope, err := ResolveScope(Caller{UserID: "a1", Role: auth.RoleAdmin}, ScopeRequest{})
	if err != nil {
		t.Fatalf("admin default scope failed: %v", err)
	}
	if scope.Kind != auth.ScopeOrg {
		t.Fatalf("expected admin default org scope, got %s", scope.Kind)
	}

	scope, err = ResolveScope(Caller{UserID: "m1", Role: auth.RoleManager, ManagedTeamIDs: []string{"t1", "t2"}}, ScopeRequest{})
	if err != nil {
		t.Fatalf("manager default scope failed: %v", err)
	}
	if scope.Kind != auth.ScopeTeam || len(scope.TeamIDs) != 2 {
		t.Fatalf("expected manager default scope over managed teams, got %+v", scope)
	}

	scope, err = ResolveScope(Caller{UserID: "e1", Role: auth.RoleEmployee}, ScopeRequest{})
	if err != nil {
		t.Fatalf("employee default scope failed: %v", err)
	}
	if scope.Kind != auth.ScopeSelf || scope.UserID != "e1" {
		t.Fatalf("expected employee self scope, got %+v", scope)
	}
}

func TestResolveExportScope(t *testing.T) {
	_, err := ResolveExportScope(Caller{UserID: "e1", Role: auth.RoleEmployee}, ScopeRequest{Kind: auth.ScopeSelf})
	if !errors.Is(err, ErrExportForbidden) {
		t.Fatalf("expected export forbidden for employee, got %v", err)
	}

	// The capability check comes first, even when the scope itself is bogus.
	_, err = ResolveExportScope(Caller{UserID: "e1", Role: auth.RoleEmployee}, ScopeRequest{Kind: "galaxy"})
	if !errors.Is(err, ErrExportForbidden) {
		t.Fatalf("expected export forbidden before scope validation, got %v", err)
	}

	scope, err := ResolveExportScope(Caller{UserID: "m1", Role: auth.RoleManager, ManagedTeamIDs: []string{"t1"}}, ScopeRequest{Kind: auth.ScopeTeam, ID: "t1"})
	if err != nil {
		t.Fatalf("manager export failed: %v", err)
	}
	if len(scope.TeamIDs) != 1 || scope.TeamIDs[0] != "t1" {
		t.Fatalf("unexpected export scope: %+v", scope)
	}
}
