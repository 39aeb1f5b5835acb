package access

import "gamestore/domain"

// Role sets for the protected operations.
var (
	CatalogManagers = []string{"admin", "manager"}
	StaffManagers   = []string{"admin"}
)

// IsAllowed reports whether an authenticated staff principal holds one of allowedRoles.
// It never fails: unauthenticated callers, gamers and empty role names are denied.
// The role's deletion state is not consulted here.
func IsAllowed(principal domain.Principal, allowedRoles ...string) bool {
	if !principal.Authenticated || principal.Kind != domain.KindStaff {
		return false
	}
	if principal.RoleName == "" {
		return false
	}
	for _, role := range allowedRoles {
		if role == principal.RoleName {
			return true
		}
	}
	return false
}

// IsGamer reports whether the principal is an authenticated gamer.
func IsGamer(principal domain.Principal) bool {
	return principal.Authenticated && principal.Kind == domain.KindGamer && principal.ID != 0
}
