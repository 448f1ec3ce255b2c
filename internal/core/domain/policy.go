package domain

// Access is the outcome of checking an identity against a RouteGuardPolicy.
type Access int

const (
	AccessGranted Access = iota
	AccessUnauthenticated
	AccessForbidden
)

func (a Access) String() string {
	switch a {
	case AccessGranted:
		return "granted"
	case AccessUnauthenticated:
		return "unauthenticated"
	case AccessForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// RouteGuardPolicy is attached to a protected route when the route is registered.
type RouteGuardPolicy struct {
	RequiredRole *Role
	AllowedRoles []Role
}

// Require builds a policy demanding exactly one role.
func Require(r Role) RouteGuardPolicy {
	return RouteGuardPolicy{RequiredRole: &r}
}

// AllowAny builds a policy admitting any of roles. With no roles it only
// requires a signed-in user.
func AllowAny(roles ...Role) RouteGuardPolicy {
	return RouteGuardPolicy{AllowedRoles: append([]Role(nil), roles...)}
}

// Check evaluates id against the policy. A nil or zero identity is always
// AccessUnauthenticated, whatever the role constraints.
func (p RouteGuardPolicy) Check(id *Identity) Access {
	if id == nil || id.IsZero() {
		return AccessUnauthenticated
	}
	if p.RequiredRole != nil && *p.RequiredRole != id.Role() {
		return AccessForbidden
	}
	if len(p.AllowedRoles) > 0 && !containsRole(p.AllowedRoles, id.Role()) {
		return AccessForbidden
	}
	return AccessGranted
}

func containsRole(roles []Role, r Role) bool {
	for _, candidate := range roles {
		if candidate == r {
			return true
		}
	}
	return false
}
