package guard

import "github.com/skillbridge/jobmatch/internal/core/domain"

const (
	SignInPath       = "/signin"
	UnauthorizedPath = "/unauthorized"
)

// Route is a protected view and the policy that guards it.
type Route struct {
	Path   string
	Title  string
	Policy domain.RouteGuardPolicy
}

// DefaultRoutes is the route table of the SkillBridge client.
func DefaultRoutes() []Route {
	return []Route{
		{Path: "/jobseeker/dashboard", Title: "Job Seeker Dashboard", Policy: domain.Require(domain.RoleJobSeeker)},
		{Path: "/jobseeker/profile", Title: "Job Seeker Profile", Policy: domain.Require(domain.RoleJobSeeker)},
		{Path: "/employer/dashboard", Title: "Employer Dashboard", Policy: domain.Require(domain.RoleEmployer)},
		{Path: "/employer/profile", Title: "Employer Profile", Policy: domain.Require(domain.RoleEmployer)},
		{Path: "/employer/post-job", Title: "Post a Job", Policy: domain.AllowAny(domain.RoleEmployer, domain.RoleAdmin)},
		{Path: "/admin/dashboard", Title: "Admin Dashboard", Policy: domain.Require(domain.RoleAdmin)},
		{Path: "/admin/users", Title: "User Management", Policy: domain.Require(domain.RoleAdmin)},
	}
}
