package dashboard

import (
	"sync"

	"github.com/skillbridge/jobmatch/internal/client/guard"
	"github.com/skillbridge/jobmatch/internal/client/session"
	"github.com/skillbridge/jobmatch/internal/core/domain"
)

// DashboardPath is the landing page for role. Roles without a dashboard land
// on the unauthorized page.
func DashboardPath(role domain.Role) string {
	switch role {
	case domain.RoleJobSeeker:
		return "/jobseeker/dashboard"
	case domain.RoleEmployer:
		return "/employer/dashboard"
	case domain.RoleAdmin:
		return "/admin/dashboard"
	default:
		return guard.UnauthorizedPath
	}
}

// ProfilePath is the profile page for role.
func ProfilePath(role domain.Role) string {
	switch role {
	case domain.RoleJobSeeker:
		return "/jobseeker/profile"
	case domain.RoleEmployer:
		return "/employer/profile"
	case domain.RoleAdmin:
		return "/admin/users"
	default:
		return guard.UnauthorizedPath
	}
}

// Navigator moves the client to path.
type Navigator interface {
	Navigate(path string)
}

type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

type Subscriber interface {
	Subscribe(func(session.Event)) func()
}

// Router sends the user to their dashboard once per successful sign-in.
// Rehydrated and refreshed sessions do not navigate.
type Router struct {
	nav         Navigator
	unsubscribe func()
	once        sync.Once
}

func NewRouter(store Subscriber, nav Navigator) *Router {
	r := &Router{nav: nav}
	r.unsubscribe = store.Subscribe(r.handle)
	return r
}

func (r *Router) handle(ev session.Event) {
	if ev.Type != session.EventSignedIn {
		return
	}
	r.nav.Navigate(DashboardPath(ev.Identity.Role()))
}

// Close stops the router from reacting to further sign-ins.
func (r *Router) Close() {
	r.once.Do(r.unsubscribe)
}
