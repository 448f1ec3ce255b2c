package guard

import (
	"fmt"
	"net/url"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/skillbridge/jobmatch/internal/client/session"
	"github.com/skillbridge/jobmatch/internal/core/domain"
)

type State int

const (
	StateLoading State = iota + 1
	StateUnauthenticated
	StateAuthorized
	StateForbidden
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthorized:
		return "authorized"
	case StateForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// Decision is the outcome of one evaluation. Redirect is empty unless the
// route was denied.
type Decision struct {
	State    State
	Path     string
	Route    *Route
	Redirect string
}

// Render reports whether the guarded content may be shown.
func (d Decision) Render() bool { return d.State == StateAuthorized }

type NoticeReason int

const (
	NoticeNotSignedIn NoticeReason = iota + 1
	NoticeWrongRole
)

// Notice is the user-visible reason for a denial.
type Notice struct {
	Reason  NoticeReason
	Path    string
	Message string
}

type Notifier interface {
	Notify(Notice)
}

type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

// SessionReader is the part of session.Store the guard depends on.
type SessionReader interface {
	Loading() bool
	CurrentIdentity() (domain.Identity, bool)
	Subscribe(func(session.Event)) func()
}

// Guard decides whether a route may be rendered. It keeps no decision
// between calls; every evaluation reads the session afresh.
type Guard struct {
	store    SessionReader
	notifier Notifier
	routes   map[string]Route
	log      zerolog.Logger
}

func New(store SessionReader, notifier Notifier, routes []Route, log zerolog.Logger) *Guard {
	if notifier == nil {
		notifier = NotifierFunc(func(Notice) {})
	}
	table := make(map[string]Route, len(routes))
	for _, r := range routes {
		table[r.Path] = r
	}
	return &Guard{store: store, notifier: notifier, routes: table, log: log}
}

// Lookup returns the registered route for path, ignoring any query string.
func (g *Guard) Lookup(path string) (Route, bool) {
	r, ok := g.routes[stripQuery(path)]
	return r, ok
}

// Evaluate checks path against the current session and emits a notice when
// access is denied. Paths that are not registered are public.
func (g *Guard) Evaluate(path string) Decision {
	return g.evaluate(path, true)
}

// Watch evaluates path now and again after every session event until the
// returned cancel func is called. Notices are emitted only when the state
// changes.
func (g *Guard) Watch(path string, fn func(Decision)) (cancel func()) {
	var (
		last    State
		running atomic.Bool
		pending atomic.Bool
		stopped atomic.Bool
	)
	step := func() {
		d := g.evaluate(path, false)
		if d.State != last {
			g.notify(d)
		}
		last = d.State
		if !stopped.Load() {
			fn(d)
		}
	}
	// Evaluation can itself publish a session event (lazy expiry), so
	// re-entrant calls are folded into the running loop instead of blocking.
	deliver := func() {
		pending.Store(true)
		for !stopped.Load() {
			if !running.CompareAndSwap(false, true) {
				return
			}
			for pending.Swap(false) && !stopped.Load() {
				step()
			}
			running.Store(false)
			if !pending.Load() {
				return
			}
		}
	}

	unsubscribe := g.store.Subscribe(func(session.Event) { deliver() })
	deliver()

	return func() {
		stopped.Store(true)
		unsubscribe()
	}
}

func (g *Guard) evaluate(path string, notify bool) (d Decision) {
	defer func() {
		if r := recover(); r != nil {
			g.log.Error().Str("path", path).Interface("panic", r).Msg("route guard evaluation failed")
			d = deny(StateUnauthenticated, path, nil)
			if notify {
				g.notify(d)
			}
		}
	}()

	route, guarded := g.Lookup(path)
	if !guarded {
		return Decision{State: StateAuthorized, Path: path}
	}
	if g.store.Loading() {
		return Decision{State: StateLoading, Path: path, Route: &route}
	}

	var id *domain.Identity
	if current, ok := g.store.CurrentIdentity(); ok {
		id = &current
	}

	switch route.Policy.Check(id) {
	case domain.AccessGranted:
		d = Decision{State: StateAuthorized, Path: path, Route: &route}
	case domain.AccessForbidden:
		d = deny(StateForbidden, path, &route)
	default:
		d = deny(StateUnauthenticated, path, &route)
	}
	if notify {
		g.notify(d)
	}
	return d
}

func (g *Guard) notify(d Decision) {
	switch d.State {
	case StateUnauthenticated:
		g.notifier.Notify(Notice{
			Reason:  NoticeNotSignedIn,
			Path:    d.Path,
			Message: "Please sign in to continue.",
		})
	case StateForbidden:
		title := d.Path
		if d.Route != nil && d.Route.Title != "" {
			title = d.Route.Title
		}
		g.notifier.Notify(Notice{
			Reason:  NoticeWrongRole,
			Path:    d.Path,
			Message: fmt.Sprintf("Your account does not have access to %s.", title),
		})
	}
}

func deny(state State, path string, route *Route) Decision {
	d := Decision{State: state, Path: path, Route: route}
	switch state {
	case StateForbidden:
		d.Redirect = UnauthorizedPath
	default:
		d.Redirect = SignInRedirect(path)
	}
	return d
}

// SignInRedirect builds the sign-in path that returns to from after login.
func SignInRedirect(from string) string {
	if from == "" {
		return SignInPath
	}
	return SignInPath + "?from=" + url.QueryEscape(from)
}

func stripQuery(path string) string {
	if u, err := url.Parse(path); err == nil {
		return u.Path
	}
	return path
}
