package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/skillbridge/jobmatch/internal/core/domain"
	"github.com/skillbridge/jobmatch/internal/core/validation"
)

const defaultTimeout = 15 * time.Second

// Backend is the auth API as seen by the store. apiclient.Client implements it.
type Backend interface {
	SignIn(ctx context.Context, creds domain.Credentials) (domain.Session, error)
	Me(ctx context.Context, token string) (domain.Identity, error)
	SignOut(ctx context.Context, token string) error
	Refresh(ctx context.Context, token string) (domain.Session, error)
}

type EventType int

const (
	// EventLoading fires when the loading flag flips; Event.Loading holds the new value.
	EventLoading EventType = iota + 1
	EventSignedIn
	EventSignedOut
	EventExpired
	EventRefreshed
)

func (t EventType) String() string {
	switch t {
	case EventLoading:
		return "loading"
	case EventSignedIn:
		return "signed_in"
	case EventSignedOut:
		return "signed_out"
	case EventExpired:
		return "expired"
	case EventRefreshed:
		return "refreshed"
	default:
		return "unknown"
	}
}

// Event is published after every session change. Identity is set for
// EventSignedIn and EventRefreshed.
type Event struct {
	Type     EventType
	Identity domain.Identity
	Loading  bool
}

type Option func(*Store)

func WithPersister(p Persister) Option { return func(s *Store) { s.persister = p } }

// WithTimeout bounds every backend round-trip.
func WithTimeout(d time.Duration) Option { return func(s *Store) { s.timeout = d } }

func WithClock(now func() time.Time) Option { return func(s *Store) { s.now = now } }

func WithLogger(log zerolog.Logger) Option { return func(s *Store) { s.log = log } }

type subscription struct {
	fn     func(Event)
	active atomic.Bool
}

// Store owns the single session of the client process. It starts empty; call
// Rehydrate to restore a persisted session.
type Store struct {
	backend   Backend
	persister Persister
	timeout   time.Duration
	now       func() time.Time
	log       zerolog.Logger

	mu         sync.Mutex
	session    *domain.Session
	loading    bool
	pending    bool
	generation uint64
	subs       map[uint64]*subscription
	nextSub    uint64
}

func NewStore(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend:   backend,
		persister: &MemoryPersister{},
		timeout:   defaultTimeout,
		now:       time.Now,
		log:       zerolog.Nop(),
		subs:      make(map[uint64]*subscription),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SignIn performs one round-trip to the backend. On success the new session
// replaces any prior one; on failure the prior session is left as it was.
// Failures are an *AuthError, or validation.FieldErrors when the server
// rejected the form itself.
func (s *Store) SignIn(ctx context.Context, creds domain.Credentials) (domain.Identity, error) {
	s.mu.Lock()
	if s.pending {
		s.mu.Unlock()
		return domain.Identity{}, ErrSignInInProgress
	}
	s.pending = true
	gen := s.generation
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	sess, err := s.backend.SignIn(ctx, creds)
	if err == nil {
		err = checkSession(sess, creds.Role)
	}
	if err != nil {
		s.mu.Lock()
		s.pending = false
		s.mu.Unlock()
		// Field errors go back to the form as they are.
		var fields validation.FieldErrors
		if errors.As(err, &fields) {
			s.log.Debug().Err(err).Msg("sign-in form rejected")
			return domain.Identity{}, fields
		}
		authErr := classify(err)
		s.log.Debug().Err(err).Str("kind", authErr.Kind.String()).Msg("sign-in rejected")
		return domain.Identity{}, authErr
	}

	s.mu.Lock()
	s.pending = false
	if s.generation != gen {
		s.mu.Unlock()
		s.log.Debug().Msg("discarding stale sign-in response")
		return domain.Identity{}, ErrStaleResponse
	}
	s.installLocked(sess)
	subs := s.snapshotLocked()
	s.mu.Unlock()

	s.log.Info().Str("user_id", sess.Identity.ID()).Str("role", sess.Identity.Role().String()).Msg("signed in")
	publish(subs, Event{Type: EventSignedIn, Identity: sess.Identity})
	return sess.Identity, nil
}

func checkSession(sess domain.Session, requested domain.Role) error {
	if sess.Token == "" || sess.Identity.IsZero() || !sess.Identity.Role().Valid() {
		return errors.New("malformed session in sign-in response")
	}
	if requested.Valid() && sess.Identity.Role() != requested {
		return domain.ErrRoleMismatch
	}
	return nil
}

// SignOut ends the session. It is safe to call repeatedly. The backend is told
// on a best-effort basis; local state is always cleared.
func (s *Store) SignOut(ctx context.Context) {
	s.mu.Lock()
	prev := s.session
	s.clearLocked()
	subs := s.snapshotLocked()
	s.mu.Unlock()

	if prev == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.backend.SignOut(ctx, prev.Token); err != nil {
		s.log.Warn().Err(err).Msg("server sign-out failed")
	}

	s.log.Info().Str("user_id", prev.Identity.ID()).Msg("signed out")
	publish(subs, Event{Type: EventSignedOut})
}

// Expire tears the session down after the server rejected its token.
func (s *Store) Expire() {
	s.mu.Lock()
	had := s.session != nil
	s.clearLocked()
	subs := s.snapshotLocked()
	s.mu.Unlock()

	if had {
		s.log.Info().Msg("session expired")
		publish(subs, Event{Type: EventExpired})
	}
}

// HandleAuthFailure expires the session when err says the server no longer
// accepts the token, and reports whether it did.
func (s *Store) HandleAuthFailure(err error) bool {
	if err == nil || !isAuthFailure(err) {
		return false
	}
	s.Expire()
	return true
}

// Refresh swaps the current token for a new one.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		return ErrNotSignedIn
	}
	token := s.session.Token
	gen := s.generation
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	sess, err := s.backend.Refresh(ctx, token)
	if err != nil {
		if s.HandleAuthFailure(err) {
			return domain.ErrSessionExpired
		}
		return classify(err)
	}

	s.mu.Lock()
	if s.generation != gen {
		s.mu.Unlock()
		return ErrStaleResponse
	}
	s.installLocked(sess)
	subs := s.snapshotLocked()
	s.mu.Unlock()

	publish(subs, Event{Type: EventRefreshed, Identity: sess.Identity})
	return nil
}

// Rehydrate restores the persisted session, if any, and asks the server
// whether it is still good. Loading is set for the duration. A session the
// server rejects is dropped. When the server cannot be reached the persisted
// session is kept and a NetworkFailure is returned.
func (s *Store) Rehydrate(ctx context.Context) error {
	s.mu.Lock()
	gen := s.generation
	s.loading = true
	subs := s.snapshotLocked()
	s.mu.Unlock()
	publish(subs, Event{Type: EventLoading, Loading: true})

	defer func() {
		s.mu.Lock()
		s.loading = false
		subs := s.snapshotLocked()
		s.mu.Unlock()
		publish(subs, Event{Type: EventLoading, Loading: false})
	}()

	saved, err := s.persister.Load()
	if errors.Is(err, ErrNoSession) {
		return nil
	}
	if err != nil {
		return err
	}
	if saved.Expired(s.now()) {
		s.log.Debug().Msg("persisted session has expired")
		return s.dropPersisted(gen)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	id, err := s.backend.Me(ctx, saved.Token)
	var authErr *AuthError
	switch {
	case err == nil:
		saved.Identity = id
	case isAuthFailure(err) || errors.Is(err, domain.ErrInvalidToken) || errors.Is(err, domain.ErrUserNotFound):
		s.log.Debug().Err(err).Msg("persisted session rejected")
		return s.dropPersisted(gen)
	default:
		authErr = classify(err)
		if authErr.Kind != NetworkFailure {
			return s.dropPersisted(gen)
		}
	}

	s.mu.Lock()
	if s.generation == gen {
		s.installLocked(saved)
	}
	s.mu.Unlock()

	if authErr != nil {
		return authErr
	}
	return nil
}

// dropPersisted deletes the persisted session unless the store has moved on
// since gen, in which case whatever is persisted now belongs to the newer
// session.
func (s *Store) dropPersisted(gen uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		s.log.Debug().Msg("session changed during rehydrate, keeping persisted copy")
		return nil
	}
	return s.persister.Delete()
}

// CurrentIdentity returns the signed-in identity. A session past its expiry is
// torn down here rather than on a timer.
func (s *Store) CurrentIdentity() (domain.Identity, bool) {
	sess, ok := s.current()
	if !ok {
		return domain.Identity{}, false
	}
	return sess.Identity, true
}

func (s *Store) IsAuthenticated() bool {
	_, ok := s.current()
	return ok
}

// Token returns the bearer token of the live session.
func (s *Store) Token() (string, bool) {
	sess, ok := s.current()
	if !ok {
		return "", false
	}
	return sess.Token, true
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Subscribe registers fn for every future event. fn runs on the goroutine that
// changed the session, outside the store lock. No call is made after the
// returned func has run.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	sub := &subscription{fn: fn}
	sub.active.Store(true)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = sub
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			sub.active.Store(false)
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store) current() (domain.Session, bool) {
	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		return domain.Session{}, false
	}
	if s.session.Expired(s.now()) {
		s.clearLocked()
		subs := s.snapshotLocked()
		s.mu.Unlock()
		s.log.Info().Msg("session expired")
		publish(subs, Event{Type: EventExpired})
		return domain.Session{}, false
	}
	sess := *s.session
	s.mu.Unlock()
	return sess, true
}

func (s *Store) installLocked(sess domain.Session) {
	s.generation++
	s.session = &sess
	if err := s.persister.Save(sess); err != nil {
		s.log.Warn().Err(err).Msg("could not persist session")
	}
}

func (s *Store) clearLocked() {
	s.generation++
	s.session = nil
	if err := s.persister.Delete(); err != nil {
		s.log.Warn().Err(err).Msg("could not delete persisted session")
	}
}

func (s *Store) snapshotLocked() []*subscription {
	out := make([]*subscription, 0, len(s.subs))
	for _, sub := range s.subs {
		out = append(out, sub)
	}
	return out
}

func publish(subs []*subscription, ev Event) {
	for _, sub := range subs {
		if sub.active.Load() {
			sub.fn(ev)
		}
	}
}
