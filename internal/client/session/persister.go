package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/zalando/go-keyring"

	"github.com/skillbridge/jobmatch/internal/core/domain"
)

const (
	keyringService = "skillbridge"
	keyringKey     = "session"
)

// ErrNoSession is returned by Load when nothing has been persisted.
var ErrNoSession = errors.New("no persisted session")

// Persister stores the session under a single well-known key.
type Persister interface {
	Load() (domain.Session, error)
	Save(domain.Session) error
	Delete() error
}

// KeyringPersister keeps the session in the OS keyring.
type KeyringPersister struct {
	Service string
	Key     string
}

func NewKeyringPersister() *KeyringPersister {
	return &KeyringPersister{Service: keyringService, Key: keyringKey}
}

func (p *KeyringPersister) Load() (domain.Session, error) {
	raw, err := keyring.Get(p.Service, p.Key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return domain.Session{}, ErrNoSession
		}
		return domain.Session{}, fmt.Errorf("failed to load session: %w", err)
	}

	var s domain.Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil || s.Token == "" {
		// A corrupt entry is as good as none; drop it so the next Save starts clean.
		_ = keyring.Delete(p.Service, p.Key)
		return domain.Session{}, ErrNoSession
	}
	return s, nil
}

func (p *KeyringPersister) Save(s domain.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := keyring.Set(p.Service, p.Key, string(data)); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (p *KeyringPersister) Delete() error {
	err := keyring.Delete(p.Service, p.Key)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// MemoryPersister keeps the session for the life of the process only.
type MemoryPersister struct {
	mu      sync.Mutex
	session *domain.Session
}

func (p *MemoryPersister) Load() (domain.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.session == nil {
		return domain.Session{}, ErrNoSession
	}
	return *p.session, nil
}

func (p *MemoryPersister) Save(s domain.Session) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.session = &s
	return nil
}

func (p *MemoryPersister) Delete() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.session = nil
	return nil
}
