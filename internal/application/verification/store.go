// Package verification holds in-flight OTP challenges in memory.
//
// Challenges are keyed by (purpose, subject). The key space is split into
// shards whose locks only guard map lookups; every key owns its own mutex
// for state transitions, so work on one subject never waits on another.
package verification

import (
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/go-catalog-nosql/internal/domain"
	"github.com/go-catalog-nosql/internal/pkg/id"
	"github.com/go-catalog-nosql/internal/pkg/token"
)

const shardCount = 32

// Key identifies the single active challenge a subject may hold per purpose.
type Key struct {
	Purpose domain.Purpose
	Subject string
}

type Config struct {
	TTL         time.Duration
	GrantTTL    time.Duration
	MaxAttempts int
}

type Option func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

type slot struct {
	mu sync.Mutex
	pv *domain.PendingVerification
	// dead is set once the sweep has unlinked the slot from its shard.
	// Holders of a stale pointer must look the key up again.
	dead bool
}

type shard struct {
	mu      sync.Mutex
	entries map[Key]*slot
}

type Store struct {
	cfg    Config
	now    func() time.Time
	shards [shardCount]*shard
	refs   sync.Map // ref -> Key
}

func NewStore(cfg Config, opts ...Option) *Store {
	if cfg.TTL <= 0 {
		cfg.TTL = 5 * time.Minute
	}
	if cfg.GrantTTL <= 0 {
		cfg.GrantTTL = 10 * time.Minute
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	s := &Store{cfg: cfg, now: time.Now}
	for i := range s.shards {
		s.shards[i] = &shard{entries: make(map[Key]*slot)}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) shardFor(k Key) *shard {
	h := fnv.New32a()
	h.Write([]byte(k.Purpose))
	h.Write([]byte{0})
	h.Write([]byte(k.Subject))
	return s.shards[h.Sum32()%shardCount]
}

// acquire returns the locked slot for k, creating it when absent.
func (s *Store) acquire(k Key) *slot {
	sh := s.shardFor(k)
	for {
		sh.mu.Lock()
		sl, ok := sh.entries[k]
		if !ok {
			sl = &slot{}
			sh.entries[k] = sl
		}
		sh.mu.Unlock()

		sl.mu.Lock()
		if !sl.dead {
			return sl
		}
		sl.mu.Unlock()
	}
}

// lookup returns the locked slot for k, or nil when there is none.
func (s *Store) lookup(k Key) *slot {
	sh := s.shardFor(k)
	sh.mu.Lock()
	sl, ok := sh.entries[k]
	sh.mu.Unlock()
	if !ok {
		return nil
	}
	sl.mu.Lock()
	if sl.dead {
		sl.mu.Unlock()
		return nil
	}
	return sl
}

// Issue stores a new challenge for (purpose, subject), replacing any
// previous one. The previous reference stops resolving immediately.
func (s *Store) Issue(purpose domain.Purpose, subject string, candidate *domain.Candidate, code string) domain.Challenge {
	k := Key{Purpose: purpose, Subject: subject}
	now := s.now()
	pv := &domain.PendingVerification{
		Ref:       id.New(),
		Purpose:   purpose,
		Subject:   subject,
		Candidate: candidate,
		CodeHash:  token.Fingerprint(code),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.cfg.TTL),
		State:     domain.StateIssued,
	}

	sl := s.acquire(k)
	defer sl.mu.Unlock()
	if sl.pv != nil {
		s.refs.Delete(sl.pv.Ref)
	}
	sl.pv = pv
	s.refs.Store(pv.Ref, k)

	return domain.Challenge{Ref: pv.Ref, ExpiresAt: pv.ExpiresAt}
}

// withRef runs fn on the challenge currently behind ref while holding its key lock.
func (s *Store) withRef(purpose domain.Purpose, ref string, fn func(pv *domain.PendingVerification) error) error {
	v, ok := s.refs.Load(ref)
	if !ok {
		return fmt.Errorf("unknown challenge: %w", domain.ErrInvalidCode)
	}
	k := v.(Key)
	if k.Purpose != purpose {
		return fmt.Errorf("challenge purpose mismatch: %w", domain.ErrInvalidCode)
	}
	sl := s.lookup(k)
	if sl == nil {
		return fmt.Errorf("unknown challenge: %w", domain.ErrInvalidCode)
	}
	defer sl.mu.Unlock()
	if sl.pv == nil || sl.pv.Ref != ref {
		return fmt.Errorf("challenge superseded: %w", domain.ErrInvalidCode)
	}
	return fn(sl.pv)
}

// checkCode validates an issued challenge against a submitted code.
// Must be called with the key lock held.
func (s *Store) checkCode(pv *domain.PendingVerification, code string, now time.Time) error {
	switch pv.State {
	case domain.StateIssued:
	case domain.StateExpired:
		return fmt.Errorf("challenge expired: %w", domain.ErrChallengeExpired)
	default:
		return fmt.Errorf("challenge already %s: %w", pv.State, domain.ErrInvalidCode)
	}
	if !now.Before(pv.ExpiresAt) {
		pv.State = domain.StateExpired
		return fmt.Errorf("challenge expired: %w", domain.ErrChallengeExpired)
	}
	if !token.Matches(pv.CodeHash, code) {
		pv.Attempts++
		if pv.Attempts >= s.cfg.MaxAttempts {
			pv.State = domain.StateExpired
		}
		return fmt.Errorf("code mismatch: %w", domain.ErrInvalidCode)
	}
	return nil
}

// Consume confirms code against ref and moves the challenge to consumed.
// A copy of the challenge is returned so the caller can act on it after
// the lock is released.
func (s *Store) Consume(purpose domain.Purpose, ref, code string) (domain.PendingVerification, error) {
	var out domain.PendingVerification
	err := s.withRef(purpose, ref, func(pv *domain.PendingVerification) error {
		if err := s.checkCode(pv, code, s.now()); err != nil {
			return err
		}
		pv.State = domain.StateConsumed
		out = *pv
		return nil
	})
	return out, err
}

// Verify confirms code against ref and moves the challenge to verified,
// re-arming its expiry to the grant window.
func (s *Store) Verify(purpose domain.Purpose, ref, code string) (domain.PendingVerification, error) {
	var out domain.PendingVerification
	err := s.withRef(purpose, ref, func(pv *domain.PendingVerification) error {
		now := s.now()
		if err := s.checkCode(pv, code, now); err != nil {
			return err
		}
		pv.State = domain.StateVerified
		pv.ExpiresAt = now.Add(s.cfg.GrantTTL)
		out = *pv
		return nil
	})
	return out, err
}

// Granted reports whether subject holds a verified, unexpired challenge.
func (s *Store) Granted(purpose domain.Purpose, subject string) bool {
	sl := s.lookup(Key{Purpose: purpose, Subject: subject})
	if sl == nil {
		return false
	}
	defer sl.mu.Unlock()
	return sl.pv != nil && sl.pv.State == domain.StateVerified && s.now().Before(sl.pv.ExpiresAt)
}

// ClaimGrant moves a verified challenge for subject to consumed. Only one
// caller can win a given grant.
func (s *Store) ClaimGrant(purpose domain.Purpose, subject string) error {
	sl := s.lookup(Key{Purpose: purpose, Subject: subject})
	if sl == nil {
		return fmt.Errorf("no verified challenge: %w", domain.ErrUnauthorized)
	}
	defer sl.mu.Unlock()
	pv := sl.pv
	if pv == nil || pv.State != domain.StateVerified {
		return fmt.Errorf("no verified challenge: %w", domain.ErrUnauthorized)
	}
	if !s.now().Before(pv.ExpiresAt) {
		pv.State = domain.StateExpired
		return fmt.Errorf("verification grant expired: %w", domain.ErrUnauthorized)
	}
	pv.State = domain.StateConsumed
	return nil
}

// Sweep evicts consumed, expired and timed-out challenges and returns how
// many were removed. Keys that are busy are left for the next pass.
func (s *Store) Sweep() int {
	now := s.now()
	removed := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		for k, sl := range sh.entries {
			if !sl.mu.TryLock() {
				continue
			}
			if sl.pv == nil || !sl.pv.Active(now) {
				if sl.pv != nil {
					s.refs.Delete(sl.pv.Ref)
				}
				sl.dead = true
				delete(sh.entries, k)
				removed++
			}
			sl.mu.Unlock()
		}
		sh.mu.Unlock()
	}
	return removed
}

// Len returns the number of keys currently held, live or not.
func (s *Store) Len() int {
	n := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		n += len(sh.entries)
		sh.mu.Unlock()
	}
	return n
}
