// Package services contains the application services of the fortune client:
// the session manager that owns the member record, and the fortune service
// that serves gated, memoized fortune content to UI surfaces.
package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/fortunekeeper/internal/client/adapter"
	"github.com/dmitrijs2005/fortunekeeper/internal/client/client"
	"github.com/dmitrijs2005/fortunekeeper/internal/client/identity"
	"github.com/dmitrijs2005/fortunekeeper/internal/client/models"
	"github.com/dmitrijs2005/fortunekeeper/internal/common"
	"github.com/dmitrijs2005/fortunekeeper/internal/logging"
)

// MemberStore persists the member between runs.
type MemberStore interface {
	SaveMember(ctx context.Context, subject string, m *models.Member) error
	LoadMember(ctx context.Context) (string, *models.Member, error)
	ClearMember(ctx context.Context) error
}

// SessionManager owns the session state: who is logged in and at which tier.
// It is safe for concurrent use; State returns immutable snapshots.
type SessionManager struct {
	provider identity.Provider
	client   client.Client
	store    MemberStore
	appID    string
	logger   logging.Logger

	mu    sync.RWMutex
	state models.SessionState
	// started counts bootstraps; applied is the bootstrap whose outcome is
	// in state, and cutoff discards bootstraps that began before a logout.
	started uint64
	applied uint64
	cutoff  uint64
	// version changes with every state change; a save only proceeds while
	// the state it was taken from is still current.
	version uint64

	// persistMu orders writes to the store: saves and the logout clear
	// never interleave.
	persistMu sync.Mutex
}

func NewSessionManager(provider identity.Provider, c client.Client, store MemberStore, appID string, logger logging.Logger) *SessionManager {
	return &SessionManager{
		provider: provider,
		client:   c,
		store:    store,
		appID:    appID,
		logger:   logger.With("component", "session"),
		state:    models.SessionState{Status: models.SessionLoading},
	}
}

// State returns a snapshot of the session.
func (s *SessionManager) State() models.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(s.state)
}

// SubjectID is the cache partition of the current session.
func (s *SessionManager) SubjectID() string {
	return s.State().SubjectID()
}

func snapshot(st models.SessionState) models.SessionState {
	st.Member = st.Member.Clone()
	return st
}

// Restore pre-populates the member from durable storage so the UI can render
// optimistically. The status stays loading until Bootstrap settles it.
func (s *SessionManager) Restore(ctx context.Context) models.SessionState {
	subject, m, err := s.store.LoadMember(ctx)
	if err != nil {
		s.logger.Warn(ctx, "discarding stored member", "error", err)
		s.persistMu.Lock()
		if err := s.store.ClearMember(ctx); err != nil {
			s.logger.Error(ctx, "clearing stored member failed", "error", err)
		}
		s.persistMu.Unlock()
		return s.State()
	}
	if m == nil {
		return s.State()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Status == models.SessionLoading && s.state.Member == nil {
		s.version++
		s.state.Member = m
		s.state.IdentitySubject = subject
		s.logger.Debug(ctx, "restored member", "member_id", m.ID)
	}
	return snapshot(s.state)
}

// Bootstrap settles the session. Without a federated session it starts the
// provider's interactive login and returns identity.ErrLoginRedirect; the
// state is left loading. Every other failure degrades to guest mode and is
// not returned.
func (s *SessionManager) Bootstrap(ctx context.Context) (models.SessionState, error) {
	gen := s.begin()
	log := s.logger.With("bootstrap_id", uuid.NewString())

	if !s.provider.IsLoggedIn(ctx) {
		log.Info(ctx, "no identity session, starting login")
		if err := s.provider.Login(ctx); err != nil {
			log.Warn(ctx, "starting login failed", "error", err)
			return s.State(), fmt.Errorf("%w: %w", identity.ErrLoginRedirect, err)
		}
		return s.State(), identity.ErrLoginRedirect
	}

	subject, err := identity.Subject(s.provider.IDToken(ctx))
	if err != nil {
		log.Warn(ctx, "unusable identity token, continuing as guest", "error", err)
		return s.degrade(gen, ""), nil
	}

	m, err := s.exchange(ctx, subject)
	if err != nil {
		log.Warn(ctx, "member exchange failed, continuing as guest", "subject", subject, "error", err)
		return s.degrade(gen, subject), nil
	}

	st, version, ok := s.settle(gen, subject, m)
	if !ok {
		log.Info(ctx, "discarding member obtained before logout", "member_id", m.ID)
		return st, nil
	}
	if err := s.persist(ctx, version); err != nil {
		log.Error(ctx, "persisting member failed", "error", err)
	}
	log.Info(ctx, "session ready", "member_id", m.ID, "tier", m.Tier)
	return st, nil
}

// RefreshMember repeats the login exchange for the current subject and
// updates tier and expiry only.
func (s *SessionManager) RefreshMember(ctx context.Context) (models.SessionState, error) {
	cur := s.State()
	if cur.Member == nil || cur.IdentitySubject == "" {
		return cur, fmt.Errorf("refresh member: %w", common.ErrorNotFound)
	}

	fresh, err := s.exchange(ctx, cur.IdentitySubject)
	if err != nil {
		return cur, fmt.Errorf("refresh member: %w", err)
	}

	s.mu.Lock()
	m := s.state.Member
	if m == nil || m.ID != fresh.ID {
		s.mu.Unlock()
		return s.State(), fmt.Errorf("refresh member: %w", common.ErrorNotFound)
	}
	m.Tier = fresh.Tier
	m.ExpiresAt = fresh.ExpiresAt
	s.version++
	version := s.version
	st := snapshot(s.state)
	s.mu.Unlock()

	if err := s.persist(ctx, version); err != nil {
		s.logger.Error(ctx, "persisting member failed", "error", err)
	}
	s.logger.Info(ctx, "member refreshed", "member_id", st.Member.ID, "tier", st.Member.Tier)
	return st, nil
}

// Logout forgets the member locally. Cached content stays partitioned by
// member id, so nothing else needs clearing.
func (s *SessionManager) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.cutoff = s.started
	s.applied = s.started
	s.version++
	s.state = models.SessionState{Status: models.SessionGuest}
	s.mu.Unlock()

	s.persistMu.Lock()
	defer s.persistMu.Unlock()
	if err := s.store.ClearMember(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.logger.Info(ctx, "logged out")
	return nil
}

func (s *SessionManager) exchange(ctx context.Context, subject string) (*models.Member, error) {
	raw, err := s.client.Login(ctx, s.appID, subject)
	if err != nil {
		return nil, err
	}
	return adapter.Member(raw)
}

func (s *SessionManager) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started++
	return s.started
}

// settle installs a successful exchange; the last one to complete wins.
func (s *SessionManager) settle(gen uint64, subject string, m *models.Member) (models.SessionState, uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen <= s.cutoff {
		return snapshot(s.state), s.version, false
	}
	s.applied = gen
	s.version++
	s.state = models.SessionState{Status: models.SessionReady, Member: m, IdentitySubject: subject}
	return snapshot(s.state), s.version, true
}

// persist saves the member of state version. It is a no-op once the state
// has moved on (a logout, a newer bootstrap, a guest fallback), so the store
// never holds a member the session no longer has.
func (s *SessionManager) persist(ctx context.Context, version uint64) error {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	s.mu.RLock()
	current := s.version == version && s.state.Member != nil
	st := snapshot(s.state)
	s.mu.RUnlock()
	if !current {
		s.logger.Debug(ctx, "skipping save of superseded session state")
		return nil
	}
	return s.store.SaveMember(ctx, st.IdentitySubject, st.Member)
}

// degrade switches to guest mode unless a newer bootstrap already settled
// the session.
func (s *SessionManager) degrade(gen uint64, subject string) models.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen > s.cutoff && gen >= s.applied {
		s.applied = gen
		s.version++
		s.state = models.SessionState{Status: models.SessionGuest, IdentitySubject: subject}
	}
	return snapshot(s.state)
}
