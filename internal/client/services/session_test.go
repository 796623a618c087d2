package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/fortunekeeper/internal/client/client"
	"github.com/dmitrijs2005/fortunekeeper/internal/client/identity"
	"github.com/dmitrijs2005/fortunekeeper/internal/client/models"
	"github.com/dmitrijs2005/fortunekeeper/internal/client/storage"
	"github.com/dmitrijs2005/fortunekeeper/internal/common"
	"github.com/dmitrijs2005/fortunekeeper/internal/logging"
)

const paidLogin = `{"status":"success","member_id":1001,"email":"ann@example.com","name":"Ann","app_id":"ai_fortune",
	"subscription":"paid","expire_date":"2026-12-31 00:00:00","user_fortune_id":77}`

type sessionFixture struct {
	provider *identity.StaticProvider
	client   *fakeClient
	store    *storage.Storage
	sm       *SessionManager
}

func newSessionFixture(t *testing.T, provider *identity.StaticProvider) *sessionFixture {
	t.Helper()
	f := &sessionFixture{provider: provider, client: newFakeClient(), store: memoryStorage(t)}
	f.sm = NewSessionManager(provider, f.client, f.store, "ai_fortune", logging.Discard())
	return f
}

func TestSessionManager_InitialStateIsLoading(t *testing.T) {
	f := newSessionFixture(t, identity.NewStaticProvider(""))

	st := f.sm.State()
	assert.True(t, st.Loading())
	assert.Nil(t, st.Member)
	assert.Equal(t, common.GuestSubject, f.sm.SubjectID())
}

func TestBootstrap_NoIdentitySessionRedirects(t *testing.T) {
	provider := identity.LoggedOut(nil)
	f := newSessionFixture(t, provider)

	st, err := f.sm.Bootstrap(context.Background())
	require.ErrorIs(t, err, identity.ErrLoginRedirect)
	assert.True(t, st.Loading())
	assert.Equal(t, 1, provider.Logins())
	assert.Empty(t, f.client.Calls(), "no member exchange without a session")
}

func TestBootstrap_RedirectFailureIsWrapped(t *testing.T) {
	boom := errors.New("popup blocked")
	f := newSessionFixture(t, identity.LoggedOut(boom))

	_, err := f.sm.Bootstrap(context.Background())
	assert.ErrorIs(t, err, identity.ErrLoginRedirect)
	assert.ErrorIs(t, err, boom)
}

func TestBootstrap_Success(t *testing.T) {
	f := newSessionFixture(t, identity.NewStaticProvider(idToken(t, "U123")))
	f.client.set("login", paidLogin)
	ctx := context.Background()

	st, err := f.sm.Bootstrap(ctx)
	require.NoError(t, err)

	assert.Equal(t, models.SessionReady, st.Status)
	assert.Equal(t, "U123", st.IdentitySubject)
	require.NotNil(t, st.Member)
	assert.Equal(t, "1001", st.Member.ID)
	assert.Equal(t, models.TierPaid, st.Tier())
	assert.Equal(t, "1001", f.sm.SubjectID())
	assert.Equal(t, []string{"login ai_fortune U123"}, f.client.Calls())

	subject, stored, err := f.store.LoadMember(ctx)
	require.NoError(t, err)
	assert.Equal(t, "U123", subject)
	require.NotNil(t, stored)
	assert.Equal(t, "1001", stored.ID)
}

func TestBootstrap_DegradesToGuest(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		prepare func(c *fakeClient)
		subject string
		calls   int
	}{
		{name: "malformed token", token: "not-a-jwt", calls: 0},
		{
			name:    "service unavailable",
			prepare: func(c *fakeClient) { c.fail("login", client.ErrUnavailable) },
			subject: "U1",
			calls:   1,
		},
		{
			name:    "login rejected",
			prepare: func(c *fakeClient) { c.set("login", `{"status":"fail"}`) },
			subject: "U1",
			calls:   1,
		},
		{
			name:    "unusable answer",
			prepare: func(c *fakeClient) { c.set("login", `<html>`) },
			subject: "U1",
			calls:   1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := tt.token
			if token == "" {
				token = idToken(t, "U1")
			}
			f := newSessionFixture(t, identity.NewStaticProvider(token))
			if tt.prepare != nil {
				tt.prepare(f.client)
			}

			st, err := f.sm.Bootstrap(context.Background())
			require.NoError(t, err, "identity failures are recovered")

			assert.Equal(t, models.SessionGuest, st.Status)
			assert.Nil(t, st.Member)
			assert.Equal(t, models.TierFree, st.Tier())
			assert.Equal(t, tt.subject, st.IdentitySubject)
			assert.Equal(t, common.GuestSubject, st.SubjectID())
			assert.Len(t, f.client.Calls(), tt.calls)
		})
	}
}

func TestRestore(t *testing.T) {
	f := newSessionFixture(t, identity.NewStaticProvider(idToken(t, "U123")))
	ctx := context.Background()
	require.NoError(t, f.store.SaveMember(ctx, "U123", &models.Member{ID: "1001", Tier: models.TierPaid}))

	st := f.sm.Restore(ctx)
	assert.True(t, st.Loading(), "restore does not settle the session")
	require.NotNil(t, st.Member)
	assert.Equal(t, "1001", st.Member.ID)
	assert.Equal(t, "U123", st.IdentitySubject)
}

func TestRestore_CorruptRecordIsCleared(t *testing.T) {
	f := newSessionFixture(t, identity.NewStaticProvider(""))
	ctx := context.Background()
	require.NoError(t, f.store.Metadata.Set(ctx, common.MemberStorageKey, []byte("{")))

	st := f.sm.Restore(ctx)
	assert.Nil(t, st.Member)

	raw, err := f.store.Metadata.Get(ctx, common.MemberStorageKey)
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestLogout(t *testing.T) {
	f := newSessionFixture(t, identity.NewStaticProvider(idToken(t, "U123")))
	f.client.set("login", paidLogin)
	ctx := context.Background()

	_, err := f.sm.Bootstrap(ctx)
	require.NoError(t, err)
	calls := len(f.client.Calls())

	require.NoError(t, f.sm.Logout(ctx))

	st := f.sm.State()
	assert.Equal(t, models.SessionGuest, st.Status)
	assert.Nil(t, st.Member)
	assert.Equal(t, models.TierFree, st.Tier())
	assert.Len(t, f.client.Calls(), calls, "logout is local only")

	_, stored, err := f.store.LoadMember(ctx)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestLogout_DiscardsBootstrapInFlight(t *testing.T) {
	f := newSessionFixture(t, identity.NewStaticProvider(idToken(t, "U123")))
	f.client.set("login", paidLogin)
	release := make(chan struct{})
	f.client.block["login"] = release
	f.client.entered = make(chan string, 1)
	ctx := context.Background()

	done := make(chan models.SessionState)
	go func() {
		st, _ := f.sm.Bootstrap(ctx)
		done <- st
	}()

	<-f.client.entered
	require.NoError(t, f.sm.Logout(ctx))
	close(release)
	<-done

	assert.Nil(t, f.sm.State().Member)
	_, stored, err := f.store.LoadMember(ctx)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

// slowSaveStore parks every SaveMember until release is closed.
type slowSaveStore struct {
	MemberStore
	saving  chan struct{}
	release chan struct{}
}

func (s *slowSaveStore) SaveMember(ctx context.Context, subject string, m *models.Member) error {
	s.saving <- struct{}{}
	<-s.release
	return s.MemberStore.SaveMember(ctx, subject, m)
}

func TestLogout_WinsOverSaveInProgress(t *testing.T) {
	provider := identity.NewStaticProvider(idToken(t, "U123"))
	f := newSessionFixture(t, provider)
	f.client.set("login", paidLogin)
	slow := &slowSaveStore{MemberStore: f.store, saving: make(chan struct{}, 1), release: make(chan struct{})}
	f.sm = NewSessionManager(provider, f.client, slow, "ai_fortune", logging.Discard())
	ctx := context.Background()

	booted := make(chan struct{})
	go func() {
		defer close(booted)
		_, _ = f.sm.Bootstrap(ctx)
	}()
	<-slow.saving

	loggedOut := make(chan error, 1)
	go func() { loggedOut <- f.sm.Logout(ctx) }()
	close(slow.release)
	<-booted
	require.NoError(t, <-loggedOut)

	_, stored, err := f.store.LoadMember(ctx)
	require.NoError(t, err)
	assert.Nil(t, stored, "member must not survive logout")

	restarted := NewSessionManager(identity.LoggedOut(nil), f.client, f.store, "ai_fortune", logging.Discard())
	assert.Nil(t, restarted.Restore(ctx).Member)
}

func TestPersist_SkipsSupersededState(t *testing.T) {
	f := newSessionFixture(t, identity.NewStaticProvider(idToken(t, "U123")))
	ctx := context.Background()

	gen := f.sm.begin()
	_, version, ok := f.sm.settle(gen, "U123", &models.Member{ID: "1001", Tier: models.TierPaid})
	require.True(t, ok)
	require.NoError(t, f.sm.Logout(ctx))

	require.NoError(t, f.sm.persist(ctx, version))
	_, stored, err := f.store.LoadMember(ctx)
	require.NoError(t, err)
	assert.Nil(t, stored, "logout happened after settle")

	older := f.sm.begin()
	newer := f.sm.begin()
	_, newerVersion, ok := f.sm.settle(newer, "U123", &models.Member{ID: "1001", Tier: models.TierPaid})
	require.True(t, ok)
	_, olderVersion, ok := f.sm.settle(older, "U123", &models.Member{ID: "1001", Tier: models.TierFree})
	require.True(t, ok)

	require.NoError(t, f.sm.persist(ctx, olderVersion))
	require.NoError(t, f.sm.persist(ctx, newerVersion))

	_, stored, err = f.store.LoadMember(ctx)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, f.sm.State().Tier(), stored.Tier, "store matches the applied state")
	assert.Equal(t, models.TierFree, stored.Tier)
}

func TestBootstrap_ConcurrentCallsSettleReady(t *testing.T) {
	f := newSessionFixture(t, identity.NewStaticProvider(idToken(t, "U123")))
	f.client.set("login", paidLogin)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.sm.Bootstrap(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	st := f.sm.State()
	assert.Equal(t, models.SessionReady, st.Status)
	assert.Equal(t, "1001", st.SubjectID())
}

func TestBootstrap_OlderFailureDoesNotOverrideNewerSuccess(t *testing.T) {
	f := newSessionFixture(t, identity.NewStaticProvider(idToken(t, "U123")))

	gen := f.sm.begin()
	f.client.set("login", paidLogin)
	_, err := f.sm.Bootstrap(context.Background())
	require.NoError(t, err)

	st := f.sm.degrade(gen, "U123")
	assert.Equal(t, models.SessionReady, st.Status)
	assert.NotNil(t, st.Member)
}

func TestState_ReturnsSnapshots(t *testing.T) {
	f := newSessionFixture(t, identity.NewStaticProvider(idToken(t, "U123")))
	f.client.set("login", paidLogin)
	_, err := f.sm.Bootstrap(context.Background())
	require.NoError(t, err)

	st := f.sm.State()
	st.Member.Tier = models.TierFree

	assert.Equal(t, models.TierPaid, f.sm.State().Tier())
}

func TestRefreshMember(t *testing.T) {
	f := newSessionFixture(t, identity.NewStaticProvider(idToken(t, "U123")))
	ctx := context.Background()

	_, err := f.sm.RefreshMember(ctx)
	require.ErrorIs(t, err, common.ErrorNotFound, "nothing to refresh before login")

	f.client.set("login", `{"status":"success","member_id":1001,"name":"Ann","subscription":"free","user_fortune_id":77}`)
	_, err = f.sm.Bootstrap(ctx)
	require.NoError(t, err)

	f.client.set("login", `{"status":"success","member_id":1001,"name":"Renamed","subscription":"paid","expire_date":"2027-01-31","user_fortune_id":-1}`)
	st, err := f.sm.RefreshMember(ctx)
	require.NoError(t, err)

	assert.Equal(t, models.TierPaid, st.Tier())
	require.NotNil(t, st.Member.ExpiresAt)
	assert.Equal(t, "Ann", st.Member.Name, "identity fields stay fixed")
	assert.True(t, st.Member.HasLinkedProfile())

	_, stored, err := f.store.LoadMember(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.TierPaid, stored.Tier)
}

func TestRefreshMember_FailureKeepsState(t *testing.T) {
	f := newSessionFixture(t, identity.NewStaticProvider(idToken(t, "U123")))
	f.client.set("login", paidLogin)
	ctx := context.Background()
	_, err := f.sm.Bootstrap(ctx)
	require.NoError(t, err)

	f.client.fail("login", client.ErrUnavailable)
	st, err := f.sm.RefreshMember(ctx)
	require.ErrorIs(t, err, client.ErrUnavailable)
	assert.Equal(t, models.TierPaid, st.Tier())
}
