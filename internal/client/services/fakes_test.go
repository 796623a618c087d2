package services

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/fortunekeeper/internal/client/client"
	"github.com/dmitrijs2005/fortunekeeper/internal/client/models"
	"github.com/dmitrijs2005/fortunekeeper/internal/client/storage"
)

// fakeClient answers every endpoint from canned bodies and records calls as
// "endpoint arg1 arg2".
type fakeClient struct {
	mu     sync.Mutex
	calls  []string
	bodies map[string][]byte
	errs   map[string]error
	// block, when set for an endpoint, is waited on before answering.
	block   map[string]chan struct{}
	entered chan string
}

var _ client.Client = (*fakeClient)(nil)

func newFakeClient() *fakeClient {
	return &fakeClient{
		bodies: map[string][]byte{},
		errs:   map[string]error{},
		block:  map[string]chan struct{}{},
	}
}

func (f *fakeClient) set(endpoint, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bodies[endpoint] = []byte(body)
	delete(f.errs, endpoint)
}

func (f *fakeClient) fail(endpoint string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[endpoint] = err
}

func (f *fakeClient) answer(ctx context.Context, endpoint string, args ...string) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, strings.Join(append([]string{endpoint}, args...), " "))
	gate := f.block[endpoint]
	entered := f.entered
	f.mu.Unlock()

	if gate != nil {
		if entered != nil {
			entered <- endpoint
		}
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errs[endpoint]; err != nil {
		return nil, err
	}
	return f.bodies[endpoint], nil
}

func (f *fakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeClient) count(endpoint string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == endpoint || strings.HasPrefix(c, endpoint+" ") {
			n++
		}
	}
	return n
}

func (f *fakeClient) Login(ctx context.Context, appID, subject string) ([]byte, error) {
	return f.answer(ctx, "login", appID, subject)
}

func (f *fakeClient) DateRange(ctx context.Context, start, end string) ([]byte, error) {
	return f.answer(ctx, "range", start, end)
}

func (f *fakeClient) DailyDetail(ctx context.Context, uid, date string) ([]byte, error) {
	return f.answer(ctx, "daily", uid, date)
}

func (f *fakeClient) Month(ctx context.Context, uid, month string) ([]byte, error) {
	return f.answer(ctx, "month", uid, month)
}

func (f *fakeClient) Year(ctx context.Context, uid, year string) ([]byte, error) {
	return f.answer(ctx, "year", uid, year)
}

func (f *fakeClient) CalendarMonth(ctx context.Context, uid, month string) ([]byte, error) {
	return f.answer(ctx, "calendar", uid, month)
}

func (f *fakeClient) Profile(ctx context.Context, memberID string) ([]byte, error) {
	return f.answer(ctx, "profile", memberID)
}

func idToken(t *testing.T, sub string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": sub, "iss": "https://access.line.me"}).
		SignedString([]byte("provider-secret"))
	require.NoError(t, err)
	return s
}

func memoryStorage(t *testing.T) *storage.Storage {
	t.Helper()
	s, err := storage.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// fixedSession is a SessionSource with a settable state.
type fixedSession struct {
	mu    sync.Mutex
	state models.SessionState
}

func (s *fixedSession) State() models.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *fixedSession) set(st models.SessionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st
}

func linkedProfile(id int64) *int64 { return &id }

var (
	guestState = models.SessionState{Status: models.SessionGuest}
	freeState  = models.SessionState{Status: models.SessionReady, IdentitySubject: "U-free",
		Member: &models.Member{ID: "2001", Tier: models.TierFree, LinkedProfileID: linkedProfile(models.NoLinkedProfile)}}
	paidState = models.SessionState{Status: models.SessionReady, IdentitySubject: "U-paid",
		Member: &models.Member{ID: "1001", Tier: models.TierPaid, LinkedProfileID: linkedProfile(77)}}
)
