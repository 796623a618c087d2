package identity

import (
	"context"
	"sync"
)

// StaticProvider serves a fixed token. It is the provider used when the
// client is embedded behind a host that already did the login, and in tests.
type StaticProvider struct {
	mu       sync.Mutex
	token    string
	loggedIn bool
	logins   int
	loginErr error
}

func NewStaticProvider(token string) *StaticProvider {
	return &StaticProvider{token: token, loggedIn: token != ""}
}

// LoggedOut returns a provider without a session whose Login fails with err
// (nil means the redirect succeeded).
func LoggedOut(err error) *StaticProvider {
	return &StaticProvider{loginErr: err}
}

func (p *StaticProvider) IsLoggedIn(context.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loggedIn
}

func (p *StaticProvider) IDToken(context.Context) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.token
}

func (p *StaticProvider) Login(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logins++
	return p.loginErr
}

// SetToken swaps the session token; "" logs the provider out.
func (p *StaticProvider) SetToken(token string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.token = token
	p.loggedIn = token != ""
}

// Logins reports how many interactive logins were started.
func (p *StaticProvider) Logins() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.logins
}
