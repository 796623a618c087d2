package models

import "github.com/dmitrijs2005/fortunekeeper/internal/common"

// SessionStatus tracks the bootstrap lifecycle.
type SessionStatus string

const (
	SessionLoading SessionStatus = "loading"
	SessionReady   SessionStatus = "ready"
	SessionGuest   SessionStatus = "guest"
)

// SessionState is an immutable snapshot of the session.
type SessionState struct {
	Status          SessionStatus
	Member          *Member
	IdentitySubject string
}

func (s SessionState) LoggedIn() bool {
	return s.Member != nil
}

func (s SessionState) Loading() bool {
	return s.Status == SessionLoading
}

// Tier is free whenever no member is present.
func (s SessionState) Tier() Tier {
	if s.Member == nil {
		return TierFree
	}
	return s.Member.Tier
}

// SubjectID is the cache-partitioning identity: the member id when logged
// in, otherwise common.GuestSubject.
func (s SessionState) SubjectID() string {
	if s.Member == nil || s.Member.ID == "" {
		return common.GuestSubject
	}
	return s.Member.ID
}
