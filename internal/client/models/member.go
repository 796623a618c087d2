// Package models defines the member, session and fortune payload types
// shared by the client layers.
package models

import (
	"strings"
	"time"
)

// Tier is the subscription level gating navigation beyond the current period.
type Tier string

const (
	TierFree Tier = "free"
	TierPaid Tier = "paid"
)

// ParseTier normalizes a remote subscription string; anything other than
// "paid" is treated as free.
func ParseTier(s string) Tier {
	if strings.EqualFold(strings.TrimSpace(s), string(TierPaid)) {
		return TierPaid
	}
	return TierFree
}

// NoLinkedProfile is the remote sentinel for "member has no birth profile".
const NoLinkedProfile int64 = -1

// Member is the internal member record obtained from the login exchange.
// Identity fields are fixed for a session; Tier and ExpiresAt may be refreshed.
type Member struct {
	ID              string     `json:"member_id"`
	Email           string     `json:"email"`
	Name            string     `json:"name"`
	AppID           string     `json:"app_id"`
	Tier            Tier       `json:"subscription"`
	Avatar          string     `json:"avatar,omitempty"`
	ExpiresAt       *time.Time `json:"expire_date,omitempty"`
	LinkedProfileID *int64     `json:"user_fortune_id,omitempty"`
}

func (m *Member) IsPaid() bool {
	return m != nil && m.Tier == TierPaid
}

func (m *Member) HasLinkedProfile() bool {
	return m != nil && m.LinkedProfileID != nil && *m.LinkedProfileID != NoLinkedProfile
}

// Clone returns a deep copy so snapshots never share pointers with the
// session manager's own record.
func (m *Member) Clone() *Member {
	if m == nil {
		return nil
	}
	c := *m
	if m.ExpiresAt != nil {
		t := *m.ExpiresAt
		c.ExpiresAt = &t
	}
	if m.LinkedProfileID != nil {
		id := *m.LinkedProfileID
		c.LinkedProfileID = &id
	}
	return &c
}
