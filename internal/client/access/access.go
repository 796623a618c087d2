// Package access decides whether the current session may see a piece of
// fortune content. Decisions are plain values: a denial is never an error,
// and the caller routes it to a login or upgrade prompt.
package access

import "github.com/dmitrijs2005/fortunekeeper/internal/client/models"

type Decision string

const (
	Allow          Decision = "allow"
	RequireLogin   Decision = "require-login"
	RequireUpgrade Decision = "require-upgrade"
	// NoProfile is returned for profile-backed detail when the member has
	// not linked a birth profile yet.
	NoProfile Decision = "no-profile"
)

func (d Decision) Allowed() bool {
	return d == Allow
}

type Kind int

const (
	// ViewCurrent is the default period of a domain (today, this month, this year).
	ViewCurrent Kind = iota
	// Navigate is any period other than the current one.
	Navigate
	// SelectDay picks a day inside the displayed calendar month.
	SelectDay
	// ViewExtended is the trend detail and the full profile breakdown.
	ViewExtended
)

var kindNames = [...]string{"view-current", "navigate", "select-day", "view-extended"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

type Action struct {
	Kind   Kind
	Domain string
}

// ForPeriod classifies a request for period requested against the current
// period of the same granularity. Both must be canonical strings.
func ForPeriod(domain, requested, current string) Action {
	if requested == "" || requested == current {
		return Action{Kind: ViewCurrent, Domain: domain}
	}
	return Action{Kind: Navigate, Domain: domain}
}

// Decide maps (session, action) to a decision. It is pure and total.
//
//	             current  other period
//	no member    allow    require-login
//	free member  allow    require-upgrade
//	paid member  allow    allow
func Decide(state models.SessionState, action Action) Decision {
	m := state.Member
	switch action.Kind {
	case ViewCurrent:
		return Allow
	case Navigate:
		switch {
		case m == nil:
			return RequireLogin
		case !m.IsPaid():
			return RequireUpgrade
		default:
			return Allow
		}
	case SelectDay:
		if m == nil {
			return RequireLogin
		}
		return Allow
	case ViewExtended:
		switch {
		case m == nil:
			return RequireLogin
		case !m.HasLinkedProfile():
			return NoProfile
		default:
			return Allow
		}
	default:
		return RequireLogin
	}
}
