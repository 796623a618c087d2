// Package common contains shared constants and sentinel errors used across
// fortune client components.
package common

// GuestSubject is the cache-partitioning subject id used while no member is
// logged in.
const GuestSubject = "guest"

// MemberStorageKey is the durable storage key holding the serialized member.
const MemberStorageKey = "member"

// RequestIDHeaderName carries the per-request correlation id on outbound
// HTTP calls.
const RequestIDHeaderName = "X-Request-ID"

// Canonical period layouts.
const (
	DayLayout   = "2006-01-02"
	MonthLayout = "2006-01"
	YearLayout  = "2006"
)

// MemberSubjectStorageKey records which identity subject the stored member
// was obtained for.
const MemberSubjectStorageKey = "member_subject"
