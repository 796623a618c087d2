package cache

import (
	"strconv"
	"strings"
)

// Domain names one UI data surface.
type Domain string

const (
	DomainToday    Domain = "today-summary"
	DomainTrend    Domain = "seven-day-trend"
	DomainRange    Domain = "date-range"
	DomainDaily    Domain = "daily-detail"
	DomainMonth    Domain = "month-summary"
	DomainYear     Domain = "year-summary"
	DomainCalendar Domain = "calendar-month"
	DomainProfile  Domain = "profile"
)

// Domains lists every known domain.
var Domains = []Domain{DomainToday, DomainTrend, DomainRange, DomainDaily, DomainMonth, DomainYear, DomainCalendar, DomainProfile}

// Key identifies one cache entry: (domain, subject, period). Period is a
// canonical YYYY-MM-DD, YYYY-MM or YYYY string, or "" for singletons.
type Key struct {
	Domain  Domain
	Subject string
	Period  string
}

func NewKey(domain Domain, subject, period string) Key {
	return Key{Domain: domain, Subject: subject, Period: period}
}

// String renders the key as domain/len:subject/period. The length prefix
// makes the encoding injective even when a subject contains '/'.
func (k Key) String() string {
	var b strings.Builder
	b.Grow(len(k.Domain) + len(k.Subject) + len(k.Period) + 8)
	b.WriteString(string(k.Domain))
	b.WriteByte('/')
	b.WriteString(strconv.Itoa(len(k.Subject)))
	b.WriteByte(':')
	b.WriteString(k.Subject)
	b.WriteByte('/')
	b.WriteString(k.Period)
	return b.String()
}
