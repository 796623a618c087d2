package services

import (
	"context"
	"fmt"
	"time"

	"github.com/juju/clock"

	"github.com/dmitrijs2005/fortunekeeper/internal/client/access"
	"github.com/dmitrijs2005/fortunekeeper/internal/client/adapter"
	"github.com/dmitrijs2005/fortunekeeper/internal/client/bazi"
	"github.com/dmitrijs2005/fortunekeeper/internal/client/cache"
	"github.com/dmitrijs2005/fortunekeeper/internal/client/client"
	"github.com/dmitrijs2005/fortunekeeper/internal/client/models"
	"github.com/dmitrijs2005/fortunekeeper/internal/common"
	"github.com/dmitrijs2005/fortunekeeper/internal/logging"
)

// The date-range window starts RangeLead days before today and spans
// RangeSpan days after its start.
const (
	RangeLead = 1
	RangeSpan = 7
)

// SessionSource provides the session snapshot access is decided on.
type SessionSource interface {
	State() models.SessionState
}

// FortuneService serves fortune content to UI surfaces. Every call first
// consults the access policy; denied calls return the decision with a zero
// value and no error. Allowed calls go through the cache, partitioned by the
// session's subject id.
type FortuneService struct {
	session SessionSource
	client  client.Client
	cache   *cache.Store
	clock   clock.Clock
	loc     *time.Location
	logger  logging.Logger
}

type FortuneOption func(*FortuneService)

func WithClock(c clock.Clock) FortuneOption {
	return func(f *FortuneService) { f.clock = c }
}

// WithLocation sets the time zone current periods are computed in.
func WithLocation(loc *time.Location) FortuneOption {
	return func(f *FortuneService) { f.loc = loc }
}

func WithFortuneLogger(l logging.Logger) FortuneOption {
	return func(f *FortuneService) { f.logger = l }
}

func NewFortuneService(session SessionSource, c client.Client, store *cache.Store, opts ...FortuneOption) *FortuneService {
	f := &FortuneService{
		session: session,
		client:  c,
		cache:   store,
		clock:   clock.WallClock,
		loc:     time.Local,
		logger:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.logger = f.logger.With("component", "fortune")
	return f
}

func (f *FortuneService) now() time.Time {
	return f.clock.Now().In(f.loc)
}

// CurrentPeriods returns today, this month and this year in canonical form.
func (f *FortuneService) CurrentPeriods() (day, month, year string) {
	n := f.now()
	return n.Format(common.DayLayout), n.Format(common.MonthLayout), n.Format(common.YearLayout)
}

// weekReport is one date-range answer, shared by the today card and the trend.
type weekReport struct {
	today *models.TodaySummary
	trend *models.TrendSeries
}

// Today returns the today card. It is free for everyone.
func (f *FortuneService) Today(ctx context.Context) (*models.TodaySummary, access.Decision, error) {
	today, _, _ := f.CurrentPeriods()
	action := access.Action{Kind: access.ViewCurrent, Domain: string(cache.DomainToday)}
	return serve(ctx, f, action, cache.DomainToday, today, func(ctx context.Context, st models.SessionState) (*models.TodaySummary, error) {
		w, err := f.week(ctx, st.SubjectID(), today)
		if err != nil {
			return nil, err
		}
		return w.today, nil
	})
}

// Trend returns the per-element trend over the date-range window.
func (f *FortuneService) Trend(ctx context.Context) (*models.TrendSeries, access.Decision, error) {
	today, _, _ := f.CurrentPeriods()
	action := access.Action{Kind: access.ViewExtended, Domain: string(cache.DomainTrend)}
	return serve(ctx, f, action, cache.DomainTrend, today, func(ctx context.Context, st models.SessionState) (*models.TrendSeries, error) {
		w, err := f.week(ctx, st.SubjectID(), today)
		if err != nil {
			return nil, err
		}
		return w.trend, nil
	})
}

// week fetches the date-range report once per (subject, day) for both the
// today card and the trend. The window runs from yesterday to a week after.
func (f *FortuneService) week(ctx context.Context, subject, today string) (*weekReport, error) {
	key := cache.NewKey(cache.DomainRange, subject, today)
	return cache.GetOrFetch(ctx, f.cache, key, func(ctx context.Context) (*weekReport, error) {
		day, err := time.Parse(common.DayLayout, today)
		if err != nil {
			return nil, err
		}
		start := day.AddDate(0, 0, -RangeLead)
		end := start.AddDate(0, 0, RangeSpan)

		raw, err := f.client.DateRange(ctx, start.Format(common.DayLayout), end.Format(common.DayLayout))
		if err != nil {
			return nil, err
		}
		t, trend, err := adapter.DateRange(raw, today)
		if err != nil {
			return nil, err
		}
		return &weekReport{today: t, trend: trend}, nil
	})
}

// Daily returns the detailed report of date ("" means today). Days other
// than today follow the navigation rules.
func (f *FortuneService) Daily(ctx context.Context, date string) (*models.DailyFortune, access.Decision, error) {
	today, _, _ := f.CurrentPeriods()
	date, err := canonical(common.DayLayout, date, today)
	if err != nil {
		return nil, access.Allow, err
	}
	return f.daily(ctx, access.ForPeriod(string(cache.DomainDaily), date, today), date)
}

// SelectDay returns the detailed report of a day picked in the calendar.
func (f *FortuneService) SelectDay(ctx context.Context, date string) (*models.DailyFortune, access.Decision, error) {
	today, _, _ := f.CurrentPeriods()
	date, err := canonical(common.DayLayout, date, today)
	if err != nil {
		return nil, access.Allow, err
	}
	return f.daily(ctx, access.Action{Kind: access.SelectDay, Domain: string(cache.DomainDaily)}, date)
}

func (f *FortuneService) daily(ctx context.Context, action access.Action, date string) (*models.DailyFortune, access.Decision, error) {
	return serve(ctx, f, action, cache.DomainDaily, date, func(ctx context.Context, st models.SessionState) (*models.DailyFortune, error) {
		raw, err := f.client.DailyDetail(ctx, st.SubjectID(), date)
		if err != nil {
			return nil, err
		}
		return adapter.Daily(raw)
	})
}

// Month returns the report of month ("" means this month).
func (f *FortuneService) Month(ctx context.Context, month string) (*models.MonthFortune, access.Decision, error) {
	_, current, _ := f.CurrentPeriods()
	month, err := canonical(common.MonthLayout, month, current)
	if err != nil {
		return nil, access.Allow, err
	}
	action := access.ForPeriod(string(cache.DomainMonth), month, current)
	return serve(ctx, f, action, cache.DomainMonth, month, func(ctx context.Context, st models.SessionState) (*models.MonthFortune, error) {
		raw, err := f.client.Month(ctx, st.SubjectID(), month)
		if err != nil {
			return nil, err
		}
		return adapter.Month(raw)
	})
}

// Year returns the report of year ("" means this year).
func (f *FortuneService) Year(ctx context.Context, year string) (*models.YearFortune, access.Decision, error) {
	_, _, current := f.CurrentPeriods()
	year, err := canonical(common.YearLayout, year, current)
	if err != nil {
		return nil, access.Allow, err
	}
	action := access.ForPeriod(string(cache.DomainYear), year, current)
	return serve(ctx, f, action, cache.DomainYear, year, func(ctx context.Context, st models.SessionState) (*models.YearFortune, error) {
		raw, err := f.client.Year(ctx, st.SubjectID(), year)
		if err != nil {
			return nil, err
		}
		return adapter.Year(raw)
	})
}

// Calendar returns the per-day scores of month ("" means this month).
func (f *FortuneService) Calendar(ctx context.Context, month string) (models.CalendarMonth, access.Decision, error) {
	_, current, _ := f.CurrentPeriods()
	month, err := canonical(common.MonthLayout, month, current)
	if err != nil {
		return nil, access.Allow, err
	}
	action := access.ForPeriod(string(cache.DomainCalendar), month, current)
	return serve(ctx, f, action, cache.DomainCalendar, month, func(ctx context.Context, st models.SessionState) (models.CalendarMonth, error) {
		raw, err := f.client.CalendarMonth(ctx, st.SubjectID(), month)
		if err != nil {
			return nil, err
		}
		return adapter.CalendarMonth(raw)
	})
}

// Profile returns the member's linked birth profile.
func (f *FortuneService) Profile(ctx context.Context) (*models.Profile, access.Decision, error) {
	action := access.Action{Kind: access.ViewExtended, Domain: string(cache.DomainProfile)}
	return serve(ctx, f, action, cache.DomainProfile, "", func(ctx context.Context, st models.SessionState) (*models.Profile, error) {
		raw, err := f.client.Profile(ctx, st.Member.ID)
		if err != nil {
			return nil, err
		}
		return adapter.Profile(raw)
	})
}

// BirthChart computes the four pillars of a birth locally. A missing time
// of day counts as midnight.
func (f *FortuneService) BirthChart(birth models.Birth) (bazi.Chart, error) {
	hm := birth.Time
	if hm == "" {
		hm = "00:00"
	}
	t, err := time.ParseInLocation(common.DayLayout+" 15:04", birth.Date+" "+hm, f.loc)
	if err != nil {
		return bazi.Chart{}, fmt.Errorf("birth: %w", err)
	}
	return bazi.NewChart(t), nil
}

// serve gates fetch behind the access policy and the cache.
func serve[T any](ctx context.Context, f *FortuneService, action access.Action, domain cache.Domain, period string,
	fetch func(ctx context.Context, st models.SessionState) (T, error)) (T, access.Decision, error) {
	var zero T
	st := f.session.State()

	d := access.Decide(st, action)
	if !d.Allowed() {
		f.logger.Debug(ctx, "access denied", "domain", domain, "period", period, "action", action.Kind, "decision", d)
		return zero, d, nil
	}

	key := cache.NewKey(domain, st.SubjectID(), period)
	v, err := cache.GetOrFetch(ctx, f.cache, key, func(ctx context.Context) (T, error) {
		return fetch(ctx, st)
	})
	if err != nil {
		return zero, d, fmt.Errorf("%s %s: %w", domain, period, err)
	}
	return v, d, nil
}

// canonical validates period against layout; "" selects def.
func canonical(layout, period, def string) (string, error) {
	if period == "" {
		return def, nil
	}
	t, err := time.Parse(layout, period)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
	}
	return t.Format(layout), nil
}
