package client

import (
	"context"
)

type Client interface {
	// Login exchanges an identity subject for the member record.
	Login(ctx context.Context, appID, subject string) ([]byte, error)
	// DateRange returns the per-day element report for [start, end].
	DateRange(ctx context.Context, start, end string) ([]byte, error)
	DailyDetail(ctx context.Context, uid, date string) ([]byte, error)
	Month(ctx context.Context, uid, month string) ([]byte, error)
	Year(ctx context.Context, uid, year string) ([]byte, error)
	CalendarMonth(ctx context.Context, uid, month string) ([]byte, error)
	Profile(ctx context.Context, memberID string) ([]byte, error)
}
