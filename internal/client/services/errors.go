package services

import "errors"

// ErrInvalidPeriod rejects a period string that is not canonical
// YYYY-MM-DD, YYYY-MM or YYYY for its domain.
var ErrInvalidPeriod = errors.New("invalid period")
