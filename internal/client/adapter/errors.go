// Package adapter maps remote fortune payloads onto the canonical models.
//
// Every adapter is total over optional fields (zero scores, empty strings,
// empty collections) and fails with a *ShapeError only when required
// structure is missing or the body is not JSON. Callers can tell "service
// answered with unusable data" (errors.Is(err, ErrShape)) apart from
// transport failures.
package adapter

import (
	"errors"
	"fmt"
)

// ErrShape matches every *ShapeError.
var ErrShape = errors.New("unusable payload shape")

type ShapeError struct {
	Domain string
	Path   string
	Reason string
}

func (e *ShapeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s payload: %s", e.Domain, e.Reason)
	}
	return fmt.Sprintf("%s payload: %s: %s", e.Domain, e.Path, e.Reason)
}

func (e *ShapeError) Is(target error) bool {
	return target == ErrShape
}

func shapeErr(domain, path, reason string) error {
	return &ShapeError{Domain: domain, Path: path, Reason: reason}
}
