package autoroute

import "errors"

var (
	ErrNoRouter = errors.New("no router found")
	ErrNotValid = errors.New("invalid")
)
