package annotation

import "errors"

var (
	ErrSourceUnavailable = errors.New("source unavailable")
)
