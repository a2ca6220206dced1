package errors

import (
	"errors"
)

var (
	ErrNilHandler        = errors.New("nil handler")
	ErrNilResponseWriter = errors.New("nil response writer")
)
