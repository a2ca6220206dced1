package errors

import (
	"errors"
)

var (
	ErrNilServer = errors.New("nil server")
)
