package context

import (
	"context"
)

type requestIdContextType struct{}

var RequestIdContextKey = &requestIdContextType{}

func WithRequestId(parent context.Context, requestId string) context.Context {
	return context.WithValue(parent, RequestIdContextKey, requestId)
}
