package requestid

import (
	"context"
	"log/slog"
	"net/http"

	motmedelHttpContext "github.com/Motmedel/nocache_httpd_go/pkg/http/context"
	"github.com/google/uuid"
)

const HeaderName = "X-Request-Id"

// Middleware assigns each request an id, exposes it in the response header,
// and places it in the request context for log records.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
		if next == nil {
			responseWriter.WriteHeader(http.StatusInternalServerError)
			return
		}

		requestId := uuid.New().String()
		responseWriter.Header().Set(HeaderName, requestId)

		next.ServeHTTP(
			responseWriter,
			request.WithContext(
				motmedelHttpContext.WithRequestId(request.Context(), requestId),
			),
		)
	})
}

type Extractor struct{}

func (extractor *Extractor) Handle(ctx context.Context, record *slog.Record) error {
	if record == nil {
		return nil
	}

	if requestId, ok := ctx.Value(motmedelHttpContext.RequestIdContextKey).(string); ok {
		record.Add(slog.Group("http", slog.Group("request", slog.String("id", requestId))))
	}

	return nil
}
