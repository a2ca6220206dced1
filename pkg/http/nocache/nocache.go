// Package nocache guarantees cache-defeating response headers on every response
// that passes through it. The headers are injected at the moment the header
// block is finalized, so every status path (success, not-modified, redirect,
// not-found, server error) carries them.
package nocache

import (
	"fmt"
	"net/http"

	motmedelErrors "github.com/Motmedel/nocache_httpd_go/pkg/errors"
	nocacheErrors "github.com/Motmedel/nocache_httpd_go/pkg/http/nocache/errors"
	motmedelLogError "github.com/Motmedel/nocache_httpd_go/pkg/log/error"
)

type HeaderEntry struct {
	Name  string
	Value string
}

// OverrideHeaders are set on every response. The values instruct clients and
// intermediate caches never to store or reuse a cached copy.
var OverrideHeaders = []HeaderEntry{
	{Name: "Cache-Control", Value: "no-store, no-cache, must-revalidate, max-age=0"},
	{Name: "Pragma", Value: "no-cache"},
	{Name: "Expires", Value: "0"},
}

type ResponseWriter struct {
	http.ResponseWriter
	WriteHeaderCalled bool
	WriteCalled       bool

	WrittenStatusCode int
}

func (responseWriter *ResponseWriter) WriteHeader(statusCode int) {
	if !responseWriter.WriteHeaderCalled {
		header := responseWriter.Header()
		for _, headerEntry := range OverrideHeaders {
			// Set rather than Add; the headers must not be duplicated even if
			// the inner handler put its own values in place.
			header.Set(headerEntry.Name, headerEntry.Value)
		}
	}

	responseWriter.WriteHeaderCalled = true
	responseWriter.WrittenStatusCode = statusCode
	responseWriter.ResponseWriter.WriteHeader(statusCode)
}

func (responseWriter *ResponseWriter) Write(data []byte) (int, error) {
	responseWriter.WriteCalled = true

	if !responseWriter.WriteHeaderCalled {
		responseWriter.WriteHeader(http.StatusOK)
	}

	n, err := responseWriter.ResponseWriter.Write(data)
	if err != nil {
		return n, motmedelErrors.NewWithTrace(
			fmt.Errorf("http response writer write: %w", err),
		)
	}

	return n, nil
}

// Unwrap exposes the wrapped response writer to http.ResponseController.
func (responseWriter *ResponseWriter) Unwrap() http.ResponseWriter {
	return responseWriter.ResponseWriter
}

// Middleware wraps next so that every response it produces carries the
// override headers, whichever code path finalizes the header block.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
		if responseWriter == nil {
			motmedelLogError.LogError(
				"The response writer is nil.",
				motmedelErrors.NewWithTrace(nocacheErrors.ErrNilResponseWriter),
				nil,
			)
			return
		}

		overrideResponseWriter := &ResponseWriter{ResponseWriter: responseWriter}

		if next == nil {
			motmedelLogError.LogError(
				"The wrapped handler is nil.",
				motmedelErrors.NewWithTrace(nocacheErrors.ErrNilHandler),
				nil,
			)
			overrideResponseWriter.WriteHeader(http.StatusInternalServerError)
			return
		}

		next.ServeHTTP(overrideResponseWriter, request)

		// A handler that returns without writing anything still finalizes
		// headers when the response goes out; make that path explicit.
		if !overrideResponseWriter.WriteHeaderCalled {
			overrideResponseWriter.WriteHeader(http.StatusOK)
		}
	})
}
