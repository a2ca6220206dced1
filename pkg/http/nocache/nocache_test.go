package nocache

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var expectedOverrideHeaders = map[string][]string{
	"Cache-Control": {"no-store, no-cache, must-revalidate, max-age=0"},
	"Pragma":        {"no-cache"},
	"Expires":       {"0"},
}

func checkOverrideHeaders(t *testing.T, header http.Header) {
	t.Helper()

	for headerName, expectedValues := range expectedOverrideHeaders {
		if diff := cmp.Diff(expectedValues, header.Values(headerName)); diff != "" {
			t.Errorf("%s mismatch (-expected +observed):\n%s", headerName, diff)
		}
	}
}

func TestMiddleware(t *testing.T) {
	t.Run("explicit status code", func(t *testing.T) {
		for _, statusCode := range []int{
			http.StatusOK,
			http.StatusMovedPermanently,
			http.StatusNotModified,
			http.StatusNotFound,
			http.StatusInternalServerError,
		} {
			recorder := httptest.NewRecorder()
			handler := Middleware(
				http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
					responseWriter.WriteHeader(statusCode)
				}),
			)
			handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

			if recorder.Code != statusCode {
				t.Errorf("got status code %d, expected %d", recorder.Code, statusCode)
			}
			checkOverrideHeaders(t, recorder.Header())
		}
	})

	t.Run("implicit header write via body write", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		handler := Middleware(
			http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
				if _, err := responseWriter.Write([]byte("body")); err != nil {
					t.Errorf("unexpected write error: %v", err)
				}
			}),
		)
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

		if recorder.Code != http.StatusOK {
			t.Errorf("got status code %d, expected %d", recorder.Code, http.StatusOK)
		}
		if recorder.Body.String() != "body" {
			t.Errorf("got body %q, expected %q", recorder.Body.String(), "body")
		}
		checkOverrideHeaders(t, recorder.Header())
	})

	t.Run("no write at all", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		handler := Middleware(
			http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {}),
		)
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

		if recorder.Code != http.StatusOK {
			t.Errorf("got status code %d, expected %d", recorder.Code, http.StatusOK)
		}
		checkOverrideHeaders(t, recorder.Header())
	})

	t.Run("inner handler values are overridden, not duplicated", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		handler := Middleware(
			http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
				header := responseWriter.Header()
				header.Set("Cache-Control", "max-age=3600")
				header.Add("Pragma", "stale-ok")
				responseWriter.WriteHeader(http.StatusOK)
			}),
		)
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

		checkOverrideHeaders(t, recorder.Header())
	})

	t.Run("error responses via http.Error", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		handler := Middleware(
			http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
				http.Error(responseWriter, "404 page not found", http.StatusNotFound)
			}),
		)
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/does-not-exist.xyz", nil))

		if recorder.Code != http.StatusNotFound {
			t.Errorf("got status code %d, expected %d", recorder.Code, http.StatusNotFound)
		}
		checkOverrideHeaders(t, recorder.Header())
	})

	t.Run("nil response writer", func(t *testing.T) {
		handler := Middleware(
			http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
				t.Error("expected the wrapped handler not to be called")
			}),
		)
		handler.ServeHTTP(nil, httptest.NewRequest(http.MethodGet, "/", nil))
	})

	t.Run("nil handler", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		Middleware(nil).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

		if recorder.Code != http.StatusInternalServerError {
			t.Errorf("got status code %d, expected %d", recorder.Code, http.StatusInternalServerError)
		}
		checkOverrideHeaders(t, recorder.Header())
	})
}

func TestResponseWriter(t *testing.T) {
	t.Run("status code tracking", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		responseWriter := &ResponseWriter{ResponseWriter: recorder}

		responseWriter.WriteHeader(http.StatusTeapot)

		if !responseWriter.WriteHeaderCalled {
			t.Error("expected WriteHeaderCalled to be set")
		}
		if responseWriter.WrittenStatusCode != http.StatusTeapot {
			t.Errorf("got written status code %d, expected %d", responseWriter.WrittenStatusCode, http.StatusTeapot)
		}
	})

	t.Run("repeated explicit header writes inject once", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		responseWriter := &ResponseWriter{ResponseWriter: recorder}

		responseWriter.WriteHeader(http.StatusOK)
		if _, err := responseWriter.Write([]byte("data")); err != nil {
			t.Fatalf("unexpected write error: %v", err)
		}

		checkOverrideHeaders(t, recorder.Header())
	})

	t.Run("unwrap", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		responseWriter := &ResponseWriter{ResponseWriter: recorder}

		if responseWriter.Unwrap() != http.ResponseWriter(recorder) {
			t.Error("expected the wrapped response writer")
		}
	})
}
