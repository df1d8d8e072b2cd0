package middleware

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func TestLogger(t *testing.T) {
	t.Run("logs request ID, method, path and captured status", func(t *testing.T) {
		var buf bytes.Buffer
		log.SetOutput(&buf)
		defer log.SetOutput(os.Stderr)

		next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		req := httptest.NewRequest(http.MethodGet, "/api/transaction/missing", nil)
		req = req.WithContext(context.WithValue(req.Context(), chimiddleware.RequestIDKey, "req-42"))
		w := httptest.NewRecorder()

		Logger(next).ServeHTTP(w, req)

		line := buf.String()
		for _, want := range []string{"req-42", "GET", "/api/transaction/missing", "404"} {
			if !strings.Contains(line, want) {
				t.Errorf("Expected log line to contain %q, got %q", want, line)
			}
		}
	})

	t.Run("strips CR and LF from user-supplied values", func(t *testing.T) {
		var buf bytes.Buffer
		log.SetOutput(&buf)
		defer log.SetOutput(os.Stderr)

		next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/api/asset", nil)
		req.URL.Path = "/api/asset\r\nforged"
		w := httptest.NewRecorder()

		Logger(next).ServeHTTP(w, req)

		if strings.Contains(buf.String(), "\r") || strings.Count(buf.String(), "\n") > 1 {
			t.Errorf("Expected sanitized log output, got %q", buf.String())
		}
	})
}
