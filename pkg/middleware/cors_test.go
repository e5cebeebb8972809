package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}

func TestCORS_ExplicitOrigins(t *testing.T) {
	corsHandler := CORS([]string{"http://localhost:3000"})(okHandler())

	tests := []struct {
		name           string
		origin         string
		expectedOrigin string
	}{
		{name: "allowed origin", origin: "http://localhost:3000", expectedOrigin: "http://localhost:3000"},
		{name: "disallowed origin", origin: "http://evil.com", expectedOrigin: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/webhook", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()
			corsHandler.ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.expectedOrigin {
				t.Errorf("expected Access-Control-Allow-Origin %q, got %q", tt.expectedOrigin, got)
			}
		})
	}
}

func TestCORS_WildcardPreflight(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })
	corsHandler := CORS(nil)(next)

	req := httptest.NewRequest(http.MethodOptions, "/api/webhook", nil)
	req.Header.Set("Origin", "https://dashboard.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := httptest.NewRecorder()
	corsHandler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("preflight status = %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard origin, got %q", got)
	}
	if called {
		t.Fatalf("preflight must not reach the handler")
	}
}
