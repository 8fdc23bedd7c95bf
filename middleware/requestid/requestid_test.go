package requestid

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMiddleware_GeneratesIDWhenMissing(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get(Header)
		w.WriteHeader(http.StatusOK)
	})

	h := Middleware()(next)

	r := httptest.NewRequest(http.MethodGet, "http://example/", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	got := w.Header().Get(Header)
	if got == "" {
		t.Fatalf("expected generated request id on response")
	}
	if seen != got {
		t.Fatalf("expected handler to see the same id, got %q vs %q", seen, got)
	}
}

func TestMiddleware_ReusesInboundID(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	h := Middleware()(next)

	r := httptest.NewRequest(http.MethodGet, "http://example/", nil)
	r.Header.Set(Header, "abc-123")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if got := w.Header().Get(Header); got != "abc-123" {
		t.Fatalf("expected inbound id to be echoed, got %q", got)
	}
}
