package signal

import (
	"net/http/httptest"
	"testing"
)

func TestOriginChecker(t *testing.T) {
	check := NewOriginChecker([]string{"https://Example.com:443", "http://localhost:3000"})

	cases := map[string]bool{
		"":                       true,
		"https://example.com":    true,
		"HTTPS://EXAMPLE.COM":    true,
		"http://localhost:3000":  true,
		"http://localhost:3001":  false,
		"https://evil.com":       false,
		"null":                   false,
		"ftp://example.com":      false,
		"https://example.com:80": false,
	}
	for origin, want := range cases {
		r := httptest.NewRequest("GET", "/api/ws/signal", nil)
		if origin != "" {
			r.Header.Set("Origin", origin)
		}
		if got := check(r); got != want {
			t.Errorf("origin %q: got %v, want %v", origin, got, want)
		}
	}
}

func TestOriginChecker_OpenByDefault(t *testing.T) {
	for _, allowed := range [][]string{nil, {"*"}, {"https://a.com", "*"}} {
		check := NewOriginChecker(allowed)
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Origin", "https://anything.example")
		if !check(r) {
			t.Fatalf("allowed=%v should accept any origin", allowed)
		}
	}
}
