package signal

import (
	"net/http"
	"net/url"
	"strings"
)

// NewOriginChecker returns an upgrader CheckOrigin func. An empty list or
// a "*" entry accepts every origin; requests without an Origin header
// (non-browser clients) are always accepted.
func NewOriginChecker(allowed []string) func(*http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		if a == "*" {
			return func(*http.Request) bool { return true }
		}
		if n, ok := normalizeOrigin(a); ok {
			set[n] = struct{}{}
		}
	}
	if len(set) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		header := r.Header.Get("Origin")
		if header == "" {
			return true
		}
		n, ok := normalizeOrigin(header)
		if !ok {
			return false
		}
		_, ok = set[n]
		return ok
	}
}

// normalizeOrigin reduces an origin to lower-case scheme://host[:port],
// dropping default ports.
func normalizeOrigin(raw string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return "", false
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", false
	}
	host := strings.ToLower(u.Hostname())
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	port := u.Port()
	if (scheme == "http" && port == "80") || (scheme == "https" && port == "443") {
		port = ""
	}
	if port != "" {
		host += ":" + port
	}
	return scheme + "://" + host, true
}
