package utils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MrSnakeDoc/sidenav/internal/logger"
)

func TestParseHostNoPort(t *testing.T) {
	tests := map[string]string{
		"":                "",
		"10.0.0.1":        "10.0.0.1",
		"10.0.0.1:8080":   "10.0.0.1",
		"[::1]:443":       "::1",
		"[::1]":           "::1",
		"nav.example.com": "nav.example.com",
	}
	for in, want := range tests {
		if got := ParseHostNoPort(in); got != want {
			t.Errorf("ParseHostNoPort(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		trustProxy bool
		want       string
	}{
		{name: "remote addr", want: "192.0.2.1"},
		{name: "xff ignored", headers: map[string]string{"X-Forwarded-For": "10.0.0.1"}, want: "192.0.2.1"},
		{name: "xff first", headers: map[string]string{"X-Forwarded-For": " 10.0.0.1 , 10.0.0.2"}, trustProxy: true, want: "10.0.0.1"},
		{name: "cloudflare first", headers: map[string]string{"CF-Connecting-IP": "10.0.0.9", "X-Forwarded-For": "10.0.0.1"}, trustProxy: true, want: "10.0.0.9"},
		{name: "real ip", headers: map[string]string{"X-Real-IP": "10.0.0.5"}, trustProxy: true, want: "10.0.0.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "192.0.2.1:1234"
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := ClientIP(req, tt.trustProxy); got != tt.want {
				t.Errorf("ClientIP() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestIPMatcher(t *testing.T) {
	m := NewIPMatcher([]string{"10.0.0.0/8", " 192.168.1.7 ", "garbage", "", "2001:db8::/32"})
	if m.IsEmpty() {
		t.Fatal("matcher should not be empty")
	}

	tests := map[string]bool{
		"10.20.30.40":     true,
		"192.168.1.7":     true,
		"192.168.1.8":     false,
		"::ffff:10.0.0.1": true,
		"2001:db8::1":     true,
		"2001:db9::1":     false,
		"not-an-ip":       false,
	}
	for ip, want := range tests {
		if got := m.Allow(ip); got != want {
			t.Errorf("Allow(%s) = %v, want %v", ip, got, want)
		}
	}

	if !NewIPMatcher(nil).IsEmpty() {
		t.Error("nil list should give an empty matcher")
	}
}

type closer struct{ err error }

func (c closer) Close() error { return c.err }

func TestCloseLogged(t *testing.T) {
	// Neither outcome may panic.
	CloseLogged(closer{}, "ok", logger.NewNop())
	CloseLogged(closer{err: errors.New("boom")}, "failing", logger.NewNop())
	Close(closer{err: errors.New("boom")})
}
