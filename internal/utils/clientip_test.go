package utils

import (
	"net/http/httptest"
	"testing"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remote     string
		headers    map[string]string
		trustProxy bool
		want       string
	}{
		{name: "remote addr", remote: "192.0.2.1:1234", want: "192.0.2.1"},
		{name: "ipv6 remote addr", remote: "[2001:db8::1]:443", want: "2001:db8::1"},
		{name: "headers ignored without trust", remote: "192.0.2.1:1234",
			headers: map[string]string{"X-Forwarded-For": "203.0.113.9"}, want: "192.0.2.1"},
		{name: "left-most forwarded entry", remote: "127.0.0.1:1", trustProxy: true,
			headers: map[string]string{"X-Forwarded-For": " 203.0.113.9 , 10.0.0.1"}, want: "203.0.113.9"},
		{name: "real ip fallback", remote: "127.0.0.1:1", trustProxy: true,
			headers: map[string]string{"X-Real-IP": "198.51.100.7"}, want: "198.51.100.7"},
		{name: "no headers behind proxy", remote: "127.0.0.1:1", trustProxy: true, want: "127.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := ClientIP(r, tt.trustProxy); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAddrSet(t *testing.T) {
	set := ParseAddrSet([]string{"10.0.0.0/8", " 192.168.1.10 ", "2001:db8::/32", "garbage", ""})
	if set.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", set.Len())
	}

	tests := []struct {
		ip   string
		want bool
	}{
		{"10.1.2.3", true},
		{"192.168.1.10", true},
		{"192.168.1.11", false},
		{"::ffff:10.0.0.1", true},
		{"2001:db8:1::5", true},
		{"2001:db9::1", false},
		{"not-an-ip", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := set.Contains(tt.ip); got != tt.want {
			t.Errorf("Contains(%q) = %v, want %v", tt.ip, got, tt.want)
		}
	}
}
