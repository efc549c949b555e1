package utils

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// ClientIP returns the address of the caller. With trustProxy set, the
// left-most X-Forwarded-For entry wins, then X-Real-IP; otherwise only the
// connection address is used.
func ClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		for _, v := range []string{forwardedFor(r.Header.Get("X-Forwarded-For")), r.Header.Get("X-Real-IP")} {
			if ip := hostOnly(strings.TrimSpace(v)); ip != "" {
				return ip
			}
		}
	}
	return hostOnly(r.RemoteAddr)
}

func forwardedFor(xff string) string {
	first, _, _ := strings.Cut(xff, ",")
	return strings.TrimSpace(first)
}

// hostOnly strips the port from "ip:port" and "[v6]:port".
func hostOnly(s string) string {
	if s == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(s); err == nil {
		return h
	}
	return s
}

// AddrSet is a list of prefixes; bare addresses are stored as single-host
// prefixes.
type AddrSet struct {
	prefixes []netip.Prefix
}

// ParseAddrSet skips entries that are neither an address nor a CIDR.
func ParseAddrSet(list []string) *AddrSet {
	s := &AddrSet{}
	for _, raw := range list {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if p, err := netip.ParsePrefix(raw); err == nil {
			s.prefixes = append(s.prefixes, p.Masked())
			continue
		}
		if a, err := netip.ParseAddr(raw); err == nil {
			a = a.Unmap()
			s.prefixes = append(s.prefixes, netip.PrefixFrom(a, a.BitLen()))
		}
	}
	return s
}

func (s *AddrSet) Len() int { return len(s.prefixes) }

// Contains reports whether ip falls in any prefix. Unparsable input never
// matches.
func (s *AddrSet) Contains(ip string) bool {
	a, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	a = a.Unmap().WithZone("")
	for _, p := range s.prefixes {
		if p.Contains(a) {
			return true
		}
	}
	return false
}
