package security

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// Detector resolves client IPs behind trusted proxies.
type Detector struct {
	trusted []netip.Prefix
}

// NewDetector creates a detector trusting the usual private ranges.
func NewDetector() *Detector {
	return &Detector{
		trusted: []netip.Prefix{
			netip.MustParsePrefix("127.0.0.0/8"),
			netip.MustParsePrefix("10.0.0.0/8"),
			netip.MustParsePrefix("172.16.0.0/12"),
			netip.MustParsePrefix("192.168.0.0/16"),
		},
	}
}

// AddTrustedProxy adds a trusted proxy network
func (d *Detector) AddTrustedProxy(cidr string) error {
	p, err := netip.ParsePrefix(cidr)
	if err != nil {
		return fmt.Errorf("invalid CIDR %s: %w", cidr, err)
	}
	d.trusted = append(d.trusted, p)
	return nil
}

// ExtractClientIP returns the requester's address. Forwarded headers are
// honored only when the connecting hop itself is a trusted proxy.
func (d *Detector) ExtractClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	hop, err := netip.ParseAddr(host)
	if err != nil || !d.isTrusted(hop) {
		return host
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if addr, err := netip.ParseAddr(strings.TrimSpace(first)); err == nil {
			return addr.String()
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		if addr, err := netip.ParseAddr(xri); err == nil {
			return addr.String()
		}
	}
	return host
}

func (d *Detector) isTrusted(addr netip.Addr) bool {
	for _, p := range d.trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// HeadersMiddleware applies the response headers appropriate for a JSON
// API: no sniffing, no framing, no caching of account data.
func HeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
