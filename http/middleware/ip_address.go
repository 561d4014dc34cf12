package middleware

import (
	"context"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// UnknownIPAddress stands in for a client whose address cannot be determined.
const UnknownIPAddress = "0.0.0.0"

// Headers proxies forward the client's address in, most trusted first.
var forwardedHeaders = []string{"X-Forwarded-For", "X-Real-Ip"}

// Non-public ranges a proxy chain may pass through.
var privatePrefixes = []netip.Prefix{
	netip.MustParsePrefix("10.0.0.0/8"),
	netip.MustParsePrefix("100.64.0.0/10"),
	netip.MustParsePrefix("172.16.0.0/12"),
	netip.MustParsePrefix("192.0.0.0/24"),
	netip.MustParsePrefix("192.168.0.0/16"),
	netip.MustParsePrefix("198.18.0.0/15"),
	netip.MustParsePrefix("fc00::/7"),
}

// InjectIPAddress puts the client's address, as found by IPAddress,
// on the request's context under IPAddrKey.
func InjectIPAddress() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), IPAddrKey, IPAddress(r))))
		})
	}
}

// IPAddress returns the client address of r.
//
// A public address forwarded by a proxy wins over the address of the peer itself.
func IPAddress(r *http.Request) string {
	if ip := GetIPAddress(r.Header); ip != UnknownIPAddress {
		return ip
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	if addr, err := netip.ParseAddr(host); err == nil {
		return addr.Unmap().String()
	}

	return UnknownIPAddress
}

// GetIPAddress finds the client address in the "X-Forwarded-For" or "X-Real-Ip" header.
//
// Each header is read right to left, so the address returned is the last public one,
// the one just before the first proxy.
// UnknownIPAddress returns when no header holds a public address.
func GetIPAddress(hm http.Header) string {
	for _, h := range forwardedHeaders {
		hops := strings.Split(hm.Get(h), ",")
		for i := len(hops) - 1; i >= 0; i-- {
			addr, err := netip.ParseAddr(strings.TrimSpace(hops[i]))
			if err != nil || !public(addr) {
				continue
			}

			return addr.Unmap().String()
		}
	}

	return UnknownIPAddress
}

// public reports whether addr can belong to a client on the internet.
func public(addr netip.Addr) bool {
	addr = addr.Unmap()
	if !addr.IsGlobalUnicast() {
		return false
	}

	for _, p := range privatePrefixes {
		if p.Contains(addr) {
			return false
		}
	}

	return true
}
