package util

import (
	"fmt"
	"net"
	"strconv"
)

// ResolveAddr builds a host:port string, validating that the host is a
// numeric IP when noDNS is true.  Name resolution itself is left to the
// dialer.
func ResolveAddr(host string, port int, noDNS bool) (string, error) {
	if noDNS && net.ParseIP(host) == nil {
		return "", fmt.Errorf("cannot parse %q as an IP address (DNS disabled with --no-dns)", host)
	}
	return FormatAddr(host, port), nil
}

// FormatAddr returns "host:port", bracketing IPv6 literals.
func FormatAddr(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
