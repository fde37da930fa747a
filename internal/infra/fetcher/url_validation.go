package fetcher

import (
	"errors"
	"fmt"
	"net"
	"net/url"
)

// ErrPrivateAddress indicates a target URL resolving to a loopback, private,
// or link-local address. Menu sources are public sites; anything else is a
// misconfiguration or an SSRF attempt.
var ErrPrivateAddress = errors.New("target resolves to a private address")

// checkPublicAddress resolves the URL's hostname and rejects it when any
// resolved address is loopback, private, or link-local.
func checkPublicAddress(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse URL: %w", err)
	}

	hostname := u.Hostname()
	ips, err := net.LookupIP(hostname)
	if err != nil {
		return fmt.Errorf("DNS lookup failed for %s: %w", hostname, err)
	}
	for _, ip := range ips {
		if ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() {
			return fmt.Errorf("%w: %s resolves to %s", ErrPrivateAddress, hostname, ip)
		}
	}
	return nil
}
