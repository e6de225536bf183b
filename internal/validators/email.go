package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

const lookupTimeout = 3 * time.Second

// IsEmailDomainValid accepts an address whose domain has an MX record or,
// failing that, resolves to an IP. Lookups are bounded by lookupTimeout.
func IsEmailDomainValid(ctx context.Context, email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	if mx, err := net.DefaultResolver.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.DefaultResolver.LookupIPAddr(ctx, domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}

// AcceptAnyDomain skips the DNS check, for offline environments.
func AcceptAnyDomain(_ context.Context, email string) bool {
	at := strings.LastIndex(email, "@")
	return at > 0 && at < len(email)-1
}
