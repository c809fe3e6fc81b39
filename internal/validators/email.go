package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

const emailLookupTimeout = 3 * time.Second

// emailDomain returns the lower-cased part after the last "@", or "" when
// the address has no usable domain.
func emailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return ""
	}
	domain := strings.ToLower(strings.TrimSpace(email[at+1:]))
	if !strings.Contains(domain, ".") {
		return ""
	}
	return domain
}

// IsEmailDomainValid reports whether the address's domain has MX or address
// records. Used at registration in production only.
func IsEmailDomainValid(email string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), emailLookupTimeout)
	defer cancel()
	return EmailDomainResolves(ctx, net.DefaultResolver, email)
}

func EmailDomainResolves(ctx context.Context, r *net.Resolver, email string) bool {
	domain := emailDomain(email)
	if domain == "" {
		return false
	}

	if mx, err := r.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := r.LookupIPAddr(ctx, domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
