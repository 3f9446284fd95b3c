// Package whois resolves domain registration creation dates, used as a
// fallback signal for estimating business age when no review history exists.
package whois

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	likexianwhois "github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"
)

// DomainLookup resolves the registration creation date of a domain. Lookups
// are best-effort: a nil time with a nil error means the date is unknown, and
// callers must treat any error the same way, never as fatal.
type DomainLookup interface {
	CreationDate(ctx context.Context, domain string) (*time.Time, error)
}

// Client performs live WHOIS lookups.
type Client struct {
	whois *likexianwhois.Client
}

// NewClient creates a WHOIS lookup client.
// Parameters:
//   - timeout: per-lookup network timeout; zero uses 10s.
// Returns:
//   - *Client: initialized lookup client.
func NewClient(timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	c := likexianwhois.NewClient()
	c.SetTimeout(timeout)
	return &Client{whois: c}
}

// CreationDate looks up the WHOIS record for domain and extracts its creation
// date, normalized to UTC.
// Parameters:
//   - ctx: context for cancellation; the lookup itself honors the client timeout.
//   - domain: bare domain name, e.g. "example.com".
// Returns:
//   - *time.Time: creation date in UTC, nil when the record carries none.
//   - error: non-nil if the lookup or parse fails.
func (c *Client) CreationDate(ctx context.Context, domain string) (*time.Time, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := c.whois.Whois(domain)
	if err != nil {
		return nil, fmt.Errorf("whois query for %s failed: %w", domain, err)
	}
	parsed, err := whoisparser.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("whois parse for %s failed: %w", domain, err)
	}
	if parsed.Domain == nil || parsed.Domain.CreatedDateInTime == nil {
		return nil, nil
	}
	created := parsed.Domain.CreatedDateInTime.UTC()
	return &created, nil
}

// Unavailable is the DomainLookup variant used when the capability is not
// wired in; every lookup reports unknown.
type Unavailable struct{}

// CreationDate always reports an unknown creation date.
func (Unavailable) CreationDate(context.Context, string) (*time.Time, error) {
	return nil, nil
}

// ExtractDomain pulls the bare domain out of a website URL, dropping any
// scheme, path, port, and leading "www.". Returns "" when no host can be
// derived.
func ExtractDomain(website string) string {
	website = strings.TrimSpace(website)
	if website == "" {
		return ""
	}
	if !strings.Contains(website, "://") {
		website = "https://" + website
	}
	u, err := url.Parse(website)
	if err != nil {
		return ""
	}
	host := u.Hostname()
	host = strings.TrimPrefix(host, "www.")
	return host
}
