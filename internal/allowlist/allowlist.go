package allowlist

import (
	"strings"

	"go.uber.org/zap"
)

// Checker decides whether a sender domain is trusted enough to bypass
// classification. Matching covers the domain itself and its subdomains.
type Checker struct {
	domains []string
	logger  *zap.Logger
}

// NewChecker creates a checker over the configured trusted domains.
func NewChecker(domains []string, logger *zap.Logger) *Checker {
	normalized := make([]string, 0, len(domains))
	for _, domain := range domains {
		domain = strings.ToLower(strings.TrimSpace(domain))
		if domain != "" {
			normalized = append(normalized, domain)
		}
	}

	if len(normalized) > 0 && logger != nil {
		logger.Info("Initialized sender allowlist", zap.Strings("domains", normalized))
	}

	return &Checker{
		domains: normalized,
		logger:  logger,
	}
}

// IsAllowed reports whether the sender address belongs to an allowlisted
// domain. Addresses without a single @ are never allowed.
func (c *Checker) IsAllowed(sender string) bool {
	if len(c.domains) == 0 {
		return false
	}

	parts := strings.Split(sender, "@")
	if len(parts) != 2 || parts[1] == "" {
		return false
	}
	domain := strings.ToLower(parts[1])

	for _, trusted := range c.domains {
		if domain == trusted || strings.HasSuffix(domain, "."+trusted) {
			if c.logger != nil {
				c.logger.Debug("Sender domain is allowlisted",
					zap.String("domain", domain),
					zap.String("sender", sender))
			}
			return true
		}
	}

	return false
}
