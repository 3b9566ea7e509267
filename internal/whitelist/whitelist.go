package whitelist

import (
	"strings"

	"go.uber.org/zap"
)

// Checker answers whether a message's sender header is registered as
// trusted. Trusted senders (e.g. verified bank short codes) bypass scoring
// entirely.
type Checker struct {
	senders map[string]struct{}
	logger  *zap.Logger
}

// NewChecker creates a checker over the configured sender headers.
// Matching is case-insensitive and ignores surrounding whitespace.
func NewChecker(senders []string, logger *zap.Logger) *Checker {
	normalized := make(map[string]struct{}, len(senders))
	for _, sender := range senders {
		sender = strings.ToLower(strings.TrimSpace(sender))
		if sender != "" {
			normalized[sender] = struct{}{}
		}
	}

	if len(normalized) > 0 && logger != nil {
		logger.Info("Initialized trusted sender list", zap.Int("count", len(normalized)))
	}

	return &Checker{senders: normalized, logger: logger}
}

// IsTrusted checks if the sender header is in the trusted list.
func (c *Checker) IsTrusted(senderHeader string) bool {
	if len(c.senders) == 0 {
		return false
	}

	_, ok := c.senders[strings.ToLower(strings.TrimSpace(senderHeader))]
	if ok && c.logger != nil {
		c.logger.Debug("Sender is trusted", zap.String("sender", senderHeader))
	}
	return ok
}
