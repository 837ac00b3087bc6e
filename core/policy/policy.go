package policy

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrSecretMismatch = errors.New("secret token mismatch")
	ErrChatNotAllowed = errors.New("chat not allowed")
)

// Policy authorizes webhook deliveries against a shared secret and an
// optional chat allowlist.
type Policy struct {
	secret  string
	allowed map[int64]bool
}

// New creates a Policy. An empty secret disables the secret check. A nil
// chatIDs slice allows every chat; a non-nil empty slice allows none.
func New(secret string, chatIDs []int64) *Policy {
	p := &Policy{secret: secret}
	if chatIDs != nil {
		p.allowed = make(map[int64]bool, len(chatIDs))
		for _, id := range chatIDs {
			p.allowed[id] = true
		}
	}
	return p
}

// VerifySecret checks the secret header of a delivery.
func (p *Policy) VerifySecret(token string) error {
	if p.secret == "" {
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(p.secret)) != 1 {
		return ErrSecretMismatch
	}
	return nil
}

// Authorize checks whether a chat may invoke commands.
func (p *Policy) Authorize(chatID int64) error {
	if p.allowed == nil {
		return nil
	}
	if !p.allowed[chatID] {
		return fmt.Errorf("%w: %d", ErrChatNotAllowed, chatID)
	}
	return nil
}

// ParseAllowlist parses a comma-separated list of chat IDs. Empty and
// non-numeric entries are dropped. It returns nil when raw is blank.
func ParseAllowlist(raw string) []int64 {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	ids := []int64{}
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		id, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
