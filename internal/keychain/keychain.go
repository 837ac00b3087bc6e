package keychain

import (
	"errors"

	"github.com/zalando/go-keyring"
)

const serviceName = "postbridge"

// Accounts under which postbridge stores secrets.
const (
	AccountTelegramBotToken    = "telegram-bot-token"
	AccountTelegramSecret      = "telegram-webhook-secret"
	AccountMastodonAccessToken = "mastodon-access-token"
)

// Accounts lists every account postbridge reads.
var Accounts = []string{
	AccountTelegramBotToken,
	AccountTelegramSecret,
	AccountMastodonAccessToken,
}

// Get retrieves a secret from the system keychain.
func Get(account string) (string, error) {
	return keyring.Get(serviceName, account)
}

// Set stores a secret in the system keychain.
func Set(account, value string) error {
	return keyring.Set(serviceName, account, value)
}

// Lookup is Get, except that a missing secret is not an error.
func Lookup(account string) (string, error) {
	v, err := keyring.Get(serviceName, account)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	return v, err
}

// Known reports whether account is one postbridge reads.
func Known(account string) bool {
	for _, a := range Accounts {
		if a == account {
			return true
		}
	}
	return false
}
