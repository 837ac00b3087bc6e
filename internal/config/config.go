package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/jdelaire/postbridge/core"
	"github.com/jdelaire/postbridge/internal/keychain"
)

// Settings is the full postbridge configuration, corresponding to
// postbridge.yml.
type Settings struct {
	ListenAddr string   `koanf:"listen_addr"`
	BaseURL    string   `koanf:"base_url"`
	Telegram   Telegram `koanf:"telegram"`
	Mastodon   Mastodon `koanf:"mastodon"`
	Log        Log      `koanf:"log"`
}

// Telegram holds bot and webhook settings.
type Telegram struct {
	BotToken       string `koanf:"bot_token"`
	WebhookSecret  string `koanf:"webhook_secret"`
	AllowedChatIDs string `koanf:"allowed_chat_ids"` // comma-separated
	APIBaseURL     string `koanf:"api_base_url"`
}

// Mastodon holds publishing settings.
type Mastodon struct {
	BaseURL     string `koanf:"base_url"`
	AccessToken string `koanf:"access_token"`
	Visibility  string `koanf:"visibility"`
}

// Log controls the slog handler.
type Log struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Defaults returns the settings used before file and environment overlays.
func Defaults() *Settings {
	return &Settings{
		ListenAddr: ":8080",
		Telegram: Telegram{
			APIBaseURL: "https://api.telegram.org",
		},
		Mastodon: Mastodon{
			Visibility: "public",
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// envKeys maps environment variables onto config keys.
var envKeys = map[string]string{
	"APP_BASE_URL":              "base_url",
	"TELEGRAM_BOT_TOKEN":        "telegram.bot_token",
	"TELEGRAM_WEBHOOK_SECRET":   "telegram.webhook_secret",
	"ALLOWED_TELEGRAM_CHAT_IDS": "telegram.allowed_chat_ids",
	"TELEGRAM_API_BASE_URL":     "telegram.api_base_url",
	"MASTODON_BASE_URL":         "mastodon.base_url",
	"MASTODON_ACCESS_TOKEN":     "mastodon.access_token",
	"MASTODON_VISIBILITY":       "mastodon.visibility",
	"POSTBRIDGE_LISTEN_ADDR":    "listen_addr",
	"POSTBRIDGE_LOG_LEVEL":      "log.level",
	"POSTBRIDGE_LOG_FORMAT":     "log.format",
}

// lookupSecret reads secrets missing from file and environment.
var lookupSecret = keychain.Lookup

// Load reads configuration from the optional YAML file at path, overlays
// environment variables (a .env file is honored), then fills empty secrets
// from the system keychain.
func Load(path string) (*Settings, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	cfg := Defaults()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	// Empty variables do not override the file.
	if err := k.Load(env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		if value == "" {
			return "", nil
		}
		return envKeys[key], value
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	fillSecret(&cfg.Telegram.BotToken, keychain.AccountTelegramBotToken)
	fillSecret(&cfg.Telegram.WebhookSecret, keychain.AccountTelegramSecret)
	fillSecret(&cfg.Mastodon.AccessToken, keychain.AccountMastodonAccessToken)

	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	return cfg, nil
}

// fillSecret sets *dst from the keychain when it is empty. An unavailable
// keychain leaves it empty.
func fillSecret(dst *string, account string) {
	if *dst != "" {
		return
	}
	if v, err := lookupSecret(account); err == nil {
		*dst = v
	}
}

var validVisibility = map[string]bool{
	"public":   true,
	"unlisted": true,
	"private":  true,
	"direct":   true,
}

// ValidateRegistration checks the settings needed to register the webhook.
// A missing base URL is reported by the registration itself.
func (s *Settings) ValidateRegistration() error {
	if s.Telegram.BotToken == "" {
		return fmt.Errorf("telegram bot token is required (TELEGRAM_BOT_TOKEN)")
	}
	return nil
}

// Validate checks the settings needed to serve webhooks.
func (s *Settings) Validate() error {
	if err := s.ValidateRegistration(); err != nil {
		return err
	}
	if s.Mastodon.BaseURL == "" {
		return fmt.Errorf("mastodon base URL is required (MASTODON_BASE_URL)")
	}
	if s.Mastodon.AccessToken == "" {
		return fmt.Errorf("mastodon access token is required (MASTODON_ACCESS_TOKEN)")
	}
	if !validVisibility[s.Mastodon.Visibility] {
		return fmt.Errorf("invalid mastodon visibility %q: must be one of public, unlisted, private, direct", s.Mastodon.Visibility)
	}
	return nil
}

// Store holds the current settings and reloads them from their source.
type Store struct {
	path string

	mu      sync.RWMutex
	current *Settings
}

// NewStore loads settings from path and keeps them for reloading.
func NewStore(path string) (*Store, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Store{path: path, current: cfg}, nil
}

// Path returns the config file path the store reads.
func (s *Store) Path() string { return s.path }

// Current returns a copy of the current settings.
func (s *Store) Current() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return *s.current
}

// Reload re-reads the settings. On error the previous settings are kept.
func (s *Store) Reload() error {
	cfg, err := Load(s.path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.current = cfg
	s.mu.Unlock()
	return nil
}

// Snapshot implements core.SettingsSource.
func (s *Store) Snapshot() core.Settings {
	cur := s.Current()
	return core.Settings{
		BaseURL:        cur.BaseURL,
		WebhookSecret:  cur.Telegram.WebhookSecret,
		AllowedChatIDs: cur.Telegram.AllowedChatIDs,
	}
}
