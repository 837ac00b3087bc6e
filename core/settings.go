package core

// Settings is the slice of configuration a delivery needs. It is read once
// per delivery so secret and allowlist changes apply without a restart.
type Settings struct {
	// BaseURL is the public URL this service is reachable at.
	BaseURL string
	// WebhookSecret is compared against the secret header when non-empty.
	WebhookSecret string
	// AllowedChatIDs is the raw comma-separated allowlist.
	AllowedChatIDs string
}

// SettingsSource provides the current Settings.
type SettingsSource interface {
	Snapshot() Settings
}

// StaticSettings is a SettingsSource that never changes.
type StaticSettings Settings

func (s StaticSettings) Snapshot() Settings { return Settings(s) }
