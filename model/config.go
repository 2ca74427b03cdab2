package model

import "time"

// Config is the process-wide configuration, loaded once at startup.
type Config struct {
	BotToken      string
	AppID         string
	DBPath        string
	LogChannelID  string
	SweepInterval time.Duration
	GuildConfigs  map[string]GuildConfig
}

// GuildConfig carries the per-guild settings read from the optional
// config file. Everything in here is independent of the self-role store.
type GuildConfig struct {
	WelcomeChannelID  string   `mapstructure:"welcome_channel_id"`
	WelcomeMessage    string   `mapstructure:"welcome_message"`
	GoodbyeChannelID  string   `mapstructure:"goodbye_channel_id"`
	GoodbyeMessage    string   `mapstructure:"goodbye_message"`
	MediaOnlyChannels []string `mapstructure:"media_only_channels"`
}
