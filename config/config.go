package config

import (
	"log"
	"time"

	"selfrole-bot/model"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configuration from the environment (optionally via .env)
// and from an optional config.yaml next to the binary.
func Load() (*model.Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: .env file not found, relying on environment variables")
	}

	viper.SetDefault("db_path", "./data/selfrole.db")
	viper.SetDefault("sweep_interval", "5m")
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./data")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		log.Println("Warning: config.yaml not found, per-guild features are disabled")
	}

	token := viper.GetString("bot_token")
	if token == "" {
		log.Fatal("Error: BOT_TOKEN environment variable not set")
	}

	appID := viper.GetString("app_id")
	if appID == "" {
		log.Fatal("Error: APP_ID environment variable not set")
	}

	logChannelID := viper.GetString("log_channel_id")
	if logChannelID == "" {
		log.Println("Warning: LOG_CHANNEL_ID not set, channel logging is disabled")
	}

	sweepInterval := viper.GetDuration("sweep_interval")
	if sweepInterval <= 0 {
		log.Println("Warning: invalid sweep_interval, using default of 5m")
		sweepInterval = 5 * time.Minute
	}

	cfg := &model.Config{
		BotToken:      token,
		AppID:         appID,
		DBPath:        viper.GetString("db_path"),
		LogChannelID:  logChannelID,
		SweepInterval: sweepInterval,
		GuildConfigs:  make(map[string]model.GuildConfig),
	}

	if err := viper.UnmarshalKey("guilds", &cfg.GuildConfigs); err != nil {
		return nil, err
	}

	return cfg, nil
}
