package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port                     string        `mapstructure:"PORT"`
	DatabasePath             string        `mapstructure:"DATABASE_PATH"`
	JWTSecret                string        `mapstructure:"JWT_SECRET"`
	OAuthClientID            string        `mapstructure:"OAUTH_CLIENT_ID"`
	OAuthClientSecret        string        `mapstructure:"OAUTH_CLIENT_SECRET"`
	OAuthRedirectURL         string        `mapstructure:"OAUTH_REDIRECT_URL"`
	OAuthAuthURL             string        `mapstructure:"OAUTH_AUTH_URL"`
	OAuthTokenURL            string        `mapstructure:"OAUTH_TOKEN_URL"`
	OAuthUserInfoURL         string        `mapstructure:"OAUTH_USERINFO_URL"`
	DiscordBotToken          string        `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordReportsChannelID  string        `mapstructure:"DISCORD_REPORTS_CHANNEL_ID"`
	ExpiringReportInterval   time.Duration `mapstructure:"EXPIRING_REPORT_INTERVAL"`
	RevenueReportInterval    time.Duration `mapstructure:"REVENUE_REPORT_INTERVAL"`
}

func LoadConfig() *Config {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DATABASE_PATH", "station.db")
	viper.SetDefault("OAUTH_REDIRECT_URL", "http://127.0.0.1:8080/auth/callback")
	viper.SetDefault("EXPIRING_REPORT_INTERVAL", "30s")
	viper.SetDefault("REVENUE_REPORT_INTERVAL", "1h")

	viper.BindEnv("OAUTH_CLIENT_ID")
	viper.BindEnv("OAUTH_CLIENT_SECRET")
	viper.BindEnv("OAUTH_AUTH_URL")
	viper.BindEnv("OAUTH_TOKEN_URL")
	viper.BindEnv("OAUTH_USERINFO_URL")
	viper.BindEnv("DISCORD_BOT_TOKEN")
	viper.BindEnv("DISCORD_REPORTS_CHANNEL_ID")
	viper.BindEnv("JWT_SECRET")
	viper.BindEnv("EXPIRING_REPORT_INTERVAL")
	viper.BindEnv("REVENUE_REPORT_INTERVAL")

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	return &config
}
