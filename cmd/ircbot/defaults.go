package main

import (
	"time"

	"github.com/spf13/viper"
)

func initViperDefaults() {
	viper.SetDefault("irc.server", "irc.ptnet.org")
	viper.SetDefault("irc.port", 6697)
	viper.SetDefault("irc.nick", "")
	viper.SetDefault("irc.password", "")
	viper.SetDefault("irc.channels", "")
	viper.SetDefault("irc.admins", "")
	viper.SetDefault("irc.welcome_messages", map[string]string{})
	viper.SetDefault("irc.alert_channels", "")

	viper.SetDefault("flood.ceiling", 5)
	viper.SetDefault("flood.window", 60*time.Second)

	viper.SetDefault("reconnect.attempts", 5)
	viper.SetDefault("reconnect.delay", 5*time.Second)

	viper.SetDefault("telegram.token", "")
	viper.SetDefault("telegram.chat_id", "")
	viper.SetDefault("telegram.api_base", "https://api.telegram.org")

	viper.SetDefault("price.api_base", "https://api.binance.com")
	viper.SetDefault("price.timeout", 10*time.Second)

	viper.SetDefault("seen.path", "db/seen.json")

	viper.SetDefault("logging.format", "text")
	viper.SetDefault("logging.add_source", false)
}
