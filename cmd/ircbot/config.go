package main

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/OCipriano/ircbot/bot"
)

func botConfigFromViper() bot.Config {
	return bot.Config{
		Server:   viper.GetString("irc.server"),
		Port:     viper.GetInt("irc.port"),
		Nickname: viper.GetString("irc.nick"),
		Password: viper.GetString("irc.password"),
		Channels: stringList("irc.channels", ","),

		WelcomeMessages: viper.GetStringMapString("irc.welcome_messages"),
		AlertChannels:   stringList("irc.alert_channels", ","),

		FloodCeiling: viper.GetInt("flood.ceiling"),
		FloodWindow:  viper.GetDuration("flood.window"),

		ReconnectAttempts: viper.GetInt("reconnect.attempts"),
		ReconnectDelay:    viper.GetDuration("reconnect.delay"),
	}
}

// stringList reads a viper key that may be a native list (config file) or a
// single delimited string (environment variable) and returns trimmed,
// non-empty entries.
func stringList(key, sep string) []string {
	var parts []string
	switch raw := viper.Get(key).(type) {
	case string:
		parts = strings.Split(raw, sep)
	case []string:
		parts = raw
	default:
		parts = viper.GetStringSlice(key)
	}

	var out []string
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
