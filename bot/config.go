package bot

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultServer            = "irc.ptnet.org"
	DefaultPort              = 6697
	DefaultReconnectAttempts = 5
	DefaultReconnectDelay    = 5 * time.Second
)

// Config holds the IRC-facing settings for a Session.
type Config struct {
	Server   string
	Port     int
	Nickname string

	// Password is the NickServ password. Identification is skipped when empty.
	Password string

	Channels []string

	// WelcomeMessages maps a channel to the template greeting users who
	// join it. The literal "{nick}" is replaced with the joining nick.
	// Channels without a template get no greeting.
	WelcomeMessages map[string]string

	// AlertChannels is the subset of channels whose joins are pushed to
	// the operator notifier.
	AlertChannels []string

	FloodCeiling int
	FloodWindow  time.Duration

	ReconnectAttempts int
	ReconnectDelay    time.Duration
}

func (c *Config) normalize() error {
	c.Server = strings.TrimSpace(c.Server)
	if c.Server == "" {
		c.Server = DefaultServer
	}
	if c.Port <= 0 {
		c.Port = DefaultPort
	}
	c.Nickname = strings.TrimSpace(c.Nickname)
	if c.Nickname == "" {
		return fmt.Errorf("bot: nickname is required")
	}
	if len(c.Channels) == 0 {
		return fmt.Errorf("bot: at least one channel is required")
	}
	for i, ch := range c.Channels {
		c.Channels[i] = strings.TrimSpace(ch)
		if !strings.HasPrefix(c.Channels[i], "#") {
			return fmt.Errorf("bot: invalid channel name %q", ch)
		}
	}
	if c.ReconnectAttempts <= 0 {
		c.ReconnectAttempts = DefaultReconnectAttempts
	}
	if c.ReconnectDelay <= 0 {
		c.ReconnectDelay = DefaultReconnectDelay
	}
	return nil
}

func (c *Config) addr() string {
	return net.JoinHostPort(c.Server, strconv.Itoa(c.Port))
}

// welcomeTemplate returns the greeting template for channel, or "" when the
// channel has none. Channel names compare case-insensitively.
func (c *Config) welcomeTemplate(channel string) string {
	for ch, template := range c.WelcomeMessages {
		if strings.EqualFold(ch, channel) {
			return template
		}
	}
	return ""
}

func (c *Config) isAlertChannel(channel string) bool {
	for _, ch := range c.AlertChannels {
		if strings.EqualFold(ch, channel) {
			return true
		}
	}
	return false
}
