package bot

import "github.com/Travis-Britz/irc"

// write queues a message on the live connection. Messages sent while
// disconnected are dropped with a log line; command handlers may still be
// finishing when a connection goes away.
func (s *Session) write(m *irc.Message) {
	s.mu.Lock()
	client := s.client
	s.mu.Unlock()
	if client == nil {
		s.log.Warn("not connected, dropping message", "command", string(m.Command))
		return
	}
	client.WriteMessage(m)
}

func (s *Session) SetMode(channel, mode, nick string) {
	s.write(irc.Mode(channel, mode, nick))
}

func (s *Session) Kick(channel, nick, reason string) {
	s.write(irc.KickWithReason(channel, nick, reason))
}

func (s *Session) Invite(nick, channel string) {
	s.write(irc.Invite(nick, channel))
}

func (s *Session) SetTopic(channel, topic string) {
	s.write(irc.NewMessage(irc.CmdTopic, channel, topic))
}

func (s *Session) JoinChannel(channel string) {
	s.write(irc.Join(channel))
}

func (s *Session) PartChannel(channel string) {
	s.write(irc.Part(channel))
}

func (s *Session) Message(target, text string) {
	s.write(irc.Msg(target, text))
}
