package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/Travis-Britz/irc"

	"github.com/OCipriano/ircbot/command"
)

func (s *Session) routes() irc.Handler {
	r := &irc.Router{}
	r.OnConnect(s.onWelcome)
	r.HandleFunc(irc.RplErrNicknameInUse, s.onNickInUse)
	r.HandleFunc(irc.CmdPrivmsg, s.onPrivmsg)
	r.OnJoin(s.onJoin)
	r.OnPart(s.onPart)
	return r
}

// onWelcome fires on the server welcome (001): identify with NickServ,
// join the configured channels, and alert the operator.
func (s *Session) onWelcome(w irc.MessageWriter, m *irc.Message) {
	s.markWelcomed()
	s.setState(StateAuthenticated)

	if s.cfg.Password != "" {
		w.WriteMessage(irc.Msg("NickServ", fmt.Sprintf("IDENTIFY %s %s", s.currentNick(), s.cfg.Password)))
		s.log.Info("sent nickserv identify", "nick", s.currentNick())
	}
	for _, channel := range s.cfg.Channels {
		w.WriteMessage(irc.Join(channel))
	}
	s.notifyAsync("✅ O bot ligou-se com sucesso ao IRC.")
}

// onNickInUse appends an underscore and retries registration.
func (s *Session) onNickInUse(w irc.MessageWriter, m *irc.Message) {
	s.mu.Lock()
	s.nickSuffix++
	s.mu.Unlock()

	nick := s.currentNick()
	s.log.Warn("nickname in use, retrying", "nick", nick)
	w.WriteMessage(irc.Nick(nick))
}

func (s *Session) onPrivmsg(w irc.MessageWriter, m *irc.Message) {
	nick := m.Source.Nick.String()
	if nick == "" || m.Source.Nick.Is(s.currentNick()) {
		return
	}

	text, _ := m.Text()
	target, _ := m.Target()
	fromChannel := strings.HasPrefix(target, "#")

	if fromChannel {
		if s.seen != nil {
			if err := s.seen.Record(nick); err != nil {
				s.log.Warn("seen record failed", "nick", nick, "error", err)
			}
		}
	}

	inv, ok := command.Parse(text)
	if !ok {
		return
	}
	inv.Nick = nick
	if fromChannel {
		if !s.limiter.Allow(nick) {
			s.log.Info("command rejected by flood limit", "nick", nick, "command", inv.Name)
			return
		}
		inv.Target = target
	} else {
		// Direct messages reply to the sender and skip the flood limit.
		inv.Target = nick
	}
	s.dispatch(inv)
}

// dispatch hands the invocation to the executor on its own goroutine so a
// slow command cannot stall the read loop.
func (s *Session) dispatch(inv command.Invocation) {
	s.mu.Lock()
	ctx := s.runCtx
	s.mu.Unlock()
	if ctx == nil {
		ctx = context.Background()
	}

	s.log.Info("dispatching command",
		"id", inv.ID, "command", inv.Name, "nick", inv.Nick, "target", inv.Target)
	go s.executor.Execute(ctx, s, inv)
}

func (s *Session) onJoin(w irc.MessageWriter, m *irc.Message) {
	channel, _ := m.Chan()
	nick := m.Source.Nick

	if nick.Is(s.currentNick()) {
		s.trackSelfJoin(channel)
		return
	}

	if template := s.cfg.welcomeTemplate(channel); template != "" {
		w.WriteMessage(irc.Msg(channel, strings.ReplaceAll(template, "{nick}", nick.String())))
	}
	if s.cfg.isAlertChannel(channel) {
		s.notifyAsync(fmt.Sprintf("👤 <b>%s</b> entrou no canal <b>%s</b>.", nick, channel))
	}
}

func (s *Session) onPart(w irc.MessageWriter, m *irc.Message) {
	channel, _ := m.Chan()
	if !m.Source.Nick.Is(s.currentNick()) {
		return
	}

	s.mu.Lock()
	delete(s.joined, channel)
	s.mu.Unlock()
	s.log.Info("left channel", "channel", channel)
	s.notifyAsync(fmt.Sprintf("👋 O bot saiu do canal <b>%s</b>.", channel))
}

func (s *Session) trackSelfJoin(channel string) {
	s.mu.Lock()
	s.joined[channel] = true
	all := true
	for _, ch := range s.cfg.Channels {
		if !s.joined[ch] {
			all = false
			break
		}
	}
	s.mu.Unlock()

	s.log.Info("joined channel", "channel", channel)
	if all {
		s.setState(StateActive)
	} else {
		s.setState(StateJoined)
	}
}
