// Package bot runs the IRC session: connecting, authenticating, joining
// channels, dispatching commands, and reconnecting after failures.
package bot

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Travis-Britz/irc"
	"github.com/cenkalti/backoff/v4"

	"github.com/OCipriano/ircbot/command"
	"github.com/OCipriano/ircbot/flood"
)

// Executor dispatches a parsed command invocation.
type Executor interface {
	Execute(ctx context.Context, actions command.Actions, inv command.Invocation)
}

// Recorder stamps a nick as active now.
type Recorder interface {
	Record(nick string) error
}

// Notifier pushes operational alerts to an external channel.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, string) error { return nil }

// Dependencies are the collaborators a Session needs. Logger defaults to
// slog.Default, Notifier to a no-op; Executor is required.
type Dependencies struct {
	Logger   *slog.Logger
	Executor Executor
	Seen     Recorder
	Notifier Notifier

	// DialFn overrides the TLS dial to the configured server.
	DialFn func() (io.ReadWriteCloser, error)
}

// Session owns one bot identity on one IRC network. Run drives the whole
// lifecycle and only returns when the session is stopped or the reconnect
// budget is spent.
type Session struct {
	cfg      Config
	log      *slog.Logger
	executor Executor
	seen     Recorder
	notifier Notifier
	dialFn   func() (io.ReadWriteCloser, error)
	limiter  *flood.Limiter

	mu         sync.Mutex
	client     *irc.Client
	state      State
	joined     map[string]bool
	nickSuffix int
	welcomed   bool
	runCtx     context.Context
	cancel     context.CancelFunc
}

func New(cfg Config, deps Dependencies) (*Session, error) {
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	if deps.Executor == nil {
		return nil, fmt.Errorf("bot: executor is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	notifier := deps.Notifier
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &Session{
		cfg:      cfg,
		log:      logger,
		executor: deps.Executor,
		seen:     deps.Seen,
		notifier: notifier,
		dialFn:   deps.DialFn,
		limiter:  flood.NewLimiter(cfg.FloodCeiling, cfg.FloodWindow),
		joined:   map[string]bool{},
	}, nil
}

// Run connects and serves until ctx is cancelled, Stop is called, or the
// reconnect budget is exhausted. The budget resets after every connection
// that reached the server welcome.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.mu.Lock()
	s.runCtx = ctx
	s.cancel = cancel
	s.mu.Unlock()
	defer s.limiter.Close()

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(s.cfg.ReconnectDelay), uint64(s.cfg.ReconnectAttempts)),
		ctx,
	)

	for {
		err := s.connectOnce(ctx)
		s.setState(StateDisconnected)
		if ctx.Err() != nil || err == nil {
			return nil
		}
		s.log.Error("connection lost", "server", s.cfg.addr(), "error", err)

		if s.takeWelcomed() {
			policy.Reset()
			s.notifyAsync("⚠️ O bot foi desconectado do servidor IRC.")
		}

		wait := policy.NextBackOff()
		if wait == backoff.Stop {
			if ctx.Err() == nil {
				s.notify(ctx, "❌ Falha ao reconectar após várias tentativas.")
			}
			return fmt.Errorf("bot: reconnect attempts exhausted: %w", err)
		}
		s.log.Info("reconnecting", "wait", wait)
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(wait):
		}
	}
}

// Stop asks a running session to disconnect gracefully.
func (s *Session) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// connectOnce runs a single connection to completion. A fresh client is
// built every time because the transport keeps per-connection state.
func (s *Session) connectOnce(ctx context.Context) error {
	s.setState(StateConnecting)

	client := &irc.Client{
		Addr:     s.cfg.addr(),
		Nickname: s.currentNick(),
		User:     s.cfg.Nickname,
		Realname: s.cfg.Nickname,
		DialFn:   s.dialFn,
		ErrorLog: slog.NewLogLogger(s.log.Handler(), slog.LevelDebug),
	}

	s.mu.Lock()
	s.client = client
	s.joined = map[string]bool{}
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.client = nil
		s.mu.Unlock()
	}()

	s.log.Info("connecting", "server", s.cfg.addr(), "nick", client.Nickname)
	return client.ConnectAndRun(ctx, s.routes())
}

func (s *Session) currentNick() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Nickname + strings.Repeat("_", s.nickSuffix)
}

func (s *Session) setState(state State) {
	s.mu.Lock()
	prev := s.state
	s.state = state
	s.mu.Unlock()
	if prev != state {
		s.log.Debug("session state changed", "from", prev.String(), "to", state.String())
	}
}

func (s *Session) markWelcomed() {
	s.mu.Lock()
	s.welcomed = true
	s.mu.Unlock()
}

func (s *Session) takeWelcomed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	welcomed := s.welcomed
	s.welcomed = false
	return welcomed
}

// notify delivers an alert synchronously. Failures are logged, never fatal.
func (s *Session) notify(ctx context.Context, text string) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := s.notifier.Notify(ctx, text); err != nil {
		s.log.Warn("notification failed", "error", err)
	}
}

// notifyAsync delivers an alert without blocking the IRC read loop.
func (s *Session) notifyAsync(text string) {
	go s.notify(context.Background(), text)
}
