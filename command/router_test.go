package command

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
)

type recordedAction struct {
	kind string
	args []string
}

// actionRecorder implements Actions and remembers every call.
type actionRecorder struct {
	actions []recordedAction
}

func (a *actionRecorder) record(kind string, args ...string) {
	a.actions = append(a.actions, recordedAction{kind: kind, args: args})
}

func (a *actionRecorder) SetMode(channel, mode, nick string) { a.record("mode", channel, mode, nick) }
func (a *actionRecorder) Kick(channel, nick, reason string)  { a.record("kick", channel, nick, reason) }
func (a *actionRecorder) Invite(nick, channel string)        { a.record("invite", nick, channel) }
func (a *actionRecorder) SetTopic(channel, topic string)     { a.record("topic", channel, topic) }
func (a *actionRecorder) JoinChannel(channel string)         { a.record("join", channel) }
func (a *actionRecorder) PartChannel(channel string)         { a.record("part", channel) }
func (a *actionRecorder) Message(target, text string)        { a.record("message", target, text) }

func (a *actionRecorder) messages() []string {
	var out []string
	for _, act := range a.actions {
		if act.kind == "message" {
			out = append(out, act.args[1])
		}
	}
	return out
}

func (a *actionRecorder) ofKind(kind string) []recordedAction {
	var out []recordedAction
	for _, act := range a.actions {
		if act.kind == kind {
			out = append(out, act)
		}
	}
	return out
}

type stubSeen struct{}

func (stubSeen) LastSeen(nick string) string {
	return fmt.Sprintf("%s foi visto pela última vez em 2026-01-02 15:04:05", nick)
}

type stubPrice struct{}

func (stubPrice) Quote(_ context.Context, symbol string) string {
	return fmt.Sprintf("💶 %s: 1.00000000 EUR", strings.ToUpper(symbol))
}

func newTestRouter() *Router {
	return NewRouter(RouterConfig{
		Admins: NewAdminSet([]string{"admin"}),
		Seen:   stubSeen{},
		Price:  stubPrice{},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func invoke(t *testing.T, nick, line string) (*actionRecorder, *Router) {
	t.Helper()
	inv, ok := Parse(line)
	if !ok {
		t.Fatalf("Parse(%q) did not yield a command", line)
	}
	inv.Nick = nick
	inv.Target = "#chan"
	rec := &actionRecorder{}
	r := newTestRouter()
	r.Execute(context.Background(), rec, inv)
	return rec, r
}

func TestKickJoinsReason(t *testing.T) {
	t.Parallel()

	rec, _ := invoke(t, "admin", "!kick bob spamming a lot")
	kicks := rec.ofKind("kick")
	if len(kicks) != 1 {
		t.Fatalf("kicks = %d, want 1", len(kicks))
	}
	got := kicks[0].args
	if got[0] != "#chan" || got[1] != "bob" || got[2] != "spamming a lot" {
		t.Fatalf("Kick args = %v", got)
	}
}

func TestKickDeniedForNonAdmin(t *testing.T) {
	t.Parallel()

	rec, _ := invoke(t, "guest", "!kick bob rude")
	if len(rec.ofKind("kick")) != 0 {
		t.Fatal("non-admin kick should not reach the session")
	}
	msgs := rec.messages()
	if len(msgs) != 1 || msgs[0] != replyNoPermission {
		t.Fatalf("messages = %v, want the no-permission reply", msgs)
	}
}

func TestVoiceUsageReply(t *testing.T) {
	t.Parallel()

	rec, _ := invoke(t, "admin", "!voice")
	if len(rec.ofKind("mode")) != 0 {
		t.Fatal("usage failure should not issue a mode change")
	}
	msgs := rec.messages()
	if len(msgs) != 1 || msgs[0] != "ℹ️ Uso correto: !voice <nick>" {
		t.Fatalf("messages = %v, want the usage reply", msgs)
	}
}

func TestOpDefaultsToSender(t *testing.T) {
	t.Parallel()

	rec, _ := invoke(t, "admin", "!op")
	modes := rec.ofKind("mode")
	if len(modes) != 1 {
		t.Fatalf("modes = %d, want 1", len(modes))
	}
	got := modes[0].args
	if got[0] != "#chan" || got[1] != "+o" || got[2] != "admin" {
		t.Fatalf("SetMode args = %v", got)
	}
}

func TestBanSetsMaskAndKicks(t *testing.T) {
	t.Parallel()

	for _, cmd := range []string{"!ban", "!kb"} {
		rec, _ := invoke(t, "admin", cmd+" bob flooding hard")
		modes := rec.ofKind("mode")
		if len(modes) != 1 || modes[0].args[1] != "+b" || modes[0].args[2] != "bob!*@*" {
			t.Fatalf("%s modes = %v", cmd, modes)
		}
		kicks := rec.ofKind("kick")
		if len(kicks) != 1 || kicks[0].args[2] != "flooding hard" {
			t.Fatalf("%s kicks = %v", cmd, kicks)
		}
	}
}

func TestUnbanClearsMask(t *testing.T) {
	t.Parallel()

	rec, _ := invoke(t, "admin", "!unban bob")
	modes := rec.ofKind("mode")
	if len(modes) != 1 || modes[0].args[1] != "-b" || modes[0].args[2] != "bob!*@*" {
		t.Fatalf("modes = %v", modes)
	}
}

func TestTopicJoinsArgs(t *testing.T) {
	t.Parallel()

	rec, _ := invoke(t, "admin", "!topic bem vindos ao canal")
	topics := rec.ofKind("topic")
	if len(topics) != 1 || topics[0].args[1] != "bem vindos ao canal" {
		t.Fatalf("topics = %v", topics)
	}
}

func TestInviteTargetsOriginChannel(t *testing.T) {
	t.Parallel()

	rec, _ := invoke(t, "admin", "!invite bob")
	invites := rec.ofKind("invite")
	if len(invites) != 1 || invites[0].args[0] != "bob" || invites[0].args[1] != "#chan" {
		t.Fatalf("invites = %v", invites)
	}
}

func TestStatusIsIdempotent(t *testing.T) {
	t.Parallel()

	first, _ := invoke(t, "guest", "!status bob")
	second, _ := invoke(t, "guest", "!status bob")
	if len(first.messages()) != 1 || first.messages()[0] != "Status de bob: Usuário comum" {
		t.Fatalf("messages = %v", first.messages())
	}
	if first.messages()[0] != second.messages()[0] {
		t.Fatal("repeated !status should return identical text")
	}
	if len(first.ofKind("mode"))+len(first.ofKind("kick")) != 0 {
		t.Fatal("!status must be side-effect free")
	}
}

func TestStatusReportsAdmins(t *testing.T) {
	t.Parallel()

	rec, _ := invoke(t, "guest", "!status Admin")
	if rec.messages()[0] != "Status de Admin: Administrador" {
		t.Fatalf("messages = %v", rec.messages())
	}
}

func TestSeenUsesStore(t *testing.T) {
	t.Parallel()

	rec, _ := invoke(t, "guest", "!seen bob")
	msgs := rec.messages()
	if len(msgs) != 1 || !strings.Contains(msgs[0], "bob foi visto pela última vez") {
		t.Fatalf("messages = %v", msgs)
	}
}

func TestCryptoUsesLookup(t *testing.T) {
	t.Parallel()

	rec, _ := invoke(t, "guest", "!crypto btc")
	msgs := rec.messages()
	if len(msgs) != 1 || !strings.Contains(msgs[0], "BTC") {
		t.Fatalf("messages = %v", msgs)
	}
}

func TestDispatchTablePopulated(t *testing.T) {
	t.Parallel()

	if len(table) == 0 {
		t.Fatal("dispatch table is empty")
	}
	for i := range table {
		if lookup[table[i].name] != &table[i] {
			t.Fatalf("lookup misses %s", table[i].name)
		}
	}
}

func TestHelpListsEveryCommand(t *testing.T) {
	t.Parallel()

	for _, cmd := range []string{"!ajuda", "!help"} {
		rec, _ := invoke(t, "guest", cmd)
		msgs := rec.messages()
		// Header plus one line per table entry.
		if len(msgs) != len(table)+1 {
			t.Fatalf("%s produced %d lines, want %d", cmd, len(msgs), len(table)+1)
		}
		if msgs[0] != replyHelpHeader {
			t.Fatalf("first line = %q", msgs[0])
		}
		if !strings.Contains(msgs[1], " – ") {
			t.Fatalf("help line = %q, want usage and description joined with –", msgs[1])
		}
	}
}

func TestJoinPartFeedback(t *testing.T) {
	t.Parallel()

	rec, _ := invoke(t, "admin", "!join #novo")
	if len(rec.ofKind("join")) != 1 {
		t.Fatalf("joins = %v", rec.ofKind("join"))
	}
	if rec.messages()[0] != "✅ A entrar em #novo" {
		t.Fatalf("messages = %v", rec.messages())
	}

	rec, _ = invoke(t, "admin", "!part #novo")
	if len(rec.ofKind("part")) != 1 {
		t.Fatalf("parts = %v", rec.ofKind("part"))
	}
	if rec.messages()[0] != "👋 A sair de #novo" {
		t.Fatalf("messages = %v", rec.messages())
	}
}

func TestUnknownCommand(t *testing.T) {
	t.Parallel()

	rec, _ := invoke(t, "guest", "!wat")
	msgs := rec.messages()
	if len(msgs) != 1 || msgs[0] != replyUnknown {
		t.Fatalf("messages = %v", msgs)
	}
}

func TestAliasesShareSpecs(t *testing.T) {
	t.Parallel()

	aliases := map[string]string{
		"!up":   "!op",
		"!down": "!deop",
		"!k":    "!kick",
		"!help": "!ajuda",
	}
	for alias, canonical := range aliases {
		if lookup[alias] != lookup[canonical] {
			t.Fatalf("alias %s does not resolve to %s", alias, canonical)
		}
	}
}
