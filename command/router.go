package command

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Canned replies shown to chat users.
const (
	replyNoPermission = "🚫 Sem permissão para executar este comando."
	replyUsageFmt     = "ℹ️ Uso correto: %s"
	replyUnknown      = "❓ Comando desconhecido. Use !ajuda."
	replyHelpHeader   = "🤖 Comandos disponíveis:"
)

// Actions are the outgoing operations a routed command may perform against
// the live connection. All of them are fire-and-forget: failures are logged
// by the implementation, never returned to the router.
type Actions interface {
	SetMode(channel, mode, nick string)
	Kick(channel, nick, reason string)
	Invite(nick, channel string)
	SetTopic(channel, topic string)
	JoinChannel(channel string)
	PartChannel(channel string)
	Message(target, text string)
}

// SeenLookup resolves a nick to user-facing last-seen text.
type SeenLookup interface {
	LastSeen(nick string) string
}

// PriceLookup resolves a coin symbol to user-facing price text. It owns its
// own timeouts and converts every failure into text.
type PriceLookup interface {
	Quote(ctx context.Context, symbol string) string
}

type handlerFunc func(r *Router, ctx context.Context, bot Actions, inv Invocation)

// spec describes one command: who may run it, how many arguments it needs,
// and what it does. The table below is the single source of routing truth.
type spec struct {
	name        string
	aliases     []string
	usage       string
	description string
	adminOnly   bool
	minArgs     int
	run         handlerFunc
}

// table and lookup are populated in init: the help handler ranges over
// table, so a composite-literal initializer would be self-referential.
var (
	table  []spec
	lookup map[string]*spec
)

func init() {
	table = commandTable()
	lookup = buildLookup()
}

func commandTable() []spec {
	return []spec{
		{
			name: "!op", aliases: []string{"!up"},
			usage:       "!op <nick>",
			description: "Dá op a um utilizador (admin apenas).",
			adminOnly:   true,
			run: func(r *Router, _ context.Context, bot Actions, inv Invocation) {
				bot.SetMode(inv.Target, "+o", argOr(inv, 0, inv.Nick))
			},
		},
		{
			name: "!deop", aliases: []string{"!down"},
			usage:       "!deop <nick>",
			description: "Remove op de um utilizador (admin apenas).",
			adminOnly:   true,
			run: func(r *Router, _ context.Context, bot Actions, inv Invocation) {
				bot.SetMode(inv.Target, "-o", argOr(inv, 0, inv.Nick))
			},
		},
		{
			name:        "!voice",
			usage:       "!voice <nick>",
			description: "Dá voz a um utilizador (admin apenas).",
			adminOnly:   true, minArgs: 1,
			run: func(r *Router, _ context.Context, bot Actions, inv Invocation) {
				bot.SetMode(inv.Target, "+v", inv.Args[0])
			},
		},
		{
			name:        "!devoice",
			usage:       "!devoice <nick>",
			description: "Remove a voz de um utilizador (admin apenas).",
			adminOnly:   true, minArgs: 1,
			run: func(r *Router, _ context.Context, bot Actions, inv Invocation) {
				bot.SetMode(inv.Target, "-v", inv.Args[0])
			},
		},
		{
			name: "!kick", aliases: []string{"!k"},
			usage:       "!kick <nick> <motivo>",
			description: "Expulsa um utilizador com motivo (admin apenas).",
			adminOnly:   true, minArgs: 2,
			run: func(r *Router, _ context.Context, bot Actions, inv Invocation) {
				bot.Kick(inv.Target, inv.Args[0], strings.Join(inv.Args[1:], " "))
			},
		},
		{
			name:        "!ban",
			usage:       "!ban <nick> <motivo>",
			description: "Bane e expulsa um utilizador (admin apenas).",
			adminOnly:   true, minArgs: 2,
			run: func(r *Router, _ context.Context, bot Actions, inv Invocation) {
				bot.SetMode(inv.Target, "+b", banMask(inv.Args[0]))
				bot.Kick(inv.Target, inv.Args[0], strings.Join(inv.Args[1:], " "))
			},
		},
		{
			name:        "!kb",
			usage:       "!kb <nick> <motivo>",
			description: "Atalho para ban + kick (admin apenas).",
			adminOnly:   true, minArgs: 2,
			run: func(r *Router, _ context.Context, bot Actions, inv Invocation) {
				bot.SetMode(inv.Target, "+b", banMask(inv.Args[0]))
				bot.Kick(inv.Target, inv.Args[0], strings.Join(inv.Args[1:], " "))
			},
		},
		{
			name:        "!unban",
			usage:       "!unban <nick>",
			description: "Remove um ban (admin apenas).",
			adminOnly:   true, minArgs: 1,
			run: func(r *Router, _ context.Context, bot Actions, inv Invocation) {
				bot.SetMode(inv.Target, "-b", banMask(inv.Args[0]))
			},
		},
		{
			name:        "!invite",
			usage:       "!invite <nick>",
			description: "Envia um convite para o canal (admin apenas).",
			adminOnly:   true, minArgs: 1,
			run: func(r *Router, _ context.Context, bot Actions, inv Invocation) {
				bot.Invite(inv.Args[0], inv.Target)
			},
		},
		{
			name:        "!topic",
			usage:       "!topic <novo tópico>",
			description: "Altera o tópico do canal (admin apenas).",
			adminOnly:   true, minArgs: 1,
			run: func(r *Router, _ context.Context, bot Actions, inv Invocation) {
				bot.SetTopic(inv.Target, strings.Join(inv.Args, " "))
			},
		},
		{
			name:        "!status",
			usage:       "!status <nick>",
			description: "Mostra se o nick é admin ou não.",
			run: func(r *Router, _ context.Context, bot Actions, inv Invocation) {
				nick := argOr(inv, 0, inv.Nick)
				level := "Usuário comum"
				if r.admins.IsAdmin(nick) {
					level = "Administrador"
				}
				bot.Message(inv.Target, fmt.Sprintf("Status de %s: %s", nick, level))
			},
		},
		{
			name:        "!seen",
			usage:       "!seen <nick>",
			description: "Informa a última vez que o nick foi visto.",
			minArgs:     1,
			run: func(r *Router, _ context.Context, bot Actions, inv Invocation) {
				bot.Message(inv.Target, r.seen.LastSeen(inv.Args[0]))
			},
		},
		{
			name:        "!crypto",
			usage:       "!crypto <símbolo>",
			description: "Mostra o preço atual de uma criptomoeda.",
			minArgs:     1,
			run: func(r *Router, ctx context.Context, bot Actions, inv Invocation) {
				bot.Message(inv.Target, r.price.Quote(ctx, inv.Args[0]))
			},
		},
		{
			name: "!ajuda", aliases: []string{"!help"},
			usage:       "!ajuda",
			description: "Mostra todos os comandos.",
			run: func(r *Router, _ context.Context, bot Actions, inv Invocation) {
				bot.Message(inv.Target, replyHelpHeader)
				for _, sp := range table {
					bot.Message(inv.Target, fmt.Sprintf("%s – %s", sp.usage, sp.description))
				}
			},
		},
		{
			name:        "!join",
			usage:       "!join <#canal>",
			description: "O bot entra num canal (admin apenas).",
			adminOnly:   true, minArgs: 1,
			run: func(r *Router, _ context.Context, bot Actions, inv Invocation) {
				bot.JoinChannel(inv.Args[0])
				bot.Message(inv.Target, fmt.Sprintf("✅ A entrar em %s", inv.Args[0]))
			},
		},
		{
			name:        "!part",
			usage:       "!part <#canal>",
			description: "O bot sai de um canal (admin apenas).",
			adminOnly:   true, minArgs: 1,
			run: func(r *Router, _ context.Context, bot Actions, inv Invocation) {
				bot.PartChannel(inv.Args[0])
				bot.Message(inv.Target, fmt.Sprintf("👋 A sair de %s", inv.Args[0]))
			},
		},
	}
}

func buildLookup() map[string]*spec {
	m := make(map[string]*spec, len(table)*2)
	for i := range table {
		sp := &table[i]
		m[sp.name] = sp
		for _, alias := range sp.aliases {
			m[alias] = sp
		}
	}
	return m
}

// Router maps parsed invocations to actions, enforcing the permission and
// argument-count policy. Execute never returns an error: every failure mode
// ends in a reply to the invocation's target.
type Router struct {
	admins *AdminSet
	seen   SeenLookup
	price  PriceLookup
	log    *slog.Logger
}

type RouterConfig struct {
	Admins *AdminSet
	Seen   SeenLookup
	Price  PriceLookup
	Logger *slog.Logger
}

func NewRouter(cfg RouterConfig) *Router {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		admins: cfg.Admins,
		seen:   cfg.Seen,
		price:  cfg.Price,
		log:    logger,
	}
}

func (r *Router) Execute(ctx context.Context, bot Actions, inv Invocation) {
	log := r.log.With(
		"invocation_id", inv.ID,
		"command", inv.Name,
		"nick", inv.Nick,
		"target", inv.Target,
	)

	sp, ok := lookup[inv.Name]
	if !ok {
		log.Debug("unknown command")
		bot.Message(inv.Target, replyUnknown)
		return
	}
	if sp.adminOnly && !r.admins.IsAdmin(inv.Nick) {
		log.Info("command denied: not an admin")
		bot.Message(inv.Target, replyNoPermission)
		return
	}
	if len(inv.Args) < sp.minArgs {
		log.Debug("command rejected: missing arguments", "want", sp.minArgs, "got", len(inv.Args))
		bot.Message(inv.Target, fmt.Sprintf(replyUsageFmt, sp.usage))
		return
	}

	log.Info("executing command", "args", inv.Args)
	sp.run(r, ctx, bot, inv)
}

// banMask builds the wildcard hostmask used for +b/-b modes.
func banMask(nick string) string {
	return nick + "!*@*"
}

func argOr(inv Invocation, i int, fallback string) string {
	if i < len(inv.Args) {
		return inv.Args[i]
	}
	return fallback
}
