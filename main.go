package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	authx "github.com/bankbot/bankbot/agent/auth"
	knowledgex "github.com/bankbot/bankbot/agent/knowledge"
	ledgerx "github.com/bankbot/bankbot/agent/ledger"
	promptx "github.com/bankbot/bankbot/agent/prompt"
	resolverx "github.com/bankbot/bankbot/agent/resolver"
	sessionx "github.com/bankbot/bankbot/agent/session"
	toolx "github.com/bankbot/bankbot/agent/tool"
	configx "github.com/bankbot/bankbot/pkg/config"
	_ "github.com/bankbot/bankbot/pkg/logger/autoload"
	openrouterx "github.com/bankbot/bankbot/pkg/openrouter"
)

type AppConfig struct {
	DataDir         string        `envconfig:"DATA_DIR" split_words:"true" default:"data"`
	ResolverTimeout time.Duration `envconfig:"RESOLVER_TIMEOUT" split_words:"true" default:"30s"`
}

func main() {
	appCfg := configx.MustNew[AppConfig]("")

	store, err := ledgerx.Load(appCfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", appCfg.DataDir).Msg("ledger load failed")
	}

	ctx := context.Background()

	openRouterCfg := configx.MustNew[openrouterx.Config]("OPENROUTER")
	openRouterClient := openrouterx.NewClient(*openRouterCfg)
	if openRouterClient == nil {
		log.Fatal().Msg("openrouter client init failed: api key is required")
	}

	chatModel, err := openRouterCfg.New(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("chat model init failed")
	}

	gateway := toolx.NewGateway(store, knowledgex.NewBase())
	rsv, err := resolverx.New(ctx, chatModel, gateway, promptx.System())
	if err != nil {
		log.Fatal().Err(err).Msg("resolver init failed")
	}

	engine, err := sessionx.New(sessionx.NewStore(), store, rsv, authx.Plain{}, sessionx.Config{
		ResolverTimeout: appCfg.ResolverTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("session engine init failed")
	}

	runChatLoop(ctx, engine)
}

// runChatLoop is a minimal stdin transport: one session per run, a fresh
// one after logout.
func runChatLoop(ctx context.Context, engine *sessionx.Engine) {
	sessionID := uuid.NewString()
	fmt.Println("BankBot ready. Type your message ('exit' to close the session, Ctrl-D to quit).")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		if line == "" {
			continue
		}

		reply, err := engine.HandleMessage(ctx, sessionID, line)
		if err != nil {
			log.Error().Err(err).Msg("handle message failed")
			continue
		}

		fmt.Println(reply.Text)
		if reply.Status == sessionx.StatusLogout {
			sessionID = uuid.NewString()
		}
	}
}
