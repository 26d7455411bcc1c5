package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"qwikko-assistant/internal/bot"
	"qwikko-assistant/internal/config"
	"qwikko-assistant/internal/db"
	"qwikko-assistant/internal/intent"
	"qwikko-assistant/internal/llm"
	"qwikko-assistant/internal/platform"
	"qwikko-assistant/internal/server"
	"qwikko-assistant/internal/session"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var tokens server.TokenLookup
	if cfg.DatabaseURL != "" {
		database, err := db.New(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer database.Close()
		if err := database.RunMigrations("./migrations"); err != nil {
			log.Fatalf("migrations: %v", err)
		}
		tokens = session.NewTokenStore(database)
	} else {
		log.Println("DB_URL not set; tokens will not survive restarts")
	}

	sessions := session.NewStore(cfg.SessionIdleTTL)
	sessions.StartJanitor(ctx, 10*time.Minute)

	catalog, err := intent.Load(cfg.IntentsFile)
	if err != nil {
		log.Fatalf("intent catalog: %v", err)
	}

	client := platform.New(cfg.APIBaseURL)
	provider := llm.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.Model)
	classifier := intent.NewClassifier(provider, catalog)
	registry := intent.NewRegistry(client, cfg.FrontendURL, cfg.BrandName)
	composer := bot.NewComposer(provider, classifier, registry, catalog, sessions)

	srv := server.New(composer, sessions, tokens, cfg.AllowedOrigin)

	addr := ":" + cfg.Port
	log.Printf("assistant listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		log.Fatalf("server: %v", err)
	}
}
