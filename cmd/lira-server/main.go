// Command lira-server exposes conversation sessions over HTTP and
// websockets.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/liralabs/lira-core/analytics"
	"github.com/liralabs/lira-core/config"
	agent "github.com/liralabs/lira-core/core"
	"github.com/liralabs/lira-core/core/llms/openai"
	"github.com/liralabs/lira-core/core/prompts"
	deepgramstt "github.com/liralabs/lira-core/core/speechtotext/deepgram"
	deepgramtts "github.com/liralabs/lira-core/core/texttospeech/deepgram"
	"github.com/liralabs/lira-core/server"
	"github.com/liralabs/lira-core/sessions"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := analytics.NewStore(ctx, cfg.RedisURL, analytics.WithSessionTTL(cfg.SessionTTL))
	defer store.Close()

	llm := openai.New(cfg.OpenAIAPIKey,
		openai.WithModel(cfg.OpenAIModel),
		openai.WithBaseURL(cfg.OpenAIBaseURL),
	)

	ttsOptions := []deepgramtts.ClientOption{}
	if voice, ok := deepgramtts.ParseVoice("aura-" + cfg.Voice + "-en"); ok {
		ttsOptions = append(ttsOptions, deepgramtts.WithVoice(voice))
	}
	textToSpeech, err := deepgramtts.New(cfg.DeepgramAPIKey, ttsOptions...)
	if err != nil {
		log.Fatalf("Failed to build text-to-speech client: %v", err)
	}

	registry := sessions.NewRegistry(func(mode prompts.Mode, level prompts.Level, scenario string) (*agent.Agent, error) {
		return agent.New(
			agent.WithStreamingLLM(llm),
			agent.WithSpeechToTextClient(deepgramstt.NewTranscriptionClient(cfg.DeepgramAPIKey)),
			agent.WithTextToSpeechClient(textToSpeech),
			agent.WithMode(mode),
			agent.WithLevel(level),
			agent.WithScenario(scenario),
		), nil
	})

	srv := server.New(registry, store,
		server.WithSummaryLLM(llm),
		server.WithCORSOrigins(cfg.CORSOrigins),
	)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown failed: %v", err)
		}
	}()

	log.Printf("Listening on port %s", cfg.Port)
	if err := srv.Listen(cfg.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
