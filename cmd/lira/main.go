// Command lira runs a voice conversation against the local microphone and
// speakers, rendered in a terminal UI.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/liralabs/lira-core/cli"
	"github.com/liralabs/lira-core/config"
	agent "github.com/liralabs/lira-core/core"
	"github.com/liralabs/lira-core/core/audio/miniaudio"
	"github.com/liralabs/lira-core/core/audio/portaudio"
	"github.com/liralabs/lira-core/core/llms/openai"
	"github.com/liralabs/lira-core/core/prompts"
	deepgramstt "github.com/liralabs/lira-core/core/speechtotext/deepgram"
	deepgramtts "github.com/liralabs/lira-core/core/texttospeech/deepgram"
)

const portaudioBufferSize = 1024

func main() {
	audioBackend := flag.String("audio", "miniaudio", "audio backend: miniaudio or portaudio")
	mode := flag.String("mode", string(prompts.DefaultMode), "conversation mode")
	level := flag.String("level", string(prompts.DefaultLevel), "learner level")
	scenario := flag.String("scenario", "", "roleplay scenario")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	conversationMode, ok := prompts.ParseMode(*mode)
	if !ok {
		log.Fatalf("Unknown mode %q", *mode)
	}
	learnerLevel, ok := prompts.ParseLevel(*level)
	if !ok {
		log.Fatalf("Unknown level %q", *level)
	}

	ttsOptions := []deepgramtts.ClientOption{}
	if voice, ok := deepgramtts.ParseVoice("aura-" + cfg.Voice + "-en"); ok {
		ttsOptions = append(ttsOptions, deepgramtts.WithVoice(voice))
	}
	textToSpeech, err := deepgramtts.New(cfg.DeepgramAPIKey, ttsOptions...)
	if err != nil {
		log.Fatalf("Failed to build text-to-speech client: %v", err)
	}

	agentOptions := []agent.AgentOption{
		agent.WithStreamingLLM(openai.New(cfg.OpenAIAPIKey,
			openai.WithModel(cfg.OpenAIModel),
			openai.WithBaseURL(cfg.OpenAIBaseURL),
		)),
		agent.WithSpeechToTextClient(deepgramstt.NewTranscriptionClient(cfg.DeepgramAPIKey)),
		agent.WithTextToSpeechClient(textToSpeech),
		agent.WithMode(conversationMode),
		agent.WithLevel(learnerLevel),
		agent.WithScenario(*scenario),
	}

	switch *audioBackend {
	case "miniaudio":
		client, err := miniaudio.NewClient()
		if err != nil {
			log.Fatalf("Failed to open audio devices: %v", err)
		}
		defer client.Close()
		agentOptions = append(agentOptions, agent.WithAudioInput(client), agent.WithAudioOutput(client))
	case "portaudio":
		client, err := portaudio.NewClient(portaudioBufferSize)
		if err != nil {
			log.Fatalf("Failed to open audio devices: %v", err)
		}
		defer client.Close()
		agentOptions = append(agentOptions, agent.WithAudioInput(client), agent.WithAudioOutput(client))
	default:
		log.Fatalf("Unknown audio backend %q", *audioBackend)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conversationAgent := agent.New(agentOptions...)
	if err := conversationAgent.Start(ctx); err != nil {
		log.Fatalf("Failed to start agent: %v", err)
	}
	defer conversationAgent.Close()

	go func() {
		conversationAgent.WarmUpFillers(ctx)
		conversationAgent.Greet()
	}()

	if err := cli.Run(conversationAgent); err != nil {
		log.Fatalf("Terminal client failed: %v", err)
	}
}
