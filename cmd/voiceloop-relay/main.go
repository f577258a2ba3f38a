// Command voiceloop-relay serves the HTTP endpoints the voice client
// talks to, relaying prompts to a language model and text to a speech
// synthesis server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mlisica/voiceloop/internal/config"
	"github.com/mlisica/voiceloop/internal/relayserver"
)

func main() {
	base, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer base.Sync() //nolint:errcheck
	logger := base.Sugar()

	cfg := config.LoadRelay()

	var answers relayserver.AnswerBackend
	switch cfg.LLMBackend {
	case "openai":
		answers = relayserver.NewOpenAIBackend(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	case "ollama":
		answers = relayserver.NewOllamaBackend(cfg.OllamaBaseURL, cfg.OllamaModel)
	default:
		logger.Fatalw("Unknown LLM backend", "backend", cfg.LLMBackend)
	}
	speech := relayserver.NewCoquiBackend(cfg.TTSBaseURL, cfg.TTSSpeakerID, cfg.TTSLanguageID)

	server := relayserver.New(answers, speech,
		relayserver.WithLogger(logger),
		relayserver.WithRateLimit(cfg.RequestsPerMinute),
		relayserver.WithAllowedOrigins(cfg.AllowedOrigins),
	)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Infow("Relay server listening", "addr", cfg.Addr, "backend", cfg.LLMBackend)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalw("Relay server failed", "error", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warnw("Relay server shutdown failed", "error", err)
	}
}
