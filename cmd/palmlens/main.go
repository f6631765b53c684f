package main

import (
	"log"
	"log/slog"

	"palmlens/internal/config"
	"palmlens/internal/db"
	"palmlens/internal/llm"
	claudellm "palmlens/internal/llm/claude"
	geminillm "palmlens/internal/llm/gemini"
	openaillm "palmlens/internal/llm/openai"
	"palmlens/internal/logging"
	"palmlens/internal/service"
	"palmlens/internal/store"
	"palmlens/internal/web"

	"github.com/openai/openai-go/option"
)

func main() {
	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	readingStore := store.NewReadingStore(database)
	generator := newGenerator(cfg, logger)
	readingService := service.NewReadingService(readingStore, generator, cfg.LLMTimeout, logger)
	server := web.NewServer(readingService, logger)

	if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}

// newGenerator selects the model backend. A missing credential is not fatal
// at startup; the adapter reports a configuration error per request instead.
func newGenerator(cfg *config.Config, logger *slog.Logger) llm.Generator {
	switch cfg.LLMBackend {
	case "claude":
		if cfg.ClaudeAPIKey == "" {
			logger.Warn("CLAUDE_API_KEY is not set; analyze requests will fail until it is")
		}
		logger.Info("using Claude backend", "model", cfg.ClaudeModel)
		return claudellm.New(cfg.ClaudeAPIKey, cfg.ClaudeModel)
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			logger.Warn("OPENAI_API_KEY is not set; analyze requests will fail until it is")
		}
		logger.Info("using OpenAI backend", "model", cfg.OpenAIModel)
		var opts []option.RequestOption
		if cfg.OpenAIBaseURL != "" {
			opts = append(opts, option.WithBaseURL(cfg.OpenAIBaseURL))
		}
		return openaillm.New(cfg.OpenAIAPIKey, cfg.OpenAIModel, opts...)
	default:
		if cfg.GeminiAPIKey == "" {
			logger.Warn("GEMINI_API_KEY is not set; analyze requests will fail until it is")
		}
		logger.Info("using Gemini backend", "model", cfg.GeminiModel)
		return geminillm.New(cfg.GeminiAPIKey, cfg.GeminiModel)
	}
}
