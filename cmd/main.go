package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/voicebank_relay/internal/ai"
	"github.com/Vovarama1992/voicebank_relay/internal/config"
	"github.com/Vovarama1992/voicebank_relay/internal/delivery"
	"github.com/Vovarama1992/voicebank_relay/internal/domain"
	"github.com/Vovarama1992/voicebank_relay/internal/error_notificator"
	"github.com/Vovarama1992/voicebank_relay/internal/infra"
	"github.com/Vovarama1992/voicebank_relay/internal/prompts"
	"github.com/Vovarama1992/voicebank_relay/internal/relay"
	"github.com/Vovarama1992/voicebank_relay/internal/speech"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {

	// =========================================================================
	// ENV / LOGGER
	// =========================================================================

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	// =========================================================================
	// CLIENTS (OpenAI)
	// =========================================================================

	oaCfg := openai.DefaultConfig(cfg.OpenAI.APIKey)
	if cfg.OpenAI.BaseURL != "" {
		oaCfg.BaseURL = cfg.OpenAI.BaseURL
	}
	oaClient := openai.NewClientWithConfig(oaCfg)

	// =========================================================================
	// PERSONA
	// =========================================================================

	personaRepo := prompts.NewEmbeddedRepo()
	if cfg.Persona.File != "" {
		personaRepo = prompts.NewFileRepo(cfg.Persona.File)
	}

	persona, err := prompts.NewService(personaRepo)
	if err != nil {
		log.Fatalf("failed to load persona: %v", err)
	}

	// =========================================================================
	// ERROR NOTIFICATION
	// =========================================================================

	var errInfra error_notificator.Notificator = error_notificator.Noop{}
	if cfg.Telegram.Enabled() {
		bot, err := error_notificator.NewBot(cfg.Telegram.Token)
		if err != nil {
			log.Fatalf("failed to init telegram alerts: %v", err)
		}
		errInfra = error_notificator.NewInfra(bot, cfg.Telegram.ChatID)
	}
	errService := error_notificator.NewService(errInfra)

	// =========================================================================
	// DOMAIN SERVICES
	// =========================================================================

	speechClient := speech.NewOpenAIClient(oaClient, cfg.OpenAI.STTModel, cfg.OpenAI.TTSModel, cfg.OpenAI.TTSVoice)
	speechService := speech.NewService(
		speechClient, // Whisper
		speechClient, // tts-1
	)

	aiService := ai.NewAiService(
		ai.NewOpenAIClient(oaClient, cfg.OpenAI.ChatModel),
		persona,
		zl,
	)

	var opts []relay.Option
	if cfg.S3.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		s3Client, err := infra.NewS3Client(ctx, cfg.S3)
		cancel()
		if err != nil {
			log.Fatalf("failed to init s3: %v", err)
		}
		opts = append(opts, relay.WithArchive(domain.NewArchiveService(s3Client)))
	}

	relayService := relay.NewService(
		speechService,
		aiService,
		speechService,
		errService,
		cfg.FilesDir,
		zl,
		opts...,
	)

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	relayHandler := delivery.NewRelayHandler(relayService, zl, cfg.HTTP.RedactUpstreamErrors)
	delivery.RegisterRoutes(r, relayHandler, cfg.HTTP.RateLimitPerMinute)

	// =========================================================================
	// START SERVER
	// =========================================================================

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Log(logger.LogEntry{
			Level:   "info",
			Message: "VoiceBank AI Server listening at " + srv.Addr + ", persona " + persona.Version(),
			Service: "voicebank_relay",
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zl.Log(logger.LogEntry{Level: "error", Message: "shutdown", Error: err, Service: "voicebank_relay"})
	}
}
