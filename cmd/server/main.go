package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Whisper/internal/adapters/chat"
	"github.com/dkeye/Whisper/internal/adapters/httpapi"
	"github.com/dkeye/Whisper/internal/adapters/obfuscate"
	rgauge "github.com/dkeye/Whisper/internal/adapters/presence"
	"github.com/dkeye/Whisper/internal/adapters/store"
	"github.com/dkeye/Whisper/internal/app"
	"github.com/dkeye/Whisper/internal/config"
	"github.com/dkeye/Whisper/internal/core"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	// Human-friendly output for terminal; in production you may want JSON only.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("failed to load config")
	}

	// Transcript persistence: Mongo in production, memory otherwise.
	var rec core.Recorder
	if cfg.MongoURI != "" {
		dialCtx, dialCancel := context.WithTimeout(ctx, 15*time.Second)
		client, err := store.DialMongo(dialCtx, cfg.MongoURI)
		dialCancel()
		if err != nil {
			log.Fatal().Err(err).Msg("mongo unavailable")
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		rec = store.NewMongoRecorder(client.Database(cfg.MongoDB))
		log.Info().Str("db", cfg.MongoDB).Msg("transcripts go to mongo")
	} else {
		rec = store.NewMemoryRecorder()
		log.Warn().Msg("no mongo_uri configured, transcripts stay in memory")
	}

	// Presence gauge mirror for the rest of the site; optional.
	var sink core.PresenceSink
	if cfg.RedisAddr != "" {
		rdb, err := rgauge.Dial(ctx, cfg.RedisAddr)
		if err != nil {
			log.Fatal().Err(err).Msg("redis unavailable")
		}
		defer func() { _ = rdb.Close() }()
		sink = rgauge.NewRedisGauge(rdb, cfg.RedisKey)
		log.Info().Str("key", cfg.RedisKey).Msg("presence mirrored to redis")
	}

	reg := app.NewConnectionRegistry()
	pres := app.NewPresenceTracker(reg, sink)
	match := app.NewMatchmaker(reg, pres, app.NewTranscriptLogger(rec))
	obf := obfuscate.NewHMAC(cfg.Secret)
	ctl := chat.NewChatWSController(match, obf, cfg)

	r := httpapi.SetupRouter(ctx, cfg, ctl, pres)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("Whisper server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}
