package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/suimfx/suimfx-official/internal/infrastructure/config"
	"github.com/suimfx/suimfx-official/internal/infrastructure/logger"
	"github.com/suimfx/suimfx-official/internal/infrastructure/svc"
	"github.com/suimfx/suimfx-official/internal/interfaces/rest"
	"github.com/suimfx/suimfx-official/internal/interfaces/stream"
)

func main() {
	logger.Setup()

	configPath := flag.String("config", "configs/config.toml", "path to config.toml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("config", *configPath).Msg("load config failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sc, err := svc.New(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("service initialization failed")
	}
	defer sc.Close()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	rest.NewHandler(sc).Register(router)
	stream.NewHandler(sc.Hub).Register(router)

	server := &http.Server{
		Addr:    cfg.App.ListenAddr,
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", cfg.App.ListenAddr).Msg("feedd started")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server exited")
			stop()
		}
	}()

	sc.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
	log.Info().Msg("feedd stopped")
}
