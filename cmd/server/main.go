package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sandiprv9898/salon-flow-pos/internal/config"
	"github.com/sandiprv9898/salon-flow-pos/internal/dto"
	"github.com/sandiprv9898/salon-flow-pos/internal/infra"
	"github.com/sandiprv9898/salon-flow-pos/internal/repository"
	"github.com/sandiprv9898/salon-flow-pos/internal/router"
	"github.com/sandiprv9898/salon-flow-pos/internal/txid"
	"github.com/sandiprv9898/salon-flow-pos/internal/worker"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logCloser := infra.SetupLogger(cfg)
	defer logCloser.Close()

	ids, err := txid.New(cfg.SnowflakeNode)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create transaction id generator")
	}

	metrics := infra.NewMetrics("salonpos")

	// Receipt pipeline. Handlers are wired here (composition root) so the
	// pool has access to all infrastructure dependencies.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var sender worker.Sender
	if cfg.MailEnabled() {
		sender = infra.NewMailer(cfg)
	} else {
		log.Warn().Msg("SMTP_HOST not set; receipts are rendered but not mailed")
	}
	mailCB := infra.NewCircuitBreaker(infra.DefaultCBConfig("smtp"))
	receipts := worker.NewReceiptWorker(cfg.BusinessName, cfg.ReceiptStoragePath, sender, mailCB, metrics)
	dlq := worker.NewDeadLetterQueue(worker.DefaultDLQCapacity)
	dispatcher := worker.NewDispatcher(worker.DefaultQueueSize, receipts.Process, dlq)
	dispatcher.Start(ctx, cfg.WorkerPoolSize)
	worker.StartRetryCron(ctx, worker.RetryCronConfig{Dispatcher: dispatcher, DLQ: dlq, CB: mailCB})

	app := router.NewApp(router.Deps{Config: cfg, Metrics: metrics, Receipts: dispatcher, IDs: ids})

	for id, pin := range repository.DemoPINs {
		if err := app.Auth.SetPIN(ctx, id, pin); err != nil {
			log.Fatal().Err(err).Str("employee_id", id).Msg("failed to seed PIN")
		}
	}
	if cfg.RegisterOpenOnStart {
		if _, err := app.Register.Open(ctx, "system", dto.OpenRegisterRequest{OpeningFloat: cfg.OpeningFloat()}); err != nil {
			log.Fatal().Err(err).Msg("failed to open register")
		}
	}

	r := router.New(cfg, app, metrics)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("%s POS listening on :%d", cfg.BusinessName, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	if err := dispatcher.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Int("pending", dispatcher.Len()).Msg("receipt queue not drained")
	}
	if n := dlq.Len(); n > 0 {
		log.Warn().Int("dead_letters", n).Msg("undelivered receipts at shutdown")
	}
	log.Info().Msg("server exited")
}
