package main

import (
	"database/sql"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/exp/slog"

	"cryptochecker/internal/config"
	"cryptochecker/internal/fair"
	"cryptochecker/internal/http-server/handlers/mysql"
	"cryptochecker/internal/http-server/handlers/round/close"
	"cryptochecker/internal/http-server/handlers/round/open"
	"cryptochecker/internal/http-server/handlers/round/reveal"
	"cryptochecker/internal/http-server/handlers/round/show"
	"cryptochecker/internal/http-server/handlers/verify"
	mwlogger "cryptochecker/internal/http-server/middleware/logger"
	"cryptochecker/internal/lib/logger/sl"
	"cryptochecker/internal/repository"
	"cryptochecker/internal/store"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting fairness server...", slog.String("env", cfg.Env))
	log.Debug("debug messages are enabled")

	var (
		archiver      reveal_round.RoundArchiver
		archiveReader show_round.ArchiveReader
	)

	if cfg.MySQLDSN != "" {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Error("Failed to init storage", sl.Err(err))
			os.Exit(1)
		}

		// Verify the connection
		if err = db.Ping(); err != nil {
			log.Error("Failed to init storage", sl.Err(err))
			os.Exit(1)
		}

		handler := mysql.New(db)

		roundRepo := repository.NewRoundRepository(*handler)
		archiver = roundRepo
		archiveReader = roundRepo
	} else {
		log.Info("mysql dsn is empty, round archive disabled")

		noopRepo := repository.NewNoopRoundRepository(log)
		archiver = noopRepo
		archiveReader = noopRepo
	}

	roundStore := store.NewMemoryStore(cfg.Fairness.RoundRetention, cfg.Fairness.SweepInterval)

	var nonces fair.NonceCounter

	openRound := open_round.NewOpenRound(log, roundStore, &nonces, cfg.Fairness.DefaultClientSeed)
	closeRound := close_round.NewCloseRound(log, roundStore)
	revealRound := reveal_round.NewRevealRound(log, roundStore, archiver)
	showRound := show_round.NewShowRound(log, roundStore, archiveReader)
	verifyRound := verify.NewVerify(log)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	router.Post("/round/open", openRound.New())
	router.Post("/round/{uuid}/close", closeRound.New())
	router.Post("/round/{uuid}/reveal", revealRound.New())
	router.Get("/round/{uuid}", showRound.New())
	router.Post("/verify", verifyRound.New())

	log.Info("Server started", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	if err := srv.ListenAndServe(); err != nil {
		log.Error("Server failed", sl.Err(err))
	}

	log.Error("Server stopped")
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}
