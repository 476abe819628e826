package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"time"

	"eventforms/config"
	"eventforms/internal/adapters/captcha"
	httpdelivery "eventforms/internal/delivery/http"
	"eventforms/internal/delivery/http/controllers"
	"eventforms/internal/delivery/http/middleware"
	"eventforms/internal/domain"
	"eventforms/internal/repository/localstore"
	"eventforms/internal/services"
	"eventforms/internal/validation"

	_ "github.com/mattn/go-sqlite3"
)

const serviceTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "loading config:", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment, cfg.LogLevel)

	db, err := sql.Open("sqlite3", cfg.StorePath)
	if err != nil {
		logger.Error("opening store", "path", cfg.StorePath, "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := localstore.InitSchema(context.Background(), db); err != nil {
		logger.Error("initializing store schema", "err", err)
		os.Exit(1)
	}

	store := localstore.NewSQLStore(db)
	repo := localstore.NewEventRepository(store, logger)

	var verifier domain.CaptchaVerifier
	if cfg.RecaptchaSecret != "" {
		verifier = captcha.NewHTTPVerifier(nil, cfg.RecaptchaSecret)
	}

	onCreated := func(e *domain.Event) {
		logger.Info("event created", "id", e.ID, "title", e.Title, "category", e.Category)
	}
	svc := services.NewEventService(repo, verifier, onCreated, serviceTimeout)

	eventController := controllers.NewEventController(logger, svc)
	formController := controllers.NewFormController(logger, validation.New(), svc)

	mux := httpdelivery.NewRouter(eventController, formController)
	handler := middleware.CORS(cfg.AllowedOrigins, middleware.Logging(logger, mux))

	addr := ":" + cfg.Port
	logger.Info("listening", "addr", addr, "store", cfg.StorePath, "env", cfg.Environment)
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
