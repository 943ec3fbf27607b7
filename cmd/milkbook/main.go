package main

import (
	"fmt"
	"os"

	"github.com/kharjul/milkbook/internal/auth"
	"github.com/kharjul/milkbook/internal/config"
	"github.com/kharjul/milkbook/internal/excel"
	httphandler "github.com/kharjul/milkbook/internal/http"
	"github.com/kharjul/milkbook/internal/http/middleware"
	"github.com/kharjul/milkbook/internal/logger"
	"github.com/kharjul/milkbook/internal/pdf"
	"github.com/kharjul/milkbook/internal/service"
	"github.com/kharjul/milkbook/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	st := store.New()
	pdfGenerator := pdf.NewGenerator(cfg.Business)
	excelGenerator := excel.NewGenerator(cfg.Business)

	billing := service.NewBillingService(st, pdfGenerator, excelGenerator, cfg)

	tokens := auth.NewManager(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(billing, tokens, cfg.Auth.PIN, log)
	authMiddleware := middleware.Auth(tokens)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting milkbook")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
