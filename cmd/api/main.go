package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/medistock/internal/auth"
	"github.com/MrJamesThe3rd/medistock/internal/checkout"
	checkoutStore "github.com/MrJamesThe3rd/medistock/internal/checkout/store"
	"github.com/MrJamesThe3rd/medistock/internal/config"
	"github.com/MrJamesThe3rd/medistock/internal/export"
	medistockHttp "github.com/MrJamesThe3rd/medistock/internal/http"
	authHandler "github.com/MrJamesThe3rd/medistock/internal/http/auth"
	exportHandler "github.com/MrJamesThe3rd/medistock/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/medistock/internal/http/importcsv"
	inventoryHandler "github.com/MrJamesThe3rd/medistock/internal/http/inventory"
	reportHandler "github.com/MrJamesThe3rd/medistock/internal/http/report"
	salesHandler "github.com/MrJamesThe3rd/medistock/internal/http/sales"
	"github.com/MrJamesThe3rd/medistock/internal/importer"
	"github.com/MrJamesThe3rd/medistock/internal/inventory"
	inventoryStore "github.com/MrJamesThe3rd/medistock/internal/inventory/store"
	"github.com/MrJamesThe3rd/medistock/internal/report"
	"github.com/MrJamesThe3rd/medistock/internal/sales"
	salesStore "github.com/MrJamesThe3rd/medistock/internal/sales/store"
	"github.com/MrJamesThe3rd/medistock/internal/session"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := session.Open(cfg.Session.Dir, session.Seed)
	if err != nil {
		slog.Error("failed to open session store", "error", err)
		os.Exit(1)
	}

	var (
		authService      = auth.NewService(cfg.Auth.Secret, cfg.Auth.TokenTTL)
		inventoryService = inventory.NewService(inventoryStore.New(db))
		salesService     = sales.NewService(salesStore.New(db))
		checkoutService  = checkout.NewService(checkoutStore.New(db))
		reportService    = report.NewService(inventoryService, salesService)
		exportService    = export.NewService(salesService)
	)

	var (
		authH      = authHandler.NewHandler(authService)
		inventoryH = inventoryHandler.NewHandler(inventoryService)
		salesH     = salesHandler.NewHandler(salesService, checkoutService)
		reportH    = reportHandler.NewHandler(reportService)
		exportH    = exportHandler.NewHandler(exportService)
		importH    = importHandler.NewHandler(importer.New(), inventoryService)
	)

	router := medistockHttp.New(authService, authH, inventoryH, salesH, reportH, exportH, importH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
