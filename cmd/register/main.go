package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	analyticsapp "github.com/keisys/teppan-register/internal/analytics/app"
	catalogapp "github.com/keisys/teppan-register/internal/catalog/app"
	catalogdomain "github.com/keisys/teppan-register/internal/catalog/domain"
	cartapp "github.com/keisys/teppan-register/internal/cart/app"
	checkoutapp "github.com/keisys/teppan-register/internal/checkout/app"
	"github.com/keisys/teppan-register/internal/handler"
	ledgerapp "github.com/keisys/teppan-register/internal/ledger/app"
	ledgerdomain "github.com/keisys/teppan-register/internal/ledger/domain"
	"github.com/keisys/teppan-register/internal/ledger/infra/memory"
	sheetsstore "github.com/keisys/teppan-register/internal/ledger/infra/sheets"
	"github.com/keisys/teppan-register/internal/router"
	"github.com/keisys/teppan-register/pkg/config"
	"github.com/keisys/teppan-register/pkg/logger"
	"github.com/keisys/teppan-register/pkg/shutdown"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "register", Env: cfg.AppEnv, Level: cfg.LogLevel, AddSource: true})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	cat := mustCatalog(log, cfg)
	catSvc := catalogapp.NewService(cat)

	var skuColumns []string
	for _, sku := range cat.Ordered() {
		skuColumns = append(skuColumns, sku.Name)
	}
	schema := ledgerdomain.NewSchema(skuColumns)

	store := mustStore(ctx, log, cfg, schema)
	ledgerSvc := ledgerapp.NewService(store, schema)

	cartSvc := cartapp.NewService(catSvc)
	checkoutSvc := checkoutapp.NewService(cartSvc, catSvc, ledgerSvc)
	analyticsSvc := analyticsapp.NewService(ledgerSvc, cat)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Any("err", v.Error),
			)
			return nil
		},
	}))

	router.Register(e,
		handler.NewRegisterHandler(cartSvc, checkoutSvc),
		handler.NewAnalyticsHandler(analyticsSvc),
	)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("http server starting", slog.String("addr", addr), slog.String("ledger", cfg.LedgerBackend))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()

	if err := e.Shutdown(stopCtx); err != nil {
		log.Error("http shutdown error", slog.Any("err", err))
	}

	wg.Wait()
	log.Info("bye")
}

func mustCatalog(log *slog.Logger, cfg config.Config) catalogdomain.Catalog {
	if cfg.CatalogFile != "" {
		cat, err := catalogdomain.LoadFile(cfg.CatalogFile)
		if err != nil {
			log.Error("catalog load failed", slog.Any("err", err), slog.String("file", cfg.CatalogFile))
			os.Exit(1)
		}
		return cat
	}

	cat, err := catalogdomain.New(catalogdomain.DefaultMenu())
	if err != nil {
		log.Error("built-in menu invalid", slog.Any("err", err))
		os.Exit(1)
	}
	return cat
}

// mustStore fails fast on a misconfigured backend so "no store set up"
// never looks like a runtime write failure later.
func mustStore(ctx context.Context, log *slog.Logger, cfg config.Config, schema ledgerdomain.Schema) ledgerapp.Store {
	switch cfg.LedgerBackend {
	case "memory":
		log.Warn("using in-memory ledger, data is lost on restart")
		return memory.New(schema.Columns)
	case "sheets":
		store, err := sheetsstore.New(ctx, cfg.CredsFile, cfg.SheetID, cfg.SheetName)
		if err != nil {
			log.Error("sheets store init failed", slog.Any("err", err))
			os.Exit(1)
		}
		return store
	default:
		log.Error("unknown ledger backend", slog.String("backend", cfg.LedgerBackend))
		os.Exit(1)
		return nil
	}
}
