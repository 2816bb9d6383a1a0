package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/cobranza-api/internal/application/reconciliation"
	infrapdf "github.com/tu-usuario/cobranza-api/internal/infrastructure/pdf"
	"github.com/tu-usuario/cobranza-api/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/cobranza-api/internal/interfaces/http"
	"github.com/tu-usuario/cobranza-api/pkg/config"
	"github.com/tu-usuario/cobranza-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	invoiceRepo := postgres.NewInvoiceRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	appRepo := postgres.NewPaymentApplicationRepository(pool)
	contractRepo := postgres.NewContractRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	evaluator := reconciliation.NewSettlementEvaluator(txRunner)
	reconcileUC := reconciliation.NewReconcilePaymentUseCase(
		txRunner, invoiceRepo, appRepo, contractRepo, evaluator, log,
	)
	distributeUC := reconciliation.NewDistributeUseCase(contractRepo, invoiceRepo, appRepo)
	queryUC := reconciliation.NewLedgerQueryUseCase(paymentRepo, invoiceRepo, appRepo, contractRepo)

	// Recibo de pago en PDF (Maroto)
	receiptGenerator := infrapdf.NewMarotoReceiptGenerator()
	receiptUC := reconciliation.NewReceiptUseCase(paymentRepo, appRepo, receiptGenerator, reconciliation.CompanyInfo{
		Name:    cfg.Receipt.CompanyName,
		TaxID:   cfg.Receipt.CompanyTaxID,
		Address: cfg.Receipt.CompanyAddress,
		Phone:   cfg.Receipt.CompanyPhone,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Cobranza API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ReconcileUC:  reconcileUC,
		DistributeUC: distributeUC,
		QueryUC:      queryUC,
		ReceiptUC:    receiptUC,
		Evaluator:    evaluator,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
