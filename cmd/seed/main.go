// Seeder de datos de demostración: crea el esquema si no existe y carga un
// contrato de renta con sus primeras cuotas semanales pendientes.
//
// Uso: go run ./cmd/seed (lee la misma configuración que la API).
package main

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/cobranza-api/internal/domain/entity"
	"github.com/tu-usuario/cobranza-api/internal/infrastructure/postgres"
	"github.com/tu-usuario/cobranza-api/pkg/config"
	"github.com/tu-usuario/cobranza-api/pkg/logger"
)

const schema = `
CREATE TABLE IF NOT EXISTS contracts (
	id            TEXT PRIMARY KEY,
	client_id     TEXT NOT NULL,
	client_name   TEXT NOT NULL,
	vehicle_label TEXT,
	weekly_amount NUMERIC(12,2) NOT NULL CHECK (weekly_amount >= 0),
	weeks_paid    INTEGER NOT NULL DEFAULT 0 CHECK (weeks_paid >= 0),
	total_weeks   INTEGER NOT NULL CHECK (total_weeks > 0),
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS invoices (
	id          TEXT PRIMARY KEY,
	contract_id TEXT NOT NULL REFERENCES contracts(id),
	client_id   TEXT NOT NULL,
	client_name TEXT NOT NULL,
	amount      NUMERIC(12,2) NOT NULL CHECK (amount >= 0),
	due_date    DATE NOT NULL,
	status      TEXT NOT NULL DEFAULT 'pending'
	            CHECK (status IN ('pending', 'paid', 'overdue', 'cancelled')),
	paid_at     TIMESTAMPTZ,
	paid_method TEXT,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_invoices_contract_status ON invoices (contract_id, status);

CREATE TABLE IF NOT EXISTS payments (
	id         TEXT PRIMARY KEY,
	amount     NUMERIC(12,2) NOT NULL CHECK (amount > 0),
	date       DATE NOT NULL,
	method     TEXT NOT NULL
	           CHECK (method IN ('transfer', 'deposit', 'check', 'cash', 'card')),
	reference  TEXT,
	kind       TEXT NOT NULL CHECK (kind IN ('single', 'multiple')),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS payment_applications (
	id             TEXT PRIMARY KEY,
	payment_id     TEXT NOT NULL REFERENCES payments(id),
	invoice_id     TEXT NOT NULL REFERENCES invoices(id),
	amount         NUMERIC(12,2) NOT NULL CHECK (amount > 0),
	invoice_label  TEXT,
	contract_label TEXT,
	client_name    TEXT,
	method         TEXT NOT NULL,
	date           DATE NOT NULL,
	reference      TEXT,
	voided         BOOLEAN NOT NULL DEFAULT FALSE,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	-- Clave de idempotencia del conciliador: una aplicación por (pago, cuota).
	CONSTRAINT uq_payment_invoice UNIQUE (payment_id, invoice_id)
);
CREATE INDEX IF NOT EXISTS idx_applications_invoice ON payment_applications (invoice_id) WHERE NOT voided;
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, schema); err != nil {
		log.Fatal().Err(err).Msg("crear esquema")
	}
	log.Info().Msg("esquema verificado")

	contractRepo := postgres.NewContractRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)

	now := time.Now()
	contract := &entity.Contract{
		ID:           "demo-contract-1",
		ClientID:     "demo-client-1",
		ClientName:   "Carlos Pérez",
		VehicleLabel: "ABC-123 / Chevrolet Spark 2022",
		WeeklyAmount: decimal.NewFromInt(300),
		WeeksPaid:    0,
		TotalWeeks:   52,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if existing, err := contractRepo.GetByID(contract.ID); err != nil {
		log.Fatal().Err(err).Msg("verificar contrato demo")
	} else if existing != nil {
		log.Info().Str("contract_id", contract.ID).Msg("datos demo ya existentes, nada que hacer")
		return
	}
	if err := contractRepo.Create(contract); err != nil {
		log.Fatal().Err(err).Msg("crear contrato demo")
	}

	// Cuatro cuotas semanales: dos ya vencidas, dos por vencer.
	for week := 0; week < 4; week++ {
		due := now.AddDate(0, 0, 7*(week-2))
		status := entity.InvoiceStatusPending
		if due.Before(now) {
			status = entity.InvoiceStatusOverdue
		}
		inv := &entity.Invoice{
			ID:         "demo-invoice-" + time.Now().Format("20060102") + "-" + string(rune('a'+week)),
			ContractID: contract.ID,
			ClientID:   contract.ClientID,
			ClientName: contract.ClientName,
			Amount:     contract.WeeklyAmount,
			DueDate:    due,
			Status:     status,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := invoiceRepo.Create(inv); err != nil {
			log.Fatal().Err(err).Str("invoice_id", inv.ID).Msg("crear cuota demo")
		}
	}

	log.Info().
		Str("contract_id", contract.ID).
		Int("invoices", 4).
		Msg("datos de demostración cargados")
}
