package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contract representa un contrato de renta semanal de vehículo. Este motor no
// administra su ciclo de vida: solo lee sus datos y avanza WeeksPaid cuando una
// cuota queda liquidada.
type Contract struct {
	ID           string
	ClientID     string
	ClientName   string
	VehicleLabel string // placa / marca / modelo, para recibos
	WeeklyAmount decimal.Decimal
	WeeksPaid    int
	TotalWeeks   int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
