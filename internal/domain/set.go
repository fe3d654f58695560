package domain

import "github.com/shopspring/decimal"

// Set is a catalog-defined ordered bundle of tasks with a fixed total payout.
// The catalog is owned by the wider platform; this service only reads it.
type Set struct {
	ID        string
	Name      string
	MaxTasks  int
	SetAmount decimal.Decimal
}

type SetTask struct {
	ID             string
	SetID          string
	Position       int
	Title          string
	Price          decimal.Decimal
	CommissionRate decimal.Decimal
}
