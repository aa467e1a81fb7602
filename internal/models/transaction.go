package models

import (
	"math"
	"time"
)

// Direction is the implied cash direction of a transaction
type Direction string

const (
	DirectionInflow  Direction = "inflow"
	DirectionOutflow Direction = "outflow"
)

// Transaction represents a normalized bank transaction
type Transaction struct {
	ID          int64      `json:"id"`
	Date        *time.Time `json:"date,omitempty"`
	Description string     `json:"description"`
	Amount      float64    `json:"amount"` // Negative amounts are outflows
	Category    string     `json:"category,omitempty"`
}

// Magnitude returns the absolute monetary size of the transaction
func (t Transaction) Magnitude() float64 {
	return math.Abs(t.Amount)
}

// Direction returns outflow for negative amounts and inflow otherwise
func (t Transaction) Direction() Direction {
	if t.Amount < 0 {
		return DirectionOutflow
	}
	return DirectionInflow
}
