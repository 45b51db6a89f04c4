package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is the output unit of the synthesis engine. Records are
// created by the stream builder, never mutated afterwards, and written
// exactly once to an output partition.
type Transaction struct {
	ID           uuid.UUID       `json:"id"`
	Timestamp    time.Time       `json:"timestamp"`
	CustomerID   uuid.UUID       `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	MerchantName string          `json:"merchant_name"`
	Category     string          `json:"category"`
	Amount       decimal.Decimal `json:"amount"`
	MerchLat     float64         `json:"merch_lat"`
	MerchLong    float64         `json:"merch_long"`
	IsFraud      bool            `json:"is_fraud"`
}

// AmountFloor is the minimum transaction amount: one minor currency unit.
// Normal draws below it are clipped up, never discarded.
var AmountFloor = decimal.NewFromFloat(0.01)

// NewAmount floors a raw sampled value at AmountFloor and rounds it to two
// decimal places.
func NewAmount(raw float64) decimal.Decimal {
	amt := decimal.NewFromFloat(raw).Round(2)
	if amt.LessThan(AmountFloor) {
		return AmountFloor
	}
	return amt
}

// ByTimestamp implements sort.Interface over a transaction slice.
type ByTimestamp []*Transaction

func (s ByTimestamp) Len() int           { return len(s) }
func (s ByTimestamp) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s ByTimestamp) Less(i, j int) bool { return s[i].Timestamp.Before(s[j].Timestamp) }
