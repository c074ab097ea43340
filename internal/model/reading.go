package model

import "time"

// ReadingTimeLayout is the layout of Reading.Time, as consumed by the display page.
const ReadingTimeLayout = "01-02 15:04:05"

// Reading is one stored balance sample. JSON keys match the files read by the page.
type Reading struct {
	Time      string  `json:"time"`
	LtBalance float64 `json:"lt_Balance"`
	AcBalance float64 `json:"ac_Balance"`
}

// NewReading stamps balances with t formatted as ReadingTimeLayout.
func NewReading(t time.Time, b Balances) Reading {
	return Reading{
		Time:      t.Format(ReadingTimeLayout),
		LtBalance: b.Lighting,
		AcBalance: b.AirConditioning,
	}
}

// SameBalances reports whether r and o carry identical balances, ignoring time.
func (r Reading) SameBalances(o Reading) bool {
	return r.LtBalance == o.LtBalance && r.AcBalance == o.AcBalance
}
