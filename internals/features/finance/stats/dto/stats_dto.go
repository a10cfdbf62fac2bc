package dto

import (
	"github.com/shopspring/decimal"
)

type GenerationStat struct {
	Generation  string          `json:"generation"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	DonorCount  int64           `json:"donor_count"`
}

type GenerationsResponse struct {
	Generations []GenerationStat `json:"generations"`
	GrandTotal  decimal.Decimal  `json:"grand_total"`
	DonorCount  int64            `json:"donor_count"`
}
