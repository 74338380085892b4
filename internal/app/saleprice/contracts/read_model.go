package contracts

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/light-bringer/saleprice-service/internal/app/saleprice/domain"
)

// SalePriceDTO is a data transfer object for sale price queries.
// Enabled and Bucket are computed at query time and never stored.
type SalePriceDTO struct {
	SalePriceID string
	PriceID     string
	Value       decimal.Decimal
	StartAt     *time.Time
	EndAt       *time.Time
	Enabled     bool
	Bucket      string
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// NewSalePriceDTO projects a sale price as seen at now.
func NewSalePriceDTO(salePrice *domain.SalePrice, now time.Time) *SalePriceDTO {
	return &SalePriceDTO{
		SalePriceID: salePrice.ID(),
		PriceID:     salePrice.PriceID(),
		Value:       salePrice.Value().Decimal(),
		StartAt:     salePrice.StartAt(),
		EndAt:       salePrice.EndAt(),
		Enabled:     salePrice.Enabled(now),
		Bucket:      salePrice.BucketAt(now).String(),
		Version:     salePrice.Version(),
		CreatedAt:   salePrice.CreatedAt(),
		UpdatedAt:   salePrice.UpdatedAt(),
		DeletedAt:   salePrice.DeletedAt(),
	}
}

// NewSalePriceDTOs projects a list, keeping its order.
func NewSalePriceDTOs(salePrices []*domain.SalePrice, now time.Time) []*SalePriceDTO {
	out := make([]*SalePriceDTO, 0, len(salePrices))
	for _, sp := range salePrices {
		out = append(out, NewSalePriceDTO(sp, now))
	}
	return out
}
