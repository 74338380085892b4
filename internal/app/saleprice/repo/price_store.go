package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/saleprice-service/internal/app/saleprice/contracts"
	"github.com/light-bringer/saleprice-service/internal/app/saleprice/domain"
	"github.com/light-bringer/saleprice-service/internal/models/m_price"
	"github.com/light-bringer/saleprice-service/internal/pkg/query"
)

// PriceStore implements contracts.PriceStore for Spanner.
type PriceStore struct {
	client *spanner.Client
	model  *m_price.Model
}

// NewPriceStore creates a new PriceStore.
func NewPriceStore(client *spanner.Client) contracts.PriceStore {
	return &PriceStore{
		client: client,
		model:  m_price.NewModel(),
	}
}

// ResolveActive returns the price unless it is missing or soft-deleted.
func (s *PriceStore) ResolveActive(ctx context.Context, priceID string) (*domain.Price, error) {
	price, err := s.ResolveIncludingDeleted(ctx, priceID)
	if err != nil || price == nil || price.IsDeleted() {
		return nil, err
	}
	return price, nil
}

// ResolveIncludingDeleted returns the price whether or not it is soft-deleted.
func (s *PriceStore) ResolveIncludingDeleted(ctx context.Context, priceID string) (*domain.Price, error) {
	if priceID == "" {
		return nil, nil
	}

	row, err := s.client.Single().ReadRow(ctx, m_price.TableName, spanner.Key{priceID}, s.model.ReadColumns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: failed to read price: %w", domain.ErrPersistence, err)
	}

	var data m_price.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("%w: failed to parse price: %w", domain.ErrPersistence, err)
	}

	return priceToDomain(&data), nil
}

// ListByVariantIDs returns the prices of the given variants, soft-deleted ones included.
func (s *PriceStore) ListByVariantIDs(ctx context.Context, variantIDs []string) ([]*domain.Price, error) {
	if len(variantIDs) == 0 {
		return nil, nil
	}

	stmt := query.From(m_price.TableName).
		Select(s.model.ReadColumns()...).
		Where(query.In(m_price.VariantID, variantIDs)).
		OrderBy(m_price.PriceID, query.Asc).
		Build()

	iter := s.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var prices []*domain.Price
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: failed to iterate prices: %w", domain.ErrPersistence, err)
		}

		var data m_price.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("%w: failed to parse price: %w", domain.ErrPersistence, err)
		}
		prices = append(prices, priceToDomain(&data))
	}

	return prices, nil
}

func priceToDomain(data *m_price.Data) *domain.Price {
	amount := domain.NewMoneyFromRat(nil)
	if data.Amount.Valid {
		amount = domain.NewMoneyFromRat(&data.Amount.Numeric)
	}
	return domain.ReconstructPrice(data.PriceID, data.VariantID, amount, data.Currency, timePtr(data.DeletedAt))
}
