package repo

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/saleprice-service/internal/app/saleprice/contracts"
	"github.com/light-bringer/saleprice-service/internal/app/saleprice/domain"
	"github.com/light-bringer/saleprice-service/internal/models/m_sale_price"
	"github.com/light-bringer/saleprice-service/internal/pkg/query"
)

// SalePriceRepo implements SalePriceRepository for Spanner.
type SalePriceRepo struct {
	client *spanner.Client
	model  *m_sale_price.Model
}

// NewSalePriceRepo creates a new SalePriceRepo.
func NewSalePriceRepo(client *spanner.Client) contracts.SalePriceRepository {
	return &SalePriceRepo{
		client: client,
		model:  m_sale_price.NewModel(),
	}
}

// InsertMut creates a mutation for inserting a new sale price.
func (r *SalePriceRepo) InsertMut(salePrice *domain.SalePrice) (*spanner.Mutation, error) {
	mut, err := r.model.InsertMut(domainToData(salePrice))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build sale price insert: %w", domain.ErrPersistence, err)
	}
	return mut, nil
}

// UpdateMut creates a mutation for updating a sale price (only dirty fields).
func (r *SalePriceRepo) UpdateMut(salePrice *domain.SalePrice) *spanner.Mutation {
	changes := salePrice.Changes()
	if !changes.HasChanges() {
		return nil
	}

	columns := make([]string, 0, 6)
	values := make([]interface{}, 0, 6)

	if changes.Dirty(domain.FieldValue) {
		columns = append(columns, m_sale_price.Value)
		values = append(values, spanner.NullNumeric{Numeric: *salePrice.Value().Rat(), Valid: true})
	}

	if changes.Dirty(domain.FieldStartAt) {
		columns = append(columns, m_sale_price.StartAt)
		values = append(values, nullTime(salePrice.StartAt()))
	}

	if changes.Dirty(domain.FieldEndAt) {
		columns = append(columns, m_sale_price.EndAt)
		values = append(values, nullTime(salePrice.EndAt()))
	}

	if changes.Dirty(domain.FieldDeletedAt) {
		columns = append(columns, m_sale_price.DeletedAt)
		values = append(values, nullTime(salePrice.DeletedAt()))
	}

	if len(columns) == 0 {
		return nil
	}

	// Always update the updated_at timestamp when any field changes
	columns = append(columns, m_sale_price.UpdatedAt)
	values = append(values, salePrice.UpdatedAt())

	// Increment version for optimistic locking
	columns = append(columns, m_sale_price.Version)
	values = append(values, salePrice.Version()+1)

	return r.model.UpdateMut(salePrice.ID(), columns, values)
}

// GetByID retrieves a sale price by ID, reconstructing the domain aggregate.
func (r *SalePriceRepo) GetByID(ctx context.Context, salePriceID string, includeDeleted bool) (*domain.SalePrice, error) {
	row, err := r.client.Single().ReadRow(ctx, m_sale_price.TableName, spanner.Key{salePriceID}, r.model.ReadColumns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrSalePriceNotFound
		}
		return nil, fmt.Errorf("%w: failed to read sale price: %w", domain.ErrPersistence, err)
	}

	var data m_sale_price.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("%w: failed to parse sale price: %w", domain.ErrPersistence, err)
	}

	if data.DeletedAt.Valid && !includeDeleted {
		return nil, domain.ErrSalePriceNotFound
	}

	return dataToDomain(&data), nil
}

// ListAll retrieves every sale price ordered by creation.
func (r *SalePriceRepo) ListAll(ctx context.Context, includeDeleted bool) ([]*domain.SalePrice, error) {
	return r.list(ctx, r.baseQuery(includeDeleted))
}

// ListByPriceIDs retrieves the sale prices of the given prices.
func (r *SalePriceRepo) ListByPriceIDs(ctx context.Context, priceIDs []string, includeDeleted bool) ([]*domain.SalePrice, error) {
	if len(priceIDs) == 0 {
		return nil, nil
	}
	return r.list(ctx, r.baseQuery(includeDeleted).Where(query.In(m_sale_price.PriceID, priceIDs)))
}

func (r *SalePriceRepo) baseQuery(includeDeleted bool) *query.Builder {
	q := query.From(m_sale_price.TableName).
		Select(r.model.ReadColumns()...).
		OrderBy(m_sale_price.CreatedAt, query.Asc).
		OrderBy(m_sale_price.SalePriceID, query.Asc)
	if !includeDeleted {
		q = q.Where(query.IsNull(m_sale_price.DeletedAt))
	}
	return q
}

func (r *SalePriceRepo) list(ctx context.Context, q *query.Builder) ([]*domain.SalePrice, error) {
	iter := r.client.Single().Query(ctx, q.Build())
	defer iter.Stop()

	var salePrices []*domain.SalePrice
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: failed to iterate sale prices: %w", domain.ErrPersistence, err)
		}

		var data m_sale_price.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("%w: failed to parse sale price: %w", domain.ErrPersistence, err)
		}
		salePrices = append(salePrices, dataToDomain(&data))
	}

	return salePrices, nil
}

// domainToData converts a domain SalePrice to database Data.
func domainToData(salePrice *domain.SalePrice) *m_sale_price.Data {
	return &m_sale_price.Data{
		SalePriceID: salePrice.ID(),
		PriceID:     salePrice.PriceID(),
		Value:       spanner.NullNumeric{Numeric: *salePrice.Value().Rat(), Valid: true},
		StartAt:     nullTime(salePrice.StartAt()),
		EndAt:       nullTime(salePrice.EndAt()),
		Version:     salePrice.Version(),
		CreatedAt:   salePrice.CreatedAt(),
		UpdatedAt:   salePrice.UpdatedAt(),
		DeletedAt:   nullTime(salePrice.DeletedAt()),
	}
}

// dataToDomain converts database Data to a domain SalePrice.
func dataToDomain(data *m_sale_price.Data) *domain.SalePrice {
	value := domain.NewMoneyFromRat(nil)
	if data.Value.Valid {
		value = domain.NewMoneyFromRat(&data.Value.Numeric)
	}

	return domain.ReconstructSalePrice(
		data.SalePriceID,
		data.PriceID,
		value,
		timePtr(data.StartAt),
		timePtr(data.EndAt),
		data.Version,
		data.CreatedAt,
		data.UpdatedAt,
		timePtr(data.DeletedAt),
	)
}

func nullTime(t *time.Time) spanner.NullTime {
	if t == nil {
		return spanner.NullTime{}
	}
	return spanner.NullTime{Time: *t, Valid: true}
}

func timePtr(t spanner.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
