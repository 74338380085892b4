package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/saleprice-service/internal/app/saleprice/contracts"
	"github.com/light-bringer/saleprice-service/internal/app/saleprice/domain"
	"github.com/light-bringer/saleprice-service/internal/models/m_product"
	"github.com/light-bringer/saleprice-service/internal/models/m_variant"
	"github.com/light-bringer/saleprice-service/internal/pkg/query"
)

// CatalogRepo implements CatalogRepository for Spanner.
type CatalogRepo struct {
	client   *spanner.Client
	variants *m_variant.Model
	products *m_product.Model
}

// NewCatalogRepo creates a new CatalogRepo.
func NewCatalogRepo(client *spanner.Client) contracts.CatalogRepository {
	return &CatalogRepo{
		client:   client,
		variants: m_variant.NewModel(),
		products: m_product.NewModel(),
	}
}

// GetVariant retrieves a variant by ID, or nil if it does not exist.
func (r *CatalogRepo) GetVariant(ctx context.Context, variantID string) (*domain.Variant, error) {
	if variantID == "" {
		return nil, nil
	}

	row, err := r.client.Single().ReadRow(ctx, m_variant.TableName, spanner.Key{variantID}, r.variants.ReadColumns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: failed to read variant: %w", domain.ErrPersistence, err)
	}

	var data m_variant.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("%w: failed to parse variant: %w", domain.ErrPersistence, err)
	}

	return variantToDomain(&data), nil
}

// GetProduct retrieves a product by ID, or nil if it does not exist.
func (r *CatalogRepo) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	if productID == "" {
		return nil, nil
	}

	row, err := r.client.Single().ReadRow(ctx, m_product.TableName, spanner.Key{productID}, r.products.ReadColumns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: failed to read product: %w", domain.ErrPersistence, err)
	}

	var data m_product.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("%w: failed to parse product: %w", domain.ErrPersistence, err)
	}

	return domain.ReconstructProduct(data.ProductID, data.Name, data.UpdatedAt, timePtr(data.DeletedAt)), nil
}

// ListVariants returns all variants of a product ordered by position.
func (r *CatalogRepo) ListVariants(ctx context.Context, productID string) ([]*domain.Variant, error) {
	stmt := query.From(m_variant.TableName).
		Select(r.variants.ReadColumns()...).
		Where(query.Eq(m_variant.ProductID, productID)).
		OrderBy(m_variant.Position, query.Asc).
		OrderBy(m_variant.VariantID, query.Asc).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var variants []*domain.Variant
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: failed to iterate variants: %w", domain.ErrPersistence, err)
		}

		var data m_variant.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("%w: failed to parse variant: %w", domain.ErrPersistence, err)
		}
		variants = append(variants, variantToDomain(&data))
	}

	return variants, nil
}

// TouchMut writes the product's new updated_at.
func (r *CatalogRepo) TouchMut(product *domain.Product) *spanner.Mutation {
	if product == nil || !product.Touched() {
		return nil
	}
	return r.products.TouchMut(product.ID(), product.UpdatedAt())
}

func variantToDomain(data *m_variant.Data) *domain.Variant {
	productID := ""
	if data.ProductID.Valid {
		productID = data.ProductID.StringVal
	}
	return domain.ReconstructVariant(data.VariantID, productID, data.IsMaster, data.Position, timePtr(data.DeletedAt))
}
