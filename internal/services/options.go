package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"

	"github.com/light-bringer/saleprice-service/internal/app/saleprice/queries/display_price"
	"github.com/light-bringer/saleprice-service/internal/app/saleprice/queries/for_product"
	"github.com/light-bringer/saleprice-service/internal/app/saleprice/queries/list_events"
	"github.com/light-bringer/saleprice-service/internal/app/saleprice/queries/ordered_sale_prices"
	"github.com/light-bringer/saleprice-service/internal/app/saleprice/repo"
	"github.com/light-bringer/saleprice-service/internal/app/saleprice/usecases/complete_events"
	"github.com/light-bringer/saleprice-service/internal/app/saleprice/usecases/create_sale_price"
	"github.com/light-bringer/saleprice-service/internal/app/saleprice/usecases/destroy_sale_price"
	"github.com/light-bringer/saleprice-service/internal/app/saleprice/usecases/put_on_sale"
	"github.com/light-bringer/saleprice-service/internal/app/saleprice/usecases/start_sale_price"
	"github.com/light-bringer/saleprice-service/internal/app/saleprice/usecases/stop_sale_price"
	"github.com/light-bringer/saleprice-service/internal/app/saleprice/usecases/touch_product"
	"github.com/light-bringer/saleprice-service/internal/config"
	"github.com/light-bringer/saleprice-service/internal/pkg/clock"
	"github.com/light-bringer/saleprice-service/internal/pkg/committer"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient *spanner.Client
	Logger        *zap.Logger

	// Commands
	CreateSalePrice  *create_sale_price.Interactor
	StartSalePrice   *start_sale_price.Interactor
	StopSalePrice    *stop_sale_price.Interactor
	DestroySalePrice *destroy_sale_price.Interactor
	PutOnSale        *put_on_sale.Interactor
	CompleteEvents   *complete_events.Interactor

	// Queries
	OrderedSalePrices *ordered_sale_prices.Query
	ForProduct        *for_product.Query
	DisplayPrice      *display_price.Query
	ListEvents        *list_events.Query
}

// NewServiceOptions creates the Spanner client and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*ServiceOptions, error) {
	// 1. Initialize Spanner client
	spannerClient, err := spanner.NewClient(ctx, cfg.Spanner.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}

	logger.Info("spanner client ready", zap.String("database", cfg.Spanner.Database))

	return Wire(spannerClient, clock.NewRealClock(), logger), nil
}

// Wire builds every use case and query on top of an existing client.
func Wire(spannerClient *spanner.Client, clk clock.Clock, logger *zap.Logger) *ServiceOptions {
	// 1. Create infrastructure components
	comm := committer.NewCommitter(spannerClient)

	// 2. Create repositories
	salePriceRepo := repo.NewSalePriceRepo(spannerClient)
	priceStore := repo.NewPriceStore(spannerClient)
	catalogRepo := repo.NewCatalogRepo(spannerClient)
	outboxRepo := repo.NewOutboxRepo(spannerClient)
	eventsReadModel := repo.NewEventsReadModel(spannerClient)

	touches := touch_product.NewPlanner(priceStore, catalogRepo, logger.Named("touch"))

	// 3. Create command use cases (write operations)
	return &ServiceOptions{
		SpannerClient: spannerClient,
		Logger:        logger,

		CreateSalePrice:  create_sale_price.NewInteractor(salePriceRepo, priceStore, outboxRepo, touches, comm, clk, logger),
		StartSalePrice:   start_sale_price.NewInteractor(salePriceRepo, outboxRepo, touches, comm, clk, logger),
		StopSalePrice:    stop_sale_price.NewInteractor(salePriceRepo, outboxRepo, touches, comm, clk, logger),
		DestroySalePrice: destroy_sale_price.NewInteractor(salePriceRepo, outboxRepo, touches, comm, clk, logger),
		PutOnSale:        put_on_sale.NewInteractor(salePriceRepo, priceStore, catalogRepo, outboxRepo, touches, comm, clk, logger),
		CompleteEvents:   complete_events.NewInteractor(outboxRepo, comm, logger),

		// 4. Create query use cases (read operations)
		OrderedSalePrices: ordered_sale_prices.NewQuery(salePriceRepo, clk),
		ForProduct:        for_product.NewQuery(catalogRepo, priceStore, salePriceRepo, clk),
		DisplayPrice:      display_price.NewQuery(salePriceRepo, priceStore),
		ListEvents:        list_events.NewQuery(eventsReadModel),
	}
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
	_ = s.Logger.Sync()
}
