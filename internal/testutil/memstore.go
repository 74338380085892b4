package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/saleprice-service/internal/app/saleprice/contracts"
	"github.com/light-bringer/saleprice-service/internal/app/saleprice/domain"
	"github.com/light-bringer/saleprice-service/internal/models/m_outbox"
	"github.com/light-bringer/saleprice-service/internal/pkg/committer"
)

// MemStore is an in-memory catalog for use case tests. Its repositories stage every
// mutation they build; staged effects only become visible when the MemStore committer
// applies a plan containing that mutation, mirroring an atomic Spanner commit.
type MemStore struct {
	mu sync.Mutex

	salePrices map[string]*domain.SalePrice
	prices     map[string]*domain.Price
	variants   map[string]*domain.Variant
	products   map[string]*domain.Product
	events     []*contracts.OutboxEvent

	staged map[*spanner.Mutation]stagedEffect

	// FailCommit, when set, is returned by the next Apply and nothing is written.
	FailCommit error
	// FailReads, when set, is returned by every read.
	FailReads error
	commits   int
}

// NewMemStore creates an empty store.
func NewMemStore() *MemStore {
	return &MemStore{
		salePrices: make(map[string]*domain.SalePrice),
		prices:     make(map[string]*domain.Price),
		variants:   make(map[string]*domain.Variant),
		products:   make(map[string]*domain.Product),
		staged:     make(map[*spanner.Mutation]stagedEffect),
	}
}

// PutProduct seeds a product, bypassing the commit path. The Put helpers below do the same.
func (s *MemStore) PutProduct(p *domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID()] = cloneProduct(p)
}

func (s *MemStore) PutVariant(v *domain.Variant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.variants[v.ID()] = v
}

func (s *MemStore) PutPrice(p *domain.Price) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prices[p.ID()] = p
}

func (s *MemStore) PutSalePrice(sp *domain.SalePrice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.salePrices[sp.ID()] = cloneSalePrice(sp, sp.Version())
}

// DeletePrice hard-deletes a price.
func (s *MemStore) DeletePrice(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.prices, id)
}

// Product returns the committed product or nil.
func (s *MemStore) Product(id string) *domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.products[id]; ok {
		return cloneProduct(p)
	}
	return nil
}

// SalePrice returns the committed sale price (soft-deleted included) or nil.
func (s *MemStore) SalePrice(id string) *domain.SalePrice {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sp, ok := s.salePrices[id]; ok {
		return cloneSalePrice(sp, sp.Version())
	}
	return nil
}

// SalePriceCount returns the number of stored sale price rows.
func (s *MemStore) SalePriceCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.salePrices)
}

// Events returns the committed outbox events in insertion order.
func (s *MemStore) Events() []*contracts.OutboxEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*contracts.OutboxEvent(nil), s.events...)
}

// EventTypes returns the committed outbox event types in insertion order.
func (s *MemStore) EventTypes() []string {
	events := s.Events()
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.EventType)
	}
	return out
}

// Commits returns the number of successful commits.
func (s *MemStore) Commits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commits
}

// stagedEffect is applied on commit once every check of the plan has passed.
type stagedEffect struct {
	check func() error
	apply func()
}

func (s *MemStore) stage(table, key string, apply func()) *spanner.Mutation {
	return s.stageChecked(table, key, nil, apply)
}

// stageChecked stages an effect whose check runs under the store lock at commit time,
// like an update that fails when the row does not exist.
func (s *MemStore) stageChecked(table, key string, check func() error, apply func()) *spanner.Mutation {
	mut := spanner.Update(table, []string{"id"}, []interface{}{key})
	s.mu.Lock()
	s.staged[mut] = stagedEffect{check: check, apply: apply}
	s.mu.Unlock()
	return mut
}

// Committer returns a contracts.Committer applying staged mutations.
func (s *MemStore) Committer() contracts.Committer { return (*memCommitter)(s) }

// SalePriceRepo returns the store's SalePriceRepository.
func (s *MemStore) SalePriceRepo() contracts.SalePriceRepository { return (*memSalePrices)(s) }

// PriceStore returns the store's PriceStore.
func (s *MemStore) PriceStore() contracts.PriceStore { return (*memPrices)(s) }

// CatalogRepo returns the store's CatalogRepository.
func (s *MemStore) CatalogRepo() contracts.CatalogRepository { return (*memCatalog)(s) }

// OutboxRepo returns the store's OutboxRepository.
func (s *MemStore) OutboxRepo() contracts.OutboxRepository { return (*memOutbox)(s) }

type memCommitter MemStore

func (c *memCommitter) Apply(_ context.Context, plan *committer.CommitPlan) error {
	s := (*MemStore)(c)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailCommit != nil {
		err := s.FailCommit
		s.FailCommit = nil
		return err
	}
	if plan.IsEmpty() {
		return nil
	}

	effects := make([]stagedEffect, 0, len(plan.Mutations()))
	for _, mut := range plan.Mutations() {
		effect, ok := s.staged[mut]
		if !ok {
			return fmt.Errorf("mutation was not built by this store")
		}
		if effect.check != nil {
			if err := effect.check(); err != nil {
				return err
			}
		}
		effects = append(effects, effect)
	}
	for i, mut := range plan.Mutations() {
		effects[i].apply()
		delete(s.staged, mut)
	}
	s.commits++
	return nil
}

func (c *memCommitter) ApplyWithVersionCheck(ctx context.Context, check committer.VersionCheck, plan *committer.CommitPlan) error {
	s := (*MemStore)(c)
	id, _ := check.Key[0].(string)

	s.mu.Lock()
	current, ok := s.salePrices[id]
	s.mu.Unlock()
	if !ok {
		return domain.ErrSalePriceNotFound
	}
	if current.Version() != check.Expected {
		return fmt.Errorf("%w: %s %s has version %d, expected %d",
			committer.ErrOptimisticLockConflict, check.Table, id, current.Version(), check.Expected)
	}

	return c.Apply(ctx, plan)
}

type memSalePrices MemStore

func (r *memSalePrices) InsertMut(sp *domain.SalePrice) (*spanner.Mutation, error) {
	s := (*MemStore)(r)
	snapshot := cloneSalePrice(sp, sp.Version())
	return s.stage("sale_prices", sp.ID(), func() { s.salePrices[sp.ID()] = snapshot }), nil
}

func (r *memSalePrices) UpdateMut(sp *domain.SalePrice) *spanner.Mutation {
	if !sp.Changes().HasChanges() {
		return nil
	}
	s := (*MemStore)(r)
	snapshot := cloneSalePrice(sp, sp.Version()+1)
	return s.stage("sale_prices", sp.ID(), func() { s.salePrices[sp.ID()] = snapshot })
}

func (r *memSalePrices) GetByID(_ context.Context, id string, includeDeleted bool) (*domain.SalePrice, error) {
	s := (*MemStore)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailReads != nil {
		return nil, s.FailReads
	}
	sp, ok := s.salePrices[id]
	if !ok || (sp.IsDeleted() && !includeDeleted) {
		return nil, domain.ErrSalePriceNotFound
	}
	return cloneSalePrice(sp, sp.Version()), nil
}

func (r *memSalePrices) ListAll(_ context.Context, includeDeleted bool) ([]*domain.SalePrice, error) {
	return r.filter(includeDeleted, func(*domain.SalePrice) bool { return true })
}

func (r *memSalePrices) ListByPriceIDs(_ context.Context, priceIDs []string, includeDeleted bool) ([]*domain.SalePrice, error) {
	wanted := make(map[string]struct{}, len(priceIDs))
	for _, id := range priceIDs {
		wanted[id] = struct{}{}
	}
	return r.filter(includeDeleted, func(sp *domain.SalePrice) bool {
		_, ok := wanted[sp.PriceID()]
		return ok
	})
}

func (r *memSalePrices) filter(includeDeleted bool, keep func(*domain.SalePrice) bool) ([]*domain.SalePrice, error) {
	s := (*MemStore)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailReads != nil {
		return nil, s.FailReads
	}

	var out []*domain.SalePrice
	for _, sp := range s.salePrices {
		if sp.IsDeleted() && !includeDeleted {
			continue
		}
		if keep(sp) {
			out = append(out, cloneSalePrice(sp, sp.Version()))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt().Equal(out[j].CreatedAt()) {
			return out[i].CreatedAt().Before(out[j].CreatedAt())
		}
		return out[i].ID() < out[j].ID()
	})
	return out, nil
}

type memPrices MemStore

func (r *memPrices) ResolveActive(ctx context.Context, id string) (*domain.Price, error) {
	p, err := r.ResolveIncludingDeleted(ctx, id)
	if err != nil || p == nil || p.IsDeleted() {
		return nil, err
	}
	return p, nil
}

func (r *memPrices) ResolveIncludingDeleted(_ context.Context, id string) (*domain.Price, error) {
	s := (*MemStore)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailReads != nil {
		return nil, s.FailReads
	}
	return s.prices[id], nil
}

func (r *memPrices) ListByVariantIDs(_ context.Context, variantIDs []string) ([]*domain.Price, error) {
	s := (*MemStore)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailReads != nil {
		return nil, s.FailReads
	}

	wanted := make(map[string]struct{}, len(variantIDs))
	for _, id := range variantIDs {
		wanted[id] = struct{}{}
	}
	var out []*domain.Price
	for _, p := range s.prices {
		if _, ok := wanted[p.VariantID()]; ok {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

type memCatalog MemStore

func (r *memCatalog) GetVariant(_ context.Context, id string) (*domain.Variant, error) {
	s := (*MemStore)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailReads != nil {
		return nil, s.FailReads
	}
	return s.variants[id], nil
}

func (r *memCatalog) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	s := (*MemStore)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailReads != nil {
		return nil, s.FailReads
	}
	if p, ok := s.products[id]; ok {
		return cloneProduct(p), nil
	}
	return nil, nil
}

func (r *memCatalog) ListVariants(_ context.Context, productID string) ([]*domain.Variant, error) {
	s := (*MemStore)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailReads != nil {
		return nil, s.FailReads
	}

	var out []*domain.Variant
	for _, v := range s.variants {
		if v.ProductID() == productID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position() != out[j].Position() {
			return out[i].Position() < out[j].Position()
		}
		return out[i].ID() < out[j].ID()
	})
	return out, nil
}

func (r *memCatalog) TouchMut(p *domain.Product) *spanner.Mutation {
	if p == nil || !p.Touched() {
		return nil
	}
	s := (*MemStore)(r)
	snapshot := cloneProduct(p)
	return s.stage("products", p.ID(), func() {
		if current, ok := s.products[p.ID()]; ok {
			s.products[p.ID()] = domain.ReconstructProduct(current.ID(), current.Name(), snapshot.UpdatedAt(), current.DeletedAt())
		}
	})
}

type memOutbox MemStore

func (r *memOutbox) InsertMut(event *contracts.OutboxEvent) *spanner.Mutation {
	s := (*MemStore)(r)
	return s.stage("outbox_events", event.EventID, func() { s.events = append(s.events, event) })
}

func (r *memOutbox) MarkCompletedMut(eventID string) *spanner.Mutation {
	s := (*MemStore)(r)
	find := func() *contracts.OutboxEvent {
		for _, e := range s.events {
			if e.EventID == eventID {
				return e
			}
		}
		return nil
	}
	return s.stageChecked("outbox_events", eventID,
		func() error {
			if find() == nil {
				return status.Errorf(codes.NotFound, "row not found: outbox_events(%s)", eventID)
			}
			return nil
		},
		func() { find().Status = m_outbox.StatusCompleted },
	)
}

func (r *memOutbox) EnrichEvent(event domain.DomainEvent, payload string) *contracts.OutboxEvent {
	return &contracts.OutboxEvent{
		EventID:     uuid.New().String(),
		EventType:   event.EventType(),
		AggregateID: event.AggregateID(),
		Payload:     payload,
		Status:      m_outbox.StatusPending,
	}
}

func cloneSalePrice(sp *domain.SalePrice, version int64) *domain.SalePrice {
	return domain.ReconstructSalePrice(
		sp.ID(), sp.PriceID(), sp.Value(), sp.StartAt(), sp.EndAt(),
		version, sp.CreatedAt(), sp.UpdatedAt(), sp.DeletedAt(),
	)
}

func cloneProduct(p *domain.Product) *domain.Product {
	var deletedAt *time.Time
	if d := p.DeletedAt(); d != nil {
		v := *d
		deletedAt = &v
	}
	return domain.ReconstructProduct(p.ID(), p.Name(), p.UpdatedAt(), deletedAt)
}
