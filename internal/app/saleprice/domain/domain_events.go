package domain

import "time"

// DomainEvent is the base interface for all domain events.
type DomainEvent interface {
	EventType() string
	AggregateID() string
}

// SalePriceCreatedEvent is emitted when a sale price is created.
type SalePriceCreatedEvent struct {
	SalePriceID string     `json:"sale_price_id"`
	PriceID     string     `json:"price_id"`
	Value       string     `json:"value"`
	StartAt     *time.Time `json:"start_at,omitempty"`
	EndAt       *time.Time `json:"end_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (e *SalePriceCreatedEvent) EventType() string   { return "sale_price.created" }
func (e *SalePriceCreatedEvent) AggregateID() string { return e.SalePriceID }

// SalePriceStartedEvent is emitted when a sale price window is opened.
type SalePriceStartedEvent struct {
	SalePriceID string     `json:"sale_price_id"`
	StartAt     time.Time  `json:"start_at"`
	EndAt       *time.Time `json:"end_at,omitempty"`
}

func (e *SalePriceStartedEvent) EventType() string   { return "sale_price.started" }
func (e *SalePriceStartedEvent) AggregateID() string { return e.SalePriceID }

// SalePriceStoppedEvent is emitted when a sale price window is closed.
type SalePriceStoppedEvent struct {
	SalePriceID string    `json:"sale_price_id"`
	EndAt       time.Time `json:"end_at"`
}

func (e *SalePriceStoppedEvent) EventType() string   { return "sale_price.stopped" }
func (e *SalePriceStoppedEvent) AggregateID() string { return e.SalePriceID }

// SalePriceDestroyedEvent is emitted when a sale price is soft-deleted.
type SalePriceDestroyedEvent struct {
	SalePriceID string    `json:"sale_price_id"`
	PriceID     string    `json:"price_id"`
	DeletedAt   time.Time `json:"deleted_at"`
}

func (e *SalePriceDestroyedEvent) EventType() string   { return "sale_price.destroyed" }
func (e *SalePriceDestroyedEvent) AggregateID() string { return e.SalePriceID }

// ProductTouchedEvent is emitted when a sale price change invalidated a product's cache marker.
type ProductTouchedEvent struct {
	ProductID   string    `json:"product_id"`
	SalePriceID string    `json:"sale_price_id"`
	TouchedAt   time.Time `json:"touched_at"`
}

func (e *ProductTouchedEvent) EventType() string   { return "product.touched" }
func (e *ProductTouchedEvent) AggregateID() string { return e.ProductID }
