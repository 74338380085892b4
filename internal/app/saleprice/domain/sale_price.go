package domain

import (
	"time"
)

// Field names for change tracking
const (
	FieldValue     = "value"
	FieldStartAt   = "start_at"
	FieldEndAt     = "end_at"
	FieldDeletedAt = "deleted_at"
)

// SalePrice is a promotional price attached to a base Price for the window
// [startAt, endAt). A nil startAt means the sale has not started; a nil endAt means it
// never ends.
type SalePrice struct {
	id        string
	priceID   string
	value     *Money
	startAt   *time.Time
	endAt     *time.Time
	version   int64
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time

	changes *ChangeTracker
	events  []DomainEvent
}

// NewSalePrice creates an unstarted sale price for the given base price.
func NewSalePrice(id, priceID string, value *Money, now time.Time) (*SalePrice, error) {
	if priceID == "" {
		return nil, ErrMissingPrice
	}
	if value == nil || value.IsNegative() {
		return nil, ErrInvalidSaleValue
	}

	s := &SalePrice{
		id:        id,
		priceID:   priceID,
		value:     value.Copy(),
		createdAt: now,
		updatedAt: now,
		changes:   NewChangeTracker(),
		events:    make([]DomainEvent, 0),
	}
	s.changes.MarkDirty(FieldValue, FieldStartAt, FieldEndAt)

	s.recordEvent(&SalePriceCreatedEvent{
		SalePriceID: s.id,
		PriceID:     s.priceID,
		Value:       s.value.String(),
		CreatedAt:   now,
	})

	return s, nil
}

// ReconstructSalePrice rebuilds a SalePrice from storage.
func ReconstructSalePrice(
	id, priceID string,
	value *Money,
	startAt, endAt *time.Time,
	version int64,
	createdAt, updatedAt time.Time,
	deletedAt *time.Time,
) *SalePrice {
	return &SalePrice{
		id:        id,
		priceID:   priceID,
		value:     value,
		startAt:   startAt,
		endAt:     endAt,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
		deletedAt: deletedAt,
		changes:   NewChangeTracker(),
		events:    make([]DomainEvent, 0),
	}
}

// Getters
func (s *SalePrice) ID() string                  { return s.id }
func (s *SalePrice) PriceID() string             { return s.priceID }
func (s *SalePrice) Value() *Money               { return s.value.Copy() }
func (s *SalePrice) StartAt() *time.Time         { return copyTime(s.startAt) }
func (s *SalePrice) EndAt() *time.Time           { return copyTime(s.endAt) }
func (s *SalePrice) Version() int64              { return s.version }
func (s *SalePrice) CreatedAt() time.Time        { return s.createdAt }
func (s *SalePrice) UpdatedAt() time.Time        { return s.updatedAt }
func (s *SalePrice) DeletedAt() *time.Time       { return copyTime(s.deletedAt) }
func (s *SalePrice) IsDeleted() bool             { return s.deletedAt != nil }
func (s *SalePrice) Changes() *ChangeTracker     { return s.changes }
func (s *SalePrice) DomainEvents() []DomainEvent { return s.events }

// Start opens the sale window. An existing start in the past is kept (re-starting an
// active sale only replaces its end); otherwise the start becomes now. endAt replaces
// the current end, nil meaning "never ends". An endAt not after the start is rejected
// with ErrInvalidWindow and leaves the sale price untouched.
func (s *SalePrice) Start(now time.Time, endAt *time.Time) error {
	if err := s.checkNotDestroyed(); err != nil {
		return err
	}

	startAt := now
	if s.startAt != nil && !s.startAt.After(now) {
		startAt = *s.startAt
	}

	if endAt != nil && !endAt.After(startAt) {
		return ErrInvalidWindow
	}

	s.startAt = &startAt
	s.endAt = copyTime(endAt)
	s.updatedAt = now
	s.changes.MarkDirty(FieldStartAt, FieldEndAt)

	s.recordEvent(&SalePriceStartedEvent{
		SalePriceID: s.id,
		StartAt:     startAt,
		EndAt:       copyTime(endAt),
	})

	return nil
}

// Stop closes the sale window at now, whatever the previous end was. The start is not
// modified, so stopping an unstarted or future sale leaves an empty window.
func (s *SalePrice) Stop(now time.Time) error {
	if err := s.checkNotDestroyed(); err != nil {
		return err
	}

	end := now
	s.endAt = &end
	s.updatedAt = now
	s.changes.MarkDirty(FieldEndAt)

	s.recordEvent(&SalePriceStoppedEvent{
		SalePriceID: s.id,
		EndAt:       end,
	})

	return nil
}

// Destroy soft-deletes the sale price. The base Price is never affected.
func (s *SalePrice) Destroy(now time.Time) error {
	if err := s.checkNotDestroyed(); err != nil {
		return err
	}

	deletedAt := now
	s.deletedAt = &deletedAt
	s.updatedAt = now
	s.changes.MarkDirty(FieldDeletedAt)

	s.recordEvent(&SalePriceDestroyedEvent{
		SalePriceID: s.id,
		PriceID:     s.priceID,
		DeletedAt:   now,
	})

	return nil
}

// Enabled reports whether the sale is active at now: started, start not in the future,
// and end either absent or still ahead.
func (s *SalePrice) Enabled(now time.Time) bool {
	if s.startAt == nil || s.startAt.After(now) {
		return false
	}
	return s.endAt == nil || s.endAt.After(now)
}

// DisplayPrice pairs the base price amount with its currency. price must come from the
// including-deleted accessor; nil means the base price no longer exists at all.
func (s *SalePrice) DisplayPrice(price *Price) (DisplayPrice, error) {
	if price == nil || price.ID() != s.priceID {
		return DisplayPrice{}, ErrUnresolvedPrice
	}
	return DisplayPrice{
		Amount:   price.amount.Decimal(),
		Currency: price.currency,
	}, nil
}

// ClearEvents drops recorded events and pending changes after a successful commit.
func (s *SalePrice) ClearEvents() {
	s.events = make([]DomainEvent, 0)
	s.changes.Clear()
}

func (s *SalePrice) checkNotDestroyed() error {
	if s.deletedAt != nil {
		return ErrAlreadyDestroyed
	}
	return nil
}

func (s *SalePrice) recordEvent(event DomainEvent) {
	s.events = append(s.events, event)
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
