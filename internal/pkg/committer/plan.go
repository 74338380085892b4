// Package committer implements the Golden Mutation Pattern for Spanner transactions.
//
// Domain aggregates change state in memory, repositories turn those changes into
// Spanner mutations without applying them, and usecases collect every mutation of one
// command (the sale price row, the touched product row, outbox events) into a CommitPlan
// that is applied atomically:
//
//	plan := committer.NewPlan()
//	plan.Add(salePriceMut)
//	plan.Add(catalog.TouchMut(product))
//	plan.Add(outbox.InsertMut(event))
//	return comm.Apply(ctx, plan)
//
// ApplyWithVersionCheck adds an optimistic lock on a versioned row, for callers that need
// exclusivity when racing start/stop on the same sale price.
package committer

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
)

// ErrOptimisticLockConflict is returned when the versioned row changed since it was read.
var ErrOptimisticLockConflict = errors.New("optimistic lock conflict")

// VersionColumn is the column every versioned table uses for optimistic locking.
const VersionColumn = "version"

// CommitPlan is a typed wrapper around Spanner mutations.
type CommitPlan struct {
	mutations []*spanner.Mutation
}

// NewPlan creates a new empty CommitPlan.
func NewPlan() *CommitPlan {
	return &CommitPlan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// Add adds a mutation to the plan. Nil mutations are ignored.
func (cp *CommitPlan) Add(mut *spanner.Mutation) {
	if mut != nil {
		cp.mutations = append(cp.mutations, mut)
	}
}

// AddMultiple adds multiple mutations to the plan.
func (cp *CommitPlan) AddMultiple(muts []*spanner.Mutation) {
	for _, mut := range muts {
		cp.Add(mut)
	}
}

// Mutations returns all collected mutations.
func (cp *CommitPlan) Mutations() []*spanner.Mutation {
	return cp.mutations
}

// IsEmpty returns true if the plan has no mutations.
func (cp *CommitPlan) IsEmpty() bool {
	return len(cp.mutations) == 0
}

// Count returns the number of mutations in the plan.
func (cp *CommitPlan) Count() int {
	return len(cp.mutations)
}

// VersionCheck identifies the row whose version must still equal Expected at commit time.
type VersionCheck struct {
	Table    string
	Key      spanner.Key
	Expected int64
}

// Committer provides transaction execution for CommitPlans.
type Committer struct {
	client *spanner.Client
}

// NewCommitter creates a new Committer.
func NewCommitter(client *spanner.Client) *Committer {
	return &Committer{client: client}
}

// Apply executes the CommitPlan atomically.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}

	if _, err := c.client.Apply(ctx, plan.Mutations()); err != nil {
		return fmt.Errorf("failed to apply commit plan: %w", err)
	}

	return nil
}

// ApplyWithVersionCheck executes the CommitPlan in a read-write transaction after checking
// that the row named by check still carries the expected version.
func (c *Committer) ApplyWithVersionCheck(ctx context.Context, check VersionCheck, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}

	_, err := c.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		row, err := txn.ReadRow(ctx, check.Table, check.Key, []string{VersionColumn})
		if err != nil {
			return fmt.Errorf("failed to read %s version: %w", check.Table, err)
		}

		var current int64
		if err := row.Column(0, &current); err != nil {
			return fmt.Errorf("failed to parse version: %w", err)
		}

		if current != check.Expected {
			return fmt.Errorf("%w: %s %v expected version %d, got %d",
				ErrOptimisticLockConflict, check.Table, check.Key, check.Expected, current)
		}

		return txn.BufferWrite(plan.Mutations())
	})
	if err != nil {
		return fmt.Errorf("failed to apply commit plan with version check: %w", err)
	}

	return nil
}
