package domain

import "sort"

// ChangeTracker records which persisted fields of an aggregate were modified, so
// repositories only write those columns.
type ChangeTracker struct {
	dirty map[string]struct{}
}

// NewChangeTracker creates an empty tracker.
func NewChangeTracker() *ChangeTracker {
	return &ChangeTracker{dirty: make(map[string]struct{})}
}

// MarkDirty marks fields as modified.
func (ct *ChangeTracker) MarkDirty(fields ...string) {
	for _, f := range fields {
		ct.dirty[f] = struct{}{}
	}
}

// Dirty reports whether field was modified.
func (ct *ChangeTracker) Dirty(field string) bool {
	_, ok := ct.dirty[field]
	return ok
}

// HasChanges returns true if any field was modified.
func (ct *ChangeTracker) HasChanges() bool {
	return len(ct.dirty) > 0
}

// DirtyFields returns the modified field names in sorted order.
func (ct *ChangeTracker) DirtyFields() []string {
	fields := make([]string, 0, len(ct.dirty))
	for f := range ct.dirty {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Clear forgets all modifications, typically after a successful commit.
func (ct *ChangeTracker) Clear() {
	ct.dirty = make(map[string]struct{})
}
