// Package scope resolves org-or-global, versioned, effective-dated resources.
// Rule sets and document templates share the same filtering and pooling rules:
// an item is active when it is not deleted and its window contains asOf, and an
// organization's own items always shadow the global ones.
package scope

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

type Resource interface {
	// ScopeOrg returns the owning organization, or nil for global items.
	ScopeOrg() *uuid.UUID
	EffectiveWindow() (from time.Time, to *time.Time)
	IsDeleted() bool
}

// Contains reports whether asOf lies inside [from, to]. A nil to is open ended.
func Contains(from time.Time, to *time.Time, asOf time.Time) bool {
	if from.After(asOf) {
		return false
	}

	return to == nil || !to.Before(asOf)
}

// Active keeps the items that are not deleted and effective at asOf.
func Active[T Resource](items []T, asOf time.Time) []T {
	out := make([]T, 0, len(items))

	for _, it := range items {
		if it.IsDeleted() {
			continue
		}

		from, to := it.EffectiveWindow()
		if !Contains(from, to, asOf) {
			continue
		}

		out = append(out, it)
	}

	return out
}

// Partition splits items into those owned by orgID and global ones. Items owned
// by any other organization are dropped.
func Partition[T Resource](items []T, orgID uuid.UUID) (org, global []T) {
	for _, it := range items {
		owner := it.ScopeOrg()

		switch {
		case owner == nil:
			global = append(global, it)
		case *owner == orgID:
			org = append(org, it)
		}
	}

	return org, global
}

// Pick returns the best active item for orgID. The org pool is used whenever it
// has at least one active item; otherwise the global pool. Within the pool,
// less orders candidates and the first wins.
func Pick[T Resource](items []T, orgID uuid.UUID, asOf time.Time, less func(a, b T) int) (T, bool) {
	org, global := Partition(Active(items, asOf), orgID)

	pool := org
	if len(pool) == 0 {
		pool = global
	}

	if len(pool) == 0 {
		var zero T
		return zero, false
	}

	sorted := slices.Clone(pool)
	slices.SortStableFunc(sorted, less)

	return sorted[0], true
}

// Layer returns the newest active global item followed by the newest active
// org item, skipping either when absent. Callers evaluate the result in order
// so that the org entry overrides the global one.
func Layer[T Resource](items []T, orgID uuid.UUID, asOf time.Time, version func(T) int) []T {
	org, global := Partition(Active(items, asOf), orgID)

	var out []T

	if g, ok := newest(global, version); ok {
		out = append(out, g)
	}

	if o, ok := newest(org, version); ok {
		out = append(out, o)
	}

	return out
}

func newest[T any](items []T, version func(T) int) (T, bool) {
	var (
		best  T
		found bool
	)

	for _, it := range items {
		if !found || version(it) > version(best) {
			best = it
			found = true
		}
	}

	return best, found
}
